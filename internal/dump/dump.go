// Package dump rebuilds the character column of SoftICE memory-dump lines.
//
// SoftICE renders every byte outside printable ASCII as '.' in the tail of
// its dump lines. The hex columns still carry the real byte values, so the
// tail can be rebuilt losslessly and rendered through CP866.
package dump

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/retroview/mdaview/internal/codepage"
)

const (
	byteTokens = 16 // byte view: 16 two-digit groups per line
	wordTokens = 8  // word view: 8 four-digit groups per line

	// Pad between the last hex column and the character column when the
	// stale tail carries no spaces of its own. Matches the SoftICE layout.
	defaultPad = 2

	// Length of the AAAA:AAAA address field.
	addrLen = 9
)

var (
	addrRE    = regexp.MustCompile(`^[0-9A-Fa-f]{4}:[0-9A-Fa-f]{4}`)
	byteTokRE = regexp.MustCompile(`\b[0-9A-Fa-f]{2}\b`)
	wordTokRE = regexp.MustCompile(`\b[0-9A-Fa-f]{4}\b`)
)

// fixers are tried in order; byte view wins over word view when a line
// could satisfy both.
var fixers = []func(*codepage.Table, string) (string, bool){
	fixByteLine,
	fixWordLine,
}

// FixLine rebuilds the character tail of a dump line. Lines matching
// neither dump layout are returned unchanged.
func FixLine(t *codepage.Table, line string) string {
	for _, fix := range fixers {
		if fixed, ok := fix(t, line); ok {
			return fixed
		}
	}
	return line
}

// fixByteLine handles the byte view: AAAA:AAAA followed by at least 16
// standalone two-digit hex groups.
func fixByteLine(t *codepage.Table, line string) (string, bool) {
	if !addrRE.MatchString(line) {
		return "", false
	}
	rest := line[addrLen:]

	locs := byteTokRE.FindAllStringIndex(rest, byteTokens)
	if len(locs) < byteTokens {
		return "", false
	}

	run := make([]byte, 0, byteTokens)
	for _, loc := range locs {
		v, err := strconv.ParseUint(rest[loc[0]:loc[1]], 16, 8)
		if err != nil {
			return "", false
		}
		run = append(run, byte(v))
	}

	split := addrLen + locs[byteTokens-1][1]
	return rebuild(t, line, split, run), true
}

// fixWordLine handles the word view: AAAA:AAAA followed by at least 8
// standalone four-digit hex groups. Words are little-endian in memory, so
// each group contributes its low byte before its high byte.
func fixWordLine(t *codepage.Table, line string) (string, bool) {
	if !addrRE.MatchString(line) {
		return "", false
	}
	rest := line[addrLen:]

	locs := wordTokRE.FindAllStringIndex(rest, wordTokens)
	if len(locs) < wordTokens {
		return "", false
	}

	run := make([]byte, 0, 2*wordTokens)
	for _, loc := range locs {
		v, err := strconv.ParseUint(rest[loc[0]:loc[1]], 16, 16)
		if err != nil {
			return "", false
		}
		run = append(run, byte(v&0xFF), byte(v>>8))
	}

	split := addrLen + locs[wordTokens-1][1]
	return rebuild(t, line, split, run), true
}

// rebuild assembles the fixed line: everything up to the end of the last
// consumed hex group, the original padding (or the default), then the 16
// reconstructed bytes rendered as characters.
func rebuild(t *codepage.Table, line string, split int, run []byte) string {
	tail := line[split:]
	pad := len(tail) - len(strings.TrimLeft(tail, " "))
	if pad < 1 {
		pad = defaultPad
	}

	var sb strings.Builder
	sb.Grow(split + pad + 2*len(run))
	sb.WriteString(line[:split])
	sb.WriteString(strings.Repeat(" ", pad))
	for _, b := range run {
		sb.WriteString(renderByte(t, b))
	}
	return sb.String()
}

// renderByte keeps control bytes as the '.' placeholder; their terminal
// width and behavior are unpredictable and would break the column layout.
func renderByte(t *codepage.Table, b byte) string {
	if b < 0x20 || b == 0x7F {
		return "."
	}
	return t.DecodeByte(b)
}
