// Package codepage provides the fixed CP866 byte-to-text table used to
// restore the character column of SoftICE memory dumps.
package codepage

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// Table maps every byte value 0-255 to its UTF-8 representation under
// CP866. It is built once at startup and never mutated, so a single Table
// is safe to share across goroutines.
type Table struct {
	entries [256]string
}

// NewTable builds the CP866 table. It fails if the underlying charmap
// leaves any byte value without a real mapping; a partial table would
// substitute U+FFFD silently at runtime.
func NewTable() (*Table, error) {
	var t Table
	for i := 0; i < 256; i++ {
		r := charmap.CodePage866.DecodeByte(byte(i))
		if r == utf8.RuneError {
			return nil, fmt.Errorf("codepage: CP866 has no mapping for byte 0x%02X", i)
		}
		t.entries[i] = string(r)
	}
	return &t, nil
}

// DecodeByte returns the UTF-8 representation of a single CP866 byte.
func (t *Table) DecodeByte(b byte) string {
	return t.entries[b]
}

// Decode converts a CP866 buffer to a UTF-8 string byte for byte. CP866 is
// a single-byte encoding, so per-byte decoding is identical to decoding the
// buffer as one run. The error return follows the decoder contract for
// unmappable input; a Table built by NewTable is total over all 256 values.
func (t *Table) Decode(data []byte) (string, error) {
	var sb strings.Builder
	sb.Grow(len(data) * 2)
	for _, b := range data {
		sb.WriteString(t.entries[b])
	}
	return sb.String(), nil
}
