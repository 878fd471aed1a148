package dump

import (
	"strings"

	"github.com/retroview/mdaview/internal/codepage"
)

// FixScreen runs FixLine over every line of a full screen buffer. Line
// terminators are preserved exactly as found: none, "\n", or "\r\n". Pure
// function; independent calls are safe to run concurrently.
func FixScreen(t *codepage.Table, screen string) string {
	var sb strings.Builder
	sb.Grow(len(screen))

	for len(screen) > 0 {
		line := screen
		term := ""
		if i := strings.IndexByte(screen, '\n'); i >= 0 {
			line, screen = screen[:i], screen[i+1:]
			term = "\n"
			if strings.HasSuffix(line, "\r") {
				line = line[:len(line)-1]
				term = "\r\n"
			}
		} else {
			screen = ""
		}
		sb.WriteString(FixLine(t, line))
		sb.WriteString(term)
	}
	return sb.String()
}
