// Package logging provides debug logging for the mdaview pipe viewer.
// Regular output is reserved for screen frames, so diagnostics go to the
// standard logger on stderr and stay quiet unless explicitly enabled.
package logging

import "log"

// DebugEnabled controls whether Debug() produces output.
// Set via the -debug flag or the DEBUG=1 environment variable.
var DebugEnabled bool

// Debug logs a message only when DebugEnabled is true.
func Debug(format string, args ...any) {
	if DebugEnabled {
		log.Printf("DEBUG: "+format, args...)
	}
}
