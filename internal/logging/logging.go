// Package logging provides debug logging utilities for ansiview.
package logging

import (
	"log"
	"os"
)

// DebugEnabled controls whether Debug() produces output.
// Set via -debug flag or DEBUG=1 environment variable.
var DebugEnabled bool

// Init sets the debug gate from the flag value and the DEBUG environment
// variable.
func Init(debugFlag bool) {
	DebugEnabled = debugFlag || os.Getenv("DEBUG") == "1"
}

// Debug logs a message only when DebugEnabled is true.
func Debug(format string, args ...any) {
	if DebugEnabled {
		log.Printf("DEBUG: "+format, args...)
	}
}
