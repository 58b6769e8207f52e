// Package logger provides the append-only diagnostic log the resolver
// writes while locating the netcoredbg binary.
//
// The log is a flat file of "[<unix_seconds>] <message>" lines in the
// working directory; that line format is read by support tooling and is a
// stable contract. Logging failures are swallowed: diagnostics must never
// cause binary resolution to fail.
package logger

import (
	"fmt"
	"os"
	"time"
)

// DefaultLogFile is the log file name used when none is configured.
const DefaultLogFile = "netcoredbg_extension_debug.log"

// Logger appends timestamped diagnostic lines to a file. Construct with New
// or Nop and pass by handle; a nil *Logger is a safe no-op so call sites
// never branch on logging configuration.
type Logger struct {
	path    string
	enabled bool
}

// New returns a logger appending to path, or to DefaultLogFile in the
// working directory when path is empty.
func New(path string) *Logger {
	if path == "" {
		path = DefaultLogFile
	}
	return &Logger{path: path, enabled: true}
}

// Nop returns a disabled logger. Call sites stay unchanged; nothing is
// written.
func Nop() *Logger {
	return &Logger{}
}

// Debugf appends one formatted line to the log file, opening it in
// create-or-append mode per call. Errors opening or writing the file are
// ignored.
func (l *Logger) Debugf(format string, args ...any) {
	if l == nil || !l.enabled {
		return
	}

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	defer f.Close()

	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(f, "[%d] %s\n", time.Now().Unix(), msg)
}
