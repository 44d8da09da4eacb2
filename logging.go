package uml

import (
	"fmt"
	"log"
	"os"
)

// Logger is the injectable logging sink (§6): three severities, no
// console abstraction beyond that — a full logging subsystem is named
// out of scope by the spec, so the default implementation is a thin
// wrapper over the standard library, mirroring the teacher's
// LoggingObserver's LogInfo/LogWarning/LogError tiers without its
// fuller lifecycle-observer machinery.
type Logger interface {
	Log(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// defaultLogger wraps a standard library *log.Logger, prefixing each
// line with its severity.
type defaultLogger struct {
	out *log.Logger
}

// NewDefaultLogger returns a Logger writing to stderr with the given
// prefix.
func NewDefaultLogger(prefix string) Logger {
	return &defaultLogger{out: log.New(os.Stderr, prefix, log.LstdFlags)}
}

func (d *defaultLogger) Log(format string, args ...any) {
	d.out.Print("INFO  " + fmt.Sprintf(format, args...))
}

func (d *defaultLogger) Warn(format string, args ...any) {
	d.out.Print("WARN  " + fmt.Sprintf(format, args...))
}

func (d *defaultLogger) Error(format string, args ...any) {
	d.out.Print("ERROR " + fmt.Sprintf(format, args...))
}

// nopLogger discards everything; useful in tests and for library users
// who want silence.
type nopLogger struct{}

// NopLogger is a Logger that discards all output.
var NopLogger Logger = nopLogger{}

func (nopLogger) Log(string, ...any)   {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}
