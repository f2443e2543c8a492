// Package diag implements leveled diagnostic logging for the compiler and
// interpreter, formatted as "LEVEL: message" lines.
package diag

import (
	"bytes"
	"fmt"
	"io"
	"sync"
)

// Common levels.
const (
	Error   = "ERROR"
	Warning = "WARNING"
	Resync  = "RESYNC"
)

// Logger writes leveled lines to an output stream, counting them per level.
type Logger struct {
	sync.Mutex
	output   io.Writer
	buf      bytes.Buffer
	counts   map[string]int
	exitCode int
}

// New returns a Logger writing to out.
func New(out io.Writer) *Logger {
	return &Logger{output: out}
}

// ExitCode returns a code to pass to os.Exit: non-zero if any error was
// logged.
func (log *Logger) ExitCode() int {
	log.Lock()
	defer log.Unlock()
	return log.exitCode
}

// Count returns how many lines have been logged at level.
func (log *Logger) Count(level string) int {
	log.Lock()
	defer log.Unlock()
	return log.counts[level]
}

// Leveledf returns a typical printf-style formatting function that logs
// messages with the given level.
func (log *Logger) Leveledf(level string) func(mess string, args ...interface{}) {
	return func(mess string, args ...interface{}) { log.Printf(level, mess, args...) }
}

// ErrorIf logs any non-nil error through Errorf.
func (log *Logger) ErrorIf(err error) {
	if err != nil {
		log.Errorf("%v", err)
	}
}

// Errorf is like `Printf("ERROR", ...)`.
func (log *Logger) Errorf(mess string, args ...interface{}) {
	log.Printf(Error, mess, args...)
}

// Printf prints a line to the output stream like "level: message...\n"; an
// empty level prints the message alone. Any ERROR level line, or io error,
// makes ExitCode() non-zero.
func (log *Logger) Printf(level, mess string, args ...interface{}) {
	log.Lock()
	defer log.Unlock()
	if err := log.printf(level, mess, args...); err != nil {
		log.printf(Error, "%+v", err)
		log.exitCode = 2
	}
}

func (log *Logger) printf(level, mess string, args ...interface{}) error {
	if log.counts == nil {
		log.counts = make(map[string]int)
	}
	log.counts[level]++
	if level == Error && log.exitCode == 0 {
		log.exitCode = 1
	}

	if level != "" {
		log.buf.WriteString(level)
		log.buf.WriteString(": ")
	}
	if len(args) > 0 {
		fmt.Fprintf(&log.buf, mess, args...)
	} else {
		log.buf.WriteString(mess)
	}
	if b := log.buf.Bytes(); len(b) == 0 || b[len(b)-1] != '\n' {
		log.buf.WriteByte('\n')
	}
	if log.output == nil {
		log.buf.Reset()
		return nil
	}
	_, err := log.buf.WriteTo(log.output)
	return err
}
