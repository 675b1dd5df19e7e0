// Package logging provides the prefixed, colored logger the services and
// main wiring use. One Logger is created per subsystem with its own prefix
// color; levels carry fixed colors.
package logging

import (
	"errors"
	"fmt"
	"io"
	"log"
)

const (
	colorReset = "\033[0m"

	infoColor    = "\033[32m"
	warningColor = "\033[33m"
	errorColor   = "\033[31m"
)

// Logger writes leveled, prefixed lines to a single output.
type Logger struct {
	prefix string
	color  string
	std    *log.Logger
}

// New creates a Logger tagging every line with the subsystem prefix in the
// given ANSI color. An empty color leaves the prefix uncolored.
func New(prefix, color string, out io.Writer) (*Logger, error) {
	if prefix == "" {
		return nil, errors.New("logger prefix must not be empty")
	}
	if out == nil {
		return nil, errors.New("logger output must not be nil")
	}

	tag := fmt.Sprintf("[%s] ", prefix)
	if color != "" {
		tag = fmt.Sprintf("%s[%s]%s ", color, prefix, colorReset)
	}

	return &Logger{
		prefix: prefix,
		color:  color,
		std:    log.New(out, tag, log.LstdFlags),
	}, nil
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.std.Printf("%s[INFO]%s %s", infoColor, colorReset, msg)
}

// Warning logs a warning message.
func (l *Logger) Warning(msg string) {
	l.std.Printf("%s[WARNING]%s %s", warningColor, colorReset, msg)
}

// Error logs an error message.
func (l *Logger) Error(msg string) {
	l.std.Printf("%s[ERROR]%s %s", errorColor, colorReset, msg)
}
