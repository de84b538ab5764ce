// Package logging wraps charmbracelet/log for gophpfix: a process-wide
// default logger on stderr, a context-carried logger for a run, and a plain
// logger for command output on stdout.
package logging

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/log"
)

//nolint:gochecknoglobals // process-wide default logger
var (
	defaultMu     sync.RWMutex
	defaultLogger = New("info")
)

// New returns a stderr logger at level. Unknown levels mean info.
func New(level string) *log.Logger {
	return NewWithWriter(os.Stderr, level)
}

// NewWithWriter is New writing to w.
func NewWithWriter(w io.Writer, level string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		Prefix: "gophpfix",
	})
	logger.SetLevel(levelOrInfo(level))
	return logger
}

// NewInteractive returns an info logger without prefix for command output
// such as the rules listing. A nil w means stdout.
func NewInteractive(w io.Writer) *log.Logger {
	if w == nil {
		w = os.Stdout
	}
	logger := log.NewWithOptions(w, log.Options{})
	logger.SetLevel(log.InfoLevel)
	return logger
}

// ParseLevel maps "debug", "info", "warn" or "warning" and "error" to a
// level, ignoring case.
func ParseLevel(level string) (log.Level, error) {
	if level == "warning" {
		level = "warn"
	}
	parsed, err := log.ParseLevel(level)
	if err != nil || parsed < log.DebugLevel || parsed > log.ErrorLevel {
		return log.InfoLevel, fmt.Errorf("unknown log level %q", level)
	}
	return parsed, nil
}

func levelOrInfo(level string) log.Level {
	parsed, err := ParseLevel(level)
	if err != nil {
		return log.InfoLevel
	}
	return parsed
}

// Default returns the process-wide logger.
func Default() *log.Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// SetDefault replaces the process-wide logger. Nil is ignored.
func SetDefault(logger *log.Logger) {
	if logger == nil {
		return
	}
	defaultMu.Lock()
	defaultLogger = logger
	defaultMu.Unlock()
}

// SetLevel changes the level of the process-wide logger.
func SetLevel(level string) {
	Default().SetLevel(levelOrInfo(level))
}
