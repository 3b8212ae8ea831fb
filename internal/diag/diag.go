// Package diag is the logger for loba's own diagnostics (config problems,
// CLI errors). Trace lines never go through it.
package diag

import (
	"io"
	"os"
	"sync/atomic"

	"github.com/charmbracelet/log"
)

var logger atomic.Pointer[log.Logger]

func init() {
	logger.Store(New(os.Stderr))
}

// New creates a diagnostics logger writing to w at warn level.
func New(w io.Writer) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Prefix: "loba",
		Level:  log.WarnLevel,
	})
}

// Logger returns the current diagnostics logger.
func Logger() *log.Logger { return logger.Load() }

// SetLogger replaces the diagnostics logger; nil restores the stderr logger.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = New(os.Stderr)
	}
	logger.Store(l)
}
