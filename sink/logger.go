package sink

import (
	"context"
	"log/slog"

	"github.com/charmbracelet/log"
)

// Logger hands lines to an application logger at debug level, the way a
// framework logger would receive them.
func Logger(l *log.Logger) Sink {
	if l == nil {
		l = log.Default()
	}
	return Func(func(line string) { l.Debug(line) })
}

// Slog hands lines to a log/slog logger at debug level.
func Slog(l *slog.Logger) Sink {
	if l == nil {
		l = slog.Default()
	}
	return Func(func(line string) { l.Log(context.Background(), slog.LevelDebug, line) })
}
