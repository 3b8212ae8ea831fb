// Package sink provides destinations for formatted trace lines.
//
// A Sink receives one fully formatted line per notice and disposes of it.
// The package offers the common implementations:
//
//   - Stream: immediate write to an io.Writer (stdout by default)
//   - Ring: the last N lines kept in memory
//   - Multi: fan-out to several sinks
//   - Logger / Slog: hand lines to an application logger at debug level
//   - Func: adapt a plain function
package sink

import "io"

// Sink disposes of one formatted line. Implementations must be safe for
// concurrent use and must not panic on ordinary strings.
type Sink interface {
	Emit(line string)
}

// Func adapts an ordinary function to the Sink interface.
type Func func(line string)

// Emit calls f(line).
func (f Func) Emit(line string) { f(line) }

// Outputter is implemented by sinks backed by an io.Writer, so callers can
// inspect the destination (for terminal detection).
type Outputter interface {
	Output() io.Writer
}

type nopSink struct{}

// Emit does nothing.
func (nopSink) Emit(string) {}

// Nop discards every line.
var Nop Sink = nopSink{}
