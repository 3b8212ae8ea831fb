package sink

import (
	"io"
	"os"
	"strings"
	"sync"
)

// Stream writes each line immediately to an io.Writer, newline terminated.
type Stream struct {
	mu  sync.Mutex
	w   io.Writer
	err error
}

// NewStream creates a Stream writing to w.
func NewStream(w io.Writer) *Stream {
	if w == nil {
		w = os.Stdout
	}
	return &Stream{w: w}
}

// Stdout returns a Stream on os.Stdout.
func Stdout() *Stream { return NewStream(os.Stdout) }

// Stderr returns a Stream on os.Stderr.
func Stderr() *Stream { return NewStream(os.Stderr) }

// Emit writes the line. Write errors never reach the traced program; the
// first one is kept and reported by Err and Flush.
func (s *Stream) Emit(line string) {
	if !strings.HasSuffix(line, "\n") {
		line += "\n"
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := io.WriteString(s.w, line); err != nil && s.err == nil {
		s.err = err
	}
}

// Err returns the first write error, if any.
func (s *Stream) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Output returns the underlying writer.
func (s *Stream) Output() io.Writer { return s.w }

// Flush flushes the writer if it buffers, and reports the first write error.
func (s *Stream) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if flusher, ok := s.w.(interface{ Flush() error }); ok {
		if err := flusher.Flush(); err != nil {
			return err
		}
	}
	return s.err
}

// Close flushes and closes the writer if it implements io.Closer.
// The process standard streams are never closed.
func (s *Stream) Close() error {
	if err := s.Flush(); err != nil {
		return err
	}
	if s.w == os.Stdout || s.w == os.Stderr {
		return nil
	}
	if closer, ok := s.w.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
