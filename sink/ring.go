package sink

import (
	"io"
	"strings"
	"sync"
)

// Ring keeps the last N lines in memory (circular buffer).
type Ring struct {
	mu       sync.RWMutex
	lines    []string
	capacity int
	head     int  // next write position
	full     bool // has wrapped around
}

// NewRing creates a Ring with the given capacity (default 256).
func NewRing(capacity int) *Ring {
	if capacity <= 0 {
		capacity = 256
	}
	return &Ring{
		lines:    make([]string, capacity),
		capacity: capacity,
	}
}

// Emit stores the line, evicting the oldest when full.
func (r *Ring) Emit(line string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lines[r.head] = line
	r.head = (r.head + 1) % r.capacity
	if r.head == 0 {
		r.full = true
	}
}

// Lines returns a copy of the stored lines in chronological order.
func (r *Ring) Lines() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if !r.full {
		out := make([]string, r.head)
		copy(out, r.lines[:r.head])
		return out
	}
	out := make([]string, r.capacity)
	copy(out, r.lines[r.head:])
	copy(out[r.capacity-r.head:], r.lines[:r.head])
	return out
}

// Len returns the number of stored lines.
func (r *Ring) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.full {
		return r.capacity
	}
	return r.head
}

// Reset drops every stored line.
func (r *Ring) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	clear(r.lines)
	r.head = 0
	r.full = false
}

// Dump writes the stored lines to w, one per line.
func (r *Ring) Dump(w io.Writer) error {
	for _, line := range r.Lines() {
		if !strings.HasSuffix(line, "\n") {
			line += "\n"
		}
		if _, err := io.WriteString(w, line); err != nil {
			return err
		}
	}
	return nil
}
