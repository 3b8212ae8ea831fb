package sink

// Multi fans each line out to several sinks, in order.
type Multi struct {
	sinks []Sink
}

// NewMulti creates a Multi; nil sinks are skipped.
func NewMulti(sinks ...Sink) *Multi {
	m := &Multi{sinks: make([]Sink, 0, len(sinks))}
	for _, s := range sinks {
		if s != nil {
			m.sinks = append(m.sinks, s)
		}
	}
	return m
}

// Emit sends the line to every sink.
func (m *Multi) Emit(line string) {
	for _, s := range m.sinks {
		s.Emit(line)
	}
}

// Flush flushes every sink that supports it and returns the first error.
func (m *Multi) Flush() error {
	var firstErr error
	for _, s := range m.sinks {
		if f, ok := s.(interface{ Flush() error }); ok {
			if err := f.Flush(); err != nil && firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// Close closes every sink that supports it and returns the first error.
func (m *Multi) Close() error {
	var firstErr error
	for _, s := range m.sinks {
		if c, ok := s.(interface{ Close() error }); ok {
			if err := c.Close(); err != nil && firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}
