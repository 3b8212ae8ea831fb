package loba

import "context"

// ctxKey is the key type for storing a Tracer in a context.
type ctxKey struct{}

// WithTracer attaches a Tracer to ctx.
func WithTracer(ctx context.Context, t *Tracer) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxKey{}, t)
}

// FromContext extracts the Tracer from ctx, falling back to Default.
func FromContext(ctx context.Context) *Tracer {
	if ctx == nil {
		return Default()
	}
	if t, ok := ctx.Value(ctxKey{}).(*Tracer); ok && t != nil {
		return t
	}
	return Default()
}
