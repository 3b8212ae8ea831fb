package loba

// Option adjusts a single notice.
type Option func(*options)

type options struct {
	label        *string
	productionOK bool
	skip         int
	site         *Site
}

func collect(opts []Option) options {
	var o options
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// Label sets an explicit label for a value notice. Surrounding space is
// trimmed and a trailing ':' is added when missing.
func Label(s string) Option {
	return func(o *options) { o.label = &s }
}

// ProductionOK emits the notice even when the run mode is production.
func ProductionOK() Option {
	return func(o *options) { o.productionOK = true }
}

// Skip attributes the notice to a frame n levels further up, for helpers
// that wrap loba calls.
func Skip(n int) Option {
	return func(o *options) { o.skip += n }
}

// At uses site as the caller identity and location instead of inspecting
// the stack.
func At(site Site) Option {
	return func(o *options) { o.site = &site }
}
