package loba

import (
	"sync"
	"sync/atomic"

	"github.com/yakschuss/loba/internal/diag"
	"github.com/yakschuss/loba/internal/frame"
	"github.com/yakschuss/loba/internal/platform"
	"github.com/yakschuss/loba/sink"
)

var (
	defaultOnce   sync.Once
	defaultTracer atomic.Pointer[Tracer]
)

// Default returns the package-level tracer, creating it on first use from
// the nearest .loba config file above the working directory. Config
// problems are logged and the built-in defaults used instead.
func Default() *Tracer {
	if t := defaultTracer.Load(); t != nil {
		return t
	}
	defaultOnce.Do(func() {
		defaultTracer.CompareAndSwap(nil, newDefault())
	})
	return defaultTracer.Load()
}

// SetDefault replaces the package-level tracer; nil rebuilds it from the
// environment.
func SetDefault(t *Tracer) {
	if t == nil {
		t = newDefault()
	}
	defaultTracer.Store(t)
}

func newDefault() *Tracer {
	fc, ok, err := platform.Discover(".")
	if err != nil {
		diag.Logger().Warn("ignoring trace config", "err", err)
		return New(Config{})
	}
	if !ok {
		return New(Config{})
	}
	t, err := FromFile(fc)
	if err != nil {
		diag.Logger().Warn("ignoring trace config", "path", fc.Path, "err", err)
		return New(Config{})
	}
	return t
}

// FileConfig is the content of a .loba.toml or .loba.yaml file.
type FileConfig = platform.FileConfig

// LoadConfig reads a config file.
func LoadConfig(path string) (FileConfig, error) { return platform.LoadConfig(path) }

// DiscoverConfig finds and reads the nearest config file above dir.
func DiscoverConfig(dir string) (FileConfig, bool, error) { return platform.Discover(dir) }

// FromFile creates a Tracer from a config file's settings.
func FromFile(fc FileConfig) (*Tracer, error) {
	if err := fc.Validate(); err != nil {
		return nil, err
	}
	w, err := fc.OpenOutput()
	if err != nil {
		return nil, err
	}
	enabled := platform.Predicate(fc.Detector())
	if fc.ProductionOK {
		enabled = func(bool) bool { return true }
	}
	return New(Config{
		Sink:    sink.NewStream(w),
		Enabled: enabled,
		Color:   fc.ColorMode(),
	}), nil
}

// Ts emits a timestamp notice through Default.
func Ts(opts ...Option) { Default().ts(2, opts) }

// Val emits a value notice through Default.
func Val(value any, opts ...Option) {
	Default().val(2, valueArg{value: value}, opts)
}

// Var evaluates expr in scope and emits it through Default.
func Var(expr string, scope Scope, opts ...Option) {
	Default().val(2, valueArg{expr: expr, scope: scope, byName: true}, opts)
}

// Here captures the caller's identity and location, for use with At.
func Here() Site {
	s, err := frame.Here(1)
	if err != nil {
		return Site{}
	}
	return s
}
