package loba

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/yakschuss/loba/internal/frame"
	"github.com/yakschuss/loba/internal/markup"
	"github.com/yakschuss/loba/internal/notice"
	"github.com/yakschuss/loba/internal/platform"
	"github.com/yakschuss/loba/sink"
	"github.com/yakschuss/loba/timekeeper"
)

// Scope is the set of variables a call site exposes to Var, by name.
type Scope = frame.Scope

// Site is an explicit caller identity and location.
type Site = frame.Site

// Kind is the method kind of a Site.
type Kind = frame.Kind

const (
	InstanceLevel = frame.InstanceLevel
	ClassLevel    = frame.ClassLevel
)

// ColorMode selects when output is coloured.
type ColorMode = markup.Mode

const (
	ColorAuto = markup.Auto
	ColorOn   = markup.On
	ColorOff  = markup.Off
)

var (
	ErrFrameNotLive = frame.ErrFrameNotLive
	ErrUndefined    = frame.ErrUndefined
	ErrUnsupported  = frame.ErrUnsupported
	ErrNilDeref     = frame.ErrNilDeref

	// ErrPanic wraps a panic recovered while producing a notice or
	// evaluating a Var expression.
	ErrPanic = frame.ErrPanic
)

// Config holds tracer configuration.
type Config struct {
	Sink    sink.Sink                   // destination (stdout when nil)
	Enabled func(productionOK bool) bool // gate (run-mode detection when nil)
	Keeper  *timekeeper.TimeKeeper      // shared counter (a new one when nil)
	Color   ColorMode                   // auto when empty
	Now     func() time.Time            // clock for a new Keeper
}

// Tracer emits timestamp and value notices to one sink.
type Tracer struct {
	sink    sink.Sink
	enabled func(bool) bool
	keeper  *timekeeper.TimeKeeper
	styler  *markup.Styler
}

// New creates a Tracer based on Config.
func New(cfg Config) *Tracer {
	t := &Tracer{
		sink:    cfg.Sink,
		enabled: cfg.Enabled,
		keeper:  cfg.Keeper,
	}
	if t.sink == nil {
		t.sink = sink.Stdout()
	}
	if t.enabled == nil {
		t.enabled = platform.Predicate(platform.EnvDetector(nil))
	}
	if t.keeper == nil {
		t.keeper = timekeeper.New(cfg.Now)
	}

	var out io.Writer
	if o, ok := t.sink.(sink.Outputter); ok {
		out = o.Output()
	}
	t.styler = markup.New(cfg.Color.Enabled(out))
	return t
}

// Sink returns the tracer's destination.
func (t *Tracer) Sink() sink.Sink { return t.sink }

// Keeper returns the tracer's counter.
func (t *Tracer) Keeper() *timekeeper.TimeKeeper { return t.keeper }

// Ts emits a numbered timestamp with the time elapsed since the previous
// successful one.
func (t *Tracer) Ts(opts ...Option) { t.ts(2, opts) }

// Val emits value, tagged with the calling method and location.
func (t *Tracer) Val(value any, opts ...Option) {
	t.val(2, valueArg{value: value}, opts)
}

// Var evaluates expr in scope and emits the result labelled "expr:".
func (t *Tracer) Var(expr string, scope Scope, opts ...Option) {
	t.val(2, valueArg{expr: expr, scope: scope, byName: true}, opts)
}

// ts attributes the notice to the frame depth levels above ts.
func (t *Tracer) ts(depth int, opts []Option) {
	o := collect(opts)
	if !t.enabled(o.productionOK) {
		return
	}

	var location string
	defer func() {
		if r := recover(); r != nil {
			t.sink.Emit(notice.TimestampFailure(t.styler, location, fmt.Errorf("%w: %v", ErrPanic, r)))
		}
	}()

	site, err := t.site(depth+o.skip, o)
	if err == nil {
		location = site.Location()
	}

	t.keeper.Stamp(func(tick timekeeper.Tick) bool {
		if err != nil {
			t.sink.Emit(notice.TimestampFailure(t.styler, "", err))
			return false
		}
		t.sink.Emit(notice.Timestamp(t.styler, tick.Seq, tick.Now, tick.Prev, location))
		return true
	})
}

type valueArg struct {
	value  any
	expr   string
	scope  Scope
	byName bool
}

// val attributes the notice to the frame depth levels above val.
func (t *Tracer) val(depth int, arg valueArg, opts []Option) {
	o := collect(opts)
	if !t.enabled(o.productionOK) {
		return
	}

	site, err := t.site(depth+o.skip, o)
	if err != nil {
		t.sink.Emit(notice.ValueFailure(t.styler, Site{}.Tag(), "", err))
		return
	}
	tag, location := site.Tag(), site.Location()

	defer func() {
		if r := recover(); r != nil {
			t.sink.Emit(notice.ValueFailure(t.styler, tag, location, fmt.Errorf("%w: %v", ErrPanic, r)))
		}
	}()

	var label string
	value := arg.value
	if arg.byName {
		label = strings.TrimSpace(arg.expr) + ":"
		if value, err = arg.scope.Eval(arg.expr); err != nil {
			t.sink.Emit(notice.ValueFailure(t.styler, tag, location, err))
			return
		}
	}
	if o.label != nil {
		label = notice.Label(*o.label)
	}

	t.sink.Emit(notice.Value(t.styler, tag, label, value, location))
}

// site returns the explicit site from At, or resolves the frame skip levels
// above the caller of site.
func (t *Tracer) site(skip int, o options) (Site, error) {
	if o.site != nil {
		return *o.site, nil
	}
	f, err := frame.Caller(skip + 1)
	if err != nil {
		return Site{}, err
	}
	return f.Site(), nil
}
