// Package markup decorates trace lines with terminal colours.
package markup

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Mode selects when colours are applied.
type Mode string

const (
	Auto Mode = "auto" // colour only when writing to a terminal
	On   Mode = "on"
	Off  Mode = "off"
)

// ParseMode converts a string to a Mode; the empty string means Auto.
func ParseMode(s string) (Mode, error) {
	switch strings.TrimSpace(strings.ToLower(s)) {
	case "", "auto":
		return Auto, nil
	case "on", "always", "true":
		return On, nil
	case "off", "never", "false":
		return Off, nil
	default:
		return "", fmt.Errorf("invalid color mode %q (expected auto|on|off)", s)
	}
}

// Enabled reports whether output to w should be coloured.
func (m Mode) Enabled(w io.Writer) bool {
	switch m {
	case On:
		return true
	case Off:
		return false
	default:
		return IsTerminal(w)
	}
}

// IsTerminal reports whether w is a file attached to a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || f == nil {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// Styler paints the parts of a trace line. A disabled Styler returns its
// input unchanged.
type Styler struct {
	enabled bool
	header  *color.Color
	key     *color.Color
	dim     *color.Color
	tag     *color.Color
	label   *color.Color
	fail    *color.Color
}

// Plain is a Styler that never colours.
var Plain = New(false)

// New creates a Styler. Colours are forced on or off regardless of the
// fatih/color global NO_COLOR detection.
func New(enabled bool) *Styler {
	s := &Styler{
		enabled: enabled,
		header:  color.New(color.FgBlack, color.BgHiBlack),
		key:     color.New(color.FgYellow),
		dim:     color.New(color.FgHiBlack),
		tag:     color.New(color.FgGreen),
		label:   color.New(color.FgHiGreen),
		fail:    color.New(color.FgRed),
	}
	for _, c := range []*color.Color{s.header, s.key, s.dim, s.tag, s.label, s.fail} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return s
}

// Enabled reports whether the Styler colours its output.
func (s *Styler) Enabled() bool { return s != nil && s.enabled }

func (s *Styler) paint(c *color.Color, text string) string {
	if !s.Enabled() {
		return text
	}
	return c.Sprint(text)
}

// Header paints the "[TIMESTAMP]" marker.
func (s *Styler) Header(text string) string { return s.paint(s.header, text) }

// Key paints field keys such as " #=" and ", diff=".
func (s *Styler) Key(text string) string { return s.paint(s.key, text) }

// Dim paints the trailing source location.
func (s *Styler) Dim(text string) string { return s.paint(s.dim, text) }

// Tag paints the caller tag.
func (s *Styler) Tag(text string) string { return s.paint(s.tag, text) }

// Label paints the value label.
func (s *Styler) Label(text string) string { return s.paint(s.label, text) }

// Fail paints a whole failure line.
func (s *Styler) Fail(text string) string { return s.paint(s.fail, text) }
