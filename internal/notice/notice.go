// Package notice renders the lines emitted by timestamp and value notices.
package notice

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/yakschuss/loba/internal/markup"
)

// NilText is shown in place of a nil value.
const NilText = "[nil]"

// UnknownLocation is used in failure lines when the caller cannot be located.
const UnknownLocation = "<unknown location>"

// Timestamp renders
//
//	[TIMESTAMP] #=0001, diff=0.000463, at=1451615389.505411    \t(in=path:2:in 'hello')
func Timestamp(st *markup.Styler, seq uint64, now, prev time.Time, location string) string {
	var sb strings.Builder
	sb.WriteString(st.Header("[TIMESTAMP]"))
	sb.WriteString(st.Key(" #="))
	sb.WriteString(fmt.Sprintf("%04d", seq))
	sb.WriteString(st.Key(", diff="))
	sb.WriteString(fmt.Sprintf("%.6f", now.Sub(prev).Seconds()))
	sb.WriteString(st.Key(", at="))
	sb.WriteString(Epoch(now))
	sb.WriteString(st.Dim("    \t(in=" + location + ")"))
	return sb.String()
}

// TimestampFailure renders
//
//	[TIMESTAMP] #=FAIL, in=path:2:in 'hello', err=reason
func TimestampFailure(st *markup.Styler, location string, err error) string {
	return st.Fail(fmt.Sprintf("[TIMESTAMP] #=FAIL, in=%s, err=%s", orUnknown(location), describe(err)))
}

// Value renders
//
//	[HelloWorld#hello] name: Charlie    \t(in path:3:in 'hello')
//
// An empty label leaves two spaces between tag and value.
func Value(st *markup.Styler, tag, label string, value any, location string) string {
	var sb strings.Builder
	sb.WriteString(st.Tag(tag + " "))
	sb.WriteString(st.Label(label + " "))
	sb.WriteString(Display(value))
	sb.WriteString(st.Dim("    \t(in " + location + ")"))
	return sb.String()
}

// ValueFailure renders
//
//	[HelloWorld#hello] #=FAIL, in=path:3:in 'hello', err=reason
func ValueFailure(st *markup.Styler, tag, location string, err error) string {
	return st.Fail(fmt.Sprintf("%s #=FAIL, in=%s, err=%s", tag, orUnknown(location), describe(err)))
}

// Label normalises an explicit label: surrounding space is trimmed and a
// trailing colon added when missing, so a blank label becomes ":".
func Label(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, ":") {
		return s
	}
	return s + ":"
}

// Display formats a value the way the notice shows it; nil, including typed
// nil pointers, maps, slices, funcs, channels and interfaces, shows as NilText.
func Display(v any) string {
	rv, ok := v.(reflect.Value)
	if !ok {
		rv = reflect.ValueOf(v)
	}
	if isNil(rv) {
		return NilText
	}
	return fmt.Sprint(v)
}

// Epoch formats t as Unix seconds with six decimals, rounded to the
// microsecond.
func Epoch(t time.Time) string {
	t = t.Round(time.Microsecond)
	return fmt.Sprintf("%d.%06d", t.Unix(), t.Nanosecond()/int(time.Microsecond))
}

func isNil(rv reflect.Value) bool {
	if !rv.IsValid() {
		return true
	}
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface, reflect.UnsafePointer:
		return rv.IsNil()
	}
	return false
}

func orUnknown(location string) string {
	if location == "" {
		return UnknownLocation
	}
	return location
}

func describe(err error) string {
	if err == nil {
		return "unknown error"
	}
	return err.Error()
}
