package notice

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/yakschuss/loba/internal/markup"
)

func TestTimestamp(t *testing.T) {
	prev := time.Unix(1451615389, 505000000)
	now := time.Unix(1451615389, 505411000)
	got := Timestamp(markup.Plain, 1, now, prev, "/src/hello.go:2:in 'hello'")
	want := "[TIMESTAMP] #=0001, diff=0.000411, at=1451615389.505411    \t(in=/src/hello.go:2:in 'hello')"
	if got != want {
		t.Fatalf("Timestamp =\n%q\nwant\n%q", got, want)
	}

	got = Timestamp(markup.Plain, 12345, now.Add(500*time.Millisecond), now, "x")
	if !strings.HasPrefix(got, "[TIMESTAMP] #=12345, diff=0.500000, at=1451615390.005411") {
		t.Fatalf("wide seq timestamp = %q", got)
	}
}

func TestTimestampFailure(t *testing.T) {
	got := TimestampFailure(markup.Plain, "/src/hello.go:2:in 'hello'", errors.New("boom"))
	if got != "[TIMESTAMP] #=FAIL, in=/src/hello.go:2:in 'hello', err=boom" {
		t.Fatalf("failure = %q", got)
	}
	got = TimestampFailure(markup.Plain, "", nil)
	if got != "[TIMESTAMP] #=FAIL, in=<unknown location>, err=unknown error" {
		t.Fatalf("failure fallback = %q", got)
	}
}

func TestValue(t *testing.T) {
	loc := "/src/hello.go:3:in 'hello'"
	cases := []struct {
		label string
		value any
		want  string
	}{
		{"name:", "Charlie", "[HelloWorld#hello] name: Charlie    \t(in " + loc + ")"},
		{"", "Charlie", "[HelloWorld#hello]  Charlie    \t(in " + loc + ")"},
		{"", nil, "[HelloWorld#hello]  [nil]    \t(in " + loc + ")"},
	}
	for _, tc := range cases {
		got := Value(markup.Plain, "[HelloWorld#hello]", tc.label, tc.value, loc)
		if got != tc.want {
			t.Fatalf("Value(%q, %v) =\n%q\nwant\n%q", tc.label, tc.value, got, tc.want)
		}
	}

	got := ValueFailure(markup.Plain, "[HelloWorld#hello]", loc, errors.New(`evaluate "nope": undefined: nope`))
	if got != `[HelloWorld#hello] #=FAIL, in=`+loc+`, err=evaluate "nope": undefined: nope` {
		t.Fatalf("ValueFailure = %q", got)
	}
}

func TestLabel(t *testing.T) {
	cases := map[string]string{
		"Label":     "Label:",
		"  Name:  ": "Name:",
		"":          ":",
		"   ":       ":",
		"a b":       "a b:",
	}
	for in, want := range cases {
		if got := Label(in); got != want {
			t.Fatalf("Label(%q) = %q, want %q", in, got, want)
		}
	}
}

type named string

func (n named) String() string { return "named:" + string(n) }

func TestDisplay(t *testing.T) {
	var (
		nilPtr   *int
		nilMap   map[string]int
		nilSlice []int
		nilFunc  func()
		nilErr   error
	)
	cases := []struct {
		value any
		want  string
	}{
		{nil, NilText},
		{nilPtr, NilText},
		{nilMap, NilText},
		{nilSlice, NilText},
		{nilFunc, NilText},
		{nilErr, NilText},
		{reflect.Value{}, NilText},
		{reflect.ValueOf(7), "7"},
		{"Charlie", "Charlie"},
		{42, "42"},
		{[]int{}, "[]"},
		{named("x"), "named:x"},
		{fmt.Errorf("wrapped"), "wrapped"},
	}
	for _, tc := range cases {
		if got := Display(tc.value); got != tc.want {
			t.Fatalf("Display(%#v) = %q, want %q", tc.value, got, tc.want)
		}
	}
}

func TestEpoch(t *testing.T) {
	cases := []struct {
		t    time.Time
		want string
	}{
		{time.Unix(1451615389, 505411000), "1451615389.505411"},
		{time.Unix(1451615389, 505411600), "1451615389.505412"},
		{time.Unix(1451615389, 999999700), "1451615390.000000"},
		{time.Unix(0, 0), "0.000000"},
	}
	for _, tc := range cases {
		if got := Epoch(tc.t); got != tc.want {
			t.Fatalf("Epoch(%v) = %q, want %q", tc.t, got, tc.want)
		}
	}
}
