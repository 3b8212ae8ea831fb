// Package frame resolves who and where a call site is: the enclosing type and
// method, the method kind and the source location of a frame on the live
// stack. It also evaluates expressions against a Scope of variables the call
// site chose to expose.
package frame

import (
	"errors"
	"fmt"
	"runtime"
)

// Fallback labels used when a frame has no usable identity.
const (
	AnonymousClass  = "<anonymous class>"
	AnonymousMethod = "<anonymous method>"
)

// Kind tells whether the active function is bound to an instance or to its
// type (package-level functions are type-level in Go terms).
type Kind uint8

const (
	InstanceLevel Kind = iota // method with a receiver
	ClassLevel                // package-level function
)

// String returns the string representation of Kind.
func (k Kind) String() string {
	switch k {
	case InstanceLevel:
		return "instance"
	case ClassLevel:
		return "class"
	default:
		return "unknown"
	}
}

// Delim returns the separator used between class and method in a caller tag.
func (k Kind) Delim() string {
	if k == ClassLevel {
		return "."
	}
	return "#"
}

// ErrFrameNotLive is returned when the requested depth is above the top of
// the stack.
var ErrFrameNotLive = errors.New("frame not live")

// ResolveError reports a failed frame lookup.
type ResolveError struct {
	Skip int
	Err  error
}

func (e *ResolveError) Error() string {
	return fmt.Sprintf("resolve frame at depth %d: %v", e.Skip, e.Err)
}

func (e *ResolveError) Unwrap() error { return e.Err }

// Frame is one activation record captured from the live stack.
// It is a snapshot: only valid as a description of the call that produced it.
type Frame struct {
	Function string // fully qualified symbol
	File     string
	Line     int
}

// Caller returns the frame skip levels above the function calling Caller;
// skip 0 is that function itself.
func Caller(skip int) (Frame, error) {
	if skip < 0 {
		return Frame{}, &ResolveError{Skip: skip, Err: ErrFrameNotLive}
	}
	var pcs [1]uintptr
	// skip runtime.Callers and Caller
	if runtime.Callers(skip+2, pcs[:]) == 0 {
		return Frame{}, &ResolveError{Skip: skip, Err: ErrFrameNotLive}
	}
	fr, _ := runtime.CallersFrames(pcs[:]).Next()
	return Frame{Function: fr.Function, File: fr.File, Line: fr.Line}, nil
}

// Name parses the frame's function symbol.
func (f Frame) Name() FuncName { return ParseFuncName(f.Function) }

// Class returns the receiver type name, the package name for package-level
// functions, or AnonymousClass.
func (f Frame) Class() string {
	n := f.Name()
	switch {
	case n.Recv != "":
		return n.Recv
	case n.Pkg != "":
		return n.Pkg
	default:
		return AnonymousClass
	}
}

// Method returns the enclosing named function or AnonymousMethod.
func (f Frame) Method() string {
	if n := f.Name(); n.Func != "" {
		return n.Func
	}
	return AnonymousMethod
}

// Kind returns InstanceLevel when the function has a receiver.
func (f Frame) Kind() Kind {
	if f.Name().Recv != "" {
		return InstanceLevel
	}
	return ClassLevel
}

// Location renders the frame like a stack-trace entry: path:line:in 'method'.
func (f Frame) Location() string {
	return formatLocation(f.File, f.Line, f.Method())
}

// Site converts the frame into an explicit call-site description.
func (f Frame) Site() Site {
	n := f.Name()
	s := Site{Class: f.Class(), Method: f.Method(), File: f.File, Line: f.Line}
	if n.Recv == "" {
		s.Kind = ClassLevel
	}
	return s
}

// ClassName resolves the class of the frame skip levels above the caller.
func ClassName(skip int) string {
	f, err := Caller(skip + 1)
	if err != nil {
		return AnonymousClass
	}
	return f.Class()
}

// MethodName resolves the method of the frame skip levels above the caller.
func MethodName(skip int) string {
	f, err := Caller(skip + 1)
	if err != nil {
		return AnonymousMethod
	}
	return f.Method()
}

// MethodKind resolves the method kind of the frame skip levels above the
// caller. Unresolvable frames are reported as InstanceLevel.
func MethodKind(skip int) Kind {
	f, err := Caller(skip + 1)
	if err != nil {
		return InstanceLevel
	}
	return f.Kind()
}

// SourceLocation resolves the location of the frame skip levels above the
// caller.
func SourceLocation(skip int) (string, error) {
	f, err := Caller(skip + 1)
	if err != nil {
		return "", err
	}
	return f.Location(), nil
}

// CallerTag composes "[Class#method]" or "[Class.method]" for the frame
// skip levels above the caller.
func CallerTag(skip int) string {
	f, err := Caller(skip + 1)
	if err != nil {
		return Site{}.Tag()
	}
	return f.Site().Tag()
}
