package frame

import (
	"fmt"
	"strings"
)

// Site is an explicit description of a call site. It can be filled by hand
// or captured with Here, and stands in for stack inspection when supplied.
type Site struct {
	Class  string
	Method string
	Kind   Kind
	File   string
	Line   int
}

// Here captures the site of the frame skip levels above the caller.
func Here(skip int) (Site, error) {
	f, err := Caller(skip + 1)
	if err != nil {
		return Site{}, err
	}
	return f.Site(), nil
}

// Tag composes "[Class#method]" (instance level) or "[Class.method]" (class
// level), substituting the anonymous labels for empty parts.
func (s Site) Tag() string {
	class := strings.TrimSpace(s.Class)
	if class == "" {
		class = AnonymousClass
	}
	method := strings.TrimSpace(s.Method)
	if method == "" {
		method = AnonymousMethod
	}
	return "[" + class + s.Kind.Delim() + method + "]"
}

// Location renders path:line:in 'method'.
func (s Site) Location() string {
	method := s.Method
	if method == "" {
		method = AnonymousMethod
	}
	return formatLocation(s.File, s.Line, method)
}

func formatLocation(file string, line int, method string) string {
	if file == "" {
		file = "?"
	}
	return fmt.Sprintf("%s:%d:in '%s'", file, line, method)
}
