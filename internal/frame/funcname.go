package frame

import "strings"

// FuncName is a runtime function symbol split into its parts.
type FuncName struct {
	PkgPath string // import path, e.g. "github.com/acme/app"
	Pkg     string // last element of PkgPath
	Recv    string // receiver type without '*' and type arguments
	RecvPtr bool
	Func    string // enclosing named function; empty during package initialization
	Closure bool
}

// ParseFuncName splits a symbol as reported by runtime.Frame.Function.
//
//	a/b/c.F
//	a/b/c.(*T).M
//	a/b/c.T.M
//	a/b/c.(*T[...]).M.func1
//	a/b/c.F.func2.1
//	a/b/c.(*T).M-range1
//	a/b/c.Caller.(*T).M.func1   (M inlined into Caller)
//	a/b/c.(*T).M.F.func1        (F inlined into M)
//	a/b/c.glob..func1
//	a/b/c.init.func1
//	a/b/c.init.0
//	a/b/c.(*T).M-fm
//
// Closures carry the names of the functions they were inlined into. The
// enclosing function is the last segment left once closure suffixes are
// removed; a parenthesised receiver right before it makes it a method.
// "A.B.func1" is ambiguous between a value-receiver method and a package
// function B inlined into A, and is read as the method.
func ParseFuncName(full string) FuncName {
	var fn FuncName
	name := stripTypeArgs(strings.TrimSuffix(full, "-fm"))
	if name == "" {
		return fn
	}

	pkgEnd := 0
	if slash := strings.LastIndex(name, "/"); slash >= 0 {
		pkgEnd = slash + 1
	}
	dot := strings.Index(name[pkgEnd:], ".")
	if dot < 0 {
		// no package qualifier, not a Go symbol
		fn.Func = name
		return fn
	}
	dot += pkgEnd
	fn.PkgPath = strings.ReplaceAll(name[:dot], "%2e", ".")
	fn.Pkg = fn.PkgPath[strings.LastIndex(fn.PkgPath, "/")+1:]
	rest := name[dot+1:]

	if strings.HasPrefix(rest, "glob..") {
		// closure assigned to a package-level variable
		fn.Closure = true
		return fn
	}

	parts := strings.Split(rest, ".")
	for i, p := range parts {
		trimmed := trimRangeSuffix(p)
		if trimmed != p {
			parts[i] = trimmed
			fn.Closure = true
		}
	}
	for len(parts) > 1 && isClosureSegment(parts[len(parts)-1]) {
		parts = parts[:len(parts)-1]
		fn.Closure = true
	}

	n := len(parts)
	last := parts[n-1]
	switch {
	case n >= 2 && isReceiver(parts[n-2]):
		fn.Recv, fn.RecvPtr = receiver(parts[n-2])
		fn.Func = last
	case n >= 3 && isReceiver(parts[n-3]):
		// parts[n-2] is a method; last is a package function inlined into it
		fn.Func = last
	case n >= 2:
		// value receiver: pkg.T.M
		fn.Recv = parts[n-2]
		fn.Func = last
	case last == "init":
		// package initialization has no named enclosing function
	default:
		fn.Func = last
	}
	return fn
}

func isReceiver(s string) bool {
	return strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")")
}

func receiver(s string) (name string, ptr bool) {
	s = s[1 : len(s)-1]
	if strings.HasPrefix(s, "*") {
		return s[1:], true
	}
	return s, false
}

// trimRangeSuffix removes the "-rangeN" suffixes Go gives the bodies of
// range-over-func loops.
func trimRangeSuffix(s string) string {
	for {
		i := strings.LastIndex(s, "-range")
		if i <= 0 || !isDigits(s[i+len("-range"):]) {
			return s
		}
		s = s[:i]
	}
}

// isClosureSegment reports whether s names a function literal ("func3")
// or a nested literal / init index ("2").
func isClosureSegment(s string) bool {
	return isDigits(strings.TrimPrefix(s, "func"))
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// stripTypeArgs removes every bracketed type-argument list, "[...]" included.
func stripTypeArgs(name string) string {
	if !strings.Contains(name, "[") {
		return name
	}
	var sb strings.Builder
	sb.Grow(len(name))
	depth := 0
	for _, r := range name {
		switch {
		case r == '[':
			depth++
		case r == ']':
			if depth > 0 {
				depth--
			}
		case depth == 0:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
