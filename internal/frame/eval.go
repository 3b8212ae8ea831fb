package frame

import (
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"reflect"
	"strconv"
	"strings"
	"unicode/utf8"
)

var (
	// ErrUndefined is returned when a name or field does not resolve.
	ErrUndefined = errors.New("undefined")
	// ErrUnsupported is returned for syntax outside the evaluable subset.
	ErrUnsupported = errors.New("unsupported expression")
	// ErrNilDeref is returned when a selector or index goes through nil.
	ErrNilDeref = errors.New("nil dereference")
	// ErrPanic wraps a recovered panic, such as one raised by a method call.
	ErrPanic = errors.New("recovered panic")
)

// EvalError reports an expression that could not be evaluated in a Scope.
type EvalError struct {
	Expr string
	Err  error
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("evaluate %q: %v", e.Expr, e.Err)
}

func (e *EvalError) Unwrap() error { return e.Err }

// Scope holds the variables a call site makes inspectable, keyed by the name
// they have in that call site. A value of type func() any is called each
// time the name is evaluated.
type Scope map[string]any

// Eval evaluates expr against the scope. The supported subset is:
// identifiers, nil/true/false, basic literals, field and map-key selectors,
// zero-argument method calls, index expressions, *x, (x) and len(x).
//
// Values that are not interfaceable (unexported struct fields) are returned
// as their reflect.Value, which the fmt package prints as the held value.
func (s Scope) Eval(expr string) (result any, err error) {
	expr = strings.TrimSpace(expr)
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = &EvalError{Expr: expr, Err: fmt.Errorf("%w: %v", ErrPanic, r)}
		}
	}()

	node, err := parser.ParseExpr(expr)
	if err != nil {
		return nil, &EvalError{Expr: expr, Err: fmt.Errorf("%w: %v", ErrUnsupported, err)}
	}
	v, err := s.eval(node)
	if err != nil {
		return nil, &EvalError{Expr: expr, Err: err}
	}
	if !v.IsValid() {
		return nil, nil
	}
	if v.CanInterface() {
		return v.Interface(), nil
	}
	return v, nil
}

func (s Scope) eval(node ast.Expr) (reflect.Value, error) {
	switch e := node.(type) {
	case *ast.ParenExpr:
		return s.eval(e.X)
	case *ast.Ident:
		return s.lookup(e.Name)
	case *ast.BasicLit:
		return literal(e)
	case *ast.StarExpr:
		x, err := s.eval(e.X)
		if err != nil {
			return reflect.Value{}, err
		}
		if !x.IsValid() || x.Kind() != reflect.Pointer {
			return reflect.Value{}, fmt.Errorf("%w: cannot dereference %s", ErrUnsupported, typeName(x))
		}
		if x.IsNil() {
			return reflect.Value{}, ErrNilDeref
		}
		return x.Elem(), nil
	case *ast.SelectorExpr:
		x, err := s.eval(e.X)
		if err != nil {
			return reflect.Value{}, err
		}
		return selectField(x, e.Sel.Name)
	case *ast.IndexExpr:
		x, err := s.eval(e.X)
		if err != nil {
			return reflect.Value{}, err
		}
		idx, err := s.eval(e.Index)
		if err != nil {
			return reflect.Value{}, err
		}
		return index(x, idx)
	case *ast.CallExpr:
		return s.call(e)
	default:
		return reflect.Value{}, fmt.Errorf("%w: %T", ErrUnsupported, node)
	}
}

func (s Scope) lookup(name string) (reflect.Value, error) {
	switch name {
	case "nil":
		return reflect.Value{}, nil
	case "true":
		return reflect.ValueOf(true), nil
	case "false":
		return reflect.ValueOf(false), nil
	}
	val, ok := s[name]
	if !ok {
		return reflect.Value{}, fmt.Errorf("%w: %s", ErrUndefined, name)
	}
	if thunk, ok := val.(func() any); ok {
		val = thunk()
	}
	return reflect.ValueOf(val), nil
}

func (s Scope) call(e *ast.CallExpr) (reflect.Value, error) {
	if id, ok := e.Fun.(*ast.Ident); ok && id.Name == "len" && len(e.Args) == 1 {
		x, err := s.eval(e.Args[0])
		if err != nil {
			return reflect.Value{}, err
		}
		if x.IsValid() && x.Kind() == reflect.Pointer && x.Type().Elem().Kind() == reflect.Array {
			return reflect.ValueOf(x.Type().Elem().Len()), nil
		}
		switch x.Kind() {
		case reflect.Array, reflect.Chan, reflect.Map, reflect.Slice, reflect.String:
			return reflect.ValueOf(x.Len()), nil
		case reflect.Invalid:
			return reflect.ValueOf(0), nil
		}
		return reflect.Value{}, fmt.Errorf("%w: len of %s", ErrUnsupported, typeName(x))
	}

	sel, ok := e.Fun.(*ast.SelectorExpr)
	if !ok || len(e.Args) != 0 {
		return reflect.Value{}, fmt.Errorf("%w: only len(x) and zero-argument method calls", ErrUnsupported)
	}
	recv, err := s.eval(sel.X)
	if err != nil {
		return reflect.Value{}, err
	}
	if !recv.IsValid() {
		return reflect.Value{}, ErrNilDeref
	}
	m := methodByName(recv, sel.Sel.Name)
	if !m.IsValid() {
		return reflect.Value{}, fmt.Errorf("%w: method %s on %s", ErrUndefined, sel.Sel.Name, typeName(recv))
	}
	mt := m.Type()
	if mt.NumIn() != 0 || mt.NumOut() == 0 || mt.NumOut() > 2 {
		return reflect.Value{}, fmt.Errorf("%w: method %s has signature %s", ErrUnsupported, sel.Sel.Name, mt)
	}
	out := m.Call(nil)
	if len(out) == 2 {
		if callErr, ok := out[1].Interface().(error); ok && callErr != nil {
			return reflect.Value{}, callErr
		}
	}
	return out[0], nil
}

func methodByName(recv reflect.Value, name string) reflect.Value {
	if m := recv.MethodByName(name); m.IsValid() {
		return m
	}
	if recv.Kind() == reflect.Pointer && !recv.IsNil() {
		if m := recv.Elem().MethodByName(name); m.IsValid() {
			return m
		}
	}
	if recv.CanAddr() {
		return recv.Addr().MethodByName(name)
	}
	return reflect.Value{}
}

func selectField(x reflect.Value, name string) (reflect.Value, error) {
	x, err := indirect(x)
	if err != nil {
		return reflect.Value{}, err
	}
	switch x.Kind() {
	case reflect.Struct:
		f := x.FieldByName(name)
		if !f.IsValid() {
			return reflect.Value{}, fmt.Errorf("%w: field %s in %s", ErrUndefined, name, x.Type())
		}
		return f, nil
	case reflect.Map:
		if x.Type().Key().Kind() != reflect.String {
			return reflect.Value{}, fmt.Errorf("%w: selector on %s", ErrUnsupported, x.Type())
		}
		return mapIndex(x, reflect.ValueOf(name))
	default:
		return reflect.Value{}, fmt.Errorf("%w: selector on %s", ErrUnsupported, x.Type())
	}
}

func index(x, idx reflect.Value) (reflect.Value, error) {
	x, err := indirect(x)
	if err != nil {
		return reflect.Value{}, err
	}
	switch x.Kind() {
	case reflect.Slice, reflect.Array, reflect.String:
		i, err := toInt(idx)
		if err != nil {
			return reflect.Value{}, err
		}
		if i < 0 || i >= x.Len() {
			return reflect.Value{}, fmt.Errorf("index %d out of range [0:%d]", i, x.Len())
		}
		return x.Index(i), nil
	case reflect.Map:
		return mapIndex(x, idx)
	default:
		return reflect.Value{}, fmt.Errorf("%w: index of %s", ErrUnsupported, x.Type())
	}
}

// mapIndex follows Go semantics: a missing key yields the zero value.
func mapIndex(m, key reflect.Value) (reflect.Value, error) {
	kt := m.Type().Key()
	if !key.IsValid() {
		return reflect.Value{}, fmt.Errorf("%w: nil map key", ErrUnsupported)
	}
	if key.Type() != kt {
		if !key.Type().ConvertibleTo(kt) || isIntToString(key.Type(), kt) {
			return reflect.Value{}, fmt.Errorf("%w: key %s for %s", ErrUnsupported, key.Type(), m.Type())
		}
		key = key.Convert(kt)
	}
	if v := m.MapIndex(key); v.IsValid() {
		return v, nil
	}
	return reflect.Zero(m.Type().Elem()), nil
}

// isIntToString reports the integer-to-string conversion reflect allows,
// which yields the rune's text rather than the number.
func isIntToString(from, to reflect.Type) bool {
	if to.Kind() != reflect.String {
		return false
	}
	switch from.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	}
	return false
}

func indirect(v reflect.Value) (reflect.Value, error) {
	for v.IsValid() && (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}, ErrNilDeref
		}
		v = v.Elem()
	}
	if !v.IsValid() {
		return reflect.Value{}, ErrNilDeref
	}
	return v, nil
}

func toInt(v reflect.Value) (int, error) {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return int(v.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return int(v.Uint()), nil
	default:
		return 0, fmt.Errorf("%w: non-integer index %s", ErrUnsupported, typeName(v))
	}
}

func literal(lit *ast.BasicLit) (reflect.Value, error) {
	switch lit.Kind {
	case token.INT:
		n, err := strconv.ParseInt(lit.Value, 0, 64)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("%w: %v", ErrUnsupported, err)
		}
		return reflect.ValueOf(int(n)), nil
	case token.FLOAT:
		f, err := strconv.ParseFloat(lit.Value, 64)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("%w: %v", ErrUnsupported, err)
		}
		return reflect.ValueOf(f), nil
	case token.STRING:
		s, err := strconv.Unquote(lit.Value)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("%w: %v", ErrUnsupported, err)
		}
		return reflect.ValueOf(s), nil
	case token.CHAR:
		s, err := strconv.Unquote(lit.Value)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("%w: %v", ErrUnsupported, err)
		}
		r, _ := utf8.DecodeRuneInString(s)
		return reflect.ValueOf(r), nil
	default:
		return reflect.Value{}, fmt.Errorf("%w: literal %s", ErrUnsupported, lit.Value)
	}
}

func typeName(v reflect.Value) string {
	if !v.IsValid() {
		return "nil"
	}
	return v.Type().String()
}
