// Package loba provides throwaway call-site tracing for debugging sessions.
//
// Two kinds of notice are printed, one line each:
//
//	loba.Ts()
//	//=> [TIMESTAMP] #=0001, diff=0.000463, at=1451615389.505411    	(in=/src/hello.go:12:in 'hello')
//
//	loba.Var("name", loba.Scope{"name": name})
//	//=> [HelloWorld#hello] name: Charlie    	(in /src/hello.go:13:in 'hello')
//
// Statements are meant to be added and removed by hand; put them at the far
// left of the line so they are easy to find again.
//
// # Caller identity
//
// The caller tag is resolved from the live stack. A method with a receiver
// is shown as [Type#method]; a package-level function as [pkg.Func].
// Function literals report their enclosing function, and package
// initialization reports <anonymous method>. A Site captured with Here, or
// filled by hand, can be passed with At to skip stack inspection.
//
// # Values
//
// Val shows a value as given. Var evaluates an expression against a Scope,
// the explicit set of variables a call site exposes, and labels the output
// with the expression. Scope values of type func() any are called lazily.
// Expressions support selectors, indexing, *x, len(x) and zero-argument
// method calls:
//
//	loba.Var("user.Address.City", loba.Scope{"user": u})
//
// # Enabling
//
// Notices are suppressed when the run mode is production (LOBA_ENV, APP_ENV
// or GO_ENV, or the mode key of a .loba.toml / .loba.yaml file) unless
// ProductionOK is passed. Notices never panic and never return errors: a
// failure is reported as a "#=FAIL" line on the same sink.
//
// # Tracers
//
// The package-level functions use Default, which is created on first use
// from the nearest .loba config file. Programs that want explicit ownership
// construct their own:
//
//	tk := timekeeper.New(nil)
//	t := loba.New(loba.Config{Sink: sink.Stderr(), Keeper: tk})
//	ctx = loba.WithTracer(ctx, t)
//	loba.FromContext(ctx).Ts()
package loba
