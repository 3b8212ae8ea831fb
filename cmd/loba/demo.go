package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/yakschuss/loba"
)

var (
	demoName    string
	demoRounds  int
	demoWorkers int
	demoSleep   time.Duration
)

func init() {
	demoCmd.Flags().StringVar(&demoName, "name", "Charlie", "name passed to the greeter")
	demoCmd.Flags().IntVar(&demoRounds, "rounds", 1, "greetings per worker")
	demoCmd.Flags().IntVar(&demoWorkers, "workers", 1, "greeters running concurrently")
	demoCmd.Flags().DurationVar(&demoSleep, "sleep", 0, "pause between greetings")
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run an instrumented greeter and print its trace lines",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if demoRounds < 1 || demoWorkers < 1 {
			return fmt.Errorf("--rounds and --workers must be at least 1")
		}
		cleanup, err := setupTracer(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		return runDemo(cmd.Context(), demoParams{
			name:    demoName,
			rounds:  demoRounds,
			workers: demoWorkers,
			sleep:   demoSleep,
		})
	},
}

type demoParams struct {
	name    string
	rounds  int
	workers int
	sleep   time.Duration
}

// runDemo greets from every worker; all of them share the tracer in ctx, so
// timestamps are numbered across workers.
func runDemo(ctx context.Context, p demoParams) error {
	tr := loba.FromContext(ctx)
	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < p.workers; w++ {
		greeter := newGreeter(tr, "Hello")
		g.Go(func() error {
			for i := 0; i < p.rounds; i++ {
				if i > 0 && !pause(ctx, p.sleep) {
					return ctx.Err()
				}
				greeter.hello(p.name)
			}
			return nil
		})
	}
	return g.Wait()
}

func pause(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

type greeter struct {
	tr       *loba.Tracer
	greeting string
}

func newGreeter(tr *loba.Tracer, greeting string) *greeter {
	tr.Val(greeting, loba.Label("greeting"))
	return &greeter{tr: tr, greeting: greeting}
}

func (g *greeter) hello(name string) string {
	g.tr.Ts()
	g.tr.Var("name", loba.Scope{"name": name})
	g.tr.Val(name)
	g.tr.Val(name, loba.Label("Label"))
	msg := g.greeting + ", " + name + "!"
	g.tr.Var("len(msg)", loba.Scope{"msg": msg})
	g.tr.Ts()
	return msg
}
