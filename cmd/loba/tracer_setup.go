package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yakschuss/loba"
	"github.com/yakschuss/loba/internal/diag"
	"github.com/yakschuss/loba/internal/markup"
	"github.com/yakschuss/loba/sink"
)

// tracerFlags are the persistent flags that shape the tracer.
type tracerFlags struct {
	configPath   string
	color        string
	output       string
	productionOK bool
}

func readTracerFlags(cmd *cobra.Command) (tracerFlags, error) {
	flags := cmd.Root().PersistentFlags()
	var (
		tf  tracerFlags
		err error
	)
	if tf.configPath, err = flags.GetString("config"); err != nil {
		return tf, fmt.Errorf("failed to get config flag: %w", err)
	}
	if tf.color, err = flags.GetString("color"); err != nil {
		return tf, fmt.Errorf("failed to get color flag: %w", err)
	}
	if tf.output, err = flags.GetString("output"); err != nil {
		return tf, fmt.Errorf("failed to get output flag: %w", err)
	}
	if tf.productionOK, err = flags.GetBool("production-ok"); err != nil {
		return tf, fmt.Errorf("failed to get production-ok flag: %w", err)
	}
	return tf, nil
}

// resolveConfig loads the explicit config file or the nearest one above the
// working directory, then applies flag overrides. found is false when no
// file was read.
func resolveConfig(tf tracerFlags) (fc loba.FileConfig, found bool, err error) {
	if tf.configPath != "" {
		fc, err = loba.LoadConfig(tf.configPath)
		if err != nil {
			return fc, false, err
		}
		found = true
	} else {
		wd, err := os.Getwd()
		if err != nil {
			return fc, false, err
		}
		if fc, found, err = loba.DiscoverConfig(wd); err != nil {
			return fc, false, err
		}
	}

	if tf.color != "" {
		if _, err := markup.ParseMode(tf.color); err != nil {
			return fc, found, err
		}
		fc.Color = tf.color
	}
	if tf.output != "" {
		fc.Output = tf.output
	}
	fc.ProductionOK = fc.ProductionOK || tf.productionOK
	return fc, found, fc.Validate()
}

// setupTracer builds a tracer from the flags and attaches it to the command
// context. The returned cleanup closes a file destination.
func setupTracer(cmd *cobra.Command) (func(), error) {
	tf, err := readTracerFlags(cmd)
	if err != nil {
		return nil, err
	}
	fc, found, err := resolveConfig(tf)
	if err != nil {
		return nil, fmt.Errorf("invalid trace config: %w", err)
	}
	if found {
		diag.Logger().Debug("using trace config", "path", fc.Path)
	}

	tracer, err := loba.FromFile(fc)
	if err != nil {
		return nil, fmt.Errorf("failed to create tracer: %w", err)
	}
	cmd.SetContext(loba.WithTracer(cmd.Context(), tracer))

	cleanup := func() {
		s, ok := tracer.Sink().(*sink.Stream)
		if !ok {
			return
		}
		if err := s.Close(); err != nil {
			diag.Logger().Warn("trace output", "err", err)
		}
	}
	return cleanup, nil
}
