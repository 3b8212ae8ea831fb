package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/yakschuss/loba/internal/platform"
)

var envFormat string

func init() {
	envCmd.Flags().StringVar(&envFormat, "format", "pretty", "output format (pretty|json|yaml)")
}

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Show the resolved trace config and whether tracing is enabled",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format := strings.ToLower(envFormat)
		switch format {
		case "pretty", "json", "yaml":
			// supported
		default:
			return fmt.Errorf("unsupported format %q (must be pretty, json or yaml)", envFormat)
		}

		tf, err := readTracerFlags(cmd)
		if err != nil {
			return err
		}
		fc, found, err := resolveConfig(tf)
		if err != nil {
			return fmt.Errorf("invalid trace config: %w", err)
		}
		report := collectEnvReport(fc, found)

		out := cmd.OutOrStdout()
		switch format {
		case "json":
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		case "yaml":
			enc := yaml.NewEncoder(out)
			enc.SetIndent(2)
			if err := enc.Encode(report); err != nil {
				return err
			}
			return enc.Close()
		}
		renderEnvPretty(out, report)
		return nil
	},
}

type envReport struct {
	Config       string `json:"config" yaml:"config"`
	Mode         string `json:"mode" yaml:"mode"`
	ModeSource   string `json:"mode_source" yaml:"mode_source"`
	ModeError    string `json:"mode_error,omitempty" yaml:"mode_error,omitempty"`
	ProductionOK bool   `json:"production_ok" yaml:"production_ok"`
	Enabled      bool   `json:"enabled" yaml:"enabled"`
	Color        string `json:"color" yaml:"color"`
	Output       string `json:"output" yaml:"output"`
}

func collectEnvReport(fc platform.FileConfig, found bool) envReport {
	r := envReport{
		Config:       "none",
		ModeSource:   "environment (" + strings.Join(platform.EnvVars, ", ") + ")",
		ProductionOK: fc.ProductionOK,
		Color:        string(fc.ColorMode()),
		Output:       strings.TrimSpace(fc.Output),
	}
	if found {
		r.Config = fc.Path
	}
	if strings.TrimSpace(fc.Mode) != "" {
		r.ModeSource = "config"
	}
	if r.Output == "" {
		r.Output = "stdout"
	}

	detect := fc.Detector()
	mode, ok, err := detect()
	switch {
	case err != nil:
		r.Mode = "unknown"
		r.ModeError = err.Error()
	case !ok:
		r.Mode = "undetected"
	default:
		r.Mode = string(mode)
	}
	r.Enabled = platform.LoggingOK(fc.ProductionOK, detect)
	return r
}

func renderEnvPretty(out io.Writer, r envReport) {
	fmt.Fprintf(out, "config:        %s\n", r.Config)
	fmt.Fprintf(out, "mode:          %s (from %s)\n", r.Mode, r.ModeSource)
	if r.ModeError != "" {
		fmt.Fprintf(out, "mode error:    %s\n", r.ModeError)
	}
	fmt.Fprintf(out, "production_ok: %t\n", r.ProductionOK)
	fmt.Fprintf(out, "color:         %s\n", r.Color)
	fmt.Fprintf(out, "output:        %s\n", r.Output)
	if r.Enabled {
		fmt.Fprintln(out, "tracing:       enabled")
	} else {
		fmt.Fprintln(out, "tracing:       disabled (production; set production_ok or pass --production-ok)")
	}
}
