package main

import (
	"encoding/json"
	"fmt"
	"io"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yakschuss/loba/internal/version"
)

// buildReport is what the binary knows about itself: ldflags values first,
// then what the toolchain stamped into the build info.
type buildReport struct {
	Version   string       `json:"version"`
	Module    string       `json:"module,omitempty"`
	ModuleVer string       `json:"module_version,omitempty"`
	GoVersion string       `json:"go_version,omitempty"`
	Commit    string       `json:"commit,omitempty"`
	Dirty     bool         `json:"dirty,omitempty"`
	BuildDate string       `json:"build_date,omitempty"`
	Deps      []depVersion `json:"deps,omitempty"`
}

type depVersion struct {
	Path    string `json:"path"`
	Version string `json:"version"`
}

var (
	versionFormat string
	versionDeps   bool
)

func init() {
	versionCmd.Flags().StringVar(&versionFormat, "format", "pretty", "output format (pretty|json)")
	versionCmd.Flags().BoolVar(&versionDeps, "deps", false, "list the module versions linked into the binary")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show loba build information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format := strings.ToLower(versionFormat)
		if format != "pretty" && format != "json" {
			return fmt.Errorf("unsupported format %q (must be pretty or json)", versionFormat)
		}

		bi, _ := debug.ReadBuildInfo()
		report := newBuildReport(bi, versionDeps)
		if format == "json" {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		}
		renderBuildReport(cmd.OutOrStdout(), report, version.Colored())
		return nil
	},
}

// newBuildReport merges the ldflags variables with bi, which may be nil.
func newBuildReport(bi *debug.BuildInfo, withDeps bool) buildReport {
	r := buildReport{
		Version:   version.String(),
		Commit:    strings.TrimSpace(version.GitCommit),
		BuildDate: strings.TrimSpace(version.BuildDate),
	}
	if bi == nil {
		return r
	}
	r.GoVersion = bi.GoVersion
	r.Module = bi.Main.Path
	if v := bi.Main.Version; v != "" && v != "(devel)" {
		r.ModuleVer = v
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if r.Commit == "" {
				r.Commit = s.Value
			}
		case "vcs.time":
			if r.BuildDate == "" {
				r.BuildDate = s.Value
			}
		case "vcs.modified":
			r.Dirty = s.Value == "true"
		}
	}
	if withDeps {
		for _, d := range bi.Deps {
			if d.Replace != nil {
				d = d.Replace
			}
			r.Deps = append(r.Deps, depVersion{Path: d.Path, Version: d.Version})
		}
	}
	return r
}

// renderBuildReport prints the report; shown replaces r.Version in the
// headline so the caller can pass a coloured rendering.
func renderBuildReport(out io.Writer, r buildReport, shown string) {
	if shown == "" {
		shown = r.Version
	}
	fmt.Fprintf(out, "loba %s\n", shown)
	if r.ModuleVer != "" {
		fmt.Fprintf(out, "module: %s %s\n", r.Module, r.ModuleVer)
	}
	if r.GoVersion != "" {
		fmt.Fprintf(out, "go:     %s\n", r.GoVersion)
	}
	if r.Commit != "" {
		commit := r.Commit
		if r.Dirty {
			commit += " (modified)"
		}
		fmt.Fprintf(out, "commit: %s\n", commit)
	}
	if r.BuildDate != "" {
		fmt.Fprintf(out, "built:  %s\n", r.BuildDate)
	}
	for _, d := range r.Deps {
		fmt.Fprintf(out, "  %s %s\n", d.Path, d.Version)
	}
}
