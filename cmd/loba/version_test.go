package main

import (
	"bytes"
	"runtime/debug"
	"strings"
	"testing"

	"github.com/yakschuss/loba/internal/version"
)

func TestNewBuildReport(t *testing.T) {
	origCommit, origDate := version.GitCommit, version.BuildDate
	defer func() { version.GitCommit, version.BuildDate = origCommit, origDate }()
	version.GitCommit, version.BuildDate = "", ""

	bi := &debug.BuildInfo{
		GoVersion: "go1.25.1",
		Main:      debug.Module{Path: "github.com/yakschuss/loba", Version: "v0.2.0"},
		Deps: []*debug.Module{
			{Path: "github.com/spf13/cobra", Version: "v1.10.1"},
			{Path: "github.com/fatih/color", Version: "v1.18.0", Replace: &debug.Module{Path: "example.com/color", Version: "v1.18.1"}},
		},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "abc123"},
			{Key: "vcs.time", Value: "2026-01-02T03:04:05Z"},
			{Key: "vcs.modified", Value: "true"},
		},
	}

	r := newBuildReport(bi, true)
	if r.ModuleVer != "v0.2.0" || r.Commit != "abc123" || !r.Dirty || r.BuildDate != "2026-01-02T03:04:05Z" {
		t.Fatalf("report = %+v", r)
	}
	if len(r.Deps) != 2 || r.Deps[1].Path != "example.com/color" {
		t.Fatalf("deps = %+v", r.Deps)
	}

	version.GitCommit = "ldflags"
	bi.Main.Version = "(devel)"
	r = newBuildReport(bi, false)
	if r.Commit != "ldflags" || r.ModuleVer != "" || r.Deps != nil {
		t.Fatalf("ldflags should win and devel builds carry no module version: %+v", r)
	}

	if r := newBuildReport(nil, true); r.Version != version.String() || r.GoVersion != "" {
		t.Fatalf("report without build info = %+v", r)
	}
}

func TestRenderBuildReport(t *testing.T) {
	var buf bytes.Buffer
	renderBuildReport(&buf, buildReport{
		Version:   "1.2.3",
		Module:    "github.com/yakschuss/loba",
		ModuleVer: "v1.2.3",
		Commit:    "abc123",
		Dirty:     true,
		Deps:      []depVersion{{Path: "github.com/spf13/cobra", Version: "v1.10.1"}},
	}, "")
	out := buf.String()
	for _, want := range []string{
		"loba 1.2.3\n",
		"module: github.com/yakschuss/loba v1.2.3\n",
		"commit: abc123 (modified)\n",
		"  github.com/spf13/cobra v1.10.1\n",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "built:") {
		t.Fatalf("empty build date should be omitted:\n%s", out)
	}
}
