package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolveConfigExplicitFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".loba.toml")
	data := "mode = \"production\"\ncolor = \"off\"\noutput = \"trace.log\"\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	fc, found, err := resolveConfig(tracerFlags{configPath: path})
	if err != nil || !found {
		t.Fatalf("resolveConfig: found=%v err=%v", found, err)
	}
	if fc.Path != path || fc.Mode != "production" || fc.Color != "off" || fc.ProductionOK {
		t.Fatalf("config = %+v", fc)
	}

	fc, _, err = resolveConfig(tracerFlags{configPath: path, color: "on", output: "stderr", productionOK: true})
	if err != nil {
		t.Fatalf("resolveConfig with overrides: %v", err)
	}
	if fc.Color != "on" || fc.Output != "stderr" || !fc.ProductionOK {
		t.Fatalf("overrides not applied: %+v", fc)
	}
}

func TestResolveConfigErrors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, ".loba.toml")
	if err := os.WriteFile(bad, []byte("mode = \"sometimes\"\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cases := []struct {
		name  string
		flags tracerFlags
	}{
		{"missing file", tracerFlags{configPath: filepath.Join(dir, "nope.toml")}},
		{"bad mode", tracerFlags{configPath: bad}},
		{"bad color flag", tracerFlags{configPath: filepath.Join(dir, "nope.toml"), color: "purple"}},
	}
	for _, tc := range cases {
		if _, _, err := resolveConfig(tc.flags); err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
	}
}
