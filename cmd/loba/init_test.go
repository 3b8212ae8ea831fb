package main

import (
	"path/filepath"
	"testing"

	"github.com/yakschuss/loba/internal/platform"
)

func TestWriteStarterConfig(t *testing.T) {
	for _, asYAML := range []bool{false, true} {
		dir := filepath.Join(t.TempDir(), "nested")
		path, err := writeStarterConfig(dir, asYAML, false)
		if err != nil {
			t.Fatalf("yaml=%v: %v", asYAML, err)
		}
		want := ".loba.toml"
		if asYAML {
			want = ".loba.yaml"
		}
		if filepath.Base(path) != want {
			t.Fatalf("wrote %s, want %s", path, want)
		}

		fc, err := platform.LoadConfig(path)
		if err != nil {
			t.Fatalf("yaml=%v: reload: %v", asYAML, err)
		}
		if fc.Color != "auto" || fc.Output != "stdout" || fc.Mode != "" || fc.ProductionOK {
			t.Fatalf("yaml=%v: reloaded %+v", asYAML, fc)
		}

		if _, err := writeStarterConfig(dir, asYAML, false); err == nil {
			t.Fatalf("yaml=%v: second write should refuse to overwrite", asYAML)
		}
		if _, err := writeStarterConfig(dir, asYAML, true); err != nil {
			t.Fatalf("yaml=%v: forced write: %v", asYAML, err)
		}
	}
}
