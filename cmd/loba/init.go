package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/yakschuss/loba/internal/platform"
)

var (
	initYAML  bool
	initForce bool
)

func init() {
	initCmd.Flags().BoolVar(&initYAML, "yaml", false, "write .loba.yaml instead of .loba.toml")
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing config file")
}

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Write a starter .loba config file",
	Long: `Write a .loba.toml (or .loba.yaml with --yaml) holding the default
settings into dir, or the current directory when omitted. Tracing in and below
that directory picks it up.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}
		path, err := writeStarterConfig(dir, initYAML, initForce)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
		return nil
	},
}

// starterConfig is what init writes: colour follows the terminal, output goes
// to stdout, and production runs stay silent.
func starterConfig() platform.FileConfig {
	return platform.FileConfig{Color: "auto", Output: "stdout"}
}

func encodeConfig(fc platform.FileConfig, asYAML bool) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("# loba trace settings; mode may be development|test|staging|production\n")
	if asYAML {
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(fc); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	if err := toml.NewEncoder(&buf).Encode(fc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeStarterConfig(dir string, asYAML, force bool) (string, error) {
	if st, err := os.Stat(dir); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("failed to create directory %q: %w", dir, err)
		}
	} else if !st.IsDir() {
		return "", fmt.Errorf("%q is not a directory", dir)
	}

	name := platform.ConfigNames[0]
	if asYAML {
		name = platform.ConfigNames[1]
	}
	path := filepath.Join(dir, name)
	if _, err := os.Stat(path); err == nil && !force {
		return "", fmt.Errorf("config already exists: %s (use --force to overwrite)", path)
	}

	data, err := encodeConfig(starterConfig(), asYAML)
	if err != nil {
		return "", fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write config: %w", err)
	}
	return path, nil
}
