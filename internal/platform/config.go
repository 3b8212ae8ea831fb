package platform

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/yakschuss/loba/internal/markup"
)

// ConfigNames are the file names looked up in each directory, in order.
var ConfigNames = []string{".loba.toml", ".loba.yaml", ".loba.yml"}

// FileConfig is the content of a .loba config file.
type FileConfig struct {
	Path string `toml:"-" yaml:"-"`

	Mode         string `toml:"mode" yaml:"mode"`
	Color        string `toml:"color" yaml:"color"`
	Output       string `toml:"output" yaml:"output"`
	ProductionOK bool   `toml:"production_ok" yaml:"production_ok"`
}

// FindConfig walks up from startDir to locate a config file.
func FindConfig(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		for _, name := range ConfigNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, true, nil
			} else if !errors.Is(err, os.ErrNotExist) {
				return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Discover finds and loads the nearest config file above startDir.
func Discover(startDir string) (FileConfig, bool, error) {
	path, ok, err := FindConfig(startDir)
	if err != nil || !ok {
		return FileConfig{}, ok, err
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		return FileConfig{}, true, err
	}
	return cfg, true, nil
}

// LoadConfig decodes a TOML or YAML config file, chosen by extension, and
// validates it.
func LoadConfig(path string) (FileConfig, error) {
	var cfg FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		meta, err := toml.DecodeFile(path, &cfg)
		if err != nil {
			return FileConfig{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			return FileConfig{}, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
		}
	case ".yaml", ".yml":
		f, err := os.Open(path)
		if err != nil {
			return FileConfig{}, fmt.Errorf("%s: %w", path, err)
		}
		defer f.Close()
		dec := yaml.NewDecoder(f)
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return FileConfig{}, fmt.Errorf("%s: failed to parse YAML: %w", path, err)
		}
	default:
		return FileConfig{}, fmt.Errorf("%s: unsupported config format", path)
	}
	cfg.Path = path
	if err := cfg.Validate(); err != nil {
		return FileConfig{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the enumerated fields.
func (c FileConfig) Validate() error {
	if strings.TrimSpace(c.Mode) != "" {
		if _, err := ParseMode(c.Mode); err != nil {
			return err
		}
	}
	if _, err := markup.ParseMode(c.Color); err != nil {
		return err
	}
	return nil
}

// Detector returns Fixed(mode) when the file sets a mode, and the
// environment detector otherwise.
func (c FileConfig) Detector() Detector {
	if strings.TrimSpace(c.Mode) == "" {
		return EnvDetector(nil)
	}
	mode, err := ParseMode(c.Mode)
	if err != nil {
		return func() (Mode, bool, error) { return "", true, err }
	}
	return Fixed(mode)
}

// ColorMode returns the configured colour mode (Auto when unset or invalid).
func (c FileConfig) ColorMode() markup.Mode {
	mode, err := markup.ParseMode(c.Color)
	if err != nil {
		return markup.Auto
	}
	return mode
}

// OpenOutput opens the configured destination: "", "-" or "stdout" for
// standard output, "stderr", or a file path opened for appending.
func (c FileConfig) OpenOutput() (io.Writer, error) {
	switch strings.TrimSpace(c.Output) {
	case "", "-", "stdout":
		return os.Stdout, nil
	case "stderr":
		return os.Stderr, nil
	}
	path := c.Output
	if !filepath.IsAbs(path) && c.Path != "" {
		path = filepath.Join(filepath.Dir(c.Path), path)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace output: %w", err)
	}
	return f, nil
}
