// Package platform answers whether tracing is allowed in the embedding
// environment and loads the optional .loba config file.
package platform

import (
	"fmt"
	"os"
	"strings"
)

// Mode is the run mode reported by the embedding environment.
type Mode string

const (
	Development Mode = "development"
	Test        Mode = "test"
	Staging     Mode = "staging"
	Production  Mode = "production"
)

// ParseMode converts a string to a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.TrimSpace(strings.ToLower(s)) {
	case "development", "dev":
		return Development, nil
	case "test", "testing":
		return Test, nil
	case "staging", "stage":
		return Staging, nil
	case "production", "prod":
		return Production, nil
	default:
		return "", fmt.Errorf("invalid run mode %q (expected development|test|staging|production)", s)
	}
}

// EnvVars are the environment variables consulted, in order, for the run
// mode.
var EnvVars = []string{"LOBA_ENV", "APP_ENV", "GO_ENV"}

// Detector reports the run mode. ok is false when no environment is
// detected at all.
type Detector func() (mode Mode, ok bool, err error)

// EnvDetector detects the mode from EnvVars using lookup (os.LookupEnv when
// nil). The first non-empty variable wins.
func EnvDetector(lookup func(string) (string, bool)) Detector {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	return func() (Mode, bool, error) {
		for _, name := range EnvVars {
			v, ok := lookup(name)
			if !ok || strings.TrimSpace(v) == "" {
				continue
			}
			mode, err := ParseMode(v)
			if err != nil {
				return "", true, fmt.Errorf("%s: %w", name, err)
			}
			return mode, true, nil
		}
		return "", false, nil
	}
}

// Fixed always reports mode.
func Fixed(mode Mode) Detector {
	return func() (Mode, bool, error) { return mode, true, nil }
}

// LoggingOK reports whether a notice may be emitted. It is true when
// productionOK is set, when no environment is detected, when detection
// fails, and otherwise whenever the mode is not Production.
func LoggingOK(productionOK bool, detect Detector) bool {
	if productionOK || detect == nil {
		return true
	}
	mode, ok, err := detect()
	if err != nil || !ok {
		return true
	}
	return mode != Production
}

// Predicate binds detect into the enabled predicate used by tracers.
func Predicate(detect Detector) func(productionOK bool) bool {
	return func(productionOK bool) bool { return LoggingOK(productionOK, detect) }
}
