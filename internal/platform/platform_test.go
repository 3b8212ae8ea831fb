package platform

import (
	"errors"
	"testing"
)

func TestParseMode(t *testing.T) {
	cases := map[string]Mode{
		"development": Development,
		"DEV":         Development,
		"test":        Test,
		"staging":     Staging,
		" Production": Production,
		"prod":        Production,
	}
	for in, want := range cases {
		got, err := ParseMode(in)
		if err != nil {
			t.Fatalf("ParseMode(%q) error: %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseMode(%q) = %q, want %q", in, got, want)
		}
	}
	if _, err := ParseMode("qa"); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
}

func envMap(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestEnvDetector(t *testing.T) {
	mode, ok, err := EnvDetector(envMap(nil))()
	if ok || err != nil || mode != "" {
		t.Fatalf("empty env: mode=%q ok=%v err=%v", mode, ok, err)
	}

	mode, ok, err = EnvDetector(envMap(map[string]string{"LOBA_ENV": " ", "APP_ENV": "production", "GO_ENV": "development"}))()
	if !ok || err != nil || mode != Production {
		t.Fatalf("APP_ENV should win over GO_ENV: mode=%q ok=%v err=%v", mode, ok, err)
	}

	_, ok, err = EnvDetector(envMap(map[string]string{"GO_ENV": "qa"}))()
	if !ok || err == nil {
		t.Fatalf("invalid value should be an error, ok=%v err=%v", ok, err)
	}
}

func TestEnvDetectorReadsProcessEnv(t *testing.T) {
	t.Setenv("LOBA_ENV", "production")
	mode, ok, err := EnvDetector(nil)()
	if !ok || err != nil || mode != Production {
		t.Fatalf("mode=%q ok=%v err=%v", mode, ok, err)
	}
}

func TestLoggingOK(t *testing.T) {
	failing := Detector(func() (Mode, bool, error) { return "", true, errors.New("no env") })
	undetected := Detector(func() (Mode, bool, error) { return "", false, nil })
	cases := []struct {
		name         string
		productionOK bool
		detect       Detector
		want         bool
	}{
		{"forced in production", true, Fixed(Production), true},
		{"production", false, Fixed(Production), false},
		{"development", false, Fixed(Development), true},
		{"staging", false, Fixed(Staging), true},
		{"no detector", false, nil, true},
		{"no environment", false, undetected, true},
		{"detection failure", false, failing, true},
	}
	for _, tc := range cases {
		if got := LoggingOK(tc.productionOK, tc.detect); got != tc.want {
			t.Fatalf("%s: LoggingOK = %v, want %v", tc.name, got, tc.want)
		}
	}

	enabled := Predicate(Fixed(Production))
	if enabled(false) || !enabled(true) {
		t.Fatalf("predicate should gate production unless forced")
	}
}
