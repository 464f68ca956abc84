package config

import (
	"strings"
	"testing"
)

type envTestConfig struct {
	Port int    `env:"FILLARI_I18N_TEST_PORT" envDefault:"123"`
	Dir  string `env:"FILLARI_I18N_TEST_DIR" envDefault:"translations"`
}

func TestParseEnvDefaults(t *testing.T) {
	var cfg envTestConfig

	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Port != 123 {
		t.Fatalf("expected default port 123, got %d", cfg.Port)
	}
	if cfg.Dir != "translations" {
		t.Fatalf("expected default dir translations, got %q", cfg.Dir)
	}
}

func TestParseEnvError(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("FILLARI_I18N_TEST_PORT", "not-an-int")

	err := ParseEnv(&cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}

func TestParseEnvWithLookupFiltersVariables(t *testing.T) {
	t.Setenv("FILLARI_I18N_TEST_DIR", "from-process")
	var cfg envTestConfig
	lookup := func(string) (string, bool) { return "", false }
	if err := ParseEnvWithLookup(&cfg, lookup); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Dir != "translations" {
		t.Fatalf("expected lookup to hide process value, got %q", cfg.Dir)
	}
}

func TestEnvOrDefault(t *testing.T) {
	lookup := func(key string) (string, bool) {
		switch key {
		case "BLANK":
			return "   ", true
		case "SET":
			return " value ", true
		}
		return "", false
	}
	if got := EnvOrDefault(lookup, []string{"MISSING", "BLANK", "SET"}, "fallback"); got != "value" {
		t.Fatalf("EnvOrDefault = %q, want value", got)
	}
	if got := EnvOrDefault(lookup, []string{"MISSING"}, "fallback"); got != "fallback" {
		t.Fatalf("EnvOrDefault = %q, want fallback", got)
	}
}
