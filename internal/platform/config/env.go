// Package config holds the configuration helpers shared by every command.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix namespaces every environment variable read by this module.
const EnvPrefix = "FILLARI_I18N_"

// EnvLookup returns the value for a key when present.
type EnvLookup func(string) (string, bool)

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	return ParseEnvWithLookup(target, nil)
}

// ParseEnvWithLookup loads configuration from lookup instead of the process
// environment. A nil lookup reads the process environment.
func ParseEnvWithLookup(target any, lookup EnvLookup) error {
	opts := env.Options{}
	if lookup != nil {
		opts.Environment = collectEnv(lookup)
	}
	if err := env.ParseWithOptions(target, opts); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// EnvOrDefault returns the first non-blank value among keys, or fallback.
func EnvOrDefault(lookup EnvLookup, keys []string, fallback string) string {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	for _, key := range keys {
		value, ok := lookup(key)
		if !ok {
			continue
		}
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return fallback
}

// collectEnv snapshots the prefixed variables visible through lookup.
func collectEnv(lookup EnvLookup) map[string]string {
	out := map[string]string{}
	for _, entry := range os.Environ() {
		key, _, _ := strings.Cut(entry, "=")
		if value, ok := lookup(key); ok {
			out[key] = value
		}
	}
	return out
}
