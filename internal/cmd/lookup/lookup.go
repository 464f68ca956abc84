// Package lookup parses lookup command flags and launches the HTTP service.
package lookup

import (
	"context"
	"errors"
	"flag"
	"fmt"

	entrypoint "github.com/louisbranch/fillari-i18n/internal/platform/cmd"
	service "github.com/louisbranch/fillari-i18n/internal/services/lookup"
)

// Config holds lookup command configuration.
type Config struct {
	HTTPAddr          string `env:"FILLARI_I18N_LOOKUP_HTTP_ADDR"          envDefault:"localhost:8090"`
	Dir               string `env:"FILLARI_I18N_TRANSLATIONS_DIR"`
	App               string `env:"FILLARI_I18N_APP"`
	DBPath            string `env:"FILLARI_I18N_DB_PATH"`
	ExcludeUnfinished bool   `env:"FILLARI_I18N_LOOKUP_EXCLUDE_UNFINISHED"`
}

// ParseConfig parses environment and flags into a Config. Flags win over
// environment values.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	if fs == nil {
		return Config{}, errors.New("flag set is required")
	}
	var cfg Config
	fs.StringVar(&cfg.HTTPAddr, "http-addr", "", "lookup HTTP listen address (default $FILLARI_I18N_LOOKUP_HTTP_ADDR or localhost:8090)")
	fs.StringVar(&cfg.Dir, "dir", "", "directory of .ts files (embedded translations when empty)")
	fs.StringVar(&cfg.App, "app", "", "translation file name prefix")
	fs.StringVar(&cfg.DBPath, "db-path", "", "catalog database path (takes precedence over -dir)")
	fs.BoolVar(&cfg.ExcludeUnfinished, "exclude-unfinished", false, "serve base text instead of unreviewed translations")
	if err := entrypoint.ParseConfigFromArgs(&cfg, fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run loads translations and serves them until ctx ends.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceLookup, func(ctx context.Context) error {
		server, err := service.NewServer(ctx, service.Config{
			HTTPAddr:          cfg.HTTPAddr,
			Dir:               cfg.Dir,
			App:               cfg.App,
			DBPath:            cfg.DBPath,
			ExcludeUnfinished: cfg.ExcludeUnfinished,
		})
		if err != nil {
			return fmt.Errorf("init lookup server: %w", err)
		}
		defer server.Close()

		if err := server.ListenAndServe(ctx); err != nil {
			return fmt.Errorf("serve lookup: %w", err)
		}
		return nil
	})
}
