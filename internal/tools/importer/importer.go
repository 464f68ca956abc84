// Package importer loads Qt translation sets into the catalog database.
package importer

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	i18ncatalog "github.com/louisbranch/fillari-i18n/internal/platform/i18n/catalog"
	"github.com/louisbranch/fillari-i18n/internal/platform/i18n/validate"
	"github.com/louisbranch/fillari-i18n/internal/storage"
	storagesqlite "github.com/louisbranch/fillari-i18n/internal/storage/sqlite"
)

// Config holds configuration for the catalog importer.
type Config struct {
	Dir          string `env:"FILLARI_I18N_TRANSLATIONS_DIR"`
	App          string `env:"FILLARI_I18N_APP"`
	DBPath       string `env:"FILLARI_I18N_DB_PATH"`
	DryRun       bool
	SkipValidate bool
	AllowInvalid bool
}

// ParseConfig parses CLI flags into a Config. Env defaults should already be
// loaded into cfg.
func ParseConfig(fs *flag.FlagSet, args []string, cfg Config) (Config, error) {
	if fs == nil {
		return Config{}, errors.New("flag set is required")
	}
	if strings.TrimSpace(cfg.DBPath) == "" {
		cfg.DBPath = filepath.Join("data", "catalog.db")
	}

	fs.StringVar(&cfg.Dir, "dir", cfg.Dir, "directory of .ts files (embedded translations when empty)")
	fs.StringVar(&cfg.App, "app", cfg.App, "translation file name prefix")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "catalog database path")
	fs.BoolVar(&cfg.DryRun, "dry-run", false, "validate without writing to the database")
	fs.BoolVar(&cfg.SkipValidate, "skip-validate", false, "import without running the integrity checks")
	fs.BoolVar(&cfg.AllowInvalid, "allow-invalid", false, "import even when the integrity checks report errors")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if !cfg.DryRun && strings.TrimSpace(cfg.DBPath) == "" {
		return Config{}, errors.New("db-path is required")
	}
	return cfg, nil
}

// Run executes the importer using the provided Config.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if out == nil {
		out = io.Discard
	}

	bundle, err := loadBundle(cfg)
	if err != nil {
		return err
	}

	if !cfg.SkipValidate {
		report := validate.Check(bundle, validate.Options{})
		for _, finding := range report.AtLeast(validate.SeverityWarning) {
			if _, err := fmt.Fprintf(out, "%s %s: %s\n", finding.Severity, finding.Code, finding.Message); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(out, report.Summary()); err != nil {
			return err
		}
		if report.HasErrors() && !cfg.AllowInvalid {
			return fmt.Errorf("translation sets failed validation with %d error(s)", report.Count(validate.SeverityError))
		}
	}

	locales := bundle.Locales()
	if cfg.DryRun {
		_, err = fmt.Fprintf(out, "validated %d locale(s)\n", len(locales))
		return err
	}

	store, err := storagesqlite.Open(ctx, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open catalog store: %w", err)
	}
	defer store.Close()

	now := time.Now().UTC()
	if err := Import(ctx, store, bundle, now); err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "imported %d locale(s) into %s\n", len(locales), cfg.DBPath)
	return err
}

// Import makes the locales of bundle the complete content of store. Locales
// stored by an earlier import but no longer present in bundle are removed.
func Import(ctx context.Context, store storage.CatalogStore, bundle *i18ncatalog.Bundle, importedAt time.Time) error {
	if store == nil {
		return errors.New("catalog store is required")
	}
	locales := bundle.Locales()
	sets := make([]storage.CatalogSet, 0, len(locales))
	for _, locale := range locales {
		if err := ctx.Err(); err != nil {
			return err
		}
		localeCatalog, ok := bundle.Catalog(locale)
		if !ok {
			continue
		}
		record, messages := storage.FromFile(locale, localeCatalog.FileName, localeCatalog.File, importedAt)
		sets = append(sets, storage.CatalogSet{Catalog: record, Messages: messages})
	}
	if err := store.ReplaceCatalogs(ctx, sets); err != nil {
		return fmt.Errorf("import %s: %w", strings.Join(locales, ", "), err)
	}
	return nil
}

func loadBundle(cfg Config) (*i18ncatalog.Bundle, error) {
	opts := i18ncatalog.Options{App: cfg.App}
	var (
		bundle *i18ncatalog.Bundle
		err    error
	)
	if strings.TrimSpace(cfg.Dir) == "" {
		bundle, err = i18ncatalog.LoadFromFS(i18ncatalog.EmbeddedFS(), opts)
	} else {
		bundle, err = i18ncatalog.LoadDir(cfg.Dir, opts)
	}
	if err != nil {
		return nil, fmt.Errorf("load translation sets: %w", err)
	}
	return bundle, nil
}
