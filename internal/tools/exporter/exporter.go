// Package exporter renders translation sets into other localization formats.
package exporter

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	i18ncatalog "github.com/louisbranch/fillari-i18n/internal/platform/i18n/catalog"
	"github.com/louisbranch/fillari-i18n/internal/storage"
	storagesqlite "github.com/louisbranch/fillari-i18n/internal/storage/sqlite"
)

// Config holds configuration for the catalog exporter.
type Config struct {
	Dir               string `env:"FILLARI_I18N_TRANSLATIONS_DIR"`
	App               string `env:"FILLARI_I18N_APP"`
	DBPath            string
	Format            string
	OutDir            string
	ExcludeUnfinished bool
}

// ParseConfig parses CLI flags into a Config. Env defaults should already be
// loaded into cfg.
func ParseConfig(fs *flag.FlagSet, args []string, cfg Config) (Config, error) {
	if fs == nil {
		return Config{}, errors.New("flag set is required")
	}
	if cfg.Format == "" {
		cfg.Format = FormatGoI18nJSON
	}
	if cfg.OutDir == "" {
		cfg.OutDir = filepath.Join("out", "i18n")
	}

	fs.StringVar(&cfg.Dir, "dir", cfg.Dir, "directory of .ts files (embedded translations when empty)")
	fs.StringVar(&cfg.App, "app", cfg.App, "translation file name prefix")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "read translation sets from this catalog database instead of .ts files")
	fs.StringVar(&cfg.Format, "format", cfg.Format, "output format: "+strings.Join(DefaultRegistry().Formats(), ", "))
	fs.StringVar(&cfg.OutDir, "out", cfg.OutDir, "output directory")
	fs.BoolVar(&cfg.ExcludeUnfinished, "exclude-unfinished", cfg.ExcludeUnfinished, "leave unreviewed translations out of the export")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if strings.TrimSpace(cfg.OutDir) == "" {
		return Config{}, errors.New("out is required")
	}
	if _, ok := DefaultRegistry().Get(cfg.Format); !ok {
		return Config{}, unknownFormat(cfg.Format, DefaultRegistry().Formats())
	}
	if strings.TrimSpace(cfg.Dir) != "" && strings.TrimSpace(cfg.DBPath) != "" {
		return Config{}, errors.New("dir and db-path are mutually exclusive")
	}
	return cfg, nil
}

// Run executes the exporter using the provided Config.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if out == nil {
		out = io.Discard
	}

	opts := i18ncatalog.Options{App: cfg.App, ExcludeUnfinished: cfg.ExcludeUnfinished}
	var (
		bundle *i18ncatalog.Bundle
		err    error
	)
	switch {
	case strings.TrimSpace(cfg.DBPath) != "":
		store, openErr := storagesqlite.Open(ctx, cfg.DBPath)
		if openErr != nil {
			return fmt.Errorf("open catalog store: %w", openErr)
		}
		defer store.Close()
		bundle, err = storage.LoadBundle(ctx, store, opts)
	case strings.TrimSpace(cfg.Dir) != "":
		bundle, err = i18ncatalog.LoadDir(cfg.Dir, opts)
	default:
		bundle, err = i18ncatalog.LoadFromFS(i18ncatalog.EmbeddedFS(), opts)
	}
	if err != nil {
		return fmt.Errorf("load translation sets: %w", err)
	}

	artifacts, err := DefaultRegistry().ExportAll(bundle, cfg.Format)
	if err != nil {
		return err
	}
	for _, artifact := range artifacts {
		if err := writeArtifact(cfg.OutDir, artifact); err != nil {
			return err
		}
	}
	_, err = fmt.Fprintf(out, "exported %d locale(s) as %s into %s\n", len(artifacts), cfg.Format, cfg.OutDir)
	return err
}

func writeArtifact(outDir string, artifact Artifact) error {
	target := filepath.Join(outDir, filepath.FromSlash(artifact.Path))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", filepath.Dir(target), err)
	}
	if err := os.WriteFile(target, artifact.Content, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", target, err)
	}
	return nil
}
