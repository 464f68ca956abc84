// Package tscheck runs the integrity checks over a set of .ts files.
package tscheck

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	i18ncatalog "github.com/louisbranch/fillari-i18n/internal/platform/i18n/catalog"
	"github.com/louisbranch/fillari-i18n/internal/platform/i18n/validate"
)

// ErrCheckFailed is returned when the report fails the configured threshold.
var ErrCheckFailed = errors.New("translation check failed")

// Config holds configuration for the checker.
type Config struct {
	Dir       string `env:"FILLARI_I18N_TRANSLATIONS_DIR"`
	App       string `env:"FILLARI_I18N_APP"`
	Locale    string `env:"FILLARI_I18N_MESSAGE_LOCALE"`
	JSON      bool
	Strict    bool
	Canonical bool
	Verbose   bool
}

// ParseConfig parses CLI flags into a Config. Env defaults should already be
// loaded into cfg.
func ParseConfig(fs *flag.FlagSet, args []string, cfg Config) (Config, error) {
	if fs == nil {
		return Config{}, errors.New("flag set is required")
	}
	fs.StringVar(&cfg.Dir, "dir", cfg.Dir, "directory of .ts files (embedded translations when empty)")
	fs.StringVar(&cfg.App, "app", cfg.App, "translation file name prefix")
	fs.StringVar(&cfg.Locale, "message-locale", cfg.Locale, "locale used to render finding messages")
	fs.BoolVar(&cfg.JSON, "json", false, "print the report as JSON")
	fs.BoolVar(&cfg.Strict, "strict", false, "fail on warnings as well as errors")
	fs.BoolVar(&cfg.Canonical, "canonical", false, "report files that are not in canonical TS layout")
	fs.BoolVar(&cfg.Verbose, "v", false, "include info findings in text output")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run checks the configured translation sets and prints the report to out.
// It returns ErrCheckFailed when the report fails.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if out == nil {
		out = io.Discard
	}
	if err := ctx.Err(); err != nil {
		return err
	}

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
		return fmt.Errorf("load translation sets: %w", err)
	}

	report := validate.Check(bundle, validate.Options{Canonical: cfg.Canonical, MessageLocale: cfg.Locale})
	if cfg.JSON {
		err = writeJSON(out, report)
	} else {
		err = writeText(out, report, cfg.Verbose)
	}
	if err != nil {
		return err
	}
	if report.Failed(cfg.Strict) {
		return ErrCheckFailed
	}
	return nil
}

func writeJSON(out io.Writer, report validate.Report) error {
	if report.Findings == nil {
		report.Findings = []validate.Finding{}
	}
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(report); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}

func writeText(out io.Writer, report validate.Report, verbose bool) error {
	threshold := validate.SeverityWarning
	if verbose {
		threshold = validate.SeverityInfo
	}
	for _, finding := range report.AtLeast(threshold) {
		location := finding.File
		if finding.MessageID != "" {
			location += " " + finding.MessageID
		}
		if _, err := fmt.Fprintf(out, "%s: %s [%s] %s\n", finding.Severity, location, finding.Code, finding.Message); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(out, report.Summary())
	return err
}
