// Package i18nstatus renders translator-friendly status artifacts for the
// translation sets.
package i18nstatus

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	i18ncatalog "github.com/louisbranch/fillari-i18n/internal/platform/i18n/catalog"
	"github.com/louisbranch/fillari-i18n/internal/platform/i18n/placeholder"
	"github.com/louisbranch/fillari-i18n/internal/platform/i18n/tsfile"
)

// Report is the full status document.
type Report struct {
	App        string         `json:"app"`
	BaseLocale string         `json:"base_locale"`
	Locales    []LocaleStatus `json:"locales"`
}

// LocaleStatus summarizes one translation set against the base locale.
type LocaleStatus struct {
	Locale                string   `json:"locale"`
	File                  string   `json:"file"`
	BaseKeys              int      `json:"base_keys"`
	Translated            int      `json:"translated"`
	Unfinished            int      `json:"unfinished"`
	Missing               int      `json:"missing"`
	Extra                 int      `json:"extra"`
	PlaceholderMismatches int      `json:"placeholder_mismatches"`
	Completion            float64  `json:"completion"`
	MissingKeys           []string `json:"missing_keys"`
	ExtraKeys             []string `json:"extra_keys"`
	UnfinishedKeys        []string `json:"unfinished_keys"`
	MismatchedKeys        []string `json:"mismatched_keys"`
}

// Config holds configuration for the status tool.
type Config struct {
	Dir         string `env:"FILLARI_I18N_TRANSLATIONS_DIR"`
	App         string `env:"FILLARI_I18N_APP"`
	MarkdownOut string
	JSONOut     string
}

// ParseConfig parses CLI flags into a Config. Env defaults should already be
// loaded into cfg.
func ParseConfig(fs *flag.FlagSet, args []string, cfg Config) (Config, error) {
	if fs == nil {
		return Config{}, errors.New("flag set is required")
	}
	if cfg.MarkdownOut == "" {
		cfg.MarkdownOut = filepath.Join("docs", "i18n-status.md")
	}
	if cfg.JSONOut == "" {
		cfg.JSONOut = filepath.Join("docs", "i18n-status.json")
	}
	fs.StringVar(&cfg.Dir, "dir", cfg.Dir, "directory of .ts files (embedded translations when empty)")
	fs.StringVar(&cfg.App, "app", cfg.App, "translation file name prefix")
	fs.StringVar(&cfg.MarkdownOut, "out", cfg.MarkdownOut, "markdown output path")
	fs.StringVar(&cfg.JSONOut, "json-out", cfg.JSONOut, "json output path")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if strings.TrimSpace(cfg.MarkdownOut) == "" && strings.TrimSpace(cfg.JSONOut) == "" {
		return Config{}, errors.New("at least one of -out or -json-out is required")
	}
	return cfg, nil
}

// Run loads the translation sets and writes the configured artifacts.
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

	bundle, err := LoadBundle(cfg.Dir, cfg.App)
	if err != nil {
		return fmt.Errorf("load translation sets: %w", err)
	}
	rep := BuildReport(bundle)

	var written []string
	if path := strings.TrimSpace(cfg.JSONOut); path != "" {
		if err := WriteJSON(path, rep); err != nil {
			return fmt.Errorf("write json report: %w", err)
		}
		written = append(written, path)
	}
	if path := strings.TrimSpace(cfg.MarkdownOut); path != "" {
		if err := WriteMarkdown(path, rep); err != nil {
			return fmt.Errorf("write markdown report: %w", err)
		}
		written = append(written, path)
	}
	_, err = fmt.Fprintf(out, "wrote %s\n", strings.Join(written, " and "))
	return err
}

// LoadBundle reads dir, or the embedded translations when dir is blank.
func LoadBundle(dir string, app string) (*i18ncatalog.Bundle, error) {
	opts := i18ncatalog.Options{App: app}
	if strings.TrimSpace(dir) == "" {
		return i18ncatalog.LoadFromFS(i18ncatalog.EmbeddedFS(), opts)
	}
	return i18ncatalog.LoadDir(dir, opts)
}

// BuildReport computes per-locale status against the base locale.
func BuildReport(bundle *i18ncatalog.Bundle) Report {
	base := activeByID(bundle.Entries(i18ncatalog.BaseLocale))

	locales := bundle.Locales()
	statuses := make([]LocaleStatus, 0, len(locales))
	for _, locale := range locales {
		entries := activeByID(bundle.Entries(locale))
		status := LocaleStatus{
			Locale:         locale,
			BaseKeys:       len(base),
			MissingKeys:    missingKeys(base, entries),
			ExtraKeys:      missingKeys(entries, base),
			UnfinishedKeys: make([]string, 0),
			MismatchedKeys: make([]string, 0),
		}
		if localeCatalog, ok := bundle.Catalog(locale); ok {
			status.File = localeCatalog.FileName
		}
		for id := range base {
			msg, ok := entries[id]
			if !ok {
				continue
			}
			text := msg.Translation.Text
			switch {
			case msg.Translation.Unfinished():
				status.UnfinishedKeys = append(status.UnfinishedKeys, id)
			case text != "":
				status.Translated++
			}
		}
		for id, msg := range entries {
			text := msg.Translation.Text
			if text == "" {
				continue
			}
			mismatched := !placeholder.Equal(msg.Source, text)
			if baseMsg, ok := base[id]; ok && !placeholder.Equal(baseMsg.Source, text) {
				mismatched = true
			}
			if mismatched {
				status.MismatchedKeys = append(status.MismatchedKeys, id)
			}
		}
		sort.Strings(status.UnfinishedKeys)
		sort.Strings(status.MismatchedKeys)
		status.Missing = len(status.MissingKeys)
		status.Extra = len(status.ExtraKeys)
		status.Unfinished = len(status.UnfinishedKeys)
		status.PlaceholderMismatches = len(status.MismatchedKeys)
		status.Completion = percent(status.Translated, status.BaseKeys)
		statuses = append(statuses, status)
	}

	sort.Slice(statuses, func(i, j int) bool {
		if statuses[i].Locale == i18ncatalog.BaseLocale {
			return statuses[j].Locale != i18ncatalog.BaseLocale
		}
		if statuses[j].Locale == i18ncatalog.BaseLocale {
			return false
		}
		return statuses[i].Locale < statuses[j].Locale
	})

	return Report{App: bundle.App(), BaseLocale: i18ncatalog.BaseLocale, Locales: statuses}
}

// WriteJSON writes rep as indented JSON with a trailing newline.
func WriteJSON(path string, rep Report) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", filepath.Dir(path), err)
	}
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// WriteMarkdown writes rep as a Markdown page.
func WriteMarkdown(path string, rep Report) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(RenderMarkdown(rep)), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// RenderMarkdown formats rep as Markdown.
func RenderMarkdown(rep Report) string {
	var b strings.Builder
	b.WriteString("# Translation Status\n\n")
	b.WriteString("Generated by `i18nstatus`.\n\n")
	fmt.Fprintf(&b, "App: `%s`. Base locale: `%s`.\n\n", rep.App, rep.BaseLocale)

	b.WriteString("## Locale Summary\n\n")
	b.WriteString("| Locale | Base Keys | Translated | Unfinished | Missing | Extra | Placeholder Mismatches | Completion |\n")
	b.WriteString("| --- | ---: | ---: | ---: | ---: | ---: | ---: | ---: |\n")
	for _, locale := range rep.Locales {
		fmt.Fprintf(&b, "| `%s` | %d | %d | %d | %d | %d | %d | %.1f%% |\n",
			locale.Locale, locale.BaseKeys, locale.Translated, locale.Unfinished,
			locale.Missing, locale.Extra, locale.PlaceholderMismatches, locale.Completion)
	}

	for _, locale := range rep.Locales {
		if len(locale.MissingKeys)+len(locale.ExtraKeys)+len(locale.UnfinishedKeys)+len(locale.MismatchedKeys) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n## Locale: `%s`\n", locale.Locale)
		writeKeyList(&b, "Missing Keys", locale.MissingKeys)
		writeKeyList(&b, "Extra Keys", locale.ExtraKeys)
		writeKeyList(&b, "Unfinished Keys", locale.UnfinishedKeys)
		writeKeyList(&b, "Placeholder Mismatches", locale.MismatchedKeys)
	}
	return b.String()
}

func writeKeyList(b *strings.Builder, title string, keys []string) {
	if len(keys) == 0 {
		return
	}
	b.WriteString("\n### ")
	b.WriteString(title)
	b.WriteString("\n\n")
	for _, key := range keys {
		b.WriteString("- `")
		b.WriteString(key)
		b.WriteString("`\n")
	}
}

func activeByID(entries []tsfile.Message) map[string]tsfile.Message {
	out := make(map[string]tsfile.Message, len(entries))
	for _, msg := range entries {
		if !msg.Active() {
			continue
		}
		if _, ok := out[msg.ID]; !ok {
			out[msg.ID] = msg
		}
	}
	return out
}

func missingKeys(base map[string]tsfile.Message, target map[string]tsfile.Message) []string {
	out := make([]string, 0)
	for key := range base {
		if _, ok := target[key]; !ok {
			out = append(out, key)
		}
	}
	sort.Strings(out)
	return out
}

func percent(numerator int, denominator int) float64 {
	if denominator <= 0 {
		return 100
	}
	value := float64(numerator) * 100 / float64(denominator)
	return math.Round(value*10) / 10
}
