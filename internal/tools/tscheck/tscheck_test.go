package tscheck

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const baseTS = `<?xml version="1.0" encoding="utf-8"?>
<!DOCTYPE TS>
<TS version="2.1">
<context>
    <name></name>
    <message id="app-retry">
        <source>Retry</source>
        <translation>Retry</translation>
    </message>
</context>
</TS>
`

const untranslatedTS = `<?xml version="1.0" encoding="utf-8"?>
<!DOCTYPE TS>
<TS version="2.1">
<context>
    <name></name>
    <message id="app-retry">
        <source>Retry</source>
        <translation type="unfinished"></translation>
    </message>
</context>
</TS>
`

func TestRunShippedSetsFails(t *testing.T) {
	var out bytes.Buffer
	err := Run(context.Background(), Config{}, &out)
	if !errors.Is(err, ErrCheckFailed) {
		t.Fatalf("err = %v, want ErrCheckFailed", err)
	}
	text := out.String()
	for _, want := range []string{
		"error: harbour-fillari-fi.ts fillari-menu-log_out [ORPHANED_TRANSLATION]",
		"2 locale(s): 3 error(s), 0 warning(s), 11 info",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("output missing %q:\n%s", want, text)
		}
	}
	if strings.Contains(text, "UNFINISHED_DRAFT") {
		t.Fatalf("info findings should be hidden without -v:\n%s", text)
	}
}

func TestRunVerboseShowsInfo(t *testing.T) {
	var out bytes.Buffer
	_ = Run(context.Background(), Config{Verbose: true}, &out)
	if !strings.Contains(out.String(), "info: harbour-fillari-fi.ts fillari-login_error-message [UNFINISHED_DRAFT]") {
		t.Fatalf("output:\n%s", out.String())
	}
}

func TestRunJSON(t *testing.T) {
	var out bytes.Buffer
	err := Run(context.Background(), Config{JSON: true}, &out)
	if !errors.Is(err, ErrCheckFailed) {
		t.Fatalf("err = %v, want ErrCheckFailed", err)
	}
	var decoded struct {
		Locales  int `json:"locales"`
		Findings []struct {
			Code      string `json:"code"`
			Severity  string `json:"severity"`
			MessageID string `json:"message_id"`
		} `json:"findings"`
	}
	if err := json.Unmarshal(out.Bytes(), &decoded); err != nil {
		t.Fatalf("decode: %v\n%s", err, out.String())
	}
	if decoded.Locales != 2 || len(decoded.Findings) != 14 {
		t.Fatalf("locales = %d findings = %d", decoded.Locales, len(decoded.Findings))
	}
	orphans := 0
	for _, finding := range decoded.Findings {
		if finding.Code == "ORPHANED_TRANSLATION" && finding.Severity == "error" {
			orphans++
		}
	}
	if orphans != 3 {
		t.Fatalf("orphans = %d, want 3", orphans)
	}
}

func TestRunStrictFailsOnWarnings(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "app.ts"), baseTS)
	writeFile(t, filepath.Join(dir, "app-fi.ts"), untranslatedTS)

	var out bytes.Buffer
	if err := Run(context.Background(), Config{Dir: dir, App: "app"}, &out); err != nil {
		t.Fatalf("lenient run: %v\n%s", err, out.String())
	}
	if !strings.Contains(out.String(), "[UNFINISHED_UNTRANSLATED]") {
		t.Fatalf("output:\n%s", out.String())
	}

	out.Reset()
	if err := Run(context.Background(), Config{Dir: dir, App: "app", Strict: true}, &out); !errors.Is(err, ErrCheckFailed) {
		t.Fatalf("strict err = %v, want ErrCheckFailed", err)
	}
}

func TestRunCanonical(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "app.ts"), strings.ReplaceAll(baseTS, "    ", "  "))

	var out bytes.Buffer
	if err := Run(context.Background(), Config{Dir: dir, App: "app", Canonical: true, Verbose: true}, &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), "[NOT_CANONICAL]") {
		t.Fatalf("output:\n%s", out.String())
	}
}

func TestRunReportsLoadErrors(t *testing.T) {
	err := Run(context.Background(), Config{Dir: t.TempDir(), App: "app"}, &bytes.Buffer{})
	if err == nil || errors.Is(err, ErrCheckFailed) {
		t.Fatalf("err = %v, want load error", err)
	}
}

func TestParseConfig(t *testing.T) {
	fs := flag.NewFlagSet("tscheck", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-json", "-strict", "-canonical", "-dir", "translations"}, Config{App: "harbour-fillari"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if !cfg.JSON || !cfg.Strict || !cfg.Canonical || cfg.Dir != "translations" || cfg.App != "harbour-fillari" {
		t.Fatalf("cfg = %+v", cfg)
	}
}

func writeFile(t *testing.T, path string, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
