package catalog

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	apperrors "github.com/louisbranch/fillari-i18n/internal/platform/errors"
	"golang.org/x/text/language"
)

const baseTS = `<?xml version="1.0" encoding="utf-8"?>
<!DOCTYPE TS>
<TS version="2.1">
<context>
    <name></name>
    <message id="app-greeting">
        <source>Hello %1</source>
        <translation>Hello %1</translation>
    </message>
    <message id="app-bye">
        <source>Bye</source>
        <translation>Bye</translation>
    </message>
</context>
</TS>
`

const finnishTS = `<?xml version="1.0" encoding="utf-8"?>
<!DOCTYPE TS>
<TS version="2.1" language="fi_FI">
<context>
    <name></name>
    <message id="app-greeting">
        <source>Hello %1</source>
        <translation type="unfinished">Hei %1</translation>
    </message>
    <message id="app-bye">
        <source>Bye</source>
        <translation type="unfinished"></translation>
    </message>
    <message id="app-extra">
        <source>Only here</source>
        <translation>Vain täällä</translation>
    </message>
</context>
</TS>
`

func TestLoadEmbeddedHasExpectedLocales(t *testing.T) {
	bundle, err := LoadEmbedded()
	if err != nil {
		t.Fatalf("load embedded catalogs: %v", err)
	}
	if got := bundle.Locales(); len(got) != 2 || got[0] != BaseLocale || got[1] != "fi" {
		t.Fatalf("locales = %v, want [en fi]", got)
	}
	if got := len(bundle.Entries(BaseLocale)); got != 29 {
		t.Fatalf("en entries = %d, want 29", got)
	}
	if got := len(bundle.Entries("fi")); got != 32 {
		t.Fatalf("fi entries = %d, want 32", got)
	}
	if Default() == nil {
		t.Fatal("expected default bundle")
	}
}

func TestLookupDistanceKeepsPlaceholder(t *testing.T) {
	bundle := Default()
	result, ok := bundle.Lookup("fi", "fillari-distance-km")
	if !ok {
		t.Fatal("expected fillari-distance-km in fi")
	}
	if result.Text != "%1 km" || result.Locale != "fi" || result.Fallback {
		t.Fatalf("result = %+v", result)
	}
	if got := bundle.Sprintf("fi", "fillari-distance-km", "3"); got != "3 km" {
		t.Fatalf("Sprintf = %q, want %q", got, "3 km")
	}
	if got := bundle.Sprintf("fi", "fillari-duration-h_min", 2, 15); got != "2 h 15 min" {
		t.Fatalf("Sprintf = %q, want %q", got, "2 h 15 min")
	}
}

func TestLookupReportsUnfinished(t *testing.T) {
	result, ok := Default().Lookup("fi", "fillari-login_error-message")
	if !ok {
		t.Fatal("expected login error message")
	}
	if !result.Unfinished {
		t.Fatal("expected unfinished translation to be reported")
	}
	if result.Text != "HSL-palveluun ei juuri nyt saada yhteyttä. Yritä myöhemmin uudelleen." {
		t.Fatalf("text = %q", result.Text)
	}
}

func TestLookupFallbacks(t *testing.T) {
	bundle := mustBundle(t, Options{App: "app"})

	result, ok := bundle.Lookup("fi-FI", "app-greeting")
	if !ok || result.Locale != "fi" || result.Text != "Hei %1" || !result.Unfinished {
		t.Fatalf("region lookup = %+v, %t", result, ok)
	}

	result, ok = bundle.Lookup("fi", "app-bye")
	if !ok || !result.Fallback || result.Locale != BaseLocale || result.Text != "Bye" {
		t.Fatalf("empty translation lookup = %+v, %t", result, ok)
	}

	result, ok = bundle.Lookup("en", "app-extra")
	if !ok || !result.Fallback || result.Text != "Only here" {
		t.Fatalf("orphan lookup = %+v, %t", result, ok)
	}

	result, ok = bundle.Lookup("de", "app-greeting")
	if !ok || result.Locale != BaseLocale || result.Text != "Hello %1" || !result.Fallback {
		t.Fatalf("unsupported locale lookup = %+v, %t", result, ok)
	}

	result, ok = bundle.Lookup("en_US", "app-greeting")
	if !ok || result.Locale != BaseLocale || result.Fallback {
		t.Fatalf("regional base lookup = %+v, %t", result, ok)
	}

	result, ok = bundle.Lookup("", "app-greeting")
	if !ok || result.Locale != BaseLocale || result.Fallback {
		t.Fatalf("default lookup = %+v, %t", result, ok)
	}

	result, ok = bundle.Lookup("fi", "app-unknown")
	if ok || result.Text != "app-unknown" {
		t.Fatalf("unknown id lookup = %+v, %t", result, ok)
	}
}

func TestServes(t *testing.T) {
	tests := []struct {
		requested string
		resolved  string
		want      bool
	}{
		{"", "en", true},
		{"fi", "fi", true},
		{"fi_FI", "fi", true},
		{"en-GB", "en", true},
		{"de", "en", false},
		{"sv", "fi", false},
		{"not a tag", "en", false},
	}
	for _, tc := range tests {
		if got := Serves(tc.requested, tc.resolved); got != tc.want {
			t.Fatalf("Serves(%q, %q) = %t, want %t", tc.requested, tc.resolved, got, tc.want)
		}
	}
}

func TestExcludeUnfinishedServesBaseText(t *testing.T) {
	bundle := mustBundle(t, Options{App: "app", ExcludeUnfinished: true})
	result, ok := bundle.Lookup("fi", "app-greeting")
	if !ok || result.Text != "Hello %1" || !result.Fallback || result.Unfinished {
		t.Fatalf("lookup = %+v, %t", result, ok)
	}
	if bundle.IncludesUnfinished() {
		t.Fatal("expected unfinished translations to be excluded")
	}
}

func TestMatch(t *testing.T) {
	bundle := Default()
	tests := []struct {
		tag  language.Tag
		want string
	}{
		{language.Finnish, "fi"},
		{language.MustParse("fi-FI"), "fi"},
		{language.AmericanEnglish, "en"},
		{language.German, "en"},
	}
	for _, tc := range tests {
		if got := bundle.Match(tc.tag); got != tc.want {
			t.Fatalf("Match(%v) = %q, want %q", tc.tag, got, tc.want)
		}
	}
	if got := bundle.ResolveLocale("not a tag"); got != BaseLocale {
		t.Fatalf("ResolveLocale(invalid) = %q", got)
	}
}

func TestPrinterUsesBundleMessages(t *testing.T) {
	bundle := Default()
	if got := bundle.Printer("fi").Sprintf("fillari-main-section-my_rides", "2026"); got != "Omat pyöräilyt 2026" {
		t.Fatalf("fi printer = %q", got)
	}
	if got := bundle.Printer("en").Sprintf("fillari-history-header"); got != "Ride history" {
		t.Fatalf("en printer = %q", got)
	}
	if got := bundle.Printer("fi").Sprintf("fillari-menu-refresh"); got != "Päivitä" {
		t.Fatalf("fi printer = %q", got)
	}
}

func TestMessagesIncludesEveryKnownID(t *testing.T) {
	bundle := Default()
	en := bundle.Messages("en")
	if en["fillari-menu-log_out"] != "Log out" {
		t.Fatalf("en log out = %q", en["fillari-menu-log_out"])
	}
	fi := bundle.Messages("fi")
	if fi["fillari-menu-log_out"] != "Kirjaudu ulos" {
		t.Fatalf("fi log out = %q", fi["fillari-menu-log_out"])
	}
	if len(en) != len(bundle.IDs()) {
		t.Fatalf("en messages = %d, ids = %d", len(en), len(bundle.IDs()))
	}
}

func TestLoadFromFSRejectsDuplicateLocale(t *testing.T) {
	fsys := fstest.MapFS{
		"app.ts":       {Data: []byte(baseTS)},
		"app-fi.ts":    {Data: []byte(finnishTS)},
		"app_fi_FI.ts": {Data: []byte(finnishTS)},
	}
	// fi-FI and fi are distinct locales, so only an exact repeat collides.
	if _, err := LoadFromFS(fsys, Options{App: "app"}); err != nil {
		t.Fatalf("load distinct locales: %v", err)
	}
	fsys["app_fi.ts"] = &fstest.MapFile{Data: []byte(finnishTS)}
	_, err := LoadFromFS(fsys, Options{App: "app"})
	if !apperrors.HasCode(err, apperrors.CodeLocaleDuplicate) {
		t.Fatalf("error = %v, want %s", err, apperrors.CodeLocaleDuplicate)
	}
}

func TestLoadFromFSRejectsLanguageMismatch(t *testing.T) {
	fsys := fstest.MapFS{
		"app.ts":    {Data: []byte(baseTS)},
		"app-sv.ts": {Data: []byte(finnishTS)},
	}
	_, err := LoadFromFS(fsys, Options{App: "app"})
	if !apperrors.HasCode(err, apperrors.CodeLocaleMismatch) {
		t.Fatalf("error = %v, want %s", err, apperrors.CodeLocaleMismatch)
	}
}

func TestLoadFromFSRequiresBaseLocale(t *testing.T) {
	fsys := fstest.MapFS{
		"app-fi.ts": {Data: []byte(finnishTS)},
	}
	_, err := LoadFromFS(fsys, Options{App: "app"})
	if !apperrors.HasCode(err, apperrors.CodeBaseLocaleMissing) {
		t.Fatalf("error = %v, want %s", err, apperrors.CodeBaseLocaleMissing)
	}
}

func TestLoadFromFSRejectsForeignFiles(t *testing.T) {
	fsys := fstest.MapFS{
		"app.ts":   {Data: []byte(baseTS)},
		"other.ts": {Data: []byte(baseTS)},
	}
	_, err := LoadFromFS(fsys, Options{App: "app"})
	if !apperrors.HasCode(err, apperrors.CodeLocaleUnknown) {
		t.Fatalf("error = %v, want %s", err, apperrors.CodeLocaleUnknown)
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	mustWriteFile(t, filepath.Join(dir, "app.ts"), baseTS)
	mustWriteFile(t, filepath.Join(dir, "app-fi.ts"), finnishTS)

	bundle, err := LoadDir(dir, Options{App: "app"})
	if err != nil {
		t.Fatalf("load dir: %v", err)
	}
	catalog, ok := bundle.Catalog("fi")
	if !ok {
		t.Fatal("expected fi catalog")
	}
	if catalog.FileName != "app-fi.ts" || string(catalog.Raw) != finnishTS {
		t.Fatalf("catalog = %s (%d bytes)", catalog.FileName, len(catalog.Raw))
	}
	if _, err := LoadDir("", Options{}); err == nil {
		t.Fatal("expected error for blank dir")
	}
}

func mustBundle(t *testing.T, opts Options) *Bundle {
	t.Helper()
	bundle, err := LoadFromFS(fstest.MapFS{
		"app.ts":    {Data: []byte(baseTS)},
		"app-fi.ts": {Data: []byte(finnishTS)},
	}, opts)
	if err != nil {
		t.Fatalf("load bundle: %v", err)
	}
	return bundle
}

func mustWriteFile(t *testing.T, path string, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLocalMessagesSkipsFallback(t *testing.T) {
	bundle := mustBundle(t, Options{App: "app"})
	fi := bundle.LocalMessages("fi")
	if fi["app-greeting"] != "Hei %1" || fi["app-extra"] != "Vain täällä" {
		t.Fatalf("fi local messages = %v", fi)
	}
	if _, ok := fi["app-bye"]; ok {
		t.Fatal("empty translation should not be served locally")
	}
	if got := bundle.LocalMessages("de"); len(got) != 0 {
		t.Fatalf("unknown locale messages = %v", got)
	}
}

func TestFileReturnsParsedSet(t *testing.T) {
	file, ok := Default().File("fi")
	if !ok || file.Version != "2.1" || len(file.Messages()) != 32 {
		t.Fatalf("fi file = %t, version %q", ok, file.Version)
	}
	if _, ok := Default().File("sv"); ok {
		t.Fatal("expected no sv file")
	}
}
