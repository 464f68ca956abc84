package catalog

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	apperrors "github.com/louisbranch/fillari-i18n/internal/platform/errors"
	"github.com/louisbranch/fillari-i18n/internal/platform/i18n/placeholder"
	"github.com/louisbranch/fillari-i18n/internal/platform/i18n/tsfile"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	xcatalog "golang.org/x/text/message/catalog"
)

const (
	// BaseLocale is the locale of the source template file.
	BaseLocale = "en"
	// DefaultApp is the file name prefix shared by every translation set.
	DefaultApp = "harbour-fillari"
)

// Options controls how translation sets are turned into a bundle.
type Options struct {
	// App is the file name prefix; DefaultApp when empty.
	App string
	// ExcludeUnfinished serves base text instead of unreviewed translations.
	ExcludeUnfinished bool
}

// Source is one translation set handed to NewBundle.
type Source struct {
	Name string
	File tsfile.File
	// Raw holds the original bytes when the set was read from disk.
	Raw []byte
}

// LocaleCatalog stores one parsed translation set.
type LocaleCatalog struct {
	Locale   string
	FileName string
	File     tsfile.File
	Raw      []byte
	messages map[string]tsfile.Message
}

// Bundle contains all locale catalogs of one application.
type Bundle struct {
	app               string
	includeUnfinished bool
	locales           map[string]*LocaleCatalog
	order             []string
	matcher           language.Matcher
	builder           *xcatalog.Builder
}

// Result is one resolved lookup.
type Result struct {
	ID     string
	Locale string
	Text   string
	// Unfinished is set when the text comes from an unreviewed translation.
	Unfinished bool
	// Fallback is set when the text did not come from the requested locale.
	Fallback bool
}

//go:embed translations/*.ts
var embeddedCatalogFS embed.FS

var defaultBundle = mustLoadEmbedded()

// Default returns the process-wide embedded catalog bundle.
func Default() *Bundle {
	return defaultBundle
}

// EmbeddedFS exposes the embedded translation sets rooted at their directory.
func EmbeddedFS() fs.FS {
	sub, err := fs.Sub(embeddedCatalogFS, "translations")
	if err != nil {
		panic(err)
	}
	return sub
}

// LoadEmbedded loads the translation sets embedded in this package.
func LoadEmbedded() (*Bundle, error) {
	return LoadFromFS(EmbeddedFS(), Options{})
}

// LoadDir loads every *.ts file in dir.
func LoadDir(dir string, opts Options) (*Bundle, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("translations dir is required")
	}
	return LoadFromFS(os.DirFS(dir), opts)
}

// LoadFromFS loads every *.ts file at the root of catalogFS.
func LoadFromFS(catalogFS fs.FS, opts Options) (*Bundle, error) {
	sources, err := ReadSources(catalogFS)
	if err != nil {
		return nil, err
	}
	return NewBundle(opts, sources...)
}

// ReadSources parses every *.ts file at the root of catalogFS in name order.
func ReadSources(catalogFS fs.FS) ([]Source, error) {
	paths, err := fs.Glob(catalogFS, "*.ts")
	if err != nil {
		return nil, fmt.Errorf("glob translation sets: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no translation sets found")
	}
	sort.Strings(paths)

	sources := make([]Source, 0, len(paths))
	for _, p := range paths {
		data, err := fs.ReadFile(catalogFS, p)
		if err != nil {
			return nil, fmt.Errorf("read translation set %s: %w", p, err)
		}
		parsed, err := tsfile.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("parse translation set %s: %w", p, err)
		}
		sources = append(sources, Source{Name: p, File: parsed, Raw: data})
	}
	return sources, nil
}

// NewBundle builds a bundle from already parsed translation sets.
func NewBundle(opts Options, sources ...Source) (*Bundle, error) {
	app := strings.TrimSpace(opts.App)
	if app == "" {
		app = DefaultApp
	}
	bundle := &Bundle{
		app:               app,
		includeUnfinished: !opts.ExcludeUnfinished,
		locales:           map[string]*LocaleCatalog{},
	}
	for _, source := range sources {
		if err := bundle.add(source); err != nil {
			return nil, err
		}
	}
	if !bundle.HasLocale(BaseLocale) {
		return nil, apperrors.WithMetadata(
			apperrors.CodeBaseLocaleMissing,
			fmt.Sprintf("source template %s.ts is missing", app),
			map[string]string{"App": app},
		)
	}
	if err := bundle.register(); err != nil {
		return nil, err
	}
	return bundle, nil
}

func (b *Bundle) add(source Source) error {
	name := path.Base(source.Name)
	suffix, ok := tsfile.LocaleFromFileName(name, b.app)
	if !ok {
		return apperrors.WithMetadata(
			apperrors.CodeLocaleUnknown,
			fmt.Sprintf("translation set %s does not belong to %s", name, b.app),
			map[string]string{"File": name, "App": b.app},
		)
	}
	locale := BaseLocale
	if suffix != "" {
		tag, err := language.Parse(suffix)
		if err != nil {
			return apperrors.WrapWithMetadata(
				apperrors.CodeLocaleUnknown,
				fmt.Sprintf("translation set %s: invalid locale %q", name, suffix),
				map[string]string{"File": name, "Locale": suffix},
				err,
			)
		}
		locale = tag.String()
	}
	if declared := strings.TrimSpace(source.File.Language); declared != "" && !localeAgrees(declared, locale) {
		return apperrors.WithMetadata(
			apperrors.CodeLocaleMismatch,
			fmt.Sprintf("translation set %s: language %q must match file locale %q", name, declared, locale),
			map[string]string{"File": name, "Locale": locale, "Declared": declared},
		)
	}
	if _, exists := b.locales[locale]; exists {
		return apperrors.WithMetadata(
			apperrors.CodeLocaleDuplicate,
			fmt.Sprintf("translation set %s: locale %q already loaded", name, locale),
			map[string]string{"File": name, "Locale": locale},
		)
	}

	messages := map[string]tsfile.Message{}
	for _, msg := range source.File.Messages() {
		if _, seen := messages[msg.ID]; seen {
			continue
		}
		messages[msg.ID] = msg
	}
	b.locales[locale] = &LocaleCatalog{
		Locale:   locale,
		FileName: name,
		File:     source.File,
		Raw:      source.Raw,
		messages: messages,
	}
	return nil
}

// localeAgrees accepts Qt style tags (fi_FI) that refine the file locale.
func localeAgrees(declared string, locale string) bool {
	tag, err := language.Parse(strings.ReplaceAll(declared, "_", "-"))
	if err != nil {
		return false
	}
	if tag.String() == locale {
		return true
	}
	base, _ := tag.Base()
	return base.String() == locale
}

// register orders locales (base first) and fills the x/text catalog.
func (b *Bundle) register() error {
	b.order = []string{BaseLocale}
	for locale := range b.locales {
		if locale != BaseLocale {
			b.order = append(b.order, locale)
		}
	}
	sort.Strings(b.order[1:])

	baseTag := language.MustParse(BaseLocale)
	b.builder = xcatalog.NewBuilder(xcatalog.Fallback(baseTag))
	tags := make([]language.Tag, 0, len(b.order))
	for _, locale := range b.order {
		tag, err := language.Parse(locale)
		if err != nil {
			return fmt.Errorf("parse locale tag %q: %w", locale, err)
		}
		tags = append(tags, tag)

		messages := b.LocalMessages(locale)
		keys := make([]string, 0, len(messages))
		for key := range messages {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			if err := b.builder.SetString(tag, key, placeholder.ToPrintf(messages[key])); err != nil {
				return fmt.Errorf("register %s/%s: %w", locale, key, err)
			}
		}
	}
	b.matcher = language.NewMatcher(tags)
	return nil
}

// App returns the file name prefix of the bundle.
func (b *Bundle) App() string {
	if b == nil {
		return ""
	}
	return b.app
}

// IncludesUnfinished reports whether unreviewed translations are served.
func (b *Bundle) IncludesUnfinished() bool {
	return b != nil && b.includeUnfinished
}

// HasLocale reports whether the locale exists in this bundle.
func (b *Bundle) HasLocale(locale string) bool {
	if b == nil {
		return false
	}
	_, ok := b.locales[strings.TrimSpace(locale)]
	return ok
}

// Locales returns all locales, base locale first and the rest sorted.
func (b *Bundle) Locales() []string {
	if b == nil {
		return nil
	}
	return append([]string(nil), b.order...)
}

// Catalog returns the parsed translation set for one locale.
func (b *Bundle) Catalog(locale string) (*LocaleCatalog, bool) {
	if b == nil {
		return nil, false
	}
	catalog, ok := b.locales[strings.TrimSpace(locale)]
	return catalog, ok
}

// File returns the parsed translation set for one locale.
func (b *Bundle) File(locale string) (tsfile.File, bool) {
	catalog, ok := b.Catalog(locale)
	if !ok {
		return tsfile.File{}, false
	}
	return catalog.File, true
}

// Entries returns the messages of one locale in document order.
func (b *Bundle) Entries(locale string) []tsfile.Message {
	catalog, ok := b.Catalog(locale)
	if !ok {
		return nil
	}
	return catalog.File.Messages()
}

// Match returns the supported locale closest to the preferred tags.
func (b *Bundle) Match(preferred ...language.Tag) string {
	if b == nil || b.matcher == nil || len(preferred) == 0 {
		return BaseLocale
	}
	_, index, confidence := b.matcher.Match(preferred...)
	if confidence == language.No || index < 0 || index >= len(b.order) {
		return BaseLocale
	}
	return b.order[index]
}

// ResolveLocale maps a requested locale string onto a loaded locale.
func (b *Bundle) ResolveLocale(locale string) string {
	trimmed := strings.TrimSpace(locale)
	if b.HasLocale(trimmed) {
		return trimmed
	}
	tag, err := language.Parse(strings.ReplaceAll(trimmed, "_", "-"))
	if err != nil {
		return BaseLocale
	}
	return b.Match(tag)
}

// Serves reports whether text in resolved answers a request for requested.
// An empty request is served by any locale; otherwise both must share a base
// language, so "fi_FI" is served by "fi" and "de" is not served by "en".
func Serves(requested string, resolved string) bool {
	requested = strings.TrimSpace(requested)
	if requested == "" || requested == resolved {
		return true
	}
	want, err := language.Parse(strings.ReplaceAll(requested, "_", "-"))
	if err != nil {
		return false
	}
	got, err := language.Parse(strings.ReplaceAll(resolved, "_", "-"))
	if err != nil {
		return false
	}
	wantBase, _ := want.Base()
	gotBase, _ := got.Base()
	return wantBase == gotBase
}

// Lookup resolves one message. Resolution order: the requested locale's
// translation, the base locale, then the source text recorded in any
// translation set. Fallback is set whenever the text is not in the requested
// language. ok is false when no set knows the id, in which case the id itself
// is returned as the text.
func (b *Bundle) Lookup(locale string, id string) (Result, bool) {
	id = strings.TrimSpace(id)
	if b == nil || id == "" {
		return Result{ID: id, Locale: BaseLocale, Text: id, Fallback: true}, false
	}
	resolved := b.ResolveLocale(locale)
	if catalog, ok := b.locales[resolved]; ok {
		if msg, ok := catalog.messages[id]; ok && msg.Active() {
			if text, unfinished, ok := b.usable(resolved, msg); ok {
				return Result{ID: id, Locale: resolved, Text: text, Unfinished: unfinished, Fallback: !Serves(locale, resolved)}, true
			}
		}
	}
	if resolved != BaseLocale {
		if msg, ok := b.locales[BaseLocale].messages[id]; ok && msg.Active() {
			if text, unfinished, ok := b.usable(BaseLocale, msg); ok {
				return Result{ID: id, Locale: BaseLocale, Text: text, Unfinished: unfinished, Fallback: true}, true
			}
		}
	}
	for _, locale := range b.order {
		if msg, ok := b.locales[locale].messages[id]; ok && msg.Source != "" {
			return Result{ID: id, Locale: BaseLocale, Text: msg.Source, Fallback: true}, true
		}
	}
	return Result{ID: id, Locale: resolved, Text: id, Fallback: true}, false
}

// usable returns the text a consumer may show for msg in locale.
func (b *Bundle) usable(locale string, msg tsfile.Message) (string, bool, bool) {
	unfinished := msg.Translation.Unfinished()
	text := msg.Translation.Text
	if locale == BaseLocale && text == "" {
		return msg.Source, false, msg.Source != ""
	}
	if text == "" {
		return "", false, false
	}
	if unfinished && !b.includeUnfinished {
		return "", false, false
	}
	return text, unfinished, true
}

// Text returns the resolved text of one message.
func (b *Bundle) Text(locale string, id string) string {
	result, _ := b.Lookup(locale, id)
	return result.Text
}

// Sprintf resolves one message and substitutes %1, %2, ... with args.
func (b *Bundle) Sprintf(locale string, id string, args ...any) string {
	text := b.Text(locale, id)
	if len(args) == 0 {
		return text
	}
	values := make([]string, len(args))
	for i, arg := range args {
		values[i] = fmt.Sprint(arg)
	}
	return placeholder.Substitute(text, values...)
}

// Messages returns resolved text for every id known to the bundle, as the
// given locale would see it.
func (b *Bundle) Messages(locale string) map[string]string {
	out := map[string]string{}
	if b == nil {
		return out
	}
	resolved := b.ResolveLocale(locale)
	for _, id := range b.IDs() {
		result, ok := b.Lookup(resolved, id)
		if ok {
			out[id] = result.Text
		}
	}
	return out
}

// IDs returns the sorted union of message ids across all locales.
func (b *Bundle) IDs() []string {
	if b == nil {
		return nil
	}
	seen := map[string]struct{}{}
	for _, catalog := range b.locales {
		for id := range catalog.messages {
			seen[id] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Printer returns an x/text printer whose catalog holds this bundle's
// messages in printf form, falling back to the base locale.
func (b *Bundle) Printer(locale string) *message.Printer {
	tag := language.MustParse(BaseLocale)
	if b != nil {
		if parsed, err := language.Parse(b.ResolveLocale(locale)); err == nil {
			tag = parsed
		}
	}
	if b == nil || b.builder == nil {
		return message.NewPrinter(tag)
	}
	return message.NewPrinter(tag, message.Catalog(b.builder))
}

// LocalMessages returns the texts a locale serves without cross-locale fallback.
func (b *Bundle) LocalMessages(locale string) map[string]string {
	if b == nil {
		return map[string]string{}
	}
	catalog, ok := b.locales[locale]
	if !ok {
		return map[string]string{}
	}
	out := make(map[string]string, len(catalog.messages))
	for id, msg := range catalog.messages {
		if !msg.Active() {
			continue
		}
		if text, _, ok := b.usable(locale, msg); ok {
			out[id] = text
		}
	}
	return out
}

func mustLoadEmbedded() *Bundle {
	bundle, err := LoadEmbedded()
	if err != nil {
		panic(err)
	}
	return bundle
}
