package exporter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	apperrors "github.com/louisbranch/fillari-i18n/internal/platform/errors"
	i18ncatalog "github.com/louisbranch/fillari-i18n/internal/platform/i18n/catalog"
	"github.com/louisbranch/fillari-i18n/internal/platform/i18n/placeholder"
	"github.com/louisbranch/fillari-i18n/internal/platform/i18n/tsfile"
)

// Format names accepted by DefaultRegistry.
const (
	FormatTS          = "ts"
	FormatCatalogYAML = "catalog-yaml"
	FormatGoI18nJSON  = "go-i18n-json"
	FormatGoI18nTOML  = "go-i18n-toml"
)

// TSExporter writes the canonical Qt layout under the original file name.
type TSExporter struct{}

// Format implements Exporter.
func (TSExporter) Format() string { return FormatTS }

// Export implements Exporter.
func (TSExporter) Export(bundle *i18ncatalog.Bundle, locale string) (Artifact, error) {
	localeCatalog, ok := bundle.Catalog(locale)
	if !ok {
		return Artifact{}, missingLocale(locale)
	}
	content, err := tsfile.Marshal(localeCatalog.File)
	if err != nil {
		return Artifact{}, err
	}
	return Artifact{Path: localeCatalog.FileName, Content: content}, nil
}

// CatalogYAMLExporter writes locales/<locale>/<app>.yaml in the flat
// locale/namespace/messages layout read by x/text based catalogs. Texts are
// resolved with fallback and placeholders become printf verbs.
type CatalogYAMLExporter struct{}

// Format implements Exporter.
func (CatalogYAMLExporter) Format() string { return FormatCatalogYAML }

// Export implements Exporter.
func (CatalogYAMLExporter) Export(bundle *i18ncatalog.Bundle, locale string) (Artifact, error) {
	if !bundle.HasLocale(locale) {
		return Artifact{}, missingLocale(locale)
	}
	messages := bundle.Messages(locale)
	keys := make([]string, 0, len(messages))
	for key := range messages {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	fmt.Fprintf(&b, "locale: %s\n", strconv.Quote(locale))
	fmt.Fprintf(&b, "namespace: %s\n", strconv.Quote(bundle.App()))
	b.WriteString("messages:\n")
	for _, key := range keys {
		fmt.Fprintf(&b, "  %s: %s\n", strconv.Quote(key), strconv.Quote(placeholder.ToPrintf(messages[key])))
	}
	return Artifact{
		Path:    path.Join("locales", locale, bundle.App()+".yaml"),
		Content: []byte(b.String()),
	}, nil
}

// GoI18nExporter writes go-i18n message files. Only texts the locale serves
// itself are written; go-i18n falls back to its default language.
type GoI18nExporter struct {
	format    string
	extension string
	encode    func([]*i18n.Message) ([]byte, error)
}

// NewGoI18nJSONExporter returns the JSON flavour.
func NewGoI18nJSONExporter() GoI18nExporter {
	return GoI18nExporter{format: FormatGoI18nJSON, extension: "json", encode: encodeJSON}
}

// NewGoI18nTOMLExporter returns the TOML flavour.
func NewGoI18nTOMLExporter() GoI18nExporter {
	return GoI18nExporter{format: FormatGoI18nTOML, extension: "toml", encode: encodeTOML}
}

// Format implements Exporter.
func (e GoI18nExporter) Format() string { return e.format }

// Export implements Exporter.
func (e GoI18nExporter) Export(bundle *i18ncatalog.Bundle, locale string) (Artifact, error) {
	localeCatalog, ok := bundle.Catalog(locale)
	if !ok {
		return Artifact{}, missingLocale(locale)
	}
	comments := map[string]string{}
	if base, ok := bundle.Catalog(i18ncatalog.BaseLocale); ok {
		collectComments(comments, base.File)
	}
	collectComments(comments, localeCatalog.File)

	local := bundle.LocalMessages(locale)
	ids := make([]string, 0, len(local))
	for id := range local {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	messages := make([]*i18n.Message, 0, len(ids))
	for _, id := range ids {
		messages = append(messages, &i18n.Message{
			ID:          id,
			Description: comments[id],
			Other:       placeholder.ToTemplate(local[id]),
		})
	}
	content, err := e.encode(messages)
	if err != nil {
		return Artifact{}, fmt.Errorf("encode %s: %w", e.format, err)
	}
	return Artifact{
		Path:    bundle.App() + "." + locale + "." + e.extension,
		Content: content,
	}, nil
}

// collectComments keeps the first non-empty translator comment per id.
func collectComments(into map[string]string, file tsfile.File) {
	for _, msg := range file.Messages() {
		comment := msg.ExtraComment
		if comment == "" {
			comment = msg.Comment
		}
		if comment == "" {
			continue
		}
		if _, ok := into[msg.ID]; !ok {
			into[msg.ID] = comment
		}
	}
}

// messageFile lays messages out as a go-i18n message file: one table per id
// holding the lowercase field names go-i18n reads back.
func messageFile(messages []*i18n.Message) map[string]map[string]string {
	out := make(map[string]map[string]string, len(messages))
	for _, msg := range messages {
		fields := map[string]string{"other": msg.Other}
		for name, value := range map[string]string{
			"description": msg.Description,
			"hash":        msg.Hash,
			"zero":        msg.Zero,
			"one":         msg.One,
			"two":         msg.Two,
			"few":         msg.Few,
			"many":        msg.Many,
		} {
			if value != "" {
				fields[name] = value
			}
		}
		out[msg.ID] = fields
	}
	return out
}

func encodeJSON(messages []*i18n.Message) ([]byte, error) {
	data, err := json.MarshalIndent(messageFile(messages), "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func encodeTOML(messages []*i18n.Message) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(messageFile(messages)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func missingLocale(locale string) error {
	return apperrors.WithMetadata(
		apperrors.CodeLocaleUnknown,
		fmt.Sprintf("locale %q is not in the bundle", locale),
		map[string]string{"Locale": locale},
	)
}

func unknownFormat(format string, known []string) error {
	return apperrors.WithMetadata(
		apperrors.CodeExportFormatUnknown,
		fmt.Sprintf("unknown export format %q", format),
		map[string]string{"Format": format, "Known": strings.Join(known, ", ")},
	)
}
