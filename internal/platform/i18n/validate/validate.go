// Package validate checks translation sets for integrity drift: duplicate
// ids, key-set parity with the source template, placeholder parity and
// completion status.
package validate

import (
	"bytes"
	"sort"
	"strconv"

	apperrors "github.com/louisbranch/fillari-i18n/internal/platform/errors"
	errori18n "github.com/louisbranch/fillari-i18n/internal/platform/errors/i18n"
	"github.com/louisbranch/fillari-i18n/internal/platform/i18n/catalog"
	"github.com/louisbranch/fillari-i18n/internal/platform/i18n/placeholder"
	"github.com/louisbranch/fillari-i18n/internal/platform/i18n/tsfile"
)

// Severity ranks findings.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

// String returns the lowercase severity name.
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return "info"
	}
}

// MarshalText encodes the severity by name.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Finding is one integrity problem.
type Finding struct {
	Code      apperrors.Code    `json:"code"`
	Severity  Severity          `json:"severity"`
	Locale    string            `json:"locale"`
	File      string            `json:"file"`
	MessageID string            `json:"message_id,omitempty"`
	Message   string            `json:"message"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// Options selects optional checks.
type Options struct {
	// Canonical compares raw file bytes with the canonical encoding.
	Canonical bool
	// MessageLocale selects the locale finding messages are rendered in.
	MessageLocale string
}

// Set is one translation set to check.
type Set struct {
	Locale string
	Name   string
	File   tsfile.File
	Raw    []byte
}

// Check validates every locale of bundle against its base locale.
func Check(bundle *catalog.Bundle, opts Options) Report {
	var base Set
	var targets []Set
	for _, locale := range bundle.Locales() {
		localeCatalog, ok := bundle.Catalog(locale)
		if !ok {
			continue
		}
		set := Set{Locale: locale, Name: localeCatalog.FileName, File: localeCatalog.File, Raw: localeCatalog.Raw}
		if locale == catalog.BaseLocale {
			base = set
			continue
		}
		targets = append(targets, set)
	}
	return CheckSets(base, targets, opts)
}

// CheckSets validates targets against base.
func CheckSets(base Set, targets []Set, opts Options) Report {
	c := checker{opts: opts, messages: errori18n.GetCatalog(opts.MessageLocale)}

	c.checkSet(base)
	baseMessages := firstByID(base.File)
	for _, target := range targets {
		c.checkSet(target)
		c.checkParity(base, baseMessages, target)
	}

	sortFindings(c.findings)
	return Report{Findings: c.findings, Locales: len(targets) + 1}
}

type checker struct {
	opts     Options
	messages *errori18n.Catalog
	findings []Finding
}

func (c *checker) add(code apperrors.Code, severity Severity, set Set, id string, metadata map[string]string) {
	if metadata == nil {
		metadata = map[string]string{}
	}
	metadata["ID"] = id
	metadata["Locale"] = set.Locale
	metadata["File"] = set.Name
	c.findings = append(c.findings, Finding{
		Code:      code,
		Severity:  severity,
		Locale:    set.Locale,
		File:      set.Name,
		MessageID: id,
		Message:   c.messages.Format(string(code), metadata),
		Metadata:  metadata,
	})
}

// checkSet runs the checks that need only one file.
func (c *checker) checkSet(set Set) {
	counts := map[string]int{}
	for _, id := range set.File.IDs() {
		counts[id]++
	}
	for id, count := range counts {
		if count > 1 {
			c.add(apperrors.CodeDuplicateMessageID, SeverityError, set, id, map[string]string{"Count": strconv.Itoa(count)})
		}
	}

	for _, msg := range set.File.Messages() {
		if !msg.Active() {
			continue
		}
		text := msg.Translation.Text
		switch {
		case msg.Translation.Unfinished() && (text == "" || text == msg.Source):
			c.add(apperrors.CodeUnfinishedUntranslated, SeverityWarning, set, msg.ID, nil)
		case msg.Translation.Unfinished():
			c.add(apperrors.CodeUnfinishedDraft, SeverityInfo, set, msg.ID, nil)
		case text == "":
			c.add(apperrors.CodeEmptyTranslation, SeverityWarning, set, msg.ID, nil)
		}
		if text != "" && !placeholder.Equal(msg.Source, text) {
			c.add(apperrors.CodePlaceholderMismatch, SeverityError, set, msg.ID, map[string]string{
				"Source":      placeholder.Format(placeholder.Extract(msg.Source)),
				"Translation": placeholder.Format(placeholder.Extract(text)),
			})
		}
	}

	if c.opts.Canonical && len(set.Raw) > 0 {
		canonical, err := tsfile.Marshal(set.File)
		if err == nil && !bytes.Equal(canonical, set.Raw) {
			c.add(apperrors.CodeNotCanonical, SeverityInfo, set, "", nil)
		}
	}
}

// checkParity compares the key set and sources of target with base. Each id
// is reported once however often it repeats.
func (c *checker) checkParity(base Set, baseMessages map[string]tsfile.Message, target Set) {
	targetMessages := firstByID(target.File)
	seen := map[string]bool{}
	for _, msg := range base.File.Messages() {
		if !msg.Active() || seen[msg.ID] {
			continue
		}
		seen[msg.ID] = true
		translated, ok := targetMessages[msg.ID]
		if !ok {
			c.add(apperrors.CodeMissingTranslation, SeverityError, target, msg.ID, map[string]string{"Base": base.Name})
			continue
		}
		if translated.Source == msg.Source {
			continue
		}
		c.add(apperrors.CodeSourceDrift, SeverityWarning, target, msg.ID, map[string]string{
			"Expected": msg.Source,
			"Actual":   translated.Source,
		})
		// Translations keep the base source's placeholders. A mismatch with
		// the target's own source was reported by checkSet.
		text := translated.Translation.Text
		if text != "" && placeholder.Equal(translated.Source, text) && !placeholder.Equal(msg.Source, text) {
			c.add(apperrors.CodePlaceholderMismatch, SeverityError, target, msg.ID, map[string]string{
				"Source":      placeholder.Format(placeholder.Extract(msg.Source)),
				"Translation": placeholder.Format(placeholder.Extract(text)),
			})
		}
	}

	orphaned := map[string]bool{}
	for _, msg := range target.File.Messages() {
		if !msg.Active() || orphaned[msg.ID] {
			continue
		}
		if _, ok := baseMessages[msg.ID]; !ok {
			orphaned[msg.ID] = true
			c.add(apperrors.CodeOrphanedTranslation, SeverityError, target, msg.ID, map[string]string{"Base": base.Name})
		}
	}
}

func firstByID(file tsfile.File) map[string]tsfile.Message {
	out := map[string]tsfile.Message{}
	for _, msg := range file.Messages() {
		if _, ok := out[msg.ID]; !ok {
			out[msg.ID] = msg
		}
	}
	return out
}

func sortFindings(findings []Finding) {
	sort.SliceStable(findings, func(i, j int) bool {
		a, b := findings[i], findings[j]
		if a.Locale != b.Locale {
			return a.Locale < b.Locale
		}
		if a.MessageID != b.MessageID {
			return a.MessageID < b.MessageID
		}
		return a.Code < b.Code
	})
}
