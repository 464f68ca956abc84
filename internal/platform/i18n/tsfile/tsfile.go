// Package tsfile reads and writes Qt Linguist translation sets (.ts files).
//
// A translation set is an XML document with a TS root, one or more context
// groupings and an ordered list of messages per context. Messages are keyed by
// a stable id attribute and carry the source text, translator comments and the
// localized text with its completion status.
package tsfile

import (
	"bytes"
	"encoding/xml"
	"path"
	"strconv"
	"strings"

	apperrors "github.com/louisbranch/fillari-i18n/internal/platform/errors"
)

// DefaultVersion is the TS format version written for new files.
const DefaultVersion = "2.1"

// TranslationType is the completion status of one translation.
type TranslationType string

const (
	// TypeFinished marks a reviewed translation. It is written as no attribute.
	TypeFinished TranslationType = ""
	// TypeUnfinished marks a translation that has not been reviewed.
	TypeUnfinished TranslationType = "unfinished"
	// TypeVanished marks a message whose source disappeared from the code.
	TypeVanished TranslationType = "vanished"
	// TypeObsolete marks a message kept only for reference.
	TypeObsolete TranslationType = "obsolete"
)

// File is one parsed translation set.
type File struct {
	Version        string
	Language       string
	SourceLanguage string
	Contexts       []Context
}

// Context groups messages. The Fillari files use a single untitled context.
type Context struct {
	Name     string
	Messages []Message
}

// Message is one translation entry.
type Message struct {
	ID           string
	Locations    []Location
	Source       string
	Comment      string
	ExtraComment string
	Translation  Translation
}

// Location points at the line that produced a message.
type Location struct {
	Filename string
	Line     string
}

// Translation is the localized text and its status.
type Translation struct {
	Type TranslationType
	Text string
}

// Unfinished reports whether the translation still awaits review.
func (t Translation) Unfinished() bool {
	return t.Type == TypeUnfinished
}

// Active reports whether the message is still used by the application.
func (m Message) Active() bool {
	return m.Translation.Type != TypeVanished && m.Translation.Type != TypeObsolete
}

type xmlTS struct {
	XMLName        xml.Name
	Version        string       `xml:"version,attr"`
	Language       string       `xml:"language,attr"`
	SourceLanguage string       `xml:"sourcelanguage,attr"`
	Contexts       []xmlContext `xml:"context"`
}

type xmlContext struct {
	Name     string       `xml:"name"`
	Messages []xmlMessage `xml:"message"`
}

type xmlMessage struct {
	ID           string         `xml:"id,attr"`
	Locations    []xmlLocation  `xml:"location"`
	Source       string         `xml:"source"`
	Comment      string         `xml:"comment"`
	ExtraComment string         `xml:"extracomment"`
	Translation  xmlTranslation `xml:"translation"`
}

type xmlLocation struct {
	Filename string `xml:"filename,attr"`
	Line     string `xml:"line,attr"`
}

type xmlTranslation struct {
	Type string `xml:"type,attr"`
	Text string `xml:",chardata"`
}

// Parse decodes a translation set.
func Parse(data []byte) (File, error) {
	var doc xmlTS
	decoder := xml.NewDecoder(bytes.NewReader(data))
	if err := decoder.Decode(&doc); err != nil {
		return File{}, apperrors.Wrap(apperrors.CodeTSParseFailed, "decode ts document", err)
	}
	if doc.XMLName.Local != "TS" {
		return File{}, apperrors.WithMetadata(
			apperrors.CodeTSNotTranslationSet,
			"root element <"+doc.XMLName.Local+"> is not <TS>",
			map[string]string{"Root": doc.XMLName.Local},
		)
	}

	file := File{
		Version:        doc.Version,
		Language:       doc.Language,
		SourceLanguage: doc.SourceLanguage,
		Contexts:       make([]Context, 0, len(doc.Contexts)),
	}
	for ci, rawContext := range doc.Contexts {
		context := Context{
			Name:     rawContext.Name,
			Messages: make([]Message, 0, len(rawContext.Messages)),
		}
		for mi, raw := range rawContext.Messages {
			id := strings.TrimSpace(raw.ID)
			if id == "" {
				return File{}, apperrors.WithMetadata(
					apperrors.CodeTSMessageIDMissing,
					"message without id",
					map[string]string{"Context": rawContext.Name, "Index": strconv.Itoa(ci) + "/" + strconv.Itoa(mi)},
				)
			}
			message := Message{
				ID:           id,
				Source:       raw.Source,
				Comment:      raw.Comment,
				ExtraComment: raw.ExtraComment,
				Translation: Translation{
					Type: TranslationType(raw.Translation.Type),
					Text: raw.Translation.Text,
				},
			}
			for _, loc := range raw.Locations {
				message.Locations = append(message.Locations, Location{Filename: loc.Filename, Line: loc.Line})
			}
			context.Messages = append(context.Messages, message)
		}
		file.Contexts = append(file.Contexts, context)
	}
	return file, nil
}

// Messages returns every message in document order.
func (f File) Messages() []Message {
	count := 0
	for _, context := range f.Contexts {
		count += len(context.Messages)
	}
	out := make([]Message, 0, count)
	for _, context := range f.Contexts {
		out = append(out, context.Messages...)
	}
	return out
}

// Lookup returns the first message with the given id.
func (f File) Lookup(id string) (Message, bool) {
	for _, context := range f.Contexts {
		for _, message := range context.Messages {
			if message.ID == id {
				return message, true
			}
		}
	}
	return Message{}, false
}

// IDs returns message ids in document order, duplicates included.
func (f File) IDs() []string {
	messages := f.Messages()
	out := make([]string, 0, len(messages))
	for _, message := range messages {
		out = append(out, message.ID)
	}
	return out
}

// LocaleFromFileName derives the locale suffix from a file name such as
// harbour-fillari-fi.ts. The source template (harbour-fillari.ts) yields an
// empty locale. ok is false when the name does not belong to app.
func LocaleFromFileName(name string, app string) (locale string, ok bool) {
	base := strings.TrimSuffix(path.Base(strings.ReplaceAll(name, "\\", "/")), ".ts")
	app = strings.TrimSpace(app)
	if app == "" {
		return "", false
	}
	if base == app {
		return "", true
	}
	rest, found := strings.CutPrefix(base, app)
	if !found || len(rest) < 2 || (rest[0] != '-' && rest[0] != '_') {
		return "", false
	}
	return strings.ReplaceAll(rest[1:], "_", "-"), true
}
