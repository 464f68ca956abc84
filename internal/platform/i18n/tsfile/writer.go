package tsfile

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	apperrors "github.com/louisbranch/fillari-i18n/internal/platform/errors"
)

const (
	xmlHeader     = "<?xml version=\"1.0\" encoding=\"utf-8\"?>\n"
	doctypeHeader = "<!DOCTYPE TS>\n"
	indentMessage = "    "
	indentField   = "        "
)

// Marshal encodes f in the layout Qt Linguist writes: XML declaration,
// DOCTYPE, four-space indentation and a trailing newline.
func Marshal(f File) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, f); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write streams the canonical encoding of f to w.
func Write(w io.Writer, f File) error {
	version := strings.TrimSpace(f.Version)
	if version == "" {
		version = DefaultVersion
	}

	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(doctypeHeader)
	b.WriteString("<TS version=\"")
	b.WriteString(protect(version))
	b.WriteString("\"")
	if f.Language != "" {
		b.WriteString(" language=\"")
		b.WriteString(protect(f.Language))
		b.WriteString("\"")
	}
	if f.SourceLanguage != "" {
		b.WriteString(" sourcelanguage=\"")
		b.WriteString(protect(f.SourceLanguage))
		b.WriteString("\"")
	}
	b.WriteString(">\n")

	for _, context := range f.Contexts {
		b.WriteString("<context>\n")
		b.WriteString(indentMessage)
		b.WriteString("<name>")
		b.WriteString(protect(context.Name))
		b.WriteString("</name>\n")
		for _, message := range context.Messages {
			if strings.TrimSpace(message.ID) == "" {
				return apperrors.WithMetadata(
					apperrors.CodeTSMessageIDMissing,
					"cannot encode message without id",
					map[string]string{"Context": context.Name, "Source": message.Source},
				)
			}
			writeMessage(&b, message)
		}
		b.WriteString("</context>\n")
	}
	b.WriteString("</TS>\n")

	if _, err := io.WriteString(w, b.String()); err != nil {
		return apperrors.Wrap(apperrors.CodeTSEncodeFailed, "write ts document", err)
	}
	return nil
}

func writeMessage(b *strings.Builder, message Message) {
	b.WriteString(indentMessage)
	b.WriteString("<message id=\"")
	b.WriteString(protect(message.ID))
	b.WriteString("\">\n")
	for _, loc := range message.Locations {
		b.WriteString(indentField)
		b.WriteString("<location filename=\"")
		b.WriteString(protect(loc.Filename))
		b.WriteString("\"")
		if loc.Line != "" {
			b.WriteString(" line=\"")
			b.WriteString(protect(loc.Line))
			b.WriteString("\"")
		}
		b.WriteString("/>\n")
	}
	writeField(b, "source", message.Source)
	if message.Comment != "" {
		writeField(b, "comment", message.Comment)
	}
	if message.ExtraComment != "" {
		writeField(b, "extracomment", message.ExtraComment)
	}
	b.WriteString(indentField)
	b.WriteString("<translation")
	if message.Translation.Type != TypeFinished {
		fmt.Fprintf(b, " type=\"%s\"", protect(string(message.Translation.Type)))
	}
	b.WriteString(">")
	b.WriteString(protect(message.Translation.Text))
	b.WriteString("</translation>\n")
	b.WriteString(indentMessage)
	b.WriteString("</message>\n")
}

func writeField(b *strings.Builder, name string, value string) {
	b.WriteString(indentField)
	b.WriteString("<")
	b.WriteString(name)
	b.WriteString(">")
	b.WriteString(protect(value))
	b.WriteString("</")
	b.WriteString(name)
	b.WriteString(">\n")
}

// protect escapes text the way lupdate does, including quotes so the same
// routine serves attributes and character data.
func protect(value string) string {
	var b strings.Builder
	b.Grow(len(value))
	for i := 0; i < len(value); {
		r, size := utf8.DecodeRuneInString(value[i:])
		i += size
		switch {
		case r == '&':
			b.WriteString("&amp;")
		case r == '<':
			b.WriteString("&lt;")
		case r == '>':
			b.WriteString("&gt;")
		case r == '"':
			b.WriteString("&quot;")
		case r == '\'':
			b.WriteString("&apos;")
		case r == '\n' || r == '\t':
			b.WriteRune(r)
		case r < 0x20:
			fmt.Fprintf(&b, "&#x%x;", r)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
