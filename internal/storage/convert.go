package storage

import (
	"fmt"
	"strings"
	"time"

	"github.com/louisbranch/fillari-i18n/internal/platform/i18n/tsfile"
)

// FromFile flattens a parsed translation set into records for locale.
func FromFile(locale string, fileName string, file tsfile.File, importedAt time.Time) (CatalogRecord, []MessageRecord) {
	importedAt = importedAt.UTC()
	messages := make([]MessageRecord, 0, len(file.Messages()))
	position := 0
	for _, context := range file.Contexts {
		for _, message := range context.Messages {
			record := MessageRecord{
				Locale:          locale,
				Position:        position,
				ContextName:     context.Name,
				ID:              message.ID,
				Source:          message.Source,
				Comment:         message.Comment,
				ExtraComment:    message.ExtraComment,
				Translation:     message.Translation.Text,
				TranslationType: string(message.Translation.Type),
				UpdatedAt:       importedAt,
			}
			for _, loc := range message.Locations {
				record.Locations = append(record.Locations, Location{Filename: loc.Filename, Line: loc.Line})
			}
			messages = append(messages, record)
			position++
		}
	}
	catalog := CatalogRecord{
		Locale:         locale,
		FileName:       fileName,
		Version:        file.Version,
		Language:       file.Language,
		SourceLanguage: file.SourceLanguage,
		MessageCount:   len(messages),
		ImportedAt:     importedAt,
	}
	return catalog, messages
}

// ToFile rebuilds a translation set from stored records. Messages must be in
// position order; consecutive messages sharing a context name are regrouped.
func ToFile(catalog CatalogRecord, messages []MessageRecord) (tsfile.File, error) {
	file := tsfile.File{
		Version:        catalog.Version,
		Language:       catalog.Language,
		SourceLanguage: catalog.SourceLanguage,
	}
	last := -1
	for _, record := range messages {
		if record.Locale != catalog.Locale {
			return tsfile.File{}, fmt.Errorf("message %s belongs to locale %q, not %q", record.ID, record.Locale, catalog.Locale)
		}
		if record.Position <= last {
			return tsfile.File{}, fmt.Errorf("message %s at position %d is out of order", record.ID, record.Position)
		}
		last = record.Position
		if strings.TrimSpace(record.ID) == "" {
			return tsfile.File{}, fmt.Errorf("message at position %d: %w", record.Position, ErrInvalidRecord)
		}

		n := len(file.Contexts)
		if n == 0 || file.Contexts[n-1].Name != record.ContextName {
			file.Contexts = append(file.Contexts, tsfile.Context{Name: record.ContextName})
			n++
		}
		message := tsfile.Message{
			ID:           record.ID,
			Source:       record.Source,
			Comment:      record.Comment,
			ExtraComment: record.ExtraComment,
			Translation: tsfile.Translation{
				Type: tsfile.TranslationType(record.TranslationType),
				Text: record.Translation,
			},
		}
		for _, loc := range record.Locations {
			message.Locations = append(message.Locations, tsfile.Location{Filename: loc.Filename, Line: loc.Line})
		}
		file.Contexts[n-1].Messages = append(file.Contexts[n-1].Messages, message)
	}
	if len(file.Contexts) == 0 {
		file.Contexts = []tsfile.Context{{}}
	}
	return file, nil
}
