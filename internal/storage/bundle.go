package storage

import (
	"context"
	"errors"
	"fmt"

	i18ncatalog "github.com/louisbranch/fillari-i18n/internal/platform/i18n/catalog"
)

// ErrEmpty indicates the store holds no catalogs.
var ErrEmpty = errors.New("catalog store is empty")

// LoadBundle rebuilds a catalog bundle from every translation set in store.
func LoadBundle(ctx context.Context, store Store, opts i18ncatalog.Options) (*i18ncatalog.Bundle, error) {
	if store == nil {
		return nil, errors.New("catalog store is required")
	}
	catalogs, err := store.ListCatalogs(ctx)
	if err != nil {
		return nil, err
	}
	if len(catalogs) == 0 {
		return nil, ErrEmpty
	}
	sources := make([]i18ncatalog.Source, 0, len(catalogs))
	for _, record := range catalogs {
		messages, err := store.AllMessages(ctx, record.Locale)
		if err != nil {
			return nil, fmt.Errorf("read messages for %s: %w", record.Locale, err)
		}
		file, err := ToFile(record, messages)
		if err != nil {
			return nil, fmt.Errorf("rebuild %s: %w", record.FileName, err)
		}
		sources = append(sources, i18ncatalog.Source{Name: record.FileName, File: file})
	}
	return i18ncatalog.NewBundle(opts, sources...)
}
