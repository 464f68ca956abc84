package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	i18ncatalog "github.com/louisbranch/fillari-i18n/internal/platform/i18n/catalog"
)

type memoryStore struct {
	catalogs []CatalogRecord
	messages map[string][]MessageRecord
	err      error
}

func (m *memoryStore) PutCatalog(_ context.Context, catalog CatalogRecord, messages []MessageRecord) error {
	m.catalogs = append(m.catalogs, catalog)
	if m.messages == nil {
		m.messages = map[string][]MessageRecord{}
	}
	m.messages[catalog.Locale] = messages
	return nil
}

func (m *memoryStore) ReplaceCatalogs(ctx context.Context, sets []CatalogSet) error {
	m.catalogs = nil
	m.messages = nil
	for _, set := range sets {
		if err := m.PutCatalog(ctx, set.Catalog, set.Messages); err != nil {
			return err
		}
	}
	return nil
}

func (m *memoryStore) GetCatalog(_ context.Context, locale string) (CatalogRecord, error) {
	for _, catalog := range m.catalogs {
		if catalog.Locale == locale {
			return catalog, nil
		}
	}
	return CatalogRecord{}, ErrNotFound
}

func (m *memoryStore) ListCatalogs(context.Context) ([]CatalogRecord, error) {
	return m.catalogs, m.err
}

func (m *memoryStore) DeleteCatalog(context.Context, string) error { return nil }

func (m *memoryStore) GetMessage(context.Context, string, string) (MessageRecord, error) {
	return MessageRecord{}, ErrNotFound
}

func (m *memoryStore) ListMessages(context.Context, string, int, string) (MessagePage, error) {
	return MessagePage{}, nil
}

func (m *memoryStore) AllMessages(_ context.Context, locale string) ([]MessageRecord, error) {
	return m.messages[locale], nil
}

func (m *memoryStore) Close() error { return nil }

func TestLoadBundleFromStore(t *testing.T) {
	store := &memoryStore{}
	if _, err := LoadBundle(context.Background(), store, i18ncatalog.Options{}); !errors.Is(err, ErrEmpty) {
		t.Fatalf("err = %v, want ErrEmpty", err)
	}

	shipped := i18ncatalog.Default()
	for _, locale := range shipped.Locales() {
		c, _ := shipped.Catalog(locale)
		record, messages := FromFile(locale, c.FileName, c.File, time.Now())
		if err := store.PutCatalog(context.Background(), record, messages); err != nil {
			t.Fatalf("put %s: %v", locale, err)
		}
	}

	bundle, err := LoadBundle(context.Background(), store, i18ncatalog.Options{})
	if err != nil {
		t.Fatalf("load bundle: %v", err)
	}
	if got := bundle.Sprintf("fi", "fillari-distance-km", "4"); got != "4 km" {
		t.Fatalf("sprintf = %q", got)
	}
	if len(bundle.Entries("fi")) != 32 {
		t.Fatalf("fi entries = %d", len(bundle.Entries("fi")))
	}
}

func TestLoadBundlePropagatesStoreErrors(t *testing.T) {
	want := errors.New("locked")
	if _, err := LoadBundle(context.Background(), &memoryStore{err: want}, i18ncatalog.Options{}); !errors.Is(err, want) {
		t.Fatalf("err = %v, want %v", err, want)
	}
	if _, err := LoadBundle(context.Background(), nil, i18ncatalog.Options{}); err == nil {
		t.Fatal("expected nil store error")
	}
}
