package storage

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound indicates a requested catalog or message is missing.
	ErrNotFound = errors.New("record not found")
	// ErrInvalidRecord indicates a record failed field validation before write.
	ErrInvalidRecord = errors.New("invalid record")
)

// CatalogRecord stores the header of one imported translation set.
type CatalogRecord struct {
	Locale         string
	FileName       string
	Version        string
	Language       string
	SourceLanguage string
	MessageCount   int
	ImportedAt     time.Time
}

// Location is one source reference kept with a message.
type Location struct {
	Filename string `json:"filename"`
	Line     string `json:"line,omitempty"`
}

// MessageRecord stores one translation entry at its document position.
type MessageRecord struct {
	Locale          string
	Position        int
	ContextName     string
	ID              string
	Locations       []Location
	Source          string
	Comment         string
	ExtraComment    string
	Translation     string
	TranslationType string
	UpdatedAt       time.Time
}

// MessagePage stores one page of messages ordered by position.
type MessagePage struct {
	Messages      []MessageRecord
	NextPageToken string
}

// CatalogSet is one locale's catalog header with its messages.
type CatalogSet struct {
	Catalog  CatalogRecord
	Messages []MessageRecord
}

// CatalogStore persists translation sets per locale.
type CatalogStore interface {
	// PutCatalog replaces the catalog and every message of its locale.
	PutCatalog(ctx context.Context, catalog CatalogRecord, messages []MessageRecord) error
	// ReplaceCatalogs makes sets the complete stored content: listed locales
	// are rewritten and every other stored locale is removed.
	ReplaceCatalogs(ctx context.Context, sets []CatalogSet) error
	GetCatalog(ctx context.Context, locale string) (CatalogRecord, error)
	ListCatalogs(ctx context.Context) ([]CatalogRecord, error)
	DeleteCatalog(ctx context.Context, locale string) error
}

// MessageStore reads stored messages.
type MessageStore interface {
	// GetMessage returns the first message with id in document order.
	GetMessage(ctx context.Context, locale string, id string) (MessageRecord, error)
	ListMessages(ctx context.Context, locale string, pageSize int, pageToken string) (MessagePage, error)
	AllMessages(ctx context.Context, locale string) ([]MessageRecord, error)
}

// Store is the full persistence surface used by the tools.
type Store interface {
	CatalogStore
	MessageStore
	Close() error
}
