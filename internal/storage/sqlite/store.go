// Package sqlite provides a SQLite-backed catalog storage implementation.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	sqlitemigrate "github.com/louisbranch/fillari-i18n/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/fillari-i18n/internal/storage"
	"github.com/louisbranch/fillari-i18n/internal/storage/cursor"
	"github.com/louisbranch/fillari-i18n/internal/storage/sqlite/migrations"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

// Store persists translation sets in SQLite.
type Store struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite catalog store and applies embedded migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.ApplyMigrations(ctx, sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *Store) ready(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	return nil
}

// PutCatalog replaces the catalog header and all messages for its locale in
// one transaction.
func (s *Store) PutCatalog(ctx context.Context, catalog storage.CatalogRecord, messages []storage.MessageRecord) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if err := validateCatalog(catalog, messages); err != nil {
		return err
	}
	locale := strings.TrimSpace(catalog.Locale)

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin put catalog: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := putCatalogTx(ctx, tx, catalog, messages); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit put catalog %s: %w", locale, err)
	}
	return nil
}

// ReplaceCatalogs rewrites every locale in sets and deletes stored locales
// that are not listed, all in one transaction.
func (s *Store) ReplaceCatalogs(ctx context.Context, sets []storage.CatalogSet) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	keep := make(map[string]bool, len(sets))
	for _, set := range sets {
		if err := validateCatalog(set.Catalog, set.Messages); err != nil {
			return err
		}
		locale := strings.TrimSpace(set.Catalog.Locale)
		if keep[locale] {
			return fmt.Errorf("catalog %s listed twice: %w", locale, storage.ErrInvalidRecord)
		}
		keep[locale] = true
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace catalogs: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	rows, err := tx.QueryContext(ctx, `SELECT locale FROM catalogs`)
	if err != nil {
		return fmt.Errorf("list stored locales: %w", err)
	}
	var stale []string
	for rows.Next() {
		var locale string
		if err := rows.Scan(&locale); err != nil {
			_ = rows.Close()
			return fmt.Errorf("list stored locales: %w", err)
		}
		if !keep[locale] {
			stale = append(stale, locale)
		}
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return fmt.Errorf("list stored locales: %w", err)
	}
	if err := rows.Close(); err != nil {
		return fmt.Errorf("list stored locales: %w", err)
	}

	for _, locale := range stale {
		if _, err := tx.ExecContext(ctx, `DELETE FROM messages WHERE locale = ?`, locale); err != nil {
			return fmt.Errorf("delete messages for %s: %w", locale, err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM catalogs WHERE locale = ?`, locale); err != nil {
			return fmt.Errorf("delete catalog %s: %w", locale, err)
		}
	}
	for _, set := range sets {
		if err := putCatalogTx(ctx, tx, set.Catalog, set.Messages); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace catalogs: %w", err)
	}
	return nil
}

func validateCatalog(catalog storage.CatalogRecord, messages []storage.MessageRecord) error {
	locale := strings.TrimSpace(catalog.Locale)
	if locale == "" {
		return fmt.Errorf("catalog locale is required: %w", storage.ErrInvalidRecord)
	}
	if strings.TrimSpace(catalog.FileName) == "" {
		return fmt.Errorf("catalog %s: file name is required: %w", locale, storage.ErrInvalidRecord)
	}
	for _, message := range messages {
		if message.Locale != locale {
			return fmt.Errorf("message %s belongs to locale %q: %w", message.ID, message.Locale, storage.ErrInvalidRecord)
		}
		if strings.TrimSpace(message.ID) == "" {
			return fmt.Errorf("message at position %d has no id: %w", message.Position, storage.ErrInvalidRecord)
		}
	}
	return nil
}

// putCatalogTx writes one validated catalog inside tx.
func putCatalogTx(ctx context.Context, tx *sql.Tx, catalog storage.CatalogRecord, messages []storage.MessageRecord) error {
	locale := strings.TrimSpace(catalog.Locale)
	importedAt := catalog.ImportedAt.UTC()
	if importedAt.IsZero() {
		importedAt = time.Now().UTC()
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM messages WHERE locale = ?`, locale); err != nil {
		return fmt.Errorf("clear messages for %s: %w", locale, err)
	}
	if _, err := tx.ExecContext(
		ctx,
		`INSERT INTO catalogs (
		   locale, file_name, version, language, source_language, message_count, imported_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(locale) DO UPDATE SET
		   file_name = excluded.file_name,
		   version = excluded.version,
		   language = excluded.language,
		   source_language = excluded.source_language,
		   message_count = excluded.message_count,
		   imported_at = excluded.imported_at`,
		locale,
		catalog.FileName,
		catalog.Version,
		catalog.Language,
		catalog.SourceLanguage,
		len(messages),
		toMillis(importedAt),
	); err != nil {
		return fmt.Errorf("upsert catalog %s: %w", locale, err)
	}

	stmt, err := tx.PrepareContext(
		ctx,
		`INSERT INTO messages (
		   locale, position, context_name, message_id, locations, source, comment,
		   extra_comment, translation, translation_type, updated_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return fmt.Errorf("prepare message insert: %w", err)
	}
	defer stmt.Close()

	for _, message := range messages {
		locations, err := encodeLocations(message.Locations)
		if err != nil {
			return fmt.Errorf("encode locations for %s: %w", message.ID, err)
		}
		updatedAt := message.UpdatedAt.UTC()
		if updatedAt.IsZero() {
			updatedAt = importedAt
		}
		if _, err := stmt.ExecContext(
			ctx,
			locale,
			message.Position,
			message.ContextName,
			message.ID,
			locations,
			message.Source,
			message.Comment,
			message.ExtraComment,
			message.Translation,
			message.TranslationType,
			toMillis(updatedAt),
		); err != nil {
			if isPositionUniqueViolation(err) {
				return fmt.Errorf("message %s reuses position %d: %w", message.ID, message.Position, storage.ErrInvalidRecord)
			}
			return fmt.Errorf("insert message %s: %w", message.ID, err)
		}
	}
	return nil
}

// GetCatalog returns the header of one stored locale.
func (s *Store) GetCatalog(ctx context.Context, locale string) (storage.CatalogRecord, error) {
	if err := s.ready(ctx); err != nil {
		return storage.CatalogRecord{}, err
	}
	locale = strings.TrimSpace(locale)
	if locale == "" {
		return storage.CatalogRecord{}, fmt.Errorf("locale is required")
	}
	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT locale, file_name, version, language, source_language, message_count, imported_at
		   FROM catalogs
		  WHERE locale = ?`,
		locale,
	)
	record, err := scanCatalog(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.CatalogRecord{}, storage.ErrNotFound
		}
		return storage.CatalogRecord{}, fmt.Errorf("get catalog: %w", err)
	}
	return record, nil
}

// ListCatalogs returns every stored catalog ordered by locale.
func (s *Store) ListCatalogs(ctx context.Context) ([]storage.CatalogRecord, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT locale, file_name, version, language, source_language, message_count, imported_at
		   FROM catalogs
		  ORDER BY locale ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list catalogs: %w", err)
	}
	defer rows.Close()

	var out []storage.CatalogRecord
	for rows.Next() {
		record, err := scanCatalog(rows)
		if err != nil {
			return nil, fmt.Errorf("list catalogs: %w", err)
		}
		out = append(out, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list catalogs: %w", err)
	}
	return out, nil
}

// DeleteCatalog removes a locale and its messages.
func (s *Store) DeleteCatalog(ctx context.Context, locale string) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	locale = strings.TrimSpace(locale)
	if locale == "" {
		return fmt.Errorf("locale is required")
	}
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete catalog: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM messages WHERE locale = ?`, locale); err != nil {
		return fmt.Errorf("delete messages for %s: %w", locale, err)
	}
	result, err := tx.ExecContext(ctx, `DELETE FROM catalogs WHERE locale = ?`, locale)
	if err != nil {
		return fmt.Errorf("delete catalog %s: %w", locale, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete catalog %s: %w", locale, err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete catalog %s: %w", locale, err)
	}
	return nil
}

// GetMessage returns the first message with id in document order.
func (s *Store) GetMessage(ctx context.Context, locale string, id string) (storage.MessageRecord, error) {
	if err := s.ready(ctx); err != nil {
		return storage.MessageRecord{}, err
	}
	locale = strings.TrimSpace(locale)
	id = strings.TrimSpace(id)
	if locale == "" || id == "" {
		return storage.MessageRecord{}, fmt.Errorf("locale and message id are required")
	}
	row := s.sqlDB.QueryRowContext(
		ctx,
		messageColumns+`
		  WHERE locale = ? AND message_id = ?
		  ORDER BY position ASC
		  LIMIT 1`,
		locale,
		id,
	)
	record, err := scanMessage(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.MessageRecord{}, storage.ErrNotFound
		}
		return storage.MessageRecord{}, fmt.Errorf("get message: %w", err)
	}
	return record, nil
}

// ListMessages returns one page of messages ordered by position. Page tokens
// are only valid for the locale that issued them.
func (s *Store) ListMessages(ctx context.Context, locale string, pageSize int, pageToken string) (storage.MessagePage, error) {
	if err := s.ready(ctx); err != nil {
		return storage.MessagePage{}, err
	}
	locale = strings.TrimSpace(locale)
	if locale == "" {
		return storage.MessagePage{}, fmt.Errorf("locale is required")
	}
	if pageSize <= 0 {
		return storage.MessagePage{}, fmt.Errorf("page size must be greater than zero")
	}
	after := -1
	if token := strings.TrimSpace(pageToken); token != "" {
		c, err := cursor.Decode(token)
		if err != nil {
			return storage.MessagePage{}, fmt.Errorf("invalid page token: %w", err)
		}
		if err := cursor.ValidateScope(c, locale); err != nil {
			return storage.MessagePage{}, fmt.Errorf("invalid page token: %w", err)
		}
		after = c.Position
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		messageColumns+`
		  WHERE locale = ? AND position > ?
		  ORDER BY position ASC
		  LIMIT ?`,
		locale,
		after,
		pageSize+1,
	)
	if err != nil {
		return storage.MessagePage{}, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	page := storage.MessagePage{Messages: make([]storage.MessageRecord, 0, pageSize)}
	for rows.Next() {
		record, err := scanMessage(rows)
		if err != nil {
			return storage.MessagePage{}, fmt.Errorf("list messages: %w", err)
		}
		page.Messages = append(page.Messages, record)
	}
	if err := rows.Err(); err != nil {
		return storage.MessagePage{}, fmt.Errorf("list messages: %w", err)
	}
	if len(page.Messages) > pageSize {
		token, err := cursor.Encode(cursor.After(page.Messages[pageSize-1].Position, locale))
		if err != nil {
			return storage.MessagePage{}, fmt.Errorf("list messages: %w", err)
		}
		page.NextPageToken = token
		page.Messages = page.Messages[:pageSize]
	}
	return page, nil
}

// AllMessages returns every message of locale in document order.
func (s *Store) AllMessages(ctx context.Context, locale string) ([]storage.MessageRecord, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	locale = strings.TrimSpace(locale)
	if locale == "" {
		return nil, fmt.Errorf("locale is required")
	}
	rows, err := s.sqlDB.QueryContext(
		ctx,
		messageColumns+`
		  WHERE locale = ?
		  ORDER BY position ASC`,
		locale,
	)
	if err != nil {
		return nil, fmt.Errorf("all messages: %w", err)
	}
	defer rows.Close()

	var out []storage.MessageRecord
	for rows.Next() {
		record, err := scanMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("all messages: %w", err)
		}
		out = append(out, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("all messages: %w", err)
	}
	return out, nil
}

const messageColumns = `SELECT locale, position, context_name, message_id, locations, source, comment,
		        extra_comment, translation, translation_type, updated_at
		   FROM messages`

type scanner interface {
	Scan(dest ...any) error
}

func scanCatalog(row scanner) (storage.CatalogRecord, error) {
	var record storage.CatalogRecord
	var importedAt int64
	if err := row.Scan(
		&record.Locale,
		&record.FileName,
		&record.Version,
		&record.Language,
		&record.SourceLanguage,
		&record.MessageCount,
		&importedAt,
	); err != nil {
		return storage.CatalogRecord{}, err
	}
	record.ImportedAt = fromMillis(importedAt)
	return record, nil
}

func scanMessage(row scanner) (storage.MessageRecord, error) {
	var record storage.MessageRecord
	var locations string
	var updatedAt int64
	if err := row.Scan(
		&record.Locale,
		&record.Position,
		&record.ContextName,
		&record.ID,
		&locations,
		&record.Source,
		&record.Comment,
		&record.ExtraComment,
		&record.Translation,
		&record.TranslationType,
		&updatedAt,
	); err != nil {
		return storage.MessageRecord{}, err
	}
	decoded, err := decodeLocations(locations)
	if err != nil {
		return storage.MessageRecord{}, fmt.Errorf("decode locations for %s: %w", record.ID, err)
	}
	record.Locations = decoded
	record.UpdatedAt = fromMillis(updatedAt)
	return record, nil
}

func encodeLocations(locations []storage.Location) (string, error) {
	if len(locations) == 0 {
		return "", nil
	}
	data, err := json.Marshal(locations)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func decodeLocations(value string) ([]storage.Location, error) {
	if value == "" {
		return nil, nil
	}
	var locations []storage.Location
	if err := json.Unmarshal([]byte(value), &locations); err != nil {
		return nil, err
	}
	return locations, nil
}

func isPositionUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	message := strings.ToLower(err.Error())
	return strings.Contains(message, "unique constraint failed") &&
		strings.Contains(message, "messages.")
}

var _ storage.Store = (*Store)(nil)
