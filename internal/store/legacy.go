package store

import (
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"

	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

// LegacyStore reads the flat store written by pre-1.0 builds, which kept
// document bytes as base64 text in a single sqlite table under the same
// key pattern as the primary store. It is a read-only fallback: entries are
// decoded on the fly and never migrated into the primary store.
type LegacyStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// OpenLegacy opens (or creates empty) the legacy flat store at path.
func OpenLegacy(path string, logger *slog.Logger) (*LegacyStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open legacy store: %w", err)
	}

	// Idempotent: a fresh install gets an empty table and every lookup
	// misses, which is the correct behavior for users with no legacy data.
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS blobs (
		key  TEXT PRIMARY KEY,
		data TEXT NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init legacy store schema: %w", err)
	}

	return &LegacyStore{db: db, logger: logger}, nil
}

// Close closes the underlying database.
func (l *LegacyStore) Close() error {
	return l.db.Close()
}

// GetBlob retrieves and decodes a document's bytes from the legacy base64
// encoding. Returns ErrNotFound when no legacy entry exists.
func (l *LegacyStore) GetBlob(id string) ([]byte, error) {
	var encoded string
	err := l.db.QueryRow(`SELECT data FROM blobs WHERE key = ?`, blobPrefix+id).Scan(&encoded)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("legacy get blob %s: %w", id, err)
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("legacy blob %s is not valid base64: %w", id, err)
	}
	return data, nil
}

// DeleteBlob removes a legacy entry. Used only by library removal cleanup so
// deleted documents do not resurrect through the fallback path.
func (l *LegacyStore) DeleteBlob(id string) error {
	_, err := l.db.Exec(`DELETE FROM blobs WHERE key = ?`, blobPrefix+id)
	return err
}

// PutBlob writes a base64-encoded entry. The reader never calls this; it
// exists for test fixtures that simulate data left behind by old builds.
func (l *LegacyStore) PutBlob(id string, data []byte) error {
	encoded := base64.StdEncoding.EncodeToString(data)
	_, err := l.db.Exec(
		`INSERT INTO blobs (key, data) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET data = excluded.data`,
		blobPrefix+id, encoded,
	)
	return err
}
