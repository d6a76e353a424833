// Package store persists the library index, document byte blobs and
// per-document reader state in a Badger database. A separate read-only
// legacy store (see legacy.go) holds blobs written by older builds.
package store

import (
	"encoding/json/v2"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"

	"github.com/codexreader/codex-core/internal/domain"
)

// Key layout. The library index lives under a single fixed key; blobs and
// state are namespaced per document ID.
const (
	libraryIndexKey = "library:index"
	blobPrefix      = "blob:"
	statePrefix     = "state:"
)

// ErrNotFound is returned when a key has no stored value.
var ErrNotFound = errors.New("store: key not found")

// Store wraps a Badger database instance.
type Store struct {
	db     *badger.DB
	logger *slog.Logger
}

// New creates a new Store instance with the given database path.
func New(path string, logger *slog.Logger) (*Store, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil            // Disable Badger's internal logging
	opts.SyncWrites = true       // Ensure writes are synced to disk to prevent corruption on crashes
	opts.CompactL0OnClose = true // Compact L0 tables on close for faster startup

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger db: %w", err)
	}

	store := &Store{
		db:     db,
		logger: logger,
	}

	if logger != nil {
		logger.Info("Badger database opened successfully", "path", path)
	}

	return store, nil
}

// Close gracefully closes the database connection.
func (s *Store) Close() error {
	if s.logger != nil {
		s.logger.Info("Closing database connection")
	}
	return s.db.Close()
}

// Helper methods for database operations.

// getJSON retrieves a JSON value by key.
func (s *Store) getJSON(key []byte, dest any) error {
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, dest)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return ErrNotFound
	}
	return err
}

// setJSON stores a JSON-serialized value by key.
func (s *Store) setJSON(key []byte, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, data)
	})
}

// delete removes a key from the database.
func (s *Store) delete(key []byte) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(key)
	})
}

// LoadLibraryIndex reads the serialized library index. A missing index is
// not an error: a fresh install simply has an empty library.
func (s *Store) LoadLibraryIndex() ([]*domain.DocumentMeta, error) {
	var metas []*domain.DocumentMeta
	err := s.getJSON([]byte(libraryIndexKey), &metas)
	if errors.Is(err, ErrNotFound) {
		return []*domain.DocumentMeta{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load library index: %w", err)
	}
	return metas, nil
}

// SaveLibraryIndex writes the full library index under its fixed key.
func (s *Store) SaveLibraryIndex(metas []*domain.DocumentMeta) error {
	if err := s.setJSON([]byte(libraryIndexKey), metas); err != nil {
		return fmt.Errorf("save library index: %w", err)
	}
	return nil
}

// PutBlob stores a document's raw bytes.
func (s *Store) PutBlob(id string, data []byte) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(blobPrefix+id), data)
	})
}

// GetBlob retrieves a document's raw bytes. Returns ErrNotFound if the
// primary store has no entry; callers fall back to the legacy store.
func (s *Store) GetBlob(id string) ([]byte, error) {
	var data []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(blobPrefix + id))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get blob %s: %w", id, err)
	}
	return data, nil
}

// DeleteBlob removes a document's raw bytes.
func (s *Store) DeleteBlob(id string) error {
	return s.delete([]byte(blobPrefix + id))
}

// LoadState reads the persisted reader state for a document.
func (s *Store) LoadState(id string) (*domain.DocumentState, error) {
	var state domain.DocumentState
	if err := s.getJSON([]byte(statePrefix+id), &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// SaveState writes the full reader state for a document.
func (s *Store) SaveState(id string, state *domain.DocumentState) error {
	if err := s.setJSON([]byte(statePrefix+id), state); err != nil {
		return fmt.Errorf("save state %s: %w", id, err)
	}
	return nil
}

// DeleteState removes the persisted reader state for a document.
func (s *Store) DeleteState(id string) error {
	return s.delete([]byte(statePrefix + id))
}
