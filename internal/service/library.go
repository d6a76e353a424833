// Package service holds the reader's business services: the library manager
// and the per-document book-state manager.
package service

import (
	"log/slog"
	"slices"
	"time"

	"github.com/codexreader/codex-core/internal/domain"
	"github.com/codexreader/codex-core/internal/errors"
	"github.com/codexreader/codex-core/internal/media/covers"
	"github.com/codexreader/codex-core/internal/normalize"
	"github.com/codexreader/codex-core/internal/store"
)

// LibraryService owns the collection of document metadata records. The
// in-memory collection and the persisted index are kept in sync on every
// mutating call; index write failures are logged and the in-memory view
// stays authoritative for the current process.
type LibraryService struct {
	store  *store.Store
	legacy *store.LegacyStore // optional, read-only fallback for old blobs
	covers *covers.Processor  // optional
	logger *slog.Logger

	books []*domain.DocumentMeta // always sorted by lastReadAt descending

	now func() time.Time
}

// NewLibraryService loads the persisted index and returns a ready service.
// legacy and coverProc may be nil.
func NewLibraryService(s *store.Store, legacy *store.LegacyStore, coverProc *covers.Processor, logger *slog.Logger) (*LibraryService, error) {
	books, err := s.LoadLibraryIndex()
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeStorage, "load library index")
	}

	svc := &LibraryService{
		store:  s,
		legacy: legacy,
		covers: coverProc,
		logger: logger,
		books:  books,
		now:    time.Now,
	}
	svc.sort()
	return svc, nil
}

// Add imports a file into the library. The ID is derived from the file name
// and size, so re-adding the same file resolves to the existing record: only
// its lastReadAt is refreshed and the byte blob is not rewritten.
//
// A blob write failure is logged but does not abort the import - the
// metadata record is still created so the user sees the entry; a later
// GetBytes for it will simply miss.
func (l *LibraryService) Add(fileBytes []byte, fileName string, fileSizeBytes int64) *domain.DocumentMeta {
	id := domain.DocumentID(fileName, fileSizeBytes)
	nowMs := l.now().UnixMilli()

	if existing := l.find(id); existing != nil {
		existing.LastReadAt = nowMs
		l.sort()
		l.persistIndex()
		return existing
	}

	if err := l.store.PutBlob(id, fileBytes); err != nil {
		l.logger.Error("failed to store document bytes", "id", id, "error", err)
	}

	meta := domain.NewDocumentMeta(fileName, fileSizeBytes, nowMs)
	l.books = append([]*domain.DocumentMeta{meta}, l.books...)
	l.persistIndex()
	return meta
}

// Update merges the partial update into the matching record, re-sorts by
// lastReadAt descending and persists the index. Unknown IDs are a silent
// no-op.
func (l *LibraryService) Update(id string, u domain.MetaUpdate) {
	meta := l.find(id)
	if meta == nil {
		return
	}
	meta.Apply(u)
	l.sort()
	l.persistIndex()
}

// Remove deletes the byte blob, the per-document state blob and the metadata
// record, in that order. Each deletion is best-effort: failures are logged
// and do not block the others.
func (l *LibraryService) Remove(id string) {
	if err := l.store.DeleteBlob(id); err != nil {
		l.logger.Error("failed to delete document bytes", "id", id, "error", err)
	}
	if l.legacy != nil {
		if err := l.legacy.DeleteBlob(id); err != nil {
			l.logger.Error("failed to delete legacy document bytes", "id", id, "error", err)
		}
	}
	if err := l.store.DeleteState(id); err != nil {
		l.logger.Error("failed to delete document state", "id", id, "error", err)
	}

	l.books = slices.DeleteFunc(l.books, func(m *domain.DocumentMeta) bool {
		return m.ID == id
	})
	l.persistIndex()
}

// GetBytes returns a document's stored bytes. The primary store is checked
// first; on a miss the legacy base64 store is consulted and decoded on the
// fly. Returns a not-found error when neither source has data.
func (l *LibraryService) GetBytes(id string) ([]byte, error) {
	data, err := l.store.GetBlob(id)
	if err == nil {
		return data, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		l.logger.Error("failed to read document bytes", "id", id, "error", err)
		return nil, errors.NotFoundf("no stored bytes for %s", id)
	}

	if l.legacy != nil {
		data, err = l.legacy.GetBlob(id)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, store.ErrNotFound) {
			l.logger.Error("failed to read legacy document bytes", "id", id, "error", err)
		}
	}

	return nil, errors.NotFoundf("no stored bytes for %s", id)
}

// List returns the library sorted by lastReadAt descending.
func (l *LibraryService) List() []*domain.DocumentMeta {
	out := make([]*domain.DocumentMeta, len(l.books))
	copy(out, l.books)
	return out
}

// Get returns the metadata record for id, or nil if absent.
func (l *LibraryService) Get(id string) *domain.DocumentMeta {
	return l.find(id)
}

// AttachCover processes a rendered first-page image into a thumbnail and
// blurhash placeholder and records them on the document. No-op if the
// service was built without a cover processor or the ID is unknown.
func (l *LibraryService) AttachCover(id string, imageData []byte) {
	if l.covers == nil || l.find(id) == nil {
		return
	}

	cover, err := l.covers.Process(imageData)
	if err != nil {
		l.logger.Warn("failed to process cover image", "id", id, "error", err)
		return
	}

	coverKey := id + ":cover"
	if err := l.store.PutBlob(coverKey, cover.Thumbnail); err != nil {
		l.logger.Error("failed to store cover thumbnail", "id", id, "error", err)
		return
	}

	l.Update(id, domain.MetaUpdate{
		CoverRef:      &coverKey,
		CoverBlurhash: &cover.Blurhash,
	})
}

// GetCover returns a previously attached cover thumbnail.
func (l *LibraryService) GetCover(id string) ([]byte, error) {
	meta := l.find(id)
	if meta == nil || meta.CoverRef == "" {
		return nil, errors.NotFoundf("no cover for %s", id)
	}
	return l.store.GetBlob(meta.CoverRef)
}

func (l *LibraryService) find(id string) *domain.DocumentMeta {
	for _, m := range l.books {
		if m.ID == id {
			return m
		}
	}
	return nil
}

// sort orders by lastReadAt descending, folding titles for a stable
// tiebreak so identically-timed entries keep a deterministic order.
func (l *LibraryService) sort() {
	slices.SortStableFunc(l.books, func(a, b *domain.DocumentMeta) int {
		if a.LastReadAt != b.LastReadAt {
			if a.LastReadAt > b.LastReadAt {
				return -1
			}
			return 1
		}
		return normalize.Compare(a.Title, b.Title)
	})
}

// persistIndex writes the index before returning so a subsequent List in
// the same process observes the update. Write failures are logged only.
func (l *LibraryService) persistIndex() {
	if err := l.store.SaveLibraryIndex(l.books); err != nil {
		l.logger.Error("failed to persist library index", "error", err)
	}
}
