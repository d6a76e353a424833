package service

import (
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/bep/debounce"

	"github.com/codexreader/codex-core/internal/domain"
	"github.com/codexreader/codex-core/internal/errors"
	"github.com/codexreader/codex-core/internal/id"
	"github.com/codexreader/codex-core/internal/store"
	"github.com/codexreader/codex-core/internal/validation"
)

// DefaultSaveDebounce is the trailing window that coalesces rapid state
// mutations into a single persisted write.
const DefaultSaveDebounce = 500 * time.Millisecond

// BookStateService owns the mutable state of one open document. It is
// scoped to a single document ID; opening a different document means
// closing this instance and creating a new one, which preserves the
// single-writer discipline over each state blob.
//
// Storage failures never escape this component: they are logged and the
// in-memory state remains the source of truth for the current process.
type BookStateService struct {
	store    *store.Store
	logger   *slog.Logger
	validate *validation.Validator

	docID string

	mu     sync.Mutex
	state  domain.DocumentState
	closed bool

	saveDelay time.Duration
	debounced func(func())
	now       func() time.Time
}

// BookStateOption configures a BookStateService.
type BookStateOption func(*BookStateService)

// WithSaveDebounce overrides the trailing save window. Non-positive values
// keep the default.
func WithSaveDebounce(d time.Duration) BookStateOption {
	return func(b *BookStateService) {
		if d > 0 {
			b.saveDelay = d
		}
	}
}

// NewBookStateService creates the state manager for one document and loads
// its persisted state, merged field-by-field with defaults. A missing blob
// yields a fresh default state. lastRead is refreshed either way.
func NewBookStateService(s *store.Store, docID string, logger *slog.Logger, opts ...BookStateOption) *BookStateService {
	b := &BookStateService{
		store:     s,
		logger:    logger,
		validate:  validation.New(),
		docID:     docID,
		saveDelay: DefaultSaveDebounce,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	b.debounced = debounce.New(b.saveDelay)
	b.load()
	return b
}

// load reads the persisted blob for the scoped document. Read failures are
// logged and treated as a miss.
func (b *BookStateService) load() {
	nowMs := b.now().UnixMilli()

	loaded, err := b.store.LoadState(b.docID)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			b.logger.Error("failed to load document state", "id", b.docID, "error", err)
		}
		b.state = domain.NewDocumentState(nowMs)
		return
	}

	loaded.Normalize(nowMs)
	b.state = *loaded
}

// State returns a snapshot of the current document state.
func (b *BookStateService) State() domain.DocumentState {
	b.mu.Lock()
	defer b.mu.Unlock()

	snap := b.state
	snap.Highlights = slices.Clone(b.state.Highlights)
	snap.Bookmarks = slices.Clone(b.state.Bookmarks)
	snap.Stats.Sessions = slices.Clone(b.state.Stats.Sessions)
	return snap
}

// SetCurrentPage clamps the requested page and refreshes lastRead. While
// totalPages is still 0 only the lower bound applies.
func (b *BookStateService) SetCurrentPage(page int) {
	b.mu.Lock()
	b.state.CurrentPage = domain.ClampPage(page, b.state.TotalPages)
	b.state.LastRead = b.now().UnixMilli()
	b.mu.Unlock()

	b.scheduleSave()
}

// SetTotalPages records the page count reported by the document engine. The
// current page is not re-clamped retroactively; the next SetCurrentPage
// call applies the new bound.
func (b *BookStateService) SetTotalPages(total int) {
	b.mu.Lock()
	b.state.TotalPages = total
	b.mu.Unlock()

	b.scheduleSave()
}

// UpdateSettings shallow-merges a partial settings update after validating
// it. Settings are never replaced wholesale.
func (b *BookStateService) UpdateSettings(u domain.SettingsUpdate) error {
	if err := b.validate.Validate(u); err != nil {
		return err
	}
	if field, problem, ok := u.Check(); !ok {
		return errors.ValidationWithDetails("invalid settings", map[string]string{field: problem})
	}

	b.mu.Lock()
	b.state.Settings.Apply(u)
	b.mu.Unlock()

	b.scheduleSave()
	return nil
}

// AddHighlight creates a highlight with a fresh ID and timestamp and
// appends it to the collection. Insertion order is irrelevant; consumers
// sort by page number for display.
func (b *BookStateService) AddHighlight(pageNumber int, text string, rects []domain.Rect, color domain.HighlightColor) (*domain.Highlight, error) {
	if !color.Valid() {
		return nil, errors.Validationf("unknown highlight color %q", color)
	}

	hl := domain.Highlight{
		ID:         id.MustGenerate("hl"),
		PageNumber: pageNumber,
		Text:       text,
		Rects:      rects,
		Color:      color,
		CreatedAt:  b.now().UnixMilli(),
	}

	b.mu.Lock()
	b.state.Highlights = append(b.state.Highlights, hl)
	b.mu.Unlock()

	b.scheduleSave()
	return &hl, nil
}

// RemoveHighlight deletes a highlight by ID. Unknown IDs are a silent no-op.
func (b *BookStateService) RemoveHighlight(highlightID string) {
	b.mu.Lock()
	b.state.Highlights = slices.DeleteFunc(b.state.Highlights, func(h domain.Highlight) bool {
		return h.ID == highlightID
	})
	b.mu.Unlock()

	b.scheduleSave()
}

// UpdateHighlightNote replaces the user note on a highlight. Unknown IDs
// are a silent no-op.
func (b *BookStateService) UpdateHighlightNote(highlightID, note string) {
	b.mu.Lock()
	for i := range b.state.Highlights {
		if b.state.Highlights[i].ID == highlightID {
			b.state.Highlights[i].Note = note
			break
		}
	}
	b.mu.Unlock()

	b.scheduleSave()
}

// AddBookmark creates a bookmark for a page. The title must be non-empty;
// substituting a default label ("Page N") is the caller's policy, not this
// component's.
func (b *BookStateService) AddBookmark(title string, pageNumber int) (*domain.Bookmark, error) {
	if title == "" {
		return nil, errors.Validation("bookmark title must not be empty")
	}

	bm := domain.Bookmark{
		ID:         id.MustGenerate("bm"),
		PageNumber: pageNumber,
		Title:      title,
		CreatedAt:  b.now().UnixMilli(),
	}

	b.mu.Lock()
	b.state.Bookmarks = append(b.state.Bookmarks, bm)
	b.mu.Unlock()

	b.scheduleSave()
	return &bm, nil
}

// RemoveBookmark deletes a bookmark by ID. Unknown IDs are a silent no-op.
func (b *BookStateService) RemoveBookmark(bookmarkID string) {
	b.mu.Lock()
	b.state.Bookmarks = slices.DeleteFunc(b.state.Bookmarks, func(bm domain.Bookmark) bool {
		return bm.ID == bookmarkID
	})
	b.mu.Unlock()

	b.scheduleSave()
}

// ReplaceStats swaps in a freshly recomputed statistics aggregate. Called
// only by the statistics tracker on flush.
func (b *BookStateService) ReplaceStats(stats domain.ReadingStats) {
	b.mu.Lock()
	b.state.Stats = stats
	b.mu.Unlock()

	b.scheduleSave()
}

// Flush persists the current state immediately, bypassing the debounce.
func (b *BookStateService) Flush() {
	b.persist()
}

// Close flushes any pending write and disables further persistence. The
// final flush runs before the instance is abandoned so the last few seconds
// of reading position are not lost.
func (b *BookStateService) Close() {
	b.persist()

	b.mu.Lock()
	b.closed = true
	b.mu.Unlock()
}

// scheduleSave arms the trailing debounce. The eventual write serializes
// the state as it is when the timer fires, not a snapshot taken now.
func (b *BookStateService) scheduleSave() {
	b.debounced(b.persist)
}

// persist writes the full state blob. Skipped entirely while totalPages is
// 0: the document has not finished opening and there is nothing meaningful
// to persist yet.
func (b *BookStateService) persist() {
	b.mu.Lock()
	if b.closed || b.state.TotalPages == 0 {
		b.mu.Unlock()
		return
	}
	snap := b.state
	b.mu.Unlock()

	if err := b.store.SaveState(b.docID, &snap); err != nil {
		b.logger.Error("failed to save document state", "id", b.docID, "error", err)
	}
}
