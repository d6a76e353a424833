package render

import (
	"context"
	"image"
	"log/slog"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/google/uuid"

	"github.com/codexreader/codex-core/internal/engine"
	"github.com/codexreader/codex-core/internal/errors"
)

// DefaultCacheSize bounds how many rendered pages are retained. Enough for
// the visible spread plus prefetch in both directions.
const DefaultCacheSize = 16

// Key identifies a cached render. Scale is stored in percent so the key is
// comparable; zoom steps are coarse enough that this loses nothing.
type Key struct {
	Page     int
	ScalePct int
}

// RenderedPage is a completed page render.
type RenderedPage struct {
	Page     int
	Scale    float64
	Image    *image.RGBA
	Viewport engine.Viewport
}

// Loader renders pages through the engine with an LRU cache in front. Each
// Reset (new document, or anything that invalidates prior renders) bumps a
// generation token; renders that finish under a stale token are discarded
// rather than cached, so a rapid document switch can never publish pixels
// from the previous document.
type Loader struct {
	logger *slog.Logger

	mu         sync.Mutex
	doc        engine.Document
	cache      *lru.Cache[Key, *RenderedPage]
	generation uuid.UUID
}

// NewLoader creates a loader with no document attached.
func NewLoader(logger *slog.Logger) (*Loader, error) {
	cache, err := lru.New[Key, *RenderedPage](DefaultCacheSize)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "create render cache")
	}
	return &Loader{
		logger:     logger,
		cache:      cache,
		generation: uuid.New(),
	}, nil
}

// Reset attaches a document (nil detaches), clears the cache and
// invalidates every in-flight render.
func (l *Loader) Reset(doc engine.Document) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.doc = doc
	l.cache.Purge()
	l.generation = uuid.New()
	if l.logger != nil {
		l.logger.Debug("render cache reset", "generation", l.generation)
	}
}

// Load returns the rendered page at the given 1-indexed page number and
// scale, from cache when possible. A render that completes after a Reset
// returns a cancellation error and is not cached.
func (l *Loader) Load(ctx context.Context, pageNumber int, scale float64) (*RenderedPage, error) {
	key := Key{Page: pageNumber, ScalePct: int(scale*100 + 0.5)}

	l.mu.Lock()
	doc := l.doc
	gen := l.generation
	if cached, ok := l.cache.Get(key); ok {
		l.mu.Unlock()
		return cached, nil
	}
	l.mu.Unlock()

	if doc == nil {
		return nil, errors.Load("no document attached")
	}

	page, err := doc.Page(pageNumber)
	if err != nil {
		return nil, errors.Wrapf(err, errors.CodeLoad, "load page %d", pageNumber)
	}

	vp := page.Viewport(scale)
	surface := NewImageSurface()
	if err := page.Render(ctx, surface, vp); err != nil {
		return nil, errors.Wrapf(err, errors.CodeLoad, "render page %d", pageNumber)
	}

	rendered := &RenderedPage{
		Page:     pageNumber,
		Scale:    scale,
		Image:    surface.Image(),
		Viewport: vp,
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.generation != gen {
		return nil, errors.Canceled("render superseded by document change")
	}
	l.cache.Add(key, rendered)
	return rendered, nil
}

// Contains reports whether a render is already cached.
func (l *Loader) Contains(pageNumber int, scale float64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cache.Contains(Key{Page: pageNumber, ScalePct: int(scale*100 + 0.5)})
}
