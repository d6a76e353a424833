package service

import (
	"log/slog"

	"github.com/codexreader/codex-core/internal/config"
	"github.com/codexreader/codex-core/internal/domain"
	"github.com/codexreader/codex-core/internal/stats"
	"github.com/codexreader/codex-core/internal/store"
	"github.com/codexreader/codex-core/internal/ui"
	"github.com/codexreader/codex-core/internal/viewport"
)

// SessionFactory builds the per-document collaborators for a reading
// session with the application's configured tuning: the save debounce goes
// into the state manager, flush cadence and retention into the statistics
// tracker, zoom bounds into the viewport controller and the idle delay into
// the immersive chrome. Components stay constructible on their own with
// defaults; the factory is where configuration reaches them.
type SessionFactory struct {
	store  *store.Store
	cfg    *config.Config
	logger *slog.Logger
}

// NewSessionFactory creates a factory over the primary store and the loaded
// configuration.
func NewSessionFactory(s *store.Store, cfg *config.Config, logger *slog.Logger) *SessionFactory {
	return &SessionFactory{store: s, cfg: cfg, logger: logger}
}

// OpenBookState creates the state manager for one document with the
// configured save debounce.
func (f *SessionFactory) OpenBookState(docID string) *BookStateService {
	return NewBookStateService(f.store, docID, f.logger,
		WithSaveDebounce(f.cfg.Reader.SaveDebounce))
}

// NewTracker creates the statistics tracker for one document with the
// configured flush interval and retention window.
func (f *SessionFactory) NewTracker(sessions []domain.ReadingSession, currentPage int, sink stats.Sink) *stats.Tracker {
	return stats.NewTracker(sessions, currentPage, sink, f.logger,
		stats.WithFlushInterval(f.cfg.Reader.StatsFlushInterval),
		stats.WithRetentionDays(f.cfg.Reader.SessionRetentionDays))
}

// NewViewport creates a zoom-pan controller bounded by the configured zoom
// range.
func (f *SessionFactory) NewViewport() *viewport.Controller {
	return viewport.New(viewport.Config{
		MinZoom:  f.cfg.Viewport.MinZoom,
		MaxZoom:  f.cfg.Viewport.MaxZoom,
		ZoomStep: f.cfg.Viewport.ZoomStep,
	})
}

// NewImmersive creates an immersive-chrome controller with the configured
// idle delay. Further options (callbacks) are applied on top.
func (f *SessionFactory) NewImmersive(opts ...ui.Option) *ui.Immersive {
	return ui.New(append([]ui.Option{ui.WithHideDelay(f.cfg.UI.IdleHideDelay)}, opts...)...)
}
