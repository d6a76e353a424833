package stats

import (
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/codexreader/codex-core/internal/domain"
)

// DefaultFlushInterval is how often accumulated reading activity is folded
// into the session history.
const DefaultFlushInterval = time.Minute

// Sink receives the recomputed statistics aggregate on every flush.
type Sink func(domain.ReadingStats)

// Tracker accumulates reading activity for one open document and
// periodically folds it into the per-day session history. One tracker is
// live per open document; switching documents closes the old tracker, which
// flushes the tail of the session first.
type Tracker struct {
	logger *slog.Logger
	sink   Sink

	mu           sync.Mutex
	sessions     []domain.ReadingSession
	sessionStart time.Time
	pagesVisited map[int]struct{}
	lastPage     int
	closed       bool

	interval      time.Duration
	retentionDays int
	now           func() time.Time

	ticker *time.Ticker
	done   chan struct{}
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithFlushInterval overrides the periodic flush interval.
func WithFlushInterval(d time.Duration) Option {
	return func(t *Tracker) { t.interval = d }
}

// WithRetentionDays overrides how many days of session history are kept.
func WithRetentionDays(days int) Option {
	return func(t *Tracker) { t.retentionDays = days }
}

// WithClock overrides the time source. Test hook.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// NewTracker starts tracking from the given session history and current
// page. The current page counts as visited immediately, so opening a
// document and reading a single page for a minute registers one page.
// Call Start to begin periodic flushing.
func NewTracker(sessions []domain.ReadingSession, currentPage int, sink Sink, logger *slog.Logger, opts ...Option) *Tracker {
	t := &Tracker{
		logger:        logger,
		sink:          sink,
		sessions:      slices.Clone(sessions),
		pagesVisited:  make(map[int]struct{}),
		interval:      DefaultFlushInterval,
		retentionDays: DefaultRetentionDays,
		now:           time.Now,
		done:          make(chan struct{}),
	}
	for _, opt := range opts {
		opt(t)
	}

	t.sessionStart = t.now()
	t.lastPage = currentPage
	if currentPage > 0 {
		t.pagesVisited[currentPage] = struct{}{}
	}
	return t
}

// Start begins the periodic flush loop.
func (t *Tracker) Start() {
	t.mu.Lock()
	if t.closed || t.ticker != nil {
		t.mu.Unlock()
		return
	}
	t.ticker = time.NewTicker(t.interval)
	t.mu.Unlock()

	go func() {
		for {
			select {
			case <-t.ticker.C:
				t.Flush()
			case <-t.done:
				return
			}
		}
	}()
}

// OnPageChange records a page visit.
func (t *Tracker) OnPageChange(page int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed || page < 1 {
		return
	}
	t.pagesVisited[page] = struct{}{}
	t.lastPage = page
}

// Flush folds the activity accumulated since the last flush into the session
// history, prunes expired records and pushes the recomputed aggregate to the
// sink. A flush with nothing to report (zero whole minutes elapsed and no
// pages visited) is dropped entirely so idle intervals leave no trace.
func (t *Tracker) Flush() {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}

	now := t.now()
	minutes := int(now.Sub(t.sessionStart) / time.Minute)
	pages := len(t.pagesVisited)

	if minutes == 0 && pages == 0 {
		t.mu.Unlock()
		return
	}

	t.sessions = Merge(t.sessions, DateKey(now), minutes, pages)
	t.sessions = Prune(t.sessions, now, t.retentionDays)
	t.sessionStart = now
	// The next cycle starts on the page the reader is parked on, so a
	// reader who never turns a page still counts it every cycle.
	clear(t.pagesVisited)
	if t.lastPage > 0 {
		t.pagesVisited[t.lastPage] = struct{}{}
	}

	aggregate := Aggregate(t.sessions, now)
	t.mu.Unlock()

	if t.logger != nil {
		t.logger.Debug("flushed reading session",
			"minutes", minutes,
			"pages", pages,
			"current_streak", aggregate.CurrentStreak)
	}
	if t.sink != nil {
		t.sink(aggregate)
	}
}

// Close flushes the tail of the session and stops the flush loop. Safe to
// call more than once.
func (t *Tracker) Close() {
	t.Flush()

	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}
	t.closed = true
	ticker := t.ticker
	t.mu.Unlock()

	if ticker != nil {
		ticker.Stop()
	}
	close(t.done)
}
