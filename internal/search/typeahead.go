package search

import (
	"context"
	"sync"
	"time"

	"github.com/bep/debounce"
)

// DefaultTypeAheadDelay coalesces keystrokes before a query runs.
const DefaultTypeAheadDelay = 250 * time.Millisecond

// TypeAhead runs queries against a DocumentIndex as the user types,
// debouncing input so only the final term of a burst hits the index.
// Each keystroke cancels the query context of the previous burst, so a
// slow query superseded by newer input stops instead of delivering stale
// results. Results are delivered to the callback on the debounce timer's
// goroutine.
type TypeAhead struct {
	index   *DocumentIndex
	deliver func(term string, results []Result, err error)

	mu        sync.Mutex
	term      string
	cancel    context.CancelFunc
	closed    bool
	debounced func(func())
}

// NewTypeAhead wires a debounced query path to the index.
func NewTypeAhead(index *DocumentIndex, delay time.Duration, deliver func(term string, results []Result, err error)) *TypeAhead {
	if delay <= 0 {
		delay = DefaultTypeAheadDelay
	}
	return &TypeAhead{
		index:     index,
		deliver:   deliver,
		debounced: debounce.New(delay),
	}
}

// Input records the latest search text and schedules a query, canceling any
// query still running for earlier input.
func (t *TypeAhead) Input(term string) {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}
	if t.cancel != nil {
		t.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	t.cancel = cancel
	t.term = term
	t.mu.Unlock()

	t.debounced(func() { t.run(ctx) })
}

// Close cancels any pending or in-flight query. Nothing is delivered after
// Close returns.
func (t *TypeAhead) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = true
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
}

func (t *TypeAhead) run(ctx context.Context) {
	t.mu.Lock()
	term := t.term
	t.mu.Unlock()

	if ctx.Err() != nil {
		return
	}
	results, err := t.index.Query(ctx, term)
	if ctx.Err() != nil {
		return
	}
	t.deliver(term, results, err)
}
