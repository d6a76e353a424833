// Package observe is a small in-process event hub. Reader components publish
// state changes (page turns, zoom, chrome visibility) and views subscribe
// without the components knowing about each other.
package observe

import (
	"sync"
)

// Topic names an event stream.
type Topic string

// Topics published by the reader core.
const (
	TopicPageChanged   Topic = "page.changed"
	TopicZoomChanged   Topic = "zoom.changed"
	TopicChromeChanged Topic = "chrome.changed"
	TopicStatsFlushed  Topic = "stats.flushed"
	TopicLibraryUpdate Topic = "library.updated"
)

// Handler receives event payloads for a topic.
type Handler func(payload any)

// Hub dispatches events to subscribers. Emit runs handlers synchronously on
// the caller's goroutine; handlers must be quick and must not re-enter the
// hub's own lock path via Subscribe or Emit on the same goroutine chain.
type Hub struct {
	mu     sync.RWMutex
	nextID int
	subs   map[Topic]map[int]Handler
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[Topic]map[int]Handler)}
}

// Subscribe registers a handler for a topic and returns an unsubscribe
// function. Unsubscribing twice is harmless.
func (h *Hub) Subscribe(topic Topic, fn Handler) func() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.nextID++
	id := h.nextID
	if h.subs[topic] == nil {
		h.subs[topic] = make(map[int]Handler)
	}
	h.subs[topic][id] = fn

	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.subs[topic], id)
	}
}

// Emit delivers a payload to every handler subscribed to the topic.
func (h *Hub) Emit(topic Topic, payload any) {
	h.mu.RLock()
	handlers := make([]Handler, 0, len(h.subs[topic]))
	for _, fn := range h.subs[topic] {
		handlers = append(handlers, fn)
	}
	h.mu.RUnlock()

	for _, fn := range handlers {
		fn(payload)
	}
}
