// Package ui implements the immersive reading mode: the surrounding chrome
// (toolbars, page controls) hides after a few seconds without input and
// returns on activity.
package ui

import (
	"sync"
	"time"
)

// DefaultHideDelay is how long the chrome stays visible after the last
// qualifying activity.
const DefaultHideDelay = 3 * time.Second

// navigationKeys move through the document without leaving immersive mode.
// Paging is the whole point of reading; it never summons the chrome.
var navigationKeys = map[string]struct{}{
	"ArrowLeft":  {},
	"ArrowRight": {},
	"ArrowUp":    {},
	"ArrowDown":  {},
	"PageUp":     {},
	"PageDown":   {},
}

// Immersive manages chrome visibility for the reading view. The chrome
// starts visible with the hide timer already armed, so a reader who opens a
// document and touches nothing drops into immersive mode after the delay.
type Immersive struct {
	mu      sync.Mutex
	visible bool
	closed  bool

	delay  time.Duration
	timer  *time.Timer
	onHide func()
	onShow func()
}

// Option configures an Immersive controller.
type Option func(*Immersive)

// WithHideDelay overrides the idle delay before the chrome hides.
func WithHideDelay(d time.Duration) Option {
	return func(im *Immersive) { im.delay = d }
}

// WithCallbacks registers visibility-change notifications. Either may be
// nil. Callbacks run on the timer goroutine for hides and on the caller's
// goroutine for shows; they must not call back into the controller.
func WithCallbacks(onShow, onHide func()) Option {
	return func(im *Immersive) {
		im.onShow = onShow
		im.onHide = onHide
	}
}

// New creates the controller with the chrome visible and the hide timer
// running.
func New(opts ...Option) *Immersive {
	im := &Immersive{
		visible: true,
		delay:   DefaultHideDelay,
	}
	for _, opt := range opts {
		opt(im)
	}
	im.timer = time.AfterFunc(im.delay, im.hide)
	return im
}

// Visible reports whether the chrome is currently shown.
func (im *Immersive) Visible() bool {
	im.mu.Lock()
	defer im.mu.Unlock()
	return im.visible
}

// Show reveals the chrome and re-arms the hide timer.
func (im *Immersive) Show() {
	im.mu.Lock()
	defer im.mu.Unlock()
	im.show()
}

// Hide hides the chrome immediately and cancels the pending timer.
func (im *Immersive) Hide() {
	im.mu.Lock()
	defer im.mu.Unlock()
	if im.closed || !im.visible {
		return
	}
	im.timer.Stop()
	im.visible = false
	if im.onHide != nil {
		im.onHide()
	}
}

// Toggle flips visibility: hidden chrome is shown (timer re-armed), visible
// chrome is hidden.
func (im *Immersive) Toggle() {
	im.mu.Lock()
	defer im.mu.Unlock()
	if im.closed {
		return
	}
	if im.visible {
		im.timer.Stop()
		im.visible = false
		if im.onHide != nil {
			im.onHide()
		}
		return
	}
	im.show()
}

// KeyActivity reports a key press. Navigation keys are deliberately
// excluded so paging through a book never interrupts immersive mode.
func (im *Immersive) KeyActivity(key string) {
	if _, nav := navigationKeys[key]; nav {
		return
	}
	im.Show()
}

// PointerActivity reports mouse movement or clicks.
func (im *Immersive) PointerActivity() {
	im.Show()
}

// TouchActivity reports a touch interaction.
func (im *Immersive) TouchActivity() {
	im.Show()
}

// Close stops the timer. The controller ignores all input afterwards.
func (im *Immersive) Close() {
	im.mu.Lock()
	defer im.mu.Unlock()
	if im.closed {
		return
	}
	im.closed = true
	im.timer.Stop()
}

// show re-arms the timer; callers hold the mutex.
func (im *Immersive) show() {
	if im.closed {
		return
	}
	if !im.visible {
		im.visible = true
		if im.onShow != nil {
			im.onShow()
		}
	}
	im.timer.Reset(im.delay)
}

// hide is the timer callback.
func (im *Immersive) hide() {
	im.mu.Lock()
	defer im.mu.Unlock()
	if im.closed || !im.visible {
		return
	}
	im.visible = false
	if im.onHide != nil {
		im.onHide()
	}
}
