// Package media tracks the embedded media of the current slide and routes
// playback actions to the right overlay through the UI task queue.
package media

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/beamview/beamview/internal/geometry"
	"github.com/beamview/beamview/internal/overlay"
)

// Item describes one embedded media on a slide.
type Item struct {
	ID           string
	Path         string
	Placement    geometry.Rect
	ShowControls bool
	AutoPlay     bool
}

// Factory builds the host-side pieces of a media overlay (panel, transport,
// backend) and assembles the overlay itself. The resolver passed in must be
// used for the overlay's callbacks so actions round-trip through the manager.
type Factory func(item Item, pageType geometry.PageType, resolver overlay.CallbackResolver) (*overlay.MediaOverlay, error)

// Manager owns the media overlays of the current slide. It implements the
// overlay CallbackResolver contract; all playback actions go through the
// task queue because backends must only be driven from the UI thread.
type Manager struct {
	queue   *overlay.TaskQueue
	factory Factory
	logger  zerolog.Logger

	// mu guards the registry: backend reader goroutines and duration probes
	// resolve media ids while the UI thread is still swapping slides.
	mu       sync.Mutex
	overlays map[string]*overlay.MediaOverlay
}

// NewManager creates an empty media manager.
func NewManager(queue *overlay.TaskQueue, factory Factory, logger zerolog.Logger) *Manager {
	return &Manager{
		queue:    queue,
		factory:  factory,
		logger:   logger.With().Str("component", "media").Logger(),
		overlays: make(map[string]*overlay.MediaOverlay),
	}
}

// Replace hides and drops the overlays of the previous slide and builds
// overlays for the given items. Media that should autoplay is started.
func (m *Manager) Replace(items []Item, pageType geometry.PageType) error {
	m.mu.Lock()
	previous := m.overlays
	m.overlays = make(map[string]*overlay.MediaOverlay, len(items))
	m.mu.Unlock()

	for id, ov := range previous {
		m.postHide(id, ov)
	}

	for _, item := range items {
		ov, err := m.factory(item, pageType, m)
		if err != nil {
			return fmt.Errorf("failed to build overlay for %s: %w", item.ID, err)
		}
		if err := ov.SetFile(item.Path); err != nil {
			return fmt.Errorf("failed to bind %s: %w", item.ID, err)
		}

		m.mu.Lock()
		m.overlays[item.ID] = ov
		m.mu.Unlock()

		ov.Show()
		if item.AutoPlay {
			m.Play(item.ID)
		}
	}
	return nil
}

// overlayFor resolves a media id against the current slide. Queued tasks
// resolve through it on the UI thread, so a stale id posted around a slide
// change lands on nothing instead of a dropped overlay.
func (m *Manager) overlayFor(mediaID string) (*overlay.MediaOverlay, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ov, ok := m.overlays[mediaID]
	return ov, ok
}

// current returns a snapshot of the registry for iteration.
func (m *Manager) current() map[string]*overlay.MediaOverlay {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]*overlay.MediaOverlay, len(m.overlays))
	for id, ov := range m.overlays {
		out[id] = ov
	}
	return out
}

// Resolve returns the bound handler for an action on a media id (the
// CallbackResolver contract). Unknown actions resolve to a logging no-op.
func (m *Manager) Resolve(action, mediaID string) func(float64) {
	switch action {
	case overlay.ActionPlay:
		return func(float64) { m.Play(mediaID) }
	case overlay.ActionHide:
		return func(float64) { m.Hide(mediaID) }
	case overlay.ActionPlayPause:
		return func(float64) { m.PlayPause(mediaID) }
	case overlay.ActionSetTime:
		return func(t float64) { m.SetTime(mediaID, t) }
	default:
		m.logger.Error().Str("action", action).Msg("unknown media action requested")
		return func(float64) {}
	}
}

// Play shows the overlay and starts playback on the UI thread.
func (m *Manager) Play(mediaID string) {
	m.queue.Post("play "+mediaID, func() bool {
		ov, ok := m.overlayFor(mediaID)
		if !ok {
			m.logger.Warn().Str("media", mediaID).Msg("play for unknown media")
			return false
		}
		ov.Show()
		return ov.Backend().DoPlay()
	})
}

// Hide stops and detaches the overlay on the UI thread.
func (m *Manager) Hide(mediaID string) {
	m.queue.Post("hide "+mediaID, func() bool {
		if ov, ok := m.overlayFor(mediaID); ok {
			ov.Hide()
		}
		return false
	})
}

// postHide schedules stop-and-detach for an overlay already resolved, used
// when dropping the previous slide's media.
func (m *Manager) postHide(mediaID string, ov *overlay.MediaOverlay) {
	m.queue.Post("hide "+mediaID, func() bool {
		ov.Hide()
		return false
	})
}

// PlayPause toggles playback on the UI thread.
func (m *Manager) PlayPause(mediaID string) {
	m.queue.Post("play_pause "+mediaID, func() bool {
		ov, ok := m.overlayFor(mediaID)
		if !ok {
			return false
		}
		return ov.Backend().DoPlayPause()
	})
}

// SetTime seeks on the UI thread.
func (m *Manager) SetTime(mediaID string, t float64) {
	m.queue.Post("set_time "+mediaID, func() bool {
		ov, ok := m.overlayFor(mediaID)
		if !ok {
			return false
		}
		return ov.Backend().DoSetTime(t)
	})
}

// SetDuration forwards a duration-known notification from a backend thread
// onto the UI thread.
func (m *Manager) SetDuration(mediaID string, seconds float64) {
	m.queue.Post("duration "+mediaID, func() bool {
		if ov, ok := m.overlayFor(mediaID); ok {
			ov.UpdateRange(seconds)
		}
		return false
	})
}

// Progress forwards a playback tick from a backend thread onto the UI
// thread.
func (m *Manager) Progress(mediaID string, seconds float64) {
	m.queue.Post("progress "+mediaID, func() bool {
		if ov, ok := m.overlayFor(mediaID); ok {
			ov.UpdateProgress(seconds)
		}
		return false
	})
}

// AdjustMargins recomputes every overlay's margins for a new page-display
// mode and re-applies placement.
func (m *Manager) AdjustMargins(pageType geometry.PageType) {
	for _, ov := range m.current() {
		ov.UpdateMarginsForPage(pageType)
		ov.Resize()
	}
}

// ResizeAll repositions all visible overlays, typically on window resizes.
func (m *Manager) ResizeAll() {
	for _, ov := range m.current() {
		ov.Resize()
	}
}

// HideAll stops and detaches every overlay.
func (m *Manager) HideAll() {
	for id, ov := range m.current() {
		m.postHide(id, ov)
	}
}

// PlayPauseAll toggles playback of every shown overlay, bound to the
// presenter's pause shortcut.
func (m *Manager) PlayPauseAll() {
	for id, ov := range m.current() {
		if ov.IsShown() {
			m.PlayPause(id)
		}
	}
}

// Overlay returns the overlay bound to a media id, if any.
func (m *Manager) Overlay(mediaID string) (*overlay.MediaOverlay, bool) {
	return m.overlayFor(mediaID)
}
