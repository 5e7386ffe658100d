// Package overlay implements the presentation viewer's auxiliary overlays: a
// media playback overlay positioned over the current slide, and a software
// laser pointer drawn on top of slide content.
//
// The package is toolkit-agnostic. The GUI host (internal/gui) implements the
// narrow contracts below; everything here runs on the host's single UI thread.
package overlay

import "image"

// HostContainer is the layered slide container overlays attach to. It
// supports child placement with explicit stacking order, size queries and
// redraw requests.
type HostContainer interface {
	// AddOverlay inserts a panel into the display stack at the given order.
	// Higher orders stack above lower ones.
	AddOverlay(p Panel, order int)
	// RemoveOverlay detaches a panel from the display stack.
	RemoveOverlay(p Panel)
	// Size returns the current pixel size of the container.
	Size() (w, h float64)
	// QueueRedraw schedules a repaint of the slide area.
	QueueRedraw()
}

// Panel is a positionable child of the host container.
type Panel interface {
	// SetPixelMargins positions the panel by its distance to the container
	// edges, in pixels.
	SetPixelMargins(left, top, right, bottom float64)
	SetVisible(visible bool)
}

// Transport is the playback toolbar: a seek slider plus a time label.
// SetValue is programmatic and must not be reported back as a user change.
type Transport interface {
	SetVisible(visible bool)
	SetRange(min, max float64)
	SetIncrements(minor, major float64)
	SetValue(v float64)
	SetTimeLabel(text string)
}

// ConfigStore persists user preferences by section and key.
type ConfigStore interface {
	Get(section, key string) (string, error)
	Set(section, key, value string) error
}

// Resolvable media actions, keyed by media id.
const (
	ActionPlay      = "play"
	ActionHide      = "hide"
	ActionPlayPause = "play_pause"
	ActionSetTime   = "set_time"
)

// CallbackResolver decouples an overlay from the application's media
// registry: it returns the bound handler for an action on a given media id.
// Handlers for actions that take no argument ignore the value.
type CallbackResolver interface {
	Resolve(action, mediaID string) func(arg float64)
}

// RedrawFunc requests a repaint of the current slide.
type RedrawFunc func()

// Cursor selects the system cursor shown over the slide surface.
type Cursor int

const (
	// CursorInherited restores the cursor inherited from the parent widget.
	CursorInherited Cursor = iota
	// CursorInvisible hides the system cursor.
	CursorInvisible
)

// Surface is a drawing surface receiving input, with cursor control.
type Surface interface {
	// PixelSize returns the current surface size in pixels.
	PixelSize() (w, h float64)
	// Realized reports whether the surface is mapped on screen yet.
	Realized() bool
	SetCursor(c Cursor)
}

// Canvas is the paint target the pointer icon is drawn onto.
type Canvas interface {
	DrawImage(img image.Image, x, y float64)
}

// EventKind discriminates input events delivered to the overlays.
type EventKind int

const (
	Motion EventKind = iota
	ButtonPress
	ButtonRelease
)

// InputEvent is a pointer input event in surface coordinates. Modifier is
// the pointer-toggle modifier (Ctrl on desktop hosts).
type InputEvent struct {
	Kind     EventKind
	X, Y     float64
	Modifier bool
}

// PlaybackBackend is the native player behind a media overlay. The embedded
// player is not reentrant-safe across threads, so the Do* methods must only
// run on the UI thread, normally through a TaskQueue. A Do* method returning
// true asks to be run again later, once the backend is ready.
type PlaybackBackend interface {
	IsPlaying() bool
	SetFile(path string) error
	DoStop()
	DoPlay() bool
	DoPlayPause() bool
	DoSetTime(t float64) bool
}
