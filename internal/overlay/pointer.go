package overlay

import (
	"image"

	"github.com/rs/zerolog"
)

// Visibility states of the laser pointer.
type Visibility int

const (
	// Hidden means the pointer is enabled but not drawn.
	Hidden Visibility = iota
	// Shown means the pointer is drawn on the current slide.
	Shown
)

// Mode governs how the pointer responds to input.
type Mode int

const (
	// ModeDisabled never shows the pointer.
	ModeDisabled Mode = iota
	// ModeManual shows the pointer while modifier+button is held.
	ModeManual
	// ModeContinuous keeps the pointer on, following the mouse.
	ModeContinuous
)

// Mode names as persisted in the config store and used in menus.
const (
	PointerModeContinuous = "continuous"
	PointerModeManual     = "manual"
	PointerModeNone       = "none"

	// Older presenter builds misspelled the continuous mode in their config
	// files; keep reading it.
	pointerModeContinuousLegacy = "continous"
)

// normalizeMode maps legacy mode spellings to their canonical name.
func normalizeMode(mode string) string {
	if mode == pointerModeContinuousLegacy {
		return PointerModeContinuous
	}
	return mode
}

const (
	configSection    = "presenter"
	configKeyPointer = "pointer"
	configKeyMode    = "pointer_mode"
)

// PointerOverlay manages when and where a software laser pointer is drawn
// over the current slide. It is an explicit context object: construct one per
// presenter window, never share it as a global.
type PointerOverlay struct {
	store   ConfigStore
	surface Surface
	redraw  RedrawFunc
	logger  zerolog.Logger

	icon       image.Image
	x, y       float64
	visibility Visibility
	mode       Mode
}

// NewPointerOverlay loads the pointer color and mode from the config store
// and activates them. The surface is the slide drawing area, used for cursor
// control; redraw requests a repaint of the current slide.
func NewPointerOverlay(store ConfigStore, surface Surface, redraw RedrawFunc, logger zerolog.Logger) (*PointerOverlay, error) {
	p := &PointerOverlay{
		store:   store,
		surface: surface,
		redraw:  redraw,
		logger:  logger.With().Str("component", "pointer").Logger(),
		x:       0.5,
		y:       0.5,
	}

	mode, err := store.Get(configSection, configKeyMode)
	if err != nil {
		return nil, err
	}
	p.ActivateMode(mode)

	color, err := store.Get(configSection, configKeyPointer)
	if err != nil {
		return nil, err
	}
	if err := p.LoadIcon(color); err != nil {
		return nil, err
	}

	return p, nil
}

// LoadIcon switches the pointer to the named color. Only "red", "green" and
// "blue" exist; any other name fails with ErrInvalidIconName.
func (p *PointerOverlay) LoadIcon(name string) error {
	icon, err := LoadIcon(name)
	if err != nil {
		return err
	}
	p.icon = icon
	return nil
}

// SelectIcon loads the chosen color and persists it as the preference.
func (p *PointerOverlay) SelectIcon(name string) error {
	if err := p.LoadIcon(name); err != nil {
		return err
	}
	if err := p.store.Set(configSection, configKeyPointer, name); err != nil {
		p.logger.Warn().Err(err).Msg("failed to persist pointer color")
	}
	return nil
}

// ActivateMode switches the pointer mode by name (continuous, manual or
// none). An unknown name leaves the mode untouched but still refreshes the
// cursor, matching a re-activation after the surface is mapped. Cursor
// changes only apply once the surface is realized.
func (p *PointerOverlay) ActivateMode(mode string) {
	switch normalizeMode(mode) {
	case PointerModeContinuous:
		p.visibility = Shown
		p.mode = ModeContinuous
	case PointerModeManual:
		p.visibility = Hidden
		p.mode = ModeManual
	case PointerModeNone:
		p.visibility = Hidden
		p.mode = ModeDisabled
	}

	if p.surface.Realized() {
		if p.mode == ModeContinuous {
			p.surface.SetCursor(CursorInvisible)
		} else {
			p.surface.SetCursor(CursorInherited)
		}
		p.redraw()
	}
}

// SelectMode persists the chosen mode, normalized, and activates it.
func (p *PointerOverlay) SelectMode(mode string) {
	mode = normalizeMode(mode)
	if err := p.store.Set(configSection, configKeyMode, mode); err != nil {
		p.logger.Warn().Err(err).Msg("failed to persist pointer mode")
	}
	p.ActivateMode(mode)
}

// Mode returns the active pointer mode.
func (p *PointerOverlay) Mode() Mode {
	return p.mode
}

// Visible reports whether the pointer is currently drawn.
func (p *PointerOverlay) Visible() bool {
	return p.visibility == Shown
}

// Position returns the pointer position, normalized to the slide surface.
func (p *PointerOverlay) Position() (x, y float64) {
	return p.x, p.y
}

// Render draws the pointer icon centered at the pointer position, scaled to
// a w×h surface. Nothing is drawn while the pointer is hidden.
func (p *PointerOverlay) Render(c Canvas, w, h float64) {
	if p.visibility != Shown || p.icon == nil {
		return
	}

	b := p.icon.Bounds()
	x := w*p.x - float64(b.Dx())/2
	y := h*p.y - float64(b.Dy())/2
	c.DrawImage(p.icon, x, y)
}

// Track moves the pointer to the event location, normalized by the widget
// size, and requests a redraw. Reports whether the event was consumed; a
// hidden pointer consumes nothing.
func (p *PointerOverlay) Track(widget Surface, ev InputEvent) bool {
	if p.visibility != Shown {
		return false
	}

	w, h := widget.PixelSize()
	p.x, p.y = ev.X/w, ev.Y/h
	p.redraw()
	return true
}

// Toggle drives the manual press-to-show state machine. In disabled or
// continuous mode the event is never consumed. A button press with the
// modifier held shows the pointer, hides the cursor and immediately places
// the pointer; the matching release hides it again.
func (p *PointerOverlay) Toggle(widget Surface, ev InputEvent) bool {
	if p.mode == ModeDisabled || p.mode == ModeContinuous {
		return false
	}

	switch {
	case ev.Kind == ButtonPress && ev.Modifier:
		p.visibility = Shown
		widget.SetCursor(CursorInvisible)
		return p.Track(widget, ev)

	case ev.Kind == ButtonRelease && p.visibility == Shown:
		p.visibility = Hidden
		widget.SetCursor(CursorInherited)
		p.redraw()
		return true

	default:
		return false
	}
}
