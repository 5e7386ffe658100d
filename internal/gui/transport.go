package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/beamview/beamview/internal/overlay"
)

// Transport is the playback toolbar: play/pause and close buttons, the seek
// slider and the elapsed time label. It implements overlay.Transport and
// reports user interaction back to the bound media overlay.
type Transport struct {
	Box *fyne.Container

	slider *widget.Slider
	label  *widget.Label

	bound *overlay.MediaOverlay

	// suppress marks programmatic slider moves so they are not reported as
	// user seeks.
	suppress bool
	dragging bool
}

// NewTransport builds an unbound toolbar; Bind attaches it to its overlay.
func NewTransport() *Transport {
	t := &Transport{
		slider: widget.NewSlider(0, 1),
		label:  widget.NewLabel("0:00"),
	}

	t.slider.OnChanged = func(v float64) {
		if t.suppress || t.bound == nil {
			return
		}
		if !t.dragging {
			t.dragging = true
			t.bound.DragStarted()
		}
	}
	t.slider.OnChangeEnded = func(v float64) {
		if t.suppress || t.bound == nil {
			return
		}
		if t.dragging {
			t.dragging = false
			t.bound.DragEnded(v)
		} else {
			t.bound.SeekRequested(v)
		}
	}

	playPause := widget.NewButtonWithIcon("", theme.MediaPlayIcon(), func() {
		if t.bound != nil {
			t.bound.PlayPause()
		}
	})
	closeBtn := widget.NewButtonWithIcon("", theme.WindowCloseIcon(), func() {
		if t.bound != nil {
			t.bound.RequestHide()
		}
	})

	t.Box = container.NewBorder(nil, nil, playPause, container.NewHBox(t.label, closeBtn), t.slider)
	return t
}

// Bind attaches the toolbar to the overlay it controls.
func (t *Transport) Bind(o *overlay.MediaOverlay) {
	t.bound = o
}

// SetVisible implements overlay.Transport.
func (t *Transport) SetVisible(visible bool) {
	if visible {
		t.Box.Show()
	} else {
		t.Box.Hide()
	}
}

// SetRange implements overlay.Transport.
func (t *Transport) SetRange(min, max float64) {
	t.slider.Min = min
	t.slider.Max = max
	t.slider.Refresh()
}

// SetIncrements implements overlay.Transport. Fyne sliders only expose one
// step size; the minor increment is used.
func (t *Transport) SetIncrements(minor, major float64) {
	t.slider.Step = minor
	t.slider.Refresh()
}

// SetValue implements overlay.Transport: a programmatic move that must not
// come back as a user seek.
func (t *Transport) SetValue(v float64) {
	t.suppress = true
	t.slider.SetValue(v)
	t.suppress = false
}

// SetTimeLabel implements overlay.Transport.
func (t *Transport) SetTimeLabel(text string) {
	t.label.SetText(text)
}
