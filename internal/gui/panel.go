package gui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// MediaPanel is the visual box of a media overlay: the playback area with
// the transport toolbar docked at the bottom. Its position inside the slide
// host is driven by pixel margins set through the overlay.Panel contract.
type MediaPanel struct {
	widget.BaseWidget

	host      *SlideHost
	transport *Transport

	left, top, right, bottom float32

	content *fyne.Container
}

// NewMediaPanel builds a panel around the given transport toolbar.
func NewMediaPanel(transport *Transport) *MediaPanel {
	p := &MediaPanel{transport: transport}

	// The playback area itself; the backend renders into its own surface,
	// this box only reserves and frames the space.
	area := canvas.NewRectangle(color.NRGBA{A: 0xe6})
	p.content = container.NewBorder(nil, transport.Box, nil, nil, area)

	p.ExtendBaseWidget(p)
	p.Hide()
	return p
}

// CreateRenderer implements fyne.Widget.
func (p *MediaPanel) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(p.content)
}

// SetPixelMargins implements overlay.Panel.
func (p *MediaPanel) SetPixelMargins(left, top, right, bottom float64) {
	p.left, p.top = float32(left), float32(top)
	p.right, p.bottom = float32(right), float32(bottom)
	if p.host != nil {
		p.host.relayout()
	}
}

// PixelMargins returns the current placement margins in pixels.
func (p *MediaPanel) PixelMargins() (left, top, right, bottom float32) {
	return p.left, p.top, p.right, p.bottom
}

// SetVisible implements overlay.Panel.
func (p *MediaPanel) SetVisible(visible bool) {
	if visible {
		p.Show()
	} else {
		p.Hide()
	}
}
