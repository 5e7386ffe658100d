// Package gui is the fyne host for the slide overlays. It implements the
// narrow container, transport and surface contracts of internal/overlay on
// top of fyne widgets; all overlay state lives in internal/overlay.
package gui

import (
	"sort"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"

	"github.com/beamview/beamview/internal/overlay"
)

// SlideHost is the layered container holding the slide content, the pointer
// layer and any media overlays, stacked in that order.
type SlideHost struct {
	Container *fyne.Container

	slide   fyne.CanvasObject
	pointer fyne.CanvasObject

	layout *hostLayout

	overlays []hostedOverlay
}

type hostedOverlay struct {
	panel *MediaPanel
	order int
}

// NewSlideHost builds the display stack over the given slide content. The
// pointer layer sits directly above the slide, below media overlays, like a
// drawing on the slide surface itself.
func NewSlideHost(slide fyne.CanvasObject, pointer fyne.CanvasObject) *SlideHost {
	h := &SlideHost{
		slide:   slide,
		pointer: pointer,
		layout:  &hostLayout{},
	}
	h.Container = container.New(h.layout, slide, pointer)
	return h
}

// OnResize registers a callback run when the container changes size, before
// children are positioned. The media manager hooks its ResizeAll here.
func (h *SlideHost) OnResize(fn func()) {
	h.layout.onResize = fn
}

// AddOverlay implements overlay.HostContainer.
func (h *SlideHost) AddOverlay(p overlay.Panel, order int) {
	panel, ok := p.(*MediaPanel)
	if !ok {
		return
	}
	panel.host = h
	h.overlays = append(h.overlays, hostedOverlay{panel: panel, order: order})
	h.rebuild()
}

// RemoveOverlay implements overlay.HostContainer.
func (h *SlideHost) RemoveOverlay(p overlay.Panel) {
	for i, o := range h.overlays {
		if overlay.Panel(o.panel) == p {
			h.overlays = append(h.overlays[:i], h.overlays[i+1:]...)
			break
		}
	}
	h.rebuild()
}

// Size implements overlay.HostContainer.
func (h *SlideHost) Size() (float64, float64) {
	s := h.Container.Size()
	return float64(s.Width), float64(s.Height)
}

// QueueRedraw implements overlay.HostContainer.
func (h *SlideHost) QueueRedraw() {
	h.Container.Refresh()
}

// rebuild reassembles the object stack: slide, pointer layer, then media
// overlays by ascending stacking order.
func (h *SlideHost) rebuild() {
	sort.SliceStable(h.overlays, func(i, j int) bool {
		return h.overlays[i].order < h.overlays[j].order
	})

	objects := make([]fyne.CanvasObject, 0, len(h.overlays)+2)
	objects = append(objects, h.slide, h.pointer)
	for _, o := range h.overlays {
		objects = append(objects, o.panel)
	}

	h.Container.Objects = objects
	h.Container.Refresh()
}

// relayout re-runs the host layout outside a layout pass, after a panel
// margin change.
func (h *SlideHost) relayout() {
	if !h.layout.inLayout {
		h.Container.Refresh()
	}
}

// hostLayout sizes full-surface layers to the container and positions media
// panels by their pixel margins.
type hostLayout struct {
	lastSize fyne.Size
	inLayout bool
	onResize func()
}

func (l *hostLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	return fyne.NewSize(160, 120)
}

func (l *hostLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	l.inLayout = true
	defer func() { l.inLayout = false }()

	if size != l.lastSize {
		l.lastSize = size
		if l.onResize != nil {
			// Recomputes panel pixel margins before positioning below.
			l.onResize()
		}
	}

	for _, o := range objects {
		if p, ok := o.(*MediaPanel); ok {
			left, top, right, bottom := p.PixelMargins()
			o.Move(fyne.NewPos(left, top))
			o.Resize(fyne.NewSize(size.Width-left-right, size.Height-top-bottom))
			continue
		}
		o.Move(fyne.NewPos(0, 0))
		o.Resize(size)
	}
}
