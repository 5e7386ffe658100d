package gui

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"github.com/beamview/beamview/internal/overlay"
)

// PointerLayer is the transparent surface above the slide where the laser
// pointer is drawn. It translates fyne mouse input into overlay events and
// implements the overlay.Surface contract for cursor control.
type PointerLayer struct {
	widget.BaseWidget

	pointer *overlay.PointerOverlay

	realized     bool
	cursorHidden bool
}

// NewPointerLayer creates an unbound layer; Bind attaches the pointer state.
func NewPointerLayer() *PointerLayer {
	l := &PointerLayer{}
	l.ExtendBaseWidget(l)
	return l
}

// Bind attaches the pointer overlay driving this layer.
func (l *PointerLayer) Bind(p *overlay.PointerOverlay) {
	l.pointer = p
}

// CreateRenderer implements fyne.Widget.
func (l *PointerLayer) CreateRenderer() fyne.WidgetRenderer {
	l.realized = true

	icon := canvas.NewImageFromImage(image.NewNRGBA(image.Rect(0, 0, 1, 1)))
	icon.FillMode = canvas.ImageFillOriginal
	icon.Hide()
	return &pointerRenderer{layer: l, icon: icon}
}

// PixelSize implements overlay.Surface.
func (l *PointerLayer) PixelSize() (float64, float64) {
	s := l.Size()
	return float64(s.Width), float64(s.Height)
}

// Realized implements overlay.Surface.
func (l *PointerLayer) Realized() bool {
	return l.realized
}

// SetCursor implements overlay.Surface. Fyne queries Cursor() as the mouse
// moves, so storing the state is enough.
func (l *PointerLayer) SetCursor(c overlay.Cursor) {
	l.cursorHidden = c == overlay.CursorInvisible
}

// Cursor implements desktop.Cursorable.
func (l *PointerLayer) Cursor() desktop.Cursor {
	if l.cursorHidden {
		return hiddenCursor{}
	}
	return desktop.DefaultCursor
}

// MouseIn implements desktop.Hoverable.
func (l *PointerLayer) MouseIn(ev *desktop.MouseEvent) {
	l.MouseMoved(ev)
}

// MouseMoved implements desktop.Hoverable.
func (l *PointerLayer) MouseMoved(ev *desktop.MouseEvent) {
	if l.pointer == nil {
		return
	}
	l.pointer.Track(l, toInputEvent(ev, overlay.Motion))
}

// MouseOut implements desktop.Hoverable.
func (l *PointerLayer) MouseOut() {}

// MouseDown implements desktop.Mouseable.
func (l *PointerLayer) MouseDown(ev *desktop.MouseEvent) {
	if l.pointer == nil {
		return
	}
	l.pointer.Toggle(l, toInputEvent(ev, overlay.ButtonPress))
}

// MouseUp implements desktop.Mouseable.
func (l *PointerLayer) MouseUp(ev *desktop.MouseEvent) {
	if l.pointer == nil {
		return
	}
	l.pointer.Toggle(l, toInputEvent(ev, overlay.ButtonRelease))
}

func toInputEvent(ev *desktop.MouseEvent, kind overlay.EventKind) overlay.InputEvent {
	return overlay.InputEvent{
		Kind:     kind,
		X:        float64(ev.Position.X),
		Y:        float64(ev.Position.Y),
		Modifier: ev.Modifier&fyne.KeyModifierControl != 0,
	}
}

// pointerRenderer paints the pointer icon through the overlay.Canvas
// contract: the core decides where, the renderer moves the image there.
type pointerRenderer struct {
	layer *PointerLayer
	icon  *canvas.Image
}

func (r *pointerRenderer) Layout(fyne.Size)   {}
func (r *pointerRenderer) MinSize() fyne.Size { return fyne.Size{} }
func (r *pointerRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.icon}
}
func (r *pointerRenderer) Destroy() {}

func (r *pointerRenderer) Refresh() {
	p := r.layer.pointer
	if p == nil || !p.Visible() {
		r.icon.Hide()
		canvas.Refresh(r.icon)
		return
	}

	w, h := r.layer.PixelSize()
	p.Render(r, w, h)
	canvas.Refresh(r.icon)
}

// DrawImage implements overlay.Canvas.
func (r *pointerRenderer) DrawImage(img image.Image, x, y float64) {
	b := img.Bounds()
	r.icon.Image = img
	r.icon.Move(fyne.NewPos(float32(x), float32(y)))
	r.icon.Resize(fyne.NewSize(float32(b.Dx()), float32(b.Dy())))
	r.icon.Show()
}

// hiddenCursor is an invisible system cursor used while the laser pointer
// replaces it.
type hiddenCursor struct{}

func (hiddenCursor) Image() (image.Image, int, int) {
	return image.NewNRGBA(image.Rect(0, 0, 1, 1)), 0, 0
}
