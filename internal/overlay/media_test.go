package overlay

import (
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beamview/beamview/internal/geometry"
)

type fakeHost struct {
	w, h    float64
	stack   []Panel
	orders  []int
	redraws int
}

func (f *fakeHost) AddOverlay(p Panel, order int) {
	f.stack = append(f.stack, p)
	f.orders = append(f.orders, order)
}

func (f *fakeHost) RemoveOverlay(p Panel) {
	for i, q := range f.stack {
		if q == p {
			f.stack = append(f.stack[:i], f.stack[i+1:]...)
			f.orders = append(f.orders[:i], f.orders[i+1:]...)
			return
		}
	}
}

func (f *fakeHost) Size() (float64, float64) { return f.w, f.h }
func (f *fakeHost) QueueRedraw()             { f.redraws++ }

type fakePanel struct {
	left, top, right, bottom float64
	visible                  bool
}

func (f *fakePanel) SetPixelMargins(l, t, r, b float64) {
	f.left, f.top, f.right, f.bottom = l, t, r, b
}
func (f *fakePanel) SetVisible(v bool) { f.visible = v }

type fakeTransport struct {
	visible              bool
	min, max             float64
	minorStep, majorStep float64
	value                float64
	label                string
}

func (f *fakeTransport) SetVisible(v bool)            { f.visible = v }
func (f *fakeTransport) SetRange(min, max float64)    { f.min, f.max = min, max }
func (f *fakeTransport) SetIncrements(mi, ma float64) { f.minorStep, f.majorStep = mi, ma }
func (f *fakeTransport) SetValue(v float64)           { f.value = v }
func (f *fakeTransport) SetTimeLabel(s string)        { f.label = s }

type fakeBackend struct {
	playing  bool
	stops    int
	file     string
	seeks    []float64
	notReady int // countdown of "run me again" answers
}

func (f *fakeBackend) IsPlaying() bool { return f.playing }
func (f *fakeBackend) SetFile(path string) error {
	f.file = path
	return nil
}
func (f *fakeBackend) DoStop() {
	f.stops++
	f.playing = false
}
func (f *fakeBackend) DoPlay() bool {
	if f.notReady > 0 {
		f.notReady--
		return true
	}
	f.playing = true
	return false
}
func (f *fakeBackend) DoPlayPause() bool {
	f.playing = !f.playing
	return false
}
func (f *fakeBackend) DoSetTime(t float64) bool {
	f.seeks = append(f.seeks, t)
	return false
}

// fakeResolver records calls made through resolved handlers.
type fakeResolver struct {
	calls []string
}

func (f *fakeResolver) Resolve(action, mediaID string) func(float64) {
	return func(arg float64) {
		f.calls = append(f.calls, fmt.Sprintf("%s/%s/%g", action, mediaID, arg))
	}
}

func newTestOverlay(t *testing.T, placement geometry.Rect, pt geometry.PageType) (*MediaOverlay, *fakeHost, *fakePanel, *fakeTransport, *fakeResolver) {
	t.Helper()
	host := &fakeHost{w: 800, h: 600}
	panel := &fakePanel{}
	tr := &fakeTransport{}
	res := &fakeResolver{}
	o := NewMediaOverlay(host, panel, tr, &fakeBackend{}, true, placement, pt, "m1", res, zerolog.Nop())
	return o, host, panel, tr, res
}

func centered() geometry.Rect {
	return geometry.Rect{X1: 0.25, Y1: 0.25, X2: 0.75, Y2: 0.75}
}

func TestFormatSecondsBoundaries(t *testing.T) {
	o, _, _, _, _ := newTestOverlay(t, centered(), geometry.FullPage)

	assert.Equal(t, "0:00", o.FormatSeconds(0))
	assert.Equal(t, "0:59", o.FormatSeconds(59))
	assert.Equal(t, "1:00", o.FormatSeconds(60))
	assert.Equal(t, "2:05", o.FormatSeconds(125))
}

func TestUpdateRangeFormatsBothSides(t *testing.T) {
	o, _, _, tr, _ := newTestOverlay(t, centered(), geometry.FullPage)

	o.UpdateRange(125)

	assert.Equal(t, 0.0, tr.min)
	assert.Equal(t, 125.0, tr.max)
	assert.Equal(t, 5.0, tr.minorStep)
	assert.Equal(t, 12.5, tr.majorStep)
	assert.Equal(t, "2:05 / 2:05", o.FormatSeconds(125))
}

func TestUpdateRangeShortVideo(t *testing.T) {
	o, _, _, tr, _ := newTestOverlay(t, centered(), geometry.FullPage)

	// Durations up to half a second display a one-second total.
	o.UpdateRange(0.4)
	assert.Equal(t, "0:00 / 0:01", o.FormatSeconds(0))

	// Short videos get proportionally small increments.
	o.UpdateRange(30)
	assert.Equal(t, 3.0, tr.minorStep)
	assert.Equal(t, 3.0, tr.majorStep)
	assert.Equal(t, "0:15 / 0:30", o.FormatSeconds(15))
}

func TestUpdateProgressDoesNotSeek(t *testing.T) {
	o, _, _, tr, res := newTestOverlay(t, centered(), geometry.FullPage)
	o.UpdateRange(100)

	o.UpdateProgress(42)

	assert.Equal(t, 42.0, tr.value)
	assert.Equal(t, "0:42 / 1:40", tr.label)
	assert.Empty(t, res.calls, "progress updates must not recurse into set_time")
}

func TestUpdateProgressSuppressedWhileDragging(t *testing.T) {
	o, _, _, tr, res := newTestOverlay(t, centered(), geometry.FullPage)
	o.UpdateRange(100)

	o.DragStarted()
	o.UpdateProgress(42)
	assert.Equal(t, 0.0, tr.value, "slider must not move under the user's thumb")

	o.DragEnded(77)
	assert.Equal(t, []string{"set_time/m1/77"}, res.calls)

	o.UpdateProgress(78)
	assert.Equal(t, 78.0, tr.value)
}

func TestSeekRequested(t *testing.T) {
	o, _, _, _, res := newTestOverlay(t, centered(), geometry.FullPage)

	o.SeekRequested(12)
	o.Play()
	o.PlayPause()
	o.RequestHide()

	assert.Equal(t, []string{
		"set_time/m1/12",
		"play/m1/0",
		"play_pause/m1/0",
		"hide/m1/0",
	}, res.calls)
}

func TestShowAttachesAndResizes(t *testing.T) {
	o, host, panel, _, _ := newTestOverlay(t, centered(), geometry.FullPage)

	require.False(t, o.IsShown())
	o.Show()

	require.True(t, o.IsShown())
	require.Len(t, host.stack, 1)
	assert.Equal(t, []int{2}, host.orders)
	assert.True(t, panel.visible)
	assert.Equal(t, 1, host.redraws)

	// 800x600 container, margins 0.25 everywhere.
	assert.Equal(t, 200.0, panel.left)
	assert.Equal(t, 150.0, panel.top)
	assert.Equal(t, 200.0, panel.right)
	assert.Equal(t, 150.0, panel.bottom)

	// Idempotent: no double attach.
	o.Show()
	assert.Len(t, host.stack, 1)
	assert.Equal(t, 1, host.redraws)
}

func TestShowRefusesNegativeMargins(t *testing.T) {
	// Media on the right page half is unplaceable on the left half surface.
	placement := geometry.Rect{X1: 0.6, Y1: 0.25, X2: 0.9, Y2: 0.75}
	o, host, panel, _, _ := newTestOverlay(t, placement, geometry.LeftHalf)

	o.Show()

	assert.False(t, o.IsShown())
	assert.Empty(t, host.stack)
	assert.False(t, panel.visible)
	assert.Zero(t, host.redraws)
}

func TestShowRefusalPreservesPriorVisibility(t *testing.T) {
	o, host, _, _, _ := newTestOverlay(t, centered(), geometry.FullPage)

	o.Show()
	require.True(t, o.IsShown())

	// Switching to a page mode that hides the media makes Show refuse but
	// leaves the overlay attached as it was.
	o.UpdateMarginsForPage(geometry.LeftHalf)
	o.Show()

	assert.True(t, o.IsShown())
	assert.Len(t, host.stack, 1)
}

func TestHideStopsAndDetaches(t *testing.T) {
	host := &fakeHost{w: 800, h: 600}
	panel := &fakePanel{}
	backend := &fakeBackend{playing: true}
	o := NewMediaOverlay(host, panel, &fakeTransport{}, backend, true, centered(), geometry.FullPage, "m1", &fakeResolver{}, zerolog.Nop())

	o.Show()
	o.Hide()

	assert.False(t, o.IsShown())
	assert.Empty(t, host.stack)
	assert.False(t, panel.visible)
	assert.Equal(t, 1, backend.stops)
	assert.False(t, o.IsPlaying())

	// Idempotent, though the backend stop is always forwarded.
	o.Hide()
	assert.False(t, o.IsShown())
}

func TestResizeIsNoopWhileHidden(t *testing.T) {
	o, _, panel, _, _ := newTestOverlay(t, centered(), geometry.FullPage)

	o.Resize()

	assert.Zero(t, panel.left)
	assert.Zero(t, panel.top)
}

func TestUpdateMarginsForPageIsPure(t *testing.T) {
	o, _, _, _, _ := newTestOverlay(t, centered(), geometry.FullPage)

	o.UpdateMarginsForPage(geometry.RightHalf)
	first := o.Margins()
	o.UpdateMarginsForPage(geometry.RightHalf)

	assert.Equal(t, first, o.Margins())
}

func TestTransportVisibilityFollowsConstruction(t *testing.T) {
	host := &fakeHost{w: 800, h: 600}
	tr := &fakeTransport{visible: true}
	NewMediaOverlay(host, &fakePanel{}, tr, &fakeBackend{}, false, centered(), geometry.FullPage, "m1", &fakeResolver{}, zerolog.Nop())

	assert.False(t, tr.visible)
}

func TestSetFileDelegates(t *testing.T) {
	host := &fakeHost{w: 800, h: 600}
	backend := &fakeBackend{}
	o := NewMediaOverlay(host, &fakePanel{}, &fakeTransport{}, backend, true, centered(), geometry.FullPage, "m1", &fakeResolver{}, zerolog.Nop())

	require.NoError(t, o.SetFile("talk/demo.webm"))
	assert.Equal(t, "talk/demo.webm", backend.file)
}
