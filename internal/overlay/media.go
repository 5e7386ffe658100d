package overlay

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"github.com/beamview/beamview/internal/geometry"
)

// mediaStackOrder places media overlays above the slide content but below
// modal chrome.
const mediaStackOrder = 2

// MediaOverlay positions a playback area over the current slide and proxies
// transport actions to a playback backend. One instance exists per embedded
// media item.
type MediaOverlay struct {
	host      HostContainer
	panel     Panel
	transport Transport
	backend   PlaybackBackend
	logger    zerolog.Logger

	mediaID string

	// Margins of the media rectangle relative to the document page, fixed
	// at construction.
	pageMargins geometry.Margins
	// The same margins relative to the visible slide area, recomputed on
	// page-type changes.
	margins geometry.Margins

	maxTime     float64
	currentTime float64
	totalLabel  string

	visible  bool
	dragging bool

	play      func(float64)
	hideMedia func(float64)
	playPause func(float64)
	setTime   func(float64)
}

// NewMediaOverlay builds a media overlay inside host. The placement
// rectangle is page-relative; pageType selects the projection onto the
// visible slide area. Transport actions are resolved through the resolver,
// bound to mediaID.
func NewMediaOverlay(host HostContainer, panel Panel, transport Transport, backend PlaybackBackend,
	showControls bool, placement geometry.Rect, pageType geometry.PageType,
	mediaID string, resolver CallbackResolver, logger zerolog.Logger) *MediaOverlay {

	o := &MediaOverlay{
		host:        host,
		panel:       panel,
		transport:   transport,
		backend:     backend,
		logger:      logger.With().Str("component", "media-overlay").Str("media", mediaID).Logger(),
		mediaID:     mediaID,
		pageMargins: placement.PageMargins(),
	}
	o.UpdateMarginsForPage(pageType)

	transport.SetVisible(showControls)

	o.play = resolver.Resolve(ActionPlay, mediaID)
	o.hideMedia = resolver.Resolve(ActionHide, mediaID)
	o.playPause = resolver.Resolve(ActionPlayPause, mediaID)
	o.setTime = resolver.Resolve(ActionSetTime, mediaID)

	return o
}

// MediaID returns the identifier this overlay is bound to.
func (o *MediaOverlay) MediaID() string {
	return o.mediaID
}

// Backend returns the playback backend driving this overlay.
func (o *MediaOverlay) Backend() PlaybackBackend {
	return o.backend
}

// UpdateMarginsForPage recomputes the slide-relative margins for the given
// page-display mode. Pure with respect to its inputs.
func (o *MediaOverlay) UpdateMarginsForPage(pageType geometry.PageType) {
	o.margins = pageType.ToScreen(o.pageMargins)
}

// Margins returns the current slide-relative margins.
func (o *MediaOverlay) Margins() geometry.Margins {
	return o.margins
}

// Resize adjusts the pixel position and size of the overlay from the current
// container size. No-op while the overlay is hidden.
func (o *MediaOverlay) Resize() {
	if !o.IsShown() {
		return
	}

	w, h := o.host.Size()
	o.panel.SetPixelMargins(
		w*o.margins.Left,
		h*o.margins.Top,
		w*o.margins.Right,
		h*o.margins.Bottom,
	)
}

// FormatSeconds renders a position in seconds as M:SS, with the total
// duration appended once it is known.
func (o *MediaOverlay) FormatSeconds(prog float64) string {
	cur := formatMMSS(prog)
	if o.totalLabel == "" {
		return cur
	}
	return cur + " / " + o.totalLabel
}

func formatMMSS(t float64) string {
	s := int(math.Round(t))
	return fmt.Sprintf("%d:%02d", s/60, s%60)
}

// UpdateRange sets the transport slider bounds once the media duration is
// known, and switches the time label to the elapsed / total format.
func (o *MediaOverlay) UpdateRange(maxTime float64) {
	o.maxTime = maxTime
	o.transport.SetRange(0, maxTime)
	o.transport.SetIncrements(math.Min(5, maxTime/10), math.Min(60, maxTime/10))

	sec := 1.0
	if maxTime > 0.5 {
		sec = math.Round(maxTime)
	}
	o.totalLabel = formatMMSS(sec)
	o.transport.SetTimeLabel(o.FormatSeconds(o.currentTime))
}

// MaxTime returns the known media duration in seconds, 0 before UpdateRange.
func (o *MediaOverlay) MaxTime() float64 {
	return o.maxTime
}

// UpdateProgress moves the transport slider to the current playback time.
// The slider is not touched while the user is scrubbing, and SetValue must
// not loop back into the seek handler.
func (o *MediaOverlay) UpdateProgress(t float64) {
	o.currentTime = t
	if !o.dragging {
		o.transport.SetValue(t)
	}
	o.transport.SetTimeLabel(o.FormatSeconds(t))
}

// DragStarted records that the user grabbed the progress slider, suppressing
// time-update feedback until the drag ends.
func (o *MediaOverlay) DragStarted() {
	o.dragging = true
}

// DragEnded seeks to the released slider position.
func (o *MediaOverlay) DragEnded(value float64) {
	o.dragging = false
	o.setTime(value)
}

// SeekRequested seeks to a slider position changed by the user without a
// drag (clicks, keyboard).
func (o *MediaOverlay) SeekRequested(value float64) {
	o.setTime(value)
}

// Play starts playback through the application's media registry.
func (o *MediaOverlay) Play() {
	o.play(0)
}

// PlayPause toggles playback through the application's media registry.
func (o *MediaOverlay) PlayPause() {
	o.playPause(0)
}

// RequestHide asks the application to hide and stop this media.
func (o *MediaOverlay) RequestHide() {
	o.hideMedia(0)
}

// Show attaches the overlay to the display stack above slide content and
// sizes it. A negative margin means the media is not placeable in the
// current page-display mode: the call refuses, logs and leaves the previous
// visibility unchanged. Idempotent.
func (o *MediaOverlay) Show() {
	if !o.margins.Valid() {
		o.logger.Warn().
			Stringer("margins", o.margins).
			Msg("not showing media with negative margins")
		return
	}

	if !o.visible {
		o.host.AddOverlay(o.panel, mediaStackOrder)
		o.visible = true
		o.Resize()
		o.host.QueueRedraw()
	}
	o.panel.SetVisible(true)
}

// Hide stops playback and detaches the overlay from the display stack.
// Idempotent.
func (o *MediaOverlay) Hide() {
	o.backend.DoStop()
	o.panel.SetVisible(false)

	if o.visible {
		o.host.RemoveOverlay(o.panel)
		o.visible = false
	}
}

// IsShown reports whether the overlay is currently attached to the display
// stack.
func (o *MediaOverlay) IsShown() bool {
	return o.visible
}

// IsPlaying reports whether the backend is currently playing and not paused.
func (o *MediaOverlay) IsPlaying() bool {
	return o.backend.IsPlaying()
}

// SetFile binds the backend to the given media source.
func (o *MediaOverlay) SetFile(path string) error {
	return o.backend.SetFile(path)
}
