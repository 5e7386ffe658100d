package gui

import (
	"context"
	"fmt"
	"image/color"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"github.com/rs/zerolog"

	"github.com/beamview/beamview/internal/backend"
	"github.com/beamview/beamview/internal/config"
	"github.com/beamview/beamview/internal/geometry"
	"github.com/beamview/beamview/internal/media"
	"github.com/beamview/beamview/internal/overlay"
)

// Options configure the viewer window.
type Options struct {
	// Files are media sources shown as overlays on the demo slide.
	Files []string
	// StartAt seeks every media to this position once playing, in seconds.
	StartAt float64
	// ShowControls overrides the config transport visibility when set.
	ShowControls *bool
}

// Run opens the viewer window and blocks until it is closed.
func Run(cfg *config.Config, opts Options, logger zerolog.Logger) error {
	log := logger.With().Str("component", "viewer").Logger()

	a := app.NewWithID("io.beamview.viewer")
	w := a.NewWindow("beamview")
	w.Resize(fyne.NewSize(1024, 768))

	// Stand-in slide content: rendering actual slides is the embedding
	// application's business.
	slide := canvas.NewRectangle(color.NRGBA{R: 0x20, G: 0x24, B: 0x2a, A: 0xff})

	layer := NewPointerLayer()
	host := NewSlideHost(slide, layer)

	pointer, err := overlay.NewPointerOverlay(cfg, layer, layer.Refresh, logger)
	if err != nil {
		return fmt.Errorf("failed to set up the pointer: %w", err)
	}
	layer.Bind(pointer)

	queue := overlay.NewTaskQueue(func(fn func()) { fyne.Do(fn) }, logger)

	showControls := cfg.Media.ShowControls
	if opts.ShowControls != nil {
		showControls = *opts.ShowControls
	}

	var mgr *media.Manager
	var backends []*backend.MPV

	factory := func(item media.Item, pageType geometry.PageType, resolver overlay.CallbackResolver) (*overlay.MediaOverlay, error) {
		id := item.ID
		player := backend.NewMPV(cfg.Media.MPVPath, backend.Handlers{
			DurationKnown: func(s float64) { mgr.SetDuration(id, s) },
			Progress:      func(s float64) { mgr.Progress(id, s) },
			Finished:      func() { mgr.Hide(id) },
		}, logger)
		if err := player.Start(); err != nil {
			return nil, err
		}
		backends = append(backends, player)

		transport := NewTransport()
		panel := NewMediaPanel(transport)
		ov := overlay.NewMediaOverlay(host, panel, transport, player, item.ShowControls,
			item.Placement, pageType, id, resolver, logger)
		transport.Bind(ov)

		// Prime the transport range from ffprobe; mpv confirms it once the
		// file actually loads.
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if d, err := backend.ProbeDuration(ctx, cfg.Media.FFprobePath, item.Path); err == nil {
				mgr.SetDuration(id, d)
			} else {
				log.Debug().Err(err).Str("media", id).Msg("duration probe failed")
			}
		}()

		return ov, nil
	}

	mgr = media.NewManager(queue, factory, logger)
	host.OnResize(mgr.ResizeAll)

	items := make([]media.Item, len(opts.Files))
	for i, path := range opts.Files {
		items[i] = media.Item{
			ID:           fmt.Sprintf("media-%d", i),
			Path:         path,
			Placement:    geometry.Rect{X1: 0.15, Y1: 0.15, X2: 0.85, Y2: 0.85},
			ShowControls: showControls,
			AutoPlay:     cfg.Media.AutoPlay,
		}
	}

	pageType := geometry.FullPage
	if err := mgr.Replace(items, pageType); err != nil {
		return err
	}
	if opts.StartAt > 0 {
		for _, item := range items {
			mgr.SetTime(item.ID, opts.StartAt)
		}
	}

	w.SetMainMenu(buildMenu(w, cfg, pointer, mgr, &pageType, logger))

	w.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		if ev.Name == fyne.KeySpace {
			mgr.PlayPauseAll()
		}
	})

	// Apply pointer preferences edited outside the app.
	stopWatch, err := config.Watch(cfg, logger, func(fresh *config.Config) {
		fyne.Do(func() {
			pointer.ActivateMode(fresh.Presenter.PointerMode)
			if err := pointer.LoadIcon(fresh.Presenter.Pointer); err != nil {
				log.Warn().Err(err).Msg("ignoring invalid pointer color from config")
			}
			layer.Refresh()
		})
	})
	if err != nil {
		log.Warn().Err(err).Msg("config watching unavailable")
		stopWatch = func() {}
	}

	w.SetOnClosed(func() {
		stopWatch()
		for _, p := range backends {
			p.Close()
		}
	})

	w.SetContent(host.Container)
	w.ShowAndRun()
	return nil
}
