package gui

import (
	"fyne.io/fyne/v2"
	"github.com/rs/zerolog"

	"github.com/beamview/beamview/internal/config"
	"github.com/beamview/beamview/internal/geometry"
	"github.com/beamview/beamview/internal/media"
	"github.com/beamview/beamview/internal/overlay"
)

// buildMenu assembles the pointer and view menus, mirroring the persisted
// preferences in their check marks.
func buildMenu(w fyne.Window, cfg *config.Config, pointer *overlay.PointerOverlay,
	mgr *media.Manager, pageType *geometry.PageType, logger zerolog.Logger) *fyne.MainMenu {

	log := logger.With().Str("component", "menu").Logger()

	modes := []struct {
		label string
		mode  string
	}{
		{"Continuous", overlay.PointerModeContinuous},
		{"Manual", overlay.PointerModeManual},
		{"Disabled", overlay.PointerModeNone},
	}
	modeItems := make([]*fyne.MenuItem, len(modes))
	for i, m := range modes {
		m := m
		i := i
		modeItems[i] = fyne.NewMenuItem(m.label, nil)
		modeItems[i].Action = func() {
			pointer.SelectMode(m.mode)
			for j := range modeItems {
				modeItems[j].Checked = j == i
			}
			w.MainMenu().Refresh()
		}
		modeItems[i].Checked = cfg.Presenter.PointerMode == m.mode
	}

	colors := []string{"red", "green", "blue"}
	labels := []string{"Red", "Green", "Blue"}
	colorItems := make([]*fyne.MenuItem, len(colors))
	for i, name := range colors {
		name := name
		i := i
		colorItems[i] = fyne.NewMenuItem(labels[i], nil)
		colorItems[i].Action = func() {
			if err := pointer.SelectIcon(name); err != nil {
				log.Error().Err(err).Str("color", name).Msg("pointer color change failed")
				return
			}
			for j := range colorItems {
				colorItems[j].Checked = j == i
			}
			w.MainMenu().Refresh()
		}
		colorItems[i].Checked = cfg.Presenter.Pointer == name
	}

	pointerMenu := fyne.NewMenu("Pointer",
		append(append([]*fyne.MenuItem{}, modeItems...),
			append([]*fyne.MenuItem{fyne.NewMenuItemSeparator()}, colorItems...)...)...)

	pages := []struct {
		label string
		pt    geometry.PageType
	}{
		{"Full page", geometry.FullPage},
		{"Left half", geometry.LeftHalf},
		{"Right half", geometry.RightHalf},
	}
	pageItems := make([]*fyne.MenuItem, len(pages))
	for i, p := range pages {
		p := p
		i := i
		pageItems[i] = fyne.NewMenuItem(p.label, nil)
		pageItems[i].Action = func() {
			*pageType = p.pt
			mgr.AdjustMargins(p.pt)
			for j := range pageItems {
				pageItems[j].Checked = j == i
			}
			w.MainMenu().Refresh()
		}
		pageItems[i].Checked = p.pt == *pageType
	}
	viewMenu := fyne.NewMenu("View", pageItems...)

	return fyne.NewMainMenu(pointerMenu, viewMenu)
}
