package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "red", cfg.Presenter.Pointer)
	assert.Equal(t, "manual", cfg.Presenter.PointerMode)
	assert.Equal(t, "mpv", cfg.Media.Backend)
	assert.True(t, cfg.Media.ShowControls)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "beamview.yaml")
	data := []byte("presenter:\n  pointer: green\n  pointer_mode: continuous\n")
	require.NoError(t, os.WriteFile(path, data, 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "green", cfg.Presenter.Pointer)
	assert.Equal(t, "continuous", cfg.Presenter.PointerMode)
	// Untouched sections keep their defaults.
	assert.Equal(t, "mpv", cfg.Media.Backend)
}

func TestGetSetRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "beamview.yaml")
	cfg, err := Load(path)
	require.NoError(t, err)

	require.NoError(t, cfg.Set("presenter", "pointer", "blue"))

	got, err := cfg.Get("presenter", "pointer")
	require.NoError(t, err)
	assert.Equal(t, "blue", got)

	// Set persisted the change to disk.
	reloaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "blue", reloaded.Presenter.Pointer)
}

func TestGetUnknownEntry(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	_, err = cfg.Get("presenter", "no_such_key")
	assert.Error(t, err)

	assert.Error(t, cfg.Set("nope", "pointer", "red"))
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.yaml")

	cfg, err := Load("")
	require.NoError(t, err)
	cfg.Presenter.PointerMode = "none"
	require.NoError(t, cfg.Save(path))

	reloaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "none", reloaded.Presenter.PointerMode)
}
