// Package backend provides playback backends for the media overlay: an mpv
// IPC binding and an ffprobe-based duration probe.
package backend

import (
	"errors"

	"github.com/rs/zerolog"
)

// ErrUnimplemented is returned by backend operations a concrete backend did
// not override.
var ErrUnimplemented = errors.New("playback operation not implemented")

// Unimplemented is the base every concrete backend embeds. All operations
// log and report not-ready or ErrUnimplemented, so a partially implemented
// backend degrades loudly instead of crashing the UI.
type Unimplemented struct {
	Logger zerolog.Logger
}

// IsPlaying always reports false.
func (u Unimplemented) IsPlaying() bool { return false }

// SetFile fails with ErrUnimplemented.
func (u Unimplemented) SetFile(path string) error {
	return ErrUnimplemented
}

// DoStop logs the missing implementation.
func (u Unimplemented) DoStop() {
	u.Logger.Error().Err(ErrUnimplemented).Str("op", "stop").Msg("backend call")
}

// DoPlay logs the missing implementation and does not requeue.
func (u Unimplemented) DoPlay() bool {
	u.Logger.Error().Err(ErrUnimplemented).Str("op", "play").Msg("backend call")
	return false
}

// DoPlayPause logs the missing implementation and does not requeue.
func (u Unimplemented) DoPlayPause() bool {
	u.Logger.Error().Err(ErrUnimplemented).Str("op", "play_pause").Msg("backend call")
	return false
}

// DoSetTime logs the missing implementation and does not requeue.
func (u Unimplemented) DoSetTime(t float64) bool {
	u.Logger.Error().Err(ErrUnimplemented).Str("op", "set_time").Msg("backend call")
	return false
}
