package backend

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeCommand(t *testing.T) {
	payload, err := encodeCommand(7, "seek", 12.5, "absolute")
	require.NoError(t, err)

	assert.JSONEq(t, `{"command":["seek",12.5,"absolute"],"request_id":7}`, string(payload[:len(payload)-1]))
	assert.Equal(t, byte('\n'), payload[len(payload)-1], "IPC requests are newline-terminated")
}

func newTestMPV(h Handlers) *MPV {
	m := NewMPV("mpv", h, zerolog.Nop())
	// Pretend the IPC handshake already happened.
	m.connected = true
	return m
}

func TestHandleMessageDuration(t *testing.T) {
	var got float64
	m := newTestMPV(Handlers{DurationKnown: func(s float64) { got = s }})

	m.handleMessage([]byte(`{"event":"property-change","id":1,"name":"duration","data":125.48}`))

	assert.InDelta(t, 125.48, got, 1e-9)
}

func TestHandleMessageProgressAndPause(t *testing.T) {
	var ticks []float64
	m := newTestMPV(Handlers{Progress: func(s float64) { ticks = append(ticks, s) }})
	m.handleMessage([]byte(`{"event":"file-loaded"}`))

	m.handleMessage([]byte(`{"event":"property-change","id":2,"name":"time-pos","data":1.0}`))
	m.handleMessage([]byte(`{"event":"property-change","id":2,"name":"time-pos","data":2.5}`))

	assert.Equal(t, []float64{1.0, 2.5}, ticks)
	assert.True(t, m.IsPlaying())

	m.handleMessage([]byte(`{"event":"property-change","id":3,"name":"pause","data":true}`))
	assert.False(t, m.IsPlaying())

	m.handleMessage([]byte(`{"event":"property-change","id":3,"name":"pause","data":false}`))
	assert.True(t, m.IsPlaying())
}

func TestHandleMessageEndFile(t *testing.T) {
	finished := false
	m := newTestMPV(Handlers{Finished: func() { finished = true }})
	m.handleMessage([]byte(`{"event":"file-loaded"}`))
	require.True(t, m.IsPlaying())

	m.handleMessage([]byte(`{"event":"end-file","reason":"eof"}`))

	assert.True(t, finished)
	assert.False(t, m.IsPlaying())
}

func TestHandleMessageIgnoresGarbage(t *testing.T) {
	m := newTestMPV(Handlers{})

	m.handleMessage([]byte(`nonsense`))
	m.handleMessage([]byte(`{"error":"invalid parameter"}`))
	m.handleMessage([]byte(`{"event":"property-change","name":"duration","data":null}`))

	assert.False(t, m.IsPlaying())
}

func TestNotReadyConvention(t *testing.T) {
	m := NewMPV("mpv", Handlers{}, zerolog.Nop())
	require.NoError(t, m.SetFile("talk/demo.webm"))

	// Without a connected IPC socket everything asks to be rescheduled.
	assert.True(t, m.DoPlay())
	assert.True(t, m.DoPlayPause())
	assert.True(t, m.DoSetTime(3))
	assert.False(t, m.IsPlaying())

	// Seeking stays deferred until a file is actually loaded.
	m.connected = true
	assert.True(t, m.DoSetTime(3))
}

func TestUnimplementedBase(t *testing.T) {
	var u Unimplemented
	u.Logger = zerolog.Nop()

	assert.ErrorIs(t, u.SetFile("x"), ErrUnimplemented)
	assert.False(t, u.IsPlaying())
	assert.False(t, u.DoPlay())
	assert.False(t, u.DoPlayPause())
	assert.False(t, u.DoSetTime(1))
	u.DoStop()
}
