package backend

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Handlers receive backend notifications. They are invoked from the IPC
// reader goroutine: implementations must hand any UI or playback mutation
// back to the UI thread through the task queue, the embedded player is not
// reentrant-safe across threads.
type Handlers struct {
	// DurationKnown fires once mpv learns the media duration, in seconds.
	DurationKnown func(seconds float64)
	// Progress fires on playback position updates, in seconds.
	Progress func(seconds float64)
	// Finished fires when playback reaches the end of the file.
	Finished func()
}

// MPV drives an mpv process over its JSON IPC socket. It implements the
// overlay PlaybackBackend contract: the Do* methods run on the UI thread and
// answer true while the player is not ready yet.
type MPV struct {
	Unimplemented

	logger   zerolog.Logger
	mpvPath  string
	socket   string
	handlers Handlers

	cmd  *exec.Cmd
	conn net.Conn

	mu        sync.Mutex
	connected bool
	loaded    bool
	paused    bool
	file      string
	requestID int
}

// NewMPV prepares an mpv backend. Start must be called before playback.
func NewMPV(mpvPath string, handlers Handlers, logger zerolog.Logger) *MPV {
	if mpvPath == "" {
		mpvPath = "mpv"
	}
	l := logger.With().Str("component", "mpv").Logger()
	return &MPV{
		Unimplemented: Unimplemented{Logger: l},
		logger:        l,
		mpvPath:       mpvPath,
		handlers:      handlers,
	}
}

// Start launches the mpv process and connects to its IPC socket in the
// background. Playback commands issued before the socket is up answer
// "run me again" to their task queue.
func (m *MPV) Start() error {
	resolved, err := exec.LookPath(m.mpvPath)
	if err != nil {
		return fmt.Errorf("mpv not found: %w", err)
	}

	m.socket = filepath.Join(os.TempDir(), fmt.Sprintf("beamview-mpv-%d.sock", os.Getpid()))

	args := []string{
		"--idle=yes",
		"--no-terminal",
		"--force-window=no",
		"--keep-open=yes",
		"--input-ipc-server=" + m.socket,
	}

	m.cmd = exec.Command(resolved, args...)
	if err := m.cmd.Start(); err != nil {
		return fmt.Errorf("failed to start mpv: %w", err)
	}

	m.logger.Debug().Str("socket", m.socket).Msg("mpv started")
	go m.connect()
	return nil
}

// connect dials the IPC socket, retrying while mpv creates it, then
// subscribes to the properties the overlay needs and enters the read loop.
func (m *MPV) connect() {
	var conn net.Conn
	var err error
	for i := 0; i < 100; i++ {
		conn, err = net.Dial("unix", m.socket)
		if err == nil {
			break
		}
		time.Sleep(50 * time.Millisecond)
	}
	if err != nil {
		m.logger.Error().Err(err).Msg("could not reach mpv IPC socket")
		return
	}

	m.mu.Lock()
	m.conn = conn
	m.connected = true
	m.mu.Unlock()

	for i, prop := range []string{"duration", "time-pos", "pause"} {
		if err := m.send("observe_property", i+1, prop); err != nil {
			m.logger.Warn().Err(err).Str("property", prop).Msg("observe failed")
		}
	}

	m.readLoop(conn)
}

func (m *MPV) readLoop(conn net.Conn) {
	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		m.handleMessage(scanner.Bytes())
	}
	m.mu.Lock()
	m.connected = false
	m.loaded = false
	m.mu.Unlock()
	m.logger.Debug().Msg("mpv IPC connection closed")
}

// mpvMessage covers both command replies and asynchronous events.
type mpvMessage struct {
	Event string      `json:"event"`
	Name  string      `json:"name"`
	Data  interface{} `json:"data"`
	Error string      `json:"error"`
}

func (m *MPV) handleMessage(raw []byte) {
	var msg mpvMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		m.logger.Debug().Err(err).Bytes("raw", raw).Msg("unparseable IPC message")
		return
	}

	if msg.Error != "" && msg.Error != "success" {
		m.logger.Warn().Str("error", msg.Error).Msg("mpv command failed")
		return
	}

	switch msg.Event {
	case "file-loaded":
		m.mu.Lock()
		m.loaded = true
		m.mu.Unlock()

	case "end-file":
		m.mu.Lock()
		m.loaded = false
		m.mu.Unlock()
		if m.handlers.Finished != nil {
			m.handlers.Finished()
		}

	case "property-change":
		m.handleProperty(msg)
	}
}

func (m *MPV) handleProperty(msg mpvMessage) {
	switch msg.Name {
	case "duration":
		if v, ok := msg.Data.(float64); ok && m.handlers.DurationKnown != nil {
			m.handlers.DurationKnown(v)
		}
	case "time-pos":
		if v, ok := msg.Data.(float64); ok && m.handlers.Progress != nil {
			m.handlers.Progress(v)
		}
	case "pause":
		if v, ok := msg.Data.(bool); ok {
			m.mu.Lock()
			m.paused = v
			m.mu.Unlock()
		}
	}
}

// send encodes a command as one IPC request line.
func (m *MPV) send(command ...interface{}) error {
	m.mu.Lock()
	conn := m.conn
	m.requestID++
	id := m.requestID
	m.mu.Unlock()

	if conn == nil {
		return fmt.Errorf("mpv IPC not connected")
	}

	payload, err := encodeCommand(id, command...)
	if err != nil {
		return err
	}
	_, err = conn.Write(payload)
	return err
}

func encodeCommand(requestID int, command ...interface{}) ([]byte, error) {
	req := struct {
		Command   []interface{} `json:"command"`
		RequestID int           `json:"request_id"`
	}{Command: command, RequestID: requestID}

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode mpv command: %w", err)
	}
	return append(payload, '\n'), nil
}

// IsPlaying reports whether media is loaded and not paused.
func (m *MPV) IsPlaying() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.connected && m.loaded && !m.paused
}

// SetFile binds the backend to a media source. The file is loaded lazily by
// the first DoPlay once the IPC socket is up.
func (m *MPV) SetFile(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.file = path
	m.loaded = false
	return nil
}

// DoStop stops playback and unloads the file.
func (m *MPV) DoStop() {
	m.mu.Lock()
	connected := m.connected
	m.loaded = false
	m.mu.Unlock()

	if !connected {
		return
	}
	if err := m.send("stop"); err != nil {
		m.logger.Warn().Err(err).Msg("stop failed")
	}
}

// DoPlay starts playback, loading the bound file first if needed. Answers
// true while the IPC socket is not connected yet.
func (m *MPV) DoPlay() bool {
	m.mu.Lock()
	connected, loaded, file := m.connected, m.loaded, m.file
	m.mu.Unlock()

	if !connected {
		return true
	}

	if !loaded {
		if file == "" {
			m.logger.Warn().Msg("play requested with no file bound")
			return false
		}
		if err := m.send("loadfile", file, "replace"); err != nil {
			m.logger.Warn().Err(err).Msg("loadfile failed")
			return true
		}
	}
	if err := m.send("set_property", "pause", false); err != nil {
		m.logger.Warn().Err(err).Msg("unpause failed")
	}
	return false
}

// DoPlayPause toggles pause. Answers true while not connected.
func (m *MPV) DoPlayPause() bool {
	m.mu.Lock()
	connected, loaded := m.connected, m.loaded
	m.mu.Unlock()

	if !connected {
		return true
	}
	if !loaded {
		// Nothing playing yet: behave like play.
		return m.DoPlay()
	}
	if err := m.send("cycle", "pause"); err != nil {
		m.logger.Warn().Err(err).Msg("play_pause failed")
	}
	return false
}

// DoSetTime seeks to an absolute position in seconds. Answers true until a
// file is loaded to seek in.
func (m *MPV) DoSetTime(t float64) bool {
	m.mu.Lock()
	connected, loaded := m.connected, m.loaded
	m.mu.Unlock()

	if !connected || !loaded {
		return true
	}
	if err := m.send("seek", t, "absolute"); err != nil {
		m.logger.Warn().Err(err).Msg("seek failed")
	}
	return false
}

// Close tears down the IPC connection and the mpv process.
func (m *MPV) Close() error {
	m.mu.Lock()
	conn := m.conn
	m.conn = nil
	m.connected = false
	m.mu.Unlock()

	if conn != nil {
		conn.Close()
	}

	var err error
	if m.cmd != nil && m.cmd.Process != nil {
		err = m.cmd.Process.Kill()
		m.cmd.Wait()
	}

	if m.socket != "" {
		os.Remove(m.socket)
	}
	return err
}
