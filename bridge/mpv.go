package bridge

import (
	"crypto/rand"
	"fmt"
	"net"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/kinocast-cli/kinocast/log"
)

const (
	socketWaitRetries = 10
	socketWaitDelay   = 300 * time.Millisecond
	quitGracePeriod   = 3 * time.Second
)

// MPV implements the Bridge interface using mpv's JSON-IPC protocol.
type MPV struct {
	socketPath string
	cmd        *exec.Cmd
	exited     chan struct{} // closed when the current mpv process exits
	done       chan struct{} // closed when the player dies without Close asking; survives relaunches
	doneOnce   sync.Once
	closing    bool
	mu         sync.Mutex // Protects socket writes and closing
}

// NewMPV creates a new MPV bridge instance (does not start playback).
func NewMPV() *MPV {
	return &MPV{
		exited: make(chan struct{}),
		done:   make(chan struct{}),
	}
}

// Launch starts an mpv process for the given media and waits for its IPC socket.
func (m *MPV) Launch(spec LaunchSpec) error {
	// Sanitize the URL to prevent flag injection from untrusted catalog data.
	safeURL, err := sanitizeMediaTarget(spec.MediaURL)
	if err != nil {
		return fmt.Errorf("invalid media target: %w", err)
	}

	// A relaunch after Close (fullscreen or quality recreation) resumes the session.
	m.mu.Lock()
	m.closing = false
	m.mu.Unlock()

	// Generate a random socket path using os.TempDir() for cross-platform support
	// (macOS $TMPDIR is /var/folders/... not /tmp/).
	if m.socketPath == "" {
		randomBytes := make([]byte, 4)
		if _, err := rand.Read(randomBytes); err != nil {
			return fmt.Errorf("generate socket name: %w", err)
		}
		m.socketPath = filepath.Join(os.TempDir(), fmt.Sprintf("kinocast-%x.sock", randomBytes))
	}

	args := launchArgs(spec, m.socketPath, safeURL)
	m.cmd = exec.Command("mpv", args...)

	// Detach from parent process group to prevent cascading shell panics.
	m.cmd.SysProcAttr = sysProcAttr()

	// Disable standard pipes to prevent resource leaks.
	m.cmd.Stdout = nil
	m.cmd.Stderr = nil
	m.cmd.Stdin = nil

	if err := m.cmd.Start(); err != nil {
		return fmt.Errorf("start mpv: %w", err)
	}

	// Background goroutine to reap the process and prevent zombies.
	exited := make(chan struct{})
	m.exited = exited
	cmd := m.cmd
	go func() {
		_ = cmd.Wait()
		m.playerExited(exited)
	}()

	if err := m.waitForSocket(); err != nil {
		// If the socket never became ready, kill the orphaned process.
		if m.cmd.Process != nil {
			select {
			case <-m.exited:
				// Already exited
			default:
				log.Warnf("killing mpv: socket never became ready")
				_ = m.cmd.Process.Kill()
			}
		}
		return fmt.Errorf("mpv socket not ready: %w", err)
	}

	return nil
}

// launchArgs builds the mpv argument vector for a launch.
// Pass ONLY what the session needs; do NOT pass --vo, --profile, --hwdec - respect the user's mpv.conf.
func launchArgs(spec LaunchSpec, socketPath, safeURL string) []string {
	safeTitle := sanitizeTitle(spec.Title)

	args := []string{
		"--no-terminal",
		"--really-quiet",
		fmt.Sprintf("--input-ipc-server=%s", socketPath),
		fmt.Sprintf("--force-media-title=%s", safeTitle),
		fmt.Sprintf("--title=%s", safeTitle), // Some mpv builds only respect --title
		"--force-window=yes",
		"--idle=yes",
	}

	if spec.StartPosition > 0 {
		args = append(args, fmt.Sprintf("--start=+%.3f", spec.StartPosition))
	}
	if spec.StartPaused {
		args = append(args, "--pause")
	}
	if spec.SubtitleURL != "" {
		args = append(args, fmt.Sprintf("--sub-file=%s", spec.SubtitleURL))
	}

	return append(args, safeURL)
}

// playerExited records a process exit. An exit that Close did not request means the
// user killed the player window, so the session-done channel closes too. Exits caused
// by Close leave it open; the session continues across a recreation relaunch.
func (m *MPV) playerExited(exited chan struct{}) {
	m.mu.Lock()
	requested := m.closing
	m.mu.Unlock()

	close(exited)
	if !requested {
		m.doneOnce.Do(func() { close(m.done) })
	}
}

// Wait returns a channel that is closed when the player dies on its own. The channel
// survives relaunches of the backing process: a recreation does not end the session.
func (m *MPV) Wait() <-chan struct{} {
	return m.done
}

// waitForSocket polls until the mpv IPC socket is accepting connections.
func (m *MPV) waitForSocket() error {
	for i := 0; i < socketWaitRetries; i++ {
		time.Sleep(socketWaitDelay)

		// Check if process already exited
		select {
		case <-m.exited:
			return fmt.Errorf("mpv exited before socket was ready")
		default:
		}

		conn, err := net.Dial("unix", m.socketPath)
		if err == nil {
			conn.Close()
			return nil
		}
	}
	return fmt.Errorf("socket %s not ready after %d attempts", m.socketPath, socketWaitRetries)
}

// State retrieves a full playback state snapshot via IPC.
// Position and duration are mandatory; decoder and OSD geometry degrade to zero values
// since mpv reports them only once video output is configured.
func (m *MPV) State() (State, error) {
	pos, err := m.getFloatProperty("time-pos")
	if err != nil {
		return State{}, err
	}

	dur, err := m.getFloatProperty("duration")
	if err != nil {
		// Duration may be unknown for live streams; report zero and keep polling.
		dur = 0
	}

	paused, err := m.getBoolProperty("pause")
	if err != nil {
		return State{}, err
	}

	volume, err := m.getFloatProperty("volume")
	if err != nil {
		return State{}, err
	}

	state := State{
		Position:        pos,
		Duration:        dur,
		Paused:          paused,
		Volume:          int(volume),
		SubtitleTrackID: NoSubtitleTrack,
	}

	// sid is false when no track is selected, a number otherwise.
	if data, err := m.sendCommand([]interface{}{"get_property", "sid"}); err == nil {
		if id, ok := data.(float64); ok {
			state.SubtitleTrackID = int(id)
		}
	}

	if name, err := m.sendCommand([]interface{}{"get_property", "hwdec-current"}); err == nil {
		if s, ok := name.(string); ok {
			state.DecoderName = s
		}
	}

	if width, err := m.getFloatProperty("osd-width"); err == nil {
		state.OSDWidth = width
	}

	return state, nil
}

// Fullscreen reports whether the mpv window is currently fullscreen.
func (m *MPV) Fullscreen() (bool, error) {
	return m.getBoolProperty("fullscreen")
}

// SetFullscreen requests the mpv window fullscreen state.
func (m *MPV) SetFullscreen(enabled bool) error {
	return m.setProperty("fullscreen", enabled)
}

// SetSurfaceFullscreen stretches or restores the video surface inside the window.
func (m *MPV) SetSurfaceFullscreen(enabled bool) error {
	panscan := 0.0
	if enabled {
		panscan = 1.0
	}
	return m.setProperty("panscan", panscan)
}

// ResizeSurface re-asserts the window geometry so mpv recomputes the video surface layout.
func (m *MPV) ResizeSurface() error {
	return m.setProperty("window-scale", 1.0)
}

// PlayPause sets the playback suspension state.
func (m *MPV) PlayPause(pause bool) error {
	return m.setProperty("pause", pause)
}

// Seek moves playback to the given absolute position in seconds.
func (m *MPV) Seek(seconds float64) error {
	_, err := m.sendCommand([]interface{}{"seek", seconds, "absolute"})
	return err
}

// SetVolume sets the playback volume (0-100).
func (m *MPV) SetVolume(percent int) error {
	return m.setProperty("volume", percent)
}

// SubtitleTracks lists the subtitle entries of mpv's track-list property.
func (m *MPV) SubtitleTracks() ([]SubtitleTrack, error) {
	data, err := m.sendCommand([]interface{}{"get_property", "track-list"})
	if err != nil {
		return nil, err
	}
	return parseSubtitleTracks(data), nil
}

// parseSubtitleTracks extracts subtitle entries from a decoded track-list value.
func parseSubtitleTracks(data interface{}) []SubtitleTrack {
	raw, ok := data.([]interface{})
	if !ok {
		return nil
	}

	var tracks []SubtitleTrack
	for _, entry := range raw {
		fields, ok := entry.(map[string]interface{})
		if !ok {
			continue
		}
		if kind, _ := fields["type"].(string); kind != "sub" {
			continue
		}

		track := SubtitleTrack{ID: NoSubtitleTrack}
		if id, ok := fields["id"].(float64); ok {
			track.ID = int(id)
		}
		track.Lang, _ = fields["lang"].(string)
		track.Title, _ = fields["title"].(string)
		track.Selected, _ = fields["selected"].(bool)
		track.External, _ = fields["external"].(bool)
		tracks = append(tracks, track)
	}
	return tracks
}

// SetSubtitleTrack selects a subtitle track by id; NoSubtitleTrack disables subtitles.
func (m *MPV) SetSubtitleTrack(id int) error {
	if id == NoSubtitleTrack {
		return m.setProperty("sid", "no")
	}
	return m.setProperty("sid", id)
}

// SetSubtitleStyle applies subtitle rendering preferences.
func (m *MPV) SetSubtitleStyle(scale float64, verticalOffset int) error {
	if err := m.setProperty("sub-scale", scale); err != nil {
		return err
	}
	// sub-pos is measured from the top of the screen, 100 being the bottom edge.
	return m.setProperty("sub-pos", 100-verticalOffset)
}

// AddExternalSubtitle injects a sidecar subtitle file by URL.
func (m *MPV) AddExternalSubtitle(url, title string) error {
	_, err := m.sendCommand([]interface{}{"sub-add", url, "auto", sanitizeTitle(title)})
	return err
}

// IsRunning reports whether mpv is responding to IPC commands.
func (m *MPV) IsRunning() bool {
	if m.socketPath == "" {
		return false
	}

	// Fast check: process already exited?
	select {
	case <-m.exited:
		return false
	default:
	}

	_, err := m.sendCommand([]interface{}{"get_property", "pid"})
	return err == nil
}

// Close shuts down the mpv process and cleans up resources.
func (m *MPV) Close() error {
	if m.socketPath == "" {
		return nil
	}

	m.mu.Lock()
	m.closing = true
	m.mu.Unlock()

	// Try graceful quit via IPC.
	_, _ = m.sendCommand([]interface{}{"quit"})

	select {
	case <-m.exited:
		// Clean exit
	case <-time.After(quitGracePeriod):
		// Force kill if graceful quit didn't work
		_ = killProcess(m.cmd)
	}

	// Clean up the socket file.
	_ = os.Remove(m.socketPath)

	return nil
}

// Socket returns the IPC socket path.
func (m *MPV) Socket() string {
	return m.socketPath
}

// setProperty sets an mpv property via IPC.
func (m *MPV) setProperty(property string, value interface{}) error {
	_, err := m.sendCommand([]interface{}{"set_property", property, value})
	return err
}

// getFloatProperty is a helper to retrieve a float64 mpv property via IPC.
func (m *MPV) getFloatProperty(name string) (float64, error) {
	data, err := m.sendCommand([]interface{}{"get_property", name})
	if err != nil {
		return 0, err
	}

	if data == nil {
		return 0, fmt.Errorf("property %s: nil response", name)
	}

	val, ok := data.(float64)
	if !ok {
		return 0, fmt.Errorf("property %s: expected float64, got %T", name, data)
	}

	return val, nil
}

// getBoolProperty is a helper to retrieve a bool mpv property via IPC.
func (m *MPV) getBoolProperty(name string) (bool, error) {
	data, err := m.sendCommand([]interface{}{"get_property", name})
	if err != nil {
		return false, err
	}

	val, ok := data.(bool)
	if !ok {
		return false, fmt.Errorf("property %s: expected bool, got %T", name, data)
	}

	return val, nil
}

// sanitizeMediaTarget validates that a URL is safe to pass to mpv.
// Prevents flag injection from untrusted catalog entries.
func sanitizeMediaTarget(link string) (string, error) {
	l := strings.TrimSpace(link)
	if l == "" {
		return "", fmt.Errorf("empty URL")
	}

	// Reject control characters
	if strings.ContainsAny(l, "\x00\n\r") {
		return "", fmt.Errorf("invalid control characters in URL")
	}

	// Prevent flag injection: URLs must not start with -
	if strings.HasPrefix(l, "-") {
		return "", fmt.Errorf("url must not start with '-' (looks like a flag)")
	}

	// If it contains "://", validate as URL
	if strings.Contains(l, "://") {
		u, err := url.Parse(l)
		if err != nil {
			return "", fmt.Errorf("invalid URL: %w", err)
		}
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return l, nil
		default:
			return "", fmt.Errorf("unsupported URL scheme: %s", u.Scheme)
		}
	}

	// Treat as local file path
	return filepath.Clean(l), nil
}

// sanitizeTitle cleans up a display title for mpv.
func sanitizeTitle(title string) string {
	t := strings.ReplaceAll(title, "\n", " ")
	t = strings.ReplaceAll(t, "\r", " ")
	t = strings.ReplaceAll(t, "\t", " ")
	t = strings.ReplaceAll(t, "\x00", "")
	return strings.TrimSpace(t)
}
