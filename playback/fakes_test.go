package playback

import (
	"sync"
	"time"

	"github.com/kinocast-cli/kinocast/bridge"
	"github.com/kinocast-cli/kinocast/catalog"
)

// fakeBridge records every command issued against it and replays configured responses.
type fakeBridge struct {
	mu    sync.Mutex
	calls []string

	launchErr     error
	closeErr      error
	playPauseErr  error
	seekErr       error
	volumeErr     error
	stateErr      error
	fullscreenErr error
	tracksErr     error

	state      bridge.State
	stateFunc  func() (bridge.State, error) // overrides state when set
	fullscreen bool
	tracks     []bridge.SubtitleTrack

	lastLaunch        bridge.LaunchSpec
	lastSeek          float64
	lastSubtitleTrack int

	exited chan struct{}
}

func newFakeBridge() *fakeBridge {
	return &fakeBridge{exited: make(chan struct{})}
}

func (f *fakeBridge) record(name string) {
	f.mu.Lock()
	f.calls = append(f.calls, name)
	f.mu.Unlock()
}

func (f *fakeBridge) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	n := 0
	for _, call := range f.calls {
		if call == name {
			n++
		}
	}
	return n
}

func (f *fakeBridge) Launch(spec bridge.LaunchSpec) error {
	f.record("launch")
	f.mu.Lock()
	f.lastLaunch = spec
	f.mu.Unlock()
	return f.launchErr
}

func (f *fakeBridge) Close() error {
	f.record("close")
	return f.closeErr
}

func (f *fakeBridge) PlayPause(pause bool) error {
	f.record("playPause")
	return f.playPauseErr
}

func (f *fakeBridge) Seek(seconds float64) error {
	f.record("seek")
	f.mu.Lock()
	f.lastSeek = seconds
	f.mu.Unlock()
	return f.seekErr
}

func (f *fakeBridge) SetVolume(percent int) error {
	f.record("setVolume")
	return f.volumeErr
}

func (f *fakeBridge) State() (bridge.State, error) {
	f.record("state")
	f.mu.Lock()
	hook := f.stateFunc
	state, err := f.state, f.stateErr
	f.mu.Unlock()

	if hook != nil {
		return hook()
	}
	return state, err
}

func (f *fakeBridge) Fullscreen() (bool, error) {
	f.record("getFullscreen")
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fullscreen, f.fullscreenErr
}

func (f *fakeBridge) SetFullscreen(enabled bool) error {
	f.record("setFullscreen")
	f.mu.Lock()
	f.fullscreen = enabled
	f.mu.Unlock()
	return nil
}

func (f *fakeBridge) SetSurfaceFullscreen(enabled bool) error {
	f.record("setSurfaceFullscreen")
	return nil
}

func (f *fakeBridge) ResizeSurface() error {
	f.record("resizeSurface")
	return nil
}

func (f *fakeBridge) SubtitleTracks() ([]bridge.SubtitleTrack, error) {
	f.record("subtitleTracks")
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.tracks, f.tracksErr
}

func (f *fakeBridge) SetSubtitleTrack(id int) error {
	f.record("setSubtitleTrack")
	f.mu.Lock()
	f.lastSubtitleTrack = id
	f.mu.Unlock()
	return nil
}

func (f *fakeBridge) SetSubtitleStyle(scale float64, verticalOffset int) error {
	f.record("setSubtitleStyle")
	return nil
}

func (f *fakeBridge) AddExternalSubtitle(url, title string) error {
	f.record("addExternalSubtitle")
	return nil
}

func (f *fakeBridge) IsRunning() bool { return true }

func (f *fakeBridge) Wait() <-chan struct{} { return f.exited }

// fakeCatalog replays configured manifests and subtitle descriptors.
type fakeCatalog struct {
	mu            sync.Mutex
	manifest      *catalog.Manifest
	manifestErr   error
	manifestCalls int
	subs          []catalog.SubtitleDescriptor
	subsErr       error
}

func (f *fakeCatalog) TrickplayManifest(contentPath, sourceID string) (*catalog.Manifest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.manifestCalls++
	return f.manifest, f.manifestErr
}

func (f *fakeCatalog) VideoInfo(contentPath, sourceID string) ([]catalog.SubtitleDescriptor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.subs, f.subsErr
}

// fakeSurface captures every projection published to it.
type fakeSurface struct {
	mu       sync.Mutex
	statuses []StatusProjection
	previews []SeekPreview
	hides    int
	badges   []bool
}

func (f *fakeSurface) UpdateStatus(p StatusProjection) {
	f.mu.Lock()
	f.statuses = append(f.statuses, p)
	f.mu.Unlock()
}

func (f *fakeSurface) ShowSeekPreview(p SeekPreview) {
	f.mu.Lock()
	f.previews = append(f.previews, p)
	f.mu.Unlock()
}

func (f *fakeSurface) HideSeekPreview() {
	f.mu.Lock()
	f.hides++
	f.mu.Unlock()
}

func (f *fakeSurface) SetSubtitleBadge(active bool) {
	f.mu.Lock()
	f.badges = append(f.badges, active)
	f.mu.Unlock()
}

func (f *fakeSurface) lastStatus() (StatusProjection, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.statuses) == 0 {
		return StatusProjection{}, false
	}
	return f.statuses[len(f.statuses)-1], true
}

// testTimings collapses every delay so tests stay fast and deterministic. The
// poll interval, settle delay, and hide delay are parked far in the future; tests
// drive ticks and auto-selection by hand.
func testTimings() Timings {
	return Timings{
		PollInterval:              time.Hour,
		SubtitleSettleDelay:       time.Hour,
		SubtitleRetryDelay:        time.Millisecond,
		RecreateReadyInterval:     time.Millisecond,
		RecreateReadyRetries:      2,
		FullscreenCooldown:        time.Hour,
		FullscreenConfirmInterval: time.Millisecond,
		FullscreenConfirmTimeout:  5 * time.Millisecond,
		FullscreenTrailingGuard:   time.Millisecond,
		PreviewRecentWindow:       1600 * time.Millisecond,
		PreviewHideDelay:          time.Hour,
	}
}

func testQuirks() QuirkProfile {
	return QuirkProfile{
		Name:                   "test",
		AllowSurfaceFullscreen: true,
	}
}

func newTestController(b bridge.Bridge, cat CatalogClient, surf ControlSurface) *Controller {
	return NewController(Options{
		Bridge:  b,
		Catalog: cat,
		Surface: surf,
		Timings: testTimings(),
		Quirks:  testQuirks(),
		Preferences: Preferences{
			Volume:           80,
			StepSeconds:      10,
			SubtitleLanguage: "en",
			SubtitleScale:    1,
		},
	})
}

func testSource() Source {
	return Source{
		Title:       "Ep01",
		MediaURL:    "https://x/stream",
		ContentPath: "shows/ep01",
		SourceID:    "src1",
	}
}

// makeReady launches a session and seeds live fields for control tests.
func makeReady(c *Controller, position, duration float64) {
	c.mu.Lock()
	c.session.LivePosition = position
	c.session.LiveDuration = duration
	c.mu.Unlock()
}
