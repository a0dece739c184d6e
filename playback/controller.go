package playback

import (
	"fmt"
	"sync"
	"time"

	"github.com/kinocast-cli/kinocast/bridge"
	"github.com/kinocast-cli/kinocast/catalog"
	"github.com/kinocast-cli/kinocast/key"
	"github.com/kinocast-cli/kinocast/log"
	"github.com/kinocast-cli/kinocast/util"
	"github.com/spf13/viper"
)

// subtitleAutoSelectRetries bounds the auto-selection retry loop after a launch.
const subtitleAutoSelectRetries = 4

// CatalogClient is the slice of the catalog API the playback subsystem consumes.
type CatalogClient interface {
	TrickplayManifest(contentPath, sourceID string) (*catalog.Manifest, error)
	VideoInfo(contentPath, sourceID string) ([]catalog.SubtitleDescriptor, error)
}

// Preferences are the persisted playback settings applied to every session.
type Preferences struct {
	Volume                 int
	Quality                string
	StepSeconds            float64
	SubtitleLanguage       string
	SubtitleScale          float64
	SubtitleVerticalOffset int
}

// LoadPreferences reads the playback preferences from the configuration store.
func LoadPreferences() Preferences {
	return Preferences{
		Volume:                 util.Clamp(viper.GetInt(key.PlayerVolume), 0, 100),
		Quality:                viper.GetString(key.PlayerQuality),
		StepSeconds:            float64(viper.GetInt(key.PlayerStepSize)),
		SubtitleLanguage:       viper.GetString(key.SubtitleLanguage),
		SubtitleScale:          viper.GetFloat64(key.SubtitleScale),
		SubtitleVerticalOffset: viper.GetInt(key.SubtitleVerticalOffset),
	}
}

// Options configure a Controller.
type Options struct {
	Bridge  bridge.Bridge
	Catalog CatalogClient
	Surface ControlSurface
	// Timings defaults to DefaultTimings() when zero.
	Timings Timings
	// Quirks defaults to DetectProfile() when unset.
	Quirks      QuirkProfile
	Preferences Preferences
}

// Controller owns the lifecycle of the delegated playback session and is the only
// component with authority to mutate session status. All UI mutation of the external
// player flows through it.
type Controller struct {
	mu sync.Mutex

	bridge  bridge.Bridge
	catalog CatalogClient
	surface ControlSurface

	session    Session
	generation int64

	recreating  bool
	uiSuspended bool

	poller          StatePoller
	trickplay       *SeekCoordinator
	fullscreen      *FullscreenCoordinator
	subtitles       *TrackResolver
	autoSelectTimer *time.Timer

	timings Timings
	quirks  QuirkProfile
	prefs   Preferences
}

// NewController assembles the playback subsystem around a command bridge.
func NewController(opts Options) *Controller {
	if opts.Surface == nil {
		opts.Surface = NopSurface{}
	}
	if opts.Timings == (Timings{}) {
		opts.Timings = DefaultTimings()
	}
	if opts.Quirks.Name == "" {
		opts.Quirks = DetectProfile()
	}
	if opts.Preferences.StepSeconds <= 0 {
		opts.Preferences.StepSeconds = 10
	}

	c := &Controller{
		bridge:  opts.Bridge,
		catalog: opts.Catalog,
		surface: opts.Surface,
		session: Session{Status: Idle, SubtitleTrackID: bridge.NoSubtitleTrack},
		timings: opts.Timings,
		quirks:  opts.Quirks,
		prefs:   opts.Preferences,
	}

	c.poller = newIntervalPoller(c.timings.PollInterval, c.pollTick)
	c.trickplay = newSeekCoordinator(c)
	c.fullscreen = newFullscreenCoordinator(c)
	c.subtitles = newTrackResolver(c)

	return c
}

// Status returns the current session status.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session.Status
}

// Snapshot returns a copy of the current session.
func (c *Controller) Snapshot() Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

// controllable reports whether control commands may be forwarded right now.
func (c *Controller) controllable() bool {
	return c.Status() == Ready
}

// generationIs reports whether the session generation still matches the one an
// asynchronous operation captured at its start. Stale operations discard their
// effect instead of clobbering a newer session.
func (c *Controller) generationIs(gen int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation == gen
}

// Launch starts a new playback session for the given source. Any active session is
// closed first; close errors are logged and swallowed. Launch failure is the only
// error this subsystem surfaces to its caller.
func (c *Controller) Launch(src Source) error {
	if c.Status().Active() {
		if err := c.Close(); err != nil {
			log.Warnf("closing previous session: %v", err)
		}
	}

	c.mu.Lock()
	c.generation++
	gen := c.generation
	c.session = newSession(gen, src)
	c.mu.Unlock()

	err := c.bridge.Launch(bridge.LaunchSpec{
		Title:         src.Title,
		MediaURL:      src.MediaURL,
		SubtitleURL:   src.SubtitleURL,
		StartPosition: 0,
		StartPaused:   true,
	})
	if err != nil {
		c.mu.Lock()
		if c.generation == gen {
			c.session.Status = Closed
			c.session.Source = Source{}
		}
		c.mu.Unlock()
		return fmt.Errorf("launch %q: %w", src.Title, err)
	}

	c.mu.Lock()
	if c.generation != gen {
		// Replaced while the backend was starting; the newer launch owns the process.
		c.mu.Unlock()
		return nil
	}
	c.session.Status = Ready
	c.mu.Unlock()

	c.poller.Start()
	c.applyPreferences()
	c.scheduleAutoSelect(gen)

	return nil
}

// applyPreferences pushes the persisted preferences to the backend, best-effort.
func (c *Controller) applyPreferences() {
	if err := c.bridge.SetVolume(c.prefs.Volume); err != nil {
		log.Warnf("apply volume preference: %v", err)
	}
	if err := c.bridge.SetSubtitleStyle(c.prefs.SubtitleScale, c.prefs.SubtitleVerticalOffset); err != nil {
		log.Warnf("apply subtitle style preference: %v", err)
	}
}

// scheduleAutoSelect arms subtitle auto-selection after the settle delay; the
// backend needs time to parse tracks right after a launch.
func (c *Controller) scheduleAutoSelect(gen int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.autoSelectTimer != nil {
		c.autoSelectTimer.Stop()
	}
	c.autoSelectTimer = time.AfterFunc(c.timings.SubtitleSettleDelay, func() {
		if c.generationIs(gen) {
			c.subtitles.AutoSelect(subtitleAutoSelectRetries)
		}
	})
}

// cancelAutoSelect disarms a pending subtitle auto-selection.
func (c *Controller) cancelAutoSelect() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.autoSelectTimer != nil {
		c.autoSelectTimer.Stop()
		c.autoSelectTimer = nil
	}
}

// Close tears down the active session. Idempotent: closing an idle controller is a no-op.
func (c *Controller) Close() error {
	c.mu.Lock()
	if !c.session.Status.Active() {
		c.mu.Unlock()
		return nil
	}
	c.session.Status = Closed
	c.session.Source = Source{}
	c.mu.Unlock()

	c.poller.Stop()
	c.cancelAutoSelect()
	c.trickplay.Discard()

	return c.bridge.Close()
}

// TogglePause inverts the playback suspension state. No-op unless the session is ready.
func (c *Controller) TogglePause() error {
	if !c.controllable() {
		return nil
	}
	c.trickplay.Discard()

	c.mu.Lock()
	target := !c.session.Paused
	c.session.Paused = target
	c.mu.Unlock()

	if err := c.bridge.PlayPause(target); err != nil {
		log.Warnf("toggle pause: %v", err)
		return err
	}
	return nil
}

// Seek moves playback to an absolute position. Seeks outside the trickplay protocol
// immediately discard any pending trickplay seek.
func (c *Controller) Seek(targetSeconds float64) error {
	if !c.controllable() {
		return nil
	}
	c.trickplay.Discard()

	c.mu.Lock()
	target := util.Clamp(targetSeconds, 0, c.session.LiveDuration)
	c.session.LivePosition = target
	c.mu.Unlock()

	if err := c.bridge.Seek(target); err != nil {
		log.Warnf("seek to %.1fs: %v", target, err)
		return err
	}
	return nil
}

// SeekBy moves playback relative to the current live position.
func (c *Controller) SeekBy(deltaSeconds float64) error {
	c.mu.Lock()
	target := c.session.LivePosition + deltaSeconds
	c.mu.Unlock()
	return c.Seek(target)
}

// SetVolume sets the playback volume (0-100).
func (c *Controller) SetVolume(percent int) error {
	if !c.controllable() {
		return nil
	}
	c.trickplay.Discard()

	percent = util.Clamp(percent, 0, 100)

	c.mu.Lock()
	c.session.Volume = percent
	c.mu.Unlock()

	if err := c.bridge.SetVolume(percent); err != nil {
		log.Warnf("set volume: %v", err)
		return err
	}
	return nil
}

// SetSubtitleTrack selects a subtitle track by id.
func (c *Controller) SetSubtitleTrack(id int) error {
	if !c.controllable() {
		return nil
	}
	c.trickplay.Discard()

	c.mu.Lock()
	c.session.SubtitleTrackID = id
	c.mu.Unlock()

	if err := c.bridge.SetSubtitleTrack(id); err != nil {
		log.Warnf("set subtitle track %d: %v", id, err)
		return err
	}
	c.surface.SetSubtitleBadge(id != bridge.NoSubtitleTrack)
	return nil
}

// ToggleSubtitles disables the active subtitle track, or re-runs the language
// auto-selection when subtitles are currently off.
func (c *Controller) ToggleSubtitles() {
	if !c.controllable() {
		return
	}

	if c.Snapshot().SubtitleTrackID != bridge.NoSubtitleTrack {
		_ = c.SetSubtitleTrack(bridge.NoSubtitleTrack)
		return
	}
	go c.subtitles.AutoSelect(0)
}

// SetQualityProfile records a new quality preference. A change while a session is
// active recreates the session so the backend picks the new profile up.
func (c *Controller) SetQualityProfile(quality string) {
	c.trickplay.Discard()

	c.mu.Lock()
	changed := c.prefs.Quality != quality
	c.prefs.Quality = quality
	c.mu.Unlock()

	if changed && c.Status() == Ready {
		c.Recreate("quality-change")
	}
}

// SuspendUISync suppresses control-surface republishing while the user is dragging
// the seek slider. Session live fields keep updating underneath.
func (c *Controller) SuspendUISync(suspended bool) {
	c.mu.Lock()
	c.uiSuspended = suspended
	c.mu.Unlock()
}

// StepSeek feeds one discrete trickplay step (+1 forward, -1 backward).
func (c *Controller) StepSeek(direction int) {
	c.trickplay.OnStep(direction)
}

// CommitSeek commits the pending trickplay seek, if any.
func (c *Controller) CommitSeek() {
	c.trickplay.Commit()
}

// DiscardSeek discards the pending trickplay seek, if any.
func (c *Controller) DiscardSeek() {
	c.trickplay.Discard()
}

// ToggleFullscreen requests a fullscreen transition.
func (c *Controller) ToggleFullscreen() {
	c.trickplay.Discard()
	c.fullscreen.Toggle()
}

// ResolveExternalSubtitle picks the best subtitle URL for the given source,
// falling back to the provided URL when the catalog has nothing better.
func (c *Controller) ResolveExternalSubtitle(src Source, fallbackURL string) string {
	return c.subtitles.ResolveExternalTrack(src.ContentPath, src.SourceID, fallbackURL)
}

// Recreate tears the backend session down and relaunches it at the current position,
// preserving pause state, subtitle track, and volume. Used by fullscreen transitions
// and quality profile changes. Reentrant-safe: overlapping recreations are dropped.
// Every step is best-effort; partial failure leaves the session Ready regardless.
func (c *Controller) Recreate(reason string) {
	c.mu.Lock()
	if c.recreating || c.session.Status != Ready {
		c.mu.Unlock()
		return
	}
	c.recreating = true
	gen := c.generation
	src := c.session.Source
	snapshot := c.session
	c.session.Status = Recreating
	c.mu.Unlock()

	log.Infof("recreating session (%s)", reason)

	defer func() {
		c.mu.Lock()
		if c.generation == gen && c.session.Status == Recreating {
			c.session.Status = Ready
		}
		c.recreating = false
		c.mu.Unlock()
	}()

	// Prefer a fresh backend read over cached live fields; cached values may be
	// stale mid-transition.
	position := snapshot.LivePosition
	paused := snapshot.Paused
	subtitleTrack := snapshot.SubtitleTrackID
	volume := snapshot.Volume
	if state, err := c.bridge.State(); err == nil {
		position = state.Position
		paused = state.Paused
		subtitleTrack = state.SubtitleTrackID
		volume = state.Volume
	} else {
		log.Warnf("recreate(%s): state read failed, using cached snapshot: %v", reason, err)
	}

	if err := c.bridge.PlayPause(true); err != nil {
		log.Warnf("recreate(%s): pause failed: %v", reason, err)
	}
	if err := c.bridge.Close(); err != nil {
		log.Warnf("recreate(%s): close failed: %v", reason, err)
	}

	err := c.bridge.Launch(bridge.LaunchSpec{
		Title:         src.Title,
		MediaURL:      src.MediaURL,
		SubtitleURL:   src.SubtitleURL,
		StartPosition: position,
		StartPaused:   true,
	})
	if err != nil {
		log.Errorf("recreate(%s): relaunch failed: %v", reason, err)
		return
	}

	// Wait for the backend to report a duration before reapplying attributes.
	ready := false
	for i := 0; i < c.timings.RecreateReadyRetries; i++ {
		time.Sleep(c.timings.RecreateReadyInterval)
		if !c.generationIs(gen) {
			// The user replaced the session while we were rebuilding it.
			return
		}
		if state, err := c.bridge.State(); err == nil && state.Duration > 0 {
			ready = true
			break
		}
	}
	if !ready {
		log.Warnf("recreate(%s): backend never reported readiness", reason)
	}

	if subtitleTrack != bridge.NoSubtitleTrack {
		if err := c.bridge.SetSubtitleTrack(subtitleTrack); err != nil {
			log.Warnf("recreate(%s): reapply subtitle track: %v", reason, err)
		}
	}
	if err := c.bridge.SetVolume(volume); err != nil {
		log.Warnf("recreate(%s): reapply volume: %v", reason, err)
	}
	if err := c.bridge.SetSubtitleStyle(c.prefs.SubtitleScale, c.prefs.SubtitleVerticalOffset); err != nil {
		log.Warnf("recreate(%s): reapply subtitle style: %v", reason, err)
	}

	if !paused {
		if err := c.bridge.PlayPause(false); err != nil {
			log.Warnf("recreate(%s): resume failed: %v", reason, err)
		}
	}
}
