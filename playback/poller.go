package playback

import (
	"strings"
	"sync"
	"time"

	"github.com/kinocast-cli/kinocast/log"
	"github.com/kinocast-cli/kinocast/util"
)

// StatePoller drives periodic state synchronization between the backend and the
// session. The pull-based implementation below exists because the command bridge
// offers no reliable push channel on every platform; a push-capable backend can
// substitute its own implementation.
type StatePoller interface {
	// Start begins the polling loop. Starting an already running poller is a no-op.
	Start()
	// Stop halts the polling loop. Stopping an idle poller is a no-op.
	Stop()
}

// intervalPoller invokes a tick callback on a fixed interval.
type intervalPoller struct {
	interval time.Duration
	tick     func()

	mu   sync.Mutex
	stop chan struct{}
}

func newIntervalPoller(interval time.Duration, tick func()) *intervalPoller {
	return &intervalPoller{interval: interval, tick: tick}
}

func (p *intervalPoller) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stop != nil {
		return
	}

	stop := make(chan struct{})
	p.stop = stop

	go func() {
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				p.tick()
			}
		}
	}()
}

func (p *intervalPoller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stop == nil {
		return
	}
	close(p.stop)
	p.stop = nil
}

// hardwareDecoders is the known set of hardware decode backend names.
var hardwareDecoders = map[string]struct{}{
	"vaapi":        {},
	"vdpau":        {},
	"nvdec":        {},
	"cuda":         {},
	"videotoolbox": {},
	"d3d11va":      {},
	"dxva2":        {},
	"mediacodec":   {},
	"mmal":         {},
	"v4l2m2m":      {},
}

// isHardwareDecoder matches a backend-reported decoder name against the known
// hardware decoder set. Copy-back variants ("nvdec-copy") count as hardware.
func isHardwareDecoder(name string) bool {
	name = strings.TrimSuffix(strings.ToLower(strings.TrimSpace(name)), "-copy")
	_, ok := hardwareDecoders[name]
	return ok
}

// pollTick performs one state poller tick: a single backend state read, session
// update, and UI republish. Transient read failures skip the tick silently; they
// are expected right after a launch.
func (c *Controller) pollTick() {
	c.mu.Lock()
	if c.session.Status != Ready {
		// Loop keeps ticking while the session is launching, recreating, or gone;
		// only Close actually stops the poller.
		c.mu.Unlock()
		return
	}
	gen := c.generation
	c.mu.Unlock()

	state, err := c.bridge.State()
	if err != nil {
		// A read failure from a dead process means the user closed the player
		// window; tear the session down instead of polling a corpse.
		if !c.bridge.IsRunning() && c.generationIs(gen) {
			log.Infof("player process gone, closing session")
			_ = c.Close()
		}
		return
	}

	c.mu.Lock()
	if c.generation != gen || c.session.Status != Ready {
		// A newer session replaced this one while the read was in flight.
		c.mu.Unlock()
		return
	}

	// No monotonicity assumption: a recreation legitimately resets the position.
	c.session.LivePosition = state.Position
	c.session.LiveDuration = state.Duration
	c.session.Paused = state.Paused
	c.session.Volume = state.Volume
	c.session.SubtitleTrackID = state.SubtitleTrackID
	c.session.HardwareDecodeActive = isHardwareDecoder(state.DecoderName)

	suspended := c.uiSuspended
	projection := projectStatus(c.session)
	c.mu.Unlock()

	// Do not fight a slider the user is actively dragging.
	if !suspended {
		c.surface.UpdateStatus(projection)
	}
}

// projectStatus derives the UI status projection from the session's live fields.
func projectStatus(s Session) StatusProjection {
	percent := 0.0
	if s.LiveDuration > 0 {
		percent = util.Clamp(s.LivePosition/s.LiveDuration*100, 0, 100)
	}

	return StatusProjection{
		TimeLabel:       util.ClockRange(s.LivePosition, s.LiveDuration),
		ProgressPercent: percent,
		Paused:          s.Paused,
		Volume:          s.Volume,
		HardwareDecode:  s.HardwareDecodeActive,
	}
}
