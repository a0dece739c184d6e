package playback

import (
	"sync"
	"time"

	"github.com/kinocast-cli/kinocast/catalog"
	"github.com/kinocast-cli/kinocast/log"
	"github.com/kinocast-cli/kinocast/util"
	"github.com/samber/mo"
)

// previewRadius is how many neighboring thumbnails flank the focus thumbnail in
// the filmstrip preview.
const previewRadius = 2

// PendingSeek accumulates discrete step input into one relative seek. It exists
// only between the first step and a commit/discard.
type PendingSeek struct {
	// Position when stepping began.
	Baseline float64
	// Signed accumulated step count.
	StepCount int
	// Position currently previewed.
	PreviewPosition float64
	PreviewAt       time.Time
}

// SeekCoordinator converts step input (remote-control left/right) into a pending
// seek with a live thumbnail preview. N rapid steps cost one backend seek: the
// seek is issued only on Commit.
type SeekCoordinator struct {
	c *Controller

	mu        sync.Mutex
	pending   mo.Option[PendingSeek]
	hideTimer *time.Timer

	// Last preview position survives commits so an immediately following step
	// sequence can resume from it instead of a stale poll value.
	lastPreviewPos float64
	lastPreviewAt  time.Time

	// Per-process manifest cache; one key is active at a time during playback,
	// so unbounded growth is not a concern.
	manifests map[string]*catalog.Manifest
	attempted map[string]bool
}

func newSeekCoordinator(c *Controller) *SeekCoordinator {
	return &SeekCoordinator{
		c:         c,
		pending:   mo.None[PendingSeek](),
		manifests: make(map[string]*catalog.Manifest),
		attempted: make(map[string]bool),
	}
}

// OnStep accumulates one step (+1 forward, -1 backward) into the pending seek and
// refreshes the preview overlay. Meaningful only while the session is ready.
func (s *SeekCoordinator) OnStep(direction int) {
	if !s.c.controllable() {
		return
	}
	sess := s.c.Snapshot()
	step := s.c.prefs.StepSeconds

	s.mu.Lock()
	p, exists := s.pending.Get()
	if !exists {
		baseline := sess.LivePosition
		// A very recent preview is fresher than the last poll value.
		if time.Since(s.lastPreviewAt) < s.c.timings.PreviewRecentWindow {
			baseline = s.lastPreviewPos
		}
		p = PendingSeek{Baseline: baseline}
	}

	p.StepCount += direction
	p.PreviewPosition = util.Clamp(p.Baseline+float64(p.StepCount)*step, 0, sess.LiveDuration)
	p.PreviewAt = time.Now()
	s.pending = mo.Some(p)
	s.lastPreviewPos = p.PreviewPosition
	s.lastPreviewAt = p.PreviewAt
	s.armHideTimerLocked()
	s.mu.Unlock()

	s.c.surface.ShowSeekPreview(s.buildPreview(p.PreviewPosition, sess))
}

// buildPreview assembles the overlay payload: time label plus a filmstrip slice of
// the trickplay manifest. Manifest unavailability degrades to a label-only preview.
func (s *SeekCoordinator) buildPreview(position float64, sess Session) SeekPreview {
	preview := SeekPreview{
		TimeLabel: util.ClockRange(position, sess.LiveDuration),
	}

	manifest := s.resolveManifest(sess.Source)
	if manifest == nil || manifest.IntervalSeconds <= 0 || len(manifest.Items) == 0 {
		return preview
	}

	focus := util.Clamp(int(position/manifest.IntervalSeconds), 0, len(manifest.Items)-1)
	first := util.Max(focus-previewRadius, 0)
	last := util.Min(focus+previewRadius, len(manifest.Items)-1)

	for i := first; i <= last; i++ {
		preview.Thumbnails = append(preview.Thumbnails, manifest.Items[i].ThumbnailURL)
	}
	preview.FocusIndex = focus - first

	return preview
}

// resolveManifest fetches the trickplay manifest for the current content once and
// caches it for the process lifetime, including negative results.
func (s *SeekCoordinator) resolveManifest(src Source) *catalog.Manifest {
	key := src.ContentPath + "|" + src.SourceID

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.attempted[key] {
		return s.manifests[key]
	}
	s.attempted[key] = true

	if s.c.catalog == nil {
		return nil
	}

	manifest, err := s.c.catalog.TrickplayManifest(src.ContentPath, src.SourceID)
	if err != nil {
		log.Debugf("trickplay manifest unavailable for %s: %v", src.ContentPath, err)
		return nil
	}

	s.manifests[key] = manifest
	return manifest
}

// Commit issues a single backend seek to the previewed position and clears the
// pending seek. No-op when nothing is pending.
func (s *SeekCoordinator) Commit() {
	s.mu.Lock()
	p, exists := s.pending.Get()
	if !exists {
		s.mu.Unlock()
		return
	}
	s.pending = mo.None[PendingSeek]()
	s.stopHideTimerLocked()
	s.mu.Unlock()

	if err := s.c.bridge.Seek(p.PreviewPosition); err != nil {
		log.Warnf("trickplay commit: %v", err)
	}

	// Optimistic position update; the next poll tick corrects it if needed.
	s.c.mu.Lock()
	if s.c.session.Status == Ready {
		s.c.session.LivePosition = p.PreviewPosition
	}
	s.c.mu.Unlock()

	s.c.surface.HideSeekPreview()
}

// Discard clears the pending seek and hides the overlay without seeking. Called
// whenever any non-step control action occurs.
func (s *SeekCoordinator) Discard() {
	s.mu.Lock()
	_, exists := s.pending.Get()
	s.pending = mo.None[PendingSeek]()
	s.stopHideTimerLocked()
	s.mu.Unlock()

	if exists {
		s.c.surface.HideSeekPreview()
	}
}

// armHideTimerLocked (re)arms the overlay auto-hide; each step pushes it back.
func (s *SeekCoordinator) armHideTimerLocked() {
	if s.hideTimer != nil {
		s.hideTimer.Stop()
	}
	s.hideTimer = time.AfterFunc(s.c.timings.PreviewHideDelay, s.c.surface.HideSeekPreview)
}

func (s *SeekCoordinator) stopHideTimerLocked() {
	if s.hideTimer != nil {
		s.hideTimer.Stop()
		s.hideTimer = nil
	}
}
