package playback

// StatusProjection is the read-only state projection published to the control surface
// on every successful poll tick.
type StatusProjection struct {
	// Combined position/duration clock label, e.g. "00:00 / 20:00".
	TimeLabel string
	// Progress percentage clamped to [0, 100].
	ProgressPercent float64
	Paused          bool
	Volume          int
	// Whether the backend reports a hardware decode path.
	HardwareDecode bool
}

// SeekPreview is the trickplay overlay payload: a filmstrip of thumbnails around
// the pending seek position plus a time label.
type SeekPreview struct {
	TimeLabel string
	// Thumbnail URLs, focus thumbnail plus a small radius of neighbors.
	Thumbnails []string
	// Index of the focus thumbnail within Thumbnails.
	FocusIndex int
}

// ControlSurface is the UI affordance set the controller publishes to. Implementations
// must tolerate being called from background goroutines.
type ControlSurface interface {
	// UpdateStatus republishes the live session state.
	UpdateStatus(projection StatusProjection)

	// ShowSeekPreview renders the trickplay preview overlay.
	ShowSeekPreview(preview SeekPreview)

	// HideSeekPreview dismisses the trickplay preview overlay.
	HideSeekPreview()

	// SetSubtitleBadge toggles the subtitle-active indicator.
	SetSubtitleBadge(active bool)
}

// NopSurface discards every projection. Useful headless and in tests.
type NopSurface struct{}

func (NopSurface) UpdateStatus(StatusProjection) {}
func (NopSurface) ShowSeekPreview(SeekPreview)   {}
func (NopSurface) HideSeekPreview()              {}
func (NopSurface) SetSubtitleBadge(bool)         {}
