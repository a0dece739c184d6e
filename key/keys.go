// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Catalog Endpoints - these keys locate the remote catalog collaborators.
const (
	CatalogBaseURL = "catalog.base_url"
)

// Media Playback - these keys maintain the persisted preferences applied to every playback session.
const (
	PlayerVolume   = "player.volume"
	PlayerQuality  = "player.quality"
	PlayerStepSize = "player.step_seconds"
)

// Subtitles - these keys govern track auto-selection and rendering style.
const (
	SubtitleLanguage       = "subtitles.language"
	SubtitleScale          = "subtitles.scale"
	SubtitleVerticalOffset = "subtitles.vertical_offset"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these settings govern the non-TUI application behavior.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)
