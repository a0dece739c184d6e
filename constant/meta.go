// Package constant defines immutable application-level identifiers and configuration defaults.
package constant

const (
	// Kinocast is the canonical application identifier used for filesystem paths and CLI branding.
	Kinocast = "kinocast"

	// Version is the current application semantic version string.
	Version = "0.1.0"

	// UserAgent is the default HTTP User-Agent string used for catalog requests.
	UserAgent = "kinocast/" + Version
)

// Build metadata, overridden at link time by the release pipeline.
var (
	BuiltAt  = "unknown"
	BuiltBy  = "unknown"
	Revision = "unknown"
)
