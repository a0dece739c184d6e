package catalog

import (
	"fmt"
	"time"

	"github.com/kinocast-cli/kinocast/filesystem"
	"github.com/kinocast-cli/kinocast/where"
	"github.com/metafates/gache"
)

// Manifest describes a trickplay thumbnail strip for one content item.
type Manifest struct {
	// Seconds covered by each thumbnail.
	IntervalSeconds float64 `json:"interval"`
	// Ordered thumbnail sequence.
	Items []ManifestItem `json:"items"`
}

// ManifestItem is a single thumbnail within a trickplay strip.
type ManifestItem struct {
	TimeOffset   float64 `json:"t"`
	ThumbnailURL string  `json:"url"`
}

// trickplayCacher persists fetched manifests across runs, keyed by content identity.
// Manifests are immutable server-side, so a generous lifetime is safe.
var trickplayCacher = gache.New[map[string]*Manifest](&gache.Options{
	Path:       where.Trickplay(),
	Lifetime:   time.Hour * 24,
	FileSystem: &filesystem.GacheFs{},
})

// cacheKey builds the composite cache identity for a content item.
func cacheKey(contentPath, sourceID string) string {
	return fmt.Sprintf("%s|%s", contentPath, sourceID)
}

// TrickplayManifest retrieves the thumbnail manifest for a content item,
// consulting the on-disk cache before the catalog server.
func (c *Client) TrickplayManifest(contentPath, sourceID string) (*Manifest, error) {
	key := cacheKey(contentPath, sourceID)

	cached, expired, err := trickplayCacher.Get()
	if err == nil && !expired && cached != nil {
		if manifest, ok := cached[key]; ok {
			return manifest, nil
		}
	}

	var manifest Manifest
	if err := c.get("trickplay", contentPath, sourceID, &manifest); err != nil {
		return nil, err
	}

	if cached == nil || expired {
		cached = make(map[string]*Manifest)
	}
	cached[key] = &manifest
	_ = trickplayCacher.Set(cached)

	return &manifest, nil
}
