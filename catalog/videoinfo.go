package catalog

// Subtitle descriptor types reported by the video-info endpoint.
const (
	SubtitleSidecar  = "sidecar"
	SubtitleEmbedded = "embedded"
)

// SubtitleDescriptor describes one subtitle source known to the catalog for a content item.
type SubtitleDescriptor struct {
	Type  string `json:"type"`
	Lang  string `json:"lang"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

// videoInfo is the wire structure of the video-info endpoint.
type videoInfo struct {
	Subtitles []SubtitleDescriptor `json:"subtitles"`
}

// VideoInfo retrieves the subtitle descriptors for a content item.
func (c *Client) VideoInfo(contentPath, sourceID string) ([]SubtitleDescriptor, error) {
	var info videoInfo
	if err := c.get("videoinfo", contentPath, sourceID, &info); err != nil {
		return nil, err
	}
	return info.Subtitles, nil
}
