// Package catalog implements clients for the catalog-side metadata endpoints consumed
// during playback: trickplay thumbnail manifests and subtitle descriptors.
package catalog

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/kinocast-cli/kinocast/constant"
	"github.com/kinocast-cli/kinocast/network"
)

// Client talks to a catalog server.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a catalog client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    network.Client,
	}
}

// get performs a GET request against a catalog endpoint and decodes the JSON response.
func (c *Client) get(endpoint, contentPath, sourceID string, out any) error {
	u := fmt.Sprintf(
		"%s/api/%s/%s?source=%s",
		c.baseURL, endpoint, url.PathEscape(contentPath), url.QueryEscape(sourceID),
	)

	req, err := http.NewRequest(http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", constant.UserAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s request: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s request: status %d", endpoint, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("parse %s response: %w", endpoint, err)
	}

	return nil
}
