package playback

import (
	"strings"
	"time"

	"github.com/kinocast-cli/kinocast/bridge"
	"github.com/kinocast-cli/kinocast/catalog"
	"github.com/kinocast-cli/kinocast/log"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/lo"
)

// TrackResolver discovers subtitle tracks and applies the language-preference
// heuristic, retrying while the backend is still parsing tracks.
type TrackResolver struct {
	c *Controller
}

func newTrackResolver(c *Controller) *TrackResolver {
	return &TrackResolver{c: c}
}

// AutoSelect fetches the backend track list and selects the first track matching
// the preferred language when nothing suitable is selected yet. An empty list
// triggers up to maxRetries spaced retries; tracks may not be parsed yet right
// after a launch. The subtitle badge is surfaced on every attempt.
func (r *TrackResolver) AutoSelect(maxRetries int) {
	c := r.c

	c.mu.Lock()
	gen := c.generation
	c.mu.Unlock()

	for attempt := 0; ; attempt++ {
		if !c.generationIs(gen) || c.Status() != Ready {
			return
		}
		if r.selectOnce() {
			return
		}
		if attempt >= maxRetries {
			return
		}
		if attempt == maxRetries-1 {
			// Give the final retry a chance to find the session's sidecar. Some
			// backends silently drop external tracks that fail to load at startup.
			r.reinjectSidecar(gen)
		}
		time.Sleep(c.timings.SubtitleRetryDelay)
	}
}

// reinjectSidecar re-adds the session's external subtitle, if any.
func (r *TrackResolver) reinjectSidecar(gen int64) {
	c := r.c

	c.mu.Lock()
	subtitleURL := c.session.Source.SubtitleURL
	title := c.session.Source.Title
	c.mu.Unlock()

	if subtitleURL == "" || !c.generationIs(gen) {
		return
	}
	if err := c.bridge.AddExternalSubtitle(subtitleURL, title); err != nil {
		log.Warnf("subtitle re-injection: %v", err)
	}
}

// selectOnce performs one discovery/selection pass. It returns false when the
// track list was empty and a retry is warranted.
func (r *TrackResolver) selectOnce() bool {
	c := r.c

	tracks, err := c.bridge.SubtitleTracks()
	if err != nil {
		// Discovery failure is treated like an empty list: retry, don't escalate.
		log.Warnf("subtitle discovery: %v", err)
		tracks = nil
	}

	if len(tracks) == 0 {
		c.surface.SetSubtitleBadge(false)
		return false
	}

	lang := c.prefs.SubtitleLanguage
	selected, hasSelection := lo.Find(tracks, func(t bridge.SubtitleTrack) bool {
		return t.Selected
	})

	activeID := selected.ID
	if !hasSelection || !trackMatchesLanguage(selected, lang) {
		if preferred, ok := lo.Find(tracks, func(t bridge.SubtitleTrack) bool {
			return trackMatchesLanguage(t, lang)
		}); ok {
			if err := c.bridge.SetSubtitleTrack(preferred.ID); err != nil {
				log.Warnf("subtitle auto-select: %v", err)
			} else {
				hasSelection = true
				activeID = preferred.ID
			}
		}
	}

	if hasSelection {
		c.mu.Lock()
		c.session.SubtitleTrackID = activeID
		c.mu.Unlock()
	}

	c.surface.SetSubtitleBadge(hasSelection)
	return true
}

// ResolveExternalTrack queries the catalog for subtitle descriptors of a content
// item and picks the best candidate: sidecar in the preferred language, then any
// sidecar, then an embedded track in the preferred language. Every failure path
// returns the caller's fallback URL unchanged; this resolver never errors out.
func (r *TrackResolver) ResolveExternalTrack(contentPath, sourceID, fallbackURL string) string {
	c := r.c
	if c.catalog == nil {
		return fallbackURL
	}

	descriptors, err := c.catalog.VideoInfo(contentPath, sourceID)
	if err != nil {
		log.Warnf("subtitle metadata fetch: %v", err)
		return fallbackURL
	}

	lang := c.prefs.SubtitleLanguage
	candidates := []func(catalog.SubtitleDescriptor) bool{
		func(d catalog.SubtitleDescriptor) bool {
			return d.Type == catalog.SubtitleSidecar && codeMatchesLanguage(d.Lang, lang)
		},
		func(d catalog.SubtitleDescriptor) bool {
			return d.Type == catalog.SubtitleSidecar
		},
		func(d catalog.SubtitleDescriptor) bool {
			return d.Type == catalog.SubtitleEmbedded && codeMatchesLanguage(d.Lang, lang)
		},
	}

	for _, matches := range candidates {
		if d, ok := lo.Find(descriptors, func(d catalog.SubtitleDescriptor) bool {
			return d.URL != "" && matches(d)
		}); ok {
			return d.URL
		}
	}

	return fallbackURL
}

// languageNames maps preferred language codes to English names and autonyms, used
// to match tracks whose language shows up only in the title.
var languageNames = map[string][]string{
	"en": {"english"},
	"de": {"german", "deutsch"},
	"fr": {"french", "francais"},
	"es": {"spanish", "espanol"},
	"it": {"italian", "italiano"},
	"pt": {"portuguese", "portugues"},
	"ru": {"russian"},
	"ja": {"japanese", "日本語"},
	"ko": {"korean"},
	"zh": {"chinese", "中文"},
}

// trackMatchesLanguage applies the language-preference predicate: exact code,
// regional variant, or a title containing the language name or autonym.
func trackMatchesLanguage(track bridge.SubtitleTrack, lang string) bool {
	if codeMatchesLanguage(track.Lang, lang) {
		return true
	}

	title := track.Title
	for _, name := range languageNames[strings.ToLower(lang)] {
		if fuzzy.MatchNormalizedFold(name, title) {
			return true
		}
	}
	return false
}

// codeMatchesLanguage compares language codes by primary subtag, so "en" matches
// "en", "en-US" and the ISO 639-2 "eng".
func codeMatchesLanguage(code, lang string) bool {
	code = strings.ToLower(strings.TrimSpace(code))
	lang = strings.ToLower(strings.TrimSpace(lang))
	if code == "" || lang == "" {
		return false
	}

	primary := strings.SplitN(code, "-", 2)[0]
	return primary == lang || strings.HasPrefix(primary, lang)
}
