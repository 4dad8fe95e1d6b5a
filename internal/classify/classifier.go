package classify

import (
	"context"
	"fsd/internal/models"
	"fsd/internal/providers"
	"net/url"
)

// Source tags how a classification was decided, most specific first:
// an exact cached result, the video platform's own category, a title
// keyword, the domain rule table, or nothing at all.
type Source string

const (
	SourceCache      Source = "cache"
	SourceYoutubeAPI Source = "youtube-api"
	SourceKeyword    Source = "keyword"
	SourceDomain     Source = "domain"
	SourceNone       Source = "none"
)

type Result struct {
	Category string `json:"category"`
	Source   Source `json:"source"`
}

// VideoLookupInterface resolves a video id to the platform's category code.
// Implementations may be unavailable (no API key); callers fall back to
// keyword scanning on any error.
type VideoLookupInterface interface {
	VideoCategory(ctx context.Context, videoID string) (string, error)
}

// ExtractDomain pulls the hostname out of a raw URL. Malformed or schemeless
// URLs yield "", which classifies gray; this is never an error.
func ExtractDomain(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}

// IsVideoDomain reports whether the domain gets content-level treatment.
func IsVideoDomain(domain string) bool {
	return domain == "youtube.com" || domain == "www.youtube.com"
}

// VideoID extracts the watched video's id from a URL's "v" query parameter.
// Empty for home, listing and channel pages.
func VideoID(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Query().Get("v")
}

// CacheKey builds the content cache key for a page. For the video domain
// the key is per-video; pages without a video id are not content-classified
// at all (second return false).
func CacheKey(domain, rawURL string) (string, bool) {
	if IsVideoDomain(domain) {
		id := VideoID(rawURL)
		if id == "" {
			return "", false
		}
		return "yt:" + id, true
	}
	return "url:" + rawURL, true
}

type Classifier struct {
	cache  *models.ContentCache
	lookup VideoLookupInterface
	logger providers.Logger
}

func NewClassifier(cache *models.ContentCache, lookup VideoLookupInterface, logger providers.Logger) *Classifier {
	return &Classifier{
		cache:  cache,
		lookup: lookup,
		logger: logger,
	}
}

// ClassifyDomain walks the category list in priority order and returns the
// first category whose domain patterns match. No match is the gray sentinel.
func ClassifyDomain(domain string, cats []models.Category) string {
	if domain == "" {
		return models.CategoryGray
	}
	for i := range cats {
		if cats[i].Matches(domain) {
			return cats[i].ID
		}
	}
	return models.CategoryGray
}

// ClassifyContent runs the content-level chain for a page already classified
// as baseColor at the domain level. The second return is false when the
// domain result should stand.
//
// Only the video domain (always) and gray pages (which an explicit rule did
// not claim) are eligible. The chain is cache, then platform category
// lookup, then title keywords; the video domain never falls through to gray.
func (c *Classifier) ClassifyContent(ctx context.Context, domain, title, rawURL, baseColor string) (Result, bool) {
	if title == "" || rawURL == "" {
		return Result{}, false
	}

	isVideo := IsVideoDomain(domain)
	if !isVideo && baseColor != models.CategoryGray {
		return Result{}, false
	}

	key, ok := CacheKey(domain, rawURL)
	if !ok {
		return Result{}, false
	}

	if cat, hit := c.cache.Get(key); hit {
		return Result{Category: cat, Source: SourceCache}, true
	}

	if isVideo && c.lookup != nil {
		code, err := c.lookup.VideoCategory(ctx, VideoID(rawURL))
		if err == nil {
			return Result{Category: CategoryForCode(code), Source: SourceYoutubeAPI}, true
		}
		c.logger.Debugf(providers.TypeApp, "video lookup failed, falling back to keywords: %s", err)
	}

	if cat, matched := KeywordClassify(title); matched {
		c.cache.Put(key, cat)
		return Result{Category: cat, Source: SourceKeyword}, true
	}

	// A watched video with no signal at all must not render gray.
	if isVideo && baseColor == models.CategoryGray {
		return Result{Category: models.CategoryRed, Source: SourceDomain}, true
	}

	return Result{}, false
}

// ClassifyRequest serves the public classify endpoint: stateless, no cache
// involvement, mirroring what a remote classifier would answer.
func (c *Classifier) ClassifyRequest(ctx context.Context, title, rawURL, domain string) Result {
	if IsVideoDomain(domain) {
		if id := VideoID(rawURL); id != "" && c.lookup != nil {
			code, err := c.lookup.VideoCategory(ctx, id)
			if err == nil {
				return Result{Category: CategoryForCode(code), Source: SourceYoutubeAPI}
			}
			c.logger.Debugf(providers.TypeApp, "video lookup failed: %s", err)
		}
		// Homepage, Shorts, channel pages — no video id, no override.
		return Result{Category: models.CategoryRed, Source: SourceDomain}
	}

	if cat, matched := KeywordClassify(title); matched {
		return Result{Category: cat, Source: SourceKeyword}
	}
	return Result{Category: models.CategoryGray, Source: SourceNone}
}
