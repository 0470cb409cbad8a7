package search

import (
	"fmt"
	"net/url"

	"github.com/searchdeck/searchdeck/internal/models"
)

// Normalizer converts heterogeneous raw API items into the uniform
// result shape and derives the favicon URL from each result's hostname.
type Normalizer struct {
	faviconFormat string
}

// NewNormalizer creates a normalizer using the given favicon-service URL
// template (one %s verb for the hostname)
func NewNormalizer(faviconFormat string) *Normalizer {
	if faviconFormat == "" {
		faviconFormat = "https://www.google.com/s2/favicons?domain=%s&sz=32"
	}
	return &Normalizer{faviconFormat: faviconFormat}
}

// NormalizePage converts every usable item of a raw page. Items without
// a resolvable link are dropped silently; that is data quality, not an
// error.
func (n *Normalizer) NormalizePage(raw *models.RawPage, category models.Category) []models.Result {
	if raw == nil {
		return nil
	}

	var results []models.Result
	if category == models.CategoryImages {
		for _, item := range raw.Images {
			if r, ok := n.NormalizeImage(item); ok {
				results = append(results, r)
			}
		}
		return results
	}

	for _, item := range raw.Web {
		if r, ok := n.NormalizeWeb(item); ok {
			results = append(results, r)
		}
	}
	return results
}

// NormalizeWeb converts one web-page item. The second return value is
// false when the item has no link and must be discarded.
func (n *Normalizer) NormalizeWeb(item models.WebItem) (models.Result, bool) {
	if item.URL == "" {
		return models.Result{}, false
	}

	displayURL := item.DisplayURL
	if displayURL == "" {
		displayURL = item.URL
	}

	return models.Result{
		Name:       item.Name,
		URL:        item.URL,
		Snippet:    item.Snippet,
		DisplayURL: displayURL,
		FaviconURL: n.faviconURL(item.URL),
	}, true
}

// NormalizeImage converts one image item. Both the primary link and the
// content link come from contentUrl; the snippet stays empty.
func (n *Normalizer) NormalizeImage(item models.ImageItem) (models.Result, bool) {
	if item.ContentURL == "" {
		return models.Result{}, false
	}

	displayURL := item.HostPageDisplayURL
	if displayURL == "" {
		displayURL = item.ContentURL
	}

	return models.Result{
		Name:         item.Name,
		URL:          item.ContentURL,
		Snippet:      "",
		DisplayURL:   displayURL,
		FaviconURL:   n.faviconURL(item.ContentURL),
		ContentURL:   item.ContentURL,
		ThumbnailURL: item.ThumbnailURL,
	}, true
}

// faviconURL derives the favicon-service URL for a result link. A link
// that is not a well-formed absolute URL yields no favicon rather than
// an error.
func (n *Normalizer) faviconURL(link string) string {
	u, err := url.Parse(link)
	if err != nil || u.Hostname() == "" {
		return ""
	}
	return fmt.Sprintf(n.faviconFormat, u.Hostname())
}
