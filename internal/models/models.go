package models

// Category selects the search mode and with it the upstream endpoint
// and result shape.
type Category string

const (
	CategoryWeb    Category = "web"
	CategoryImages Category = "images"
)

// Result is one normalized search hit, the single shape the rest of the
// pipeline works with regardless of category.
type Result struct {
	Name         string `json:"name"`
	URL          string `json:"url"`
	Snippet      string `json:"snippet"`
	DisplayURL   string `json:"displayUrl,omitempty"`
	FaviconURL   string `json:"faviconUrl,omitempty"`
	ContentURL   string `json:"contentUrl,omitempty"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
}

// RawPage is the dispatcher's uniform envelope for one upstream page.
// Exactly one of Web or Images is populated, matching the requested
// category.
type RawPage struct {
	Total  int64
	Web    []WebItem
	Images []ImageItem
}

// WebItem is a single web-page item as returned by the upstream web
// search endpoint.
type WebItem struct {
	Name       string `json:"name"`
	URL        string `json:"url"`
	DisplayURL string `json:"displayUrl"`
	Snippet    string `json:"snippet"`
}

// ImageItem is a single image item as returned by the upstream image
// search endpoint.
type ImageItem struct {
	Name               string `json:"name"`
	ContentURL         string `json:"contentUrl"`
	ThumbnailURL       string `json:"thumbnailUrl"`
	HostPageDisplayURL string `json:"hostPageDisplayUrl"`
}

// WebSearchResponse is the upstream web search response. Items are
// nested under webPages together with the estimated total.
type WebSearchResponse struct {
	WebPages struct {
		TotalEstimatedMatches int64     `json:"totalEstimatedMatches"`
		Value                 []WebItem `json:"value"`
	} `json:"webPages"`
}

// ImageSearchResponse is the upstream image search response, a flat
// value array with the estimated total at the top level.
type ImageSearchResponse struct {
	TotalEstimatedMatches int64       `json:"totalEstimatedMatches"`
	Value                 []ImageItem `json:"value"`
}
