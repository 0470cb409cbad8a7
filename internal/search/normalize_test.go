package search

import (
	"testing"

	"github.com/searchdeck/searchdeck/internal/models"
)

func TestNormalizeWeb(t *testing.T) {
	n := NewNormalizer("")

	t.Run("Basic web item", func(t *testing.T) {
		r, ok := n.NormalizeWeb(models.WebItem{
			Name:       "Go",
			URL:        "https://go.dev/doc",
			DisplayURL: "go.dev/doc",
			Snippet:    "The Go programming language",
		})
		if !ok {
			t.Fatal("Expected item to be kept")
		}
		if r.URL != "https://go.dev/doc" {
			t.Errorf("Expected URL from raw url field, got %q", r.URL)
		}
		if r.Snippet != "The Go programming language" {
			t.Errorf("Unexpected snippet: %q", r.Snippet)
		}
		if r.DisplayURL != "go.dev/doc" {
			t.Errorf("Unexpected display URL: %q", r.DisplayURL)
		}
		if r.FaviconURL != "https://www.google.com/s2/favicons?domain=go.dev&sz=32" {
			t.Errorf("Unexpected favicon URL: %q", r.FaviconURL)
		}
	})

	t.Run("Display URL falls back to link", func(t *testing.T) {
		r, ok := n.NormalizeWeb(models.WebItem{Name: "X", URL: "https://x.test/p"})
		if !ok {
			t.Fatal("Expected item to be kept")
		}
		if r.DisplayURL != "https://x.test/p" {
			t.Errorf("Expected display URL fallback, got %q", r.DisplayURL)
		}
	})

	t.Run("Missing link is dropped", func(t *testing.T) {
		if _, ok := n.NormalizeWeb(models.WebItem{Name: "orphan"}); ok {
			t.Error("Expected item without url to be dropped")
		}
	})
}

func TestNormalizeImage(t *testing.T) {
	n := NewNormalizer("")

	t.Run("URL falls back to content URL", func(t *testing.T) {
		r, ok := n.NormalizeImage(models.ImageItem{
			Name:         "A",
			ContentURL:   "https://x.com/a.jpg",
			ThumbnailURL: "https://tn.x.com/a.jpg",
		})
		if !ok {
			t.Fatal("Expected item to be kept")
		}
		if r.URL != "https://x.com/a.jpg" {
			t.Errorf("Expected URL from contentUrl, got %q", r.URL)
		}
		if r.ContentURL != "https://x.com/a.jpg" {
			t.Errorf("Expected contentUrl preserved, got %q", r.ContentURL)
		}
		if r.Snippet != "" {
			t.Errorf("Expected empty snippet for image, got %q", r.Snippet)
		}
		if r.ThumbnailURL != "https://tn.x.com/a.jpg" {
			t.Errorf("Unexpected thumbnail: %q", r.ThumbnailURL)
		}
	})

	t.Run("Missing content URL is dropped", func(t *testing.T) {
		if _, ok := n.NormalizeImage(models.ImageItem{Name: "orphan"}); ok {
			t.Error("Expected item without contentUrl to be dropped")
		}
	})
}

func TestFaviconDerivation(t *testing.T) {
	n := NewNormalizer("https://icons.test/%s.ico")

	t.Run("Custom format", func(t *testing.T) {
		r, _ := n.NormalizeWeb(models.WebItem{Name: "A", URL: "https://sub.example.com/page"})
		if r.FaviconURL != "https://icons.test/sub.example.com.ico" {
			t.Errorf("Unexpected favicon URL: %q", r.FaviconURL)
		}
	})

	t.Run("Relative link yields no favicon", func(t *testing.T) {
		r, ok := n.NormalizeWeb(models.WebItem{Name: "A", URL: "/relative/path"})
		if !ok {
			t.Fatal("Relative link should still normalize")
		}
		if r.FaviconURL != "" {
			t.Errorf("Expected no favicon for relative link, got %q", r.FaviconURL)
		}
	})

	t.Run("Unparsable link yields no favicon", func(t *testing.T) {
		r, ok := n.NormalizeWeb(models.WebItem{Name: "A", URL: "://broken"})
		if !ok {
			t.Fatal("Unparsable link should still normalize")
		}
		if r.FaviconURL != "" {
			t.Errorf("Expected no favicon for unparsable link, got %q", r.FaviconURL)
		}
	})
}

func TestNormalizePage(t *testing.T) {
	n := NewNormalizer("")

	t.Run("Web page drops linkless items", func(t *testing.T) {
		raw := &models.RawPage{
			Total: 3,
			Web: []models.WebItem{
				{Name: "keep", URL: "https://a.test"},
				{Name: "drop"},
				{Name: "keep too", URL: "https://b.test"},
			},
		}
		results := n.NormalizePage(raw, models.CategoryWeb)
		if len(results) != 2 {
			t.Fatalf("Expected 2 results, got %d", len(results))
		}
		if results[0].Name != "keep" || results[1].Name != "keep too" {
			t.Errorf("Order not preserved: %+v", results)
		}
	})

	t.Run("Image page", func(t *testing.T) {
		raw := &models.RawPage{
			Total: 2,
			Images: []models.ImageItem{
				{Name: "a", ContentURL: "https://img.test/a.jpg"},
				{Name: "b"},
			},
		}
		results := n.NormalizePage(raw, models.CategoryImages)
		if len(results) != 1 {
			t.Fatalf("Expected 1 result, got %d", len(results))
		}
	})

	t.Run("Nil page", func(t *testing.T) {
		if results := n.NormalizePage(nil, models.CategoryWeb); results != nil {
			t.Errorf("Expected nil for nil page, got %+v", results)
		}
	})
}
