package search

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/searchdeck/searchdeck/internal/config"
	"github.com/searchdeck/searchdeck/internal/models"
)

func TestOffset(t *testing.T) {
	cases := []struct {
		page     int
		pageSize int
		want     int
	}{
		{1, 20, 0},
		{2, 20, 20},
		{3, 20, 40},
		{5, 10, 40},
	}

	for _, c := range cases {
		if got := Offset(c.page, c.pageSize); got != c.want {
			t.Errorf("Offset(%d, %d) = %d, want %d", c.page, c.pageSize, got, c.want)
		}
	}
}

func newTestClient(srv *httptest.Server) *Client {
	return NewClient(&config.SearchConfig{
		APIKey:        "test-key",
		WebEndpoint:   srv.URL + "/v7.0/search",
		ImageEndpoint: srv.URL + "/v7.0/images/search",
		PageSize:      20,
		Timeout:       5,
	})
}

func TestClientFetch(t *testing.T) {
	t.Run("Web request shape", func(t *testing.T) {
		var gotPath, gotKey string
		var gotQuery map[string]string

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotKey = r.Header.Get("Ocp-Apim-Subscription-Key")
			gotQuery = map[string]string{
				"q":      r.URL.Query().Get("q"),
				"count":  r.URL.Query().Get("count"),
				"offset": r.URL.Query().Get("offset"),
			}
			w.Write([]byte(`{"webPages":{"totalEstimatedMatches":45,"value":[
				{"name":"First","url":"https://one.test/a","displayUrl":"one.test/a","snippet":"about a"},
				{"name":"Second","url":"https://two.test/b","displayUrl":"two.test/b","snippet":"about b"}
			]}}`))
		}))
		defer srv.Close()

		client := newTestClient(srv)
		raw, err := client.Fetch(context.Background(), models.CategoryWeb, "golang", 3)
		if err != nil {
			t.Fatalf("Fetch failed: %v", err)
		}

		if gotPath != "/v7.0/search" {
			t.Errorf("Expected web endpoint path, got %s", gotPath)
		}
		if gotKey != "test-key" {
			t.Errorf("Expected subscription key header, got %q", gotKey)
		}
		if gotQuery["q"] != "golang" || gotQuery["count"] != "20" || gotQuery["offset"] != "40" {
			t.Errorf("Unexpected query params: %v", gotQuery)
		}

		if raw.Total != 45 {
			t.Errorf("Expected total 45, got %d", raw.Total)
		}
		if len(raw.Web) != 2 || len(raw.Images) != 0 {
			t.Fatalf("Expected 2 web items, got web=%d images=%d", len(raw.Web), len(raw.Images))
		}
		if raw.Web[0].Name != "First" || raw.Web[1].URL != "https://two.test/b" {
			t.Errorf("Unexpected web items: %+v", raw.Web)
		}
	})

	t.Run("Image request shape", func(t *testing.T) {
		var gotPath string

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			w.Write([]byte(`{"totalEstimatedMatches":7,"value":[
				{"name":"Pic","contentUrl":"https://img.test/a.jpg","thumbnailUrl":"https://tn.test/a.jpg","hostPageDisplayUrl":"img.test"}
			]}`))
		}))
		defer srv.Close()

		client := newTestClient(srv)
		raw, err := client.Fetch(context.Background(), models.CategoryImages, "cats", 1)
		if err != nil {
			t.Fatalf("Fetch failed: %v", err)
		}

		if gotPath != "/v7.0/images/search" {
			t.Errorf("Expected image endpoint path, got %s", gotPath)
		}
		if raw.Total != 7 {
			t.Errorf("Expected total 7, got %d", raw.Total)
		}
		if len(raw.Images) != 1 || raw.Images[0].ContentURL != "https://img.test/a.jpg" {
			t.Fatalf("Unexpected image items: %+v", raw.Images)
		}
	})

	t.Run("Upstream error status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error":"rate limited"}`, http.StatusTooManyRequests)
		}))
		defer srv.Close()

		client := newTestClient(srv)
		_, err := client.Fetch(context.Background(), models.CategoryWeb, "golang", 1)
		if err == nil {
			t.Fatal("Expected error for upstream 429")
		}
		if !strings.Contains(err.Error(), "status 429") {
			t.Errorf("Expected status in error, got: %v", err)
		}
	})

	t.Run("Malformed response body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("not json"))
		}))
		defer srv.Close()

		client := newTestClient(srv)
		_, err := client.Fetch(context.Background(), models.CategoryWeb, "golang", 1)
		if err == nil {
			t.Fatal("Expected error for malformed body")
		}
	})

	t.Run("Missing API key", func(t *testing.T) {
		client := NewClient(&config.SearchConfig{})
		_, err := client.Fetch(context.Background(), models.CategoryWeb, "golang", 1)
		if err == nil {
			t.Fatal("Expected error when API key is missing")
		}
	})
}
