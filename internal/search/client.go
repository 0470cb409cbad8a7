package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/searchdeck/searchdeck/internal/config"
	"github.com/searchdeck/searchdeck/internal/models"
	"github.com/searchdeck/searchdeck/pkg/logger"
)

// Client dispatches paginated queries to the upstream search API. It is
// stateless: the same (category, query, page) arguments always produce
// the same request.
type Client struct {
	apiKey        string
	webEndpoint   string
	imageEndpoint string
	pageSize      int
	client        *http.Client
}

// NewClient creates a dispatcher from configuration
func NewClient(cfg *config.SearchConfig) *Client {
	if cfg.WebEndpoint == "" {
		cfg.WebEndpoint = "https://api.bing.microsoft.com/v7.0/search"
	}
	if cfg.ImageEndpoint == "" {
		cfg.ImageEndpoint = "https://api.bing.microsoft.com/v7.0/images/search"
	}
	if cfg.PageSize == 0 {
		cfg.PageSize = 20
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10
	}

	return &Client{
		apiKey:        cfg.APIKey,
		webEndpoint:   cfg.WebEndpoint,
		imageEndpoint: cfg.ImageEndpoint,
		pageSize:      cfg.PageSize,
		client: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
	}
}

// PageSize returns the fixed number of results requested per page
func (c *Client) PageSize() int {
	return c.pageSize
}

// IsAvailable returns true if the client is properly configured
func (c *Client) IsAvailable() bool {
	return c.apiKey != ""
}

// Offset converts a 1-based page number into the upstream's zero-based
// result offset.
func Offset(page, pageSize int) int {
	return (page - 1) * pageSize
}

// endpoint selects the upstream URL purely from the category
func (c *Client) endpoint(category models.Category) string {
	if category == models.CategoryImages {
		return c.imageEndpoint
	}
	return c.webEndpoint
}

// Fetch issues one search request and decodes the raw page. There is no
// retry: any transport failure or upstream error status surfaces
// immediately to the caller.
func (c *Client) Fetch(ctx context.Context, category models.Category, query string, page int) (*models.RawPage, error) {
	if !c.IsAvailable() {
		return nil, fmt.Errorf("search client not configured: missing API key")
	}

	requestID := uuid.New().String()
	log := logger.WithRequestID(requestID)

	params := url.Values{}
	params.Set("q", query)
	params.Set("count", strconv.Itoa(c.pageSize))
	params.Set("offset", strconv.Itoa(Offset(page, c.pageSize)))

	fullURL := fmt.Sprintf("%s?%s", c.endpoint(category), params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Ocp-Apim-Subscription-Key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	log.Debug("upstream response",
		zap.String("category", string(category)),
		zap.Int("page", page),
		zap.Int("status", resp.StatusCode),
	)

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("upstream error: status %d, body: %s", resp.StatusCode, string(body))
	}

	raw, err := decodeRawPage(body, category)
	if err != nil {
		return nil, err
	}

	log.Info("search dispatched",
		zap.String("category", string(category)),
		zap.String("query", query),
		zap.Int("page", page),
		zap.Int64("total", raw.Total),
	)

	return raw, nil
}

// decodeRawPage parses the category-specific response body into the
// uniform envelope. Web items arrive nested under webPages, image items
// as a flat value array.
func decodeRawPage(body []byte, category models.Category) (*models.RawPage, error) {
	if category == models.CategoryImages {
		var imgResp models.ImageSearchResponse
		if err := json.Unmarshal(body, &imgResp); err != nil {
			return nil, fmt.Errorf("failed to parse response: %w", err)
		}
		return &models.RawPage{
			Total:  imgResp.TotalEstimatedMatches,
			Images: imgResp.Value,
		}, nil
	}

	var webResp models.WebSearchResponse
	if err := json.Unmarshal(body, &webResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return &models.RawPage{
		Total: webResp.WebPages.TotalEstimatedMatches,
		Web:   webResp.WebPages.Value,
	}, nil
}
