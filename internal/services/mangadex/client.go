// Package mangadex talks to the MangaDex REST API and normalizes its manga
// records into catalog field sets.
package mangadex

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
	"github.com/satoriell/mediatrack/internal/config"
	"github.com/satoriell/mediatrack/internal/metadata"
	"github.com/sirupsen/logrus"
)

// Client wraps direct MangaDex API HTTP calls
type Client struct {
	baseURL      string
	coverBaseURL string
	userAgent    string
	delay        time.Duration
	searchLimit  int
	httpClient   *http.Client
	logger       *logrus.Logger
}

// NewClient creates a new MangaDex client with direct HTTP calls
func NewClient(cfg *config.Config, logger *logrus.Logger) (*Client, error) {
	if cfg.MangaDexURL == "" {
		return nil, fmt.Errorf("mangadex URL is required")
	}

	return &Client{
		baseURL:      cfg.MangaDexURL,
		coverBaseURL: cfg.MangaDexCoverURL,
		userAgent:    cfg.UserAgent,
		delay:        cfg.MangaDexDelay,
		searchLimit:  cfg.MangaDexLimit,
		httpClient: &http.Client{
			Timeout: cfg.HTTPTimeout,
		},
		logger: logger,
	}, nil
}

// get performs a rate-limited GET against the MangaDex API and decodes the
// JSON body into out. A 404 maps to metadata.ErrNotFound.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values, out any) error {
	// MangaDex allows 5 requests per second; pace every call
	if c.delay > 0 {
		select {
		case <-time.After(c.delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	apiURL, err := url.Parse(c.baseURL)
	if err != nil {
		return fmt.Errorf("invalid mangadex URL: %w", err)
	}
	apiURL = apiURL.JoinPath(endpoint)
	apiURL.RawQuery = params.Encode()
	finalURL := apiURL.String()

	c.logger.WithField("url", finalURL).Debug("Performing MangaDex request")

	req, err := http.NewRequestWithContext(ctx, "GET", finalURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	// Prefer Turkish content, fall back to English
	req.Header.Set("Accept-Language", "tr, en;q=0.9")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("mangadex API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		c.logger.WithField("url", finalURL).Warn("MangaDex API returned 404")
		return metadata.ErrNotFound
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 500))
		c.logger.WithFields(logrus.Fields{
			"status_code": resp.StatusCode,
			"url":         finalURL,
			"body":        string(body),
		}).Error("MangaDex API returned non-OK status")
		return fmt.Errorf("mangadex API returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to parse mangadex response: %w", err)
	}
	return nil
}

// Search looks up manga/manhwa records by title. An answered query with no
// matches returns an empty slice, not an error.
func (c *Client) Search(ctx context.Context, title string) ([]SearchResult, error) {
	params := url.Values{}
	params.Set("title", title)
	params.Set("limit", strconv.Itoa(c.searchLimit))
	params["includes[]"] = []string{"cover_art", "author", "artist"}
	params["contentRating[]"] = []string{"safe", "suggestive"}
	params.Set("order[relevance]", "desc")

	var response searchResponse
	if err := c.get(ctx, "manga", params, &response); err != nil {
		return nil, err
	}

	if response.Result != "ok" {
		c.logger.WithField("title", title).Info("MangaDex search returned no usable results")
		return []SearchResult{}, nil
	}

	results := make([]SearchResult, 0, len(response.Data))
	for i := range response.Data {
		if result := mapSearchResult(&response.Data[i], c.coverBaseURL); result != nil {
			results = append(results, *result)
		}
	}

	c.logger.WithField("count", len(results)).Debug("MangaDex search completed")
	return results, nil
}

// GetDetails fetches one manga by its UUID and normalizes it. Malformed ids
// are rejected as metadata.ErrInvalidID without hitting the network.
func (c *Client) GetDetails(ctx context.Context, mangadexID string) (*metadata.ItemFields, error) {
	parsed, err := uuid.Parse(mangadexID)
	if err != nil {
		c.logger.WithField("mangadex_id", mangadexID).Error("Invalid MangaDex ID format")
		return nil, metadata.ErrInvalidID
	}

	params := url.Values{}
	params["includes[]"] = []string{"cover_art", "author", "artist", "tag"}

	var response detailResponse
	if err := c.get(ctx, "manga/"+parsed.String(), params, &response); err != nil {
		return nil, err
	}

	if response.Result != "ok" || response.Data.ID == "" {
		c.logger.WithField("mangadex_id", mangadexID).Warn("MangaDex detail response missing record")
		return nil, metadata.ErrNotFound
	}

	fields := MapDetails(&response.Data, c.coverBaseURL)
	if fields == nil {
		return nil, metadata.ErrNotFound
	}
	return fields, nil
}
