// Package jikan talks to the Jikan (MyAnimeList) v4 API and normalizes its
// anime and light novel records into catalog field sets.
package jikan

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/satoriell/mediatrack/internal/config"
	"github.com/satoriell/mediatrack/internal/metadata"
	"github.com/sirupsen/logrus"
)

// Client wraps direct Jikan API HTTP calls
type Client struct {
	baseURL     string
	userAgent   string
	delay       time.Duration
	searchLimit int
	httpClient  *http.Client
	logger      *logrus.Logger
}

// NewClient creates a new Jikan client with direct HTTP calls
func NewClient(cfg *config.Config, logger *logrus.Logger) (*Client, error) {
	if cfg.JikanURL == "" {
		return nil, fmt.Errorf("jikan URL is required")
	}

	return &Client{
		baseURL:     cfg.JikanURL,
		userAgent:   cfg.UserAgent,
		delay:       cfg.JikanDelay,
		searchLimit: cfg.JikanLimit,
		httpClient: &http.Client{
			Timeout: cfg.HTTPTimeout,
		},
		logger: logger,
	}, nil
}

// get performs a rate-limited GET against the Jikan API and decodes the JSON
// body into out. A 404 maps to metadata.ErrNotFound; a 429 is an error the
// caller may retry later.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values, out any) error {
	// Jikan allows roughly 1.6 requests per second; pace every call
	if c.delay > 0 {
		select {
		case <-time.After(c.delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	apiURL, err := url.Parse(c.baseURL)
	if err != nil {
		return fmt.Errorf("invalid jikan URL: %w", err)
	}
	apiURL = apiURL.JoinPath(endpoint)
	apiURL.RawQuery = params.Encode()
	finalURL := apiURL.String()

	c.logger.WithField("url", finalURL).Debug("Performing Jikan request")

	req, err := http.NewRequestWithContext(ctx, "GET", finalURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("jikan API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		c.logger.WithField("url", finalURL).Info("Jikan API returned 404")
		return metadata.ErrNotFound
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		c.logger.WithField("url", finalURL).Warn("Jikan API rate limit exceeded")
		return fmt.Errorf("jikan API rate limit exceeded")
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 500))
		c.logger.WithFields(logrus.Fields{
			"status_code": resp.StatusCode,
			"url":         finalURL,
			"body":        string(body),
		}).Error("Jikan API returned non-OK status")
		return fmt.Errorf("jikan API returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to parse jikan response: %w", err)
	}
	return nil
}

// SearchAnime looks up anime by title, SFW only. An answered query with no
// matches returns an empty slice.
func (c *Client) SearchAnime(ctx context.Context, title string) ([]AnimeResult, error) {
	params := url.Values{}
	params.Set("q", title)
	params.Set("limit", strconv.Itoa(c.searchLimit))
	params.Set("sfw", "true")

	var response searchResponse
	if err := c.get(ctx, "anime", params, &response); err != nil {
		return nil, err
	}

	results := make([]AnimeResult, 0, len(response.Data))
	for i := range response.Data {
		if result := mapAnimeResult(&response.Data[i]); result != nil {
			results = append(results, *result)
		}
	}

	c.logger.WithField("count", len(results)).Debug("Jikan anime search completed")
	return results, nil
}

// SearchNovels looks up light novels by title. Jikan serves them from the
// manga endpoint filtered by type.
func (c *Client) SearchNovels(ctx context.Context, title string) ([]NovelResult, error) {
	params := url.Values{}
	params.Set("q", title)
	params.Set("limit", strconv.Itoa(c.searchLimit))
	params.Set("type", "lightnovel")
	params.Set("sfw", "true")

	var response searchResponse
	if err := c.get(ctx, "manga", params, &response); err != nil {
		return nil, err
	}

	results := make([]NovelResult, 0, len(response.Data))
	for i := range response.Data {
		if result := mapNovelResult(&response.Data[i]); result != nil {
			results = append(results, *result)
		}
	}

	c.logger.WithField("count", len(results)).Debug("Jikan novel search completed")
	return results, nil
}

// GetAnimeDetails fetches one anime by MAL id and normalizes it
func (c *Client) GetAnimeDetails(ctx context.Context, malID int64) (*metadata.ItemFields, error) {
	var response detailResponse
	if err := c.get(ctx, "anime/"+strconv.FormatInt(malID, 10)+"/full", nil, &response); err != nil {
		return nil, err
	}

	fields := MapAnime(response.Data)
	if fields == nil {
		c.logger.WithField("mal_id", malID).Warn("Jikan anime detail response missing record")
		return nil, metadata.ErrNotFound
	}
	return fields, nil
}

// GetNovelDetails fetches one light novel by MAL id and normalizes it.
// Records of another manga type are accepted but logged.
func (c *Client) GetNovelDetails(ctx context.Context, malID int64) (*metadata.ItemFields, error) {
	var response detailResponse
	if err := c.get(ctx, "manga/"+strconv.FormatInt(malID, 10)+"/full", nil, &response); err != nil {
		return nil, err
	}

	if response.Data != nil && response.Data.Type != "Light Novel" {
		c.logger.WithFields(logrus.Fields{
			"mal_id": malID,
			"type":   response.Data.Type,
		}).Warn("Jikan record is not a light novel")
	}

	fields := MapNovel(response.Data)
	if fields == nil {
		c.logger.WithField("mal_id", malID).Warn("Jikan novel detail response missing record")
		return nil, metadata.ErrNotFound
	}
	return fields, nil
}
