package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

var (
	// ErrRateLimited indicates the API quota or rate limit was hit
	ErrRateLimited = errors.New("youtube api rate limit exceeded")

	// ErrChannelNotFound indicates the channel has no uploads playlist
	ErrChannelNotFound = errors.New("youtube channel not found")

	// ErrNotConfigured indicates the API key or channel ID is missing
	ErrNotConfigured = errors.New("youtube client not configured")
)

// maxIDsPerRequest is the Data API limit for the id parameter of videos.list
const maxIDsPerRequest = 50

// Config holds configuration for the YouTube client
type Config struct {
	APIKey    string
	ChannelID string

	RequestsPerSecond int           // Default: 5
	Timeout           time.Duration // Default: 10s
	MaxRetries        int           // Default: 3
	RetryBackoff      time.Duration // Default: 1s
	MaxResults        int           // page size for playlistItems, Default: 50
	MaxVideos         int           // 0 means every upload

	BaseURL string // Default: https://www.googleapis.com/youtube/v3
}

// Client talks to the YouTube Data API v3
type Client struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	config      Config

	requests atomic.Int64
	errors   atomic.Int64
}

// NewClient creates a new YouTube API client
func NewClient(cfg Config) *Client {
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = 5
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if cfg.RetryBackoff == 0 {
		cfg.RetryBackoff = time.Second
	}
	if cfg.MaxResults <= 0 || cfg.MaxResults > maxIDsPerRequest {
		cfg.MaxResults = maxIDsPerRequest
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://www.googleapis.com/youtube/v3"
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	return &Client{
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		rateLimiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.RequestsPerSecond),
		config:      cfg,
	}
}

// Configured reports whether the client has credentials and a channel
func (c *Client) Configured() bool {
	return c.config.APIKey != "" && c.config.ChannelID != ""
}

// ChannelVideos returns the uploads of the configured channel, most recent first
// as the API orders them.
func (c *Client) ChannelVideos(ctx context.Context) ([]Video, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	playlistID, err := c.uploadsPlaylist(ctx)
	if err != nil {
		return nil, err
	}

	ids, err := c.playlistVideoIDs(ctx, playlistID)
	if err != nil {
		return nil, err
	}

	videos := make([]Video, 0, len(ids))
	for start := 0; start < len(ids); start += maxIDsPerRequest {
		end := min(start+maxIDsPerRequest, len(ids))
		batch, err := c.videos(ctx, ids[start:end])
		if err != nil {
			return nil, err
		}
		videos = append(videos, batch...)
	}

	slog.Debug("fetched channel videos", "channel", c.config.ChannelID, "count", len(videos))
	return videos, nil
}

// GetMetrics returns request counters, reported on the health endpoint
func (c *Client) GetMetrics() map[string]int64 {
	return map[string]int64{
		"requests": c.requests.Load(),
		"errors":   c.errors.Load(),
	}
}

func (c *Client) uploadsPlaylist(ctx context.Context) (string, error) {
	params := url.Values{}
	params.Set("part", "contentDetails")
	params.Set("id", c.config.ChannelID)

	var resp channelListResponse
	if err := c.getWithRetry(ctx, "channels", params, &resp); err != nil {
		return "", fmt.Errorf("fetch channel %s: %w", c.config.ChannelID, err)
	}
	if len(resp.Items) == 0 || resp.Items[0].ContentDetails.RelatedPlaylists.Uploads == "" {
		return "", ErrChannelNotFound
	}
	return resp.Items[0].ContentDetails.RelatedPlaylists.Uploads, nil
}

func (c *Client) playlistVideoIDs(ctx context.Context, playlistID string) ([]string, error) {
	var ids []string
	pageToken := ""
	for {
		params := url.Values{}
		params.Set("part", "snippet")
		params.Set("playlistId", playlistID)
		params.Set("maxResults", strconv.Itoa(c.config.MaxResults))
		if pageToken != "" {
			params.Set("pageToken", pageToken)
		}

		var resp playlistItemListResponse
		if err := c.getWithRetry(ctx, "playlistItems", params, &resp); err != nil {
			return nil, fmt.Errorf("fetch playlist items: %w", err)
		}
		for _, item := range resp.Items {
			if id := item.Snippet.ResourceID.VideoID; id != "" {
				ids = append(ids, id)
			}
		}

		if c.config.MaxVideos > 0 && len(ids) >= c.config.MaxVideos {
			return ids[:c.config.MaxVideos], nil
		}
		if resp.NextPageToken == "" {
			return ids, nil
		}
		pageToken = resp.NextPageToken
	}
}

func (c *Client) videos(ctx context.Context, ids []string) ([]Video, error) {
	params := url.Values{}
	params.Set("part", "snippet,contentDetails,statistics")
	params.Set("id", strings.Join(ids, ","))

	var resp videoListResponse
	if err := c.getWithRetry(ctx, "videos", params, &resp); err != nil {
		return nil, fmt.Errorf("fetch video details: %w", err)
	}

	videos := make([]Video, 0, len(resp.Items))
	for _, item := range resp.Items {
		videos = append(videos, transformVideo(item))
	}
	return videos, nil
}

// getWithRetry performs a GET with exponential backoff on rate limits and
// temporary failures
func (c *Client) getWithRetry(ctx context.Context, resource string, params url.Values, out any) error {
	var lastErr error
	backoff := c.config.RetryBackoff

	for attempt := 0; attempt < c.config.MaxRetries; attempt++ {
		err := c.get(ctx, resource, params, out)
		if err == nil {
			return nil
		}
		if !errors.Is(err, ErrRateLimited) && !isTemporaryError(err) {
			return err
		}

		lastErr = err
		slog.Warn("youtube request failed, retrying", "resource", resource, "attempt", attempt+1, "error", err)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
			backoff *= 2
		}
	}

	return fmt.Errorf("max retries exceeded: %w", lastErr)
}

func (c *Client) get(ctx context.Context, resource string, params url.Values, out any) error {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter wait: %w", err)
	}
	c.requests.Add(1)

	params.Set("key", c.config.APIKey)
	reqURL := fmt.Sprintf("%s/%s?%s", c.config.BaseURL, resource, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.errors.Add(1)
		return fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		c.errors.Add(1)
		return ErrRateLimited
	case resp.StatusCode >= http.StatusInternalServerError:
		c.errors.Add(1)
		return &statusError{code: resp.StatusCode}
	case resp.StatusCode != http.StatusOK:
		c.errors.Add(1)
		var apiErr apiErrorResponse
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		if apiErr.Error.Message != "" {
			return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, apiErr.Error.Message)
		}
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.errors.Add(1)
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// statusError is a server-side failure worth retrying
type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status: %d", e.code)
}

func (e *statusError) Temporary() bool { return true }

// isTemporaryError checks if an error is temporary and should be retried
func isTemporaryError(err error) bool {
	var se *statusError
	if errors.As(err, &se) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}
	return false
}
