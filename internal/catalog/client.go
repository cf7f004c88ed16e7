package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Veraticus/gallery/internal/common"
	"github.com/Veraticus/gallery/internal/model"
	"github.com/Veraticus/gallery/internal/service"
	"github.com/google/uuid"
)

// DefaultURL is the public mock feed the app was built against.
const DefaultURL = "https://65f3f34a105614e654a18199.mockapi.io/art"

// Config configures the HTTP client.
type Config struct {
	BaseURL string
	Timeout time.Duration
	Retry   service.RetryOptions
}

// Client fetches the art catalog over HTTP.
type Client struct {
	httpClient *http.Client
	baseURL    string
	retry      service.RetryOptions
}

// NewClient creates a catalog client.
func NewClient(cfg Config) (*Client, error) {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = DefaultURL
	}
	if _, err := url.ParseRequestURI(base); err != nil {
		return nil, fmt.Errorf("%w: catalog url %q: %w", common.ErrInvalidConfig, base, err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		baseURL: base,
		retry:   cfg.Retry,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 2,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}, nil
}

// List fetches the whole catalog.
func (c *Client) List(ctx context.Context) ([]model.Item, error) {
	var items []model.Item
	if err := c.fetch(ctx, c.baseURL, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Get fetches a single item.
func (c *Client) Get(ctx context.Context, id string) (*model.Item, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: empty item id", common.ErrNotFound)
	}
	var item model.Item
	if err := c.fetch(ctx, c.baseURL+"/"+url.PathEscape(id), &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) fetch(ctx context.Context, endpoint string, out any) error {
	requestID := uuid.NewString()
	start := time.Now()

	err := common.WithRetry(ctx, func() error {
		return c.do(ctx, endpoint, requestID, out)
	}, c.retry)

	fields := common.Fields{
		"request_id": requestID,
		"url":        endpoint,
		"duration":   time.Since(start),
	}
	if err != nil {
		common.LogError(err, "Catalog fetch failed", fields)
		return err
	}
	common.LogDebug("Catalog fetch complete", fields)
	return nil
}

func (c *Client) do(ctx context.Context, endpoint, requestID string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &common.RetryableError{
			Err:       fmt.Errorf("%w: %w", common.ErrCatalogUnavailable, err),
			Retryable: ctx.Err() == nil,
		}
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", common.ErrNotFound, endpoint)
	case resp.StatusCode == http.StatusTooManyRequests:
		return &common.RateLimitError{RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"), time.Now())}
	case resp.StatusCode >= 500:
		return fmt.Errorf("%w: status %d", common.ErrCatalogUnavailable, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("unexpected catalog status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode catalog response: %w", err)
	}
	return nil
}

// parseRetryAfter reads a Retry-After value given either in seconds or as an
// HTTP date. Anything unparseable or already past yields zero.
func parseRetryAfter(value string, now time.Time) time.Duration {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return max(0, time.Duration(secs)*time.Second)
	}
	if at, err := http.ParseTime(value); err == nil {
		return max(0, at.Sub(now))
	}
	return 0
}
