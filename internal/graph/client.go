package graph

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/helmsley-labs/graphcal/internal/logger"
)

// DefaultBaseURL is the Microsoft Graph API base URL.
const DefaultBaseURL = "https://graph.microsoft.com/v1.0"

// Client calls Microsoft Graph on behalf of a signed-in user.
// The zero value is not usable; construct with NewClient.
type Client struct {
	baseURL string
	httpc   *http.Client
	limiter *RateLimiter
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the Graph API base URL. Used in tests.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpc = hc
	}
}

// WithRateLimit overrides the default rate limit configuration.
func WithRateLimit(cfg RateLimitConfig) Option {
	return func(c *Client) {
		c.limiter = NewRateLimiterWithConfig(cfg)
	}
}

// NewClient creates a Microsoft Graph client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		httpc:   &http.Client{Timeout: 60 * time.Second},
		limiter: NewRateLimiter(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// graphError is the error envelope Microsoft Graph returns on failures.
type graphError struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// do performs an authenticated request against Microsoft Graph and returns
// the response body. Transient failures are retried once, GETs only since
// replaying a write could apply it twice.
func (c *Client) do(ctx context.Context, method, path, token string, payload any) ([]byte, error) {
	body, err := c.doOnce(ctx, method, path, token, payload)
	if err == nil || method != http.MethodGet || !IsRetryable(err) {
		return body, err
	}
	// A 429 is surfaced as-is. The limiter has recorded the Retry-After
	// backoff and will hold the next request instead of blocking here.
	if errors.Is(err, ErrRateLimited) {
		return body, err
	}
	logger.Debug("graph: retrying after transient failure: %v", err)
	return c.doOnce(ctx, method, path, token, payload)
}

// doOnce performs a single request. The path is relative to the base URL
// unless it is an absolute URL (as in @odata.nextLink pagination).
// Timestamps in responses are requested in UTC via the Prefer header.
func (c *Client) doOnce(ctx context.Context, method, path, token string, payload any) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	url := path
	if !strings.HasPrefix(path, "http") {
		url = c.baseURL + path
	}

	var reqBody io.Reader = http.NoBody
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Prefer", `outlook.timezone="UTC"`)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("graph request: %w", err)
	}

	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if IsRateLimited(resp.StatusCode) {
		retryAfter, _ := strconv.Atoi(resp.Header.Get("Retry-After"))
		c.limiter.RecordRateLimitError(retryAfter)
		logger.Warn("graph: rate limited, backing off %ds", retryAfter)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, c.apiError(resp.StatusCode, body)
	}

	return body, nil
}

// apiError builds an error from a non-2xx Graph response, including the
// upstream message when the body carries the standard error envelope.
func (c *Client) apiError(statusCode int, body []byte) error {
	var ge graphError
	if err := json.Unmarshal(body, &ge); err == nil && ge.Error.Message != "" {
		return fmt.Errorf("graph request failed: status %d: %s: %w",
			statusCode, ge.Error.Message, WrapError(statusCode))
	}
	return fmt.Errorf("graph request failed: status %d: %w", statusCode, WrapError(statusCode))
}

// listPage is the collection envelope Graph returns for list queries.
type listPage struct {
	Value    []json.RawMessage `json:"value"`
	NextLink string            `json:"@odata.nextLink"`
}

// list fetches all pages of a collection query, following @odata.nextLink.
func (c *Client) list(ctx context.Context, path, token string) ([]json.RawMessage, error) {
	var items []json.RawMessage
	url := path

	for url != "" {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		body, err := c.do(ctx, http.MethodGet, url, token, nil)
		if err != nil {
			return nil, err
		}

		var page listPage
		if err := json.Unmarshal(body, &page); err != nil {
			return nil, fmt.Errorf("decode list response: %w", err)
		}

		items = append(items, page.Value...)
		url = page.NextLink
	}

	return items, nil
}
