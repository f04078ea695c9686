package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultBaseURL = "https://api.notion.com/v1"
	defaultVersion = "2022-06-28"

	// DefaultPageSize is the page size used for every list call.
	DefaultPageSize = 100

	// maxPages bounds cursor pagination.
	maxPages = 50
)

type Client struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
	version    string
	limiter    *rate.Limiter
	maxRetries int
	backoff    time.Duration
}

type Option func(*Client)

func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = u
		}
	}
}

func WithVersion(v string) Option {
	return func(c *Client) {
		if v != "" {
			c.version = v
		}
	}
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithRateLimit caps outgoing requests per second.
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		}
	}
}

func WithMaxRetries(n int) Option {
	return func(c *Client) { c.maxRetries = n }
}

// WithBackoff sets the first retry delay; later retries double it.
func WithBackoff(d time.Duration) Option {
	return func(c *Client) { c.backoff = d }
}

func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		version:    defaultVersion,
		limiter:    rate.NewLimiter(rate.Limit(3), 1),
		maxRetries: 2,
		backoff:    time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// listResponse is the envelope shared by every paginated endpoint.
type listResponse struct {
	Object     string  `json:"object"`
	Results    []any   `json:"results"`
	NextCursor *string `json:"next_cursor"`
	HasMore    bool    `json:"has_more"`
}

type queryRequest struct {
	PageSize    int    `json:"page_size"`
	StartCursor string `json:"start_cursor,omitempty"`
}

// QueryDatabase returns every page of the database, in source order.
func (c *Client) QueryDatabase(ctx context.Context, databaseID string, pageSize int) ([]any, error) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	path := "/databases/" + url.PathEscape(databaseID) + "/query"

	var results []any
	cursor := ""
	for page := 0; page < maxPages; page++ {
		var res listResponse
		body := queryRequest{PageSize: pageSize, StartCursor: cursor}
		if err := c.do(ctx, http.MethodPost, path, nil, body, &res); err != nil {
			return nil, err
		}
		if res.Results == nil {
			return nil, ErrInvalidResponse
		}
		results = append(results, res.Results...)
		if !res.HasMore || res.NextCursor == nil || *res.NextCursor == "" || *res.NextCursor == cursor {
			break
		}
		cursor = *res.NextCursor
	}
	return results, nil
}

// Ping runs a single one-record query against the database.
func (c *Client) Ping(ctx context.Context, databaseID string) error {
	var res listResponse
	path := "/databases/" + url.PathEscape(databaseID) + "/query"
	if err := c.do(ctx, http.MethodPost, path, nil, queryRequest{PageSize: 1}, &res); err != nil {
		return err
	}
	if res.Results == nil {
		return ErrInvalidResponse
	}
	return nil
}

// ListBlockChildren returns the child blocks of a page, in source order.
func (c *Client) ListBlockChildren(ctx context.Context, blockID string, pageSize int) ([]any, error) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	path := "/blocks/" + url.PathEscape(blockID) + "/children"

	var results []any
	cursor := ""
	for page := 0; page < maxPages; page++ {
		params := url.Values{}
		params.Set("page_size", strconv.Itoa(pageSize))
		if cursor != "" {
			params.Set("start_cursor", cursor)
		}

		var res listResponse
		if err := c.do(ctx, http.MethodGet, path, params, nil, &res); err != nil {
			return nil, err
		}
		if res.Results == nil {
			return nil, ErrInvalidResponse
		}
		results = append(results, res.Results...)
		if !res.HasMore || res.NextCursor == nil || *res.NextCursor == "" || *res.NextCursor == cursor {
			break
		}
		cursor = *res.NextCursor
	}
	return results, nil
}

func (c *Client) do(ctx context.Context, method, path string, params url.Values, body any, target any) error {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return err
		}
	}

	var lastErr error
	for i := 0; i <= c.maxRetries; i++ {
		if i > 0 {
			// Backoff: base, 2*base, 4*base...
			wait := c.backoff * time.Duration(1<<uint(i-1))
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		status, data, err := c.send(ctx, method, u, payload)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			lastErr = err
			continue
		}

		if status < 200 || status > 299 {
			apiErr := parseError(status, data)
			if retryable(status) {
				lastErr = apiErr
				continue
			}
			return apiErr
		}

		if err := json.Unmarshal(data, target); err != nil {
			return fmt.Errorf("decode %s %s: %w", method, path, err)
		}
		return nil
	}
	return fmt.Errorf("after %d retries: %w", c.maxRetries, lastErr)
}

func (c *Client) send(ctx context.Context, method, u string, payload []byte) (int, []byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return 0, nil, err
		}
	}

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Notion-Version", c.version)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, err
	}
	return resp.StatusCode, data, nil
}

func parseError(status int, data []byte) *APIError {
	apiErr := &APIError{}
	if err := json.Unmarshal(data, apiErr); err != nil || apiErr.Code == "" {
		apiErr.Code = http.StatusText(status)
		apiErr.Message = string(bytes.TrimSpace(data))
	}
	apiErr.Status = status
	return apiErr
}
