// Package plex reads library sections and watched state from a Plex Media Server.
package plex

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

const defaultPageSize = 200

// Client talks to the Plex JSON API.
type Client struct {
	baseURL    string
	token      string
	pageSize   int
	httpClient *http.Client
	log        *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets a logger for debug output.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// WithPageSize sets how many items are requested per section page.
func WithPageSize(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.pageSize = n
		}
	}
}

// New creates a Plex client.
func New(baseURL, token string, opts ...Option) *Client {
	c := &Client{
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		token:    token,
		pageSize: defaultPageSize,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.With("component", "plex")
	return c
}

// Close releases idle connections.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}

// Identity returns the server name and version.
func (c *Client) Identity(ctx context.Context) (*Identity, error) {
	var resp identityContainer
	if err := c.get(ctx, "/identity", nil, &resp); err != nil {
		return nil, err
	}
	return &resp.MediaContainer, nil
}

// Sections returns all library sections.
func (c *Client) Sections(ctx context.Context) ([]Section, error) {
	var resp mediaContainer
	if err := c.get(ctx, "/library/sections", nil, &resp); err != nil {
		return nil, err
	}
	return resp.MediaContainer.Directory, nil
}

// SectionItems returns every item of the given type in a section, following
// pagination until the server's total size is reached.
func (c *Client) SectionItems(ctx context.Context, key string, typ MediaType) ([]Item, error) {
	endpoint := "/library/sections/" + url.PathEscape(key) + "/all"

	var items []Item
	for start := 0; ; {
		params := url.Values{}
		params.Set("type", strconv.Itoa(int(typ)))
		params.Set("includeGuids", "1")
		params.Set("X-Plex-Container-Start", strconv.Itoa(start))
		params.Set("X-Plex-Container-Size", strconv.Itoa(c.pageSize))

		var resp mediaContainer
		if err := c.get(ctx, endpoint, params, &resp); err != nil {
			return nil, fmt.Errorf("section %s: %w", key, err)
		}
		page := resp.MediaContainer.Metadata
		items = append(items, page...)
		start += len(page)

		total := resp.MediaContainer.TotalSize
		if len(page) == 0 || (total > 0 && start >= total) || (total == 0 && len(page) < c.pageSize) {
			break
		}
	}

	c.log.Debug("fetched section items", "section", key, "type", int(typ), "count", len(items))
	return items, nil
}

func (c *Client) get(ctx context.Context, endpoint string, params url.Values, out any) error {
	reqURL := c.baseURL + endpoint
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("X-Plex-Token", c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return ErrUnauthorized
	case resp.StatusCode != http.StatusOK:
		_, _ = io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("%w: GET %s: %s", ErrUnexpectedStatus, endpoint, resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
