package sl

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultBaseURL is the public SL Transport integration API.
const DefaultBaseURL = "https://transport.integration.sl.se/v1"

const defaultTimeout = 10 * time.Second

// Client fetches departures and discovery data from the SL Transport API.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithBaseURL points the client at a different API base, without a
// trailing slash. Used by tests and API-compatible proxies.
func WithBaseURL(base string) Option {
	return func(c *Client) { c.baseURL = base }
}

// NewClient creates a client for the SL Transport API.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		baseURL:    DefaultBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// get performs one GET exchange and returns the raw body.
func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	return body, nil
}

// Departures fetches the upcoming departures page for a site, in upstream
// time order. A response without a departures key yields an empty slice.
func (c *Client) Departures(ctx context.Context, siteID int) ([]Departure, error) {
	url := fmt.Sprintf("%s/sites/%d/departures", c.baseURL, siteID)
	body, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}
	var page departuresResponse
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, &ParseError{URL: url, Err: err}
	}
	if page.Departures == nil {
		return []Departure{}, nil
	}
	return page.Departures, nil
}

// Sites fetches the full site directory.
func (c *Client) Sites(ctx context.Context) ([]Site, error) {
	url := c.baseURL + "/sites"
	body, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}
	var sites []Site
	if err := json.Unmarshal(body, &sites); err != nil {
		return nil, &ParseError{URL: url, Err: err}
	}
	return sites, nil
}
