// Package greencheck queries The Green Web Foundation registry to find out
// whether a host is served from renewable energy.
package greencheck

import (
	"carbonaudit/pkg/carbon"
	"carbonaudit/pkg/serrors"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// DefaultBaseURL is the public greencheck API endpoint.
const DefaultBaseURL = "https://api.thegreenwebfoundation.org/api/v3/greencheck/"

// Client is a carbon.GreenChecker backed by the greencheck REST API.
// It is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

var _ carbon.GreenChecker = (*Client)(nil)

// IsGreen looks up host in the registry.
func (c *Client) IsGreen(ctx context.Context, host string) (bool, error) {
	if host == "" {
		return false, serrors.With(serrors.ErrBadRequest, "host is required")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+url.PathEscape(host), nil)
	if err != nil {
		return false, fmt.Errorf("could not create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("could not send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	b, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return false, fmt.Errorf("could not read response body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return false, fmt.Errorf("greencheck failed: %s", strings.TrimSpace(string(b)))
	}

	var res struct {
		URL   string `json:"url"`
		Green bool   `json:"green"`
	}
	if err := json.Unmarshal(b, &res); err != nil {
		return false, fmt.Errorf("could not decode response: %w", err)
	}

	return res.Green, nil
}

// New constructs a Client. An empty baseURL selects DefaultBaseURL.
func New(httpClient *http.Client, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	return &Client{httpClient: httpClient, baseURL: baseURL}
}
