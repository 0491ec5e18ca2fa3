// Package websitecarbon provides the fallback carbon estimator backed by the
// Website Carbon public API.
package websitecarbon

import (
	"carbonaudit/pkg/carbon"
	"carbonaudit/pkg/domain"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the public Website Carbon site endpoint.
	DefaultBaseURL = "https://api.websitecarbon.com/site"
	// DefaultTimeout bounds a single API call.
	DefaultTimeout = 15 * time.Second
)

// Client is a carbon.Estimator that maps the Website Carbon API response
// straight into a domain.Carbon.
type Client struct {
	httpClient *http.Client
	baseURL    string
	timeout    time.Duration
}

var _ carbon.Estimator = (*Client)(nil)

// greenFlag accepts both booleans and the "unknown" string the API sends when
// the host is not in the registry.
type greenFlag bool

func (g *greenFlag) UnmarshalJSON(b []byte) error {
	var v bool
	if err := json.Unmarshal(b, &v); err == nil {
		*g = greenFlag(v)

		return nil
	}
	*g = false

	return nil
}

type siteResponse struct {
	URL         string    `json:"url"`
	Green       greenFlag `json:"green"`
	Bytes       int64     `json:"bytes"`
	CleanerThan float64   `json:"cleanerThan"`
	Statistics  struct {
		CO2 struct {
			Grid struct {
				Grams float64 `json:"grams"`
			} `json:"grid"`
			Renewable struct {
				Grams float64 `json:"grams"`
			} `json:"renewable"`
		} `json:"co2"`
	} `json:"statistics"`
}

// Estimate implements carbon.Estimator.
func (c *Client) Estimate(ctx context.Context, target *url.URL) (*domain.Carbon, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	q := url.Values{}
	q.Set("url", target.String())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("could not send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	b, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("could not read response body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("website carbon request failed: %d %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}

	var site siteResponse
	if err := json.Unmarshal(b, &site); err != nil {
		return nil, fmt.Errorf("could not decode response: %w", err)
	}

	co2 := site.Statistics.CO2.Grid.Grams
	if site.Green {
		co2 = site.Statistics.CO2.Renewable.Grams
	}
	// the API reports cleanerThan in [0,1]; older responses used percentages
	cleaner := site.CleanerThan
	if cleaner > 1 {
		cleaner /= 100
	}

	return &domain.Carbon{
		CO2PerPageview: co2,
		Green:          bool(site.Green),
		CleanerThan:    domain.Clamp01(cleaner),
		TransferSize:   site.Bytes,
	}, nil
}

// New constructs a Client. Zero values select the defaults.
func New(httpClient *http.Client, baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Client{httpClient: httpClient, baseURL: baseURL, timeout: timeout}
}
