// Package ipapi implements the ipapi.co geolocation provider.
package ipapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/greensteps/greensteps/internal/geo"
	"github.com/greensteps/greensteps/internal/provider/resilience"
)

const (
	// ProviderName identifies this geolocation provider.
	ProviderName = "ipapi"

	// DefaultBaseURL is the ipapi.co API base URL.
	DefaultBaseURL = "https://ipapi.co"
)

// ClientConfig holds configuration for the ipapi.co client.
type ClientConfig struct {
	// BaseURL is the API base URL (optional, defaults to ipapi.co).
	BaseURL string

	// HTTPClient is the HTTP client to use (optional).
	// If nil, uses a resilient client with defaults.
	HTTPClient *resilience.Client

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client is an ipapi.co API client. The endpoint is unauthenticated.
type Client struct {
	baseURL    string
	httpClient *resilience.Client
	logger     zerolog.Logger
}

// NewClient creates a new ipapi.co client.
func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = resilience.NewClient(resilience.DefaultClientConfig(ProviderName))
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     cfg.Logger,
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return ProviderName
}

// Lookup resolves the caller's location.
func (c *Client) Lookup(ctx context.Context) (*geo.Location, error) {
	url := c.baseURL + "/json/"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var apiResp lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	return &geo.Location{
		IP:      apiResp.IP,
		City:    apiResp.City,
		Region:  apiResp.Region,
		Country: apiResp.CountryName,
	}, nil
}

// ipapi.co API response structure.
type lookupResponse struct {
	IP          string `json:"ip"`
	City        string `json:"city"`
	Region      string `json:"region"`
	CountryName string `json:"country_name"`
}
