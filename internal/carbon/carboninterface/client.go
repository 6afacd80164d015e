// Package carboninterface implements the Carbon Interface estimates provider.
package carboninterface

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/greensteps/greensteps/internal/provider/resilience"
)

const (
	// ProviderName identifies this carbon-estimate provider.
	ProviderName = "carboninterface"

	// DefaultBaseURL is the Carbon Interface API base URL.
	DefaultBaseURL = "https://www.carboninterface.com/api/v1"
)

// ClientConfig holds configuration for the Carbon Interface client.
type ClientConfig struct {
	// APIKey is the Carbon Interface bearer credential (required).
	APIKey string

	// BaseURL is the API base URL (optional, defaults to Carbon Interface).
	BaseURL string

	// VehicleModelID selects the reference vehicle for driving estimates.
	VehicleModelID string

	// Country and State locate the electricity grid for electricity estimates.
	Country string
	State   string

	// HTTPClient is the HTTP client to use (optional).
	// If nil, uses a resilient client with defaults.
	HTTPClient *resilience.Client

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client is a Carbon Interface API client.
type Client struct {
	apiKey         string
	baseURL        string
	vehicleModelID string
	country        string
	state          string
	httpClient     *resilience.Client
	logger         zerolog.Logger
}

// NewClient creates a new Carbon Interface client.
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
		apiKey:         cfg.APIKey,
		baseURL:        baseURL,
		vehicleModelID: cfg.VehicleModelID,
		country:        cfg.Country,
		state:          cfg.State,
		httpClient:     httpClient,
		logger:         cfg.Logger,
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return ProviderName
}

// EstimateVehicle fetches the kg CO2e for driving the given annual miles.
func (c *Client) EstimateVehicle(ctx context.Context, annualMiles float64) (float64, error) {
	return c.estimate(ctx, vehicleRequest{
		Type:           "vehicle",
		DistanceUnit:   "mi",
		DistanceValue:  annualMiles,
		VehicleModelID: c.vehicleModelID,
	})
}

// EstimateElectricity fetches the kg CO2e for the given annual kWh.
func (c *Client) EstimateElectricity(ctx context.Context, annualKwh float64) (float64, error) {
	return c.estimate(ctx, electricityRequest{
		Type:             "electricity",
		ElectricityUnit:  "kwh",
		ElectricityValue: annualKwh,
		Country:          c.country,
		State:            c.state,
	})
}

// estimate posts one estimate request and extracts carbon_kg from the reply.
func (c *Client) estimate(ctx context.Context, body interface{}) (float64, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return 0, fmt.Errorf("encoding request: %w", err)
	}

	url := c.baseURL + "/estimates"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return 0, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return 0, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var apiResp estimateResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return 0, fmt.Errorf("decoding response: %w", err)
	}

	if apiResp.Data.Attributes.CarbonKg == nil {
		return 0, fmt.Errorf("response missing carbon_kg")
	}

	return *apiResp.Data.Attributes.CarbonKg, nil
}

// Carbon Interface API request/response structures.

type vehicleRequest struct {
	Type           string  `json:"type"`
	DistanceUnit   string  `json:"distance_unit"`
	DistanceValue  float64 `json:"distance_value"`
	VehicleModelID string  `json:"vehicle_model_id"`
}

type electricityRequest struct {
	Type             string  `json:"type"`
	ElectricityUnit  string  `json:"electricity_unit"`
	ElectricityValue float64 `json:"electricity_value"`
	Country          string  `json:"country"`
	State            string  `json:"state,omitempty"`
}

type estimateResponse struct {
	Data struct {
		Attributes struct {
			CarbonKg *float64 `json:"carbon_kg"`
		} `json:"attributes"`
	} `json:"data"`
}
