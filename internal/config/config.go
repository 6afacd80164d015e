// Package config loads application configuration from the environment.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Geolocation provider selectors recognized by GEO_PROVIDER.
const (
	GeoProviderIPAPI = "ipapi"
	GeoProviderIPWho = "ipwho"
)

// Config holds all application configuration. It is loaded once in main and
// passed explicitly into each component at construction; nothing reads the
// environment after startup.
type Config struct {
	// Server
	Port string
	Env  string

	// Logging
	LogLevel string

	// Telemetry
	OTELEnabled  bool
	OTLPEndpoint string

	// Carbon estimate provider. An empty CarbonAPIKey means the estimator
	// runs entirely on its fallback formulas.
	CarbonAPIKey         string
	CarbonBaseURL        string
	CarbonVehicleModelID string
	CarbonCountry        string
	CarbonState          string

	// Completion provider for advice generation. An empty CompletionAPIKey
	// or AdviceLocalOnly=true keeps advice generation local.
	CompletionAPIKey  string
	CompletionBaseURL string
	CompletionModel   string
	AdviceLocalOnly   bool

	// Geolocation provider selector: "ipapi" (default) or "ipwho".
	GeoProvider string
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file is honored when present (local development).
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:     getEnv("PORT", "8080"),
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		OTELEnabled:  getEnvAsBool("OTEL_ENABLED", false),
		OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),

		CarbonAPIKey:         getEnv("CARBON_API_KEY", ""),
		CarbonBaseURL:        getEnv("CARBON_BASE_URL", ""),
		CarbonVehicleModelID: getEnv("CARBON_VEHICLE_MODEL_ID", "7268a9b7-17e8-4c8d-acca-57059252afe9"),
		CarbonCountry:        getEnv("CARBON_COUNTRY", "us"),
		CarbonState:          getEnv("CARBON_STATE", ""),

		CompletionAPIKey:  getEnv("COMPLETION_API_KEY", ""),
		CompletionBaseURL: getEnv("COMPLETION_BASE_URL", ""),
		CompletionModel:   getEnv("COMPLETION_MODEL", ""),
		AdviceLocalOnly:   getEnvAsBool("ADVICE_LOCAL_ONLY", false),

		GeoProvider: getEnv("GEO_PROVIDER", GeoProviderIPAPI),
	}
}

// getEnv reads an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsBool reads an environment variable as a boolean.
// Returns default if not set or invalid.
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}
