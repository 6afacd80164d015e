package geo

import (
	"context"

	"github.com/rs/zerolog"
)

// Provider defines the interface for IP geolocation providers.
type Provider interface {
	// Lookup resolves the caller's location from its IP address.
	Lookup(ctx context.Context) (*Location, error)

	// Name returns the provider name for logging.
	Name() string
}

// ServiceConfig holds configuration for the geolocation service.
type ServiceConfig struct {
	// Provider is the geolocation provider.
	Provider Provider

	// Logger for service operations.
	Logger zerolog.Logger
}

// Service resolves locations with a swallow-all-failures policy: a failed or
// malformed lookup yields an empty Location, never an error.
type Service struct {
	provider Provider
	logger   zerolog.Logger
}

// NewService creates a new geolocation service.
func NewService(cfg ServiceConfig) *Service {
	return &Service{
		provider: cfg.Provider,
		logger:   cfg.Logger,
	}
}

// Locate returns the caller's location, or an empty Location when the
// provider is unavailable or replies with garbage. Exactly one outbound call
// is made; there are no retries.
func (s *Service) Locate(ctx context.Context) *Location {
	if s.provider == nil {
		return &Location{}
	}

	loc, err := s.provider.Lookup(ctx)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("provider", s.provider.Name()).
			Msg("geolocation lookup failed, continuing without location")
		return &Location{}
	}
	if loc == nil {
		return &Location{}
	}

	return loc
}
