package carbon

import (
	"context"
	"math"

	"github.com/rs/zerolog"

	"github.com/greensteps/greensteps/internal/quiz"
)

// Annualization and fallback constants.
const (
	weeksPerYear  = 52
	monthsPerYear = 12

	// kgPerMile is the fallback emission factor for driving (kg CO2e per mile).
	kgPerMile = 0.404

	// kgPerKwh is the fallback emission factor for grid electricity (kg CO2e per kWh).
	kgPerKwh = 0.4

	// kgPerShortHaulFlight is the flat per-flight figure for short-haul flights.
	kgPerShortHaulFlight = 250
)

// heatingKg is the flat yearly figure per heating source. HeatingOther
// contributes nothing and is omitted from the breakdown.
var heatingKg = map[quiz.Heating]float64{
	quiz.HeatingGas:      1000,
	quiz.HeatingElectric: 700,
	quiz.HeatingHeatPump: 300,
}

// Provider defines the interface for remote carbon-estimate providers.
type Provider interface {
	// EstimateVehicle returns the kg CO2e for driving the given annual miles.
	EstimateVehicle(ctx context.Context, annualMiles float64) (float64, error)

	// EstimateElectricity returns the kg CO2e for the given annual kWh.
	EstimateElectricity(ctx context.Context, annualKwh float64) (float64, error)

	// Name returns the provider name for logging.
	Name() string
}

// ServiceConfig holds configuration for the estimator.
type ServiceConfig struct {
	// Provider is the remote estimate provider. Nil when no credential is
	// configured; every category then uses its fallback formula, the same
	// degradation as a failed call.
	Provider Provider

	// Logger for service operations.
	Logger zerolog.Logger
}

// Service computes footprint estimates. It never returns an error: each
// remote call that fails (or is never attempted) degrades independently to a
// deterministic fallback formula.
type Service struct {
	provider Provider
	logger   zerolog.Logger
}

// NewService creates a new carbon estimator.
func NewService(cfg ServiceConfig) *Service {
	return &Service{
		provider: cfg.Provider,
		logger:   cfg.Logger,
	}
}

// Estimate computes the yearly footprint for the given inputs. At most two
// remote calls are made (driving, electricity), each attempted exactly once;
// a failure in one never blocks or poisons the other.
func (s *Service) Estimate(ctx context.Context, in Inputs) (*Estimate, error) {
	breakdown := make(map[Category]float64)

	if kg, ok := s.drivingKg(ctx, in.WeeklyMilesDriven); ok {
		breakdown[CategoryDriving] = kg
	}
	if kg, ok := s.electricityKg(ctx, in.ElectricityKwhPerMonth); ok {
		breakdown[CategoryElectricity] = kg
	}
	if kg, ok := heatingKg[quiz.Heating(in.HomeHeating)]; ok {
		breakdown[CategoryHeating] = kg
	}
	if in.FlightsShortHaulPerYear > 0 {
		breakdown[CategoryFlights] = float64(in.FlightsShortHaulPerYear) * kgPerShortHaulFlight
	}

	var sum float64
	for _, kg := range breakdown {
		sum += kg
	}

	total := int(math.Round(sum))
	if total < 0 {
		total = 0
	}

	return &Estimate{
		KgCO2ePerYear: total,
		Breakdown:     breakdown,
	}, nil
}

// drivingKg returns the driving contribution. Zero weekly miles skips the
// category entirely, including the remote call.
func (s *Service) drivingKg(ctx context.Context, weeklyMiles float64) (float64, bool) {
	if weeklyMiles <= 0 {
		return 0, false
	}

	annualMiles := weeklyMiles * weeksPerYear

	if s.provider != nil {
		kg, err := s.provider.EstimateVehicle(ctx, annualMiles)
		if err == nil {
			return kg, true
		}
		s.logger.Warn().
			Err(err).
			Str("provider", s.provider.Name()).
			Msg("vehicle estimate failed, using fallback formula")
	}

	return math.Round(annualMiles * kgPerMile), true
}

// electricityKg returns the electricity contribution, symmetric to driving.
func (s *Service) electricityKg(ctx context.Context, monthlyKwh float64) (float64, bool) {
	if monthlyKwh <= 0 {
		return 0, false
	}

	annualKwh := monthlyKwh * monthsPerYear

	if s.provider != nil {
		kg, err := s.provider.EstimateElectricity(ctx, annualKwh)
		if err == nil {
			return kg, true
		}
		s.logger.Warn().
			Err(err).
			Str("provider", s.provider.Name()).
			Msg("electricity estimate failed, using fallback formula")
	}

	return math.Round(annualKwh * kgPerKwh), true
}
