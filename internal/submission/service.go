// Package submission orchestrates the quiz pipeline: validate, locate,
// estimate, advise, assemble.
package submission

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/greensteps/greensteps/internal/advice"
	"github.com/greensteps/greensteps/internal/carbon"
	"github.com/greensteps/greensteps/internal/geo"
	"github.com/greensteps/greensteps/internal/quiz"
)

// Locator resolves the caller's location. Implementations absorb their own
// failures and return an empty location at worst.
type Locator interface {
	Locate(ctx context.Context) *geo.Location
}

// Estimator computes a footprint estimate.
type Estimator interface {
	Estimate(ctx context.Context, in carbon.Inputs) (*carbon.Estimate, error)
}

// Adviser generates the tips text.
type Adviser interface {
	GenerateTips(ctx context.Context, answers *quiz.Answers, locationSummary string, totalKg *int) (string, error)
}

// Result is the success payload of a submission: the echoed answers, the
// best-effort location, the estimate (nil when estimation failed), and the
// tips text.
type Result struct {
	Quiz     *quiz.Answers    `json:"quiz"`
	Location *geo.Location    `json:"location"`
	Estimate *carbon.Estimate `json:"estimate"`
	Tips     string           `json:"tips"`
}

// ServiceConfig holds the pipeline's stage dependencies.
type ServiceConfig struct {
	Locator   Locator
	Estimator Estimator
	Adviser   Adviser
	Logger    zerolog.Logger
}

// Service runs the submission pipeline. Each stage is a hard failure
// boundary: a failing stage degrades its own output and never prevents later
// stages from running.
type Service struct {
	locator   Locator
	estimator Estimator
	adviser   Adviser
	logger    zerolog.Logger
}

// NewService creates a new submission service.
func NewService(cfg ServiceConfig) *Service {
	return &Service{
		locator:   cfg.Locator,
		estimator: cfg.Estimator,
		adviser:   cfg.Adviser,
		logger:    cfg.Logger,
	}
}

// Submit validates the raw fields and runs the pipeline. On validation
// failure it returns the violations and makes no remote call. Geolocation and
// carbon estimation have no data dependency on each other and run
// concurrently; both must settle before advice generation, which consumes the
// estimate's total (including its nil-on-failure case).
func (s *Service) Submit(ctx context.Context, raw quiz.Submission) (*Result, quiz.Violations) {
	answers, violations := quiz.Validate(raw)
	if violations != nil {
		return nil, violations
	}

	var (
		wg       sync.WaitGroup
		location *geo.Location
		estimate *carbon.Estimate
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		location = s.locator.Locate(ctx)
	}()
	go func() {
		defer wg.Done()
		est, err := s.estimator.Estimate(ctx, carbon.Inputs{
			WeeklyMilesDriven:       answers.WeeklyMilesDriven,
			ElectricityKwhPerMonth:  answers.ElectricityKwhPerMonth,
			HomeHeating:             string(answers.HomeHeating),
			FlightsShortHaulPerYear: answers.FlightsShortHaulPerYear,
		})
		if err != nil {
			s.logger.Error().Err(err).Msg("carbon estimate failed, continuing without estimate")
			return
		}
		estimate = est
	}()
	wg.Wait()

	var totalKg *int
	if estimate != nil {
		totalKg = &estimate.KgCO2ePerYear
	}

	tips, err := s.adviser.GenerateTips(ctx, answers, location.Summary(), totalKg)
	if err != nil {
		s.logger.Error().Err(err).Msg("advice generation failed, using apology message")
		tips = advice.ApologyMessage
	}

	return &Result{
		Quiz:     answers,
		Location: location,
		Estimate: estimate,
		Tips:     tips,
	}, nil
}
