// Package advice generates short footprint-reduction tips, either via a
// remote completion provider or a local ranked template catalogue.
package advice

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/greensteps/greensteps/internal/quiz"
)

// ApologyMessage is returned by the submission pipeline when advice
// generation itself fails; the generator never produces it on its own.
const ApologyMessage = "Sorry, personalized tips are unavailable right now. Your footprint estimate is unaffected."

// Placeholders for absent context in the prompt and header.
const (
	unknownLocation  = "Unknown"
	unknownFootprint = "N/A"
)

// systemInstruction is the fixed instruction sent with every completion request.
const systemInstruction = "You are GreenSteps, a friendly sustainability coach. " +
	"Given a user's lifestyle answers, their approximate location, and their estimated yearly carbon footprint, " +
	"reply with at most three short, concrete, encouraging tips as a bulleted list. Avoid judgment and jargon."

// Completer defines the interface for remote completion providers.
type Completer interface {
	// Complete returns the completion text for the given system instruction
	// and user message.
	Complete(ctx context.Context, system, user string) (string, error)

	// Name returns the provider name for logging.
	Name() string
}

// ServiceConfig holds configuration for the advice generator.
type ServiceConfig struct {
	// Completer is the remote completion provider. Nil when no credential is
	// configured; generation then stays local.
	Completer Completer

	// LocalOnly forces local generation even when a Completer is present.
	LocalOnly bool

	// Logger for service operations.
	Logger zerolog.Logger
}

// Service generates tips. A failed or empty remote completion falls back to
// the local catalogue, so generation never fails.
type Service struct {
	completer Completer
	localOnly bool
	logger    zerolog.Logger
}

// NewService creates a new advice generator.
func NewService(cfg ServiceConfig) *Service {
	return &Service{
		completer: cfg.Completer,
		localOnly: cfg.LocalOnly,
		logger:    cfg.Logger,
	}
}

// GenerateTips produces the tip text for a validated submission. totalKg is
// nil when no estimate is available. The returned error is always nil for
// this implementation; the signature keeps the caller's failure boundary
// explicit.
func (s *Service) GenerateTips(ctx context.Context, answers *quiz.Answers, locationSummary string, totalKg *int) (string, error) {
	if s.completer != nil && !s.localOnly {
		text, err := s.completer.Complete(ctx, systemInstruction, userMessage(answers, locationSummary, totalKg))
		if err == nil && strings.TrimSpace(text) != "" {
			return text, nil
		}
		s.logger.Warn().
			Err(err).
			Str("provider", s.completer.Name()).
			Msg("completion unusable, falling back to local tips")
	}

	return renderLocalTips(answers, locationSummary, totalKg), nil
}

// userMessage embeds every quiz field plus the location and footprint
// context into the single user message of the completion request.
func userMessage(answers *quiz.Answers, locationSummary string, totalKg *int) string {
	location := locationSummary
	if location == "" {
		location = unknownLocation
	}
	footprint := unknownFootprint
	if totalKg != nil {
		footprint = fmt.Sprintf("%d kg CO2e per year", *totalKg)
	}

	return fmt.Sprintf(
		"Diet: %s\nWeekly miles driven: %g\nElectricity use: %g kWh/month\nHome heating: %s\n"+
			"Short-haul flights per year: %d\nRecycling habit: %s\nTransport mode: %s\n"+
			"Location: %s\nEstimated footprint: %s",
		answers.Diet,
		answers.WeeklyMilesDriven,
		answers.ElectricityKwhPerMonth,
		answers.HomeHeating,
		answers.FlightsShortHaulPerYear,
		answers.RecyclingHabit,
		answers.TransportMode,
		location,
		footprint,
	)
}
