package advice_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greensteps/greensteps/internal/advice"
	"github.com/greensteps/greensteps/internal/quiz"
)

// mockCompleter is a mock completion provider for testing.
type mockCompleter struct {
	text       string
	err        error
	callCount  int
	lastSystem string
	lastUser   string
}

func (m *mockCompleter) Name() string {
	return "mock"
}

func (m *mockCompleter) Complete(_ context.Context, system, user string) (string, error) {
	m.callCount++
	m.lastSystem = system
	m.lastUser = user
	if m.err != nil {
		return "", m.err
	}
	return m.text, nil
}

func testAnswers() *quiz.Answers {
	return &quiz.Answers{
		Diet:                    quiz.DietOmnivore,
		WeeklyMilesDriven:       50,
		ElectricityKwhPerMonth:  400,
		HomeHeating:             quiz.HeatingElectric,
		FlightsShortHaulPerYear: 2,
		RecyclingHabit:          quiz.RecyclingOften,
		TransportMode:           quiz.TransportMixed,
	}
}

func intPtr(v int) *int { return &v }

func TestGenerateTips_RemoteMode(t *testing.T) {
	completer := &mockCompleter{text: "- Bike to work\n- Eat less meat"}
	svc := advice.NewService(advice.ServiceConfig{Completer: completer, Logger: zerolog.Nop()})

	tips, err := svc.GenerateTips(context.Background(), testAnswers(), "Utrecht, Netherlands", intPtr(5000))
	require.NoError(t, err)

	assert.Equal(t, "- Bike to work\n- Eat less meat", tips, "remote text returned verbatim")
	assert.Equal(t, 1, completer.callCount)

	// The user message embeds all quiz fields plus location and footprint.
	assert.Contains(t, completer.lastUser, "omnivore")
	assert.Contains(t, completer.lastUser, "Weekly miles driven: 50")
	assert.Contains(t, completer.lastUser, "400 kWh/month")
	assert.Contains(t, completer.lastUser, "electric")
	assert.Contains(t, completer.lastUser, "Short-haul flights per year: 2")
	assert.Contains(t, completer.lastUser, "often")
	assert.Contains(t, completer.lastUser, "mixed")
	assert.Contains(t, completer.lastUser, "Utrecht, Netherlands")
	assert.Contains(t, completer.lastUser, "5000 kg CO2e per year")
	assert.NotEmpty(t, completer.lastSystem)
}

func TestGenerateTips_RemotePlaceholders(t *testing.T) {
	completer := &mockCompleter{text: "tips"}
	svc := advice.NewService(advice.ServiceConfig{Completer: completer, Logger: zerolog.Nop()})

	_, err := svc.GenerateTips(context.Background(), testAnswers(), "", nil)
	require.NoError(t, err)

	assert.Contains(t, completer.lastUser, "Location: Unknown")
	assert.Contains(t, completer.lastUser, "Estimated footprint: N/A")
}

func TestGenerateTips_RemoteFailureFallsBackToLocal(t *testing.T) {
	completer := &mockCompleter{err: errors.New("rate limited")}
	svc := advice.NewService(advice.ServiceConfig{Completer: completer, Logger: zerolog.Nop()})

	tips, err := svc.GenerateTips(context.Background(), testAnswers(), "Utrecht", intPtr(5000))
	require.NoError(t, err)

	assert.Equal(t, 1, completer.callCount, "single attempt, no retries")
	assert.Contains(t, tips, "Your top opportunities")
	assert.NotEqual(t, advice.ApologyMessage, tips, "generator falls back locally, never apologizes")
}

func TestGenerateTips_EmptyRemoteTextFallsBackToLocal(t *testing.T) {
	completer := &mockCompleter{text: "   "}
	svc := advice.NewService(advice.ServiceConfig{Completer: completer, Logger: zerolog.Nop()})

	tips, err := svc.GenerateTips(context.Background(), testAnswers(), "", nil)
	require.NoError(t, err)
	assert.Contains(t, tips, "Your top opportunities")
}

func TestGenerateTips_LocalOnlyFlagSkipsRemote(t *testing.T) {
	completer := &mockCompleter{text: "remote tips"}
	svc := advice.NewService(advice.ServiceConfig{Completer: completer, LocalOnly: true, Logger: zerolog.Nop()})

	tips, err := svc.GenerateTips(context.Background(), testAnswers(), "", intPtr(3000))
	require.NoError(t, err)

	assert.Equal(t, 0, completer.callCount)
	assert.Contains(t, tips, "Your top opportunities")
}

func TestGenerateTips_LocalRanking(t *testing.T) {
	svc := advice.NewService(advice.ServiceConfig{Logger: zerolog.Nop()})

	tips, err := svc.GenerateTips(context.Background(), testAnswers(), "Utrecht", intPtr(5000))
	require.NoError(t, err)

	lines := strings.Split(tips, "\n")
	require.Len(t, lines, 1+3, "header plus at most three tips")
	assert.Contains(t, lines[0], "location: Utrecht")
	assert.Contains(t, lines[0], "footprint: 5000 kg CO2e/yr")

	// 50 weekly miles → round(50*52*0.404) = 1050, the top candidate,
	// followed by flights (2×250=500) and the omnivore diet shift (600).
	assert.Contains(t, lines[1], "car miles")
	assert.Contains(t, lines[1], "1050")
	assert.Contains(t, lines[2], "plant-based")
	assert.Contains(t, lines[3], "flight")
}

func TestGenerateTips_LocalTriggers(t *testing.T) {
	answers := &quiz.Answers{
		Diet:                    quiz.DietVegan,
		WeeklyMilesDriven:       0,
		ElectricityKwhPerMonth:  0,
		HomeHeating:             quiz.HeatingHeatPump,
		FlightsShortHaulPerYear: 0,
		RecyclingHabit:          quiz.RecyclingAlways,
		TransportMode:           quiz.TransportBikeWalk,
	}
	svc := advice.NewService(advice.ServiceConfig{Logger: zerolog.Nop()})

	tips, err := svc.GenerateTips(context.Background(), answers, "", nil)
	require.NoError(t, err)

	assert.NotContains(t, tips, "plant-based", "vegans get no diet tip")
	assert.NotContains(t, tips, "flight", "zero flights means no flight tip")
	assert.NotContains(t, tips, "car miles")
	assert.Contains(t, tips, "location: Unknown")
	assert.Contains(t, tips, "footprint: N/A")
}
