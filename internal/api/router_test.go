package api_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greensteps/greensteps/internal/api"
	"github.com/greensteps/greensteps/internal/api/models"
	"github.com/greensteps/greensteps/internal/carbon"
	"github.com/greensteps/greensteps/internal/geo"
	"github.com/greensteps/greensteps/internal/quiz"
	"github.com/greensteps/greensteps/internal/submission"
)

type fixedLocator struct{}

func (fixedLocator) Locate(_ context.Context) *geo.Location {
	return &geo.Location{City: "Utrecht", Country: "Netherlands"}
}

type fixedEstimator struct{}

func (fixedEstimator) Estimate(_ context.Context, _ carbon.Inputs) (*carbon.Estimate, error) {
	return &carbon.Estimate{
		KgCO2ePerYear: 4180,
		Breakdown: map[carbon.Category]float64{
			carbon.CategoryDriving: 1050,
		},
	}, nil
}

type fixedAdviser struct{}

func (fixedAdviser) GenerateTips(_ context.Context, _ *quiz.Answers, _ string, _ *int) (string, error) {
	return "Drive less.", nil
}

func newTestRouter() http.Handler {
	logger := zerolog.New(io.Discard)
	svc := submission.NewService(submission.ServiceConfig{
		Locator:   fixedLocator{},
		Estimator: fixedEstimator{},
		Adviser:   fixedAdviser{},
		Logger:    logger,
	})
	return api.NewRouter(api.RouterConfig{
		Version:           "test",
		BuildTime:         "2026-01-01T00:00:00Z",
		Logger:            logger,
		SubmissionService: svc,
	})
}

func TestRouter_HealthCheck(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/ops/health", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))

	var health models.Health
	err := json.Unmarshal(w.Body.Bytes(), &health)
	require.NoError(t, err)

	assert.Equal(t, models.HealthStatusOK, health.Status)
	assert.NotEmpty(t, health.Time)
}

func TestRouter_ReadinessCheck(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/ops/ready", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var health models.Health
	err := json.Unmarshal(w.Body.Bytes(), &health)
	require.NoError(t, err)

	assert.Equal(t, models.HealthStatusOK, health.Status)
}

func TestRouter_SystemStatus(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/ops/status", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"providers"`)
}

func TestRouter_SubmitSuccess(t *testing.T) {
	router := newTestRouter()

	body := `{
		"diet": "vegan",
		"weeklyMilesDriven": 50,
		"electricityKwhPerMonth": 400,
		"homeHeating": "gas",
		"flightsShortHaulPerYear": 1,
		"recyclingHabit": "always",
		"transportMode": "car"
	}`
	req := httptest.NewRequest(http.MethodPost, "/v1/submissions", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))

	var result submission.Result
	err := json.Unmarshal(w.Body.Bytes(), &result)
	require.NoError(t, err)

	require.NotNil(t, result.Estimate)
	assert.Equal(t, 4180, result.Estimate.KgCO2ePerYear)
	assert.Equal(t, "Drive less.", result.Tips)
}

func TestRouter_SubmitValidationError(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/v1/submissions", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "application/problem+json", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "validation-error")
}

func TestRouter_SubmitRejectsWrongContentType(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/v1/submissions", strings.NewReader("diet=vegan"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
}

func TestRouter_SecurityHeaders(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/ops/health", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
}

func TestRouter_UnknownRoute(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/unknown", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
