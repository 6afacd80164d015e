// Package handler provides HTTP handlers for the GreenSteps API.
package handler

import (
	"net/http"
	"time"

	"github.com/greensteps/greensteps/internal/api/models"
	"github.com/greensteps/greensteps/internal/api/response"
	"github.com/greensteps/greensteps/internal/provider/resilience"
)

// OpsHandler handles operational endpoints.
type OpsHandler struct {
	version   string
	buildTime string
	registry  *resilience.Registry
}

// NewOpsHandler creates a new OpsHandler.
func NewOpsHandler(version, buildTime string, registry *resilience.Registry) *OpsHandler {
	return &OpsHandler{
		version:   version,
		buildTime: buildTime,
		registry:  registry,
	}
}

// HealthCheck handles GET /v1/ops/health - liveness check.
func (h *OpsHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	health := models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(time.Now()),
		Details: map[string]interface{}{
			"version":   h.version,
			"buildTime": h.buildTime,
		},
	}
	response.JSON(w, r, http.StatusOK, health)
}

// ReadinessCheck handles GET /v1/ops/ready - readiness check.
// The service has no hard dependencies; all providers degrade to local
// fallbacks, so readiness mirrors liveness.
func (h *OpsHandler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	health := models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(time.Now()),
	}
	response.JSON(w, r, http.StatusOK, health)
}

// SystemStatus handles GET /v1/ops/status - external provider status.
func (h *OpsHandler) SystemStatus(w http.ResponseWriter, r *http.Request) {
	now := models.Timestamp(time.Now())

	providers := []models.ProviderStatus{}
	overall := models.HealthStatusOK

	if h.registry != nil {
		for _, ph := range h.registry.GetAllHealth() {
			status := providerStatus(ph)
			if status == models.HealthStatusDegraded && overall == models.HealthStatusOK {
				overall = models.HealthStatusDegraded
			}

			ps := models.ProviderStatus{
				Provider: ph.Name,
				Status:   status,
			}
			if ph.LastSuccessAt != nil {
				ts := models.Timestamp(*ph.LastSuccessAt)
				ps.LastSuccessAt = &ts
			}
			if ph.LastFailureAt != nil {
				ts := models.Timestamp(*ph.LastFailureAt)
				ps.LastFailureAt = &ts
			}
			if ph.LastError != "" {
				msg := ph.LastError
				ps.Message = &msg
			}
			providers = append(providers, ps)
		}
	}

	status := models.SystemStatus{
		Status:    overall,
		Time:      now,
		Providers: providers,
	}
	response.JSON(w, r, http.StatusOK, status)
}

// providerStatus maps circuit breaker state to a health status. An open or
// half-open circuit is degraded rather than failed because every provider
// has a local fallback.
func providerStatus(ph *resilience.ProviderHealth) models.HealthStatus {
	if ph.IsHealthy() {
		return models.HealthStatusOK
	}
	return models.HealthStatusDegraded
}
