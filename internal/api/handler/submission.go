package handler

import (
	"encoding/json"
	"net/http"
	"sort"

	"github.com/greensteps/greensteps/internal/api/models"
	"github.com/greensteps/greensteps/internal/api/response"
	"github.com/greensteps/greensteps/internal/quiz"
	"github.com/greensteps/greensteps/internal/submission"
)

// SubmissionHandler handles quiz submission endpoints.
type SubmissionHandler struct {
	service *submission.Service
}

// NewSubmissionHandler creates a new SubmissionHandler.
func NewSubmissionHandler(service *submission.Service) *SubmissionHandler {
	return &SubmissionHandler{service: service}
}

// Submit handles POST /v1/submissions - validate answers, estimate the
// footprint, and generate tips.
func (h *SubmissionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var input quiz.Submission
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	result, violations := h.service.Submit(r.Context(), input)
	if violations != nil {
		response.BadRequest(w, r, "one or more answers are invalid", fieldErrors(violations))
		return
	}

	response.JSON(w, r, http.StatusOK, result)
}

// fieldErrors flattens validation violations into field errors, sorted by
// field name for stable output.
func fieldErrors(violations quiz.Violations) []models.FieldError {
	fields := make([]string, 0, len(violations))
	for field := range violations {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	errs := make([]models.FieldError, 0, len(violations))
	for _, field := range fields {
		for _, msg := range violations[field] {
			errs = append(errs, models.FieldError{
				Field:   field,
				Message: msg,
			})
		}
	}
	return errs
}
