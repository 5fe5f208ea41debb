package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/lagoslab/accessibility-backend-go/internal/access"
	"github.com/lagoslab/accessibility-backend-go/internal/models"
	"github.com/lagoslab/accessibility-backend-go/internal/repository"
	"github.com/lagoslab/accessibility-backend-go/internal/service"
	"github.com/lagoslab/accessibility-backend-go/pkg/response"
)

// AnalysisHandler handles HTTP requests for accessibility and time-band
// analyses
type AnalysisHandler struct {
	service *service.AnalysisService
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(service *service.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{service: service}
}

// Accessibility handles POST /api/v1/analysis/accessibility
func (h *AnalysisHandler) Accessibility(c *gin.Context) {
	var req models.AccessibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid accessibility request", err)
		return
	}

	result, err := h.service.Accessibility(req)
	if err != nil {
		switch {
		case errors.Is(err, access.ErrUnknownAttribute):
			response.BadRequest(c, "Unknown zone attribute", err)
		case errors.Is(err, repository.ErrSkimNotFound):
			response.NotFound(c, "Skim not loaded", err)
		default:
			response.InternalError(c, "Failed to compute accessibility", err)
		}
		return
	}

	response.Success(c, result)
}

// TimeBands handles POST /api/v1/analysis/timebands
func (h *AnalysisHandler) TimeBands(c *gin.Context) {
	var req models.TimeBandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid time-band request", err)
		return
	}

	result, err := h.service.TimeBands(req)
	if err != nil {
		if errors.Is(err, repository.ErrSkimNotFound) {
			response.NotFound(c, "Skim not loaded", err)
			return
		}
		response.InternalError(c, "Failed to compute time bands", err)
		return
	}

	response.Success(c, result)
}
