package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lagoslab/accessibility-backend-go/internal/models"
	"github.com/lagoslab/accessibility-backend-go/internal/repository"
	"github.com/lagoslab/accessibility-backend-go/internal/service"
	"github.com/lagoslab/accessibility-backend-go/pkg/response"
)

// ScenarioHandler handles HTTP requests for scenario skim management
type ScenarioHandler struct {
	service *service.ScenarioService
}

// NewScenarioHandler creates a new scenario handler
func NewScenarioHandler(service *service.ScenarioService) *ScenarioHandler {
	return &ScenarioHandler{service: service}
}

// scenarioUpload is the body of a scenario upload: raw node-level rows
// as produced by the client-side file loader
type scenarioUpload struct {
	Name string                `json:"name" binding:"required"`
	Rows []models.RawSkimEntry `json:"rows" binding:"required"`
}

// Upload handles POST /api/v1/scenarios
func (h *ScenarioHandler) Upload(c *gin.Context) {
	var req scenarioUpload
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid scenario upload", err)
		return
	}

	stats, err := h.service.UploadScenario(req.Name, req.Rows)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidScenarioName):
			response.BadRequest(c, "Invalid scenario name", err)
		case errors.Is(err, service.ErrUploadTooLarge):
			response.Error(c, http.StatusRequestEntityTooLarge, "Scenario too large", err)
		case errors.Is(err, service.ErrNoMapping):
			response.Error(c, http.StatusConflict, "Node-to-zone mapping not loaded", err)
		default:
			response.InternalError(c, "Failed to store scenario", err)
		}
		return
	}

	response.Success(c, gin.H{
		"name":         req.Name,
		"dropped_rows": stats,
	})
}

// List handles GET /api/v1/scenarios
func (h *ScenarioHandler) List(c *gin.Context) {
	scenarios, err := h.service.List()
	if err != nil {
		response.InternalError(c, "Failed to list scenarios", err)
		return
	}
	response.Success(c, gin.H{
		"scenarios": scenarios,
		"count":     len(scenarios),
	})
}

// Delete handles DELETE /api/v1/scenarios/:name
func (h *ScenarioHandler) Delete(c *gin.Context) {
	name := c.Param("name")
	if err := h.service.Delete(name); err != nil {
		if errors.Is(err, repository.ErrSkimNotFound) {
			response.NotFound(c, "Scenario not found", err)
			return
		}
		response.InternalError(c, "Failed to delete scenario", err)
		return
	}
	response.Success(c, gin.H{"deleted": name})
}
