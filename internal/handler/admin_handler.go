package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lagoslab/accessibility-backend-go/internal/models"
	"github.com/lagoslab/accessibility-backend-go/internal/service"
	"github.com/lagoslab/accessibility-backend-go/internal/skim"
	"github.com/lagoslab/accessibility-backend-go/pkg/response"
)

// AdminHandler handles the data-import endpoints used to seed zones, the
// node-to-zone mapping and the base skim
type AdminHandler struct {
	zones     *service.ZoneService
	scenarios *service.ScenarioService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(zones *service.ZoneService, scenarios *service.ScenarioService) *AdminHandler {
	return &AdminHandler{zones: zones, scenarios: scenarios}
}

// ImportZones handles POST /api/v1/admin/zones
func (h *AdminHandler) ImportZones(c *gin.Context) {
	var req struct {
		Zones []models.Zone `json:"zones" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid zone table", err)
		return
	}

	if err := h.zones.ImportZones(req.Zones); err != nil {
		response.InternalError(c, "Failed to import zones", err)
		return
	}
	response.Success(c, gin.H{"imported": len(req.Zones)})
}

// ImportMapping handles POST /api/v1/admin/node-mapping
func (h *AdminHandler) ImportMapping(c *gin.Context) {
	var req struct {
		Pairs []skim.NodeZonePair `json:"pairs" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid node mapping", err)
		return
	}

	if err := h.scenarios.ImportMapping(req.Pairs); err != nil {
		response.InternalError(c, "Failed to import node mapping", err)
		return
	}
	response.Success(c, gin.H{"imported": len(req.Pairs)})
}

// ImportBaseSkim handles POST /api/v1/admin/base-skim
func (h *AdminHandler) ImportBaseSkim(c *gin.Context) {
	var req struct {
		Rows []models.RawSkimEntry `json:"rows" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid base skim", err)
		return
	}

	stats, err := h.scenarios.ImportBaseSkim(req.Rows)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoMapping):
			response.Error(c, http.StatusConflict, "Node-to-zone mapping not loaded", err)
		case errors.Is(err, service.ErrUploadTooLarge):
			response.Error(c, http.StatusRequestEntityTooLarge, "Base skim too large", err)
		default:
			response.InternalError(c, "Failed to import base skim", err)
		}
		return
	}
	response.Success(c, gin.H{"dropped_rows": stats})
}
