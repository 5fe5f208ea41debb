package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/lagoslab/accessibility-backend-go/internal/service"
	"github.com/lagoslab/accessibility-backend-go/pkg/response"
)

// ZoneHandler handles HTTP requests for the zone table
type ZoneHandler struct {
	service *service.ZoneService
}

// NewZoneHandler creates a new zone handler
func NewZoneHandler(service *service.ZoneService) *ZoneHandler {
	return &ZoneHandler{service: service}
}

// GetZones handles GET /api/v1/zones
func (h *ZoneHandler) GetZones(c *gin.Context) {
	table, err := h.service.ZoneTable()
	if err != nil {
		response.InternalError(c, "Failed to load zones", err)
		return
	}

	attributes, err := h.service.Attributes()
	if err != nil {
		response.InternalError(c, "Failed to list attributes", err)
		return
	}

	response.Success(c, gin.H{
		"zones":      table.Zones(),
		"count":      table.Len(),
		"attributes": attributes,
	})
}

// GetBounds handles GET /api/v1/zones/bounds
func (h *ZoneHandler) GetBounds(c *gin.Context) {
	bounds, err := h.service.Bounds()
	if err != nil {
		response.InternalError(c, "Failed to derive zone bounds", err)
		return
	}
	response.Success(c, bounds)
}
