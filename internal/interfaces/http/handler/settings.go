package handler

import (
	"github.com/gin-gonic/gin"

	storeapp "github.com/retailpos/backend/internal/application/store"
	"github.com/retailpos/backend/internal/interfaces/http/middleware"
)

// SettingsHandler handles store settings endpoints
type SettingsHandler struct {
	BaseHandler
	settingsService *storeapp.SettingsService
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(settingsService *storeapp.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// RegisterRoutes registers settings routes
func (h *SettingsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	settings := rg.Group("/settings")
	{
		settings.GET("", h.Get)
		settings.PUT("", middleware.RequireAdmin(), h.Update)
	}
}

// Get returns the store settings
func (h *SettingsHandler) Get(c *gin.Context) {
	settings, err := h.settingsService.Get(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, settings)
}

// Update replaces the store settings
func (h *SettingsHandler) Update(c *gin.Context) {
	var req storeapp.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request format: "+err.Error())
		return
	}

	settings, err := h.settingsService.Update(c.Request.Context(), &req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, settings)
}
