package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	inventoryapp "github.com/retailpos/backend/internal/application/inventory"
	storeapp "github.com/retailpos/backend/internal/application/store"
)

// InventoryHandler handles stock adjustments and stock level queries
type InventoryHandler struct {
	BaseHandler
	inventoryService *inventoryapp.InventoryService
	settingsService  *storeapp.SettingsService
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(inventoryService *inventoryapp.InventoryService, settingsService *storeapp.SettingsService) *InventoryHandler {
	return &InventoryHandler{
		inventoryService: inventoryService,
		settingsService:  settingsService,
	}
}

// RegisterRoutes registers inventory routes
func (h *InventoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	inv := rg.Group("/inventory")
	{
		inv.POST("/adjustments", h.Adjust)
		inv.GET("/adjustments", h.History)
		inv.GET("/status/:id", h.Status)
		inv.GET("/low-stock", h.LowStock)
	}
}

// Adjust applies a manual stock adjustment and records it in the audit trail
func (h *InventoryHandler) Adjust(c *gin.Context) {
	actorID, err := getActorID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req inventoryapp.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request format: "+err.Error())
		return
	}

	result, err := h.inventoryService.AdjustStock(c.Request.Context(), actorID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// History returns the adjustment audit trail
func (h *InventoryHandler) History(c *gin.Context) {
	var filter inventoryapp.AdjustmentListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	adjustments, total, err := h.inventoryService.History(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, adjustments, total, filter.Page, filter.PageSize)
}

// Status returns the stock level classification for one product
func (h *InventoryHandler) Status(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	status, err := h.inventoryService.Status(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, status)
}

// LowStock lists products at or below the threshold. The store-wide
// threshold from settings applies unless the query overrides it.
func (h *InventoryHandler) LowStock(c *gin.Context) {
	threshold, err := h.resolveThreshold(c)
	if err != nil {
		h.BadRequest(c, "Invalid threshold")
		return
	}

	statuses, err := h.inventoryService.ListLowStock(c.Request.Context(), threshold)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, statuses)
}

func (h *InventoryHandler) resolveThreshold(c *gin.Context) (int, error) {
	if raw := c.Query("threshold"); raw != "" {
		return strconv.Atoi(raw)
	}

	settings, err := h.settingsService.Get(c.Request.Context())
	if err != nil {
		return 0, err
	}
	return settings.LowStockThreshold, nil
}
