package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/retailpos/backend/internal/infrastructure/persistence"
)

// SystemHandler handles health and liveness endpoints
type SystemHandler struct {
	BaseHandler
	db        *persistence.Database
	startedAt time.Time
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(db *persistence.Database) *SystemHandler {
	return &SystemHandler{db: db, startedAt: time.Now()}
}

// RegisterRoutes registers system routes
func (h *SystemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", h.Health)
}

// Health reports service and database health
func (h *SystemHandler) Health(c *gin.Context) {
	status := "healthy"
	dbStatus := "up"
	httpStatus := http.StatusOK

	if err := h.db.Ping(); err != nil {
		status = "degraded"
		dbStatus = "down"
		httpStatus = http.StatusServiceUnavailable
	}

	c.JSON(httpStatus, gin.H{
		"status":    status,
		"database":  dbStatus,
		"uptime":    time.Since(h.startedAt).Round(time.Second).String(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
