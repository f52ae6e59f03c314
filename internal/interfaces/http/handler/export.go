package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	exportapp "github.com/retailpos/backend/internal/application/export"
	"github.com/retailpos/backend/internal/interfaces/http/middleware"
)

// ExportHandler produces downloadable backups and CSV extracts
type ExportHandler struct {
	BaseHandler
	exportService *exportapp.ExportService
}

// NewExportHandler creates a new ExportHandler
func NewExportHandler(exportService *exportapp.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

// RegisterRoutes registers export routes, admin only
func (h *ExportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	export := rg.Group("/export", middleware.RequireAdmin())
	{
		export.GET("/backup", h.Backup)
		export.GET("/sales.csv", h.SalesCSV)
		export.GET("/inventory.csv", h.InventoryCSV)
		export.GET("/customers.csv", h.CustomersCSV)
	}
}

// Backup streams a full JSON backup of the store
func (h *ExportHandler) Backup(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.exportService.WriteBackup(c.Request.Context(), &buf); err != nil {
		h.HandleError(c, err)
		return
	}

	h.sendDownload(c, "application/json", fmt.Sprintf("backup-%s.json", time.Now().Format("2006-01-02")), buf.Bytes())
}

// SalesCSV streams sale lines for a date range as CSV
func (h *ExportHandler) SalesCSV(c *gin.Context) {
	from, to, ok := h.exportRange(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := h.exportService.WriteSalesCSV(c.Request.Context(), &buf, from, to); err != nil {
		h.HandleError(c, err)
		return
	}

	h.sendDownload(c, "text/csv", fmt.Sprintf("sales-%s-%s.csv", from.Format("2006-01-02"), to.Format("2006-01-02")), buf.Bytes())
}

// InventoryCSV streams the current stock position as CSV
func (h *ExportHandler) InventoryCSV(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.exportService.WriteInventoryCSV(c.Request.Context(), &buf); err != nil {
		h.HandleError(c, err)
		return
	}

	h.sendDownload(c, "text/csv", fmt.Sprintf("inventory-%s.csv", time.Now().Format("2006-01-02")), buf.Bytes())
}

// CustomersCSV streams the customer book as CSV
func (h *ExportHandler) CustomersCSV(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.exportService.WriteCustomersCSV(c.Request.Context(), &buf); err != nil {
		h.HandleError(c, err)
		return
	}

	h.sendDownload(c, "text/csv", fmt.Sprintf("customers-%s.csv", time.Now().Format("2006-01-02")), buf.Bytes())
}

// exportRange reads from/to query parameters, defaulting to the last 30 days
func (h *ExportHandler) exportRange(c *gin.Context) (time.Time, time.Time, bool) {
	now := time.Now()
	from := now.AddDate(0, 0, -30)
	to := now

	if raw := c.Query("from"); raw != "" {
		parsed, err := time.ParseInLocation(dateLayout, raw, now.Location())
		if err != nil {
			h.BadRequest(c, "Invalid 'from' date, expected YYYY-MM-DD")
			return time.Time{}, time.Time{}, false
		}
		from = parsed
	}

	if raw := c.Query("to"); raw != "" {
		parsed, err := time.ParseInLocation(dateLayout, raw, now.Location())
		if err != nil {
			h.BadRequest(c, "Invalid 'to' date, expected YYYY-MM-DD")
			return time.Time{}, time.Time{}, false
		}
		to = parsed.Add(24*time.Hour - time.Nanosecond)
	}

	return from, to, true
}

func (h *ExportHandler) sendDownload(c *gin.Context, contentType, filename string, body []byte) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, body)
}
