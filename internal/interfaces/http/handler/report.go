package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	reportapp "github.com/retailpos/backend/internal/application/report"
)

const dateLayout = "2006-01-02"

// ReportHandler handles sales analytics endpoints
type ReportHandler struct {
	BaseHandler
	reportService *reportapp.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *reportapp.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// RegisterRoutes registers report routes
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reports := rg.Group("/reports")
	{
		reports.GET("/summary", h.Summary)
		reports.GET("/top-products", h.TopProducts)
		reports.GET("/dashboard", h.Dashboard)
	}
}

// Summary returns aggregated sales figures for a date range
func (h *ReportHandler) Summary(c *gin.Context) {
	start, end, ok := h.dateRange(c)
	if !ok {
		return
	}

	summary, err := h.reportService.SalesSummary(c.Request.Context(), start, end)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, summary)
}

// TopProducts returns best sellers for a date range. An optional limit
// query parameter caps the ranking length.
func (h *ReportHandler) TopProducts(c *gin.Context) {
	start, end, ok := h.dateRange(c)
	if !ok {
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			h.BadRequest(c, "Invalid 'limit', expected a positive integer")
			return
		}
		limit = parsed
	}

	products, err := h.reportService.TopProducts(c.Request.Context(), start, end, limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, products)
}

// Dashboard returns the at-a-glance store overview
func (h *ReportHandler) Dashboard(c *gin.Context) {
	dashboard, err := h.reportService.Dashboard(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dashboard)
}

// dateRange reads from/to query parameters. With no parameters the range
// covers the current day.
func (h *ReportHandler) dateRange(c *gin.Context) (time.Time, time.Time, bool) {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	end := now

	if raw := c.Query("from"); raw != "" {
		parsed, err := time.ParseInLocation(dateLayout, raw, now.Location())
		if err != nil {
			h.BadRequest(c, "Invalid 'from' date, expected YYYY-MM-DD")
			return time.Time{}, time.Time{}, false
		}
		start = parsed
	}

	if raw := c.Query("to"); raw != "" {
		parsed, err := time.ParseInLocation(dateLayout, raw, now.Location())
		if err != nil {
			h.BadRequest(c, "Invalid 'to' date, expected YYYY-MM-DD")
			return time.Time{}, time.Time{}, false
		}
		end = parsed.Add(24*time.Hour - time.Nanosecond)
	}

	if end.Before(start) {
		h.BadRequest(c, "'to' must not be before 'from'")
		return time.Time{}, time.Time{}, false
	}

	return start, end, true
}
