package handler

import (
	"github.com/gin-gonic/gin"

	salesapp "github.com/retailpos/backend/internal/application/sales"
)

// SalesHandler handles checkout and the sales ledger
type SalesHandler struct {
	BaseHandler
	checkoutService *salesapp.CheckoutService
}

// NewSalesHandler creates a new SalesHandler
func NewSalesHandler(checkoutService *salesapp.CheckoutService) *SalesHandler {
	return &SalesHandler{checkoutService: checkoutService}
}

// RegisterRoutes registers sales routes
func (h *SalesHandler) RegisterRoutes(rg *gin.RouterGroup) {
	sales := rg.Group("/sales")
	{
		sales.POST("/checkout", h.Checkout)
		sales.GET("", h.List)
		sales.GET("/:id", h.Get)
	}
}

// Checkout prices the submitted cart, records the sale and decrements stock
func (h *SalesHandler) Checkout(c *gin.Context) {
	cashierID, err := getActorID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req salesapp.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request format: "+err.Error())
		return
	}

	result, err := h.checkoutService.Checkout(c.Request.Context(), cashierID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// List returns recorded sales, optionally restricted to a date window
func (h *SalesHandler) List(c *gin.Context) {
	var filter salesapp.TransactionListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	transactions, total, err := h.checkoutService.ListTransactions(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, transactions, total, filter.Page, filter.PageSize)
}

// Get returns a single sale with its lines
func (h *SalesHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid transaction ID")
		return
	}

	transaction, err := h.checkoutService.GetTransaction(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, transaction)
}
