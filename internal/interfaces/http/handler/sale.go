package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/pharmalitics/backend/internal/application/ledger"
)

// SaleHandler handles sales ledger API endpoints
type SaleHandler struct {
	BaseHandler
	sales *ledger.SaleService
}

// NewSaleHandler creates a new SaleHandler
func NewSaleHandler(sales *ledger.SaleService) *SaleHandler {
	return &SaleHandler{sales: sales}
}

// RegisterRoutes registers sale routes
func (h *SaleHandler) RegisterRoutes(rg *gin.RouterGroup) {
	sales := rg.Group("/sales")
	{
		sales.POST("", h.Create)
		sales.GET("", h.List)
		sales.GET("/:id", h.Get)
		sales.PUT("/:id", h.Update)
		sales.DELETE("/:id", h.Delete)
	}
}

// Create records a new sale
func (h *SaleHandler) Create(c *gin.Context) {
	var req ledger.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	sale, err := h.sales.CreateSale(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, sale)
}

// Get returns one sale by ID
func (h *SaleHandler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "invalid sale ID")
		return
	}

	sale, err := h.sales.GetSale(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sale)
}

// Update applies a partial update to a sale
func (h *SaleHandler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "invalid sale ID")
		return
	}

	var req ledger.UpdateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	sale, err := h.sales.UpdateSale(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sale)
}

// Delete deactivates a sale
func (h *SaleHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "invalid sale ID")
		return
	}

	if err := h.sales.DeleteSale(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// List returns a filtered page of the sales ledger
func (h *SaleHandler) List(c *gin.Context) {
	var req ledger.ListSalesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.sales.ListSales(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Offset, page.Limit)
}
