package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/pharmalitics/backend/internal/application/ledger"
)

// PharmacyHandler handles pharmacy directory API endpoints
type PharmacyHandler struct {
	BaseHandler
	pharmacies *ledger.PharmacyService
}

// NewPharmacyHandler creates a new PharmacyHandler
func NewPharmacyHandler(pharmacies *ledger.PharmacyService) *PharmacyHandler {
	return &PharmacyHandler{pharmacies: pharmacies}
}

// RegisterRoutes registers pharmacy routes
func (h *PharmacyHandler) RegisterRoutes(rg *gin.RouterGroup) {
	pharmacies := rg.Group("/pharmacies")
	{
		pharmacies.POST("", h.Create)
		pharmacies.GET("", h.List)
		pharmacies.GET("/:id", h.Get)
		pharmacies.PUT("/:id", h.Update)
		pharmacies.DELETE("/:id", h.Delete)
	}
}

// Create registers a new pharmacy
func (h *PharmacyHandler) Create(c *gin.Context) {
	var req ledger.CreatePharmacyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	pharmacy, err := h.pharmacies.CreatePharmacy(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, pharmacy)
}

// Get returns one pharmacy by ID
func (h *PharmacyHandler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "invalid pharmacy ID")
		return
	}

	pharmacy, err := h.pharmacies.GetPharmacy(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, pharmacy)
}

// Update applies a partial update to a pharmacy
func (h *PharmacyHandler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "invalid pharmacy ID")
		return
	}

	var req ledger.UpdatePharmacyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	pharmacy, err := h.pharmacies.UpdatePharmacy(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, pharmacy)
}

// Delete deactivates a pharmacy
func (h *PharmacyHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "invalid pharmacy ID")
		return
	}

	if err := h.pharmacies.DeletePharmacy(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// List returns a page of the pharmacy directory
func (h *PharmacyHandler) List(c *gin.Context) {
	var q pageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.pharmacies.ListPharmacies(c.Request.Context(), q.Offset, q.Limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Offset, page.Limit)
}
