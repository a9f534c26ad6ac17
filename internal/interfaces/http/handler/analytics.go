package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	appanalytics "github.com/pharmalitics/backend/internal/application/analytics"
)

// AnalyticsHandler handles analytics API endpoints
type AnalyticsHandler struct {
	BaseHandler
	analytics *appanalytics.AnalyticsService
}

// NewAnalyticsHandler creates a new AnalyticsHandler
func NewAnalyticsHandler(analytics *appanalytics.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics}
}

// RegisterRoutes registers analytics routes
func (h *AnalyticsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	analytics := rg.Group("/analytics")
	{
		analytics.GET("/summary", h.Summary)
		analytics.GET("/sales-over-time", h.SalesOverTime)
		analytics.GET("/market-share", h.MarketShare)
		analytics.GET("/top-products", h.TopProducts)
		analytics.GET("/customers", h.Customers)
		analytics.GET("/revenue", h.Revenue)
		analytics.GET("/seasonality", h.Seasonality)
		analytics.GET("/growth", h.Growth)
	}
}

// bindRange binds the start_date/end_date query parameters
func (h *AnalyticsHandler) bindRange(c *gin.Context) (appanalytics.RangeRequest, bool) {
	var req appanalytics.RangeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return req, false
	}
	return req, true
}

// Summary returns the range KPIs
func (h *AnalyticsHandler) Summary(c *gin.Context) {
	req, ok := h.bindRange(c)
	if !ok {
		return
	}

	summary, err := h.analytics.GetSummary(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// SalesOverTime returns the bucketed sales series
func (h *AnalyticsHandler) SalesOverTime(c *gin.Context) {
	req, ok := h.bindRange(c)
	if !ok {
		return
	}

	series, err := h.analytics.GetSalesOverTime(c.Request.Context(), req, c.Query("period"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, series)
}

// MarketShare returns the share breakdown for a dimension
func (h *AnalyticsHandler) MarketShare(c *gin.Context) {
	req, ok := h.bindRange(c)
	if !ok {
		return
	}

	shares, err := h.analytics.GetMarketShare(c.Request.Context(), req, c.Query("group_by"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, shares)
}

// TopProducts returns the product ranking for a metric
func (h *AnalyticsHandler) TopProducts(c *gin.Context) {
	req, ok := h.bindRange(c)
	if !ok {
		return
	}

	limit := 10
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			h.BadRequest(c, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	ranks, err := h.analytics.GetTopProducts(c.Request.Context(), req, c.Query("metric"), limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, ranks)
}

// Customers returns the segmented customer analysis
func (h *AnalyticsHandler) Customers(c *gin.Context) {
	req, ok := h.bindRange(c)
	if !ok {
		return
	}

	analysis, err := h.analytics.GetCustomerAnalysis(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, analysis)
}

// Revenue returns the per-bucket gross/net/discount breakdown
func (h *AnalyticsHandler) Revenue(c *gin.Context) {
	req, ok := h.bindRange(c)
	if !ok {
		return
	}

	revenue, err := h.analytics.GetRevenueAnalysis(c.Request.Context(), req, c.Query("group_by"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, revenue)
}

// Seasonality returns weekday and month averages
func (h *AnalyticsHandler) Seasonality(c *gin.Context) {
	req, ok := h.bindRange(c)
	if !ok {
		return
	}

	season, err := h.analytics.GetSeasonality(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, season)
}

// Growth returns the half-over-half growth rate
func (h *AnalyticsHandler) Growth(c *gin.Context) {
	req, ok := h.bindRange(c)
	if !ok {
		return
	}

	growth, err := h.analytics.GetGrowthRate(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, growth)
}
