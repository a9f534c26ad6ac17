package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	appanalytics "github.com/pharmalitics/backend/internal/application/analytics"
	"github.com/pharmalitics/backend/internal/application/report"
	"github.com/pharmalitics/backend/internal/domain/analytics"
	"github.com/pharmalitics/backend/internal/infrastructure/export"
	"github.com/pharmalitics/backend/internal/interfaces/http/dto"
)

// Export format query values
const (
	formatJSON  = "json"
	formatCSV   = "csv"
	formatExcel = "excel"
	formatPDF   = "pdf"
)

// ReportHandler handles report API endpoints, including export rendering
type ReportHandler struct {
	BaseHandler
	reports *report.ReportService
	csv     *export.CSVRenderer
	excel   *export.ExcelRenderer
	pdf     export.PDFRenderer
}

// NewReportHandler creates a new ReportHandler. pdf may be nil when PDF
// rendering is disabled.
func NewReportHandler(reports *report.ReportService, pdf export.PDFRenderer) *ReportHandler {
	return &ReportHandler{
		reports: reports,
		csv:     export.NewCSVRenderer(),
		excel:   export.NewExcelRenderer(),
		pdf:     pdf,
	}
}

// RegisterRoutes registers report routes
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reports := rg.Group("/reports")
	{
		reports.GET("/executive-summary", h.ExecutiveSummary)
		reports.GET("/sales", h.Sales)
		reports.GET("/products", h.Products)
		reports.GET("/customers", h.Customers)
		reports.GET("/monthly/:year/:month", h.Monthly)
		reports.GET("/compare", h.Compare)
	}
}

// bindRange resolves the start_date/end_date query parameters
func (h *ReportHandler) bindRange(c *gin.Context) (analytics.DateRange, bool) {
	var req appanalytics.RangeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return analytics.DateRange{}, false
	}

	rng, err := req.Resolve()
	if err != nil {
		h.HandleError(c, err)
		return analytics.DateRange{}, false
	}
	return rng, true
}

// deliver sends the document in the requested format, or the JSON payload
// when no export format is requested
func (h *ReportHandler) deliver(c *gin.Context, payload any, doc *export.Document, baseName string) {
	switch strings.ToLower(c.DefaultQuery("format", formatJSON)) {
	case formatJSON:
		h.Success(c, payload)
	case formatCSV:
		data, err := h.csv.Render(doc)
		if err != nil {
			h.Error(c, http.StatusInternalServerError, dto.ErrCodeExportFailed, err.Error())
			return
		}
		h.sendFile(c, data, h.csv.ContentType(), baseName+"."+h.csv.Extension())
	case formatExcel:
		data, err := h.excel.Render(doc)
		if err != nil {
			h.Error(c, http.StatusInternalServerError, dto.ErrCodeExportFailed, err.Error())
			return
		}
		h.sendFile(c, data, h.excel.ContentType(), baseName+"."+h.excel.Extension())
	case formatPDF:
		if h.pdf == nil {
			h.Error(c, http.StatusNotImplemented, dto.ErrCodeExportUnavailable, "PDF rendering is not enabled")
			return
		}
		data, err := h.pdf.RenderPDF(c.Request.Context(), doc)
		if err != nil {
			h.Error(c, http.StatusInternalServerError, dto.ErrCodeExportFailed, err.Error())
			return
		}
		h.sendFile(c, data, "application/pdf", baseName+".pdf")
	default:
		h.BadRequest(c, "format must be one of json, csv, excel, pdf")
	}
}

func (h *ReportHandler) sendFile(c *gin.Context, data []byte, contentType, filename string) {
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, contentType, data)
}

func exportName(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, time.Now().Format("20060102"))
}

// ExecutiveSummary returns the headline report
func (h *ReportHandler) ExecutiveSummary(c *gin.Context) {
	rng, ok := h.bindRange(c)
	if !ok {
		return
	}

	result, err := h.reports.ExecutiveSummary(c.Request.Context(), rng)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.deliver(c, result, report.ExecutiveSummaryDocument(result), exportName("executive-summary"))
}

// Sales returns the detailed sales report
func (h *ReportHandler) Sales(c *gin.Context) {
	rng, ok := h.bindRange(c)
	if !ok {
		return
	}
	period := analytics.Period(c.Query("period")).Normalize()

	result, err := h.reports.DetailedReport(c.Request.Context(), rng, period)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.deliver(c, result, report.DetailedReportDocument(result), exportName("sales-report"))
}

// Products returns the product performance report
func (h *ReportHandler) Products(c *gin.Context) {
	rng, ok := h.bindRange(c)
	if !ok {
		return
	}

	result, err := h.reports.ProductReport(c.Request.Context(), rng)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.deliver(c, result, report.ProductReportDocument(result), exportName("product-report"))
}

// Customers returns the customer analysis report
func (h *ReportHandler) Customers(c *gin.Context) {
	rng, ok := h.bindRange(c)
	if !ok {
		return
	}

	result, err := h.reports.CustomerReport(c.Request.Context(), rng)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.deliver(c, result, report.CustomerReportDocument(result), exportName("customer-report"))
}

// Monthly returns the calendar month digest
func (h *ReportHandler) Monthly(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		h.BadRequest(c, "year must be an integer")
		return
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil {
		h.BadRequest(c, "month must be an integer")
		return
	}

	result, err := h.reports.MonthlyReport(c.Request.Context(), year, month)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	h.deliver(c, result, report.MonthlyReportDocument(result),
		fmt.Sprintf("monthly-report-%04d-%02d", year, month))
}

// compareQuery carries the two ranges of a comparative report
type compareQuery struct {
	StartA time.Time `form:"start_a" time_format:"2006-01-02" binding:"required"`
	EndA   time.Time `form:"end_a" time_format:"2006-01-02" binding:"required"`
	StartB time.Time `form:"start_b" time_format:"2006-01-02" binding:"required"`
	EndB   time.Time `form:"end_b" time_format:"2006-01-02" binding:"required"`
}

// Compare returns the comparative report for two ranges
func (h *ReportHandler) Compare(c *gin.Context) {
	var q compareQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	rangeA, err := analytics.ResolveRange(q.StartA, q.EndA)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	rangeB, err := analytics.ResolveRange(q.StartB, q.EndB)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	result, err := h.reports.CompareReport(c.Request.Context(), rangeA, rangeB)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.deliver(c, result, report.CompareReportDocument(result), exportName("comparative-report"))
}
