package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	appanalytics "github.com/pharmalitics/backend/internal/application/analytics"
	appledger "github.com/pharmalitics/backend/internal/application/ledger"
	appreport "github.com/pharmalitics/backend/internal/application/report"
	"github.com/pharmalitics/backend/internal/infrastructure/persistence"
	"github.com/pharmalitics/backend/internal/interfaces/http/handler"
	"github.com/pharmalitics/backend/internal/interfaces/http/middleware"
	"github.com/pharmalitics/backend/internal/interfaces/http/router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAPIServer(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(middleware.RequestID())

	statsRepo := persistence.NewGormStatsRepository(db)
	router.NewRouter(engine).
		Register(handler.NewSaleHandler(appledger.NewSaleService(persistence.NewGormSaleRepository(db)))).
		Register(handler.NewAnalyticsHandler(appanalytics.NewAnalyticsService(statsRepo))).
		Register(handler.NewReportHandler(appreport.NewReportService(statsRepo), nil)).
		Setup()
	return engine
}

func postSale(t *testing.T, srv *gin.Engine, payload map[string]any) {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/sales", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	srv.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestSalesToAnalyticsFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := NewTestDB(t)
	srv := newAPIServer(tdb.DB)

	postSale(t, srv, map[string]any{
		"product_name":     "Amoxicillin 500mg",
		"product_category": "Antibiotic",
		"quantity":         10,
		"unit_price":       12.5,
		"discount":         5,
		"pharmacy_name":    "Central Pharmacy",
	})
	postSale(t, srv, map[string]any{
		"product_name":     "Ibuprofen 400mg",
		"product_category": "Analgesic",
		"quantity":         4,
		"unit_price":       8,
		"pharmacy_name":    "Riverside Pharmacy",
	})

	w := httptest.NewRecorder()
	srv.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/analytics/summary", nil))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			TotalRevenue     float64 `json:"total_revenue"`
			TransactionCount int64   `json:"transaction_count"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	// 10*12.5-5 + 4*8 = 152
	assert.InDelta(t, 152.0, resp.Data.TotalRevenue, 0.001)
	assert.Equal(t, int64(2), resp.Data.TransactionCount)
}

func TestReportExportFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := NewTestDB(t)
	srv := newAPIServer(tdb.DB)

	postSale(t, srv, map[string]any{
		"product_name":     "Amoxicillin 500mg",
		"product_category": "Antibiotic",
		"quantity":         10,
		"unit_price":       12.5,
		"pharmacy_name":    "Central Pharmacy",
	})

	w := httptest.NewRecorder()
	srv.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/reports/executive-summary?format=csv", nil))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".csv")
	assert.Contains(t, w.Body.String(), "Executive Summary")
	assert.Contains(t, w.Body.String(), "Amoxicillin 500mg")
}
