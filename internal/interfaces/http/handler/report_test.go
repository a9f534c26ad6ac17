package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pharmalitics/backend/internal/application/report"
	"github.com/pharmalitics/backend/internal/domain/analytics"
	"github.com/pharmalitics/backend/internal/interfaces/http/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockStatsRepo struct {
	mock.Mock
}

func (m *mockStatsRepo) PerformanceSummary(ctx context.Context, r analytics.DateRange) (*analytics.PerformanceSummary, error) {
	args := m.Called(ctx, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*analytics.PerformanceSummary), args.Error(1)
}

func (m *mockStatsRepo) SalesOverTime(ctx context.Context, r analytics.DateRange, period analytics.Period) ([]analytics.TimeBucket, error) {
	args := m.Called(ctx, r, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]analytics.TimeBucket), args.Error(1)
}

func (m *mockStatsRepo) MarketShare(ctx context.Context, r analytics.DateRange, group analytics.ShareGroup) ([]analytics.MarketShare, error) {
	args := m.Called(ctx, r, group)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]analytics.MarketShare), args.Error(1)
}

func (m *mockStatsRepo) TopProducts(ctx context.Context, r analytics.DateRange, metric analytics.RankMetric, limit int) ([]analytics.ProductRank, error) {
	args := m.Called(ctx, r, metric, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]analytics.ProductRank), args.Error(1)
}

func (m *mockStatsRepo) CustomerStats(ctx context.Context, r analytics.DateRange) ([]analytics.CustomerStat, error) {
	args := m.Called(ctx, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]analytics.CustomerStat), args.Error(1)
}

func (m *mockStatsRepo) RevenueBreakdown(ctx context.Context, r analytics.DateRange, period analytics.Period) ([]analytics.RevenueBreakdown, error) {
	args := m.Called(ctx, r, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]analytics.RevenueBreakdown), args.Error(1)
}

func (m *mockStatsRepo) Seasonality(ctx context.Context, r analytics.DateRange) (*analytics.Seasonality, error) {
	args := m.Called(ctx, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*analytics.Seasonality), args.Error(1)
}

func (m *mockStatsRepo) TotalRevenue(ctx context.Context, r analytics.DateRange) (decimal.Decimal, error) {
	args := m.Called(ctx, r)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *mockStatsRepo) DistinctPharmacies(ctx context.Context, r analytics.DateRange) ([]string, error) {
	args := m.Called(ctx, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockStatsRepo) CustomerCategories(ctx context.Context, r analytics.DateRange, pharmacy string) ([]string, error) {
	args := m.Called(ctx, r, pharmacy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func newReportRouter(repo *mockStatsRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	api := engine.Group("/api/v1")
	NewReportHandler(report.NewReportService(repo), nil).RegisterRoutes(api)
	return engine
}

func stubMonthly(repo *mockStatsRepo) {
	repo.On("PerformanceSummary", mock.Anything, mock.AnythingOfType("analytics.DateRange")).
		Return(&analytics.PerformanceSummary{
			TotalRevenue:     decimal.NewFromInt(9000),
			TotalQuantity:    900,
			TransactionCount: 90,
			AvgTransaction:   decimal.NewFromInt(100),
		}, nil)
	repo.On("SalesOverTime", mock.Anything, mock.AnythingOfType("analytics.DateRange"), analytics.PeriodDay).
		Return([]analytics.TimeBucket{}, nil)
	repo.On("TopProducts", mock.Anything, mock.AnythingOfType("analytics.DateRange"), analytics.MetricRevenue, 10).
		Return([]analytics.ProductRank{
			{Rank: 1, ProductName: "Amoxicillin 500mg", Category: "Antibiotic", Revenue: decimal.NewFromInt(5000)},
		}, nil)
}

func TestReportHandlerMonthlyJSON(t *testing.T) {
	repo := new(mockStatsRepo)
	stubMonthly(repo)
	router := newReportRouter(repo)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/reports/monthly/2025/6", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	data := resp.Data.(map[string]any)
	assert.Equal(t, 2025.0, data["year"])
	assert.Equal(t, 6.0, data["month"])
}

func TestReportHandlerMonthlyCSVExport(t *testing.T) {
	repo := new(mockStatsRepo)
	stubMonthly(repo)
	router := newReportRouter(repo)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/reports/monthly/2025/6?format=csv", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "monthly-report-2025-06.csv")
	assert.Contains(t, w.Body.String(), "Monthly Report 2025-06")
	assert.Contains(t, w.Body.String(), "Amoxicillin 500mg")
}

func TestReportHandlerMonthlyExcelExport(t *testing.T) {
	repo := new(mockStatsRepo)
	stubMonthly(repo)
	router := newReportRouter(repo)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/reports/monthly/2025/6?format=excel", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "monthly-report-2025-06.xlsx")
	assert.NotEmpty(t, w.Body.Bytes())
}

func TestReportHandlerMonthlyRejectsBadMonth(t *testing.T) {
	router := newReportRouter(new(mockStatsRepo))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/reports/monthly/2025/13", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReportHandlerPDFDisabled(t *testing.T) {
	repo := new(mockStatsRepo)
	stubMonthly(repo)
	router := newReportRouter(repo)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/reports/monthly/2025/6?format=pdf", nil))

	require.Equal(t, http.StatusNotImplemented, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, dto.ErrCodeExportUnavailable, resp.Error.Code)
}

func TestReportHandlerUnknownFormat(t *testing.T) {
	repo := new(mockStatsRepo)
	stubMonthly(repo)
	router := newReportRouter(repo)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/reports/monthly/2025/6?format=docx", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReportHandlerCompareRequiresBothRanges(t *testing.T) {
	router := newReportRouter(new(mockStatsRepo))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/reports/compare?start_a=2025-01-01", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReportHandlerCompare(t *testing.T) {
	repo := new(mockStatsRepo)
	repo.On("PerformanceSummary", mock.Anything, mock.AnythingOfType("analytics.DateRange")).
		Return(&analytics.PerformanceSummary{
			TotalRevenue:   decimal.NewFromInt(10000),
			AvgTransaction: decimal.NewFromInt(100),
		}, nil)
	router := newReportRouter(repo)

	url := "/api/v1/reports/compare?start_a=2025-01-01&end_a=2025-03-31&start_b=2025-04-01&end_b=2025-06-30"
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, url, nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "period_a"))
}
