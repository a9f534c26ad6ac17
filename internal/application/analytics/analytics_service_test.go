package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/pharmalitics/backend/internal/domain/analytics"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockStatsRepository is a testify mock for analytics.StatsRepository
type MockStatsRepository struct {
	mock.Mock
}

func (m *MockStatsRepository) PerformanceSummary(ctx context.Context, r analytics.DateRange) (*analytics.PerformanceSummary, error) {
	args := m.Called(ctx, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*analytics.PerformanceSummary), args.Error(1)
}

func (m *MockStatsRepository) SalesOverTime(ctx context.Context, r analytics.DateRange, period analytics.Period) ([]analytics.TimeBucket, error) {
	args := m.Called(ctx, r, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]analytics.TimeBucket), args.Error(1)
}

func (m *MockStatsRepository) MarketShare(ctx context.Context, r analytics.DateRange, group analytics.ShareGroup) ([]analytics.MarketShare, error) {
	args := m.Called(ctx, r, group)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]analytics.MarketShare), args.Error(1)
}

func (m *MockStatsRepository) TopProducts(ctx context.Context, r analytics.DateRange, metric analytics.RankMetric, limit int) ([]analytics.ProductRank, error) {
	args := m.Called(ctx, r, metric, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]analytics.ProductRank), args.Error(1)
}

func (m *MockStatsRepository) CustomerStats(ctx context.Context, r analytics.DateRange) ([]analytics.CustomerStat, error) {
	args := m.Called(ctx, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]analytics.CustomerStat), args.Error(1)
}

func (m *MockStatsRepository) RevenueBreakdown(ctx context.Context, r analytics.DateRange, period analytics.Period) ([]analytics.RevenueBreakdown, error) {
	args := m.Called(ctx, r, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]analytics.RevenueBreakdown), args.Error(1)
}

func (m *MockStatsRepository) Seasonality(ctx context.Context, r analytics.DateRange) (*analytics.Seasonality, error) {
	args := m.Called(ctx, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*analytics.Seasonality), args.Error(1)
}

func (m *MockStatsRepository) TotalRevenue(ctx context.Context, r analytics.DateRange) (decimal.Decimal, error) {
	args := m.Called(ctx, r)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockStatsRepository) DistinctPharmacies(ctx context.Context, r analytics.DateRange) ([]string, error) {
	args := m.Called(ctx, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockStatsRepository) CustomerCategories(ctx context.Context, r analytics.DateRange, pharmacy string) ([]string, error) {
	args := m.Called(ctx, r, pharmacy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func explicitRange() RangeRequest {
	return RangeRequest{
		StartDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
	}
}

func TestAnalyticsService_GetSummary(t *testing.T) {
	t.Run("returns KPIs with resolved range", func(t *testing.T) {
		repo := new(MockStatsRepository)
		service := NewAnalyticsService(repo)

		repo.On("PerformanceSummary", mock.Anything, mock.AnythingOfType("analytics.DateRange")).
			Return(&analytics.PerformanceSummary{
				TotalRevenue:     decimal.NewFromInt(5000),
				TotalQuantity:    320,
				TransactionCount: 42,
				AvgTransaction:   decimal.NewFromFloat(119.05),
				UniqueProducts:   7,
				UniquePharmacies: 4,
			}, nil)

		resp, err := service.GetSummary(context.Background(), explicitRange())

		require.NoError(t, err)
		assert.Equal(t, 5000.0, resp.TotalRevenue)
		assert.Equal(t, int64(42), resp.TransactionCount)
		assert.Equal(t, explicitRange().StartDate, resp.StartDate)
	})

	t.Run("rejects inverted ranges without querying", func(t *testing.T) {
		repo := new(MockStatsRepository)
		service := NewAnalyticsService(repo)

		_, err := service.GetSummary(context.Background(), RangeRequest{
			StartDate: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		})

		assert.Error(t, err)
		repo.AssertNotCalled(t, "PerformanceSummary")
	})
}

func TestAnalyticsService_GetSalesOverTime(t *testing.T) {
	repo := new(MockStatsRepository)
	service := NewAnalyticsService(repo)

	repo.On("SalesOverTime", mock.Anything, mock.Anything, analytics.Period("bogus")).
		Return([]analytics.TimeBucket{
			{Period: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), Revenue: decimal.NewFromInt(100), Quantity: 5, Count: 2, AvgOrderValue: decimal.NewFromInt(50)},
		}, nil)

	buckets, err := service.GetSalesOverTime(context.Background(), explicitRange(), "bogus")

	require.NoError(t, err)
	require.Len(t, buckets, 1)
	assert.Equal(t, 100.0, buckets[0].Revenue)
	assert.Equal(t, 50.0, buckets[0].AvgOrderValue)
}

func TestAnalyticsService_GetCustomerAnalysis(t *testing.T) {
	repo := new(MockStatsRepository)
	service := NewAnalyticsService(repo)

	stats := make([]analytics.CustomerStat, 10)
	for i := range stats {
		stats[i] = analytics.CustomerStat{
			PharmacyName: "Pharmacy",
			Revenue:      decimal.NewFromInt(int64((10 - i) * 100)),
			Frequency:    int64(10 - i),
		}
	}
	repo.On("CustomerStats", mock.Anything, mock.Anything).Return(stats, nil)

	resp, err := service.GetCustomerAnalysis(context.Background(), explicitRange())

	require.NoError(t, err)
	assert.Equal(t, 10, resp.TotalCustomers)
	assert.Equal(t, 550.0, resp.AvgCustomerValue)
	// Revenues run 1000 down to 100; only the top one clears the 90th percentile
	assert.Equal(t, SegmentHigh, resp.Customers[0].Segment)
	assert.Equal(t, SegmentLow, resp.Customers[9].Segment)
	assert.Equal(t, SegmentCounts{HighValue: 1, MediumValue: 3, LowValue: 6}, resp.Segments)
}

func TestAnalyticsService_GetRevenueAnalysis(t *testing.T) {
	repo := new(MockStatsRepository)
	service := NewAnalyticsService(repo)

	june := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	repo.On("RevenueBreakdown", mock.Anything, mock.Anything, analytics.PeriodMonth).
		Return([]analytics.RevenueBreakdown{
			{
				Period:       june,
				NetRevenue:   decimal.NewFromInt(950),
				GrossRevenue: decimal.NewFromInt(1000),
				Discounts:    decimal.NewFromInt(50),
				Transactions: 12,
				DiscountRate: 5,
			},
		}, nil)

	buckets, err := service.GetRevenueAnalysis(context.Background(), explicitRange(), "month")

	require.NoError(t, err)
	require.Len(t, buckets, 1)
	assert.Equal(t, june, buckets[0].Period)
	assert.Equal(t, 950.0, buckets[0].Revenue)
	assert.Equal(t, 1000.0, buckets[0].GrossRevenue)
	assert.Equal(t, 50.0, buckets[0].TotalDiscount)
	assert.Equal(t, int64(12), buckets[0].Transactions)
	assert.Equal(t, 5.0, buckets[0].DiscountRate)
}

func TestAnalyticsService_GetGrowthRate(t *testing.T) {
	t.Run("computes percentage growth between halves", func(t *testing.T) {
		repo := new(MockStatsRepository)
		service := NewAnalyticsService(repo)

		repo.On("TotalRevenue", mock.Anything, mock.Anything).
			Return(decimal.NewFromInt(400), nil).Once()
		repo.On("TotalRevenue", mock.Anything, mock.Anything).
			Return(decimal.NewFromInt(500), nil).Once()

		resp, err := service.GetGrowthRate(context.Background(), explicitRange())

		require.NoError(t, err)
		assert.Equal(t, 400.0, resp.FirstHalfRevenue)
		assert.Equal(t, 500.0, resp.SecondHalfRevenue)
		assert.Equal(t, 25.0, resp.GrowthRatePct)
	})

	t.Run("zero first half yields zero growth", func(t *testing.T) {
		repo := new(MockStatsRepository)
		service := NewAnalyticsService(repo)

		repo.On("TotalRevenue", mock.Anything, mock.Anything).
			Return(decimal.Zero, nil).Once()
		repo.On("TotalRevenue", mock.Anything, mock.Anything).
			Return(decimal.NewFromInt(500), nil).Once()

		resp, err := service.GetGrowthRate(context.Background(), explicitRange())

		require.NoError(t, err)
		assert.Equal(t, 0.0, resp.GrowthRatePct)
	})
}
