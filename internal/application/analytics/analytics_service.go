package analytics

import (
	"context"
	"time"

	"github.com/pharmalitics/backend/internal/domain/analytics"
	"github.com/shopspring/decimal"
)

// AnalyticsService exposes the aggregation engine to the API layer.
// It is stateless; every call recomputes from the ledger.
type AnalyticsService struct {
	stats analytics.StatsRepository
}

// NewAnalyticsService creates a new AnalyticsService
func NewAnalyticsService(stats analytics.StatsRepository) *AnalyticsService {
	return &AnalyticsService{stats: stats}
}

// RangeRequest is the common date range query for analytics endpoints
type RangeRequest struct {
	StartDate time.Time `form:"start_date" time_format:"2006-01-02"`
	EndDate   time.Time `form:"end_date" time_format:"2006-01-02"`
}

// Resolve fills missing bounds with the default lookback
func (r RangeRequest) Resolve() (analytics.DateRange, error) {
	return analytics.ResolveRange(r.StartDate, r.EndDate)
}

// SummaryResponse reports the range KPIs
type SummaryResponse struct {
	StartDate        time.Time `json:"start_date"`
	EndDate          time.Time `json:"end_date"`
	TotalRevenue     float64   `json:"total_revenue"`
	TotalQuantity    int64     `json:"total_quantity"`
	TransactionCount int64     `json:"transaction_count"`
	AvgTransaction   float64   `json:"avg_transaction"`
	UniqueProducts   int64     `json:"unique_products"`
	UniquePharmacies int64     `json:"unique_pharmacies"`
}

// TimeBucketResponse is one point of the performance series
type TimeBucketResponse struct {
	Period        time.Time `json:"period"`
	Revenue       float64   `json:"revenue"`
	Quantity      int64     `json:"quantity"`
	Count         int64     `json:"count"`
	AvgOrderValue float64   `json:"avg_order_value"`
}

// MarketShareResponse is one slice of a share breakdown
type MarketShareResponse struct {
	Name       string  `json:"name"`
	Revenue    float64 `json:"revenue"`
	Quantity   int64   `json:"quantity"`
	Count      int64   `json:"count"`
	Percentage float64 `json:"percentage"`
	Rank       int     `json:"rank"`
}

// ProductRankResponse is one row of a product ranking
type ProductRankResponse struct {
	Rank          int     `json:"rank"`
	ProductName   string  `json:"product_name"`
	Category      string  `json:"category"`
	Revenue       float64 `json:"revenue"`
	Quantity      int64   `json:"quantity"`
	Frequency     int64   `json:"frequency"`
	AvgOrderValue float64 `json:"avg_order_value"`
}

// CustomerStatResponse is one row of the customer analysis
type CustomerStatResponse struct {
	PharmacyName  string    `json:"pharmacy_name"`
	Revenue       float64   `json:"revenue"`
	Quantity      int64     `json:"quantity"`
	Frequency     int64     `json:"frequency"`
	AvgOrderValue float64   `json:"avg_order_value"`
	LastPurchase  time.Time `json:"last_purchase"`
	Segment       string    `json:"segment"`
}

// SegmentCounts counts customers per value tier
type SegmentCounts struct {
	HighValue   int `json:"high_value"`
	MediumValue int `json:"medium_value"`
	LowValue    int `json:"low_value"`
}

// CustomerAnalysisResponse wraps the segmented customer analysis
type CustomerAnalysisResponse struct {
	Customers        []CustomerStatResponse `json:"customers"`
	TotalCustomers   int                    `json:"total_customers"`
	Segments         SegmentCounts          `json:"segments"`
	AvgCustomerValue float64                `json:"avg_customer_value"`
}

// RevenueResponse is one period bucket of the revenue analysis
type RevenueResponse struct {
	Period        time.Time `json:"period"`
	Revenue       float64   `json:"revenue"`
	GrossRevenue  float64   `json:"gross_revenue"`
	TotalDiscount float64   `json:"total_discount"`
	Transactions  int64     `json:"transactions"`
	DiscountRate  float64   `json:"discount_rate"`
}

// SeasonalityPointResponse is one averaged seasonality bucket
type SeasonalityPointResponse struct {
	Label      string  `json:"label"`
	Index      int     `json:"index"`
	AvgRevenue float64 `json:"avg_revenue"`
}

// SeasonalityResponse groups seasonality by weekday and month
type SeasonalityResponse struct {
	ByWeekday []SeasonalityPointResponse `json:"by_weekday"`
	ByMonth   []SeasonalityPointResponse `json:"by_month"`
}

// GrowthResponse compares the first and second halves of the range
type GrowthResponse struct {
	FirstHalfRevenue  float64 `json:"first_half_revenue"`
	SecondHalfRevenue float64 `json:"second_half_revenue"`
	GrowthRatePct     float64 `json:"growth_rate_pct"`
}

// Customer segments assigned by revenue percentile
const (
	SegmentHigh   = "high_value"
	SegmentMedium = "medium_value"
	SegmentLow    = "low_value"
)

// GetSummary returns the range KPIs
func (s *AnalyticsService) GetSummary(ctx context.Context, req RangeRequest) (*SummaryResponse, error) {
	rng, err := req.Resolve()
	if err != nil {
		return nil, err
	}

	summary, err := s.stats.PerformanceSummary(ctx, rng)
	if err != nil {
		return nil, err
	}

	return &SummaryResponse{
		StartDate:        rng.Start,
		EndDate:          rng.End,
		TotalRevenue:     toFloat64(summary.TotalRevenue),
		TotalQuantity:    summary.TotalQuantity,
		TransactionCount: summary.TransactionCount,
		AvgTransaction:   toFloat64(summary.AvgTransaction),
		UniqueProducts:   summary.UniqueProducts,
		UniquePharmacies: summary.UniquePharmacies,
	}, nil
}

// GetSalesOverTime returns the bucketed performance series
func (s *AnalyticsService) GetSalesOverTime(ctx context.Context, req RangeRequest, period string) ([]TimeBucketResponse, error) {
	rng, err := req.Resolve()
	if err != nil {
		return nil, err
	}

	buckets, err := s.stats.SalesOverTime(ctx, rng, analytics.Period(period))
	if err != nil {
		return nil, err
	}

	out := make([]TimeBucketResponse, len(buckets))
	for i, b := range buckets {
		out[i] = TimeBucketResponse{
			Period:        b.Period,
			Revenue:       toFloat64(b.Revenue),
			Quantity:      b.Quantity,
			Count:         b.Count,
			AvgOrderValue: toFloat64(b.AvgOrderValue),
		}
	}
	return out, nil
}

// GetMarketShare returns the share breakdown for a dimension
func (s *AnalyticsService) GetMarketShare(ctx context.Context, req RangeRequest, groupBy string) ([]MarketShareResponse, error) {
	rng, err := req.Resolve()
	if err != nil {
		return nil, err
	}

	shares, err := s.stats.MarketShare(ctx, rng, analytics.ShareGroup(groupBy))
	if err != nil {
		return nil, err
	}

	out := make([]MarketShareResponse, len(shares))
	for i, share := range shares {
		out[i] = MarketShareResponse{
			Name:       share.Name,
			Revenue:    toFloat64(share.Revenue),
			Quantity:   share.Quantity,
			Count:      share.Count,
			Percentage: share.Percentage,
			Rank:       share.Rank,
		}
	}
	return out, nil
}

// GetTopProducts returns the product ranking for a metric
func (s *AnalyticsService) GetTopProducts(ctx context.Context, req RangeRequest, metric string, limit int) ([]ProductRankResponse, error) {
	rng, err := req.Resolve()
	if err != nil {
		return nil, err
	}

	ranks, err := s.stats.TopProducts(ctx, rng, analytics.RankMetric(metric), limit)
	if err != nil {
		return nil, err
	}

	out := make([]ProductRankResponse, len(ranks))
	for i, rank := range ranks {
		out[i] = toProductRankResponse(rank)
	}
	return out, nil
}

// GetCustomerAnalysis returns per-pharmacy aggregates with value segments.
// Segments follow revenue percentiles: the top decile is high value, the
// 66th to 90th percentile medium, the rest low.
func (s *AnalyticsService) GetCustomerAnalysis(ctx context.Context, req RangeRequest) (*CustomerAnalysisResponse, error) {
	rng, err := req.Resolve()
	if err != nil {
		return nil, err
	}

	stats, err := s.stats.CustomerStats(ctx, rng)
	if err != nil {
		return nil, err
	}

	revenues := make([]float64, len(stats))
	for i, stat := range stats {
		revenues[i] = toFloat64(stat.Revenue)
	}
	p66 := analytics.Quantile(revenues, 0.66)
	p90 := analytics.Quantile(revenues, 0.90)

	var counts SegmentCounts
	customers := make([]CustomerStatResponse, len(stats))
	for i, stat := range stats {
		revenue := revenues[i]
		segment := SegmentLow
		switch {
		case revenue >= p90:
			segment = SegmentHigh
			counts.HighValue++
		case revenue >= p66:
			segment = SegmentMedium
			counts.MediumValue++
		default:
			counts.LowValue++
		}
		customers[i] = CustomerStatResponse{
			PharmacyName:  stat.PharmacyName,
			Revenue:       revenue,
			Quantity:      stat.Quantity,
			Frequency:     stat.Frequency,
			AvgOrderValue: toFloat64(stat.AvgOrderValue),
			LastPurchase:  stat.LastPurchase,
			Segment:       segment,
		}
	}

	return &CustomerAnalysisResponse{
		Customers:        customers,
		TotalCustomers:   len(customers),
		Segments:         counts,
		AvgCustomerValue: analytics.Mean(revenues),
	}, nil
}

// GetRevenueAnalysis returns gross, net and discount figures per period bucket
func (s *AnalyticsService) GetRevenueAnalysis(ctx context.Context, req RangeRequest, period string) ([]RevenueResponse, error) {
	rng, err := req.Resolve()
	if err != nil {
		return nil, err
	}

	breakdowns, err := s.stats.RevenueBreakdown(ctx, rng, analytics.Period(period))
	if err != nil {
		return nil, err
	}

	out := make([]RevenueResponse, len(breakdowns))
	for i, b := range breakdowns {
		out[i] = RevenueResponse{
			Period:        b.Period,
			Revenue:       toFloat64(b.NetRevenue),
			GrossRevenue:  toFloat64(b.GrossRevenue),
			TotalDiscount: toFloat64(b.Discounts),
			Transactions:  b.Transactions,
			DiscountRate:  b.DiscountRate,
		}
	}
	return out, nil
}

// GetSeasonality returns average revenue by weekday and by month
func (s *AnalyticsService) GetSeasonality(ctx context.Context, req RangeRequest) (*SeasonalityResponse, error) {
	rng, err := req.Resolve()
	if err != nil {
		return nil, err
	}

	season, err := s.stats.Seasonality(ctx, rng)
	if err != nil {
		return nil, err
	}

	out := &SeasonalityResponse{
		ByWeekday: make([]SeasonalityPointResponse, len(season.ByWeekday)),
		ByMonth:   make([]SeasonalityPointResponse, len(season.ByMonth)),
	}
	for i, point := range season.ByWeekday {
		out.ByWeekday[i] = SeasonalityPointResponse{
			Label:      point.Label,
			Index:      point.Index,
			AvgRevenue: toFloat64(point.AvgRevenue),
		}
	}
	for i, point := range season.ByMonth {
		out.ByMonth[i] = SeasonalityPointResponse{
			Label:      point.Label,
			Index:      point.Index,
			AvgRevenue: toFloat64(point.AvgRevenue),
		}
	}
	return out, nil
}

// GetGrowthRate splits the range in half and compares revenue
func (s *AnalyticsService) GetGrowthRate(ctx context.Context, req RangeRequest) (*GrowthResponse, error) {
	rng, err := req.Resolve()
	if err != nil {
		return nil, err
	}

	growth, err := s.growth(ctx, rng)
	if err != nil {
		return nil, err
	}

	return &GrowthResponse{
		FirstHalfRevenue:  toFloat64(growth.FirstHalf),
		SecondHalfRevenue: toFloat64(growth.SecondHalf),
		GrowthRatePct:     growth.RatePct,
	}, nil
}

// growth is shared with the report composer
func (s *AnalyticsService) growth(ctx context.Context, rng analytics.DateRange) (*analytics.Growth, error) {
	first, second := rng.Halves()

	firstRevenue, err := s.stats.TotalRevenue(ctx, first)
	if err != nil {
		return nil, err
	}
	secondRevenue, err := s.stats.TotalRevenue(ctx, second)
	if err != nil {
		return nil, err
	}

	return &analytics.Growth{
		FirstHalf:  firstRevenue,
		SecondHalf: secondRevenue,
		RatePct:    analytics.GrowthRate(firstRevenue, secondRevenue),
	}, nil
}

func toProductRankResponse(rank analytics.ProductRank) ProductRankResponse {
	return ProductRankResponse{
		Rank:          rank.Rank,
		ProductName:   rank.ProductName,
		Category:      rank.Category,
		Revenue:       toFloat64(rank.Revenue),
		Quantity:      rank.Quantity,
		Frequency:     rank.Frequency,
		AvgOrderValue: toFloat64(rank.AvgOrderValue),
	}
}

func toFloat64(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}
