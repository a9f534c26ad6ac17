package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/pharmalitics/backend/internal/domain/analytics"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormStatsRepository implements analytics.StatsRepository using GORM.
// All queries aggregate the sales table directly; nothing is precomputed
// or cached, so results always reflect the current ledger.
type GormStatsRepository struct {
	db *gorm.DB
}

// NewGormStatsRepository creates a new GormStatsRepository
func NewGormStatsRepository(db *gorm.DB) *GormStatsRepository {
	return &GormStatsRepository{db: db}
}

// base returns the active-sales query scoped to the range
func (r *GormStatsRepository) base(ctx context.Context, rng analytics.DateRange) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("sales").
		Where("is_active = ?", true).
		Where("sale_date BETWEEN ? AND ?", rng.Start, rng.End)
}

// PerformanceSummary returns aggregated KPIs for the range
func (r *GormStatsRepository) PerformanceSummary(ctx context.Context, rng analytics.DateRange) (*analytics.PerformanceSummary, error) {
	type summaryResult struct {
		TotalRevenue     decimal.Decimal
		TotalQuantity    int64
		TransactionCount int64
		AvgTransaction   decimal.Decimal
		UniqueProducts   int64
		UniquePharmacies int64
	}

	var result summaryResult
	err := r.base(ctx, rng).
		Select(`
			COALESCE(SUM(total_price), 0) as total_revenue,
			COALESCE(SUM(quantity), 0) as total_quantity,
			COUNT(id) as transaction_count,
			COALESCE(AVG(total_price), 0) as avg_transaction,
			COUNT(DISTINCT product_name) as unique_products,
			COUNT(DISTINCT pharmacy_name) as unique_pharmacies
		`).
		Scan(&result).Error
	if err != nil {
		return nil, err
	}

	return &analytics.PerformanceSummary{
		TotalRevenue:     result.TotalRevenue,
		TotalQuantity:    result.TotalQuantity,
		TransactionCount: result.TransactionCount,
		AvgTransaction:   result.AvgTransaction,
		UniqueProducts:   result.UniqueProducts,
		UniquePharmacies: result.UniquePharmacies,
	}, nil
}

// periodBucket returns the SQL expression truncating sale_date to the period
func periodBucket(period analytics.Period) string {
	period = period.Normalize()
	if period == analytics.PeriodDay {
		return "DATE(sale_date)"
	}
	return fmt.Sprintf("date_trunc('%s', sale_date)", period)
}

// SalesOverTime returns revenue bucketed by the period, oldest first
func (r *GormStatsRepository) SalesOverTime(ctx context.Context, rng analytics.DateRange, period analytics.Period) ([]analytics.TimeBucket, error) {
	bucket := periodBucket(period)

	type bucketResult struct {
		Period        time.Time
		Revenue       decimal.Decimal
		Quantity      int64
		Count         int64
		AvgOrderValue decimal.Decimal
	}

	var results []bucketResult
	err := r.base(ctx, rng).
		Select(bucket + ` as period,
			COALESCE(SUM(total_price), 0) as revenue,
			COALESCE(SUM(quantity), 0) as quantity,
			COUNT(id) as count,
			COALESCE(AVG(total_price), 0) as avg_order_value`).
		Group(bucket).
		Order("period ASC").
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	buckets := make([]analytics.TimeBucket, len(results))
	for i, res := range results {
		buckets[i] = analytics.TimeBucket{
			Period:        res.Period,
			Revenue:       res.Revenue,
			Quantity:      res.Quantity,
			Count:         res.Count,
			AvgOrderValue: res.AvgOrderValue,
		}
	}
	return buckets, nil
}

// MarketShare returns the revenue breakdown by the grouping dimension
func (r *GormStatsRepository) MarketShare(ctx context.Context, rng analytics.DateRange, group analytics.ShareGroup) ([]analytics.MarketShare, error) {
	column := group.Column()

	type shareResult struct {
		Name     string
		Revenue  decimal.Decimal
		Quantity int64
		Count    int64
	}

	var results []shareResult
	err := r.base(ctx, rng).
		Select(column + ` as name,
			COALESCE(SUM(total_price), 0) as revenue,
			COALESCE(SUM(quantity), 0) as quantity,
			COUNT(id) as count`).
		Where(column + " IS NOT NULL AND " + column + " <> ''").
		Group(column).
		Order("revenue DESC").
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	for _, res := range results {
		total = total.Add(res.Revenue)
	}

	shares := make([]analytics.MarketShare, len(results))
	for i, res := range results {
		shares[i] = analytics.MarketShare{
			Name:       res.Name,
			Revenue:    res.Revenue,
			Quantity:   res.Quantity,
			Count:      res.Count,
			Percentage: analytics.SharePct(res.Revenue, total),
			Rank:       i + 1,
		}
	}
	return shares, nil
}

// TopProducts returns products ranked by the metric, descending
func (r *GormStatsRepository) TopProducts(ctx context.Context, rng analytics.DateRange, metric analytics.RankMetric, limit int) ([]analytics.ProductRank, error) {
	if limit <= 0 {
		limit = 10
	}

	var orderBy string
	switch metric.Normalize() {
	case analytics.MetricRevenue:
		orderBy = "revenue DESC"
	case analytics.MetricQuantity:
		orderBy = "quantity DESC"
	default:
		orderBy = "frequency DESC"
	}

	type productResult struct {
		ProductName   string
		Category      string
		Revenue       decimal.Decimal
		Quantity      int64
		Frequency     int64
		AvgOrderValue decimal.Decimal
	}

	var results []productResult
	err := r.base(ctx, rng).
		Select(`
			product_name,
			product_category as category,
			COALESCE(SUM(total_price), 0) as revenue,
			COALESCE(SUM(quantity), 0) as quantity,
			COUNT(id) as frequency,
			COALESCE(AVG(total_price), 0) as avg_order_value
		`).
		Group("product_name, product_category").
		Order(orderBy).
		Limit(limit).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	ranks := make([]analytics.ProductRank, len(results))
	for i, res := range results {
		ranks[i] = analytics.ProductRank{
			ProductName:   res.ProductName,
			Category:      res.Category,
			Revenue:       res.Revenue,
			Quantity:      res.Quantity,
			Frequency:     res.Frequency,
			AvgOrderValue: res.AvgOrderValue,
			Rank:          i + 1,
		}
	}
	return ranks, nil
}

// CustomerStats returns per-pharmacy aggregates, descending by revenue
func (r *GormStatsRepository) CustomerStats(ctx context.Context, rng analytics.DateRange) ([]analytics.CustomerStat, error) {
	type customerResult struct {
		PharmacyName  string
		Revenue       decimal.Decimal
		Quantity      int64
		Frequency     int64
		AvgOrderValue decimal.Decimal
		LastPurchase  time.Time
	}

	var results []customerResult
	err := r.base(ctx, rng).
		Select(`
			pharmacy_name,
			COALESCE(SUM(total_price), 0) as revenue,
			COALESCE(SUM(quantity), 0) as quantity,
			COUNT(id) as frequency,
			COALESCE(AVG(total_price), 0) as avg_order_value,
			MAX(sale_date) as last_purchase
		`).
		Where("pharmacy_name IS NOT NULL AND pharmacy_name <> ''").
		Group("pharmacy_name").
		Order("revenue DESC").
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	stats := make([]analytics.CustomerStat, len(results))
	for i, res := range results {
		stats[i] = analytics.CustomerStat{
			PharmacyName:  res.PharmacyName,
			Revenue:       res.Revenue,
			Quantity:      res.Quantity,
			Frequency:     res.Frequency,
			AvgOrderValue: res.AvgOrderValue,
			LastPurchase:  res.LastPurchase,
		}
	}
	return stats, nil
}

// RevenueBreakdown returns gross, net and discount totals bucketed by the
// period, oldest first
func (r *GormStatsRepository) RevenueBreakdown(ctx context.Context, rng analytics.DateRange, period analytics.Period) ([]analytics.RevenueBreakdown, error) {
	bucket := periodBucket(period)

	type revenueResult struct {
		Period       time.Time
		NetRevenue   decimal.Decimal
		GrossRevenue decimal.Decimal
		Discounts    decimal.Decimal
		Transactions int64
	}

	var results []revenueResult
	err := r.base(ctx, rng).
		Select(bucket + ` as period,
			COALESCE(SUM(total_price), 0) as net_revenue,
			COALESCE(SUM(quantity * unit_price), 0) as gross_revenue,
			COALESCE(SUM(discount), 0) as discounts,
			COUNT(id) as transactions`).
		Group(bucket).
		Order("period ASC").
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	breakdowns := make([]analytics.RevenueBreakdown, len(results))
	for i, res := range results {
		breakdowns[i] = analytics.RevenueBreakdown{
			Period:       res.Period,
			NetRevenue:   res.NetRevenue,
			GrossRevenue: res.GrossRevenue,
			Discounts:    res.Discounts,
			Transactions: res.Transactions,
			DiscountRate: analytics.SharePct(res.Discounts, res.GrossRevenue),
		}
	}
	return breakdowns, nil
}

// Seasonality returns average revenue by day of week and by calendar month.
// Day of week follows the PostgreSQL convention where 0 is Sunday.
func (r *GormStatsRepository) Seasonality(ctx context.Context, rng analytics.DateRange) (*analytics.Seasonality, error) {
	type seasonResult struct {
		Idx        int
		AvgRevenue decimal.Decimal
	}

	var weekdays []seasonResult
	err := r.base(ctx, rng).
		Select(`EXTRACT(DOW FROM sale_date)::int as idx,
			COALESCE(AVG(total_price), 0) as avg_revenue`).
		Group("idx").
		Order("idx ASC").
		Scan(&weekdays).Error
	if err != nil {
		return nil, err
	}

	var months []seasonResult
	err = r.base(ctx, rng).
		Select(`EXTRACT(MONTH FROM sale_date)::int as idx,
			COALESCE(AVG(total_price), 0) as avg_revenue`).
		Group("idx").
		Order("idx ASC").
		Scan(&months).Error
	if err != nil {
		return nil, err
	}

	season := &analytics.Seasonality{
		ByWeekday: make([]analytics.SeasonalityPoint, len(weekdays)),
		ByMonth:   make([]analytics.SeasonalityPoint, len(months)),
	}
	for i, res := range weekdays {
		season.ByWeekday[i] = analytics.SeasonalityPoint{
			Label:      time.Weekday(res.Idx).String(),
			Index:      res.Idx,
			AvgRevenue: res.AvgRevenue,
		}
	}
	for i, res := range months {
		season.ByMonth[i] = analytics.SeasonalityPoint{
			Label:      time.Month(res.Idx).String(),
			Index:      res.Idx,
			AvgRevenue: res.AvgRevenue,
		}
	}
	return season, nil
}

// TotalRevenue sums net revenue over the range
func (r *GormStatsRepository) TotalRevenue(ctx context.Context, rng analytics.DateRange) (decimal.Decimal, error) {
	type revenueResult struct {
		Revenue decimal.Decimal
	}

	var result revenueResult
	err := r.base(ctx, rng).
		Select("COALESCE(SUM(total_price), 0) as revenue").
		Scan(&result).Error
	if err != nil {
		return decimal.Zero, err
	}
	return result.Revenue, nil
}

// DistinctPharmacies lists pharmacies that purchased within the range
func (r *GormStatsRepository) DistinctPharmacies(ctx context.Context, rng analytics.DateRange) ([]string, error) {
	var names []string
	err := r.base(ctx, rng).
		Where("pharmacy_name IS NOT NULL AND pharmacy_name <> ''").
		Distinct("pharmacy_name").
		Order("pharmacy_name ASC").
		Pluck("pharmacy_name", &names).Error
	if err != nil {
		return nil, err
	}
	return names, nil
}

// CustomerCategories lists the distinct categories a pharmacy purchased from
func (r *GormStatsRepository) CustomerCategories(ctx context.Context, rng analytics.DateRange, pharmacy string) ([]string, error) {
	var categories []string
	err := r.base(ctx, rng).
		Where("pharmacy_name = ?", pharmacy).
		Where("product_category IS NOT NULL AND product_category <> ''").
		Distinct("product_category").
		Pluck("product_category", &categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}
