package analytics

import (
	"context"

	"github.com/shopspring/decimal"
)

// StatsRepository runs read-only aggregation queries over the sales ledger.
// Every query only sees active sales inside the given range.
type StatsRepository interface {
	// PerformanceSummary aggregates totals, counts and distinct dimensions.
	PerformanceSummary(ctx context.Context, r DateRange) (*PerformanceSummary, error)

	// SalesOverTime buckets sales by the given period, oldest first.
	SalesOverTime(ctx context.Context, r DateRange, period Period) ([]TimeBucket, error)

	// MarketShare breaks revenue down by the given dimension, ranked by
	// revenue with percentages of the range total. Rows whose dimension
	// value is empty are excluded.
	MarketShare(ctx context.Context, r DateRange, group ShareGroup) ([]MarketShare, error)

	// TopProducts ranks products by the given metric, descending.
	TopProducts(ctx context.Context, r DateRange, metric RankMetric, limit int) ([]ProductRank, error)

	// CustomerStats aggregates per pharmacy, descending by revenue.
	// Segments are left empty; classification happens in the caller.
	CustomerStats(ctx context.Context, r DateRange) ([]CustomerStat, error)

	// RevenueBreakdown buckets gross, net and discount totals by the given
	// period, oldest first.
	RevenueBreakdown(ctx context.Context, r DateRange, period Period) ([]RevenueBreakdown, error)

	// Seasonality averages revenue by day of week and by calendar month.
	Seasonality(ctx context.Context, r DateRange) (*Seasonality, error)

	// TotalRevenue sums net revenue over the range.
	TotalRevenue(ctx context.Context, r DateRange) (decimal.Decimal, error)

	// DistinctPharmacies lists the pharmacies that purchased in the range.
	DistinctPharmacies(ctx context.Context, r DateRange) ([]string, error)

	// CustomerCategories lists the distinct product categories a pharmacy
	// purchased from within the range.
	CustomerCategories(ctx context.Context, r DateRange, pharmacy string) ([]string, error)
}
