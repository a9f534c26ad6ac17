package analytics

import (
	"time"

	"github.com/shopspring/decimal"
)

// Period is the time bucket used when grouping sales over time.
type Period string

const (
	PeriodDay     Period = "day"
	PeriodWeek    Period = "week"
	PeriodMonth   Period = "month"
	PeriodQuarter Period = "quarter"
	PeriodYear    Period = "year"
)

// Normalize maps unknown period values to the monthly default.
func (p Period) Normalize() Period {
	switch p {
	case PeriodDay, PeriodWeek, PeriodMonth, PeriodQuarter, PeriodYear:
		return p
	default:
		return PeriodMonth
	}
}

// RankMetric selects the ordering for product rankings.
type RankMetric string

const (
	MetricRevenue   RankMetric = "revenue"
	MetricQuantity  RankMetric = "quantity"
	MetricFrequency RankMetric = "frequency"
)

// Normalize maps unknown metric values to frequency.
func (m RankMetric) Normalize() RankMetric {
	switch m {
	case MetricRevenue, MetricQuantity, MetricFrequency:
		return m
	default:
		return MetricFrequency
	}
}

// ShareGroup selects the dimension for market share breakdowns.
type ShareGroup string

const (
	GroupProduct  ShareGroup = "product"
	GroupCategory ShareGroup = "category"
	GroupPharmacy ShareGroup = "pharmacy"
	GroupLocation ShareGroup = "location"
)

// Normalize maps unknown group values to category.
func (g ShareGroup) Normalize() ShareGroup {
	switch g {
	case GroupProduct, GroupCategory, GroupPharmacy, GroupLocation:
		return g
	default:
		return GroupCategory
	}
}

// Column returns the sales column backing the grouping dimension.
func (g ShareGroup) Column() string {
	switch g.Normalize() {
	case GroupProduct:
		return "product_name"
	case GroupPharmacy:
		return "pharmacy_name"
	case GroupLocation:
		return "pharmacy_location"
	default:
		return "product_category"
	}
}

// PerformanceSummary aggregates the ledger over a range.
type PerformanceSummary struct {
	TotalRevenue     decimal.Decimal
	TotalQuantity    int64
	TransactionCount int64
	AvgTransaction   decimal.Decimal
	UniqueProducts   int64
	UniquePharmacies int64
}

// TimeBucket is one point of a sales-over-time series.
type TimeBucket struct {
	Period        time.Time
	Revenue       decimal.Decimal
	Quantity      int64
	Count         int64
	AvgOrderValue decimal.Decimal
}

// MarketShare is one slice of a share breakdown, ranked by revenue.
type MarketShare struct {
	Name       string
	Revenue    decimal.Decimal
	Quantity   int64
	Count      int64
	Percentage float64
	Rank       int
}

// ProductRank is one row of a product ranking.
type ProductRank struct {
	ProductName   string
	Category      string
	Revenue       decimal.Decimal
	Quantity      int64
	Frequency     int64
	AvgOrderValue decimal.Decimal
	Rank          int
}

// CustomerStat is the per-pharmacy aggregate used for customer analysis.
type CustomerStat struct {
	PharmacyName  string
	Revenue       decimal.Decimal
	Quantity      int64
	Frequency     int64
	AvgOrderValue decimal.Decimal
	LastPurchase  time.Time
	Segment       string
}

// RevenueBreakdown is one period bucket of the revenue analysis, carrying
// pre-discount gross revenue and the discount given away in the bucket.
type RevenueBreakdown struct {
	Period       time.Time
	NetRevenue   decimal.Decimal
	GrossRevenue decimal.Decimal
	Discounts    decimal.Decimal
	Transactions int64
	DiscountRate float64
}

// SeasonalityPoint is one averaged bucket of the seasonality profile.
type SeasonalityPoint struct {
	Label      string
	Index      int
	AvgRevenue decimal.Decimal
}

// Seasonality groups average revenue by day of week and by calendar month.
type Seasonality struct {
	ByWeekday []SeasonalityPoint
	ByMonth   []SeasonalityPoint
}

// Growth is a first-half versus second-half comparison of a range.
type Growth struct {
	FirstHalf  decimal.Decimal
	SecondHalf decimal.Decimal
	RatePct    float64
}
