package report

import (
	"context"
	"fmt"
	"time"

	appanalytics "github.com/pharmalitics/backend/internal/application/analytics"
	"github.com/pharmalitics/backend/internal/domain/analytics"
	"github.com/shopspring/decimal"
)

// trendPoints caps the trend series embedded in the executive summary
const trendPoints = 30

// ReportService composes analytics results into business reports with
// threshold-based insights.
type ReportService struct {
	stats analytics.StatsRepository
}

// NewReportService creates a new ReportService
func NewReportService(stats analytics.StatsRepository) *ReportService {
	return &ReportService{stats: stats}
}

// PeriodRange echoes the covered window in responses
type PeriodRange struct {
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

// ComparisonResponse is a period-over-period movement for one metric
type ComparisonResponse struct {
	Current   float64 `json:"current"`
	Previous  float64 `json:"previous"`
	ChangePct float64 `json:"change_pct"`
	Direction string  `json:"direction"`
}

// KPISet is the fixed headline figure block of the executive summary
type KPISet struct {
	TotalRevenue     float64 `json:"total_revenue"`
	RevenueGrowthPct float64 `json:"revenue_growth_pct"`
	AvgOrderValue    float64 `json:"avg_order_value"`
	Transactions     int64   `json:"transactions"`
	UniqueProducts   int64   `json:"unique_products"`
	ActivePharmacies int64   `json:"active_pharmacies"`
}

// ComparisonSet holds the period-over-period movement of the core metrics
type ComparisonSet struct {
	Revenue       ComparisonResponse `json:"revenue"`
	Transactions  ComparisonResponse `json:"transactions"`
	AvgOrderValue ComparisonResponse `json:"avg_order_value"`
}

// CustomerOverview condenses the customer analysis for the executive summary
type CustomerOverview struct {
	TotalCustomers   int                                 `json:"total_customers"`
	TopCustomers     []appanalytics.CustomerStatResponse `json:"top_customers"`
	Segments         appanalytics.SegmentCounts          `json:"segments"`
	AvgCustomerValue float64                             `json:"avg_customer_value"`
}

// ExecutiveSummaryResponse is the headline report for leadership
type ExecutiveSummaryResponse struct {
	Period      PeriodRange                        `json:"period"`
	KPIs        KPISet                             `json:"kpis"`
	Summary     appanalytics.SummaryResponse       `json:"summary"`
	Comparisons ComparisonSet                      `json:"comparisons"`
	Trends      []appanalytics.TimeBucketResponse  `json:"trends"`
	TopProducts []appanalytics.ProductRankResponse `json:"top_products"`
	MarketShare []appanalytics.MarketShareResponse `json:"market_share"`
	Customers   CustomerOverview                   `json:"customer_insights"`
	Insights    []string                           `json:"insights"`
	GeneratedAt time.Time                          `json:"generated_at"`
}

// SeriesStats summarizes a bucketed series
type SeriesStats struct {
	AvgRevenue       float64 `json:"avg_revenue"`
	MaxRevenue       float64 `json:"max_revenue"`
	MinRevenue       float64 `json:"min_revenue"`
	AvgQuantity      float64 `json:"avg_quantity"`
	TotalPeriods     int     `json:"total_periods"`
	PeriodsWithSales int     `json:"periods_with_sales"`
}

// CategoryShareResponse pairs one category share slice with its best sellers
type CategoryShareResponse struct {
	Share       appanalytics.MarketShareResponse   `json:"share"`
	TopProducts []appanalytics.ProductRankResponse `json:"top_products"`
}

// DetailedReportResponse is the full sales breakdown
type DetailedReportResponse struct {
	Period        PeriodRange                        `json:"period"`
	Performance   []appanalytics.TimeBucketResponse  `json:"performance"`
	Revenue       []appanalytics.RevenueResponse     `json:"revenue"`
	Seasonality   appanalytics.SeasonalityResponse   `json:"seasonality"`
	CategoryShare []CategoryShareResponse            `json:"category_share"`
	Geographic    []appanalytics.MarketShareResponse `json:"geographic"`
	Stats         SeriesStats                        `json:"stats"`
	GeneratedAt   time.Time                          `json:"generated_at"`
}

// CategoryPerformance aggregates products within one category
type CategoryPerformance struct {
	Category          string  `json:"category"`
	Revenue           float64 `json:"revenue"`
	Quantity          int64   `json:"quantity"`
	ProductCount      int     `json:"product_count"`
	AvgProductRevenue float64 `json:"avg_product_revenue"`
}

// GrowthProduct is a product whose second-half revenue outgrew its first
type GrowthProduct struct {
	ProductName       string  `json:"product_name"`
	FirstHalfRevenue  float64 `json:"first_half_revenue"`
	SecondHalfRevenue float64 `json:"second_half_revenue"`
	GrowthPct         float64 `json:"growth_pct"`
}

// ProductReportResponse is the product performance report
type ProductReportResponse struct {
	Period         PeriodRange                        `json:"period"`
	TopByRevenue   []appanalytics.ProductRankResponse `json:"top_by_revenue"`
	TopByQuantity  []appanalytics.ProductRankResponse `json:"top_by_quantity"`
	TopByFrequency []appanalytics.ProductRankResponse `json:"top_by_frequency"`
	Categories     []CategoryPerformance              `json:"categories"`
	LowPerformers  []appanalytics.ProductRankResponse `json:"low_performers"`
	GrowthProducts []GrowthProduct                    `json:"growth_products"`
	Insights       []string                           `json:"insights"`
	GeneratedAt    time.Time                          `json:"generated_at"`
}

// RFM segments assigned from revenue and frequency quartiles
const (
	SegmentChampions = "Champions"
	SegmentPotential = "Potential"
	SegmentAtRisk    = "At Risk"
	SegmentLost      = "Lost"
)

// Value tiers assigned against the customer means
const (
	TierVIP       = "VIP"
	TierGrowth    = "Growth"
	TierPotential = "Potential"
	TierBasic     = "Basic"
)

// CustomerSegment is one customer with its RFM segment and value tier
type CustomerSegment struct {
	PharmacyName  string    `json:"pharmacy_name"`
	Revenue       float64   `json:"revenue"`
	Frequency     int64     `json:"frequency"`
	AvgOrderValue float64   `json:"avg_order_value"`
	LastPurchase  time.Time `json:"last_purchase"`
	Segment       string    `json:"segment"`
	ValueTier     string    `json:"value_tier"`
}

// RetentionResponse compares the customer base across the two range halves
type RetentionResponse struct {
	FirstHalfCustomers  int      `json:"first_half_customers"`
	SecondHalfCustomers int      `json:"second_half_customers"`
	Retained            int      `json:"retained"`
	New                 int      `json:"new"`
	Churned             int      `json:"churned"`
	RetentionRatePct    float64  `json:"retention_rate_pct"`
	ChurnedCustomers    []string `json:"churned_customers,omitempty"`
}

// CrossSellSuggestion recommends categories a top customer has not bought
type CrossSellSuggestion struct {
	PharmacyName      string   `json:"pharmacy_name"`
	MissingCategories []string `json:"missing_categories"`
	PotentialValue    float64  `json:"potential_value"`
	CurrentCategories int      `json:"current_categories"`
}

// CustomerReportResponse is the customer analysis report
type CustomerReportResponse struct {
	Period      PeriodRange           `json:"period"`
	Segments    []CustomerSegment     `json:"segments"`
	Retention   *RetentionResponse    `json:"retention,omitempty"`
	CrossSell   []CrossSellSuggestion `json:"cross_sell"`
	Insights    []string              `json:"insights"`
	GeneratedAt time.Time             `json:"generated_at"`
}

// MonthlyReportResponse is the calendar month digest
type MonthlyReportResponse struct {
	Year        int                                `json:"year"`
	Month       int                                `json:"month"`
	Period      PeriodRange                        `json:"period"`
	Summary     appanalytics.SummaryResponse       `json:"summary"`
	MonthTrend  ComparisonResponse                 `json:"month_trend"`
	DailyTrend  []appanalytics.TimeBucketResponse  `json:"daily_trend"`
	TopProducts []appanalytics.ProductRankResponse `json:"top_products"`
	GeneratedAt time.Time                          `json:"generated_at"`
}

// ComparativeReportResponse compares two arbitrary ranges metric by metric
type ComparativeReportResponse struct {
	PeriodA      PeriodRange                  `json:"period_a"`
	PeriodB      PeriodRange                  `json:"period_b"`
	SummaryA     appanalytics.SummaryResponse `json:"summary_a"`
	SummaryB     appanalytics.SummaryResponse `json:"summary_b"`
	Revenue      ComparisonResponse           `json:"revenue"`
	Quantity     ComparisonResponse           `json:"quantity"`
	Transactions ComparisonResponse           `json:"transactions"`
	AvgOrder     ComparisonResponse           `json:"avg_order"`
	GeneratedAt  time.Time                    `json:"generated_at"`
}

// ExecutiveSummary builds the headline report for the range
func (s *ReportService) ExecutiveSummary(ctx context.Context, rng analytics.DateRange) (*ExecutiveSummaryResponse, error) {
	current, err := s.stats.PerformanceSummary(ctx, rng)
	if err != nil {
		return nil, err
	}
	previous, err := s.stats.PerformanceSummary(ctx, rng.Previous())
	if err != nil {
		return nil, err
	}

	trends, err := s.stats.SalesOverTime(ctx, rng, analytics.PeriodDay)
	if err != nil {
		return nil, err
	}
	if len(trends) > trendPoints {
		trends = trends[len(trends)-trendPoints:]
	}

	topProducts, err := s.stats.TopProducts(ctx, rng, analytics.MetricRevenue, 5)
	if err != nil {
		return nil, err
	}
	shares, err := s.stats.MarketShare(ctx, rng, analytics.GroupCategory)
	if err != nil {
		return nil, err
	}
	if len(shares) > 5 {
		shares = shares[:5]
	}
	customers, err := s.stats.CustomerStats(ctx, rng)
	if err != nil {
		return nil, err
	}

	comparisons := ComparisonSet{
		Revenue: toComparisonResponse(
			analytics.ComparePeriods(current.TotalRevenue, previous.TotalRevenue)),
		Transactions: toComparisonResponse(analytics.ComparePeriods(
			decimal.NewFromInt(current.TransactionCount), decimal.NewFromInt(previous.TransactionCount))),
		AvgOrderValue: toComparisonResponse(
			analytics.ComparePeriods(current.AvgTransaction, previous.AvgTransaction)),
	}

	return &ExecutiveSummaryResponse{
		Period: PeriodRange{StartDate: rng.Start, EndDate: rng.End},
		KPIs: KPISet{
			TotalRevenue:     toFloat64(current.TotalRevenue),
			RevenueGrowthPct: comparisons.Revenue.ChangePct,
			AvgOrderValue:    toFloat64(current.AvgTransaction),
			Transactions:     current.TransactionCount,
			UniqueProducts:   current.UniqueProducts,
			ActivePharmacies: current.UniquePharmacies,
		},
		Summary:     toSummaryResponse(rng, current),
		Comparisons: comparisons,
		Trends:      toTimeBuckets(trends),
		TopProducts: toProductRanks(topProducts),
		MarketShare: toMarketShares(shares),
		Customers:   customerOverview(customers),
		Insights:    executiveInsights(current, previous, topProducts),
		GeneratedAt: time.Now(),
	}, nil
}

// DetailedReport builds the full sales breakdown for the range
func (s *ReportService) DetailedReport(ctx context.Context, rng analytics.DateRange, period analytics.Period) (*DetailedReportResponse, error) {
	performance, err := s.stats.SalesOverTime(ctx, rng, period)
	if err != nil {
		return nil, err
	}
	revenue, err := s.stats.RevenueBreakdown(ctx, rng, period)
	if err != nil {
		return nil, err
	}
	season, err := s.stats.Seasonality(ctx, rng)
	if err != nil {
		return nil, err
	}
	categoryShare, err := s.stats.MarketShare(ctx, rng, analytics.GroupCategory)
	if err != nil {
		return nil, err
	}
	// The full revenue ranking backs the per-category best sellers
	allProducts, err := s.stats.TopProducts(ctx, rng, analytics.MetricRevenue, 1000)
	if err != nil {
		return nil, err
	}
	geographic, err := s.stats.MarketShare(ctx, rng, analytics.GroupLocation)
	if err != nil {
		return nil, err
	}
	if len(geographic) > 10 {
		geographic = geographic[:10]
	}

	return &DetailedReportResponse{
		Period:        PeriodRange{StartDate: rng.Start, EndDate: rng.End},
		Performance:   toTimeBuckets(performance),
		Revenue:       toRevenueResponses(revenue),
		Seasonality:   toSeasonalityResponse(season),
		CategoryShare: categoryShares(categoryShare, allProducts),
		Geographic:    toMarketShares(geographic),
		Stats:         seriesStats(performance),
		GeneratedAt:   time.Now(),
	}, nil
}

// ProductReport builds the product performance report for the range
func (s *ReportService) ProductReport(ctx context.Context, rng analytics.DateRange) (*ProductReportResponse, error) {
	byRevenue, err := s.stats.TopProducts(ctx, rng, analytics.MetricRevenue, 20)
	if err != nil {
		return nil, err
	}
	byQuantity, err := s.stats.TopProducts(ctx, rng, analytics.MetricQuantity, 20)
	if err != nil {
		return nil, err
	}
	byFrequency, err := s.stats.TopProducts(ctx, rng, analytics.MetricFrequency, 20)
	if err != nil {
		return nil, err
	}

	// The full ranking backs category aggregation and the bottom quartile
	allProducts, err := s.stats.TopProducts(ctx, rng, analytics.MetricRevenue, 1000)
	if err != nil {
		return nil, err
	}

	growth, err := s.growthProducts(ctx, rng)
	if err != nil {
		return nil, err
	}

	return &ProductReportResponse{
		Period:         PeriodRange{StartDate: rng.Start, EndDate: rng.End},
		TopByRevenue:   toProductRanks(top(byRevenue, 10)),
		TopByQuantity:  toProductRanks(top(byQuantity, 10)),
		TopByFrequency: toProductRanks(top(byFrequency, 10)),
		Categories:     categoryPerformance(allProducts),
		LowPerformers:  toProductRanks(lowPerformers(allProducts)),
		GrowthProducts: growth,
		Insights:       productInsights(byRevenue),
		GeneratedAt:    time.Now(),
	}, nil
}

// growthProducts compares per-product revenue across the range halves and
// keeps those that grew more than twenty percent
func (s *ReportService) growthProducts(ctx context.Context, rng analytics.DateRange) ([]GrowthProduct, error) {
	first, second := rng.Halves()

	firstTop, err := s.stats.TopProducts(ctx, first, analytics.MetricRevenue, 50)
	if err != nil {
		return nil, err
	}
	secondTop, err := s.stats.TopProducts(ctx, second, analytics.MetricRevenue, 50)
	if err != nil {
		return nil, err
	}

	firstByName := make(map[string]decimal.Decimal, len(firstTop))
	for _, p := range firstTop {
		firstByName[p.ProductName] = p.Revenue
	}

	var growth []GrowthProduct
	for _, p := range secondTop {
		// Products with no first-half sales have no growth baseline
		firstRevenue, ok := firstByName[p.ProductName]
		if !ok {
			continue
		}
		base := firstRevenue
		if !base.IsPositive() {
			base = decimal.NewFromInt(1)
		}
		pct, _ := p.Revenue.Sub(firstRevenue).Div(base).Mul(decimal.NewFromInt(100)).Round(2).Float64()
		if pct > 20 {
			growth = append(growth, GrowthProduct{
				ProductName:       p.ProductName,
				FirstHalfRevenue:  toFloat64(firstRevenue),
				SecondHalfRevenue: toFloat64(p.Revenue),
				GrowthPct:         pct,
			})
		}
	}

	sortGrowthDesc(growth)
	if len(growth) > 10 {
		growth = growth[:10]
	}
	return growth, nil
}

// CustomerReport builds the customer analysis report for the range
func (s *ReportService) CustomerReport(ctx context.Context, rng analytics.DateRange) (*CustomerReportResponse, error) {
	stats, err := s.stats.CustomerStats(ctx, rng)
	if err != nil {
		return nil, err
	}

	segments := segmentCustomers(stats)

	var retention *RetentionResponse
	// Retention over halves is meaningless for short windows
	if rng.Days() >= 60 {
		retention, err = s.retention(ctx, rng)
		if err != nil {
			return nil, err
		}
	}

	crossSell, err := s.crossSell(ctx, rng, stats)
	if err != nil {
		return nil, err
	}

	return &CustomerReportResponse{
		Period:      PeriodRange{StartDate: rng.Start, EndDate: rng.End},
		Segments:    segments,
		Retention:   retention,
		CrossSell:   crossSell,
		Insights:    customerInsights(stats),
		GeneratedAt: time.Now(),
	}, nil
}

// retention compares distinct pharmacy sets across the range halves
func (s *ReportService) retention(ctx context.Context, rng analytics.DateRange) (*RetentionResponse, error) {
	first, second := rng.Halves()

	firstNames, err := s.stats.DistinctPharmacies(ctx, first)
	if err != nil {
		return nil, err
	}
	secondNames, err := s.stats.DistinctPharmacies(ctx, second)
	if err != nil {
		return nil, err
	}

	firstSet := make(map[string]struct{}, len(firstNames))
	for _, name := range firstNames {
		firstSet[name] = struct{}{}
	}
	secondSet := make(map[string]struct{}, len(secondNames))
	for _, name := range secondNames {
		secondSet[name] = struct{}{}
	}

	retained := 0
	var churned []string
	for name := range firstSet {
		if _, ok := secondSet[name]; ok {
			retained++
		} else {
			churned = append(churned, name)
		}
	}
	newCount := 0
	for name := range secondSet {
		if _, ok := firstSet[name]; !ok {
			newCount++
		}
	}

	denom := len(firstNames)
	if denom == 0 {
		denom = 1
	}
	rate := decimal.NewFromInt(int64(retained)).
		Div(decimal.NewFromInt(int64(denom))).
		Mul(decimal.NewFromInt(100)).Round(2)
	ratePct, _ := rate.Float64()

	return &RetentionResponse{
		FirstHalfCustomers:  len(firstNames),
		SecondHalfCustomers: len(secondNames),
		Retained:            retained,
		New:                 newCount,
		Churned:             len(churned),
		RetentionRatePct:    ratePct,
		ChurnedCustomers:    churned,
	}, nil
}

// referenceCategories are the catalog areas checked for cross-sell gaps
var referenceCategories = []string{
	"Antibiotic",
	"Analgesic",
	"Vitamin",
	"Dermatology",
	"Cardiovascular",
	"Respiratory",
}

// crossSell finds categories each top customer has not purchased from
func (s *ReportService) crossSell(ctx context.Context, rng analytics.DateRange, stats []analytics.CustomerStat) ([]CrossSellSuggestion, error) {
	topCustomers := stats
	if len(topCustomers) > 10 {
		topCustomers = topCustomers[:10]
	}

	var suggestions []CrossSellSuggestion
	for _, customer := range topCustomers {
		bought, err := s.stats.CustomerCategories(ctx, rng, customer.PharmacyName)
		if err != nil {
			return nil, err
		}
		boughtSet := make(map[string]struct{}, len(bought))
		for _, category := range bought {
			boughtSet[category] = struct{}{}
		}

		var missing []string
		for _, category := range referenceCategories {
			if _, ok := boughtSet[category]; !ok {
				missing = append(missing, category)
			}
		}
		if len(missing) == 0 {
			continue
		}
		if len(missing) > 3 {
			missing = missing[:3]
		}

		potential := customer.AvgOrderValue.Mul(decimal.NewFromInt(int64(len(missing))))
		suggestions = append(suggestions, CrossSellSuggestion{
			PharmacyName:      customer.PharmacyName,
			MissingCategories: missing,
			PotentialValue:    toFloat64(potential),
			CurrentCategories: len(bought),
		})
		if len(suggestions) == 5 {
			break
		}
	}
	return suggestions, nil
}

// MonthlyReport builds the digest for one calendar month
func (s *ReportService) MonthlyReport(ctx context.Context, year, month int) (*MonthlyReportResponse, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("month must be between 1 and 12, got %d", month)
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	rng := analytics.DateRange{Start: start, End: end}

	summary, err := s.stats.PerformanceSummary(ctx, rng)
	if err != nil {
		return nil, err
	}

	prevStart := start.AddDate(0, -1, 0)
	prevRng := analytics.DateRange{Start: prevStart, End: start.Add(-time.Nanosecond)}
	previous, err := s.stats.PerformanceSummary(ctx, prevRng)
	if err != nil {
		return nil, err
	}

	daily, err := s.stats.SalesOverTime(ctx, rng, analytics.PeriodDay)
	if err != nil {
		return nil, err
	}
	topProducts, err := s.stats.TopProducts(ctx, rng, analytics.MetricRevenue, 10)
	if err != nil {
		return nil, err
	}

	return &MonthlyReportResponse{
		Year:        year,
		Month:       month,
		Period:      PeriodRange{StartDate: rng.Start, EndDate: rng.End},
		Summary:     toSummaryResponse(rng, summary),
		MonthTrend:  toComparisonResponse(analytics.ComparePeriods(summary.TotalRevenue, previous.TotalRevenue)),
		DailyTrend:  toTimeBuckets(daily),
		TopProducts: toProductRanks(topProducts),
		GeneratedAt: time.Now(),
	}, nil
}

// CompareReport compares two arbitrary ranges metric by metric
func (s *ReportService) CompareReport(ctx context.Context, a, b analytics.DateRange) (*ComparativeReportResponse, error) {
	summaryA, err := s.stats.PerformanceSummary(ctx, a)
	if err != nil {
		return nil, err
	}
	summaryB, err := s.stats.PerformanceSummary(ctx, b)
	if err != nil {
		return nil, err
	}

	return &ComparativeReportResponse{
		PeriodA:  PeriodRange{StartDate: a.Start, EndDate: a.End},
		PeriodB:  PeriodRange{StartDate: b.Start, EndDate: b.End},
		SummaryA: toSummaryResponse(a, summaryA),
		SummaryB: toSummaryResponse(b, summaryB),
		Revenue: toComparisonResponse(
			analytics.ComparePeriods(summaryB.TotalRevenue, summaryA.TotalRevenue)),
		Quantity: toComparisonResponse(analytics.ComparePeriods(
			decimal.NewFromInt(summaryB.TotalQuantity), decimal.NewFromInt(summaryA.TotalQuantity))),
		Transactions: toComparisonResponse(analytics.ComparePeriods(
			decimal.NewFromInt(summaryB.TransactionCount), decimal.NewFromInt(summaryA.TransactionCount))),
		AvgOrder: toComparisonResponse(
			analytics.ComparePeriods(summaryB.AvgTransaction, summaryA.AvgTransaction)),
		GeneratedAt: time.Now(),
	}, nil
}
