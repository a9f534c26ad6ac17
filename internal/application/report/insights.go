package report

import (
	"fmt"
	"sort"

	appanalytics "github.com/pharmalitics/backend/internal/application/analytics"
	"github.com/pharmalitics/backend/internal/domain/analytics"
	"github.com/shopspring/decimal"
)

// executiveInsights derives leadership talking points from the summary and
// its prior-period baseline. Thresholds are fixed business conventions.
func executiveInsights(current, previous *analytics.PerformanceSummary, topProducts []analytics.ProductRank) []string {
	insights := []string{}

	// Growth against the baseline; a zero baseline is treated as 1 so a
	// ledger that just started reporting does not produce infinities
	base := previous.TotalRevenue
	if !base.IsPositive() {
		base = decimal.NewFromInt(1)
	}
	growth, _ := current.TotalRevenue.Sub(previous.TotalRevenue).
		Div(base).Mul(decimal.NewFromInt(100)).Round(2).Float64()
	switch {
	case growth > 10:
		insights = append(insights,
			fmt.Sprintf("Excellent revenue growth of %.2f%% versus the previous period", growth))
	case growth > 0:
		insights = append(insights,
			fmt.Sprintf("Positive revenue growth of %.2f%% versus the previous period", growth))
	default:
		insights = append(insights,
			fmt.Sprintf("Revenue declined %.2f%% versus the previous period; investigate recent performance", growth))
	}

	// Concentration of revenue in the top products
	if !current.TotalRevenue.IsZero() && len(topProducts) > 0 {
		topRevenue := decimal.Zero
		for _, p := range topProducts {
			topRevenue = topRevenue.Add(p.Revenue)
		}
		concentration, _ := topRevenue.Div(current.TotalRevenue).
			Mul(decimal.NewFromInt(100)).Round(2).Float64()
		if concentration > 80 {
			insights = append(insights,
				fmt.Sprintf("High product concentration: the top %d products account for %.2f%% of revenue", len(topProducts), concentration))
		} else if concentration < 50 {
			insights = append(insights,
				fmt.Sprintf("Revenue is well distributed: the top %d products account for %.2f%% of revenue", len(topProducts), concentration))
		}
	}

	// Average order value movement
	threshold := previous.AvgTransaction.Mul(decimal.NewFromFloat(1.05))
	floor := previous.AvgTransaction.Mul(decimal.NewFromFloat(0.95))
	if current.AvgTransaction.GreaterThan(threshold) {
		insights = append(insights, "Average order value is growing")
	} else if current.AvgTransaction.LessThan(floor) {
		insights = append(insights, "Average order value is declining")
	}

	// Portfolio breadth
	if current.UniqueProducts > 50 {
		insights = append(insights,
			fmt.Sprintf("Diversified portfolio with %d active products", current.UniqueProducts))
	} else if current.UniqueProducts < 20 {
		insights = append(insights,
			fmt.Sprintf("Concentrated portfolio with only %d active products", current.UniqueProducts))
	}

	return insights
}

// productInsights names the revenue leader and the dominant category
func productInsights(byRevenue []analytics.ProductRank) []string {
	insights := []string{}
	if len(byRevenue) == 0 {
		return insights
	}

	leader := byRevenue[0]
	insights = append(insights,
		fmt.Sprintf("%s leads revenue with %.2f", leader.ProductName, toFloat64(leader.Revenue)))

	counts := map[string]int{}
	topN := byRevenue
	if len(topN) > 10 {
		topN = topN[:10]
	}
	for _, p := range topN {
		counts[p.Category]++
	}
	dominant, max := "", 0
	for category, count := range counts {
		if count > max {
			dominant, max = category, count
		}
	}
	if dominant != "" && max > 1 {
		insights = append(insights,
			fmt.Sprintf("%s dominates the top sellers with %d of the top %d products", dominant, max, len(topN)))
	}
	return insights
}

// customerInsights reports base size and top-customer concentration
func customerInsights(stats []analytics.CustomerStat) []string {
	insights := []string{
		fmt.Sprintf("%d active customers in the period", len(stats)),
	}
	if len(stats) == 0 {
		return insights
	}

	total := decimal.Zero
	topRevenue := decimal.Zero
	for i, stat := range stats {
		total = total.Add(stat.Revenue)
		if i < 5 {
			topRevenue = topRevenue.Add(stat.Revenue)
		}
	}
	if !total.IsZero() {
		concentration, _ := topRevenue.Div(total).Mul(decimal.NewFromInt(100)).Round(2).Float64()
		insights = append(insights,
			fmt.Sprintf("The top 5 customers account for %.2f%% of revenue", concentration))
	}
	return insights
}

// segmentCustomers assigns RFM segments from revenue and frequency
// quartiles and value tiers from the base means
func segmentCustomers(stats []analytics.CustomerStat) []CustomerSegment {
	revenues := make([]float64, len(stats))
	frequencies := make([]float64, len(stats))
	for i, stat := range stats {
		revenues[i] = toFloat64(stat.Revenue)
		frequencies[i] = float64(stat.Frequency)
	}

	revQ1 := analytics.Quantile(revenues, 0.25)
	revQ2 := analytics.Quantile(revenues, 0.5)
	revQ3 := analytics.Quantile(revenues, 0.75)
	freqQ2 := analytics.Quantile(frequencies, 0.5)
	freqQ3 := analytics.Quantile(frequencies, 0.75)
	revMean := analytics.Mean(revenues)
	freqMean := analytics.Mean(frequencies)

	segments := make([]CustomerSegment, len(stats))
	for i, stat := range stats {
		revenue := revenues[i]
		frequency := frequencies[i]

		segment := SegmentLost
		switch {
		case revenue >= revQ3 && frequency >= freqQ3:
			segment = SegmentChampions
		case revenue >= revQ2 || frequency >= freqQ2:
			segment = SegmentPotential
		case revenue >= revQ1:
			segment = SegmentAtRisk
		}

		tier := TierBasic
		switch {
		case revenue >= revMean && frequency >= freqMean:
			tier = TierVIP
		case revenue >= revMean:
			tier = TierGrowth
		case frequency >= freqMean:
			tier = TierPotential
		}

		segments[i] = CustomerSegment{
			PharmacyName:  stat.PharmacyName,
			Revenue:       revenue,
			Frequency:     stat.Frequency,
			AvgOrderValue: toFloat64(stat.AvgOrderValue),
			LastPurchase:  stat.LastPurchase,
			Segment:       segment,
			ValueTier:     tier,
		}
	}
	return segments
}

// categoryPerformance groups a product ranking by category
func categoryPerformance(products []analytics.ProductRank) []CategoryPerformance {
	type acc struct {
		revenue  decimal.Decimal
		quantity int64
		count    int
	}
	byCategory := map[string]*acc{}
	order := []string{}
	for _, p := range products {
		a, ok := byCategory[p.Category]
		if !ok {
			a = &acc{revenue: decimal.Zero}
			byCategory[p.Category] = a
			order = append(order, p.Category)
		}
		a.revenue = a.revenue.Add(p.Revenue)
		a.quantity += p.Quantity
		a.count++
	}

	out := make([]CategoryPerformance, 0, len(order))
	for _, category := range order {
		a := byCategory[category]
		count := a.count
		if count == 0 {
			count = 1
		}
		avg := a.revenue.Div(decimal.NewFromInt(int64(count)))
		out = append(out, CategoryPerformance{
			Category:          category,
			Revenue:           toFloat64(a.revenue),
			Quantity:          a.quantity,
			ProductCount:      a.count,
			AvgProductRevenue: toFloat64(avg),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Revenue > out[j].Revenue })
	return out
}

// lowPerformers returns the bottom quartile of a revenue ranking, capped at 10
func lowPerformers(products []analytics.ProductRank) []analytics.ProductRank {
	if len(products) == 0 {
		return nil
	}
	cut := int(float64(len(products)) * 0.75)
	bottom := products[cut:]
	if len(bottom) > 10 {
		bottom = bottom[len(bottom)-10:]
	}
	return bottom
}

// seriesStats summarizes a bucketed time series
func seriesStats(buckets []analytics.TimeBucket) SeriesStats {
	stats := SeriesStats{TotalPeriods: len(buckets)}
	if len(buckets) == 0 {
		return stats
	}

	total := decimal.Zero
	min := buckets[0].Revenue
	max := buckets[0].Revenue
	var quantity int64
	for _, b := range buckets {
		total = total.Add(b.Revenue)
		quantity += b.Quantity
		if b.Revenue.LessThan(min) {
			min = b.Revenue
		}
		if b.Revenue.GreaterThan(max) {
			max = b.Revenue
		}
		if b.Revenue.IsPositive() {
			stats.PeriodsWithSales++
		}
	}

	n := decimal.NewFromInt(int64(len(buckets)))
	stats.AvgRevenue = toFloat64(total.Div(n))
	stats.MaxRevenue = toFloat64(max)
	stats.MinRevenue = toFloat64(min)
	stats.AvgQuantity = float64(quantity) / float64(len(buckets))
	return stats
}

func top(products []analytics.ProductRank, n int) []analytics.ProductRank {
	if len(products) > n {
		return products[:n]
	}
	return products
}

func sortGrowthDesc(growth []GrowthProduct) {
	sort.Slice(growth, func(i, j int) bool { return growth[i].GrowthPct > growth[j].GrowthPct })
}

// ===== response mapping =====

func toFloat64(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}

func toComparisonResponse(c analytics.Comparison) ComparisonResponse {
	return ComparisonResponse{
		Current:   toFloat64(c.Current),
		Previous:  toFloat64(c.Previous),
		ChangePct: c.ChangePct,
		Direction: c.Direction,
	}
}

func toSummaryResponse(rng analytics.DateRange, s *analytics.PerformanceSummary) appanalytics.SummaryResponse {
	return appanalytics.SummaryResponse{
		StartDate:        rng.Start,
		EndDate:          rng.End,
		TotalRevenue:     toFloat64(s.TotalRevenue),
		TotalQuantity:    s.TotalQuantity,
		TransactionCount: s.TransactionCount,
		AvgTransaction:   toFloat64(s.AvgTransaction),
		UniqueProducts:   s.UniqueProducts,
		UniquePharmacies: s.UniquePharmacies,
	}
}

func toTimeBuckets(buckets []analytics.TimeBucket) []appanalytics.TimeBucketResponse {
	out := make([]appanalytics.TimeBucketResponse, len(buckets))
	for i, b := range buckets {
		out[i] = appanalytics.TimeBucketResponse{
			Period:        b.Period,
			Revenue:       toFloat64(b.Revenue),
			Quantity:      b.Quantity,
			Count:         b.Count,
			AvgOrderValue: toFloat64(b.AvgOrderValue),
		}
	}
	return out
}

func toMarketShare(share analytics.MarketShare) appanalytics.MarketShareResponse {
	return appanalytics.MarketShareResponse{
		Name:       share.Name,
		Revenue:    toFloat64(share.Revenue),
		Quantity:   share.Quantity,
		Count:      share.Count,
		Percentage: share.Percentage,
		Rank:       share.Rank,
	}
}

func toMarketShares(shares []analytics.MarketShare) []appanalytics.MarketShareResponse {
	out := make([]appanalytics.MarketShareResponse, len(shares))
	for i, share := range shares {
		out[i] = toMarketShare(share)
	}
	return out
}

func toProductRanks(ranks []analytics.ProductRank) []appanalytics.ProductRankResponse {
	out := make([]appanalytics.ProductRankResponse, len(ranks))
	for i, rank := range ranks {
		out[i] = appanalytics.ProductRankResponse{
			Rank:          rank.Rank,
			ProductName:   rank.ProductName,
			Category:      rank.Category,
			Revenue:       toFloat64(rank.Revenue),
			Quantity:      rank.Quantity,
			Frequency:     rank.Frequency,
			AvgOrderValue: toFloat64(rank.AvgOrderValue),
		}
	}
	return out
}

func toCustomerStats(stats []analytics.CustomerStat) []appanalytics.CustomerStatResponse {
	out := make([]appanalytics.CustomerStatResponse, len(stats))
	for i, stat := range stats {
		out[i] = appanalytics.CustomerStatResponse{
			PharmacyName:  stat.PharmacyName,
			Revenue:       toFloat64(stat.Revenue),
			Quantity:      stat.Quantity,
			Frequency:     stat.Frequency,
			AvgOrderValue: toFloat64(stat.AvgOrderValue),
			LastPurchase:  stat.LastPurchase,
		}
	}
	return out
}

// customerOverview condenses the customer base into the executive view:
// the three largest accounts, value-tier counts and the mean account value.
// Tiers follow the same revenue percentiles as the customer analysis.
func customerOverview(stats []analytics.CustomerStat) CustomerOverview {
	revenues := make([]float64, len(stats))
	for i, stat := range stats {
		revenues[i] = toFloat64(stat.Revenue)
	}
	p66 := analytics.Quantile(revenues, 0.66)
	p90 := analytics.Quantile(revenues, 0.90)

	var counts appanalytics.SegmentCounts
	for _, revenue := range revenues {
		switch {
		case revenue >= p90:
			counts.HighValue++
		case revenue >= p66:
			counts.MediumValue++
		default:
			counts.LowValue++
		}
	}

	topCustomers := stats
	if len(topCustomers) > 3 {
		topCustomers = topCustomers[:3]
	}
	return CustomerOverview{
		TotalCustomers:   len(stats),
		TopCustomers:     toCustomerStats(topCustomers),
		Segments:         counts,
		AvgCustomerValue: analytics.Mean(revenues),
	}
}

// categoryShares pairs each category's market share with its best sellers,
// drawn from the full revenue ranking.
func categoryShares(shares []analytics.MarketShare, products []analytics.ProductRank) []CategoryShareResponse {
	byCategory := map[string][]analytics.ProductRank{}
	for _, p := range products {
		if len(byCategory[p.Category]) < 5 {
			byCategory[p.Category] = append(byCategory[p.Category], p)
		}
	}

	out := make([]CategoryShareResponse, len(shares))
	for i, share := range shares {
		out[i] = CategoryShareResponse{
			Share:       toMarketShare(share),
			TopProducts: toProductRanks(byCategory[share.Name]),
		}
	}
	return out
}

func toRevenueResponses(breakdowns []analytics.RevenueBreakdown) []appanalytics.RevenueResponse {
	out := make([]appanalytics.RevenueResponse, len(breakdowns))
	for i, b := range breakdowns {
		out[i] = appanalytics.RevenueResponse{
			Period:        b.Period,
			Revenue:       toFloat64(b.NetRevenue),
			GrossRevenue:  toFloat64(b.GrossRevenue),
			TotalDiscount: toFloat64(b.Discounts),
			Transactions:  b.Transactions,
			DiscountRate:  b.DiscountRate,
		}
	}
	return out
}

func toSeasonalityResponse(s *analytics.Seasonality) appanalytics.SeasonalityResponse {
	out := appanalytics.SeasonalityResponse{
		ByWeekday: make([]appanalytics.SeasonalityPointResponse, len(s.ByWeekday)),
		ByMonth:   make([]appanalytics.SeasonalityPointResponse, len(s.ByMonth)),
	}
	for i, point := range s.ByWeekday {
		out.ByWeekday[i] = appanalytics.SeasonalityPointResponse{
			Label:      point.Label,
			Index:      point.Index,
			AvgRevenue: toFloat64(point.AvgRevenue),
		}
	}
	for i, point := range s.ByMonth {
		out.ByMonth[i] = appanalytics.SeasonalityPointResponse{
			Label:      point.Label,
			Index:      point.Index,
			AvgRevenue: toFloat64(point.AvgRevenue),
		}
	}
	return out
}
