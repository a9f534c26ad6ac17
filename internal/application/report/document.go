package report

import (
	"fmt"
	"strings"

	appanalytics "github.com/pharmalitics/backend/internal/application/analytics"
	"github.com/pharmalitics/backend/internal/infrastructure/export"
)

const dateLayout = "2006-01-02"

func periodSubtitle(p PeriodRange) string {
	return fmt.Sprintf("%s to %s", p.StartDate.Format(dateLayout), p.EndDate.Format(dateLayout))
}

func money(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func pct(v float64) string {
	return fmt.Sprintf("%.2f%%", v)
}

func summaryFacts(s appanalytics.SummaryResponse) []export.Fact {
	return []export.Fact{
		{Label: "Total Revenue", Value: money(s.TotalRevenue)},
		{Label: "Total Quantity", Value: fmt.Sprintf("%d", s.TotalQuantity)},
		{Label: "Transactions", Value: fmt.Sprintf("%d", s.TransactionCount)},
		{Label: "Avg Transaction", Value: money(s.AvgTransaction)},
		{Label: "Unique Products", Value: fmt.Sprintf("%d", s.UniqueProducts)},
		{Label: "Unique Pharmacies", Value: fmt.Sprintf("%d", s.UniquePharmacies)},
	}
}

func productTable(ranks []appanalytics.ProductRankResponse) *export.Table {
	table := &export.Table{
		Headers: []string{"Rank", "Product", "Category", "Revenue", "Quantity", "Orders"},
	}
	for _, r := range ranks {
		table.Rows = append(table.Rows, []string{
			fmt.Sprintf("%d", r.Rank), r.ProductName, r.Category,
			money(r.Revenue), fmt.Sprintf("%d", r.Quantity), fmt.Sprintf("%d", r.Frequency),
		})
	}
	return table
}

func shareTable(shares []appanalytics.MarketShareResponse) *export.Table {
	table := &export.Table{
		Headers: []string{"Rank", "Name", "Revenue", "Share"},
	}
	for _, s := range shares {
		table.Rows = append(table.Rows, []string{
			fmt.Sprintf("%d", s.Rank), s.Name, money(s.Revenue), pct(s.Percentage),
		})
	}
	return table
}

func trendTable(buckets []appanalytics.TimeBucketResponse) *export.Table {
	table := &export.Table{
		Headers: []string{"Period", "Revenue", "Quantity", "Transactions"},
	}
	for _, b := range buckets {
		table.Rows = append(table.Rows, []string{
			b.Period.Format(dateLayout), money(b.Revenue),
			fmt.Sprintf("%d", b.Quantity), fmt.Sprintf("%d", b.Count),
		})
	}
	return table
}

func insightsSection(insights []string) export.Section {
	section := export.Section{Title: "Insights"}
	for i, insight := range insights {
		section.Facts = append(section.Facts, export.Fact{
			Label: fmt.Sprintf("%d", i+1),
			Value: insight,
		})
	}
	return section
}

// ExecutiveSummaryDocument lays out the executive summary for export
func ExecutiveSummaryDocument(r *ExecutiveSummaryResponse) *export.Document {
	customerTable := &export.Table{
		Headers: []string{"Pharmacy", "Revenue", "Orders", "Avg Order"},
	}
	for _, c := range r.Customers.TopCustomers {
		customerTable.Rows = append(customerTable.Rows, []string{
			c.PharmacyName, money(c.Revenue), fmt.Sprintf("%d", c.Frequency), money(c.AvgOrderValue),
		})
	}

	comparisonRow := func(label string, c ComparisonResponse) []string {
		return []string{label, money(c.Previous), money(c.Current), pct(c.ChangePct), c.Direction}
	}

	return &export.Document{
		Title:       "Executive Summary",
		Subtitle:    periodSubtitle(r.Period),
		GeneratedAt: r.GeneratedAt,
		Sections: []export.Section{
			{
				Title: "KPIs",
				Facts: []export.Fact{
					{Label: "Total Revenue", Value: money(r.KPIs.TotalRevenue)},
					{Label: "Revenue Growth", Value: pct(r.KPIs.RevenueGrowthPct)},
					{Label: "Avg Order Value", Value: money(r.KPIs.AvgOrderValue)},
					{Label: "Transactions", Value: fmt.Sprintf("%d", r.KPIs.Transactions)},
					{Label: "Unique Products", Value: fmt.Sprintf("%d", r.KPIs.UniqueProducts)},
					{Label: "Active Pharmacies", Value: fmt.Sprintf("%d", r.KPIs.ActivePharmacies)},
				},
			},
			{Title: "Summary", Facts: summaryFacts(r.Summary)},
			{
				Title: "Versus Previous Period",
				Table: &export.Table{
					Headers: []string{"Metric", "Previous", "Current", "Change", "Direction"},
					Rows: [][]string{
						comparisonRow("Revenue", r.Comparisons.Revenue),
						comparisonRow("Transactions", r.Comparisons.Transactions),
						comparisonRow("Avg Order Value", r.Comparisons.AvgOrderValue),
					},
				},
			},
			{Title: "Top Products", Table: productTable(r.TopProducts)},
			{Title: "Market Share", Table: shareTable(r.MarketShare)},
			{Title: "Top Customers", Table: customerTable},
			{Title: "Daily Trend", Table: trendTable(r.Trends)},
			insightsSection(r.Insights),
		},
	}
}

// DetailedReportDocument lays out the detailed sales report for export
func DetailedReportDocument(r *DetailedReportResponse) *export.Document {
	seasonTable := &export.Table{Headers: []string{"Bucket", "Avg Revenue"}}
	for _, p := range r.Seasonality.ByWeekday {
		seasonTable.Rows = append(seasonTable.Rows, []string{p.Label, money(p.AvgRevenue)})
	}
	for _, p := range r.Seasonality.ByMonth {
		seasonTable.Rows = append(seasonTable.Rows, []string{p.Label, money(p.AvgRevenue)})
	}

	revenueTable := &export.Table{
		Headers: []string{"Period", "Revenue", "Gross", "Discount", "Rate"},
	}
	for _, b := range r.Revenue {
		revenueTable.Rows = append(revenueTable.Rows, []string{
			b.Period.Format(dateLayout), money(b.Revenue), money(b.GrossRevenue),
			money(b.TotalDiscount), pct(b.DiscountRate),
		})
	}

	categoryTable := &export.Table{
		Headers: []string{"Rank", "Category", "Revenue", "Share", "Best Sellers"},
	}
	for _, c := range r.CategoryShare {
		names := make([]string, len(c.TopProducts))
		for i, p := range c.TopProducts {
			names[i] = p.ProductName
		}
		categoryTable.Rows = append(categoryTable.Rows, []string{
			fmt.Sprintf("%d", c.Share.Rank), c.Share.Name, money(c.Share.Revenue),
			pct(c.Share.Percentage), strings.Join(names, ", "),
		})
	}

	return &export.Document{
		Title:       "Sales Report",
		Subtitle:    periodSubtitle(r.Period),
		GeneratedAt: r.GeneratedAt,
		Sections: []export.Section{
			{
				Title: "Revenue",
				Facts: []export.Fact{
					{Label: "Avg Period Revenue", Value: money(r.Stats.AvgRevenue)},
					{Label: "Best Period Revenue", Value: money(r.Stats.MaxRevenue)},
					{Label: "Periods With Sales", Value: fmt.Sprintf("%d of %d", r.Stats.PeriodsWithSales, r.Stats.TotalPeriods)},
				},
				Table: revenueTable,
			},
			{Title: "Performance", Table: trendTable(r.Performance)},
			{Title: "Category Share", Table: categoryTable},
			{Title: "Geographic", Table: shareTable(r.Geographic)},
			{Title: "Seasonality", Table: seasonTable},
		},
	}
}

// ProductReportDocument lays out the product report for export
func ProductReportDocument(r *ProductReportResponse) *export.Document {
	categoryTable := &export.Table{
		Headers: []string{"Category", "Revenue", "Quantity", "Products", "Avg Product Revenue"},
	}
	for _, c := range r.Categories {
		categoryTable.Rows = append(categoryTable.Rows, []string{
			c.Category, money(c.Revenue), fmt.Sprintf("%d", c.Quantity),
			fmt.Sprintf("%d", c.ProductCount), money(c.AvgProductRevenue),
		})
	}

	growthTable := &export.Table{
		Headers: []string{"Product", "First Half", "Second Half", "Growth"},
	}
	for _, g := range r.GrowthProducts {
		growthTable.Rows = append(growthTable.Rows, []string{
			g.ProductName, money(g.FirstHalfRevenue), money(g.SecondHalfRevenue), pct(g.GrowthPct),
		})
	}

	return &export.Document{
		Title:       "Product Report",
		Subtitle:    periodSubtitle(r.Period),
		GeneratedAt: r.GeneratedAt,
		Sections: []export.Section{
			{Title: "Top by Revenue", Table: productTable(r.TopByRevenue)},
			{Title: "Top by Quantity", Table: productTable(r.TopByQuantity)},
			{Title: "Top by Frequency", Table: productTable(r.TopByFrequency)},
			{Title: "Categories", Table: categoryTable},
			{Title: "Growth Products", Table: growthTable},
			{Title: "Low Performers", Table: productTable(r.LowPerformers)},
			insightsSection(r.Insights),
		},
	}
}

// CustomerReportDocument lays out the customer report for export
func CustomerReportDocument(r *CustomerReportResponse) *export.Document {
	segmentTable := &export.Table{
		Headers: []string{"Pharmacy", "Revenue", "Orders", "Avg Order", "Last Purchase", "Segment", "Tier"},
	}
	for _, s := range r.Segments {
		segmentTable.Rows = append(segmentTable.Rows, []string{
			s.PharmacyName, money(s.Revenue), fmt.Sprintf("%d", s.Frequency),
			money(s.AvgOrderValue), s.LastPurchase.Format(dateLayout), s.Segment, s.ValueTier,
		})
	}

	crossSellTable := &export.Table{
		Headers: []string{"Pharmacy", "Missing Categories", "Potential Value"},
	}
	for _, c := range r.CrossSell {
		crossSellTable.Rows = append(crossSellTable.Rows, []string{
			c.PharmacyName, strings.Join(c.MissingCategories, ", "), money(c.PotentialValue),
		})
	}

	sections := []export.Section{
		{Title: "Segments", Table: segmentTable},
	}
	if r.Retention != nil {
		sections = append(sections, export.Section{
			Title: "Retention",
			Facts: []export.Fact{
				{Label: "First Half Customers", Value: fmt.Sprintf("%d", r.Retention.FirstHalfCustomers)},
				{Label: "Second Half Customers", Value: fmt.Sprintf("%d", r.Retention.SecondHalfCustomers)},
				{Label: "Retained", Value: fmt.Sprintf("%d", r.Retention.Retained)},
				{Label: "New", Value: fmt.Sprintf("%d", r.Retention.New)},
				{Label: "Churned", Value: fmt.Sprintf("%d", r.Retention.Churned)},
				{Label: "Retention Rate", Value: pct(r.Retention.RetentionRatePct)},
			},
		})
	}
	sections = append(sections,
		export.Section{Title: "Cross-sell", Table: crossSellTable},
		insightsSection(r.Insights),
	)

	return &export.Document{
		Title:       "Customer Report",
		Subtitle:    periodSubtitle(r.Period),
		GeneratedAt: r.GeneratedAt,
		Sections:    sections,
	}
}

// MonthlyReportDocument lays out the monthly digest for export
func MonthlyReportDocument(r *MonthlyReportResponse) *export.Document {
	return &export.Document{
		Title:       fmt.Sprintf("Monthly Report %04d-%02d", r.Year, r.Month),
		Subtitle:    periodSubtitle(r.Period),
		GeneratedAt: r.GeneratedAt,
		Sections: []export.Section{
			{
				Title: "Summary",
				Facts: append(summaryFacts(r.Summary), export.Fact{
					Label: "Month Trend",
					Value: fmt.Sprintf("%s (%s)", r.MonthTrend.Direction, pct(r.MonthTrend.ChangePct)),
				}),
			},
			{Title: "Top Products", Table: productTable(r.TopProducts)},
			{Title: "Daily Trend", Table: trendTable(r.DailyTrend)},
		},
	}
}

// CompareReportDocument lays out the comparative report for export
func CompareReportDocument(r *ComparativeReportResponse) *export.Document {
	comparisonRow := func(label string, c ComparisonResponse) []string {
		return []string{label, money(c.Previous), money(c.Current), pct(c.ChangePct), c.Direction}
	}

	return &export.Document{
		Title: "Comparative Report",
		Subtitle: fmt.Sprintf("%s vs %s",
			periodSubtitle(r.PeriodA), periodSubtitle(r.PeriodB)),
		GeneratedAt: r.GeneratedAt,
		Sections: []export.Section{
			{Title: "Period A", Facts: summaryFacts(r.SummaryA)},
			{Title: "Period B", Facts: summaryFacts(r.SummaryB)},
			{
				Title: "Comparison",
				Table: &export.Table{
					Headers: []string{"Metric", "Period A", "Period B", "Change", "Direction"},
					Rows: [][]string{
						comparisonRow("Revenue", r.Revenue),
						comparisonRow("Quantity", r.Quantity),
						comparisonRow("Transactions", r.Transactions),
						comparisonRow("Avg Order", r.AvgOrder),
					},
				},
			},
		},
	}
}
