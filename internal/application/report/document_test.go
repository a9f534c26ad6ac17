package report

import (
	"testing"
	"time"

	appanalytics "github.com/pharmalitics/backend/internal/application/analytics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecutiveSummaryDocument(t *testing.T) {
	resp := &ExecutiveSummaryResponse{
		Period: PeriodRange{
			StartDate: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
		},
		KPIs: KPISet{
			TotalRevenue: 12000, RevenueGrowthPct: 20, AvgOrderValue: 100,
			Transactions: 120, UniqueProducts: 30, ActivePharmacies: 12,
		},
		Summary: appanalytics.SummaryResponse{TotalRevenue: 12000, TransactionCount: 120},
		Comparisons: ComparisonSet{
			Revenue: ComparisonResponse{Current: 12000, Previous: 10000, ChangePct: 20, Direction: "up"},
		},
		TopProducts: []appanalytics.ProductRankResponse{
			{Rank: 1, ProductName: "Amoxicillin 500mg", Category: "Antibiotic", Revenue: 5000},
		},
		Customers: CustomerOverview{
			TotalCustomers: 1,
			TopCustomers: []appanalytics.CustomerStatResponse{
				{PharmacyName: "Central", Revenue: 800, Frequency: 16, AvgOrderValue: 50},
			},
		},
		Insights:    []string{"Excellent revenue growth of 20.00% versus the previous period"},
		GeneratedAt: time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC),
	}

	doc := ExecutiveSummaryDocument(resp)
	assert.Equal(t, "Executive Summary", doc.Title)
	assert.Equal(t, "2025-04-01 to 2025-06-30", doc.Subtitle)
	require.Len(t, doc.Sections, 8)

	kpis := doc.Sections[0]
	assert.Equal(t, "KPIs", kpis.Title)
	assert.Equal(t, "12000.00", kpis.Facts[0].Value)
	assert.Equal(t, "20.00%", kpis.Facts[1].Value)

	comparisons := doc.Sections[2]
	require.NotNil(t, comparisons.Table)
	assert.Equal(t, []string{"Revenue", "10000.00", "12000.00", "20.00%", "up"}, comparisons.Table.Rows[0])

	products := doc.Sections[3]
	require.NotNil(t, products.Table)
	assert.Equal(t, "Amoxicillin 500mg", products.Table.Rows[0][1])

	customers := doc.Sections[5]
	require.NotNil(t, customers.Table)
	assert.Equal(t, "Central", customers.Table.Rows[0][0])

	insights := doc.Sections[7]
	assert.Equal(t, "Insights", insights.Title)
	require.Len(t, insights.Facts, 1)
}

func TestCustomerReportDocumentOmitsRetentionWhenAbsent(t *testing.T) {
	resp := &CustomerReportResponse{
		Period: PeriodRange{
			StartDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC),
		},
		Segments: []CustomerSegment{
			{PharmacyName: "Central", Revenue: 800, Segment: SegmentChampions, ValueTier: TierVIP},
		},
	}

	doc := CustomerReportDocument(resp)
	for _, section := range doc.Sections {
		assert.NotEqual(t, "Retention", section.Title)
	}
}

func TestCompareReportDocument(t *testing.T) {
	resp := &ComparativeReportResponse{
		PeriodA: PeriodRange{
			StartDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
		},
		PeriodB: PeriodRange{
			StartDate: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
		},
		Revenue: ComparisonResponse{Current: 11000, Previous: 10000, ChangePct: 10, Direction: "up"},
	}

	doc := CompareReportDocument(resp)
	require.Len(t, doc.Sections, 3)
	table := doc.Sections[2].Table
	require.NotNil(t, table)
	assert.Equal(t, []string{"Revenue", "10000.00", "11000.00", "10.00%", "up"}, table.Rows[0])
}
