package analytics

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveRange(t *testing.T) {
	t.Run("defaults to the last thirty days", func(t *testing.T) {
		r, err := ResolveRange(time.Time{}, time.Time{})
		require.NoError(t, err)

		assert.WithinDuration(t, time.Now(), r.End, time.Second)
		assert.Equal(t, DefaultRangeDays, r.Days())
	})

	t.Run("keeps explicit bounds", func(t *testing.T) {
		start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)

		r, err := ResolveRange(start, end)
		require.NoError(t, err)
		assert.Equal(t, start, r.Start)
		assert.Equal(t, end, r.End)
	})

	t.Run("rejects inverted bounds", func(t *testing.T) {
		start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

		_, err := ResolveRange(start, end)
		assert.Error(t, err)
	})

	t.Run("rejects ranges over three years", func(t *testing.T) {
		end := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
		start := end.AddDate(-4, 0, 0)

		_, err := ResolveRange(start, end)
		assert.Error(t, err)
	})
}

func TestDateRangePrevious(t *testing.T) {
	r := DateRange{
		Start: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC),
	}

	prev := r.Previous()
	assert.Equal(t, time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC), prev.End)
	assert.Equal(t, r.End.Sub(r.Start), prev.End.Sub(prev.Start))
}

func TestDateRangeHalves(t *testing.T) {
	r := DateRange{
		Start: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
	}

	first, second := r.Halves()
	mid := time.Date(2025, 1, 16, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, r.Start, first.Start)
	assert.True(t, first.End.Before(mid))
	assert.Equal(t, mid, second.Start)
	assert.Equal(t, r.End, second.End)
}

func TestQuantile(t *testing.T) {
	values := []float64{10, 20, 30, 40, 50}

	assert.Equal(t, 0.0, Quantile(nil, 0.5))
	assert.Equal(t, 30.0, Quantile(values, 0.5))
	assert.Equal(t, 10.0, Quantile(values, 0))
	assert.Equal(t, 50.0, Quantile(values, 1))
	assert.InDelta(t, 46.0, Quantile(values, 0.9), 1e-9)
	assert.InDelta(t, 23.2, Quantile(values, 0.33), 1e-9)
}

func TestPeriodNormalize(t *testing.T) {
	assert.Equal(t, PeriodDay, Period("day").Normalize())
	assert.Equal(t, PeriodMonth, Period("fortnight").Normalize())
	assert.Equal(t, MetricFrequency, RankMetric("popularity").Normalize())
	assert.Equal(t, GroupCategory, ShareGroup("").Normalize())
}

func TestShareGroupColumn(t *testing.T) {
	assert.Equal(t, "product_name", GroupProduct.Column())
	assert.Equal(t, "product_category", GroupCategory.Column())
	assert.Equal(t, "pharmacy_name", GroupPharmacy.Column())
	assert.Equal(t, "pharmacy_location", GroupLocation.Column())
	assert.Equal(t, "product_category", ShareGroup("bogus").Column())
}

func TestComparePeriods(t *testing.T) {
	t.Run("growth is reported as up", func(t *testing.T) {
		c := ComparePeriods(decimal.NewFromInt(150), decimal.NewFromInt(100))
		assert.Equal(t, DirectionUp, c.Direction)
		assert.Equal(t, 50.0, c.ChangePct)
	})

	t.Run("decline is reported as down", func(t *testing.T) {
		c := ComparePeriods(decimal.NewFromInt(80), decimal.NewFromInt(100))
		assert.Equal(t, DirectionDown, c.Direction)
		assert.Equal(t, -20.0, c.ChangePct)
	})

	t.Run("zero baseline is neutral with zero change", func(t *testing.T) {
		c := ComparePeriods(decimal.NewFromInt(500), decimal.Zero)
		assert.Equal(t, DirectionNeutral, c.Direction)
		assert.Equal(t, 0.0, c.ChangePct)
	})
}

func TestGrowthRate(t *testing.T) {
	assert.Equal(t, 25.0, GrowthRate(decimal.NewFromInt(400), decimal.NewFromInt(500)))
	assert.Equal(t, 0.0, GrowthRate(decimal.Zero, decimal.NewFromInt(500)))
}

func TestSharePct(t *testing.T) {
	assert.Equal(t, 12.5, SharePct(decimal.NewFromInt(25), decimal.NewFromInt(200)))
	assert.Equal(t, 0.0, SharePct(decimal.NewFromInt(25), decimal.Zero))
}
