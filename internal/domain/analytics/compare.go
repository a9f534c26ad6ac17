package analytics

import "github.com/shopspring/decimal"

// Direction classifies a period-over-period movement.
const (
	DirectionUp      = "up"
	DirectionDown    = "down"
	DirectionNeutral = "neutral"
)

// Comparison is the outcome of comparing one metric across two periods.
type Comparison struct {
	Current   decimal.Decimal
	Previous  decimal.Decimal
	ChangePct float64
	Direction string
}

// ComparePeriods computes the percentage change from previous to current.
// A zero previous value yields a neutral comparison with 0% change, so a
// metric appearing for the first time is never reported as infinite growth.
func ComparePeriods(current, previous decimal.Decimal) Comparison {
	c := Comparison{Current: current, Previous: previous}
	if previous.IsZero() {
		c.Direction = DirectionNeutral
		return c
	}

	pct, _ := current.Sub(previous).Div(previous).Mul(decimal.NewFromInt(100)).Round(2).Float64()
	c.ChangePct = pct
	switch {
	case pct > 0:
		c.Direction = DirectionUp
	case pct < 0:
		c.Direction = DirectionDown
	default:
		c.Direction = DirectionNeutral
	}
	return c
}

// GrowthRate computes (second-first)/first*100 rounded to two decimals,
// returning 0 when the first value is not positive.
func GrowthRate(first, second decimal.Decimal) float64 {
	if !first.IsPositive() {
		return 0
	}
	pct, _ := second.Sub(first).Div(first).Mul(decimal.NewFromInt(100)).Round(2).Float64()
	return pct
}

// SharePct computes part/total*100 rounded to two decimals, 0 when total is
// zero.
func SharePct(part, total decimal.Decimal) float64 {
	if total.IsZero() {
		return 0
	}
	pct, _ := part.Div(total).Mul(decimal.NewFromInt(100)).Round(2).Float64()
	return pct
}
