package analytics

import (
	"time"

	"github.com/pharmalitics/backend/internal/domain/shared"
)

// DefaultRangeDays is the lookback applied when the caller omits a range.
const DefaultRangeDays = 30

// MaxRangeDays caps a single analytics query at three years.
const MaxRangeDays = 366 * 3

// DateRange is an inclusive [Start, End] window over sale dates.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// ResolveRange fills missing bounds and validates the window. A zero end
// defaults to now, a zero start to end minus thirty days.
func ResolveRange(start, end time.Time) (DateRange, error) {
	if end.IsZero() {
		end = time.Now()
	}
	if start.IsZero() {
		start = end.AddDate(0, 0, -DefaultRangeDays)
	}
	if start.After(end) {
		return DateRange{}, shared.NewDomainError("INVALID_RANGE", "Start date must not be after end date")
	}
	if end.Sub(start) > MaxRangeDays*24*time.Hour {
		return DateRange{}, shared.NewDomainErrorf("INVALID_RANGE", "Date range exceeds %d days", MaxRangeDays)
	}
	return DateRange{Start: start, End: end}, nil
}

// Days returns the whole number of days covered by the range.
func (r DateRange) Days() int {
	return int(r.End.Sub(r.Start).Hours() / 24)
}

// Previous returns the window of equal length immediately preceding this one,
// ending the day before Start.
func (r DateRange) Previous() DateRange {
	length := r.End.Sub(r.Start)
	prevEnd := r.Start.AddDate(0, 0, -1)
	return DateRange{Start: prevEnd.Add(-length), End: prevEnd}
}

// Halves splits the range at its midpoint. The first half ends just before
// the midpoint so a sale stamped exactly at the boundary lands in the second.
func (r DateRange) Halves() (DateRange, DateRange) {
	mid := r.Start.AddDate(0, 0, r.Days()/2)
	return DateRange{Start: r.Start, End: mid.Add(-time.Nanosecond)},
		DateRange{Start: mid, End: r.End}
}
