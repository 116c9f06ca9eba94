package aggregate

import (
	"fmt"

	"github.com/epharg/eph-dashboard-go/internal/domain/entity"
	"github.com/epharg/eph-dashboard-go/internal/shared/types"
)

// PeriodTracker keeps the running min and max period of a record stream.
// Rows whose period does not parse are skipped.
type PeriodTracker struct {
	rng     entity.PeriodRange
	seen    bool
	skipped int
}

// Observe reads the period of r. It reports false when the row was skipped.
func (t *PeriodTracker) Observe(r entity.Record) bool {
	p, err := r.Period()
	if err != nil {
		t.skipped++
		return false
	}
	t.ObservePeriod(p)
	return true
}

// ObservePeriod widens the range to include p.
func (t *PeriodTracker) ObservePeriod(p entity.Period) {
	if !t.seen {
		t.rng = entity.PeriodRange{Min: p, Max: p}
		t.seen = true
		return
	}
	if p.Before(t.rng.Min) {
		t.rng.Min = p
	}
	if p.After(t.rng.Max) {
		t.rng.Max = p
	}
}

// Range returns the observed range; ok is false when no row had a valid period.
func (t *PeriodTracker) Range() (entity.PeriodRange, bool) {
	return t.rng, t.seen
}

// Skipped returns the number of rows whose period did not parse.
func (t *PeriodTracker) Skipped() int {
	return t.skipped
}

// CombinePeriods merges two optional ranges. A missing side yields the other
// unchanged.
func CombinePeriods(a entity.PeriodRange, aok bool, b entity.PeriodRange, bok bool) (entity.PeriodRange, bool) {
	switch {
	case aok && bok:
		out := a
		if b.Min.Before(out.Min) {
			out.Min = b.Min
		}
		if b.Max.After(out.Max) {
			out.Max = b.Max
		}
		return out, true
	case aok:
		return a, true
	case bok:
		return b, true
	default:
		return entity.PeriodRange{}, false
	}
}

// QuarterTracker finds the latest quarter present for one year.
type QuarterTracker struct {
	year   int
	latest int
}

// NewQuarterTracker tracks rows of year.
func NewQuarterTracker(year int) *QuarterTracker {
	return &QuarterTracker{year: year}
}

// Observe considers r; rows of other years or with invalid periods are ignored.
func (t *QuarterTracker) Observe(r entity.Record) {
	p, err := r.Period()
	if err != nil || p.Year != t.year {
		return
	}
	if p.Quarter > t.latest {
		t.latest = p.Quarter
	}
}

// Latest returns the latest period of the year, or ErrEmptyResult when no row
// of that year was observed.
func (t *QuarterTracker) Latest() (entity.Period, error) {
	if t.latest == 0 {
		return entity.Period{}, fmt.Errorf("%w: no data for year %d", types.ErrEmptyResult, t.year)
	}
	return entity.Period{Year: t.year, Quarter: t.latest}, nil
}
