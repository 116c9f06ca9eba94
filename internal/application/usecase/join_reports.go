package usecase

import (
	"context"
	"log/slog"

	"github.com/epharg/eph-dashboard-go/internal/domain/aggregate"
	"github.com/epharg/eph-dashboard-go/internal/domain/derivation"
	"github.com/epharg/eph-dashboard-go/internal/domain/entity"
)

var joinColumns = []string{entity.ColCodusu, entity.ColHouseholdNumber, entity.ColYear, entity.ColQuarter}

// universityMembers is how many graduates a household needs to count.
const universityMembers = 2

// markPeriod runs a pass over ds that marks every row of the join's period.
// Rows of other periods are ignored.
func (e *Engine) markPeriod(ctx context.Context, ds entity.Dataset, join *aggregate.HouseholdJoin, required []string, qualifies func(entity.Record) (bool, error)) error {
	err := e.scan(ctx, ds, append(append([]string(nil), joinColumns...), required...), func(r entity.Record) error {
		p, err := r.Period()
		if err != nil {
			return err
		}
		if p != join.Period() {
			return nil
		}
		id, err := r.HouseholdID()
		if err != nil {
			return err
		}
		ok, err := qualifies(r)
		if err != nil {
			return err
		}
		return rowError(r, entity.ColCodusu, join.Mark(p, id, ok))
	})
	if err != nil {
		return err
	}
	slog.Debug("household join marked", "dataset", ds, "period", join.Period().String(), "households", join.Households())
	return nil
}

// matchPeriod runs a pass over ds calling fn for every row of the join's
// period with whether its household meets threshold.
func (e *Engine) matchPeriod(ctx context.Context, ds entity.Dataset, join *aggregate.HouseholdJoin, threshold int, required []string, fn func(entity.Record, bool) error) error {
	return e.scan(ctx, ds, append(append([]string(nil), joinColumns...), required...), func(r entity.Record) error {
		p, err := r.Period()
		if err != nil {
			return err
		}
		if p != join.Period() {
			return nil
		}
		id, err := r.HouseholdID()
		if err != nil {
			return err
		}
		matched, err := join.Matches(p, id, threshold)
		if err != nil {
			return rowError(r, entity.ColCodusu, err)
		}
		return fn(r, matched)
	})
}

// UniversityHouseholds ranks aglomerados by the share of households with at
// least two members who completed university, in the latest household wave.
func (e *Engine) UniversityHouseholds(ctx context.Context, top int) (entity.ShareReport, error) {
	period, err := e.LatestPeriod(ctx, entity.DatasetHousehold)
	if err != nil {
		return entity.ShareReport{}, err
	}

	join := aggregate.NewHouseholdJoin(period)
	err = e.markPeriod(ctx, entity.DatasetIndividual, join, []string{entity.ColAge, entity.ColEducation},
		func(r entity.Record) (bool, error) {
			return derivation.UniversityComplete(r.Value(entity.ColAge), r.Value(entity.ColEducation)) == derivation.UniversityYes, nil
		})
	if err != nil {
		return entity.ShareReport{}, err
	}

	acc := e.aglomerados()
	err = e.matchPeriod(ctx, entity.DatasetHousehold, join, universityMembers, []string{entity.ColAglomerado, entity.ColPondera},
		func(r entity.Record, matched bool) error {
			w, err := r.Weight()
			if err != nil {
				return err
			}
			return e.addArea(acc, r, entity.ColAglomerado, w, matched)
		})
	if err != nil {
		return entity.ShareReport{}, err
	}

	return entity.ShareReport{
		Title:   "Aglomerados con más hogares con dos o más universitarios",
		Period:  &period,
		Entries: e.shares(aggregate.TopN(aggregate.Rank(acc), top), false),
		Overall: overall(acc),
	}, nil
}

func insufficientHousing(r entity.Record) (bool, error) {
	return derivation.HouseholdHabitability(r) == derivation.HabitabilityInsufficient, nil
}

var habitabilityColumns = []string{
	entity.ColWater, entity.ColWaterOrigin, entity.ColBathroom,
	entity.ColBathroomLocation, entity.ColDrainage, entity.ColRoof,
}

// Retirees lists, per aglomerado, the share of retirees living in housing
// with insufficient habitability in the latest household wave.
func (e *Engine) Retirees(ctx context.Context) (entity.ShareReport, error) {
	period, err := e.LatestPeriod(ctx, entity.DatasetHousehold)
	if err != nil {
		return entity.ShareReport{}, err
	}

	join := aggregate.NewHouseholdJoin(period)
	if err := e.markPeriod(ctx, entity.DatasetHousehold, join, habitabilityColumns, insufficientHousing); err != nil {
		return entity.ShareReport{}, err
	}

	acc := e.aglomerados()
	err = e.matchPeriod(ctx, entity.DatasetIndividual, join, 1, []string{entity.ColAglomerado, entity.ColPondera, entity.ColInactivityCat},
		func(r entity.Record, matched bool) error {
			if r.Value(entity.ColInactivityCat) != "1" {
				return nil
			}
			w, err := r.Weight()
			if err != nil {
				return err
			}
			return e.addArea(acc, r, entity.ColAglomerado, w, matched)
		})
	if err != nil {
		return entity.ShareReport{}, err
	}

	return entity.ShareReport{
		Title:   "Jubilados en viviendas con habitabilidad insuficiente por aglomerado",
		Period:  &period,
		Entries: e.shares(aggregate.Entries(acc), false),
		Overall: overall(acc),
	}, nil
}

// UniversityInsufficient counts weighted people with higher education living
// in housing with insufficient habitability, in the last quarter of year.
func (e *Engine) UniversityInsufficient(ctx context.Context, year int) (entity.PeriodCount, error) {
	period, err := e.LatestQuarterInYear(ctx, entity.DatasetHousehold, year)
	if err != nil {
		return entity.PeriodCount{}, err
	}

	join := aggregate.NewHouseholdJoin(period)
	if err := e.markPeriod(ctx, entity.DatasetHousehold, join, habitabilityColumns, insufficientHousing); err != nil {
		return entity.PeriodCount{}, err
	}

	var count int64
	err = e.matchPeriod(ctx, entity.DatasetIndividual, join, 1, []string{entity.ColPondera, entity.ColEducation},
		func(r entity.Record, matched bool) error {
			if !matched || derivation.EducationLabel(r.Value(entity.ColEducation)) != derivation.HigherEducation {
				return nil
			}
			w, err := r.Weight()
			if err != nil {
				return err
			}
			count += w
			return nil
		})
	if err != nil {
		return entity.PeriodCount{}, err
	}
	return entity.PeriodCount{Period: period, Count: count}, nil
}
