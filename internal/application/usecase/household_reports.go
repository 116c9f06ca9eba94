package usecase

import (
	"context"
	"fmt"

	"github.com/epharg/eph-dashboard-go/internal/domain/aggregate"
	"github.com/epharg/eph-dashboard-go/internal/domain/derivation"
	"github.com/epharg/eph-dashboard-go/internal/domain/entity"
	"github.com/epharg/eph-dashboard-go/internal/shared/types"
)

// tenureReport ranks areas by the share of households whose II7 satisfies match.
func (e *Engine) tenureReport(ctx context.Context, acc *aggregate.Accumulator[string], col string, filter *entity.Period, match func(string) bool) error {
	required := withPeriod([]string{col, entity.ColPondera, entity.ColTenure}, filter)
	return e.scan(ctx, entity.DatasetHousehold, required, func(r entity.Record) error {
		ok, err := inPeriod(r, filter)
		if err != nil || !ok {
			return err
		}
		w, err := r.Weight()
		if err != nil {
			return err
		}
		return e.addArea(acc, r, col, w, match(r.Value(entity.ColTenure)))
	})
}

// Owners ranks aglomerados by the share of owner-occupied households.
func (e *Engine) Owners(ctx context.Context, filter *entity.Period) (entity.ShareReport, error) {
	acc := e.aglomerados()
	owner := func(code string) bool { return code == "1" || code == "2" }
	if err := e.tenureReport(ctx, acc, entity.ColAglomerado, filter, owner); err != nil {
		return entity.ShareReport{}, err
	}
	return entity.ShareReport{
		Title:   "Viviendas ocupadas por sus propietarios por aglomerado",
		Period:  filter,
		Entries: e.shares(aggregate.Rank(acc), false),
		Overall: overall(acc),
	}, nil
}

// Tenants ranks regions by the share of rented households. Percentages are
// rounded to two decimals before ordering.
func (e *Engine) Tenants(ctx context.Context, filter *entity.Period) (entity.ShareReport, error) {
	acc := e.regions()
	tenant := func(code string) bool { return code == "3" }
	if err := e.tenureReport(ctx, acc, entity.ColRegion, filter, tenant); err != nil {
		return entity.ShareReport{}, err
	}
	return entity.ShareReport{
		Title:   "Hogares inquilinos por región",
		Period:  filter,
		Entries: e.shares(aggregate.RankRounded(acc, 2), true),
		Overall: overall(acc),
	}, nil
}

// crowdedMinOccupants is the occupant count above which a household without a
// bathroom counts as crowded.
const crowdedMinOccupants = 2

// Crowded returns the aglomerado with the most weighted households that have
// no bathroom and more than two occupants.
func (e *Engine) Crowded(ctx context.Context, filter *entity.Period) (entity.AreaCount, error) {
	acc := e.aglomerados()
	required := withPeriod([]string{entity.ColAglomerado, entity.ColPondera, entity.ColBathroom, entity.ColOccupants}, filter)

	err := e.scan(ctx, entity.DatasetHousehold, required, func(r entity.Record) error {
		ok, err := inPeriod(r, filter)
		if err != nil || !ok {
			return err
		}
		if r.Value(entity.ColBathroom) != "2" {
			return nil
		}
		occupants, err := r.Int(entity.ColOccupants)
		if err != nil {
			return err
		}
		if occupants <= crowdedMinOccupants {
			return nil
		}
		w, err := r.Weight()
		if err != nil {
			return err
		}
		return e.addArea(acc, r, entity.ColAglomerado, w, true)
	})
	if err != nil {
		return entity.AreaCount{}, err
	}

	code, b, ok := aggregate.MaxByTotal(acc)
	if !ok || b.Total == 0 {
		return entity.AreaCount{}, fmt.Errorf("%w: no households without a bathroom and more than %d occupants", types.ErrEmptyResult, crowdedMinOccupants)
	}
	return entity.AreaCount{Code: code, Name: e.areaName(code, false), Count: b.Total}, nil
}

// Precarious finds, for the last quarter of year, the aglomerados with the
// highest and lowest share of households under a precarious roof.
func (e *Engine) Precarious(ctx context.Context, year int) (entity.ExtremesReport, error) {
	period, err := e.LatestQuarterInYear(ctx, entity.DatasetHousehold, year)
	if err != nil {
		return entity.ExtremesReport{}, err
	}

	acc := e.aglomerados()
	required := []string{entity.ColYear, entity.ColQuarter, entity.ColAglomerado, entity.ColPondera, entity.ColRoof}
	err = e.scan(ctx, entity.DatasetHousehold, required, func(r entity.Record) error {
		p, err := r.Period()
		if err != nil {
			return err
		}
		if p != period {
			return nil
		}
		w, err := r.Weight()
		if err != nil {
			return err
		}
		precarious := derivation.RoofMaterialCategory(r.Value(entity.ColRoof)) == derivation.RoofPrecarious
		return e.addArea(acc, r, entity.ColAglomerado, w, precarious)
	})
	if err != nil {
		return entity.ExtremesReport{}, err
	}

	lowest, highest, ok := aggregate.Extremes(aggregate.EntriesRounded(acc, 2))
	if !ok {
		return entity.ExtremesReport{}, fmt.Errorf("%w: no weighted households in %s", types.ErrEmptyResult, period)
	}
	shares := e.shares([]aggregate.RankingEntry[string]{lowest, highest}, false)
	return entity.ExtremesReport{Period: period, Lowest: shares[0], Highest: shares[1]}, nil
}
