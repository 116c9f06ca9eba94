package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/epharg/eph-dashboard-go/internal/domain/aggregate"
	"github.com/epharg/eph-dashboard-go/internal/domain/entity"
	"github.com/epharg/eph-dashboard-go/internal/shared/types"
)

var periodColumns = []string{entity.ColYear, entity.ColQuarter}

// ResolvePeriods returns the first and last wave of ds. ok is false when no
// row carries a valid period.
func (e *Engine) ResolvePeriods(ctx context.Context, ds entity.Dataset) (entity.PeriodRange, bool, error) {
	var tracker aggregate.PeriodTracker
	err := e.repo.Scan(ctx, ds, periodColumns, func(r entity.Record) error {
		tracker.Observe(r)
		return nil
	})
	if err != nil {
		return entity.PeriodRange{}, false, err
	}
	if n := tracker.Skipped(); n > 0 {
		slog.Debug("rows without a valid period", "dataset", ds, "rows", n)
	}
	rng, ok := tracker.Range()
	return rng, ok, nil
}

// LatestPeriod returns the last wave of ds or ErrEmptyResult.
func (e *Engine) LatestPeriod(ctx context.Context, ds entity.Dataset) (entity.Period, error) {
	rng, ok, err := e.ResolvePeriods(ctx, ds)
	if err != nil {
		return entity.Period{}, err
	}
	if !ok {
		return entity.Period{}, fmt.Errorf("%w: %s has no valid periods", types.ErrEmptyResult, ds)
	}
	return rng.Max, nil
}

// ResolveCombined merges the ranges of the household and individual files.
// A file that cannot be read counts as having no periods.
func (e *Engine) ResolveCombined(ctx context.Context) (entity.PeriodRange, bool, error) {
	report, err := e.Periods(ctx)
	if errors.Is(err, types.ErrEmptyResult) {
		return entity.PeriodRange{}, false, nil
	}
	if err != nil {
		return entity.PeriodRange{}, false, err
	}
	return *report.Combined, true, nil
}

// LatestQuarterInYear returns the last wave of year present in ds.
func (e *Engine) LatestQuarterInYear(ctx context.Context, ds entity.Dataset, year int) (entity.Period, error) {
	tracker := aggregate.NewQuarterTracker(year)
	err := e.repo.Scan(ctx, ds, periodColumns, func(r entity.Record) error {
		tracker.Observe(r)
		return nil
	})
	if err != nil {
		return entity.Period{}, err
	}
	return tracker.Latest()
}

// Periods reports the ranges of both files and their combination.
func (e *Engine) Periods(ctx context.Context) (entity.PeriodsReport, error) {
	var report entity.PeriodsReport

	resolve := func(ds entity.Dataset) (*entity.PeriodRange, error) {
		rng, ok, err := e.ResolvePeriods(ctx, ds)
		if errors.Is(err, types.ErrSourceUnavailable) {
			slog.Debug("dataset unavailable for period lookup", "dataset", ds, "error", err)
			return nil, nil
		}
		if err != nil || !ok {
			return nil, err
		}
		return &rng, nil
	}

	var err error
	if report.Household, err = resolve(entity.DatasetHousehold); err != nil {
		return report, err
	}
	if report.Individual, err = resolve(entity.DatasetIndividual); err != nil {
		return report, err
	}

	var a, b entity.PeriodRange
	if report.Household != nil {
		a = *report.Household
	}
	if report.Individual != nil {
		b = *report.Individual
	}
	combined, ok := aggregate.CombinePeriods(a, report.Household != nil, b, report.Individual != nil)
	if !ok {
		return report, fmt.Errorf("%w: no valid periods in either file", types.ErrEmptyResult)
	}
	report.Combined = &combined
	return report, nil
}
