package usecase

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/epharg/eph-dashboard-go/internal/domain/aggregate"
	"github.com/epharg/eph-dashboard-go/internal/domain/entity"
	"github.com/epharg/eph-dashboard-go/internal/shared/types"
)

const (
	basketDateLayout = "2006-01-02"
	povertyMembers   = 4
	keyIndigence     = "indigence"
	keyPoverty       = "poverty"
)

// basketLines averages the indigence and poverty lines over the months of p.
func (e *Engine) basketLines(ctx context.Context, p entity.Period) (indigence, poverty float64, err error) {
	months := p.Months()
	var n int
	required := []string{entity.ColBasketDate, entity.ColIndigenceLine, entity.ColPovertyLine}

	err = e.scan(ctx, entity.DatasetBasket, required, func(r entity.Record) error {
		raw := r.Value(entity.ColBasketDate)
		date, err := time.Parse(basketDateLayout, raw)
		if err != nil {
			return &types.RowError{Line: r.Line(), Column: entity.ColBasketDate, Err: fmt.Errorf("%w: date %q", types.ErrMalformedNumeric, raw)}
		}
		if date.Year() != p.Year || !slices.Contains(months, int(date.Month())) {
			return nil
		}
		ind, err := r.Float(entity.ColIndigenceLine)
		if err != nil {
			return err
		}
		pov, err := r.Float(entity.ColPovertyLine)
		if err != nil {
			return err
		}
		indigence += ind
		poverty += pov
		n++
		return nil
	})
	if err != nil {
		return 0, 0, err
	}
	if n == 0 {
		return 0, 0, fmt.Errorf("%w: no basket values for %s", types.ErrEmptyResult, p)
	}
	return indigence / float64(n), poverty / float64(n), nil
}

// Poverty compares the income of four-member households in period with the
// mean basket lines of its quarter.
func (e *Engine) Poverty(ctx context.Context, period entity.Period) (entity.PovertyReport, error) {
	indigence, poverty, err := e.basketLines(ctx, period)
	if err != nil {
		return entity.PovertyReport{}, err
	}

	acc := aggregate.NewAccumulator([]string{keyIndigence, keyPoverty})
	required := []string{entity.ColYear, entity.ColQuarter, entity.ColPondera, entity.ColOccupants, entity.ColFamilyIncome}

	err = e.scan(ctx, entity.DatasetHousehold, required, func(r entity.Record) error {
		p, err := r.Period()
		if err != nil {
			return err
		}
		if p != period {
			return nil
		}
		members, err := r.Int(entity.ColOccupants)
		if err != nil {
			return err
		}
		if members != povertyMembers {
			return nil
		}
		income, err := r.Float(entity.ColFamilyIncome)
		if err != nil {
			return err
		}
		w, err := r.Weight()
		if err != nil {
			return err
		}
		if err := acc.Add(keyIndigence, w, income < indigence); err != nil {
			return rowError(r, entity.ColPondera, err)
		}
		return rowError(r, entity.ColPondera, acc.Add(keyPoverty, w, income < poverty))
	})
	if err != nil {
		return entity.PovertyReport{}, err
	}

	ib, pb := acc.Bucket(keyIndigence), acc.Bucket(keyPoverty)
	if ib.Total == 0 {
		return entity.PovertyReport{}, fmt.Errorf("%w: no four-member households in %s", types.ErrEmptyResult, period)
	}
	return entity.PovertyReport{
		Period:              period,
		IndigenceLine:       indigence,
		PovertyLine:         poverty,
		Households:          ib.Total,
		BelowIndigence:      ib.Matched,
		BelowPoverty:        pb.Matched,
		IndigencePercentage: aggregate.Percentage(ib),
		PovertyPercentage:   aggregate.Percentage(pb),
	}, nil
}
