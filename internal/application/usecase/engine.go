package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/epharg/eph-dashboard-go/internal/domain/aggregate"
	"github.com/epharg/eph-dashboard-go/internal/domain/entity"
	"github.com/epharg/eph-dashboard-go/internal/domain/repository"
	"github.com/epharg/eph-dashboard-go/internal/shared/types"
)

// Engine computes indicators over one set of survey sources. Every method is
// a fresh pass over its inputs; nothing is cached between calls.
type Engine struct {
	repo    repository.SurveyRepository
	catalog *entity.Catalog
	policy  string
	diag    *aggregate.Diagnostics
}

// NewEngine builds an engine. An empty policy rejects unknown aglomerados.
func NewEngine(repo repository.SurveyRepository, catalog *entity.Catalog, policy string) *Engine {
	if catalog == nil {
		catalog = entity.DefaultCatalog()
	}
	if policy == "" {
		policy = types.UnknownReject
	}
	return &Engine{repo: repo, catalog: catalog, policy: policy, diag: aggregate.NewDiagnostics()}
}

// Diagnostics returns the rows skipped so far.
func (e *Engine) Diagnostics() *aggregate.Diagnostics {
	return e.diag
}

// scan runs fn over ds. Rows too short to hold every required column never
// reach fn. Row-level errors are counted and the row is skipped; anything else
// aborts the scan.
func (e *Engine) scan(ctx context.Context, ds entity.Dataset, required []string, fn repository.RecordFunc) error {
	return e.repo.Scan(ctx, ds, required, func(r entity.Record) error {
		err := r.Require(required...)
		if err == nil {
			err = fn(r)
		}
		if err == nil {
			return nil
		}
		var rowErr *types.RowError
		if errors.As(err, &rowErr) {
			e.diag.Skip(string(ds), err)
			return nil
		}
		return err
	})
}

// rowError ties err to the row and column it came from. A nil err stays nil.
func rowError(r entity.Record, col string, err error) error {
	if err == nil {
		return nil
	}
	var rowErr *types.RowError
	if errors.As(err, &rowErr) {
		return err
	}
	return &types.RowError{Line: r.Line(), Column: col, Err: err}
}

func (e *Engine) aglomerados() *aggregate.Accumulator[string] {
	acc := aggregate.NewAccumulator(e.catalog.AglomeradoCodes())
	if e.policy == types.UnknownBucket {
		acc.Seed(entity.UnknownCode)
	}
	return acc
}

func (e *Engine) regions() *aggregate.Accumulator[string] {
	acc := aggregate.NewAccumulator(e.catalog.RegionCodes())
	if e.policy == types.UnknownBucket {
		acc.Seed(entity.UnknownCode)
	}
	return acc
}

// addArea counts one weighted row under the area code read from col.
func (e *Engine) addArea(acc *aggregate.Accumulator[string], r entity.Record, col string, weight int64, matched bool) error {
	code := r.Value(col)
	err := acc.Add(code, weight, matched)
	if errors.Is(err, types.ErrUnknownKey) && e.policy == types.UnknownBucket {
		err = acc.Add(entity.UnknownCode, weight, matched)
	}
	if err != nil {
		return rowError(r, col, err)
	}
	return nil
}

func (e *Engine) areaName(code string, region bool) string {
	if code == entity.UnknownCode {
		return entity.UnknownName
	}
	if region {
		return e.catalog.RegionName(code)
	}
	return e.catalog.AglomeradoName(code)
}

func (e *Engine) shares(entries []aggregate.RankingEntry[string], region bool) []entity.AreaShare {
	out := make([]entity.AreaShare, len(entries))
	for i, en := range entries {
		out[i] = entity.AreaShare{
			Code:       en.Key,
			Name:       e.areaName(en.Key, region),
			Total:      en.Bucket.Total,
			Matched:    en.Bucket.Matched,
			Percentage: en.Percentage,
		}
	}
	return out
}

// overall combines every area of acc into one share.
func overall(acc *aggregate.Accumulator[string]) entity.AreaShare {
	b := acc.Sum()
	return entity.AreaShare{Name: "Total", Total: b.Total, Matched: b.Matched, Percentage: aggregate.Percentage(b)}
}

// requireAglomerado rejects codes outside the catalog.
func (e *Engine) requireAglomerado(code string) (entity.Area, error) {
	if !e.catalog.HasAglomerado(code) {
		return entity.Area{}, fmt.Errorf("%w: aglomerado %q", types.ErrUnknownKey, code)
	}
	return entity.Area{Code: code, Name: e.catalog.AglomeradoName(code)}, nil
}

// weighted reads the period and weight every report needs.
func weighted(r entity.Record) (entity.Period, int64, error) {
	p, err := r.Period()
	if err != nil {
		return entity.Period{}, 0, err
	}
	w, err := r.Weight()
	if err != nil {
		return entity.Period{}, 0, err
	}
	return p, w, nil
}

// inPeriod reports whether r belongs to filter; a nil filter accepts every row.
func inPeriod(r entity.Record, filter *entity.Period) (bool, error) {
	if filter == nil {
		return true, nil
	}
	p, err := r.Period()
	if err != nil {
		return false, err
	}
	return p == *filter, nil
}

func withPeriod(required []string, filter *entity.Period) []string {
	if filter == nil {
		return required
	}
	return append([]string{entity.ColYear, entity.ColQuarter}, required...)
}
