package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/epharg/eph-dashboard-go/internal/domain/aggregate"
	"github.com/epharg/eph-dashboard-go/internal/domain/derivation"
	"github.com/epharg/eph-dashboard-go/internal/domain/entity"
	"github.com/epharg/eph-dashboard-go/internal/shared/types"
)

// literacyMinAge is the age above which literacy is measured.
const literacyMinAge = 6

// Literacy splits people older than six into literate and illiterate for the
// fourth quarter of every year, in year order.
func (e *Engine) Literacy(ctx context.Context) ([]entity.LiteracyYear, error) {
	acc := aggregate.NewGrowingAccumulator[int]()
	required := []string{entity.ColYear, entity.ColQuarter, entity.ColAge, entity.ColLiterate, entity.ColPondera}

	err := e.scan(ctx, entity.DatasetIndividual, required, func(r entity.Record) error {
		p, err := r.Period()
		if err != nil {
			return err
		}
		if p.Quarter != 4 {
			return nil
		}
		age, err := r.Int(entity.ColAge)
		if err != nil {
			return err
		}
		if age <= literacyMinAge {
			return nil
		}
		w, err := r.Weight()
		if err != nil {
			return err
		}
		return rowError(r, entity.ColYear, acc.Add(p.Year, w, r.Value(entity.ColLiterate) == "1"))
	})
	if err != nil {
		return nil, err
	}
	if acc.Len() == 0 {
		return nil, fmt.Errorf("%w: no fourth-quarter rows", types.ErrEmptyResult)
	}

	years := acc.Keys()
	sort.Ints(years)
	out := make([]entity.LiteracyYear, 0, len(years))
	for _, y := range years {
		b := acc.Bucket(y)
		lit := aggregate.Percentage(b)
		illit := 0.0
		if b.Total > 0 {
			illit = 100 - lit
		}
		out = append(out, entity.LiteracyYear{Year: y, Total: b.Total, LiteratePercentage: lit, IlliteratePercentage: illit})
	}
	return out, nil
}

func isUniversityLevel(code string) bool {
	return code == "7" || code == "8"
}

func bornAbroad(code string) bool {
	return code == "4" || code == "5"
}

// Immigrants returns the share of people in period born abroad who attended
// university, over everyone surveyed in that period.
func (e *Engine) Immigrants(ctx context.Context, period entity.Period) (entity.PeriodShare, error) {
	acc := aggregate.NewAccumulator([]entity.Period{period})
	required := []string{entity.ColYear, entity.ColQuarter, entity.ColPondera, entity.ColHighestLevel, entity.ColBirthplace}

	err := e.scan(ctx, entity.DatasetIndividual, required, func(r entity.Record) error {
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
		matched := isUniversityLevel(r.Value(entity.ColHighestLevel)) && bornAbroad(r.Value(entity.ColBirthplace))
		return rowError(r, entity.ColPondera, acc.Add(p, w, matched))
	})
	if err != nil {
		return entity.PeriodShare{}, err
	}

	b := acc.Bucket(period)
	if b.Total == 0 {
		return entity.PeriodShare{}, fmt.Errorf("%w: no people surveyed in %s", types.ErrEmptyResult, period)
	}
	return entity.PeriodShare{Period: period, Total: b.Total, Matched: b.Matched, Percentage: aggregate.Percentage(b)}, nil
}

// Unemployment returns the wave with the lowest weighted unemployed count.
// Ties go to the wave seen first.
func (e *Engine) Unemployment(ctx context.Context) (entity.PeriodCount, error) {
	acc := aggregate.NewGrowingAccumulator[entity.Period]()
	required := []string{entity.ColYear, entity.ColQuarter, entity.ColPondera, entity.ColLaborState, entity.ColOccupationCat}

	err := e.scan(ctx, entity.DatasetIndividual, required, func(r entity.Record) error {
		p, w, err := weighted(r)
		if err != nil {
			return err
		}
		cond := derivation.LaborCondition(r.Value(entity.ColLaborState), r.Value(entity.ColOccupationCat))
		return rowError(r, entity.ColPondera, acc.Add(p, w, cond == derivation.LaborUnemployed))
	})
	if err != nil {
		return entity.PeriodCount{}, err
	}

	p, b, ok := aggregate.MinByMatched(acc)
	if !ok {
		return entity.PeriodCount{}, fmt.Errorf("%w: no waves with valid rows", types.ErrEmptyResult)
	}
	return entity.PeriodCount{Period: p, Count: b.Matched}, nil
}

// University ranks aglomerados by the share of people who reached higher
// education.
func (e *Engine) University(ctx context.Context, filter *entity.Period) (entity.ShareReport, error) {
	acc := e.aglomerados()
	required := withPeriod([]string{entity.ColAglomerado, entity.ColPondera, entity.ColEducation}, filter)

	err := e.scan(ctx, entity.DatasetIndividual, required, func(r entity.Record) error {
		ok, err := inPeriod(r, filter)
		if err != nil || !ok {
			return err
		}
		w, err := r.Weight()
		if err != nil {
			return err
		}
		ed := r.Value(entity.ColEducation)
		return e.addArea(acc, r, entity.ColAglomerado, w, ed == "5" || ed == "6")
	})
	if err != nil {
		return entity.ShareReport{}, err
	}
	return entity.ShareReport{
		Title:   "Personas con estudios universitarios o superiores por aglomerado",
		Period:  filter,
		Entries: e.shares(aggregate.Rank(acc), false),
		Overall: overall(acc),
	}, nil
}

// Education tabulates adults of one aglomerado by education level for every
// wave, in period order.
func (e *Engine) Education(ctx context.Context, aglomerado string) (entity.EducationReport, error) {
	area, err := e.requireAglomerado(aglomerado)
	if err != nil {
		return entity.EducationReport{}, err
	}

	type levelKey struct {
		period entity.Period
		level  int
	}
	waves := aggregate.NewGrowingAccumulator[entity.Period]()
	levels := aggregate.NewGrowingAccumulator[levelKey]()
	required := []string{entity.ColYear, entity.ColQuarter, entity.ColAglomerado, entity.ColAge, entity.ColEducation, entity.ColPondera}

	err = e.scan(ctx, entity.DatasetIndividual, required, func(r entity.Record) error {
		if r.Value(entity.ColAglomerado) != aglomerado {
			return nil
		}
		age, err := r.Int(entity.ColAge)
		if err != nil {
			return err
		}
		if age < derivation.AdultAge {
			return nil
		}
		p, w, err := weighted(r)
		if err != nil {
			return err
		}
		level := derivation.EducationBucket(r.Value(entity.ColEducation))
		if err := waves.Add(p, w, level >= 0); err != nil {
			return rowError(r, entity.ColPondera, err)
		}
		if level < 0 {
			return nil
		}
		return rowError(r, entity.ColPondera, levels.Add(levelKey{p, level}, w, true))
	})
	if err != nil {
		return entity.EducationReport{}, err
	}
	if waves.Len() == 0 {
		return entity.EducationReport{}, fmt.Errorf("%w: no adults surveyed in %s", types.ErrEmptyResult, area.Name)
	}

	periods := waves.Keys()
	sortPeriods(periods)
	report := entity.EducationReport{Aglomerado: area, Rows: make([]entity.EducationRow, 0, len(periods))}
	for _, p := range periods {
		row := entity.EducationRow{Period: p}
		for i := range row.Counts {
			row.Counts[i] = levels.Bucket(levelKey{p, i}).Total
		}
		report.Rows = append(report.Rows, row)
	}
	return report, nil
}

// secondaryIncomplete accumulates adults of one aglomerado per wave, matching
// those with incomplete secondary education.
func (e *Engine) secondaryIncomplete(ctx context.Context, aglomerado string) (*aggregate.Accumulator[entity.Period], error) {
	acc := aggregate.NewGrowingAccumulator[entity.Period]()
	required := []string{entity.ColYear, entity.ColQuarter, entity.ColAglomerado, entity.ColAge, entity.ColEducation, entity.ColPondera}

	err := e.scan(ctx, entity.DatasetIndividual, required, func(r entity.Record) error {
		if r.Value(entity.ColAglomerado) != aglomerado {
			return nil
		}
		age, err := r.Int(entity.ColAge)
		if err != nil {
			return err
		}
		if age < derivation.AdultAge {
			return nil
		}
		p, w, err := weighted(r)
		if err != nil {
			return err
		}
		return rowError(r, entity.ColPondera, acc.Add(p, w, r.Value(entity.ColEducation) == "3"))
	})
	return acc, err
}

// Compare lists, for every wave present in both aglomerados, the share of
// adults with incomplete secondary education. Each aglomerado is a separate
// pass over the file.
func (e *Engine) Compare(ctx context.Context, first, second string) (entity.ComparisonReport, error) {
	a, err := e.requireAglomerado(first)
	if err != nil {
		return entity.ComparisonReport{}, err
	}
	b, err := e.requireAglomerado(second)
	if err != nil {
		return entity.ComparisonReport{}, err
	}

	accA, err := e.secondaryIncomplete(ctx, first)
	if err != nil {
		return entity.ComparisonReport{}, err
	}
	accB, err := e.secondaryIncomplete(ctx, second)
	if err != nil {
		return entity.ComparisonReport{}, err
	}

	periods := accA.Keys()
	sortPeriods(periods)
	report := entity.ComparisonReport{First: a, Second: b}
	for _, p := range periods {
		if !accB.Has(p) {
			continue
		}
		report.Rows = append(report.Rows, entity.ComparisonRow{
			Period: p,
			First:  aggregate.Percentage(accA.Bucket(p)),
			Second: aggregate.Percentage(accB.Bucket(p)),
		})
	}
	if len(report.Rows) == 0 {
		return report, fmt.Errorf("%w: %s and %s share no waves", types.ErrEmptyResult, a.Name, b.Name)
	}
	return report, nil
}

func sortPeriods(periods []entity.Period) {
	sort.Slice(periods, func(i, j int) bool { return periods[i].Before(periods[j]) })
}
