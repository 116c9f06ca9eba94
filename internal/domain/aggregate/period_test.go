package aggregate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/epharg/eph-dashboard-go/internal/domain/entity"
	"github.com/epharg/eph-dashboard-go/internal/shared/types"
)

func periodRows(values ...[2]string) []entity.Record {
	h := entity.NewHeader([]string{entity.ColYear, entity.ColQuarter})
	out := make([]entity.Record, len(values))
	for i, v := range values {
		out[i] = entity.NewRecord(h, []string{v[0], v[1]}, i+2)
	}
	return out
}

func TestPeriodTracker(t *testing.T) {
	tests := []struct {
		name    string
		rows    []entity.Record
		want    entity.PeriodRange
		wantOK  bool
		skipped int
	}{
		{"empty", nil, entity.PeriodRange{}, false, 0},
		{
			"single row",
			periodRows([2]string{"2023", "2"}),
			entity.PeriodRange{Min: entity.Period{Year: 2023, Quarter: 2}, Max: entity.Period{Year: 2023, Quarter: 2}},
			true, 0,
		},
		{
			"sparse bad rows",
			periodRows([2]string{"x", "1"}, [2]string{"2024", "1"}, [2]string{"2022", "4"}, [2]string{"2023", "5"}),
			entity.PeriodRange{Min: entity.Period{Year: 2022, Quarter: 4}, Max: entity.Period{Year: 2024, Quarter: 1}},
			true, 2,
		},
		{"all bad", periodRows([2]string{"", ""}, [2]string{"a", "b"}), entity.PeriodRange{}, false, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var tr PeriodTracker
			for _, r := range tt.rows {
				tr.Observe(r)
			}
			got, ok := tr.Range()
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.skipped, tr.Skipped())
		})
	}
}

func TestCombinePeriods(t *testing.T) {
	a := entity.PeriodRange{Min: entity.Period{Year: 2022, Quarter: 1}, Max: entity.Period{Year: 2023, Quarter: 2}}
	b := entity.PeriodRange{Min: entity.Period{Year: 2022, Quarter: 3}, Max: entity.Period{Year: 2024, Quarter: 1}}

	got, ok := CombinePeriods(a, true, b, true)
	require.True(t, ok)
	assert.Equal(t, entity.Period{Year: 2022, Quarter: 1}, got.Min)
	assert.Equal(t, entity.Period{Year: 2024, Quarter: 1}, got.Max)

	got, ok = CombinePeriods(a, true, entity.PeriodRange{}, false)
	assert.True(t, ok)
	assert.Equal(t, a, got)

	got, ok = CombinePeriods(entity.PeriodRange{}, false, b, true)
	assert.True(t, ok)
	assert.Equal(t, b, got)

	_, ok = CombinePeriods(entity.PeriodRange{}, false, entity.PeriodRange{}, false)
	assert.False(t, ok)
}

func TestQuarterTracker(t *testing.T) {
	qt := NewQuarterTracker(2023)
	for _, r := range periodRows([2]string{"2023", "1"}, [2]string{"2024", "4"}, [2]string{"2023", "3"}) {
		qt.Observe(r)
	}
	p, err := qt.Latest()
	require.NoError(t, err)
	assert.Equal(t, entity.Period{Year: 2023, Quarter: 3}, p)

	_, err = NewQuarterTracker(1999).Latest()
	assert.True(t, errors.Is(err, types.ErrEmptyResult))
}
