package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/epharg/eph-dashboard-go/internal/domain/derivation"
	"github.com/epharg/eph-dashboard-go/internal/domain/entity"
	"github.com/epharg/eph-dashboard-go/internal/domain/repository"
	"github.com/epharg/eph-dashboard-go/internal/shared/types"
)

// ProcessResult describes a processed dataset file.
type ProcessResult struct {
	Dataset entity.Dataset
	Path    string
	Rows    int
	Columns []string
	// Truncated counts rows carrying more fields than the source header.
	// Only the fields under a header name are written.
	Truncated int
}

var (
	individualInputs = []string{entity.ColSex, entity.ColAge, entity.ColEducation, entity.ColLaborState, entity.ColOccupationCat}
	householdInputs  = []string{
		entity.ColOccupants, entity.ColRooms, entity.ColRoof, entity.ColWater,
		entity.ColWaterOrigin, entity.ColBathroom, entity.ColBathroomLocation, entity.ColDrainage,
	}
)

// processedLayout appends the derived columns missing from the source header
// and returns where each derived column lands.
func processedLayout(source []string, derived []string) ([]string, map[string]int) {
	header := append([]string(nil), source...)
	pos := make(map[string]int, len(derived))
	for i, name := range header {
		pos[name] = i
	}
	at := make(map[string]int, len(derived))
	for _, name := range derived {
		i, ok := pos[name]
		if !ok {
			i = len(header)
			header = append(header, name)
			pos[name] = i
		}
		at[name] = i
	}
	return header, at
}

// Process writes ds with its derived columns through out. Derived columns
// already present in the source are overwritten in place.
func (e *Engine) Process(ctx context.Context, ds entity.Dataset, out repository.ProcessedRepository) (ProcessResult, error) {
	var (
		inputs  []string
		columns []string
		derive  func(entity.Record) []derivation.Field
	)
	switch ds {
	case entity.DatasetIndividual:
		inputs, columns, derive = individualInputs, derivation.IndividualColumns, derivation.DeriveIndividual
	case entity.DatasetHousehold:
		inputs, columns, derive = householdInputs, derivation.HouseholdColumns, derivation.DeriveHousehold
	default:
		return ProcessResult{}, fmt.Errorf("%w: dataset %q cannot be processed", types.ErrInvalidConfig, ds)
	}

	result := ProcessResult{Dataset: ds}
	var (
		writer repository.RowWriter
		at     map[string]int
		width  int
	)
	err := e.repo.Scan(ctx, ds, inputs, func(r entity.Record) error {
		if writer == nil {
			var err error
			width = len(r.Header().Names())
			result.Columns, at = processedLayout(r.Header().Names(), columns)
			writer, result.Path, err = out.Create(ds, result.Columns)
			if err != nil {
				return err
			}
		}
		row := make([]string, len(result.Columns))
		fields := r.Fields()
		if len(fields) > width {
			fields = fields[:width]
			result.Truncated++
		}
		copy(row, fields)
		for _, f := range derive(r) {
			row[at[f.Name]] = f.Value
		}
		if err := writer.Write(row); err != nil {
			return err
		}
		result.Rows++
		return nil
	})
	if writer != nil {
		if cerr := writer.Close(); cerr != nil {
			err = errors.Join(err, cerr)
		}
	}
	if err != nil {
		return result, err
	}
	if result.Rows == 0 {
		return result, fmt.Errorf("%w: %s has no rows to process", types.ErrEmptyResult, ds)
	}
	return result, nil
}
