package survey

import (
	"context"
	"fmt"

	"github.com/epharg/eph-dashboard-go/internal/domain/entity"
	"github.com/epharg/eph-dashboard-go/internal/domain/repository"
	"github.com/epharg/eph-dashboard-go/internal/shared/types"
)

type memoryDataset struct {
	header *entity.Header
	rows   [][]string
}

// MemoryRepository serves datasets held in memory.
type MemoryRepository struct {
	datasets map[entity.Dataset]memoryDataset
}

// NewMemoryRepository returns an empty repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{datasets: make(map[entity.Dataset]memoryDataset)}
}

// Put replaces ds with header and rows.
func (r *MemoryRepository) Put(ds entity.Dataset, header []string, rows ...[]string) *MemoryRepository {
	r.datasets[ds] = memoryDataset{header: entity.NewHeader(header), rows: rows}
	return r
}

// Scan implements repository.SurveyRepository. Line numbers count the header
// as line 1.
func (r *MemoryRepository) Scan(ctx context.Context, ds entity.Dataset, required []string, fn repository.RecordFunc) error {
	d, ok := r.datasets[ds]
	if !ok {
		return fmt.Errorf("%w: %s not loaded", types.ErrSourceUnavailable, ds)
	}
	if missing := d.header.Missing(required...); len(missing) > 0 {
		return &types.ColumnsError{Dataset: string(ds), Missing: missing}
	}
	for i, row := range d.rows {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(entity.NewRecord(d.header, row, i+2)); err != nil {
			return err
		}
	}
	return nil
}
