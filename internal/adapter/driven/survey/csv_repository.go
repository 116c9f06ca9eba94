// Package survey reads and writes EPH survey datasets.
package survey

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/epharg/eph-dashboard-go/internal/domain/entity"
	"github.com/epharg/eph-dashboard-go/internal/domain/repository"
	"github.com/epharg/eph-dashboard-go/internal/shared/types"
)

// Locations maps each dataset to a file path or s3:// URL.
type Locations map[entity.Dataset]string

// CSVRepositoryImpl streams delimited survey files.
type CSVRepositoryImpl struct {
	locations Locations
	opener    Opener
}

// NewCSVRepository creates a repository over the given locations.
func NewCSVRepository(locations Locations, opener Opener) repository.SurveyRepository {
	if opener == nil {
		opener = FileOpener{}
	}
	return &CSVRepositoryImpl{locations: locations, opener: opener}
}

// Location returns where ds is read from.
func (r *CSVRepositoryImpl) Location(ds entity.Dataset) (string, bool) {
	loc, ok := r.locations[ds]
	return loc, ok && loc != ""
}

// Scan implements repository.SurveyRepository.
func (r *CSVRepositoryImpl) Scan(ctx context.Context, ds entity.Dataset, required []string, fn repository.RecordFunc) error {
	location, ok := r.Location(ds)
	if !ok {
		return fmt.Errorf("%w: no location configured for %s", types.ErrSourceUnavailable, ds)
	}

	rc, err := r.opener.Open(ctx, location)
	if err != nil {
		return err
	}
	defer rc.Close()

	return scanDelimited(ctx, ds, rc, required, fn)
}

func newReader(ds entity.Dataset, src io.Reader) *csv.Reader {
	cr := csv.NewReader(bufio.NewReaderSize(src, 64*1024))
	cr.Comma = ds.Delimiter()
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	return cr
}

func scanDelimited(ctx context.Context, ds entity.Dataset, src io.Reader, required []string, fn repository.RecordFunc) error {
	cr := newReader(ds, src)

	names, err := cr.Read()
	if errors.Is(err, io.EOF) {
		if len(required) > 0 {
			return &types.ColumnsError{Dataset: string(ds), Missing: required}
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("%s: error reading header: %w", ds, err)
	}

	header := entity.NewHeader(names)
	if missing := header.Missing(required...); len(missing) > 0 {
		return &types.ColumnsError{Dataset: string(ds), Missing: missing}
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%s: %w", ds, err)
		}
		line, _ := cr.FieldPos(0)
		if err := fn(entity.NewRecord(header, fields, line)); err != nil {
			return err
		}
	}
}
