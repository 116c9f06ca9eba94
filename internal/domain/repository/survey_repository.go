package repository

import (
	"context"

	"github.com/epharg/eph-dashboard-go/internal/domain/entity"
)

// RecordFunc receives one row. Returning an error stops the scan and the error
// is returned by Scan unchanged.
type RecordFunc func(entity.Record) error

// SurveyRepository streams the rows of a survey dataset.
type SurveyRepository interface {
	// Scan opens a fresh stream of ds, checks that the header carries every
	// column in required, and calls fn once per data row. The stream is closed
	// before Scan returns.
	Scan(ctx context.Context, ds entity.Dataset, required []string, fn RecordFunc) error
}

// RowWriter receives the rows of a processed dataset.
type RowWriter interface {
	Write(fields []string) error
	Close() error
}

// ProcessedRepository creates processed dataset files.
type ProcessedRepository interface {
	// Create opens a processed file for ds with the given header and returns
	// its path.
	Create(ds entity.Dataset, header []string) (RowWriter, string, error)
}

// ExtractUnifier merges the raw quarterly extracts of a dataset into one file.
type ExtractUnifier interface {
	Unify(ctx context.Context, srcDir string, ds entity.Dataset, dest string) (UnifyResult, error)
}

// UnifyResult summarises a unify run.
type UnifyResult struct {
	Path  string
	Files []string
	Rows  int
}

// SourceFactory builds the repositories of one run from its resolved locations.
type SourceFactory interface {
	Survey(locations map[entity.Dataset]string) SurveyRepository
	Processed(dir string) ProcessedRepository
}

// RemoteSource is the AWS account s3:// locations are read with.
type RemoteSource interface {
	// Configure selects the shared config profile and region. Empty values
	// keep the SDK defaults.
	Configure(profile, region string)
	AccountID(ctx context.Context) (string, error)
}
