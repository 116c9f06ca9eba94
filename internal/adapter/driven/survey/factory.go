package survey

import (
	"github.com/epharg/eph-dashboard-go/internal/domain/entity"
	"github.com/epharg/eph-dashboard-go/internal/domain/repository"
)

// Factory builds CSV repositories that share one opener.
type Factory struct {
	opener Opener
}

// NewFactory returns a factory over opener (local files when nil).
func NewFactory(opener Opener) *Factory {
	if opener == nil {
		opener = FileOpener{}
	}
	return &Factory{opener: opener}
}

// Survey implements repository.SourceFactory.
func (f *Factory) Survey(locations map[entity.Dataset]string) repository.SurveyRepository {
	return NewCSVRepository(Locations(locations), f.opener)
}

// Processed implements repository.SourceFactory.
func (f *Factory) Processed(dir string) repository.ProcessedRepository {
	return NewProcessedRepository(dir)
}
