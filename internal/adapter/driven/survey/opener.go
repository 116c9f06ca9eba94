package survey

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/epharg/eph-dashboard-go/internal/shared/types"
)

const s3Scheme = "s3://"

// Opener opens the raw bytes behind a source location.
type Opener interface {
	Open(ctx context.Context, location string) (io.ReadCloser, error)
}

// FileOpener opens local files.
type FileOpener struct{}

// Open opens location from the filesystem.
func (FileOpener) Open(_ context.Context, location string) (io.ReadCloser, error) {
	info, err := os.Stat(location)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrSourceUnavailable, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", types.ErrSourceUnavailable, location)
	}
	f, err := os.Open(location)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrSourceUnavailable, err)
	}
	return f, nil
}

// RoutingOpener sends s3:// locations to Remote and everything else to Local.
type RoutingOpener struct {
	Local  Opener
	Remote Opener
}

// NewRoutingOpener returns an opener for local paths and S3 objects.
func NewRoutingOpener(remote Opener) *RoutingOpener {
	return &RoutingOpener{Local: FileOpener{}, Remote: remote}
}

// IsRemote reports whether location points at S3.
func IsRemote(location string) bool {
	return strings.HasPrefix(location, s3Scheme)
}

// Open dispatches on the location scheme.
func (o *RoutingOpener) Open(ctx context.Context, location string) (io.ReadCloser, error) {
	if IsRemote(location) {
		if o.Remote == nil {
			return nil, fmt.Errorf("%w: no remote opener for %s", types.ErrSourceUnavailable, location)
		}
		return o.Remote.Open(ctx, location)
	}
	return o.Local.Open(ctx, location)
}
