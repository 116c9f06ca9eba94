package aggregate

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/epharg/eph-dashboard-go/internal/shared/types"
)

const maxSamples = 3

// Diagnostics tallies skipped rows by kind.
type Diagnostics struct {
	counts  map[string]int
	kinds   []string
	samples []string
	total   int
}

// NewDiagnostics returns empty diagnostics.
func NewDiagnostics() *Diagnostics {
	return &Diagnostics{counts: make(map[string]int)}
}

func kindOf(err error) string {
	switch {
	case errors.Is(err, types.ErrMissingColumn):
		return "missing column"
	case errors.Is(err, types.ErrMalformedNumeric):
		return "malformed value"
	case errors.Is(err, types.ErrUnknownKey):
		return "unknown key"
	case errors.Is(err, types.ErrPeriodMismatch):
		return "period mismatch"
	case errors.Is(err, types.ErrDerivation):
		return "derivation"
	default:
		return "other"
	}
}

// Skip records one skipped row.
func (d *Diagnostics) Skip(dataset string, err error) {
	kind := kindOf(err)
	if _, ok := d.counts[kind]; !ok {
		d.kinds = append(d.kinds, kind)
	}
	d.counts[kind]++
	d.total++
	if len(d.samples) < maxSamples {
		d.samples = append(d.samples, err.Error())
	}

	line := 0
	var rowErr *types.RowError
	if errors.As(err, &rowErr) {
		line = rowErr.Line
	}
	slog.Debug("skipping row", "dataset", dataset, "line", line, "kind", kind, "error", err)
}

// Total returns the number of skipped rows.
func (d *Diagnostics) Total() int {
	return d.total
}

// Count returns the number of skipped rows of kind.
func (d *Diagnostics) Count(kind string) int {
	return d.counts[kind]
}

// Samples returns the first few skip reasons.
func (d *Diagnostics) Samples() []string {
	return append([]string(nil), d.samples...)
}

// Summary describes the skipped rows on one line, e.g.
// "3 rows skipped (malformed value: 2, unknown key: 1)".
func (d *Diagnostics) Summary() string {
	if d.total == 0 {
		return ""
	}
	parts := make([]string, 0, len(d.kinds))
	for _, k := range d.kinds {
		parts = append(parts, fmt.Sprintf("%s: %d", k, d.counts[k]))
	}
	noun := "rows"
	if d.total == 1 {
		noun = "row"
	}
	return fmt.Sprintf("%d %s skipped (%s)", d.total, noun, strings.Join(parts, ", "))
}
