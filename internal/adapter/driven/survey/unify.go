package survey

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/epharg/eph-dashboard-go/internal/domain/entity"
	"github.com/epharg/eph-dashboard-go/internal/domain/repository"
	"github.com/epharg/eph-dashboard-go/internal/shared/types"
)

// Unifier concatenates raw quarterly extracts (usu_hogar_T123.txt, ...).
type Unifier struct{}

// NewUnifier returns an extract unifier.
func NewUnifier() repository.ExtractUnifier {
	return Unifier{}
}

// ExtractPattern is the name fragment that identifies extracts of ds.
func ExtractPattern(ds entity.Dataset) string {
	return "usu_" + string(ds)
}

// MatchExtracts lists the .txt files of ds in srcDir, sorted by name.
func MatchExtracts(srcDir string, ds entity.Dataset) ([]string, error) {
	entries, err := os.ReadDir(srcDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrSourceUnavailable, err)
	}
	pattern := ExtractPattern(ds)
	var out []string
	for _, e := range entries {
		name := strings.ToLower(e.Name())
		if e.IsDir() || filepath.Ext(name) != ".txt" || !strings.Contains(name, pattern) {
			continue
		}
		out = append(out, filepath.Join(srcDir, e.Name()))
	}
	sort.Strings(out)
	return out, nil
}

// Unify writes every extract of ds into dest keeping the first header only.
// Extracts that cannot be opened are skipped.
func (Unifier) Unify(ctx context.Context, srcDir string, ds entity.Dataset, dest string) (repository.UnifyResult, error) {
	result := repository.UnifyResult{Path: dest}

	files, err := MatchExtracts(srcDir, ds)
	if err != nil {
		return result, err
	}
	if len(files) == 0 {
		return result, fmt.Errorf("%w: no %s*.txt files in %s", types.ErrEmptyResult, ExtractPattern(ds), srcDir)
	}

	var out *csvFileWriter
	defer func() {
		if out != nil {
			out.Close()
		}
	}()

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		f, err := os.Open(path)
		if err != nil {
			slog.Warn("skipping unreadable extract", "path", path, "error", err)
			continue
		}

		rows, err := func() (int, error) {
			defer f.Close()
			cr := newReader(ds, f)
			names, err := cr.Read()
			if errors.Is(err, io.EOF) {
				return 0, nil
			}
			if err != nil {
				return 0, fmt.Errorf("%s: error reading header: %w", path, err)
			}
			if out == nil {
				header := entity.NewHeader(names).Names()
				if out, err = createCSV(dest, ds.Delimiter(), header); err != nil {
					return 0, err
				}
			}
			n := 0
			for {
				fields, err := cr.Read()
				if errors.Is(err, io.EOF) {
					return n, nil
				}
				if err != nil {
					return n, fmt.Errorf("%s: %w", path, err)
				}
				if err := out.Write(fields); err != nil {
					return n, err
				}
				n++
			}
		}()
		if err != nil {
			return result, err
		}
		result.Files = append(result.Files, path)
		result.Rows += rows
	}

	if out == nil {
		return result, fmt.Errorf("%w: every %s extract is empty", types.ErrEmptyResult, ds)
	}
	err = out.Close()
	out = nil
	return result, err
}
