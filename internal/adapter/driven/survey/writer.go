package survey

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/epharg/eph-dashboard-go/internal/domain/entity"
	"github.com/epharg/eph-dashboard-go/internal/domain/repository"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ProcessedRepositoryImpl writes processed datasets under one directory.
type ProcessedRepositoryImpl struct {
	dir string
}

// NewProcessedRepository writes into dir, creating it when needed.
func NewProcessedRepository(dir string) repository.ProcessedRepository {
	return &ProcessedRepositoryImpl{dir: dir}
}

// ProcessedFilename returns the file name used for ds.
func ProcessedFilename(ds entity.Dataset) string {
	return fmt.Sprintf("%s_procesado.csv", ds)
}

// Create implements repository.ProcessedRepository.
func (r *ProcessedRepositoryImpl) Create(ds entity.Dataset, header []string) (repository.RowWriter, string, error) {
	path := filepath.Join(r.dir, ProcessedFilename(ds))
	w, err := createCSV(path, ';', header)
	if err != nil {
		return nil, "", err
	}
	slog.Debug("writing processed dataset", "dataset", ds, "path", path, "columns", len(header))
	return w, path, nil
}

type csvFileWriter struct {
	file   *os.File
	writer *csv.Writer
}

// createCSV opens path with a UTF-8 BOM and writes header.
func createCSV(path string, comma rune, header []string) (*csvFileWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	if _, err := file.Write(utf8BOM); err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to write BOM: %w", err)
	}

	writer := csv.NewWriter(file)
	writer.Comma = comma
	if err := writer.Write(header); err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	return &csvFileWriter{file: file, writer: writer}, nil
}

func (w *csvFileWriter) Write(fields []string) error {
	return w.writer.Write(fields)
}

func (w *csvFileWriter) Close() error {
	w.writer.Flush()
	if err := w.writer.Error(); err != nil {
		w.file.Close()
		return err
	}
	return w.file.Close()
}
