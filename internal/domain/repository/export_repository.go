package repository

import (
	"github.com/epharg/eph-dashboard-go/internal/domain/entity"
)

// ExportRepository writes report tables to disk. Every method returns the
// absolute path of the written file.
type ExportRepository interface {
	ExportToCSV(table entity.Table, filename string, outputDir string) (string, error)
	ExportToJSON(table entity.Table, filename string, outputDir string) (string, error)
	ExportToPDF(table entity.Table, filename string, outputDir string) (string, error)
	ExportToXLSX(table entity.Table, filename string, outputDir string) (string, error)
}
