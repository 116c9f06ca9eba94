package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	"github.com/epharg/eph-dashboard-go/internal/domain/entity"
	"github.com/epharg/eph-dashboard-go/internal/domain/repository"
)

// ExportRepositoryImpl writes tables to files in the supported formats.
type ExportRepositoryImpl struct {
	now func() time.Time
}

// NewExportRepository returns an ExportRepository stamping names with the current time.
func NewExportRepository() repository.ExportRepository {
	return &ExportRepositoryImpl{now: time.Now}
}

func (r *ExportRepositoryImpl) ExportToCSV(table entity.Table, filename, outputDir string) (string, error) {
	outputFilename, err := r.generateFilename(filename, outputDir, "csv")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating CSV file: %w", err)
	}
	defer file.Close()

	if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return "", fmt.Errorf("error writing CSV file: %w", err)
	}

	writer := csv.NewWriter(file)
	if err := writer.Write(table.Columns); err != nil {
		return "", fmt.Errorf("error writing CSV file: %w", err)
	}
	for _, row := range table.Rows {
		if err := writer.Write(cleanCells(row)); err != nil {
			return "", fmt.Errorf("error writing CSV file: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("error writing CSV file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

func (r *ExportRepositoryImpl) ExportToJSON(table entity.Table, filename, outputDir string) (string, error) {
	outputFilename, err := r.generateFilename(filename, outputDir, "json")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating JSON file: %w", err)
	}
	defer file.Close()

	out := table
	out.Rows = make([][]string, len(table.Rows))
	for i, row := range table.Rows {
		out.Rows[i] = cleanCells(row)
	}

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(out); err != nil {
		return "", fmt.Errorf("error encoding JSON data: %w", err)
	}

	return filepath.Abs(outputFilename)
}

func (r *ExportRepositoryImpl) ExportToPDF(table entity.Table, filename, outputDir string) (string, error) {
	outputFilename, err := r.generateFilename(filename, outputDir, "pdf")
	if err != nil {
		return "", err
	}

	orientation := "P"
	pageWidth := 190.0
	if len(table.Columns) > 4 {
		orientation = "L"
		pageWidth = 277.0
	}

	pdf := gofpdf.New(orientation, "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	generated := r.now().Format("2006-01-02")

	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Arial", "I", 8)
		pdf.SetTextColor(128, 128, 128)
		footerText := fmt.Sprintf("Generated by EPH Dashboard (Go) | %s", generated)
		pdf.CellFormat(0, 10, tr(footerText), "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 10, tr(fmt.Sprintf("Page %d", pdf.PageNo())), "", 0, "R", false, 0, "")
	})

	headerColor := [3]int{40, 40, 40}
	headerTextColor := [3]int{255, 255, 255}
	bodyTextColor := [3]int{50, 50, 50}
	lineColor := [3]int{200, 200, 200}

	colWidth := pageWidth
	if len(table.Columns) > 0 {
		colWidth = pageWidth / float64(len(table.Columns))
	}

	drawHeader := func() {
		pdf.SetFont("Arial", "B", 10)
		pdf.SetFillColor(230, 230, 230)
		pdf.SetTextColor(0, 0, 0)
		for _, col := range table.Columns {
			pdf.CellFormat(colWidth, 8, tr(col), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Arial", "", 9)
		pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
	}

	pdf.AddPage()
	pdf.SetFillColor(headerColor[0], headerColor[1], headerColor[2])
	pdf.SetTextColor(headerTextColor[0], headerTextColor[1], headerTextColor[2])
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 12, tr(fmt.Sprintf("  %s", table.Title)), "", 1, "L", true, 0, "")
	if table.Period != "" {
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(0, 8, tr(fmt.Sprintf("  Period: %s", table.Period)), "", 1, "L", true, 0, "")
	}
	pdf.Ln(6)

	pdf.SetDrawColor(lineColor[0], lineColor[1], lineColor[2])
	drawHeader()
	_, pageHeight := pdf.GetPageSize()
	for _, row := range table.Rows {
		if pdf.GetY() > pageHeight-25 {
			pdf.AddPage()
			drawHeader()
		}
		for i := range table.Columns {
			cell := ""
			if i < len(row) {
				cell = cleanRichTags(row[i])
			}
			align := "L"
			if i > 0 {
				align = "R"
			}
			pdf.CellFormat(colWidth, 7, tr(cell), "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	if len(table.Notes) > 0 {
		pdf.Ln(6)
		pdf.SetFont("Arial", "I", 9)
		for _, note := range table.Notes {
			pdf.MultiCell(pageWidth, 5, tr(cleanRichTags(note)), "", "L", false)
		}
	}

	if err := pdf.OutputFileAndClose(outputFilename); err != nil {
		return "", fmt.Errorf("error writing PDF file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

func (r *ExportRepositoryImpl) ExportToXLSX(table entity.Table, filename, outputDir string) (string, error) {
	outputFilename, err := r.generateFilename(filename, outputDir, "xlsx")
	if err != nil {
		return "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := sheetName(table.Title)
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return "", fmt.Errorf("error naming XLSX sheet: %w", err)
	}

	header := make([]interface{}, len(table.Columns))
	for i, col := range table.Columns {
		header[i] = col
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return "", fmt.Errorf("error writing XLSX header: %w", err)
	}

	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"282828"}, Pattern: 1},
	})
	if err != nil {
		return "", fmt.Errorf("error creating XLSX style: %w", err)
	}
	if len(table.Columns) > 0 {
		last, err := excelize.CoordinatesToCellName(len(table.Columns), 1)
		if err != nil {
			return "", err
		}
		if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
			return "", fmt.Errorf("error styling XLSX header: %w", err)
		}
	}

	for i, row := range table.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return "", err
		}
		values := make([]interface{}, len(row))
		for j, v := range cleanCells(row) {
			values[j] = v
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return "", fmt.Errorf("error writing XLSX row %d: %w", i+1, err)
		}
	}

	if err := f.SaveAs(outputFilename); err != nil {
		return "", fmt.Errorf("error writing XLSX file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

func (r *ExportRepositoryImpl) generateFilename(base, dir, ext string) (string, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("could not get current working directory: %w", err)
		}
		dir = cwd
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("error creating output directory '%s': %w", dir, err)
	}
	stem := fmt.Sprintf("%s_%s", base, r.now().Format("20060102_150405"))
	path := filepath.Join(dir, stem+"."+ext)
	// Exports within the same second get a _1, _2, ... suffix.
	for n := 1; ; n++ {
		_, err := os.Stat(path)
		if errors.Is(err, fs.ErrNotExist) {
			return path, nil
		}
		if err != nil {
			return "", fmt.Errorf("error checking output file '%s': %w", path, err)
		}
		path = filepath.Join(dir, fmt.Sprintf("%s_%d.%s", stem, n, ext))
	}
}

// Excel limits sheet names to 31 characters and forbids : \ / ? * [ ].
var sheetNameRegex = regexp.MustCompile(`[:\\/?*\[\]]`)

func sheetName(title string) string {
	name := sheetNameRegex.ReplaceAllString(title, " ")
	if r := []rune(name); len(r) > 31 {
		name = string(r[:31])
	}
	if name == "" {
		name = "Report"
	}
	return name
}

// pterm rich tags and ANSI color sequences are stripped from exported cells.
var richTagRegex = regexp.MustCompile(`\[/?([a-zA-Z]+|#[0-9a-fA-F]{6})\]`)
var ansiRegex = regexp.MustCompile(`\x1B\[[0-9;]*[A-Za-z]`)

// cleanRichTags strips pterm tags and ANSI sequences from text.
func cleanRichTags(text string) string {
	text = richTagRegex.ReplaceAllString(text, "")
	text = ansiRegex.ReplaceAllString(text, "")
	return text
}

func cleanCells(row []string) []string {
	out := make([]string, len(row))
	for i, cell := range row {
		out[i] = cleanRichTags(cell)
	}
	return out
}
