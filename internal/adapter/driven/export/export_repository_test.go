package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/epharg/eph-dashboard-go/internal/domain/entity"
)

func fixedRepo() *ExportRepositoryImpl {
	return &ExportRepositoryImpl{now: func() time.Time {
		return time.Date(2024, 5, 17, 9, 30, 0, 0, time.UTC)
	}}
}

func sampleTable() entity.Table {
	t := entity.Table{
		Title:   "Hogares propietarios por aglomerado",
		Period:  "2023T4",
		Columns: []string{"Código", "Aglomerado", "%"},
		Notes:   []string{"1 row skipped (malformed value: 1)"},
	}
	t.AddRow("2", "Gran La Plata", "[green]66.67[/]")
	t.AddRow("3", "Bahía Blanca - Cerri", "0.00")
	return t
}

func TestGenerateFilename(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	name, err := fixedRepo().generateFilename("owners", dir, "csv")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "owners_20240517_093000.csv"), name)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestExportSameSecondKeepsEarlierFiles(t *testing.T) {
	dir := t.TempDir()
	repo := fixedRepo()

	var paths []string
	for i := 0; i < 3; i++ {
		path, err := repo.ExportToCSV(sampleTable(), "owners", dir)
		require.NoError(t, err)
		paths = append(paths, path)
	}
	assert.Equal(t, "owners_20240517_093000.csv", filepath.Base(paths[0]))
	assert.Equal(t, "owners_20240517_093000_1.csv", filepath.Base(paths[1]))
	assert.Equal(t, "owners_20240517_093000_2.csv", filepath.Base(paths[2]))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 3)

	other, err := repo.ExportToJSON(sampleTable(), "owners", dir)
	require.NoError(t, err)
	assert.Equal(t, "owners_20240517_093000.json", filepath.Base(other))
}

func TestExportToCSV(t *testing.T) {
	path, err := fixedRepo().ExportToCSV(sampleTable(), "owners", t.TempDir())
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(raw)
	assert.True(t, strings.HasPrefix(content, "\ufeffCódigo,Aglomerado,%\n"))
	assert.Contains(t, content, "2,Gran La Plata,66.67\n")
	assert.NotContains(t, content, "[green]")
}

func TestExportToJSON(t *testing.T) {
	path, err := fixedRepo().ExportToJSON(sampleTable(), "owners", t.TempDir())
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var got entity.Table
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, "2023T4", got.Period)
	assert.Equal(t, []string{"2", "Gran La Plata", "66.67"}, got.Rows[0])
}

func TestExportToPDF(t *testing.T) {
	path, err := fixedRepo().ExportToPDF(sampleTable(), "owners", t.TempDir())
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw), "%PDF-"))
}

func TestExportToXLSX(t *testing.T) {
	path, err := fixedRepo().ExportToXLSX(sampleTable(), "owners", t.TempDir())
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	sheet := sheetName(sampleTable().Title)
	rows, err := f.GetRows(sheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Código", "Aglomerado", "%"}, rows[0])
	assert.Equal(t, "66.67", rows[1][2])
}

func TestSheetName(t *testing.T) {
	assert.Equal(t, "Report", sheetName(""))
	assert.Equal(t, "a b", sheetName("a/b"))
	assert.Len(t, []rune(sheetName(strings.Repeat("x", 40))), 31)
}
