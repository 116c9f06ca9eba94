package console

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/fatih/color"
	"github.com/pterm/pterm"

	"github.com/epharg/eph-dashboard-go/internal/shared/types"
)

// barWidth is the length of a 100% bar.
const barWidth = 40

// Console implements types.ConsoleInterface on top of pterm.
type Console struct{}

// NewConsole returns a pterm backed Console.
func NewConsole() *Console {
	return &Console{}
}

// Print writes args to stdout.
func (c *Console) Print(a ...interface{}) {
	fmt.Print(a...)
}

// Printf writes a formatted string to stdout.
func (c *Console) Printf(format string, a ...interface{}) {
	fmt.Printf(format, a...)
}

// Println writes args followed by a newline.
func (c *Console) Println(a ...interface{}) {
	fmt.Println(a...)
}

// LogInfo prints an info message.
func (c *Console) LogInfo(format string, a ...interface{}) {
	pterm.Info.Printfln(format, a...)
}

// LogWarning prints a warning.
func (c *Console) LogWarning(format string, a ...interface{}) {
	pterm.Warning.Printfln(format, a...)
}

// LogError prints an error.
func (c *Console) LogError(format string, a ...interface{}) {
	pterm.Error.Printfln(format, a...)
}

// LogSuccess prints a success message.
func (c *Console) LogSuccess(format string, a ...interface{}) {
	pterm.Success.Printfln(format, a...)
}

// Shared colors.
var (
	BrightCyan = color.New(color.FgCyan, color.Bold).SprintFunc()
	BrightBlue = color.New(color.FgBlue, color.Bold).SprintFunc()
)

// ParseLogLevel maps a --log-level value to pterm's levels. Unknown values
// fall back to info.
func ParseLogLevel(level string) pterm.LogLevel {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return pterm.LogLevelDebug
	case "warn", "warning":
		return pterm.LogLevelWarn
	case "error":
		return pterm.LogLevelError
	default:
		return pterm.LogLevelInfo
	}
}

// SetupLogging routes the default slog logger through pterm at level.
func SetupLogging(level string) {
	logger := pterm.DefaultLogger.WithLevel(ParseLogLevel(level))
	slog.SetDefault(slog.New(pterm.NewSlogHandler(logger)))
}

// statusHandle wraps a pterm spinner.
type statusHandle struct {
	spinner *pterm.SpinnerPrinter
}

// Status starts a spinner showing message.
func (c *Console) Status(message string) types.StatusHandle {
	spinner, _ := pterm.DefaultSpinner.WithRemoveWhenDone(true).Start(message)
	return &statusHandle{spinner: spinner}
}

// Update replaces the spinner text.
func (h *statusHandle) Update(message string) {
	if h.spinner != nil {
		h.spinner.UpdateText(message)
	}
}

// Stop halts the spinner.
func (h *statusHandle) Stop() {
	if h.spinner != nil {
		_ = h.spinner.Stop()
	}
}

// Table collects columns and rows for pterm.
type Table struct {
	columns []string
	rows    [][]string
}

// CreateTable returns an empty table.
func (c *Console) CreateTable() types.TableInterface {
	return &Table{
		columns: []string{},
		rows:    [][]string{},
	}
}

// AddColumn appends a column header.
func (t *Table) AddColumn(name string, options ...interface{}) {
	t.columns = append(t.columns, name)
}

// AddRow adds one row; cells are formatted with fmt.Sprint.
func (t *Table) AddRow(cells ...interface{}) {
	processedCells := make([]string, len(cells))
	for i, cell := range cells {
		processedCells[i] = fmt.Sprint(cell)
	}
	t.rows = append(t.rows, processedCells)
}

// Render draws the table as a string.
func (t *Table) Render() string {
	tableData := pterm.TableData{t.columns}
	for _, row := range t.rows {
		tableData = append(tableData, row)
	}

	table := pterm.DefaultTable.
		WithHasHeader().
		WithBoxed().
		WithHeaderStyle(pterm.NewStyle(pterm.FgLightCyan)).
		WithData(tableData)

	renderedTable, _ := table.Srender()
	return renderedTable
}

// RenderBar draws percentage as a bar scaled against max.
func RenderBar(percentage, max float64) string {
	if max <= 0 || percentage <= 0 {
		return ""
	}
	n := int(percentage / max * barWidth)
	if n == 0 {
		n = 1
	}
	if n > barWidth {
		n = barWidth
	}
	return strings.Repeat("█", n)
}

// DisplayRankingBars draws one bar per ranking entry, scaled by its percentage.
func (c *Console) DisplayRankingBars(title string, bars []types.RankingBar) {
	maxPct := 0.0
	for _, b := range bars {
		if b.Percentage > maxPct {
			maxPct = b.Percentage
		}
	}

	if maxPct == 0 {
		pterm.Warning.Println("All percentages are 0.00% for this report")
		return
	}

	tableData := pterm.TableData{
		{"", "Porcentaje", ""},
	}
	for i, b := range bars {
		bar := RenderBar(b.Percentage, maxPct)
		// Top of the ranking in green, bottom in red
		barColor := pterm.FgBlue.Sprint(bar)
		switch {
		case i == 0:
			barColor = pterm.FgGreen.Sprint(bar)
		case i == len(bars)-1 && len(bars) > 1:
			barColor = pterm.FgRed.Sprint(bar)
		}
		tableData = append(tableData, []string{
			b.Label,
			fmt.Sprintf("%.2f%%", b.Percentage),
			barColor,
		})
	}

	table := pterm.DefaultTable.WithHasHeader().WithData(tableData)
	renderedTable, _ := table.Srender()

	panel := pterm.DefaultBox.WithTitle(title).WithBoxStyle(pterm.NewStyle(pterm.FgCyan)).Sprint(renderedTable)

	fmt.Println("\n" + panel)
}
