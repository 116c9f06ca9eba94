package entity

// Table is the presentation-neutral form of a report, used for export.
type Table struct {
	Title   string     `json:"title"`
	Period  string     `json:"period,omitempty"`
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
	Notes   []string   `json:"notes,omitempty"`
}

// AddRow appends one row of cells.
func (t *Table) AddRow(cells ...string) {
	t.Rows = append(t.Rows, cells)
}
