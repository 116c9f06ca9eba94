package entity

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/epharg/eph-dashboard-go/internal/shared/types"
)

const utf8BOM = "\ufeff"

// Header maps column names to their position in a row. It is built once per
// stream from the header line and shared by every record of that stream.
type Header struct {
	names []string
	index map[string]int
}

// NewHeader builds a Header, trimming spaces and a leading UTF-8 BOM.
func NewHeader(names []string) *Header {
	h := &Header{
		names: make([]string, len(names)),
		index: make(map[string]int, len(names)),
	}
	for i, name := range names {
		if i == 0 {
			name = strings.TrimPrefix(name, utf8BOM)
		}
		name = strings.TrimSpace(name)
		h.names[i] = name
		if _, dup := h.index[name]; !dup {
			h.index[name] = i
		}
	}
	return h
}

// Names returns the column names in file order.
func (h *Header) Names() []string {
	out := make([]string, len(h.names))
	copy(out, h.names)
	return out
}

// Index returns the position of a column.
func (h *Header) Index(col string) (int, bool) {
	i, ok := h.index[col]
	return i, ok
}

// Missing returns the subset of cols absent from the header.
func (h *Header) Missing(cols ...string) []string {
	var missing []string
	for _, c := range cols {
		if _, ok := h.index[c]; !ok {
			missing = append(missing, c)
		}
	}
	return missing
}

// Record is one data row of a survey file.
type Record struct {
	header *Header
	fields []string
	line   int
}

// NewRecord wraps a raw row. line is the 1-based line number in the source.
func NewRecord(header *Header, fields []string, line int) Record {
	return Record{header: header, fields: fields, line: line}
}

// Line returns the source line number.
func (r Record) Line() int {
	return r.line
}

// Header returns the shared header.
func (r Record) Header() *Header {
	return r.header
}

// Fields returns a copy of the raw values.
func (r Record) Fields() []string {
	out := make([]string, len(r.fields))
	copy(out, r.fields)
	return out
}

// Get returns the trimmed value of col.
func (r Record) Get(col string) (string, error) {
	i, ok := r.header.Index(col)
	if !ok || i >= len(r.fields) {
		return "", &types.RowError{Line: r.line, Column: col, Err: types.ErrMissingColumn}
	}
	return strings.TrimSpace(r.fields[i]), nil
}

// Require checks that the row carries a field for every col. The first absent
// one is returned as a RowError wrapping ErrMissingColumn.
func (r Record) Require(cols ...string) error {
	for _, col := range cols {
		if _, err := r.Get(col); err != nil {
			return err
		}
	}
	return nil
}

// Value is Get without the error; absent columns read as "".
func (r Record) Value(col string) string {
	v, _ := r.Get(col)
	return v
}

// Int parses col as an integer.
func (r Record) Int(col string) (int, error) {
	v, err := r.Get(col)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, &types.RowError{Line: r.line, Column: col, Err: fmt.Errorf("%w: %q", types.ErrMalformedNumeric, v)}
	}
	return n, nil
}

// Float parses col as a decimal number. A comma decimal separator is accepted.
func (r Record) Float(col string) (float64, error) {
	v, err := r.Get(col)
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(strings.Replace(v, ",", ".", 1), 64)
	if err != nil {
		return 0, &types.RowError{Line: r.line, Column: col, Err: fmt.Errorf("%w: %q", types.ErrMalformedNumeric, v)}
	}
	return f, nil
}

// Weight parses the PONDERA expansion factor. Negative weights are malformed.
func (r Record) Weight() (int64, error) {
	n, err := r.Int(ColPondera)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, &types.RowError{Line: r.line, Column: ColPondera, Err: fmt.Errorf("%w: negative weight %d", types.ErrMalformedNumeric, n)}
	}
	return int64(n), nil
}

// Period parses ANO4 and TRIMESTRE.
func (r Record) Period() (Period, error) {
	year, err := r.Int(ColYear)
	if err != nil {
		return Period{}, err
	}
	quarter, err := r.Int(ColQuarter)
	if err != nil {
		return Period{}, err
	}
	p := Period{Year: year, Quarter: quarter}
	if !p.Valid() {
		return Period{}, &types.RowError{Line: r.line, Column: ColQuarter, Err: fmt.Errorf("%w: quarter %d", types.ErrMalformedNumeric, quarter)}
	}
	return p, nil
}

// HouseholdID returns the CODUSU/NRO_HOGAR pair.
func (r Record) HouseholdID() (HouseholdID, error) {
	codusu, err := r.Get(ColCodusu)
	if err != nil {
		return HouseholdID{}, err
	}
	nro, err := r.Get(ColHouseholdNumber)
	if err != nil {
		return HouseholdID{}, err
	}
	return HouseholdID{Codusu: codusu, Number: nro}, nil
}

// HouseholdID identifies a dwelling across the household and individual files
// of one survey wave.
type HouseholdID struct {
	Codusu string
	Number string
}
