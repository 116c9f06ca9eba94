package types

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMissingColumn     = errors.New("missing column")
	ErrMalformedNumeric  = errors.New("malformed numeric value")
	ErrUnknownKey        = errors.New("unknown aggregation key")
	ErrEmptyResult       = errors.New("no data for the requested criteria")
	ErrSourceUnavailable = errors.New("survey source unavailable")
	ErrPeriodMismatch    = errors.New("record period does not match join period")
	ErrDerivation        = errors.New("derivation failed")
	ErrInvalidConfig     = errors.New("invalid configuration")
)

// RowError describes a single CSV row that could not be used.
type RowError struct {
	Line   int
	Column string
	Err    error
}

func (e *RowError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("line %d, column %s: %v", e.Line, e.Column, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// ColumnsError is returned when a source header lacks columns a report needs.
type ColumnsError struct {
	Dataset string
	Missing []string
}

func (e *ColumnsError) Error() string {
	return fmt.Sprintf("%s: header lacks required columns: %s", e.Dataset, strings.Join(e.Missing, ", "))
}

func (e *ColumnsError) Unwrap() error {
	return ErrMissingColumn
}
