package entity

import "fmt"

// Period is one survey wave: a calendar year and quarter.
type Period struct {
	Year    int `json:"year"`
	Quarter int `json:"quarter"`
}

// Valid reports whether the quarter is within 1..4.
func (p Period) Valid() bool {
	return p.Quarter >= 1 && p.Quarter <= 4
}

// Before orders periods by year, then quarter.
func (p Period) Before(o Period) bool {
	if p.Year != o.Year {
		return p.Year < o.Year
	}
	return p.Quarter < o.Quarter
}

// After is the strict reverse of Before.
func (p Period) After(o Period) bool {
	return o.Before(p)
}

func (p Period) String() string {
	return fmt.Sprintf("%dT%d", p.Year, p.Quarter)
}

// Months returns the calendar months covered by the quarter.
func (p Period) Months() []int {
	first := (p.Quarter-1)*3 + 1
	return []int{first, first + 1, first + 2}
}

// PeriodRange holds the earliest and latest wave found in a source.
type PeriodRange struct {
	Min Period `json:"min"`
	Max Period `json:"max"`
}

func (r PeriodRange) String() string {
	return fmt.Sprintf("%s - %s", r.Min, r.Max)
}
