package entity

// AreaShare is one ranked aglomerado or region with its weighted counts.
type AreaShare struct {
	Code       string  `json:"code"`
	Name       string  `json:"name"`
	Total      int64   `json:"total"`
	Matched    int64   `json:"matched"`
	Percentage float64 `json:"percentage"`
}

// ShareReport is a ranking of areas by percentage.
type ShareReport struct {
	Title   string      `json:"title"`
	Period  *Period     `json:"period,omitempty"`
	Entries []AreaShare `json:"entries"`
	// Overall combines every area, including those cut by a top-N.
	Overall AreaShare `json:"overall"`
}

// LiteracyYear holds the literacy split for the fourth quarter of one year.
type LiteracyYear struct {
	Year                 int     `json:"year"`
	Total                int64   `json:"total"`
	LiteratePercentage   float64 `json:"literate_percentage"`
	IlliteratePercentage float64 `json:"illiterate_percentage"`
}

// PeriodShare is a single weighted ratio for one survey wave.
type PeriodShare struct {
	Period     Period  `json:"period"`
	Total      int64   `json:"total"`
	Matched    int64   `json:"matched"`
	Percentage float64 `json:"percentage"`
}

// PeriodCount is a weighted count for one survey wave.
type PeriodCount struct {
	Period Period `json:"period"`
	Count  int64  `json:"count"`
}

// AreaCount is a weighted count for one area.
type AreaCount struct {
	Code  string `json:"code"`
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// EducationRow holds adults by education bucket for one wave of an aglomerado.
type EducationRow struct {
	Period Period   `json:"period"`
	Counts [5]int64 `json:"counts"`
}

// EducationReport is the education table of one aglomerado.
type EducationReport struct {
	Aglomerado Area           `json:"aglomerado"`
	Rows       []EducationRow `json:"rows"`
}

// ComparisonRow holds both aglomerados' percentages for one wave.
type ComparisonRow struct {
	Period Period  `json:"period"`
	First  float64 `json:"first"`
	Second float64 `json:"second"`
}

// ComparisonReport compares incomplete secondary education between two aglomerados.
type ComparisonReport struct {
	First  Area            `json:"first"`
	Second Area            `json:"second"`
	Rows   []ComparisonRow `json:"rows"`
}

// ExtremesReport names the areas with the highest and lowest share in a wave.
type ExtremesReport struct {
	Period  Period    `json:"period"`
	Highest AreaShare `json:"highest"`
	Lowest  AreaShare `json:"lowest"`
}

// PovertyReport compares four-member household incomes with the basket lines.
type PovertyReport struct {
	Period              Period  `json:"period"`
	IndigenceLine       float64 `json:"indigence_line"`
	PovertyLine         float64 `json:"poverty_line"`
	Households          int64   `json:"households"`
	BelowIndigence      int64   `json:"below_indigence"`
	BelowPoverty        int64   `json:"below_poverty"`
	IndigencePercentage float64 `json:"indigence_percentage"`
	PovertyPercentage   float64 `json:"poverty_percentage"`
}

// PeriodsReport lists the waves available in each file.
type PeriodsReport struct {
	Household  *PeriodRange `json:"household,omitempty"`
	Individual *PeriodRange `json:"individual,omitempty"`
	Combined   *PeriodRange `json:"combined,omitempty"`
}
