package types

// CLIArgs represents the command-line arguments shared by every report.
type CLIArgs struct {
	ConfigFile    string
	Household     string
	Individual    string
	Basket        string
	ProcessedDir  string
	ReportName    string
	ReportType    []string
	Dir           string
	UnknownPolicy string
	LogLevel      string
	AWSProfile    string
	AWSRegion     string
	Top           int
}

// PeriodArgs selects a single survey wave.
type PeriodArgs struct {
	Year    int
	Quarter int
}

// IsSet reports whether both parts of the period were given.
func (p PeriodArgs) IsSet() bool {
	return p.Year > 0 && p.Quarter > 0
}
