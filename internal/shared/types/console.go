package types

// ConsoleInterface is the terminal output used by the use cases.
type ConsoleInterface interface {
	Print(a ...interface{})
	Printf(format string, a ...interface{})
	Println(a ...interface{})

	LogInfo(format string, a ...interface{})
	LogWarning(format string, a ...interface{})
	LogError(format string, a ...interface{})
	LogSuccess(format string, a ...interface{})

	Status(message string) StatusHandle

	CreateTable() TableInterface
	DisplayRankingBars(title string, bars []RankingBar)
}

// StatusHandle updates or stops a running status spinner.
type StatusHandle interface {
	Update(message string)
	Stop()
}

// TableInterface builds a table for terminal rendering.
type TableInterface interface {
	AddColumn(name string, options ...interface{})
	AddRow(cells ...interface{})
	Render() string
}

// RankingBar is one labelled percentage drawn as a horizontal bar.
type RankingBar struct {
	Label      string  `json:"label"`
	Percentage float64 `json:"percentage"`
}
