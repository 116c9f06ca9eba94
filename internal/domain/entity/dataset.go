package entity

// Dataset names one of the survey inputs.
type Dataset string

const (
	DatasetHousehold  Dataset = "hogar"
	DatasetIndividual Dataset = "individual"
	DatasetBasket     Dataset = "canasta"
)

// ParseDataset accepts the dataset name or its one-letter alias (H/I).
func ParseDataset(s string) (Dataset, bool) {
	switch s {
	case "hogar", "H", "h":
		return DatasetHousehold, true
	case "individual", "I", "i":
		return DatasetIndividual, true
	case "canasta":
		return DatasetBasket, true
	}
	return "", false
}

// Delimiter returns the field separator used by the dataset's files.
func (d Dataset) Delimiter() rune {
	if d == DatasetBasket {
		return ','
	}
	return ';'
}
