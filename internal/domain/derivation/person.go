package derivation

import (
	"strconv"
	"strings"
)

// Sex labels.
const (
	SexMale    = "Masculino"
	SexFemale  = "Femenino"
	SexUnknown = "Desconocido"
)

// Education labels.
const (
	PrimaryIncomplete   = "Primario incompleto."
	PrimaryComplete     = "Primario completo."
	SecondaryIncomplete = "Secundario incompleto."
	SecondaryComplete   = "Secundario completo."
	HigherEducation     = "Superior o universitario."
	EducationNoInfo     = "Sin información."
)

// EducationBuckets lists the reportable education labels in table order.
var EducationBuckets = [5]string{
	PrimaryIncomplete,
	PrimaryComplete,
	SecondaryIncomplete,
	SecondaryComplete,
	HigherEducation,
}

// Labor conditions. LaborNoData is returned when either code is missing.
const (
	LaborSelfEmployed = "Ocupado Autónomo."
	LaborEmployee     = "Ocupado dependiente."
	LaborUnemployed   = "Desocupado."
	LaborInactive     = "Inactivo."
	LaborOther        = "Fuera de categoría/Sin información."
	LaborNoData       = ""
)

// University completion flags.
const (
	UniversityYes      = "1"
	UniversityUnderage = "2"
	UniversityNo       = "0"
)

// AdultAge is the age from which a person counts as an adult.
const AdultAge = 18

// SexLabel maps CH04.
func SexLabel(code string) string {
	switch strings.TrimSpace(code) {
	case "1":
		return SexMale
	case "2":
		return SexFemale
	default:
		return SexUnknown
	}
}

// EducationLabel maps NIVEL_ED.
func EducationLabel(code string) string {
	switch strings.TrimSpace(code) {
	case "1":
		return PrimaryIncomplete
	case "2":
		return PrimaryComplete
	case "3":
		return SecondaryIncomplete
	case "4":
		return SecondaryComplete
	case "5", "6":
		return HigherEducation
	default:
		return EducationNoInfo
	}
}

// EducationBucket returns the index of code in EducationBuckets, or -1.
func EducationBucket(code string) int {
	label := EducationLabel(code)
	for i, b := range EducationBuckets {
		if b == label {
			return i
		}
	}
	return -1
}

// LaborCondition maps ESTADO and CAT_OCUP.
func LaborCondition(estado, catOcup string) string {
	estado = strings.TrimSpace(estado)
	catOcup = strings.TrimSpace(catOcup)
	if estado == "" || catOcup == "" {
		return LaborNoData
	}

	switch estado {
	case "1":
		switch catOcup {
		case "1", "2":
			return LaborSelfEmployed
		case "3", "4", "9":
			return LaborEmployee
		}
	case "2":
		return LaborUnemployed
	case "3":
		return LaborInactive
	}
	return LaborOther
}

// UniversityComplete flags adults who finished university. Being underage
// takes precedence over the education code.
func UniversityComplete(age, educationCode string) string {
	years, err := strconv.Atoi(strings.TrimSpace(age))
	if err != nil {
		return UniversityNo
	}
	if years < AdultAge {
		return UniversityUnderage
	}
	if strings.TrimSpace(educationCode) == "6" {
		return UniversityYes
	}
	return UniversityNo
}
