package derivation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/epharg/eph-dashboard-go/internal/shared/types"
)

// Household types.
const (
	HouseholdSingle   = "Unipersonal."
	HouseholdNuclear  = "Nuclear."
	HouseholdExtended = "Extendido."
	HouseholdUnknown  = "Desconocido"
)

// Roof material categories.
const (
	RoofPrecarious    = "Material Precario"
	RoofDurable       = "Material Durable"
	RoofNotApplicable = "No aplica"
	RoofNoInfo        = "N/S."
)

// Density levels. DensityError is written when the inputs cannot be classified.
const (
	DensityLow    = "Bajo"
	DensityMedium = "Medio"
	DensityHigh   = "Alto"
	DensityError  = "Error al procesar los datos."
)

// Habitability levels.
const (
	HabitabilityInsufficient = "Insuficiente"
	HabitabilityRegular      = "Regular"
	HabitabilityHealthy      = "Saludable"
	HabitabilityGood         = "Buena"
	HabitabilityUnknown      = "Desconocido"
)

// HouseholdType classifies IX_TOT.
func HouseholdType(occupants string) string {
	n, err := strconv.Atoi(strings.TrimSpace(occupants))
	switch {
	case err != nil || n < 1:
		return HouseholdUnknown
	case n == 1:
		return HouseholdSingle
	case n <= 4:
		return HouseholdNuclear
	default:
		return HouseholdExtended
	}
}

// RoofMaterialCategory classifies IV4.
func RoofMaterialCategory(code string) string {
	switch strings.TrimSpace(code) {
	case "5", "6", "7":
		return RoofPrecarious
	case "1", "2", "3", "4":
		return RoofDurable
	case "9":
		return RoofNotApplicable
	default:
		return RoofNoInfo
	}
}

// HousingDensity classifies occupants per room from IV2 and IX_TOT.
func HousingDensity(rooms, occupants string) (string, error) {
	r, err := strconv.Atoi(strings.TrimSpace(rooms))
	if err != nil {
		return "", fmt.Errorf("%w: rooms %q is not a number", types.ErrDerivation, rooms)
	}
	p, err := strconv.Atoi(strings.TrimSpace(occupants))
	if err != nil {
		return "", fmt.Errorf("%w: occupants %q is not a number", types.ErrDerivation, occupants)
	}
	if r <= 0 {
		return "", fmt.Errorf("%w: household reports %d rooms", types.ErrDerivation, r)
	}

	density := float64(p) / float64(r)
	switch {
	case density < 1:
		return DensityLow, nil
	case density <= 2:
		return DensityMedium, nil
	default:
		return DensityHigh, nil
	}
}

// Habitability classifies a dwelling from IV6 (water supply), IV7 (water
// origin), IV8 (bathroom), IV9 (bathroom location), IV11 (drainage) and the
// roof category.
//
// Water from outside the plot, or a non-applicable roof, is always
// insufficient. Water outside the dwelling but inside the plot is never better
// than "Saludable". Only piped water inside the dwelling can reach "Buena".
func Habitability(water, waterOrigin, bathroom, bathroomLocation, drainage, roofCategory string) string {
	water = strings.TrimSpace(water)
	if water == "" {
		return HabitabilityUnknown
	}
	if water == "3" || roofCategory == RoofNotApplicable {
		return HabitabilityInsufficient
	}

	waterOrigin = strings.TrimSpace(waterOrigin)
	bathroomLocation = strings.TrimSpace(bathroomLocation)
	drainage = strings.TrimSpace(drainage)
	poorSanitation := drainage == "4" || bathroomLocation == "3" || waterOrigin == "4"
	partialSanitation := bathroomLocation == "2" || waterOrigin == "3"

	if water == "2" {
		switch {
		case strings.TrimSpace(bathroom) == "2", poorSanitation:
			return HabitabilityInsufficient
		case partialSanitation:
			return HabitabilityRegular
		default:
			return HabitabilityHealthy
		}
	}

	if roofCategory != RoofDurable {
		return HabitabilityRegular
	}
	switch {
	case poorSanitation:
		return HabitabilityRegular
	case partialSanitation:
		return HabitabilityHealthy
	default:
		return HabitabilityGood
	}
}
