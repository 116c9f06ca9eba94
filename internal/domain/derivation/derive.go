package derivation

import (
	"github.com/epharg/eph-dashboard-go/internal/domain/entity"
)

// Field is one derived column and its value.
type Field struct {
	Name  string
	Value string
}

// IndividualColumns lists the columns DeriveIndividual produces, in order.
var IndividualColumns = []string{
	entity.ColSexLabel,
	entity.ColEducationLabel,
	entity.ColLaborCondition,
	entity.ColUniversity,
}

// HouseholdColumns lists the columns DeriveHousehold produces, in order.
var HouseholdColumns = []string{
	entity.ColHouseholdType,
	entity.ColRoofMaterial,
	entity.ColDensity,
	entity.ColHabitability,
}

// DeriveIndividual computes the derived columns of a person row.
func DeriveIndividual(r entity.Record) []Field {
	return []Field{
		{entity.ColSexLabel, SexLabel(r.Value(entity.ColSex))},
		{entity.ColEducationLabel, EducationLabel(r.Value(entity.ColEducation))},
		{entity.ColLaborCondition, LaborCondition(r.Value(entity.ColLaborState), r.Value(entity.ColOccupationCat))},
		{entity.ColUniversity, UniversityComplete(r.Value(entity.ColAge), r.Value(entity.ColEducation))},
	}
}

// DeriveHousehold computes the derived columns of a household row.
func DeriveHousehold(r entity.Record) []Field {
	roof := RoofMaterialCategory(r.Value(entity.ColRoof))
	density, err := HousingDensity(r.Value(entity.ColRooms), r.Value(entity.ColOccupants))
	if err != nil {
		density = DensityError
	}
	return []Field{
		{entity.ColHouseholdType, HouseholdType(r.Value(entity.ColOccupants))},
		{entity.ColRoofMaterial, roof},
		{entity.ColDensity, density},
		{entity.ColHabitability, HouseholdHabitability(r)},
	}
}

// HouseholdHabitability classifies the dwelling of a household row.
func HouseholdHabitability(r entity.Record) string {
	return Habitability(
		r.Value(entity.ColWater),
		r.Value(entity.ColWaterOrigin),
		r.Value(entity.ColBathroom),
		r.Value(entity.ColBathroomLocation),
		r.Value(entity.ColDrainage),
		RoofMaterialCategory(r.Value(entity.ColRoof)),
	)
}
