package derivation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/epharg/eph-dashboard-go/internal/domain/entity"
	"github.com/epharg/eph-dashboard-go/internal/shared/types"
)

func TestSexLabel(t *testing.T) {
	assert.Equal(t, SexMale, SexLabel("1"))
	assert.Equal(t, SexFemale, SexLabel(" 2 "))
	assert.Equal(t, SexUnknown, SexLabel("3"))
	assert.Equal(t, SexUnknown, SexLabel(""))
}

func TestEducationLabel(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"1", PrimaryIncomplete},
		{"2", PrimaryComplete},
		{"3", SecondaryIncomplete},
		{"4", SecondaryComplete},
		{"5", HigherEducation},
		{"6", HigherEducation},
		{"7", EducationNoInfo},
		{"9", EducationNoInfo},
		{"42", EducationNoInfo},
		{"", EducationNoInfo},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, EducationLabel(tt.code))
		})
	}
}

func TestEducationBucket(t *testing.T) {
	assert.Equal(t, 0, EducationBucket("1"))
	assert.Equal(t, 4, EducationBucket("6"))
	assert.Equal(t, -1, EducationBucket("9"))
}

func TestLaborCondition(t *testing.T) {
	tests := []struct {
		name    string
		estado  string
		catOcup string
		want    string
	}{
		{"self employed", "1", "1", LaborSelfEmployed},
		{"employer", "1", "2", LaborSelfEmployed},
		{"employee", "1", "3", LaborEmployee},
		{"unpaid family worker", "1", "4", LaborEmployee},
		{"occupied without category", "1", "9", LaborEmployee},
		{"occupied unknown category", "1", "0", LaborOther},
		{"unemployed", "2", "0", LaborUnemployed},
		{"inactive", "3", "0", LaborInactive},
		{"under ten", "4", "0", LaborOther},
		{"empty estado", "", "1", LaborNoData},
		{"empty category", "1", " ", LaborNoData},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LaborCondition(tt.estado, tt.catOcup))
		})
	}
}

func TestHousingDensity(t *testing.T) {
	tests := []struct {
		name      string
		rooms     string
		occupants string
		want      string
		wantErr   bool
	}{
		{"low", "4", "3", DensityLow, false},
		{"medium lower bound", "2", "2", DensityMedium, false},
		{"medium upper bound", "2", "4", DensityMedium, false},
		{"high", "1", "3", DensityHigh, false},
		{"zero rooms", "0", "3", "", true},
		{"non numeric rooms", "x", "3", "", true},
		{"non numeric occupants", "2", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := HousingDensity(tt.rooms, tt.occupants)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, types.ErrDerivation))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRoofMaterialCategory(t *testing.T) {
	for _, code := range []string{"5", "6", "7"} {
		assert.Equal(t, RoofPrecarious, RoofMaterialCategory(code))
	}
	for _, code := range []string{"1", "2", "3", "4"} {
		assert.Equal(t, RoofDurable, RoofMaterialCategory(code))
	}
	assert.Equal(t, RoofNotApplicable, RoofMaterialCategory("9"))
	assert.Equal(t, RoofNoInfo, RoofMaterialCategory("8"))
	assert.Equal(t, RoofNoInfo, RoofMaterialCategory(""))
}

func TestHabitabilityUnsafeWaterAlwaysInsufficient(t *testing.T) {
	codes := []string{"", "1", "2", "3", "4"}
	roofs := []string{RoofDurable, RoofPrecarious, RoofNotApplicable, RoofNoInfo}
	for _, origin := range codes {
		for _, bathroom := range codes {
			for _, location := range codes {
				for _, drainage := range codes {
					for _, roof := range roofs {
						got := Habitability("3", origin, bathroom, location, drainage, roof)
						require.Equal(t, HabitabilityInsufficient, got)
					}
				}
			}
		}
	}
}

func TestHabitability(t *testing.T) {
	tests := []struct {
		name                                        string
		water, origin, bathroom, location, drainage string
		roof                                        string
		want                                        string
	}{
		{"roof not applicable", "1", "1", "1", "1", "1", RoofNotApplicable, HabitabilityInsufficient},
		{"plot water no bathroom", "2", "1", "2", "1", "1", RoofDurable, HabitabilityInsufficient},
		{"plot water no drainage", "2", "1", "1", "1", "4", RoofDurable, HabitabilityInsufficient},
		{"plot water bathroom outside", "2", "1", "1", "2", "1", RoofDurable, HabitabilityRegular},
		{"plot water clean", "2", "1", "1", "1", "1", RoofDurable, HabitabilityHealthy},
		{"piped durable clean", "1", "1", "1", "1", "1", RoofDurable, HabitabilityGood},
		{"piped durable partial", "1", "3", "1", "1", "1", RoofDurable, HabitabilityHealthy},
		{"piped durable poor", "1", "4", "1", "1", "1", RoofDurable, HabitabilityRegular},
		{"piped precarious roof", "1", "1", "1", "1", "1", RoofPrecarious, HabitabilityRegular},
		{"missing water", "", "1", "1", "1", "1", RoofDurable, HabitabilityUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Habitability(tt.water, tt.origin, tt.bathroom, tt.location, tt.drainage, tt.roof)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHouseholdType(t *testing.T) {
	assert.Equal(t, HouseholdSingle, HouseholdType("1"))
	assert.Equal(t, HouseholdNuclear, HouseholdType("2"))
	assert.Equal(t, HouseholdNuclear, HouseholdType("4"))
	assert.Equal(t, HouseholdExtended, HouseholdType("5"))
	assert.Equal(t, HouseholdUnknown, HouseholdType("abc"))
	assert.Equal(t, HouseholdUnknown, HouseholdType("0"))
}

func TestUniversityComplete(t *testing.T) {
	assert.Equal(t, UniversityUnderage, UniversityComplete("17", "6"))
	assert.Equal(t, UniversityYes, UniversityComplete("18", "6"))
	assert.Equal(t, UniversityNo, UniversityComplete("40", "5"))
	assert.Equal(t, UniversityNo, UniversityComplete("n/a", "6"))
}

func TestDeriveRows(t *testing.T) {
	ind := entity.NewHeader([]string{"CH04", "CH06", "NIVEL_ED", "ESTADO", "CAT_OCUP"})
	got := DeriveIndividual(entity.NewRecord(ind, []string{"2", "30", "6", "1", "3"}, 2))
	assert.Equal(t, []Field{
		{entity.ColSexLabel, SexFemale},
		{entity.ColEducationLabel, HigherEducation},
		{entity.ColLaborCondition, LaborEmployee},
		{entity.ColUniversity, UniversityYes},
	}, got)

	hog := entity.NewHeader([]string{"IV2", "IV4", "IV6", "IV7", "IV8", "IV9", "IV11", "IX_TOT"})
	got = DeriveHousehold(entity.NewRecord(hog, []string{"0", "1", "1", "1", "1", "1", "1", "3"}, 2))
	assert.Equal(t, []Field{
		{entity.ColHouseholdType, HouseholdNuclear},
		{entity.ColRoofMaterial, RoofDurable},
		{entity.ColDensity, DensityError},
		{entity.ColHabitability, HabitabilityGood},
	}, got)
}
