package entity

// Columns shared by both files.
const (
	ColCodusu          = "CODUSU"
	ColYear            = "ANO4"
	ColQuarter         = "TRIMESTRE"
	ColHouseholdNumber = "NRO_HOGAR"
	ColRegion          = "REGION"
	ColAglomerado      = "AGLOMERADO"
	ColPondera         = "PONDERA"
)

// Household file columns.
const (
	ColRooms            = "IV2"
	ColRoof             = "IV4"
	ColWater            = "IV6"
	ColWaterOrigin      = "IV7"
	ColBathroom         = "IV8"
	ColBathroomLocation = "IV9"
	ColDrainage         = "IV11"
	ColTenure           = "II7"
	ColOccupants        = "IX_TOT"
	ColFamilyIncome     = "ITF"
)

// Individual file columns.
const (
	ColSex           = "CH04"
	ColAge           = "CH06"
	ColLiterate      = "CH09"
	ColHighestLevel  = "CH12"
	ColBirthplace    = "CH15"
	ColEducation     = "NIVEL_ED"
	ColLaborState    = "ESTADO"
	ColOccupationCat = "CAT_OCUP"
	ColInactivityCat = "CAT_INAC"
)

// Derived columns appended by the processing step.
const (
	ColSexLabel       = "CH04_str"
	ColEducationLabel = "NIVEL_ED_str"
	ColLaborCondition = "CONDICION_LABORAL"
	ColUniversity     = "UNIVERSITARIO"
	ColHouseholdType  = "TIPO_HOGAR"
	ColRoofMaterial   = "MATERIAL_TECHUMBRE"
	ColDensity        = "DENSIDAD_HOGAR"
	ColHabitability   = "CONDICION_DE_HABITABILIDAD"
)

// Basket (canasta básica) columns.
const (
	ColBasketDate    = "indice_tiempo"
	ColIndigenceLine = "linea_indigencia"
	ColPovertyLine   = "linea_pobreza"
)
