package entity

// UnknownCode is the bucket that collects aglomerado codes outside the catalog
// when the unknown-key policy routes them instead of rejecting them.
const (
	UnknownCode = "?"
	UnknownName = "Desconocido"
)

// Area is one code/name pair of a reference table.
type Area struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Catalog is read-only reference data for aglomerados and regions. The zero
// value is empty; use DefaultCatalog or NewCatalog.
type Catalog struct {
	aglomerados []Area
	regions     []Area
	agloNames   map[string]string
	regionNames map[string]string
}

// NewCatalog builds a catalog that keeps the given order as domain order.
func NewCatalog(aglomerados, regions []Area) *Catalog {
	c := &Catalog{
		aglomerados: append([]Area(nil), aglomerados...),
		regions:     append([]Area(nil), regions...),
		agloNames:   make(map[string]string, len(aglomerados)),
		regionNames: make(map[string]string, len(regions)),
	}
	for _, a := range aglomerados {
		c.agloNames[a.Code] = a.Name
	}
	for _, r := range regions {
		c.regionNames[r.Code] = r.Name
	}
	return c
}

// DefaultCatalog returns the EPH aglomerados and statistical regions.
func DefaultCatalog() *Catalog {
	return NewCatalog([]Area{
		{"2", "Gran La Plata"},
		{"3", "Bahía Blanca-Cerri"},
		{"4", "Gran Rosario"},
		{"5", "Gran Santa Fe"},
		{"6", "Gran Paraná"},
		{"7", "Posadas"},
		{"8", "Gran Resistencia"},
		{"9", "Comodoro Rivadavia-Rada Tilly"},
		{"10", "Gran Mendoza"},
		{"12", "Corrientes"},
		{"13", "Gran Córdoba"},
		{"14", "Concordia"},
		{"15", "Formosa"},
		{"17", "Neuquén-Plottier"},
		{"18", "Santiago del Estero-La Banda"},
		{"19", "Jujuy-Palpalá"},
		{"20", "Río Gallegos"},
		{"22", "Gran Catamarca"},
		{"23", "Gran Salta"},
		{"25", "La Rioja"},
		{"26", "Gran San Luis"},
		{"27", "Gran San Juan"},
		{"29", "Gran Tucumán-Tafí Viejo"},
		{"30", "Santa Rosa-Toay"},
		{"31", "Ushuaia-Río Grande"},
		{"32", "Ciudad Autónoma de Buenos Aires"},
		{"33", "Partidos del Gran Buenos Aires"},
		{"34", "Mar del Plata"},
		{"36", "Río Cuarto"},
		{"38", "San Nicolás-Villa Constitución"},
		{"91", "Rawson-Trelew"},
		{"93", "Viedma-Carmen de Patagones"},
	}, []Area{
		{"1", "Gran Buenos Aires"},
		{"40", "Noroeste"},
		{"41", "Noreste"},
		{"42", "Cuyo"},
		{"43", "Pampeana"},
		{"44", "Patagonia"},
	})
}

// AglomeradoCodes returns the aglomerado codes in catalog order.
func (c *Catalog) AglomeradoCodes() []string {
	return codes(c.aglomerados)
}

// RegionCodes returns the region codes in catalog order.
func (c *Catalog) RegionCodes() []string {
	return codes(c.regions)
}

// Aglomerados returns the aglomerado table.
func (c *Catalog) Aglomerados() []Area {
	return append([]Area(nil), c.aglomerados...)
}

// HasAglomerado reports whether code is a known aglomerado.
func (c *Catalog) HasAglomerado(code string) bool {
	_, ok := c.agloNames[code]
	return ok
}

// AglomeradoName returns the display name, falling back to "Aglomerado <code>".
func (c *Catalog) AglomeradoName(code string) string {
	if code == UnknownCode {
		return UnknownName
	}
	if name, ok := c.agloNames[code]; ok {
		return name
	}
	return "Aglomerado " + code
}

// RegionName returns the display name, falling back to "Región <code>".
func (c *Catalog) RegionName(code string) string {
	if code == UnknownCode {
		return UnknownName
	}
	if name, ok := c.regionNames[code]; ok {
		return name
	}
	return "Región " + code
}

func codes(areas []Area) []string {
	out := make([]string, len(areas))
	for i, a := range areas {
		out[i] = a.Code
	}
	return out
}
