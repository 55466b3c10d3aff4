package entities

// Species identifies the animal a price query is about
type Species string

const (
	SpeciesDog   Species = "dog"
	SpeciesCat   Species = "cat"
	SpeciesOther Species = "other"

	// SpeciesAny marks seed entries that apply to every species
	SpeciesAny Species = "any"
)

// Valid reports whether the species is one of the query-level values
func (s Species) Valid() bool {
	return s == SpeciesDog || s == SpeciesCat || s == SpeciesOther
}

// RegionNationwide is the normalized "no region filter" sentinel.
// An empty region means the estimate covers all regions.
const RegionNationwide = ""

// PriceQuery is a normalized, validated cost query
type PriceQuery struct {
	ProcedureText string  `json:"procedure_text"`
	Species       Species `json:"species"`
	Region        string  `json:"region"`
}

// HasRegionFilter reports whether the query is scoped to a region
func (q PriceQuery) HasRegionFilter() bool {
	return q.Region != RegionNationwide
}
