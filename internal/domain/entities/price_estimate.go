package entities

// EstimateSource describes which data fed an estimate
type EstimateSource string

const (
	// SourceLive means the estimate was computed from live records only
	SourceLive EstimateSource = "live"

	// SourceSeed means only the curated seed range backed the estimate
	SourceSeed EstimateSource = "seed"

	// SourceMixed means live records were blended with a seed range
	SourceMixed EstimateSource = "mixed"
)

// PriceStats holds the aggregate statistics of an estimate
type PriceStats struct {
	Min        float64        `json:"min"`
	Max        float64        `json:"max"`
	Avg        float64        `json:"avg"`
	Median     float64        `json:"median"`
	SampleSize int            `json:"sample_size"`
	Source     EstimateSource `json:"source"`
}

// PriceEstimate is the result of a cost query
type PriceEstimate struct {
	MatchedLabel    string     `json:"matched_label"`
	Species         Species    `json:"species"`
	Region          string     `json:"region"`
	Stats           PriceStats `json:"stats"`
	NationalAverage float64    `json:"national_average"`
	RegionalAverage float64    `json:"regional_average"`
	RelatedLabels   []string   `json:"related_labels"`
}
