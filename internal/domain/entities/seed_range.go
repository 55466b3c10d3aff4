package entities

// SeedRange represents a curated reference price range for a procedure.
// Seed entries are loaded once at process start and never written.
type SeedRange struct {
	ProcedureLabel string  `json:"procedure_label"`
	CategoryLabel  string  `json:"category_label"`
	Species        Species `json:"species"`
	Min            float64 `json:"min"`
	Max            float64 `json:"max"`
	Avg            float64 `json:"avg"`
}
