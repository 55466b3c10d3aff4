package entities

import (
	"time"
)

// PriceRecord represents a single user-contributed price observation.
// Records are read-only from the estimation core's perspective; ingestion
// happens elsewhere in the product.
type PriceRecord struct {
	ID             string    `json:"id" db:"id"`
	Price          float64   `json:"price" db:"price"`
	ProcedureLabel string    `json:"procedure_label" db:"procedure_label"`
	CategoryLabel  string    `json:"category_label" db:"category_label"`
	Region         string    `json:"region" db:"region"`
	Species        Species   `json:"species" db:"species"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}
