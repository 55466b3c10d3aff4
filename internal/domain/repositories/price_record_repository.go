package repositories

import (
	"context"

	"github.com/petmily/vetpricediscovery/backend/internal/domain/entities"
)

// PriceRecordFilter defines the scope of a live record fetch
type PriceRecordFilter struct {
	Species   entities.Species
	LabelText string // matched by substring against procedure and category labels
	Limit     int
}

// PriceRecordRepository defines read access to live price records
type PriceRecordRepository interface {
	// FetchByLabel retrieves records for a species whose procedure or
	// category label fuzzily matches the given text
	FetchByLabel(ctx context.Context, filter PriceRecordFilter) ([]*entities.PriceRecord, error)
}
