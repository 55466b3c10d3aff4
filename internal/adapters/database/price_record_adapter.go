package database

import (
	"context"
	"database/sql"
	"fmt"
	"math"

	"github.com/doug-martin/goqu/v9"
	"github.com/rs/zerolog/log"

	"github.com/petmily/vetpricediscovery/backend/internal/domain/entities"
	"github.com/petmily/vetpricediscovery/backend/internal/domain/repositories"
	"github.com/petmily/vetpricediscovery/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/petmily/vetpricediscovery/backend/pkg/errors"
)

// defaultFetchLimit bounds a fetch when the filter does not set one
const defaultFetchLimit = 500

// PriceRecordAdapter implements PriceRecordRepository against Postgres
type PriceRecordAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewPriceRecordAdapter creates a new price record adapter
func NewPriceRecordAdapter(client *postgres.Client) repositories.PriceRecordRepository {
	return &PriceRecordAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// FetchByLabel retrieves records for a species whose procedure or category
// label contains the query text (case-insensitive). The row count is capped
// to bound latency; the fusion engine works with whatever fits in the cap.
func (a *PriceRecordAdapter) FetchByLabel(ctx context.Context, filter repositories.PriceRecordFilter) ([]*entities.PriceRecord, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultFetchLimit
	}

	pattern := fmt.Sprintf("%%%s%%", filter.LabelText)

	query, args, err := a.db.Select(
		"id", "species", "procedure_label", "category_label", "region", "price", "created_at",
	).From("price_records").
		Where(goqu.Ex{"species": string(filter.Species)}).
		Where(goqu.Or(
			goqu.I("procedure_label").ILike(pattern),
			goqu.I("category_label").ILike(pattern),
		)).
		Order(goqu.I("created_at").Desc()).
		Limit(uint(limit)).
		ToSQL()

	if err != nil {
		return nil, apperrors.NewInternalError("failed to build fetch query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewExternalError("price record store unavailable", err)
	}
	defer rows.Close()

	var records []*entities.PriceRecord
	dropped := 0
	for rows.Next() {
		record, err := scanPriceRecord(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan price record", err)
		}
		if !validPrice(record.Price) {
			dropped++
			continue
		}
		records = append(records, record)
	}

	if err = rows.Err(); err != nil {
		return nil, apperrors.NewExternalError("price record store unavailable", err)
	}

	if dropped > 0 {
		log.Debug().
			Int("dropped", dropped).
			Str("label_text", filter.LabelText).
			Msg("dropped price records with unusable prices")
	}

	return records, nil
}

func scanPriceRecord(rows *sql.Rows) (*entities.PriceRecord, error) {
	record := &entities.PriceRecord{}
	var categoryLabel, region sql.NullString
	var species string

	err := rows.Scan(
		&record.ID,
		&species,
		&record.ProcedureLabel,
		&categoryLabel,
		&region,
		&record.Price,
		&record.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	record.Species = entities.Species(species)
	record.CategoryLabel = categoryLabel.String
	record.Region = region.String

	return record, nil
}

// validPrice rejects rows the statistics calculator must never see
func validPrice(price float64) bool {
	return price > 0 && !math.IsNaN(price) && !math.IsInf(price, 0)
}
