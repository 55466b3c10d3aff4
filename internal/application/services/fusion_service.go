package services

import (
	"context"
	"math"
	"sort"
	"strings"

	"github.com/petmily/vetpricediscovery/backend/internal/domain/entities"
	"github.com/petmily/vetpricediscovery/backend/internal/domain/repositories"
	apperrors "github.com/petmily/vetpricediscovery/backend/pkg/errors"
	"github.com/petmily/vetpricediscovery/backend/pkg/stats"
)

const (
	// DefaultMinimumSampleSize is the live sample size below which the
	// engine falls back to or blends with seed data
	DefaultMinimumSampleSize = 10

	// DefaultFetchLimit bounds a live record fetch
	DefaultFetchLimit = 500

	// maxRelatedLabels caps the related-labels list on an estimate
	maxRelatedLabels = 8
)

// SeedTable defines the fusion engine's view of the curated reference data
type SeedTable interface {
	FindMatches(text string, species entities.Species) []entities.SeedRange
}

// FusionService combines live price records with curated seed ranges into
// a single estimate
type FusionService struct {
	records repositories.PriceRecordRepository
	seeds   SeedTable

	minimumSampleSize int
	fetchLimit        int
}

// NewFusionService creates a new data fusion service
func NewFusionService(records repositories.PriceRecordRepository, seeds SeedTable, minimumSampleSize, fetchLimit int) *FusionService {
	if minimumSampleSize <= 0 {
		minimumSampleSize = DefaultMinimumSampleSize
	}
	if fetchLimit <= 0 {
		fetchLimit = DefaultFetchLimit
	}
	return &FusionService{
		records:           records,
		seeds:             seeds,
		minimumSampleSize: minimumSampleSize,
		fetchLimit:        fetchLimit,
	}
}

// Estimate produces a price estimate for a validated query. Store errors
// propagate unmodified: an outage is a failure, not a sufficiency
// question, and must never silently degrade to seed-only data.
func (s *FusionService) Estimate(ctx context.Context, query entities.PriceQuery) (*entities.PriceEstimate, error) {
	fetched, err := s.records.FetchByLabel(ctx, repositories.PriceRecordFilter{
		Species:   query.Species,
		LabelText: query.ProcedureText,
		Limit:     s.fetchLimit,
	})
	if err != nil {
		return nil, err
	}

	regional := partitionRegional(fetched, query)

	var regionalStats stats.Summary
	if len(regional) > 0 {
		regionalStats, err = stats.Compute(prices(regional))
		if err != nil {
			return nil, err
		}
	}

	estimate := &entities.PriceEstimate{
		Species:       query.Species,
		Region:        query.Region,
		RelatedLabels: relatedLabels(fetched),
	}

	// Enough regional observations: live data stands on its own and the
	// seed table is ignored entirely
	if regionalStats.Count >= s.minimumSampleSize {
		estimate.MatchedLabel = matchedLabel(fetched, nil, query)
		estimate.Stats = entities.PriceStats{
			Min:        regionalStats.Min,
			Max:        regionalStats.Max,
			Avg:        regionalStats.Avg,
			Median:     regionalStats.Median,
			SampleSize: regionalStats.Count,
			Source:     entities.SourceLive,
		}
		estimate.NationalAverage = stats.Mean(prices(fetched))
		estimate.RegionalAverage = regionalStats.Avg
		return estimate, nil
	}

	seedMatches := s.seeds.FindMatches(query.ProcedureText, query.Species)
	if len(seedMatches) == 0 {
		if len(regional) == 0 {
			return nil, apperrors.NewNotFoundError("no price data for query")
		}
		// Sparse live data with no curated fallback: serve what exists
		// rather than discarding real observations
		estimate.MatchedLabel = matchedLabel(fetched, nil, query)
		estimate.Stats = entities.PriceStats{
			Min:        regionalStats.Min,
			Max:        regionalStats.Max,
			Avg:        regionalStats.Avg,
			Median:     regionalStats.Median,
			SampleSize: regionalStats.Count,
			Source:     entities.SourceLive,
		}
		estimate.NationalAverage = stats.Mean(prices(fetched))
		estimate.RegionalAverage = regionalStats.Avg
		return estimate, nil
	}

	seedEntry := seedMatches[0]
	estimate.MatchedLabel = matchedLabel(fetched, &seedEntry, query)
	estimate.Stats = s.blend(regionalStats, seedEntry)

	if len(fetched) > 0 {
		estimate.NationalAverage = stats.Mean(prices(fetched))
	} else {
		estimate.NationalAverage = stats.Round2(seedEntry.Avg)
	}
	if regionalStats.Count > 0 {
		estimate.RegionalAverage = regionalStats.Avg
	} else {
		estimate.RegionalAverage = estimate.Stats.Avg
	}

	return estimate, nil
}

// blend combines sparse live statistics with a seed range. The seed entry
// carries a fixed nominal sample size equal to the sufficiency threshold;
// it represents confidence, not literal observations, and is always
// counted in the blended sample size.
func (s *FusionService) blend(live stats.Summary, seed entities.SeedRange) entities.PriceStats {
	seedCount := s.minimumSampleSize

	if live.Count == 0 {
		return entities.PriceStats{
			Min:        stats.Round2(seed.Min),
			Max:        stats.Round2(seed.Max),
			Avg:        stats.Round2(seed.Avg),
			Median:     stats.Round2(seed.Avg),
			SampleSize: seedCount,
			Source:     entities.SourceSeed,
		}
	}

	total := live.Count + seedCount
	weighted := (live.Avg*float64(live.Count) + seed.Avg*float64(seedCount)) / float64(total)

	return entities.PriceStats{
		Min:        stats.Round2(math.Min(live.Min, seed.Min)),
		Max:        stats.Round2(math.Max(live.Max, seed.Max)),
		Avg:        stats.Round2(weighted),
		Median:     stats.Round2(weighted),
		SampleSize: total,
		Source:     entities.SourceMixed,
	}
}

// partitionRegional selects the records scoped to the requested region.
// Without a region filter every fetched record is regional. Matching is
// case-insensitive substring containment, not equality, so "서울" matches
// a record tagged "서울 강남구".
func partitionRegional(fetched []*entities.PriceRecord, query entities.PriceQuery) []*entities.PriceRecord {
	if !query.HasRegionFilter() {
		return fetched
	}

	needle := strings.ToLower(query.Region)
	var regional []*entities.PriceRecord
	for _, record := range fetched {
		region := strings.ToLower(record.Region)
		if region == "" {
			continue
		}
		if strings.Contains(region, needle) || strings.Contains(needle, region) {
			regional = append(regional, record)
		}
	}
	return regional
}

func prices(records []*entities.PriceRecord) []float64 {
	out := make([]float64, len(records))
	for i, record := range records {
		out[i] = record.Price
	}
	return out
}

// relatedLabels builds a frequency table over the fetched records'
// procedure and category labels and returns the top entries, most
// frequent first, ties broken by first-seen order. Live data only.
func relatedLabels(fetched []*entities.PriceRecord) []string {
	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	var order []string

	note := func(label string) {
		if label == "" {
			return
		}
		if _, ok := counts[label]; !ok {
			firstSeen[label] = len(order)
			order = append(order, label)
		}
		counts[label]++
	}

	for _, record := range fetched {
		note(record.ProcedureLabel)
		note(record.CategoryLabel)
	}

	sort.SliceStable(order, func(i, j int) bool {
		if counts[order[i]] != counts[order[j]] {
			return counts[order[i]] > counts[order[j]]
		}
		return firstSeen[order[i]] < firstSeen[order[j]]
	})

	if len(order) > maxRelatedLabels {
		order = order[:maxRelatedLabels]
	}
	return order
}

// matchedLabel picks the best-matching procedure name for the estimate:
// the most frequent live procedure label, then the seed label, then the
// query text itself.
func matchedLabel(fetched []*entities.PriceRecord, seed *entities.SeedRange, query entities.PriceQuery) string {
	counts := make(map[string]int)
	best := ""
	for _, record := range fetched {
		if record.ProcedureLabel == "" {
			continue
		}
		counts[record.ProcedureLabel]++
		if best == "" || counts[record.ProcedureLabel] > counts[best] {
			best = record.ProcedureLabel
		}
	}
	if best != "" {
		return best
	}
	if seed != nil {
		return seed.ProcedureLabel
	}
	return query.ProcedureText
}
