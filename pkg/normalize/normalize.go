// Package normalize canonicalizes raw cost-query input before any lookup
// or cache-key construction happens.
package normalize

import (
	"strings"

	"github.com/petmily/vetpricediscovery/backend/internal/domain/entities"
	apperrors "github.com/petmily/vetpricediscovery/backend/pkg/errors"
)

// nationwideTokens are region values that mean "no region filter".
// The product is Korean-first, so the Korean token is accepted too.
var nationwideTokens = map[string]bool{
	"nationwide": true,
	"전국":         true,
}

// Query builds a validated PriceQuery from raw caller-supplied input.
// The operation is idempotent: normalizing an already-normalized query
// yields the same query.
func Query(rawText, rawSpecies, rawRegion string) (entities.PriceQuery, error) {
	text := CollapseWhitespace(rawText)
	if text == "" {
		return entities.PriceQuery{}, apperrors.NewValidationError("query required")
	}

	species := entities.Species(strings.ToLower(strings.TrimSpace(rawSpecies)))
	if !species.Valid() {
		return entities.PriceQuery{}, apperrors.NewValidationError("species must be dog|cat|other")
	}

	return entities.PriceQuery{
		ProcedureText: text,
		Species:       species,
		Region:        Region(rawRegion),
	}, nil
}

// Region maps a raw region token onto the normalized region value.
// Empty, whitespace-only, and nationwide tokens all collapse to the
// no-filter sentinel; anything else is trimmed and kept verbatim.
// Case-sensitive matching is the fusion engine's concern, not ours.
func Region(raw string) string {
	trimmed := CollapseWhitespace(raw)
	if trimmed == "" || nationwideTokens[strings.ToLower(trimmed)] {
		return entities.RegionNationwide
	}
	return trimmed
}

// CollapseWhitespace trims a string and collapses inner whitespace runs
// into single spaces
func CollapseWhitespace(value string) string {
	return strings.Join(strings.Fields(value), " ")
}

// CacheKey builds the cache fingerprint of a normalized query. Two
// queries differing only in case or incidental whitespace share a key.
func CacheKey(query entities.PriceQuery) string {
	parts := []string{
		"estimate",
		strings.ToLower(query.ProcedureText),
		string(query.Species),
		strings.ToLower(query.Region),
	}
	return strings.Join(parts, "|")
}
