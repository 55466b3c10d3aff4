// Package seed holds the curated reference price ranges used as a
// fallback when live data is sparse.
package seed

import (
	"strings"

	"github.com/petmily/vetpricediscovery/backend/internal/domain/entities"
	"github.com/petmily/vetpricediscovery/backend/pkg/normalize"
)

// Table is a static, in-process lookup of curated price ranges.
// It is loaded once at construction and never written afterwards.
type Table struct {
	entries []entities.SeedRange
}

// NewTable creates a table over the built-in reference ranges
func NewTable() *Table {
	return &Table{entries: referenceRanges}
}

// NewTableWith creates a table over the given entries (used by tests)
func NewTableWith(entries []entities.SeedRange) *Table {
	return &Table{entries: entries}
}

// FindMatches returns seed entries matching the query text for the given
// species. Exact label matches take priority as a whole group: when any
// exact match exists, no partial matches are returned at all. Partial
// matching is substring containment in either direction.
func (t *Table) FindMatches(text string, species entities.Species) []entities.SeedRange {
	needle := canonical(text)
	if needle == "" {
		return nil
	}

	var exact, partial []entities.SeedRange
	for _, entry := range t.entries {
		if entry.Species != species && entry.Species != entities.SpeciesAny {
			continue
		}

		procedure := canonical(entry.ProcedureLabel)
		category := canonical(entry.CategoryLabel)

		if procedure == needle || (category != "" && category == needle) {
			exact = append(exact, entry)
			continue
		}

		if contains(procedure, needle) || contains(category, needle) {
			partial = append(partial, entry)
		}
	}

	if len(exact) > 0 {
		return exact
	}
	return partial
}

// contains reports bidirectional substring containment
func contains(label, needle string) bool {
	if label == "" {
		return false
	}
	return strings.Contains(label, needle) || strings.Contains(needle, label)
}

func canonical(value string) string {
	return strings.ToLower(normalize.CollapseWhitespace(value))
}
