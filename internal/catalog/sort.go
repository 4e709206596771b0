package catalog

import (
	"slices"
	"strings"

	"github.com/meur/gamedocs/internal/models"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// ByName returns a comparator ordering records by locale-aware name, then
// by ID. Records without a name sort by their ID. Strings the collator
// considers equal fall back to byte order so the order stays total.
//
// The comparator holds its own collator and must not be shared between
// goroutines.
func ByName() func(a, b models.Record) int {
	col := collate.New(language.English)
	compare := func(a, b string) int {
		if c := col.CompareString(a, b); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	}
	return func(a, b models.Record) int {
		if c := compare(a.SortKey(), b.SortKey()); c != 0 {
			return c
		}
		return compare(a.ID, b.ID)
	}
}

// Sort returns a sorted copy of collection.
func Sort(collection []models.Record) []models.Record {
	sorted := slices.Clone(collection)
	slices.SortStableFunc(sorted, ByName())
	return sorted
}
