package dashboard

import (
	"sort"

	"github.com/aquaboard/aquaboard/internal/domain/permit"
)

// Options holds the distinct available values per filterable dimension,
// used to populate filter controls.
type Options map[permit.Dimension][]string

// ExtractOptions derives the per-dimension option lists from the FULL,
// unfiltered record collection. Dimensions are independent facets:
// choosing a value in one never narrows the visible choices in another.
// Output is deduplicated and sorted lexicographically for stable control
// ordering; empty values are excluded.
func ExtractOptions(records []permit.Permit) Options {
	opts := make(Options, len(permit.Dimensions()))
	for _, dim := range permit.Dimensions() {
		seen := make(map[string]bool)
		values := make([]string, 0)
		for i := range records {
			v := records[i].DimensionValue(dim)
			if v == "" || seen[v] {
				continue
			}
			seen[v] = true
			values = append(values, v)
		}
		sort.Strings(values)
		opts[dim] = values
	}
	return opts
}
