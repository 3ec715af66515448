// Package dashboard implements the client-facing analytics core: the
// multi-dimension filter model, the derived-aggregate pipeline, option
// extraction for filter controls, map-point projection, and the view
// coordinator that owns load lifecycle and view state. Everything here is
// pure computation over canonical permit records; no rendering technology
// leaks in.
package dashboard

import (
	"github.com/aquaboard/aquaboard/internal/domain/permit"
)

// Selection maps a filter dimension to the set of selected values for that
// dimension. An absent dimension or an empty value list means "no
// restriction", never "match nothing". Values referring to data no longer
// present simply never match.
type Selection map[permit.Dimension][]string

// IsEmpty reports whether the selection imposes no constraint at all.
func (s Selection) IsEmpty() bool {
	for _, values := range s {
		if len(values) > 0 {
			return false
		}
	}
	return true
}

// Clone returns a deep copy so published view state never aliases the
// coordinator's mutable selection.
func (s Selection) Clone() Selection {
	if s == nil {
		return nil
	}
	out := make(Selection, len(s))
	for dim, values := range s {
		out[dim] = append([]string(nil), values...)
	}
	return out
}

// buildSets converts the selection into per-dimension lookup sets, skipping
// unconstrained dimensions.
func (s Selection) buildSets() map[permit.Dimension]map[string]bool {
	sets := make(map[permit.Dimension]map[string]bool, len(s))
	for dim, values := range s {
		if len(values) == 0 {
			continue
		}
		set := make(map[string]bool, len(values))
		for _, v := range values {
			set[v] = true
		}
		sets[dim] = set
	}
	return sets
}

// Matches reports whether the record satisfies every constrained dimension
// of the selection. Dimensions are AND-combined; values within a dimension
// are OR-combined.
func Matches(p *permit.Permit, sel Selection) bool {
	return matchesSets(p, sel.buildSets())
}

func matchesSets(p *permit.Permit, sets map[permit.Dimension]map[string]bool) bool {
	for dim, set := range sets {
		if !set[p.DimensionValue(dim)] {
			return false
		}
	}
	return true
}

// ApplyFilter returns the records matching the selection, preserving the
// original relative order. The filter is stable and idempotent: reapplying
// the same selection to its own output yields the same output.
func ApplyFilter(records []permit.Permit, sel Selection) []permit.Permit {
	sets := sel.buildSets()
	if len(sets) == 0 {
		out := make([]permit.Permit, len(records))
		copy(out, records)
		return out
	}

	out := make([]permit.Permit, 0, len(records))
	for i := range records {
		if matchesSets(&records[i], sets) {
			out = append(out, records[i])
		}
	}
	return out
}
