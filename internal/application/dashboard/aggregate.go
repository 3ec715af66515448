package dashboard

import (
	"math"
	"sort"

	"github.com/aquaboard/aquaboard/internal/domain/permit"
)

// TopN is the size of the top-extractor ranking.
const TopN = 5

// nameDisplayLimit is the rune length at which ranked title-holder names are
// truncated for chart axes. The untruncated name is always retained.
const nameDisplayLimit = 20

// SectorTotal is one slice of the extraction-by-sector chart.
type SectorTotal struct {
	Sector string  `json:"sector"`
	Volume float64 `json:"volume"`

	// Share is the sector's fraction of the filtered set's total authorized
	// volume, in [0,1]; 0 when the total is zero.
	Share float64 `json:"share"`
}

// RankedExtractor is one bar of the top-extractors chart.
type RankedExtractor struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`     // display name, truncated
	FullName string  `json:"fullName"` // untruncated title holder
	Volume   float64 `json:"volume"`
}

// TermBucket is one bar of the permit-duration histogram.
type TermBucket struct {
	Years int `json:"years"`
	Count int `json:"count"`
}

// KPIs are the scalar rollups shown on the stat cards.
type KPIs struct {
	TotalVolume float64 `json:"totalVolume"`
	TotalCount  int     `json:"totalCount"`

	// AverageTerm is the mean permit duration in years, rounded to one
	// decimal place; 0 for an empty set.
	AverageTerm float64 `json:"averageTerm"`

	// TopExtractor is the top-ranked entry, nil when the set is empty.
	TopExtractor *RankedExtractor `json:"topExtractor"`
}

// Aggregates bundles every derived view datum computed from one filtered
// record collection.
type Aggregates struct {
	SectorTotals  []SectorTotal     `json:"sectorTotals"`
	TopExtractors []RankedExtractor `json:"topExtractors"`
	TermHistogram []TermBucket      `json:"termHistogram"`
	KPI           KPIs              `json:"kpi"`
}

// SectorTotals groups the records by sector and sums authorized volume per
// group, ordered descending by volume. Ties keep first-encountered group
// order, so output is deterministic for a given input order.
func SectorTotals(records []permit.Permit) []SectorTotal {
	sums := make(map[string]float64)
	order := make([]string, 0)
	var total float64

	for i := range records {
		sector := records[i].Sector
		if _, seen := sums[sector]; !seen {
			order = append(order, sector)
		}
		sums[sector] += records[i].VolumeAuthorized
		total += records[i].VolumeAuthorized
	}

	out := make([]SectorTotal, 0, len(order))
	for _, sector := range order {
		out = append(out, SectorTotal{Sector: sector, Volume: sums[sector]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Volume > out[j].Volume })

	if total > 0 {
		for i := range out {
			out[i].Share = out[i].Volume / total
		}
	}
	return out
}

// TopExtractors ranks the records descending by authorized volume (stable:
// equal volumes keep original relative order) and returns the first n.
func TopExtractors(records []permit.Permit, n int) []RankedExtractor {
	if n <= 0 || len(records) == 0 {
		return nil
	}

	ranked := make([]*permit.Permit, len(records))
	for i := range records {
		ranked[i] = &records[i]
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].VolumeAuthorized > ranked[j].VolumeAuthorized
	})

	if n > len(ranked) {
		n = len(ranked)
	}
	out := make([]RankedExtractor, 0, n)
	for _, p := range ranked[:n] {
		out = append(out, RankedExtractor{
			ID:       p.ID,
			Name:     truncateName(p.TitleHolder),
			FullName: p.TitleHolder,
			Volume:   p.VolumeAuthorized,
		})
	}
	return out
}

// truncateName shortens a title-holder name to nameDisplayLimit runes with
// an ellipsis marker. Rune-based so multi-byte names truncate cleanly.
func truncateName(name string) string {
	runes := []rune(name)
	if len(runes) <= nameDisplayLimit {
		return name
	}
	return string(runes[:nameDisplayLimit]) + "..."
}

// TermHistogram counts records per permit duration. Buckets are returned in
// ascending year order.
func TermHistogram(records []permit.Permit) []TermBucket {
	counts := make(map[int]int)
	for i := range records {
		counts[records[i].TermYears]++
	}

	out := make([]TermBucket, 0, len(counts))
	for years, count := range counts {
		out = append(out, TermBucket{Years: years, Count: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Years < out[j].Years })
	return out
}

// ComputeKPIs derives the scalar rollups. All values are defined on the
// empty set: zero totals, zero average, nil top extractor.
func ComputeKPIs(records []permit.Permit) KPIs {
	kpi := KPIs{TotalCount: len(records)}
	if len(records) == 0 {
		return kpi
	}

	var termSum float64
	for i := range records {
		kpi.TotalVolume += records[i].VolumeAuthorized
		termSum += float64(records[i].TermYears)
	}
	kpi.AverageTerm = math.Round(termSum/float64(len(records))*10) / 10

	if top := TopExtractors(records, 1); len(top) == 1 {
		kpi.TopExtractor = &top[0]
	}
	return kpi
}

// Derive computes the complete aggregate bundle for one filtered record
// collection. Pure and total: any input, including the empty collection,
// produces a fully-populated result without error.
func Derive(records []permit.Permit) Aggregates {
	return Aggregates{
		SectorTotals:  SectorTotals(records),
		TopExtractors: TopExtractors(records, TopN),
		TermHistogram: TermHistogram(records),
		KPI:           ComputeKPIs(records),
	}
}
