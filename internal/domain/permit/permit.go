// Package permit defines the canonical water-extraction permit record, its
// normalization from loosely-typed external rows, and the data-source
// contract. All invariants about record shape live here; fetching,
// filtering, and aggregation are handled by the infrastructure and
// application layers.
package permit

// Defaults applied by normalization when a source field is missing or
// unparseable. After Normalize every text field is non-empty and every
// numeric field is finite and non-negative.
const (
	DefaultTitleHolder = "Unknown"
	DefaultSector      = "Unclassified"
	DefaultLocation    = "N/A"
	DefaultDate        = "N/A"
	DefaultSourceType  = "Groundwater"
)

// ConsumptionYears is the length of the historical yearly consumption series
// carried by every record.
const ConsumptionYears = 5

// Canonical well-status labels. The status field remains free text from the
// source, but labels in the success class below get special treatment in
// views (map point class, table badge).
const (
	StatusActive     = "Active"
	StatusCompleted  = "Completed"
	StatusInProgress = "In Progress"
)

// Dimension names one of the five independently-filterable categorical
// facets of a permit.
type Dimension string

const (
	DimSector       Dimension = "sector"
	DimDepartment   Dimension = "department"
	DimMunicipality Dimension = "municipality"
	DimDistrict     Dimension = "district"
	DimWatershed    Dimension = "watershed"
)

// Dimensions lists all filterable dimensions in their canonical order.
func Dimensions() []Dimension {
	return []Dimension{DimSector, DimDepartment, DimMunicipality, DimDistrict, DimWatershed}
}

// Permit is the canonical, fully-defaulted representation of one
// water-extraction permit (well or surface source). Volumes are cubic
// meters per year.
type Permit struct {
	ID          string `json:"id"`
	TitleHolder string `json:"titleHolder"`
	Sector      string `json:"sector"`

	VolumeRequested  float64 `json:"volumeRequested"`
	VolumeAuthorized float64 `json:"volumeAuthorized"`
	VolumeConsumed   float64 `json:"volumeConsumed"`

	// AnnualConsumption holds the last five years of reported consumption,
	// oldest first.
	AnnualConsumption [ConsumptionYears]float64 `json:"annualConsumption"`

	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`

	Department            string `json:"department"`
	Municipality          string `json:"municipality"`
	District              string `json:"district"`
	Watershed             string `json:"watershed"`
	GeographicDescription string `json:"geographicDescription"`

	TermYears      int    `json:"termYears"`
	ExpirationDate string `json:"expirationDate"`
	WellStatus     string `json:"wellStatus"`
	SourceType     string `json:"sourceType"`
}

// DimensionValue returns the record's value for the given filter dimension.
// Unknown dimensions return the empty string, which never matches any
// selection value.
func (p *Permit) DimensionValue(d Dimension) string {
	switch d {
	case DimSector:
		return p.Sector
	case DimDepartment:
		return p.Department
	case DimMunicipality:
		return p.Municipality
	case DimDistrict:
		return p.District
	case DimWatershed:
		return p.Watershed
	default:
		return ""
	}
}

// Operational reports whether the record belongs to the success status class
// (an active or completed well). Anything else counts as pending/other.
func (p *Permit) Operational() bool {
	return p.WellStatus == StatusActive || p.WellStatus == StatusCompleted
}

// Placeable reports whether the record carries usable coordinates. Records
// normalized to (0,0) are unplaceable on the map but still participate in
// every aggregate.
func (p *Permit) Placeable() bool {
	return p.Latitude != 0 || p.Longitude != 0
}

// Fallback returns the single documented placeholder record used when the
// data source is unreachable or unconfigured. The values mirror a real
// published authorization so the degraded dashboard still renders sensibly.
func Fallback() Permit {
	return Permit{
		ID:                    "fallback-229",
		TitleHolder:           "TACUBAYA, S.A. DE C.V.",
		Sector:                "Industrial",
		VolumeRequested:       22950,
		VolumeAuthorized:      22950,
		Latitude:              13.95859,
		Longitude:             -89.863454,
		Department:            "Ahuachapán",
		Municipality:          "Ahuachapán Centro",
		District:              DefaultLocation,
		Watershed:             DefaultLocation,
		GeographicDescription: DefaultLocation,
		TermYears:             5,
		ExpirationDate:        "2029-04-08",
		WellStatus:            StatusActive,
		SourceType:            DefaultSourceType,
	}
}

// FallbackCollection returns the one-record fallback dataset.
func FallbackCollection() []Permit {
	return []Permit{Fallback()}
}
