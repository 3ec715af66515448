package permit

import (
	"encoding/json"
	"fmt"
	"hash/fnv"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

// RawRecord is one loosely-typed row as delivered by a data source. Field
// naming is source-defined; the alias table below maps known spellings onto
// canonical fields.
type RawRecord map[string]interface{}

// fieldAliases lists, per canonical field, the accepted source column names
// in priority order. The registry hosting the permits has shipped both the
// original Spanish column names and partial English renames, so every field
// accepts several spellings. Extend here, never at call sites.
var fieldAliases = map[string][]string{
	"id":               {"id", "ID", "Id", "codigo", "no_expediente"},
	"titleHolder":      {"titular", "nombre_titular", "title_holder", "titleHolder", "holder"},
	"sector":           {"uso", "rubro", "tipo_uso", "sector"},
	"volumeRequested":  {"vol_solicitado", "volumen_solicitado", "volume_requested"},
	"volumeAuthorized": {"vol_autorizado", "volumen_autorizado", "volume_authorized"},
	"volumeConsumed":   {"vol_consumido", "volumen_consumido", "volume_consumed"},
	"latitude":         {"lat", "latitud", "latitude"},
	"longitude":        {"lon", "lng", "longitud", "longitude"},
	"department":       {"depto", "departamento", "department"},
	"municipality":     {"municipio", "municipality"},
	"district":         {"canton", "distrito", "district"},
	"watershed":        {"cuenca", "watershed"},
	"geographicDesc":   {"descripcion_geografica", "descripcion", "ubicacion", "direccion", "geographic_description"},
	"termYears":        {"plazo", "plazo_anios", "term_years"},
	"expirationDate":   {"vencimiento", "fecha_vencimiento", "expiration_date"},
	"wellStatus":       {"estado_pozo", "estado", "well_status", "status"},
	"sourceType":       {"fuente", "tipo_fuente", "source_type"},
}

// consumptionAliases returns the accepted column names for the year-i entry
// of the historical consumption series (i is 1-based).
func consumptionAliases(i int) []string {
	return []string{
		fmt.Sprintf("consumo_anio_%d", i),
		fmt.Sprintf("consumo_%d", i),
		fmt.Sprintf("annual_consumption_%d", i),
	}
}

// statusLabels canonicalizes the well-status labels the registry is known to
// emit. Unknown labels pass through untouched; the field is free text.
var statusLabels = map[string]string{
	"activo":      StatusActive,
	"active":      StatusActive,
	"completado":  StatusCompleted,
	"completed":   StatusCompleted,
	"en proceso":  StatusInProgress,
	"in progress": StatusInProgress,

	// Non-operational label seen in the source data; not a success class.
	"mantenimiento": "Maintenance",
}

// sourceTypeLabels canonicalizes the extraction source classification.
var sourceTypeLabels = map[string]string{
	"subterránea": "Groundwater",
	"subterranea": "Groundwater",
	"groundwater": "Groundwater",
	"superficial": "Surface",
	"surface":     "Surface",
}

// lookup returns the first aliased value present in raw, or nil.
func lookup(raw RawRecord, field string) interface{} {
	for _, alias := range fieldAliases[field] {
		if v, ok := raw[alias]; ok && v != nil {
			return v
		}
	}
	return nil
}

// coerceString renders v as a trimmed string, or def when the result would
// be empty.
func coerceString(v interface{}, def string) string {
	s := stringify(v)
	if s == "" {
		return def
	}
	return s
}

func stringify(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int:
		return strconv.Itoa(t)
	case int32:
		return strconv.FormatInt(int64(t), 10)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	default:
		return strings.TrimSpace(fmt.Sprint(t))
	}
}

// coerceNumber parses v as a finite non-negative float64. Unparseable,
// NaN/Inf, and negative inputs all coerce to 0 per the normalization policy.
func coerceNumber(v interface{}) float64 {
	var f float64
	switch t := v.(type) {
	case nil:
		return 0
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int32:
		f = float64(t)
	case int64:
		f = float64(t)
	case json.Number:
		parsed, err := t.Float64()
		if err != nil {
			return 0
		}
		f = parsed
	case string:
		s := strings.TrimSpace(t)
		// Registry exports occasionally carry thousands separators.
		s = strings.ReplaceAll(s, ",", "")
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	return f
}

// dateLayouts are the formats accepted for expiration dates, tried in order.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"02/01/2006",
}

// coerceDate renders v as a YYYY-MM-DD display string, or DefaultDate when
// no accepted layout matches.
func coerceDate(v interface{}) string {
	if t, ok := v.(time.Time); ok {
		return t.Format("2006-01-02")
	}
	s := stringify(v)
	if s == "" {
		return DefaultDate
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return DefaultDate
}

// coerceLabel canonicalizes v against a label table, passing unknown labels
// through and substituting def for empty input.
func coerceLabel(v interface{}, table map[string]string, def string) string {
	s := stringify(v)
	if s == "" {
		return def
	}
	if canonical, ok := table[strings.ToLower(s)]; ok {
		return canonical
	}
	return s
}

// fallbackID derives a deterministic identifier for a row that carries none:
// an FNV-1a hash of the row content plus its position in the snapshot.
// Deterministic synthesis keeps selection and keying stable across reloads
// of the same dataset.
func fallbackID(raw RawRecord, index int) string {
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	h := fnv.New64a()
	for _, k := range keys {
		fmt.Fprintf(h, "%s=%s;", k, stringify(raw[k]))
	}
	fmt.Fprintf(h, "#%d", index)
	return fmt.Sprintf("gen-%016x", h.Sum64())
}

// Normalize converts one raw row into a canonical Permit. It never fails:
// any malformed or missing field degrades to its documented default. index
// is the row's position in the snapshot, used only for deterministic id
// synthesis.
func Normalize(raw RawRecord, index int) Permit {
	p := Permit{
		TitleHolder:           coerceString(lookup(raw, "titleHolder"), DefaultTitleHolder),
		Sector:                coerceString(lookup(raw, "sector"), DefaultSector),
		VolumeRequested:       coerceNumber(lookup(raw, "volumeRequested")),
		VolumeAuthorized:      coerceNumber(lookup(raw, "volumeAuthorized")),
		VolumeConsumed:        coerceNumber(lookup(raw, "volumeConsumed")),
		Latitude:              coerceCoordinate(lookup(raw, "latitude")),
		Longitude:             coerceCoordinate(lookup(raw, "longitude")),
		Department:            coerceString(lookup(raw, "department"), DefaultLocation),
		Municipality:          coerceString(lookup(raw, "municipality"), DefaultLocation),
		District:              coerceString(lookup(raw, "district"), DefaultLocation),
		Watershed:             coerceString(lookup(raw, "watershed"), DefaultLocation),
		GeographicDescription: coerceString(lookup(raw, "geographicDesc"), DefaultLocation),
		TermYears:             int(coerceNumber(lookup(raw, "termYears"))),
		ExpirationDate:        coerceDate(lookup(raw, "expirationDate")),
		WellStatus:            coerceLabel(lookup(raw, "wellStatus"), statusLabels, "Pending"),
		SourceType:            coerceLabel(lookup(raw, "sourceType"), sourceTypeLabels, DefaultSourceType),
	}

	for i := 0; i < ConsumptionYears; i++ {
		p.AnnualConsumption[i] = coerceNumber(lookupAny(raw, consumptionAliases(i+1)))
	}

	if id := stringify(lookup(raw, "id")); id != "" && id != "0" {
		p.ID = id
	} else {
		p.ID = fallbackID(raw, index)
	}
	return p
}

// coerceCoordinate parses a geographic coordinate. Unlike volume fields,
// negative values are legal (western longitudes); only unparseable and
// non-finite inputs coerce to 0.
func coerceCoordinate(v interface{}) float64 {
	var f float64
	switch t := v.(type) {
	case nil:
		return 0
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int64:
		f = float64(t)
	case json.Number:
		parsed, err := t.Float64()
		if err != nil {
			return 0
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func lookupAny(raw RawRecord, aliases []string) interface{} {
	for _, alias := range aliases {
		if v, ok := raw[alias]; ok && v != nil {
			return v
		}
	}
	return nil
}

// NormalizeAll converts a full snapshot of raw rows, guaranteeing id
// uniqueness within the result: a duplicate id is suffixed with its row
// position. Order is preserved.
func NormalizeAll(rows []RawRecord) []Permit {
	out := make([]Permit, 0, len(rows))
	seen := make(map[string]bool, len(rows))
	for i, raw := range rows {
		p := Normalize(raw, i)
		if seen[p.ID] {
			p.ID = fmt.Sprintf("%s-%d", p.ID, i)
		}
		seen[p.ID] = true
		out = append(out, p)
	}
	return out
}
