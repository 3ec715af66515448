package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aquaboard/aquaboard/internal/domain/permit"
)

func (r seedRow) raw() permit.RawRecord {
	return permit.RawRecord{
		"id": r.id, "titular": r.titular, "uso": r.uso,
		"volumen_solicitado": r.solicitado,
		"volumen_autorizado": r.autorizado,
		"volumen_consumido":  r.consumido,
		"consumo_anio_1":     r.consumo[0],
		"consumo_anio_2":     r.consumo[1],
		"consumo_anio_3":     r.consumo[2],
		"consumo_anio_4":     r.consumo[3],
		"consumo_anio_5":     r.consumo[4],
		"latitud":            r.lat, "longitud": r.lon,
		"departamento": r.departamento, "municipio": r.municipio,
		"canton": r.canton, "cuenca": r.cuenca, "descripcion": r.descripcion,
		"plazo": r.plazo, "vencimiento": r.vencimiento,
		"estado_pozo": r.estadoPozo, "fuente": r.fuente,
	}
}

// The seed dataset must round-trip through normalization without falling
// back to any default value, since it is what demos run on.
func TestSeedRowsNormalizeCleanly(t *testing.T) {
	rows := make([]permit.RawRecord, len(seedRows))
	for i, r := range seedRows {
		rows[i] = r.raw()
	}

	permits := permit.NormalizeAll(rows)
	require.Len(t, permits, len(seedRows))

	seen := make(map[string]bool)
	for i, p := range permits {
		assert.False(t, seen[p.ID], "duplicate id %q", p.ID)
		seen[p.ID] = true

		assert.NotEqual(t, permit.DefaultTitleHolder, p.TitleHolder, "row %d", i)
		assert.NotEqual(t, permit.DefaultSector, p.Sector, "row %d", i)
		assert.NotEqual(t, permit.DefaultLocation, p.Department, "row %d", i)
		assert.NotEqual(t, permit.DefaultDate, p.ExpirationDate, "row %d", i)
		assert.Greater(t, p.VolumeAuthorized, 0.0, "row %d", i)
		assert.True(t, p.Placeable(), "row %d should be mappable", i)
	}
}

func TestSeedRowsStatusLabelsCanonicalize(t *testing.T) {
	for _, r := range seedRows {
		p := permit.Normalize(r.raw(), 0)
		assert.Contains(t,
			[]string{permit.StatusActive, permit.StatusCompleted, permit.StatusInProgress},
			p.WellStatus, "titular %s", r.titular)
		assert.Contains(t, []string{"Groundwater", "Surface"}, p.SourceType)
	}
}
