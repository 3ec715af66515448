package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aquaboard/aquaboard/internal/infrastructure/monitoring/logging"
	"github.com/aquaboard/aquaboard/pkg/errors"
)

// seedRow is one curated sample permit, matching water_permits columns.
type seedRow struct {
	id           string
	titular      string
	uso          string
	solicitado   float64
	autorizado   float64
	consumido    float64
	consumo      [5]float64
	lat, lon     float64
	departamento string
	municipio    string
	canton       string
	cuenca       string
	descripcion  string
	plazo        int
	vencimiento  string
	estadoPozo   string
	fuente       string
}

// seedRows is a representative sample of real extraction permits, spanning
// the sectors, departments and watersheds the dashboard groups by.
var seedRows = []seedRow{
	{
		id: "perm-001", titular: "TACUBAYA, S.A. DE C.V.", uso: "Industrial",
		solicitado: 22950, autorizado: 22950, consumido: 4590,
		consumo: [5]float64{4590, 4590, 4590, 4590, 4590},
		lat:     13.95859, lon: -89.863454,
		departamento: "Ahuachapán", municipio: "Ahuachapán Centro", canton: "El Barro",
		cuenca: "Río Paz", descripcion: "Pozo perforado en planta procesadora",
		plazo: 5, vencimiento: "2029-04-08", estadoPozo: "Activo", fuente: "Subterránea",
	},
	{
		id: "perm-002", titular: "CARNES DE EL SALVADOR, S.A. DE C.V.", uso: "Industrial",
		solicitado: 60000, autorizado: 54750, consumido: 21900,
		consumo: [5]float64{10950, 10950, 0, 0, 0},
		lat:     13.740833, lon: -89.333611,
		departamento: "La Libertad", municipio: "La Libertad Este", canton: "Santa Lucía",
		cuenca: "Río Grande de Sonsonate", descripcion: "Pozo de abastecimiento para rastro",
		plazo: 5, vencimiento: "2028-11-20", estadoPozo: "Activo", fuente: "Subterránea",
	},
	{
		id: "perm-003", titular: "UNIFERSA-DISAGRO, S.A. DE C.V.", uso: "Industrial",
		solicitado: 12000, autorizado: 9855, consumido: 9855,
		consumo: [5]float64{1971, 1971, 1971, 1971, 1971},
		lat:     13.574167, lon: -89.828056,
		departamento: "Sonsonate", municipio: "Sonsonate Centro", canton: "Acajutla",
		cuenca: "Río Sensunapán", descripcion: "Planta de formulación de fertilizantes",
		plazo: 5, vencimiento: "2027-06-15", estadoPozo: "Completado", fuente: "Subterránea",
	},
	{
		id: "perm-004", titular: "Amalia Montoya de Ayala", uso: "Agropecuario",
		solicitado: 7300, autorizado: 7300, consumido: 1460,
		consumo: [5]float64{1460, 1460, 1460, 1460, 1460},
		lat:     13.518611, lon: -88.866944,
		departamento: "San Vicente", municipio: "San Vicente Norte", canton: "San Jacinto",
		cuenca: "Río Lempa", descripcion: "Riego de cultivo de caña",
		plazo: 5, vencimiento: "2029-01-30", estadoPozo: "Activo", fuente: "Superficial",
	},
	{
		id: "perm-005", titular: "INGENIO EL ANGEL, S.A. DE C.V.", uso: "Agroindustrial",
		solicitado: 450000, autorizado: 394200, consumido: 157680,
		consumo: [5]float64{78840, 78840, 0, 0, 0},
		lat:     13.786944, lon: -89.289722,
		departamento: "San Salvador", municipio: "San Salvador Norte", canton: "Apopa",
		cuenca: "Río Acelhuate", descripcion: "Captación para proceso de zafra",
		plazo: 5, vencimiento: "2028-05-02", estadoPozo: "Activo", fuente: "Superficial",
	},
	{
		id: "perm-006", titular: "TEXTUFIL, S.A. DE C.V.", uso: "Industrial",
		solicitado: 180000, autorizado: 164250, consumido: 98550,
		consumo: [5]float64{32850, 32850, 32850, 0, 0},
		lat:     13.702778, lon: -89.154167,
		departamento: "San Salvador", municipio: "San Salvador Este", canton: "Soyapango",
		cuenca: "Río Acelhuate", descripcion: "Pozos de planta textil",
		plazo: 5, vencimiento: "2027-09-12", estadoPozo: "En proceso", fuente: "Subterránea",
	},
	{
		id: "perm-007", titular: "ANDA (Pozo 4, Nejapa)", uso: "Abastecimiento público",
		solicitado: 1051200, autorizado: 1051200, consumido: 630720,
		consumo: [5]float64{210240, 210240, 210240, 0, 0},
		lat:     13.814722, lon: -89.230556,
		departamento: "San Salvador", municipio: "San Salvador Norte", canton: "Nejapa",
		cuenca: "Río San Antonio", descripcion: "Pozo de producción para red urbana",
		plazo: 10, vencimiento: "2033-02-28", estadoPozo: "Activo", fuente: "Subterránea",
	},
	{
		id: "perm-008", titular: "HOTELES DE PLAYA, S.A. DE C.V.", uso: "Turístico",
		solicitado: 21900, autorizado: 18250, consumido: 3650,
		consumo: [5]float64{3650, 3650, 0, 0, 0},
		lat:     13.493056, lon: -89.385,
		departamento: "La Libertad", municipio: "La Libertad Costa", canton: "El Majahual",
		cuenca: "Río Chilama", descripcion: "Abastecimiento de complejo hotelero",
		plazo: 5, vencimiento: "2028-08-19", estadoPozo: "Activo", fuente: "Subterránea",
	},
	{
		id: "perm-009", titular: "ASOCIACIÓN DE REGANTES ZAPOTITÁN", uso: "Agropecuario",
		solicitado: 2628000, autorizado: 2365200, consumido: 946080,
		consumo: [5]float64{473040, 473040, 0, 0, 0},
		lat:     13.755, lon: -89.431944,
		departamento: "La Libertad", municipio: "La Libertad Norte", canton: "Zapotitán",
		cuenca: "Río Sucio", descripcion: "Canal de riego del distrito de Zapotitán",
		plazo: 10, vencimiento: "2032-12-01", estadoPozo: "Activo", fuente: "Superficial",
	},
}

const seedInsert = `
INSERT INTO water_permits (
    id, titular, uso,
    volumen_solicitado, volumen_autorizado, volumen_consumido,
    consumo_anio_1, consumo_anio_2, consumo_anio_3, consumo_anio_4, consumo_anio_5,
    latitud, longitud,
    departamento, municipio, canton, cuenca, descripcion,
    plazo, vencimiento, estado_pozo, fuente
) VALUES (
    $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11,
    $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22
)
ON CONFLICT (id) DO NOTHING`

// Seed inserts the curated sample permits. Existing rows keep their values;
// re-running is harmless.
func Seed(ctx context.Context, pool *pgxpool.Pool, log logging.Logger) error {
	batch := &pgx.Batch{}
	for _, r := range seedRows {
		batch.Queue(seedInsert,
			r.id, r.titular, r.uso,
			r.solicitado, r.autorizado, r.consumido,
			r.consumo[0], r.consumo[1], r.consumo[2], r.consumo[3], r.consumo[4],
			r.lat, r.lon,
			r.departamento, r.municipio, r.canton, r.cuenca, r.descripcion,
			r.plazo, r.vencimiento, r.estadoPozo, r.fuente,
		)
	}

	results := pool.SendBatch(ctx, batch)
	defer results.Close()

	inserted := 0
	for range seedRows {
		tag, err := results.Exec()
		if err != nil {
			return errors.Wrap(err, errors.CodeSeedFailed, "insert sample permit")
		}
		inserted += int(tag.RowsAffected())
	}

	log.Info("sample permits seeded",
		logging.Int("inserted", inserted),
		logging.Int("total", len(seedRows)),
	)
	return nil
}
