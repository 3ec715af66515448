package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aquaboard/aquaboard/internal/application/dashboard"
	"github.com/aquaboard/aquaboard/internal/domain/permit"
	"github.com/aquaboard/aquaboard/internal/infrastructure/monitoring/logging"
	"github.com/aquaboard/aquaboard/internal/infrastructure/monitoring/prometheus"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func sampleRows() []permit.RawRecord {
	return []permit.RawRecord{
		{
			"id": "p-1", "titular": "TACUBAYA, S.A. DE C.V.", "uso": "Industrial",
			"volumen_autorizado": 22950.0, "latitud": 13.95859, "longitud": -89.863454,
			"departamento": "Ahuachapán", "plazo": 5, "estado_pozo": "Activo",
		},
		{
			"id": "p-2", "titular": "RIEGO ZAPOTITAN", "uso": "Agropecuario",
			"volumen_autorizado": 50000.0, "latitud": 13.755, "longitud": -89.431944,
			"departamento": "La Libertad", "plazo": 10, "estado_pozo": "Activo",
		},
		{
			"id": "p-3", "titular": "TEXTUFIL", "uso": "Industrial",
			"volumen_autorizado": 8000.0,
			"departamento":       "San Salvador", "plazo": 5, "estado_pozo": "En proceso",
		},
	}
}

func newTestRouter(t *testing.T, source permit.Source) *gin.Engine {
	t.Helper()

	coord := dashboard.NewCoordinator(source, logging.NewNopLogger())
	coord.Init(context.Background())

	return NewRouter(RouterDeps{
		Coordinator: coord,
		Logger:      logging.NewNopLogger(),
		Version:     "test",
		Metrics:     prometheus.NewMetrics(),
	})
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, into interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), into))
}

func TestProbes(t *testing.T) {
	router := newTestRouter(t, permit.StaticSource(sampleRows()))

	rec := doJSON(t, router, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/readyz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var ready map[string]interface{}
	decode(t, rec, &ready)
	assert.Equal(t, "ready", ready["status"])
	assert.Equal(t, false, ready["fallback"])
}

func TestMetricsEndpoint(t *testing.T) {
	router := newTestRouter(t, permit.StaticSource(sampleRows()))

	doJSON(t, router, http.MethodGet, "/api/v1/dashboard/state", nil)

	rec := doJSON(t, router, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "aquaboard_http_requests_total")
}

func TestStateEndpoint(t *testing.T) {
	router := newTestRouter(t, permit.StaticSource(sampleRows()))

	rec := doJSON(t, router, http.MethodGet, "/api/v1/dashboard/state", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var state map[string]interface{}
	decode(t, rec, &state)
	assert.Equal(t, "ready", state["state"])
	assert.Equal(t, "summary", state["tab"])
	assert.Equal(t, float64(3), state["records"])
	assert.Equal(t, float64(3), state["filtered"])
	assert.NotEmpty(t, state["snapshotId"])
}

func TestSummaryEndpoint(t *testing.T) {
	router := newTestRouter(t, permit.StaticSource(sampleRows()))

	rec := doJSON(t, router, http.MethodGet, "/api/v1/dashboard/summary", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Aggregates dashboard.Aggregates `json:"aggregates"`
	}
	decode(t, rec, &resp)

	assert.Equal(t, 80950.0, resp.Aggregates.KPI.TotalVolume)
	assert.Equal(t, 3, resp.Aggregates.KPI.TotalCount)
	require.Len(t, resp.Aggregates.SectorTotals, 2)
	assert.Equal(t, "Agropecuario", resp.Aggregates.SectorTotals[0].Sector)
}

func TestOptionsEndpoint(t *testing.T) {
	router := newTestRouter(t, permit.StaticSource(sampleRows()))

	rec := doJSON(t, router, http.MethodGet, "/api/v1/dashboard/options", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Options map[string][]string `json:"options"`
	}
	decode(t, rec, &resp)
	assert.ElementsMatch(t, []string{"Agropecuario", "Industrial"}, resp.Options["sector"])
	assert.ElementsMatch(t,
		[]string{"Ahuachapán", "La Libertad", "San Salvador"},
		resp.Options["department"])
}

func TestFilterLifecycle(t *testing.T) {
	router := newTestRouter(t, permit.StaticSource(sampleRows()))

	rec := doJSON(t, router, http.MethodPost, "/api/v1/dashboard/filters", map[string]interface{}{
		"dimension": "sector",
		"values":    []string{"Industrial"},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var state map[string]interface{}
	decode(t, rec, &state)
	assert.Equal(t, float64(3), state["records"])
	assert.Equal(t, float64(2), state["filtered"])

	// Options still reflect the full snapshot.
	rec = doJSON(t, router, http.MethodGet, "/api/v1/dashboard/options", nil)
	var opts struct {
		Options map[string][]string `json:"options"`
	}
	decode(t, rec, &opts)
	assert.Contains(t, opts.Options["sector"], "Agropecuario")

	rec = doJSON(t, router, http.MethodDelete, "/api/v1/dashboard/filters", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &state)
	assert.Equal(t, float64(3), state["filtered"])
}

func TestFilterUnknownDimension(t *testing.T) {
	router := newTestRouter(t, permit.StaticSource(sampleRows()))

	rec := doJSON(t, router, http.MethodPost, "/api/v1/dashboard/filters", map[string]interface{}{
		"dimension": "color",
		"values":    []string{"blue"},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp map[string]interface{}
	decode(t, rec, &resp)
	assert.Equal(t, "INVALID_PARAM", resp["code"])
}

func TestFilterMalformedBody(t *testing.T) {
	router := newTestRouter(t, permit.StaticSource(sampleRows()))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/dashboard/filters",
		bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPermitsEndpoint(t *testing.T) {
	router := newTestRouter(t, permit.StaticSource(sampleRows()))

	doJSON(t, router, http.MethodPost, "/api/v1/dashboard/filters", map[string]interface{}{
		"dimension": "sector",
		"values":    []string{"Agropecuario"},
	})

	rec := doJSON(t, router, http.MethodGet, "/api/v1/dashboard/permits", nil)
	var resp struct {
		Total   int             `json:"total"`
		Count   int             `json:"count"`
		Permits []permit.Permit `json:"permits"`
	}
	decode(t, rec, &resp)
	assert.Equal(t, 3, resp.Total)
	assert.Equal(t, 1, resp.Count)
	require.Len(t, resp.Permits, 1)
	assert.Equal(t, "p-2", resp.Permits[0].ID)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/dashboard/permits?scope=all", nil)
	decode(t, rec, &resp)
	assert.Equal(t, 3, resp.Count)
}

func TestPermitByID(t *testing.T) {
	router := newTestRouter(t, permit.StaticSource(sampleRows()))

	rec := doJSON(t, router, http.MethodGet, "/api/v1/dashboard/permits/p-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var p permit.Permit
	decode(t, rec, &p)
	assert.Equal(t, "TACUBAYA, S.A. DE C.V.", p.TitleHolder)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/dashboard/permits/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMapEndpoint(t *testing.T) {
	router := newTestRouter(t, permit.StaticSource(sampleRows()))

	rec := doJSON(t, router, http.MethodGet, "/api/v1/dashboard/map", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Canvas struct {
			Width  float64 `json:"width"`
			Height float64 `json:"height"`
		} `json:"canvas"`
		Points []dashboard.MapPoint `json:"points"`
	}
	decode(t, rec, &resp)
	assert.Equal(t, dashboard.MapCanvasWidth, resp.Canvas.Width)
	// p-3 has no coordinates and is excluded from the map.
	assert.Len(t, resp.Points, 2)
}

func TestTabAndSelection(t *testing.T) {
	router := newTestRouter(t, permit.StaticSource(sampleRows()))

	rec := doJSON(t, router, http.MethodPost, "/api/v1/dashboard/tab",
		map[string]string{"tab": "map"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/v1/dashboard/tab",
		map[string]string{"tab": "gallery"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/v1/dashboard/selection",
		map[string]string{"id": "p-2"})
	require.Equal(t, http.StatusOK, rec.Code)

	var state map[string]interface{}
	decode(t, rec, &state)
	assert.Equal(t, "map", state["tab"])
	require.NotNil(t, state["selected"])

	rec = doJSON(t, router, http.MethodPost, "/api/v1/dashboard/selection",
		map[string]string{"id": "missing"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, router, http.MethodDelete, "/api/v1/dashboard/selection", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// Fresh map: unmarshal merges into an existing one, which would keep the
	// stale "selected" entry from the response above.
	var cleared map[string]interface{}
	decode(t, rec, &cleared)
	assert.Nil(t, cleared["selected"])
}

func TestUnconfiguredSourceServesFallback(t *testing.T) {
	router := newTestRouter(t, permit.UnconfiguredSource("no backend set"))

	rec := doJSON(t, router, http.MethodGet, "/api/v1/dashboard/state", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var state map[string]interface{}
	decode(t, rec, &state)
	assert.Equal(t, "ready", state["state"])
	assert.Equal(t, true, state["fallback"])
	assert.NotEmpty(t, state["advisory"])
	assert.Equal(t, float64(1), state["records"])
}

func TestReloadReplacesSnapshot(t *testing.T) {
	router := newTestRouter(t, permit.StaticSource(sampleRows()))

	rec := doJSON(t, router, http.MethodGet, "/api/v1/dashboard/state", nil)
	var before map[string]interface{}
	decode(t, rec, &before)

	rec = doJSON(t, router, http.MethodPost, "/api/v1/dashboard/reload", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var after map[string]interface{}
	decode(t, rec, &after)
	assert.NotEqual(t, before["snapshotId"], after["snapshotId"])
	assert.Equal(t, float64(3), after["records"])
}
