package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/aquaboard/aquaboard/internal/infrastructure/monitoring/logging"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(router *gin.Engine, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRequestLogging(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := logging.NewLoggerFromCore(core)

	router := gin.New()
	router.Use(RequestLogging(logger, DefaultLoggingConfig()))
	router.GET("/ok", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	router.GET("/bad", func(c *gin.Context) { c.String(http.StatusBadRequest, "no") })
	router.GET("/boom", func(c *gin.Context) { c.String(http.StatusInternalServerError, "boom") })
	router.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	serve(router, http.MethodGet, "/ok?x=1", nil)
	serve(router, http.MethodGet, "/bad", nil)
	serve(router, http.MethodGet, "/boom", nil)
	serve(router, http.MethodGet, "/healthz", nil)

	entries := logs.All()
	require.Len(t, entries, 3, "skip paths must not be logged")

	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, "/ok?x=1", entries[0].ContextMap()["path"])
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[2].Level)
	assert.Equal(t, int64(http.StatusInternalServerError), entries[2].ContextMap()["status"])
}

func TestCORS(t *testing.T) {
	t.Run("no origin header passes through untouched", func(t *testing.T) {
		router := gin.New()
		router.Use(CORS(DefaultCORSConfig()))
		router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

		rec := serve(router, http.MethodGet, "/", nil)
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("wildcard allows any origin", func(t *testing.T) {
		router := gin.New()
		router.Use(CORS(DefaultCORSConfig()))
		router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

		rec := serve(router, http.MethodGet, "/", map[string]string{"Origin": "https://example.com"})
		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight answered with 204", func(t *testing.T) {
		router := gin.New()
		router.Use(CORS(DefaultCORSConfig()))
		router.POST("/", func(c *gin.Context) { c.Status(http.StatusOK) })

		rec := serve(router, http.MethodOptions, "/", map[string]string{"Origin": "https://example.com"})
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
	})

	t.Run("explicit origin list", func(t *testing.T) {
		cfg := DefaultCORSConfig()
		cfg.AllowedOrigins = []string{"https://dashboard.example.com"}

		router := gin.New()
		router.Use(CORS(cfg))
		router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

		rec := serve(router, http.MethodGet, "/", map[string]string{"Origin": "https://dashboard.example.com"})
		assert.Equal(t, "https://dashboard.example.com", rec.Header().Get("Access-Control-Allow-Origin"))

		rec = serve(router, http.MethodGet, "/", map[string]string{"Origin": "https://evil.example.com"})
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})
}

type recordingRequestObserver struct {
	mu   sync.Mutex
	seen []string
}

func (r *recordingRequestObserver) ObserveRequest(method, route string, status int, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = append(r.seen, method+" "+route)
}

func TestMetricsLabelsByRoutePattern(t *testing.T) {
	obs := &recordingRequestObserver{}

	router := gin.New()
	router.Use(Metrics(obs))
	router.GET("/permits/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	serve(router, http.MethodGet, "/permits/p-1", nil)
	serve(router, http.MethodGet, "/permits/p-2", nil)
	serve(router, http.MethodGet, "/nope", nil)

	require.Len(t, obs.seen, 3)
	assert.Equal(t, "GET /permits/:id", obs.seen[0])
	assert.Equal(t, "GET /permits/:id", obs.seen[1])
	assert.Equal(t, "GET unmatched", obs.seen[2])
}
