// Package http exposes the dashboard engine over a JSON API.
package http

import (
	nethttp "net/http"

	"github.com/gin-gonic/gin"

	"github.com/aquaboard/aquaboard/internal/application/dashboard"
	"github.com/aquaboard/aquaboard/internal/infrastructure/monitoring/logging"
	"github.com/aquaboard/aquaboard/internal/interfaces/http/handlers"
	"github.com/aquaboard/aquaboard/internal/interfaces/http/middleware"
)

// RouterDeps carries everything the router mounts.
type RouterDeps struct {
	Coordinator *dashboard.Coordinator
	Logger      logging.Logger
	Version     string

	// Metrics is optional; when nil, no metrics middleware and no scrape
	// endpoint are mounted.
	Metrics interface {
		middleware.RequestObserver
		Handler() nethttp.Handler
	}

	// CORS overrides the default policy when non-nil.
	CORS *middleware.CORSConfig
}

// NewRouter assembles the gin engine: middleware chain, probes, scrape
// endpoint, and the versioned dashboard API.
func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogging(deps.Logger, middleware.DefaultLoggingConfig()))

	corsCfg := middleware.DefaultCORSConfig()
	if deps.CORS != nil {
		corsCfg = *deps.CORS
	}
	r.Use(middleware.CORS(corsCfg))

	if deps.Metrics != nil {
		r.Use(middleware.Metrics(deps.Metrics))
		r.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	health := handlers.NewHealthHandler(deps.Coordinator, deps.Version)
	r.GET("/healthz", health.Healthz)
	r.GET("/readyz", health.Readyz)

	api := r.Group("/api/v1/dashboard")
	handlers.NewDashboardHandler(deps.Coordinator, deps.Logger).Register(api)

	return r
}
