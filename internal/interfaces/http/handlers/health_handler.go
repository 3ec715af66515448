package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aquaboard/aquaboard/internal/application/dashboard"
)

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	coord   *dashboard.Coordinator
	version string
}

// NewHealthHandler wires the probes to the coordinator whose readiness they
// report.
func NewHealthHandler(coord *dashboard.Coordinator, version string) *HealthHandler {
	return &HealthHandler{coord: coord, version: version}
}

// Healthz reports process liveness. It never inspects dependencies.
func (h *HealthHandler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": h.version,
	})
}

// Readyz reports whether the first snapshot has settled. A fallback snapshot
// still counts as ready: the dashboard is serving, just degraded.
func (h *HealthHandler) Readyz(c *gin.Context) {
	v := h.coord.View()
	if v.State != dashboard.StateReady {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "loading",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"snapshotId": v.SnapshotID,
		"fallback":   v.Fallback,
	})
}
