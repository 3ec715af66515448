// Dashboard view-state and aggregation endpoints.

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aquaboard/aquaboard/internal/application/dashboard"
	"github.com/aquaboard/aquaboard/internal/domain/permit"
	"github.com/aquaboard/aquaboard/internal/infrastructure/monitoring/logging"
)

// DashboardHandler exposes the coordinator over HTTP. Every mutation routes
// through coordinator methods, so the HTTP surface adds no state of its own.
type DashboardHandler struct {
	coord *dashboard.Coordinator
	log   logging.Logger
}

// NewDashboardHandler wires the handler to a coordinator.
func NewDashboardHandler(coord *dashboard.Coordinator, log logging.Logger) *DashboardHandler {
	return &DashboardHandler{
		coord: coord,
		log:   log.Named("dashboard_handler"),
	}
}

// Register mounts all dashboard routes on the given group.
func (h *DashboardHandler) Register(g *gin.RouterGroup) {
	g.GET("/state", h.State)
	g.GET("/summary", h.Summary)
	g.GET("/options", h.FilterOptions)
	g.GET("/permits", h.Permits)
	g.GET("/permits/:id", h.Permit)
	g.GET("/map", h.Map)

	g.POST("/filters", h.SetFilter)
	g.DELETE("/filters", h.ClearFilters)
	g.POST("/tab", h.SetTab)
	g.POST("/selection", h.Select)
	g.DELETE("/selection", h.ClearSelection)
	g.POST("/reload", h.Reload)
}

// stateResponse is the lightweight view-state projection: lifecycle, active
// tab, filters, and selection, without the record collections.
type stateResponse struct {
	State      dashboard.State     `json:"state"`
	SnapshotID string              `json:"snapshotId"`
	Advisory   string              `json:"advisory,omitempty"`
	Fallback   bool                `json:"fallback"`
	Tab        dashboard.Tab       `json:"tab"`
	Selection  dashboard.Selection `json:"selection"`
	Selected   *permit.Permit      `json:"selected,omitempty"`
	Records    int                 `json:"records"`
	Filtered   int                 `json:"filtered"`
}

// State returns the current view state without record payloads.
func (h *DashboardHandler) State(c *gin.Context) {
	v := h.coord.View()
	c.JSON(http.StatusOK, stateResponse{
		State:      v.State,
		SnapshotID: v.SnapshotID,
		Advisory:   v.Advisory,
		Fallback:   v.Fallback,
		Tab:        v.Tab,
		Selection:  v.Selection,
		Selected:   v.Selected,
		Records:    len(v.Records),
		Filtered:   len(v.Filtered),
	})
}

// summaryResponse bundles the KPI cards and every chart series.
type summaryResponse struct {
	SnapshotID string               `json:"snapshotId"`
	Advisory   string               `json:"advisory,omitempty"`
	Fallback   bool                 `json:"fallback"`
	Aggregates dashboard.Aggregates `json:"aggregates"`
}

// Summary returns the aggregates derived from the filtered collection.
func (h *DashboardHandler) Summary(c *gin.Context) {
	v := h.coord.View()
	c.JSON(http.StatusOK, summaryResponse{
		SnapshotID: v.SnapshotID,
		Advisory:   v.Advisory,
		Fallback:   v.Fallback,
		Aggregates: v.Aggs,
	})
}

// FilterOptions returns the selectable values per dimension, always derived
// from the full snapshot so narrowing one dimension never hides options.
func (h *DashboardHandler) FilterOptions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"options": h.coord.View().Options})
}

// Permits returns the filtered records; ?scope=all returns the full
// snapshot regardless of active filters.
func (h *DashboardHandler) Permits(c *gin.Context) {
	v := h.coord.View()
	records := v.Filtered
	if c.Query("scope") == "all" {
		records = v.Records
	}
	c.JSON(http.StatusOK, gin.H{
		"snapshotId": v.SnapshotID,
		"total":      len(v.Records),
		"count":      len(records),
		"permits":    records,
	})
}

// Permit returns one record by id from the full snapshot.
func (h *DashboardHandler) Permit(c *gin.Context) {
	p, err := h.coord.Record(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// Map returns the projected marker positions plus the canvas geometry the
// client needs to scale them.
func (h *DashboardHandler) Map(c *gin.Context) {
	v := h.coord.View()
	c.JSON(http.StatusOK, gin.H{
		"canvas": gin.H{
			"width":  dashboard.MapCanvasWidth,
			"height": dashboard.MapCanvasHeight,
		},
		"points": v.MapPoints,
	})
}

// setFilterRequest replaces the selected values of one dimension. An empty
// values list removes that dimension's constraint.
type setFilterRequest struct {
	Dimension string   `json:"dimension" binding:"required"`
	Values    []string `json:"values"`
}

// SetFilter replaces one dimension's constraint and returns the new state.
func (h *DashboardHandler) SetFilter(c *gin.Context) {
	var req setFilterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, invalidBody(err))
		return
	}
	if err := h.coord.SetFilter(permit.Dimension(req.Dimension), req.Values); err != nil {
		respondError(c, err)
		return
	}
	h.State(c)
}

// ClearFilters removes every filter constraint.
func (h *DashboardHandler) ClearFilters(c *gin.Context) {
	h.coord.ClearFilters()
	h.State(c)
}

type setTabRequest struct {
	Tab string `json:"tab" binding:"required"`
}

// SetTab switches the active display mode.
func (h *DashboardHandler) SetTab(c *gin.Context) {
	var req setTabRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, invalidBody(err))
		return
	}
	if err := h.coord.SetTab(dashboard.Tab(req.Tab)); err != nil {
		respondError(c, err)
		return
	}
	h.State(c)
}

type selectRequest struct {
	ID string `json:"id" binding:"required"`
}

// Select opens the detail view on one record.
func (h *DashboardHandler) Select(c *gin.Context) {
	var req selectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, invalidBody(err))
		return
	}
	if err := h.coord.Select(req.ID); err != nil {
		respondError(c, err)
		return
	}
	h.State(c)
}

// ClearSelection closes the detail view.
func (h *DashboardHandler) ClearSelection(c *gin.Context) {
	h.coord.ClearSelection()
	h.State(c)
}

// Reload re-runs the one-shot fetch. Reload is the only way to refresh the
// snapshot; no endpoint triggers a fetch implicitly.
func (h *DashboardHandler) Reload(c *gin.Context) {
	h.coord.Reload(c.Request.Context())
	h.State(c)
}
