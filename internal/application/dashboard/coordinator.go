package dashboard

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/aquaboard/aquaboard/internal/domain/permit"
	"github.com/aquaboard/aquaboard/internal/infrastructure/monitoring/logging"
	"github.com/aquaboard/aquaboard/pkg/errors"
)

// State is the coordinator's load-lifecycle state. There is no terminal
// error state: every settlement, including failure, lands in StateReady with
// the appropriate collection and advisory.
type State string

const (
	StateLoading State = "loading"
	StateReady   State = "ready"
)

// Tab is the active display mode of the dashboard surface.
type Tab string

const (
	TabSummary Tab = "summary"
	TabMap     Tab = "map"
	TabTable   Tab = "table"
)

// Advisory wording for the three degraded-but-functional conditions. The
// underlying cause is surfaced only at log level.
const (
	advisoryUnconfigured = "Data source is not configured; showing the fallback dataset."
	advisoryUnavailable  = "Data source is unreachable; showing the fallback dataset."
	advisoryEmpty        = "Data source returned no records."
)

// Observer receives coordinator lifecycle events for instrumentation. The
// prometheus collector implements it; tests use nil or a recording stub.
type Observer interface {
	FetchSettled(outcome string, took time.Duration, records int)
	Recomputed(took time.Duration, filtered int)
}

// Fetch outcome labels passed to Observer.FetchSettled.
const (
	FetchOutcomeOK       = "ok"
	FetchOutcomeEmpty    = "empty"
	FetchOutcomeFallback = "fallback"
)

// View is an immutable snapshot of everything the presentation layer needs:
// canonical records, filter state, derived aggregates, and selection. A View
// is never mutated after publication; every state change produces a new one.
type View struct {
	State      State  `json:"state"`
	SnapshotID string `json:"snapshotId"`
	Advisory   string `json:"advisory,omitempty"`
	Fallback   bool   `json:"fallback"`

	Tab       Tab       `json:"tab"`
	Selection Selection `json:"selection"`
	Options   Options   `json:"options"`

	Records   []permit.Permit `json:"records"`
	Filtered  []permit.Permit `json:"filtered"`
	Aggs      Aggregates      `json:"aggregates"`
	MapPoints []MapPoint      `json:"mapPoints"`

	Selected *permit.Permit `json:"selected,omitempty"`
}

// Coordinator owns the data-load lifecycle, the active filter selection, the
// active tab, and the detail-view selection, and recomputes derived
// collections on every relevant change. All state is held here explicitly;
// nothing ambient.
//
// The computation model is the single-threaded event loop of the original
// surface; under a concurrent HTTP server the same discipline is enforced
// with a mutex, one event at a time.
type Coordinator struct {
	source   permit.Source
	log      logging.Logger
	observer Observer

	mu         sync.RWMutex
	state      State
	snapshotID string
	records    []permit.Permit
	advisory   string
	fallback   bool

	tab        Tab
	selection  Selection
	selectedID string

	// Derived, recomputed on every records/selection change.
	options   Options
	filtered  []permit.Permit
	aggs      Aggregates
	mapPoints []MapPoint
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithObserver attaches a lifecycle observer (metrics collector).
func WithObserver(o Observer) Option {
	return func(c *Coordinator) { c.observer = o }
}

// NewCoordinator constructs a Coordinator in StateLoading with an empty
// selection and the summary tab active. Call Init to issue the one-shot
// fetch.
func NewCoordinator(source permit.Source, log logging.Logger, opts ...Option) *Coordinator {
	c := &Coordinator{
		source:    source,
		log:       log.Named("coordinator"),
		state:     StateLoading,
		tab:       TabSummary,
		selection: Selection{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Init issues exactly one fetch against the data source and settles into
// StateReady. Init never returns an error: configuration and connectivity
// failures degrade to the documented fallback collection plus an advisory.
func (c *Coordinator) Init(ctx context.Context) {
	start := time.Now()
	rows, err := c.source.FetchAll(ctx)
	c.onFetchSettled(rows, err, time.Since(start))
}

// Reload re-runs the one-shot fetch against the same source, replacing the
// held snapshot. There is no automatic retry anywhere; reload is always an
// explicit user action.
func (c *Coordinator) Reload(ctx context.Context) {
	c.mu.Lock()
	c.state = StateLoading
	c.mu.Unlock()
	c.Init(ctx)
}

// onFetchSettled handles the single suspension point's result: success,
// empty success, or failure.
func (c *Coordinator) onFetchSettled(rows []permit.RawRecord, err error, took time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state = StateReady
	c.snapshotID = uuid.NewString()
	outcome := FetchOutcomeOK

	switch {
	case err != nil:
		c.records = permit.FallbackCollection()
		c.fallback = true
		if errors.IsCode(err, errors.CodeSourceUnconfigured) {
			c.advisory = advisoryUnconfigured
		} else {
			c.advisory = advisoryUnavailable
		}
		outcome = FetchOutcomeFallback
		c.log.Error("fetch failed, degrading to fallback dataset",
			logging.Err(err),
			logging.Duration("took", took),
		)
	case len(rows) == 0:
		c.records = []permit.Permit{}
		c.fallback = false
		c.advisory = advisoryEmpty
		outcome = FetchOutcomeEmpty
		c.log.Warn("fetch returned no records", logging.Duration("took", took))
	default:
		c.records = permit.NormalizeAll(rows)
		c.fallback = false
		c.advisory = ""
		c.log.Info("snapshot loaded",
			logging.String("snapshot", c.snapshotID),
			logging.Int("records", len(c.records)),
			logging.Duration("took", took),
		)
	}

	if c.observer != nil {
		c.observer.FetchSettled(outcome, took, len(c.records))
	}
	c.recompute()
}

// SetFilter replaces the selected values of one dimension and recomputes the
// derived collections. It never refetches. Unknown dimensions are rejected;
// stale values are accepted and simply never match.
func (c *Coordinator) SetFilter(dim permit.Dimension, values []string) error {
	if !validDimension(dim) {
		return errors.InvalidParam("unknown filter dimension").WithDetail(string(dim))
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.selection[dim] = append([]string(nil), values...)
	c.recompute()
	return nil
}

// ClearFilters removes every constraint and recomputes.
func (c *Coordinator) ClearFilters() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selection = Selection{}
	c.recompute()
}

// SetTab switches the active display mode. Purely view state: no refetch,
// no recomputation.
func (c *Coordinator) SetTab(tab Tab) error {
	switch tab {
	case TabSummary, TabMap, TabTable:
	default:
		return errors.InvalidParam("unknown tab").WithDetail(string(tab))
	}
	c.mu.Lock()
	c.tab = tab
	c.mu.Unlock()
	return nil
}

// Select marks one record (by id, from chart, map, or table) for the detail
// view.
func (c *Coordinator) Select(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.findRecord(id) == nil {
		return errors.NotFound("permit not found").WithDetail(id)
	}
	c.selectedID = id
	return nil
}

// ClearSelection closes the detail view.
func (c *Coordinator) ClearSelection() {
	c.mu.Lock()
	c.selectedID = ""
	c.mu.Unlock()
}

// View returns an immutable snapshot of the full view state. Slices are the
// coordinator's derived values, which are replaced wholesale (never mutated)
// on recomputation, so sharing them is safe.
func (c *Coordinator) View() View {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return View{
		State:      c.state,
		SnapshotID: c.snapshotID,
		Advisory:   c.advisory,
		Fallback:   c.fallback,
		Tab:        c.tab,
		Selection:  c.selection.Clone(),
		Options:    c.options,
		Records:    c.records,
		Filtered:   c.filtered,
		Aggs:       c.aggs,
		MapPoints:  c.mapPoints,
		Selected:   c.findRecord(c.selectedID),
	}
}

// Record resolves one permit by id from the full snapshot.
func (c *Coordinator) Record(id string) (*permit.Permit, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if p := c.findRecord(id); p != nil {
		return p, nil
	}
	return nil, errors.NotFound("permit not found").WithDetail(id)
}

// findRecord returns a copy of the matching record, nil when absent (stale
// selections resolve to nil rather than failing). Callers hold c.mu.
func (c *Coordinator) findRecord(id string) *permit.Permit {
	if id == "" {
		return nil
	}
	for i := range c.records {
		if c.records[i].ID == id {
			p := c.records[i]
			return &p
		}
	}
	return nil
}

// recompute re-derives every transient collection from the held snapshot and
// selection. Callers hold c.mu. Derivation is synchronous, pure, and cheap
// enough to run in full on every change; no incremental strategy.
func (c *Coordinator) recompute() {
	start := time.Now()

	c.options = ExtractOptions(c.records)
	c.filtered = ApplyFilter(c.records, c.selection)
	c.aggs = Derive(c.filtered)
	c.mapPoints = ProjectMapPoints(c.filtered)

	if c.observer != nil {
		c.observer.Recomputed(time.Since(start), len(c.filtered))
	}
}

func validDimension(dim permit.Dimension) bool {
	for _, d := range permit.Dimensions() {
		if d == dim {
			return true
		}
	}
	return false
}
