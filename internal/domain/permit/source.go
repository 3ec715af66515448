package permit

import (
	"context"

	"github.com/aquaboard/aquaboard/pkg/errors"
)

// Source is the external data-source collaborator: a single "fetch all
// records" capability returning loosely-typed rows or failing with a
// connectivity error. Implementations live under
// internal/infrastructure/source.
type Source interface {
	// FetchAll returns every raw permit row the source holds. There is no
	// pagination; the registry dataset is small enough to load in one shot.
	FetchAll(ctx context.Context) ([]RawRecord, error)
}

// SourceFunc adapts a plain function to the Source interface, mirroring
// http.HandlerFunc. Handy in tests and for the static seed dataset.
type SourceFunc func(ctx context.Context) ([]RawRecord, error)

// FetchAll calls f.
func (f SourceFunc) FetchAll(ctx context.Context) ([]RawRecord, error) { return f(ctx) }

// UnconfiguredSource returns a Source whose FetchAll always fails with
// CodeSourceUnconfigured. Wiring selects it when neither a PostgREST
// endpoint nor a Postgres DSN is configured, which routes the coordinator
// onto the documented fallback path instead of crashing.
func UnconfiguredSource(reason string) Source {
	return SourceFunc(func(context.Context) ([]RawRecord, error) {
		return nil, errors.New(errors.CodeSourceUnconfigured, "data source not configured").
			WithDetail(reason)
	})
}

// StaticSource returns a Source serving a fixed set of rows. Used by tests
// and by the CLI when pointed at a local fixture.
func StaticSource(rows []RawRecord) Source {
	return SourceFunc(func(context.Context) ([]RawRecord, error) {
		return rows, nil
	})
}
