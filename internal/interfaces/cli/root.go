// Package cli implements the aquaboard command tree.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aquaboard/aquaboard/internal/config"
	"github.com/aquaboard/aquaboard/internal/domain/permit"
	"github.com/aquaboard/aquaboard/internal/infrastructure/monitoring/logging"
	"github.com/aquaboard/aquaboard/internal/infrastructure/source/postgres"
	"github.com/aquaboard/aquaboard/internal/infrastructure/source/postgrest"
)

// Version is stamped at build time via -ldflags.
var Version = "dev"

// rootOptions carries flags shared by every subcommand.
type rootOptions struct {
	configPath string
	logLevel   string
}

// NewRootCmd builds the aquaboard command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "aquaboard",
		Short: "Water-extraction permit dashboard service",
		Long: `aquaboard serves a dashboard over public water-extraction permit data:
client-side filtering, sector and extractor aggregation, map projection,
and a detail view, backed by a hosted PostgREST endpoint or a local
PostgreSQL database.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "",
		"path to YAML config file (default: AQUABOARD_* environment only)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "",
		"override configured log level (debug|info|warn|error)")

	root.AddCommand(
		newServeCmd(opts),
		newSummaryCmd(opts),
		newSeedCmd(opts),
		newVersionCmd(),
	)
	return root
}

// Execute runs the command tree; main() delegates here.
func Execute() error {
	return NewRootCmd().Execute()
}

// loadConfig resolves configuration from the --config file or environment,
// with the --log-level flag applied on top.
func (o *rootOptions) loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if o.configPath != "" {
		cfg, err = config.Load(o.configPath)
	} else {
		cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return nil, err
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// buildSource constructs the permit source the config resolves to. An
// unconfigured source is returned as such, never as an error: the dashboard
// degrades to its fallback dataset.
func buildSource(ctx context.Context, cfg *config.Config, log logging.Logger) (permit.Source, func(), error) {
	noop := func() {}

	switch cfg.Source.Resolve() {
	case config.SourceKindPostgREST:
		return postgrest.NewClient(cfg.Source.PostgREST, log), noop, nil
	case config.SourceKindPostgres:
		src, err := postgres.NewSource(ctx, cfg.Source.Postgres, log)
		if err != nil {
			return nil, noop, fmt.Errorf("postgres source: %w", err)
		}
		return src, src.Close, nil
	default:
		return permit.UnconfiguredSource("no data source configured"), noop, nil
	}
}
