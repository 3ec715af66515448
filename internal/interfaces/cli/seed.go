package cli

import (
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/aquaboard/aquaboard/internal/config"
	dbpostgres "github.com/aquaboard/aquaboard/internal/infrastructure/database/postgres"
	"github.com/aquaboard/aquaboard/internal/infrastructure/monitoring/logging"
)

func newSeedCmd(opts *rootOptions) *cobra.Command {
	var skipSeed bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Migrate the local database schema and load sample permits",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			if cfg.Source.Resolve() != config.SourceKindPostgres {
				return fmt.Errorf("seed requires a configured postgres source (source.postgres.dsn)")
			}

			log, err := logging.NewLogger(cfg.Log)
			if err != nil {
				return err
			}

			dsn := cfg.Source.Postgres.DSN
			if err := dbpostgres.Migrate(dsn, log); err != nil {
				return err
			}
			if skipSeed {
				return nil
			}

			pool, err := pgxpool.New(cmd.Context(), dsn)
			if err != nil {
				return fmt.Errorf("connect for seeding: %w", err)
			}
			defer pool.Close()

			return dbpostgres.Seed(cmd.Context(), pool, log)
		},
	}

	cmd.Flags().BoolVar(&skipSeed, "migrate-only", false,
		"apply schema migrations without inserting sample data")
	return cmd
}
