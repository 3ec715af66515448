// Package postgres owns the schema and seed data for self-hosted
// deployments that keep the permits table in a local database.
package postgres

import (
	"embed"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/aquaboard/aquaboard/internal/infrastructure/monitoring/logging"
	"github.com/aquaboard/aquaboard/pkg/errors"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Migrate applies all pending schema migrations against the given database
// URL. Already-current schemas are not an error.
func Migrate(databaseURL string, log logging.Logger) error {
	src, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return errors.Wrap(err, errors.CodeMigrationFailed, "load embedded migrations")
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, databaseURL)
	if err != nil {
		return errors.Wrap(err, errors.CodeMigrationFailed, "open migration target")
	}
	defer m.Close()

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return errors.Wrap(err, errors.CodeMigrationFailed, "apply migrations")
	}

	version, dirty, err := m.Version()
	if err != nil && err != migrate.ErrNilVersion {
		return errors.Wrap(err, errors.CodeMigrationFailed, "read schema version")
	}
	log.Info("schema migrated",
		logging.Int("version", int(version)),
		logging.Bool("dirty", dirty),
	)
	return nil
}
