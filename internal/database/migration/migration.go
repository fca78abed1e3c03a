package migration

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type migrationStep struct {
	Name string
	SQL  string
}

// Ids are opaque strings: server-generated UUIDs and caller-chosen keys share the column.
var steps = []migrationStep{
	{
		Name: "create_table_apples",
		SQL: `CREATE TABLE IF NOT EXISTS apples (
  id   TEXT PRIMARY KEY,
  name TEXT NOT NULL DEFAULT ''
);`,
	},
}

// EnsureMigrated checks if the 'apples' table exists and runs migrations if it doesn't.
func EnsureMigrated(ctx context.Context, db *sql.DB, logger log.FieldLogger, dbHost string) error {
	start := time.Now()
	l := logger.WithFields(log.Fields{
		"component": "database",
		"db_host":   dbHost,
	})

	l.WithField("event", "db_migration_check").Info("checking schema")

	var exists bool
	query := "SELECT to_regclass('public.apples') IS NOT NULL"
	if err := db.QueryRowContext(ctx, query).Scan(&exists); err != nil {
		l.WithFields(log.Fields{
			"event":       "db_migration_failed",
			"duration_ms": time.Since(start).Milliseconds(),
		}).WithError(err).Error("failed to check sentinel table")
		return errors.Wrap(err, "failed to check sentinel table")
	}

	if exists {
		l.WithFields(log.Fields{
			"event":       "db_migration_skip",
			"duration_ms": time.Since(start).Milliseconds(),
		}).Info("schema already exists, skipping migration")
		return nil
	}

	l.WithField("event", "db_migration_start").Info("applying migrations")

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			l.WithFields(log.Fields{
				"event":            "db_migration_failed",
				"migration_step":   step.Name,
				"duration_ms":      time.Since(start).Milliseconds(),
				"step_duration_ms": time.Since(stepStart).Milliseconds(),
			}).WithError(err).Error("migration step failed")
			return errors.Wrapf(err, "migration step %s failed", step.Name)
		}

		l.WithFields(log.Fields{
			"event":            "db_migration_step",
			"migration_step":   step.Name,
			"step_duration_ms": time.Since(stepStart).Milliseconds(),
		}).Info("migration step applied")
	}

	l.WithFields(log.Fields{
		"event":       "db_migration_success",
		"duration_ms": time.Since(start).Milliseconds(),
	}).Info("migrations applied")

	return nil
}
