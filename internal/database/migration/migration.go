// Package migration applies the embedded schema with goose.
package migration

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"time"

	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"

	"billdocs/internal/logger"
)

//go:embed sql/*.sql
var embedded embed.FS

// Files returns the embedded migration sources, rooted at their directory.
func Files() fs.FS {
	sub, err := fs.Sub(embedded, "sql")
	if err != nil {
		// The directory is embedded at build time.
		panic(err)
	}
	return sub
}

// NewProvider returns a goose provider over the embedded migrations.
func NewProvider(db *sql.DB) (*goose.Provider, error) {
	p, err := goose.NewProvider(goose.DialectPostgres, db, Files())
	if err != nil {
		return nil, fmt.Errorf("goose provider: %w", err)
	}
	return p, nil
}

// EnsureMigrated applies every pending migration. It is a no-op on an up to date schema.
func EnsureMigrated(ctx context.Context, db *sql.DB, dbHost string) error {
	start := time.Now()
	log := logger.WithComponent("database").With().Str("db_host", dbHost).Logger()

	log.Info().Str("event", "db_migration_check").Str("status", "starting").Send()

	p, err := NewProvider(db)
	if err != nil {
		logFailure(log, start, "", err)
		return err
	}

	pending, err := p.HasPending(ctx)
	if err != nil {
		logFailure(log, start, "", err)
		return fmt.Errorf("check pending migrations: %w", err)
	}
	if !pending {
		log.Info().
			Str("event", "db_migration_skip").
			Str("status", "success").
			Int64("duration_ms", time.Since(start).Milliseconds()).
			Msg("schema already up to date, skipping migration")
		return nil
	}

	log.Info().Str("event", "db_migration_start").Str("status", "in_progress").Send()

	results, err := p.Up(ctx)
	if err != nil {
		var partial *goose.PartialError
		if errors.As(err, &partial) {
			for _, r := range partial.Applied {
				logStep(log, r)
			}
			step := ""
			if partial.Failed != nil && partial.Failed.Source != nil {
				step = path.Base(partial.Failed.Source.Path)
			}
			logFailure(log, start, step, partial.Err)
			return fmt.Errorf("migration step %s failed: %w", step, partial.Err)
		}
		logFailure(log, start, "", err)
		return fmt.Errorf("migrate: %w", err)
	}

	for _, r := range results {
		logStep(log, r)
	}
	log.Info().
		Str("event", "db_migration_success").
		Str("status", "success").
		Int("applied", len(results)).
		Int64("duration_ms", time.Since(start).Milliseconds()).
		Send()
	return nil
}

func logStep(log zerolog.Logger, r *goose.MigrationResult) {
	ev := log.Info().Str("event", "db_migration_step").Str("status", "success")
	if r.Source != nil {
		ev = ev.Str("migration_step", path.Base(r.Source.Path)).Int64("version", r.Source.Version)
	}
	ev.Int64("step_duration_ms", r.Duration.Milliseconds()).Send()
}

func logFailure(log zerolog.Logger, start time.Time, step string, err error) {
	ev := log.Error().Str("event", "db_migration_failed").Str("status", "error").Err(err)
	if step != "" {
		ev = ev.Str("migration_step", step)
	}
	ev.Int64("duration_ms", time.Since(start).Milliseconds()).Send()
}
