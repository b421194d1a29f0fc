package database

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/deppfellow/coffee-demo/internal/config"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5"
	tern "github.com/jackc/tern/v2/migrate"
	"github.com/rs/zerolog"
)

// Embed all SQL files at compile time so the binary carries its schema.
//
//   - migrations/postgres: tern format (NNN_name.sql with a create/drop divider)
//   - migrations/sqlite: golang-migrate format (NNNNNN_name.up.sql / .down.sql)
//
//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrations embed.FS

// Migrate brings the schema of db up to date.
//
// Postgres migrations run over a dedicated connection (not the pool).
// SQLite migrations run over db.SQL, which is required for in-memory databases.
func Migrate(ctx context.Context, logger *zerolog.Logger, cfg *config.Config, db *Database) error {
	switch db.Driver {
	case config.DriverPostgres:
		return MigratePostgres(ctx, logger, postgresDSN(cfg))
	case config.DriverSQLite:
		return migrateSQLite(logger, db)
	default:
		return fmt.Errorf("unsupported database driver %q", db.Driver)
	}
}

// MigratePostgres runs the tern migrations against connString.
//
// Behavior:
//   - Connect using pgx (single connection, not a pool)
//   - Create tern migrator and load embedded migrations
//   - Run migrations to latest
//   - Log whether it was already up-to-date or migrated
func MigratePostgres(ctx context.Context, logger *zerolog.Logger, connString string) error {
	conn, err := pgx.Connect(ctx, connString)
	if err != nil {
		return fmt.Errorf("connecting for migrations: %w", err)
	}
	defer conn.Close(ctx)

	m, err := tern.NewMigrator(ctx, conn, "schema_version")
	if err != nil {
		return fmt.Errorf("constructing database migrator: %w", err)
	}

	subtree, err := fs.Sub(migrations, "migrations/postgres")
	if err != nil {
		return fmt.Errorf("retrieving database migrations subtree: %w", err)
	}

	if err := m.LoadMigrations(subtree); err != nil {
		return fmt.Errorf("loading database migrations: %w", err)
	}

	from, err := m.GetCurrentVersion(ctx)
	if err != nil {
		return fmt.Errorf("retrieving current database migration version: %w", err)
	}

	if err := m.Migrate(ctx); err != nil {
		return fmt.Errorf("migrating database: %w", err)
	}

	if from == int32(len(m.Migrations)) {
		logger.Info().Msgf("database schema up to date, version %d", len(m.Migrations))
	} else {
		logger.Info().Msgf("migrated database schema, from %d to %d", from, len(m.Migrations))
	}
	return nil
}

// migrateSQLite runs the golang-migrate migrations.
//
// The migrate instance is not closed: closing it would close db.SQL.
func migrateSQLite(logger *zerolog.Logger, db *Database) error {
	source, err := iofs.New(migrations, "migrations/sqlite")
	if err != nil {
		return fmt.Errorf("loading database migrations: %w", err)
	}

	driver, err := sqlite.WithInstance(db.SQL, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("failed to create sqlite migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	from, _, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("retrieving current database migration version: %w", err)
	}

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Info().Msgf("database schema up to date, version %d", from)
			return nil
		}
		return fmt.Errorf("migration up failed: %w", err)
	}

	to, _, err := m.Version()
	if err != nil {
		return fmt.Errorf("retrieving migrated database version: %w", err)
	}

	logger.Info().Msgf("migrated database schema, from %d to %d", from, to)
	return nil
}
