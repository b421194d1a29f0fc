// Package testutil builds migrated databases for package tests.
package testutil

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/deppfellow/coffee-demo/internal/config"
	"github.com/deppfellow/coffee-demo/internal/database"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// PostgresDSNEnv names the variable holding a DSN for PostgreSQL tests.
const PostgresDSNEnv = "COFFEE_TEST_POSTGRES_DSN"

// SQLiteConfig returns a config pointing at a fresh SQLite file under t.TempDir().
func SQLiteConfig(t testing.TB) *config.Config {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.Primary.Env = "test"
	cfg.Database.Driver = config.DriverSQLite
	cfg.Database.Path = filepath.Join(t.TempDir(), "coffee.db")
	return cfg
}

// NewSQLiteDatabase opens and migrates a SQLite database private to t.
func NewSQLiteDatabase(t testing.TB) *database.Database {
	t.Helper()

	log := zerolog.Nop()
	cfg := SQLiteConfig(t)

	db, err := database.New(cfg, &log, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, database.Migrate(context.Background(), &log, cfg, db))
	return db
}

// NewPostgresPool connects to $COFFEE_TEST_POSTGRES_DSN and migrates it.
// The test is skipped when the variable is unset.
func NewPostgresPool(t testing.TB) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv(PostgresDSNEnv)
	if dsn == "" {
		t.Skipf("%s not set", PostgresDSNEnv)
	}

	ctx := context.Background()
	log := zerolog.Nop()
	require.NoError(t, database.MigratePostgres(ctx, &log, dsn))

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	return pool
}
