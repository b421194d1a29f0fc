// Package database contains the logic for establishing
// connections to the configured database.
//
// PostgreSQL goes through a pgx connection pool (pgxpool) with
// the logger/tracer integrated into the driver. SQLite goes
// through database/sql with the pure-Go modernc.org/sqlite driver.
//
// It handles:
//   - building a DSN from config
//   - creating the pool / handle and applying pool limits
//   - wiring query tracing/logging (pgx tracelog, slow queries)
//   - optional New Relic instrumentation (nrpgx5)
//   - embedded schema migrations (tern / golang-migrate)
package database

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/deppfellow/coffee-demo/internal/config"
	loggerConfig "github.com/deppfellow/coffee-demo/internal/logger"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// Database wraps the handle of whichever driver is configured.
//
// Exactly one of Pool (postgres) or SQL (sqlite) is set.
type Database struct {
	Driver string
	Pool   *pgxpool.Pool
	SQL    *sql.DB
	log    *zerolog.Logger
}

// DatabasePingTimeout defines the number of seconds to wait for a ping
// before considering the database "unreachable".
const DatabasePingTimeout = 10

// New opens the database selected by cfg.Database.Driver and pings it.
//
// loggerService may be nil.
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerConfig.LoggerService) (*Database, error) {
	switch cfg.Database.Driver {
	case config.DriverPostgres:
		pool, err := newPostgresPool(cfg, logger, loggerService)
		if err != nil {
			return nil, err
		}
		logger.Info().Str("driver", cfg.Database.Driver).Msg("connected to the database")
		return &Database{Driver: config.DriverPostgres, Pool: pool, log: logger}, nil

	case config.DriverSQLite:
		db, err := openSQLite(cfg.Database.Path)
		if err != nil {
			return nil, err
		}
		logger.Info().Str("driver", cfg.Database.Driver).Str("path", cfg.Database.Path).Msg("connected to the database")
		return &Database{Driver: config.DriverSQLite, SQL: db, log: logger}, nil

	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
}

// postgresDSN builds a postgres URL from config.
//
// The password is URL-escaped so "pa:ss@word" does not break the URL.
// IPv6 hosts get brackets from net.JoinHostPort.
func postgresDSN(cfg *config.Config) string {
	hostPort := net.JoinHostPort(cfg.Database.Host, strconv.Itoa(cfg.Database.Port))

	return fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=%s",
		url.QueryEscape(cfg.Database.User),
		url.QueryEscape(cfg.Database.Password),
		hostPort,
		cfg.Database.Name,
		cfg.Database.SSLMode,
	)
}

// newPostgresPool creates a PostgreSQL connection pool with instrumentation.
//
// Behavior:
//   - Parse DSN into pgxpool config and apply pool limits
//   - Attach the tracer chain (New Relic, local SQL log, slow queries)
//   - Create pool, ping it, and return it
func newPostgresPool(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerConfig.LoggerService) (*pgxpool.Pool, error) {
	pgxPoolConfig, err := pgxpool.ParseConfig(postgresDSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to parse pgx pool config: %w", err)
	}

	pgxPoolConfig.MaxConns = int32(cfg.Database.MaxOpenConns)
	pgxPoolConfig.MinConns = int32(min(cfg.Database.MaxIdleConns, cfg.Database.MaxOpenConns))
	pgxPoolConfig.MaxConnLifetime = time.Duration(cfg.Database.ConnMaxLifetime) * time.Second
	pgxPoolConfig.MaxConnIdleTime = time.Duration(cfg.Database.ConnMaxIdleTime) * time.Second

	if tracer := buildTracer(cfg, logger, loggerService); tracer != nil {
		pgxPoolConfig.ConnConfig.Tracer = tracer
	}

	pool, err := pgxpool.NewWithConfig(context.Background(), pgxPoolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}

	// Fail fast if the database is down.
	ctx, cancel := context.WithTimeout(context.Background(), DatabasePingTimeout*time.Second)
	defer cancel()
	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return pool, nil
}

// Ping verifies the database is reachable.
func (db *Database) Ping(ctx context.Context) error {
	if db.Pool != nil {
		return db.Pool.Ping(ctx)
	}
	return db.SQL.PingContext(ctx)
}

// Close closes the pool or handle.
func (db *Database) Close() error {
	db.log.Info().Str("driver", db.Driver).Msg("closing database connection pool")

	if db.Pool != nil {
		db.Pool.Close()
		return nil
	}
	return db.SQL.Close()
}
