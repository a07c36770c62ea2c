package app

import (
	"database/sql"
	"fmt"

	"github.com/guttosm/sharecgt/config"
	"github.com/guttosm/sharecgt/db"
	"github.com/guttosm/sharecgt/internal/logger"
	goose "github.com/pressly/goose/v3"

	_ "github.com/lib/pq" // PostgreSQL driver for database/sql
)

// sqlOpener is an indirection for unit testing; defaults to sql.Open
var sqlOpener = sql.Open

// InitPostgres opens a PostgreSQL pool from cfg.Postgres and pings it.
//
// Returns:
//   - *sql.DB: an open database connection pool (safe for concurrent use).
//   - error: if opening or pinging the database fails.
//
// Example usage:
//
//	db, err := app.InitPostgres(config.AppConfig)
//	if err != nil {
//	    log.Fatalf("❌ failed to connect: %v", err)
//	}
//	defer db.Close()
func InitPostgres(cfg config.Config) (*sql.DB, error) {
	conn, err := sqlOpener("postgres", cfg.Postgres.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}

	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	return conn, nil
}

// postgresOpener is an indirection used by InitializeApp; overridden in tests to avoid real connections.
var postgresOpener = InitPostgres

// migrator applies schema migrations; overridden in tests that run on sqlmock.
var migrator = Migrate

// Migrate applies every pending embedded goose migration.
func Migrate(conn *sql.DB) error {
	goose.SetBaseFS(db.Migrations)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	if err := goose.Up(conn, db.MigrationsDir); err != nil {
		return err
	}

	version, err := goose.GetDBVersion(conn)
	if err != nil {
		return err
	}
	logger.L().Info().Int64("schema_version", version).Msg("migrations applied")
	return nil
}
