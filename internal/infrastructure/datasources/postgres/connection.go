// Package postgres opens the PostgreSQL store used in production.
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"dragon-roster.backend/internal/config"
	"dragon-roster.backend/internal/infrastructure/migrations"
)

var (
	sqlOpen  = sql.Open
	dbPing   = func(db *sql.DB) error { return db.Ping() }
	gormOpen = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	}
	migrateUp = migrations.Up
)

// NewConnection opens a database/sql handle over lib/pq and verifies it.
// Migrations run through this handle.
func NewConnection(cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sqlOpen("postgres", cfg.URL())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := dbPing(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

// Migrate applies pending schema migrations.
func Migrate(ctx context.Context, cfg config.DatabaseConfig) error {
	db, err := NewConnection(cfg)
	if err != nil {
		return err
	}
	defer db.Close()
	return migrateUp(ctx, db)
}

// Open returns the gorm store the repositories run on. It speaks pgx, so
// constraint violations surface as *pgconn.PgError.
func Open(cfg config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gormOpen(cfg.URL())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}
