package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/joho/godotenv"

	"dragon-roster.backend/internal/config"
	"dragon-roster.backend/internal/infrastructure/datasources/postgres"
	"dragon-roster.backend/internal/infrastructure/migrations"
)

type migrateDeps struct {
	loadEnv func() error
	loadCfg func() *config.Config
	connect func(cfg config.DatabaseConfig) (*sql.DB, error)
	up      func(ctx context.Context, db *sql.DB) error
	down    func(ctx context.Context, db *sql.DB) error
	status  func(ctx context.Context, db *sql.DB) error
	version func(ctx context.Context, db *sql.DB) (int64, error)
	out     io.Writer
}

func defaultMigrateDeps() migrateDeps {
	return migrateDeps{
		loadEnv: func() error { return godotenv.Load() },
		loadCfg: config.Load,
		connect: postgres.NewConnection,
		up:      migrations.Up,
		down:    migrations.Down,
		status:  migrations.Status,
		version: migrations.Version,
		out:     os.Stdout,
	}
}

const usage = "usage: migrate up|down|status"

func runMigrate(args []string, deps migrateDeps) error {
	if len(args) != 1 {
		return errors.New(usage)
	}

	var apply func(ctx context.Context, db *sql.DB) error
	switch args[0] {
	case "up":
		apply = deps.up
	case "down":
		apply = deps.down
	case "status":
		apply = deps.status
	default:
		return fmt.Errorf("unknown command %q, %s", args[0], usage)
	}

	if err := deps.loadEnv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	cfg := deps.loadCfg()
	if cfg.Database.IsSQLite() {
		return errors.New("migrations target PostgreSQL, the sqlite store builds its schema on open")
	}

	db, err := deps.connect(cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := context.Background()
	if err := apply(ctx, db); err != nil {
		return err
	}

	v, err := deps.version(ctx, db)
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	_, _ = fmt.Fprintf(deps.out, "schema version %d\n", v)
	return nil
}

func main() {
	if err := runMigrate(os.Args[1:], defaultMigrateDeps()); err != nil {
		log.Fatal(err)
	}
}
