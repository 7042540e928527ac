package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

func init() {
	goose.SetBaseFS(migrations)
}

// Migrate applies every pending migration.
func Migrate(ctx context.Context, db *sql.DB) error {
	return RunMigrations(ctx, db, "up")
}

// RunMigrations executes a goose command (up, down, status, version) against db.
func RunMigrations(ctx context.Context, db *sql.DB, command string, args ...string) error {
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set migration dialect: %w", err)
	}
	if err := goose.RunContext(ctx, command, db, "migrations", args...); err != nil {
		return fmt.Errorf("run migrations %s: %w", command, err)
	}
	return nil
}
