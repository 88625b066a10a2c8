// Package db runs the embedded schema migrations against PostgreSQL.
package db

import (
	"context"
	"embed"

	"github.com/pressly/goose/v3"

	"github.com/GymDesk/gymdesk/connections"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Migrate applies all pending migrations.
func Migrate(ctx context.Context) error {
	sqlDB, err := connections.StdDB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	return goose.UpContext(ctx, sqlDB, "migrations")
}
