package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

const (
	sqliteDialect = "sqlite3"
	migrationsDir = "sql"
)

//go:embed sql/*.sql
var embedded embed.FS

// Up runs all pending catalog migrations embedded in the binary.
// A nil logger keeps goose's default output.
func Up(ctx context.Context, db *sql.DB, logger goose.Logger) error {
	goose.SetBaseFS(embedded)
	if logger != nil {
		goose.SetLogger(logger)
	}

	if err := goose.SetDialect(sqliteDialect); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db, migrationsDir); err != nil {
		return fmt.Errorf("run goose up migrations: %w", err)
	}

	return nil
}
