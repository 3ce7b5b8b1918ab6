package database

import (
	"database/sql"
	"embed"
	"fmt"
	"log/slog"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// RunMigrations applies all pending migrations. Goose drives a separate
// database/sql connection; the pgx pool is not involved.
func RunMigrations(connString string) error {
	db, err := sql.Open("pgx", connString)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToOpenForMigrate, err)
	}
	defer db.Close()

	goose.SetBaseFS(migrationsFS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToRunMigrations, err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToRunMigrations, err)
	}

	slog.Default().Info(LogMsgMigrationsApplied)
	return nil
}
