package migrations

import (
	"embed"
	"fmt"
	"log/slog"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed changelog/*.sql
var changelog embed.FS

// Migrate applies every pending changelog migration.
func Migrate(driver string, url string, log *slog.Logger) (err error) {
	db, err := goose.OpenDBWithDriver(driver, url)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			if err == nil {
				err = cerr
			} else {
				log.Warn("closing migration connection", "error", cerr)
			}
		}
	}()

	goose.SetBaseFS(changelog)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	if err := goose.Up(db, "changelog"); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	log.Info("migrations applied")
	return nil
}

// Status logs the applied state of every migration.
func Status(driver string, url string) error {
	db, err := goose.OpenDBWithDriver(driver, url)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	goose.SetBaseFS(changelog)
	return goose.Status(db, "changelog")
}

// Down rolls back the most recent migration.
func Down(driver string, url string, log *slog.Logger) error {
	db, err := goose.OpenDBWithDriver(driver, url)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	goose.SetBaseFS(changelog)
	if err := goose.Down(db, "changelog"); err != nil {
		return fmt.Errorf("roll back migration: %w", err)
	}
	log.Info("last migration rolled back")
	return nil
}
