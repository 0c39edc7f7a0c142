// Command migrate applies or inspects the embedded schema migrations.
//
//	go run ./cmd/migrate [up|down|status]
package main

import (
	"log/slog"
	"os"

	"FRANCIGENA_BACK-END/internal/config"
	"FRANCIGENA_BACK-END/migrations"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("load config", "error", err)
		os.Exit(1)
	}

	cmd := "up"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	dsn := cfg.GetDSN()
	switch cmd {
	case "up":
		err = migrations.Migrate("pgx", dsn, logger)
	case "down":
		err = migrations.Down("pgx", dsn, logger)
	case "status":
		err = migrations.Status("pgx", dsn)
	default:
		logger.Error("unknown command", "command", cmd, "usage", "migrate [up|down|status]")
		os.Exit(2)
	}
	if err != nil {
		logger.Error("migration failed", "command", cmd, "error", err)
		os.Exit(1)
	}
}
