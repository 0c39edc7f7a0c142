// @title Francigena Backend API
// @version 1.0
// @description Pilgrimage planner for the Via Francigena: daily stages, hostels and bed bookings.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/cors"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"

	_ "FRANCIGENA_BACK-END/docs" // This is required for swagger
	"FRANCIGENA_BACK-END/internal/config"
	"FRANCIGENA_BACK-END/internal/handlers"
	"FRANCIGENA_BACK-END/internal/middleware"
	"FRANCIGENA_BACK-END/internal/notify"
	"FRANCIGENA_BACK-END/internal/repository"
	"FRANCIGENA_BACK-END/internal/routes"
	"FRANCIGENA_BACK-END/internal/services"
	"FRANCIGENA_BACK-END/migrations"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	if cfg.Database.AutoMigrate {
		if err := migrations.Migrate("pgx", cfg.GetDSN(), logger); err != nil {
			return err
		}
	}

	pool, err := newPool(cfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	// ทดสอบ ping ตอนบูต
	{
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Database.ConnTimeout)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			return err
		}
	}

	// bun shares the pool through database/sql for the checklist tables
	bunDB := bun.NewDB(stdlib.OpenDBFromPool(pool), pgdialect.New())
	defer bunDB.Close()

	// --- Repositories and services ---
	catalogRepo := repository.NewCatalogRepository(pool)
	tripRepo := repository.NewTripRepository(pool)
	structureRepo := repository.NewStructureRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	notificationRepo := repository.NewNotificationRepository(pool)
	checklistRepo := repository.NewChecklistRepository(bunDB)

	notifier := notify.NewService(notificationRepo, structureRepo, cfg.Notify.Timeout, logger)

	catalog := services.NewCatalogService(catalogRepo, logger)
	if err := catalog.Refresh(context.Background()); err != nil {
		return err
	}
	tripService := services.NewTripService(tripRepo, catalog, cfg.Planner, logger, time.Now)
	bookingService := services.NewBookingService(bookingRepo, notifier, logger, time.Now)
	structureService := services.NewStructureService(structureRepo, bookingRepo, tripRepo, catalog, notifier, logger, time.Now)
	checklistService := services.NewChecklistService(checklistRepo, tripRepo)
	notificationService := services.NewNotificationService(notificationRepo)
	statsService := services.NewStatsService(tripRepo, structureRepo, bookingRepo, catalog, time.Now)

	// --- HTTP Handlers ---
	mux := routes.SetupRoutes(routes.Handlers{
		Health:        handlers.NewHealthHandler(pool),
		Catalog:       handlers.NewCatalogHandler(catalog, logger),
		Trips:         handlers.NewTripsHandler(tripService, logger),
		Structures:    handlers.NewStructuresHandler(structureService, bookingService, logger),
		Bookings:      handlers.NewBookingsHandler(bookingService, logger),
		Checklist:     handlers.NewChecklistHandler(checklistService, logger),
		Notifications: handlers.NewNotificationsHandler(notificationService, logger),
		Profile:       handlers.NewProfileHandler(statsService, logger),
	}, &cfg.JWT)

	// Setup CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: cfg.CORS.AllowCredentials,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           middleware.AccessLog(logger, c.Handler(mux)),
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	// รันเซิร์ฟเวอร์แบบ async
	serveErr := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	// รอ SIGINT/SIGTERM เพื่อปิดอย่างสุภาพ
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	select {
	case err := <-serveErr:
		return err
	case <-quit:
	}
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}
	notifier.Wait()
	logger.Info("server stopped")
	return nil
}

func newPool(cfg *config.Config) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.GetDSN())
	if err != nil {
		return nil, err
	}
	// simple protocol keeps the pool usable behind PgBouncer
	poolCfg.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol
	poolCfg.ConnConfig.RuntimeParams["application_name"] = "francigena-backend"
	poolCfg.ConnConfig.RuntimeParams["statement_timeout"] = strconv.FormatInt(cfg.Database.QueryTimeout.Milliseconds(), 10)
	poolCfg.MaxConns = cfg.Database.MaxConns
	poolCfg.MinConns = cfg.Database.MinConns
	poolCfg.MaxConnLifetime = cfg.Database.MaxLifetime

	return pgxpool.NewWithConfig(context.Background(), poolCfg)
}
