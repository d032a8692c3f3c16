package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/WillianPoeraridev/crm-retencao-fenix/internal/api"
	"github.com/WillianPoeraridev/crm-retencao-fenix/internal/config"
	"github.com/WillianPoeraridev/crm-retencao-fenix/internal/export"
	"github.com/WillianPoeraridev/crm-retencao-fenix/internal/ingestion"
	"github.com/WillianPoeraridev/crm-retencao-fenix/internal/log"
	"github.com/WillianPoeraridev/crm-retencao-fenix/internal/reconciliation"
	"github.com/WillianPoeraridev/crm-retencao-fenix/internal/repository"
)

func main() {
	if err := run(); err != nil {
		log.New(log.DefaultConfig()).Error("server failed", log.FieldError, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(".env", ".env.local")
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logger := log.New(log.Config{Level: level, Format: cfg.LogFormat, Component: log.ComponentApp})
	log.SetDefault(logger)

	logger.WithComponent(log.ComponentStorage).Info("initializing database", "path", cfg.DBPath)
	db, err := repository.InitDB(cfg.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()

	// Create repositories.
	users := repository.NewUserRepo(db)
	cities := repository.NewCityRepo(db)
	periods := repository.NewPeriodRepo(db)
	cases := repository.NewCaseRepo(db)

	// Create services.
	reconSvc := reconciliation.NewService(periods, users, cities, cases, logger)
	ingestionSvc := ingestion.NewService(reconSvc, logger)
	exportSvc := export.NewService(periods, cases, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	seeder := &seeder{
		users:    users,
		cities:   cities,
		periods:  periods,
		password: cfg.SeedPassword,
		logger:   logger.WithComponent(log.ComponentSeed),
		now:      time.Now,
	}
	if err := seeder.Run(ctx, cfg.SeedPath); err != nil {
		logger.Warn("seeding failed", log.FieldError, err)
	}

	router := api.NewRouter(users, cities, periods, cases, ingestionSvc, exportSvc, api.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		MaxUploadBytes: cfg.MaxUploadBytes(),
		Logger:         logger,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening", "addr", srv.Addr, "api", "/api/v1")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("server stopped")
	return nil
}
