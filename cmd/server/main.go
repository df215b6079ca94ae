package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"abrigo/backend/internal/api"
	"abrigo/backend/internal/config"
	"abrigo/backend/internal/db"
	"abrigo/backend/internal/db/migrate"
	"abrigo/backend/internal/jobs"
	"abrigo/backend/internal/logging"
	"abrigo/backend/internal/metrics"
	"abrigo/backend/internal/routes"
	"abrigo/backend/internal/workers"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// @title Abrigo API
// @version 1.0
// @description Users, projects and per-project role memberships for animal shelter NGOs.
// @host localhost:8080
// @BasePath /
func main() {
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	// Initialize structured logging
	if err := logging.Init(cfg.Env); err != nil {
		log.Fatalf("❌ Failed to initialize logger: %v", err)
	}
	defer logging.Close()

	logging.Info("Abrigo starting up",
		"environment", cfg.Env,
		"timestamp", time.Now().Format(time.RFC3339),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.MigrateOnStart {
		if err := migrate.Run(cfg.DSN(), "up"); err != nil {
			log.Fatalf("❌ Failed to apply migrations: %v", err)
		}
		logging.Info("Migrations applied")
	}

	// Connect to DB with sqlx
	sqlDB, err := db.InitPostgres(ctx, cfg.DSN())
	if err != nil {
		logging.Error("Failed to connect to Postgres (sqlx)", "error", err.Error())
		log.Fatalf("❌ Failed to connect to Postgres (sqlx): %v", err)
	}
	defer sqlDB.Close()
	logging.Info("Connected to Postgres (sqlx)")

	// Connect to DB with GORM
	gormDB, err := db.InitPostgresORM(cfg.DSN())
	if err != nil {
		logging.Error("Failed to connect to Postgres (GORM)", "error", err.Error())
		log.Fatalf("❌ Failed to connect to Postgres (GORM): %v", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metricsReg := metrics.NewMetricsRegistry(reg)

	deps, err := api.InitDependencies(cfg, gormDB, sqlDB, metricsReg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize dependencies: %v", err)
	}
	defer deps.Services.Cache.Close()

	if audit := jobs.InitializeJobs(ctx, deps.Repo.User, deps.Services.Memberships, metricsReg, cfg.RoleAuditDuration()); audit != nil {
		logging.Info("Role audit scheduled", "interval", cfg.RoleAuditDuration().String())
	}

	workers.InitWorkers(ctx, deps.Services.Projects, cfg.ProjectCacheDuration())

	upSince := time.Now()
	router := routes.RegisterRoutes(cfg, deps, reg, upSince)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logging.Info("Server starting", "addr", cfg.HTTPAddr, "environment", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error("HTTP server stopped", "error", err.Error())
			stop()
		}
	}()

	<-ctx.Done()
	logging.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Error("Graceful shutdown failed", "error", err.Error())
	}
}
