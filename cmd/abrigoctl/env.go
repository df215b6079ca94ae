package main

import (
	"context"
	"fmt"

	"abrigo/backend/internal/api"
	"abrigo/backend/internal/common"
	"abrigo/backend/internal/config"
	"abrigo/backend/internal/db"
	"abrigo/backend/internal/logging"
	"abrigo/backend/internal/metrics"

	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

// env holds the connections a command needs. Each command opens only what it uses.
type env struct {
	cfg *config.Config
	sql *sqlx.DB
	orm *gorm.DB
}

func loadEnv() (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := logging.Init(cfg.Env); err != nil {
		return nil, err
	}
	return &env{cfg: cfg}, nil
}

func (e *env) sqlConn(ctx context.Context) (*sqlx.DB, error) {
	if e.sql != nil {
		return e.sql, nil
	}
	conn, err := db.InitPostgres(ctx, e.cfg.DSN())
	if err != nil {
		return nil, err
	}
	e.sql = conn
	return conn, nil
}

func (e *env) services() (*api.Services, error) {
	if e.orm == nil {
		orm, err := db.InitPostgresORM(e.cfg.DSN())
		if err != nil {
			return nil, fmt.Errorf("open gorm: %w", err)
		}
		e.orm = orm
	}
	// CLI runs are short lived: a private registry and an in-process cache are enough.
	reg := metrics.NewMetricsRegistry(prometheus.NewRegistry())
	cache := common.NewCacheService(e.cfg.ProjectCacheDuration(), e.cfg.ProjectCacheDuration())
	return api.NewServices(e.orm, cache, e.cfg, reg), nil
}

func (e *env) close() {
	if e.sql != nil {
		_ = e.sql.Close()
	}
	if e.orm != nil {
		if sqlDB, err := e.orm.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	_ = logging.Close()
}
