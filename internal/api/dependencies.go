package api

import (
	"abrigo/backend/internal/auth"
	"abrigo/backend/internal/common"
	"abrigo/backend/internal/config"
	"abrigo/backend/internal/db/repositories"
	"abrigo/backend/internal/logging"
	"abrigo/backend/internal/metrics"
	"abrigo/backend/internal/services"

	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"
)

type Repositories struct {
	User    *repositories.UserRepository
	Project *repositories.ProjectRepository
	Keys    *repositories.KeysRepo
}

type Services struct {
	Cache       common.CacheInterface
	Gate        *services.AuthorizationGate
	Users       *services.UserDirectory
	Projects    *services.ProjectDirectory
	Memberships *services.MembershipService
	Adotante    *services.AdotanteService
	Promotion   *services.PromotionService
	Tokens      *auth.TokenManager
}

type Dependencies struct {
	Repo     *Repositories
	Services *Services
	Metrics  *metrics.MetricsRegistry
	SQL      *sqlx.DB
}

// InitDependencies wires repositories and services for the HTTP server.
// sqlDB backs the API key store and the health check; everything else goes
// through gormDB.
func InitDependencies(cfg *config.Config, gormDB *gorm.DB, sqlDB *sqlx.DB, metricsReg *metrics.MetricsRegistry) (*Dependencies, error) {
	var cache common.CacheInterface
	if cfg.CacheBackend == "redis" {
		logging.Info("Using redis project cache", "addr", cfg.RedisAddr())
		cache = common.NewRedisCacheService(common.NewRedisClient(cfg.RedisAddr(), cfg.RedisPassword))
	} else {
		cache = common.NewCacheService(cfg.ProjectCacheDuration(), 2*cfg.ProjectCacheDuration())
	}

	repos := &Repositories{
		User:    repositories.NewUserRepository(gormDB),
		Project: repositories.NewProjectRepository(gormDB),
	}
	if sqlDB != nil {
		repos.Keys = repositories.NewApiKeysRepo(sqlDB)
	}

	svcs := NewServices(gormDB, cache, cfg, metricsReg)
	svcs.Tokens = auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer)

	return &Dependencies{
		Repo:     repos,
		Services: svcs,
		Metrics:  metricsReg,
		SQL:      sqlDB,
	}, nil
}

// NewServices builds the domain services on top of gormDB. The CLI uses it
// directly since it needs no transport.
func NewServices(gormDB *gorm.DB, cache common.CacheInterface, cfg *config.Config, metricsReg *metrics.MetricsRegistry) *Services {
	userRepo := repositories.NewUserRepository(gormDB)

	gate := services.NewAuthorizationGate(userRepo, metricsReg)
	users := services.NewUserDirectory(userRepo)
	projects := services.NewProjectDirectory(
		repositories.NewProjectRepository(gormDB),
		gate,
		cache,
		cfg.ProjectCacheDuration(),
		metricsReg,
	)

	return &Services{
		Cache:       cache,
		Gate:        gate,
		Users:       users,
		Projects:    projects,
		Memberships: services.NewMembershipService(gormDB, gate, users, projects, services.DefaultRoleDescriptors(), metricsReg),
		Adotante:    services.NewAdotanteService(users, userRepo, metricsReg),
		Promotion:   services.NewPromotionService(gate, users, userRepo, metricsReg),
	}
}
