package services

import (
	"context"
	"testing"
	"time"

	"abrigo/backend/internal/common"
	"abrigo/backend/internal/constants"
	"abrigo/backend/internal/db/repositories"
	"abrigo/backend/internal/logging"
	"abrigo/backend/internal/metrics"
	gormModels "abrigo/backend/internal/models/gorm"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testEnv struct {
	db          *gorm.DB
	metrics     *metrics.MetricsRegistry
	gate        *AuthorizationGate
	users       *UserDirectory
	projects    *ProjectDirectory
	memberships *MembershipService
	adotante    *AdotanteService
	promotion   *PromotionService
}

// setupTestDB opens a private in-memory SQLite database. A single connection
// keeps every query (including errgroup fan-out) on the same memory database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "failed to open test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(gormModels.AllModels()...), "failed to migrate")
	return db
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logging.SetLogger(zap.NewNop().Sugar())

	db := setupTestDB(t)
	metricsReg := metrics.NewMetricsRegistry(prometheus.NewRegistry())

	userRepo := repositories.NewUserRepository(db)
	gate := NewAuthorizationGate(userRepo, metricsReg)
	users := NewUserDirectory(userRepo)
	projects := NewProjectDirectory(
		repositories.NewProjectRepository(db),
		gate,
		common.NewCacheService(time.Minute, time.Minute),
		time.Minute,
		metricsReg,
	)

	return &testEnv{
		db:          db,
		metrics:     metricsReg,
		gate:        gate,
		users:       users,
		projects:    projects,
		memberships: NewMembershipService(db, gate, users, projects, DefaultRoleDescriptors(), metricsReg),
		adotante:    NewAdotanteService(users, userRepo, metricsReg),
		promotion:   NewPromotionService(gate, users, userRepo, metricsReg),
	}
}

func (e *testEnv) seedUser(t *testing.T, roles ...constants.Role) *gormModels.User {
	t.Helper()
	user := &gormModels.User{
		ID:         uuid.New().String(),
		Name:       "user " + roleNames(roles),
		NationalID: uuid.New().String(),
		Roles:      constants.RoleList(roles),
		IsActive:   true,
	}
	require.NoError(t, e.db.Create(user).Error)
	return user
}

func (e *testEnv) seedProject(t *testing.T) *gormModels.Project {
	t.Helper()
	project := &gormModels.Project{
		ID:       uuid.New().String(),
		Name:     "Abrigo " + uuid.New().String()[:8],
		IsActive: true,
	}
	require.NoError(t, e.db.Create(project).Error)
	return project
}

func (e *testEnv) reloadUser(t *testing.T, id string) *gormModels.User {
	t.Helper()
	var user gormModels.User
	require.NoError(t, e.db.Where("id = ?", id).First(&user).Error)
	return &user
}

func (e *testEnv) countRows(t *testing.T, model any, userID, projectID string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, e.db.Model(model).
		Where("user_id = ? AND project_id = ?", userID, projectID).
		Count(&n).Error)
	return n
}

func roleNames(roles []constants.Role) string {
	return constants.NewRoleSet(roles...).String()
}

func countRole(list constants.RoleList, role constants.Role) int {
	n := 0
	for _, r := range list {
		if r == role {
			n++
		}
	}
	return n
}

var ctx = context.Background()
