package jobs

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"abrigo/backend/internal/constants"
	"abrigo/backend/internal/db/repositories"
	"abrigo/backend/internal/logging"
	"abrigo/backend/internal/metrics"
	gormModels "abrigo/backend/internal/models/gorm"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// stubDrift marks users whose name starts with "drift" as drifted.
type stubDrift struct {
	err   error
	calls int
}

func (s *stubDrift) RoleDrift(ctx context.Context, user *gormModels.User) (constants.RoleList, bool, error) {
	s.calls++
	if s.err != nil {
		return nil, false, s.err
	}
	if len(user.Name) >= 5 && user.Name[:5] == "drift" {
		return constants.RoleList{}, true, nil
	}
	return user.Roles, false, nil
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(&gormModels.User{}))
	return db
}

func seedUsers(t *testing.T, db *gorm.DB, n int, prefix string, active bool) {
	t.Helper()
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("%s-%04d", prefix, i)
		require.NoError(t, db.Create(&gormModels.User{
			ID:         id,
			Name:       prefix,
			NationalID: id,
			Roles:      constants.RoleList{constants.RoleDoador},
			IsActive:   true,
		}).Error)
		if !active {
			require.NoError(t, db.Model(&gormModels.User{}).Where("id = ?", id).Update("is_active", false).Error)
		}
	}
}

func TestRoleAuditJob_Run(t *testing.T) {
	logging.SetLogger(zap.NewNop().Sugar())
	db := setupTestDB(t)

	seedUsers(t, db, roleAuditPageSize+5, "clean", true)
	seedUsers(t, db, 3, "drift", true)
	seedUsers(t, db, 2, "gone", false)

	reg := metrics.NewMetricsRegistry(prometheus.NewRegistry())
	drift := &stubDrift{}
	job := NewRoleAuditJob(repositories.NewUserRepository(db), drift, reg)

	result, err := job.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, roleAuditPageSize+8, result.Scanned)
	assert.Len(t, result.Drifted, 3)
	assert.Equal(t, roleAuditPageSize+8, drift.calls)
	assert.Equal(t, 3.0, testutil.ToFloat64(reg.RoleDriftUsers))
}

func TestRoleAuditJob_RunPropagatesErrors(t *testing.T) {
	logging.SetLogger(zap.NewNop().Sugar())
	db := setupTestDB(t)
	seedUsers(t, db, 1, "clean", true)

	job := NewRoleAuditJob(repositories.NewUserRepository(db), &stubDrift{err: errors.New("boom")}, nil)

	_, err := job.Run(context.Background())
	assert.Error(t, err)
}

func TestInitializeJobs_DisabledWithZeroInterval(t *testing.T) {
	assert.Nil(t, InitializeJobs(context.Background(), nil, nil, nil, 0))
}
