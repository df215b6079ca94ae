package jobs

import (
	"context"
	"time"

	"abrigo/backend/internal/db/repositories"
	"abrigo/backend/internal/metrics"
)

// InitializeJobs starts the background jobs. A zero interval leaves the role
// audit off and returns nil.
func InitializeJobs(
	ctx context.Context,
	users *repositories.UserRepository,
	drift DriftChecker,
	metricsReg *metrics.MetricsRegistry,
	auditInterval time.Duration,
) *RoleAuditJob {
	if auditInterval <= 0 {
		return nil
	}

	audit := NewRoleAuditJob(users, drift, metricsReg)

	// Start scheduled audit in background
	go audit.RunScheduled(ctx, auditInterval)

	return audit
}
