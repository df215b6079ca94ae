package jobs

import (
	"context"
	"fmt"
	"time"

	"abrigo/backend/internal/constants"
	"abrigo/backend/internal/db/repositories"
	"abrigo/backend/internal/logging"
	"abrigo/backend/internal/metrics"
	gormModels "abrigo/backend/internal/models/gorm"
)

const roleAuditPageSize = 200

// DriftChecker is satisfied by services.MembershipService.
type DriftChecker interface {
	RoleDrift(ctx context.Context, user *gormModels.User) (constants.RoleList, bool, error)
}

// RoleAuditJob walks every active user and reports those whose stored role
// list disagrees with their membership rows. It never writes; repair is the
// SuperAdmin reconcile endpoint.
type RoleAuditJob struct {
	users   *repositories.UserRepository
	drift   DriftChecker
	metrics *metrics.MetricsRegistry
}

// NewRoleAuditJob creates a new role audit job instance
func NewRoleAuditJob(users *repositories.UserRepository, drift DriftChecker, metricsReg *metrics.MetricsRegistry) *RoleAuditJob {
	return &RoleAuditJob{
		users:   users,
		drift:   drift,
		metrics: metricsReg,
	}
}

// AuditResult summarizes one pass.
type AuditResult struct {
	Scanned int
	Drifted []string
}

// Run audits all active users once.
func (j *RoleAuditJob) Run(ctx context.Context) (*AuditResult, error) {
	start := time.Now()
	result := &AuditResult{}

	afterID := ""
	for {
		page, err := j.users.ListActivePage(ctx, afterID, roleAuditPageSize)
		if err != nil {
			return nil, fmt.Errorf("role audit: %w", err)
		}
		if len(page) == 0 {
			break
		}

		for i := range page {
			user := &page[i]
			expected, drifted, err := j.drift.RoleDrift(ctx, user)
			if err != nil {
				return nil, fmt.Errorf("role audit %s: %w", user.ID, err)
			}
			result.Scanned++
			if drifted {
				result.Drifted = append(result.Drifted, user.ID)
				logging.Warn("Role list drift",
					"user_id", user.ID,
					"stored", user.Roles.Strings(),
					"expected", expected.Strings(),
				)
			}
		}
		afterID = page[len(page)-1].ID
	}

	j.metrics.SetRoleDrift(len(result.Drifted))
	logging.Info("Role audit finished",
		"scanned", result.Scanned,
		"drifted", len(result.Drifted),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return result, nil
}

// RunScheduled runs the audit now and then every interval until ctx ends.
func (j *RoleAuditJob) RunScheduled(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	if _, err := j.Run(ctx); err != nil {
		logging.Error("Role audit failed", "error", err.Error())
	}

	for {
		select {
		case <-ticker.C:
			if _, err := j.Run(ctx); err != nil {
				logging.Error("Role audit failed", "error", err.Error())
			}
		case <-ctx.Done():
			logging.Info("Role audit shutting down")
			return
		}
	}
}
