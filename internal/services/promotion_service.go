package services

import (
	"context"

	"abrigo/backend/internal/constants"
	"abrigo/backend/internal/db/repositories"
	"abrigo/backend/internal/logging"
	"abrigo/backend/internal/metrics"
	gormModels "abrigo/backend/internal/models/gorm"
)

// PromotionService grants SuperAdmin. Promotion adds only SuperAdmin; no
// scoped role comes with it.
type PromotionService struct {
	gate    *AuthorizationGate
	users   *UserDirectory
	writer  *roleListWriter
	metrics *metrics.MetricsRegistry
}

func NewPromotionService(
	gate *AuthorizationGate,
	users *UserDirectory,
	repo *repositories.UserRepository,
	metricsReg *metrics.MetricsRegistry,
) *PromotionService {
	return &PromotionService{
		gate:    gate,
		users:   users,
		writer:  newRoleListWriter(repo, metricsReg),
		metrics: metricsReg,
	}
}

// Promote requires a SuperAdmin actor; Administrador is not enough.
func (s *PromotionService) Promote(ctx context.Context, targetUserID, actorID string) (user *gormModels.User, err error) {
	defer func() { s.metrics.ObserveMembership(constants.RoleSuperAdmin.String(), "promote", outcomeOf(err)) }()

	if err := s.gate.Authorize(ctx, actorID, constants.PromoteAllowed, ""); err != nil {
		return nil, err
	}

	return s.grant(ctx, targetUserID, actorID)
}

// Bootstrap grants SuperAdmin without an actor. Only the admin CLI calls it,
// to seed the first SuperAdmin of an installation.
func (s *PromotionService) Bootstrap(ctx context.Context, targetUserID string) (*gormModels.User, error) {
	return s.grant(ctx, targetUserID, "bootstrap")
}

func (s *PromotionService) grant(ctx context.Context, targetUserID, actorID string) (*gormModels.User, error) {
	user, err := s.users.Get(ctx, targetUserID)
	if err != nil {
		return nil, err
	}

	written, err := s.writer.add(ctx, user, constants.RoleSuperAdmin)
	if err != nil {
		return nil, err
	}

	logging.Info("User promoted to SuperAdmin", "user_id", targetUserID, "actor_id", actorID, "changed", written)
	return user, nil
}
