package services

import (
	"context"

	"abrigo/backend/internal/constants"
	"abrigo/backend/internal/db/repositories"
	"abrigo/backend/internal/logging"
	"abrigo/backend/internal/metrics"
	gormModels "abrigo/backend/internal/models/gorm"
)

// AdotanteService toggles the project-independent Adotante marker. It does not
// consult the gate: granting is self-service and the revoke route is guarded
// by middleware before it reaches here.
type AdotanteService struct {
	users   *UserDirectory
	writer  *roleListWriter
	metrics *metrics.MetricsRegistry
}

func NewAdotanteService(users *UserDirectory, repo *repositories.UserRepository, metricsReg *metrics.MetricsRegistry) *AdotanteService {
	return &AdotanteService{
		users:   users,
		writer:  newRoleListWriter(repo, metricsReg),
		metrics: metricsReg,
	}
}

// GrantAdotante is idempotent: a user who already holds the role is returned unchanged.
func (s *AdotanteService) GrantAdotante(ctx context.Context, userID string) (user *gormModels.User, err error) {
	defer func() { s.metrics.ObserveMembership(constants.RoleAdotante.String(), "grant", outcomeOf(err)) }()

	user, err = s.users.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	written, err := s.writer.add(ctx, user, constants.RoleAdotante)
	if err != nil {
		return nil, err
	}

	logging.Info("Adotante granted", "user_id", userID, "changed", written)
	return user, nil
}

// RevokeAdotante filters the role out and persists, whether or not it was held.
func (s *AdotanteService) RevokeAdotante(ctx context.Context, userID string) (user *gormModels.User, err error) {
	defer func() { s.metrics.ObserveMembership(constants.RoleAdotante.String(), "revoke", outcomeOf(err)) }()

	user, err = s.users.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	held := user.Roles.Has(constants.RoleAdotante)
	if err := s.writer.remove(ctx, user, constants.RoleAdotante); err != nil {
		return nil, err
	}

	logging.Info("Adotante revoked", "user_id", userID, "was_held", held)
	return user, nil
}
