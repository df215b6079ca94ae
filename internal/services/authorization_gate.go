package services

import (
	"context"
	"fmt"

	"abrigo/backend/internal/constants"
	"abrigo/backend/internal/logging"
	"abrigo/backend/internal/metrics"
	gormModels "abrigo/backend/internal/models/gorm"
)

// UserLookup is the read side of the user store the gate needs.
type UserLookup interface {
	GetByID(ctx context.Context, id string) (*gormModels.User, error)
}

// AuthorizationGate decides whether an actor may perform an operation.
// It has no side effects besides logging and metrics.
type AuthorizationGate struct {
	users   UserLookup
	metrics *metrics.MetricsRegistry
}

func NewAuthorizationGate(users UserLookup, metricsReg *metrics.MetricsRegistry) *AuthorizationGate {
	return &AuthorizationGate{users: users, metrics: metricsReg}
}

// Authorize allows iff the actor exists, is active, and holds at least one role
// of allowed. targetProjectID only enriches the log line; allow-sets are global.
func (g *AuthorizationGate) Authorize(ctx context.Context, actorID string, allowed constants.RoleSet, targetProjectID string) error {
	if actorID == "" {
		g.metrics.ObserveDecision("actor_not_found")
		return fmt.Errorf("empty actor id: %w", constants.ErrActorNotFound)
	}

	actor, err := g.users.GetByID(ctx, actorID)
	if err != nil {
		g.metrics.ObserveDecision("error")
		return fmt.Errorf("failed to load actor: %w", err)
	}
	if actor == nil || !actor.IsActive {
		g.metrics.ObserveDecision("actor_not_found")
		logging.Warn("Authorization denied: unknown actor",
			"actor_id", actorID,
			"project_id", targetProjectID,
		)
		return fmt.Errorf("actor %s: %w", actorID, constants.ErrActorNotFound)
	}

	if !allowed.Intersects(actor.Roles) {
		g.metrics.ObserveDecision("forbidden")
		logging.Warn("Authorization denied: role mismatch",
			"actor_id", actorID,
			"actor_roles", actor.Roles.Strings(),
			"allowed", allowed.String(),
			"project_id", targetProjectID,
		)
		return fmt.Errorf("actor roles %v not in {%s}: %w", actor.Roles.Strings(), allowed.String(), constants.ErrForbidden)
	}

	g.metrics.ObserveDecision("allowed")
	logging.Debug("Authorization allowed",
		"actor_id", actorID,
		"allowed", allowed.String(),
		"project_id", targetProjectID,
	)
	return nil
}
