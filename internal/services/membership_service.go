package services

import (
	"context"
	"errors"
	"fmt"

	"abrigo/backend/internal/constants"
	"abrigo/backend/internal/db/repositories"
	"abrigo/backend/internal/logging"
	"abrigo/backend/internal/metrics"
	"abrigo/backend/internal/models/entities"
	gormModels "abrigo/backend/internal/models/gorm"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// MembershipService is the only writer of the per-role tables and, together
// with AdotanteService and PromotionService, of users.roles.
type MembershipService struct {
	db          *gorm.DB
	gate        *AuthorizationGate
	users       *UserDirectory
	projects    *ProjectDirectory
	descriptors map[constants.Role]RoleDescriptor
	stores      map[constants.Role]MembershipStore
	metrics     *metrics.MetricsRegistry
}

func NewMembershipService(
	db *gorm.DB,
	gate *AuthorizationGate,
	users *UserDirectory,
	projects *ProjectDirectory,
	descriptors []RoleDescriptor,
	metricsReg *metrics.MetricsRegistry,
) *MembershipService {
	s := &MembershipService{
		db:          db,
		gate:        gate,
		users:       users,
		projects:    projects,
		descriptors: make(map[constants.Role]RoleDescriptor, len(descriptors)),
		stores:      make(map[constants.Role]MembershipStore, len(descriptors)),
		metrics:     metricsReg,
	}
	for _, d := range descriptors {
		s.descriptors[d.Role] = d
		s.stores[d.Role] = d.NewStore(db)
	}
	return s
}

func (s *MembershipService) descriptor(role constants.Role) (RoleDescriptor, error) {
	d, ok := s.descriptors[role]
	if !ok {
		return RoleDescriptor{}, fmt.Errorf("%s is not a scoped role: %w", role, constants.ErrValidation)
	}
	return d, nil
}

func requireIDs(userID, projectID string) error {
	if userID == "" {
		return fmt.Errorf("%s: %w", constants.MsgMissingUserID, constants.ErrValidation)
	}
	if projectID == "" {
		return fmt.Errorf("%s: %w", constants.MsgMissingProjectID, constants.ErrValidation)
	}
	return nil
}

// outcomeOf is the metrics label for an operation result.
func outcomeOf(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, constants.ErrForbidden), errors.Is(err, constants.ErrActorNotFound):
		return "denied"
	case errors.Is(err, constants.ErrUserNotFound),
		errors.Is(err, constants.ErrProjectNotFound),
		errors.Is(err, constants.ErrMembershipNotFound):
		return "not_found"
	case errors.Is(err, constants.ErrAlreadyMember):
		return "conflict"
	case errors.Is(err, constants.ErrValidation):
		return "invalid"
	}
	return "error"
}

// Grant creates the (userID, projectID) row of role and appends role to the
// user's role list when absent. A second grant of the same pair fails with
// ErrAlreadyMember.
func (s *MembershipService) Grant(
	ctx context.Context,
	role constants.Role,
	userID, projectID string,
	attrs map[string]any,
	actorID string,
) (m *entities.Membership, err error) {
	defer func() { s.metrics.ObserveMembership(role.String(), "grant", outcomeOf(err)) }()

	desc, err := s.descriptor(role)
	if err != nil {
		return nil, err
	}
	if err := requireIDs(userID, projectID); err != nil {
		return nil, err
	}

	if err := s.gate.Authorize(ctx, actorID, desc.Policy.Create, projectID); err != nil {
		return nil, err
	}

	supplied, err := desc.Normalize(attrs)
	if err != nil {
		return nil, err
	}

	if _, err := s.activeUser(ctx, userID); err != nil {
		return nil, err
	}
	if _, err := s.activeProject(ctx, projectID); err != nil {
		return nil, err
	}

	fields := desc.Defaults()
	for k, v := range supplied {
		fields[k] = v
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		store := desc.NewStore(tx)
		users := repositories.NewUserRepository(tx)

		existing, err := store.FindByUserAndProject(ctx, userID, projectID)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("%s (%s, %s): %w", role, userID, projectID, constants.ErrAlreadyMember)
		}

		// Re-read inside the transaction so the append starts from the latest list.
		user, err := users.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		if user == nil {
			return fmt.Errorf("user %s: %w", userID, constants.ErrUserNotFound)
		}

		if _, err := newRoleListWriter(users, s.metrics).add(ctx, user, role); err != nil {
			return err
		}

		m, err = store.Insert(ctx, entities.Membership{
			ID:         uuid.New().String(),
			Role:       role,
			UserID:     userID,
			ProjectID:  projectID,
			Attributes: fields,
		})
		if errors.Is(err, repositories.ErrDuplicate) {
			return fmt.Errorf("%s (%s, %s): %w", role, userID, projectID, constants.ErrAlreadyMember)
		}
		return err
	})
	if err != nil {
		logging.Warn("Membership grant failed",
			"role", role, "user_id", userID, "project_id", projectID, "actor_id", actorID, "error", err.Error())
		return nil, err
	}

	logging.Info("Membership granted",
		"role", role, "user_id", userID, "project_id", projectID, "actor_id", actorID)
	return m, nil
}

// Update merges the supplied attributes onto the existing row. Fields that are
// not supplied keep their stored values and the role list is left alone.
func (s *MembershipService) Update(
	ctx context.Context,
	role constants.Role,
	userID, projectID string,
	attrs map[string]any,
	actorID string,
) (m *entities.Membership, err error) {
	defer func() { s.metrics.ObserveMembership(role.String(), "update", outcomeOf(err)) }()

	desc, err := s.descriptor(role)
	if err != nil {
		return nil, err
	}
	if err := requireIDs(userID, projectID); err != nil {
		return nil, err
	}

	if err := s.gate.Authorize(ctx, actorID, desc.Policy.Update, projectID); err != nil {
		return nil, err
	}

	supplied, err := desc.Normalize(attrs)
	if err != nil {
		return nil, err
	}

	store := s.stores[role]
	existing, err := store.FindByUserAndProject(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("%s (%s, %s): %w", role, userID, projectID, constants.ErrMembershipNotFound)
	}

	m, err = store.Update(ctx, userID, projectID, supplied)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, fmt.Errorf("%s (%s, %s): %w", role, userID, projectID, constants.ErrMembershipNotFound)
	}

	logging.Info("Membership updated",
		"role", role, "user_id", userID, "project_id", projectID, "actor_id", actorID, "fields", len(supplied))
	return m, nil
}

// Revoke deletes the row. The role stays in users.roles; ReconcileRoles is the
// explicit way to drop roles that no longer have any row.
func (s *MembershipService) Revoke(
	ctx context.Context,
	role constants.Role,
	userID, projectID string,
	actorID string,
) (err error) {
	defer func() { s.metrics.ObserveMembership(role.String(), "revoke", outcomeOf(err)) }()

	desc, err := s.descriptor(role)
	if err != nil {
		return err
	}
	if err := requireIDs(userID, projectID); err != nil {
		return err
	}

	if err := s.gate.Authorize(ctx, actorID, desc.Policy.Delete, projectID); err != nil {
		return err
	}

	store := s.stores[role]
	existing, err := store.FindByUserAndProject(ctx, userID, projectID)
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("%s (%s, %s): %w", role, userID, projectID, constants.ErrMembershipNotFound)
	}

	deleted, err := store.Delete(ctx, userID, projectID)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("%s (%s, %s): %w", role, userID, projectID, constants.ErrMembershipNotFound)
	}

	logging.Info("Membership revoked",
		"role", role, "user_id", userID, "project_id", projectID, "actor_id", actorID)
	return nil
}

// Get returns the row of (userID, projectID) or ErrMembershipNotFound.
func (s *MembershipService) Get(ctx context.Context, role constants.Role, userID, projectID string) (*entities.Membership, error) {
	if _, err := s.descriptor(role); err != nil {
		return nil, err
	}
	if err := requireIDs(userID, projectID); err != nil {
		return nil, err
	}

	m, err := s.stores[role].FindByUserAndProject(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, fmt.Errorf("%s (%s, %s): %w", role, userID, projectID, constants.ErrMembershipNotFound)
	}
	return m, nil
}

func (s *MembershipService) ListByProject(ctx context.Context, role constants.Role, projectID string) ([]entities.Membership, error) {
	if _, err := s.descriptor(role); err != nil {
		return nil, err
	}
	if _, err := s.projects.Get(ctx, projectID); err != nil {
		return nil, err
	}
	return s.stores[role].ListByProject(ctx, projectID)
}

func (s *MembershipService) ListByUser(ctx context.Context, role constants.Role, userID string) ([]entities.Membership, error) {
	if _, err := s.descriptor(role); err != nil {
		return nil, err
	}
	if _, err := s.users.Get(ctx, userID); err != nil {
		return nil, err
	}
	return s.stores[role].ListByUser(ctx, userID)
}

// ListAllForUser returns the user's rows across every scoped role, grouped in
// vocabulary order.
func (s *MembershipService) ListAllForUser(ctx context.Context, userID string) ([]entities.Membership, error) {
	if _, err := s.users.Get(ctx, userID); err != nil {
		return nil, err
	}

	byRole, err := s.collectByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := []entities.Membership{}
	for _, role := range constants.ScopedRoles {
		out = append(out, byRole[role]...)
	}
	return out, nil
}

// collectByUser queries every store concurrently.
func (s *MembershipService) collectByUser(ctx context.Context, userID string) (map[constants.Role][]entities.Membership, error) {
	roles := make([]constants.Role, 0, len(s.stores))
	for _, role := range constants.ScopedRoles {
		if _, ok := s.stores[role]; ok {
			roles = append(roles, role)
		}
	}

	results := make([][]entities.Membership, len(roles))
	g, gctx := errgroup.WithContext(ctx)
	for i, role := range roles {
		i := i
		store := s.stores[role]
		g.Go(func() error {
			rows, err := store.ListByUser(gctx, userID)
			if err != nil {
				return err
			}
			results[i] = rows
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byRole := make(map[constants.Role][]entities.Membership, len(roles))
	for i, role := range roles {
		byRole[role] = results[i]
	}
	return byRole, nil
}

// ReconcileRoles rebuilds users.roles from the membership tables: every scoped
// role with at least one row, plus the project-independent roles already held.
func (s *MembershipService) ReconcileRoles(ctx context.Context, userID, actorID string) (user *gormModels.User, err error) {
	defer func() { s.metrics.ObserveMembership("*", "reconcile", outcomeOf(err)) }()

	if err := s.gate.Authorize(ctx, actorID, constants.ReconcileAllowed, ""); err != nil {
		return nil, err
	}

	user, err = s.users.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	next, err := s.expectedRoles(ctx, user)
	if err != nil {
		return nil, err
	}

	before, _ := user.Roles.Value()
	after, _ := next.Value()
	if before == after {
		return user, nil
	}

	if err := newRoleListWriter(repositories.NewUserRepository(s.db), s.metrics).replace(ctx, user, next); err != nil {
		return nil, err
	}

	logging.Info("Role list reconciled",
		"user_id", userID, "actor_id", actorID, "before", before, "after", after)
	return user, nil
}

// RoleDrift compares the stored role list with the one ReconcileRoles would
// write. It is read only and ungated; the audit job calls it.
func (s *MembershipService) RoleDrift(ctx context.Context, user *gormModels.User) (expected constants.RoleList, drifted bool, err error) {
	expected, err = s.expectedRoles(ctx, user)
	if err != nil {
		return nil, false, err
	}
	before, _ := user.Roles.Value()
	after, _ := expected.Value()
	return expected, before != after, nil
}

func (s *MembershipService) expectedRoles(ctx context.Context, user *gormModels.User) (constants.RoleList, error) {
	byRole, err := s.collectByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	next := constants.RoleList{}
	for _, role := range constants.AllRoles {
		if role.IsScoped() {
			if len(byRole[role]) > 0 {
				next = append(next, role)
			}
			continue
		}
		if user.Roles.Has(role) {
			next = append(next, role)
		}
	}
	return next, nil
}

func (s *MembershipService) activeUser(ctx context.Context, userID string) (*gormModels.User, error) {
	user, err := s.users.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, fmt.Errorf("user %s is inactive: %w", userID, constants.ErrUserNotFound)
	}
	return user, nil
}

func (s *MembershipService) activeProject(ctx context.Context, projectID string) (*gormModels.Project, error) {
	project, err := s.projects.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !project.IsActive {
		return nil, fmt.Errorf("project %s is inactive: %w", projectID, constants.ErrProjectNotFound)
	}
	return project, nil
}
