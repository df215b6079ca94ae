package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"abrigo/backend/internal/constants"
	"abrigo/backend/internal/db/repositories"
	"abrigo/backend/internal/logging"
	"abrigo/backend/internal/metrics"
	gormModels "abrigo/backend/internal/models/gorm"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RegisterUserInput struct {
	Name       string
	Email      string
	NationalID string
	Phone      string
}

// UserDirectory owns the identity record. Reads and registration are public;
// the role list is only written through roleListWriter.
type UserDirectory struct {
	repo *repositories.UserRepository
}

func NewUserDirectory(repo *repositories.UserRepository) *UserDirectory {
	return &UserDirectory{repo: repo}
}

// Register creates an active user with an empty role list.
func (d *UserDirectory) Register(ctx context.Context, in RegisterUserInput) (*gormModels.User, error) {
	in.NationalID = strings.TrimSpace(in.NationalID)
	in.Name = strings.TrimSpace(in.Name)
	if in.NationalID == "" || in.Name == "" {
		return nil, fmt.Errorf("name and national id are required: %w", constants.ErrValidation)
	}

	existing, err := d.repo.GetByNationalID(ctx, in.NationalID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("national id already registered: %w", constants.ErrAlreadyExists)
	}

	user := &gormModels.User{
		ID:         uuid.New().String(),
		Name:       in.Name,
		Email:      strings.TrimSpace(in.Email),
		NationalID: in.NationalID,
		Phone:      strings.TrimSpace(in.Phone),
		Roles:      constants.RoleList{},
		IsActive:   true,
	}

	if err := d.repo.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, fmt.Errorf("national id already registered: %w", constants.ErrAlreadyExists)
		}
		return nil, err
	}

	logging.Info("User registered", "user_id", user.ID)
	return user, nil
}

// Get returns the user or ErrUserNotFound.
func (d *UserDirectory) Get(ctx context.Context, id string) (*gormModels.User, error) {
	if id == "" {
		return nil, fmt.Errorf("%s: %w", constants.MsgMissingUserID, constants.ErrValidation)
	}

	user, err := d.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user %s: %w", id, constants.ErrUserNotFound)
	}
	return user, nil
}

// SetActive is the soft delete; users are never removed.
func (d *UserDirectory) SetActive(ctx context.Context, id string, active bool) (*gormModels.User, error) {
	if _, err := d.Get(ctx, id); err != nil {
		return nil, err
	}
	if err := d.repo.SetActive(ctx, id, active); err != nil {
		return nil, err
	}
	logging.Info("User status changed", "user_id", id, "is_active", active)
	return d.Get(ctx, id)
}

// roleListWriter is the single write path for users.roles. Callers inside a
// transaction build it over a tx-bound repository.
type roleListWriter struct {
	repo    *repositories.UserRepository
	metrics *metrics.MetricsRegistry
}

func newRoleListWriter(repo *repositories.UserRepository, metricsReg *metrics.MetricsRegistry) *roleListWriter {
	return &roleListWriter{repo: repo, metrics: metricsReg}
}

// add appends role when absent and reports whether a write happened.
func (w *roleListWriter) add(ctx context.Context, user *gormModels.User, role constants.Role) (bool, error) {
	if user.Roles.Has(role) {
		return false, nil
	}
	if err := w.write(ctx, user, user.Roles.With(role)); err != nil {
		return false, err
	}
	w.metrics.ObserveRoleListWrite(role.String(), "append")
	return true, nil
}

// remove always persists the filtered list, present or not.
func (w *roleListWriter) remove(ctx context.Context, user *gormModels.User, role constants.Role) error {
	if err := w.write(ctx, user, user.Roles.Without(role)); err != nil {
		return err
	}
	w.metrics.ObserveRoleListWrite(role.String(), "remove")
	return nil
}

func (w *roleListWriter) replace(ctx context.Context, user *gormModels.User, roles constants.RoleList) error {
	if err := w.write(ctx, user, roles); err != nil {
		return err
	}
	w.metrics.ObserveRoleListWrite("*", "rebuild")
	return nil
}

func (w *roleListWriter) write(ctx context.Context, user *gormModels.User, roles constants.RoleList) error {
	if err := w.repo.ReplaceRoles(ctx, user.ID, roles); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("user %s: %w", user.ID, constants.ErrUserNotFound)
		}
		return err
	}
	user.Roles = roles
	return nil
}
