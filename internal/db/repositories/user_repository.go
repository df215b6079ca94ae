package repositories

import (
	"context"
	"errors"
	"fmt"

	"abrigo/backend/internal/constants"
	gormModels "abrigo/backend/internal/models/gorm"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new GORM-based user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetByID retrieves a user by ID. Returns (nil, nil) when no row exists.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*gormModels.User, error) {
	var user gormModels.User

	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&user).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}

	return &user, nil
}

// GetByNationalID retrieves a user by CPF. Returns (nil, nil) when no row exists.
func (r *UserRepository) GetByNationalID(ctx context.Context, nationalID string) (*gormModels.User, error) {
	var user gormModels.User

	err := r.db.WithContext(ctx).
		Where("cpf = ?", nationalID).
		First(&user).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch user by cpf: %w", err)
	}

	return &user, nil
}

// Create inserts a new user. A CPF collision yields ErrDuplicate.
func (r *UserRepository) Create(ctx context.Context, user *gormModels.User) error {
	err := r.db.WithContext(ctx).Create(user).Error
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// ReplaceRoles overwrites the whole role list column. It is the only write path
// for users.roles and is reserved for the role synchronization services.
func (r *UserRepository) ReplaceRoles(ctx context.Context, id string, roles constants.RoleList) error {
	res := r.db.WithContext(ctx).
		Model(&gormModels.User{}).
		Where("id = ?", id).
		Update("roles", roles)

	if res.Error != nil {
		return fmt.Errorf("failed to update user roles: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SetActive toggles the soft-delete flag.
func (r *UserRepository) SetActive(ctx context.Context, id string, active bool) error {
	err := r.db.WithContext(ctx).
		Model(&gormModels.User{}).
		Where("id = ?", id).
		Update("is_active", active).Error

	if err != nil {
		return fmt.Errorf("failed to update user status: %w", err)
	}
	return nil
}

// ListActivePage returns up to limit active users with id > afterID, ordered
// by id, for keyset paging over the whole table.
func (r *UserRepository) ListActivePage(ctx context.Context, afterID string, limit int) ([]gormModels.User, error) {
	var users []gormModels.User

	err := r.db.WithContext(ctx).
		Where("is_active = ? AND id > ?", true, afterID).
		Order("id").
		Limit(limit).
		Find(&users).Error

	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}
