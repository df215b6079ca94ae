package repositories

import (
	"context"
	"errors"
	"fmt"

	"abrigo/backend/internal/constants"
	"abrigo/backend/internal/models/entities"

	"gorm.io/gorm"
)

// membershipRow is satisfied by the pointer of every per-role GORM model.
type membershipRow[T any] interface {
	*T
	TableName() string
	ToMembership() entities.Membership
	ApplyMembership(entities.Membership)
}

// MembershipRepository is the membership store of one scoped role. One instance
// exists per role table; all of them share this implementation.
type MembershipRepository[T any, P membershipRow[T]] struct {
	db   *gorm.DB
	role constants.Role
}

// NewMembershipRepository creates the store backed by T's table,
// e.g. NewMembershipRepository[gormModels.Funcionario](db).
func NewMembershipRepository[T any, P membershipRow[T]](db *gorm.DB) *MembershipRepository[T, P] {
	var zero T
	return &MembershipRepository[T, P]{
		db:   db,
		role: P(&zero).ToMembership().Role,
	}
}

// Role returns the scoped role this store materializes
func (r *MembershipRepository[T, P]) Role() constants.Role {
	return r.role
}

func (r *MembershipRepository[T, P]) table() string {
	var zero T
	return P(&zero).TableName()
}

// FindByUserAndProject returns the row for (userID, projectID), or (nil, nil) if absent
func (r *MembershipRepository[T, P]) FindByUserAndProject(ctx context.Context, userID, projectID string) (*entities.Membership, error) {
	var row T

	err := r.db.WithContext(ctx).
		Where("user_id = ? AND project_id = ?", userID, projectID).
		First(P(&row)).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch %s membership: %w", r.role, err)
	}

	m := P(&row).ToMembership()
	return &m, nil
}

// ListByProject returns every row of the project, oldest first
func (r *MembershipRepository[T, P]) ListByProject(ctx context.Context, projectID string) ([]entities.Membership, error) {
	return r.list(ctx, "project_id = ?", projectID)
}

// ListByUser returns every row of the user, oldest first
func (r *MembershipRepository[T, P]) ListByUser(ctx context.Context, userID string) ([]entities.Membership, error) {
	return r.list(ctx, "user_id = ?", userID)
}

func (r *MembershipRepository[T, P]) list(ctx context.Context, where string, arg string) ([]entities.Membership, error) {
	var rows []T

	err := r.db.WithContext(ctx).
		Table(r.table()).
		Where(where, arg).
		Order("created_at ASC").
		Find(&rows).Error

	if err != nil {
		return nil, fmt.Errorf("failed to list %s memberships: %w", r.role, err)
	}

	out := make([]entities.Membership, 0, len(rows))
	for i := range rows {
		out = append(out, P(&rows[i]).ToMembership())
	}
	return out, nil
}

// Insert persists a new row. The (user_id, project_id) unique index turns a
// concurrent duplicate into ErrDuplicate.
func (r *MembershipRepository[T, P]) Insert(ctx context.Context, m entities.Membership) (*entities.Membership, error) {
	var row T
	P(&row).ApplyMembership(m)

	if err := r.db.WithContext(ctx).Create(P(&row)).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("failed to create %s membership: %w", r.role, err)
	}

	created := P(&row).ToMembership()
	return &created, nil
}

// Update changes only the given columns. Returns (nil, nil) if the row is absent.
func (r *MembershipRepository[T, P]) Update(ctx context.Context, userID, projectID string, columns map[string]any) (*entities.Membership, error) {
	if len(columns) > 0 {
		var zero T
		result := r.db.WithContext(ctx).
			Model(P(&zero)).
			Where("user_id = ? AND project_id = ?", userID, projectID).
			Updates(columns)

		if result.Error != nil {
			return nil, fmt.Errorf("failed to update %s membership: %w", r.role, result.Error)
		}
		if result.RowsAffected == 0 {
			return nil, nil
		}
	}

	return r.FindByUserAndProject(ctx, userID, projectID)
}

// Delete hard-deletes the row and reports whether one existed
func (r *MembershipRepository[T, P]) Delete(ctx context.Context, userID, projectID string) (bool, error) {
	var zero T
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND project_id = ?", userID, projectID).
		Delete(P(&zero))

	if result.Error != nil {
		return false, fmt.Errorf("failed to delete %s membership: %w", r.role, result.Error)
	}
	return result.RowsAffected > 0, nil
}
