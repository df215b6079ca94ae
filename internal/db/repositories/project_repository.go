package repositories

import (
	"context"
	"errors"
	"fmt"

	gormModels "abrigo/backend/internal/models/gorm"

	"gorm.io/gorm"
)

// ProjectRepository handles projects table operations using GORM
type ProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new GORM-based project repository
func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// GetByID retrieves a project by its ID. Returns (nil, nil) when no row exists.
func (r *ProjectRepository) GetByID(ctx context.Context, projectID string) (*gormModels.Project, error) {
	var project gormModels.Project

	err := r.db.WithContext(ctx).
		Where("id = ?", projectID).
		First(&project).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch project: %w", err)
	}

	return &project, nil
}

// List retrieves projects ordered by name, optionally only active ones
func (r *ProjectRepository) List(ctx context.Context, activeOnly bool) ([]gormModels.Project, error) {
	var projects []gormModels.Project

	q := r.db.WithContext(ctx).Order("name ASC")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}

	if err := q.Find(&projects).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch projects: %w", err)
	}

	return projects, nil
}

// Create inserts a new project
func (r *ProjectRepository) Create(ctx context.Context, project *gormModels.Project) error {
	if err := r.db.WithContext(ctx).Create(project).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to create project: %w", err)
	}
	return nil
}

// Update applies a partial update keyed by column name. Returns (nil, nil)
// when the project does not exist.
func (r *ProjectRepository) Update(ctx context.Context, projectID string, columns map[string]any) (*gormModels.Project, error) {
	if len(columns) > 0 {
		result := r.db.WithContext(ctx).
			Model(&gormModels.Project{}).
			Where("id = ?", projectID).
			Updates(columns)

		if result.Error != nil {
			return nil, fmt.Errorf("failed to update project: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return nil, nil
		}
	}

	return r.GetByID(ctx, projectID)
}
