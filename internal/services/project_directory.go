package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"abrigo/backend/internal/common"
	"abrigo/backend/internal/constants"
	"abrigo/backend/internal/db/repositories"
	"abrigo/backend/internal/logging"
	"abrigo/backend/internal/metrics"
	gormModels "abrigo/backend/internal/models/gorm"

	"github.com/google/uuid"
)

// errProjectMissing keeps the cache loader from storing a miss.
var errProjectMissing = errors.New("project missing")

type ProjectInput struct {
	Name      string
	Email     string
	Phone     string
	AddressID *string
}

// ProjectPatch carries only the fields a caller wants to change.
type ProjectPatch struct {
	Name      *string
	Email     *string
	Phone     *string
	AddressID *string
}

func (p ProjectPatch) columns() map[string]any {
	cols := map[string]any{}
	if p.Name != nil {
		cols["name"] = strings.TrimSpace(*p.Name)
	}
	if p.Email != nil {
		cols["email"] = strings.TrimSpace(*p.Email)
	}
	if p.Phone != nil {
		cols["phone"] = strings.TrimSpace(*p.Phone)
	}
	if p.AddressID != nil {
		cols["address_id"] = *p.AddressID
	}
	return cols
}

// ProjectDirectory owns organization records. Lookups are cached because every
// grant resolves its project.
type ProjectDirectory struct {
	repo    *repositories.ProjectRepository
	gate    *AuthorizationGate
	cache   common.CacheInterface
	ttl     time.Duration
	metrics *metrics.MetricsRegistry
}

func NewProjectDirectory(
	repo *repositories.ProjectRepository,
	gate *AuthorizationGate,
	cache common.CacheInterface,
	ttl time.Duration,
	metricsReg *metrics.MetricsRegistry,
) *ProjectDirectory {
	return &ProjectDirectory{
		repo:    repo,
		gate:    gate,
		cache:   cache,
		ttl:     ttl,
		metrics: metricsReg,
	}
}

func projectCacheKey(id string) string {
	return string(constants.CachePrefixProject) + id
}

// Get returns the project or ErrProjectNotFound.
func (d *ProjectDirectory) Get(ctx context.Context, id string) (*gormModels.Project, error) {
	if id == "" {
		return nil, fmt.Errorf("%s: %w", constants.MsgMissingProjectID, constants.ErrValidation)
	}

	hit := true
	val, err := d.cache.GetOrSet(projectCacheKey(id), d.ttl, func() (any, error) {
		hit = false
		project, err := d.repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if project == nil {
			return nil, errProjectMissing
		}
		data, err := json.Marshal(project)
		if err != nil {
			return nil, err
		}
		return string(data), nil
	})
	d.metrics.ObserveCache(string(constants.CachePrefixProject), hit)

	if errors.Is(err, errProjectMissing) {
		return nil, fmt.Errorf("project %s: %w", id, constants.ErrProjectNotFound)
	}
	if err != nil {
		return nil, err
	}

	raw, ok := val.(string)
	if !ok {
		d.cache.Delete(projectCacheKey(id))
		return nil, fmt.Errorf("unexpected cached project type %T", val)
	}

	var project gormModels.Project
	if err := json.Unmarshal([]byte(raw), &project); err != nil {
		d.cache.Delete(projectCacheKey(id))
		return nil, fmt.Errorf("failed to decode cached project: %w", err)
	}
	return &project, nil
}

// Warm loads every active project into the cache and returns how many were
// stored.
func (d *ProjectDirectory) Warm(ctx context.Context) (int, error) {
	projects, err := d.repo.List(ctx, true)
	if err != nil {
		return 0, err
	}

	for i := range projects {
		data, err := json.Marshal(&projects[i])
		if err != nil {
			return i, err
		}
		d.cache.Set(projectCacheKey(projects[i].ID), string(data), d.ttl)
	}
	return len(projects), nil
}

func (d *ProjectDirectory) List(ctx context.Context, activeOnly bool) ([]gormModels.Project, error) {
	return d.repo.List(ctx, activeOnly)
}

func (d *ProjectDirectory) Create(ctx context.Context, actorID string, in ProjectInput) (*gormModels.Project, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("project name is required: %w", constants.ErrValidation)
	}

	if err := d.gate.Authorize(ctx, actorID, constants.ProjectWriteAllowed, ""); err != nil {
		return nil, err
	}

	project := &gormModels.Project{
		ID:        uuid.New().String(),
		Name:      name,
		Email:     strings.TrimSpace(in.Email),
		Phone:     strings.TrimSpace(in.Phone),
		AddressID: in.AddressID,
		IsActive:  true,
	}
	if err := d.repo.Create(ctx, project); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, fmt.Errorf("project %s: %w", project.ID, constants.ErrAlreadyExists)
		}
		return nil, err
	}

	logging.Info("Project created", "project_id", project.ID, "actor_id", actorID)
	return project, nil
}

func (d *ProjectDirectory) Update(ctx context.Context, actorID, id string, patch ProjectPatch) (*gormModels.Project, error) {
	if id == "" {
		return nil, fmt.Errorf("%s: %w", constants.MsgMissingProjectID, constants.ErrValidation)
	}
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return nil, fmt.Errorf("project name cannot be empty: %w", constants.ErrValidation)
	}

	if err := d.gate.Authorize(ctx, actorID, constants.ProjectWriteAllowed, id); err != nil {
		return nil, err
	}

	return d.apply(ctx, actorID, id, patch.columns())
}

// Deactivate is the soft delete for projects. Existing memberships are kept.
func (d *ProjectDirectory) Deactivate(ctx context.Context, actorID, id string) (*gormModels.Project, error) {
	if id == "" {
		return nil, fmt.Errorf("%s: %w", constants.MsgMissingProjectID, constants.ErrValidation)
	}

	if err := d.gate.Authorize(ctx, actorID, constants.ProjectDeactivateAllowed, id); err != nil {
		return nil, err
	}

	return d.apply(ctx, actorID, id, map[string]any{"is_active": false})
}

func (d *ProjectDirectory) apply(ctx context.Context, actorID, id string, cols map[string]any) (*gormModels.Project, error) {
	project, err := d.repo.Update(ctx, id, cols)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, fmt.Errorf("project %s: %w", id, constants.ErrProjectNotFound)
	}

	d.cache.Delete(projectCacheKey(id))
	logging.Info("Project updated", "project_id", id, "actor_id", actorID, "columns", len(cols))
	return project, nil
}
