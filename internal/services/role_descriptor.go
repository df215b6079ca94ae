package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"abrigo/backend/internal/constants"
	"abrigo/backend/internal/db/repositories"
	"abrigo/backend/internal/models/entities"
	gormModels "abrigo/backend/internal/models/gorm"

	"gorm.io/gorm"
)

// MembershipStore is the per-role table contract consumed by the lifecycle service.
type MembershipStore interface {
	Role() constants.Role
	FindByUserAndProject(ctx context.Context, userID, projectID string) (*entities.Membership, error)
	ListByProject(ctx context.Context, projectID string) ([]entities.Membership, error)
	ListByUser(ctx context.Context, userID string) ([]entities.Membership, error)
	Insert(ctx context.Context, m entities.Membership) (*entities.Membership, error)
	Update(ctx context.Context, userID, projectID string, columns map[string]any) (*entities.Membership, error)
	Delete(ctx context.Context, userID, projectID string) (bool, error)
}

type AttributeKind int

const (
	AttributeBool AttributeKind = iota
	AttributeString
	AttributeEnum
)

// AttributeSpec describes one role-specific column a caller may set.
type AttributeSpec struct {
	Name    string
	Kind    AttributeKind
	Default any
	Allowed []string // AttributeEnum only
}

func (a AttributeSpec) coerce(raw any) (any, error) {
	switch a.Kind {
	case AttributeBool:
		v, ok := raw.(bool)
		if !ok {
			return nil, fmt.Errorf("%s must be a boolean: %w", a.Name, constants.ErrValidation)
		}
		return v, nil

	case AttributeString:
		v, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("%s must be a string: %w", a.Name, constants.ErrValidation)
		}
		return strings.TrimSpace(v), nil

	case AttributeEnum:
		v, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("%s must be a string: %w", a.Name, constants.ErrValidation)
		}
		v = strings.ToLower(strings.TrimSpace(v))
		for _, allowed := range a.Allowed {
			if v == allowed {
				return v, nil
			}
		}
		return nil, fmt.Errorf("%s must be one of %s: %w", a.Name, strings.Join(a.Allowed, ", "), constants.ErrValidation)
	}
	return nil, fmt.Errorf("%s has unsupported kind: %w", a.Name, constants.ErrValidation)
}

// RoleDescriptor parameterizes the lifecycle service for one scoped role:
// its allow-sets, its attribute shape and its table.
type RoleDescriptor struct {
	Role       constants.Role
	Policy     constants.MembershipPolicy
	Attributes []AttributeSpec

	// NewStore binds the role's table to a session, so writes can join a transaction.
	NewStore func(db *gorm.DB) MembershipStore
}

// Defaults returns the attribute values of a freshly granted row.
func (d RoleDescriptor) Defaults() entities.Attributes {
	out := make(entities.Attributes, len(d.Attributes))
	for _, spec := range d.Attributes {
		out[spec.Name] = spec.Default
	}
	return out
}

// Normalize validates caller-supplied attributes and returns only the keys
// that were supplied, coerced to their column types.
func (d RoleDescriptor) Normalize(attrs map[string]any) (entities.Attributes, error) {
	out := make(entities.Attributes, len(attrs))

	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		spec, ok := d.attribute(key)
		if !ok {
			return nil, fmt.Errorf("%s memberships have no attribute %q: %w", d.Role, key, constants.ErrValidation)
		}
		v, err := spec.coerce(attrs[key])
		if err != nil {
			return nil, err
		}
		out[key] = v
	}
	return out, nil
}

func (d RoleDescriptor) attribute(name string) (AttributeSpec, bool) {
	for _, spec := range d.Attributes {
		if spec.Name == name {
			return spec, true
		}
	}
	return AttributeSpec{}, false
}

// DefaultRoleDescriptors wires the four scoped roles to their GORM tables.
func DefaultRoleDescriptors() []RoleDescriptor {
	return []RoleDescriptor{
		{
			Role:   constants.RoleAdministrador,
			Policy: constants.MembershipPolicies[constants.RoleAdministrador],
			NewStore: func(db *gorm.DB) MembershipStore {
				return repositories.NewMembershipRepository[gormModels.Administrador](db)
			},
		},
		{
			Role:   constants.RoleFuncionario,
			Policy: constants.MembershipPolicies[constants.RoleFuncionario],
			Attributes: []AttributeSpec{
				{Name: "privilegios", Kind: AttributeBool, Default: false},
				{Name: "cargo", Kind: AttributeString, Default: ""},
			},
			NewStore: func(db *gorm.DB) MembershipStore {
				return repositories.NewMembershipRepository[gormModels.Funcionario](db)
			},
		},
		{
			Role:   constants.RoleVoluntario,
			Policy: constants.MembershipPolicies[constants.RoleVoluntario],
			Attributes: []AttributeSpec{
				{Name: "area_atuacao", Kind: AttributeString, Default: ""},
				{Name: "disponibilidade", Kind: AttributeString, Default: ""},
			},
			NewStore: func(db *gorm.DB) MembershipStore {
				return repositories.NewMembershipRepository[gormModels.Voluntario](db)
			},
		},
		{
			Role:   constants.RoleDoador,
			Policy: constants.MembershipPolicies[constants.RoleDoador],
			Attributes: []AttributeSpec{
				{Name: "frequencia", Kind: AttributeEnum, Default: "unica", Allowed: constants.DoadorFrequencies},
			},
			NewStore: func(db *gorm.DB) MembershipStore {
				return repositories.NewMembershipRepository[gormModels.Doador](db)
			},
		},
	}
}
