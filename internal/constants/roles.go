package constants

import (
	"database/sql/driver"
	"fmt"
	"sort"
	"strings"
)

// Role is one tag of the closed role vocabulary.
type Role string

const (
	RoleSuperAdmin    Role = "SuperAdmin"
	RoleAdministrador Role = "Administrador"
	RoleFuncionario   Role = "Funcionario"
	RoleVoluntario    Role = "Voluntario"
	RoleDoador        Role = "Doador"
	RoleAdotante      Role = "Adotante"
)

// AllRoles lists the vocabulary in display order.
var AllRoles = []Role{
	RoleSuperAdmin,
	RoleAdministrador,
	RoleFuncionario,
	RoleVoluntario,
	RoleDoador,
	RoleAdotante,
}

// ScopedRoles are the roles materialized as per-project membership rows.
var ScopedRoles = []Role{
	RoleAdministrador,
	RoleFuncionario,
	RoleVoluntario,
	RoleDoador,
}

func (r Role) String() string { return string(r) }

// IsValid reports whether r belongs to the vocabulary.
func (r Role) IsValid() bool {
	for _, known := range AllRoles {
		if r == known {
			return true
		}
	}
	return false
}

// IsScoped reports whether r is granted per project.
func (r Role) IsScoped() bool {
	for _, scoped := range ScopedRoles {
		if r == scoped {
			return true
		}
	}
	return false
}

// ParseRole resolves a role name case-insensitively.
func ParseRole(name string) (Role, error) {
	trimmed := strings.TrimSpace(name)
	for _, known := range AllRoles {
		if strings.EqualFold(trimmed, string(known)) {
			return known, nil
		}
	}
	return "", fmt.Errorf("unknown role %q: %w", name, ErrValidation)
}

/* ---------- RoleSet: allow-sets and set algebra ---------- */

// RoleSet is an unordered set of roles.
type RoleSet map[Role]struct{}

func NewRoleSet(roles ...Role) RoleSet {
	set := make(RoleSet, len(roles))
	for _, r := range roles {
		set[r] = struct{}{}
	}
	return set
}

func (s RoleSet) Contains(r Role) bool {
	_, ok := s[r]
	return ok
}

// Intersects reports whether any role of list is in s.
func (s RoleSet) Intersects(list RoleList) bool {
	for _, r := range list {
		if s.Contains(r) {
			return true
		}
	}
	return false
}

// Roles returns the members in vocabulary order.
func (s RoleSet) Roles() []Role {
	out := make([]Role, 0, len(s))
	for _, r := range AllRoles {
		if s.Contains(r) {
			out = append(out, r)
		}
	}
	return out
}

func (s RoleSet) String() string {
	names := make([]string, 0, len(s))
	for _, r := range s.Roles() {
		names = append(names, string(r))
	}
	return strings.Join(names, ",")
}

/* ---------- RoleList: the denormalized list stored on a user ---------- */

// RoleList is the role list persisted on the user record. It behaves as a set:
// With never introduces duplicates and Without removes every occurrence.
type RoleList []Role

func (l RoleList) Has(r Role) bool {
	for _, existing := range l {
		if existing == r {
			return true
		}
	}
	return false
}

// With returns a copy of l containing r exactly once.
func (l RoleList) With(r Role) RoleList {
	out := l.normalized()
	if out.Has(r) {
		return out
	}
	return append(out, r)
}

// Without returns a copy of l with r filtered out.
func (l RoleList) Without(r Role) RoleList {
	out := make(RoleList, 0, len(l))
	for _, existing := range l {
		if existing != r {
			out = append(out, existing)
		}
	}
	return out
}

// normalized drops duplicates while keeping first-seen order.
func (l RoleList) normalized() RoleList {
	seen := make(map[Role]struct{}, len(l))
	out := make(RoleList, 0, len(l)+1)
	for _, r := range l {
		if _, dup := seen[r]; dup {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	return out
}

// Strings is used for DTOs and log fields.
func (l RoleList) Strings() []string {
	out := make([]string, len(l))
	for i, r := range l {
		out[i] = string(r)
	}
	return out
}

/* ---------- DB adapters so GORM and sqlx scan/value cleanly ---------- */

// Value stores the list as a sorted comma-separated text column.
func (l RoleList) Value() (driver.Value, error) {
	names := l.normalized().Strings()
	sort.Strings(names)
	return strings.Join(names, ","), nil
}

// Scan implements the sql.Scanner interface
func (l *RoleList) Scan(src interface{}) error {
	var raw string
	switch v := src.(type) {
	case nil:
		*l = RoleList{}
		return nil
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("RoleList: cannot scan type %T", src)
	}

	out := RoleList{}
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, Role(part))
	}
	*l = out.normalized()
	return nil
}

// Scan implements the sql.Scanner interface
func (r *Role) Scan(src interface{}) error {
	if src == nil {
		*r = ""
		return nil
	}
	switch v := src.(type) {
	case string:
		*r = Role(v)
	case []byte:
		*r = Role(v)
	default:
		return fmt.Errorf("Role: cannot scan type %T", src)
	}
	return nil
}

// Value implements the driver.Valuer interface
func (r Role) Value() (driver.Value, error) { return string(r), nil }
