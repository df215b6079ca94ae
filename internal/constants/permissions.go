package constants

// Operation names a mutation checked by the authorization gate.
type Operation string

const (
	OperationCreate Operation = "create"
	OperationUpdate Operation = "update"
	OperationDelete Operation = "delete"
)

// MembershipPolicy holds the static allow-sets of one scoped role.
type MembershipPolicy struct {
	Create RoleSet
	Update RoleSet
	Delete RoleSet
}

// For returns the allow-set for op, or an empty set for unknown operations.
func (p MembershipPolicy) For(op Operation) RoleSet {
	switch op {
	case OperationCreate:
		return p.Create
	case OperationUpdate:
		return p.Update
	case OperationDelete:
		return p.Delete
	}
	return RoleSet{}
}

// MembershipPolicies is the static permission table for scoped roles.
// Delete is {SuperAdmin, Administrador} for every role. Doador creation also
// admits an existing Doador so donors can register themselves in another project.
var MembershipPolicies = map[Role]MembershipPolicy{
	RoleAdministrador: {
		Create: NewRoleSet(RoleSuperAdmin, RoleAdministrador),
		Update: NewRoleSet(RoleSuperAdmin, RoleAdministrador),
		Delete: NewRoleSet(RoleSuperAdmin, RoleAdministrador),
	},
	RoleFuncionario: {
		Create: NewRoleSet(RoleSuperAdmin, RoleAdministrador),
		Update: NewRoleSet(RoleSuperAdmin, RoleAdministrador),
		Delete: NewRoleSet(RoleSuperAdmin, RoleAdministrador),
	},
	RoleVoluntario: {
		Create: NewRoleSet(RoleSuperAdmin, RoleAdministrador, RoleFuncionario),
		Update: NewRoleSet(RoleSuperAdmin, RoleAdministrador, RoleFuncionario),
		Delete: NewRoleSet(RoleSuperAdmin, RoleAdministrador),
	},
	RoleDoador: {
		Create: NewRoleSet(RoleSuperAdmin, RoleAdministrador, RoleFuncionario, RoleDoador),
		Update: NewRoleSet(RoleSuperAdmin, RoleAdministrador, RoleFuncionario),
		Delete: NewRoleSet(RoleSuperAdmin, RoleAdministrador),
	},
}

// Allow-sets for the operations outside the membership lifecycle.
var (
	PromoteAllowed           = NewRoleSet(RoleSuperAdmin)
	ReconcileAllowed         = NewRoleSet(RoleSuperAdmin)
	RevokeAdotanteAllowed    = NewRoleSet(RoleSuperAdmin, RoleAdministrador, RoleFuncionario)
	ProjectWriteAllowed      = NewRoleSet(RoleSuperAdmin, RoleAdministrador)
	ProjectDeactivateAllowed = NewRoleSet(RoleSuperAdmin)
)
