package services

import (
	"testing"

	"abrigo/backend/internal/constants"
	gormModels "abrigo/backend/internal/models/gorm"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrant_AdministradorGrantsFuncionario(t *testing.T) {
	env := newTestEnv(t)
	admin := env.seedUser(t, constants.RoleAdministrador)
	u1 := env.seedUser(t)
	p1 := env.seedProject(t)

	m, err := env.memberships.Grant(ctx, constants.RoleFuncionario, u1.ID, p1.ID, nil, admin.ID)
	require.NoError(t, err)

	assert.Equal(t, constants.RoleFuncionario, m.Role)
	assert.Equal(t, false, m.Attributes["privilegios"])
	assert.Equal(t, "", m.Attributes["cargo"])
	assert.EqualValues(t, 1, env.countRows(t, &gormModels.Funcionario{}, u1.ID, p1.ID))

	reloaded := env.reloadUser(t, u1.ID)
	assert.Equal(t, 1, countRole(reloaded.Roles, constants.RoleFuncionario))

	stored, err := env.memberships.Get(ctx, constants.RoleFuncionario, u1.ID, p1.ID)
	require.NoError(t, err)
	assert.Equal(t, false, stored.Attributes["privilegios"])

	assert.Equal(t, 1.0, testutil.ToFloat64(
		env.metrics.MembershipOperationsTotal.WithLabelValues("Funcionario", "grant", "ok")))
}

func TestGrant_VoluntarioCannotGrantFuncionario(t *testing.T) {
	env := newTestEnv(t)
	volunteer := env.seedUser(t, constants.RoleVoluntario)
	u1 := env.seedUser(t, constants.RoleDoador)
	p1 := env.seedProject(t)

	_, err := env.memberships.Grant(ctx, constants.RoleFuncionario, u1.ID, p1.ID, nil, volunteer.ID)
	assert.ErrorIs(t, err, constants.ErrForbidden)

	assert.EqualValues(t, 0, env.countRows(t, &gormModels.Funcionario{}, u1.ID, p1.ID))
	assert.Equal(t, constants.RoleList{constants.RoleDoador}, env.reloadUser(t, u1.ID).Roles)
}

func TestGrant_DoadorTwiceFailsAlreadyMember(t *testing.T) {
	env := newTestEnv(t)
	admin := env.seedUser(t, constants.RoleAdministrador)
	u2 := env.seedUser(t)
	p1 := env.seedProject(t)

	_, err := env.memberships.Grant(ctx, constants.RoleDoador, u2.ID, p1.ID, nil, admin.ID)
	require.NoError(t, err)

	_, err = env.memberships.Grant(ctx, constants.RoleDoador, u2.ID, p1.ID, map[string]any{"frequencia": "mensal"}, admin.ID)
	assert.ErrorIs(t, err, constants.ErrAlreadyMember)

	assert.EqualValues(t, 1, env.countRows(t, &gormModels.Doador{}, u2.ID, p1.ID))
	stored, err := env.memberships.Get(ctx, constants.RoleDoador, u2.ID, p1.ID)
	require.NoError(t, err)
	assert.Equal(t, "unica", stored.Attributes["frequencia"])
}

func TestGrant_UniquenessForEveryRole(t *testing.T) {
	env := newTestEnv(t)
	superAdmin := env.seedUser(t, constants.RoleSuperAdmin)
	p := env.seedProject(t)

	for _, role := range constants.ScopedRoles {
		u := env.seedUser(t)
		_, err := env.memberships.Grant(ctx, role, u.ID, p.ID, nil, superAdmin.ID)
		require.NoError(t, err, role)

		_, err = env.memberships.Grant(ctx, role, u.ID, p.ID, nil, superAdmin.ID)
		assert.ErrorIs(t, err, constants.ErrAlreadyMember, role)

		rows, err := env.memberships.ListByUser(ctx, role, u.ID)
		require.NoError(t, err)
		assert.Len(t, rows, 1, role)
	}
}

func TestGrant_RoleListContainsRoleOnce(t *testing.T) {
	env := newTestEnv(t)
	admin := env.seedUser(t, constants.RoleAdministrador)
	u := env.seedUser(t, constants.RoleDoador, constants.RoleAdotante)
	p1 := env.seedProject(t)
	p2 := env.seedProject(t)

	_, err := env.memberships.Grant(ctx, constants.RoleFuncionario, u.ID, p1.ID, nil, admin.ID)
	require.NoError(t, err)
	_, err = env.memberships.Grant(ctx, constants.RoleFuncionario, u.ID, p2.ID, nil, admin.ID)
	require.NoError(t, err)

	roles := env.reloadUser(t, u.ID).Roles
	assert.Equal(t, 1, countRole(roles, constants.RoleFuncionario))
	assert.True(t, roles.Has(constants.RoleDoador))
	assert.True(t, roles.Has(constants.RoleAdotante))
	assert.Len(t, roles, 3)
}

func TestGrant_MergesAttributesOverDefaults(t *testing.T) {
	env := newTestEnv(t)
	admin := env.seedUser(t, constants.RoleAdministrador)
	u := env.seedUser(t)
	p := env.seedProject(t)

	m, err := env.memberships.Grant(ctx, constants.RoleDoador, u.ID, p.ID, map[string]any{"frequencia": "Mensal"}, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, "mensal", m.Attributes["frequencia"])

	m, err = env.memberships.Grant(ctx, constants.RoleFuncionario, u.ID, p.ID, map[string]any{"cargo": "veterinaria"}, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, "veterinaria", m.Attributes["cargo"])
	assert.Equal(t, false, m.Attributes["privilegios"])
}

func TestGrant_ValidationErrors(t *testing.T) {
	env := newTestEnv(t)
	admin := env.seedUser(t, constants.RoleAdministrador)
	u := env.seedUser(t)
	p := env.seedProject(t)

	cases := []struct {
		name      string
		role      constants.Role
		userID    string
		projectID string
		attrs     map[string]any
	}{
		{"unscoped role", constants.RoleAdotante, u.ID, p.ID, nil},
		{"missing user id", constants.RoleVoluntario, "", p.ID, nil},
		{"missing project id", constants.RoleVoluntario, u.ID, "", nil},
		{"unknown attribute", constants.RoleVoluntario, u.ID, p.ID, map[string]any{"salario": 10}},
		{"wrong attribute type", constants.RoleFuncionario, u.ID, p.ID, map[string]any{"privilegios": "yes"}},
		{"bad frequencia", constants.RoleDoador, u.ID, p.ID, map[string]any{"frequencia": "diaria"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.memberships.Grant(ctx, tc.role, tc.userID, tc.projectID, tc.attrs, admin.ID)
			assert.ErrorIs(t, err, constants.ErrValidation)
		})
	}

	assert.Empty(t, env.reloadUser(t, u.ID).Roles)
}

func TestGrant_MissingReferences(t *testing.T) {
	env := newTestEnv(t)
	admin := env.seedUser(t, constants.RoleAdministrador)
	u := env.seedUser(t)
	p := env.seedProject(t)
	missing := "00000000-0000-0000-0000-000000000000"

	_, err := env.memberships.Grant(ctx, constants.RoleVoluntario, missing, p.ID, nil, admin.ID)
	assert.ErrorIs(t, err, constants.ErrUserNotFound)

	_, err = env.memberships.Grant(ctx, constants.RoleVoluntario, u.ID, missing, nil, admin.ID)
	assert.ErrorIs(t, err, constants.ErrProjectNotFound)

	_, err = env.memberships.Grant(ctx, constants.RoleVoluntario, u.ID, p.ID, nil, missing)
	assert.ErrorIs(t, err, constants.ErrActorNotFound)

	assert.Empty(t, env.reloadUser(t, u.ID).Roles)
}

func TestGrant_InactiveProjectIsNotFound(t *testing.T) {
	env := newTestEnv(t)
	superAdmin := env.seedUser(t, constants.RoleSuperAdmin)
	u := env.seedUser(t)
	p := env.seedProject(t)

	_, err := env.projects.Deactivate(ctx, superAdmin.ID, p.ID)
	require.NoError(t, err)

	_, err = env.memberships.Grant(ctx, constants.RoleVoluntario, u.ID, p.ID, nil, superAdmin.ID)
	assert.ErrorIs(t, err, constants.ErrProjectNotFound)
}

func TestGrant_DoadorSelfRegistration(t *testing.T) {
	env := newTestEnv(t)
	admin := env.seedUser(t, constants.RoleAdministrador)
	donor := env.seedUser(t)
	p1 := env.seedProject(t)
	p2 := env.seedProject(t)

	_, err := env.memberships.Grant(ctx, constants.RoleDoador, donor.ID, p1.ID, nil, admin.ID)
	require.NoError(t, err)

	_, err = env.memberships.Grant(ctx, constants.RoleDoador, donor.ID, p2.ID, map[string]any{"frequencia": "anual"}, donor.ID)
	require.NoError(t, err)

	_, err = env.memberships.Update(ctx, constants.RoleDoador, donor.ID, p2.ID, map[string]any{"frequencia": "mensal"}, donor.ID)
	assert.ErrorIs(t, err, constants.ErrForbidden)

	_, err = env.memberships.Grant(ctx, constants.RoleVoluntario, donor.ID, p2.ID, nil, donor.ID)
	assert.ErrorIs(t, err, constants.ErrForbidden)
}

func TestUpdate_PartialMergeKeepsOtherFields(t *testing.T) {
	env := newTestEnv(t)
	admin := env.seedUser(t, constants.RoleAdministrador)
	u := env.seedUser(t)
	p := env.seedProject(t)

	_, err := env.memberships.Grant(ctx, constants.RoleFuncionario, u.ID, p.ID, map[string]any{"cargo": "tratadora"}, admin.ID)
	require.NoError(t, err)
	before, err := env.memberships.Get(ctx, constants.RoleFuncionario, u.ID, p.ID)
	require.NoError(t, err)

	after, err := env.memberships.Update(ctx, constants.RoleFuncionario, u.ID, p.ID, map[string]any{"privilegios": true}, admin.ID)
	require.NoError(t, err)

	assert.Equal(t, true, after.Attributes["privilegios"])
	assert.Equal(t, before.Attributes["cargo"], after.Attributes["cargo"])
	assert.Equal(t, before.ID, after.ID)
	assert.True(t, before.CreatedAt.Equal(after.CreatedAt))

	rolesBefore := env.reloadUser(t, u.ID).Roles
	assert.Equal(t, constants.RoleList{constants.RoleFuncionario}, rolesBefore)
}

func TestUpdate_EmptyPatchReturnsRowUnchanged(t *testing.T) {
	env := newTestEnv(t)
	admin := env.seedUser(t, constants.RoleAdministrador)
	u := env.seedUser(t)
	p := env.seedProject(t)

	_, err := env.memberships.Grant(ctx, constants.RoleVoluntario, u.ID, p.ID, map[string]any{"area_atuacao": "canil"}, admin.ID)
	require.NoError(t, err)

	m, err := env.memberships.Update(ctx, constants.RoleVoluntario, u.ID, p.ID, map[string]any{}, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, "canil", m.Attributes["area_atuacao"])
}

func TestUpdate_MissingRow(t *testing.T) {
	env := newTestEnv(t)
	admin := env.seedUser(t, constants.RoleAdministrador)
	u := env.seedUser(t)
	p := env.seedProject(t)

	_, err := env.memberships.Update(ctx, constants.RoleFuncionario, u.ID, p.ID, map[string]any{"privilegios": true}, admin.ID)
	assert.ErrorIs(t, err, constants.ErrMembershipNotFound)
}

// Revoke deletes the row but leaves users.roles untouched.
func TestRevoke_KeepsRoleInUserRoleList(t *testing.T) {
	env := newTestEnv(t)
	superAdmin := env.seedUser(t, constants.RoleSuperAdmin)
	u1 := env.seedUser(t)
	p1 := env.seedProject(t)

	_, err := env.memberships.Grant(ctx, constants.RoleFuncionario, u1.ID, p1.ID, nil, superAdmin.ID)
	require.NoError(t, err)

	require.NoError(t, env.memberships.Revoke(ctx, constants.RoleFuncionario, u1.ID, p1.ID, superAdmin.ID))

	assert.EqualValues(t, 0, env.countRows(t, &gormModels.Funcionario{}, u1.ID, p1.ID))
	assert.True(t, env.reloadUser(t, u1.ID).Roles.Has(constants.RoleFuncionario),
		"revoke leaves the role in users.roles; ReconcileRoles removes it")

	_, err = env.memberships.Get(ctx, constants.RoleFuncionario, u1.ID, p1.ID)
	assert.ErrorIs(t, err, constants.ErrMembershipNotFound)
}

func TestRevoke_StricterThanCreate(t *testing.T) {
	env := newTestEnv(t)
	employee := env.seedUser(t, constants.RoleFuncionario)
	u := env.seedUser(t)
	p := env.seedProject(t)

	_, err := env.memberships.Grant(ctx, constants.RoleVoluntario, u.ID, p.ID, nil, employee.ID)
	require.NoError(t, err)

	err = env.memberships.Revoke(ctx, constants.RoleVoluntario, u.ID, p.ID, employee.ID)
	assert.ErrorIs(t, err, constants.ErrForbidden)
	assert.EqualValues(t, 1, env.countRows(t, &gormModels.Voluntario{}, u.ID, p.ID))
}

func TestRevoke_MissingRow(t *testing.T) {
	env := newTestEnv(t)
	admin := env.seedUser(t, constants.RoleAdministrador)
	u := env.seedUser(t)
	p := env.seedProject(t)

	err := env.memberships.Revoke(ctx, constants.RoleDoador, u.ID, p.ID, admin.ID)
	assert.ErrorIs(t, err, constants.ErrMembershipNotFound)
}

func TestListByProjectAndUser(t *testing.T) {
	env := newTestEnv(t)
	admin := env.seedUser(t, constants.RoleAdministrador)
	u1 := env.seedUser(t)
	u2 := env.seedUser(t)
	p1 := env.seedProject(t)
	p2 := env.seedProject(t)

	for _, pair := range [][2]string{{u1.ID, p1.ID}, {u2.ID, p1.ID}, {u1.ID, p2.ID}} {
		_, err := env.memberships.Grant(ctx, constants.RoleVoluntario, pair[0], pair[1], nil, admin.ID)
		require.NoError(t, err)
	}

	byProject, err := env.memberships.ListByProject(ctx, constants.RoleVoluntario, p1.ID)
	require.NoError(t, err)
	assert.Len(t, byProject, 2)

	byUser, err := env.memberships.ListByUser(ctx, constants.RoleVoluntario, u1.ID)
	require.NoError(t, err)
	assert.Len(t, byUser, 2)

	_, err = env.memberships.ListByProject(ctx, constants.RoleVoluntario, "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, constants.ErrProjectNotFound)
}

func TestListAllForUser(t *testing.T) {
	env := newTestEnv(t)
	superAdmin := env.seedUser(t, constants.RoleSuperAdmin)
	u := env.seedUser(t)
	p := env.seedProject(t)

	_, err := env.memberships.Grant(ctx, constants.RoleDoador, u.ID, p.ID, nil, superAdmin.ID)
	require.NoError(t, err)
	_, err = env.memberships.Grant(ctx, constants.RoleAdministrador, u.ID, p.ID, nil, superAdmin.ID)
	require.NoError(t, err)

	all, err := env.memberships.ListAllForUser(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, constants.RoleAdministrador, all[0].Role)
	assert.Equal(t, constants.RoleDoador, all[1].Role)
}

func TestReconcileRoles(t *testing.T) {
	env := newTestEnv(t)
	superAdmin := env.seedUser(t, constants.RoleSuperAdmin)
	admin := env.seedUser(t, constants.RoleAdministrador)
	u := env.seedUser(t, constants.RoleAdotante)
	p := env.seedProject(t)

	_, err := env.memberships.Grant(ctx, constants.RoleFuncionario, u.ID, p.ID, nil, superAdmin.ID)
	require.NoError(t, err)
	_, err = env.memberships.Grant(ctx, constants.RoleDoador, u.ID, p.ID, nil, superAdmin.ID)
	require.NoError(t, err)
	require.NoError(t, env.memberships.Revoke(ctx, constants.RoleFuncionario, u.ID, p.ID, superAdmin.ID))

	_, err = env.memberships.ReconcileRoles(ctx, u.ID, admin.ID)
	assert.ErrorIs(t, err, constants.ErrForbidden)

	user, err := env.memberships.ReconcileRoles(ctx, u.ID, superAdmin.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.RoleList{constants.RoleDoador, constants.RoleAdotante}, user.Roles)

	reloaded := env.reloadUser(t, u.ID)
	assert.False(t, reloaded.Roles.Has(constants.RoleFuncionario))
	assert.True(t, reloaded.Roles.Has(constants.RoleDoador))
	assert.True(t, reloaded.Roles.Has(constants.RoleAdotante))
}

func TestRoleDrift(t *testing.T) {
	env := newTestEnv(t)
	superAdmin := env.seedUser(t, constants.RoleSuperAdmin)
	u := env.seedUser(t)
	p := env.seedProject(t)

	_, err := env.memberships.Grant(ctx, constants.RoleVoluntario, u.ID, p.ID, nil, superAdmin.ID)
	require.NoError(t, err)

	_, drifted, err := env.memberships.RoleDrift(ctx, env.reloadUser(t, u.ID))
	require.NoError(t, err)
	assert.False(t, drifted)

	require.NoError(t, env.memberships.Revoke(ctx, constants.RoleVoluntario, u.ID, p.ID, superAdmin.ID))

	expected, drifted, err := env.memberships.RoleDrift(ctx, env.reloadUser(t, u.ID))
	require.NoError(t, err)
	assert.True(t, drifted)
	assert.Empty(t, expected)
	assert.True(t, env.reloadUser(t, u.ID).Roles.Has(constants.RoleVoluntario), "RoleDrift must not write")
}
