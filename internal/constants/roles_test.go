package constants

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	cases := map[string]Role{
		"SuperAdmin":     RoleSuperAdmin,
		"administrador":  RoleAdministrador,
		" FUNCIONARIO ":  RoleFuncionario,
		"voluntario":     RoleVoluntario,
		"Doador":         RoleDoador,
		"adotante":       RoleAdotante,
	}
	for input, want := range cases {
		got, err := ParseRole(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got)
	}

	_, err := ParseRole("gerente")
	assert.True(t, errors.Is(err, ErrValidation))
}

func TestRoleList_WithIsSetLike(t *testing.T) {
	list := RoleList{RoleDoador}

	list = list.With(RoleFuncionario)
	list = list.With(RoleFuncionario)

	assert.Equal(t, RoleList{RoleDoador, RoleFuncionario}, list)
}

func TestRoleList_WithDropsExistingDuplicates(t *testing.T) {
	list := RoleList{RoleDoador, RoleDoador}
	assert.Equal(t, RoleList{RoleDoador, RoleAdotante}, list.With(RoleAdotante))
}

func TestRoleList_WithoutAbsentRoleIsNoop(t *testing.T) {
	list := RoleList{RoleDoador}
	assert.Equal(t, RoleList{RoleDoador}, list.Without(RoleAdotante))
	assert.Equal(t, RoleList{}, list.Without(RoleDoador))
}

func TestRoleList_ValueScanRoundTrip(t *testing.T) {
	list := RoleList{RoleVoluntario, RoleAdministrador, RoleVoluntario}

	v, err := list.Value()
	require.NoError(t, err)
	assert.Equal(t, "Administrador,Voluntario", v)

	var scanned RoleList
	require.NoError(t, scanned.Scan([]byte(v.(string))))
	assert.ElementsMatch(t, RoleList{RoleAdministrador, RoleVoluntario}, scanned)

	var empty RoleList
	require.NoError(t, empty.Scan(""))
	assert.Empty(t, empty)

	assert.Error(t, empty.Scan(42))
}

func TestRoleSet_Intersects(t *testing.T) {
	allowed := NewRoleSet(RoleSuperAdmin, RoleAdministrador)

	assert.True(t, allowed.Intersects(RoleList{RoleDoador, RoleAdministrador}))
	assert.False(t, allowed.Intersects(RoleList{RoleVoluntario, RoleFuncionario}))
	assert.False(t, allowed.Intersects(nil))
	assert.Equal(t, "SuperAdmin,Administrador", allowed.String())
}

func TestMembershipPolicies_DeleteIsAdminOnly(t *testing.T) {
	for _, role := range ScopedRoles {
		policy, ok := MembershipPolicies[role]
		require.True(t, ok, role)
		assert.Equal(t, []Role{RoleSuperAdmin, RoleAdministrador}, policy.For(OperationDelete).Roles(), role)
	}
	assert.True(t, MembershipPolicies[RoleDoador].For(OperationCreate).Contains(RoleDoador))
	assert.Empty(t, MembershipPolicies[RoleDoador].For(Operation("archive")))
}
