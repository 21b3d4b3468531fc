package permission_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/people360/internal/domain/entity"
	"github.com/jhoicas/people360/internal/domain/rbac"
	"github.com/jhoicas/people360/internal/infrastructure/permission"
)

func TestEnforcer_CoincideConLaTablaParaTodaCombinacion(t *testing.T) {
	e, err := permission.NewEnforcer()
	require.NoError(t, err)

	roles := append(entity.Roles(), "", "desconocido")
	for _, role := range roles {
		for _, res := range append(rbac.Resources(), "otro") {
			for _, act := range append(rbac.Actions(), "delete") {
				got, err := e.Enforce(role, res, act)
				require.NoError(t, err)
				assert.Equal(t, rbac.Allowed(role, res, act), got, "%s %s %s", role, res, act)
			}
		}
	}
}

func TestEnforcer_PermisosDeHRManager(t *testing.T) {
	e, err := permission.NewEnforcer()
	require.NoError(t, err)

	perms, err := e.PermissionsForRole(entity.RoleHRManager)
	require.NoError(t, err)
	assert.Contains(t, perms, []string{entity.RoleHRManager, rbac.ResourcePayroll, rbac.ActionApprove})
	assert.NotContains(t, perms, []string{entity.RoleHRManager, rbac.ResourceCustomers, rbac.ActionRead})
}
