package rbac_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/people360/internal/domain/entity"
	"github.com/jhoicas/people360/internal/domain/rbac"
)

func TestAllowed_AdminTieneTodo(t *testing.T) {
	for _, res := range rbac.Resources() {
		for _, act := range rbac.Actions() {
			assert.True(t, rbac.Allowed(entity.RoleAdmin, res, act), "admin debe tener %s:%s", res, act)
		}
	}
}

func TestAllowed_SeparacionHRyCRM(t *testing.T) {
	assert.True(t, rbac.CanAccessHR(entity.RoleHRManager))
	assert.False(t, rbac.CanAccessCRM(entity.RoleHRManager), "hr_manager no ve CRM")

	assert.True(t, rbac.CanAccessCRM(entity.RoleSalesManager))
	assert.True(t, rbac.CanAccessCRM(entity.RoleSupportAgent))
	assert.False(t, rbac.CanAccessHR(entity.RoleSalesManager), "sales_manager no ve HR")

	assert.False(t, rbac.CanAccessHR(entity.RoleEmployee))
	assert.False(t, rbac.CanAccessCRM(entity.RoleCustomer))
}

func TestAllowed_SoloAdminGestionaUsuarios(t *testing.T) {
	for _, role := range entity.Roles() {
		assert.Equal(t, role == entity.RoleAdmin, rbac.CanManageUsers(role), "rol %s", role)
	}
}

func TestAllowed_AprobarAusenciasSoloHR(t *testing.T) {
	assert.True(t, rbac.Allowed(entity.RoleHRManager, rbac.ResourceLeaves, rbac.ActionApprove))
	assert.True(t, rbac.Allowed(entity.RoleEmployee, rbac.ResourceLeaves, rbac.ActionWrite))
	assert.False(t, rbac.Allowed(entity.RoleEmployee, rbac.ResourceLeaves, rbac.ActionApprove))
}

func TestAllowed_RolDesconocidoSinPermisos(t *testing.T) {
	for _, res := range rbac.Resources() {
		assert.False(t, rbac.Allowed("intruso", res, rbac.ActionRead))
		assert.False(t, rbac.Allowed("", res, rbac.ActionRead))
	}
	assert.False(t, rbac.Allowed(entity.RoleAdmin, "planets", rbac.ActionRead))
}

// Propiedad: Policies contiene exactamente las combinaciones que Allowed concede.
func TestPolicies_CoincidenConAllowed(t *testing.T) {
	granted := map[rbac.Policy]bool{}
	for _, p := range rbac.Policies() {
		assert.False(t, granted[p], "política duplicada %+v", p)
		granted[p] = true
	}
	for _, role := range entity.Roles() {
		for _, res := range rbac.Resources() {
			for _, act := range rbac.Actions() {
				p := rbac.Policy{Role: role, Resource: res, Action: act}
				assert.Equal(t, rbac.Allowed(role, res, act), granted[p], "%+v", p)
			}
		}
	}
}
