package http_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/people360/internal/domain/rbac"
	"github.com/jhoicas/people360/internal/infrastructure/permission"
	apphttp "github.com/jhoicas/people360/internal/interfaces/http"
)

type failingChecker struct{}

func (failingChecker) Enforce(string, string, string) (bool, error) {
	return false, errors.New("enforcer caído")
}

func permissionApp(t *testing.T, checker apphttp.PermissionChecker, resource, action string) *fiber.App {
	t.Helper()
	app := fiber.New()
	app.Get("/r", apphttp.AuthMiddleware(testJWTSecret), apphttp.RequirePermission(checker, resource, action),
		func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
	return app
}

func getWithToken(t *testing.T, app *fiber.App, header string) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/r", nil)
	req.Header.Set("Authorization", header)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()
	return resp.StatusCode
}

// Cada combinación rol/recurso/acción responde según la tabla RBAC.
func TestRequirePermission_CoincideConLaTabla(t *testing.T) {
	enforcer, err := permission.NewEnforcer()
	require.NoError(t, err)

	roles := []string{"admin", "hr_manager", "sales_manager", "support_agent", "employee", "customer"}
	for _, resource := range rbac.Resources() {
		for _, action := range rbac.Actions() {
			app := permissionApp(t, enforcer, resource, action)
			for _, role := range roles {
				want := http.StatusForbidden
				if rbac.Allowed(role, resource, action) {
					want = http.StatusOK
				}
				assert.Equal(t, want, getWithToken(t, app, tokenForRole(t, role)), "%s %s %s", role, resource, action)
			}
		}
	}
}

func TestRequirePermission_RolDesconocido_Retorna401(t *testing.T) {
	enforcer, err := permission.NewEnforcer()
	require.NoError(t, err)
	app := permissionApp(t, enforcer, rbac.ResourceEmployees, rbac.ActionRead)

	assert.Equal(t, http.StatusUnauthorized, getWithToken(t, app, tokenForRole(t, "bodeguero")))
}

func TestRequirePermission_ErrorDelEnforcer_Retorna503(t *testing.T) {
	app := permissionApp(t, failingChecker{}, rbac.ResourceEmployees, rbac.ActionRead)
	assert.Equal(t, http.StatusServiceUnavailable, getWithToken(t, app, tokenForRole(t, "admin")))
}
