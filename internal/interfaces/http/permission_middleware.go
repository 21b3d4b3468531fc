package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/people360/internal/application/dto"
	"github.com/jhoicas/people360/internal/domain/entity"
)

// PermissionChecker evalúa (rol, recurso, acción); lo implementa el enforcer de Casbin.
type PermissionChecker interface {
	Enforce(role, resource, action string) (bool, error)
}

// RequirePermission exige que el rol del token tenga la acción sobre el recurso.
// Debe ir después de AuthMiddleware.
func RequirePermission(checker PermissionChecker, resource, action string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" || !entity.IsValidRole(role) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "el token no incluye un rol válido"})
		}
		ok, err := checker.Enforce(role, resource, action)
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code: "PERMISSION_CHECK_FAILED", Message: "no se pudo verificar el permiso, intente más tarde",
			})
		}
		if !ok {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code: "FORBIDDEN", Message: "el rol " + role + " no puede " + action + " " + resource,
			})
		}
		return c.Next()
	}
}
