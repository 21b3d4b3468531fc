package http

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/people360/internal/application/dto"
	"github.com/jhoicas/people360/internal/application/ports"
	"github.com/jhoicas/people360/internal/domain/entity"
	"github.com/jhoicas/people360/pkg/jwt"
)

// Locals keys para los datos del token en Fiber.
const (
	LocalUserID    = "user_id"
	LocalCompanyID = "company_id"
	LocalRole      = "role"
	LocalClaims    = "claims"
)

// UserLookup lee el usuario vigente detrás de un token.
type UserLookup interface {
	FindByID(ctx context.Context, id string) (*entity.User, error)
}

type authOptions struct {
	tokens ports.TokenStore
	users  UserLookup
}

// AuthOption configura AuthMiddleware.
type AuthOption func(*authOptions)

// WithTokenStore rechaza los tokens cuyo jti fue revocado (logout).
func WithTokenStore(store ports.TokenStore) AuthOption {
	return func(o *authOptions) { o.tokens = store }
}

// WithUserLookup relee el usuario en cada petición: inexistente, inactivo o de
// otra empresa es 401, y el rol vigente reemplaza al del token.
func WithUserLookup(users UserLookup) AuthOption {
	return func(o *authOptions) { o.users = users }
}

// AuthMiddleware valida el Bearer Token JWT y carga en c.Locals el usuario,
// la empresa y el rol.
func AuthMiddleware(jwtSecret string, opts ...AuthOption) fiber.Handler {
	var o authOptions
	for _, opt := range opts {
		opt(&o)
	}
	store := o.tokens
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		if store != nil && claims.ID != "" {
			revoked, err := store.IsRevoked(c.UserContext(), claims.ID)
			if err != nil {
				log.Error().Err(err).Msg("no se pudo consultar la lista de tokens revocados")
				return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
					Code: "TOKEN_CHECK_FAILED", Message: "no se pudo verificar el token, intente más tarde",
				})
			}
			if revoked {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token revocado"})
			}
		}
		role := claims.Role
		if o.users != nil {
			u, err := o.users.FindByID(c.UserContext(), claims.UserID)
			if err != nil {
				log.Error().Err(err).Str("user_id", claims.UserID).Msg("no se pudo leer el usuario del token")
				return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
					Code: "USER_CHECK_FAILED", Message: "no se pudo verificar el usuario, intente más tarde",
				})
			}
			if u == nil || !u.IsActive || u.CompanyID != claims.CompanyID {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "usuario inexistente o inactivo"})
			}
			role = u.Role
		}
		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalCompanyID, claims.CompanyID)
		c.Locals(LocalRole, role)
		c.Locals(LocalClaims, claims)
		return c.Next()
	}
}

// RequireRole permite el paso solo a los roles indicados. Debe ir después de AuthMiddleware.
func RequireRole(roles ...string) fiber.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "el token no incluye rol"})
		}
		if !allowed[role] {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "el rol " + role + " no tiene acceso a este recurso"})
		}
		return c.Next()
	}
}

func localString(c *fiber.Ctx, key string) string {
	s, _ := c.Locals(key).(string)
	return s
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string { return localString(c, LocalUserID) }

// GetCompanyID devuelve el CompanyID del contexto (después del middleware de auth).
func GetCompanyID(c *fiber.Ctx) string { return localString(c, LocalCompanyID) }

// GetRole devuelve el rol del usuario (el vigente si hay UserLookup).
func GetRole(c *fiber.Ctx) string { return localString(c, LocalRole) }

// GetClaims claims completos del token; nil fuera de rutas protegidas.
func GetClaims(c *fiber.Ctx) *jwt.Claims {
	claims, _ := c.Locals(LocalClaims).(*jwt.Claims)
	return claims
}

// tokenRemaining vida restante del token actual (para la revocación en logout).
func tokenRemaining(c *fiber.Ctx) (string, time.Duration) {
	claims := GetClaims(c)
	if claims == nil {
		return "", 0
	}
	return claims.ID, claims.Remaining(time.Now())
}
