package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/stockfacil/kiosco-pos/internal/application/dto"
	"github.com/stockfacil/kiosco-pos/internal/domain"
	"github.com/stockfacil/kiosco-pos/pkg/jwt"
)

// Locals keys para el usuario y su identidad resuelta en Fiber.
const (
	LocalUserID   = "user_id"
	LocalIdentity = "identity"
)

// IdentityResolver resuelve el contexto efectivo (tenant, rol, permisos) del
// portador del token contra la base.
type IdentityResolver interface {
	Resolve(ctx context.Context, userID string) (domain.Context, error)
}

// AuthMiddleware valida el Bearer Token JWT y deja el UserID en c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
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
		c.Locals(LocalUserID, claims.UserID)
		return c.Next()
	}
}

// ContextMiddleware resuelve la identidad contra la base en cada request.
// El tenant y el rol que trae el token son solo pistas: acá se decide.
func ContextMiddleware(resolver IdentityResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := GetUserID(c)
		if userID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "user_id requerido"})
		}
		dctx, err := resolver.Resolve(c.UserContext(), userID)
		if err != nil {
			return respondError(c, err)
		}
		c.Locals(LocalIdentity, dctx)
		return c.Next()
	}
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	v := c.Locals(LocalUserID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetIdentity devuelve la identidad resuelta (después de ContextMiddleware).
func GetIdentity(c *fiber.Ctx) domain.Context {
	v := c.Locals(LocalIdentity)
	if v == nil {
		return domain.Context{}
	}
	dctx, _ := v.(domain.Context)
	return dctx
}
