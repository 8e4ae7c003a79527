package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/stockfacil/kiosco-pos/internal/application/dto"
)

// OriginGuard rechaza con 403 cualquier request de navegador cuyo Origin no
// esté en el allow-list, antes de ejecutar lógica alguna. Requests sin Origin
// (curl, apps nativas, server-to-server) pasan.
func OriginGuard(allowedOrigins []string) fiber.Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		if o != "" {
			allowed[o] = true
		}
	}

	return func(c *fiber.Ctx) error {
		origin := strings.TrimRight(strings.TrimSpace(c.Get(fiber.HeaderOrigin)), "/")
		if origin == "" {
			return c.Next()
		}
		if !allowed[origin] {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "ORIGIN_REJECTED", Message: "origen no permitido"})
		}
		c.Set(fiber.HeaderAccessControlAllowOrigin, origin)
		c.Set(fiber.HeaderAccessControlAllowHeaders, "Authorization, Content-Type")
		c.Set(fiber.HeaderAccessControlAllowMethods, "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		if c.Method() == fiber.MethodOptions {
			return c.SendStatus(fiber.StatusNoContent)
		}
		return c.Next()
	}
}
