package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/tiendix/retail-api/internal/application/auth"
	"github.com/tiendix/retail-api/internal/application/dto"
)

// LocalIdentity llave de Locals donde el middleware deja la identidad resuelta.
const LocalIdentity = "identity"

// IdentityResolver resuelve un bearer token a una identidad (scope, rol,
// estado del tenant). Lo implementa auth.UseCase.
type IdentityResolver interface {
	Resolve(ctx context.Context, token string) (auth.Identity, error)
}

// AuthMiddleware valida el Bearer Token, lo resuelve a una Identity completa
// (con estado del tenant) y la deja en c.Locals para los handlers.
func AuthMiddleware(resolver IdentityResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido (Bearer <token>)"})
		}
		ident, err := resolver.Resolve(c.Context(), token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido, expirado o revocado"})
		}
		c.Locals(LocalIdentity, ident)
		return c.Next()
	}
}

// GetIdentity devuelve la identidad del contexto (después del middleware de auth).
func GetIdentity(c *fiber.Ctx) auth.Identity {
	v := c.Locals(LocalIdentity)
	if v == nil {
		return auth.Identity{}
	}
	ident, _ := v.(auth.Identity)
	return ident
}

func bearerToken(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
