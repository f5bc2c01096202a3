package middleware

import (
	"context"
	"strings"

	"minedicas/pkg/models"
	"minedicas/pkg/services"

	"github.com/gofiber/fiber/v2"
)

type principalKey struct{}

// AuthMiddleware exige "Authorization: Bearer <token>" e guarda o Principal no contexto da requisição.
func AuthMiddleware(auth services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			return services.ErrUnauthorized(services.MsgNoToken)
		}

		principal, err := auth.VerifyToken(header[len("Bearer "):])
		if err != nil {
			return err
		}

		c.SetUserContext(WithPrincipal(c.UserContext(), principal))
		return c.Next()
	}
}

func WithPrincipal(ctx context.Context, p models.Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

func PrincipalFrom(ctx context.Context) (models.Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(models.Principal)
	return p, ok
}
