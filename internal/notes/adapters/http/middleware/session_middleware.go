package middleware

import (
	"context"

	"github.com/gofiber/fiber/v3"

	"gonotes/internal/notes/adapters/http/response"
	"gonotes/internal/notes/domain/entities"
)

// Authenticator проверяет токен сессии.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*entities.User, error)
}

// NewSessionMiddleware пропускает дальше только запросы с живой сессией в cookie cookieName.
func NewSessionMiddleware(auth Authenticator, cookieName string) fiber.Handler {
	return func(c fiber.Ctx) error {
		ctx := Context(c)

		user, err := auth.Authenticate(ctx, c.Cookies(cookieName))
		if err != nil {
			return response.Error(ctx, c, err)
		}

		c.Locals(localsUser, user)
		return c.Next()
	}
}
