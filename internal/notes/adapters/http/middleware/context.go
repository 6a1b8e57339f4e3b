// Package middleware содержит промежуточное ПО для HTTP обработчиков.
package middleware

import (
	"context"

	"github.com/gofiber/fiber/v3"

	"gonotes/internal/notes/domain/entities"
)

const (
	localsRequestContext = "requestContext"
	localsUser           = "user"
)

// Context возвращает контекст запроса с логгером и идентификатором запроса.
func Context(c fiber.Ctx) context.Context {
	if ctx, ok := c.Locals(localsRequestContext).(context.Context); ok {
		return ctx
	}
	return c.Context()
}

// User возвращает пользователя, прошедшего проверку сессии. nil для открытых маршрутов.
func User(c fiber.Ctx) *entities.User {
	user, _ := c.Locals(localsUser).(*entities.User)
	return user
}

func setContext(c fiber.Ctx, ctx context.Context) {
	c.Locals(localsRequestContext, ctx)
}
