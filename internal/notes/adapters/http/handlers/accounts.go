package handlers

import (
	"context"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"gonotes/internal/notes/adapters/http/dto"
	"gonotes/internal/notes/adapters/http/middleware"
	"gonotes/internal/notes/adapters/http/response"
	"gonotes/internal/notes/app"
	"gonotes/internal/notes/domain/entities"
	"gonotes/pkg/logger"
)

// Register регистрирует пользователя и выдает cookie сессии.
func (h *Handler) Register(c fiber.Ctx) error {
	ctx := middleware.Context(c)
	logger.Log(ctx).Debug(ctx, "handling register request", zap.String("handler", "Handler.Register"))

	var req dto.RegisterRequest
	if err := h.bind(c, &req); err != nil {
		return fail(c, err)
	}

	user, token, err := h.svc.Accounts.Register(ctx, registerInput(&req))
	if err != nil {
		return fail(c, err)
	}

	h.setSession(c, token)
	return response.JSON(c, dto.NewProfile(user))
}

func registerInput(req *dto.RegisterRequest) app.RegisterInput {
	return app.RegisterInput{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Patronymic: req.Patronymic,
		Login:      req.Login,
		Password:   req.Password,
	}
}

// Login открывает сессию по логину и паролю.
func (h *Handler) Login(c fiber.Ctx) error {
	ctx := middleware.Context(c)

	var req dto.LoginRequest
	if err := h.bind(c, &req); err != nil {
		return fail(c, err)
	}

	token, err := h.svc.Sessions.Login(ctx, req.Login, req.Password)
	if err != nil {
		return fail(c, err)
	}

	h.setSession(c, token)
	return response.Empty(c)
}

// Logout закрывает сессию.
func (h *Handler) Logout(c fiber.Ctx) error {
	if err := h.svc.Sessions.Logout(middleware.Context(c), middleware.User(c)); err != nil {
		return fail(c, err)
	}
	h.clearSession(c)
	return response.Empty(c)
}

// Profile возвращает профиль текущего пользователя.
func (h *Handler) Profile(c fiber.Ctx) error {
	return response.JSON(c, dto.NewProfile(middleware.User(c)))
}

// EditProfile меняет профиль текущего пользователя.
func (h *Handler) EditProfile(c fiber.Ctx) error {
	ctx := middleware.Context(c)

	var req dto.EditProfileRequest
	if err := h.bind(c, &req); err != nil {
		return fail(c, err)
	}

	user, err := h.svc.Accounts.EditProfile(ctx, middleware.User(c), app.EditProfileInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Patronymic:  req.Patronymic,
		OldPassword: req.OldPassword,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		return fail(c, err)
	}
	return response.JSON(c, dto.NewProfileWithID(user))
}

// DeleteAccount логически удаляет текущего пользователя.
func (h *Handler) DeleteAccount(c fiber.Ctx) error {
	ctx := middleware.Context(c)

	var req dto.PasswordRequest
	if err := h.bind(c, &req); err != nil {
		return fail(c, err)
	}

	if err := h.svc.Accounts.DeleteAccount(ctx, middleware.User(c), req.Password); err != nil {
		return fail(c, err)
	}
	h.clearSession(c)
	return response.Empty(c)
}

// ListUsers возвращает список пользователей по параметрам строки запроса.
func (h *Handler) ListUsers(c fiber.Ctx) error {
	q, err := parseUserQuery(c)
	if err != nil {
		return fail(c, err)
	}

	actor := middleware.User(c)
	users, err := h.svc.Accounts.List(middleware.Context(c), actor, q)
	if err != nil {
		return fail(c, err)
	}
	return response.JSON(c, dto.NewUserItems(users, actor.IsAdmin()))
}

// Promote делает пользователя администратором.
func (h *Handler) Promote(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, err)
	}

	if err := h.svc.Accounts.Promote(middleware.Context(c), middleware.User(c), id); err != nil {
		return fail(c, err)
	}
	return response.Empty(c)
}

// Follow подписывает текущего пользователя на login из тела.
func (h *Handler) Follow(c fiber.Ctx) error {
	return h.relate(c, h.svc.Relations.Follow)
}

// Ignore добавляет login из тела в игнор.
func (h *Handler) Ignore(c fiber.Ctx) error {
	return h.relate(c, h.svc.Relations.Ignore)
}

// Unfollow снимает подписку на login из пути.
func (h *Handler) Unfollow(c fiber.Ctx) error {
	return h.unrelate(c, h.svc.Relations.Unfollow)
}

// Unignore убирает login из пути из игнора.
func (h *Handler) Unignore(c fiber.Ctx) error {
	return h.unrelate(c, h.svc.Relations.Unignore)
}

type relationFunc func(ctx context.Context, actor *entities.User, login string) error

func (h *Handler) relate(c fiber.Ctx, fn relationFunc) error {
	var req dto.LoginTargetRequest
	if err := h.bind(c, &req); err != nil {
		return fail(c, err)
	}
	if err := fn(middleware.Context(c), middleware.User(c), req.Login); err != nil {
		return fail(c, err)
	}
	return response.Empty(c)
}

func (h *Handler) unrelate(c fiber.Ctx, fn relationFunc) error {
	if err := fn(middleware.Context(c), middleware.User(c), c.Params("login")); err != nil {
		return fail(c, err)
	}
	return response.Empty(c)
}
