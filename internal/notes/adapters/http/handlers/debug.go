package handlers

import (
	"github.com/gofiber/fiber/v3"

	"gonotes/internal/notes/adapters/http/dto"
	"gonotes/internal/notes/adapters/http/middleware"
	"gonotes/internal/notes/adapters/http/response"
)

// SettingsResponse - ограничения сервера. Таймаут в секундах.
type SettingsResponse struct {
	MaxNameLength     int `json:"maxNameLength"`
	MinPasswordLength int `json:"minPasswordLength"`
	UserIdleTimeout   int `json:"userIdleTimeout"`
}

// Clear удаляет все данные.
func (h *Handler) Clear(c fiber.Ctx) error {
	if err := h.svc.Debug.Clear(middleware.Context(c)); err != nil {
		return fail(c, err)
	}
	return response.Empty(c)
}

// RegisterAdmin регистрирует администратора и выдает cookie сессии.
func (h *Handler) RegisterAdmin(c fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := h.bind(c, &req); err != nil {
		return fail(c, err)
	}

	user, token, err := h.svc.Debug.RegisterAdmin(middleware.Context(c), registerInput(&req))
	if err != nil {
		return fail(c, err)
	}

	h.setSession(c, token)
	return response.JSON(c, dto.NewProfile(user))
}

// Settings возвращает ограничения сервера.
func (h *Handler) Settings(c fiber.Ctx) error {
	s := h.svc.Debug.Settings()
	return response.JSON(c, SettingsResponse{
		MaxNameLength:     s.MaxNameLength,
		MinPasswordLength: s.MinPasswordLength,
		UserIdleTimeout:   int(s.UserIdleTimeout.Seconds()),
	})
}

// Health проверяет доступность хранилища.
func (h *Handler) Health(c fiber.Ctx) error {
	if err := h.svc.Health.Ping(middleware.Context(c)); err != nil {
		if sendErr := c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable"}); sendErr != nil {
			return sendErr
		}
		return nil
	}
	return response.JSON(c, fiber.Map{"status": "ok"})
}
