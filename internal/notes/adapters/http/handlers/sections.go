package handlers

import (
	"github.com/gofiber/fiber/v3"

	"gonotes/internal/notes/adapters/http/dto"
	"gonotes/internal/notes/adapters/http/middleware"
	"gonotes/internal/notes/adapters/http/response"
)

// CreateSection создает раздел.
func (h *Handler) CreateSection(c fiber.Ctx) error {
	var req dto.SectionRequest
	if err := h.bind(c, &req); err != nil {
		return fail(c, err)
	}

	section, err := h.svc.Sections.Create(middleware.Context(c), middleware.User(c), req.Name)
	if err != nil {
		return fail(c, err)
	}
	return response.JSON(c, dto.NewSection(section))
}

// RenameSection переименовывает раздел.
func (h *Handler) RenameSection(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, err)
	}

	var req dto.SectionRequest
	if err := h.bind(c, &req); err != nil {
		return fail(c, err)
	}

	section, err := h.svc.Sections.Rename(middleware.Context(c), middleware.User(c), id, req.Name)
	if err != nil {
		return fail(c, err)
	}
	return response.JSON(c, dto.NewSection(section))
}

// DeleteSection удаляет раздел.
func (h *Handler) DeleteSection(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, err)
	}

	if err := h.svc.Sections.Delete(middleware.Context(c), middleware.User(c), id); err != nil {
		return fail(c, err)
	}
	return response.Empty(c)
}

// GetSection возвращает раздел.
func (h *Handler) GetSection(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, err)
	}

	section, err := h.svc.Sections.Get(middleware.Context(c), id)
	if err != nil {
		return fail(c, err)
	}
	return response.JSON(c, dto.NewSection(section))
}

// ListSections возвращает все разделы.
func (h *Handler) ListSections(c fiber.Ctx) error {
	sections, err := h.svc.Sections.List(middleware.Context(c))
	if err != nil {
		return fail(c, err)
	}
	return response.JSON(c, dto.NewSections(sections))
}
