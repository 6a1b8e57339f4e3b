package handlers

import (
	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"gonotes/internal/notes/adapters/http/dto"
	"gonotes/internal/notes/adapters/http/middleware"
	"gonotes/internal/notes/adapters/http/response"
	"gonotes/pkg/logger"
)

// CreateNote создает заметку.
func (h *Handler) CreateNote(c fiber.Ctx) error {
	var req dto.CreateNoteRequest
	if err := h.bind(c, &req); err != nil {
		return fail(c, err)
	}

	note, err := h.svc.Notes.CreateNote(middleware.Context(c), middleware.User(c), *req.SectionID, req.Subject, req.Body)
	if err != nil {
		return fail(c, err)
	}
	return response.JSON(c, dto.NewNote(note))
}

// GetNote возвращает заметку с текущим телом.
func (h *Handler) GetNote(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, err)
	}

	note, err := h.svc.Notes.GetNote(middleware.Context(c), id)
	if err != nil {
		return fail(c, err)
	}
	return response.JSON(c, dto.NewNote(note))
}

// EditNote меняет тело и/или раздел заметки.
func (h *Handler) EditNote(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, err)
	}

	var req dto.EditNoteRequest
	if err := h.bind(c, &req); err != nil {
		return fail(c, err)
	}

	note, err := h.svc.Notes.EditNote(middleware.Context(c), middleware.User(c), id, req.Body, req.SectionID)
	if err != nil {
		return fail(c, err)
	}
	return response.JSON(c, dto.NewNote(note))
}

// DeleteNote удаляет заметку.
func (h *Handler) DeleteNote(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, err)
	}

	if err := h.svc.Notes.DeleteNote(middleware.Context(c), middleware.User(c), id); err != nil {
		return fail(c, err)
	}
	return response.Empty(c)
}

// NoteComments возвращает комментарии заметки по всем ревизиям.
func (h *Handler) NoteComments(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, err)
	}

	comments, err := h.svc.Notes.NoteComments(middleware.Context(c), id)
	if err != nil {
		return fail(c, err)
	}
	return response.JSON(c, dto.NewNoteComments(comments))
}

// DeleteNoteComments удаляет комментарии текущей ревизии.
func (h *Handler) DeleteNoteComments(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, err)
	}

	if err := h.svc.Notes.DeleteComments(middleware.Context(c), middleware.User(c), id); err != nil {
		return fail(c, err)
	}
	return response.Empty(c)
}

// RateNote добавляет оценку заметке.
func (h *Handler) RateNote(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, err)
	}

	var req dto.RateRequest
	if err := h.bind(c, &req); err != nil {
		return fail(c, err)
	}

	if err := h.svc.Notes.Rate(middleware.Context(c), middleware.User(c), id, *req.Rating); err != nil {
		return fail(c, err)
	}
	return response.Empty(c)
}

// ListNotes возвращает заметки по фильтрам строки запроса.
func (h *Handler) ListNotes(c fiber.Ctx) error {
	ctx := middleware.Context(c)

	in, err := parseNoteQuery(c)
	if err != nil {
		return fail(c, err)
	}
	logger.Log(ctx).Debug(ctx, "handling list notes request",
		zap.Int("tags", len(in.Tags)), zap.Bool("allVersions", in.Shape.AllVersions), zap.Bool("comments", in.Shape.Comments))

	notes, err := h.svc.Notes.List(ctx, middleware.User(c), in)
	if err != nil {
		return fail(c, err)
	}
	return response.JSON(c, dto.NewNoteItems(notes, in.Shape))
}

// CreateComment добавляет комментарий к текущей ревизии заметки.
func (h *Handler) CreateComment(c fiber.Ctx) error {
	var req dto.CreateCommentRequest
	if err := h.bind(c, &req); err != nil {
		return fail(c, err)
	}

	comment, err := h.svc.Notes.CreateComment(middleware.Context(c), middleware.User(c), *req.NoteID, req.Body)
	if err != nil {
		return fail(c, err)
	}
	return response.JSON(c, dto.NewComment(comment))
}

// EditComment меняет текст комментария.
func (h *Handler) EditComment(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, err)
	}

	var req dto.EditCommentRequest
	if err := h.bind(c, &req); err != nil {
		return fail(c, err)
	}

	comment, err := h.svc.Notes.EditComment(middleware.Context(c), middleware.User(c), id, req.Body)
	if err != nil {
		return fail(c, err)
	}
	return response.JSON(c, dto.NewComment(comment))
}

// DeleteComment удаляет комментарий.
func (h *Handler) DeleteComment(c fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, err)
	}

	if err := h.svc.Notes.DeleteComment(middleware.Context(c), middleware.User(c), id); err != nil {
		return fail(c, err)
	}
	return response.Empty(c)
}
