// Package handlers содержит HTTP-обработчики API заметок.
package handlers

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v3"

	"gonotes/internal/notes/adapters/http/middleware"
	"gonotes/internal/notes/adapters/http/response"
	"gonotes/internal/notes/adapters/http/validation"
	"gonotes/internal/notes/app"
	"gonotes/internal/notes/domain/apperr"
	"gonotes/internal/notes/domain/entities"
	"gonotes/internal/notes/domain/query"
)

// SessionService выполняет вход и выход.
type SessionService interface {
	Login(ctx context.Context, login, password string) (string, error)
	Logout(ctx context.Context, actor *entities.User) error
}

// AccountService управляет учетными записями.
type AccountService interface {
	Register(ctx context.Context, in app.RegisterInput) (*entities.User, string, error)
	EditProfile(ctx context.Context, actor *entities.User, in app.EditProfileInput) (*entities.User, error)
	DeleteAccount(ctx context.Context, actor *entities.User, password string) error
	Promote(ctx context.Context, actor *entities.User, userID int64) error
	List(ctx context.Context, actor *entities.User, q query.UserQuery) ([]entities.UserSummary, error)
}

// RelationService управляет подписками и игнором.
type RelationService interface {
	Follow(ctx context.Context, actor *entities.User, login string) error
	Ignore(ctx context.Context, actor *entities.User, login string) error
	Unfollow(ctx context.Context, actor *entities.User, login string) error
	Unignore(ctx context.Context, actor *entities.User, login string) error
}

// SectionService управляет разделами.
type SectionService interface {
	Create(ctx context.Context, actor *entities.User, name string) (*entities.Section, error)
	Rename(ctx context.Context, actor *entities.User, sectionID int64, name string) (*entities.Section, error)
	Delete(ctx context.Context, actor *entities.User, sectionID int64) error
	Get(ctx context.Context, sectionID int64) (*entities.Section, error)
	List(ctx context.Context) ([]entities.Section, error)
}

// NoteService управляет заметками, комментариями и оценками.
type NoteService interface {
	CreateNote(ctx context.Context, actor *entities.User, sectionID int64, subject, body string) (*entities.Note, error)
	GetNote(ctx context.Context, noteID int64) (*entities.Note, error)
	EditNote(ctx context.Context, actor *entities.User, noteID int64, body *string, sectionID *int64) (*entities.Note, error)
	DeleteNote(ctx context.Context, actor *entities.User, noteID int64) error
	CreateComment(ctx context.Context, actor *entities.User, noteID int64, body string) (*entities.Comment, error)
	NoteComments(ctx context.Context, noteID int64) ([]entities.Comment, error)
	EditComment(ctx context.Context, actor *entities.User, commentID int64, body string) (*entities.Comment, error)
	DeleteComment(ctx context.Context, actor *entities.User, commentID int64) error
	DeleteComments(ctx context.Context, actor *entities.User, noteID int64) error
	Rate(ctx context.Context, actor *entities.User, noteID int64, value int) error
	List(ctx context.Context, actor *entities.User, in app.ListNotesInput) ([]entities.NoteHistory, error)
}

// DebugService обслуживает служебный API.
type DebugService interface {
	Clear(ctx context.Context) error
	RegisterAdmin(ctx context.Context, in app.RegisterInput) (*entities.User, string, error)
	Settings() app.Settings
}

// HealthChecker проверяет доступность хранилища.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// Services - зависимости обработчиков. Debug может быть nil.
type Services struct {
	Sessions  SessionService
	Accounts  AccountService
	Relations RelationService
	Sections  SectionService
	Notes     NoteService
	Debug     DebugService
	Health    HealthChecker
}

// Handler обрабатывает запросы API.
type Handler struct {
	svc        Services
	validator  *validation.Validator
	cookieName string
}

// NewHandler создает обработчик.
func NewHandler(svc Services, v *validation.Validator, cookieName string) *Handler {
	return &Handler{svc: svc, validator: v, cookieName: cookieName}
}

var errMalformedBody = apperr.New(apperr.CodeInvalidParamValue, "body", "Malformed request body")

// bind разбирает JSON-тело в req и проверяет его.
func (h *Handler) bind(c fiber.Ctx, req any) error {
	if err := c.Bind().JSON(req); err != nil {
		return errMalformedBody
	}
	if err := h.validator.Struct(req); err != nil {
		return fmt.Errorf("invalid request: %w", err)
	}
	return nil
}

func (h *Handler) setSession(c fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{Name: h.cookieName, Value: token, Path: "/", HTTPOnly: true})
}

func (h *Handler) clearSession(c fiber.Ctx) {
	c.ClearCookie(h.cookieName)
}

func fail(c fiber.Ctx, err error) error {
	return response.Error(middleware.Context(c), c, err)
}
