// Package http содержит компоненты HTTP сервера заметок.
package http

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"

	"gonotes/internal/notes/adapters/http/handlers"
	"gonotes/internal/notes/adapters/http/middleware"
	"gonotes/internal/notes/adapters/http/response"
	"gonotes/pkg/logger"
	"gonotes/pkg/metrics"
)

// RouterConfig - параметры маршрутизации.
type RouterConfig struct {
	APIPrefix    string
	CookieName   string
	DebugEnabled bool
	Logger       *logger.Logger
	Metrics      *metrics.Metrics
	Auth         middleware.Authenticator
}

// ErrorHandler отвечает на ошибки, не обработанные в обработчиках.
func ErrorHandler(c fiber.Ctx, err error) error {
	return response.Error(middleware.Context(c), c, err)
}

// SetupRouter настраивает маршрутизацию HTTP сервера.
func SetupRouter(app *fiber.App, h *handlers.Handler, cfg RouterConfig) {
	app.Use(middleware.NewLoggerMiddleware(cfg.Logger))
	app.Use(middleware.NewRecoveryMiddleware())
	if cfg.Metrics != nil {
		app.Use(middleware.NewMetricsMiddleware(cfg.Metrics))
		app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics.Handler()))
	}
	app.Get("/health", h.Health)

	api := app.Group(cfg.APIPrefix)

	// Открытые маршруты.
	api.Post("/accounts", h.Register)
	api.Post("/sessions", h.Login)

	if cfg.DebugEnabled {
		debug := api.Group("/debug")
		debug.Post("/clear", h.Clear)
		debug.Post("/registerAdmin", h.RegisterAdmin)
		debug.Get("/settings", h.Settings)
	}

	// Маршруты с сессией.
	auth := api.Group("", middleware.NewSessionMiddleware(cfg.Auth, cfg.CookieName))

	auth.Delete("/sessions", h.Logout)
	auth.Get("/account", h.Profile)
	auth.Put("/accounts", h.EditProfile)
	auth.Delete("/accounts", h.DeleteAccount)
	auth.Get("/accounts", h.ListUsers)
	auth.Put("/accounts/:id/super", h.Promote)

	auth.Post("/followings", h.Follow)
	auth.Delete("/followings/:login", h.Unfollow)
	auth.Post("/ignore", h.Ignore)
	auth.Delete("/ignore/:login", h.Unignore)

	auth.Post("/sections", h.CreateSection)
	auth.Put("/sections/:id", h.RenameSection)
	auth.Delete("/sections/:id", h.DeleteSection)
	auth.Get("/sections/:id", h.GetSection)
	auth.Get("/sections", h.ListSections)

	auth.Post("/notes", h.CreateNote)
	auth.Get("/notes", h.ListNotes)
	auth.Get("/notes/:id", h.GetNote)
	auth.Put("/notes/:id", h.EditNote)
	auth.Delete("/notes/:id", h.DeleteNote)
	auth.Get("/notes/:id/comments", h.NoteComments)
	auth.Delete("/notes/:id/comments", h.DeleteNoteComments)
	auth.Post("/notes/:id/rating", h.RateNote)

	auth.Post("/comments", h.CreateComment)
	auth.Put("/comments/:id", h.EditComment)
	auth.Delete("/comments/:id", h.DeleteComment)

	app.Use(func(fiber.Ctx) error {
		return fiber.ErrNotFound
	})
}
