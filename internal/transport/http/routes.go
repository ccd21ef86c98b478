package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"remindme-service/internal/middleware"
)

type AppConfig struct {
	AllowedOrigins string
	AccessLog      bool
}

// NewApp builds the Fiber application with middleware and every /api route.
func NewApp(h *Handler, cfg AppConfig) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "remindme-service",
		ErrorHandler: ErrorHandler(h.log),
		BodyLimit:    maxImportBytes + 1<<20,
	})

	app.Use(recover.New())

	origins := cfg.AllowedOrigins
	if origins == "" {
		origins = "*"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS,PATCH,HEAD",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization,X-Requested-With,X-Request-ID",
		// Fiber rejects credentials together with a wildcard origin
		AllowCredentials: strings.TrimSpace(origins) != "*",
		MaxAge:           86400,
	}))

	if cfg.AccessLog {
		app.Use(logger.New(logger.Config{
			Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path} | ${ua}\n",
		}))
	}

	Register(app, h)
	return app
}

func Register(app *fiber.App, h *Handler) {
	api := app.Group("/api")
	api.Get("/health", h.Health)

	authRoutes := api.Group("/auth")
	authRoutes.Post("/signup", h.Signup)
	authRoutes.Post("/login", h.Login)

	authed := middleware.Auth(h.Tokens, h.Users, h.Deps.Log)
	api.Get("/auth/me", authed, h.Me)

	api.Post("/contacts/import/csv", authed, h.ImportContactsCSV)
	api.Post("/contacts", authed, h.CreateContact)
	api.Get("/contacts", authed, h.ListContacts)
	api.Get("/contacts/:id", authed, h.GetContact)
	api.Put("/contacts/:id", authed, h.UpdateContact)
	api.Delete("/contacts/:id", authed, h.DeleteContact)

	api.Post("/reminders", authed, h.CreateReminder)
	api.Get("/reminders", authed, h.ListReminders)
	api.Get("/reminders/upcoming", authed, h.UpcomingReminders)
	api.Get("/reminders/:id", authed, h.GetReminder)
	api.Delete("/reminders/:id", authed, h.DeleteReminder)

	api.Post("/messages/generate", authed, h.GenerateMessage)
	api.Get("/messages", authed, h.ListMessages)

	api.Get("/analytics/stale-contacts", authed, h.StaleContacts)
	api.Get("/analytics/dashboard", authed, h.Dashboard)

	api.Post("/email/send", authed, h.SendEmail)
}
