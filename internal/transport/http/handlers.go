// internal/transport/http/handlers.go
package http

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"remindme-service/internal/archive"
	"remindme-service/internal/auth"
	"remindme-service/internal/email"
	"remindme-service/internal/middleware"
	"remindme-service/internal/service"
	"remindme-service/internal/upcoming"
)

// Deps are the collaborators shared by every route.
type Deps struct {
	Users     *service.UserService
	Contacts  *service.ContactService
	Reminders *service.ReminderService
	Messages  *service.MessageService
	Analytics *service.AnalyticsService
	Projector *upcoming.Projector
	Tokens    *auth.Tokens
	Sender    *email.Sender
	Archiver  archive.Archiver
	Log       *zap.Logger
}

type Handler struct {
	Deps
	log       *zap.Logger
	startTime time.Time
	now       func() time.Time
}

func NewHandler(deps Deps) *Handler {
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}
	if deps.Archiver == nil {
		deps.Archiver = archive.NopArchiver{}
	}
	return &Handler{
		Deps:      deps,
		log:       deps.Log.Named("http"),
		startTime: time.Now(),
		now:       time.Now,
	}
}

// detail writes the {"detail": ...} error body used by every endpoint.
func detail(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"detail": msg})
}

// fail maps service errors to client responses. Anything unrecognised is
// returned to Fiber's error handler as a 500.
func fail(c *fiber.Ctx, err error, notFound string) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return detail(c, fiber.StatusNotFound, notFound)
	case errors.Is(err, service.ErrNoUpdates):
		return detail(c, fiber.StatusBadRequest, "No data to update")
	case errors.Is(err, service.ErrEmailTaken):
		return detail(c, fiber.StatusBadRequest, "Email already registered")
	case errors.Is(err, service.ErrInvalidCredentials):
		return detail(c, fiber.StatusUnauthorized, "Invalid email or password")
	}
	if msg, ok := service.IsValidation(err); ok {
		return detail(c, fiber.StatusBadRequest, msg)
	}
	return err
}

func userID(c *fiber.Ctx) string {
	id, _ := middleware.GetUserIDFromContext(c)
	return id
}

// getQueryInt reads an optional integer query parameter within [min, max].
func getQueryInt(c *fiber.Ctx, key string, def, min, max int) (int, error) {
	s := c.Query(key)
	if s == "" {
		return def, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", key)
	}
	if v < min || v > max {
		return 0, fmt.Errorf("%s must be between %d and %d", key, min, max)
	}
	return v, nil
}

// ErrorHandler logs unhandled errors and hides their text from clients.
func ErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		msg := "Internal server error"
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
			msg = fe.Message
		}
		log.Error("[ERROR] request failed",
			zap.Int("status", code),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("ip", c.IP()),
			zap.String("ua", c.Get(fiber.HeaderUserAgent)),
			zap.Error(err))
		return c.Status(code).JSON(fiber.Map{
			"detail":     msg,
			"request_id": c.Get(fiber.HeaderXRequestID),
		})
	}
}
