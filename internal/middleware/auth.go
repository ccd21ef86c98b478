// internal/middleware/auth.go
package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"remindme-service/internal/service"
	"remindme-service/pkg/models"
)

// Context keys for Fiber Locals.
const (
	UserIDContextKey = "userID"
	UserContextKey   = "user"
)

const (
	msgInvalidCredentials = "Invalid authentication credentials"
	msgUserNotFound       = "User not found"
)

type TokenVerifier interface {
	Subject(token string) (string, error)
}

type UserLookup interface {
	GetByUserID(ctx context.Context, userID string) (*models.User, error)
}

// Auth resolves "Authorization: Bearer <token>" to a stored user.
// On success it sets userID and user locals; otherwise it answers 401.
func Auth(tokens TokenVerifier, users UserLookup, log *zap.Logger) fiber.Handler {
	log = log.Named("auth")
	return func(c *fiber.Ctx) error {
		header := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
		scheme, token, ok := strings.Cut(header, " ")
		token = strings.TrimSpace(token)
		if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
			log.Debug("[AUTH] missing bearer token", zap.String("path", c.Path()))
			return unauthorized(c, msgInvalidCredentials)
		}

		userID, err := tokens.Subject(token)
		if err != nil {
			log.Debug("[AUTH] token rejected", zap.String("path", c.Path()), zap.Error(err))
			return unauthorized(c, msgInvalidCredentials)
		}

		user, err := users.GetByUserID(c.UserContext(), userID)
		if errors.Is(err, service.ErrNotFound) {
			log.Info("[AUTH] token subject has no user", zap.String("user_id", userID))
			return unauthorized(c, msgUserNotFound)
		}
		if err != nil {
			return err
		}

		c.Locals(UserIDContextKey, user.UserID)
		c.Locals(UserContextKey, user)
		return c.Next()
	}
}

func unauthorized(c *fiber.Ctx, detail string) error {
	c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"detail": detail})
}

// GetUserIDFromContext returns the authenticated user's id.
func GetUserIDFromContext(c *fiber.Ctx) (string, bool) {
	userID, ok := c.Locals(UserIDContextKey).(string)
	return userID, ok && userID != ""
}

func GetUserFromContext(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals(UserContextKey).(*models.User)
	return user, ok && user != nil
}
