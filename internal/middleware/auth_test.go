package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"remindme-service/internal/service"
	"remindme-service/pkg/models"
)

type fakeTokens map[string]string

func (f fakeTokens) Subject(token string) (string, error) {
	if sub, ok := f[token]; ok {
		return sub, nil
	}
	return "", errors.New("invalid token")
}

type fakeUsers map[string]*models.User

func (f fakeUsers) GetByUserID(_ context.Context, id string) (*models.User, error) {
	if u, ok := f[id]; ok {
		return u, nil
	}
	return nil, service.ErrNotFound
}

func newApp() *fiber.App {
	app := fiber.New()
	tokens := fakeTokens{"good": "u1", "orphan": "deleted"}
	users := fakeUsers{"u1": {UserID: "u1", Name: "Ann"}}
	app.Get("/me", Auth(tokens, users, zap.NewNop()), func(c *fiber.Ctx) error {
		id, _ := GetUserIDFromContext(c)
		user, _ := GetUserFromContext(c)
		return c.JSON(fiber.Map{"id": id, "name": user.Name})
	})
	return app
}

func TestAuth(t *testing.T) {
	tests := []struct {
		name   string
		header string
		status int
		detail string
	}{
		{"valid", "Bearer good", fiber.StatusOK, ""},
		{"lowercase scheme", "bearer good", fiber.StatusOK, ""},
		{"missing", "", fiber.StatusUnauthorized, msgInvalidCredentials},
		{"wrong scheme", "Basic good", fiber.StatusUnauthorized, msgInvalidCredentials},
		{"bad token", "Bearer forged", fiber.StatusUnauthorized, msgInvalidCredentials},
		{"deleted user", "Bearer orphan", fiber.StatusUnauthorized, msgUserNotFound},
	}
	app := newApp()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, tt.status, resp.StatusCode)

			var body map[string]string
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			if tt.status == fiber.StatusOK {
				assert.Equal(t, "u1", body["id"])
				assert.Equal(t, "Ann", body["name"])
			} else {
				assert.Equal(t, tt.detail, body["detail"])
				assert.Equal(t, "Bearer", resp.Header.Get("WWW-Authenticate"))
			}
		})
	}
}
