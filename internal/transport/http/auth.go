package http

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"remindme-service/internal/middleware"
	"remindme-service/pkg/models"
)

func (h *Handler) authResponse(c *fiber.Ctx, status int, user *models.User) error {
	token, err := h.Tokens.Issue(user.UserID)
	if err != nil {
		return err
	}
	return c.Status(status).JSON(models.AuthResponse{
		UserID: user.UserID,
		Email:  user.Email,
		Name:   user.Name,
		Token:  token,
	})
}

func (h *Handler) Signup(c *fiber.Ctx) error {
	var req models.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return detail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	user, err := h.Users.Signup(c.UserContext(), &req)
	if err != nil {
		return fail(c, err, "User not found")
	}
	return h.authResponse(c, fiber.StatusCreated, user)
}

func (h *Handler) Login(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return detail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	user, err := h.Users.Authenticate(c.UserContext(), req.Email, req.Password)
	if err != nil {
		h.log.Info("[AUTH] login failed", zap.String("ip", c.IP()))
		return fail(c, err, "User not found")
	}
	return h.authResponse(c, fiber.StatusOK, user)
}

func (h *Handler) Me(c *fiber.Ctx) error {
	user, ok := middleware.GetUserFromContext(c)
	if !ok {
		return detail(c, fiber.StatusUnauthorized, "Invalid authentication credentials")
	}
	return c.JSON(user.Profile())
}
