package http

import (
	"github.com/gofiber/fiber/v2"

	"remindme-service/pkg/models"
)

// GenerateMessage always answers with text when the contact exists; model
// failures are absorbed by the composer's fallback.
func (h *Handler) GenerateMessage(c *fiber.Ctx) error {
	var req models.MessageGenerateRequest
	if err := c.BodyParser(&req); err != nil {
		return detail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	msg, err := h.Messages.Generate(c.UserContext(), userID(c), &req)
	if err != nil {
		return fail(c, err, contactNotFound)
	}
	return c.JSON(fiber.Map{
		"message":    msg.GeneratedMessage,
		"message_id": msg.MessageID,
	})
}

func (h *Handler) ListMessages(c *fiber.Ctx) error {
	messages, err := h.Messages.List(c.UserContext(), userID(c), c.Query("contact_id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"messages": messages})
}
