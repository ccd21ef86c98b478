// internal/transport/http/email.go
package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"remindme-service/internal/email"
	"remindme-service/pkg/models"
)

// SendEmail succeeds for any body while SMTP is unconfigured and reports the
// placeholder notice. With SMTP configured the address must be valid and the
// message is queued for background delivery.
func (h *Handler) SendEmail(c *fiber.Ctx) error {
	var req models.EmailSendRequest
	if err := c.BodyParser(&req); err != nil {
		return detail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.ToEmail = strings.TrimSpace(req.ToEmail)
	if h.Sender.Enabled() && !models.ValidEmail(req.ToEmail) {
		return detail(c, fiber.StatusBadRequest, "Invalid email address")
	}

	notice := email.PlaceholderNotice
	if h.Sender.Queue(req.ToEmail, req.Subject, req.Body) {
		notice = email.QueuedNotice
	}

	return c.JSON(fiber.Map{
		"message": notice,
		"to":      req.ToEmail,
		"subject": req.Subject,
	})
}
