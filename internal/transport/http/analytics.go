package http

import (
	"github.com/gofiber/fiber/v2"

	"remindme-service/internal/service"
)

func (h *Handler) StaleContacts(c *fiber.Ctx) error {
	months, err := getQueryInt(c, "months", service.DashboardStaleMonths, 0, 1200)
	if err != nil {
		return detail(c, fiber.StatusBadRequest, err.Error())
	}
	contacts, err := h.Contacts.Stale(c.UserContext(), userID(c), service.StaleCutoff(h.now(), months))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"stale_contacts": contacts, "count": len(contacts)})
}

func (h *Handler) Dashboard(c *fiber.Ctx) error {
	d, err := h.Analytics.Dashboard(c.UserContext(), userID(c), h.now())
	if err != nil {
		return err
	}
	return c.JSON(d)
}
