package http

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"remindme-service/internal/upcoming"
	"remindme-service/pkg/models"
)

const reminderNotFound = "Reminder not found"

func (h *Handler) CreateReminder(c *fiber.Ctx) error {
	var req models.ReminderRequest
	if err := c.BodyParser(&req); err != nil {
		return detail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	reminder, err := h.Reminders.Create(c.UserContext(), userID(c), &req)
	if err != nil {
		return fail(c, err, contactNotFound)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"reminder_id": reminder.ReminderID,
		"message":     "Reminder created successfully",
	})
}

func (h *Handler) ListReminders(c *fiber.Ctx) error {
	reminders, err := h.Reminders.List(c.UserContext(), userID(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"reminders": reminders})
}

func (h *Handler) GetReminder(c *fiber.Ctx) error {
	reminder, err := h.Reminders.Get(c.UserContext(), userID(c), c.Params("id"))
	if err != nil {
		return fail(c, err, reminderNotFound)
	}
	return c.JSON(reminder)
}

func (h *Handler) DeleteReminder(c *fiber.Ctx) error {
	if err := h.Reminders.Delete(c.UserContext(), userID(c), c.Params("id")); err != nil {
		return fail(c, err, reminderNotFound)
	}
	return c.JSON(fiber.Map{"message": "Reminder deleted successfully"})
}

// UpcomingReminders lists reminders triggering within ?days= (default 30).
// Reminders with unreadable dates are logged and left out.
func (h *Handler) UpcomingReminders(c *fiber.Ctx) error {
	days, err := getQueryInt(c, "days", upcoming.DefaultWindowDays, 0, 3650)
	if err != nil {
		return detail(c, fiber.StatusBadRequest, err.Error())
	}
	uid := userID(c)
	proj, err := h.Projector.Project(c.UserContext(), uid, days, upcoming.Day(h.now().UTC()))
	if err != nil {
		return err
	}
	for _, s := range proj.Skipped {
		h.log.Warn("[REMINDERS] skipped reminder with unreadable date",
			zap.String("user_id", uid),
			zap.String("reminder_id", s.ReminderID),
			zap.String("occasion_date", s.OccasionDate))
	}
	return c.JSON(fiber.Map{"upcoming_reminders": proj.Upcoming})
}
