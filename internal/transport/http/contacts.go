package http

import (
	"github.com/gofiber/fiber/v2"

	"remindme-service/pkg/models"
)

const contactNotFound = "Contact not found"

func (h *Handler) CreateContact(c *fiber.Ctx) error {
	var req models.ContactRequest
	if err := c.BodyParser(&req); err != nil {
		return detail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	contact, err := h.Contacts.Create(c.UserContext(), userID(c), &req)
	if err != nil {
		return fail(c, err, contactNotFound)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"contact_id": contact.ContactID,
		"message":    "Contact created successfully",
	})
}

func (h *Handler) ListContacts(c *fiber.Ctx) error {
	contacts, err := h.Contacts.List(c.UserContext(), userID(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"contacts": contacts})
}

func (h *Handler) GetContact(c *fiber.Ctx) error {
	contact, err := h.Contacts.Get(c.UserContext(), userID(c), c.Params("id"))
	if err != nil {
		return fail(c, err, contactNotFound)
	}
	return c.JSON(contact)
}

func (h *Handler) UpdateContact(c *fiber.Ctx) error {
	var req models.ContactUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return detail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if _, err := h.Contacts.Update(c.UserContext(), userID(c), c.Params("id"), &req); err != nil {
		return fail(c, err, contactNotFound)
	}
	return c.JSON(fiber.Map{"message": "Contact updated successfully"})
}

func (h *Handler) DeleteContact(c *fiber.Ctx) error {
	if err := h.Contacts.Delete(c.UserContext(), userID(c), c.Params("id")); err != nil {
		return fail(c, err, contactNotFound)
	}
	return c.JSON(fiber.Map{"message": "Contact deleted successfully"})
}
