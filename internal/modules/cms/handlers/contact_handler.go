package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sinfini-marketing/sinfini-web-be/internal/core/auth"
	"github.com/sinfini-marketing/sinfini-web-be/internal/modules/cms/models"
	"github.com/sinfini-marketing/sinfini-web-be/internal/modules/cms/services"
)

type ContactHandler struct {
	contactService *services.ContactService
}

func NewContactHandler(contactService *services.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// Submit godoc
// @Summary Send a contact message
// @Description Stores the message and notifies the sales inbox by email when configured
// @Tags Contact
// @Accept json
// @Produce json
// @Param message body models.ContactRequest true "Contact form"
// @Success 200 {object} models.ContactResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 429 {object} map[string]interface{}
// @Router /api/contact [post]
func (h *ContactHandler) Submit(c *fiber.Ctx) error {
	var req models.ContactRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	msg, err := h.contactService.Submit(c.UserContext(), &req, c.IP())
	if err != nil {
		return respondError(c, err, "send message")
	}
	return c.JSON(models.ContactResponse{
		Message:   "Message sent successfully",
		Reference: msg.Reference.String(),
	})
}

// ListMessages godoc
// @Summary List contact messages
// @Tags Contact
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(20)
// @Success 200 {object} models.ContactMessageListResponse
// @Router /api/contact/messages [get]
func (h *ContactHandler) ListMessages(c *fiber.Ctx) error {
	resp, err := h.contactService.ListMessages(c.UserContext(), models.Pagination{
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("page_size", 20),
	})
	if err != nil {
		return respondError(c, err, "fetch contact messages")
	}
	return c.JSON(resp)
}

// DeleteMessage godoc
// @Summary Delete a contact message
// @Tags Contact
// @Produce json
// @Security BearerAuth
// @Param id path int true "Message ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/contact/messages/{id} [delete]
func (h *ContactHandler) DeleteMessage(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}

	if err := h.contactService.DeleteMessage(c.UserContext(), auth.ActorFrom(c), id); err != nil {
		return respondError(c, err, "delete contact message")
	}
	return c.JSON(fiber.Map{"message": "Contact message deleted successfully"})
}
