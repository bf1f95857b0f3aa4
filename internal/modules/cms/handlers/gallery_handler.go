package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sinfini-marketing/sinfini-web-be/internal/core/auth"
	"github.com/sinfini-marketing/sinfini-web-be/internal/modules/cms/models"
	"github.com/sinfini-marketing/sinfini-web-be/internal/modules/cms/services"
)

type GalleryHandler struct {
	galleryService *services.GalleryService
}

func NewGalleryHandler(galleryService *services.GalleryService) *GalleryHandler {
	return &GalleryHandler{galleryService: galleryService}
}

// ListItems godoc
// @Summary List gallery items
// @Tags Gallery
// @Produce json
// @Param media_type query string false "image or video"
// @Success 200 {array} models.GalleryItem
// @Failure 400 {object} map[string]interface{}
// @Router /api/gallery [get]
func (h *GalleryHandler) ListItems(c *fiber.Ctx) error {
	items, err := h.galleryService.ListItems(c.UserContext(), c.Query("media_type"))
	if err != nil {
		return respondError(c, err, "fetch gallery items")
	}
	return c.JSON(items)
}

// CreateItem godoc
// @Summary Add a gallery item
// @Description media_type is inferred from the URL extension when omitted
// @Tags Gallery
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param item body models.CreateGalleryItemRequest true "Gallery item"
// @Success 201 {object} models.GalleryItem
// @Failure 400 {object} map[string]interface{}
// @Router /api/gallery [post]
func (h *GalleryHandler) CreateItem(c *fiber.Ctx) error {
	var req models.CreateGalleryItemRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	item, err := h.galleryService.CreateItem(c.UserContext(), auth.ActorFrom(c), &req)
	if err != nil {
		return respondError(c, err, "create gallery item")
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// DeleteItem godoc
// @Summary Delete a gallery item
// @Tags Gallery
// @Produce json
// @Security BearerAuth
// @Param id path int true "Gallery item ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/gallery/{id} [delete]
func (h *GalleryHandler) DeleteItem(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}

	if err := h.galleryService.DeleteItem(c.UserContext(), auth.ActorFrom(c), id); err != nil {
		return respondError(c, err, "delete gallery item")
	}
	return c.JSON(fiber.Map{"message": "Gallery item deleted successfully"})
}
