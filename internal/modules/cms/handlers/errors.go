package handlers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/sinfini-marketing/sinfini-web-be/internal/modules/cms/services"
	"github.com/sinfini-marketing/sinfini-web-be/internal/shared/utils"
)

// respondError maps service errors to the API error shape. action names the
// failed operation in 500 responses, e.g. "fetch products".
func respondError(c *fiber.Ctx, err error, action string) error {
	switch {
	case errors.Is(err, services.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": strings.TrimPrefix(err.Error(), services.ErrValidation.Error()+": "),
		})
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": notFoundMessage(err),
		})
	default:
		utils.LogError("Failed to "+action, err, map[string]interface{}{
			"path": c.Path(),
		})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to " + action,
		})
	}
}

// notFoundMessage turns "blog_post not found" into "Blog post not found"
func notFoundMessage(err error) string {
	msg := strings.ReplaceAll(err.Error(), "_", " ")
	if msg == "" {
		return "Not found"
	}
	return strings.ToUpper(msg[:1]) + msg[1:]
}

// paramID parses the :id route parameter
func paramID(c *fiber.Ctx) (uint, bool) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func invalidID(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": "Invalid ID",
	})
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": "Invalid request body",
	})
}
