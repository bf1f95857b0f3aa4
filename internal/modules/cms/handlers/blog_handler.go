package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sinfini-marketing/sinfini-web-be/internal/core/auth"
	"github.com/sinfini-marketing/sinfini-web-be/internal/modules/cms/models"
	"github.com/sinfini-marketing/sinfini-web-be/internal/modules/cms/services"
)

type BlogHandler struct {
	blogService *services.BlogService
}

func NewBlogHandler(blogService *services.BlogService) *BlogHandler {
	return &BlogHandler{blogService: blogService}
}

// ListPosts godoc
// @Summary List blog posts
// @Tags Blog
// @Produce json
// @Param limit query int false "Maximum number of posts"
// @Success 200 {array} models.BlogPost
// @Router /api/blog [get]
func (h *BlogHandler) ListPosts(c *fiber.Ctx) error {
	posts, err := h.blogService.ListPosts(c.UserContext(), c.QueryInt("limit", 0))
	if err != nil {
		return respondError(c, err, "fetch blog posts")
	}
	return c.JSON(posts)
}

// GetPost godoc
// @Summary Get blog post by ID
// @Tags Blog
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} models.BlogPost
// @Failure 404 {object} map[string]interface{}
// @Router /api/blog/{id} [get]
func (h *BlogHandler) GetPost(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}

	post, err := h.blogService.GetPost(c.UserContext(), id)
	if err != nil {
		return respondError(c, err, "fetch blog post")
	}
	return c.JSON(post)
}

// CreatePost godoc
// @Summary Create a blog post
// @Tags Blog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param post body models.CreateBlogPostRequest true "Post data"
// @Success 201 {object} models.BlogPost
// @Failure 400 {object} map[string]interface{}
// @Router /api/blog [post]
func (h *BlogHandler) CreatePost(c *fiber.Ctx) error {
	var req models.CreateBlogPostRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	post, err := h.blogService.CreatePost(c.UserContext(), auth.ActorFrom(c), &req)
	if err != nil {
		return respondError(c, err, "create blog post")
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// UpdatePost godoc
// @Summary Update a blog post
// @Tags Blog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Param post body models.UpdateBlogPostRequest true "Fields to change"
// @Success 200 {object} models.BlogPost
// @Failure 404 {object} map[string]interface{}
// @Router /api/blog/{id} [put]
func (h *BlogHandler) UpdatePost(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}

	var req models.UpdateBlogPostRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	post, err := h.blogService.UpdatePost(c.UserContext(), auth.ActorFrom(c), id, &req)
	if err != nil {
		return respondError(c, err, "update blog post")
	}
	return c.JSON(post)
}

// DeletePost godoc
// @Summary Delete a blog post
// @Tags Blog
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/blog/{id} [delete]
func (h *BlogHandler) DeletePost(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}

	if err := h.blogService.DeletePost(c.UserContext(), auth.ActorFrom(c), id); err != nil {
		return respondError(c, err, "delete blog post")
	}
	return c.JSON(fiber.Map{"message": "Blog post deleted successfully"})
}
