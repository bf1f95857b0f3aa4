package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// Handlers groups the CMS handlers mounted under /api
type Handlers struct {
	Products *ProductHandler
	Blog     *BlogHandler
	Gallery  *GalleryHandler
	Chatbot  *ChatbotHandler
	Contact  *ContactHandler
	Admin    *AdminHandler
}

// RateLimit bounds public write endpoints per client IP
type RateLimit struct {
	Max        int
	Expiration time.Duration
}

// RegisterRoutes mounts the public and admin routes on api. requireAuth
// guards every admin route.
func (h *Handlers) RegisterRoutes(api fiber.Router, requireAuth fiber.Handler, rl RateLimit) {
	products := api.Group("/products")
	products.Get("/", h.Products.ListProducts)
	products.Get("/:id", h.Products.GetProduct)
	products.Get("/:id/qr", h.Products.GetProductQR)
	products.Post("/", requireAuth, h.Products.CreateProduct)
	products.Put("/:id", requireAuth, h.Products.UpdateProduct)
	products.Delete("/:id", requireAuth, h.Products.DeleteProduct)

	blog := api.Group("/blog")
	blog.Get("/", h.Blog.ListPosts)
	blog.Get("/:id", h.Blog.GetPost)
	blog.Post("/", requireAuth, h.Blog.CreatePost)
	blog.Put("/:id", requireAuth, h.Blog.UpdatePost)
	blog.Delete("/:id", requireAuth, h.Blog.DeletePost)

	gallery := api.Group("/gallery")
	gallery.Get("/", h.Gallery.ListItems)
	gallery.Post("/", requireAuth, h.Gallery.CreateItem)
	gallery.Delete("/:id", requireAuth, h.Gallery.DeleteItem)

	chat := api.Group("/chatbot")
	chat.Get("/settings", h.Chatbot.GetSettings)
	chat.Put("/settings", requireAuth, h.Chatbot.UpdateSettings)
	chat.Post("/message", rl.handler(), h.Chatbot.SendMessage)
	chat.Get("/logs", requireAuth, h.Chatbot.ListLogs)

	contact := api.Group("/contact")
	contact.Post("/", rl.handler(), h.Contact.Submit)
	contact.Get("/messages", requireAuth, h.Contact.ListMessages)
	contact.Delete("/messages/:id", requireAuth, h.Contact.DeleteMessage)

	api.Get("/dashboard/stats", requireAuth, h.Admin.GetStats)

	admin := api.Group("/admin", requireAuth)
	admin.Get("/export/products", h.Admin.ExportProducts)
	admin.Get("/export/contact-messages", h.Admin.ExportContactMessages)
	admin.Get("/audit-logs", h.Admin.GetAuditLogs)
}

func (rl RateLimit) handler() fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        rl.Max,
		Expiration: rl.Expiration,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later",
			})
		},
	})
}
