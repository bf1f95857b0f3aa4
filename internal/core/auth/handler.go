package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/sinfini-marketing/sinfini-web-be/internal/core/audit"
	"github.com/sinfini-marketing/sinfini-web-be/internal/shared/utils"
)

type Handler struct {
	authService  *Service
	auditService *audit.Service
}

// NewHandler creates a new auth handler
func NewHandler(authService *Service, auditService *audit.Service) *Handler {
	return &Handler{
		authService:  authService,
		auditService: auditService,
	}
}

// RegisterRoutes mounts login, verify and logout under router
func (h *Handler) RegisterRoutes(router fiber.Router) {
	group := router.Group("/auth")
	group.Post("/login", h.Login)
	group.Get("/verify", AuthMiddleware(h.authService), h.Verify)
	group.Post("/logout", AuthMiddleware(h.authService), h.Logout)
}

// Login godoc
// @Summary Login with username and password
// @Description Authenticate the admin and return a bearer token
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Router /api/auth/login [post]
func (h *Handler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	authResponse, err := h.authService.Login(c.UserContext(), &req)
	switch {
	case errors.Is(err, ErrMissingFields):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Username and password are required",
		})
	case errors.Is(err, ErrInvalidCredentials):
		utils.LogWarn("Login failed", map[string]interface{}{
			"username": req.Username,
			"ip":       c.IP(),
		})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid credentials",
		})
	case err != nil:
		utils.LogError("Login error", err, map[string]interface{}{"username": req.Username})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Login failed",
		})
	}

	actor := ActorFrom(c)
	actor.Username = req.Username
	h.auditService.Record(c.UserContext(), actor, audit.ActionLogin, "session", req.Username, nil, nil)

	return c.JSON(authResponse)
}

// Verify godoc
// @Summary Verify token
// @Description Return the user the bearer token belongs to
// @Tags Authentication
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Router /api/auth/verify [get]
func (h *Handler) Verify(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"user": UserInfo{Username: Username(c)},
	})
}

// Logout godoc
// @Summary Logout
// @Description Tokens are stateless; the client discards its token. The logout is audited.
// @Tags Authentication
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Router /api/auth/logout [post]
func (h *Handler) Logout(c *fiber.Ctx) error {
	username := Username(c)
	h.auditService.Record(c.UserContext(), ActorFrom(c), audit.ActionLogout, "session", username, nil, nil)

	return c.JSON(fiber.Map{
		"message": "Logged out successfully",
	})
}
