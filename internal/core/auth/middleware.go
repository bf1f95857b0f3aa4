package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/sinfini-marketing/sinfini-web-be/internal/core/audit"
)

const localsUsername = "username"

// AuthMiddleware creates a middleware that validates bearer JWT tokens
func AuthMiddleware(authService *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error":   "missing_authorization",
				"message": "Missing authorization header",
			})
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error":   "invalid_token",
				"message": "Invalid authorization header format. Use: Bearer <token>",
			})
		}

		claims, err := authService.ValidateToken(strings.TrimSpace(parts[1]))
		if errors.Is(err, jwt.ErrTokenExpired) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error":   "token_expired",
				"message": "Token has expired",
			})
		}
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error":   "invalid_token",
				"message": "Invalid or expired token",
			})
		}

		c.Locals(localsUsername, claims.Username)
		return c.Next()
	}
}

// Username returns the authenticated username, or "" outside AuthMiddleware
func Username(c *fiber.Ctx) string {
	username, _ := c.Locals(localsUsername).(string)
	return username
}

// ActorFrom describes the caller for audit records
func ActorFrom(c *fiber.Ctx) audit.Actor {
	username := Username(c)
	if username == "" {
		username = "anonymous"
	}
	return audit.Actor{
		Username:  username,
		IPAddress: c.IP(),
		UserAgent: c.Get(fiber.HeaderUserAgent),
		Method:    c.Method(),
		Endpoint:  c.Path(),
	}
}
