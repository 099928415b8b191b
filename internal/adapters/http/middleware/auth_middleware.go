package middleware

import (
	"log"
	"strings"

	"github.com/mohanbhogavarapu07/bolisetti-fast-api/internal/core/domain"
	"github.com/mohanbhogavarapu07/bolisetti-fast-api/internal/core/services"
	"github.com/mohanbhogavarapu07/bolisetti-fast-api/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// bearerToken extracts the token from the Authorization header
func bearerToken(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

// CitizenAuth resolves the citizen principal for protected citizen routes.
// Signature, claims, session liveness and user liveness are all re-checked
// on every request.
func CitizenAuth(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c)
		if token == "" {
			return response.Unauthorized(c, "Could not validate credentials")
		}

		principal, err := authService.ResolveCitizen(c.Context(), token)
		if err != nil {
			if domain.IsStoreError(err) {
				log.Printf("❌ Citizen resolution store failure: %v", err)
				return response.ServiceUnavailable(c, "Service temporarily unavailable")
			}
			return response.Unauthorized(c, "Could not validate credentials")
		}

		c.Locals("principal", principal)
		c.Locals("userID", principal.User.ID)
		c.Locals("phoneNumber", principal.User.PhoneNumber)
		return c.Next()
	}
}

// AdminAuth resolves the admin principal for protected admin routes
func AdminAuth(adminService *services.AdminService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c)
		if token == "" {
			return response.Unauthorized(c, "Could not validate admin credentials")
		}

		principal, err := adminService.ResolveAdmin(c.Context(), token)
		if err != nil {
			if domain.IsStoreError(err) {
				log.Printf("❌ Admin resolution store failure: %v", err)
				return response.ServiceUnavailable(c, "Service temporarily unavailable")
			}
			return response.Unauthorized(c, "Could not validate admin credentials")
		}

		c.Locals("principal", principal)
		c.Locals("adminID", principal.Admin.ID)
		return c.Next()
	}
}
