package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/rajmohan-14/Travel-itinerary/internal/services"
)

// RequireAuth validates the Bearer session token and rejects revoked
// sessions. Claims land in locals for the handlers.
func RequireAuth(jwtManager *services.JWTManager, sessions services.SessionStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authentication required",
			})
		}

		claims, err := jwtManager.VerifyToken(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid or expired session",
			})
		}

		revoked, err := sessions.IsTokenRevoked(c.Context(), claims.TokenID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to check session",
			})
		}
		if revoked {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Session has been logged out",
			})
		}

		c.Locals("userID", claims.UserID)
		c.Locals("phone", claims.Phone)
		c.Locals("tokenID", claims.TokenID)
		c.Locals("tokenExp", claims.ExpiresAt)
		return c.Next()
	}
}
