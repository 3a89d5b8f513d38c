package middleware

import (
	"errors"

	"passkey_auth_ms/apperrors"
	"passkey_auth_ms/services"

	"github.com/gofiber/fiber/v2"
)

// RequireAuth gates a route on the identity cookie and, unless a route opts
// out, the two-factor elevation cookie. The resolved user id lands in
// c.Locals("userId"). Failures carry a redirect hint so clients know which
// step of the flow to restart.
func RequireAuth(session services.ISessionService, requireTwoFactor bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := session.Authenticate(c, requireTwoFactor)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotElevated) {
				return c.Status(apperrors.Status(err)).JSON(fiber.Map{
					"error":    err.Error(),
					"redirect": "/login/verify",
				})
			}
			return c.Status(apperrors.Status(apperrors.ErrUnauthenticated)).JSON(fiber.Map{
				"error":    apperrors.ErrUnauthenticated.Error(),
				"redirect": "/login",
			})
		}

		c.Locals("userId", userID)
		return c.Next()
	}
}

// UserID reads the id RequireAuth stored on the request context.
func UserID(c *fiber.Ctx) uint {
	id, _ := c.Locals("userId").(uint)
	return id
}
