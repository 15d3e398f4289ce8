package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// getUserID reads the authenticated user's id set by the auth middleware.
func getUserID(c *fiber.Ctx) (uuid.UUID, error) {
	raw, ok := c.Locals("userID").(string)
	if !ok || raw == "" {
		return uuid.Nil, errors.New("missing user id in context")
	}
	return uuid.Parse(raw)
}
