package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var errNoUser = errors.New("could not identify user")

// currentUserID reads the authenticated user id set by the JWT middleware.
func currentUserID(c *fiber.Ctx) (uuid.UUID, error) {
	userIDStr, _ := c.Locals("userId").(string)
	uid, err := uuid.Parse(userIDStr)
	if err != nil {
		return uuid.Nil, errNoUser
	}
	return uid, nil
}
