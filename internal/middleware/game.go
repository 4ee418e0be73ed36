package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// RequireGameID rejects requests whose :gameId is not a well-formed game ID
// and stores the normalised ID in locals for the handlers.
func RequireGameID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("gameId"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "game ID is malformed",
			})
		}

		c.Locals("gameID", id.String())
		return c.Next()
	}
}
