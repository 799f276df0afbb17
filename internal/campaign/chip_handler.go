package campaign

import (
	"unnichat-backend/internal/auth"
	"unnichat-backend/internal/store"

	"github.com/gofiber/fiber/v2"
)

// GET /api/chips
func ListChipsHandler(s Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, err := auth.IdentityFrom(c)
		if err != nil {
			return err
		}

		chips, err := s.ListChips(c.UserContext(), identity)
		if err != nil {
			return err
		}
		return c.JSON(chips)
	}
}

// POST /api/chips
func CreateChipHandler(s Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, err := auth.IdentityFrom(c)
		if err != nil {
			return err
		}

		var body store.CreateChipInput
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		id, err := s.CreateChip(c.UserContext(), identity, body)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(CreatedResponse{ID: id})
	}
}
