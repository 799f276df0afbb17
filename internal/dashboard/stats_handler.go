package dashboard

import (
	"context"

	"unnichat-backend/internal/auth"
	"unnichat-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type StatsReader interface {
	GetStats(ctx context.Context, identity models.Identity) (*models.Stats, error)
}

// GET /api/stats
// Totals and cost breakdowns over the logs the caller can see.
func StatsHandler(s StatsReader) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, err := auth.IdentityFrom(c)
		if err != nil {
			return err
		}

		stats, err := s.GetStats(c.UserContext(), identity)
		if err != nil {
			return err
		}
		return c.JSON(stats)
	}
}
