package audit

import (
	"github.com/gofiber/fiber/v2"
)

// GET /api/audit-logs?limit=100
func ListAuditLogsHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit := c.QueryInt("limit", DefaultListLimit)

		logs, err := svc.List(c.UserContext(), limit)
		if err != nil {
			return err
		}
		return c.JSON(logs)
	}
}
