package middleware

import (
	"unnichat-backend/internal/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const HeaderRequestID = "X-Request-ID"

// RequestID tags each request with an id, reusing the caller's X-Request-ID
// when present, and stores a logger carrying that id in the locals.
func RequestID(base zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(HeaderRequestID)
		if id == "" || len(id) > 64 {
			id = uuid.NewString()
		}

		c.Set(HeaderRequestID, id)

		log := base.With().Str("request_id", id).Logger()
		c.Locals(logger.LocalsKey, &log)

		return c.Next()
	}
}
