package logger

import (
	"io"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// LocalsKey is where the request-scoped logger lives in fiber locals.
const LocalsKey = "logger"

// New builds the process logger: colored console output in development, JSON
// lines in production.
func New(level, env string) zerolog.Logger {
	var out io.Writer = os.Stderr
	if env != "production" {
		out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	zerolog.TimeFieldFormat = time.RFC3339
	return zerolog.New(out).Level(lvl).With().Timestamp().Str("service", "unnichat").Logger()
}

// FromCtx returns the request logger set by the request-id middleware, or a
// disabled logger.
func FromCtx(c *fiber.Ctx) *zerolog.Logger {
	if l, ok := c.Locals(LocalsKey).(*zerolog.Logger); ok {
		return l
	}
	nop := zerolog.Nop()
	return &nop
}
