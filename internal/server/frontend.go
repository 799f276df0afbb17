package server

import (
	"path/filepath"
	"strings"

	"unnichat-backend/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/proxy"
)

// mountFrontend serves the dashboard SPA: built assets with an index.html
// fallback in production, the Vite dev server through a proxy in development.
func mountFrontend(app *fiber.App, cfg *config.Config) {
	if cfg.IsProduction() {
		if cfg.StaticDir == "" {
			return
		}
		app.Static("/", cfg.StaticDir, fiber.Static{Compress: true})
		app.Get("/*", func(c *fiber.Ctx) error {
			return c.SendFile(filepath.Join(cfg.StaticDir, "index.html"))
		})
		return
	}

	if cfg.DevAssetURL == "" {
		return
	}
	target := strings.TrimRight(cfg.DevAssetURL, "/")
	app.Use(func(c *fiber.Ctx) error {
		return proxy.Do(c, target+c.OriginalURL())
	})
}
