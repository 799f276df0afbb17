// Package server assembles the Fiber application: middleware, API routes and
// the dashboard frontend.
package server

import (
	"context"
	"strings"
	"time"

	"unnichat-backend/internal/admin"
	"unnichat-backend/internal/audit"
	"unnichat-backend/internal/auth"
	"unnichat-backend/internal/campaign"
	"unnichat-backend/internal/config"
	"unnichat-backend/internal/dashboard"
	"unnichat-backend/internal/database"
	"unnichat-backend/internal/middleware"
	"unnichat-backend/internal/models"
	"unnichat-backend/internal/store"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

const uploadLimit = 10 << 20

type Deps struct {
	Config   *config.Config
	DB       *gorm.DB
	Logger   zerolog.Logger
	Registry *prometheus.Registry
}

func New(d Deps) *fiber.App {
	cfg := d.Config
	reg := d.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	}

	app := fiber.New(fiber.Config{
		AppName:      "unnichat",
		ErrorHandler: ErrorHandler,
		BodyLimit:    uploadLimit,
	})

	metrics := middleware.NewMetrics(reg)
	app.Use(middleware.RequestID(d.Logger))
	app.Use(metrics.Handler())
	app.Use(middleware.RequestLogger())
	app.Use(recover.New())

	origins := strings.Split(cfg.CORSOrigins, ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:  strings.Join(origins, ","),
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization, X-Request-ID",
		AllowMethods:  "GET,POST,PUT,OPTIONS",
		ExposeHeaders: "Content-Disposition, X-Request-ID",
	}))

	app.Get("/health", healthHandler(d.DB))
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})))

	st := store.New(d.DB)
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)
	registerAPI(app, st, tokens, audit.NewService(d.DB))

	mountFrontend(app, cfg)
	return app
}

func registerAPI(app *fiber.App, st *store.Store, tokens *auth.TokenManager, auditSvc *audit.Service) {
	api := app.Group("/api")

	// Public
	api.Post("/auth/login", auth.LoginHandler(auth.NewService(st, tokens)))

	protected := api.Group("", auth.JWTMiddleware(tokens))
	adminOnly := auth.RequireRole(models.RoleAdmin)

	protected.Get("/auth/me", auth.MeHandler(st))

	// Clients
	protected.Get("/clients", adminOnly, admin.ListClientsHandler(st))
	protected.Get("/clients/:id", adminOnly, admin.GetClientHandler(st))
	protected.Post("/clients", adminOnly, admin.CreateClientHandler(st))
	protected.Put("/clients/:id", adminOnly, admin.UpdateClientHandler(st))

	// Chips
	protected.Get("/chips", campaign.ListChipsHandler(st))
	protected.Post("/chips", adminOnly, campaign.CreateChipHandler(st))

	// Dispatch logs
	protected.Get("/logs", campaign.ListLogsHandler(st))
	protected.Post("/logs", campaign.CreateLogHandler(st))
	protected.Get("/logs/export", campaign.ExportLogsHandler(st))
	protected.Post("/logs/import", campaign.ImportLogsHandler(st))

	// Users
	protected.Get("/users", adminOnly, admin.ListUsersHandler(st))
	protected.Post("/users", adminOnly, admin.CreateUserHandler(st))
	protected.Put("/users/:id/status", adminOnly, admin.SetUserStatusHandler(st))

	protected.Get("/stats", dashboard.StatsHandler(st))
	protected.Get("/audit-logs", adminOnly, audit.ListAuditLogsHandler(auditSvc))

	api.All("/*", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "route not found")
	})
}

// GET /health
func healthHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()

		if err := database.Ping(ctx, db); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable"})
		}
		return c.JSON(fiber.Map{"status": "ok"})
	}
}
