// Package admin holds the administrator-only endpoints: client companies and
// dashboard users.
package admin

import (
	"context"

	"unnichat-backend/internal/auth"
	"unnichat-backend/internal/models"
	"unnichat-backend/internal/store"

	"github.com/gofiber/fiber/v2"
)

type TenantStore interface {
	ListTenants(ctx context.Context, identity models.Identity) ([]models.Tenant, error)
	GetTenant(ctx context.Context, identity models.Identity, id uint) (*models.Tenant, error)
	CreateTenant(ctx context.Context, identity models.Identity, in store.CreateTenantInput) (uint, error)
	UpdateTenant(ctx context.Context, identity models.Identity, id uint, in store.UpdateTenantInput) error
}

type CreatedResponse struct {
	ID uint `json:"id"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func paramID(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}
	return uint(id), nil
}

// GET /api/clients
func ListClientsHandler(s TenantStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, err := auth.IdentityFrom(c)
		if err != nil {
			return err
		}

		tenants, err := s.ListTenants(c.UserContext(), identity)
		if err != nil {
			return err
		}
		return c.JSON(tenants)
	}
}

// GET /api/clients/:id
func GetClientHandler(s TenantStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, err := auth.IdentityFrom(c)
		if err != nil {
			return err
		}
		id, err := paramID(c)
		if err != nil {
			return err
		}

		tenant, err := s.GetTenant(c.UserContext(), identity, id)
		if err != nil {
			return err
		}
		return c.JSON(tenant)
	}
}

// POST /api/clients
func CreateClientHandler(s TenantStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, err := auth.IdentityFrom(c)
		if err != nil {
			return err
		}

		var body store.CreateTenantInput
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		id, err := s.CreateTenant(c.UserContext(), identity, body)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(CreatedResponse{ID: id})
	}
}

// PUT /api/clients/:id
func UpdateClientHandler(s TenantStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, err := auth.IdentityFrom(c)
		if err != nil {
			return err
		}
		id, err := paramID(c)
		if err != nil {
			return err
		}

		var body store.UpdateTenantInput
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		if err := s.UpdateTenant(c.UserContext(), identity, id, body); err != nil {
			return err
		}
		return c.JSON(MessageResponse{Message: "client updated"})
	}
}
