package admin

import (
	"context"

	"unnichat-backend/internal/auth"
	"unnichat-backend/internal/models"
	"unnichat-backend/internal/store"

	"github.com/gofiber/fiber/v2"
)

type UserStore interface {
	ListUsers(ctx context.Context, identity models.Identity) ([]models.UserView, error)
	CreateUser(ctx context.Context, identity models.Identity, in store.CreateUserInput) (uint, error)
	SetUserStatus(ctx context.Context, identity models.Identity, id uint, in store.SetUserStatusInput) error
}

// GET /api/users
func ListUsersHandler(s UserStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, err := auth.IdentityFrom(c)
		if err != nil {
			return err
		}

		users, err := s.ListUsers(c.UserContext(), identity)
		if err != nil {
			return err
		}
		return c.JSON(users)
	}
}

// POST /api/users
func CreateUserHandler(s UserStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, err := auth.IdentityFrom(c)
		if err != nil {
			return err
		}

		var body store.CreateUserInput
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		id, err := s.CreateUser(c.UserContext(), identity, body)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(CreatedResponse{ID: id})
	}
}

// PUT /api/users/:id/status
func SetUserStatusHandler(s UserStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, err := auth.IdentityFrom(c)
		if err != nil {
			return err
		}
		id, err := paramID(c)
		if err != nil {
			return err
		}

		var body store.SetUserStatusInput
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		if err := s.SetUserStatus(c.UserContext(), identity, id, body); err != nil {
			return err
		}
		return c.JSON(MessageResponse{Message: "user status updated"})
	}
}
