package auth

import (
	"context"

	"unnichat-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SessionUser struct {
	ID       uint            `json:"id"`
	Name     string          `json:"name"`
	Email    string          `json:"email"`
	Role     models.UserRole `json:"role"`
	TenantID *uint           `json:"tenant_id"`
}

type LoginResponse struct {
	Token string      `json:"token"`
	User  SessionUser `json:"user"`
}

// POST /api/auth/login
func LoginHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LoginRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		res, err := svc.Login(c.UserContext(), body.Email, body.Password)
		if err != nil {
			return err
		}

		return c.JSON(LoginResponse{
			Token: res.Token,
			User: SessionUser{
				ID:       res.User.ID,
				Name:     res.User.Name,
				Email:    res.User.Email,
				Role:     res.User.Role,
				TenantID: res.User.TenantID,
			},
		})
	}
}

// ProfileReader loads the full user row behind an identity.
type ProfileReader interface {
	Me(ctx context.Context, identity models.Identity) (*models.UserView, error)
}

// GET /api/auth/me
func MeHandler(profiles ProfileReader) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, err := IdentityFrom(c)
		if err != nil {
			return err
		}

		me, err := profiles.Me(c.UserContext(), identity)
		if err != nil {
			return err
		}
		return c.JSON(me)
	}
}
