package auth

import (
	"strings"

	"unnichat-backend/internal/apperr"
	"unnichat-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

const CtxIdentityKey = "identity"

// JWTMiddleware rejects requests without a valid bearer token and stores the
// resolved identity in the request locals.
func JWTMiddleware(tokens *TokenManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw, err := bearerToken(c.Get(fiber.HeaderAuthorization))
		if err != nil {
			return err
		}

		identity, err := tokens.Parse(raw)
		if err != nil {
			return err
		}

		c.Locals(CtxIdentityKey, identity)
		return c.Next()
	}
}

func bearerToken(header string) (string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", apperr.ErrMissingToken
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", apperr.ErrMissingToken
	}
	return strings.TrimSpace(parts[1]), nil
}

// IdentityFrom returns the caller set by JWTMiddleware.
func IdentityFrom(c *fiber.Ctx) (models.Identity, error) {
	identity, ok := c.Locals(CtxIdentityKey).(models.Identity)
	if !ok {
		return models.Identity{}, apperr.ErrMissingToken
	}
	return identity, nil
}

func RequireRole(allowedRoles ...models.UserRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, err := IdentityFrom(c)
		if err != nil {
			return err
		}

		for _, r := range allowedRoles {
			if r == identity.Role {
				return c.Next()
			}
		}
		return apperr.Forbidden("this action requires one of the roles %v", allowedRoles)
	}
}
