package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"unnichat-backend/internal/apperr"
	"unnichat-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUsers map[string]*models.User

func (f fakeUsers) FindUserByEmail(_ context.Context, email string) (*models.User, error) {
	if u, ok := f[email]; ok {
		return u, nil
	}
	return nil, apperr.NotFound("user not found")
}

type brokenUsers struct{}

func (brokenUsers) FindUserByEmail(context.Context, string) (*models.User, error) {
	return nil, errors.New("disk on fire")
}

func newTestService(t *testing.T) (*Service, *TokenManager) {
	t.Helper()

	hash, err := HashPassword("secret123")
	require.NoError(t, err)

	users := fakeUsers{
		"client@acme.com": {ID: 2, Email: "client@acme.com", PasswordHash: hash,
			Role: models.RoleClient, TenantID: uintPtr(5), Status: models.StatusActive},
		"gone@acme.com": {ID: 3, Email: "gone@acme.com", PasswordHash: hash,
			Role: models.RoleAdmin, Status: models.StatusInactive},
	}
	tokens := NewTokenManager(testSecret, time.Hour)
	return NewService(users, tokens), tokens
}

func TestLoginSuccess(t *testing.T) {
	svc, tokens := newTestService(t)

	res, err := svc.Login(context.Background(), "  Client@Acme.com ", "secret123")
	require.NoError(t, err)
	assert.Equal(t, uint(2), res.User.ID)

	identity, err := tokens.Parse(res.Token)
	require.NoError(t, err)
	assert.Equal(t, models.RoleClient, identity.Role)
	assert.Equal(t, uint(5), *identity.TenantID)
}

func TestLoginFailuresLookAlike(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	cases := map[string][2]string{
		"unknown email":  {"nobody@acme.com", "secret123"},
		"wrong password": {"client@acme.com", "secret124"},
		"inactive user":  {"gone@acme.com", "secret123"},
		"empty password": {"client@acme.com", ""},
		"empty email":    {"", "secret123"},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Login(ctx, c[0], c[1])
			assert.ErrorIs(t, err, apperr.ErrInvalidCredentials)
		})
	}
}

func TestLoginStoreErrorPassesThrough(t *testing.T) {
	svc := NewService(brokenUsers{}, NewTokenManager(testSecret, time.Hour))

	_, err := svc.Login(context.Background(), "a@acme.com", "secret123")
	require.Error(t, err)
	assert.NotErrorIs(t, err, apperr.ErrInvalidCredentials)
}
