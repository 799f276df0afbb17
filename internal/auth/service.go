package auth

import (
	"context"
	"errors"
	"strings"

	"unnichat-backend/internal/apperr"
	"unnichat-backend/internal/models"
)

// UserFinder is the credential store the session issuer reads from.
type UserFinder interface {
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
}

type Service struct {
	users  UserFinder
	tokens *TokenManager
}

func NewService(users UserFinder, tokens *TokenManager) *Service {
	return &Service{users: users, tokens: tokens}
}

type LoginResult struct {
	Token string
	User  *models.User
}

// Login checks the credentials and issues a session token. Unknown emails,
// wrong passwords and inactive accounts all fail the same way.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, apperr.ErrInvalidCredentials
	}

	user, err := s.users.FindUserByEmail(ctx, email)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, apperr.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !CheckPassword(user.PasswordHash, password) || user.Status != models.StatusActive {
		return nil, apperr.ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, User: user}, nil
}
