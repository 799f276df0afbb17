package auth

import (
	"fmt"
	"time"

	"unnichat-backend/internal/apperr"
	"unnichat-backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultLeeway absorbs clock skew between the issuer and the verifier.
const DefaultLeeway = 30 * time.Second

type Claims struct {
	UserID   uint            `json:"id"`
	Email    string          `json:"email"`
	Role     models.UserRole `json:"role"`
	TenantID *uint           `json:"tenant_id"`
	jwt.RegisteredClaims
}

// TokenManager signs and verifies session tokens with a server-held secret.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	leeway time.Duration
	now    func() time.Time
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		ttl:    ttl,
		leeway: DefaultLeeway,
		now:    time.Now,
	}
}

func (m *TokenManager) Generate(user *models.User) (string, error) {
	now := m.now()
	id := user.Identity()
	claims := &Claims{
		UserID:   id.UserID,
		Email:    id.Email,
		Role:     id.Role,
		TenantID: id.TenantID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprint(id.UserID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies the token and returns the identity it carries. Every failure
// is reported as apperr.ErrInvalidToken.
func (m *TokenManager) Parse(raw string) (models.Identity, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(m.leeway),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return models.Identity{}, fmt.Errorf("%w: %v", apperr.ErrInvalidToken, err)
	}

	if claims.UserID == 0 || !claims.Role.Valid() {
		return models.Identity{}, fmt.Errorf("%w: malformed claims", apperr.ErrInvalidToken)
	}
	if claims.Role == models.RoleClient && claims.TenantID == nil {
		return models.Identity{}, fmt.Errorf("%w: client token without tenant", apperr.ErrInvalidToken)
	}

	return models.Identity{
		UserID:   claims.UserID,
		Email:    claims.Email,
		Role:     claims.Role,
		TenantID: claims.TenantID,
	}, nil
}
