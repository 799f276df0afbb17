// Package testutil builds throwaway databases and fixtures for package tests.
package testutil

import (
	"testing"
	"time"

	"unnichat-backend/internal/auth"
	"unnichat-backend/internal/database"
	"unnichat-backend/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const (
	Secret   = "test-secret-that-is-long-enough-for-hs256"
	Password = "secret123"
)

// NewDB returns a migrated in-memory database closed at the end of the test.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := database.OpenMemory(zerolog.Nop())
	require.NoError(t, err)

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func Tokens() *auth.TokenManager {
	return auth.NewTokenManager(Secret, time.Hour)
}

func SeedTenant(t testing.TB, db *gorm.DB, name string) models.Tenant {
	t.Helper()

	tenant := models.Tenant{Name: name, Status: models.StatusActive}
	require.NoError(t, db.Create(&tenant).Error)
	return tenant
}

func SeedChip(t testing.TB, db *gorm.DB, tenantID uint, name, number string) models.Chip {
	t.Helper()

	chip := models.Chip{
		TenantID: tenantID,
		Name:     name,
		Number:   number,
		Platform: models.DefaultChipPlatform,
		Status:   models.StatusActive,
	}
	require.NoError(t, db.Create(&chip).Error)
	return chip
}

func SeedLog(t testing.TB, db *gorm.DB, chipID uint, date string, leads int, tpl models.TemplateType, cost float64) models.DispatchLog {
	t.Helper()

	entry := models.DispatchLog{
		ChipID:       chipID,
		Date:         date,
		Action:       "campaign " + date,
		LeadsCount:   leads,
		TemplateType: tpl,
		Cost:         cost,
	}
	require.NoError(t, db.Create(&entry).Error)
	return entry
}

// SeedUser stores a user whose password is Password.
func SeedUser(t testing.TB, db *gorm.DB, email string, role models.UserRole, tenantID *uint) models.User {
	t.Helper()

	hash, err := auth.HashPassword(Password)
	require.NoError(t, err)

	user := models.User{
		TenantID:     tenantID,
		Name:         "User " + email,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Status:       models.StatusActive,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

// Token signs a session for user with Tokens().
func Token(t testing.TB, user models.User) string {
	t.Helper()

	token, err := Tokens().Generate(&user)
	require.NoError(t, err)
	return token
}

func Admin() models.Identity {
	return models.Identity{UserID: 1, Email: "admin@test.local", Role: models.RoleAdmin}
}

func Client(tenantID uint) models.Identity {
	return models.Identity{UserID: 2, Email: "client@test.local", Role: models.RoleClient, TenantID: &tenantID}
}
