// Package store is the tenant-scoped data access layer. Every operation takes
// the caller's identity: admins read and write across tenants, client users
// only see and create rows whose tenant path leads to their own tenant.
package store

import (
	"context"
	"errors"

	"unnichat-backend/internal/apperr"
	"unnichat-backend/internal/models"

	"gorm.io/gorm"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) conn(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

func requireAdmin(identity models.Identity) error {
	if !identity.IsAdmin() {
		return apperr.Forbidden("administrator access required")
	}
	return nil
}

// scopeChipsToTenant confines a query that has the chips table in scope to
// the caller's tenant. Admin queries pass through unchanged.
func scopeChipsToTenant(identity models.Identity) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if tenantID, scoped := identity.TenantScope(); scoped {
			return db.Where("chips.client_id = ?", tenantID)
		}
		return db
	}
}

// logsWithChips joins each log to its chip so tenant scoping can apply.
func logsWithChips(db *gorm.DB) *gorm.DB {
	return db.Joins("JOIN chips ON chips.id = logs.chip_id")
}

// chipsWithTenant needs chips already in the query. Scopes run in order at
// execution time, after any Joins called directly on the chain.
func chipsWithTenant(db *gorm.DB) *gorm.DB {
	return db.Joins("JOIN clients ON clients.id = chips.client_id")
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func isDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

func statusOrDefault(s models.Status) models.Status {
	if s == "" {
		return models.StatusActive
	}
	return s
}
