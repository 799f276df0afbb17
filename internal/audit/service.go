package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"unnichat-backend/internal/models"

	"gorm.io/gorm"
)

const (
	EntityTenant = "clients"
	EntityChip   = "chips"
	EntityLog    = "logs"
	EntityUser   = "users"

	DefaultListLimit = 100
	MaxListLimit     = 500
)

type Entry struct {
	Actor       models.Identity
	TenantID    *uint
	EntityType  string
	EntityID    uint
	Action      models.AuditAction
	Description string
	Before      any
	After       any
}

// Record writes the entry with tx, so it commits or rolls back together with
// the change it describes.
func Record(tx *gorm.DB, e Entry) error {
	row := models.AuditLog{
		TenantID:    e.TenantID,
		UserID:      e.Actor.UserID,
		UserEmail:   e.Actor.Email,
		EntityType:  e.EntityType,
		EntityID:    e.EntityID,
		Action:      e.Action,
		Description: e.Description,
		BeforeData:  encode(e.Before),
		AfterData:   encode(e.After),
	}

	if err := tx.Create(&row).Error; err != nil {
		return fmt.Errorf("write audit log: %w", err)
	}
	return nil
}

func encode(v any) string {
	if v == nil {
		return "null"
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "null"
	}
	return string(b)
}

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// List returns the newest entries first.
func (s *Service) List(ctx context.Context, limit int) ([]models.AuditLog, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}

	logs := make([]models.AuditLog, 0)
	if err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	return logs, nil
}
