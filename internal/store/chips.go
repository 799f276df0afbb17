package store

import (
	"context"
	"fmt"
	"strings"

	"unnichat-backend/internal/apperr"
	"unnichat-backend/internal/audit"
	"unnichat-backend/internal/models"

	"gorm.io/gorm"
)

type CreateChipInput struct {
	TenantID uint          `json:"tenant_id" validate:"required"`
	Name     string        `json:"name" validate:"required,max=100"`
	Number   string        `json:"number" validate:"required,max=30"`
	Platform string        `json:"platform" validate:"max=50"`
	Status   models.Status `json:"status" validate:"omitempty,oneof=active inactive"`
}

const chipViewColumns = "chips.id, chips.client_id, clients.name AS tenant_name, chips.name, chips.number, " +
	"chips.platform, chips.status, chips.created_at"

// ListChips returns every chip for admins and the caller's own chips for
// client users, newest first.
func (s *Store) ListChips(ctx context.Context, identity models.Identity) ([]models.ChipView, error) {
	chips := make([]models.ChipView, 0)
	if err := s.conn(ctx).
		Table("chips").
		Select(chipViewColumns).
		Scopes(chipsWithTenant, scopeChipsToTenant(identity)).
		Order("chips.created_at DESC").
		Order("chips.id DESC").
		Scan(&chips).Error; err != nil {
		return nil, fmt.Errorf("list chips: %w", err)
	}
	return chips, nil
}

func (s *Store) CreateChip(ctx context.Context, identity models.Identity, in CreateChipInput) (uint, error) {
	if err := requireAdmin(identity); err != nil {
		return 0, err
	}
	in.Name = strings.TrimSpace(in.Name)
	in.Number = strings.TrimSpace(in.Number)
	in.Platform = strings.TrimSpace(in.Platform)
	if err := validateInput(in); err != nil {
		return 0, err
	}

	chip := models.Chip{
		TenantID: in.TenantID,
		Name:     in.Name,
		Number:   in.Number,
		Platform: in.Platform,
		Status:   statusOrDefault(in.Status),
	}
	if chip.Platform == "" {
		chip.Platform = models.DefaultChipPlatform
	}

	err := s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureTenantExists(tx, in.TenantID); err != nil {
			return err
		}
		if err := tx.Create(&chip).Error; err != nil {
			return fmt.Errorf("create chip: %w", err)
		}
		return audit.Record(tx, audit.Entry{
			Actor:       identity,
			TenantID:    &chip.TenantID,
			EntityType:  audit.EntityChip,
			EntityID:    chip.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("chip %s (%s) created", chip.Name, chip.Number),
			After:       chip,
		})
	})
	if err != nil {
		return 0, err
	}
	return chip.ID, nil
}

// FindChipByNumber looks a chip up by its phone number inside the caller's
// scope. Numbers are only unique per tenant, so a number shared by several
// visible chips is a ValidationError.
func (s *Store) FindChipByNumber(ctx context.Context, identity models.Identity, number string) (*models.Chip, error) {
	number = strings.TrimSpace(number)

	var chips []models.Chip
	if err := s.conn(ctx).
		Scopes(scopeChipsToTenant(identity)).
		Where("chips.number = ?", number).
		Order("chips.id").
		Limit(2).
		Find(&chips).Error; err != nil {
		return nil, fmt.Errorf("find chip: %w", err)
	}

	switch len(chips) {
	case 0:
		return nil, apperr.NotFound("chip %s not found", number)
	case 1:
		return &chips[0], nil
	}
	return nil, apperr.Validation("chip number %s is ambiguous, use chip_id", number)
}

func ensureTenantExists(tx *gorm.DB, id uint) error {
	var count int64
	if err := tx.Model(&models.Tenant{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return fmt.Errorf("check tenant: %w", err)
	}
	if count == 0 {
		return apperr.Validation("client %d does not exist", id)
	}
	return nil
}
