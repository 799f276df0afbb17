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

type CreateTenantInput struct {
	Name   string        `json:"name" validate:"required,max=100"`
	Status models.Status `json:"status" validate:"omitempty,oneof=active inactive"`
}

type UpdateTenantInput struct {
	Name   string        `json:"name" validate:"required,max=100"`
	Status models.Status `json:"status" validate:"required,oneof=active inactive"`
}

func (s *Store) ListTenants(ctx context.Context, identity models.Identity) ([]models.Tenant, error) {
	if err := requireAdmin(identity); err != nil {
		return nil, err
	}

	tenants := make([]models.Tenant, 0)
	if err := s.conn(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Find(&tenants).Error; err != nil {
		return nil, fmt.Errorf("list tenants: %w", err)
	}
	return tenants, nil
}

func (s *Store) GetTenant(ctx context.Context, identity models.Identity, id uint) (*models.Tenant, error) {
	if err := requireAdmin(identity); err != nil {
		return nil, err
	}

	var tenant models.Tenant
	err := s.conn(ctx).First(&tenant, id).Error
	if isNotFound(err) {
		return nil, apperr.NotFound("client %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get tenant: %w", err)
	}
	return &tenant, nil
}

func (s *Store) CreateTenant(ctx context.Context, identity models.Identity, in CreateTenantInput) (uint, error) {
	if err := requireAdmin(identity); err != nil {
		return 0, err
	}
	in.Name = strings.TrimSpace(in.Name)
	if err := validateInput(in); err != nil {
		return 0, err
	}

	tenant := models.Tenant{
		Name:   in.Name,
		Status: statusOrDefault(in.Status),
	}

	err := s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&tenant).Error; err != nil {
			return err
		}
		return audit.Record(tx, audit.Entry{
			Actor:       identity,
			TenantID:    &tenant.ID,
			EntityType:  audit.EntityTenant,
			EntityID:    tenant.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("client %q created", tenant.Name),
			After:       tenant,
		})
	})
	if err != nil {
		return 0, fmt.Errorf("create tenant: %w", err)
	}
	return tenant.ID, nil
}

// UpdateTenant overwrites name and status.
func (s *Store) UpdateTenant(ctx context.Context, identity models.Identity, id uint, in UpdateTenantInput) error {
	if err := requireAdmin(identity); err != nil {
		return err
	}
	in.Name = strings.TrimSpace(in.Name)
	if err := validateInput(in); err != nil {
		return err
	}

	return s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		var tenant models.Tenant
		err := tx.First(&tenant, id).Error
		if isNotFound(err) {
			return apperr.NotFound("client %d not found", id)
		}
		if err != nil {
			return fmt.Errorf("update tenant: %w", err)
		}

		before := tenant
		if err := tx.Model(&tenant).Updates(map[string]any{
			"name":   in.Name,
			"status": in.Status,
		}).Error; err != nil {
			return fmt.Errorf("update tenant: %w", err)
		}
		tenant.Name, tenant.Status = in.Name, in.Status

		return audit.Record(tx, audit.Entry{
			Actor:       identity,
			TenantID:    &tenant.ID,
			EntityType:  audit.EntityTenant,
			EntityID:    tenant.ID,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("client %q updated", in.Name),
			Before:      before,
			After:       tenant,
		})
	})
}
