package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"unnichat-backend/internal/apperr"
	"unnichat-backend/internal/audit"
	"unnichat-backend/internal/models"

	"gorm.io/gorm"
)

type CreateLogInput struct {
	ChipID       uint                `json:"chip_id" validate:"required"`
	Date         string              `json:"date" validate:"required,datetime=2006-01-02"`
	Action       string              `json:"action" validate:"required,max=255"`
	LeadsCount   *int                `json:"leads_count" validate:"required,gte=0"`
	TemplateType models.TemplateType `json:"template_type" validate:"required,oneof=Marketing Utility"`
	Cost         *float64            `json:"cost" validate:"required,gte=0"`
	Observations *string             `json:"observations" validate:"omitempty,max=2000"`
}

// LogFilter narrows a log listing. Zero values mean no restriction.
type LogFilter struct {
	TemplateType models.TemplateType `query:"template_type" json:"template_type" validate:"omitempty,oneof=Marketing Utility"`
	ChipID       uint                `query:"chip_id" json:"chip_id"`
	From         string              `query:"from" json:"from" validate:"omitempty,datetime=2006-01-02"`
	To           string              `query:"to" json:"to" validate:"omitempty,datetime=2006-01-02"`
	Query        string              `query:"q" json:"q" validate:"max=100"`
}

const logViewColumns = "logs.id, logs.chip_id, chips.name AS chip_name, chips.number AS chip_number, " +
	"chips.client_id AS tenant_id, clients.name AS tenant_name, logs.date, logs.action, logs.leads_count, " +
	"logs.template_type, logs.cost, logs.observations, logs.created_at"

// ListLogs returns the logs visible to the caller, latest dispatch date first.
func (s *Store) ListLogs(ctx context.Context, identity models.Identity, filter LogFilter) ([]models.LogView, error) {
	filter.Query = strings.TrimSpace(filter.Query)
	if err := validateInput(filter); err != nil {
		return nil, err
	}

	logs := make([]models.LogView, 0)
	if err := s.conn(ctx).
		Table("logs").
		Select(logViewColumns).
		Scopes(logsWithChips, chipsWithTenant, scopeChipsToTenant(identity), filter.scope).
		Order("logs.date DESC").
		Order("logs.id DESC").
		Scan(&logs).Error; err != nil {
		return nil, fmt.Errorf("list logs: %w", err)
	}
	return logs, nil
}

func (f LogFilter) scope(db *gorm.DB) *gorm.DB {
	if f.TemplateType != "" {
		db = db.Where("logs.template_type = ?", f.TemplateType)
	}
	if f.ChipID != 0 {
		db = db.Where("logs.chip_id = ?", f.ChipID)
	}
	if f.From != "" {
		db = db.Where("logs.date >= ?", f.From)
	}
	if f.To != "" {
		db = db.Where("logs.date <= ?", f.To)
	}
	if f.Query != "" {
		like := "%" + strings.ToLower(f.Query) + "%"
		db = db.Where(
			"(LOWER(logs.action) LIKE ? OR LOWER(COALESCE(logs.observations, '')) LIKE ? OR LOWER(chips.name) LIKE ?)",
			like, like, like,
		)
	}
	return db
}

// CreateLog records a dispatch. Client users may only log against chips of
// their own tenant; anything else fails with apperr.ErrForbidden and writes
// nothing.
func (s *Store) CreateLog(ctx context.Context, identity models.Identity, in CreateLogInput) (uint, error) {
	in.Action = strings.TrimSpace(in.Action)
	if in.Observations != nil {
		trimmed := strings.TrimSpace(*in.Observations)
		in.Observations = &trimmed
		if trimmed == "" {
			in.Observations = nil
		}
	}
	if err := validateInput(in); err != nil {
		return 0, err
	}

	entry := models.DispatchLog{
		ChipID:       in.ChipID,
		Date:         in.Date,
		Action:       in.Action,
		LeadsCount:   *in.LeadsCount,
		TemplateType: in.TemplateType,
		Cost:         *in.Cost,
		Observations: in.Observations,
	}

	err := s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		chip, err := chipForWrite(tx, identity, in.ChipID)
		if err != nil {
			return err
		}
		if err := tx.Create(&entry).Error; err != nil {
			return fmt.Errorf("create log: %w", err)
		}
		return audit.Record(tx, audit.Entry{
			Actor:       identity,
			TenantID:    &chip.TenantID,
			EntityType:  audit.EntityLog,
			EntityID:    entry.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("dispatch %q on chip %s", entry.Action, chip.Name),
			After:       entry,
		})
	})
	if err != nil {
		return 0, err
	}
	return entry.ID, nil
}

// chipForWrite loads the chip a new log points at and checks the caller may
// write against it.
func chipForWrite(tx *gorm.DB, identity models.Identity, chipID uint) (*models.Chip, error) {
	tenantID, scoped := identity.TenantScope()

	var chip models.Chip
	err := tx.Select("id", "client_id", "name").First(&chip, chipID).Error
	if isNotFound(err) {
		if scoped {
			return nil, apperr.Forbidden("chip %d is not available to this account", chipID)
		}
		return nil, apperr.Validation("chip %d does not exist", chipID)
	}
	if err != nil {
		return nil, fmt.Errorf("load chip: %w", err)
	}

	if scoped && chip.TenantID != tenantID {
		return nil, apperr.Forbidden("chip %d is not available to this account", chipID)
	}
	return &chip, nil
}

// ImportRow is one spreadsheet line. Chip is the chip's phone number.
type ImportRow struct {
	Line  int
	Chip  string
	Input CreateLogInput
}

type ImportFailure struct {
	Line  int    `json:"row"`
	Error string `json:"error"`
}

type ImportResult struct {
	Imported int             `json:"imported"`
	IDs      []uint          `json:"ids"`
	Failed   []ImportFailure `json:"failed"`
}

// ImportLogs creates one log per row, each under CreateLog's rules. Rows that
// fail are reported and skipped. Unexpected storage errors abort the import.
func (s *Store) ImportLogs(ctx context.Context, identity models.Identity, rows []ImportRow) (*ImportResult, error) {
	res := &ImportResult{IDs: make([]uint, 0, len(rows)), Failed: make([]ImportFailure, 0)}

	for _, row := range rows {
		if row.Input.ChipID == 0 && row.Chip != "" {
			chip, err := s.FindChipByNumber(ctx, identity, row.Chip)
			if err != nil {
				if !isRowError(err) {
					return nil, err
				}
				res.Failed = append(res.Failed, ImportFailure{Line: row.Line, Error: apperr.Message(err)})
				continue
			}
			row.Input.ChipID = chip.ID
		}

		id, err := s.CreateLog(ctx, identity, row.Input)
		if err != nil {
			if !isRowError(err) {
				return nil, err
			}
			res.Failed = append(res.Failed, ImportFailure{Line: row.Line, Error: apperr.Message(err)})
			continue
		}
		res.IDs = append(res.IDs, id)
		res.Imported++
	}
	return res, nil
}

func isRowError(err error) bool {
	return errors.Is(err, apperr.ErrValidation) ||
		errors.Is(err, apperr.ErrForbidden) ||
		errors.Is(err, apperr.ErrNotFound)
}
