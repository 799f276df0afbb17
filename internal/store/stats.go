package store

import (
	"context"
	"fmt"

	"unnichat-backend/internal/models"
)

// GetStats aggregates the logs visible to the caller. Empty sets produce
// zeros and empty breakdowns, never nulls.
func (s *Store) GetStats(ctx context.Context, identity models.Identity) (*models.Stats, error) {
	stats := &models.Stats{
		CostByChip:     make([]models.ChipCost, 0),
		CostByTemplate: make([]models.TemplateCost, 0),
	}

	var totals struct {
		TotalLeads    int64
		TotalCost     float64
		TotalDisparos int64
	}
	if err := s.conn(ctx).
		Table("logs").
		Select("COALESCE(SUM(logs.leads_count), 0) AS total_leads, "+
			"COALESCE(SUM(logs.cost), 0) AS total_cost, "+
			"COUNT(logs.id) AS total_disparos").
		Scopes(logsWithChips, scopeChipsToTenant(identity)).
		Scan(&totals).Error; err != nil {
		return nil, fmt.Errorf("stats totals: %w", err)
	}
	stats.TotalLeads = totals.TotalLeads
	stats.TotalCost = totals.TotalCost
	stats.TotalDisparos = totals.TotalDisparos

	if err := s.conn(ctx).
		Table("logs").
		Select("chips.name AS name, SUM(logs.cost) AS cost").
		Scopes(logsWithChips, scopeChipsToTenant(identity)).
		Group("chips.id, chips.name").
		Order("cost DESC").
		Order("chips.name").
		Scan(&stats.CostByChip).Error; err != nil {
		return nil, fmt.Errorf("stats cost by chip: %w", err)
	}

	if err := s.conn(ctx).
		Table("logs").
		Select("logs.template_type AS template_type, SUM(logs.cost) AS cost").
		Scopes(logsWithChips, scopeChipsToTenant(identity)).
		Group("logs.template_type").
		Order("logs.template_type").
		Scan(&stats.CostByTemplate).Error; err != nil {
		return nil, fmt.Errorf("stats cost by template: %w", err)
	}

	if stats.CostByChip == nil {
		stats.CostByChip = make([]models.ChipCost, 0)
	}
	if stats.CostByTemplate == nil {
		stats.CostByTemplate = make([]models.TemplateCost, 0)
	}
	return stats, nil
}
