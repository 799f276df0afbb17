package store

import (
	"context"
	"encoding/json"
	"testing"

	"unnichat-backend/internal/models"
	"unnichat-backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsEmpty(t *testing.T) {
	db := testutil.NewDB(t)
	s := New(db)

	stats, err := s.GetStats(context.Background(), testutil.Admin())
	require.NoError(t, err)
	assert.Zero(t, stats.TotalLeads)
	assert.Zero(t, stats.TotalCost)
	assert.Zero(t, stats.TotalDisparos)

	body, err := json.Marshal(stats)
	require.NoError(t, err)
	assert.JSONEq(t, `{"total_leads":0,"total_cost":0,"total_disparos":0,"costByChip":[],"costByTemplate":[]}`, string(body))
}

func TestStatsTotalsAndBreakdowns(t *testing.T) {
	db := testutil.NewDB(t)
	s := New(db)
	ctx := context.Background()

	acme := testutil.SeedTenant(t, db, "Acme")
	globex := testutil.SeedTenant(t, db, "Globex")
	a1 := testutil.SeedChip(t, db, acme.ID, "A1", "100")
	a2 := testutil.SeedChip(t, db, acme.ID, "A2", "101")
	g1 := testutil.SeedChip(t, db, globex.ID, "G1", "200")
	testutil.SeedChip(t, db, acme.ID, "Idle", "102")

	testutil.SeedLog(t, db, a1.ID, "2024-01-01", 100, models.TemplateMarketing, 10)
	testutil.SeedLog(t, db, a1.ID, "2024-01-02", 50, models.TemplateUtility, 2.5)
	testutil.SeedLog(t, db, a2.ID, "2024-01-03", 25, models.TemplateMarketing, 5)
	testutil.SeedLog(t, db, g1.ID, "2024-01-04", 1000, models.TemplateUtility, 99)

	own, err := s.GetStats(ctx, testutil.Client(acme.ID))
	require.NoError(t, err)
	assert.Equal(t, int64(175), own.TotalLeads)
	assert.InDelta(t, 17.5, own.TotalCost, 1e-9)
	assert.Equal(t, int64(3), own.TotalDisparos)

	require.Len(t, own.CostByChip, 2, "chips without logs are not listed")
	byChip := map[string]float64{}
	for _, c := range own.CostByChip {
		byChip[c.Name] = c.Cost
	}
	assert.InDelta(t, 12.5, byChip["A1"], 1e-9)
	assert.InDelta(t, 5.0, byChip["A2"], 1e-9)

	require.Len(t, own.CostByTemplate, 2)
	byTemplate := map[models.TemplateType]float64{}
	for _, c := range own.CostByTemplate {
		byTemplate[c.TemplateType] = c.Cost
	}
	assert.InDelta(t, 15.0, byTemplate[models.TemplateMarketing], 1e-9)
	assert.InDelta(t, 2.5, byTemplate[models.TemplateUtility], 1e-9)

	all, err := s.GetStats(ctx, testutil.Admin())
	require.NoError(t, err)
	assert.Equal(t, int64(1175), all.TotalLeads)
	assert.InDelta(t, 116.5, all.TotalCost, 1e-9)
	assert.Equal(t, int64(4), all.TotalDisparos)
	assert.Len(t, all.CostByChip, 3)
}

func TestStatsClientWithoutLogs(t *testing.T) {
	db := testutil.NewDB(t)
	s := New(db)
	acme := testutil.SeedTenant(t, db, "Acme")
	globex := testutil.SeedTenant(t, db, "Globex")
	g1 := testutil.SeedChip(t, db, globex.ID, "G1", "200")
	testutil.SeedLog(t, db, g1.ID, "2024-01-04", 1000, models.TemplateUtility, 99)

	stats, err := s.GetStats(context.Background(), testutil.Client(acme.ID))
	require.NoError(t, err)
	assert.Zero(t, stats.TotalDisparos)
	assert.NotNil(t, stats.CostByChip)
	assert.Empty(t, stats.CostByChip)
	assert.NotNil(t, stats.CostByTemplate)
	assert.Empty(t, stats.CostByTemplate)
}

func TestStatsTwoLogsScenario(t *testing.T) {
	db := testutil.NewDB(t)
	s := New(db)
	tenant := testutil.SeedTenant(t, db, "Acme")
	chip := testutil.SeedChip(t, db, tenant.ID, "A1", "100")
	testutil.SeedLog(t, db, chip.ID, "2024-01-01", 5, models.TemplateMarketing, 10.00)
	testutil.SeedLog(t, db, chip.ID, "2024-01-02", 5, models.TemplateMarketing, 15.00)

	stats, err := s.GetStats(context.Background(), testutil.Client(tenant.ID))
	require.NoError(t, err)
	assert.InDelta(t, 25.00, stats.TotalCost, 1e-9)
	assert.Equal(t, int64(10), stats.TotalLeads)
	assert.Equal(t, int64(2), stats.TotalDisparos)
	require.Len(t, stats.CostByChip, 1)
	assert.InDelta(t, 25.00, stats.CostByChip[0].Cost, 1e-9)
}
