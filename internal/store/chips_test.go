package store

import (
	"context"
	"testing"

	"unnichat-backend/internal/apperr"
	"unnichat-backend/internal/models"
	"unnichat-backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateChipDefaults(t *testing.T) {
	db := testutil.NewDB(t)
	s := New(db)
	ctx := context.Background()
	tenant := testutil.SeedTenant(t, db, "Acme")

	id, err := s.CreateChip(ctx, testutil.Admin(), CreateChipInput{
		TenantID: tenant.ID,
		Name:     "Chip 01",
		Number:   "+55 11 99999-0001",
	})
	require.NoError(t, err)

	var chip models.Chip
	require.NoError(t, db.First(&chip, id).Error)
	assert.Equal(t, models.DefaultChipPlatform, chip.Platform)
	assert.Equal(t, models.StatusActive, chip.Status)
	assert.Equal(t, tenant.ID, chip.TenantID)
}

func TestCreateChipUnknownTenant(t *testing.T) {
	db := testutil.NewDB(t)
	s := New(db)

	_, err := s.CreateChip(context.Background(), testutil.Admin(), CreateChipInput{
		TenantID: 42,
		Name:     "Orphan",
		Number:   "1",
	})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	var count int64
	require.NoError(t, db.Model(&models.Chip{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateChipRequiresAdmin(t *testing.T) {
	db := testutil.NewDB(t)
	s := New(db)
	tenant := testutil.SeedTenant(t, db, "Acme")

	_, err := s.CreateChip(context.Background(), testutil.Client(tenant.ID), CreateChipInput{
		TenantID: tenant.ID,
		Name:     "Mine",
		Number:   "1",
	})
	assert.ErrorIs(t, err, apperr.ErrForbidden)
}

func TestListChipsScoping(t *testing.T) {
	db := testutil.NewDB(t)
	s := New(db)
	ctx := context.Background()

	acme := testutil.SeedTenant(t, db, "Acme")
	globex := testutil.SeedTenant(t, db, "Globex")
	a1 := testutil.SeedChip(t, db, acme.ID, "A1", "100")
	a2 := testutil.SeedChip(t, db, acme.ID, "A2", "101")
	testutil.SeedChip(t, db, globex.ID, "G1", "200")

	all, err := s.ListChips(ctx, testutil.Admin())
	require.NoError(t, err)
	assert.Len(t, all, 3)

	own, err := s.ListChips(ctx, testutil.Client(acme.ID))
	require.NoError(t, err)
	require.Len(t, own, 2)
	assert.Equal(t, a2.ID, own[0].ID, "newest first")
	assert.Equal(t, a1.ID, own[1].ID)
	for _, c := range own {
		assert.Equal(t, acme.ID, c.TenantID)
		assert.Equal(t, "Acme", c.TenantName)
	}
}

func TestListChipsClientWithoutTenantSeesNothing(t *testing.T) {
	db := testutil.NewDB(t)
	s := New(db)
	tenant := testutil.SeedTenant(t, db, "Acme")
	testutil.SeedChip(t, db, tenant.ID, "A1", "100")

	orphan := models.Identity{UserID: 9, Role: models.RoleClient}
	chips, err := s.ListChips(context.Background(), orphan)
	require.NoError(t, err)
	assert.Empty(t, chips)
	assert.NotNil(t, chips)
}

func TestFindChipByNumberIsScoped(t *testing.T) {
	db := testutil.NewDB(t)
	s := New(db)
	ctx := context.Background()

	acme := testutil.SeedTenant(t, db, "Acme")
	globex := testutil.SeedTenant(t, db, "Globex")
	g1 := testutil.SeedChip(t, db, globex.ID, "G1", "200")

	found, err := s.FindChipByNumber(ctx, testutil.Admin(), " 200 ")
	require.NoError(t, err)
	assert.Equal(t, g1.ID, found.ID)

	_, err = s.FindChipByNumber(ctx, testutil.Client(acme.ID), "200")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestCreatedChipIsListed(t *testing.T) {
	db := testutil.NewDB(t)
	s := New(db)
	ctx := context.Background()
	tenant := testutil.SeedTenant(t, db, "Acme")

	_, err := s.CreateChip(ctx, testutil.Admin(), CreateChipInput{
		TenantID: tenant.ID, Name: "A", Number: "+1", Status: models.StatusActive,
	})
	require.NoError(t, err)

	chips, err := s.ListChips(ctx, testutil.Admin())
	require.NoError(t, err)
	require.Len(t, chips, 1)
	assert.Equal(t, "A", chips[0].Name)
	assert.Equal(t, "+1", chips[0].Number)
	assert.Equal(t, tenant.ID, chips[0].TenantID)
}

func TestFindChipByNumberSharedAcrossTenants(t *testing.T) {
	db := testutil.NewDB(t)
	s := New(db)
	ctx := context.Background()

	acme := testutil.SeedTenant(t, db, "Acme")
	globex := testutil.SeedTenant(t, db, "Globex")
	own := testutil.SeedChip(t, db, acme.ID, "A1", "555")
	testutil.SeedChip(t, db, globex.ID, "G1", "555")

	_, err := s.FindChipByNumber(ctx, testutil.Admin(), "555")
	assert.ErrorIs(t, err, apperr.ErrValidation)

	// inside one tenant the number is unambiguous again
	found, err := s.FindChipByNumber(ctx, testutil.Client(acme.ID), "555")
	require.NoError(t, err)
	assert.Equal(t, own.ID, found.ID)
}
