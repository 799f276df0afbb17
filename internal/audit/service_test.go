package audit

import (
	"context"
	"testing"

	"unnichat-backend/internal/database"
	"unnichat-backend/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordAndList(t *testing.T) {
	db, err := database.OpenMemory(zerolog.Nop())
	require.NoError(t, err)
	svc := NewService(db)

	actor := models.Identity{UserID: 1, Email: "admin@unnichat.com", Role: models.RoleAdmin}
	tenantID := uint(7)

	require.NoError(t, Record(db, Entry{
		Actor:      actor,
		TenantID:   &tenantID,
		EntityType: EntityTenant,
		EntityID:   7,
		Action:     models.AuditActionCreate,
		After:      map[string]any{"name": "Acme"},
	}))
	require.NoError(t, Record(db, Entry{
		Actor:      actor,
		TenantID:   &tenantID,
		EntityType: EntityTenant,
		EntityID:   7,
		Action:     models.AuditActionUpdate,
		Before:     map[string]any{"name": "Acme"},
		After:      map[string]any{"name": "Acme Ltda"},
	}))

	logs, err := svc.List(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, logs, 2)

	assert.Equal(t, models.AuditActionUpdate, logs[0].Action)
	assert.JSONEq(t, `{"name":"Acme"}`, logs[0].BeforeData)
	assert.JSONEq(t, `{"name":"Acme Ltda"}`, logs[0].AfterData)
	assert.Equal(t, "null", logs[1].BeforeData)
	assert.Equal(t, "admin@unnichat.com", logs[1].UserEmail)

	limited, err := svc.List(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}
