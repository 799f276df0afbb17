// Package campaign serves chips and dispatch logs, the two resources client
// users work with directly.
package campaign

import (
	"context"

	"unnichat-backend/internal/models"
	"unnichat-backend/internal/store"
)

// Store is the slice of the data layer these handlers use.
type Store interface {
	ListChips(ctx context.Context, identity models.Identity) ([]models.ChipView, error)
	CreateChip(ctx context.Context, identity models.Identity, in store.CreateChipInput) (uint, error)
	ListLogs(ctx context.Context, identity models.Identity, filter store.LogFilter) ([]models.LogView, error)
	CreateLog(ctx context.Context, identity models.Identity, in store.CreateLogInput) (uint, error)
	ImportLogs(ctx context.Context, identity models.Identity, rows []store.ImportRow) (*store.ImportResult, error)
}

type CreatedResponse struct {
	ID uint `json:"id"`
}
