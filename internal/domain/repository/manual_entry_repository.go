package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/billbook-api/internal/domain/entity"
)

// ManualEntryRepository defines the interface for manual ledger operations
type ManualEntryRepository interface {
	Create(ctx context.Context, entry *entity.ManualEntry) error
	List(ctx context.Context) ([]entity.ManualEntry, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}
