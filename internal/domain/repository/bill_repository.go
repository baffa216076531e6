package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/billbook-api/internal/domain/entity"
)

// BillRepository defines the interface for finalized bill data operations
type BillRepository interface {
	// Create inserts the bill and its items together.
	Create(ctx context.Context, bill *entity.Bill) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Bill, error)
	// List returns every bill, newest date first.
	List(ctx context.Context) ([]entity.Bill, error)
	// Delete removes the bill and its items, reporting false when no bill had the id.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}
