package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/billbook-api/internal/domain/entity"
	"github.com/sangkips/billbook-api/internal/domain/enum"
	"github.com/sangkips/billbook-api/pkg/pagination"
)

// PendingBillRepository defines the interface for pending bill data operations
type PendingBillRepository interface {
	Create(ctx context.Context, bill *entity.PendingBill) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.PendingBill, error)
	// Update saves scalar fields; when replaceItems is set the stored items
	// are replaced by bill.Items.
	Update(ctx context.Context, bill *entity.PendingBill, replaceItems bool) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	List(ctx context.Context, params *PendingBillFilterParams) ([]entity.PendingBill, int64, error)
	// ListStalePaid returns paid pending bills last touched before the cutoff.
	ListStalePaid(ctx context.Context, before time.Time) ([]entity.PendingBill, error)
	// Promote atomically marks the pending bill paid, inserts the bill built
	// from it and deletes the pending bill. It returns ErrPendingBillNotFound
	// or ErrAlreadyPromoted when the bill cannot be promoted.
	Promote(ctx context.Context, id uuid.UUID, paidAt time.Time, build func(*entity.PendingBill) *entity.Bill) (*entity.Bill, error)
}

// PendingBillFilterParams contains filtering parameters for pending bill queries
type PendingBillFilterParams struct {
	Pagination *pagination.OffsetParams
	Status     *enum.PendingBillStatus
	From       *time.Time
	To         *time.Time
	Search     string
}
