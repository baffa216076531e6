package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/billbook-api/internal/application/billing"
	"github.com/sangkips/billbook-api/internal/domain/entity"
	"github.com/sangkips/billbook-api/internal/domain/repository"
	"github.com/sangkips/billbook-api/pkg/apperror"
)

// BillService handles finalized bill operations
type BillService struct {
	billRepo repository.BillRepository
	loc      *time.Location
	now      Clock
}

// NewBillService creates a new bill service
func NewBillService(billRepo repository.BillRepository, loc *time.Location) *BillService {
	return &BillService{
		billRepo: billRepo,
		loc:      loc,
		now:      time.Now,
	}
}

// CreateBillInput represents the create bill input. Totals are always
// computed from the items; client supplied totals are never accepted.
type CreateBillInput struct {
	CustomerName    string
	Items           []billing.ItemInput
	Discount        *float64
	DeliveryCharges *float64
	Outstanding     *float64
	Date            *string
}

// CreateBill validates the input, computes totals and stores the bill
func (s *BillService) CreateBill(ctx context.Context, input *CreateBillInput) (*entity.Bill, error) {
	name := strings.TrimSpace(input.CustomerName)
	if name == "" {
		return nil, apperror.NewValidationError(apperror.FieldError{
			Field:   "customerName",
			Message: "Customer name is required and must be a non-empty string",
		})
	}

	items, err := billing.ParseItems(input.Items, true)
	if err != nil {
		return nil, err
	}
	discount, err := billing.ParseAmount("discount", input.Discount)
	if err != nil {
		return nil, err
	}
	delivery, err := billing.ParseAmount("deliveryCharges", input.DeliveryCharges)
	if err != nil {
		return nil, err
	}
	outstanding, err := billing.ParseAmount("outstanding", input.Outstanding)
	if err != nil {
		return nil, err
	}
	date, err := parseOptionalDate("date", input.Date, s.loc, s.now())
	if err != nil {
		return nil, err
	}

	totals := billing.Compute(items, discount, delivery, outstanding)
	bill := &entity.Bill{
		CustomerName:    name,
		Subtotal:        totals.Subtotal,
		Discount:        discount,
		DeliveryCharges: delivery,
		Total:           totals.Total,
		Outstanding:     outstanding,
		GrandTotal:      totals.GrandTotal,
		Date:            date,
		Items:           make([]entity.BillItem, 0, len(items)),
	}
	for _, it := range items {
		bill.Items = append(bill.Items, entity.BillItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			Quantity:  it.Quantity,
			Price:     it.Price,
		})
	}

	if err := s.billRepo.Create(ctx, bill); err != nil {
		return nil, err
	}
	return bill, nil
}

// ListBills returns every bill, newest first
func (s *BillService) ListBills(ctx context.Context) ([]entity.Bill, error) {
	return s.billRepo.List(ctx)
}

// GetBill retrieves a bill by ID
func (s *BillService) GetBill(ctx context.Context, id uuid.UUID) (*entity.Bill, error) {
	bill, err := s.billRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, apperror.NewNotFoundError("Bill")
	}
	return bill, nil
}

// DeleteBill removes a bill and its items
func (s *BillService) DeleteBill(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.billRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperror.NewNotFoundError("Bill")
	}
	return nil
}
