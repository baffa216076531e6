package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/sangkips/billbook-api/internal/application/billing"
	"github.com/sangkips/billbook-api/internal/domain/entity"
	"github.com/sangkips/billbook-api/internal/domain/enum"
	"github.com/sangkips/billbook-api/internal/domain/repository"
	"github.com/sangkips/billbook-api/pkg/apperror"
	"github.com/sangkips/billbook-api/pkg/pagination"
	"github.com/sangkips/billbook-api/pkg/utils"
	"github.com/shopspring/decimal"
)

// PendingBillService handles outstanding bill operations
type PendingBillService struct {
	pendingRepo repository.PendingBillRepository
	loc         *time.Location
	phoneRegion string
	shopName    string
	now         Clock
}

// NewPendingBillService creates a new pending bill service
func NewPendingBillService(
	pendingRepo repository.PendingBillRepository,
	loc *time.Location,
	phoneRegion string,
	shopName string,
) *PendingBillService {
	return &PendingBillService{
		pendingRepo: pendingRepo,
		loc:         loc,
		phoneRegion: phoneRegion,
		shopName:    shopName,
		now:         time.Now,
	}
}

// CreatePendingBillInput represents the create pending bill input
type CreatePendingBillInput struct {
	CustomerName    string
	Date            *string
	Discount        *float64
	DeliveryCharges *float64
	Outstanding     *float64
	Status          *string
	Items           []billing.ItemInput
	Note            *string
	Phone           *string
	CreatedBy       *string
}

// UpdatePendingBillInput holds the fields to change; nil means unchanged
type UpdatePendingBillInput struct {
	CustomerName    *string
	Date            *string
	Discount        *float64
	DeliveryCharges *float64
	Outstanding     *float64
	Status          *string
	Items           *[]billing.ItemInput
	Note            *string
	Phone           *string
}

// ListPendingBillsInput carries the raw query string filters
type ListPendingBillsInput struct {
	Status string
	From   string
	To     string
	Query  string
	Skip   string
	Limit  string
}

// CreatePendingBill validates and stores a new pending bill
func (s *PendingBillService) CreatePendingBill(ctx context.Context, input *CreatePendingBillInput) (*entity.PendingBill, error) {
	bill := &entity.PendingBill{Status: enum.PendingBillStatusPending}

	name := strings.TrimSpace(input.CustomerName)
	if name == "" {
		return nil, apperror.NewValidationError(apperror.FieldError{Field: "customerName", Message: "customerName is required"})
	}
	bill.CustomerName = name

	date, err := parseOptionalDate("date", input.Date, s.loc, s.now())
	if err != nil {
		return nil, err
	}
	bill.Date = date

	if err := s.applyAmounts(bill, input.Discount, input.DeliveryCharges, input.Outstanding); err != nil {
		return nil, err
	}
	if input.Status != nil {
		if err := s.applyStatus(bill, *input.Status); err != nil {
			return nil, err
		}
	}

	items, err := billing.ParseItems(input.Items, false)
	if err != nil {
		return nil, err
	}
	bill.Items = toPendingItems(items)

	if input.Note != nil {
		if err := applyNote(bill, *input.Note); err != nil {
			return nil, err
		}
	}
	if input.Phone != nil {
		if err := s.applyPhone(bill, *input.Phone); err != nil {
			return nil, err
		}
	}
	if bill.CreatedBy, err = parseOptionalUUID("createdBy", input.CreatedBy); err != nil {
		return nil, err
	}

	if err := s.pendingRepo.Create(ctx, bill); err != nil {
		return nil, err
	}
	return bill, nil
}

// GetPendingBill retrieves a pending bill by ID
func (s *PendingBillService) GetPendingBill(ctx context.Context, id uuid.UUID) (*entity.PendingBill, error) {
	bill, err := s.pendingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, apperror.NewNotFoundError("Pending bill")
	}
	return bill, nil
}

// UpdatePendingBill applies a partial update. Supplied items replace the stored set.
func (s *PendingBillService) UpdatePendingBill(ctx context.Context, id uuid.UUID, input *UpdatePendingBillInput) (*entity.PendingBill, error) {
	bill, err := s.GetPendingBill(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.CustomerName != nil {
		name := strings.TrimSpace(*input.CustomerName)
		if name == "" {
			return nil, apperror.NewValidationError(apperror.FieldError{Field: "customerName", Message: "customerName must be a non-empty string"})
		}
		bill.CustomerName = name
	}
	if input.Date != nil {
		date, err := utils.ParseDate(*input.Date, s.loc)
		if err != nil {
			return nil, apperror.NewValidationError(apperror.FieldError{Field: "date", Message: "Invalid date"})
		}
		bill.Date = date.UTC()
	}
	if err := s.applyAmounts(bill, input.Discount, input.DeliveryCharges, input.Outstanding); err != nil {
		return nil, err
	}
	if input.Status != nil {
		if err := s.applyStatus(bill, *input.Status); err != nil {
			return nil, err
		}
	}
	if input.Note != nil {
		if err := applyNote(bill, *input.Note); err != nil {
			return nil, err
		}
	}
	if input.Phone != nil {
		if err := s.applyPhone(bill, *input.Phone); err != nil {
			return nil, err
		}
	}

	replaceItems := input.Items != nil
	if replaceItems {
		items, err := billing.ParseItems(*input.Items, false)
		if err != nil {
			return nil, err
		}
		bill.Items = toPendingItems(items)
	}

	if err := s.pendingRepo.Update(ctx, bill, replaceItems); err != nil {
		return nil, err
	}
	return bill, nil
}

// DeletePendingBill removes a pending bill without promoting it
func (s *PendingBillService) DeletePendingBill(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.pendingRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperror.NewNotFoundError("Pending bill")
	}
	return nil
}

// ListPendingBills filters by status, inclusive date range and customer name, newest first
func (s *PendingBillService) ListPendingBills(ctx context.Context, input *ListPendingBillsInput) (*pagination.PaginatedResult[entity.PendingBill], error) {
	params := &repository.PendingBillFilterParams{
		Pagination: pagination.ParseOffsetParams(input.Skip, input.Limit),
		Search:     input.Query,
	}

	if input.Status != "" {
		status, err := enum.ParsePendingBillStatus(input.Status)
		if err != nil {
			return nil, apperror.NewValidationError(apperror.FieldError{Field: "status", Message: "Status must be either 'pending' or 'paid'"})
		}
		params.Status = &status
	}
	if input.From != "" {
		from, err := utils.ParseDate(input.From, s.loc)
		if err != nil {
			return nil, apperror.NewValidationError(apperror.FieldError{Field: "from", Message: "Invalid from date"})
		}
		params.From = &from
	}
	if input.To != "" {
		to, err := utils.ParseDate(input.To, s.loc)
		if err != nil {
			return nil, apperror.NewValidationError(apperror.FieldError{Field: "to", Message: "Invalid to date"})
		}
		to = utils.EndOfDay(to, s.loc)
		params.To = &to
	}

	bills, total, err := s.pendingRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	return pagination.NewPaginatedResult(bills, total, params.Pagination), nil
}

// WhatsAppReminder is a click-to-chat link asking the customer to settle a pending bill
type WhatsAppReminder struct {
	Phone   string          `json:"phone"`
	Amount  decimal.Decimal `json:"amount"`
	Message string          `json:"message"`
	Link    string          `json:"link"`
}

// WhatsAppReminder builds a wa.me link for the bill's stored phone number
func (s *PendingBillService) WhatsAppReminder(ctx context.Context, id uuid.UUID) (*WhatsAppReminder, error) {
	bill, err := s.GetPendingBill(ctx, id)
	if err != nil {
		return nil, err
	}
	if bill.Phone == "" {
		return nil, apperror.NewBadRequestError("Pending bill has no phone number")
	}

	totals := billing.Compute(bill.Items, bill.Discount, bill.DeliveryCharges, bill.Outstanding)
	msg := fmt.Sprintf("Hello %s, this is a reminder from %s. Your pending amount is %s. Thank you!",
		bill.CustomerName, s.shopName, totals.GrandTotal.StringFixed(2))

	return &WhatsAppReminder{
		Phone:   bill.Phone,
		Amount:  totals.GrandTotal,
		Message: msg,
		Link:    utils.WhatsAppLink(bill.Phone, msg),
	}, nil
}

func (s *PendingBillService) applyAmounts(bill *entity.PendingBill, discount, delivery, outstanding *float64) error {
	if discount != nil {
		v, err := billing.ParseAmount("discount", discount)
		if err != nil {
			return err
		}
		bill.Discount = v
	}
	if delivery != nil {
		v, err := billing.ParseAmount("deliveryCharges", delivery)
		if err != nil {
			return err
		}
		bill.DeliveryCharges = v
	}
	if outstanding != nil {
		v, err := billing.ParseAmount("outstanding", outstanding)
		if err != nil {
			return err
		}
		bill.Outstanding = v
	}
	return nil
}

func (s *PendingBillService) applyStatus(bill *entity.PendingBill, raw string) error {
	status, err := enum.ParsePendingBillStatus(raw)
	if err != nil {
		return apperror.NewValidationError(apperror.FieldError{Field: "status", Message: "Status must be either 'pending' or 'paid'"})
	}
	switch {
	case status == enum.PendingBillStatusPaid && bill.PaidAt == nil:
		now := s.now().UTC()
		bill.PaidAt = &now
	case status == enum.PendingBillStatusPending:
		bill.PaidAt = nil
	}
	bill.Status = status
	return nil
}

func (s *PendingBillService) applyPhone(bill *entity.PendingBill, raw string) error {
	phone, err := utils.NormalizePhone(raw, s.phoneRegion)
	if err != nil {
		return apperror.NewValidationError(apperror.FieldError{Field: "phone", Message: "Invalid phone number"})
	}
	bill.Phone = phone
	return nil
}

func applyNote(bill *entity.PendingBill, note string) error {
	if utf8.RuneCountInString(note) > entity.MaxNoteLength {
		return apperror.NewValidationError(apperror.FieldError{
			Field:   "note",
			Message: fmt.Sprintf("Note must be at most %d characters", entity.MaxNoteLength),
		})
	}
	bill.Note = note
	return nil
}

func toPendingItems(items []billing.Item) []entity.PendingBillItem {
	out := make([]entity.PendingBillItem, 0, len(items))
	for _, it := range items {
		out = append(out, entity.PendingBillItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			Quantity:  it.Quantity,
			Price:     it.Price,
		})
	}
	return out
}
