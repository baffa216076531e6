package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/billbook-api/internal/application/billing"
	"github.com/sangkips/billbook-api/internal/domain/entity"
	"github.com/sangkips/billbook-api/internal/domain/enum"
	"github.com/sangkips/billbook-api/internal/domain/repository"
	"github.com/sangkips/billbook-api/pkg/apperror"
)

// ManualEntryService handles ad hoc ledger entries
type ManualEntryService struct {
	entryRepo repository.ManualEntryRepository
	loc       *time.Location
	now       Clock
}

// NewManualEntryService creates a new manual entry service
func NewManualEntryService(entryRepo repository.ManualEntryRepository, loc *time.Location) *ManualEntryService {
	return &ManualEntryService{
		entryRepo: entryRepo,
		loc:       loc,
		now:       time.Now,
	}
}

// CreateManualEntryInput represents the create entry input
type CreateManualEntryInput struct {
	Type   string
	Amount *float64
	Date   *string
	Note   string
}

// CreateEntry validates and appends a ledger entry
func (s *ManualEntryService) CreateEntry(ctx context.Context, input *CreateManualEntryInput) (*entity.ManualEntry, error) {
	typ, err := enum.ParseEntryType(strings.TrimSpace(input.Type))
	if err != nil {
		return nil, apperror.NewValidationError(apperror.FieldError{Field: "type", Message: "Type must be either 'sale' or 'expense'"})
	}
	if input.Amount == nil {
		return nil, invalidAmount()
	}
	amount, err := billing.ParseAmount("amount", input.Amount)
	if err != nil {
		return nil, invalidAmount()
	}
	date, err := parseOptionalDate("date", input.Date, s.loc, s.now())
	if err != nil {
		return nil, err
	}

	entry := &entity.ManualEntry{
		Type:   typ,
		Amount: amount,
		Date:   date,
		Note:   strings.TrimSpace(input.Note),
	}
	if err := s.entryRepo.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// ListEntries returns all entries, newest first
func (s *ManualEntryService) ListEntries(ctx context.Context) ([]entity.ManualEntry, error) {
	return s.entryRepo.List(ctx)
}

// DeleteEntry removes an entry
func (s *ManualEntryService) DeleteEntry(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.entryRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperror.NewNotFoundError("Entry")
	}
	return nil
}

func invalidAmount() error {
	return apperror.NewValidationError(apperror.FieldError{Field: "amount", Message: "Amount must be a non-negative number"})
}
