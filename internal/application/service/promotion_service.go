package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/billbook-api/internal/application/billing"
	"github.com/sangkips/billbook-api/internal/domain/entity"
	"github.com/sangkips/billbook-api/internal/domain/repository"
	"github.com/sangkips/billbook-api/internal/infrastructure/cache"
	"github.com/sangkips/billbook-api/pkg/apperror"
	"github.com/sangkips/billbook-api/pkg/logger"
	"github.com/sirupsen/logrus"
)

const promotionLockTTL = 30 * time.Second

// PromotionService converts a paid pending bill into a finalized bill
type PromotionService struct {
	pendingRepo repository.PendingBillRepository
	cache       Cache
	now         Clock
}

// NewPromotionService creates a new promotion service
func NewPromotionService(pendingRepo repository.PendingBillRepository, cache Cache) *PromotionService {
	return &PromotionService{
		pendingRepo: pendingRepo,
		cache:       cache,
		now:         time.Now,
	}
}

// MarkPaid promotes the pending bill: it is stamped paid, copied into a new
// bill with freshly computed totals and deleted, all in one transaction.
func (s *PromotionService) MarkPaid(ctx context.Context, id uuid.UUID) (*entity.Bill, error) {
	release, err := s.cache.Obtain(ctx, "promote:"+id.String(), promotionLockTTL)
	defer release()
	if errors.Is(err, cache.ErrLocked) {
		return nil, apperror.NewConflictError("Pending bill is already being promoted")
	}
	if err != nil {
		logger.LogError("service", "MarkPaid", "obtain lock", id.String(), err)
	}

	bill, err := s.pendingRepo.Promote(ctx, id, s.now().UTC(), PromoteToBill)
	switch {
	case errors.Is(err, repository.ErrPendingBillNotFound):
		return nil, apperror.NewNotFoundError("Pending bill")
	case errors.Is(err, repository.ErrAlreadyPromoted):
		return nil, apperror.NewConflictError("Pending bill is not pending and cannot be promoted")
	case err != nil:
		logger.LogError("service", "MarkPaid", "promote", id.String(), err)
		return nil, err
	}

	logger.Get().WithFields(logrus.Fields{
		"pendingBillId": id.String(),
		"billId":        bill.ID.String(),
		"grandTotal":    bill.GrandTotal.String(),
	}).Info("pending bill promoted")
	return bill, nil
}

// PromoteToBill builds the finalized bill for a pending bill, carrying over
// customer, date, amounts and a copy of each line.
func PromoteToBill(p *entity.PendingBill) *entity.Bill {
	totals := billing.Compute(p.Items, p.Discount, p.DeliveryCharges, p.Outstanding)
	bill := &entity.Bill{
		CustomerName:        p.CustomerName,
		Subtotal:            totals.Subtotal,
		Discount:            p.Discount,
		DeliveryCharges:     p.DeliveryCharges,
		Total:               totals.Total,
		Outstanding:         p.Outstanding,
		GrandTotal:          totals.GrandTotal,
		Date:                p.Date,
		SourcePendingBillID: &p.ID,
		Items:               make([]entity.BillItem, 0, len(p.Items)),
	}
	for _, it := range p.Items {
		bill.Items = append(bill.Items, it.ToBillItem())
	}
	return bill
}
