package service

import (
	"context"
	"time"

	"github.com/sangkips/billbook-api/internal/domain/entity"
	"github.com/sangkips/billbook-api/internal/domain/repository"
	"github.com/sangkips/billbook-api/pkg/apperror"
	"github.com/sangkips/billbook-api/pkg/logger"
	"github.com/sirupsen/logrus"
)

// MaintenanceService runs the periodic consistency checks and cleanups
type MaintenanceService struct {
	pendingRepo     repository.PendingBillRepository
	idempotencyRepo repository.IdempotencyRepository
	staleAfter      time.Duration
	now             Clock
}

// NewMaintenanceService creates a new maintenance service
func NewMaintenanceService(
	pendingRepo repository.PendingBillRepository,
	idempotencyRepo repository.IdempotencyRepository,
	staleAfter time.Duration,
) *MaintenanceService {
	return &MaintenanceService{
		pendingRepo:     pendingRepo,
		idempotencyRepo: idempotencyRepo,
		staleAfter:      staleAfter,
		now:             time.Now,
	}
}

// StalePaidBills lists pending bills left in paid status for longer than
// olderThan (the configured threshold when zero). Such records are never
// produced by a completed promotion.
func (s *MaintenanceService) StalePaidBills(ctx context.Context, olderThan time.Duration) ([]entity.PendingBill, error) {
	if olderThan < 0 {
		return nil, apperror.NewBadRequestError("olderThan must not be negative")
	}
	if olderThan == 0 {
		olderThan = s.staleAfter
	}
	return s.pendingRepo.ListStalePaid(ctx, s.now().Add(-olderThan))
}

// ReportStalePaidBills logs each stale paid pending bill and returns how many were found.
func (s *MaintenanceService) ReportStalePaidBills(ctx context.Context) (int, error) {
	bills, err := s.StalePaidBills(ctx, 0)
	if err != nil {
		logger.LogError("service", "ReportStalePaidBills", "list stale paid bills", nil, err)
		return 0, err
	}
	for _, b := range bills {
		logger.Get().WithFields(logrus.Fields{
			"pendingBillId": b.ID.String(),
			"customerName":  b.CustomerName,
			"paidAt":        b.PaidAt,
			"updatedAt":     b.UpdatedAt,
		}).Warn("pending bill left in paid status")
	}
	return len(bills), nil
}

// PurgeIdempotencyKeys deletes expired idempotency records.
func (s *MaintenanceService) PurgeIdempotencyKeys(ctx context.Context) (int64, error) {
	n, err := s.idempotencyRepo.DeleteExpired(ctx)
	if err != nil {
		logger.LogError("service", "PurgeIdempotencyKeys", "delete expired keys", nil, err)
		return 0, err
	}
	if n > 0 {
		logger.Get().WithField("deleted", n).Info("expired idempotency keys purged")
	}
	return n, nil
}
