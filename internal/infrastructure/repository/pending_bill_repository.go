package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/billbook-api/internal/domain/entity"
	"github.com/sangkips/billbook-api/internal/domain/enum"
	domainRepo "github.com/sangkips/billbook-api/internal/domain/repository"
	"gorm.io/gorm"
)

type pendingBillRepository struct {
	db *gorm.DB
}

// NewPendingBillRepository creates a new pending bill repository
func NewPendingBillRepository(db *gorm.DB) domainRepo.PendingBillRepository {
	return &pendingBillRepository{db: db}
}

func (r *pendingBillRepository) Create(ctx context.Context, bill *entity.PendingBill) error {
	for i := range bill.Items {
		bill.Items[i].Position = i
	}
	return r.db.WithContext(ctx).Create(bill).Error
}

func (r *pendingBillRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.PendingBill, error) {
	var bill entity.PendingBill
	err := r.db.WithContext(ctx).
		Preload("Items", orderItems).
		First(&bill, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &bill, err
}

func (r *pendingBillRepository) Update(ctx context.Context, bill *entity.PendingBill, replaceItems bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Save(bill).Error; err != nil {
			return err
		}
		if !replaceItems {
			return nil
		}
		if err := tx.Where("pending_bill_id = ?", bill.ID).Delete(&entity.PendingBillItem{}).Error; err != nil {
			return err
		}
		for i := range bill.Items {
			bill.Items[i].ID = uuid.Nil
			bill.Items[i].PendingBillID = bill.ID
			bill.Items[i].Position = i
		}
		if len(bill.Items) == 0 {
			return nil
		}
		return tx.Create(&bill.Items).Error
	})
}

func (r *pendingBillRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	var deleted bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("pending_bill_id = ?", id).Delete(&entity.PendingBillItem{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&entity.PendingBill{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected > 0
		return nil
	})
	return deleted, err
}

func (r *pendingBillRepository) List(ctx context.Context, params *domainRepo.PendingBillFilterParams) ([]entity.PendingBill, int64, error) {
	bills := []entity.PendingBill{}
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.PendingBill{}).
		Scopes(
			DateRangeScope("date", params.From, params.To),
			ContainsFoldScope("customer_name", params.Search),
		)

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.Limit).
		Preload("Items", orderItems).
		Order("date DESC").Order("created_at DESC").
		Find(&bills).Error

	return bills, total, err
}

func (r *pendingBillRepository) ListStalePaid(ctx context.Context, before time.Time) ([]entity.PendingBill, error) {
	bills := []entity.PendingBill{}
	err := r.db.WithContext(ctx).
		Where("status = ? AND updated_at < ?", enum.PendingBillStatusPaid, before.UTC()).
		Order("updated_at ASC").
		Find(&bills).Error
	return bills, err
}

// Promote runs the pending -> history conversion as one transaction. The
// conditional status update makes a second concurrent promotion of the same
// bill fail instead of creating a duplicate.
func (r *pendingBillRepository) Promote(ctx context.Context, id uuid.UUID, paidAt time.Time, build func(*entity.PendingBill) *entity.Bill) (*entity.Bill, error) {
	var bill *entity.Bill

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var pending entity.PendingBill
		if err := tx.Preload("Items", orderItems).First(&pending, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainRepo.ErrPendingBillNotFound
			}
			return err
		}

		result := tx.Model(&entity.PendingBill{}).
			Where("id = ? AND status = ?", id, enum.PendingBillStatusPending).
			Updates(map[string]interface{}{
				"status":     enum.PendingBillStatusPaid,
				"paid_at":    paidAt,
				"updated_at": paidAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainRepo.ErrAlreadyPromoted
		}
		pending.Status = enum.PendingBillStatusPaid
		pending.PaidAt = &paidAt

		bill = build(&pending)
		for i := range bill.Items {
			bill.Items[i].Position = i
		}
		if err := tx.Create(bill).Error; err != nil {
			return err
		}

		if err := tx.Where("pending_bill_id = ?", id).Delete(&entity.PendingBillItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.PendingBill{}, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return bill, nil
}
