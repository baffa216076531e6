package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/billbook-api/internal/domain/entity"
	domainRepo "github.com/sangkips/billbook-api/internal/domain/repository"
	"gorm.io/gorm"
)

type manualEntryRepository struct {
	db *gorm.DB
}

// NewManualEntryRepository creates a new manual entry repository
func NewManualEntryRepository(db *gorm.DB) domainRepo.ManualEntryRepository {
	return &manualEntryRepository{db: db}
}

func (r *manualEntryRepository) Create(ctx context.Context, entry *entity.ManualEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *manualEntryRepository) List(ctx context.Context) ([]entity.ManualEntry, error) {
	entries := []entity.ManualEntry{}
	err := r.db.WithContext(ctx).Order("date DESC").Order("created_at DESC").Find(&entries).Error
	return entries, err
}

func (r *manualEntryRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&entity.ManualEntry{}, "id = ?", id)
	return result.RowsAffected > 0, result.Error
}
