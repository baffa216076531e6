package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/billbook-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ManualEntry is an ad hoc ledger line not tied to a bill
type ManualEntry struct {
	ID        uuid.UUID       `gorm:"type:char(36);primaryKey" json:"id"`
	Type      enum.EntryType  `gorm:"size:10;not null;index" json:"type"`
	Amount    decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0" json:"amount"`
	Date      time.Time       `gorm:"not null;index" json:"date"`
	Note      string          `gorm:"size:500" json:"note,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

// BeforeCreate generates a UUID before creating a new entry
func (m *ManualEntry) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ManualEntry model
func (ManualEntry) TableName() string {
	return "manual_entries"
}
