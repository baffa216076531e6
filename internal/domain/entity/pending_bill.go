package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/billbook-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const MaxNoteLength = 1000

// PendingBill is an outstanding bill awaiting payment or cancellation
type PendingBill struct {
	ID              uuid.UUID              `gorm:"type:char(36);primaryKey" json:"id"`
	CustomerName    string                 `gorm:"size:255;not null;index" json:"customerName"`
	Date            time.Time              `gorm:"not null;index" json:"date"`
	Discount        decimal.Decimal        `gorm:"type:decimal(20,4);not null;default:0" json:"discount"`
	DeliveryCharges decimal.Decimal        `gorm:"type:decimal(20,4);not null;default:0" json:"deliveryCharges"`
	Outstanding     decimal.Decimal        `gorm:"type:decimal(20,4);not null;default:0" json:"outstanding"`
	Status          enum.PendingBillStatus `gorm:"size:20;not null;default:'pending';index" json:"status"`
	Note            string                 `gorm:"type:text" json:"note"`
	Phone           string                 `gorm:"size:32" json:"phone"`
	PaidAt          *time.Time             `json:"paidAt"`
	CreatedBy       *uuid.UUID             `gorm:"type:char(36)" json:"createdBy,omitempty"`
	CreatedAt       time.Time              `json:"createdAt"`
	UpdatedAt       time.Time              `json:"updatedAt"`

	Items []PendingBillItem `gorm:"foreignKey:PendingBillID" json:"items"`
}

// BeforeCreate generates a UUID before creating a new pending bill
func (p *PendingBill) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Status == "" {
		p.Status = enum.PendingBillStatusPending
	}
	return nil
}

// TableName returns the table name for the PendingBill model
func (PendingBill) TableName() string {
	return "pending_bills"
}

// PendingBillItem is a line on a pending bill
type PendingBillItem struct {
	ID            uuid.UUID       `gorm:"type:char(36);primaryKey" json:"-"`
	PendingBillID uuid.UUID       `gorm:"type:char(36);not null;index" json:"-"`
	ProductID     *uuid.UUID      `gorm:"type:char(36)" json:"productId,omitempty"`
	Name          string          `gorm:"size:255;not null" json:"name"`
	Quantity      decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"quantity"`
	Price         decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"price"`
	Position      int             `gorm:"not null;default:0" json:"-"`
}

// BeforeCreate generates a UUID before creating a new pending bill item
func (i *PendingBillItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the PendingBillItem model
func (PendingBillItem) TableName() string {
	return "pending_bill_items"
}

// ToBillItem copies the line onto a finalized bill
func (i PendingBillItem) ToBillItem() BillItem {
	return BillItem{
		ProductID: i.ProductID,
		Name:      i.Name,
		Quantity:  i.Quantity,
		Price:     i.Price,
		Position:  i.Position,
	}
}

func (i PendingBillItem) LineQuantity() decimal.Decimal { return i.Quantity }
func (i PendingBillItem) LinePrice() decimal.Decimal    { return i.Price }
