package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/billbook-api/pkg/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Bill is a finalized (history) bill. Totals are persisted as computed at creation.
type Bill struct {
	ID                  uuid.UUID       `gorm:"type:char(36);primaryKey" json:"id"`
	BillNo              string          `gorm:"size:40;uniqueIndex;not null" json:"billNo"`
	CustomerName        string          `gorm:"size:255;not null;index" json:"customerName"`
	Subtotal            decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0" json:"subtotal"`
	Discount            decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0" json:"discount"`
	DeliveryCharges     decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0" json:"deliveryCharges"`
	Total               decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0" json:"total"`
	Outstanding         decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0" json:"outstanding"`
	GrandTotal          decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0" json:"grandTotal"`
	Date                time.Time       `gorm:"not null;index" json:"date"`
	SourcePendingBillID *uuid.UUID      `gorm:"type:char(36);uniqueIndex" json:"sourcePendingBillId,omitempty"`
	CreatedAt           time.Time       `json:"createdAt"`

	Items []BillItem `gorm:"foreignKey:BillID" json:"items"`
}

// BeforeCreate generates the UUID and bill number before creating a new bill
func (b *Bill) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	if b.BillNo == "" {
		b.BillNo = utils.GenerateBillNo(b.Date, b.ID)
	}
	return nil
}

// TableName returns the table name for the Bill model
func (Bill) TableName() string {
	return "bills"
}

// BillItem is a line on a finalized bill. Name and price are copied at
// creation and never follow later catalog changes.
type BillItem struct {
	ID        uuid.UUID       `gorm:"type:char(36);primaryKey" json:"-"`
	BillID    uuid.UUID       `gorm:"type:char(36);not null;index" json:"-"`
	ProductID *uuid.UUID      `gorm:"type:char(36)" json:"productId,omitempty"`
	Name      string          `gorm:"size:255;not null" json:"name"`
	Quantity  decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"quantity"`
	Price     decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"price"`
	Position  int             `gorm:"not null;default:0" json:"-"`
}

// BeforeCreate generates a UUID before creating a new bill item
func (i *BillItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the BillItem model
func (BillItem) TableName() string {
	return "bill_items"
}

// LineTotal returns quantity x price
func (i BillItem) LineTotal() decimal.Decimal {
	return i.Quantity.Mul(i.Price)
}

func (i BillItem) LineQuantity() decimal.Decimal { return i.Quantity }
func (i BillItem) LinePrice() decimal.Decimal    { return i.Price }
