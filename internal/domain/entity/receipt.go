package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReceiptHeader holds the shop header printed at the top of a receipt.
type ReceiptHeader struct {
	ShopName string `json:"shopName"`
	Address  string `json:"address,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

// ReceiptItem represents a single line item on a receipt.
type ReceiptItem struct {
	Name      string          `json:"name"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Total     decimal.Decimal `json:"total"`
}

// Receipt is a printable view of a finalized bill. It is not persisted.
type Receipt struct {
	Header          ReceiptHeader   `json:"header"`
	BillNo          string          `json:"billNo"`
	Date            string          `json:"date"`
	Customer        string          `json:"customer"`
	Items           []ReceiptItem   `json:"items"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	Discount        decimal.Decimal `json:"discount"`
	DeliveryCharges decimal.Decimal `json:"deliveryCharges"`
	Total           decimal.Decimal `json:"total"`
	Outstanding     decimal.Decimal `json:"outstanding"`
	GrandTotal      decimal.Decimal `json:"grandTotal"`
}

// NewReceipt composes a receipt from a finalized bill, showing its date in loc.
func NewReceipt(header ReceiptHeader, b *Bill, loc *time.Location) *Receipt {
	if loc == nil {
		loc = time.UTC
	}
	r := &Receipt{
		Header:          header,
		BillNo:          b.BillNo,
		Date:            b.Date.In(loc).Format("2006-01-02 15:04"),
		Customer:        b.CustomerName,
		Subtotal:        b.Subtotal,
		Discount:        b.Discount,
		DeliveryCharges: b.DeliveryCharges,
		Total:           b.Total,
		Outstanding:     b.Outstanding,
		GrandTotal:      b.GrandTotal,
	}
	for _, it := range b.Items {
		r.Items = append(r.Items, ReceiptItem{
			Name:      it.Name,
			Quantity:  it.Quantity,
			UnitPrice: it.Price,
			Total:     it.LineTotal(),
		})
	}
	return r
}
