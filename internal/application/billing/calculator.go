// Package billing holds the pure bill arithmetic shared by bill creation
// and pending-bill promotion.
package billing

import (
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/billbook-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

// ItemInput is an unvalidated line as received from a client.
type ItemInput struct {
	ProductID *string
	Name      string
	Quantity  *float64
	Price     *float64
}

// Item is a validated line.
type Item struct {
	ProductID *uuid.UUID
	Name      string
	Quantity  decimal.Decimal
	Price     decimal.Decimal
}

// Totals are the derived amounts persisted on a bill.
type Totals struct {
	Subtotal   decimal.Decimal `json:"subtotal"`
	Total      decimal.Decimal `json:"total"`
	GrandTotal decimal.Decimal `json:"grandTotal"`
}

// Line is anything with a quantity and a unit price.
type Line interface {
	LineQuantity() decimal.Decimal
	LinePrice() decimal.Decimal
}

func (i Item) LineQuantity() decimal.Decimal { return i.Quantity }
func (i Item) LinePrice() decimal.Decimal    { return i.Price }

// Subtotal sums quantity x price over all lines.
func Subtotal[L Line](lines []L) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(l.LineQuantity().Mul(l.LinePrice()))
	}
	return sum
}

// Compute derives subtotal, total and grand total. Results are not clamped;
// a discount larger than subtotal plus delivery yields a negative total.
func Compute[L Line](lines []L, discount, deliveryCharges, outstanding decimal.Decimal) Totals {
	subtotal := Subtotal(lines)
	total := subtotal.Sub(discount).Add(deliveryCharges)
	return Totals{
		Subtotal:   subtotal,
		Total:      total,
		GrandTotal: total.Add(outstanding),
	}
}

// ParseAmount validates a finite, non-negative input amount. A nil value is zero.
func ParseAmount(field string, v *float64) (decimal.Decimal, error) {
	if v == nil {
		return decimal.Zero, nil
	}
	if math.IsNaN(*v) || math.IsInf(*v, 0) || *v < 0 {
		return decimal.Zero, apperror.NewValidationError(apperror.FieldError{
			Field:   field,
			Message: field + " must be a non-negative number",
		})
	}
	return decimal.NewFromFloat(*v), nil
}

// ParseItems validates every line. When requireItems is set an empty list is rejected.
func ParseItems(in []ItemInput, requireItems bool) ([]Item, error) {
	if requireItems && len(in) == 0 {
		return nil, apperror.NewValidationError(apperror.FieldError{
			Field:   "items",
			Message: "Items must be a non-empty array",
		})
	}

	items := make([]Item, 0, len(in))
	for i, raw := range in {
		item, err := parseItem(i, raw)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func parseItem(i int, raw ItemInput) (Item, error) {
	prefix := fmt.Sprintf("items[%d]", i)
	invalid := func(field, msg string) (Item, error) {
		return Item{}, apperror.NewValidationError(apperror.FieldError{
			Field:   prefix + "." + field,
			Message: prefix + "." + field + " " + msg,
		})
	}

	name := strings.TrimSpace(raw.Name)
	if name == "" {
		return invalid("name", "is required")
	}
	if raw.Quantity == nil || math.IsNaN(*raw.Quantity) || math.IsInf(*raw.Quantity, 0) || *raw.Quantity <= 0 {
		return invalid("quantity", "must be greater than 0")
	}
	if raw.Price == nil || math.IsNaN(*raw.Price) || math.IsInf(*raw.Price, 0) || *raw.Price < 0 {
		return invalid("price", "must be a non-negative number")
	}

	item := Item{
		Name:     name,
		Quantity: decimal.NewFromFloat(*raw.Quantity),
		Price:    decimal.NewFromFloat(*raw.Price),
	}
	if raw.ProductID != nil && strings.TrimSpace(*raw.ProductID) != "" {
		id, err := uuid.Parse(strings.TrimSpace(*raw.ProductID))
		if err != nil {
			return invalid("productId", "must be a valid id")
		}
		item.ProductID = &id
	}
	return item, nil
}
