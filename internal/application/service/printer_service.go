package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/billbook-api/internal/domain/entity"
	"github.com/sangkips/billbook-api/internal/domain/repository"
	"github.com/sangkips/billbook-api/pkg/apperror"
	"github.com/sangkips/billbook-api/pkg/logger"
	"github.com/sangkips/billbook-api/pkg/printer"
	"github.com/shopspring/decimal"
)

// PrinterService formats finalized bills as receipts and sends them to the
// configured thermal printer.
type PrinterService struct {
	printer  printer.Printer
	billRepo repository.BillRepository
	header   entity.ReceiptHeader
	width    int
	loc      *time.Location
}

// NewPrinterService creates a new printer service.
func NewPrinterService(
	p printer.Printer,
	billRepo repository.BillRepository,
	header entity.ReceiptHeader,
	width int,
	loc *time.Location,
) *PrinterService {
	return &PrinterService{
		printer:  p,
		billRepo: billRepo,
		header:   header,
		width:    width,
		loc:      loc,
	}
}

// PrinterStatus describes the configured printer.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
	Width      int    `json:"width"`
}

// GetStatus returns printer connection status.
func (s *PrinterService) GetStatus() *PrinterStatus {
	kind := s.printer.Kind()
	return &PrinterStatus{
		Configured: kind != "none",
		Connected:  s.printer.Connected(),
		Type:       kind,
		Width:      s.width,
	}
}

// Receipt builds the receipt for a stored bill without printing it.
func (s *PrinterService) Receipt(ctx context.Context, id uuid.UUID) (*entity.Receipt, error) {
	bill, err := s.billRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, apperror.NewNotFoundError("Bill")
	}
	return entity.NewReceipt(s.header, bill, s.loc), nil
}

// PrintBill prints the receipt of a stored bill. The receipt is returned
// even when the printer fails so callers can still show it.
func (s *PrinterService) PrintBill(ctx context.Context, id uuid.UUID) (*entity.Receipt, error) {
	receipt, err := s.Receipt(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.printer.Print(FormatReceipt(receipt, s.width)); err != nil {
		logger.LogError("service", "PrintBill", "print receipt", id.String(), err)
		return receipt, fmt.Errorf("failed to print receipt: %w", err)
	}
	return receipt, nil
}

// FormatReceipt renders a receipt as an ESC/POS job of the given width.
func FormatReceipt(r *entity.Receipt, width int) []byte {
	doc := printer.NewDocument(width)

	doc.Align(printer.AlignCenter).
		Bold(true).
		Size(printer.SizeDouble).
		Line(r.Header.ShopName).
		Size(printer.SizeNormal).
		Bold(false)
	if r.Header.Address != "" {
		doc.Wrapped(r.Header.Address)
	}
	if r.Header.Phone != "" {
		doc.Line(r.Header.Phone)
	}

	doc.Align(printer.AlignLeft).
		Rule('-').
		Columns("Bill:", r.BillNo).
		Columns("Date:", r.Date).
		Columns("Customer:", r.Customer).
		Rule('-')

	for _, it := range r.Items {
		doc.Columns(it.Quantity.String()+" x "+it.Name, money(it.Total))
		if !it.Quantity.Equal(decimal.NewFromInt(1)) {
			doc.Line("  @ " + money(it.UnitPrice) + " each")
		}
	}

	doc.Rule('-').
		Columns("Subtotal:", money(r.Subtotal))
	if r.Discount.IsPositive() {
		doc.Columns("Discount:", "-"+money(r.Discount))
	}
	if r.DeliveryCharges.IsPositive() {
		doc.Columns("Delivery:", money(r.DeliveryCharges))
	}
	doc.Bold(true).
		Columns("TOTAL:", money(r.Total)).
		Bold(false)
	if r.Outstanding.IsPositive() {
		doc.Columns("Previous due:", money(r.Outstanding)).
			Bold(true).
			Columns("GRAND TOTAL:", money(r.GrandTotal)).
			Bold(false)
	}

	return doc.Rule('-').
		Align(printer.AlignCenter).
		Feed(1).
		Line("Thank you for your business!").
		Align(printer.AlignLeft).
		Feed(3).
		Cut().
		Bytes()
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}
