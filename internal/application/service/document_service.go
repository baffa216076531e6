package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf"
	"github.com/sangkips/billbook-api/internal/domain/entity"
	"github.com/sangkips/billbook-api/internal/domain/repository"
	"github.com/sangkips/billbook-api/pkg/apperror"
	"github.com/xuri/excelize/v2"
)

const billsSheet = "Bills"

// DocumentService renders bills as downloadable files
type DocumentService struct {
	billRepo repository.BillRepository
	header   entity.ReceiptHeader
	loc      *time.Location
	now      Clock
}

// NewDocumentService creates a new document service
func NewDocumentService(billRepo repository.BillRepository, header entity.ReceiptHeader, loc *time.Location) *DocumentService {
	return &DocumentService{
		billRepo: billRepo,
		header:   header,
		loc:      loc,
		now:      time.Now,
	}
}

// ExportBills writes the whole bill history to an xlsx workbook, one row per
// bill, newest first. It returns the file contents and a suggested filename.
func (s *DocumentService) ExportBills(ctx context.Context) ([]byte, string, error) {
	bills, err := s.billRepo.List(ctx)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", billsSheet); err != nil {
		return nil, "", fmt.Errorf("failed to name sheet: %w", err)
	}

	headers := []interface{}{
		"Bill No", "Date", "Customer", "Items", "Subtotal", "Discount",
		"Delivery Charges", "Total", "Outstanding", "Grand Total",
	}
	if err := f.SetSheetRow(billsSheet, "A1", &headers); err != nil {
		return nil, "", fmt.Errorf("failed to write header: %w", err)
	}

	for i, b := range bills {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, "", err
		}
		row := []interface{}{
			b.BillNo,
			b.Date.In(s.loc).Format("2006-01-02 15:04"),
			b.CustomerName,
			len(b.Items),
			b.Subtotal.InexactFloat64(),
			b.Discount.InexactFloat64(),
			b.DeliveryCharges.InexactFloat64(),
			b.Total.InexactFloat64(),
			b.Outstanding.InexactFloat64(),
			b.GrandTotal.InexactFloat64(),
		}
		if err := f.SetSheetRow(billsSheet, cell, &row); err != nil {
			return nil, "", fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("failed to render workbook: %w", err)
	}

	filename := fmt.Sprintf("bills-%s.xlsx", s.now().In(s.loc).Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}

// BillPDF renders a single bill as an A4 PDF invoice.
func (s *DocumentService) BillPDF(ctx context.Context, id uuid.UUID) ([]byte, string, error) {
	bill, err := s.billRepo.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if bill == nil {
		return nil, "", apperror.NewNotFoundError("Bill")
	}

	data, err := renderReceiptPDF(entity.NewReceipt(s.header, bill, s.loc))
	if err != nil {
		return nil, "", err
	}
	return data, bill.BillNo + ".pdf", nil
}

func renderReceiptPDF(r *entity.Receipt) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 8, tr(r.Header.ShopName), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	if r.Header.Address != "" {
		pdf.CellFormat(0, 5, tr(r.Header.Address), "", 1, "C", false, 0, "")
	}
	if r.Header.Phone != "" {
		pdf.CellFormat(0, 5, tr(r.Header.Phone), "", 1, "C", false, 0, "")
	}
	pdf.Ln(4)

	pdf.CellFormat(90, 6, "Bill No: "+r.BillNo, "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Date: "+r.Date, "", 1, "R", false, 0, "")
	pdf.CellFormat(0, 6, tr("Customer: "+r.Customer), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(235, 235, 235)
	pdf.CellFormat(90, 7, "Item", "1", 0, "L", true, 0, "")
	pdf.CellFormat(25, 7, "Qty", "1", 0, "R", true, 0, "")
	pdf.CellFormat(30, 7, "Price", "1", 0, "R", true, 0, "")
	pdf.CellFormat(35, 7, "Amount", "1", 1, "R", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, it := range r.Items {
		pdf.CellFormat(90, 7, tr(it.Name), "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 7, it.Quantity.String(), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 7, money(it.UnitPrice), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 7, money(it.Total), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(2)

	total := func(label, value string, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		pdf.SetFont("Arial", style, 10)
		pdf.CellFormat(145, 6, label, "", 0, "R", false, 0, "")
		pdf.CellFormat(35, 6, value, "", 1, "R", false, 0, "")
	}
	total("Subtotal", money(r.Subtotal), false)
	total("Discount", "-"+money(r.Discount), false)
	total("Delivery Charges", money(r.DeliveryCharges), false)
	total("Total", money(r.Total), true)
	if r.Outstanding.IsPositive() {
		total("Previous Outstanding", money(r.Outstanding), false)
	}
	total("Grand Total", money(r.GrandTotal), true)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return buf.Bytes(), nil
}
