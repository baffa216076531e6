package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/billbook-api/internal/application/service"
	"github.com/sangkips/billbook-api/internal/presentation/http/dto/request"
	"github.com/sangkips/billbook-api/internal/presentation/http/dto/response"
)

const (
	contentTypePDF  = "application/pdf"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// BillHandler handles finalized bill HTTP requests
type BillHandler struct {
	billService     *service.BillService
	documentService *service.DocumentService
}

// NewBillHandler creates a new bill handler
func NewBillHandler(billService *service.BillService, documentService *service.DocumentService) *BillHandler {
	return &BillHandler{
		billService:     billService,
		documentService: documentService,
	}
}

// List returns every bill, newest first
func (h *BillHandler) List(c *gin.Context) {
	bills, err := h.billService.ListBills(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, bills)
}

// Get returns one bill with its items
func (h *BillHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	bill, err := h.billService.GetBill(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, bill)
}

// Create stores a finalized bill with server computed totals
func (h *BillHandler) Create(c *gin.Context) {
	var req request.CreateBillRequest
	if !bindJSON(c, &req) {
		return
	}

	bill, err := h.billService.CreateBill(c.Request.Context(), &service.CreateBillInput{
		CustomerName:    req.CustomerName,
		Items:           toItemInputs(req.Items),
		Discount:        req.Discount,
		DeliveryCharges: req.DeliveryCharges,
		Outstanding:     req.Outstanding,
		Date:            req.Date,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, bill)
}

// Delete removes a bill
func (h *BillHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.billService.DeleteBill(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Bill deleted successfully")
}

// PDF downloads a bill as a PDF invoice
func (h *BillHandler) PDF(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	data, filename, err := h.documentService.BillPDF(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	attachment(c, filename, contentTypePDF, data)
}

// Export downloads the bill history as a spreadsheet
func (h *BillHandler) Export(c *gin.Context) {
	data, filename, err := h.documentService.ExportBills(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	attachment(c, filename, contentTypeXLSX, data)
}

func attachment(c *gin.Context, filename, contentType string, data []byte) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, data)
}
