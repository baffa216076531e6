package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/billbook-api/internal/application/billing"
	"github.com/sangkips/billbook-api/internal/application/service"
	"github.com/sangkips/billbook-api/internal/presentation/http/dto/request"
	"github.com/sangkips/billbook-api/internal/presentation/http/dto/response"
)

// PendingBillHandler handles pending bill and promotion HTTP requests
type PendingBillHandler struct {
	pendingService     *service.PendingBillService
	promotionService   *service.PromotionService
	maintenanceService *service.MaintenanceService
}

// NewPendingBillHandler creates a new pending bill handler
func NewPendingBillHandler(
	pendingService *service.PendingBillService,
	promotionService *service.PromotionService,
	maintenanceService *service.MaintenanceService,
) *PendingBillHandler {
	return &PendingBillHandler{
		pendingService:     pendingService,
		promotionService:   promotionService,
		maintenanceService: maintenanceService,
	}
}

// List filters and pages pending bills
func (h *PendingBillHandler) List(c *gin.Context) {
	var filter request.PendingBillFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.pendingService.ListPendingBills(c.Request.Context(), &service.ListPendingBillsInput{
		Status: filter.Status,
		From:   filter.From,
		To:     filter.To,
		Query:  filter.Query,
		Skip:   filter.Skip,
		Limit:  filter.Limit,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}

// Get returns one pending bill
func (h *PendingBillHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	bill, err := h.pendingService.GetPendingBill(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, bill)
}

// Create stores a new pending bill
func (h *PendingBillHandler) Create(c *gin.Context) {
	var req request.CreatePendingBillRequest
	if !bindJSON(c, &req) {
		return
	}

	bill, err := h.pendingService.CreatePendingBill(c.Request.Context(), &service.CreatePendingBillInput{
		CustomerName:    req.CustomerName,
		Date:            req.Date,
		Discount:        req.Discount,
		DeliveryCharges: req.DeliveryCharges,
		Outstanding:     req.Outstanding,
		Status:          req.Status,
		Items:           toItemInputs(req.Items),
		Note:            req.Note,
		Phone:           req.Phone,
		CreatedBy:       req.CreatedBy,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, bill)
}

// Update applies a partial update
func (h *PendingBillHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req request.UpdatePendingBillRequest
	if !bindJSON(c, &req) {
		return
	}

	input := &service.UpdatePendingBillInput{
		CustomerName:    req.CustomerName,
		Date:            req.Date,
		Discount:        req.Discount,
		DeliveryCharges: req.DeliveryCharges,
		Outstanding:     req.Outstanding,
		Status:          req.Status,
		Note:            req.Note,
		Phone:           req.Phone,
	}
	if req.Items != nil {
		items := toItemInputs(*req.Items)
		if items == nil {
			items = []billing.ItemInput{}
		}
		input.Items = &items
	}

	bill, err := h.pendingService.UpdatePendingBill(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, bill)
}

// Delete removes a pending bill without promoting it
func (h *PendingBillHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.pendingService.DeletePendingBill(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Pending bill deleted successfully")
}

// MarkPaid promotes the pending bill into the bill history
func (h *PendingBillHandler) MarkPaid(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	bill, err := h.promotionService.MarkPaid(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{
		"success":      true,
		"promotedBill": bill,
	})
}

// WhatsApp returns a click-to-chat payment reminder link
func (h *PendingBillHandler) WhatsApp(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	reminder, err := h.pendingService.WhatsAppReminder(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, reminder)
}

// Stale lists paid pending bills that were never moved to the history
func (h *PendingBillHandler) Stale(c *gin.Context) {
	var req request.StalePendingBillsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	var olderThan time.Duration
	if req.OlderThan != "" {
		d, err := time.ParseDuration(req.OlderThan)
		if err != nil {
			response.BadRequest(c, "olderThan must be a duration such as 30m or 2h")
			return
		}
		olderThan = d
	}

	bills, err := h.maintenanceService.StalePaidBills(c.Request.Context(), olderThan)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{
		"items": bills,
		"total": len(bills),
	})
}
