package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/billbook-api/internal/application/service"
	"github.com/sangkips/billbook-api/internal/presentation/http/dto/response"
)

// PrinterHandler handles printer-related HTTP requests.
type PrinterHandler struct {
	printerService *service.PrinterService
}

// NewPrinterHandler creates a new printer handler.
func NewPrinterHandler(printerService *service.PrinterService) *PrinterHandler {
	return &PrinterHandler{printerService: printerService}
}

// GetStatus returns the current printer connection status.
func (h *PrinterHandler) GetStatus(c *gin.Context) {
	response.OK(c, h.printerService.GetStatus())
}

// PrintBill prints a bill receipt. When the printer fails the receipt is
// still returned with a warning so the client can show it.
func (h *PrinterHandler) PrintBill(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	receipt, err := h.printerService.PrintBill(c.Request.Context(), id)
	if err != nil {
		if receipt != nil {
			response.OK(c, gin.H{
				"success": false,
				"receipt": receipt,
				"warning": err.Error(),
			})
			return
		}
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{
		"success": true,
		"receipt": receipt,
	})
}
