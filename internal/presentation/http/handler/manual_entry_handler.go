package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/billbook-api/internal/application/service"
	"github.com/sangkips/billbook-api/internal/presentation/http/dto/request"
	"github.com/sangkips/billbook-api/internal/presentation/http/dto/response"
)

// ManualEntryHandler handles manual ledger HTTP requests
type ManualEntryHandler struct {
	entryService *service.ManualEntryService
}

// NewManualEntryHandler creates a new manual entry handler
func NewManualEntryHandler(entryService *service.ManualEntryService) *ManualEntryHandler {
	return &ManualEntryHandler{entryService: entryService}
}

// List returns all entries, newest first
func (h *ManualEntryHandler) List(c *gin.Context) {
	entries, err := h.entryService.ListEntries(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, entries)
}

// Create appends an entry
func (h *ManualEntryHandler) Create(c *gin.Context) {
	var req request.CreateManualEntryRequest
	if !bindJSON(c, &req) {
		return
	}

	entry, err := h.entryService.CreateEntry(c.Request.Context(), &service.CreateManualEntryInput{
		Type:   req.Type,
		Amount: req.Amount,
		Date:   req.Date,
		Note:   req.Note,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, entry)
}

// Delete removes an entry
func (h *ManualEntryHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.entryService.DeleteEntry(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Entry deleted successfully")
}
