package request

// CreateManualEntryRequest represents a ledger entry creation request
type CreateManualEntryRequest struct {
	Type   string   `json:"type"`
	Amount *float64 `json:"amount"`
	Date   *string  `json:"date"`
	Note   string   `json:"note" binding:"max=500"`
}
