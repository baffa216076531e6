package request

// CreatePendingBillRequest represents a pending bill creation request
type CreatePendingBillRequest struct {
	CustomerName    string        `json:"customerName" binding:"notblank,max=255"`
	Date            *string       `json:"date"`
	Discount        *float64      `json:"discount"`
	DeliveryCharges *float64      `json:"deliveryCharges"`
	Outstanding     *float64      `json:"outstanding"`
	Status          *string       `json:"status"`
	Items           []ItemRequest `json:"items" binding:"dive"`
	Note            *string       `json:"note"`
	Phone           *string       `json:"phone" binding:"omitempty,max=32"`
	CreatedBy       *string       `json:"createdBy"`
}

// UpdatePendingBillRequest represents a partial pending bill update. A
// present items array replaces the stored items.
type UpdatePendingBillRequest struct {
	CustomerName    *string        `json:"customerName" binding:"omitempty,max=255"`
	Date            *string        `json:"date"`
	Discount        *float64       `json:"discount"`
	DeliveryCharges *float64       `json:"deliveryCharges"`
	Outstanding     *float64       `json:"outstanding"`
	Status          *string        `json:"status"`
	Items           *[]ItemRequest `json:"items"`
	Note            *string        `json:"note"`
	Phone           *string        `json:"phone" binding:"omitempty,max=32"`
}

// PendingBillFilterRequest represents the list query string. Values are
// kept raw; the service applies defaults and clamping.
type PendingBillFilterRequest struct {
	Status string `form:"status"`
	From   string `form:"from"`
	To     string `form:"to"`
	Query  string `form:"q"`
	Skip   string `form:"skip"`
	Limit  string `form:"limit"`
}

// StalePendingBillsRequest selects how old a paid pending bill must be, e.g. "30m"
type StalePendingBillsRequest struct {
	OlderThan string `form:"olderThan"`
}
