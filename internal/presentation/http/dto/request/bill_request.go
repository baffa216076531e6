package request

// ItemRequest is one bill line as sent by clients
type ItemRequest struct {
	ProductID *string  `json:"productId"`
	Name      string   `json:"name" binding:"max=255"`
	Quantity  *float64 `json:"quantity"`
	Price     *float64 `json:"price"`
}

// CreateBillRequest represents a finalized bill creation request. Totals
// sent by the client are not part of the request and are ignored.
type CreateBillRequest struct {
	CustomerName    string        `json:"customerName" binding:"notblank,max=255"`
	Items           []ItemRequest `json:"items" binding:"dive"`
	Discount        *float64      `json:"discount"`
	DeliveryCharges *float64      `json:"deliveryCharges"`
	Outstanding     *float64      `json:"outstanding"`
	Date            *string       `json:"date"`
}
