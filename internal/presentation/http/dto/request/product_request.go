package request

// CreateProductRequest represents a product creation request. Price is a
// pointer so that an absent price can be told apart from zero.
type CreateProductRequest struct {
	Name  string   `json:"name" binding:"notblank,max=255"`
	Price *float64 `json:"price" binding:"required"`
}

// UpdateProductRequest represents a partial product update
type UpdateProductRequest struct {
	Name  *string  `json:"name" binding:"omitempty,max=255"`
	Price *float64 `json:"price"`
}
