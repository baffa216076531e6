package pagination

import "strconv"

const (
	DefaultLimit = 50
	MaxLimit     = 500
)

// OffsetParams represents skip/limit input for list queries
type OffsetParams struct {
	Skip  int `form:"skip" json:"skip"`
	Limit int `form:"limit" json:"limit"`
}

// DefaultOffsetParams returns default pagination values
func DefaultOffsetParams() *OffsetParams {
	return &OffsetParams{
		Skip:  0,
		Limit: DefaultLimit,
	}
}

// ParseOffsetParams builds params from raw query values. An absent or
// unparseable limit falls back to DefaultLimit; a parsed one is clamped.
func ParseOffsetParams(skip, limit string) *OffsetParams {
	p := DefaultOffsetParams()
	if v, err := strconv.Atoi(skip); err == nil {
		p.Skip = v
	}
	if v, err := strconv.Atoi(limit); err == nil {
		p.Limit = v
	}
	p.Validate()
	return p
}

// Validate ensures pagination parameters are within valid ranges
func (p *OffsetParams) Validate() {
	if p.Skip < 0 {
		p.Skip = 0
	}
	if p.Limit < 1 {
		p.Limit = 1
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
}

// Offset returns the number of rows to skip
func (p *OffsetParams) Offset() int {
	return p.Skip
}

// PaginatedResult represents one window of a list plus the unwindowed count
type PaginatedResult[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
	Skip  int   `json:"skip"`
	Limit int   `json:"limit"`
}

// NewPaginatedResult creates a new paginated result
func NewPaginatedResult[T any](items []T, total int64, params *OffsetParams) *PaginatedResult[T] {
	if items == nil {
		items = []T{}
	}
	return &PaginatedResult[T]{
		Items: items,
		Total: total,
		Skip:  params.Skip,
		Limit: params.Limit,
	}
}
