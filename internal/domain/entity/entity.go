package entity

import "github.com/shopspring/decimal"

func init() {
	// Money and quantities are rendered as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}
