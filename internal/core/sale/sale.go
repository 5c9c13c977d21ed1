package sale

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a single line item within a transaction.
type Product struct {
	// ID is an opaque product identifier. It is compared for equality
	// only and never interpreted numerically.
	ID string `json:"id"`

	// Quantity is the number of units sold. Always non-negative.
	Quantity int `json:"quantity"`
}

// Sale is one parsed transaction record. It is immutable once
// constructed by ParseRecord.
type Sale struct {
	// StaffID is the opaque identifier of the staff member who rang up
	// the transaction.
	StaffID string `json:"staff_id"`

	// Timestamp is the local date-time of the transaction. The source
	// feed carries no timezone, so this is a wall-clock value.
	Timestamp time.Time `json:"timestamp"`

	// Products is the line-item list. Never empty for a parsed Sale.
	Products []Product `json:"products"`

	// Amount is the monetary value of the transaction, kept in exact
	// decimal arithmetic.
	Amount decimal.Decimal `json:"amount"`
}

// Volume returns the total unit count of the transaction: the sum of
// all product quantities.
func (s Sale) Volume() int64 {
	var total int64
	for _, p := range s.Products {
		total += int64(p.Quantity)
	}
	return total
}
