package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry owned by one shop. Products are independent of
// invoices: invoice items are free-form snapshots, never product references.
type Product struct {
	ID              string
	ShopID          string
	Name            string // min length 2
	Price           decimal.Decimal
	HSN             string
	Category        string
	CGST            decimal.Decimal // percentage, 2 decimals
	SGST            decimal.Decimal
	IGST            decimal.Decimal
	DiscountPercent decimal.Decimal
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
