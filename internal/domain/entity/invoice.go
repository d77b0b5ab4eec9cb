package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceTypeDefault is the type assigned when a caller does not send one.
const InvoiceTypeDefault = "INVOICE"

// Party is a bill-to or ship-to counterparty as recorded on an invoice.
type Party struct {
	Name      string `json:"name"`
	Address   string `json:"address"`
	State     string `json:"state"`
	StateCode string `json:"state_code"`
	GSTIN     string `json:"gstin"`
}

// Invoice is a tax invoice issued by a shop. The issuing shop's legal fields
// are a snapshot captured at creation: invoices keep rendering with the
// registration data that was current when they were issued, regardless of
// later shop edits.
type Invoice struct {
	ID        string
	ShopID    string
	CreatedBy string // user id of the issuer
	SerialNo  string
	Date      time.Time
	Type      string

	// Legal snapshot of the issuing shop.
	GSTIN         string
	PANNo         string
	CINNo         string
	Address       string
	State         string
	StateCode     string
	ShopLegalName string

	BillTo     Party
	ShipTo     Party
	BankDetail *BankDetail // optional snapshot

	Total decimal.Decimal // 2-decimal fixed point

	Items []*InvoiceItem

	CreatedAt time.Time
	UpdatedAt time.Time
}

// InvoiceItem is one line of an invoice. TaxableValue and the three tax
// amounts are caller-supplied, not derived: the ledger records the caller's
// arithmetic as-is so manually adjusted tax documents survive round trips.
type InvoiceItem struct {
	ID          string
	InvoiceID   string
	Position    int // insertion order within the invoice
	Description string
	HSNSACCode  string

	Quantity     decimal.Decimal
	UnitValue    decimal.Decimal
	Discount     decimal.Decimal
	TaxableValue decimal.Decimal

	CGSTRate   decimal.Decimal
	CGSTAmount decimal.Decimal
	SGSTRate   decimal.Decimal
	SGSTAmount decimal.Decimal
	IGSTRate   decimal.Decimal
	IGSTAmount decimal.Decimal
}
