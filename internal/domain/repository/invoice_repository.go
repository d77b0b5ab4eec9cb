package repository

import (
	"context"

	"github.com/sonu0702/cozy-api/internal/domain/entity"
)

// PartyField selects which counterparty column a search runs over.
type PartyField string

const (
	PartyBillTo PartyField = "bill_to"
	PartyShipTo PartyField = "ship_to"
)

// InvoiceListFilter narrows and pages a per-shop invoice listing.
type InvoiceListFilter struct {
	ShopID string
	Type   string // empty = all types
	Limit  int
	Offset int
}

// InvoiceRepository defines the persistence port for invoices and their items.
// Lookups return (nil, nil) when the row does not exist.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	CreateItem(ctx context.Context, item *entity.InvoiceItem) error
	GetByID(ctx context.Context, id string) (*entity.Invoice, error)
	GetItems(ctx context.Context, invoiceID string) ([]*entity.InvoiceItem, error)
	GetItem(ctx context.Context, itemID string) (*entity.InvoiceItem, error)
	Update(ctx context.Context, invoice *entity.Invoice) error
	UpdateItem(ctx context.Context, item *entity.InvoiceItem) error
	DeleteItem(ctx context.Context, itemID string) error
	// Delete removes the invoice and all of its items.
	Delete(ctx context.Context, id string) error
	// NextItemPosition returns the position for a newly appended item.
	NextItemPosition(ctx context.Context, invoiceID string) (int, error)
	// ListByShop returns a newest-first page of invoices (headers only).
	ListByShop(ctx context.Context, filter InvoiceListFilter) ([]*entity.Invoice, error)
	CountByShop(ctx context.Context, shopID, typeFilter string) (int64, error)
	// SearchParties returns the distinct counterparties recorded on the shop's
	// invoices whose name contains fragment, case-insensitively.
	SearchParties(ctx context.Context, shopID string, field PartyField, fragment string) ([]*entity.Party, error)
}
