package billing

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/sonu0702/cozy-api/internal/domain/entity"
	"github.com/sonu0702/cozy-api/internal/domain/repository"
)

// TxRunner executes a function inside one transaction with an invoice repo
// bound to it. Invoice creation and merge updates write the header and several
// items as a unit.
type TxRunner interface {
	RunBilling(ctx context.Context, fn func(
		invoiceRepo repository.InvoiceRepository,
	) error) error
}

// Authorizer resolves the caller's role on a shop and checks one capability.
// Satisfied by the tenancy use case.
type Authorizer interface {
	Authorize(ctx context.Context, userID, shopID string, cap entity.Capability) (entity.Role, error)
}

// InvoicePDFData is everything the renderer needs for one document.
type InvoicePDFData struct {
	Invoice      *entity.Invoice
	TaxableTotal decimal.Decimal
	CGSTTotal    decimal.Decimal
	SGSTTotal    decimal.Decimal
	IGSTTotal    decimal.Decimal
	TotalWords   string
}

// PDFGenerator renders an invoice document synchronously. Nothing is
// persisted; the bytes go straight back to the caller.
type PDFGenerator interface {
	Generate(data InvoicePDFData) ([]byte, error)
}
