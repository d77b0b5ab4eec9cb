package billing

import (
	"context"
	"fmt"

	"github.com/sonu0702/cozy-api/internal/domain/entity"
	"github.com/sonu0702/cozy-api/internal/domain/numwords"
	"github.com/sonu0702/cozy-api/pkg/logger"
)

// PDFUseCase renders an invoice to bytes on demand. Read-authorized through
// the same invoice walk as Get; the document is never stored.
type PDFUseCase struct {
	invoices  *UseCase
	generator PDFGenerator
	log       *logger.Logger
}

func NewPDFUseCase(invoices *UseCase, generator PDFGenerator, log *logger.Logger) *PDFUseCase {
	return &PDFUseCase{invoices: invoices, generator: generator, log: log}
}

// BuildInvoicePDF returns the rendered document and a suggested filename.
func (uc *PDFUseCase) BuildInvoicePDF(ctx context.Context, userID, invoiceID string) ([]byte, string, error) {
	inv, err := uc.invoices.authorizeInvoice(ctx, userID, invoiceID, entity.CapRead)
	if err != nil {
		return nil, "", err
	}
	if inv.Items, err = uc.invoices.invoiceRepo.GetItems(ctx, inv.ID); err != nil {
		return nil, "", err
	}

	data := InvoicePDFData{Invoice: inv}
	for _, it := range inv.Items {
		data.TaxableTotal = data.TaxableTotal.Add(it.TaxableValue)
		data.CGSTTotal = data.CGSTTotal.Add(it.CGSTAmount)
		data.SGSTTotal = data.SGSTTotal.Add(it.SGSTAmount)
		data.IGSTTotal = data.IGSTTotal.Add(it.IGSTAmount)
	}
	data.TaxableTotal = data.TaxableTotal.Round(2)
	data.CGSTTotal = data.CGSTTotal.Round(2)
	data.SGSTTotal = data.SGSTTotal.Round(2)
	data.IGSTTotal = data.IGSTTotal.Round(2)

	words, err := numwords.AmountToWords(inv.Total)
	if err != nil {
		// Totals below zero never pass creation, but render anyway.
		uc.log.Warn().Err(err).Str("invoice_id", inv.ID).Msg("amount in words unavailable")
		words = ""
	}
	data.TotalWords = words

	doc, err := uc.generator.Generate(data)
	if err != nil {
		return nil, "", err
	}
	name := fmt.Sprintf("invoice-%s.pdf", inv.SerialNo)
	return doc, name, nil
}
