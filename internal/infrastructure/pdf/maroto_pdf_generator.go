// Package pdf renders the printable GST tax invoice.
//
// A4 page layout:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Legal name + GSTIN/PAN/CIN  │  Invoice no + Date   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  BILL TO  │  SHIP TO                                        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLE: # | Description | HSN | Qty | Rate | Taxable | Tax  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALS: Taxable / CGST / SGST / IGST / GRAND TOTAL         │
//	│  Amount in words                                            │
//	│  BANK DETAILS + signature space                             │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	appbilling "github.com/sonu0702/cozy-api/internal/application/billing"
	"github.com/sonu0702/cozy-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MarotoPDFGenerator implements billing.PDFGenerator with Maroto v2.
type MarotoPDFGenerator struct{}

func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// Generate renders the invoice and returns its bytes.
func (g *MarotoPDFGenerator) Generate(data appbilling.InvoicePDFData) ([]byte, error) {
	inv := data.Invoice

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Tax Invoice "+inv.SerialNo, true).
		WithAuthor(inv.ShopLegalName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(inv))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(partiesRow(inv))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableItemRows(inv.Items) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(data))
	if data.TotalWords != "" {
		m.AddRows(wordsRow(data.TotalWords))
	}
	if inv.BankDetail != nil {
		m.AddRows(line.NewRow(2))
		m.AddRows(bankRow(inv.BankDetail))
	}
	m.AddRows(signatureRow(inv))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate document: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: legal identity on the left, serial number and date on the right.
func headerRow(inv *entity.Invoice) core.Row {
	registration := fmt.Sprintf("GSTIN: %s   |   PAN: %s", nonEmpty(inv.GSTIN, "-"), nonEmpty(inv.PANNo, "-"))
	if inv.CINNo != "" {
		registration += "   |   CIN: " + inv.CINNo
	}
	address := nonEmpty(inv.Address, "")
	if inv.State != "" {
		address += fmt.Sprintf("  (%s, %s)", inv.State, inv.StateCode)
	}

	return row.New(22).Add(
		col.New(7).Add(
			text.New(inv.ShopLegalName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(registration, props.Text{Size: 8, Top: 9, Color: colorGray}),
			text.New(address, props.Text{Size: 8, Top: 14, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("TAX INVOICE", props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(inv.SerialNo, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Date: "+inv.Date.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// partiesRow: bill-to and ship-to side by side.
func partiesRow(inv *entity.Invoice) core.Row {
	party := func(title string, p entity.Party) []core.Component {
		detail := p.Address
		if p.State != "" {
			detail += fmt.Sprintf("  (%s, %s)", p.State, p.StateCode)
		}
		gstin := "GSTIN: " + nonEmpty(p.GSTIN, "-")
		return []core.Component{
			text.New(title, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(p.Name, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(detail, props.Text{Size: 8, Top: 12, Color: colorGray}),
			text.New(gstin, props.Text{Size: 8, Top: 17, Color: colorGray}),
		}
	}
	return row.New(24).Add(
		col.New(6).Add(party("BILL TO", inv.BillTo)...),
		col.New(6).Add(party("SHIP TO", inv.ShipTo)...),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 7.5, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Description", 4, align.Left),
		h("HSN/SAC", 1, align.Center),
		h("Qty", 1, align.Right),
		h("Rate", 1, align.Right),
		h("Taxable", 2, align.Right),
		h("CGST", 1, align.Right),
		h("SGST", 1, align.Right),
		h("IGST", 1, align.Right),
	)
}

func tableItemRows(items []*entity.InvoiceItem) []core.Row {
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{
			Size: 7.5, Align: a, Top: 1, Left: 1, Right: 1,
		}))
	}
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		result = append(result, row.New(7).Add(
			cell(it.Description, 4, align.Left),
			cell(it.HSNSACCode, 1, align.Center),
			cell(it.Quantity.String(), 1, align.Right),
			cell(it.UnitValue.StringFixed(2), 1, align.Right),
			cell(it.TaxableValue.StringFixed(2), 2, align.Right),
			cell(it.CGSTAmount.StringFixed(2), 1, align.Right),
			cell(it.SGSTAmount.StringFixed(2), 1, align.Right),
			cell(it.IGSTAmount.StringFixed(2), 1, align.Right),
		))
	}
	return result
}

// totalsRow: tax summary aligned right, grand total emphasized.
func totalsRow(data appbilling.InvoicePDFData) core.Row {
	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 8.5, Align: align.Right, Right: 2, Top: top,
		})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 8.5, Align: align.Right, Right: 1, Top: top})
	}
	return row.New(32).Add(
		col.New(6),
		col.New(3).Add(
			label("Taxable value:", 1),
			label("CGST:", 6),
			label("SGST:", 11),
			label("IGST:", 16),
			text.New("GRAND TOTAL:", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Right: 2, Top: 23,
			}),
		),
		col.New(3).Add(
			value(data.TaxableTotal.StringFixed(2), 1),
			value(data.CGSTTotal.StringFixed(2), 6),
			value(data.SGSTTotal.StringFixed(2), 11),
			value(data.IGSTTotal.StringFixed(2), 16),
			text.New(data.Invoice.Total.StringFixed(2), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Right: 1, Top: 23,
			}),
		),
	)
}

func wordsRow(words string) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New("Amount in words: "+words, props.Text{
			Style: fontstyle.Italic, Size: 8, Top: 2,
		}),
	))
}

func bankRow(b *entity.BankDetail) core.Row {
	return row.New(14).Add(col.New(12).Add(
		text.New("BANK DETAILS", props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
		}),
		text.New(fmt.Sprintf("%s   |   A/C: %s   |   IFSC: %s   |   %s",
			b.BankName, b.AccountNumber, b.IFSCCode, b.AccountHolderName,
		), props.Text{Size: 8, Top: 7, Color: colorGray}),
	))
}

func signatureRow(inv *entity.Invoice) core.Row {
	return row.New(20).Add(
		col.New(7),
		col.New(5).Add(
			text.New("For "+inv.ShopLegalName, props.Text{
				Style: fontstyle.Bold, Size: 8.5, Align: align.Right, Top: 2,
			}),
			text.New("Authorised Signatory", props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
