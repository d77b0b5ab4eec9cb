package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/sonu0702/cozy-api/internal/domain/entity"
)

// PartyDTO counterparty block on an invoice (bill-to / ship-to).
type PartyDTO struct {
	Name      string `json:"name"`
	Address   string `json:"address,omitempty"`
	State     string `json:"state,omitempty"`
	StateCode string `json:"state_code,omitempty"`
	GSTIN     string `json:"gstin,omitempty"`
}

// InvoiceItemInput one fully-specified line, used when creating an invoice
// and when adding or rewriting a single item.
type InvoiceItemInput struct {
	Description  string          `json:"description"`
	HSNSACCode   string          `json:"hsn_sac_code,omitempty"`
	Quantity     decimal.Decimal `json:"quantity"`
	UnitValue    decimal.Decimal `json:"unit_value"`
	Discount     decimal.Decimal `json:"discount"`
	TaxableValue decimal.Decimal `json:"taxable_value"`
	CGSTRate     decimal.Decimal `json:"cgst_rate"`
	CGSTAmount   decimal.Decimal `json:"cgst_amount"`
	SGSTRate     decimal.Decimal `json:"sgst_rate"`
	SGSTAmount   decimal.Decimal `json:"sgst_amount"`
	IGSTRate     decimal.Decimal `json:"igst_rate"`
	IGSTAmount   decimal.Decimal `json:"igst_amount"`
}

// CreateInvoiceRequest body for POST /api/shops/:id/invoices. The issuing
// shop's legal fields are snapshotted server-side; tax amounts arrive
// precomputed and are stored as sent.
type CreateInvoiceRequest struct {
	SerialNo string             `json:"serial_no"`
	Date     time.Time          `json:"date"`
	Type     string             `json:"type,omitempty"`
	BillTo   PartyDTO           `json:"bill_to"`
	ShipTo   PartyDTO           `json:"ship_to"`
	Total    decimal.Decimal    `json:"total"`
	Items    []InvoiceItemInput `json:"items"`
}

// InvoiceItemPatch one entry of an update's items batch. An id targets an
// existing line and only the non-nil fields are rewritten, so a payload like
// {"id": ..., "quantity": 5} changes the quantity and nothing else. A missing
// id inserts a new line built from whatever fields are supplied.
type InvoiceItemPatch struct {
	ID           string           `json:"id,omitempty"`
	Description  *string          `json:"description,omitempty"`
	HSNSACCode   *string          `json:"hsn_sac_code,omitempty"`
	Quantity     *decimal.Decimal `json:"quantity,omitempty"`
	UnitValue    *decimal.Decimal `json:"unit_value,omitempty"`
	Discount     *decimal.Decimal `json:"discount,omitempty"`
	TaxableValue *decimal.Decimal `json:"taxable_value,omitempty"`
	CGSTRate     *decimal.Decimal `json:"cgst_rate,omitempty"`
	CGSTAmount   *decimal.Decimal `json:"cgst_amount,omitempty"`
	SGSTRate     *decimal.Decimal `json:"sgst_rate,omitempty"`
	SGSTAmount   *decimal.Decimal `json:"sgst_amount,omitempty"`
	IGSTRate     *decimal.Decimal `json:"igst_rate,omitempty"`
	IGSTAmount   *decimal.Decimal `json:"igst_amount,omitempty"`
}

// UpdateInvoiceRequest body for PUT /api/invoices/:id. Nil pointers leave the
// header field untouched; a nil Items slice leaves all lines untouched. When
// Items is present, entries with an id patch that line in place, entries
// without an id are appended, and lines absent from the patch survive.
type UpdateInvoiceRequest struct {
	SerialNo *string            `json:"serial_no,omitempty"`
	Date     *time.Time         `json:"date,omitempty"`
	Type     *string            `json:"type,omitempty"`
	BillTo   *PartyDTO          `json:"bill_to,omitempty"`
	ShipTo   *PartyDTO          `json:"ship_to,omitempty"`
	Total    *decimal.Decimal   `json:"total,omitempty"`
	Items    []InvoiceItemPatch `json:"items,omitempty"`
}

// InvoiceItemResponse one invoice line in responses.
type InvoiceItemResponse struct {
	ID           string          `json:"id"`
	Description  string          `json:"description"`
	HSNSACCode   string          `json:"hsn_sac_code,omitempty"`
	Quantity     decimal.Decimal `json:"quantity"`
	UnitValue    decimal.Decimal `json:"unit_value"`
	Discount     decimal.Decimal `json:"discount"`
	TaxableValue decimal.Decimal `json:"taxable_value"`
	CGSTRate     decimal.Decimal `json:"cgst_rate"`
	CGSTAmount   decimal.Decimal `json:"cgst_amount"`
	SGSTRate     decimal.Decimal `json:"sgst_rate"`
	SGSTAmount   decimal.Decimal `json:"sgst_amount"`
	IGSTRate     decimal.Decimal `json:"igst_rate"`
	IGSTAmount   decimal.Decimal `json:"igst_amount"`
}

// InvoiceResponse full invoice for GET /api/invoices/:id.
type InvoiceResponse struct {
	ID            string                `json:"id"`
	ShopID        string                `json:"shop_id"`
	SerialNo      string                `json:"serial_no"`
	Date          time.Time             `json:"date"`
	Type          string                `json:"type"`
	GSTIN         string                `json:"gstin,omitempty"`
	PANNo         string                `json:"pan_no,omitempty"`
	CINNo         string                `json:"cin_no,omitempty"`
	Address       string                `json:"address,omitempty"`
	State         string                `json:"state,omitempty"`
	StateCode     string                `json:"state_code,omitempty"`
	ShopLegalName string                `json:"shop_legal_name,omitempty"`
	BillTo        PartyDTO              `json:"bill_to"`
	ShipTo        PartyDTO              `json:"ship_to"`
	BankDetail    *BankDetailDTO        `json:"bank_detail,omitempty"`
	Total         decimal.Decimal       `json:"total"`
	Items         []InvoiceItemResponse `json:"items"`
	CreatedAt     time.Time             `json:"created_at"`
}

// InvoiceListResponse one page of headers plus the page envelope.
type InvoiceListResponse struct {
	Invoices []InvoiceResponse `json:"invoices"`
	Meta     PageMeta          `json:"meta"`
}

// PartySearchResponse distinct counterparties matching a name fragment.
type PartySearchResponse struct {
	Parties []PartyDTO `json:"parties"`
}

// PartyFromEntity converts one counterparty.
func PartyFromEntity(p entity.Party) PartyDTO {
	return PartyDTO{
		Name:      p.Name,
		Address:   p.Address,
		State:     p.State,
		StateCode: p.StateCode,
		GSTIN:     p.GSTIN,
	}
}

// ToEntity converts the wire counterparty.
func (p PartyDTO) ToEntity() entity.Party {
	return entity.Party{
		Name:      p.Name,
		Address:   p.Address,
		State:     p.State,
		StateCode: p.StateCode,
		GSTIN:     p.GSTIN,
	}
}

// ItemFromEntity converts one line.
func ItemFromEntity(it *entity.InvoiceItem) InvoiceItemResponse {
	return InvoiceItemResponse{
		ID:           it.ID,
		Description:  it.Description,
		HSNSACCode:   it.HSNSACCode,
		Quantity:     it.Quantity,
		UnitValue:    it.UnitValue,
		Discount:     it.Discount,
		TaxableValue: it.TaxableValue,
		CGSTRate:     it.CGSTRate,
		CGSTAmount:   it.CGSTAmount,
		SGSTRate:     it.SGSTRate,
		SGSTAmount:   it.SGSTAmount,
		IGSTRate:     it.IGSTRate,
		IGSTAmount:   it.IGSTAmount,
	}
}

// InvoiceFromEntity builds the full response; items may be nil for listings.
func InvoiceFromEntity(inv *entity.Invoice) InvoiceResponse {
	resp := InvoiceResponse{
		ID:            inv.ID,
		ShopID:        inv.ShopID,
		SerialNo:      inv.SerialNo,
		Date:          inv.Date,
		Type:          inv.Type,
		GSTIN:         inv.GSTIN,
		PANNo:         inv.PANNo,
		CINNo:         inv.CINNo,
		Address:       inv.Address,
		State:         inv.State,
		StateCode:     inv.StateCode,
		ShopLegalName: inv.ShopLegalName,
		BillTo:        PartyFromEntity(inv.BillTo),
		ShipTo:        PartyFromEntity(inv.ShipTo),
		BankDetail:    BankDetailFromEntity(inv.BankDetail),
		Total:         inv.Total,
		Items:         []InvoiceItemResponse{},
		CreatedAt:     inv.CreatedAt,
	}
	for _, it := range inv.Items {
		resp.Items = append(resp.Items, ItemFromEntity(it))
	}
	return resp
}
