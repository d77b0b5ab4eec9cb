package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/sonu0702/cozy-api/internal/domain/entity"
	"github.com/sonu0702/cozy-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implements InvoiceRepository (usable with pool or tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository builds the adapter. Pass a pool or tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

const invoiceColumns = `id, shop_id, created_by, serial_no, date, type,
	gstin, pan_no, cin_no, address, state, state_code, shop_legal_name,
	bill_to, ship_to, bank_detail, total, created_at, updated_at`

// Create persists the invoice header.
func (r *InvoiceRepo) Create(ctx context.Context, invoice *entity.Invoice) error {
	if invoice.ID == "" {
		invoice.ID = uuid.New().String()
	}
	if invoice.Type == "" {
		invoice.Type = entity.InvoiceTypeDefault
	}
	billTo, shipTo, bank, err := marshalParties(invoice)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`
	_, err = r.q.Exec(ctx, query,
		invoice.ID, invoice.ShopID, nullIfEmpty(invoice.CreatedBy), invoice.SerialNo, invoice.Date, invoice.Type,
		nullIfEmpty(invoice.GSTIN), nullIfEmpty(invoice.PANNo), nullIfEmpty(invoice.CINNo),
		nullIfEmpty(invoice.Address), nullIfEmpty(invoice.State), nullIfEmpty(invoice.StateCode),
		nullIfEmpty(invoice.ShopLegalName),
		billTo, shipTo, bank, invoice.Total, invoice.CreatedAt, invoice.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// CreateItem persists one line item.
func (r *InvoiceRepo) CreateItem(ctx context.Context, item *entity.InvoiceItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	query := `
		INSERT INTO invoice_items (id, invoice_id, position, description, hsn_sac_code,
			quantity, unit_value, discount, taxable_value,
			cgst_rate, cgst_amount, sgst_rate, sgst_amount, igst_rate, igst_amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.InvoiceID, item.Position, item.Description, item.HSNSACCode,
		item.Quantity, item.UnitValue, item.Discount, item.TaxableValue,
		item.CGSTRate, item.CGSTAmount, item.SGSTRate, item.SGSTAmount, item.IGSTRate, item.IGSTAmount,
	)
	if err != nil {
		return fmt.Errorf("insert invoice item: %w", err)
	}
	return nil
}

// GetByID fetches an invoice header by id (no items).
func (r *InvoiceRepo) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`
	inv, err := scanInvoice(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return inv, nil
}

// GetItems returns all lines of an invoice in insertion order.
func (r *InvoiceRepo) GetItems(ctx context.Context, invoiceID string) ([]*entity.InvoiceItem, error) {
	query := itemSelect + ` WHERE invoice_id = $1 ORDER BY position, id`
	rows, err := r.q.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list invoice items: %w", err)
	}
	defer rows.Close()

	var list []*entity.InvoiceItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, item)
	}
	return list, rows.Err()
}

// GetItem fetches one line item by id.
func (r *InvoiceRepo) GetItem(ctx context.Context, itemID string) (*entity.InvoiceItem, error) {
	query := itemSelect + ` WHERE id = $1`
	item, err := scanItem(r.q.QueryRow(ctx, query, itemID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice item: %w", err)
	}
	return item, nil
}

// Update rewrites the invoice header.
func (r *InvoiceRepo) Update(ctx context.Context, invoice *entity.Invoice) error {
	billTo, shipTo, bank, err := marshalParties(invoice)
	if err != nil {
		return err
	}
	query := `
		UPDATE invoices
		SET serial_no = $2, date = $3, type = $4, gstin = $5, pan_no = $6, cin_no = $7,
		    address = $8, state = $9, state_code = $10, shop_legal_name = $11,
		    bill_to = $12, ship_to = $13, bank_detail = $14, total = $15, updated_at = $16
		WHERE id = $1`
	_, err = r.q.Exec(ctx, query,
		invoice.ID, invoice.SerialNo, invoice.Date, invoice.Type,
		nullIfEmpty(invoice.GSTIN), nullIfEmpty(invoice.PANNo), nullIfEmpty(invoice.CINNo),
		nullIfEmpty(invoice.Address), nullIfEmpty(invoice.State), nullIfEmpty(invoice.StateCode),
		nullIfEmpty(invoice.ShopLegalName),
		billTo, shipTo, bank, invoice.Total, invoice.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update invoice: %w", err)
	}
	return nil
}

// UpdateItem rewrites one line item.
func (r *InvoiceRepo) UpdateItem(ctx context.Context, item *entity.InvoiceItem) error {
	query := `
		UPDATE invoice_items
		SET description = $2, hsn_sac_code = $3, quantity = $4, unit_value = $5, discount = $6,
		    taxable_value = $7, cgst_rate = $8, cgst_amount = $9, sgst_rate = $10, sgst_amount = $11,
		    igst_rate = $12, igst_amount = $13
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.Description, item.HSNSACCode, item.Quantity, item.UnitValue, item.Discount,
		item.TaxableValue, item.CGSTRate, item.CGSTAmount, item.SGSTRate, item.SGSTAmount,
		item.IGSTRate, item.IGSTAmount,
	)
	if err != nil {
		return fmt.Errorf("update invoice item: %w", err)
	}
	return nil
}

// DeleteItem removes one line item.
func (r *InvoiceRepo) DeleteItem(ctx context.Context, itemID string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM invoice_items WHERE id = $1`, itemID)
	if err != nil {
		return fmt.Errorf("delete invoice item: %w", err)
	}
	return nil
}

// Delete removes the invoice; items cascade in the schema.
func (r *InvoiceRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM invoices WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	return nil
}

// NextItemPosition returns one past the highest position on the invoice.
func (r *InvoiceRepo) NextItemPosition(ctx context.Context, invoiceID string) (int, error) {
	var next int
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(MAX(position), -1) + 1 FROM invoice_items WHERE invoice_id = $1`,
		invoiceID,
	).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("next item position: %w", err)
	}
	return next, nil
}

// ListByShop returns a newest-first page of invoice headers.
func (r *InvoiceRepo) ListByShop(ctx context.Context, filter repository.InvoiceListFilter) ([]*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE shop_id = $1 AND ($2 = '' OR type = $2)
		ORDER BY created_at DESC, id DESC
		LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, filter.ShopID, filter.Type, filter.Limit, filter.Offset)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()

	var list []*entity.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, inv)
	}
	return list, rows.Err()
}

// CountByShop returns the total matching the listing filter, for page counts.
func (r *InvoiceRepo) CountByShop(ctx context.Context, shopID, typeFilter string) (int64, error) {
	var count int64
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM invoices WHERE shop_id = $1 AND ($2 = '' OR type = $2)`,
		shopID, typeFilter,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count invoices: %w", err)
	}
	return count, nil
}

// SearchParties matches counterparty names case-insensitively by substring and
// returns each distinct full address record once.
func (r *InvoiceRepo) SearchParties(ctx context.Context, shopID string, field repository.PartyField, fragment string) ([]*entity.Party, error) {
	var column string
	switch field {
	case repository.PartyBillTo:
		column = "bill_to"
	case repository.PartyShipTo:
		column = "ship_to"
	default:
		return nil, fmt.Errorf("search parties: unknown field %q", field)
	}
	query := fmt.Sprintf(`
		SELECT DISTINCT %s
		FROM invoices
		WHERE shop_id = $1 AND %s->>'name' ILIKE '%%' || $2 || '%%'`, column, column)
	rows, err := r.q.Query(ctx, query, shopID, fragment)
	if err != nil {
		return nil, fmt.Errorf("search parties: %w", err)
	}
	defer rows.Close()

	var list []*entity.Party
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan party: %w", err)
		}
		var p entity.Party
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("unmarshal party: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

const itemSelect = `
	SELECT id, invoice_id, position, description, hsn_sac_code,
	       quantity, unit_value, discount, taxable_value,
	       cgst_rate, cgst_amount, sgst_rate, sgst_amount, igst_rate, igst_amount
	FROM invoice_items`

func scanItem(row pgx.Row) (*entity.InvoiceItem, error) {
	var it entity.InvoiceItem
	var description, hsn *string
	err := row.Scan(
		&it.ID, &it.InvoiceID, &it.Position, &description, &hsn,
		&it.Quantity, &it.UnitValue, &it.Discount, &it.TaxableValue,
		&it.CGSTRate, &it.CGSTAmount, &it.SGSTRate, &it.SGSTAmount, &it.IGSTRate, &it.IGSTAmount,
	)
	if err != nil {
		return nil, err
	}
	it.Description = derefStr(description)
	it.HSNSACCode = derefStr(hsn)
	return &it, nil
}

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var inv entity.Invoice
	var createdBy, gstin, panNo, cinNo, address, state, stateCode, legalName *string
	var billTo, shipTo, bank []byte
	err := row.Scan(
		&inv.ID, &inv.ShopID, &createdBy, &inv.SerialNo, &inv.Date, &inv.Type,
		&gstin, &panNo, &cinNo, &address, &state, &stateCode, &legalName,
		&billTo, &shipTo, &bank, &inv.Total, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	inv.CreatedBy = derefStr(createdBy)
	inv.GSTIN = derefStr(gstin)
	inv.PANNo = derefStr(panNo)
	inv.CINNo = derefStr(cinNo)
	inv.Address = derefStr(address)
	inv.State = derefStr(state)
	inv.StateCode = derefStr(stateCode)
	inv.ShopLegalName = derefStr(legalName)
	if err := json.Unmarshal(billTo, &inv.BillTo); err != nil {
		return nil, fmt.Errorf("unmarshal bill_to: %w", err)
	}
	if err := json.Unmarshal(shipTo, &inv.ShipTo); err != nil {
		return nil, fmt.Errorf("unmarshal ship_to: %w", err)
	}
	if inv.BankDetail, err = unmarshalBankDetail(bank); err != nil {
		return nil, err
	}
	return &inv, nil
}

func marshalParties(invoice *entity.Invoice) (billTo, shipTo, bank []byte, err error) {
	if billTo, err = json.Marshal(invoice.BillTo); err != nil {
		return nil, nil, nil, fmt.Errorf("marshal bill_to: %w", err)
	}
	if shipTo, err = json.Marshal(invoice.ShipTo); err != nil {
		return nil, nil, nil, fmt.Errorf("marshal ship_to: %w", err)
	}
	if bank, err = marshalBankDetail(invoice.BankDetail); err != nil {
		return nil, nil, nil, err
	}
	return billTo, shipTo, bank, nil
}
