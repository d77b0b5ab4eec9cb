package billing

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"

	"github.com/sonu0702/cozy-api/internal/application/dto"
	"github.com/sonu0702/cozy-api/internal/domain"
	"github.com/sonu0702/cozy-api/internal/domain/entity"
	"github.com/sonu0702/cozy-api/internal/domain/repository"
	"github.com/sonu0702/cozy-api/pkg/logger"
)

// UseCase owns the invoice aggregate: creation, merge updates, item
// operations, listing and counterparty search. The server is a ledger, not a
// calculator: taxable values and tax amounts are stored exactly as the caller
// sent them.
type UseCase struct {
	txRunner    TxRunner
	authorizer  Authorizer
	shopRepo    repository.ShopRepository
	invoiceRepo repository.InvoiceRepository
	log         *logger.Logger
}

func NewUseCase(
	txRunner TxRunner,
	authorizer Authorizer,
	shopRepo repository.ShopRepository,
	invoiceRepo repository.InvoiceRepository,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		txRunner:    txRunner,
		authorizer:  authorizer,
		shopRepo:    shopRepo,
		invoiceRepo: invoiceRepo,
		log:         log,
	}
}

// Create issues an invoice for the shop. The shop's legal registration data is
// snapshotted onto the invoice so later shop edits never rewrite issued
// documents. Header and items commit in one transaction; zero items is valid.
func (uc *UseCase) Create(ctx context.Context, userID, shopID string, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if _, err := uc.authorizer.Authorize(ctx, userID, shopID, entity.CapWrite); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.SerialNo) == "" {
		return nil, domain.ErrValidation
	}
	shop, err := uc.shopRepo.GetByID(ctx, shopID)
	if err != nil {
		return nil, err
	}
	if shop == nil {
		return nil, domain.ErrShopNotFound
	}

	now := time.Now().UTC()
	invType := in.Type
	if invType == "" {
		invType = entity.InvoiceTypeDefault
	}
	date := in.Date
	if date.IsZero() {
		date = now
	}
	inv := &entity.Invoice{
		ID:            uuid.New().String(),
		ShopID:        shopID,
		CreatedBy:     userID,
		SerialNo:      in.SerialNo,
		Date:          date,
		Type:          invType,
		GSTIN:         shop.GSTIN,
		PANNo:         shop.PAN,
		CINNo:         shop.CIN,
		Address:       shop.Address,
		State:         shop.State,
		StateCode:     shop.StateCode,
		ShopLegalName: shop.Name,
		BillTo:        in.BillTo.ToEntity(),
		ShipTo:        in.ShipTo.ToEntity(),
		BankDetail:    shop.BankDetail,
		Total:         in.Total,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	for i, item := range in.Items {
		inv.Items = append(inv.Items, itemFromInput(item, inv.ID, i))
	}

	err = uc.txRunner.RunBilling(ctx, func(invoiceRepo repository.InvoiceRepository) error {
		if err := invoiceRepo.Create(ctx, inv); err != nil {
			return err
		}
		for _, item := range inv.Items {
			if err := invoiceRepo.CreateItem(ctx, item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("invoice_id", inv.ID).Str("shop_id", shopID).Int("items", len(inv.Items)).Msg("invoice created")
	resp := dto.InvoiceFromEntity(inv)
	return &resp, nil
}

// Get returns the invoice with its items. Missing invoices and invoices on
// shops the caller cannot see both surface as ErrInvoiceNotFound, so callers
// cannot probe for ids across tenants.
func (uc *UseCase) Get(ctx context.Context, userID, invoiceID string) (*dto.InvoiceResponse, error) {
	inv, err := uc.authorizeInvoice(ctx, userID, invoiceID, entity.CapRead)
	if err != nil {
		return nil, err
	}
	if inv.Items, err = uc.invoiceRepo.GetItems(ctx, inv.ID); err != nil {
		return nil, err
	}
	resp := dto.InvoiceFromEntity(inv)
	return &resp, nil
}

// Update applies a merge patch. Header fields update only when present. When
// the patch carries items, entries with an id patch that line field-by-field,
// entries without an id append, and existing lines absent from the patch
// survive untouched. The patch never replaces the item set wholesale.
func (uc *UseCase) Update(ctx context.Context, userID, invoiceID string, in dto.UpdateInvoiceRequest) (*dto.InvoiceResponse, error) {
	inv, err := uc.authorizeInvoice(ctx, userID, invoiceID, entity.CapWrite)
	if err != nil {
		return nil, err
	}

	if in.SerialNo != nil {
		inv.SerialNo = *in.SerialNo
	}
	if in.Date != nil {
		inv.Date = *in.Date
	}
	if in.Type != nil {
		inv.Type = *in.Type
	}
	if in.BillTo != nil {
		inv.BillTo = in.BillTo.ToEntity()
	}
	if in.ShipTo != nil {
		inv.ShipTo = in.ShipTo.ToEntity()
	}
	if in.Total != nil {
		inv.Total = *in.Total
	}
	inv.UpdatedAt = time.Now().UTC()

	err = uc.txRunner.RunBilling(ctx, func(invoiceRepo repository.InvoiceRepository) error {
		if err := invoiceRepo.Update(ctx, inv); err != nil {
			return err
		}
		for _, patch := range in.Items {
			if patch.ID == "" {
				pos, err := invoiceRepo.NextItemPosition(ctx, inv.ID)
				if err != nil {
					return err
				}
				if err := invoiceRepo.CreateItem(ctx, itemFromPatch(patch, inv.ID, pos)); err != nil {
					return err
				}
				continue
			}
			existing, err := invoiceRepo.GetItem(ctx, patch.ID)
			if err != nil {
				return err
			}
			if existing == nil || existing.InvoiceID != inv.ID {
				return domain.ErrInvoiceItemNotFound
			}
			applyItemPatch(existing, patch)
			if err := invoiceRepo.UpdateItem(ctx, existing); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if inv.Items, err = uc.invoiceRepo.GetItems(ctx, inv.ID); err != nil {
		return nil, err
	}
	resp := dto.InvoiceFromEntity(inv)
	return &resp, nil
}

// Delete removes the invoice and its items.
func (uc *UseCase) Delete(ctx context.Context, userID, invoiceID string) error {
	inv, err := uc.authorizeInvoice(ctx, userID, invoiceID, entity.CapDelete)
	if err != nil {
		return err
	}
	return uc.invoiceRepo.Delete(ctx, inv.ID)
}

// AddItem appends one line to the invoice.
func (uc *UseCase) AddItem(ctx context.Context, userID, invoiceID string, in dto.InvoiceItemInput) (*dto.InvoiceItemResponse, error) {
	inv, err := uc.authorizeInvoice(ctx, userID, invoiceID, entity.CapWrite)
	if err != nil {
		return nil, err
	}
	var item *entity.InvoiceItem
	err = uc.txRunner.RunBilling(ctx, func(invoiceRepo repository.InvoiceRepository) error {
		pos, err := invoiceRepo.NextItemPosition(ctx, inv.ID)
		if err != nil {
			return err
		}
		item = itemFromInput(in, inv.ID, pos)
		return invoiceRepo.CreateItem(ctx, item)
	})
	if err != nil {
		return nil, err
	}
	resp := dto.ItemFromEntity(item)
	return &resp, nil
}

// UpdateItem rewrites one line. Authorization is re-resolved through the
// item's invoice and shop on every call; a missing item and an item the
// caller cannot see are indistinguishable.
func (uc *UseCase) UpdateItem(ctx context.Context, userID, itemID string, in dto.InvoiceItemInput) (*dto.InvoiceItemResponse, error) {
	item, err := uc.authorizeItem(ctx, userID, itemID, entity.CapWrite)
	if err != nil {
		return nil, err
	}
	applyItemInput(item, in)
	if err := uc.invoiceRepo.UpdateItem(ctx, item); err != nil {
		return nil, err
	}
	resp := dto.ItemFromEntity(item)
	return &resp, nil
}

// DeleteItem removes one line.
func (uc *UseCase) DeleteItem(ctx context.Context, userID, itemID string) error {
	item, err := uc.authorizeItem(ctx, userID, itemID, entity.CapDelete)
	if err != nil {
		return err
	}
	return uc.invoiceRepo.DeleteItem(ctx, item.ID)
}

// List returns one newest-first page of the shop's invoices plus the total.
// Non-positive page or size falls back to 1/10.
func (uc *UseCase) List(ctx context.Context, userID, shopID string, page, pageSize int, typeFilter string) (*dto.InvoiceListResponse, error) {
	if _, err := uc.authorizer.Authorize(ctx, userID, shopID, entity.CapRead); err != nil {
		return nil, err
	}
	if page < 1 {
		page = dto.DefaultPage
	}
	if pageSize < 1 {
		pageSize = dto.DefaultPageSize
	}
	filter := repository.InvoiceListFilter{
		ShopID: shopID,
		Type:   typeFilter,
		Limit:  pageSize,
		Offset: (page - 1) * pageSize,
	}
	invoices, err := uc.invoiceRepo.ListByShop(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := uc.invoiceRepo.CountByShop(ctx, shopID, typeFilter)
	if err != nil {
		return nil, err
	}
	resp := &dto.InvoiceListResponse{
		Invoices: make([]dto.InvoiceResponse, 0, len(invoices)),
		Meta:     dto.PageMeta{Page: page, PageSize: pageSize, Total: total},
	}
	for _, inv := range invoices {
		resp.Invoices = append(resp.Invoices, dto.InvoiceFromEntity(inv))
	}
	return resp, nil
}

// SearchBillTo finds distinct bill-to counterparties whose name contains the
// fragment, case-insensitively.
func (uc *UseCase) SearchBillTo(ctx context.Context, userID, shopID, fragment string) (*dto.PartySearchResponse, error) {
	return uc.searchParties(ctx, userID, shopID, repository.PartyBillTo, fragment)
}

// SearchShipTo finds distinct ship-to counterparties whose name contains the
// fragment, case-insensitively.
func (uc *UseCase) SearchShipTo(ctx context.Context, userID, shopID, fragment string) (*dto.PartySearchResponse, error) {
	return uc.searchParties(ctx, userID, shopID, repository.PartyShipTo, fragment)
}

func (uc *UseCase) searchParties(ctx context.Context, userID, shopID string, field repository.PartyField, fragment string) (*dto.PartySearchResponse, error) {
	if strings.TrimSpace(fragment) == "" {
		return nil, domain.ErrInvalidParameter
	}
	if _, err := uc.authorizer.Authorize(ctx, userID, shopID, entity.CapRead); err != nil {
		return nil, err
	}
	parties, err := uc.invoiceRepo.SearchParties(ctx, shopID, field, fragment)
	if err != nil {
		return nil, err
	}
	// Distinct JSONB rows can still collide on a case-folded name; keep the
	// first full record per folded key.
	fold := cases.Fold()
	seen := make(map[string]bool, len(parties))
	resp := &dto.PartySearchResponse{Parties: []dto.PartyDTO{}}
	for _, p := range parties {
		key := fold.String(p.Name)
		if seen[key] {
			continue
		}
		seen[key] = true
		resp.Parties = append(resp.Parties, dto.PartyFromEntity(*p))
	}
	return resp, nil
}

// authorizeInvoice loads the invoice and checks the capability against the
// caller's role on the issuing shop. A missing invoice, a missing shop and an
// absent edge all collapse to ErrInvoiceNotFound; only a present edge lacking
// the capability surfaces as ErrShopAccessDenied.
func (uc *UseCase) authorizeInvoice(ctx context.Context, userID, invoiceID string, cap entity.Capability) (*entity.Invoice, error) {
	inv, err := uc.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrInvoiceNotFound
	}
	if _, err := uc.authorizer.Authorize(ctx, userID, inv.ShopID, cap); err != nil {
		if errors.Is(err, domain.ErrShopNotFound) {
			return nil, domain.ErrInvoiceNotFound
		}
		if errors.Is(err, domain.ErrShopAccessDenied) && !uc.hasAnyRole(ctx, userID, inv.ShopID) {
			return nil, domain.ErrInvoiceNotFound
		}
		return nil, err
	}
	return inv, nil
}

// authorizeItem walks item -> invoice -> shop -> edge.
func (uc *UseCase) authorizeItem(ctx context.Context, userID, itemID string, cap entity.Capability) (*entity.InvoiceItem, error) {
	item, err := uc.invoiceRepo.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrInvoiceItemNotFound
	}
	if _, err := uc.authorizeInvoice(ctx, userID, item.InvoiceID, cap); err != nil {
		if errors.Is(err, domain.ErrInvoiceNotFound) {
			return nil, domain.ErrInvoiceItemNotFound
		}
		return nil, err
	}
	return item, nil
}

// hasAnyRole reports whether the caller holds any edge on the shop, read-only.
// Used to distinguish "outsider" from "member without this capability".
func (uc *UseCase) hasAnyRole(ctx context.Context, userID, shopID string) bool {
	_, err := uc.authorizer.Authorize(ctx, userID, shopID, entity.CapRead)
	return err == nil
}

func itemFromInput(in dto.InvoiceItemInput, invoiceID string, position int) *entity.InvoiceItem {
	return &entity.InvoiceItem{
		ID:           uuid.New().String(),
		InvoiceID:    invoiceID,
		Position:     position,
		Description:  in.Description,
		HSNSACCode:   in.HSNSACCode,
		Quantity:     in.Quantity,
		UnitValue:    in.UnitValue,
		Discount:     in.Discount,
		TaxableValue: in.TaxableValue,
		CGSTRate:     in.CGSTRate,
		CGSTAmount:   in.CGSTAmount,
		SGSTRate:     in.SGSTRate,
		SGSTAmount:   in.SGSTAmount,
		IGSTRate:     in.IGSTRate,
		IGSTAmount:   in.IGSTAmount,
	}
}

// itemFromPatch builds a fresh line from an id-less patch entry; fields the
// patch does not carry stay at their zero values.
func itemFromPatch(in dto.InvoiceItemPatch, invoiceID string, position int) *entity.InvoiceItem {
	item := &entity.InvoiceItem{
		ID:        uuid.New().String(),
		InvoiceID: invoiceID,
		Position:  position,
	}
	applyItemPatch(item, in)
	return item
}

// applyItemPatch rewrites only the fields the patch carries. A line patched
// with just a quantity keeps its description, taxable value and tax amounts.
func applyItemPatch(item *entity.InvoiceItem, in dto.InvoiceItemPatch) {
	if in.Description != nil {
		item.Description = *in.Description
	}
	if in.HSNSACCode != nil {
		item.HSNSACCode = *in.HSNSACCode
	}
	if in.Quantity != nil {
		item.Quantity = *in.Quantity
	}
	if in.UnitValue != nil {
		item.UnitValue = *in.UnitValue
	}
	if in.Discount != nil {
		item.Discount = *in.Discount
	}
	if in.TaxableValue != nil {
		item.TaxableValue = *in.TaxableValue
	}
	if in.CGSTRate != nil {
		item.CGSTRate = *in.CGSTRate
	}
	if in.CGSTAmount != nil {
		item.CGSTAmount = *in.CGSTAmount
	}
	if in.SGSTRate != nil {
		item.SGSTRate = *in.SGSTRate
	}
	if in.SGSTAmount != nil {
		item.SGSTAmount = *in.SGSTAmount
	}
	if in.IGSTRate != nil {
		item.IGSTRate = *in.IGSTRate
	}
	if in.IGSTAmount != nil {
		item.IGSTAmount = *in.IGSTAmount
	}
}

func applyItemInput(item *entity.InvoiceItem, in dto.InvoiceItemInput) {
	item.Description = in.Description
	item.HSNSACCode = in.HSNSACCode
	item.Quantity = in.Quantity
	item.UnitValue = in.UnitValue
	item.Discount = in.Discount
	item.TaxableValue = in.TaxableValue
	item.CGSTRate = in.CGSTRate
	item.CGSTAmount = in.CGSTAmount
	item.SGSTRate = in.SGSTRate
	item.SGSTAmount = in.SGSTAmount
	item.IGSTRate = in.IGSTRate
	item.IGSTAmount = in.IGSTAmount
}
