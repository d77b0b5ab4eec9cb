package billing_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sonu0702/cozy-api/internal/application/billing"
	"github.com/sonu0702/cozy-api/internal/application/dto"
	"github.com/sonu0702/cozy-api/internal/application/tenancy"
	"github.com/sonu0702/cozy-api/internal/domain"
	"github.com/sonu0702/cozy-api/internal/domain/entity"
	"github.com/sonu0702/cozy-api/internal/infrastructure/memory"
	"github.com/sonu0702/cozy-api/pkg/logger"
)

type fixture struct {
	store   *memory.Store
	uc      *billing.UseCase
	tenancy *tenancy.UseCase
	shopID  string
}

const (
	ownerID    = "owner-1"
	viewerID   = "viewer-1"
	outsiderID = "outsider-1"
)

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	log := logger.New(logger.Config{Env: "development", Level: "error"})
	txRunner := memory.NewTxRunner(store)
	tenancyUC := tenancy.NewUseCase(
		txRunner,
		memory.NewUserRepository(store),
		memory.NewShopRepository(store),
		memory.NewUserShopRepository(store),
		log,
	)
	uc := billing.NewUseCase(
		txRunner,
		tenancyUC,
		memory.NewShopRepository(store),
		memory.NewInvoiceRepository(store),
		log,
	)

	ctx := context.Background()
	users := memory.NewUserRepository(store)
	now := time.Now().UTC()
	for i, id := range []string{ownerID, viewerID, outsiderID} {
		require.NoError(t, users.Create(ctx, &entity.User{
			ID: id, Username: fmt.Sprintf("user%d", i), PasswordHash: "x", CreatedAt: now, UpdatedAt: now,
		}))
	}
	shop, err := tenancyUC.CreateShop(ctx, ownerID, dto.CreateShopRequest{
		Name:      "Cozy Traders",
		GSTIN:     "27AAPFU0939F1ZV",
		PAN:       "AAPFU0939F",
		Address:   "12 MG Road",
		State:     "Maharashtra",
		StateCode: "27",
	})
	require.NoError(t, err)
	_, err = tenancyUC.AssociateUser(ctx, ownerID, shop.ID, dto.AssociateUserRequest{UserID: viewerID, Role: "VIEWER"})
	require.NoError(t, err)

	return &fixture{store: store, uc: uc, tenancy: tenancyUC, shopID: shop.ID}
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func itemInput(desc, qty, taxable string) dto.InvoiceItemInput {
	return dto.InvoiceItemInput{
		Description:  desc,
		HSNSACCode:   "8471",
		Quantity:     dec(qty),
		UnitValue:    dec("100.00"),
		TaxableValue: dec(taxable),
		CGSTRate:     dec("9"),
		CGSTAmount:   dec("9.00"),
		SGSTRate:     dec("9"),
		SGSTAmount:   dec("9.00"),
	}
}

func createInvoice(t *testing.T, f *fixture, serial string, items ...dto.InvoiceItemInput) *dto.InvoiceResponse {
	t.Helper()
	resp, err := f.uc.Create(context.Background(), ownerID, f.shopID, dto.CreateInvoiceRequest{
		SerialNo: serial,
		BillTo:   dto.PartyDTO{Name: "Acme Industries", State: "Karnataka", StateCode: "29"},
		ShipTo:   dto.PartyDTO{Name: "Acme Warehouse"},
		Total:    dec("236.00"),
		Items:    items,
	})
	require.NoError(t, err)
	return resp
}

func TestCreate_SnapshotsShopAndStoresAmountsVerbatim(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created := createInvoice(t, f, "INV-001",
		itemInput("Keyboard", "2", "200.00"),
		itemInput("Mouse", "1", "100.00"),
	)

	got, err := f.uc.Get(ctx, ownerID, created.ID)
	require.NoError(t, err)

	// Legal snapshot comes from the shop row at creation time.
	assert.Equal(t, "Cozy Traders", got.ShopLegalName)
	assert.Equal(t, "27AAPFU0939F1ZV", got.GSTIN)
	assert.Equal(t, "27", got.StateCode)

	require.Len(t, got.Items, 2)
	assert.Equal(t, "Keyboard", got.Items[0].Description)
	assert.Equal(t, "Mouse", got.Items[1].Description)
	// Caller-supplied arithmetic survives untouched.
	assert.True(t, got.Items[0].TaxableValue.Equal(dec("200.00")))
	assert.True(t, got.Items[0].CGSTAmount.Equal(dec("9.00")))
	assert.True(t, got.Total.Equal(dec("236.00")))
}

func TestCreate_LaterShopEditsDoNotRewriteInvoice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created := createInvoice(t, f, "INV-001")

	_, err := f.tenancy.UpdateShop(ctx, ownerID, f.shopID, dto.UpdateShopRequest{
		Name: "Renamed Traders", GSTIN: "29ZZZZZ9999Z9ZZ",
	})
	require.NoError(t, err)

	got, err := f.uc.Get(ctx, ownerID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cozy Traders", got.ShopLegalName)
	assert.Equal(t, "27AAPFU0939F1ZV", got.GSTIN)
}

func TestCreate_ZeroItemsAllowed(t *testing.T) {
	f := newFixture(t)
	created := createInvoice(t, f, "INV-001")
	got, err := f.uc.Get(context.Background(), ownerID, created.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Items)
}

func TestCreate_ItemFailureRollsBackHeader(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.store.FailItemCreate = fmt.Errorf("item write failed")
	_, err := f.uc.Create(ctx, ownerID, f.shopID, dto.CreateInvoiceRequest{
		SerialNo: "INV-001",
		BillTo:   dto.PartyDTO{Name: "Acme"},
		Items:    []dto.InvoiceItemInput{itemInput("Keyboard", "1", "100.00")},
	})
	require.Error(t, err)
	f.store.FailItemCreate = nil

	list, err := f.uc.List(ctx, ownerID, f.shopID, 1, 10, "")
	require.NoError(t, err)
	assert.Zero(t, list.Meta.Total)
}

func TestUpdate_MergePatchLeavesUnmentionedItemsIntact(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created := createInvoice(t, f, "INV-001",
		itemInput("Item A", "1", "100.00"),
		itemInput("Item B", "3", "300.00"),
	)
	require.Len(t, created.Items, 2)
	idA := created.Items[0].ID

	qty := dec("5")
	updated, err := f.uc.Update(ctx, ownerID, created.ID, dto.UpdateInvoiceRequest{
		Items: []dto.InvoiceItemPatch{{ID: idA, Quantity: &qty}},
	})
	require.NoError(t, err)

	require.Len(t, updated.Items, 2, "item B must survive a patch that does not mention it")
	assert.True(t, updated.Items[0].Quantity.Equal(dec("5")))
	// Fields the patch did not carry stay put.
	assert.Equal(t, "Item A", updated.Items[0].Description)
	assert.True(t, updated.Items[0].TaxableValue.Equal(dec("100.00")))
	assert.True(t, updated.Items[0].CGSTAmount.Equal(dec("9.00")))
	assert.Equal(t, "Item B", updated.Items[1].Description)
	assert.True(t, updated.Items[1].Quantity.Equal(dec("3")))
}

func TestUpdate_WirePatchTouchesOnlySuppliedFields(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created := createInvoice(t, f, "INV-001",
		itemInput("Item A", "1", "100.00"),
		itemInput("Item B", "3", "300.00"),
	)
	idA := created.Items[0].ID

	// Decode the exact client payload rather than building the struct, so a
	// field the JSON omits really arrives as nil.
	var req dto.UpdateInvoiceRequest
	payload := fmt.Sprintf(`{"items":[{"id":%q,"quantity":5}]}`, idA)
	require.NoError(t, json.Unmarshal([]byte(payload), &req))

	updated, err := f.uc.Update(ctx, ownerID, created.ID, req)
	require.NoError(t, err)

	require.Len(t, updated.Items, 2)
	assert.True(t, updated.Items[0].Quantity.Equal(dec("5")))
	assert.Equal(t, "Item A", updated.Items[0].Description)
	assert.True(t, updated.Items[0].TaxableValue.Equal(dec("100.00")))
	assert.True(t, updated.Items[0].CGSTAmount.Equal(dec("9.00")))
	assert.True(t, updated.Items[0].UnitValue.Equal(dec("100.00")))
	assert.Equal(t, "Item B", updated.Items[1].Description)
}

func TestUpdate_PatchWithoutIDAppends(t *testing.T) {
	f := newFixture(t)
	created := createInvoice(t, f, "INV-001", itemInput("Item A", "1", "100.00"))

	desc := "Item C"
	qty := dec("2")
	taxable := dec("200.00")
	updated, err := f.uc.Update(context.Background(), ownerID, created.ID, dto.UpdateInvoiceRequest{
		Items: []dto.InvoiceItemPatch{{Description: &desc, Quantity: &qty, TaxableValue: &taxable}},
	})
	require.NoError(t, err)
	require.Len(t, updated.Items, 2)
	assert.Equal(t, "Item A", updated.Items[0].Description)
	assert.Equal(t, "Item C", updated.Items[1].Description)
	assert.True(t, updated.Items[1].TaxableValue.Equal(dec("200.00")))
}

func TestUpdate_HeaderFieldsMergeIndividually(t *testing.T) {
	f := newFixture(t)
	created := createInvoice(t, f, "INV-001")

	serial := "INV-001-A"
	updated, err := f.uc.Update(context.Background(), ownerID, created.ID, dto.UpdateInvoiceRequest{
		SerialNo: &serial,
	})
	require.NoError(t, err)
	assert.Equal(t, "INV-001-A", updated.SerialNo)
	// Untouched header fields survive.
	assert.Equal(t, "Acme Industries", updated.BillTo.Name)
	assert.True(t, updated.Total.Equal(dec("236.00")))
}

func TestList_PaginationWindowAndTotal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for i := 1; i <= 25; i++ {
		createInvoice(t, f, fmt.Sprintf("INV-%03d", i))
	}

	page, err := f.uc.List(ctx, ownerID, f.shopID, 3, 10, "")
	require.NoError(t, err)
	assert.Len(t, page.Invoices, 5)
	assert.EqualValues(t, 25, page.Meta.Total)
	assert.Equal(t, 3, page.Meta.Page)

	// Newest first: page 1 starts at the most recent serial.
	first, err := f.uc.List(ctx, ownerID, f.shopID, 1, 10, "")
	require.NoError(t, err)
	require.Len(t, first.Invoices, 10)
	assert.Equal(t, "INV-025", first.Invoices[0].SerialNo)
}

func TestList_DefaultsAppliedForNonPositiveWindow(t *testing.T) {
	f := newFixture(t)
	createInvoice(t, f, "INV-001")

	page, err := f.uc.List(context.Background(), ownerID, f.shopID, 0, -3, "")
	require.NoError(t, err)
	assert.Equal(t, 1, page.Meta.Page)
	assert.Equal(t, 10, page.Meta.PageSize)
}

func TestList_TypeFilter(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	createInvoice(t, f, "INV-001")

	_, err := f.uc.Create(ctx, ownerID, f.shopID, dto.CreateInvoiceRequest{
		SerialNo: "QT-001",
		Type:     "QUOTATION",
		BillTo:   dto.PartyDTO{Name: "Acme"},
	})
	require.NoError(t, err)

	page, err := f.uc.List(ctx, ownerID, f.shopID, 1, 10, "QUOTATION")
	require.NoError(t, err)
	require.Len(t, page.Invoices, 1)
	assert.Equal(t, "QT-001", page.Invoices[0].SerialNo)
	assert.EqualValues(t, 1, page.Meta.Total)
}

func TestViewer_ReadsButCannotWrite(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created := createInvoice(t, f, "INV-001", itemInput("Item A", "1", "100.00"))

	_, err := f.uc.Get(ctx, viewerID, created.ID)
	require.NoError(t, err)

	_, err = f.uc.Create(ctx, viewerID, f.shopID, dto.CreateInvoiceRequest{SerialNo: "INV-002"})
	assert.ErrorIs(t, err, domain.ErrShopAccessDenied)

	_, err = f.uc.Update(ctx, viewerID, created.ID, dto.UpdateInvoiceRequest{})
	assert.ErrorIs(t, err, domain.ErrShopAccessDenied)

	err = f.uc.Delete(ctx, viewerID, created.ID)
	assert.ErrorIs(t, err, domain.ErrShopAccessDenied)
}

func TestOutsider_CannotProbeInvoiceExistence(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created := createInvoice(t, f, "INV-001", itemInput("Item A", "1", "100.00"))

	_, err := f.uc.Get(ctx, outsiderID, created.ID)
	assert.ErrorIs(t, err, domain.ErrInvoiceNotFound)

	_, err = f.uc.Get(ctx, ownerID, "no-such-invoice")
	assert.ErrorIs(t, err, domain.ErrInvoiceNotFound)

	// Item operations conflate the same way.
	itemID := created.Items[0].ID
	_, err = f.uc.UpdateItem(ctx, outsiderID, itemID, itemInput("X", "1", "1.00"))
	assert.ErrorIs(t, err, domain.ErrInvoiceItemNotFound)

	_, err = f.uc.UpdateItem(ctx, ownerID, "no-such-item", itemInput("X", "1", "1.00"))
	assert.ErrorIs(t, err, domain.ErrInvoiceItemNotFound)
}

func TestItemOps_AddUpdateDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created := createInvoice(t, f, "INV-001", itemInput("Item A", "1", "100.00"))

	added, err := f.uc.AddItem(ctx, ownerID, created.ID, itemInput("Item B", "2", "200.00"))
	require.NoError(t, err)

	got, err := f.uc.Get(ctx, ownerID, created.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 2)
	assert.Equal(t, "Item B", got.Items[1].Description)

	updatedItem, err := f.uc.UpdateItem(ctx, ownerID, added.ID, itemInput("Item B2", "4", "400.00"))
	require.NoError(t, err)
	assert.True(t, updatedItem.Quantity.Equal(dec("4")))

	require.NoError(t, f.uc.DeleteItem(ctx, ownerID, added.ID))
	got, err = f.uc.Get(ctx, ownerID, created.ID)
	require.NoError(t, err)
	assert.Len(t, got.Items, 1)
}

func TestSearch_EmptyFragmentRejected(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.SearchBillTo(context.Background(), ownerID, f.shopID, "   ")
	assert.ErrorIs(t, err, domain.ErrInvalidParameter)
}

func TestSearch_CaseInsensitiveWithDedup(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	names := []string{"Acme Industries", "ACME INDUSTRIES", "Acme Industries", "Zenith Ltd"}
	for i, name := range names {
		_, err := f.uc.Create(ctx, ownerID, f.shopID, dto.CreateInvoiceRequest{
			SerialNo: fmt.Sprintf("INV-%03d", i+1),
			BillTo:   dto.PartyDTO{Name: name, State: "Karnataka", StateCode: "29"},
		})
		require.NoError(t, err)
	}

	resp, err := f.uc.SearchBillTo(ctx, ownerID, f.shopID, "acme")
	require.NoError(t, err)
	require.Len(t, resp.Parties, 1, "same name under different casing must collapse to one record")
	assert.Equal(t, "Karnataka", resp.Parties[0].State)
}

func TestSearch_ScopedToShop(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	createInvoice(t, f, "INV-001")

	other, err := f.tenancy.CreateShop(ctx, ownerID, dto.CreateShopRequest{Name: "Second Shop"})
	require.NoError(t, err)

	resp, err := f.uc.SearchBillTo(ctx, ownerID, other.ID, "Acme")
	require.NoError(t, err)
	assert.Empty(t, resp.Parties)
}

func TestDelete_RemovesItems(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created := createInvoice(t, f, "INV-001", itemInput("Item A", "1", "100.00"))

	require.NoError(t, f.uc.Delete(ctx, ownerID, created.ID))

	_, err := f.uc.Get(ctx, ownerID, created.ID)
	assert.ErrorIs(t, err, domain.ErrInvoiceNotFound)
}
