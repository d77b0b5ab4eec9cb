package usecase_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sonu0702/cozy-api/internal/application/billing"
	"github.com/sonu0702/cozy-api/internal/application/dto"
	"github.com/sonu0702/cozy-api/internal/application/tenancy"
	"github.com/sonu0702/cozy-api/internal/application/usecase"
	"github.com/sonu0702/cozy-api/internal/domain"
	"github.com/sonu0702/cozy-api/internal/infrastructure/memory"
	"github.com/sonu0702/cozy-api/pkg/logger"
)

func TestDashboard(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()
	log := logger.New(logger.Config{Env: "development", Level: "error"})

	tenancyUC := tenancy.NewUseCase(
		memory.NewTxRunner(f.store),
		memory.NewUserRepository(f.store),
		memory.NewShopRepository(f.store),
		memory.NewUserShopRepository(f.store),
		log,
	)
	invoiceUC := billing.NewUseCase(
		memory.NewTxRunner(f.store),
		tenancyUC,
		memory.NewShopRepository(f.store),
		memory.NewInvoiceRepository(f.store),
		log,
	)
	analyticsUC := usecase.NewAnalyticsUseCase(tenancyUC, memory.NewAnalyticsRepository(f.store))

	empty, err := analyticsUC.Dashboard(ctx, catOwnerID, f.shopID)
	require.NoError(t, err)
	assert.True(t, empty.NetIncome.IsZero(), "a shop with no invoices reports zero income")
	assert.Zero(t, empty.ProductCount)

	for i, total := range []string{"100.00", "250.50"} {
		_, err := invoiceUC.Create(ctx, catOwnerID, f.shopID, dto.CreateInvoiceRequest{
			SerialNo: fmt.Sprintf("INV-%03d", i+1),
			BillTo:   dto.PartyDTO{Name: "Acme"},
			Total:    decimal.RequireFromString(total),
		})
		require.NoError(t, err)
	}
	_, err = f.uc.Create(ctx, catOwnerID, f.shopID, productInput("Keyboard"))
	require.NoError(t, err)

	dash, err := analyticsUC.Dashboard(ctx, catOwnerID, f.shopID)
	require.NoError(t, err)
	// Invoices were issued just now, so every window includes them.
	want := decimal.RequireFromString("350.50")
	assert.True(t, dash.TodaySales.Equal(want))
	assert.True(t, dash.MonthSales.Equal(want))
	assert.True(t, dash.YearlySales.Equal(want))
	assert.True(t, dash.NetIncome.Equal(want))
	assert.EqualValues(t, 1, dash.ProductCount)
}

func TestDashboard_ViewerCanRead(t *testing.T) {
	f := newCatalogFixture(t)
	analyticsUC := usecase.NewAnalyticsUseCase(
		tenancy.NewUseCase(
			memory.NewTxRunner(f.store),
			memory.NewUserRepository(f.store),
			memory.NewShopRepository(f.store),
			memory.NewUserShopRepository(f.store),
			logger.New(logger.Config{Env: "development", Level: "error"}),
		),
		memory.NewAnalyticsRepository(f.store),
	)

	_, err := analyticsUC.Dashboard(context.Background(), catViewerID, f.shopID)
	require.NoError(t, err)

	_, err = analyticsUC.Dashboard(context.Background(), "stranger", f.shopID)
	assert.ErrorIs(t, err, domain.ErrShopAccessDenied)
}
