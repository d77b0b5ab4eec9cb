package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sonu0702/cozy-api/internal/application/billing"
	"github.com/sonu0702/cozy-api/internal/application/tenancy"
	"github.com/sonu0702/cozy-api/internal/application/usecase"
	"github.com/sonu0702/cozy-api/internal/domain/repository"
)

// Ensure TxRunner implements the application-layer unit-of-work ports.
var _ tenancy.TxRunner = (*TxRunner)(nil)
var _ billing.TxRunner = (*TxRunner)(nil)
var _ usecase.CatalogTxRunner = (*TxRunner)(nil)

// TxRunner executes callbacks inside one PostgreSQL transaction. On success
// everything commits as a unit; on any error the deferred rollback undoes all
// writes and the callback's error is returned unchanged. The connection is
// released on every path.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner builds the runner on top of the pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunTenancy starts a transaction with user, shop and tenancy-edge repos bound
// to it. Used by shop creation and registration, where the shop row and its
// OWNER edge must land together or not at all.
func (r *TxRunner) RunTenancy(ctx context.Context, fn func(
	userRepo repository.UserRepository,
	shopRepo repository.ShopRepository,
	edgeRepo repository.UserShopRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewUserRepository(tx), NewShopRepository(tx), NewUserShopRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunBilling starts a transaction with an invoice repo bound to it, for
// invoice+items creation and batch item reconciliation.
func (r *TxRunner) RunBilling(ctx context.Context, fn func(
	invoiceRepo repository.InvoiceRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewInvoiceRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunCatalog starts a transaction with a product repo bound to it, used for
// bulk catalog imports saved batch by batch.
func (r *TxRunner) RunCatalog(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewProductRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
