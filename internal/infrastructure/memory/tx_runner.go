package memory

import (
	"context"

	"github.com/sonu0702/cozy-api/internal/application/billing"
	"github.com/sonu0702/cozy-api/internal/application/tenancy"
	"github.com/sonu0702/cozy-api/internal/application/usecase"
	"github.com/sonu0702/cozy-api/internal/domain/repository"
)

var _ tenancy.TxRunner = (*TxRunner)(nil)
var _ billing.TxRunner = (*TxRunner)(nil)
var _ usecase.CatalogTxRunner = (*TxRunner)(nil)

// TxRunner mimics the transactional runner: it snapshots the store before the
// callback and restores it when the callback fails, so all-or-nothing behavior
// is observable in tests.
type TxRunner struct {
	s *Store
}

func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

func (r *TxRunner) RunTenancy(_ context.Context, fn func(
	userRepo repository.UserRepository,
	shopRepo repository.ShopRepository,
	edgeRepo repository.UserShopRepository,
) error) error {
	return r.run(func() error {
		return fn(NewUserRepository(r.s), NewShopRepository(r.s), NewUserShopRepository(r.s))
	})
}

func (r *TxRunner) RunBilling(_ context.Context, fn func(
	invoiceRepo repository.InvoiceRepository,
) error) error {
	return r.run(func() error {
		return fn(NewInvoiceRepository(r.s))
	})
}

func (r *TxRunner) RunCatalog(_ context.Context, fn func(
	productRepo repository.ProductRepository,
) error) error {
	return r.run(func() error {
		return fn(NewProductRepository(r.s))
	})
}

func (r *TxRunner) run(fn func() error) error {
	r.s.mu.Lock()
	snap := r.s.snapshot()
	r.s.mu.Unlock()

	if err := fn(); err != nil {
		r.s.mu.Lock()
		r.s.restore(snap)
		r.s.mu.Unlock()
		return err
	}
	return nil
}
