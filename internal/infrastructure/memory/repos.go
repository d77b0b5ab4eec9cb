package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sonu0702/cozy-api/internal/domain"
	"github.com/sonu0702/cozy-api/internal/domain/entity"
	"github.com/sonu0702/cozy-api/internal/domain/repository"
)

var (
	_ repository.UserRepository      = (*UserRepo)(nil)
	_ repository.ShopRepository      = (*ShopRepo)(nil)
	_ repository.UserShopRepository  = (*UserShopRepo)(nil)
	_ repository.InvoiceRepository   = (*InvoiceRepo)(nil)
	_ repository.ProductRepository   = (*ProductRepo)(nil)
	_ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)
)

// UserRepo in-memory UserRepository.
type UserRepo struct{ s *Store }

func NewUserRepository(s *Store) *UserRepo { return &UserRepo{s: s} }

func (r *UserRepo) Create(_ context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Username == user.Username || (user.Email != "" && u.Email == user.Email) {
			return domain.ErrDuplicate
		}
	}
	r.s.users[user.ID] = *user
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *UserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Username == username {
			out := u
			return &out, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) SetDefaultShop(_ context.Context, userID, shopID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.DefaultShopID = shopID
	r.s.users[userID] = u
	return nil
}

// ShopRepo in-memory ShopRepository.
type ShopRepo struct{ s *Store }

func NewShopRepository(s *Store) *ShopRepo { return &ShopRepo{s: s} }

func (r *ShopRepo) Create(_ context.Context, shop *entity.Shop) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.shops[shop.ID] = *shop
	return nil
}

func (r *ShopRepo) GetByID(_ context.Context, id string) (*entity.Shop, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sh, ok := r.s.shops[id]
	if !ok {
		return nil, nil
	}
	return &sh, nil
}

func (r *ShopRepo) Update(_ context.Context, shop *entity.Shop) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.shops[shop.ID]; !ok {
		return domain.ErrShopNotFound
	}
	r.s.shops[shop.ID] = *shop
	return nil
}

func (r *ShopRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.shops, id)
	for k := range r.s.edges {
		if k.ShopID == id {
			delete(r.s.edges, k)
		}
	}
	return nil
}

func (r *ShopRepo) ListByUser(_ context.Context, userID string) ([]*repository.ShopWithRole, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*repository.ShopWithRole
	for k, e := range r.s.edges {
		if k.UserID != userID {
			continue
		}
		sh, ok := r.s.shops[k.ShopID]
		if !ok {
			continue
		}
		shop := sh
		out = append(out, &repository.ShopWithRole{Shop: &shop, Role: e.Role})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Shop.ID < out[j].Shop.ID })
	return out, nil
}

// UserShopRepo in-memory UserShopRepository.
type UserShopRepo struct{ s *Store }

func NewUserShopRepository(s *Store) *UserShopRepo { return &UserShopRepo{s: s} }

func (r *UserShopRepo) Create(_ context.Context, edge *entity.UserShop) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.FailEdgeCreate != nil {
		return r.s.FailEdgeCreate
	}
	k := edgeKey{UserID: edge.UserID, ShopID: edge.ShopID}
	if _, ok := r.s.edges[k]; ok {
		return domain.ErrUserShopExists
	}
	r.s.edges[k] = *edge
	return nil
}

func (r *UserShopRepo) Get(_ context.Context, userID, shopID string) (*entity.UserShop, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.edges[edgeKey{UserID: userID, ShopID: shopID}]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (r *UserShopRepo) ListByShop(_ context.Context, shopID string) ([]*entity.UserShop, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.UserShop
	for k, e := range r.s.edges {
		if k.ShopID == shopID {
			edge := e
			out = append(out, &edge)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

func (r *UserShopRepo) UpdateRole(_ context.Context, userID, shopID string, role entity.Role) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	k := edgeKey{UserID: userID, ShopID: shopID}
	e, ok := r.s.edges[k]
	if !ok {
		return domain.ErrShopAccessDenied
	}
	e.Role = role
	r.s.edges[k] = e
	return nil
}

func (r *UserShopRepo) Delete(_ context.Context, userID, shopID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.edges, edgeKey{UserID: userID, ShopID: shopID})
	return nil
}

// InvoiceRepo in-memory InvoiceRepository. Headers and items live in separate
// maps like the SQL schema; stored invoices never carry an Items slice.
type InvoiceRepo struct{ s *Store }

func NewInvoiceRepository(s *Store) *InvoiceRepo { return &InvoiceRepo{s: s} }

func (r *InvoiceRepo) Create(_ context.Context, invoice *entity.Invoice) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	header := *invoice
	header.Items = nil
	r.s.invoices[invoice.ID] = header
	r.s.invoiceSeq[invoice.ID] = r.s.nextSeq()
	return nil
}

func (r *InvoiceRepo) CreateItem(_ context.Context, item *entity.InvoiceItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.FailItemCreate != nil {
		return r.s.FailItemCreate
	}
	r.s.items[item.ID] = *item
	return nil
}

func (r *InvoiceRepo) GetByID(_ context.Context, id string) (*entity.Invoice, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	inv, ok := r.s.invoices[id]
	if !ok {
		return nil, nil
	}
	return &inv, nil
}

func (r *InvoiceRepo) GetItems(_ context.Context, invoiceID string) ([]*entity.InvoiceItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.InvoiceItem
	for _, it := range r.s.items {
		if it.InvoiceID == invoiceID {
			item := it
			out = append(out, &item)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Position != out[j].Position {
			return out[i].Position < out[j].Position
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *InvoiceRepo) GetItem(_ context.Context, itemID string) (*entity.InvoiceItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	it, ok := r.s.items[itemID]
	if !ok {
		return nil, nil
	}
	return &it, nil
}

func (r *InvoiceRepo) Update(_ context.Context, invoice *entity.Invoice) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.invoices[invoice.ID]; !ok {
		return domain.ErrInvoiceNotFound
	}
	header := *invoice
	header.Items = nil
	r.s.invoices[invoice.ID] = header
	return nil
}

func (r *InvoiceRepo) UpdateItem(_ context.Context, item *entity.InvoiceItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.items[item.ID]; !ok {
		return domain.ErrInvoiceItemNotFound
	}
	r.s.items[item.ID] = *item
	return nil
}

func (r *InvoiceRepo) DeleteItem(_ context.Context, itemID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.items, itemID)
	return nil
}

func (r *InvoiceRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.invoices, id)
	delete(r.s.invoiceSeq, id)
	for k, it := range r.s.items {
		if it.InvoiceID == id {
			delete(r.s.items, k)
		}
	}
	return nil
}

func (r *InvoiceRepo) NextItemPosition(_ context.Context, invoiceID string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	next := 0
	for _, it := range r.s.items {
		if it.InvoiceID == invoiceID && it.Position >= next {
			next = it.Position + 1
		}
	}
	return next, nil
}

func (r *InvoiceRepo) ListByShop(_ context.Context, filter repository.InvoiceListFilter) ([]*entity.Invoice, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	matching := r.matching(filter.ShopID, filter.Type)
	sort.Slice(matching, func(i, j int) bool {
		return r.s.invoiceSeq[matching[i].ID] > r.s.invoiceSeq[matching[j].ID]
	})
	if filter.Offset >= len(matching) {
		return nil, nil
	}
	matching = matching[filter.Offset:]
	if filter.Limit < len(matching) {
		matching = matching[:filter.Limit]
	}
	return matching, nil
}

func (r *InvoiceRepo) CountByShop(_ context.Context, shopID, typeFilter string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.matching(shopID, typeFilter))), nil
}

func (r *InvoiceRepo) matching(shopID, typeFilter string) []*entity.Invoice {
	var out []*entity.Invoice
	for _, inv := range r.s.invoices {
		if inv.ShopID != shopID {
			continue
		}
		if typeFilter != "" && inv.Type != typeFilter {
			continue
		}
		header := inv
		out = append(out, &header)
	}
	return out
}

func (r *InvoiceRepo) SearchParties(_ context.Context, shopID string, field repository.PartyField, fragment string) ([]*entity.Party, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	needle := strings.ToLower(fragment)
	seen := make(map[entity.Party]bool)
	var out []*entity.Party
	ids := make([]string, 0, len(r.s.invoices))
	for id := range r.s.invoices {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return r.s.invoiceSeq[ids[i]] < r.s.invoiceSeq[ids[j]] })
	for _, id := range ids {
		inv := r.s.invoices[id]
		if inv.ShopID != shopID {
			continue
		}
		p := inv.BillTo
		if field == repository.PartyShipTo {
			p = inv.ShipTo
		}
		if !strings.Contains(strings.ToLower(p.Name), needle) {
			continue
		}
		if seen[p] {
			continue
		}
		seen[p] = true
		party := p
		out = append(out, &party)
	}
	return out, nil
}

// ProductRepo in-memory ProductRepository.
type ProductRepo struct{ s *Store }

func NewProductRepository(s *Store) *ProductRepo { return &ProductRepo{s: s} }

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.FailProductCreate != nil {
		return r.s.FailProductCreate
	}
	r.s.products[p.ID] = *p
	r.s.productSeq[p.ID] = r.s.nextSeq()
	return nil
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *ProductRepo) ListByShop(_ context.Context, shopID string, limit, offset int) ([]*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Product
	for _, p := range r.s.products {
		if p.ShopID == shopID {
			product := p
			out = append(out, &product)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return r.s.productSeq[out[i].ID] > r.s.productSeq[out[j].ID]
	})
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *ProductRepo) CountByShop(_ context.Context, shopID string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, p := range r.s.products {
		if p.ShopID == shopID {
			n++
		}
	}
	return n, nil
}

func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[p.ID]; !ok {
		return domain.ErrProductNotFound
	}
	r.s.products[p.ID] = *p
	return nil
}

func (r *ProductRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(r.s.products, id)
	delete(r.s.productSeq, id)
	return nil
}

func (r *ProductRepo) SearchByName(_ context.Context, shopID, fragment string, limit int) ([]*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	needle := strings.ToLower(fragment)
	var out []*entity.Product
	for _, p := range r.s.products {
		if p.ShopID != shopID || !strings.Contains(strings.ToLower(p.Name), needle) {
			continue
		}
		product := p
		out = append(out, &product)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

// AnalyticsRepo computes aggregates straight off the store.
type AnalyticsRepo struct{ s *Store }

func NewAnalyticsRepository(s *Store) *AnalyticsRepo { return &AnalyticsRepo{s: s} }

func (r *AnalyticsRepo) SalesTotalSince(_ context.Context, shopID string, since time.Time) (decimal.Decimal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	total := decimal.Zero
	for _, inv := range r.s.invoices {
		if inv.ShopID == shopID && !inv.CreatedAt.Before(since) {
			total = total.Add(inv.Total)
		}
	}
	return total, nil
}

func (r *AnalyticsRepo) SalesTotal(_ context.Context, shopID string) (decimal.Decimal, error) {
	return r.SalesTotalSince(context.Background(), shopID, time.Time{})
}

func (r *AnalyticsRepo) ProductCount(_ context.Context, shopID string) (int64, error) {
	return NewProductRepository(r.s).CountByShop(context.Background(), shopID)
}
