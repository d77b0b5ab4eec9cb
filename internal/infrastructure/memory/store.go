// Package memory holds in-memory repository fakes for use-case tests. The
// store keeps entities by value so a transaction snapshot is a plain map copy,
// which gives the fake TxRunner real rollback behavior for fault injection.
package memory

import (
	"sync"

	"github.com/sonu0702/cozy-api/internal/domain/entity"
)

type edgeKey struct {
	UserID string
	ShopID string
}

// Store is the shared backing state for every fake repository.
type Store struct {
	mu sync.Mutex

	users    map[string]entity.User
	shops    map[string]entity.Shop
	edges    map[edgeKey]entity.UserShop
	invoices map[string]entity.Invoice
	items    map[string]entity.InvoiceItem
	products map[string]entity.Product

	seq        int64
	invoiceSeq map[string]int64
	productSeq map[string]int64

	// Fault injection hooks. A non-nil error makes the matching write fail.
	FailEdgeCreate    error
	FailItemCreate    error
	FailProductCreate error
}

func NewStore() *Store {
	return &Store{
		users:      make(map[string]entity.User),
		shops:      make(map[string]entity.Shop),
		edges:      make(map[edgeKey]entity.UserShop),
		invoices:   make(map[string]entity.Invoice),
		items:      make(map[string]entity.InvoiceItem),
		products:   make(map[string]entity.Product),
		invoiceSeq: make(map[string]int64),
		productSeq: make(map[string]int64),
	}
}

type snapshot struct {
	users      map[string]entity.User
	shops      map[string]entity.Shop
	edges      map[edgeKey]entity.UserShop
	invoices   map[string]entity.Invoice
	items      map[string]entity.InvoiceItem
	products   map[string]entity.Product
	seq        int64
	invoiceSeq map[string]int64
	productSeq map[string]int64
}

func (s *Store) snapshot() snapshot {
	return snapshot{
		users:      copyMap(s.users),
		shops:      copyMap(s.shops),
		edges:      copyMap(s.edges),
		invoices:   copyMap(s.invoices),
		items:      copyMap(s.items),
		products:   copyMap(s.products),
		seq:        s.seq,
		invoiceSeq: copyMap(s.invoiceSeq),
		productSeq: copyMap(s.productSeq),
	}
}

func (s *Store) restore(snap snapshot) {
	s.users = snap.users
	s.shops = snap.shops
	s.edges = snap.edges
	s.invoices = snap.invoices
	s.items = snap.items
	s.products = snap.products
	s.seq = snap.seq
	s.invoiceSeq = snap.invoiceSeq
	s.productSeq = snap.productSeq
}

func (s *Store) nextSeq() int64 {
	s.seq++
	return s.seq
}

func copyMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
