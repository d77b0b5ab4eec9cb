package repository

import (
	"context"

	"github.com/sonu0702/cozy-api/internal/domain/entity"
)

// ShopWithRole pairs a shop with the caller's role on it.
type ShopWithRole struct {
	Shop *entity.Shop
	Role entity.Role
}

// ShopRepository defines the persistence port for shops.
// GetByID returns (nil, nil) when the shop does not exist.
type ShopRepository interface {
	Create(ctx context.Context, shop *entity.Shop) error
	GetByID(ctx context.Context, id string) (*entity.Shop, error)
	Update(ctx context.Context, shop *entity.Shop) error
	Delete(ctx context.Context, id string) error
	// ListByUser returns every shop the user has a tenancy edge to, with the
	// user's role on each.
	ListByUser(ctx context.Context, userID string) ([]*ShopWithRole, error)
}
