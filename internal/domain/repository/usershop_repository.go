package repository

import (
	"context"

	"github.com/sonu0702/cozy-api/internal/domain/entity"
)

// UserShopRepository defines the persistence port for tenancy edges.
// Get returns (nil, nil) when no edge exists for the pair.
type UserShopRepository interface {
	// Create inserts the edge; returns domain.ErrUserShopExists when the
	// (user, shop) pair is already associated.
	Create(ctx context.Context, edge *entity.UserShop) error
	Get(ctx context.Context, userID, shopID string) (*entity.UserShop, error)
	ListByShop(ctx context.Context, shopID string) ([]*entity.UserShop, error)
	UpdateRole(ctx context.Context, userID, shopID string, role entity.Role) error
	Delete(ctx context.Context, userID, shopID string) error
}
