package repository

import (
	"context"

	"github.com/sonu0702/cozy-api/internal/domain/entity"
)

// ProductRepository defines the persistence port for catalog products.
// GetByID returns (nil, nil) when the product does not exist.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// ListByShop returns a newest-first page of products.
	ListByShop(ctx context.Context, shopID string, limit, offset int) ([]*entity.Product, error)
	CountByShop(ctx context.Context, shopID string) (int64, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id string) error
	// SearchByName matches product names case-insensitively by substring.
	SearchByName(ctx context.Context, shopID, query string, limit int) ([]*entity.Product, error)
}
