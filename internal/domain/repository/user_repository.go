package repository

import (
	"context"

	"github.com/sonu0702/cozy-api/internal/domain/entity"
)

// UserRepository defines the persistence port for users.
// Lookup methods return (nil, nil) when the row does not exist.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	// SetDefaultShop overwrites the user's default-shop pointer (last write wins).
	SetDefaultShop(ctx context.Context, userID, shopID string) error
}
