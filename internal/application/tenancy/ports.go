package tenancy

import (
	"context"

	"github.com/sonu0702/cozy-api/internal/domain/repository"
)

// TxRunner executes a function inside one transaction with tenancy repos
// bound to it. Shop creation needs the shop row and the OWNER edge to land
// together or not at all.
type TxRunner interface {
	RunTenancy(ctx context.Context, fn func(
		userRepo repository.UserRepository,
		shopRepo repository.ShopRepository,
		edgeRepo repository.UserShopRepository,
	) error) error
}
