package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/sonu0702/cozy-api/internal/domain"
	"github.com/sonu0702/cozy-api/internal/domain/entity"
	"github.com/sonu0702/cozy-api/internal/domain/repository"
)

var _ repository.UserShopRepository = (*UserShopRepo)(nil)

// UserShopRepo implements UserShopRepository (usable with pool or tx).
type UserShopRepo struct {
	q Querier
}

// NewUserShopRepository builds the adapter. Pass a pool or tx (Querier).
func NewUserShopRepository(q Querier) *UserShopRepo {
	return &UserShopRepo{q: q}
}

// Create inserts a tenancy edge. The composite primary key makes a duplicate
// pair a unique violation, surfaced as ErrUserShopExists.
func (r *UserShopRepo) Create(ctx context.Context, edge *entity.UserShop) error {
	query := `
		INSERT INTO user_shops (user_id, shop_id, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query,
		edge.UserID, edge.ShopID, string(edge.Role), edge.CreatedAt, edge.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrUserShopExists
		}
		return fmt.Errorf("insert user_shop: %w", err)
	}
	return nil
}

// Get fetches the edge for a (user, shop) pair.
func (r *UserShopRepo) Get(ctx context.Context, userID, shopID string) (*entity.UserShop, error) {
	query := `
		SELECT user_id, shop_id, role, created_at, updated_at
		FROM user_shops WHERE user_id = $1 AND shop_id = $2`
	var e entity.UserShop
	var role string
	err := r.q.QueryRow(ctx, query, userID, shopID).Scan(
		&e.UserID, &e.ShopID, &role, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user_shop: %w", err)
	}
	e.Role = entity.Role(role)
	return &e, nil
}

// ListByShop returns every edge of one shop.
func (r *UserShopRepo) ListByShop(ctx context.Context, shopID string) ([]*entity.UserShop, error) {
	query := `
		SELECT user_id, shop_id, role, created_at, updated_at
		FROM user_shops WHERE shop_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(ctx, query, shopID)
	if err != nil {
		return nil, fmt.Errorf("list user_shops: %w", err)
	}
	defer rows.Close()

	var list []*entity.UserShop
	for rows.Next() {
		var e entity.UserShop
		var role string
		if err := rows.Scan(&e.UserID, &e.ShopID, &role, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan user_shop: %w", err)
		}
		e.Role = entity.Role(role)
		list = append(list, &e)
	}
	return list, rows.Err()
}

// UpdateRole changes the role on an existing edge.
func (r *UserShopRepo) UpdateRole(ctx context.Context, userID, shopID string, role entity.Role) error {
	query := `UPDATE user_shops SET role = $3, updated_at = now() WHERE user_id = $1 AND shop_id = $2`
	tag, err := r.q.Exec(ctx, query, userID, shopID, string(role))
	if err != nil {
		return fmt.Errorf("update user_shop role: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrShopAccessDenied
	}
	return nil
}

// Delete removes an edge.
func (r *UserShopRepo) Delete(ctx context.Context, userID, shopID string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM user_shops WHERE user_id = $1 AND shop_id = $2`, userID, shopID)
	if err != nil {
		return fmt.Errorf("delete user_shop: %w", err)
	}
	return nil
}
