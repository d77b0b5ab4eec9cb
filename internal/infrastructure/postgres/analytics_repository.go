package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/sonu0702/cozy-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo runs aggregate queries straight against the pool. These are
// read-only and need no transaction.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

func (r *AnalyticsRepo) SalesTotalSince(ctx context.Context, shopID string, since time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(total), 0) FROM invoices WHERE shop_id = $1 AND created_at >= $2`,
		shopID, since,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sales total since: %w", err)
	}
	return total, nil
}

func (r *AnalyticsRepo) SalesTotal(ctx context.Context, shopID string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(total), 0) FROM invoices WHERE shop_id = $1`,
		shopID,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sales total: %w", err)
	}
	return total, nil
}

func (r *AnalyticsRepo) ProductCount(ctx context.Context, shopID string) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM products WHERE shop_id = $1`,
		shopID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("product count: %w", err)
	}
	return count, nil
}
