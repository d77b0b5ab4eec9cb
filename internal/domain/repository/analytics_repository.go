package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// AnalyticsRepository runs read-only aggregate queries per shop.
// Sums return zero, not an error, for shops with no matching invoices.
type AnalyticsRepository interface {
	// SalesTotalSince sums invoice totals with created_at >= since.
	SalesTotalSince(ctx context.Context, shopID string, since time.Time) (decimal.Decimal, error)
	// SalesTotal sums all invoice totals for the shop (net income).
	SalesTotal(ctx context.Context, shopID string) (decimal.Decimal, error)
	ProductCount(ctx context.Context, shopID string) (int64, error)
}
