package usecase

import (
	"context"
	"time"

	"github.com/sonu0702/cozy-api/internal/application/dto"
	"github.com/sonu0702/cozy-api/internal/domain/entity"
	"github.com/sonu0702/cozy-api/internal/domain/repository"
)

// AnalyticsUseCase computes the per-shop dashboard: sales aggregates over
// invoice totals plus the catalog size. Read capability is enough.
type AnalyticsUseCase struct {
	authorizer    Authorizer
	analyticsRepo repository.AnalyticsRepository
	now           func() time.Time
}

func NewAnalyticsUseCase(authorizer Authorizer, analyticsRepo repository.AnalyticsRepository) *AnalyticsUseCase {
	return &AnalyticsUseCase{
		authorizer:    authorizer,
		analyticsRepo: analyticsRepo,
		now:           time.Now,
	}
}

// Dashboard returns today's, this month's and this year's sales, all-time net
// income and the product count. Shops with no invoices report zeros.
func (uc *AnalyticsUseCase) Dashboard(ctx context.Context, userID, shopID string) (*dto.DashboardResponse, error) {
	if _, err := uc.authorizer.Authorize(ctx, userID, shopID, entity.CapRead); err != nil {
		return nil, err
	}
	now := uc.now().UTC()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	yearStart := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)

	today, err := uc.analyticsRepo.SalesTotalSince(ctx, shopID, dayStart)
	if err != nil {
		return nil, err
	}
	month, err := uc.analyticsRepo.SalesTotalSince(ctx, shopID, monthStart)
	if err != nil {
		return nil, err
	}
	year, err := uc.analyticsRepo.SalesTotalSince(ctx, shopID, yearStart)
	if err != nil {
		return nil, err
	}
	net, err := uc.analyticsRepo.SalesTotal(ctx, shopID)
	if err != nil {
		return nil, err
	}
	count, err := uc.analyticsRepo.ProductCount(ctx, shopID)
	if err != nil {
		return nil, err
	}
	return &dto.DashboardResponse{
		TodaySales:   today,
		MonthSales:   month,
		YearlySales:  year,
		NetIncome:    net,
		ProductCount: count,
	}, nil
}
