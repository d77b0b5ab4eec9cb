package dto

import "github.com/shopspring/decimal"

// DashboardResponse per-shop aggregates for GET /api/shops/:id/analytics.
type DashboardResponse struct {
	TodaySales   decimal.Decimal `json:"today_sales"`
	MonthSales   decimal.Decimal `json:"month_sales"`
	YearlySales  decimal.Decimal `json:"yearly_sales"`
	NetIncome    decimal.Decimal `json:"net_income"`
	ProductCount int64           `json:"product_count"`
}
