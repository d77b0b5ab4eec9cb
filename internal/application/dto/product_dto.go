package dto

import (
	"github.com/shopspring/decimal"
	"github.com/sonu0702/cozy-api/internal/domain/entity"
)

// ProductInput body for product create/update and each bulk entry.
type ProductInput struct {
	Name            string          `json:"name"`
	Price           decimal.Decimal `json:"price"`
	HSN             string          `json:"hsn,omitempty"`
	Category        string          `json:"category,omitempty"`
	CGST            decimal.Decimal `json:"cgst"`
	SGST            decimal.Decimal `json:"sgst"`
	IGST            decimal.Decimal `json:"igst"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
}

// BulkCreateProductsRequest body for POST /api/shops/:id/products/bulk.
type BulkCreateProductsRequest struct {
	Products []ProductInput `json:"products"`
}

// ProductResponse product in responses.
type ProductResponse struct {
	ID              string          `json:"id"`
	ShopID          string          `json:"shop_id"`
	Name            string          `json:"name"`
	Price           decimal.Decimal `json:"price"`
	HSN             string          `json:"hsn,omitempty"`
	Category        string          `json:"category,omitempty"`
	CGST            decimal.Decimal `json:"cgst"`
	SGST            decimal.Decimal `json:"sgst"`
	IGST            decimal.Decimal `json:"igst"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
}

// ProductListResponse one page of products.
type ProductListResponse struct {
	Products []ProductResponse `json:"products"`
	Meta     PageMeta          `json:"meta"`
}

// ProductFromEntity converts one product.
func ProductFromEntity(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:              p.ID,
		ShopID:          p.ShopID,
		Name:            p.Name,
		Price:           p.Price,
		HSN:             p.HSN,
		Category:        p.Category,
		CGST:            p.CGST,
		SGST:            p.SGST,
		IGST:            p.IGST,
		DiscountPercent: p.DiscountPercent,
	}
}
