package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sonu0702/cozy-api/internal/application/dto"
	"github.com/sonu0702/cozy-api/internal/domain"
	"github.com/sonu0702/cozy-api/internal/domain/entity"
	"github.com/sonu0702/cozy-api/internal/domain/repository"
	"github.com/sonu0702/cozy-api/pkg/logger"
)

// bulkBatchSize caps how many products one transaction inserts.
const bulkBatchSize = 1000

// searchLimit caps name-search results.
const searchLimit = 50

// CatalogTxRunner executes a function inside one transaction with a product
// repo bound to it, used by bulk imports so each batch lands atomically.
type CatalogTxRunner interface {
	RunCatalog(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
	) error) error
}

// Authorizer resolves the caller's role on a shop and checks one capability.
type Authorizer interface {
	Authorize(ctx context.Context, userID, shopID string, cap entity.Capability) (entity.Role, error)
}

// ProductUseCase owns the per-shop catalog. Products never link to invoice
// items; they only pre-fill line values client-side.
type ProductUseCase struct {
	txRunner    CatalogTxRunner
	authorizer  Authorizer
	productRepo repository.ProductRepository
	log         *logger.Logger
}

func NewProductUseCase(
	txRunner CatalogTxRunner,
	authorizer Authorizer,
	productRepo repository.ProductRepository,
	log *logger.Logger,
) *ProductUseCase {
	return &ProductUseCase{
		txRunner:    txRunner,
		authorizer:  authorizer,
		productRepo: productRepo,
		log:         log,
	}
}

// Create adds one product to the shop's catalog.
func (uc *ProductUseCase) Create(ctx context.Context, userID, shopID string, in dto.ProductInput) (*dto.ProductResponse, error) {
	if _, err := uc.authorizer.Authorize(ctx, userID, shopID, entity.CapWrite); err != nil {
		return nil, err
	}
	product, err := buildProduct(shopID, in)
	if err != nil {
		return nil, err
	}
	if err := uc.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	resp := dto.ProductFromEntity(product)
	return &resp, nil
}

// BulkCreate imports products in batches. Every entry is validated up front;
// one bad entry rejects the whole request. Each batch then commits atomically.
func (uc *ProductUseCase) BulkCreate(ctx context.Context, userID, shopID string, in dto.BulkCreateProductsRequest) ([]dto.ProductResponse, error) {
	if _, err := uc.authorizer.Authorize(ctx, userID, shopID, entity.CapWrite); err != nil {
		return nil, err
	}
	if len(in.Products) == 0 {
		return nil, domain.ErrValidation
	}
	products := make([]*entity.Product, 0, len(in.Products))
	for _, p := range in.Products {
		product, err := buildProduct(shopID, p)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}

	for start := 0; start < len(products); start += bulkBatchSize {
		end := start + bulkBatchSize
		if end > len(products) {
			end = len(products)
		}
		batch := products[start:end]
		err := uc.txRunner.RunCatalog(ctx, func(productRepo repository.ProductRepository) error {
			for _, p := range batch {
				if err := productRepo.Create(ctx, p); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	uc.log.Info().Str("shop_id", shopID).Int("count", len(products)).Msg("bulk product import")

	resp := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		resp = append(resp, dto.ProductFromEntity(p))
	}
	return resp, nil
}

// Get returns one product the caller can read.
func (uc *ProductUseCase) Get(ctx context.Context, userID, productID string) (*dto.ProductResponse, error) {
	product, err := uc.authorizeProduct(ctx, userID, productID, entity.CapRead)
	if err != nil {
		return nil, err
	}
	resp := dto.ProductFromEntity(product)
	return &resp, nil
}

// List returns one newest-first page of the shop's catalog.
func (uc *ProductUseCase) List(ctx context.Context, userID, shopID string, page, pageSize int) (*dto.ProductListResponse, error) {
	if _, err := uc.authorizer.Authorize(ctx, userID, shopID, entity.CapRead); err != nil {
		return nil, err
	}
	if page < 1 {
		page = dto.DefaultPage
	}
	if pageSize < 1 {
		pageSize = dto.DefaultPageSize
	}
	products, err := uc.productRepo.ListByShop(ctx, shopID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}
	total, err := uc.productRepo.CountByShop(ctx, shopID)
	if err != nil {
		return nil, err
	}
	resp := &dto.ProductListResponse{
		Products: make([]dto.ProductResponse, 0, len(products)),
		Meta:     dto.PageMeta{Page: page, PageSize: pageSize, Total: total},
	}
	for _, p := range products {
		resp.Products = append(resp.Products, dto.ProductFromEntity(p))
	}
	return resp, nil
}

// Update rewrites one product.
func (uc *ProductUseCase) Update(ctx context.Context, userID, productID string, in dto.ProductInput) (*dto.ProductResponse, error) {
	product, err := uc.authorizeProduct(ctx, userID, productID, entity.CapWrite)
	if err != nil {
		return nil, err
	}
	updated, err := buildProduct(product.ShopID, in)
	if err != nil {
		return nil, err
	}
	updated.ID = product.ID
	updated.CreatedAt = product.CreatedAt
	if err := uc.productRepo.Update(ctx, updated); err != nil {
		return nil, err
	}
	resp := dto.ProductFromEntity(updated)
	return &resp, nil
}

// Delete removes one product.
func (uc *ProductUseCase) Delete(ctx context.Context, userID, productID string) error {
	product, err := uc.authorizeProduct(ctx, userID, productID, entity.CapDelete)
	if err != nil {
		return err
	}
	return uc.productRepo.Delete(ctx, product.ID)
}

// Search matches catalog names case-insensitively by substring.
func (uc *ProductUseCase) Search(ctx context.Context, userID, shopID, fragment string) ([]dto.ProductResponse, error) {
	if strings.TrimSpace(fragment) == "" {
		return nil, domain.ErrInvalidParameter
	}
	if _, err := uc.authorizer.Authorize(ctx, userID, shopID, entity.CapRead); err != nil {
		return nil, err
	}
	products, err := uc.productRepo.SearchByName(ctx, shopID, fragment, searchLimit)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		resp = append(resp, dto.ProductFromEntity(p))
	}
	return resp, nil
}

// authorizeProduct walks product -> shop -> edge. Missing products and
// products on shops the caller cannot see both surface as ErrProductNotFound.
func (uc *ProductUseCase) authorizeProduct(ctx context.Context, userID, productID string, cap entity.Capability) (*entity.Product, error) {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	if _, err := uc.authorizer.Authorize(ctx, userID, product.ShopID, cap); err != nil {
		if _, readErr := uc.authorizer.Authorize(ctx, userID, product.ShopID, entity.CapRead); readErr != nil {
			return nil, domain.ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

var hundred = decimal.NewFromInt(100)

// buildProduct validates one input and applies defaults. Rates are percentages
// to two decimals between 0 and 100; price is non-negative.
func buildProduct(shopID string, in dto.ProductInput) (*entity.Product, error) {
	name := strings.TrimSpace(in.Name)
	if len(name) < 2 {
		return nil, domain.ErrValidation
	}
	if in.Price.IsNegative() {
		return nil, domain.ErrValidation
	}
	for _, rate := range []decimal.Decimal{in.CGST, in.SGST, in.IGST, in.DiscountPercent} {
		if rate.IsNegative() || rate.GreaterThan(hundred) {
			return nil, domain.ErrValidation
		}
	}
	now := time.Now().UTC()
	return &entity.Product{
		ID:              uuid.New().String(),
		ShopID:          shopID,
		Name:            name,
		Price:           in.Price.Round(2),
		HSN:             in.HSN,
		Category:        in.Category,
		CGST:            in.CGST.Round(2),
		SGST:            in.SGST.Round(2),
		IGST:            in.IGST.Round(2),
		DiscountPercent: in.DiscountPercent.Round(2),
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}
