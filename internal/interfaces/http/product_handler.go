package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sonu0702/cozy-api/internal/application/dto"
	"github.com/sonu0702/cozy-api/internal/application/usecase"
)

// ProductHandler per-shop catalog endpoints.
type ProductHandler struct {
	uc *usecase.ProductUseCase
}

func NewProductHandler(uc *usecase.ProductUseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// Create adds one product.
// POST /api/shops/:id/products
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.ProductInput
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	resp, err := h.uc.Create(c.Context(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// BulkCreate imports products in validated batches.
// POST /api/shops/:id/products/bulk
func (h *ProductHandler) BulkCreate(c *fiber.Ctx) error {
	var in dto.BulkCreateProductsRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	resp, err := h.uc.BulkCreate(c.Context(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// List returns one page of the shop's catalog.
// GET /api/shops/:id/products?page=&page_size=
func (h *ProductHandler) List(c *fiber.Ctx) error {
	page := dto.ParsePage(c.Query("page"))
	pageSize := dto.ParsePageSize(c.Query("page_size"))
	resp, err := h.uc.List(c.Context(), GetUserID(c), c.Params("id"), page, pageSize)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// Search matches catalog names by substring.
// GET /api/shops/:id/products/search?q=
func (h *ProductHandler) Search(c *fiber.Ctx) error {
	resp, err := h.uc.Search(c.Context(), GetUserID(c), c.Params("id"), c.Query("q"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// GetByID returns one product.
// GET /api/products/:id
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	resp, err := h.uc.Get(c.Context(), GetUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// Update rewrites one product.
// PUT /api/products/:id
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.ProductInput
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	resp, err := h.uc.Update(c.Context(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// Delete removes one product.
// DELETE /api/products/:id
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), GetUserID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
