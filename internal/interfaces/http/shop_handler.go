package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sonu0702/cozy-api/internal/application/dto"
	"github.com/sonu0702/cozy-api/internal/application/tenancy"
)

// ShopHandler shop lifecycle, tenancy administration and the default-shop
// pointer.
type ShopHandler struct {
	uc *tenancy.UseCase
}

func NewShopHandler(uc *tenancy.UseCase) *ShopHandler {
	return &ShopHandler{uc: uc}
}

// Create makes a shop with the caller as OWNER.
// POST /api/shops
func (h *ShopHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateShopRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	resp, err := h.uc.CreateShop(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// List returns the caller's shops with their role on each.
// GET /api/shops
func (h *ShopHandler) List(c *fiber.Ctx) error {
	resp, err := h.uc.ListShops(c.Context(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// GetByID returns one shop.
// GET /api/shops/:id
func (h *ShopHandler) GetByID(c *fiber.Ctx) error {
	resp, err := h.uc.GetShop(c.Context(), GetUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// Update rewrites the shop's registration data. Owner only.
// PUT /api/shops/:id
func (h *ShopHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateShopRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	resp, err := h.uc.UpdateShop(c.Context(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// Delete removes the shop. Owner only.
// DELETE /api/shops/:id
func (h *ShopHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.DeleteShop(c.Context(), GetUserID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AssociateUser adds a user to the shop with a role.
// POST /api/shops/:id/users
func (h *ShopHandler) AssociateUser(c *fiber.Ctx) error {
	var in dto.AssociateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	resp, err := h.uc.AssociateUser(c.Context(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// ListUsers returns the shop's tenancy edges.
// GET /api/shops/:id/users
func (h *ShopHandler) ListUsers(c *fiber.Ctx) error {
	resp, err := h.uc.GetShopUsers(c.Context(), GetUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// UpdateUserRole changes a member's role.
// PUT /api/shops/:id/users/:userId
func (h *ShopHandler) UpdateUserRole(c *fiber.Ctx) error {
	var in dto.UpdateUserRoleRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.uc.UpdateUserRole(c.Context(), GetUserID(c), c.Params("id"), c.Params("userId"), in); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RemoveUser drops a member from the shop.
// DELETE /api/shops/:id/users/:userId
func (h *ShopHandler) RemoveUser(c *fiber.Ctx) error {
	if err := h.uc.RemoveUser(c.Context(), GetUserID(c), c.Params("id"), c.Params("userId")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SetDefaultShop points the caller's default-shop pointer at a shop they are
// associated with.
// POST /api/users/default-shop
func (h *ShopHandler) SetDefaultShop(c *fiber.Ctx) error {
	var in dto.SetDefaultShopRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.uc.SetDefault(c.Context(), GetUserID(c), in.ShopID); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetDefaultShop resolves the caller's default shop; null when unset or the
// pointer dangles.
// GET /api/users/default-shop
func (h *ShopHandler) GetDefaultShop(c *fiber.Ctx) error {
	resp, err := h.uc.GetDefault(c.Context(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	if resp == nil {
		return c.JSON(fiber.Map{"default_shop": nil})
	}
	return c.JSON(fiber.Map{"default_shop": resp})
}
