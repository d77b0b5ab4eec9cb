package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sonu0702/cozy-api/internal/application/dto"
	"github.com/sonu0702/cozy-api/internal/domain"
)

// respondError maps a domain sentinel to an HTTP status and a stable machine
// code. Unknown errors become 500 INTERNAL without leaking internals.
func respondError(c *fiber.Ctx, err error) error {
	var status int
	var code string
	switch {
	case errors.Is(err, domain.ErrShopNotFound):
		status, code = fiber.StatusNotFound, "SHOP_NOT_FOUND"
	case errors.Is(err, domain.ErrShopAccessDenied):
		status, code = fiber.StatusForbidden, "SHOP_ACCESS_DENIED"
	case errors.Is(err, domain.ErrUserShopExists):
		status, code = fiber.StatusConflict, "USER_SHOP_EXISTS"
	case errors.Is(err, domain.ErrShopUpdate):
		status, code = fiber.StatusBadRequest, "SHOP_UPDATE_ERROR"
	case errors.Is(err, domain.ErrInvoiceNotFound):
		status, code = fiber.StatusNotFound, "INVOICE_NOT_FOUND"
	case errors.Is(err, domain.ErrInvoiceItemNotFound):
		status, code = fiber.StatusNotFound, "INVOICE_ITEM_NOT_FOUND"
	case errors.Is(err, domain.ErrProductNotFound):
		status, code = fiber.StatusNotFound, "PRODUCT_NOT_FOUND"
	case errors.Is(err, domain.ErrValidation):
		status, code = fiber.StatusBadRequest, "VALIDATION_ERROR"
	case errors.Is(err, domain.ErrInvalidParameter):
		status, code = fiber.StatusBadRequest, "INVALID_PARAMETER"
	case errors.Is(err, domain.ErrDuplicate):
		status, code = fiber.StatusConflict, "DUPLICATE"
	case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrUnauthorized):
		status, code = fiber.StatusUnauthorized, "UNAUTHORIZED"
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "internal server error", Code: "INTERNAL",
		})
	}
	return c.Status(status).JSON(dto.ErrorResponse{Error: err.Error(), Code: code})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error: "malformed request body", Code: "INVALID_BODY",
	})
}
