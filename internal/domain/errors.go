package domain

import "errors"

// Domain errors (no external dependencies). Handlers map these to HTTP
// statuses and machine-readable codes.
var (
	ErrShopNotFound        = errors.New("shop not found")
	ErrShopAccessDenied    = errors.New("shop access denied")
	ErrUserShopExists      = errors.New("user is already associated with this shop")
	ErrShopUpdate          = errors.New("shop update rejected")
	ErrInvoiceNotFound     = errors.New("invoice not found")
	ErrInvoiceItemNotFound = errors.New("invoice item not found")
	ErrProductNotFound     = errors.New("product not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrValidation          = errors.New("invalid input")
	ErrInvalidParameter    = errors.New("missing or invalid parameter")
	ErrDuplicate           = errors.New("duplicate resource")
	ErrUnauthorized        = errors.New("unauthorized")
)
