package service

import "errors"

var (
	ErrInvalidCredentials  = errors.New("invalid login or password")
	ErrProductNotFound     = errors.New("product not found or out of stock")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrCategoryInUse       = errors.New("category is referenced by products")
	ErrOrderNotFound       = errors.New("order not found")
	ErrEmptyCart           = errors.New("cart is empty")
	ErrNoAvailableProducts = errors.New("no products in the cart are available")
	ErrNothingPurchasable  = errors.New("every cart line went out of stock")
	ErrNotDeletable        = errors.New("only new orders can be deleted")
)

// ValidationErrors aggregates field-level problems so a caller can fix a
// whole form in one round-trip.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	return "validation failed"
}
