package services

import "errors"

// Domain errors returned by the service layer. Callers branch on these with
// errors.Is; anything else coming out of a service is a storage failure and
// should be surfaced as a 500.
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrEmailTaken       = errors.New("email already registered")
	ErrProductNotFound  = errors.New("product not found")
	ErrProductInactive  = errors.New("product is no longer available")
	ErrImageNotFound    = errors.New("image not found")
	ErrCartNotFound     = errors.New("cart not found")
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrNotOwner         = errors.New("operation target belongs to another user")
	ErrInvalidQuantity  = errors.New("quantity must be at least 1")
)
