package service

import "errors"

var (
	ErrUserNotExist       = errors.New("user is not exist")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrCartEmpty          = errors.New("no valid products in cart")
	ErrOrderNotExist      = errors.New("order is not exist")
	ErrProductNotFound    = errors.New("product not found")
	ErrProductNotInCart   = errors.New("product not found in cart")
	ErrStockNotEnough     = errors.New("product stock not enough")
	ErrAddressIncomplete  = errors.New("shipping address is incomplete")
	ErrInvalidQuantity    = errors.New("quantity must be at least 1")
)
