package cart

import (
	apperrors "github.com/krishivsaini/BookBazaar/pkg/errors"
)

var (
	ErrItemNotFound    = apperrors.New(apperrors.ErrCodeCartItemNotFound, "Item not found in cart")
	ErrInvalidQuantity = apperrors.New(apperrors.ErrCodeInvalidParams, "Quantity must be at least 1")
	ErrCartEmpty       = apperrors.New(apperrors.ErrCodeCartEmpty, "Cart is empty")
	ErrCartBusy        = apperrors.New(apperrors.ErrCodeTooManyRequests, "Cart is being updated, please retry")
)
