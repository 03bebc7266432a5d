package order

import (
	apperrors "github.com/krishivsaini/BookBazaar/pkg/errors"
)

// 订单领域错误定义
var (
	ErrOrderNotFound = apperrors.New(apperrors.ErrCodeOrderNotFound, "Order not found")

	ErrInvalidStatus = apperrors.New(apperrors.ErrCodeInvalidParams, "Invalid order status")

	ErrInvalidStatusTransition = apperrors.New(apperrors.ErrCodeInvalidOrderStatus, "invalid status transition")

	ErrInvalidShippingAddress = apperrors.New(apperrors.ErrCodeInvalidParams, "Shipping address is incomplete")

	ErrInvalidPaymentMethod = apperrors.New(apperrors.ErrCodeInvalidParams, "Invalid payment method")
)
