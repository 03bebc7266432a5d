package book

import (
	apperrors "github.com/krishivsaini/BookBazaar/pkg/errors"
)

// 图书领域错误定义
var (
	ErrBookNotFound = apperrors.New(apperrors.ErrCodeBookNotFound, "Book not found")

	ErrISBNDuplicate = apperrors.New(apperrors.ErrCodeISBNDuplicate, "A book with this ISBN already exists")

	ErrInsufficientStock = apperrors.New(apperrors.ErrCodeInsufficientStock, "Insufficient stock")

	ErrTitleRequired       = apperrors.New(apperrors.ErrCodeInvalidParams, "Title is required")
	ErrAuthorRequired      = apperrors.New(apperrors.ErrCodeInvalidParams, "Author is required")
	ErrDescriptionRequired = apperrors.New(apperrors.ErrCodeInvalidParams, "Description is required")
	ErrInvalidCategory     = apperrors.New(apperrors.ErrCodeInvalidParams, "Invalid category")
	ErrInvalidISBN         = apperrors.New(apperrors.ErrCodeInvalidParams, "ISBN must contain 10 or 13 digits")
	ErrInvalidPrice        = apperrors.New(apperrors.ErrCodeInvalidParams, "Price cannot be negative")
	ErrInvalidDiscount     = apperrors.New(apperrors.ErrCodeInvalidParams, "Discount must be between 0 and 100")
	ErrInvalidStock        = apperrors.New(apperrors.ErrCodeInvalidParams, "Stock cannot be negative")
	ErrInvalidPageCount    = apperrors.New(apperrors.ErrCodeInvalidParams, "Page count cannot be negative")
	ErrInvalidQuantity     = apperrors.New(apperrors.ErrCodeInvalidParams, "Quantity must be at least 1")
)

// InsufficientStockFor 带书名的库存不足错误（下单时提示具体图书）
func InsufficientStockFor(title string) *apperrors.AppError {
	return apperrors.Newf(apperrors.ErrCodeInsufficientStock, "Insufficient stock for %s", title)
}
