package review

import (
	apperrors "github.com/krishivsaini/BookBazaar/pkg/errors"
)

var (
	ErrReviewNotFound  = apperrors.New(apperrors.ErrCodeReviewNotFound, "Review not found")
	ErrDuplicateReview = apperrors.New(apperrors.ErrCodeReviewDuplicate, "You have already reviewed this book")
	ErrInvalidRating   = apperrors.New(apperrors.ErrCodeInvalidParams, "Rating must be between 1 and 5")
	ErrCommentRequired = apperrors.New(apperrors.ErrCodeInvalidParams, "Comment is required")
)
