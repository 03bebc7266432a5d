package dto

import (
	"time"

	appwishlist "github.com/krishivsaini/BookBazaar/internal/application/wishlist"
)

type WishlistRequest struct {
	BookID string `json:"bookId" binding:"required"`
}

type WishlistItemResponse struct {
	Book    *BookSummary `json:"book"`
	AddedAt time.Time    `json:"addedAt"`
}

type WishlistResponse struct {
	ID    string                  `json:"id"`
	User  string                  `json:"user"`
	Items []*WishlistItemResponse `json:"items"`
}

func NewWishlistResponse(r *appwishlist.Result) *WishlistResponse {
	w := r.Wishlist
	items := make([]*WishlistItemResponse, len(w.Items))
	for i, item := range w.Items {
		items[i] = &WishlistItemResponse{
			Book:    NewBookSummary(r.Books[i]),
			AddedAt: item.AddedAt,
		}
	}
	return &WishlistResponse{ID: w.ID, User: w.UserID, Items: items}
}

// ToggleWishlistResponse 切换结果，InWishlist为切换后的状态
type ToggleWishlistResponse struct {
	Wishlist   *WishlistResponse `json:"wishlist"`
	InWishlist bool              `json:"inWishlist"`
}
