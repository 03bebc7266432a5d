package dto

import (
	appcart "github.com/krishivsaini/BookBazaar/internal/application/cart"
	"github.com/krishivsaini/BookBazaar/pkg/money"
)

type AddToCartRequest struct {
	BookID   string `json:"bookId" binding:"required"`
	Quantity *int   `json:"quantity"` // 缺省为1
}

func (r AddToCartRequest) QuantityOrDefault() int {
	if r.Quantity == nil {
		return 1
	}
	return *r.Quantity
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

type CartItemResponse struct {
	Book     *BookSummary `json:"book"` // 图书已删除时为null
	BookID   string       `json:"bookId"`
	Quantity int          `json:"quantity"`
	Price    float64      `json:"price"` // 加入时单价快照
}

type CartResponse struct {
	ID         string              `json:"id"`
	User       string              `json:"user"`
	Items      []*CartItemResponse `json:"items"`
	TotalPrice float64             `json:"totalPrice"`
}

func NewCartResponse(r *appcart.Result) *CartResponse {
	c := r.Cart
	items := make([]*CartItemResponse, len(c.Items))
	for i, item := range c.Items {
		items[i] = &CartItemResponse{
			Book:     NewBookSummary(r.Books[item.BookID]),
			BookID:   item.BookID,
			Quantity: item.Quantity,
			Price:    money.Float(item.Price),
		}
	}
	return &CartResponse{
		ID:         c.ID,
		User:       c.UserID,
		Items:      items,
		TotalPrice: money.Float(c.TotalPrice),
	}
}
