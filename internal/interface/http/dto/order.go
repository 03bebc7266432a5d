package dto

import (
	"time"

	"github.com/krishivsaini/BookBazaar/internal/domain/order"
	"github.com/krishivsaini/BookBazaar/pkg/money"
)

// ShippingAddress 收货地址，必填校验在领域层
type ShippingAddress struct {
	FullName   string `json:"fullName" example:"Alice Smith"`
	Address    string `json:"address" example:"1 Main St"`
	City       string `json:"city" example:"Pune"`
	State      string `json:"state" example:"MH"`
	PostalCode string `json:"postalCode" example:"411001"`
	Country    string `json:"country" example:"India"`
	Phone      string `json:"phone" example:"9999999999"`
}

func (a ShippingAddress) ToDomain() order.ShippingAddress {
	return order.ShippingAddress{
		FullName:   a.FullName,
		Address:    a.Address,
		City:       a.City,
		State:      a.State,
		PostalCode: a.PostalCode,
		Country:    a.Country,
		Phone:      a.Phone,
	}
}

// CreateOrderRequest 从购物车下单
type CreateOrderRequest struct {
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string          `json:"paymentMethod" example:"COD"` // COD | Card | UPI | NetBanking，默认COD
}

type UpdateOrderStatusRequest struct {
	Status         string `json:"status" binding:"required" example:"Shipped"`
	TrackingNumber string `json:"trackingNumber"`
	Reason         string `json:"reason"`
}

type OrderItemResponse struct {
	Book     string  `json:"book"`
	Title    string  `json:"title"`
	Author   string  `json:"author"`
	Image    string  `json:"image,omitempty"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

type OrderResponse struct {
	ID                 string               `json:"id"`
	OrderNumber        string               `json:"orderNumber" example:"ORD1718000000123456"`
	User               string               `json:"user"`
	Items              []*OrderItemResponse `json:"items"`
	ShippingAddress    ShippingAddress      `json:"shippingAddress"`
	PaymentMethod      string               `json:"paymentMethod"`
	Subtotal           float64              `json:"subtotal"`
	Tax                float64              `json:"tax"`
	ShippingCost       float64              `json:"shippingCost"`
	TotalAmount        float64              `json:"totalAmount"`
	OrderStatus        string               `json:"orderStatus"`
	PaymentStatus      string               `json:"paymentStatus"`
	TrackingNumber     string               `json:"trackingNumber,omitempty"`
	PaidAt             *time.Time           `json:"paidAt,omitempty"`
	DeliveredAt        *time.Time           `json:"deliveredAt,omitempty"`
	CancelledAt        *time.Time           `json:"cancelledAt,omitempty"`
	CancellationReason string               `json:"cancellationReason,omitempty"`
	CreatedAt          time.Time            `json:"createdAt"`
	UpdatedAt          time.Time            `json:"updatedAt"`
}

func NewOrderResponse(o *order.Order) *OrderResponse {
	items := make([]*OrderItemResponse, len(o.Items))
	for i, item := range o.Items {
		items[i] = &OrderItemResponse{
			Book:     item.BookID,
			Title:    item.Title,
			Author:   item.Author,
			Image:    item.Image,
			Price:    money.Float(item.Price),
			Quantity: item.Quantity,
		}
	}
	a := o.ShippingAddress
	return &OrderResponse{
		ID:          o.ID,
		OrderNumber: o.OrderNo,
		User:        o.UserID,
		Items:       items,
		ShippingAddress: ShippingAddress{
			FullName:   a.FullName,
			Address:    a.Address,
			City:       a.City,
			State:      a.State,
			PostalCode: a.PostalCode,
			Country:    a.Country,
			Phone:      a.Phone,
		},
		PaymentMethod:      string(o.PaymentMethod),
		Subtotal:           money.Float(o.Subtotal),
		Tax:                money.Float(o.Tax),
		ShippingCost:       money.Float(o.ShippingCost),
		TotalAmount:        money.Float(o.TotalAmount),
		OrderStatus:        string(o.Status),
		PaymentStatus:      string(o.PaymentStatus),
		TrackingNumber:     o.TrackingNumber,
		PaidAt:             o.PaidAt,
		DeliveredAt:        o.DeliveredAt,
		CancelledAt:        o.CancelledAt,
		CancellationReason: o.CancellationReason,
		CreatedAt:          o.CreatedAt,
		UpdatedAt:          o.UpdatedAt,
	}
}

func NewOrderResponses(orders []*order.Order) []*OrderResponse {
	out := make([]*OrderResponse, len(orders))
	for i, o := range orders {
		out[i] = NewOrderResponse(o)
	}
	return out
}
