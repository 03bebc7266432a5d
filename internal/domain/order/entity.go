package order

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Status 订单状态
type Status string

const (
	StatusPending    Status = "Pending"
	StatusProcessing Status = "Processing"
	StatusShipped    Status = "Shipped"
	StatusDelivered  Status = "Delivered" // 终态
	StatusCancelled  Status = "Cancelled" // 终态
)

// Valid 是否为已知状态
func (s Status) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// transitions 合法的状态流转
// Pending → Processing → Shipped → Delivered，未送达前均可取消
var transitions = map[Status][]Status{
	StatusPending:    {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusShipped, StatusCancelled},
	StatusShipped:    {StatusDelivered, StatusCancelled},
	StatusDelivered:  {},
	StatusCancelled:  {},
}

// PaymentStatus 支付状态
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "Pending"
	PaymentPaid     PaymentStatus = "Paid"
	PaymentFailed   PaymentStatus = "Failed"
	PaymentRefunded PaymentStatus = "Refunded"
)

// PaymentMethod 支付方式（只记录，不对接支付网关）
type PaymentMethod string

const (
	PaymentCOD        PaymentMethod = "COD"
	PaymentCard       PaymentMethod = "Card"
	PaymentUPI        PaymentMethod = "UPI"
	PaymentNetBanking PaymentMethod = "NetBanking"
)

// ParsePaymentMethod 空字符串默认货到付款
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch m := PaymentMethod(s); m {
	case "":
		return PaymentCOD, nil
	case PaymentCOD, PaymentCard, PaymentUPI, PaymentNetBanking:
		return m, nil
	default:
		return "", ErrInvalidPaymentMethod
	}
}

// ShippingAddress 收货地址
type ShippingAddress struct {
	FullName   string
	Address    string
	City       string
	State      string
	PostalCode string
	Country    string
	Phone      string
}

// Validate 所有字段必填
func (a ShippingAddress) Validate() error {
	for _, v := range []string{a.FullName, a.Address, a.City, a.State, a.PostalCode, a.Country, a.Phone} {
		if strings.TrimSpace(v) == "" {
			return ErrInvalidShippingAddress
		}
	}
	return nil
}

// Item 订单明细，下单时的图书快照
// 图书之后改名、改价或删除都不影响历史订单
type Item struct {
	BookID   string
	Title    string
	Author   string
	Image    string
	Price    int64 // 购物车中的快照单价(分)
	Quantity int
}

// Order 订单聚合根
// 创建后只有状态相关字段可变
type Order struct {
	ID                 string
	OrderNo            string
	UserID             string
	Items              []Item
	ShippingAddress    ShippingAddress
	PaymentMethod      PaymentMethod
	Subtotal           int64
	Tax                int64
	ShippingCost       int64
	TotalAmount        int64
	Status             Status
	PaymentStatus      PaymentStatus
	TrackingNumber     string
	PaidAt             *time.Time
	DeliveredAt        *time.Time
	CancelledAt        *time.Time
	CancellationReason string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// NewOrder 创建订单(工厂方法)
// subtotal取购物车总价，税费与运费在此计算
func NewOrder(userID string, items []Item, addr ShippingAddress, method PaymentMethod, subtotal int64) *Order {
	charges := CalculateCharges(subtotal)
	now := time.Now()
	return &Order{
		ID:              uuid.NewString(),
		OrderNo:         GenerateOrderNo(),
		UserID:          userID,
		Items:           items,
		ShippingAddress: addr,
		PaymentMethod:   method,
		Subtotal:        charges.Subtotal,
		Tax:             charges.Tax,
		ShippingCost:    charges.Shipping,
		TotalAmount:     charges.Total,
		Status:          StatusPending,
		PaymentStatus:   PaymentPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// CanTransitionTo 检查是否可以转换到目标状态
// 重复设置当前状态视为非法，Shipped除外（用于更正物流单号）
func (o *Order) CanTransitionTo(target Status) bool {
	if o.Status == StatusShipped && target == StatusShipped {
		return true
	}
	for _, allowed := range transitions[o.Status] {
		if allowed == target {
			return true
		}
	}
	return false
}

// StatusUpdate 状态变更附带信息
type StatusUpdate struct {
	TrackingNumber string // 进入Shipped时记录
	Reason         string // 进入Cancelled时记录，默认"Cancelled by admin"
}

const DefaultCancellationReason = "Cancelled by admin"

// TransitionTo 状态转换
func (o *Order) TransitionTo(target Status, update StatusUpdate) error {
	if !target.Valid() {
		return ErrInvalidStatus
	}
	if !o.CanTransitionTo(target) {
		return ErrInvalidStatusTransition
	}

	now := time.Now()
	switch target {
	case StatusShipped:
		if update.TrackingNumber != "" {
			o.TrackingNumber = update.TrackingNumber
		}
	case StatusDelivered:
		o.DeliveredAt = &now
	case StatusCancelled:
		o.CancelledAt = &now
		o.CancellationReason = update.Reason
		if o.CancellationReason == "" {
			o.CancellationReason = DefaultCancellationReason
		}
	}

	o.Status = target
	o.UpdatedAt = now
	return nil
}

// MarkPaid 标记已支付，已支付时返回false（幂等）
func (o *Order) MarkPaid() bool {
	if o.PaymentStatus == PaymentPaid {
		return false
	}

	now := time.Now()
	o.PaymentStatus = PaymentPaid
	o.PaidAt = &now
	o.UpdatedAt = now
	return true
}

// IsOwnedBy 检查订单是否属于指定用户
func (o *Order) IsOwnedBy(userID string) bool {
	return o.UserID == userID
}

// Contains 订单是否包含某本书
func (o *Order) Contains(bookID string) bool {
	for _, item := range o.Items {
		if item.BookID == bookID {
			return true
		}
	}
	return false
}

// ItemsTotal 按明细重新计算金额
func (o *Order) ItemsTotal() int64 {
	var total int64
	for _, item := range o.Items {
		total += item.Price * int64(item.Quantity)
	}
	return total
}
