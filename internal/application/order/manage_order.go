package order

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/krishivsaini/BookBazaar/internal/domain/order"
	apperrors "github.com/krishivsaini/BookBazaar/pkg/errors"
	"github.com/krishivsaini/BookBazaar/pkg/metrics"
)

// ListResult 订单分页结果
type ListResult struct {
	Orders   []*order.Order
	Total    int64
	Page     int
	PageSize int
}

// GetMyOrdersUseCase 我的订单，最新优先
type GetMyOrdersUseCase struct {
	orders order.Repository
}

func NewGetMyOrdersUseCase(orders order.Repository) *GetMyOrdersUseCase {
	return &GetMyOrdersUseCase{orders: orders}
}

func (uc *GetMyOrdersUseCase) Execute(ctx context.Context, userID string, page, pageSize int) (*ListResult, error) {
	page, pageSize = order.NormalizePage(page, pageSize)
	orders, total, err := uc.orders.ListByUser(ctx, userID, page, pageSize)
	if err != nil {
		return nil, err
	}
	return &ListResult{Orders: orders, Total: total, Page: page, PageSize: pageSize}, nil
}

// ListOrdersUseCase 管理端订单列表
type ListOrdersUseCase struct {
	orders order.Repository
}

func NewListOrdersUseCase(orders order.Repository) *ListOrdersUseCase {
	return &ListOrdersUseCase{orders: orders}
}

func (uc *ListOrdersUseCase) Execute(ctx context.Context, status string, page, pageSize int) (*ListResult, error) {
	filter := order.ListFilter{Status: order.Status(status)}
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, order.ErrInvalidStatus
	}

	page, pageSize = order.NormalizePage(page, pageSize)
	orders, total, err := uc.orders.List(ctx, filter, page, pageSize)
	if err != nil {
		return nil, err
	}
	return &ListResult{Orders: orders, Total: total, Page: page, PageSize: pageSize}, nil
}

// GetOrderUseCase 订单详情（本人或管理员）
type GetOrderUseCase struct {
	orders order.Repository
}

func NewGetOrderUseCase(orders order.Repository) *GetOrderUseCase {
	return &GetOrderUseCase{orders: orders}
}

func (uc *GetOrderUseCase) Execute(ctx context.Context, orderID, callerID string, callerIsAdmin bool) (*order.Order, error) {
	o, err := uc.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !o.IsOwnedBy(callerID) && !callerIsAdmin {
		return nil, apperrors.ErrForbidden
	}
	return o, nil
}

// UpdateOrderStatusUseCase 管理员修改订单状态
// 只修改订单本身，库存只在下单时扣减
type UpdateOrderStatusUseCase struct {
	orders order.Repository
}

func NewUpdateOrderStatusUseCase(orders order.Repository) *UpdateOrderStatusUseCase {
	return &UpdateOrderStatusUseCase{orders: orders}
}

// UpdateOrderStatusRequest 状态变更请求
type UpdateOrderStatusRequest struct {
	OrderID        string
	Status         string
	TrackingNumber string
	Reason         string
}

// Execute 按状态机流转
func (uc *UpdateOrderStatusUseCase) Execute(ctx context.Context, req UpdateOrderStatusRequest) (*order.Order, error) {
	o, err := uc.orders.FindByID(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}

	from := o.Status
	target := order.Status(req.Status)
	if err := o.TransitionTo(target, order.StatusUpdate{TrackingNumber: req.TrackingNumber, Reason: req.Reason}); err != nil {
		return nil, err
	}
	if err := uc.orders.Update(ctx, o); err != nil {
		return nil, err
	}

	metrics.OrderStatusTransitionsTotal.WithLabelValues(string(target)).Inc()
	log.Ctx(ctx).Info().
		Str("order_id", o.ID).
		Str("from", string(from)).
		Str("to", string(target)).
		Msg("order status changed")
	return o, nil
}

// MarkPaidUseCase 标记订单已支付（本人或管理员）
type MarkPaidUseCase struct {
	orders order.Repository
}

func NewMarkPaidUseCase(orders order.Repository) *MarkPaidUseCase {
	return &MarkPaidUseCase{orders: orders}
}

func (uc *MarkPaidUseCase) Execute(ctx context.Context, orderID, callerID string, callerIsAdmin bool) (*order.Order, error) {
	o, err := uc.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !o.IsOwnedBy(callerID) && !callerIsAdmin {
		return nil, apperrors.ErrForbidden
	}

	if !o.MarkPaid() {
		return o, nil
	}
	if err := uc.orders.Update(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}
