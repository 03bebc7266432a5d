package handler

import (
	"github.com/gin-gonic/gin"

	apporder "github.com/krishivsaini/BookBazaar/internal/application/order"
	"github.com/krishivsaini/BookBazaar/internal/interface/http/dto"
	"github.com/krishivsaini/BookBazaar/internal/interface/http/middleware"
	"github.com/krishivsaini/BookBazaar/pkg/response"
)

// OrderHandler 订单HTTP处理器
type OrderHandler struct {
	placeOrder   *apporder.PlaceOrderUseCase
	myOrders     *apporder.GetMyOrdersUseCase
	getOrder     *apporder.GetOrderUseCase
	listOrders   *apporder.ListOrdersUseCase
	updateStatus *apporder.UpdateOrderStatusUseCase
	markPaid     *apporder.MarkPaidUseCase
}

func NewOrderHandler(
	placeOrder *apporder.PlaceOrderUseCase,
	myOrders *apporder.GetMyOrdersUseCase,
	getOrder *apporder.GetOrderUseCase,
	listOrders *apporder.ListOrdersUseCase,
	updateStatus *apporder.UpdateOrderStatusUseCase,
	markPaid *apporder.MarkPaidUseCase,
) *OrderHandler {
	return &OrderHandler{
		placeOrder:   placeOrder,
		myOrders:     myOrders,
		getOrder:     getOrder,
		listOrders:   listOrders,
		updateStatus: updateStatus,
		markPaid:     markPaid,
	}
}

// CreateOrder 由购物车下单
// @Summary      下单
// @Description  校验库存后创建订单、扣减库存并清空购物车；任一步骤失败时回滚已完成的步骤
// @Tags         订单
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateOrderRequest true "收货地址与支付方式"
// @Success      201 {object} dto.OrderResponse
// @Failure      400 {object} response.ErrorBody "购物车为空/库存不足/地址不完整"
// @Failure      404 {object} response.ErrorBody
// @Router       /api/orders [post]
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req dto.CreateOrderRequest
	if !bind(c, &req) {
		return
	}

	o, err := h.placeOrder.Execute(c.Request.Context(), apporder.PlaceOrderRequest{
		UserID:          middleware.MustGetUserID(c),
		ShippingAddress: req.ShippingAddress.ToDomain(),
		PaymentMethod:   req.PaymentMethod,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.NewOrderResponse(o))
}

// MyOrders 我的订单
// @Summary      我的订单
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Param        page  query int false "页码"
// @Param        limit query int false "每页数量(默认10)"
// @Success      200 {object} response.PageData{items=[]dto.OrderResponse}
// @Router       /api/orders/my [get]
func (h *OrderHandler) MyOrders(c *gin.Context) {
	result, err := h.myOrders.Execute(c.Request.Context(), middleware.MustGetUserID(c), queryInt(c, "page"), queryInt(c, "limit"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPage(c, dto.NewOrderResponses(result.Orders), result.Total, result.Page, result.PageSize)
}

// GetOrder 订单详情（本人或管理员）
// @Summary      订单详情
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "订单ID"
// @Success      200 {object} dto.OrderResponse
// @Failure      403 {object} response.ErrorBody
// @Failure      404 {object} response.ErrorBody
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	o, err := h.getOrder.Execute(c.Request.Context(), c.Param("id"), middleware.MustGetUserID(c), middleware.IsAdmin(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewOrderResponse(o))
}

// ListOrders 全部订单（管理员）
// @Summary      订单列表
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Param        status query string false "订单状态"
// @Param        page   query int    false "页码"
// @Param        limit  query int    false "每页数量(默认10)"
// @Success      200 {object} response.PageData{items=[]dto.OrderResponse}
// @Failure      403 {object} response.ErrorBody
// @Router       /api/orders [get]
func (h *OrderHandler) ListOrders(c *gin.Context) {
	result, err := h.listOrders.Execute(c.Request.Context(), c.Query("status"), queryInt(c, "page"), queryInt(c, "limit"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPage(c, dto.NewOrderResponses(result.Orders), result.Total, result.Page, result.PageSize)
}

// UpdateStatus 修改订单状态（管理员）
// @Summary      修改订单状态
// @Description  Pending → Processing → Shipped → Delivered；送达前可取消，取消时归还库存
// @Tags         订单
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path string                       true "订单ID"
// @Param        request body dto.UpdateOrderStatusRequest true "目标状态"
// @Success      200 {object} dto.OrderResponse
// @Failure      400 {object} response.ErrorBody "非法状态流转"
// @Failure      404 {object} response.ErrorBody
// @Router       /api/orders/{id}/status [put]
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req dto.UpdateOrderStatusRequest
	if !bind(c, &req) {
		return
	}

	o, err := h.updateStatus.Execute(c.Request.Context(), apporder.UpdateOrderStatusRequest{
		OrderID:        c.Param("id"),
		Status:         req.Status,
		TrackingNumber: req.TrackingNumber,
		Reason:         req.Reason,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewOrderResponse(o))
}

// MarkPaid 标记已支付（本人或管理员）
// @Summary      标记已支付
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "订单ID"
// @Success      200 {object} dto.OrderResponse
// @Failure      403 {object} response.ErrorBody
// @Failure      404 {object} response.ErrorBody
// @Router       /api/orders/{id}/pay [put]
func (h *OrderHandler) MarkPaid(c *gin.Context) {
	o, err := h.markPaid.Execute(c.Request.Context(), c.Param("id"), middleware.MustGetUserID(c), middleware.IsAdmin(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewOrderResponse(o))
}
