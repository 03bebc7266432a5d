package handler

import (
	"github.com/gin-gonic/gin"

	appcart "github.com/krishivsaini/BookBazaar/internal/application/cart"
	"github.com/krishivsaini/BookBazaar/internal/interface/http/dto"
	"github.com/krishivsaini/BookBazaar/internal/interface/http/middleware"
	"github.com/krishivsaini/BookBazaar/pkg/response"
)

// CartHandler 购物车HTTP处理器
type CartHandler struct {
	getCart    *appcart.GetCartUseCase
	addItem    *appcart.AddToCartUseCase
	updateItem *appcart.UpdateCartItemUseCase
	removeItem *appcart.RemoveCartItemUseCase
	clearCart  *appcart.ClearCartUseCase
}

func NewCartHandler(
	getCart *appcart.GetCartUseCase,
	addItem *appcart.AddToCartUseCase,
	updateItem *appcart.UpdateCartItemUseCase,
	removeItem *appcart.RemoveCartItemUseCase,
	clearCart *appcart.ClearCartUseCase,
) *CartHandler {
	return &CartHandler{
		getCart:    getCart,
		addItem:    addItem,
		updateItem: updateItem,
		removeItem: removeItem,
		clearCart:  clearCart,
	}
}

// GetCart 我的购物车
// @Summary      我的购物车
// @Tags         购物车
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.CartResponse
// @Router       /api/cart [get]
func (h *CartHandler) GetCart(c *gin.Context) {
	result, err := h.getCart.Execute(c.Request.Context(), middleware.MustGetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewCartResponse(result))
}

// AddItem 加入购物车
// @Summary      加入购物车
// @Description  已在购物车中则累加数量，单价保持首次加入时的快照
// @Tags         购物车
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.AddToCartRequest true "图书与数量"
// @Success      200 {object} dto.CartResponse
// @Failure      400 {object} response.ErrorBody "数量非法/库存不足"
// @Failure      404 {object} response.ErrorBody
// @Router       /api/cart [post]
func (h *CartHandler) AddItem(c *gin.Context) {
	var req dto.AddToCartRequest
	if !bind(c, &req) {
		return
	}

	result, err := h.addItem.Execute(c.Request.Context(), appcart.AddToCartRequest{
		UserID:   middleware.MustGetUserID(c),
		BookID:   req.BookID,
		Quantity: req.QuantityOrDefault(),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewCartResponse(result))
}

// UpdateItem 修改数量
// @Summary      修改购物车条目数量
// @Tags         购物车
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        bookId  path string                    true "图书ID"
// @Param        request body dto.UpdateCartItemRequest true "数量"
// @Success      200 {object} dto.CartResponse
// @Failure      400 {object} response.ErrorBody
// @Failure      404 {object} response.ErrorBody
// @Router       /api/cart/{bookId} [put]
func (h *CartHandler) UpdateItem(c *gin.Context) {
	var req dto.UpdateCartItemRequest
	if !bind(c, &req) {
		return
	}

	result, err := h.updateItem.Execute(c.Request.Context(), middleware.MustGetUserID(c), c.Param("bookId"), req.Quantity)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewCartResponse(result))
}

// RemoveItem 移除条目，不存在时不报错
// @Summary      移除购物车条目
// @Tags         购物车
// @Produce      json
// @Security     BearerAuth
// @Param        bookId path string true "图书ID"
// @Success      200 {object} dto.CartResponse
// @Router       /api/cart/{bookId} [delete]
func (h *CartHandler) RemoveItem(c *gin.Context) {
	result, err := h.removeItem.Execute(c.Request.Context(), middleware.MustGetUserID(c), c.Param("bookId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewCartResponse(result))
}

// ClearCart 清空购物车
// @Summary      清空购物车
// @Tags         购物车
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.MessageBody
// @Router       /api/cart [delete]
func (h *CartHandler) ClearCart(c *gin.Context) {
	if err := h.clearCart.Execute(c.Request.Context(), middleware.MustGetUserID(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "Cart cleared")
}
