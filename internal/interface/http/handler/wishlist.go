package handler

import (
	"github.com/gin-gonic/gin"

	appwishlist "github.com/krishivsaini/BookBazaar/internal/application/wishlist"
	"github.com/krishivsaini/BookBazaar/internal/interface/http/dto"
	"github.com/krishivsaini/BookBazaar/internal/interface/http/middleware"
	"github.com/krishivsaini/BookBazaar/pkg/response"
)

// WishlistHandler 心愿单HTTP处理器
type WishlistHandler struct {
	get    *appwishlist.GetWishlistUseCase
	add    *appwishlist.AddToWishlistUseCase
	remove *appwishlist.RemoveFromWishlistUseCase
	toggle *appwishlist.ToggleWishlistUseCase
	clear  *appwishlist.ClearWishlistUseCase
}

func NewWishlistHandler(
	get *appwishlist.GetWishlistUseCase,
	add *appwishlist.AddToWishlistUseCase,
	remove *appwishlist.RemoveFromWishlistUseCase,
	toggle *appwishlist.ToggleWishlistUseCase,
	clear *appwishlist.ClearWishlistUseCase,
) *WishlistHandler {
	return &WishlistHandler{get: get, add: add, remove: remove, toggle: toggle, clear: clear}
}

// GetWishlist 我的心愿单
// @Summary      我的心愿单
// @Tags         心愿单
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.WishlistResponse
// @Router       /api/wishlist [get]
func (h *WishlistHandler) GetWishlist(c *gin.Context) {
	result, err := h.get.Execute(c.Request.Context(), middleware.MustGetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewWishlistResponse(result))
}

// AddItem 收藏，重复收藏忽略
// @Summary      加入心愿单
// @Tags         心愿单
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.WishlistRequest true "图书ID"
// @Success      200 {object} dto.WishlistResponse
// @Failure      404 {object} response.ErrorBody
// @Router       /api/wishlist [post]
func (h *WishlistHandler) AddItem(c *gin.Context) {
	var req dto.WishlistRequest
	if !bind(c, &req) {
		return
	}

	result, err := h.add.Execute(c.Request.Context(), middleware.MustGetUserID(c), req.BookID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewWishlistResponse(result))
}

// RemoveItem 取消收藏
// @Summary      移出心愿单
// @Tags         心愿单
// @Produce      json
// @Security     BearerAuth
// @Param        bookId path string true "图书ID"
// @Success      200 {object} dto.WishlistResponse
// @Router       /api/wishlist/{bookId} [delete]
func (h *WishlistHandler) RemoveItem(c *gin.Context) {
	result, err := h.remove.Execute(c.Request.Context(), middleware.MustGetUserID(c), c.Param("bookId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewWishlistResponse(result))
}

// Toggle 切换收藏状态
// @Summary      切换收藏
// @Tags         心愿单
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.WishlistRequest true "图书ID"
// @Success      200 {object} dto.ToggleWishlistResponse
// @Failure      404 {object} response.ErrorBody
// @Router       /api/wishlist/toggle [post]
func (h *WishlistHandler) Toggle(c *gin.Context) {
	var req dto.WishlistRequest
	if !bind(c, &req) {
		return
	}

	result, err := h.toggle.Execute(c.Request.Context(), middleware.MustGetUserID(c), req.BookID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, &dto.ToggleWishlistResponse{
		Wishlist:   dto.NewWishlistResponse(result),
		InWishlist: result.InWishlist(req.BookID),
	})
}

// Clear 清空心愿单
// @Summary      清空心愿单
// @Tags         心愿单
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.MessageBody
// @Router       /api/wishlist [delete]
func (h *WishlistHandler) Clear(c *gin.Context) {
	if err := h.clear.Execute(c.Request.Context(), middleware.MustGetUserID(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "Wishlist cleared")
}
