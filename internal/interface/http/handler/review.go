package handler

import (
	"github.com/gin-gonic/gin"

	appreview "github.com/krishivsaini/BookBazaar/internal/application/review"
	"github.com/krishivsaini/BookBazaar/internal/interface/http/dto"
	"github.com/krishivsaini/BookBazaar/internal/interface/http/middleware"
	"github.com/krishivsaini/BookBazaar/pkg/response"
)

// ReviewHandler 评论HTTP处理器
type ReviewHandler struct {
	add         *appreview.AddReviewUseCase
	list        *appreview.ListReviewsUseCase
	update      *appreview.UpdateReviewUseCase
	remove      *appreview.DeleteReviewUseCase
	markHelpful *appreview.MarkHelpfulUseCase
}

func NewReviewHandler(
	add *appreview.AddReviewUseCase,
	list *appreview.ListReviewsUseCase,
	update *appreview.UpdateReviewUseCase,
	remove *appreview.DeleteReviewUseCase,
	markHelpful *appreview.MarkHelpfulUseCase,
) *ReviewHandler {
	return &ReviewHandler{add: add, list: list, update: update, remove: remove, markHelpful: markHelpful}
}

// AddReview 发表评论
// @Summary      发表评论
// @Description  每个用户对每本书只能评论一次；有已送达订单包含此书时标记为已购
// @Tags         评论
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateReviewRequest true "评论"
// @Success      201 {object} dto.ReviewResponse
// @Failure      400 {object} response.ErrorBody "参数错误/重复评论"
// @Failure      404 {object} response.ErrorBody
// @Router       /api/reviews [post]
func (h *ReviewHandler) AddReview(c *gin.Context) {
	var req dto.CreateReviewRequest
	if !bind(c, &req) {
		return
	}

	r, err := h.add.Execute(c.Request.Context(), appreview.AddReviewRequest{
		UserID:  middleware.MustGetUserID(c),
		BookID:  req.BookID,
		Rating:  req.Rating,
		Title:   req.Title,
		Comment: req.Comment,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.NewReviewResponse(r))
}

// ListReviews 图书评论列表，最新优先
// @Summary      图书评论列表
// @Tags         评论
// @Produce      json
// @Param        bookId path  string true  "图书ID"
// @Param        page   query int    false "页码"
// @Param        limit  query int    false "每页数量(默认10)"
// @Success      200 {object} response.PageData{items=[]dto.ReviewResponse}
// @Router       /api/reviews/{bookId} [get]
func (h *ReviewHandler) ListReviews(c *gin.Context) {
	result, err := h.list.Execute(c.Request.Context(), c.Param("bookId"), queryInt(c, "page"), queryInt(c, "limit"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPage(c, dto.NewReviewResponses(result.Reviews), result.Total, result.Page, result.PageSize)
}

// UpdateReview 修改评论（本人）
// @Summary      修改评论
// @Tags         评论
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path string                  true "评论ID"
// @Param        request body dto.UpdateReviewRequest true "需要修改的字段"
// @Success      200 {object} dto.ReviewResponse
// @Failure      403 {object} response.ErrorBody
// @Failure      404 {object} response.ErrorBody
// @Router       /api/reviews/{id} [put]
func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	var req dto.UpdateReviewRequest
	if !bind(c, &req) {
		return
	}

	r, err := h.update.Execute(c.Request.Context(), c.Param("id"), middleware.MustGetUserID(c), req.ToPatch())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewReviewResponse(r))
}

// DeleteReview 删除评论（本人或管理员）
// @Summary      删除评论
// @Tags         评论
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "评论ID"
// @Success      200 {object} response.MessageBody
// @Failure      403 {object} response.ErrorBody
// @Failure      404 {object} response.ErrorBody
// @Router       /api/reviews/{id} [delete]
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	err := h.remove.Execute(c.Request.Context(), c.Param("id"), middleware.MustGetUserID(c), middleware.IsAdmin(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "Review removed")
}

// MarkHelpful 标记评论有用
// @Summary      标记有用
// @Tags         评论
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "评论ID"
// @Success      200 {object} dto.ReviewResponse
// @Failure      404 {object} response.ErrorBody
// @Failure      429 {object} response.ErrorBody
// @Router       /api/reviews/{id}/helpful [post]
func (h *ReviewHandler) MarkHelpful(c *gin.Context) {
	r, err := h.markHelpful.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewReviewResponse(r))
}
