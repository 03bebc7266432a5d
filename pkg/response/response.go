package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	apperrors "github.com/krishivsaini/BookBazaar/pkg/errors"
)

// ErrorBody 错误响应结构
// Message面向用户；Error仅在debug模式下返回内部错误
type ErrorBody struct {
	Message string `json:"message"`
	Code    int    `json:"code,omitempty"`
	Error   string `json:"error,omitempty"`
}

// MessageBody 仅包含提示信息的响应
type MessageBody struct {
	Message string `json:"message"`
}

// Success 200，直接返回业务数据
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created 201
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// Message 200 {message}
func Message(c *gin.Context, message string) {
	c.JSON(http.StatusOK, MessageBody{Message: message})
}

// Error 错误响应（自动处理AppError）
// 用法：
//
//	book, err := uc.Execute(ctx, id)
//	if err != nil {
//	    response.Error(c, err)
//	    return
//	}
func Error(c *gin.Context, err error) {
	appErr := apperrors.GetAppError(err)
	status := apperrors.HTTPStatus(appErr.Code)

	body := ErrorBody{Message: appErr.Message, Code: appErr.Code}

	if status >= http.StatusInternalServerError {
		log.Error().
			Err(err).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Str("request_id", c.GetString("request_id")).
			Msg("request failed")
		if gin.Mode() == gin.DebugMode && appErr.Err != nil {
			body.Error = appErr.Err.Error()
		}
	}

	c.JSON(status, body)
}

// ErrorWithCode 自定义错误码和消息
func ErrorWithCode(c *gin.Context, code int, message string) {
	c.JSON(apperrors.HTTPStatus(code), ErrorBody{
		Message: message,
		Code:    code,
	})
}

// Abort 输出错误并终止后续Handler（用于中间件）
func Abort(c *gin.Context, err error) {
	Error(c, err)
	c.Abort()
}

// =========================================
// 分页响应结构
// =========================================

// PageData 分页数据封装
type PageData struct {
	Items interface{} `json:"items"`
	Page  int         `json:"page"`
	Pages int         `json:"pages"`
	Total int64       `json:"total"`
}

// NewPageData 创建分页数据，pages = ceil(total / pageSize)
func NewPageData(items interface{}, total int64, page, pageSize int) *PageData {
	pages := 0
	if pageSize > 0 {
		pages = int(total) / pageSize
		if int(total)%pageSize != 0 {
			pages++
		}
	}

	return &PageData{
		Items: items,
		Page:  page,
		Pages: pages,
		Total: total,
	}
}

// SuccessWithPage 分页成功响应
func SuccessWithPage(c *gin.Context, items interface{}, total int64, page, pageSize int) {
	Success(c, NewPageData(items, total, page, pageSize))
}
