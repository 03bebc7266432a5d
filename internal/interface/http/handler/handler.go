// Package handler HTTP处理器
// Handler只负责参数绑定、调用用例与构建响应，业务规则在领域层/应用层
package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/krishivsaini/BookBazaar/pkg/errors"
	"github.com/krishivsaini/BookBazaar/pkg/response"
)

// bind 绑定JSON请求体，失败时输出400
func bind(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.Error(c, apperrors.Newf(apperrors.ErrCodeBindError, "Invalid request: %s", err.Error()))
		return false
	}
	return true
}

// bindQuery 绑定查询参数
func bindQuery(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		response.Error(c, apperrors.Newf(apperrors.ErrCodeBindError, "Invalid query: %s", err.Error()))
		return false
	}
	return true
}

// queryInt 读取整数查询参数，缺省或非法时返回0（由用例填充默认值）
func queryInt(c *gin.Context, key string) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return 0
	}
	return v
}
