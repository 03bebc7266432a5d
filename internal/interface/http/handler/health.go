package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/krishivsaini/BookBazaar/pkg/response"
)

type HealthResponse struct {
	Status string    `json:"status" example:"ok"`
	Driver string    `json:"driver" example:"mysql"`
	Time   time.Time `json:"time"`
}

// Health 健康检查
// @Summary      健康检查
// @Tags         系统
// @Produce      json
// @Success      200 {object} handler.HealthResponse
// @Router       /api/health [get]
func Health(driver string) gin.HandlerFunc {
	return func(c *gin.Context) {
		response.Success(c, HealthResponse{Status: "ok", Driver: driver, Time: time.Now()})
	}
}
