package middleware

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/krishivsaini/BookBazaar/internal/infrastructure/config"
)

// CORS 跨域配置
// AllowCredentials为true时不能使用"*"，此时按来源逐个放行
func CORS(cfg config.CORSConfig) gin.HandlerFunc {
	c := cors.Config{
		AllowMethods:     cfg.AllowMethods,
		AllowHeaders:     cfg.AllowHeaders,
		ExposeHeaders:    []string{headerRequestID},
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	}

	for _, origin := range cfg.AllowOrigins {
		if origin == "*" {
			if cfg.AllowCredentials {
				c.AllowOriginFunc = func(string) bool { return true }
			} else {
				c.AllowAllOrigins = true
			}
			return cors.New(c)
		}
	}
	c.AllowOrigins = cfg.AllowOrigins
	return cors.New(c)
}
