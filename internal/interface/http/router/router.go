// Package router 注册中间件与路由
package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/krishivsaini/BookBazaar/docs"
	"github.com/krishivsaini/BookBazaar/internal/infrastructure/config"
	"github.com/krishivsaini/BookBazaar/internal/interface/http/handler"
	"github.com/krishivsaini/BookBazaar/internal/interface/http/middleware"
)

// Handlers 全部HTTP处理器
type Handlers struct {
	Auth     *handler.AuthHandler
	Book     *handler.BookHandler
	Cart     *handler.CartHandler
	Wishlist *handler.WishlistHandler
	Review   *handler.ReviewHandler
	Order    *handler.OrderHandler
}

// New 创建Gin引擎
// 中间件顺序：Recovery → Logger → Metrics → CORS → 路由级认证/限流
func New(cfg *config.Config, h *Handlers, auth *middleware.AuthMiddleware) *gin.Engine {
	switch cfg.Server.Mode {
	case gin.ReleaseMode, gin.TestMode:
		gin.SetMode(cfg.Server.Mode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.Logger(),
		middleware.Metrics(),
		middleware.CORS(cfg.CORS),
	)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	if cfg.Server.EnableSwagger {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	authLimit := middleware.NewRateLimiter("auth", cfg.RateLimit.AuthPerMinute, cfg.RateLimit.AuthBurst).Handler()
	helpfulLimit := middleware.NewRateLimiter("review_helpful", cfg.RateLimit.HelpfulPerMinute, cfg.RateLimit.HelpfulBurst).Handler()
	requireAuth := auth.RequireAuth()
	requireAdmin := auth.RequireAdmin()

	api := r.Group("/api")
	api.GET("/health", handler.Health(cfg.Database.Driver))

	// 用户
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", authLimit, h.Auth.Register)
		authGroup.POST("/login", authLimit, h.Auth.Login)
		authGroup.POST("/logout", requireAuth, h.Auth.Logout)
		authGroup.GET("/profile", requireAuth, h.Auth.Profile)
	}

	// 图书：读公开，写仅管理员
	books := api.Group("/books")
	{
		books.GET("", h.Book.ListBooks)
		books.GET("/featured", h.Book.FeaturedBooks)
		books.GET("/:id", h.Book.GetBook)
		books.POST("", requireAuth, requireAdmin, h.Book.PublishBook)
		books.PUT("/:id", requireAuth, requireAdmin, h.Book.UpdateBook)
		books.DELETE("/:id", requireAuth, requireAdmin, h.Book.DeleteBook)
	}

	// 购物车
	cart := api.Group("/cart", requireAuth)
	{
		cart.GET("", h.Cart.GetCart)
		cart.POST("", h.Cart.AddItem)
		cart.DELETE("", h.Cart.ClearCart)
		cart.PUT("/:bookId", h.Cart.UpdateItem)
		cart.DELETE("/:bookId", h.Cart.RemoveItem)
	}

	// 心愿单
	wishlist := api.Group("/wishlist", requireAuth)
	{
		wishlist.GET("", h.Wishlist.GetWishlist)
		wishlist.POST("", h.Wishlist.AddItem)
		wishlist.DELETE("", h.Wishlist.Clear)
		wishlist.POST("/toggle", h.Wishlist.Toggle)
		wishlist.DELETE("/:bookId", h.Wishlist.RemoveItem)
	}

	// 评论：GET /reviews/:bookId 与写接口的 :id 共用同一路径参数位置
	reviews := api.Group("/reviews")
	{
		reviews.GET("/:id", func(c *gin.Context) {
			c.AddParam("bookId", c.Param("id"))
			h.Review.ListReviews(c)
		})
		reviews.POST("", requireAuth, h.Review.AddReview)
		reviews.PUT("/:id", requireAuth, h.Review.UpdateReview)
		reviews.DELETE("/:id", requireAuth, h.Review.DeleteReview)
		reviews.POST("/:id/helpful", requireAuth, helpfulLimit, h.Review.MarkHelpful)
	}

	// 订单
	orders := api.Group("/orders", requireAuth)
	{
		orders.POST("", h.Order.CreateOrder)
		orders.GET("/my", h.Order.MyOrders)
		orders.GET("", requireAdmin, h.Order.ListOrders)
		orders.GET("/:id", h.Order.GetOrder)
		orders.PUT("/:id/status", requireAdmin, h.Order.UpdateStatus)
		orders.PUT("/:id/pay", h.Order.MarkPaid)
	}

	return r
}
