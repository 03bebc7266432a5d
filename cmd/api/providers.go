package main

import (
	"github.com/gin-gonic/gin"

	apporder "github.com/krishivsaini/BookBazaar/internal/application/order"
	"github.com/krishivsaini/BookBazaar/internal/domain/book"
	"github.com/krishivsaini/BookBazaar/internal/domain/cart"
	"github.com/krishivsaini/BookBazaar/internal/domain/order"
	"github.com/krishivsaini/BookBazaar/internal/infrastructure/config"
	"github.com/krishivsaini/BookBazaar/pkg/jwt"
)

// App 组装完成的应用
type App struct {
	Config *config.Config
	Engine *gin.Engine
}

func newApp(cfg *config.Config, engine *gin.Engine) *App {
	return &App{Config: cfg, Engine: engine}
}

// provideJWTManager 从配置中提取JWT参数
func provideJWTManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpire,
		cfg.JWT.RefreshTokenExpire,
	)
}

// providePlaceOrderUseCase 下单Saga超时取自配置
func providePlaceOrderUseCase(
	cfg *config.Config,
	carts cart.Repository,
	books book.Repository,
	orders order.Repository,
	locker cart.Locker,
) *apporder.PlaceOrderUseCase {
	return apporder.NewPlaceOrderUseCase(carts, books, orders, locker, cfg.Order.PlaceTimeout)
}
