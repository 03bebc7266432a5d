//go:build wireinject
// +build wireinject

// Wire依赖注入配置，修改后运行 `wire gen ./cmd/api` 重新生成wire_gen.go

package main

import (
	"context"

	"github.com/google/wire"

	appbook "github.com/krishivsaini/BookBazaar/internal/application/book"
	appcart "github.com/krishivsaini/BookBazaar/internal/application/cart"
	apporder "github.com/krishivsaini/BookBazaar/internal/application/order"
	appreview "github.com/krishivsaini/BookBazaar/internal/application/review"
	appuser "github.com/krishivsaini/BookBazaar/internal/application/user"
	appwishlist "github.com/krishivsaini/BookBazaar/internal/application/wishlist"
	"github.com/krishivsaini/BookBazaar/internal/domain/book"
	"github.com/krishivsaini/BookBazaar/internal/domain/user"
	"github.com/krishivsaini/BookBazaar/internal/infrastructure/config"
	"github.com/krishivsaini/BookBazaar/internal/infrastructure/persistence"
	"github.com/krishivsaini/BookBazaar/internal/interface/http/handler"
	"github.com/krishivsaini/BookBazaar/internal/interface/http/middleware"
	"github.com/krishivsaini/BookBazaar/internal/interface/http/router"
)

// repositorySet 仓储层，按database.driver选择实现
var repositorySet = wire.NewSet(
	persistence.New,
	wire.FieldsOf(new(*persistence.Repositories),
		"Users", "Books", "Carts", "Wishlists", "Reviews", "Orders",
		"TxManager", "Locker", "Sessions",
	),
)

var domainSet = wire.NewSet(
	user.NewService,
	book.NewService,
)

var applicationSet = wire.NewSet(
	appuser.NewRegisterUseCase,
	appuser.NewLoginUseCase,
	appuser.NewLogoutUseCase,
	appuser.NewProfileUseCase,

	appbook.NewListBooksUseCase,
	appbook.NewGetBookUseCase,
	appbook.NewFeaturedBooksUseCase,
	appbook.NewPublishBookUseCase,
	appbook.NewUpdateBookUseCase,
	appbook.NewDeleteBookUseCase,

	appcart.NewGetCartUseCase,
	appcart.NewAddToCartUseCase,
	appcart.NewUpdateCartItemUseCase,
	appcart.NewRemoveCartItemUseCase,
	appcart.NewClearCartUseCase,

	appwishlist.NewGetWishlistUseCase,
	appwishlist.NewAddToWishlistUseCase,
	appwishlist.NewRemoveFromWishlistUseCase,
	appwishlist.NewToggleWishlistUseCase,
	appwishlist.NewClearWishlistUseCase,

	appreview.NewAddReviewUseCase,
	appreview.NewListReviewsUseCase,
	appreview.NewUpdateReviewUseCase,
	appreview.NewDeleteReviewUseCase,
	appreview.NewMarkHelpfulUseCase,

	providePlaceOrderUseCase,
	apporder.NewGetMyOrdersUseCase,
	apporder.NewGetOrderUseCase,
	apporder.NewListOrdersUseCase,
	apporder.NewUpdateOrderStatusUseCase,
	apporder.NewMarkPaidUseCase,
)

var httpSet = wire.NewSet(
	provideJWTManager,
	middleware.NewAuthMiddleware,

	handler.NewAuthHandler,
	handler.NewBookHandler,
	handler.NewCartHandler,
	handler.NewWishlistHandler,
	handler.NewReviewHandler,
	handler.NewOrderHandler,
	wire.Struct(new(router.Handlers), "*"),
	router.New,
)

// InitializeApp 组装应用，cleanup负责关闭数据库与Redis连接
func InitializeApp(ctx context.Context, cfg *config.Config) (*App, func(), error) {
	wire.Build(
		repositorySet,
		domainSet,
		applicationSet,
		httpSet,
		newApp,
	)
	return nil, nil, nil
}
