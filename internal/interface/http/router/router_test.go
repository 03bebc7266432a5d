package router

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

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
	"github.com/krishivsaini/BookBazaar/pkg/jwt"
)

type testServer struct {
	t      *testing.T
	engine *gin.Engine
	repos  *persistence.Repositories
}

func testConfig() *config.Config {
	return &config.Config{
		Server:   config.ServerConfig{Mode: gin.TestMode},
		Database: config.DatabaseConfig{Driver: config.DriverMemory},
		Cache:    config.CacheConfig{CartLockWait: time.Second},
		CORS: config.CORSConfig{
			AllowOrigins: []string{"*"},
			AllowMethods: []string{"GET", "POST", "PUT", "DELETE"},
			AllowHeaders: []string{"Authorization", "Content-Type"},
		},
		RateLimit: config.RateLimitConfig{
			HelpfulPerMinute: 1,
			HelpfulBurst:     1,
			AuthPerMinute:    600,
			AuthBurst:        100,
		},
		Order: config.OrderConfig{PlaceTimeout: 5 * time.Second},
	}
}

func newTestServer(t *testing.T) *testServer {
	cfg := testConfig()
	repos := persistence.NewMemory(cfg)

	users := user.NewServiceWithCost(repos.Users, bcrypt.MinCost)
	books := book.NewService(repos.Books)
	manager := jwt.NewManager("test-secret", time.Hour, 24*time.Hour)

	h := &Handlers{
		Auth: handler.NewAuthHandler(
			appuser.NewRegisterUseCase(users, manager, repos.Sessions),
			appuser.NewLoginUseCase(users, manager, repos.Sessions),
			appuser.NewLogoutUseCase(repos.Sessions, manager),
			appuser.NewProfileUseCase(users),
		),
		Book: handler.NewBookHandler(
			appbook.NewListBooksUseCase(books),
			appbook.NewGetBookUseCase(books),
			appbook.NewFeaturedBooksUseCase(books),
			appbook.NewPublishBookUseCase(books),
			appbook.NewUpdateBookUseCase(books),
			appbook.NewDeleteBookUseCase(books),
		),
		Cart: handler.NewCartHandler(
			appcart.NewGetCartUseCase(repos.Carts, repos.Books, repos.Locker),
			appcart.NewAddToCartUseCase(repos.Carts, repos.Books, repos.Locker),
			appcart.NewUpdateCartItemUseCase(repos.Carts, repos.Books, repos.Locker),
			appcart.NewRemoveCartItemUseCase(repos.Carts, repos.Books, repos.Locker),
			appcart.NewClearCartUseCase(repos.Carts, repos.Books, repos.Locker),
		),
		Wishlist: handler.NewWishlistHandler(
			appwishlist.NewGetWishlistUseCase(repos.Wishlists, repos.Books),
			appwishlist.NewAddToWishlistUseCase(repos.Wishlists, repos.Books),
			appwishlist.NewRemoveFromWishlistUseCase(repos.Wishlists, repos.Books),
			appwishlist.NewToggleWishlistUseCase(repos.Wishlists, repos.Books),
			appwishlist.NewClearWishlistUseCase(repos.Wishlists),
		),
		Review: handler.NewReviewHandler(
			appreview.NewAddReviewUseCase(repos.TxManager, repos.Reviews, repos.Books, repos.Orders, repos.Users),
			appreview.NewListReviewsUseCase(repos.Reviews),
			appreview.NewUpdateReviewUseCase(repos.TxManager, repos.Reviews, repos.Books),
			appreview.NewDeleteReviewUseCase(repos.TxManager, repos.Reviews, repos.Books),
			appreview.NewMarkHelpfulUseCase(repos.Reviews),
		),
		Order: handler.NewOrderHandler(
			apporder.NewPlaceOrderUseCase(repos.Carts, repos.Books, repos.Orders, repos.Locker, cfg.Order.PlaceTimeout),
			apporder.NewGetMyOrdersUseCase(repos.Orders),
			apporder.NewGetOrderUseCase(repos.Orders),
			apporder.NewListOrdersUseCase(repos.Orders),
			apporder.NewUpdateOrderStatusUseCase(repos.Orders),
			apporder.NewMarkPaidUseCase(repos.Orders),
		),
	}

	engine := New(cfg, h, middleware.NewAuthMiddleware(manager, repos.Sessions))
	return &testServer{t: t, engine: engine, repos: repos}
}

func (s *testServer) do(method, path, token string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	s.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	var out map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	return w, out
}

// register 注册并返回Token；admin为true时提升为管理员后重新登录
func (s *testServer) register(email string, admin bool) string {
	s.t.Helper()

	w, body := s.do(http.MethodPost, "/api/auth/register", "", gin.H{
		"name": "Reader", "email": email, "password": "secret123",
	})
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())
	if !admin {
		return body["token"].(string)
	}

	ctx := context.Background()
	u, err := s.repos.Users.FindByEmail(ctx, email)
	require.NoError(s.t, err)
	u.Role = user.RoleAdmin
	require.NoError(s.t, s.repos.Users.Update(ctx, u))

	w, body = s.do(http.MethodPost, "/api/auth/login", "", gin.H{"email": email, "password": "secret123"})
	require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())
	return body["token"].(string)
}

func (s *testServer) createBook(adminToken, title string, price float64, stock int) string {
	s.t.Helper()

	w, body := s.do(http.MethodPost, "/api/books", adminToken, gin.H{
		"title": title, "author": "Frank Herbert", "description": "Desert planet",
		"category": "Fiction", "price": price, "stock": stock,
		"images": []string{"https://img.example.com/" + title + ".jpg"},
	})
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())
	return body["id"].(string)
}

var shipping = gin.H{
	"fullName": "Ann Reader", "address": "1 Main St", "city": "Pune", "state": "MH",
	"postalCode": "411001", "country": "India", "phone": "9999999999",
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	w, body := s.do(http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, config.DriverMemory, body["driver"])
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestAuthGuards(t *testing.T) {
	s := newTestServer(t)
	userToken := s.register("ann@example.com", false)

	w, body := s.do(http.MethodGet, "/api/cart", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.NotEmpty(t, body["message"])

	w, _ = s.do(http.MethodGet, "/api/cart", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = s.do(http.MethodPost, "/api/books", userToken, gin.H{"title": "x"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = s.do(http.MethodGet, "/api/orders", userToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, body = s.do(http.MethodGet, "/api/auth/profile", userToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ann@example.com", body["email"])
	assert.Equal(t, "user", body["role"])

	w, _ = s.do(http.MethodPost, "/api/auth/logout", userToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = s.do(http.MethodGet, "/api/auth/profile", userToken, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegister_Duplicate(t *testing.T) {
	s := newTestServer(t)
	s.register("ann@example.com", false)

	w, body := s.do(http.MethodPost, "/api/auth/register", "", gin.H{
		"name": "Ann", "email": "ann@example.com", "password": "secret123",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "User already exists", body["message"])

	w, _ = s.do(http.MethodPost, "/api/auth/register", "", gin.H{"email": "bad"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCatalog(t *testing.T) {
	s := newTestServer(t)
	admin := s.register("admin@example.com", true)

	id := s.createBook(admin, "Dune", 12.5, 3)
	s.createBook(admin, "Emma", 8, 1)

	w, body := s.do(http.MethodGet, "/api/books/"+id, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 12.5, body["price"])
	assert.Equal(t, "English", body["language"])

	w, body = s.do(http.MethodGet, "/api/books?search=dune&category=Fiction,Science", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), body["total"])
	assert.Equal(t, float64(1), body["pages"])
	assert.Len(t, body["items"], 1)

	w, body = s.do(http.MethodGet, "/api/books?sort=price-asc&maxPrice=10", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	items := body["items"].([]interface{})
	require.Len(t, items, 1)
	assert.Equal(t, "Emma", items[0].(map[string]interface{})["title"])

	// 显式传入0也会生效
	w, body = s.do(http.MethodPut, "/api/books/"+id, admin, gin.H{"stock": 0})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, float64(0), body["stock"])
	assert.Equal(t, "Dune", body["title"])

	w, _ = s.do(http.MethodPost, "/api/books", admin, gin.H{
		"title": "Bad", "author": "A", "description": "D", "category": "Cooking", "price": 1,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// 价格必填，显式传入0允许
	w, _ = s.do(http.MethodPost, "/api/books", admin, gin.H{
		"title": "NoPrice", "author": "A", "description": "D", "category": "Fiction",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, body = s.do(http.MethodPost, "/api/books", admin, gin.H{
		"title": "Free", "author": "A", "description": "D", "category": "Fiction", "price": 0,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, float64(0), body["price"])

	w, _ = s.do(http.MethodDelete, "/api/books/"+id, admin, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = s.do(http.MethodGet, "/api/books/"+id, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCheckoutFlow(t *testing.T) {
	s := newTestServer(t)
	admin := s.register("admin@example.com", true)
	buyer := s.register("ann@example.com", false)
	bookID := s.createBook(admin, "Dune", 10, 5)

	w, body := s.do(http.MethodPost, "/api/cart", buyer, gin.H{"bookId": bookID, "quantity": 2})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, float64(20), body["totalPrice"])

	w, _ = s.do(http.MethodPost, "/api/cart", buyer, gin.H{"bookId": bookID, "quantity": 9})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, body = s.do(http.MethodPost, "/api/orders", buyer, gin.H{"shippingAddress": shipping})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	orderID := body["id"].(string)
	assert.Equal(t, float64(20), body["subtotal"])
	assert.Equal(t, float64(2), body["tax"])
	assert.Equal(t, float64(50), body["shippingCost"])
	assert.Equal(t, float64(72), body["totalAmount"])
	assert.Equal(t, "COD", body["paymentMethod"])
	assert.Equal(t, "Pending", body["orderStatus"])

	w, body = s.do(http.MethodGet, "/api/books/"+bookID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(3), body["stock"])

	w, body = s.do(http.MethodGet, "/api/cart", buyer, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, body["items"])

	// 购物车已清空
	w, body = s.do(http.MethodPost, "/api/orders", buyer, gin.H{"shippingAddress": shipping})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Cart is empty", body["message"])

	w, body = s.do(http.MethodGet, "/api/orders/my", buyer, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), body["total"])

	w, _ = s.do(http.MethodPut, "/api/orders/"+orderID+"/pay", buyer, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = s.do(http.MethodPut, "/api/orders/"+orderID+"/status", admin, gin.H{"status": "Delivered"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	for _, status := range []string{"Processing", "Shipped", "Delivered"} {
		w, body = s.do(http.MethodPut, "/api/orders/"+orderID+"/status", admin, gin.H{"status": status, "trackingNumber": "TRK1"})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, status, body["orderStatus"])
	}

	w, body = s.do(http.MethodGet, "/api/orders?status=Delivered", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), body["total"])

	other := s.register("bob@example.com", false)
	w, _ = s.do(http.MethodGet, "/api/orders/"+orderID, other, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// 已送达订单包含此书，评论标记为已购
	w, body = s.do(http.MethodPost, "/api/reviews", buyer, gin.H{"bookId": bookID, "rating": 4, "comment": "Great"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, true, body["verified"])
	reviewID := body["id"].(string)

	w, body = s.do(http.MethodGet, "/api/books/"+bookID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(4), body["rating"])
	assert.Equal(t, float64(1), body["numReviews"])

	w, body = s.do(http.MethodGet, "/api/reviews/"+bookID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), body["total"])

	w, _ = s.do(http.MethodPut, "/api/reviews/"+reviewID, other, gin.H{"rating": 1})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = s.do(http.MethodPost, "/api/reviews/"+reviewID+"/helpful", other, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = s.do(http.MethodPost, "/api/reviews/"+reviewID+"/helpful", other, nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestWishlist(t *testing.T) {
	s := newTestServer(t)
	admin := s.register("admin@example.com", true)
	buyer := s.register("ann@example.com", false)
	bookID := s.createBook(admin, "Dune", 10, 5)

	for i := 0; i < 2; i++ {
		w, body := s.do(http.MethodPost, "/api/wishlist", buyer, gin.H{"bookId": bookID})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Len(t, body["items"], 1)
	}

	w, body := s.do(http.MethodPost, "/api/wishlist/toggle", buyer, gin.H{"bookId": bookID})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, body["inWishlist"])

	w, body = s.do(http.MethodPost, "/api/wishlist/toggle", buyer, gin.H{"bookId": bookID})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["inWishlist"])

	w, _ = s.do(http.MethodPost, "/api/wishlist", buyer, gin.H{"bookId": "missing"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	other := s.createBook(admin, "Emma", 8, 1)
	w, _ = s.do(http.MethodPost, "/api/wishlist", buyer, gin.H{"bookId": other})
	require.Equal(t, http.StatusOK, w.Code)

	// 图书删除后仍可切换移除残留条目
	w, _ = s.do(http.MethodDelete, "/api/books/"+bookID, admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w, body = s.do(http.MethodPost, "/api/wishlist/toggle", buyer, gin.H{"bookId": bookID})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, false, body["inWishlist"])

	w, _ = s.do(http.MethodPost, "/api/wishlist/toggle", buyer, gin.H{"bookId": bookID})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// 读取时清理已删除的图书
	w, _ = s.do(http.MethodDelete, "/api/books/"+other, admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w, body = s.do(http.MethodGet, "/api/wishlist", buyer, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, body["items"])
}

func TestBookRating_RoundedForDisplay(t *testing.T) {
	s := newTestServer(t)
	admin := s.register("admin@example.com", true)
	bookID := s.createBook(admin, "Dune", 10, 5)

	for i, rating := range []int{4, 4, 5} {
		token := s.register(fmt.Sprintf("reader%d@example.com", i), false)
		w, _ := s.do(http.MethodPost, "/api/reviews", token, gin.H{"bookId": bookID, "rating": rating})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	w, body := s.do(http.MethodGet, "/api/books/"+bookID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 4.33, body["rating"])
	assert.Equal(t, float64(3), body["numReviews"])

	// 存储的是原始平均值
	b, err := s.repos.Books.FindByID(context.Background(), bookID)
	require.NoError(t, err)
	assert.Equal(t, 13.0/3, b.RatingAverage)

	// rating-desc与rating等价，未评分的新书排在后面
	s.createBook(admin, "Emma", 8, 1)
	for _, sortKey := range []string{"rating", "rating-desc"} {
		w, body = s.do(http.MethodGet, "/api/books?sort="+sortKey, "", nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		items := body["items"].([]interface{})
		require.Len(t, items, 2)
		assert.Equal(t, "Dune", items[0].(map[string]interface{})["title"], sortKey)
	}
}
