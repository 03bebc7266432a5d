package order

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartapp "github.com/krishivsaini/BookBazaar/internal/application/cart"
	"github.com/krishivsaini/BookBazaar/internal/domain/book"
	"github.com/krishivsaini/BookBazaar/internal/domain/cart"
	"github.com/krishivsaini/BookBazaar/internal/domain/order"
	"github.com/krishivsaini/BookBazaar/internal/infrastructure/persistence/memory"
	apperrors "github.com/krishivsaini/BookBazaar/pkg/errors"
)

// failingBooks 指定图书扣库存时失败，用于验证Saga补偿
type failingBooks struct {
	book.Repository
	failOn string
}

func (f *failingBooks) ReserveStock(ctx context.Context, id string, quantity int) error {
	if id == f.failOn {
		return errors.New("connection reset")
	}
	return f.Repository.ReserveStock(ctx, id, quantity)
}

type fixture struct {
	books  book.Repository
	carts  cart.Repository
	orders order.Repository
	locker cart.Locker
	add    *cartapp.AddToCartUseCase
	place  *PlaceOrderUseCase
	status *UpdateOrderStatusUseCase
	pay    *MarkPaidUseCase
	get    *GetOrderUseCase
	mine   *GetMyOrdersUseCase
	all    *ListOrdersUseCase
}

func newFixture() *fixture {
	store := memory.NewStore()
	f := &fixture{
		books:  memory.NewBookRepository(store),
		carts:  memory.NewCartRepository(store),
		orders: memory.NewOrderRepository(store),
		locker: memory.NewLocker(time.Second),
	}
	f.add = cartapp.NewAddToCartUseCase(f.carts, f.books, f.locker)
	f.place = NewPlaceOrderUseCase(f.carts, f.books, f.orders, f.locker, 5*time.Second)
	f.status = NewUpdateOrderStatusUseCase(f.orders)
	f.pay = NewMarkPaidUseCase(f.orders)
	f.get = NewGetOrderUseCase(f.orders)
	f.mine = NewGetMyOrdersUseCase(f.orders)
	f.all = NewListOrdersUseCase(f.orders)
	return f
}

func (f *fixture) seed(t *testing.T, title string, price int64, stock int) *book.Book {
	t.Helper()
	b, err := book.NewBook(book.Attributes{
		Title: title, Author: "Author", Description: "Description",
		Category: book.CategoryFiction, Price: price, Stock: stock,
		Images: []string{"cover.jpg", "back.jpg"},
	}, "seller")
	require.NoError(t, err)
	require.NoError(t, f.books.Create(context.Background(), b))
	return b
}

func (f *fixture) addToCart(t *testing.T, userID, bookID string, qty int) {
	t.Helper()
	_, err := f.add.Execute(context.Background(), cartapp.AddToCartRequest{UserID: userID, BookID: bookID, Quantity: qty})
	require.NoError(t, err)
}

func (f *fixture) stock(t *testing.T, bookID string) int {
	t.Helper()
	b, err := f.books.FindByID(context.Background(), bookID)
	require.NoError(t, err)
	return b.Stock
}

func address() order.ShippingAddress {
	return order.ShippingAddress{
		FullName: "Ann Lee", Address: "1 Main St", City: "Pune", State: "MH",
		PostalCode: "411001", Country: "India", Phone: "9999999999",
	}
}

func TestPlaceOrder_Success(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	x := f.seed(t, "X", 1000, 5)
	y := f.seed(t, "Y", 2000, 3)
	f.addToCart(t, "u1", x.ID, 2)
	f.addToCart(t, "u1", y.ID, 1)

	o, err := f.place.Execute(ctx, PlaceOrderRequest{UserID: "u1", ShippingAddress: address(), PaymentMethod: "Card"})
	require.NoError(t, err)

	assert.Equal(t, int64(4000), o.Subtotal)
	assert.Equal(t, int64(400), o.Tax)
	assert.Equal(t, int64(5000), o.ShippingCost)
	assert.Equal(t, int64(9400), o.TotalAmount)
	assert.Equal(t, order.StatusPending, o.Status)
	assert.Equal(t, order.PaymentPending, o.PaymentStatus)
	assert.Equal(t, order.PaymentCard, o.PaymentMethod)
	require.Len(t, o.Items, 2)
	assert.Equal(t, "cover.jpg", o.Items[0].Image)
	assert.Equal(t, "X", o.Items[0].Title)

	assert.Equal(t, 3, f.stock(t, x.ID))
	assert.Equal(t, 2, f.stock(t, y.ID))

	c, err := f.carts.FindByUserID(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())
	assert.Equal(t, int64(0), c.TotalPrice)

	stored, err := f.orders.FindByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, o.OrderNo, stored.OrderNo)
}

func TestPlaceOrder_FreeShippingAboveThreshold(t *testing.T) {
	f := newFixture()
	b := f.seed(t, "Big", 60000, 1)
	f.addToCart(t, "u1", b.ID, 1)

	o, err := f.place.Execute(context.Background(), PlaceOrderRequest{UserID: "u1", ShippingAddress: address()})
	require.NoError(t, err)
	assert.Equal(t, int64(0), o.ShippingCost)
	assert.Equal(t, int64(6000), o.Tax)
	assert.Equal(t, int64(66000), o.TotalAmount)
	assert.Equal(t, order.PaymentCOD, o.PaymentMethod)
}

func TestPlaceOrder_Validation(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	_, err := f.place.Execute(ctx, PlaceOrderRequest{UserID: "u1", ShippingAddress: address()})
	assert.ErrorIs(t, err, cart.ErrCartEmpty)

	b := f.seed(t, "X", 1000, 5)
	f.addToCart(t, "u1", b.ID, 1)

	addr := address()
	addr.City = ""
	_, err = f.place.Execute(ctx, PlaceOrderRequest{UserID: "u1", ShippingAddress: addr})
	assert.ErrorIs(t, err, order.ErrInvalidShippingAddress)

	_, err = f.place.Execute(ctx, PlaceOrderRequest{UserID: "u1", ShippingAddress: address(), PaymentMethod: "Bitcoin"})
	assert.ErrorIs(t, err, order.ErrInvalidPaymentMethod)

	require.NoError(t, f.books.Delete(ctx, b.ID))
	_, err = f.place.Execute(ctx, PlaceOrderRequest{UserID: "u1", ShippingAddress: address()})
	assert.ErrorIs(t, err, book.ErrBookNotFound)
}

// TestPlaceOrder_OversoldCart 购物车允许累计超过库存，下单时拒绝
func TestPlaceOrder_OversoldCart(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	b := f.seed(t, "Dune", 10000, 5)
	f.addToCart(t, "u1", b.ID, 3)
	f.addToCart(t, "u1", b.ID, 3)

	_, err := f.place.Execute(ctx, PlaceOrderRequest{UserID: "u1", ShippingAddress: address()})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeInsufficientStock, apperrors.Code(err))
	assert.Contains(t, apperrors.GetAppError(err).Message, "Dune")

	assert.Equal(t, 5, f.stock(t, b.ID))
	c, err := f.carts.FindByUserID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 6, c.Quantity(b.ID))
}

// TestPlaceOrder_CompensatesOnReserveFailure 第二本书扣库存失败：第一本归还，订单删除，购物车保留
func TestPlaceOrder_CompensatesOnReserveFailure(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	x := f.seed(t, "X", 1000, 5)
	y := f.seed(t, "Y", 2000, 5)
	f.addToCart(t, "u1", x.ID, 2)
	f.addToCart(t, "u1", y.ID, 1)

	place := NewPlaceOrderUseCase(f.carts, &failingBooks{Repository: f.books, failOn: y.ID}, f.orders, f.locker, 5*time.Second)
	_, err := place.Execute(ctx, PlaceOrderRequest{UserID: "u1", ShippingAddress: address()})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeInternal, apperrors.Code(err))

	assert.Equal(t, 5, f.stock(t, x.ID))
	assert.Equal(t, 5, f.stock(t, y.ID))

	res, err := f.mine.Execute(ctx, "u1", 1, 10)
	require.NoError(t, err)
	assert.Zero(t, res.Total)

	c, err := f.carts.FindByUserID(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, c.Items, 2)
}

// TestPlaceOrder_ConcurrentNoOversell 多个用户并发抢购最后的库存
func TestPlaceOrder_ConcurrentNoOversell(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	b := f.seed(t, "Rare", 1000, 3)

	const buyers = 8
	users := make([]string, buyers)
	for i := range users {
		users[i] = string(rune('a' + i))
		f.addToCart(t, users[i], b.ID, 1)
	}

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		success int
	)
	for _, u := range users {
		wg.Add(1)
		go func(u string) {
			defer wg.Done()
			if _, err := f.place.Execute(ctx, PlaceOrderRequest{UserID: u, ShippingAddress: address()}); err == nil {
				mu.Lock()
				success++
				mu.Unlock()
			}
		}(u)
	}
	wg.Wait()

	assert.Equal(t, 3, success)
	assert.Equal(t, 0, f.stock(t, b.ID))
}

func TestUpdateOrderStatus(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	b := f.seed(t, "X", 1000, 5)
	f.addToCart(t, "u1", b.ID, 2)
	o, err := f.place.Execute(ctx, PlaceOrderRequest{UserID: "u1", ShippingAddress: address()})
	require.NoError(t, err)

	_, err = f.status.Execute(ctx, UpdateOrderStatusRequest{OrderID: o.ID, Status: "Delivered"})
	assert.ErrorIs(t, err, order.ErrInvalidStatusTransition)

	_, err = f.status.Execute(ctx, UpdateOrderStatusRequest{OrderID: o.ID, Status: "Lost"})
	assert.ErrorIs(t, err, order.ErrInvalidStatus)

	_, err = f.status.Execute(ctx, UpdateOrderStatusRequest{OrderID: o.ID, Status: "Processing"})
	require.NoError(t, err)
	shipped, err := f.status.Execute(ctx, UpdateOrderStatusRequest{OrderID: o.ID, Status: "Shipped", TrackingNumber: "TRK1"})
	require.NoError(t, err)
	assert.Equal(t, "TRK1", shipped.TrackingNumber)

	delivered, err := f.status.Execute(ctx, UpdateOrderStatusRequest{OrderID: o.ID, Status: "Delivered"})
	require.NoError(t, err)
	assert.NotNil(t, delivered.DeliveredAt)

	_, err = f.status.Execute(ctx, UpdateOrderStatusRequest{OrderID: o.ID, Status: "Cancelled"})
	assert.ErrorIs(t, err, order.ErrInvalidStatusTransition)

	_, err = f.status.Execute(ctx, UpdateOrderStatusRequest{OrderID: "missing", Status: "Processing"})
	assert.ErrorIs(t, err, order.ErrOrderNotFound)
}

// TestCancelOrder_KeepsStock 取消订单不归还库存，已取消的订单仍可标记支付
func TestCancelOrder_KeepsStock(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	b := f.seed(t, "X", 1000, 5)
	f.addToCart(t, "u1", b.ID, 2)
	o, err := f.place.Execute(ctx, PlaceOrderRequest{UserID: "u1", ShippingAddress: address()})
	require.NoError(t, err)
	assert.Equal(t, 3, f.stock(t, b.ID))

	cancelled, err := f.status.Execute(ctx, UpdateOrderStatusRequest{OrderID: o.ID, Status: "Cancelled"})
	require.NoError(t, err)
	assert.Equal(t, order.DefaultCancellationReason, cancelled.CancellationReason)
	assert.NotNil(t, cancelled.CancelledAt)
	assert.Equal(t, 3, f.stock(t, b.ID))

	paid, err := f.pay.Execute(ctx, o.ID, "u1", false)
	require.NoError(t, err)
	assert.Equal(t, order.PaymentPaid, paid.PaymentStatus)
	assert.Equal(t, order.StatusCancelled, paid.Status)
}

func TestUpdateOrderStatus_CorrectTrackingNumber(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	b := f.seed(t, "X", 1000, 5)
	f.addToCart(t, "u1", b.ID, 1)
	o, err := f.place.Execute(ctx, PlaceOrderRequest{UserID: "u1", ShippingAddress: address()})
	require.NoError(t, err)

	for _, req := range []UpdateOrderStatusRequest{
		{OrderID: o.ID, Status: "Processing"},
		{OrderID: o.ID, Status: "Shipped", TrackingNumber: "TRK1"},
		{OrderID: o.ID, Status: "Shipped", TrackingNumber: "TRK2"},
	} {
		_, err := f.status.Execute(ctx, req)
		require.NoError(t, err)
	}

	got, err := f.get.Execute(ctx, o.ID, "u1", false)
	require.NoError(t, err)
	assert.Equal(t, "TRK2", got.TrackingNumber)
	assert.Equal(t, order.StatusShipped, got.Status)
}

func TestMarkPaid(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	b := f.seed(t, "X", 1000, 5)
	f.addToCart(t, "u1", b.ID, 1)
	o, err := f.place.Execute(ctx, PlaceOrderRequest{UserID: "u1", ShippingAddress: address()})
	require.NoError(t, err)

	_, err = f.pay.Execute(ctx, o.ID, "u2", false)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	paid, err := f.pay.Execute(ctx, o.ID, "u1", false)
	require.NoError(t, err)
	assert.Equal(t, order.PaymentPaid, paid.PaymentStatus)
	require.NotNil(t, paid.PaidAt)

	again, err := f.pay.Execute(ctx, o.ID, "admin", true)
	require.NoError(t, err)
	assert.Equal(t, paid.PaidAt.Unix(), again.PaidAt.Unix())

	_, err = f.pay.Execute(ctx, "missing", "u1", false)
	assert.ErrorIs(t, err, order.ErrOrderNotFound)
}

func TestGetOrder_Authorization(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	b := f.seed(t, "X", 1000, 5)
	f.addToCart(t, "u1", b.ID, 1)
	o, err := f.place.Execute(ctx, PlaceOrderRequest{UserID: "u1", ShippingAddress: address()})
	require.NoError(t, err)

	_, err = f.get.Execute(ctx, o.ID, "u2", false)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	got, err := f.get.Execute(ctx, o.ID, "admin", true)
	require.NoError(t, err)
	assert.Equal(t, o.ID, got.ID)

	res, err := f.all.Execute(ctx, "Pending", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Total)
	assert.Equal(t, order.DefaultPageSize, res.PageSize)

	res, err = f.all.Execute(ctx, "Shipped", 1, 10)
	require.NoError(t, err)
	assert.Zero(t, res.Total)
}
