package order

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/krishivsaini/BookBazaar/internal/domain/book"
	"github.com/krishivsaini/BookBazaar/internal/domain/cart"
	"github.com/krishivsaini/BookBazaar/internal/domain/order"
	apperrors "github.com/krishivsaini/BookBazaar/pkg/errors"
	"github.com/krishivsaini/BookBazaar/pkg/metrics"
	"github.com/krishivsaini/BookBazaar/pkg/saga"
	"github.com/krishivsaini/BookBazaar/pkg/tracing"
)

const tracerName = "bookbazaar/order"

// PlaceOrderUseCase 由购物车下单
//
// 防超卖：
// 加入购物车时只做时点校验，真正的扣减在下单时用条件更新完成
// (UPDATE ... WHERE stock >= ?)，并发下单不会把库存扣成负数。
// 下单拆成三个本地步骤，用Saga保证失败时回滚已完成的步骤。
type PlaceOrderUseCase struct {
	carts   cart.Repository
	books   book.Repository
	orders  order.Repository
	locker  cart.Locker
	timeout time.Duration
}

// NewPlaceOrderUseCase 创建下单用例，timeout为整个Saga的超时
func NewPlaceOrderUseCase(
	carts cart.Repository,
	books book.Repository,
	orders order.Repository,
	locker cart.Locker,
	timeout time.Duration,
) *PlaceOrderUseCase {
	return &PlaceOrderUseCase{
		carts:   carts,
		books:   books,
		orders:  orders,
		locker:  locker,
		timeout: timeout,
	}
}

// PlaceOrderRequest 下单请求
type PlaceOrderRequest struct {
	UserID          string
	ShippingAddress order.ShippingAddress
	PaymentMethod   string
}

// Execute 执行下单
//  1. 锁定用户购物车，防止下单期间购物车被修改
//  2. 校验购物车、地址、支付方式
//  3. 校验每本书存在且库存充足，生成明细快照
//  4. Saga: 创建订单 → 扣减库存 → 清空购物车
func (uc *PlaceOrderUseCase) Execute(ctx context.Context, req PlaceOrderRequest) (o *order.Order, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "PlaceOrder")
	defer span.End()

	start := time.Now()
	defer func() {
		metrics.OrderCreationDuration.Observe(time.Since(start).Seconds())
		if err != nil {
			metrics.OrdersFailedTotal.WithLabelValues(failureReason(err)).Inc()
			tracing.RecordError(span, err)
			return
		}
		metrics.OrdersCreatedTotal.Inc()
	}()

	unlock, err := uc.locker.Lock(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	c, err := uc.carts.FindByUserID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if c == nil || c.IsEmpty() {
		return nil, cart.ErrCartEmpty
	}

	if err := req.ShippingAddress.Validate(); err != nil {
		return nil, err
	}
	method, err := order.ParsePaymentMethod(req.PaymentMethod)
	if err != nil {
		return nil, err
	}

	items, err := uc.snapshot(ctx, c)
	if err != nil {
		return nil, err
	}

	o = order.NewOrder(req.UserID, items, req.ShippingAddress, method, c.TotalPrice)

	if err := uc.run(ctx, o, c); err != nil {
		return nil, apperrors.GetAppError(err)
	}

	log.Ctx(ctx).Info().
		Str("order_id", o.ID).
		Str("order_no", o.OrderNo).
		Str("user_id", o.UserID).
		Int64("total", o.TotalAmount).
		Msg("order placed")
	return o, nil
}

// snapshot 校验图书并生成订单明细快照
// 单价取购物车中的快照价，图片取第一张
func (uc *PlaceOrderUseCase) snapshot(ctx context.Context, c *cart.Cart) ([]order.Item, error) {
	ids := make([]string, len(c.Items))
	for i, item := range c.Items {
		ids[i] = item.BookID
	}

	books, err := uc.books.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*book.Book, len(books))
	for _, b := range books {
		byID[b.ID] = b
	}

	items := make([]order.Item, 0, len(c.Items))
	for _, ci := range c.Items {
		b, ok := byID[ci.BookID]
		if !ok {
			return nil, book.ErrBookNotFound
		}
		if !b.HasStock(ci.Quantity) {
			return nil, book.InsufficientStockFor(b.Title)
		}
		items = append(items, order.Item{
			BookID:   b.ID,
			Title:    b.Title,
			Author:   b.Author,
			Image:    b.CoverImage(),
			Price:    ci.Price,
			Quantity: ci.Quantity,
		})
	}
	return items, nil
}

// run 执行下单Saga
func (uc *PlaceOrderUseCase) run(ctx context.Context, o *order.Order, c *cart.Cart) error {
	var reserved []order.Item

	s := saga.NewSaga("place_order", uc.timeout)

	s.AddStep("create_order",
		func(ctx context.Context) error {
			return uc.orders.Create(ctx, o)
		},
		func(ctx context.Context) error {
			return uc.orders.Delete(ctx, o.ID)
		},
	)

	s.AddStep("reserve_stock",
		func(ctx context.Context) error {
			for _, item := range o.Items {
				if err := uc.books.ReserveStock(ctx, item.BookID, item.Quantity); err != nil {
					// 本步骤失败不会触发自身补偿，先释放已扣减的部分
					uc.release(ctx, reserved)
					reserved = nil
					if apperrors.Code(err) == apperrors.ErrCodeInsufficientStock {
						return book.InsufficientStockFor(item.Title)
					}
					return err
				}
				reserved = append(reserved, item)
			}
			return nil
		},
		func(ctx context.Context) error {
			uc.release(ctx, reserved)
			return nil
		},
	)

	s.AddStep("clear_cart",
		func(ctx context.Context) error {
			c.Clear()
			return uc.carts.Save(ctx, c)
		},
		nil,
	)

	return s.Execute(ctx)
}

// release 归还库存，图书已被删除时忽略
func (uc *PlaceOrderUseCase) release(ctx context.Context, items []order.Item) {
	for _, item := range items {
		err := uc.books.ReleaseStock(ctx, item.BookID, item.Quantity)
		if err != nil && apperrors.Code(err) != apperrors.ErrCodeBookNotFound {
			log.Ctx(ctx).Error().
				Err(err).
				Str("book_id", item.BookID).
				Int("quantity", item.Quantity).
				Msg("release stock failed")
		}
	}
}

// failureReason 下单失败原因（指标标签）
func failureReason(err error) string {
	switch code := apperrors.Code(err); {
	case code == apperrors.ErrCodeCartEmpty:
		return "empty_cart"
	case code == apperrors.ErrCodeInsufficientStock:
		return "insufficient_stock"
	case code/100 == 404:
		return "not_found"
	case code/100 == 409:
		return "invalid_params"
	default:
		return "internal"
	}
}
