package memory

import (
	"context"
	"sort"

	"github.com/krishivsaini/BookBazaar/internal/domain/order"
)

type orderRepository struct {
	store *Store
}

func NewOrderRepository(store *Store) order.Repository {
	return &orderRepository{store: store}
}

func (r *orderRepository) Create(ctx context.Context, o *order.Order) error {
	defer r.store.write(ctx)()

	r.store.orders[o.ID] = cloneOrder(o)
	return nil
}

func (r *orderRepository) FindByID(ctx context.Context, id string) (*order.Order, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	o, ok := r.store.orders[id]
	if !ok {
		return nil, order.ErrOrderNotFound
	}
	return cloneOrder(o), nil
}

// Update 只覆盖状态相关字段
func (r *orderRepository) Update(ctx context.Context, o *order.Order) error {
	defer r.store.write(ctx)()

	existing, ok := r.store.orders[o.ID]
	if !ok {
		return order.ErrOrderNotFound
	}
	existing.Status = o.Status
	existing.PaymentStatus = o.PaymentStatus
	existing.TrackingNumber = o.TrackingNumber
	existing.PaidAt = o.PaidAt
	existing.DeliveredAt = o.DeliveredAt
	existing.CancelledAt = o.CancelledAt
	existing.CancellationReason = o.CancellationReason
	existing.UpdatedAt = o.UpdatedAt
	return nil
}

func (r *orderRepository) Delete(ctx context.Context, id string) error {
	defer r.store.write(ctx)()

	if _, ok := r.store.orders[id]; !ok {
		return order.ErrOrderNotFound
	}
	delete(r.store.orders, id)
	return nil
}

func (r *orderRepository) ListByUser(ctx context.Context, userID string, page, pageSize int) ([]*order.Order, int64, error) {
	return r.list(func(o *order.Order) bool { return o.UserID == userID }, page, pageSize)
}

func (r *orderRepository) List(ctx context.Context, filter order.ListFilter, page, pageSize int) ([]*order.Order, int64, error) {
	return r.list(func(o *order.Order) bool {
		return filter.Status == "" || o.Status == filter.Status
	}, page, pageSize)
}

func (r *orderRepository) HasDelivered(ctx context.Context, userID, bookID string) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, o := range r.store.orders {
		if o.UserID == userID && o.Status == order.StatusDelivered && o.Contains(bookID) {
			return true, nil
		}
	}
	return false, nil
}

func (r *orderRepository) list(match func(*order.Order) bool, page, pageSize int) ([]*order.Order, int64, error) {
	r.store.mu.RLock()
	matched := make([]*order.Order, 0)
	for _, o := range r.store.orders {
		if match(o) {
			matched = append(matched, cloneOrder(o))
		}
	}
	r.store.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID < matched[j].ID
	})
	return paginate(matched, page, pageSize), int64(len(matched)), nil
}
