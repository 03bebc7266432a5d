package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/krishivsaini/BookBazaar/internal/domain/order"
	apperrors "github.com/krishivsaini/BookBazaar/pkg/errors"
)

// orderRepository 订单仓储实现(MySQL)
// 1. Order和OrderItem是聚合关系，一起保存
// 2. 查询时Preload明细，避免N+1
type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) order.Repository {
	return &orderRepository{db: db}
}

// Create GORM自动保存关联的Items
func (r *orderRepository) Create(ctx context.Context, o *order.Order) error {
	if err := conn(ctx, r.db).Create(toOrderModel(o)).Error; err != nil {
		return apperrors.Wrap(err, "create order failed")
	}
	return nil
}

func (r *orderRepository) FindByID(ctx context.Context, id string) (*order.Order, error) {
	var model OrderModel
	err := conn(ctx, r.db).Preload("Items", orderItemsByID).Where("id = ?", id).First(&model).Error
	if err != nil {
		if isNotFound(err) {
			return nil, order.ErrOrderNotFound
		}
		return nil, apperrors.Wrap(err, "query order failed")
	}
	return toOrderEntity(&model), nil
}

// Update 只更新状态相关字段
func (r *orderRepository) Update(ctx context.Context, o *order.Order) error {
	result := conn(ctx, r.db).Model(&OrderModel{}).
		Where("id = ?", o.ID).
		Updates(map[string]interface{}{
			"status":              string(o.Status),
			"payment_status":      string(o.PaymentStatus),
			"tracking_number":     o.TrackingNumber,
			"paid_at":             o.PaidAt,
			"delivered_at":        o.DeliveredAt,
			"cancelled_at":        o.CancelledAt,
			"cancellation_reason": o.CancellationReason,
			"updated_at":          o.UpdatedAt,
		})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "update order failed")
	}
	if result.RowsAffected == 0 {
		return order.ErrOrderNotFound
	}
	return nil
}

// Delete 明细随外键级联删除
func (r *orderRepository) Delete(ctx context.Context, id string) error {
	err := conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&OrderItemModel{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&OrderModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return order.ErrOrderNotFound
		}
		return nil
	})
	if err != nil {
		if apperrors.IsAppError(err) {
			return err
		}
		return apperrors.Wrap(err, "delete order failed")
	}
	return nil
}

func (r *orderRepository) ListByUser(ctx context.Context, userID string, page, pageSize int) ([]*order.Order, int64, error) {
	return r.list(conn(ctx, r.db).Model(&OrderModel{}).Where("user_id = ?", userID), page, pageSize)
}

func (r *orderRepository) List(ctx context.Context, filter order.ListFilter, page, pageSize int) ([]*order.Order, int64, error) {
	query := conn(ctx, r.db).Model(&OrderModel{})
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}
	return r.list(query, page, pageSize)
}

func (r *orderRepository) list(query *gorm.DB, page, pageSize int) ([]*order.Order, int64, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "count orders failed")
	}

	var models []OrderModel
	err := query.
		Preload("Items", orderItemsByID).
		Order("created_at DESC").
		Order("id ASC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "list orders failed")
	}

	orders := make([]*order.Order, len(models))
	for i := range models {
		orders[i] = toOrderEntity(&models[i])
	}
	return orders, total, nil
}

// HasDelivered SELECT 1 FROM orders JOIN order_items ... LIMIT 1
func (r *orderRepository) HasDelivered(ctx context.Context, userID, bookID string) (bool, error) {
	var count int64
	err := conn(ctx, r.db).Model(&OrderModel{}).
		Joins("JOIN order_items ON order_items.order_id = orders.id").
		Where("orders.user_id = ? AND orders.status = ? AND order_items.book_id = ?",
			userID, string(order.StatusDelivered), bookID).
		Limit(1).
		Count(&count).Error
	if err != nil {
		return false, apperrors.Wrap(err, "query delivered orders failed")
	}
	return count > 0, nil
}

func orderItemsByID(db *gorm.DB) *gorm.DB {
	return db.Order("id ASC")
}

func toOrderModel(o *order.Order) *OrderModel {
	items := make([]OrderItemModel, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderItemModel{
			OrderID:  o.ID,
			BookID:   item.BookID,
			Title:    item.Title,
			Author:   item.Author,
			Image:    item.Image,
			Price:    item.Price,
			Quantity: item.Quantity,
		}
	}
	a := o.ShippingAddress
	return &OrderModel{
		ID:      o.ID,
		OrderNo: o.OrderNo,
		UserID:  o.UserID,
		Items:   items,
		ShippingAddress: ShippingAddressModel{
			FullName:   a.FullName,
			Address:    a.Address,
			City:       a.City,
			State:      a.State,
			PostalCode: a.PostalCode,
			Country:    a.Country,
			Phone:      a.Phone,
		},
		PaymentMethod:      string(o.PaymentMethod),
		Subtotal:           o.Subtotal,
		Tax:                o.Tax,
		ShippingCost:       o.ShippingCost,
		TotalAmount:        o.TotalAmount,
		Status:             string(o.Status),
		PaymentStatus:      string(o.PaymentStatus),
		TrackingNumber:     o.TrackingNumber,
		PaidAt:             o.PaidAt,
		DeliveredAt:        o.DeliveredAt,
		CancelledAt:        o.CancelledAt,
		CancellationReason: o.CancellationReason,
		CreatedAt:          o.CreatedAt,
		UpdatedAt:          o.UpdatedAt,
	}
}

func toOrderEntity(m *OrderModel) *order.Order {
	items := make([]order.Item, len(m.Items))
	for i, item := range m.Items {
		items[i] = order.Item{
			BookID:   item.BookID,
			Title:    item.Title,
			Author:   item.Author,
			Image:    item.Image,
			Price:    item.Price,
			Quantity: item.Quantity,
		}
	}
	a := m.ShippingAddress
	return &order.Order{
		ID:      m.ID,
		OrderNo: m.OrderNo,
		UserID:  m.UserID,
		Items:   items,
		ShippingAddress: order.ShippingAddress{
			FullName:   a.FullName,
			Address:    a.Address,
			City:       a.City,
			State:      a.State,
			PostalCode: a.PostalCode,
			Country:    a.Country,
			Phone:      a.Phone,
		},
		PaymentMethod:      order.PaymentMethod(m.PaymentMethod),
		Subtotal:           m.Subtotal,
		Tax:                m.Tax,
		ShippingCost:       m.ShippingCost,
		TotalAmount:        m.TotalAmount,
		Status:             order.Status(m.Status),
		PaymentStatus:      order.PaymentStatus(m.PaymentStatus),
		TrackingNumber:     m.TrackingNumber,
		PaidAt:             m.PaidAt,
		DeliveredAt:        m.DeliveredAt,
		CancelledAt:        m.CancelledAt,
		CancellationReason: m.CancellationReason,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}
