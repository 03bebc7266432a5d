package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/krishivsaini/BookBazaar/internal/domain/order"
	apperrors "github.com/krishivsaini/BookBazaar/pkg/errors"
)

// orderRepository 订单与明细存为同一文档
type orderRepository struct {
	coll *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) order.Repository {
	return &orderRepository{coll: db.Collection(collOrders)}
}

func (r *orderRepository) Create(ctx context.Context, o *order.Order) error {
	if _, err := r.coll.InsertOne(ctx, toOrderDoc(o)); err != nil {
		return apperrors.Wrap(err, "create order failed")
	}
	return nil
}

func (r *orderRepository) FindByID(ctx context.Context, id string) (*order.Order, error) {
	var doc orderDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, order.ErrOrderNotFound
		}
		return nil, apperrors.Wrap(err, "query order failed")
	}
	return doc.entity(), nil
}

// Update 只写状态相关字段
func (r *orderRepository) Update(ctx context.Context, o *order.Order) error {
	res, err := r.coll.UpdateByID(ctx, o.ID, bson.M{"$set": bson.M{
		"status":             string(o.Status),
		"paymentStatus":      string(o.PaymentStatus),
		"trackingNumber":     o.TrackingNumber,
		"paidAt":             o.PaidAt,
		"deliveredAt":        o.DeliveredAt,
		"cancelledAt":        o.CancelledAt,
		"cancellationReason": o.CancellationReason,
		"updatedAt":          o.UpdatedAt,
	}})
	if err != nil {
		return apperrors.Wrap(err, "update order failed")
	}
	if res.MatchedCount == 0 {
		return order.ErrOrderNotFound
	}
	return nil
}

func (r *orderRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return apperrors.Wrap(err, "delete order failed")
	}
	if res.DeletedCount == 0 {
		return order.ErrOrderNotFound
	}
	return nil
}

func (r *orderRepository) ListByUser(ctx context.Context, userID string, page, pageSize int) ([]*order.Order, int64, error) {
	return r.list(ctx, bson.M{"userId": userID}, page, pageSize)
}

func (r *orderRepository) List(ctx context.Context, filter order.ListFilter, page, pageSize int) ([]*order.Order, int64, error) {
	f := bson.M{}
	if filter.Status != "" {
		f["status"] = string(filter.Status)
	}
	return r.list(ctx, f, page, pageSize)
}

func (r *orderRepository) list(ctx context.Context, filter bson.M, page, pageSize int) ([]*order.Order, int64, error) {
	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "count orders failed")
	}

	cur, err := r.coll.Find(ctx, filter, options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: 1}}).
		SetSkip(int64((page-1)*pageSize)).
		SetLimit(int64(pageSize)))
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "list orders failed")
	}
	var docs []orderDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, 0, apperrors.Wrap(err, "decode orders failed")
	}

	orders := make([]*order.Order, len(docs))
	for i := range docs {
		orders[i] = docs[i].entity()
	}
	return orders, total, nil
}

func (r *orderRepository) HasDelivered(ctx context.Context, userID, bookID string) (bool, error) {
	n, err := r.coll.CountDocuments(ctx,
		bson.M{"userId": userID, "status": string(order.StatusDelivered), "items.bookId": bookID},
		options.Count().SetLimit(1),
	)
	if err != nil {
		return false, apperrors.Wrap(err, "query delivered orders failed")
	}
	return n > 0, nil
}
