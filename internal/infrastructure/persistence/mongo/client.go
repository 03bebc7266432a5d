// Package mongo 基于MongoDB的仓储实现
// 文档使用字符串UUID作为_id，与MySQL实现共用同一套领域实体
package mongo

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/krishivsaini/BookBazaar/internal/domain/tx"
	"github.com/krishivsaini/BookBazaar/internal/infrastructure/config"
)

const (
	collBooks     = "books"
	collCarts     = "carts"
	collWishlists = "wishlists"
	collReviews   = "reviews"
	collOrders    = "orders"
	collUsers     = "users"
)

// NewDatabase 连接MongoDB并确保索引存在
func NewDatabase(ctx context.Context, cfg *config.Config) (*mongo.Database, func(context.Context) error, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.Mongo.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("ping mongo: %w", err)
	}

	db := client.Database(cfg.Mongo.Database)
	if err := EnsureIndexes(ctx, db); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("create mongo indexes: %w", err)
	}

	log.Info().Str("database", cfg.Mongo.Database).Msg("mongo connected")
	return db, client.Disconnect, nil
}

// EnsureIndexes 唯一约束由索引保证
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[string][]mongo.IndexModel{
		collBooks: {
			{
				Keys: bson.D{{Key: "isbn", Value: 1}},
				Options: options.Index().SetUnique(true).
					SetPartialFilterExpression(bson.M{"isbn": bson.M{"$type": "string"}}),
			},
			{Keys: bson.D{{Key: "category", Value: 1}, {Key: "price", Value: 1}}},
			{Keys: bson.D{{Key: "featured", Value: 1}, {Key: "ratingAverage", Value: -1}}},
			{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		},
		collCarts: {
			{Keys: bson.D{{Key: "userId", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		collWishlists: {
			{Keys: bson.D{{Key: "userId", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		collReviews: {
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "bookId", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "bookId", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
		collOrders: {
			{Keys: bson.D{{Key: "orderNo", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}},
			{Keys: bson.D{{Key: "status", Value: 1}}},
		},
		collUsers: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
	}

	for coll, models := range indexes {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("%s: %w", coll, err)
		}
	}
	return nil
}

// TxManager 多文档事务，需要副本集
// 未开启事务时直接执行fn（单文档写入本身是原子的）
type TxManager struct {
	client  *mongo.Client
	enabled bool
}

func NewTxManager(db *mongo.Database, enabled bool) *TxManager {
	return &TxManager{client: db.Client(), enabled: enabled}
}

func (m *TxManager) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if !m.enabled {
		return fn(ctx)
	}

	session, err := m.client.StartSession()
	if err != nil {
		return fmt.Errorf("start mongo session: %w", err)
	}
	defer session.EndSession(ctx)

	ctx, commit := tx.Scope(ctx)
	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	if err != nil {
		return err
	}
	commit()
	return nil
}
