package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/krishivsaini/BookBazaar/internal/domain/cart"
	apperrors "github.com/krishivsaini/BookBazaar/pkg/errors"
)

type cartRepository struct {
	coll *mongo.Collection
}

func NewCartRepository(db *mongo.Database) cart.Repository {
	return &cartRepository{coll: db.Collection(collCarts)}
}

func (r *cartRepository) FindByUserID(ctx context.Context, userID string) (*cart.Cart, error) {
	var doc cartDoc
	if err := r.coll.FindOne(ctx, bson.M{"userId": userID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, apperrors.Wrap(err, "query cart failed")
	}
	return doc.entity(), nil
}

// Save 按userId upsert，_id与createdAt只在插入时写入
func (r *cartRepository) Save(ctx context.Context, c *cart.Cart) error {
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"userId": c.UserID},
		bson.M{
			"$set": bson.M{
				"items":      cartItemDocs(c.Items),
				"totalPrice": c.TotalPrice,
				"updatedAt":  c.UpdatedAt,
			},
			"$setOnInsert": bson.M{
				"_id":       c.ID,
				"createdAt": c.CreatedAt,
			},
		},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return apperrors.Wrap(err, "save cart failed")
	}
	return nil
}
