package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/krishivsaini/BookBazaar/internal/domain/wishlist"
	apperrors "github.com/krishivsaini/BookBazaar/pkg/errors"
)

// wishlistRepository 心愿单为单个文档，条目为内嵌数组
// 收藏/取消均为带条件的单文档更新
type wishlistRepository struct {
	coll *mongo.Collection
}

func NewWishlistRepository(db *mongo.Database) wishlist.Repository {
	return &wishlistRepository{coll: db.Collection(collWishlists)}
}

func (r *wishlistRepository) FindOrCreate(ctx context.Context, userID string) (*wishlist.Wishlist, error) {
	w := wishlist.NewWishlist(userID)

	var doc wishlistDoc
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"userId": userID},
		bson.M{"$setOnInsert": bson.M{
			"_id":       w.ID,
			"items":     bson.A{},
			"createdAt": w.CreatedAt,
			"updatedAt": w.UpdatedAt,
		}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return nil, apperrors.Wrap(err, "query wishlist failed")
	}
	return doc.entity(), nil
}

func (r *wishlistRepository) Save(ctx context.Context, w *wishlist.Wishlist) error {
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"userId": w.UserID},
		bson.M{"$set": bson.M{"items": wishlistItemDocs(w.Items), "updatedAt": time.Now()}},
	)
	if err != nil {
		return apperrors.Wrap(err, "save wishlist failed")
	}
	return nil
}

// AddItem 仅当数组中不存在该图书时$push
func (r *wishlistRepository) AddItem(ctx context.Context, userID, bookID string) error {
	if _, err := r.FindOrCreate(ctx, userID); err != nil {
		return err
	}
	if _, err := r.push(ctx, userID, bookID); err != nil {
		return apperrors.Wrap(err, "add wishlist item failed")
	}
	return nil
}

func (r *wishlistRepository) RemoveItem(ctx context.Context, userID, bookID string) error {
	if _, err := r.pull(ctx, userID, bookID); err != nil {
		return apperrors.Wrap(err, "remove wishlist item failed")
	}
	return nil
}

// Toggle 先按条件$pull，未命中再按条件$push
func (r *wishlistRepository) Toggle(ctx context.Context, userID, bookID string) (bool, error) {
	if _, err := r.FindOrCreate(ctx, userID); err != nil {
		return false, err
	}

	removed, err := r.pull(ctx, userID, bookID)
	if err != nil {
		return false, apperrors.Wrap(err, "toggle wishlist item failed")
	}
	if removed {
		return false, nil
	}
	if _, err := r.push(ctx, userID, bookID); err != nil {
		return false, apperrors.Wrap(err, "toggle wishlist item failed")
	}
	return true, nil
}

func (r *wishlistRepository) Clear(ctx context.Context, userID string) error {
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"userId": userID},
		bson.M{"$set": bson.M{"items": bson.A{}, "updatedAt": time.Now()}},
	)
	if err != nil {
		return apperrors.Wrap(err, "clear wishlist failed")
	}
	return nil
}

func (r *wishlistRepository) push(ctx context.Context, userID, bookID string) (bool, error) {
	now := time.Now()
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"userId": userID, "items.bookId": bson.M{"$ne": bookID}},
		bson.M{
			"$push": bson.M{"items": wishlistItemDoc{BookID: bookID, AddedAt: now}},
			"$set":  bson.M{"updatedAt": now},
		},
	)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}

func (r *wishlistRepository) pull(ctx context.Context, userID, bookID string) (bool, error) {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"userId": userID, "items.bookId": bookID},
		bson.M{
			"$pull": bson.M{"items": bson.M{"bookId": bookID}},
			"$set":  bson.M{"updatedAt": time.Now()},
		},
	)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}
