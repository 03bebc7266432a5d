package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/krishivsaini/BookBazaar/internal/domain/review"
	apperrors "github.com/krishivsaini/BookBazaar/pkg/errors"
)

type reviewRepository struct {
	coll *mongo.Collection
}

func NewReviewRepository(db *mongo.Database) review.Repository {
	return &reviewRepository{coll: db.Collection(collReviews)}
}

func (r *reviewRepository) Create(ctx context.Context, rv *review.Review) error {
	if _, err := r.coll.InsertOne(ctx, toReviewDoc(rv)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return review.ErrDuplicateReview
		}
		return apperrors.Wrap(err, "create review failed")
	}
	return nil
}

func (r *reviewRepository) FindByID(ctx context.Context, id string) (*review.Review, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *reviewRepository) FindByUserAndBook(ctx context.Context, userID, bookID string) (*review.Review, error) {
	return r.findOne(ctx, bson.M{"userId": userID, "bookId": bookID})
}

func (r *reviewRepository) findOne(ctx context.Context, filter bson.M) (*review.Review, error) {
	var doc reviewDoc
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, review.ErrReviewNotFound
		}
		return nil, apperrors.Wrap(err, "query review failed")
	}
	return doc.entity(), nil
}

func (r *reviewRepository) Update(ctx context.Context, rv *review.Review) error {
	res, err := r.coll.UpdateByID(ctx, rv.ID, bson.M{"$set": bson.M{
		"rating":    rv.Rating,
		"title":     rv.Title,
		"comment":   rv.Comment,
		"updatedAt": rv.UpdatedAt,
	}})
	if err != nil {
		return apperrors.Wrap(err, "update review failed")
	}
	if res.MatchedCount == 0 {
		return review.ErrReviewNotFound
	}
	return nil
}

func (r *reviewRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return apperrors.Wrap(err, "delete review failed")
	}
	if res.DeletedCount == 0 {
		return review.ErrReviewNotFound
	}
	return nil
}

func (r *reviewRepository) ListByBook(ctx context.Context, bookID string, page, pageSize int) ([]*review.Review, int64, error) {
	filter := bson.M{"bookId": bookID}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "count reviews failed")
	}

	cur, err := r.coll.Find(ctx, filter, options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: 1}}).
		SetSkip(int64((page-1)*pageSize)).
		SetLimit(int64(pageSize)))
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "list reviews failed")
	}
	var docs []reviewDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, 0, apperrors.Wrap(err, "decode reviews failed")
	}

	reviews := make([]*review.Review, len(docs))
	for i := range docs {
		reviews[i] = docs[i].entity()
	}
	return reviews, total, nil
}

// Stats $match + $group 汇总评分
func (r *reviewRepository) Stats(ctx context.Context, bookID string) (review.Stats, error) {
	cur, err := r.coll.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"bookId": bookID}}},
		{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"count": bson.M{"$sum": 1},
			"sum":   bson.M{"$sum": "$rating"},
		}}},
	})
	if err != nil {
		return review.Stats{}, apperrors.Wrap(err, "aggregate reviews failed")
	}
	defer cur.Close(ctx)

	var row struct {
		Count int   `bson:"count"`
		Sum   int64 `bson:"sum"`
	}
	if cur.Next(ctx) {
		if err := cur.Decode(&row); err != nil {
			return review.Stats{}, apperrors.Wrap(err, "decode review stats failed")
		}
	}
	if err := cur.Err(); err != nil {
		return review.Stats{}, apperrors.Wrap(err, "aggregate reviews failed")
	}
	return review.Stats{Count: row.Count, Sum: row.Sum}, nil
}

func (r *reviewRepository) IncrementHelpful(ctx context.Context, id string) error {
	res, err := r.coll.UpdateByID(ctx, id, bson.M{"$inc": bson.M{"helpfulCount": 1}})
	if err != nil {
		return apperrors.Wrap(err, "increment helpful failed")
	}
	if res.MatchedCount == 0 {
		return review.ErrReviewNotFound
	}
	return nil
}
