package mongo

import (
	"context"
	"errors"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/krishivsaini/BookBazaar/internal/domain/book"
	apperrors "github.com/krishivsaini/BookBazaar/pkg/errors"
)

type bookRepository struct {
	coll *mongo.Collection
}

func NewBookRepository(db *mongo.Database) book.Repository {
	return &bookRepository{coll: db.Collection(collBooks)}
}

func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	if _, err := r.coll.InsertOne(ctx, toBookDoc(b)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return book.ErrISBNDuplicate
		}
		return apperrors.Wrap(err, "create book failed")
	}
	return nil
}

func (r *bookRepository) FindByID(ctx context.Context, id string) (*book.Book, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *bookRepository) FindByISBN(ctx context.Context, isbn string) (*book.Book, error) {
	return r.findOne(ctx, bson.M{"isbn": isbn})
}

func (r *bookRepository) findOne(ctx context.Context, filter bson.M) (*book.Book, error) {
	var doc bookDoc
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "query book failed")
	}
	return doc.entity(), nil
}

func (r *bookRepository) FindByIDs(ctx context.Context, ids []string) ([]*book.Book, error) {
	if len(ids) == 0 {
		return []*book.Book{}, nil
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": ids}}, options.Find())
}

func (r *bookRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*book.Book, error) {
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, apperrors.Wrap(err, "query books failed")
	}
	var docs []bookDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, apperrors.Wrap(err, "decode books failed")
	}

	books := make([]*book.Book, len(docs))
	for i := range docs {
		books[i] = docs[i].entity()
	}
	return books, nil
}

// Update $set目录字段，ISBN清空时$unset（部分唯一索引只约束字符串值）
func (r *bookRepository) Update(ctx context.Context, b *book.Book) error {
	set := bson.M{
		"title": b.Title, "author": b.Author, "description": b.Description,
		"publisher": b.Publisher, "publishedDate": b.PublishedDate, "language": b.Language,
		"pageCount": b.PageCount, "category": string(b.Category), "price": b.Price,
		"originalPrice": b.OriginalPrice, "discountPercent": b.DiscountPercent,
		"stock": b.Stock, "images": b.Images, "featured": b.Featured,
		"updatedAt": time.Now(),
	}
	update := bson.M{"$set": set}
	if b.ISBN != "" {
		set["isbn"] = b.ISBN
	} else {
		update["$unset"] = bson.M{"isbn": ""}
	}

	res, err := r.coll.UpdateByID(ctx, b.ID, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return book.ErrISBNDuplicate
		}
		return apperrors.Wrap(err, "update book failed")
	}
	if res.MatchedCount == 0 {
		return book.ErrBookNotFound
	}
	return nil
}

func (r *bookRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return apperrors.Wrap(err, "delete book failed")
	}
	if res.DeletedCount == 0 {
		return book.ErrBookNotFound
	}
	return nil
}

func (r *bookRepository) List(ctx context.Context, params book.ListParams) ([]*book.Book, int64, error) {
	filter := listFilter(params)

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "count books failed")
	}

	opts := options.Find().
		SetSort(sortSpec(params.Sort)).
		SetSkip(int64(params.Offset())).
		SetLimit(int64(params.PageSize))
	books, err := r.find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	return books, total, nil
}

// listFilter 与book.ListParams.Matches语义一致
func listFilter(params book.ListParams) bson.M {
	filter := bson.M{}

	if len(params.Categories) > 0 {
		categories := make([]string, len(params.Categories))
		for i, c := range params.Categories {
			categories[i] = string(c)
		}
		filter["category"] = bson.M{"$in": categories}
	}

	price := bson.M{}
	if params.MinPrice != nil {
		price["$gte"] = *params.MinPrice
	}
	if params.MaxPrice != nil {
		price["$lte"] = *params.MaxPrice
	}
	if len(price) > 0 {
		filter["price"] = price
	}

	if params.MinRating != nil {
		filter["ratingAverage"] = bson.M{"$gte": *params.MinRating}
	}
	if params.Author != "" {
		filter["author"] = containsRegex(params.Author)
	}
	if params.Search != "" {
		re := containsRegex(params.Search)
		filter["$or"] = bson.A{
			bson.M{"title": re},
			bson.M{"author": re},
			bson.M{"description": re},
			bson.M{"category": re},
		}
	}
	return filter
}

func containsRegex(s string) bson.M {
	return bson.M{"$regex": regexp.QuoteMeta(s), "$options": "i"}
}

func sortSpec(s book.Sort) bson.D {
	var primary bson.E
	switch s {
	case book.SortPriceAsc:
		primary = bson.E{Key: "price", Value: 1}
	case book.SortPriceDesc:
		primary = bson.E{Key: "price", Value: -1}
	case book.SortRating:
		primary = bson.E{Key: "ratingAverage", Value: -1}
	default:
		primary = bson.E{Key: "createdAt", Value: -1}
	}
	return bson.D{primary, {Key: "_id", Value: 1}}
}

func (r *bookRepository) Featured(ctx context.Context, limit int) ([]*book.Book, error) {
	opts := options.Find().
		SetSort(sortSpec(book.SortRating)).
		SetLimit(int64(limit))
	return r.find(ctx, bson.M{"featured": true}, opts)
}

func (r *bookRepository) UpdateRating(ctx context.Context, id string, average float64, count int) error {
	res, err := r.coll.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"ratingAverage": average,
		"reviewCount":   count,
	}})
	if err != nil {
		return apperrors.Wrap(err, "update rating failed")
	}
	if res.MatchedCount == 0 {
		return book.ErrBookNotFound
	}
	return nil
}

// ReserveStock {_id: id, stock: {$gte: qty}} + $inc
func (r *bookRepository) ReserveStock(ctx context.Context, id string, quantity int) error {
	if quantity < 1 {
		return book.ErrInvalidQuantity
	}

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id, "stock": bson.M{"$gte": quantity}},
		bson.M{"$inc": bson.M{"stock": -quantity}},
	)
	if err != nil {
		return apperrors.Wrap(err, "reserve stock failed")
	}
	if res.MatchedCount == 0 {
		if _, err := r.FindByID(ctx, id); err != nil {
			return err
		}
		return book.ErrInsufficientStock
	}
	return nil
}

func (r *bookRepository) ReleaseStock(ctx context.Context, id string, quantity int) error {
	if quantity < 1 {
		return book.ErrInvalidQuantity
	}

	res, err := r.coll.UpdateByID(ctx, id, bson.M{"$inc": bson.M{"stock": quantity}})
	if err != nil {
		return apperrors.Wrap(err, "release stock failed")
	}
	if res.MatchedCount == 0 {
		return book.ErrBookNotFound
	}
	return nil
}
