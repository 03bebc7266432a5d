package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/krishivsaini/BookBazaar/internal/domain/book"
	apperrors "github.com/krishivsaini/BookBazaar/pkg/errors"
)

// bookRepository 图书仓储实现(MySQL)
type bookRepository struct {
	db *gorm.DB
}

func NewBookRepository(db *gorm.DB) book.Repository {
	return &bookRepository{db: db}
}

func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	if err := conn(ctx, r.db).Create(toBookModel(b)).Error; err != nil {
		if isDuplicateError(err) {
			return book.ErrISBNDuplicate
		}
		return apperrors.Wrap(err, "create book failed")
	}
	return nil
}

func (r *bookRepository) FindByID(ctx context.Context, id string) (*book.Book, error) {
	var model BookModel
	if err := conn(ctx, r.db).Where("id = ?", id).First(&model).Error; err != nil {
		if isNotFound(err) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "query book failed")
	}
	return toBookEntity(&model), nil
}

func (r *bookRepository) FindByIDs(ctx context.Context, ids []string) ([]*book.Book, error) {
	if len(ids) == 0 {
		return []*book.Book{}, nil
	}

	var models []BookModel
	if err := conn(ctx, r.db).Where("id IN ?", ids).Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "query books failed")
	}
	return toBookEntities(models), nil
}

func (r *bookRepository) FindByISBN(ctx context.Context, isbn string) (*book.Book, error) {
	var model BookModel
	if err := conn(ctx, r.db).Where("isbn = ?", isbn).First(&model).Error; err != nil {
		if isNotFound(err) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "query book failed")
	}
	return toBookEntity(&model), nil
}

// Update 只更新目录字段，评分字段由UpdateRating维护
func (r *bookRepository) Update(ctx context.Context, b *book.Book) error {
	m := toBookModel(b)
	result := conn(ctx, r.db).Model(&BookModel{}).
		Where("id = ?", b.ID).
		Select(
			"title", "author", "description", "isbn", "publisher", "published_date",
			"language", "page_count", "category", "price", "original_price",
			"discount_percent", "stock", "images", "featured", "updated_at",
		).
		Updates(m)
	if result.Error != nil {
		if isDuplicateError(result.Error) {
			return book.ErrISBNDuplicate
		}
		return apperrors.Wrap(result.Error, "update book failed")
	}
	if result.RowsAffected == 0 {
		return r.exists(ctx, b.ID)
	}
	return nil
}

func (r *bookRepository) Delete(ctx context.Context, id string) error {
	result := conn(ctx, r.db).Where("id = ?", id).Delete(&BookModel{})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "delete book failed")
	}
	if result.RowsAffected == 0 {
		return book.ErrBookNotFound
	}
	return nil
}

// List 过滤、排序、分页
// MySQL默认排序规则忽略大小写，LIKE即为不区分大小写的子串匹配
func (r *bookRepository) List(ctx context.Context, params book.ListParams) ([]*book.Book, int64, error) {
	query := conn(ctx, r.db).Model(&BookModel{})

	if len(params.Categories) > 0 {
		categories := make([]string, len(params.Categories))
		for i, c := range params.Categories {
			categories[i] = string(c)
		}
		query = query.Where("category IN ?", categories)
	}
	if params.MinPrice != nil {
		query = query.Where("price >= ?", *params.MinPrice)
	}
	if params.MaxPrice != nil {
		query = query.Where("price <= ?", *params.MaxPrice)
	}
	if params.MinRating != nil {
		query = query.Where("rating_average >= ?", *params.MinRating)
	}
	if params.Author != "" {
		query = query.Where("author LIKE ?", likePattern(params.Author))
	}
	if params.Search != "" {
		kw := likePattern(params.Search)
		query = query.Where("title LIKE ? OR author LIKE ? OR description LIKE ? OR category LIKE ?", kw, kw, kw, kw)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "count books failed")
	}

	var models []BookModel
	err := query.
		Order(orderClause(params.Sort)).
		Order("id ASC").
		Limit(params.PageSize).
		Offset(params.Offset()).
		Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "list books failed")
	}
	return toBookEntities(models), total, nil
}

func orderClause(s book.Sort) string {
	switch s {
	case book.SortPriceAsc:
		return "price ASC"
	case book.SortPriceDesc:
		return "price DESC"
	case book.SortRating:
		return "rating_average DESC"
	default:
		return "created_at DESC"
	}
}

func (r *bookRepository) Featured(ctx context.Context, limit int) ([]*book.Book, error) {
	var models []BookModel
	err := conn(ctx, r.db).
		Where("featured = ?", true).
		Order("rating_average DESC").
		Order("id ASC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "query featured books failed")
	}
	return toBookEntities(models), nil
}

func (r *bookRepository) UpdateRating(ctx context.Context, id string, average float64, count int) error {
	result := conn(ctx, r.db).Model(&BookModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"rating_average": average,
			"review_count":   count,
		})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "update rating failed")
	}
	if result.RowsAffected == 0 {
		return r.exists(ctx, id)
	}
	return nil
}

// ReserveStock 条件扣减库存
// UPDATE books SET stock = stock - ? WHERE id = ? AND stock >= ?
// 影响行数为0时再查一次区分"图书不存在"和"库存不足"
func (r *bookRepository) ReserveStock(ctx context.Context, id string, quantity int) error {
	if quantity < 1 {
		return book.ErrInvalidQuantity
	}

	result := conn(ctx, r.db).Model(&BookModel{}).
		Where("id = ? AND stock >= ?", id, quantity).
		Update("stock", gorm.Expr("stock - ?", quantity))
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "reserve stock failed")
	}
	if result.RowsAffected == 0 {
		if err := r.exists(ctx, id); err != nil {
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

	result := conn(ctx, r.db).Model(&BookModel{}).
		Where("id = ?", id).
		Update("stock", gorm.Expr("stock + ?", quantity))
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "release stock failed")
	}
	if result.RowsAffected == 0 {
		return book.ErrBookNotFound
	}
	return nil
}

// exists 更新未命中时判断记录是否存在（值未变化时MySQL同样返回0行）
func (r *bookRepository) exists(ctx context.Context, id string) error {
	var count int64
	if err := conn(ctx, r.db).Model(&BookModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return apperrors.Wrap(err, "query book failed")
	}
	if count == 0 {
		return book.ErrBookNotFound
	}
	return nil
}

func toBookModel(b *book.Book) *BookModel {
	return &BookModel{
		ID:              b.ID,
		Title:           b.Title,
		Author:          b.Author,
		Description:     b.Description,
		ISBN:            nullable(b.ISBN),
		Publisher:       b.Publisher,
		PublishedDate:   b.PublishedDate,
		Language:        b.Language,
		PageCount:       b.PageCount,
		Category:        string(b.Category),
		Price:           b.Price,
		OriginalPrice:   b.OriginalPrice,
		DiscountPercent: b.DiscountPercent,
		Stock:           b.Stock,
		Images:          b.Images,
		RatingAverage:   b.RatingAverage,
		ReviewCount:     b.ReviewCount,
		Featured:        b.Featured,
		SellerID:        b.SellerID,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

func toBookEntity(m *BookModel) *book.Book {
	images := m.Images
	if images == nil {
		images = []string{}
	}
	return &book.Book{
		ID:              m.ID,
		Title:           m.Title,
		Author:          m.Author,
		Description:     m.Description,
		ISBN:            deref(m.ISBN),
		Publisher:       m.Publisher,
		PublishedDate:   m.PublishedDate,
		Language:        m.Language,
		PageCount:       m.PageCount,
		Category:        book.Category(m.Category),
		Price:           m.Price,
		OriginalPrice:   m.OriginalPrice,
		DiscountPercent: m.DiscountPercent,
		Stock:           m.Stock,
		Images:          images,
		RatingAverage:   m.RatingAverage,
		ReviewCount:     m.ReviewCount,
		Featured:        m.Featured,
		SellerID:        m.SellerID,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func toBookEntities(models []BookModel) []*book.Book {
	books := make([]*book.Book, len(models))
	for i := range models {
		books[i] = toBookEntity(&models[i])
	}
	return books
}
