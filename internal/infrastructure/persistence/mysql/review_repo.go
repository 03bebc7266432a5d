package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/krishivsaini/BookBazaar/internal/domain/review"
	apperrors "github.com/krishivsaini/BookBazaar/pkg/errors"
)

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) review.Repository {
	return &reviewRepository{db: db}
}

// Create (user_id, book_id)唯一索引兜底并发重复评论
func (r *reviewRepository) Create(ctx context.Context, rv *review.Review) error {
	if err := conn(ctx, r.db).Create(toReviewModel(rv)).Error; err != nil {
		if isDuplicateError(err) {
			return review.ErrDuplicateReview
		}
		return apperrors.Wrap(err, "create review failed")
	}
	return nil
}

func (r *reviewRepository) FindByID(ctx context.Context, id string) (*review.Review, error) {
	return r.findOne(conn(ctx, r.db).Where("id = ?", id))
}

func (r *reviewRepository) FindByUserAndBook(ctx context.Context, userID, bookID string) (*review.Review, error) {
	return r.findOne(conn(ctx, r.db).Where("user_id = ? AND book_id = ?", userID, bookID))
}

func (r *reviewRepository) findOne(query *gorm.DB) (*review.Review, error) {
	var model ReviewModel
	if err := query.First(&model).Error; err != nil {
		if isNotFound(err) {
			return nil, review.ErrReviewNotFound
		}
		return nil, apperrors.Wrap(err, "query review failed")
	}
	return toReviewEntity(&model), nil
}

func (r *reviewRepository) Update(ctx context.Context, rv *review.Review) error {
	result := conn(ctx, r.db).Model(&ReviewModel{}).
		Where("id = ?", rv.ID).
		Updates(map[string]interface{}{
			"rating":     rv.Rating,
			"title":      rv.Title,
			"comment":    rv.Comment,
			"updated_at": rv.UpdatedAt,
		})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "update review failed")
	}
	if result.RowsAffected == 0 {
		if _, err := r.FindByID(ctx, rv.ID); err != nil {
			return err
		}
	}
	return nil
}

func (r *reviewRepository) Delete(ctx context.Context, id string) error {
	result := conn(ctx, r.db).Where("id = ?", id).Delete(&ReviewModel{})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "delete review failed")
	}
	if result.RowsAffected == 0 {
		return review.ErrReviewNotFound
	}
	return nil
}

func (r *reviewRepository) ListByBook(ctx context.Context, bookID string, page, pageSize int) ([]*review.Review, int64, error) {
	query := conn(ctx, r.db).Model(&ReviewModel{}).Where("book_id = ?", bookID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "count reviews failed")
	}

	var models []ReviewModel
	err := query.
		Order("created_at DESC").
		Order("id ASC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "list reviews failed")
	}

	reviews := make([]*review.Review, len(models))
	for i := range models {
		reviews[i] = toReviewEntity(&models[i])
	}
	return reviews, total, nil
}

// Stats SELECT COUNT(*), SUM(rating) FROM reviews WHERE book_id = ?
func (r *reviewRepository) Stats(ctx context.Context, bookID string) (review.Stats, error) {
	var row struct {
		Count int
		Sum   int64
	}
	err := conn(ctx, r.db).Model(&ReviewModel{}).
		Select("COUNT(*) AS count, COALESCE(SUM(rating), 0) AS sum").
		Where("book_id = ?", bookID).
		Scan(&row).Error
	if err != nil {
		return review.Stats{}, apperrors.Wrap(err, "aggregate reviews failed")
	}
	return review.Stats{Count: row.Count, Sum: row.Sum}, nil
}

func (r *reviewRepository) IncrementHelpful(ctx context.Context, id string) error {
	result := conn(ctx, r.db).Model(&ReviewModel{}).
		Where("id = ?", id).
		UpdateColumn("helpful_count", gorm.Expr("helpful_count + 1"))
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "increment helpful failed")
	}
	if result.RowsAffected == 0 {
		return review.ErrReviewNotFound
	}
	return nil
}

func toReviewModel(rv *review.Review) *ReviewModel {
	return &ReviewModel{
		ID:           rv.ID,
		UserID:       rv.UserID,
		UserName:     rv.UserName,
		BookID:       rv.BookID,
		Rating:       rv.Rating,
		Title:        rv.Title,
		Comment:      rv.Comment,
		Verified:     rv.Verified,
		HelpfulCount: rv.HelpfulCount,
		CreatedAt:    rv.CreatedAt,
		UpdatedAt:    rv.UpdatedAt,
	}
}

func toReviewEntity(m *ReviewModel) *review.Review {
	return &review.Review{
		ID:           m.ID,
		UserID:       m.UserID,
		UserName:     m.UserName,
		BookID:       m.BookID,
		Rating:       m.Rating,
		Title:        m.Title,
		Comment:      m.Comment,
		Verified:     m.Verified,
		HelpfulCount: m.HelpfulCount,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
