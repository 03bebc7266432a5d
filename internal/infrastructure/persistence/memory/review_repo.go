package memory

import (
	"context"
	"sort"
	"time"

	"github.com/krishivsaini/BookBazaar/internal/domain/review"
)

type reviewRepository struct {
	store *Store
}

func NewReviewRepository(store *Store) review.Repository {
	return &reviewRepository{store: store}
}

func (r *reviewRepository) Create(ctx context.Context, rv *review.Review) error {
	defer r.store.write(ctx)()

	for _, existing := range r.store.reviews {
		if existing.UserID == rv.UserID && existing.BookID == rv.BookID {
			return review.ErrDuplicateReview
		}
	}
	r.store.reviews[rv.ID] = cloneReview(rv)
	return nil
}

func (r *reviewRepository) FindByID(ctx context.Context, id string) (*review.Review, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	rv, ok := r.store.reviews[id]
	if !ok {
		return nil, review.ErrReviewNotFound
	}
	return cloneReview(rv), nil
}

func (r *reviewRepository) FindByUserAndBook(ctx context.Context, userID, bookID string) (*review.Review, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, rv := range r.store.reviews {
		if rv.UserID == userID && rv.BookID == bookID {
			return cloneReview(rv), nil
		}
	}
	return nil, review.ErrReviewNotFound
}

func (r *reviewRepository) Update(ctx context.Context, rv *review.Review) error {
	defer r.store.write(ctx)()

	existing, ok := r.store.reviews[rv.ID]
	if !ok {
		return review.ErrReviewNotFound
	}
	existing.Rating = rv.Rating
	existing.Title = rv.Title
	existing.Comment = rv.Comment
	existing.UpdatedAt = rv.UpdatedAt
	return nil
}

func (r *reviewRepository) Delete(ctx context.Context, id string) error {
	defer r.store.write(ctx)()

	if _, ok := r.store.reviews[id]; !ok {
		return review.ErrReviewNotFound
	}
	delete(r.store.reviews, id)
	return nil
}

func (r *reviewRepository) ListByBook(ctx context.Context, bookID string, page, pageSize int) ([]*review.Review, int64, error) {
	r.store.mu.RLock()
	matched := make([]*review.Review, 0)
	for _, rv := range r.store.reviews {
		if rv.BookID == bookID {
			matched = append(matched, cloneReview(rv))
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

func (r *reviewRepository) Stats(ctx context.Context, bookID string) (review.Stats, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	ratings := make([]int, 0)
	for _, rv := range r.store.reviews {
		if rv.BookID == bookID {
			ratings = append(ratings, rv.Rating)
		}
	}
	return review.Aggregate(ratings), nil
}

func (r *reviewRepository) IncrementHelpful(ctx context.Context, id string) error {
	defer r.store.write(ctx)()

	rv, ok := r.store.reviews[id]
	if !ok {
		return review.ErrReviewNotFound
	}
	rv.HelpfulCount++
	rv.UpdatedAt = time.Now()
	return nil
}
