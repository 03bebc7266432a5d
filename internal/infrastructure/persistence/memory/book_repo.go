package memory

import (
	"context"
	"sort"
	"time"

	"github.com/krishivsaini/BookBazaar/internal/domain/book"
)

type bookRepository struct {
	store *Store
}

// NewBookRepository 创建图书仓储
func NewBookRepository(store *Store) book.Repository {
	return &bookRepository{store: store}
}

func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	defer r.store.write(ctx)()

	if b.ISBN != "" {
		for _, existing := range r.store.books {
			if existing.ISBN == b.ISBN {
				return book.ErrISBNDuplicate
			}
		}
	}
	r.store.books[b.ID] = cloneBook(b)
	return nil
}

func (r *bookRepository) FindByID(ctx context.Context, id string) (*book.Book, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	b, ok := r.store.books[id]
	if !ok {
		return nil, book.ErrBookNotFound
	}
	return cloneBook(b), nil
}

func (r *bookRepository) FindByIDs(ctx context.Context, ids []string) ([]*book.Book, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	books := make([]*book.Book, 0, len(ids))
	for _, id := range ids {
		if b, ok := r.store.books[id]; ok {
			books = append(books, cloneBook(b))
		}
	}
	return books, nil
}

func (r *bookRepository) FindByISBN(ctx context.Context, isbn string) (*book.Book, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, b := range r.store.books {
		if b.ISBN == isbn {
			return cloneBook(b), nil
		}
	}
	return nil, book.ErrBookNotFound
}

// Update 保留存储中的评分字段
func (r *bookRepository) Update(ctx context.Context, b *book.Book) error {
	defer r.store.write(ctx)()

	existing, ok := r.store.books[b.ID]
	if !ok {
		return book.ErrBookNotFound
	}
	if b.ISBN != "" {
		for id, other := range r.store.books {
			if id != b.ID && other.ISBN == b.ISBN {
				return book.ErrISBNDuplicate
			}
		}
	}

	next := cloneBook(b)
	next.RatingAverage = existing.RatingAverage
	next.ReviewCount = existing.ReviewCount
	next.CreatedAt = existing.CreatedAt
	r.store.books[b.ID] = next
	return nil
}

func (r *bookRepository) Delete(ctx context.Context, id string) error {
	defer r.store.write(ctx)()

	if _, ok := r.store.books[id]; !ok {
		return book.ErrBookNotFound
	}
	delete(r.store.books, id)
	return nil
}

func (r *bookRepository) List(ctx context.Context, params book.ListParams) ([]*book.Book, int64, error) {
	r.store.mu.RLock()
	matched := make([]*book.Book, 0)
	for _, b := range r.store.books {
		if params.Matches(b) {
			matched = append(matched, cloneBook(b))
		}
	}
	r.store.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool { return params.Sort.Less(matched[i], matched[j]) })
	return paginate(matched, params.Page, params.PageSize), int64(len(matched)), nil
}

func (r *bookRepository) Featured(ctx context.Context, limit int) ([]*book.Book, error) {
	r.store.mu.RLock()
	featured := make([]*book.Book, 0)
	for _, b := range r.store.books {
		if b.Featured {
			featured = append(featured, cloneBook(b))
		}
	}
	r.store.mu.RUnlock()

	sort.Slice(featured, func(i, j int) bool { return book.SortRating.Less(featured[i], featured[j]) })
	if len(featured) > limit {
		featured = featured[:limit]
	}
	return featured, nil
}

func (r *bookRepository) UpdateRating(ctx context.Context, id string, average float64, count int) error {
	defer r.store.write(ctx)()

	b, ok := r.store.books[id]
	if !ok {
		return book.ErrBookNotFound
	}
	b.RatingAverage = average
	b.ReviewCount = count
	b.UpdatedAt = time.Now()
	return nil
}

func (r *bookRepository) ReserveStock(ctx context.Context, id string, quantity int) error {
	if quantity < 1 {
		return book.ErrInvalidQuantity
	}

	defer r.store.write(ctx)()

	b, ok := r.store.books[id]
	if !ok {
		return book.ErrBookNotFound
	}
	if b.Stock < quantity {
		return book.ErrInsufficientStock
	}
	b.Stock -= quantity
	b.UpdatedAt = time.Now()
	return nil
}

func (r *bookRepository) ReleaseStock(ctx context.Context, id string, quantity int) error {
	if quantity < 1 {
		return book.ErrInvalidQuantity
	}

	defer r.store.write(ctx)()

	b, ok := r.store.books[id]
	if !ok {
		return book.ErrBookNotFound
	}
	b.Stock += quantity
	b.UpdatedAt = time.Now()
	return nil
}
