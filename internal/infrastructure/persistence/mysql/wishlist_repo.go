package mysql

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/krishivsaini/BookBazaar/internal/domain/wishlist"
	apperrors "github.com/krishivsaini/BookBazaar/pkg/errors"
)

// wishlistRepository 心愿单仓储(MySQL)
// 条目单独成表，(user_id, book_id)唯一索引保证不重复
type wishlistRepository struct {
	db *gorm.DB
}

func NewWishlistRepository(db *gorm.DB) wishlist.Repository {
	return &wishlistRepository{db: db}
}

func (r *wishlistRepository) FindOrCreate(ctx context.Context, userID string) (*wishlist.Wishlist, error) {
	db := conn(ctx, r.db)

	w := wishlist.NewWishlist(userID)
	head := WishlistModel{ID: w.ID, UserID: userID, CreatedAt: w.CreatedAt, UpdatedAt: w.UpdatedAt}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&head).Error; err != nil {
		return nil, apperrors.Wrap(err, "create wishlist failed")
	}
	if err := db.Where("user_id = ?", userID).First(&head).Error; err != nil {
		return nil, apperrors.Wrap(err, "query wishlist failed")
	}

	var items []WishlistItemModel
	if err := db.Where("user_id = ?", userID).Order("added_at ASC, id ASC").Find(&items).Error; err != nil {
		return nil, apperrors.Wrap(err, "query wishlist items failed")
	}

	w.ID = head.ID
	w.CreatedAt = head.CreatedAt
	w.UpdatedAt = head.UpdatedAt
	w.Items = make([]wishlist.Item, len(items))
	for i, item := range items {
		w.Items[i] = wishlist.Item{BookID: item.BookID, AddedAt: item.AddedAt}
	}
	return w, nil
}

// Save 删除不在列表中的条目
func (r *wishlistRepository) Save(ctx context.Context, w *wishlist.Wishlist) error {
	query := conn(ctx, r.db).Where("user_id = ?", w.UserID)
	if ids := w.BookIDs(); len(ids) > 0 {
		query = query.Where("book_id NOT IN ?", ids)
	}
	if err := query.Delete(&WishlistItemModel{}).Error; err != nil {
		return apperrors.Wrap(err, "save wishlist failed")
	}
	return r.touch(ctx, w.UserID)
}

// AddItem INSERT ... ON DUPLICATE KEY 忽略
func (r *wishlistRepository) AddItem(ctx context.Context, userID, bookID string) error {
	if _, err := r.FindOrCreate(ctx, userID); err != nil {
		return err
	}

	item := WishlistItemModel{UserID: userID, BookID: bookID, AddedAt: time.Now()}
	if err := conn(ctx, r.db).Clauses(clause.OnConflict{DoNothing: true}).Create(&item).Error; err != nil {
		return apperrors.Wrap(err, "add wishlist item failed")
	}
	return r.touch(ctx, userID)
}

func (r *wishlistRepository) RemoveItem(ctx context.Context, userID, bookID string) error {
	err := conn(ctx, r.db).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		Delete(&WishlistItemModel{}).Error
	if err != nil {
		return apperrors.Wrap(err, "remove wishlist item failed")
	}
	return r.touch(ctx, userID)
}

// Toggle 先尝试删除，未删除任何行则插入
// 并发切换时唯一索引保证最多一条记录
func (r *wishlistRepository) Toggle(ctx context.Context, userID, bookID string) (bool, error) {
	if _, err := r.FindOrCreate(ctx, userID); err != nil {
		return false, err
	}

	db := conn(ctx, r.db)
	result := db.Where("user_id = ? AND book_id = ?", userID, bookID).Delete(&WishlistItemModel{})
	if result.Error != nil {
		return false, apperrors.Wrap(result.Error, "toggle wishlist item failed")
	}

	added := result.RowsAffected == 0
	if added {
		item := WishlistItemModel{UserID: userID, BookID: bookID, AddedAt: time.Now()}
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&item).Error; err != nil {
			return false, apperrors.Wrap(err, "toggle wishlist item failed")
		}
	}
	return added, r.touch(ctx, userID)
}

func (r *wishlistRepository) Clear(ctx context.Context, userID string) error {
	if err := conn(ctx, r.db).Where("user_id = ?", userID).Delete(&WishlistItemModel{}).Error; err != nil {
		return apperrors.Wrap(err, "clear wishlist failed")
	}
	return r.touch(ctx, userID)
}

func (r *wishlistRepository) touch(ctx context.Context, userID string) error {
	err := conn(ctx, r.db).Model(&WishlistModel{}).
		Where("user_id = ?", userID).
		Update("updated_at", time.Now()).Error
	if err != nil {
		return apperrors.Wrap(err, "update wishlist failed")
	}
	return nil
}
