package wishlist

import (
	"time"

	"github.com/google/uuid"
)

// Item 心愿单条目
type Item struct {
	BookID  string
	AddedAt time.Time
}

// Wishlist 心愿单聚合根，每个用户一个，条目按加入顺序排列且不重复
// 允许引用已删除的图书，读取时惰性清理
type Wishlist struct {
	ID        string
	UserID    string
	Items     []Item
	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewWishlist(userID string) *Wishlist {
	now := time.Now()
	return &Wishlist{
		ID:        uuid.NewString(),
		UserID:    userID,
		Items:     []Item{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Contains 是否已收藏
func (w *Wishlist) Contains(bookID string) bool {
	for _, item := range w.Items {
		if item.BookID == bookID {
			return true
		}
	}
	return false
}

// BookIDs 按顺序返回全部图书ID
func (w *Wishlist) BookIDs() []string {
	ids := make([]string, len(w.Items))
	for i, item := range w.Items {
		ids[i] = item.BookID
	}
	return ids
}

// Retain 只保留keep中存在的图书，返回是否有条目被移除
func (w *Wishlist) Retain(keep map[string]bool) bool {
	kept := w.Items[:0]
	for _, item := range w.Items {
		if keep[item.BookID] {
			kept = append(kept, item)
		}
	}
	changed := len(kept) != len(w.Items)
	w.Items = kept
	if changed {
		w.UpdatedAt = time.Now()
	}
	return changed
}
