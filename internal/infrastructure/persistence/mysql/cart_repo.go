package mysql

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/krishivsaini/BookBazaar/internal/domain/cart"
	apperrors "github.com/krishivsaini/BookBazaar/pkg/errors"
)

type cartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) cart.Repository {
	return &cartRepository{db: db}
}

func (r *cartRepository) FindByUserID(ctx context.Context, userID string) (*cart.Cart, error) {
	var model CartModel
	err := conn(ctx, r.db).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Where("user_id = ?", userID).
		First(&model).Error
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, apperrors.Wrap(err, "query cart failed")
	}
	return toCartEntity(&model), nil
}

// Save 购物车与条目整体覆盖写入（调用方已持有用户级锁）
func (r *cartRepository) Save(ctx context.Context, c *cart.Cart) error {
	model := toCartModel(c)

	err := conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		err := tx.Omit("Items").Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"total_price", "updated_at"}),
		}).Create(model).Error
		if err != nil {
			return err
		}

		// 以库中的ID为准（并发首次创建时可能由另一请求插入）
		var stored CartModel
		if err := tx.Select("id").Where("user_id = ?", c.UserID).First(&stored).Error; err != nil {
			return err
		}
		c.ID = stored.ID

		if err := tx.Where("cart_id = ?", stored.ID).Delete(&CartItemModel{}).Error; err != nil {
			return err
		}
		if len(model.Items) == 0 {
			return nil
		}
		for i := range model.Items {
			model.Items[i].CartID = stored.ID
		}
		return tx.Create(&model.Items).Error
	})
	if err != nil {
		return apperrors.Wrap(err, "save cart failed")
	}
	return nil
}

func toCartModel(c *cart.Cart) *CartModel {
	items := make([]CartItemModel, len(c.Items))
	for i, item := range c.Items {
		items[i] = CartItemModel{
			CartID:   c.ID,
			BookID:   item.BookID,
			Quantity: item.Quantity,
			Price:    item.Price,
			Position: i,
		}
	}
	return &CartModel{
		ID:         c.ID,
		UserID:     c.UserID,
		TotalPrice: c.TotalPrice,
		Items:      items,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

func toCartEntity(m *CartModel) *cart.Cart {
	items := make([]cart.Item, len(m.Items))
	for i, item := range m.Items {
		items[i] = cart.Item{BookID: item.BookID, Quantity: item.Quantity, Price: item.Price}
	}
	return &cart.Cart{
		ID:         m.ID,
		UserID:     m.UserID,
		Items:      items,
		TotalPrice: m.TotalPrice,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}
