package cart

import (
	"time"

	"github.com/google/uuid"
)

// Item 购物车条目
// Price是首次加入时的单价快照(分)，重复加入不会刷新
type Item struct {
	BookID   string
	Quantity int
	Price    int64
}

// Subtotal 小计
func (i Item) Subtotal() int64 {
	return i.Price * int64(i.Quantity)
}

// Cart 购物车聚合根，每个用户一个
// TotalPrice在每次变更后重新计算，不接受外部输入
type Cart struct {
	ID         string
	UserID     string
	Items      []Item
	TotalPrice int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewCart 创建空购物车
func NewCart(userID string) *Cart {
	now := time.Now()
	return &Cart{
		ID:        uuid.NewString(),
		UserID:    userID,
		Items:     []Item{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// AddItem 加入图书
// 已存在：数量累加，保留原快照价；不存在：以当前价格追加新条目
func (c *Cart) AddItem(bookID string, quantity int, currentPrice int64) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}

	if i := c.indexOf(bookID); i >= 0 {
		c.Items[i].Quantity += quantity
	} else {
		c.Items = append(c.Items, Item{BookID: bookID, Quantity: quantity, Price: currentPrice})
	}

	c.touch()
	return nil
}

// UpdateQuantity 设置绝对数量
func (c *Cart) UpdateQuantity(bookID string, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}

	i := c.indexOf(bookID)
	if i < 0 {
		return ErrItemNotFound
	}

	c.Items[i].Quantity = quantity
	c.touch()
	return nil
}

// RemoveItem 移除条目，不存在时为空操作
func (c *Cart) RemoveItem(bookID string) {
	if i := c.indexOf(bookID); i >= 0 {
		c.Items = append(c.Items[:i], c.Items[i+1:]...)
	}
	c.touch()
}

// Clear 清空（下单后调用，购物车本身保留）
func (c *Cart) Clear() {
	c.Items = []Item{}
	c.touch()
}

// Quantity 某本书在购物车中的数量
func (c *Cart) Quantity(bookID string) int {
	if i := c.indexOf(bookID); i >= 0 {
		return c.Items[i].Quantity
	}
	return 0
}

func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Recalculate 重新计算总价
func (c *Cart) Recalculate() {
	var total int64
	for _, item := range c.Items {
		total += item.Subtotal()
	}
	c.TotalPrice = total
}

func (c *Cart) touch() {
	c.Recalculate()
	c.UpdatedAt = time.Now()
}

func (c *Cart) indexOf(bookID string) int {
	for i, item := range c.Items {
		if item.BookID == bookID {
			return i
		}
	}
	return -1
}
