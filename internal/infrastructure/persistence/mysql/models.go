package mysql

import (
	"time"
)

// 以下为infrastructure层的数据模型，包含GORM tag
// domain层实体不依赖GORM，由仓储负责两者之间的转换

// UserModel 用户表
type UserModel struct {
	ID        string    `gorm:"primaryKey;size:36"`
	Email     string    `gorm:"uniqueIndex;size:100;not null;comment:邮箱"`
	Password  string    `gorm:"size:255;not null;comment:密码(bcrypt)"`
	Name      string    `gorm:"size:50;not null"`
	Role      string    `gorm:"size:10;not null;default:user"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (UserModel) TableName() string {
	return "users"
}

// BookModel 图书表
// 1. 价格使用int64存储"分"
// 2. ISBN可空，非空时唯一
// 3. 评分字段只由评论服务写入
type BookModel struct {
	ID              string     `gorm:"primaryKey;size:36"`
	Title           string     `gorm:"index:idx_search;size:200;not null"`
	Author          string     `gorm:"index:idx_search;size:100;not null"`
	Description     string     `gorm:"type:text;not null"`
	ISBN            *string    `gorm:"uniqueIndex;size:20"`
	Publisher       string     `gorm:"size:100"`
	PublishedDate   *time.Time `gorm:"type:date"`
	Language        string     `gorm:"size:30"`
	PageCount       int
	Category        string    `gorm:"index;size:30;not null"`
	Price           int64     `gorm:"index;not null;comment:售价(分)"`
	OriginalPrice   int64     `gorm:"comment:原价(分)"`
	DiscountPercent int
	Stock           int       `gorm:"not null;default:0"`
	Images          []string  `gorm:"serializer:json;type:json"`
	RatingAverage   float64   `gorm:"index;type:double;not null;default:0"`
	ReviewCount     int       `gorm:"not null;default:0"`
	Featured        bool      `gorm:"index;not null;default:false"`
	SellerID        string    `gorm:"index;size:36"`
	CreatedAt       time.Time `gorm:"index"`
	UpdatedAt       time.Time
}

func (BookModel) TableName() string {
	return "books"
}

// CartModel 购物车表，每个用户一行
type CartModel struct {
	ID         string          `gorm:"primaryKey;size:36"`
	UserID     string          `gorm:"uniqueIndex;size:36;not null"`
	TotalPrice int64           `gorm:"not null;default:0"`
	Items      []CartItemModel `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (CartModel) TableName() string {
	return "carts"
}

// CartItemModel 购物车条目，Position保持加入顺序
type CartItemModel struct {
	ID       uint   `gorm:"primaryKey"`
	CartID   string `gorm:"uniqueIndex:idx_cart_book;size:36;not null"`
	BookID   string `gorm:"uniqueIndex:idx_cart_book;size:36;not null"`
	Quantity int    `gorm:"not null"`
	Price    int64  `gorm:"not null;comment:加入时单价快照(分)"`
	Position int    `gorm:"not null"`
}

func (CartItemModel) TableName() string {
	return "cart_items"
}

// WishlistModel 心愿单表，每个用户一行
type WishlistModel struct {
	ID        string `gorm:"primaryKey;size:36"`
	UserID    string `gorm:"uniqueIndex;size:36;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (WishlistModel) TableName() string {
	return "wishlists"
}

// WishlistItemModel 心愿单条目
// (user_id, book_id)唯一索引，收藏/切换由单条语句完成
type WishlistItemModel struct {
	ID      uint      `gorm:"primaryKey"`
	UserID  string    `gorm:"uniqueIndex:idx_wishlist_user_book;size:36;not null"`
	BookID  string    `gorm:"uniqueIndex:idx_wishlist_user_book;size:36;not null"`
	AddedAt time.Time `gorm:"not null"`
}

func (WishlistItemModel) TableName() string {
	return "wishlist_items"
}

// ReviewModel 评论表，(user_id, book_id)唯一
type ReviewModel struct {
	ID           string `gorm:"primaryKey;size:36"`
	UserID       string `gorm:"uniqueIndex:idx_review_user_book;size:36;not null"`
	UserName     string `gorm:"size:50"`
	BookID       string `gorm:"uniqueIndex:idx_review_user_book;index;size:36;not null"`
	Rating       int    `gorm:"type:tinyint;not null"`
	Title        string `gorm:"size:100"`
	Comment      string `gorm:"type:text;not null"`
	Verified     bool   `gorm:"not null;default:false"`
	HelpfulCount int    `gorm:"not null;default:0"`
	CreatedAt    time.Time `gorm:"index"`
	UpdatedAt    time.Time
}

func (ReviewModel) TableName() string {
	return "reviews"
}

// ShippingAddressModel 收货地址，内嵌到订单表
type ShippingAddressModel struct {
	FullName   string `gorm:"size:100"`
	Address    string `gorm:"size:255"`
	City       string `gorm:"size:100"`
	State      string `gorm:"size:100"`
	PostalCode string `gorm:"size:20"`
	Country    string `gorm:"size:100"`
	Phone      string `gorm:"size:30"`
}

// OrderModel 订单表
// 与OrderItemModel一对多，OrderNo唯一
type OrderModel struct {
	ID                 string               `gorm:"primaryKey;size:36"`
	OrderNo            string               `gorm:"uniqueIndex;size:32;not null"`
	UserID             string               `gorm:"index;size:36;not null"`
	Items              []OrderItemModel     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	ShippingAddress    ShippingAddressModel `gorm:"embedded;embeddedPrefix:shipping_"`
	PaymentMethod      string               `gorm:"size:20;not null"`
	Subtotal           int64                `gorm:"not null"`
	Tax                int64                `gorm:"not null"`
	ShippingCost       int64                `gorm:"not null"`
	TotalAmount        int64                `gorm:"not null"`
	Status             string               `gorm:"index;size:20;not null"`
	PaymentStatus      string               `gorm:"size:20;not null"`
	TrackingNumber     string               `gorm:"size:64"`
	PaidAt             *time.Time
	DeliveredAt        *time.Time
	CancelledAt        *time.Time
	CancellationReason string    `gorm:"size:255"`
	CreatedAt          time.Time `gorm:"index"`
	UpdatedAt          time.Time
}

func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel 订单明细，记录下单时的图书快照
type OrderItemModel struct {
	ID       uint   `gorm:"primaryKey"`
	OrderID  string `gorm:"index;size:36;not null"`
	BookID   string `gorm:"index;size:36;not null"`
	Title    string `gorm:"size:200;not null"`
	Author   string `gorm:"size:100"`
	Image    string `gorm:"size:500"`
	Price    int64  `gorm:"not null;comment:下单时单价(分)"`
	Quantity int    `gorm:"not null"`
}

func (OrderItemModel) TableName() string {
	return "order_items"
}
