package mongo

import (
	"time"

	"github.com/krishivsaini/BookBazaar/internal/domain/book"
	"github.com/krishivsaini/BookBazaar/internal/domain/cart"
	"github.com/krishivsaini/BookBazaar/internal/domain/order"
	"github.com/krishivsaini/BookBazaar/internal/domain/review"
	"github.com/krishivsaini/BookBazaar/internal/domain/user"
	"github.com/krishivsaini/BookBazaar/internal/domain/wishlist"
)

// BSON文档结构，字段名使用camelCase

type bookDoc struct {
	ID              string     `bson:"_id"`
	Title           string     `bson:"title"`
	Author          string     `bson:"author"`
	Description     string     `bson:"description"`
	ISBN            string     `bson:"isbn,omitempty"`
	Publisher       string     `bson:"publisher,omitempty"`
	PublishedDate   *time.Time `bson:"publishedDate,omitempty"`
	Language        string     `bson:"language"`
	PageCount       int        `bson:"pageCount"`
	Category        string     `bson:"category"`
	Price           int64      `bson:"price"`
	OriginalPrice   int64      `bson:"originalPrice"`
	DiscountPercent int        `bson:"discountPercent"`
	Stock           int        `bson:"stock"`
	Images          []string   `bson:"images"`
	RatingAverage   float64    `bson:"ratingAverage"`
	ReviewCount     int        `bson:"reviewCount"`
	Featured        bool       `bson:"featured"`
	SellerID        string     `bson:"sellerId"`
	CreatedAt       time.Time  `bson:"createdAt"`
	UpdatedAt       time.Time  `bson:"updatedAt"`
}

func toBookDoc(b *book.Book) *bookDoc {
	return &bookDoc{
		ID: b.ID, Title: b.Title, Author: b.Author, Description: b.Description,
		ISBN: b.ISBN, Publisher: b.Publisher, PublishedDate: b.PublishedDate,
		Language: b.Language, PageCount: b.PageCount, Category: string(b.Category),
		Price: b.Price, OriginalPrice: b.OriginalPrice, DiscountPercent: b.DiscountPercent,
		Stock: b.Stock, Images: b.Images, RatingAverage: b.RatingAverage,
		ReviewCount: b.ReviewCount, Featured: b.Featured, SellerID: b.SellerID,
		CreatedAt: b.CreatedAt, UpdatedAt: b.UpdatedAt,
	}
}

func (d *bookDoc) entity() *book.Book {
	images := d.Images
	if images == nil {
		images = []string{}
	}
	return &book.Book{
		ID: d.ID, Title: d.Title, Author: d.Author, Description: d.Description,
		ISBN: d.ISBN, Publisher: d.Publisher, PublishedDate: d.PublishedDate,
		Language: d.Language, PageCount: d.PageCount, Category: book.Category(d.Category),
		Price: d.Price, OriginalPrice: d.OriginalPrice, DiscountPercent: d.DiscountPercent,
		Stock: d.Stock, Images: images, RatingAverage: d.RatingAverage,
		ReviewCount: d.ReviewCount, Featured: d.Featured, SellerID: d.SellerID,
		CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt,
	}
}

type cartItemDoc struct {
	BookID   string `bson:"bookId"`
	Quantity int    `bson:"quantity"`
	Price    int64  `bson:"price"`
}

type cartDoc struct {
	ID         string        `bson:"_id"`
	UserID     string        `bson:"userId"`
	Items      []cartItemDoc `bson:"items"`
	TotalPrice int64         `bson:"totalPrice"`
	CreatedAt  time.Time     `bson:"createdAt"`
	UpdatedAt  time.Time     `bson:"updatedAt"`
}

func cartItemDocs(items []cart.Item) []cartItemDoc {
	docs := make([]cartItemDoc, len(items))
	for i, item := range items {
		docs[i] = cartItemDoc{BookID: item.BookID, Quantity: item.Quantity, Price: item.Price}
	}
	return docs
}

func (d *cartDoc) entity() *cart.Cart {
	items := make([]cart.Item, len(d.Items))
	for i, item := range d.Items {
		items[i] = cart.Item{BookID: item.BookID, Quantity: item.Quantity, Price: item.Price}
	}
	return &cart.Cart{
		ID: d.ID, UserID: d.UserID, Items: items, TotalPrice: d.TotalPrice,
		CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt,
	}
}

type wishlistItemDoc struct {
	BookID  string    `bson:"bookId"`
	AddedAt time.Time `bson:"addedAt"`
}

type wishlistDoc struct {
	ID        string            `bson:"_id"`
	UserID    string            `bson:"userId"`
	Items     []wishlistItemDoc `bson:"items"`
	CreatedAt time.Time         `bson:"createdAt"`
	UpdatedAt time.Time         `bson:"updatedAt"`
}

func wishlistItemDocs(items []wishlist.Item) []wishlistItemDoc {
	docs := make([]wishlistItemDoc, len(items))
	for i, item := range items {
		docs[i] = wishlistItemDoc{BookID: item.BookID, AddedAt: item.AddedAt}
	}
	return docs
}

func (d *wishlistDoc) entity() *wishlist.Wishlist {
	items := make([]wishlist.Item, len(d.Items))
	for i, item := range d.Items {
		items[i] = wishlist.Item{BookID: item.BookID, AddedAt: item.AddedAt}
	}
	return &wishlist.Wishlist{
		ID: d.ID, UserID: d.UserID, Items: items,
		CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt,
	}
}

type reviewDoc struct {
	ID           string    `bson:"_id"`
	UserID       string    `bson:"userId"`
	UserName     string    `bson:"userName"`
	BookID       string    `bson:"bookId"`
	Rating       int       `bson:"rating"`
	Title        string    `bson:"title,omitempty"`
	Comment      string    `bson:"comment"`
	Verified     bool      `bson:"verified"`
	HelpfulCount int       `bson:"helpfulCount"`
	CreatedAt    time.Time `bson:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt"`
}

func toReviewDoc(r *review.Review) *reviewDoc {
	return &reviewDoc{
		ID: r.ID, UserID: r.UserID, UserName: r.UserName, BookID: r.BookID,
		Rating: r.Rating, Title: r.Title, Comment: r.Comment, Verified: r.Verified,
		HelpfulCount: r.HelpfulCount, CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt,
	}
}

func (d *reviewDoc) entity() *review.Review {
	return &review.Review{
		ID: d.ID, UserID: d.UserID, UserName: d.UserName, BookID: d.BookID,
		Rating: d.Rating, Title: d.Title, Comment: d.Comment, Verified: d.Verified,
		HelpfulCount: d.HelpfulCount, CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt,
	}
}

type orderItemDoc struct {
	BookID   string `bson:"bookId"`
	Title    string `bson:"title"`
	Author   string `bson:"author"`
	Image    string `bson:"image,omitempty"`
	Price    int64  `bson:"price"`
	Quantity int    `bson:"quantity"`
}

type addressDoc struct {
	FullName   string `bson:"fullName"`
	Address    string `bson:"address"`
	City       string `bson:"city"`
	State      string `bson:"state"`
	PostalCode string `bson:"postalCode"`
	Country    string `bson:"country"`
	Phone      string `bson:"phone"`
}

type orderDoc struct {
	ID                 string         `bson:"_id"`
	OrderNo            string         `bson:"orderNo"`
	UserID             string         `bson:"userId"`
	Items              []orderItemDoc `bson:"items"`
	ShippingAddress    addressDoc     `bson:"shippingAddress"`
	PaymentMethod      string         `bson:"paymentMethod"`
	Subtotal           int64          `bson:"subtotal"`
	Tax                int64          `bson:"tax"`
	ShippingCost       int64          `bson:"shippingCost"`
	TotalAmount        int64          `bson:"totalAmount"`
	Status             string         `bson:"status"`
	PaymentStatus      string         `bson:"paymentStatus"`
	TrackingNumber     string         `bson:"trackingNumber,omitempty"`
	PaidAt             *time.Time     `bson:"paidAt,omitempty"`
	DeliveredAt        *time.Time     `bson:"deliveredAt,omitempty"`
	CancelledAt        *time.Time     `bson:"cancelledAt,omitempty"`
	CancellationReason string         `bson:"cancellationReason,omitempty"`
	CreatedAt          time.Time      `bson:"createdAt"`
	UpdatedAt          time.Time      `bson:"updatedAt"`
}

func toOrderDoc(o *order.Order) *orderDoc {
	items := make([]orderItemDoc, len(o.Items))
	for i, item := range o.Items {
		items[i] = orderItemDoc{
			BookID: item.BookID, Title: item.Title, Author: item.Author,
			Image: item.Image, Price: item.Price, Quantity: item.Quantity,
		}
	}
	a := o.ShippingAddress
	return &orderDoc{
		ID: o.ID, OrderNo: o.OrderNo, UserID: o.UserID, Items: items,
		ShippingAddress: addressDoc{
			FullName: a.FullName, Address: a.Address, City: a.City, State: a.State,
			PostalCode: a.PostalCode, Country: a.Country, Phone: a.Phone,
		},
		PaymentMethod: string(o.PaymentMethod),
		Subtotal:      o.Subtotal, Tax: o.Tax, ShippingCost: o.ShippingCost, TotalAmount: o.TotalAmount,
		Status: string(o.Status), PaymentStatus: string(o.PaymentStatus),
		TrackingNumber: o.TrackingNumber, PaidAt: o.PaidAt, DeliveredAt: o.DeliveredAt,
		CancelledAt: o.CancelledAt, CancellationReason: o.CancellationReason,
		CreatedAt: o.CreatedAt, UpdatedAt: o.UpdatedAt,
	}
}

func (d *orderDoc) entity() *order.Order {
	items := make([]order.Item, len(d.Items))
	for i, item := range d.Items {
		items[i] = order.Item{
			BookID: item.BookID, Title: item.Title, Author: item.Author,
			Image: item.Image, Price: item.Price, Quantity: item.Quantity,
		}
	}
	a := d.ShippingAddress
	return &order.Order{
		ID: d.ID, OrderNo: d.OrderNo, UserID: d.UserID, Items: items,
		ShippingAddress: order.ShippingAddress{
			FullName: a.FullName, Address: a.Address, City: a.City, State: a.State,
			PostalCode: a.PostalCode, Country: a.Country, Phone: a.Phone,
		},
		PaymentMethod: order.PaymentMethod(d.PaymentMethod),
		Subtotal:      d.Subtotal, Tax: d.Tax, ShippingCost: d.ShippingCost, TotalAmount: d.TotalAmount,
		Status: order.Status(d.Status), PaymentStatus: order.PaymentStatus(d.PaymentStatus),
		TrackingNumber: d.TrackingNumber, PaidAt: d.PaidAt, DeliveredAt: d.DeliveredAt,
		CancelledAt: d.CancelledAt, CancellationReason: d.CancellationReason,
		CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt,
	}
}

type userDoc struct {
	ID        string    `bson:"_id"`
	Email     string    `bson:"email"`
	Password  string    `bson:"password"`
	Name      string    `bson:"name"`
	Role      string    `bson:"role"`
	CreatedAt time.Time `bson:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

func toUserDoc(u *user.User) *userDoc {
	return &userDoc{
		ID: u.ID, Email: u.Email, Password: u.Password, Name: u.Name,
		Role: string(u.Role), CreatedAt: u.CreatedAt, UpdatedAt: u.UpdatedAt,
	}
}

func (d *userDoc) entity() *user.User {
	return &user.User{
		ID: d.ID, Email: d.Email, Password: d.Password, Name: d.Name,
		Role: user.Role(d.Role), CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt,
	}
}
