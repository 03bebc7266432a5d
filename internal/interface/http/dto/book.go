package dto

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/krishivsaini/BookBazaar/internal/domain/book"
	"github.com/krishivsaini/BookBazaar/pkg/money"
)

// 金额字段在HTTP层使用货币单位(如12.50)，进入应用层前转换为"分"

// CreateBookRequest 新增图书
// 分类、价格区间、折扣等业务规则由领域层校验
type CreateBookRequest struct {
	Title         string     `json:"title" binding:"required,max=200" example:"Dune"`
	Author        string     `json:"author" binding:"required,max=100" example:"Frank Herbert"`
	Description   string     `json:"description" binding:"required" example:"Science fiction classic"`
	ISBN          string     `json:"isbn" binding:"max=20" example:"9780441172719"`
	Publisher     string     `json:"publisher" binding:"max=100" example:"Ace"`
	PublishedDate *time.Time `json:"publishedDate"`
	Language      string     `json:"language" example:"English"`
	Pages         int        `json:"pages" example:"612"`
	Category      string     `json:"category" binding:"required" example:"Fiction"`
	Price         *float64   `json:"price" binding:"required" example:"12.50"` // 必填，允许0
	OriginalPrice float64    `json:"originalPrice" example:"15.00"`
	Discount      int        `json:"discount" example:"16"`
	Stock         int        `json:"stock" example:"20"`
	Images        []string   `json:"images"`
	Featured      bool       `json:"featured"`
}

func (r CreateBookRequest) ToAttributes() book.Attributes {
	var price int64
	if r.Price != nil {
		price = money.FromFloat(*r.Price)
	}
	return book.Attributes{
		Title:           r.Title,
		Author:          r.Author,
		Description:     r.Description,
		ISBN:            r.ISBN,
		Publisher:       r.Publisher,
		PublishedDate:   r.PublishedDate,
		Language:        r.Language,
		PageCount:       r.Pages,
		Category:        book.Category(r.Category),
		Price:           price,
		OriginalPrice:   money.FromFloat(r.OriginalPrice),
		DiscountPercent: r.Discount,
		Stock:           r.Stock,
		Images:          r.Images,
		Featured:        r.Featured,
	}
}

// UpdateBookRequest 部分更新，未提供的字段为nil
type UpdateBookRequest struct {
	Title         *string    `json:"title"`
	Author        *string    `json:"author"`
	Description   *string    `json:"description"`
	ISBN          *string    `json:"isbn"`
	Publisher     *string    `json:"publisher"`
	PublishedDate *time.Time `json:"publishedDate"`
	Language      *string    `json:"language"`
	Pages         *int       `json:"pages"`
	Category      *string    `json:"category"`
	Price         *float64   `json:"price"`
	OriginalPrice *float64   `json:"originalPrice"`
	Discount      *int       `json:"discount"`
	Stock         *int       `json:"stock"`
	Images        *[]string  `json:"images"`
	Featured      *bool      `json:"featured"`
}

func (r UpdateBookRequest) ToPatch() book.Patch {
	p := book.Patch{
		Title:           r.Title,
		Author:          r.Author,
		Description:     r.Description,
		ISBN:            r.ISBN,
		Publisher:       r.Publisher,
		PublishedDate:   r.PublishedDate,
		Language:        r.Language,
		PageCount:       r.Pages,
		DiscountPercent: r.Discount,
		Stock:           r.Stock,
		Images:          r.Images,
		Featured:        r.Featured,
	}
	if r.Category != nil {
		c := book.Category(*r.Category)
		p.Category = &c
	}
	p.Price = centsPtr(r.Price)
	p.OriginalPrice = centsPtr(r.OriginalPrice)
	return p
}

func centsPtr(f *float64) *int64 {
	if f == nil {
		return nil
	}
	v := money.FromFloat(*f)
	return &v
}

// displayRating 平均分展示保留两位小数
func displayRating(avg float64) float64 {
	return decimal.NewFromFloat(avg).Round(2).InexactFloat64()
}

// ListBooksQuery 列表查询参数
// category支持逗号分隔或重复传参：?category=Fiction,Science 或 ?category=Fiction&category=Science
type ListBooksQuery struct {
	Category []string `form:"category"`
	MinPrice *float64 `form:"minPrice" binding:"omitempty,min=0"`
	MaxPrice *float64 `form:"maxPrice" binding:"omitempty,min=0"`
	Rating   *float64 `form:"rating" binding:"omitempty,min=0,max=5"`
	Search   string   `form:"search" binding:"max=100"`
	Author   string   `form:"author" binding:"max=100"`
	Sort     string   `form:"sort"`
	Page     int      `form:"page"`
	Limit    int      `form:"limit"`
}

func (q ListBooksQuery) ToParams() book.ListParams {
	params := book.ListParams{
		MinPrice:  centsPtr(q.MinPrice),
		MaxPrice:  centsPtr(q.MaxPrice),
		MinRating: q.Rating,
		Search:    q.Search,
		Author:    q.Author,
		Sort:      book.Sort(q.Sort),
		Page:      q.Page,
		PageSize:  q.Limit,
	}
	for _, raw := range q.Category {
		for _, c := range strings.Split(raw, ",") {
			if c = strings.TrimSpace(c); c != "" {
				params.Categories = append(params.Categories, book.Category(c))
			}
		}
	}
	return params
}

// BookResponse 图书详情
type BookResponse struct {
	ID            string     `json:"id" example:"5f0c6a9e-2b5c-4d43-9c59-9b8e5e7f6a10"`
	Title         string     `json:"title" example:"Dune"`
	Author        string     `json:"author" example:"Frank Herbert"`
	Description   string     `json:"description"`
	ISBN          string     `json:"isbn,omitempty"`
	Publisher     string     `json:"publisher,omitempty"`
	PublishedDate *time.Time `json:"publishedDate,omitempty"`
	Language      string     `json:"language"`
	Pages         int        `json:"pages,omitempty"`
	Category      string     `json:"category" example:"Fiction"`
	Price         float64    `json:"price" example:"12.5"`
	OriginalPrice float64    `json:"originalPrice,omitempty"`
	Discount      int        `json:"discount"`
	Stock         int        `json:"stock"`
	Images        []string   `json:"images"`
	Rating        float64    `json:"rating" example:"4.5"`
	NumReviews    int        `json:"numReviews"`
	Featured      bool       `json:"featured"`
	Seller        string     `json:"seller"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

func NewBookResponse(b *book.Book) *BookResponse {
	images := b.Images
	if images == nil {
		images = []string{}
	}
	return &BookResponse{
		ID:            b.ID,
		Title:         b.Title,
		Author:        b.Author,
		Description:   b.Description,
		ISBN:          b.ISBN,
		Publisher:     b.Publisher,
		PublishedDate: b.PublishedDate,
		Language:      b.Language,
		Pages:         b.PageCount,
		Category:      string(b.Category),
		Price:         money.Float(b.Price),
		OriginalPrice: money.Float(b.OriginalPrice),
		Discount:      b.DiscountPercent,
		Stock:         b.Stock,
		Images:        images,
		Rating:        displayRating(b.RatingAverage),
		NumReviews:    b.ReviewCount,
		Featured:      b.Featured,
		Seller:        b.SellerID,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

func NewBookResponses(books []*book.Book) []*BookResponse {
	out := make([]*BookResponse, len(books))
	for i, b := range books {
		out[i] = NewBookResponse(b)
	}
	return out
}

// BookSummary 购物车、心愿单中内嵌的图书信息
type BookSummary struct {
	ID     string  `json:"id"`
	Title  string  `json:"title"`
	Author string  `json:"author"`
	Image  string  `json:"image,omitempty"`
	Price  float64 `json:"price"`
	Stock  int     `json:"stock"`
}

func NewBookSummary(b *book.Book) *BookSummary {
	if b == nil {
		return nil
	}
	return &BookSummary{
		ID:     b.ID,
		Title:  b.Title,
		Author: b.Author,
		Image:  b.CoverImage(),
		Price:  money.Float(b.Price),
		Stock:  b.Stock,
	}
}
