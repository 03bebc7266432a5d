package book

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Category 图书分类
type Category string

const (
	CategoryFiction    Category = "Fiction"
	CategoryNonFiction Category = "Non-Fiction"
	CategorySelfHelp   Category = "Self-Help"
	CategoryComics     Category = "Comics"
	CategoryScience    Category = "Science"
	CategoryBiography  Category = "Biography"
	CategoryMystery    Category = "Mystery"
	CategoryRomance    Category = "Romance"
	CategoryFantasy    Category = "Fantasy"
	CategoryHistory    Category = "History"
	CategoryTechnology Category = "Technology"
	CategoryBusiness   Category = "Business"
)

// Categories 全部分类（顺序即前端展示顺序）
var Categories = []Category{
	CategoryFiction, CategoryNonFiction, CategorySelfHelp, CategoryComics,
	CategoryScience, CategoryBiography, CategoryMystery, CategoryRomance,
	CategoryFantasy, CategoryHistory, CategoryTechnology, CategoryBusiness,
}

// Valid 是否为合法分类
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

const DefaultLanguage = "English"

// Book 图书实体(聚合根)
// 1. 价格使用int64存储"分"
// 2. RatingAverage/ReviewCount由评论服务维护，目录写操作不得修改
// 3. Stock只能通过ReserveStock/ReleaseStock原子增减(下单及失败补偿)或目录编辑修改
type Book struct {
	ID              string
	Title           string
	Author          string
	Description     string
	ISBN            string // 可选，存在时唯一
	Publisher       string
	PublishedDate   *time.Time
	Language        string
	PageCount       int
	Category        Category
	Price           int64 // 售价(分)
	OriginalPrice   int64 // 原价(分)
	DiscountPercent int   // 0-100
	Stock           int
	Images          []string
	RatingAverage   float64
	ReviewCount     int
	Featured        bool
	SellerID        string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Attributes 创建图书时可由客户端提供的字段
type Attributes struct {
	Title           string
	Author          string
	Description     string
	ISBN            string
	Publisher       string
	PublishedDate   *time.Time
	Language        string
	PageCount       int
	Category        Category
	Price           int64
	OriginalPrice   int64
	DiscountPercent int
	Stock           int
	Images          []string
	Featured        bool
}

// NewBook 创建新图书(工厂方法)
// 校验失败返回对应的参数错误，ID由此处生成
func NewBook(attrs Attributes, sellerID string) (*Book, error) {
	if err := attrs.validate(); err != nil {
		return nil, err
	}

	language := attrs.Language
	if language == "" {
		language = DefaultLanguage
	}

	now := time.Now()
	return &Book{
		ID:              uuid.NewString(),
		Title:           strings.TrimSpace(attrs.Title),
		Author:          strings.TrimSpace(attrs.Author),
		Description:     attrs.Description,
		ISBN:            strings.TrimSpace(attrs.ISBN),
		Publisher:       attrs.Publisher,
		PublishedDate:   attrs.PublishedDate,
		Language:        language,
		PageCount:       attrs.PageCount,
		Category:        attrs.Category,
		Price:           attrs.Price,
		OriginalPrice:   attrs.OriginalPrice,
		DiscountPercent: attrs.DiscountPercent,
		Stock:           attrs.Stock,
		Images:          append([]string(nil), attrs.Images...),
		Featured:        attrs.Featured,
		SellerID:        sellerID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

func (a Attributes) validate() error {
	if strings.TrimSpace(a.Title) == "" {
		return ErrTitleRequired
	}
	if strings.TrimSpace(a.Author) == "" {
		return ErrAuthorRequired
	}
	if strings.TrimSpace(a.Description) == "" {
		return ErrDescriptionRequired
	}
	if !a.Category.Valid() {
		return ErrInvalidCategory
	}
	if a.ISBN != "" && !isValidISBN(a.ISBN) {
		return ErrInvalidISBN
	}
	return validateNumbers(a.Price, a.OriginalPrice, a.DiscountPercent, a.Stock, a.PageCount)
}

func validateNumbers(price, originalPrice int64, discount, stock, pageCount int) error {
	if price < 0 || originalPrice < 0 {
		return ErrInvalidPrice
	}
	if discount < 0 || discount > 100 {
		return ErrInvalidDiscount
	}
	if stock < 0 {
		return ErrInvalidStock
	}
	if pageCount < 0 {
		return ErrInvalidPageCount
	}
	return nil
}

// Patch 部分更新
// nil表示未提供；非nil即使为零值也会被应用（例如stock=0）
type Patch struct {
	Title           *string
	Author          *string
	Description     *string
	ISBN            *string
	Publisher       *string
	PublishedDate   *time.Time
	Language        *string
	PageCount       *int
	Category        *Category
	Price           *int64
	OriginalPrice   *int64
	DiscountPercent *int
	Stock           *int
	Images          *[]string
	Featured        *bool
}

// Apply 校验并应用部分更新
// 先在副本上校验，失败时实体保持不变
func (b *Book) Apply(p Patch) error {
	next := *b

	setText := func(dst *string, v *string) {
		if v != nil {
			*dst = strings.TrimSpace(*v)
		}
	}
	requireText := func(dst *string, v *string, required error) error {
		if v != nil && strings.TrimSpace(*v) == "" {
			return required
		}
		setText(dst, v)
		return nil
	}
	if err := requireText(&next.Title, p.Title, ErrTitleRequired); err != nil {
		return err
	}
	if err := requireText(&next.Author, p.Author, ErrAuthorRequired); err != nil {
		return err
	}
	if err := requireText(&next.Description, p.Description, ErrDescriptionRequired); err != nil {
		return err
	}
	setText(&next.ISBN, p.ISBN)
	setText(&next.Publisher, p.Publisher)
	setText(&next.Language, p.Language)
	if next.Language == "" {
		next.Language = DefaultLanguage
	}

	if next.ISBN != "" && !isValidISBN(next.ISBN) {
		return ErrInvalidISBN
	}
	if p.Category != nil {
		if !p.Category.Valid() {
			return ErrInvalidCategory
		}
		next.Category = *p.Category
	}
	if p.PublishedDate != nil {
		d := *p.PublishedDate
		next.PublishedDate = &d
	}
	if p.PageCount != nil {
		next.PageCount = *p.PageCount
	}
	if p.Price != nil {
		next.Price = *p.Price
	}
	if p.OriginalPrice != nil {
		next.OriginalPrice = *p.OriginalPrice
	}
	if p.DiscountPercent != nil {
		next.DiscountPercent = *p.DiscountPercent
	}
	if p.Stock != nil {
		next.Stock = *p.Stock
	}
	if p.Images != nil {
		next.Images = append([]string(nil), (*p.Images)...)
	}
	if p.Featured != nil {
		next.Featured = *p.Featured
	}

	if err := validateNumbers(next.Price, next.OriginalPrice, next.DiscountPercent, next.Stock, next.PageCount); err != nil {
		return err
	}

	next.UpdatedAt = time.Now()
	*b = next
	return nil
}

// CoverImage 第一张图片，没有则为空
func (b *Book) CoverImage() string {
	if len(b.Images) == 0 {
		return ""
	}
	return b.Images[0]
}

// HasStock 库存是否满足数量
func (b *Book) HasStock(quantity int) bool {
	return b.Stock >= quantity
}

var nonISBNChars = regexp.MustCompile(`[^0-9Xx]`)

// isValidISBN 校验ISBN格式
// 去除分隔符后为10位(末位可为X)或13位数字，不校验校验位
func isValidISBN(isbn string) bool {
	clean := nonISBNChars.ReplaceAllString(isbn, "")
	switch len(clean) {
	case 10:
		return !strings.ContainsAny(clean[:9], "Xx")
	case 13:
		return !strings.ContainsAny(clean, "Xx")
	default:
		return false
	}
}
