package book

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validAttrs() Attributes {
	return Attributes{
		Title:       "The Go Programming Language",
		Author:      "Alan Donovan",
		Description: "Go from the ground up",
		ISBN:        "978-0134190440",
		Category:    CategoryTechnology,
		Price:       3999,
		Stock:       10,
	}
}

func TestNewBook(t *testing.T) {
	b, err := NewBook(validAttrs(), "seller-1")
	require.NoError(t, err)

	assert.NotEmpty(t, b.ID)
	assert.Equal(t, DefaultLanguage, b.Language)
	assert.Equal(t, "seller-1", b.SellerID)
	assert.Zero(t, b.RatingAverage)
	assert.Zero(t, b.ReviewCount)
}

func TestNewBook_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Attributes)
		want   error
	}{
		{"missing title", func(a *Attributes) { a.Title = "  " }, ErrTitleRequired},
		{"missing author", func(a *Attributes) { a.Author = "" }, ErrAuthorRequired},
		{"missing description", func(a *Attributes) { a.Description = "" }, ErrDescriptionRequired},
		{"unknown category", func(a *Attributes) { a.Category = "Poetry" }, ErrInvalidCategory},
		{"negative price", func(a *Attributes) { a.Price = -1 }, ErrInvalidPrice},
		{"discount over 100", func(a *Attributes) { a.DiscountPercent = 101 }, ErrInvalidDiscount},
		{"negative stock", func(a *Attributes) { a.Stock = -1 }, ErrInvalidStock},
		{"bad isbn", func(a *Attributes) { a.ISBN = "12345" }, ErrInvalidISBN},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attrs := validAttrs()
			tt.mutate(&attrs)
			_, err := NewBook(attrs, "seller-1")
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestBook_Apply_ZeroValuesAreApplied(t *testing.T) {
	b, err := NewBook(validAttrs(), "seller-1")
	require.NoError(t, err)

	zeroStock, zeroPrice := 0, int64(0)
	require.NoError(t, b.Apply(Patch{Stock: &zeroStock, Price: &zeroPrice}))

	assert.Equal(t, 0, b.Stock)
	assert.Equal(t, int64(0), b.Price)
	assert.Equal(t, "The Go Programming Language", b.Title)
}

func TestBook_Apply_RejectsAndKeepsState(t *testing.T) {
	b, err := NewBook(validAttrs(), "seller-1")
	require.NoError(t, err)
	before := *b

	empty := ""
	assert.ErrorIs(t, b.Apply(Patch{Title: &empty}), ErrTitleRequired)

	stock, discount := 3, 150
	assert.ErrorIs(t, b.Apply(Patch{Stock: &stock, DiscountPercent: &discount}), ErrInvalidDiscount)

	assert.Equal(t, before.Title, b.Title)
	assert.Equal(t, before.Stock, b.Stock)
}

func TestBook_Apply_OptionalText(t *testing.T) {
	b, err := NewBook(validAttrs(), "seller-1")
	require.NoError(t, err)

	publisher, language, isbn := "  O'Reilly ", "French", ""
	require.NoError(t, b.Apply(Patch{Publisher: &publisher, Language: &language, ISBN: &isbn}))
	assert.Equal(t, "O'Reilly", b.Publisher)
	assert.Equal(t, "French", b.Language)
	assert.Empty(t, b.ISBN)

	// 清空语言回到默认值
	blank := " "
	require.NoError(t, b.Apply(Patch{Language: &blank, Publisher: &blank}))
	assert.Equal(t, DefaultLanguage, b.Language)
	assert.Empty(t, b.Publisher)
}

func TestBook_Apply_DoesNotTouchRating(t *testing.T) {
	b, err := NewBook(validAttrs(), "seller-1")
	require.NoError(t, err)
	b.RatingAverage, b.ReviewCount = 4.5, 2

	featured := true
	images := []string{"a.jpg", "b.jpg"}
	published := time.Date(2015, 10, 26, 0, 0, 0, 0, time.UTC)
	require.NoError(t, b.Apply(Patch{Featured: &featured, Images: &images, PublishedDate: &published}))

	assert.Equal(t, 4.5, b.RatingAverage)
	assert.Equal(t, 2, b.ReviewCount)
	assert.True(t, b.Featured)
	assert.Equal(t, "a.jpg", b.CoverImage())
	assert.Equal(t, published, *b.PublishedDate)
}

func TestIsValidISBN(t *testing.T) {
	assert.True(t, isValidISBN("978-7-115-42802-8"))
	assert.True(t, isValidISBN("043942089X"))
	assert.False(t, isValidISBN("X434942089"))
	assert.False(t, isValidISBN("97871154280"))
}
