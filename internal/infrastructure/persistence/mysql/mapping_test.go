package mysql

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/krishivsaini/BookBazaar/internal/domain/book"
	"github.com/krishivsaini/BookBazaar/internal/domain/cart"
)

func TestLikePattern_EscapesWildcards(t *testing.T) {
	assert.Equal(t, "%harry%", likePattern("harry"))
	assert.Equal(t, `%50\%\_off%`, likePattern("50%_off"))
	assert.Equal(t, `%a\\b%`, likePattern(`a\b`))
}

func TestIsDuplicateError(t *testing.T) {
	assert.False(t, isDuplicateError(nil))
	assert.True(t, isDuplicateError(gorm.ErrDuplicatedKey))
	assert.True(t, isDuplicateError(errors.New("Error 1062: Duplicate entry 'a@b.c' for key 'users.email'")))
	assert.False(t, isDuplicateError(errors.New("connection refused")))
}

// TestBookModel_EmptyISBNIsNull 空ISBN存为NULL，多本无ISBN的图书不会触发唯一索引冲突
func TestBookModel_EmptyISBNIsNull(t *testing.T) {
	b, err := book.NewBook(book.Attributes{
		Title: "T", Author: "A", Description: "D", Category: book.CategoryFiction, Price: 100,
	}, "seller")
	require.NoError(t, err)

	m := toBookModel(b)
	assert.Nil(t, m.ISBN)

	back := toBookEntity(m)
	assert.Equal(t, "", back.ISBN)
	assert.NotNil(t, back.Images)
}

func TestOrderClause(t *testing.T) {
	assert.Equal(t, "price ASC", orderClause(book.SortPriceAsc))
	assert.Equal(t, "price DESC", orderClause(book.SortPriceDesc))
	assert.Equal(t, "rating_average DESC", orderClause(book.SortRating))
	assert.Equal(t, "created_at DESC", orderClause(book.SortLatest))
}

func TestCartModel_KeepsItemOrder(t *testing.T) {
	c := cart.NewCart("u1")
	require.NoError(t, c.AddItem("b2", 1, 100))
	require.NoError(t, c.AddItem("b1", 2, 200))
	c.Recalculate()

	m := toCartModel(c)
	require.Len(t, m.Items, 2)
	assert.Equal(t, 0, m.Items[0].Position)
	assert.Equal(t, "b2", m.Items[0].BookID)

	back := toCartEntity(m)
	assert.Equal(t, c.Items, back.Items)
	assert.Equal(t, int64(500), back.TotalPrice)
}
