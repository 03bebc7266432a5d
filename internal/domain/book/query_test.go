package book

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestListParams_Normalize(t *testing.T) {
	p := ListParams{Page: -1, PageSize: 500, Sort: "bogus", Search: "  go "}.Normalize()

	assert.Equal(t, 1, p.Page)
	assert.Equal(t, MaxPageSize, p.PageSize)
	assert.Equal(t, SortLatest, p.Sort)
	assert.Equal(t, "go", p.Search)

	p = ListParams{}.Normalize()
	assert.Equal(t, DefaultPageSize, p.PageSize)
	assert.Equal(t, 0, p.Offset())
	assert.Equal(t, 24, ListParams{Page: 3, PageSize: 12}.Offset())

	assert.Equal(t, SortRating, ListParams{Sort: "rating-desc"}.Normalize().Sort)
	assert.Equal(t, SortRating, ListParams{Sort: SortRating}.Normalize().Sort)
	assert.Equal(t, SortPriceDesc, ListParams{Sort: SortPriceDesc}.Normalize().Sort)
}

func TestListParams_Matches(t *testing.T) {
	b := &Book{
		Title: "Dune", Author: "Frank Herbert", Description: "Desert planet",
		Category: CategoryFantasy, Price: 1500, RatingAverage: 4.2,
	}

	min, max := int64(1500), int64(1500)
	rating := 4.0
	high := 4.5

	assert.True(t, ListParams{}.Matches(b))
	assert.True(t, ListParams{Categories: []Category{CategoryFiction, CategoryFantasy}}.Matches(b))
	assert.False(t, ListParams{Categories: []Category{CategoryFiction}}.Matches(b))
	assert.True(t, ListParams{MinPrice: &min, MaxPrice: &max}.Matches(b))
	assert.True(t, ListParams{MinRating: &rating}.Matches(b))
	assert.False(t, ListParams{MinRating: &high}.Matches(b))
	assert.True(t, ListParams{Search: "DESERT"}.Matches(b))
	assert.True(t, ListParams{Search: "fantasy"}.Matches(b))
	assert.False(t, ListParams{Search: "ocean"}.Matches(b))
	assert.True(t, ListParams{Author: "herb"}.Matches(b))
	assert.False(t, ListParams{Author: "tolkien"}.Matches(b))
}

func TestSort_Less_TieBreakOnID(t *testing.T) {
	now := time.Now()
	books := []*Book{
		{ID: "c", Price: 100, CreatedAt: now},
		{ID: "a", Price: 100, CreatedAt: now},
		{ID: "b", Price: 50, CreatedAt: now.Add(time.Second)},
	}

	sort.SliceStable(books, func(i, j int) bool { return SortPriceAsc.Less(books[i], books[j]) })
	assert.Equal(t, []string{"b", "a", "c"}, ids(books))

	sort.SliceStable(books, func(i, j int) bool { return SortPriceDesc.Less(books[i], books[j]) })
	assert.Equal(t, []string{"a", "c", "b"}, ids(books))

	sort.SliceStable(books, func(i, j int) bool { return SortLatest.Less(books[i], books[j]) })
	assert.Equal(t, []string{"b", "a", "c"}, ids(books))
}

func TestClampFeaturedLimit(t *testing.T) {
	assert.Equal(t, DefaultFeaturedSize, ClampFeaturedLimit(0))
	assert.Equal(t, MaxFeaturedSize, ClampFeaturedLimit(1000))
	assert.Equal(t, 3, ClampFeaturedLimit(3))
}

func ids(books []*Book) []string {
	out := make([]string, len(books))
	for i, b := range books {
		out[i] = b.ID
	}
	return out
}
