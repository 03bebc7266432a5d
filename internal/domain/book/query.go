package book

import (
	"strings"
)

// Sort 列表排序方式
type Sort string

const (
	SortLatest    Sort = "latest" // createdAt desc（默认）
	SortPriceAsc  Sort = "price-asc"
	SortPriceDesc Sort = "price-desc"
	SortRating    Sort = "rating"

	sortRatingDesc Sort = "rating-desc" // SortRating的别名
)

const (
	DefaultPageSize     = 12
	MaxPageSize         = 100
	DefaultFeaturedSize = 8
	MaxFeaturedSize     = 50
)

// ListParams 列表查询参数
// 所有过滤条件为AND关系，Categories内部为OR
type ListParams struct {
	Categories []Category
	MinPrice   *int64 // 分，包含
	MaxPrice   *int64 // 分，包含
	MinRating  *float64
	Search     string // 标题/作者/描述/分类，忽略大小写
	Author     string // 作者子串，忽略大小写
	Sort       Sort
	Page       int
	PageSize   int
}

// Normalize 填充默认值并截断越界参数
func (p ListParams) Normalize() ListParams {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
	switch p.Sort {
	case sortRatingDesc:
		p.Sort = SortRating
	case SortLatest, SortPriceAsc, SortPriceDesc, SortRating:
	default:
		p.Sort = SortLatest
	}
	p.Search = strings.TrimSpace(p.Search)
	p.Author = strings.TrimSpace(p.Author)
	return p
}

// Offset 分页偏移
func (p ListParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// Matches 判断图书是否满足过滤条件（内存实现使用，语义与SQL/Mongo查询一致）
func (p ListParams) Matches(b *Book) bool {
	if len(p.Categories) > 0 {
		found := false
		for _, c := range p.Categories {
			if b.Category == c {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if p.MinPrice != nil && b.Price < *p.MinPrice {
		return false
	}
	if p.MaxPrice != nil && b.Price > *p.MaxPrice {
		return false
	}
	if p.MinRating != nil && b.RatingAverage < *p.MinRating {
		return false
	}
	if p.Author != "" && !containsFold(b.Author, p.Author) {
		return false
	}
	if p.Search != "" {
		if !containsFold(b.Title, p.Search) &&
			!containsFold(b.Author, p.Search) &&
			!containsFold(b.Description, p.Search) &&
			!containsFold(string(b.Category), p.Search) {
			return false
		}
	}
	return true
}

// Less 排序比较函数，同值按ID升序保证分页稳定
func (s Sort) Less(a, b *Book) bool {
	switch s {
	case SortPriceAsc:
		if a.Price != b.Price {
			return a.Price < b.Price
		}
	case SortPriceDesc:
		if a.Price != b.Price {
			return a.Price > b.Price
		}
	case SortRating:
		if a.RatingAverage != b.RatingAverage {
			return a.RatingAverage > b.RatingAverage
		}
	default:
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
	}
	return a.ID < b.ID
}

// ClampFeaturedLimit 精选图书数量
func ClampFeaturedLimit(limit int) int {
	if limit < 1 {
		return DefaultFeaturedSize
	}
	if limit > MaxFeaturedSize {
		return MaxFeaturedSize
	}
	return limit
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
