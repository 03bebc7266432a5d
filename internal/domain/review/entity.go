package review

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	MinRating = 1
	MaxRating = 5
)

// Review 图书评论，(UserID, BookID)唯一
type Review struct {
	ID           string
	UserID       string
	UserName     string // 冗余存储用于展示
	BookID       string
	Rating       int
	Title        string
	Comment      string
	Verified     bool // 用户存在包含此书的已送达订单
	HelpfulCount int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewReview 创建评论
func NewReview(userID, userName, bookID string, rating int, title, comment string, verified bool) (*Review, error) {
	if err := validateRating(rating); err != nil {
		return nil, err
	}
	if strings.TrimSpace(comment) == "" {
		return nil, ErrCommentRequired
	}

	now := time.Now()
	return &Review{
		ID:        uuid.NewString(),
		UserID:    userID,
		UserName:  userName,
		BookID:    bookID,
		Rating:    rating,
		Title:     strings.TrimSpace(title),
		Comment:   strings.TrimSpace(comment),
		Verified:  verified,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Patch 部分更新，nil表示不修改
type Patch struct {
	Rating  *int
	Title   *string
	Comment *string
}

// Apply 校验并应用更新
func (r *Review) Apply(p Patch) error {
	if p.Rating != nil {
		if err := validateRating(*p.Rating); err != nil {
			return err
		}
	}
	if p.Comment != nil && strings.TrimSpace(*p.Comment) == "" {
		return ErrCommentRequired
	}

	if p.Rating != nil {
		r.Rating = *p.Rating
	}
	if p.Title != nil {
		r.Title = strings.TrimSpace(*p.Title)
	}
	if p.Comment != nil {
		r.Comment = strings.TrimSpace(*p.Comment)
	}
	r.UpdatedAt = time.Now()
	return nil
}

func (r *Review) IsOwnedBy(userID string) bool {
	return r.UserID == userID
}

func validateRating(rating int) error {
	if rating < MinRating || rating > MaxRating {
		return ErrInvalidRating
	}
	return nil
}

// Stats 某本书全部评论的汇总
type Stats struct {
	Count int
	Sum   int64
}

// Average 算术平均分，无评论为0；展示时再保留两位小数
func (s Stats) Average() float64 {
	if s.Count == 0 {
		return 0
	}
	return float64(s.Sum) / float64(s.Count)
}

// Aggregate 由评分列表计算汇总（内存实现与测试使用）
func Aggregate(ratings []int) Stats {
	s := Stats{Count: len(ratings)}
	for _, r := range ratings {
		s.Sum += int64(r)
	}
	return s
}
