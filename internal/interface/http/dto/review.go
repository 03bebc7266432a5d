package dto

import (
	"time"

	"github.com/krishivsaini/BookBazaar/internal/domain/review"
)

type CreateReviewRequest struct {
	BookID  string `json:"bookId" binding:"required"`
	Rating  int    `json:"rating" example:"5"`
	Title   string `json:"title" binding:"max=100"`
	Comment string `json:"comment" example:"Loved it"`
}

type UpdateReviewRequest struct {
	Rating  *int    `json:"rating"`
	Title   *string `json:"title" binding:"omitempty,max=100"`
	Comment *string `json:"comment"`
}

func (r UpdateReviewRequest) ToPatch() review.Patch {
	return review.Patch{Rating: r.Rating, Title: r.Title, Comment: r.Comment}
}

type ReviewResponse struct {
	ID        string    `json:"id"`
	User      string    `json:"user"`
	UserName  string    `json:"userName"`
	Book      string    `json:"book"`
	Rating    int       `json:"rating"`
	Title     string    `json:"title,omitempty"`
	Comment   string    `json:"comment"`
	Verified  bool      `json:"verified"`
	Helpful   int       `json:"helpful"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func NewReviewResponse(r *review.Review) *ReviewResponse {
	return &ReviewResponse{
		ID:        r.ID,
		User:      r.UserID,
		UserName:  r.UserName,
		Book:      r.BookID,
		Rating:    r.Rating,
		Title:     r.Title,
		Comment:   r.Comment,
		Verified:  r.Verified,
		Helpful:   r.HelpfulCount,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func NewReviewResponses(reviews []*review.Review) []*ReviewResponse {
	out := make([]*ReviewResponse, len(reviews))
	for i, r := range reviews {
		out[i] = NewReviewResponse(r)
	}
	return out
}
