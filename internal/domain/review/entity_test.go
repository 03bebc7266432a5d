package review

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestNewReview_Validation(t *testing.T) {
	_, err := NewReview("u1", "Ann", "b1", 0, "", "great", false)
	assert.ErrorIs(t, err, ErrInvalidRating)

	_, err = NewReview("u1", "Ann", "b1", 6, "", "great", false)
	assert.ErrorIs(t, err, ErrInvalidRating)

	_, err = NewReview("u1", "Ann", "b1", 4, "", "   ", false)
	assert.ErrorIs(t, err, ErrCommentRequired)

	r, err := NewReview("u1", "Ann", "b1", 4, " Nice ", "great", true)
	require.NoError(t, err)
	assert.Equal(t, "Nice", r.Title)
	assert.True(t, r.Verified)
	assert.Zero(t, r.HelpfulCount)
}

func TestReview_Apply(t *testing.T) {
	r, err := NewReview("u1", "Ann", "b1", 4, "t", "c", false)
	require.NoError(t, err)

	bad := 9
	assert.ErrorIs(t, r.Apply(Patch{Rating: &bad}), ErrInvalidRating)
	assert.Equal(t, 4, r.Rating)

	rating, comment := 2, "changed my mind"
	require.NoError(t, r.Apply(Patch{Rating: &rating, Comment: &comment}))
	assert.Equal(t, 2, r.Rating)
	assert.Equal(t, "changed my mind", r.Comment)
	assert.Equal(t, "t", r.Title)
}

func TestStats_Average(t *testing.T) {
	assert.Equal(t, 0.0, Stats{}.Average())
	assert.Equal(t, 4.0, Aggregate([]int{4}).Average())
	assert.Equal(t, 13.0/3, Aggregate([]int{4, 4, 5}).Average())
	assert.Equal(t, 11.0/3, Aggregate([]int{3, 3, 5}).Average())
}

// TestStats_AverageBounds 平均分始终在[1,5]内且等于算术平均
func TestStats_AverageBounds(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ratings := rapid.SliceOfN(rapid.IntRange(MinRating, MaxRating), 1, 200).Draw(t, "ratings")

		avg := Aggregate(ratings).Average()
		if avg < MinRating || avg > MaxRating {
			t.Fatalf("average %v out of range", avg)
		}

		var sum int
		for _, r := range ratings {
			sum += r
		}
		mean := float64(sum) / float64(len(ratings))
		if avg != mean {
			t.Fatalf("average %v != mean %v", avg, mean)
		}
	})
}
