package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRatingOrder(t *testing.T) {
	assert.True(t, RatingPoor < RatingFair)
	assert.True(t, RatingFair < RatingGood)
	assert.True(t, RatingGood < RatingExcellent)
}

func TestParseRating(t *testing.T) {
	r, ok := ParseRating("excellent")
	assert.True(t, ok)
	assert.Equal(t, RatingExcellent, r)

	r, ok = ParseRating("  Fair ")
	assert.True(t, ok)
	assert.Equal(t, RatingFair, r)

	_, ok = ParseRating("stellar")
	assert.False(t, ok)
}

func TestExtractRating(t *testing.T) {
	tests := []struct {
		text string
		want Rating
	}{
		{"Rating: EXCELLENT. Nothing to change.", RatingExcellent},
		{"I'd call this good, bordering on excellent.", RatingGood},
		{"FAIR at best", RatingFair},
		{"no keyword here", RatingPoor},
		{"", RatingPoor},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ExtractRating(tt.text), "text: %q", tt.text)
	}
}

func TestRatingString(t *testing.T) {
	assert.Equal(t, "EXCELLENT", RatingExcellent.String())
	assert.Equal(t, "POOR", RatingPoor.String())
	assert.Equal(t, "POOR", Rating(42).String())
}
