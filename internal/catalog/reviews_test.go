package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ids(reviews []Review) []string {
	out := make([]string, len(reviews))
	for i, r := range reviews {
		out[i] = r.ReviewID
	}
	return out
}

func TestSortReviews(t *testing.T) {
	reviews := []Review{
		{ReviewID: "a", Rating: 3, Helpful: 1, Date: "2024-01-10"},
		{ReviewID: "b", Rating: 5, Helpful: 7, Date: "2023-06-01"},
		{ReviewID: "c", Rating: 1, Helpful: 4, Date: "2024-05-20T10:00:00Z"},
	}

	assert.Equal(t, []string{"c", "a", "b"}, ids(SortReviews(reviews, SortNewest)))
	assert.Equal(t, []string{"b", "a", "c"}, ids(SortReviews(reviews, SortOldest)))
	assert.Equal(t, []string{"b", "a", "c"}, ids(SortReviews(reviews, SortHighest)))
	assert.Equal(t, []string{"c", "a", "b"}, ids(SortReviews(reviews, SortLowest)))
	assert.Equal(t, []string{"b", "c", "a"}, ids(SortReviews(reviews, SortHelpful)))

	assert.Equal(t, []string{"a", "b", "c"}, ids(reviews), "input untouched")
}

func TestAverageRating(t *testing.T) {
	assert.Zero(t, AverageRating(nil))
	assert.InDelta(t, 3.0, AverageRating([]Review{{Rating: 5}, {Rating: 1}}), 1e-9)
}

func TestParseReviewSort(t *testing.T) {
	assert.Equal(t, SortHelpful, ParseReviewSort("helpful"))
	assert.Equal(t, SortNewest, ParseReviewSort("random"))
}

func TestLandingContent_DeduplicatesTiles(t *testing.T) {
	landing := LandingContent()

	seen := map[string]bool{}
	for _, tile := range landing.Carousel {
		assert.False(t, seen[tile.Href], tile.Href)
		seen[tile.Href] = true
	}
	assert.Len(t, landing.FAQ, 6)
	assert.Len(t, DefaultCategories(), len(landing.Carousel))
}
