package catalog

import (
	"sort"
	"time"
)

type Review struct {
	ReviewID     string `json:"reviewId"`
	CustomerName string `json:"customerName"`
	Rating       int    `json:"rating"`
	Title        string `json:"title"`
	Comment      string `json:"comment"`
	Date         string `json:"date"`
	Verified     bool   `json:"verified"`
	Helpful      int    `json:"helpful"`
}

type ReviewSort string

const (
	SortNewest  ReviewSort = "newest"
	SortOldest  ReviewSort = "oldest"
	SortHighest ReviewSort = "highest"
	SortLowest  ReviewSort = "lowest"
	SortHelpful ReviewSort = "helpful"
)

// ParseReviewSort falls back to newest for unknown values.
func ParseReviewSort(s string) ReviewSort {
	switch ReviewSort(s) {
	case SortOldest, SortHighest, SortLowest, SortHelpful:
		return ReviewSort(s)
	default:
		return SortNewest
	}
}

// SortReviews returns a sorted copy; the input is left untouched.
func SortReviews(reviews []Review, by ReviewSort) []Review {
	out := append([]Review(nil), reviews...)

	var less func(a, b Review) bool
	switch by {
	case SortOldest:
		less = func(a, b Review) bool { return reviewTime(a).Before(reviewTime(b)) }
	case SortHighest:
		less = func(a, b Review) bool { return a.Rating > b.Rating }
	case SortLowest:
		less = func(a, b Review) bool { return a.Rating < b.Rating }
	case SortHelpful:
		less = func(a, b Review) bool { return a.Helpful > b.Helpful }
	default:
		less = func(a, b Review) bool { return reviewTime(a).After(reviewTime(b)) }
	}

	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

// AverageRating is 0 for a product without reviews.
func AverageRating(reviews []Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	return float64(sum) / float64(len(reviews))
}

func reviewTime(r Review) time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, r.Date); err == nil {
			return t
		}
	}
	return time.Time{}
}
