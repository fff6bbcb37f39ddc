package workflow

import "strings"

// Rating is the ordinal quality scale used by the Evaluator pattern. The
// total order is RatingPoor < RatingFair < RatingGood < RatingExcellent.
type Rating int

// Ratings from worst to best. The zero value is RatingPoor.
const (
	RatingPoor Rating = iota
	RatingFair
	RatingGood
	RatingExcellent
)

var ratingNames = [...]string{"POOR", "FAIR", "GOOD", "EXCELLENT"}

// String returns the canonical uppercase name of the rating.
func (r Rating) String() string {
	if r < RatingPoor || r > RatingExcellent {
		return "POOR"
	}
	return ratingNames[r]
}

// ParseRating parses a canonical rating name, case-insensitively. The second
// return value reports whether the input matched a known rating.
func ParseRating(s string) (Rating, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "POOR":
		return RatingPoor, true
	case "FAIR":
		return RatingFair, true
	case "GOOD":
		return RatingGood, true
	case "EXCELLENT":
		return RatingExcellent, true
	default:
		return RatingPoor, false
	}
}

// ExtractRating scans free-form evaluator output for a rating keyword and
// returns the one that appears first. Output mentioning no keyword at all
// parses as RatingPoor, which keeps the refinement loop going rather than
// accepting an unrated candidate.
func ExtractRating(text string) Rating {
	upper := strings.ToUpper(text)
	best := RatingPoor
	bestIdx := -1
	for i, name := range ratingNames {
		idx := strings.Index(upper, name)
		if idx < 0 {
			continue
		}
		if bestIdx < 0 || idx < bestIdx {
			best = Rating(i)
			bestIdx = idx
		}
	}
	return best
}
