package doctors

// Summary is the display aggregation of a fetched review list. It is
// recomputed from scratch on every fetch and is not authoritative: the
// doctor's official rating arrives separately in PublicProfile.
type Summary struct {
	Average      float64
	Total        int
	Distribution [6]int // index 1..5 by star; index 0 unused
}

// Summarize folds a review list into a Summary. Ratings outside 1..5 are
// counted toward the total and average but land in no bucket.
func Summarize(reviews []Review) Summary {
	var s Summary
	if len(reviews) == 0 {
		return s
	}

	sum := 0
	for _, r := range reviews {
		sum += r.Rating
		if r.Rating >= 1 && r.Rating <= 5 {
			s.Distribution[r.Rating]++
		}
	}
	s.Total = len(reviews)
	s.Average = float64(sum) / float64(len(reviews))
	return s
}
