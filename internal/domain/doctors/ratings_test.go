package doctors

import (
	"math"
	"testing"
)

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	if s.Average != 0 {
		t.Errorf("expected average 0 for no reviews, got %v", s.Average)
	}
	if s.Total != 0 {
		t.Errorf("expected total 0, got %d", s.Total)
	}
	for star := 1; star <= 5; star++ {
		if s.Distribution[star] != 0 {
			t.Errorf("expected empty bucket for %d stars, got %d", star, s.Distribution[star])
		}
	}
}

func TestSummarizeAverageAndBuckets(t *testing.T) {
	reviews := []Review{
		{Rating: 5}, {Rating: 5}, {Rating: 4}, {Rating: 3}, {Rating: 1},
	}
	s := Summarize(reviews)

	if s.Total != 5 {
		t.Fatalf("expected total 5, got %d", s.Total)
	}
	want := float64(5+5+4+3+1) / 5
	if math.Abs(s.Average-want) > 1e-9 {
		t.Errorf("expected average %v, got %v", want, s.Average)
	}

	if s.Distribution[5] != 2 || s.Distribution[4] != 1 || s.Distribution[3] != 1 || s.Distribution[1] != 1 {
		t.Errorf("unexpected distribution: %v", s.Distribution)
	}
	if s.Distribution[2] != 0 {
		t.Errorf("expected empty 2-star bucket, got %d", s.Distribution[2])
	}

	// Bucket counts must account for every review.
	total := 0
	for star := 1; star <= 5; star++ {
		total += s.Distribution[star]
	}
	if total != s.Total {
		t.Errorf("distribution sums to %d, want %d", total, s.Total)
	}
}

func TestSummarizeSingleReview(t *testing.T) {
	s := Summarize([]Review{{Rating: 3}})
	if s.Average != 3 || s.Total != 1 || s.Distribution[3] != 1 {
		t.Errorf("unexpected summary: %+v", s)
	}
}

func TestSummarizeOutOfRangeRating(t *testing.T) {
	s := Summarize([]Review{{Rating: 7}, {Rating: 5}})
	if s.Total != 2 {
		t.Errorf("expected total 2, got %d", s.Total)
	}
	if s.Distribution[5] != 1 {
		t.Errorf("expected one 5-star, got %d", s.Distribution[5])
	}
	// The out-of-range rating lands in no bucket.
	bucketed := 0
	for star := 1; star <= 5; star++ {
		bucketed += s.Distribution[star]
	}
	if bucketed != 1 {
		t.Errorf("expected 1 bucketed review, got %d", bucketed)
	}
}
