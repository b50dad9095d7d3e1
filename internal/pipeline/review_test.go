package pipeline

import (
	"testing"

	"github.com/FunnyFinger/terrarium-index-sub002/internal"
	"github.com/FunnyFinger/terrarium-index-sub002/internal/config"
)

func reviewConfig() config.Config {
	return config.Config{
		ReviewOKThreshold:  0.90,
		ReviewThreshold:    0.72,
		ReviewGapThreshold: 0.08,
	}
}

func TestReviewerFlagsLikelyTypo(t *testing.T) {
	records := []*internal.PlantRecord{
		{Name: "Chinese Money Plant", ScientificName: "Pilea peperomioides", FileName: "pilea.json"},
		{Name: "Pilea peperomioides plant", FileName: "pilea-dup.json"},
	}

	pairs := NewReviewer(reviewConfig(), records).Pairs()

	if len(pairs) != 1 {
		t.Fatalf("pairs = %d", len(pairs))
	}
	pair := pairs[0]
	if pair.Status != internal.ReviewLikely {
		t.Fatalf("status %s score %v", pair.Status, pair.Score)
	}
	if pair.LeftKey == pair.RightKey {
		t.Fatal("same-bucket pair reported")
	}
}

func TestReviewerFlagsPossibleMisspelling(t *testing.T) {
	records := []*internal.PlantRecord{
		{Name: "Anubias", ScientificName: "Anubias barteri", FileName: "anubias.json"},
		{Name: "Anubias", ScientificName: "Anubias bartery", FileName: "anubias-typo.json"},
	}

	pairs := NewReviewer(reviewConfig(), records).Pairs()

	if len(pairs) != 1 {
		t.Fatalf("pairs = %d", len(pairs))
	}
	if pairs[0].Status != internal.ReviewPossible {
		t.Fatalf("status %s score %v", pairs[0].Status, pairs[0].Score)
	}
}

func TestReviewerSkipsSameBucket(t *testing.T) {
	// Same canonical key: the exact grouper already handles these.
	records := []*internal.PlantRecord{
		{Name: "Monstera", ScientificName: "Monstera deliciosa", FileName: "m1.json"},
		{Name: "Monstera Deliciosa", ScientificName: "monstera deliciosa", FileName: "m2.json"},
	}

	if pairs := NewReviewer(reviewConfig(), records).Pairs(); len(pairs) != 0 {
		t.Fatalf("unexpected pairs: %+v", pairs)
	}
}

func TestReviewerIgnoresUnrelatedNames(t *testing.T) {
	records := []*internal.PlantRecord{
		{Name: "Pilea", ScientificName: "Pilea peperomioides", FileName: "pilea.json"},
		{Name: "Riccia", ScientificName: "Riccia fluitans", FileName: "riccia.json"},
	}

	if pairs := NewReviewer(reviewConfig(), records).Pairs(); len(pairs) != 0 {
		t.Fatalf("unexpected pairs: %+v", pairs)
	}
}

func TestScoreNamesBlendsDiceAndTokenOverlap(t *testing.T) {
	left := "anubias barteri"
	right := "anubias bartery"
	score := scoreNames(left, right, []string{"anubias", "barteri"}, []string{"anubias", "bartery"})
	if score <= 0.72 || score >= 0.90 {
		t.Fatalf("score %v out of expected band", score)
	}

	if identical := scoreNames(left, left, []string{"anubias", "barteri"}, []string{"anubias", "barteri"}); identical < 0.99 {
		t.Fatalf("identical names score %v", identical)
	}
}
