package candidates

import (
	"math"
	"testing"
)

func TestWeightedScore(t *testing.T) {
	weights := map[string]float64{
		"Technical":  0.40,
		"Cognitive":  0.20,
		"Values":     0.20,
		"Behavioral": 0.20,
	}
	scores := map[string]float64{
		"Technical":  80,
		"Cognitive":  90,
		"Values":     70,
		"Behavioral": 60,
	}
	got := WeightedScore(scores, weights)
	want := 0.40*80 + 0.20*90 + 0.20*70 + 0.20*60
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("WeightedScore = %v, want %v", got, want)
	}
}

func TestWeightedScoreMissingCategoryContributesZero(t *testing.T) {
	weights := map[string]float64{"Technical": 0.6, "Values": 0.4}
	scores := map[string]float64{"Technical": 50}
	if got := WeightedScore(scores, weights); math.Abs(got-30) > 1e-9 {
		t.Fatalf("WeightedScore = %v, want 30", got)
	}
}

func TestWeightedScoreIgnoresUnweightedCategories(t *testing.T) {
	weights := map[string]float64{"Technical": 1.0}
	scores := map[string]float64{"Technical": 40, "Astrology": 100}
	if got := WeightedScore(scores, weights); math.Abs(got-40) > 1e-9 {
		t.Fatalf("WeightedScore = %v, want 40", got)
	}
}

func TestWeightedScoreEmptyInputs(t *testing.T) {
	if got := WeightedScore(nil, nil); got != 0 {
		t.Fatalf("WeightedScore(nil, nil) = %v, want 0", got)
	}
}
