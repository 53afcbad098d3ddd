package personas

import (
	"math"
	"testing"
)

func TestValidateCategoryNames(t *testing.T) {
	cases := []struct {
		name  string
		names []string
		want  bool
	}{
		{"two valid", []string{"Technical", "Cognitive"}, true},
		{"trimmed valid", []string{" Technical ", "Values"}, true},
		{"too few", []string{"Technical"}, false},
		{"empty name", []string{"Technical", "   "}, false},
		{"none", nil, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ValidateCategoryNames(tc.names, DefaultMinCategories, DefaultMaxCategories)
			if got != tc.want {
				t.Fatalf("ValidateCategoryNames(%v) = %v, want %v", tc.names, got, tc.want)
			}
		})
	}
}

func TestValidateCategoryNames_TooMany(t *testing.T) {
	names := make([]string, DefaultMaxCategories+1)
	for i := range names {
		names[i] = "Cat"
	}
	if ValidateCategoryNames(names, DefaultMinCategories, DefaultMaxCategories) {
		t.Fatal("expected rejection above the maximum category count")
	}
}

func TestValidateWeightsRange(t *testing.T) {
	if !ValidateWeightsRange(map[string]float64{"A": 0.0, "B": 1.0}) {
		t.Fatal("boundary values must be accepted")
	}
	if ValidateWeightsRange(map[string]float64{"A": -0.1}) {
		t.Fatal("negative weight must be rejected")
	}
	if ValidateWeightsRange(map[string]float64{"A": 1.1}) {
		t.Fatal("weight above one must be rejected")
	}
}

func TestValidateWeightsSum(t *testing.T) {
	if !ValidateWeightsSum(map[string]float64{"A": 0.5, "B": 0.5}, SumTolerance) {
		t.Fatal("exact sum must pass")
	}
	if !ValidateWeightsSum(map[string]float64{"A": 0.3, "B": 0.7 + 5e-7}, SumTolerance) {
		t.Fatal("sum within tolerance must pass")
	}
	if ValidateWeightsSum(map[string]float64{"A": 0.6, "B": 0.5}, SumTolerance) {
		t.Fatal("sum outside tolerance must fail")
	}
}

func TestNormalizeWeights(t *testing.T) {
	got := NormalizeWeights(map[string]float64{"Technical": 0.9, "Cognitive": 0.9})
	if math.Abs(got["Technical"]-0.5) > SumTolerance || math.Abs(got["Cognitive"]-0.5) > SumTolerance {
		t.Fatalf("unexpected normalization: %v", got)
	}
}

func TestNormalizeWeights_FixedPoint(t *testing.T) {
	in := map[string]float64{"A": 0.25, "B": 0.75}
	got := NormalizeWeights(in)
	for k, v := range in {
		if math.Abs(got[k]-v) > SumTolerance {
			t.Fatalf("normalizing a normalized map changed %s: %v -> %v", k, v, got[k])
		}
	}
}

func TestNormalizeWeights_ZeroSumNoOp(t *testing.T) {
	in := map[string]float64{"A": 0.0, "B": 0.0}
	got := NormalizeWeights(in)
	if got["A"] != 0.0 || got["B"] != 0.0 {
		t.Fatalf("zero-sum map must be returned unchanged, got %v", got)
	}
}

func TestDetectOutOfInterval(t *testing.T) {
	weights := map[string]float64{"Technical": 0.85, "Cognitive": 0.10, "Values": 0.05}
	intervals := map[string]Interval{
		"Technical": {Min: 0.30, Max: 0.55},
		"Cognitive": {Min: 0.05, Max: 0.40},
	}
	got := DetectOutOfInterval(weights, intervals)
	if len(got) != 1 || got[0] != "Technical" {
		t.Fatalf("expected [Technical], got %v", got)
	}
}

func TestDetectOutOfInterval_NoIntervalNeverFlagged(t *testing.T) {
	got := DetectOutOfInterval(map[string]float64{"Values": 0.99}, nil)
	if len(got) != 0 {
		t.Fatalf("categories without intervals must not be flagged: %v", got)
	}
}
