package personas

import (
	"sort"
	"strings"
)

const (
	// DefaultMinCategories and DefaultMaxCategories bound the size of a
	// persona's category set.
	DefaultMinCategories = 2
	DefaultMaxCategories = 20

	// SumTolerance is the numerical tolerance when checking that weights
	// form a convex combination.
	SumTolerance = 1e-6
)

func trimName(s string) string {
	return strings.TrimSpace(s)
}

// ValidateCategoryNames reports whether the number of categories is within
// bounds and every trimmed name is non-empty.
func ValidateCategoryNames(categories []string, minCount, maxCount int) bool {
	names := make([]string, 0, len(categories))
	for _, c := range categories {
		names = append(names, strings.TrimSpace(c))
	}
	if len(names) < minCount || len(names) > maxCount {
		return false
	}
	for _, n := range names {
		if n == "" {
			return false
		}
	}
	return true
}

// ValidateWeightsRange reports whether every weight lies in [0.0, 1.0].
func ValidateWeightsRange(weights map[string]float64) bool {
	for _, v := range weights {
		if v < 0.0 || v > 1.0 {
			return false
		}
	}
	return true
}

// ValidateWeightsSum reports whether the weights sum to 1.0 within tolerance.
func ValidateWeightsSum(weights map[string]float64, tolerance float64) bool {
	var total float64
	for _, v := range weights {
		total += v
	}
	diff := total - 1.0
	if diff < 0 {
		diff = -diff
	}
	return diff <= tolerance
}

// NormalizeWeights returns a new map scaled so the weights sum to 1.0.
// A zero or negative total is a documented no-op rather than a division
// failure: the input is returned as a copy, unchanged.
func NormalizeWeights(weights map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(weights))
	var total float64
	for _, v := range weights {
		total += v
	}
	if total <= 0.0 {
		for k, v := range weights {
			out[k] = v
		}
		return out
	}
	for k, v := range weights {
		out[k] = v / total
	}
	return out
}

// DetectOutOfInterval returns the categories whose weight lies outside their
// advisory interval. Categories without a defined interval are never flagged.
func DetectOutOfInterval(weights map[string]float64, intervals map[string]Interval) []string {
	var violations []string
	for cat, w := range weights {
		ival, ok := intervals[cat]
		if !ok {
			continue
		}
		if !ival.Contains(w) {
			violations = append(violations, cat)
		}
	}
	sort.Strings(violations)
	return violations
}
