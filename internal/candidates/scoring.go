package candidates

// WeightedScore aggregates per-category scores under a persona's
// weights. Only weighted categories contribute; a category the
// candidate was not scored on contributes zero rather than failing.
func WeightedScore(scores, weights map[string]float64) float64 {
	var total float64
	for category, weight := range weights {
		if score, ok := scores[category]; ok {
			total += weight * score
		}
	}
	return total
}
