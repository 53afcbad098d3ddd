// Package personas models weighted scoring rubrics used to evaluate
// candidates against a job description. A persona maps category names to
// weights that form a convex combination, with optional advisory intervals
// per category.
package personas

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/talentforge/talentforge/internal/shared"
)

// Interval is an inclusive advisory band for a category weight. Weights
// outside the band are legal but flagged.
type Interval struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// NewInterval validates bounds at construction.
func NewInterval(min, max float64) (Interval, error) {
	if min < 0.0 || min > 1.0 || max < 0.0 || max > 1.0 {
		return Interval{}, fmt.Errorf("%w: interval bounds must be within [0.0, 1.0]", shared.ErrInvalidInput)
	}
	if min > max {
		return Interval{}, fmt.Errorf("%w: interval min must not exceed max", shared.ErrInvalidInput)
	}
	return Interval{Min: min, Max: max}, nil
}

// Contains reports whether value lies inside the band.
func (i Interval) Contains(value float64) bool {
	return i.Min <= value && value <= i.Max
}

// Persona is the aggregate root for a scoring rubric.
type Persona struct {
	ID               uuid.UUID
	JobDescriptionID uuid.UUID
	Name             string
	Weights          map[string]float64
	Intervals        map[string]Interval
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// DefaultSchema is applied when a persona is created without explicit weights.
func DefaultSchema() map[string]float64 {
	return map[string]float64{
		"Technical":  0.40,
		"Cognitive":  0.20,
		"Values":     0.20,
		"Behavioral": 0.20,
	}
}

// TotalWeight returns the sum of all category weights.
func (p Persona) TotalWeight() float64 {
	var total float64
	for _, w := range p.Weights {
		total += w
	}
	return total
}

// IntervalFor returns the advisory interval for a category, if defined.
func (p Persona) IntervalFor(category string) (Interval, bool) {
	ival, ok := p.Intervals[category]
	return ival, ok
}

// WithinInterval reports whether value is acceptable for the category.
// Categories without an interval are never restricted.
func (p Persona) WithinInterval(category string, value float64) bool {
	ival, ok := p.Intervals[category]
	if !ok {
		return true
	}
	return ival.Contains(value)
}

// withWeight returns a copy of the persona with one category weight replaced.
func (p Persona) withWeight(category string, value float64) Persona {
	weights := make(map[string]float64, len(p.Weights))
	for k, v := range p.Weights {
		weights[k] = v
	}
	weights[category] = value
	p.Weights = weights
	return p
}

// NewPersona validates category names and weight ranges, optionally
// normalizes, and re-validates the sum. Weights default to DefaultSchema
// when nil. All validation failures surface as shared.ErrInvalidInput.
func NewPersona(jdID uuid.UUID, name string, weights map[string]float64, intervals map[string]Interval, normalize bool) (Persona, error) {
	w := make(map[string]float64, len(weights))
	if len(weights) == 0 {
		w = DefaultSchema()
	} else {
		for k, v := range weights {
			w[k] = v
		}
	}

	names := make([]string, 0, len(w))
	for k := range w {
		names = append(names, k)
	}
	namesOK := ValidateCategoryNames(names, DefaultMinCategories, DefaultMaxCategories)
	rangesOK := ValidateWeightsRange(w)
	if normalize {
		w = NormalizeWeights(w)
	}
	sumOK := ValidateWeightsSum(w, SumTolerance)
	if !namesOK || !rangesOK || !sumOK {
		return Persona{}, fmt.Errorf("%w: invalid persona weights or categories", shared.ErrInvalidInput)
	}

	ival := make(map[string]Interval, len(intervals))
	for k, v := range intervals {
		ival[k] = v
	}

	return Persona{
		JobDescriptionID: jdID,
		Name:             trimName(name),
		Weights:          w,
		Intervals:        ival,
	}, nil
}

// UpdateWeight returns a new persona with one category weight replaced.
// The value is range checked; when enforceInterval is set and the category
// carries an interval, out-of-band values are rejected. The overall sum is
// deliberately not re-validated so a caller can apply several edits before
// a final normalize step.
func UpdateWeight(p Persona, category string, value float64, enforceInterval bool) (Persona, error) {
	if value < 0.0 || value > 1.0 {
		return Persona{}, fmt.Errorf("%w: weight must be within [0.0, 1.0]", shared.ErrInvalidInput)
	}
	if enforceInterval && !p.WithinInterval(category, value) {
		return Persona{}, fmt.Errorf("%w: value %v outside recommended interval for %q", shared.ErrInvalidInput, value, category)
	}
	return p.withWeight(category, value), nil
}

// Normalize returns a new persona with weights scaled to sum to 1.0.
func Normalize(p Persona) Persona {
	p.Weights = NormalizeWeights(p.Weights)
	return p
}
