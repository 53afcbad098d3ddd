package personas

import (
	"errors"
	"math"
	"testing"

	"github.com/google/uuid"

	"github.com/talentforge/talentforge/internal/shared"
)

func TestNewPersona_DefaultSchema(t *testing.T) {
	p, err := NewPersona(uuid.New(), "Backend Engineer", nil, nil, true)
	if err != nil {
		t.Fatalf("NewPersona returned error: %v", err)
	}
	if len(p.Weights) != 4 {
		t.Fatalf("expected 4 default categories, got %d", len(p.Weights))
	}
	if math.Abs(p.TotalWeight()-1.0) > SumTolerance {
		t.Fatalf("default weights must sum to 1.0, got %v", p.TotalWeight())
	}
	if p.Weights["Technical"] != 0.40 {
		t.Fatalf("unexpected Technical weight: %v", p.Weights["Technical"])
	}
	for cat, w := range p.Weights {
		if w < 0.0 || w > 1.0 {
			t.Fatalf("weight for %s out of range: %v", cat, w)
		}
	}
}

func TestNewPersona_NormalizesExplicitWeights(t *testing.T) {
	p, err := NewPersona(uuid.New(), "SRE", map[string]float64{"Technical": 0.9, "Cognitive": 0.9}, nil, true)
	if err != nil {
		t.Fatalf("NewPersona returned error: %v", err)
	}
	if math.Abs(p.Weights["Technical"]-0.5) > SumTolerance {
		t.Fatalf("expected normalized 0.5, got %v", p.Weights["Technical"])
	}
}

func TestNewPersona_NoNormalizeWithValidSum(t *testing.T) {
	weights := map[string]float64{"Technical": 0.5, "Cognitive": 0.5}
	p, err := NewPersona(uuid.New(), "Analyst", weights, nil, false)
	if err != nil {
		t.Fatalf("NewPersona returned error: %v", err)
	}
	if p.Weights["Technical"] != 0.5 || p.Weights["Cognitive"] != 0.5 {
		t.Fatalf("weights changed unexpectedly: %v", p.Weights)
	}
}

func TestNewPersona_RejectsBadSumWithoutNormalize(t *testing.T) {
	_, err := NewPersona(uuid.New(), "Analyst", map[string]float64{"Technical": 0.9, "Cognitive": 0.9}, nil, false)
	if !errors.Is(err, shared.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestNewPersona_RejectsOutOfRangeWeight(t *testing.T) {
	_, err := NewPersona(uuid.New(), "Analyst", map[string]float64{"Technical": 1.5, "Cognitive": -0.5}, nil, true)
	if !errors.Is(err, shared.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestNewPersona_TrimsName(t *testing.T) {
	p, err := NewPersona(uuid.New(), "  Platform Lead  ", nil, nil, true)
	if err != nil {
		t.Fatalf("NewPersona returned error: %v", err)
	}
	if p.Name != "Platform Lead" {
		t.Fatalf("name not trimmed: %q", p.Name)
	}
}

func TestNewInterval_Validation(t *testing.T) {
	if _, err := NewInterval(0.3, 0.55); err != nil {
		t.Fatalf("valid interval rejected: %v", err)
	}
	if _, err := NewInterval(0.6, 0.4); !errors.Is(err, shared.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for inverted bounds, got %v", err)
	}
	if _, err := NewInterval(-0.1, 0.5); !errors.Is(err, shared.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for negative bound, got %v", err)
	}
	if _, err := NewInterval(0.5, 1.1); !errors.Is(err, shared.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for bound above one, got %v", err)
	}
}

func TestUpdateWeight_DoesNotRenormalize(t *testing.T) {
	p, err := NewPersona(uuid.New(), "Analyst", nil, nil, true)
	if err != nil {
		t.Fatalf("NewPersona returned error: %v", err)
	}
	updated, err := UpdateWeight(p, "Technical", 0.9, false)
	if err != nil {
		t.Fatalf("UpdateWeight returned error: %v", err)
	}
	if updated.Weights["Technical"] != 0.9 {
		t.Fatalf("weight not updated: %v", updated.Weights["Technical"])
	}
	// The sum is allowed to drift between edits.
	if ValidateWeightsSum(updated.Weights, SumTolerance) {
		t.Fatal("expected sum to be transiently invalid after a single edit")
	}
	// The source persona must remain untouched.
	if p.Weights["Technical"] != 0.40 {
		t.Fatalf("original persona mutated: %v", p.Weights["Technical"])
	}
}

func TestUpdateWeight_RangeCheck(t *testing.T) {
	p, _ := NewPersona(uuid.New(), "Analyst", nil, nil, true)
	if _, err := UpdateWeight(p, "Technical", 1.2, false); !errors.Is(err, shared.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestUpdateWeight_EnforceInterval(t *testing.T) {
	ival, _ := NewInterval(0.30, 0.55)
	p, err := NewPersona(uuid.New(), "Analyst", nil, map[string]Interval{"Technical": ival}, true)
	if err != nil {
		t.Fatalf("NewPersona returned error: %v", err)
	}
	if _, err := UpdateWeight(p, "Technical", 0.85, true); !errors.Is(err, shared.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for out-of-interval value, got %v", err)
	}
	// Without enforcement the same value is legal, merely advisory.
	if _, err := UpdateWeight(p, "Technical", 0.85, false); err != nil {
		t.Fatalf("advisory interval must not block the update: %v", err)
	}
}

func TestNormalize_RestoresSum(t *testing.T) {
	p, _ := NewPersona(uuid.New(), "Analyst", nil, nil, true)
	updated, _ := UpdateWeight(p, "Technical", 0.9, false)
	normalized := Normalize(updated)
	if !ValidateWeightsSum(normalized.Weights, SumTolerance) {
		t.Fatalf("expected sum 1.0 after normalize, got %v", normalized.TotalWeight())
	}
}
