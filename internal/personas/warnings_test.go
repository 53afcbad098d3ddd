package personas

import (
	"strings"
	"testing"
)

func TestRenderWeightWarnings_AboveMaximum(t *testing.T) {
	got := RenderWeightWarnings(
		map[string]float64{"Technical": 0.85},
		map[string]Interval{"Technical": {Min: 0.30, Max: 0.55}},
	)
	if len(got) != 1 {
		t.Fatalf("expected one warning, got %v", got)
	}
	if !strings.HasPrefix(got[0], "Raising Technical above 55%") {
		t.Fatalf("unexpected message: %q", got[0])
	}
}

func TestRenderWeightWarnings_BelowMinimum(t *testing.T) {
	got := RenderWeightWarnings(
		map[string]float64{"Values": 0.05},
		map[string]Interval{"Values": {Min: 0.10, Max: 0.40}},
	)
	if len(got) != 1 {
		t.Fatalf("expected one warning, got %v", got)
	}
	if !strings.HasPrefix(got[0], "Values below 10%") {
		t.Fatalf("unexpected message: %q", got[0])
	}
}

func TestRenderWeightWarnings_GenericFallback(t *testing.T) {
	got := RenderWeightWarnings(
		map[string]float64{"Curiosity": 0.9},
		map[string]Interval{"Curiosity": {Min: 0.10, Max: 0.40}},
	)
	if len(got) != 1 {
		t.Fatalf("expected one warning, got %v", got)
	}
	if got[0] != "Curiosity above recommended 40%." {
		t.Fatalf("unexpected fallback message: %q", got[0])
	}
}

func TestRenderWeightWarnings_CanonicalizesCategoryCase(t *testing.T) {
	got := RenderWeightWarnings(
		map[string]float64{"technical": 0.85},
		map[string]Interval{"technical": {Min: 0.30, Max: 0.55}},
	)
	if len(got) != 1 {
		t.Fatalf("expected one warning, got %v", got)
	}
	if !strings.Contains(got[0], "Technical") {
		t.Fatalf("category not canonicalized: %q", got[0])
	}
}

func TestRenderWeightWarnings_WithinIntervalSilent(t *testing.T) {
	got := RenderWeightWarnings(
		map[string]float64{"Technical": 0.40, "Cognitive": 0.60},
		map[string]Interval{"Technical": {Min: 0.30, Max: 0.55}},
	)
	if len(got) != 0 {
		t.Fatalf("expected no warnings, got %v", got)
	}
}

func TestRenderWeightWarnings_SortedByCategory(t *testing.T) {
	got := RenderWeightWarnings(
		map[string]float64{"Values": 0.99, "Behavioral": 0.99},
		map[string]Interval{
			"Values":     {Min: 0.10, Max: 0.40},
			"Behavioral": {Min: 0.10, Max: 0.40},
		},
	)
	if len(got) != 2 {
		t.Fatalf("expected two warnings, got %v", got)
	}
	if !strings.Contains(got[0], "Behavioral") || !strings.Contains(got[1], "Values") {
		t.Fatalf("warnings not sorted: %v", got)
	}
}
