package pipeline

import (
	"testing"

	"github.com/nmishin/deckforge/internal/model"
)

func TestEvalClassificationGate(t *testing.T) {
	tests := []struct {
		name       string
		confidence float64
		want       model.GateOutcome
	}{
		{"above threshold", 0.95, model.GatePass},
		{"at threshold", 0.8, model.GatePass},
		{"below threshold", 0.79, model.GateWarn},
		{"zero", 0, model.GateWarn},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cls := model.Classification{Domain: "manufacturing", Confidence: tt.confidence}
			d := evalClassificationGate(cls, 0.8)
			if d.Outcome != tt.want {
				t.Errorf("outcome = %q, want %q", d.Outcome, tt.want)
			}
			if d.Outcome == model.GateHalt {
				t.Error("classification gate must never halt")
			}
		})
	}
}

func TestEvalStructuralGate(t *testing.T) {
	full := &model.SourceRecord{
		CompanyName: "Acme",
		Financials: map[string]map[int]float64{
			"revenue":    {2024: 32.1, 2025: 38.4, 2026: 42.3},
			"ebitda":     {2024: 5.1, 2025: 6.9, 2026: 8.2},
			"pat_margin": {2024: 9.8, 2025: 10.4, 2026: 11.1},
		},
	}
	if d := evalStructuralGate(full, 3); d.Outcome != model.GatePass {
		t.Errorf("complete record: %+v", d)
	}

	missing := &model.SourceRecord{
		CompanyName: "Acme",
		Financials: map[string]map[int]float64{
			"revenue": {2024: 32.1, 2025: 38.4, 2026: 42.3},
		},
	}
	d := evalStructuralGate(missing, 3)
	if d.Outcome != model.GateHalt {
		t.Errorf("missing metrics must halt, got %+v", d)
	}
	if d.Reason == "" {
		t.Error("halt must carry a reason naming the field")
	}
}

func TestEvalVerificationGate(t *testing.T) {
	tests := []struct {
		name string
		rate float64
		want model.GateOutcome
	}{
		{"perfect", 1.0, model.GatePass},
		{"at threshold", 0.95, model.GatePass},
		{"slightly below", 0.90, model.GateWarn},
		{"zero", 0, model.GateWarn},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := evalVerificationGate(tt.rate, 0.95)
			if d.Outcome != tt.want {
				t.Errorf("outcome = %q, want %q", d.Outcome, tt.want)
			}
			if d.Outcome == model.GateHalt {
				t.Error("verification gate must never halt")
			}
		})
	}
}
