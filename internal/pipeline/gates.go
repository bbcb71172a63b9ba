package pipeline

import (
	"errors"
	"fmt"

	"github.com/nmishin/deckforge/internal/dossier"
	"github.com/nmishin/deckforge/internal/model"
)

const (
	classificationGate = "classification_confidence"
	structuralGate     = "structured_data"
	verificationGate   = "verification_rate"
)

// evalClassificationGate warns on low confidence and never halts: a
// shaky domain call degrades the template choice, not the facts.
func evalClassificationGate(cls model.Classification, threshold float64) model.GateDecision {
	d := model.GateDecision{
		Gate:      classificationGate,
		Outcome:   model.GatePass,
		Value:     cls.Confidence,
		Threshold: threshold,
	}
	if cls.Confidence < threshold {
		d.Outcome = model.GateWarn
		d.Reason = fmt.Sprintf("confidence %.2f below %.2f", cls.Confidence, threshold)
	}
	return d
}

// evalStructuralGate is the only gate allowed to halt. Without the
// required financial series there is nothing defensible to publish.
func evalStructuralGate(rec *model.SourceRecord, requiredYears int) model.GateDecision {
	d := model.GateDecision{
		Gate:      structuralGate,
		Outcome:   model.GatePass,
		Threshold: float64(requiredYears),
	}
	if err := dossier.Validate(rec, requiredYears); err != nil {
		d.Outcome = model.GateHalt
		var verr *dossier.ValidationError
		if errors.As(err, &verr) {
			d.Reason = fmt.Sprintf("%s: %s", verr.Field, verr.Reason)
		} else {
			d.Reason = err.Error()
		}
	}
	return d
}

// evalVerificationGate warns when too few claims trace back to a
// source. The deck still ships, marked for manual review.
func evalVerificationGate(rate, threshold float64) model.GateDecision {
	d := model.GateDecision{
		Gate:      verificationGate,
		Outcome:   model.GatePass,
		Value:     rate,
		Threshold: threshold,
	}
	if rate < threshold {
		d.Outcome = model.GateWarn
		d.Reason = fmt.Sprintf("verification rate %.2f below %.2f", rate, threshold)
	}
	return d
}
