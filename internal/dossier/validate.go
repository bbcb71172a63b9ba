package dossier

import (
	"fmt"
	"math"

	"github.com/nmishin/deckforge/internal/model"
)

// requiredMetrics must each be present with enough fiscal years before a
// deck can be produced from the record.
var requiredMetrics = []string{"revenue", "ebitda", "pat_margin"}

// ValidationError reports a structural defect in a parsed record.
// Pipeline gates treat it as non-recoverable.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("dossier: %s: %s", e.Field, e.Reason)
}

// Validate checks a parsed record for the structure the content stages
// depend on. The first defect found is returned.
func Validate(rec *model.SourceRecord, minYears int) error {
	if rec.CompanyName == "" {
		return &ValidationError{Field: "company_name", Reason: "missing"}
	}
	for _, metric := range requiredMetrics {
		series, ok := rec.Financials[metric]
		if !ok || len(series) == 0 {
			return &ValidationError{Field: metric, Reason: "required metric missing"}
		}
		if len(series) < minYears {
			return &ValidationError{
				Field:  metric,
				Reason: fmt.Sprintf("%d years of data, need %d", len(series), minYears),
			}
		}
	}
	for metric, series := range rec.Financials {
		for year, value := range series {
			if math.IsNaN(value) || math.IsInf(value, 0) {
				return &ValidationError{
					Field:  metric,
					Reason: fmt.Sprintf("non-finite value for %d", year),
				}
			}
		}
	}
	return nil
}
