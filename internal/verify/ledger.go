package verify

import (
	"github.com/nmishin/deckforge/internal/model"
)

// Ledger aggregates claims across all slides of a run. Record is the only
// mutation and happens once per slide in slide order; everything else is a
// pure read, so Finalize is idempotent by construction.
type Ledger struct {
	company string
	claims  []model.Claim
}

// NewLedger creates an empty ledger for one company run.
func NewLedger(company string) *Ledger {
	return &Ledger{company: company}
}

// Record appends a slide's claims. Insertion order is extraction order:
// slide order first, in-text order within a slide.
func (l *Ledger) Record(claims []model.Claim) {
	l.claims = append(l.claims, claims...)
}

// Total returns the number of recorded claims.
func (l *Ledger) Total() int {
	return len(l.claims)
}

// VerifiedCount returns the number of claims with admissible provenance.
func (l *Ledger) VerifiedCount() int {
	n := 0
	for i := range l.claims {
		if l.claims[i].Verified() {
			n++
		}
	}
	return n
}

// Rate returns verified/total in [0,1]; an empty ledger rates 1.0.
func (l *Ledger) Rate() float64 {
	if len(l.claims) == 0 {
		return 1.0
	}
	return float64(l.VerifiedCount()) / float64(len(l.claims))
}

// LedgerFromSummary rebuilds a ledger from a persisted run summary so a
// past run's report can be re-rendered without re-running the pipeline.
func LedgerFromSummary(summary model.RunSummary) *Ledger {
	l := NewLedger(summary.Company)
	claims := make([]model.Claim, 0, len(summary.Claims))
	for _, r := range summary.Claims {
		claims = append(claims, model.Claim{
			RawText:         r.Text,
			SlideID:         r.SlideID,
			Kind:            r.Kind,
			Provenance:      r.Provenance,
			SourceReference: r.SourceReference,
		})
	}
	l.Record(claims)
	return l
}

// Finalize computes the verification rate and renders the audit report,
// grouping claims by slide in insertion order. Calling it again recomputes
// from the same stored claims and returns an identical report.
func (l *Ledger) Finalize() model.AuditReport {
	report := model.AuditReport{
		Company:          l.company,
		TotalClaims:      len(l.claims),
		VerifiedClaims:   l.VerifiedCount(),
		VerificationRate: l.Rate(),
		ByProvenance:     make(map[model.Provenance]int),
		Slides:           []model.SlideClaims{},
	}

	slideIndex := make(map[int]int)
	for i := range l.claims {
		c := &l.claims[i]
		report.ByProvenance[c.Provenance]++

		idx, seen := slideIndex[c.SlideID]
		if !seen {
			idx = len(report.Slides)
			slideIndex[c.SlideID] = idx
			report.Slides = append(report.Slides, model.SlideClaims{SlideID: c.SlideID})
		}
		report.Slides[idx].Claims = append(report.Slides[idx].Claims, model.ClaimEntry{
			Text:            c.RawText,
			Kind:            c.Kind,
			Provenance:      c.Provenance,
			SourceReference: c.SourceReference,
			Verified:        c.Verified(),
		})
	}

	return report
}

// Summary renders the flat persisted form of the ledger.
func (l *Ledger) Summary() model.RunSummary {
	summary := model.RunSummary{
		Company:          l.company,
		VerificationRate: l.Rate(),
		Claims:           make([]model.ClaimRecord, 0, len(l.claims)),
	}
	for i := range l.claims {
		c := &l.claims[i]
		summary.Claims = append(summary.Claims, model.ClaimRecord{
			SlideID:         c.SlideID,
			Text:            c.RawText,
			Kind:            c.Kind,
			Provenance:      c.Provenance,
			SourceReference: c.SourceReference,
			Verified:        c.Verified(),
		})
	}
	return summary
}
