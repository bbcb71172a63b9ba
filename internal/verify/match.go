package verify

import (
	"sort"
	"strconv"
	"strings"

	"github.com/nmishin/deckforge/internal/model"
)

// calculatedReference is the fixed label attached to derivation-marker
// matches. The concrete formula lives with the chart builder, not here.
const calculatedReference = "Derived from financial statements"

// derivationMarkers is the fixed vocabulary that admits a claim as an
// arithmetic derivation when no literal source matches first.
var derivationMarkers = []string{
	"cagr", "margin", "ratio", "days", "turnover", "growth", "change", "%",
}

// matchStep attempts one admission rule; ok=false means try the next rule.
type matchStep func(c *model.Claim) (model.Provenance, string, bool)

// Matcher decides claim admissibility against the run's source record. The
// rules run in a fixed priority order, first success wins: the dossier is the
// most specific and auditable source, so it always beats a website hit, which
// beats a derivation marker. Matching a claim is the sole mutation in the
// claim's lifecycle.
type Matcher struct {
	source *model.SourceRecord
	steps  []matchStep

	// sorted key sets, so a value present in two places always reports
	// the same reference
	metricNames  []string
	sectionNames []string
	pageKeys     []string
}

// NewMatcher creates a matcher over an immutable source record.
func NewMatcher(source *model.SourceRecord) *Matcher {
	m := &Matcher{source: source}
	m.steps = []matchStep{m.matchDossier, m.matchWebsite, m.matchCalculated}

	for name := range source.Financials {
		m.metricNames = append(m.metricNames, name)
	}
	sort.Strings(m.metricNames)
	for name := range source.TextSections {
		m.sectionNames = append(m.sectionNames, name)
	}
	sort.Strings(m.sectionNames)
	for key := range source.ScrapedPages {
		m.pageKeys = append(m.pageKeys, key)
	}
	sort.Strings(m.pageKeys)

	return m
}

// Match attempts admission for one claim. Already-verified claims are left
// untouched; unadmitted claims stay unverified, which is data, not an error.
func (m *Matcher) Match(c *model.Claim) {
	if c.Verified() {
		return
	}
	for _, step := range m.steps {
		if p, ref, ok := step(c); ok {
			c.Resolve(p, ref)
			return
		}
	}
}

// MatchAll runs Match over a slice in order.
func (m *Matcher) MatchAll(claims []model.Claim) {
	for i := range claims {
		m.Match(&claims[i])
	}
}

// matchDossier admits a claim whose matched span contains a financial value
// rendered as a string, or appears verbatim in a dossier text section.
// Literal matching runs on the span, not the context window: the window
// exists to carry derivation markers, and letting it satisfy literal matches
// would credit a claim with a neighboring claim's value.
func (m *Matcher) matchDossier(c *model.Claim) (model.Provenance, string, bool) {
	span := strings.ToLower(strings.TrimSpace(c.MatchText))

	for _, metric := range m.metricNames {
		years := m.source.Financials[metric]
		for _, value := range years {
			if strings.Contains(span, formatValue(value)) {
				return model.ProvenanceOnePager, metric, true
			}
		}
	}

	if len(span) >= 2 {
		for _, name := range m.sectionNames {
			if strings.Contains(strings.ToLower(m.source.TextSections[name]), span) {
				return model.ProvenanceOnePager, name, true
			}
		}
	}

	return model.ProvenanceUnverified, "", false
}

// matchWebsite admits a claim whose matched span appears in a scraped page.
// With an empty page map (scraping skipped or failed) this never fires.
func (m *Matcher) matchWebsite(c *model.Claim) (model.Provenance, string, bool) {
	span := strings.ToLower(strings.TrimSpace(c.MatchText))
	if len(span) < 2 {
		return model.ProvenanceUnverified, "", false
	}

	for _, key := range m.pageKeys {
		if strings.Contains(strings.ToLower(m.source.ScrapedPages[key]), span) {
			return model.ProvenanceWebsite, key, true
		}
	}

	return model.ProvenanceUnverified, "", false
}

// matchCalculated admits a claim whose raw text carries a derivation marker.
func (m *Matcher) matchCalculated(c *model.Claim) (model.Provenance, string, bool) {
	raw := strings.ToLower(c.RawText)

	for _, marker := range derivationMarkers {
		if strings.Contains(raw, marker) {
			return model.ProvenanceCalculated, calculatedReference, true
		}
	}

	return model.ProvenanceUnverified, "", false
}

// formatValue renders a financial value the way it is matched against claim
// text: minimal digits, no trailing zeros, so 42.30 renders "42.3" and is
// found inside "₹42.30 cr".
func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
