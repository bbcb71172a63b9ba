package verify

import (
	"regexp"
	"sort"
	"unicode/utf8"

	"github.com/nmishin/deckforge/internal/model"
)

// contextWindow is the number of bytes of surrounding text captured on each
// side of a match, clamped to rune boundaries. The window can truncate
// mid-word; matching semantics were tuned against that behavior.
const contextWindow = 50

// pattern pairs a claim kind with its matcher. Adding a claim kind is a
// table entry, not a control-flow change.
type pattern struct {
	kind model.ClaimKind
	re   *regexp.Regexp
}

var patterns = []pattern{
	{model.ClaimPercentage, regexp.MustCompile(`\d+(?:\.\d+)?\s*%`)},
	{model.ClaimCurrency, regexp.MustCompile(`(?i)[₹$€£]\s*\d+(?:,\d{2,3})*(?:\.\d+)?(?:\s*(?:cr\.?|crores?|lakhs?|mn|millions?|bn|billions?))?`)},
	{model.ClaimCount, regexp.MustCompile(`(?i)\b\d+\s+(?:facilities|employees|customers|years)\b`)},
	{model.ClaimFiscalYear, regexp.MustCompile(`FY\d{2,4}\b`)},
	{model.ClaimMultiple, regexp.MustCompile(`(?i)\b\d+(?:\.\d+)?x\b`)},
}

// Extractor scans generated slide text for the fixed family of checkable
// factual shapes. Prose without numbers or fiscal-year tokens is invisible
// to it. Pure function of its inputs; deterministic and order-stable.
type Extractor struct{}

// NewExtractor creates a new claim extractor
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns one claim per pattern match in text order. A span matched
// by more than one pattern produces one claim per matching pattern; the
// duplicates are deliberate and are never merged.
func (e *Extractor) Extract(slideID int, text string) []model.Claim {
	type hit struct {
		start int
		claim model.Claim
	}

	var hits []hit
	for _, p := range patterns {
		for _, loc := range p.re.FindAllStringIndex(text, -1) {
			start, end := loc[0], loc[1]
			hits = append(hits, hit{
				start: start,
				claim: model.Claim{
					RawText:    window(text, start, end),
					MatchText:  text[start:end],
					SlideID:    slideID,
					Kind:       p.kind,
					Provenance: model.ProvenanceUnverified,
				},
			})
		}
	}

	// Text order; ties keep pattern-table order.
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].start < hits[j].start
	})

	claims := make([]model.Claim, 0, len(hits))
	for _, h := range hits {
		claims = append(claims, h.claim)
	}
	return claims
}

// window returns text[start:end] padded by contextWindow bytes on each side,
// adjusted so the cut never lands inside a multi-byte rune.
func window(text string, start, end int) string {
	lo := start - contextWindow
	if lo < 0 {
		lo = 0
	}
	for lo > 0 && !utf8.RuneStart(text[lo]) {
		lo--
	}

	hi := end + contextWindow
	if hi > len(text) {
		hi = len(text)
	}
	for hi < len(text) && !utf8.RuneStart(text[hi]) {
		hi++
	}

	return text[lo:hi]
}
