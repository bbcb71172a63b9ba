package verify

import (
	"reflect"
	"strings"
	"testing"

	"github.com/nmishin/deckforge/internal/model"
)

func TestExtractor_AllKinds(t *testing.T) {
	extractor := NewExtractor()

	text := "Revenue of ₹42.30 cr. in FY26, up 12.2% with 12 facilities and a 3.2x order book."
	claims := extractor.Extract(2, text)

	var kinds []model.ClaimKind
	for _, c := range claims {
		kinds = append(kinds, c.Kind)
	}

	expected := []model.ClaimKind{
		model.ClaimCurrency,
		model.ClaimFiscalYear,
		model.ClaimPercentage,
		model.ClaimCount,
		model.ClaimMultiple,
	}
	if !reflect.DeepEqual(kinds, expected) {
		t.Errorf("expected kinds %v in text order, got %v", expected, kinds)
	}

	for _, c := range claims {
		if c.SlideID != 2 {
			t.Errorf("expected slide id 2, got %d", c.SlideID)
		}
		if c.Provenance != model.ProvenanceUnverified {
			t.Errorf("new claim must start unverified, got %q", c.Provenance)
		}
		if !strings.Contains(c.RawText, c.MatchText) {
			t.Errorf("raw text %q must contain match %q", c.RawText, c.MatchText)
		}
	}
}

func TestExtractor_Deterministic(t *testing.T) {
	extractor := NewExtractor()
	text := "EBITDA margin improved to 18.4% in FY25; headcount reached 250 employees."

	first := extractor.Extract(1, text)
	second := extractor.Extract(1, text)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("extraction is not deterministic:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestExtractor_PlainProseInvisible(t *testing.T) {
	extractor := NewExtractor()

	claims := extractor.Extract(1, "A leading supplier of precision components to marquee customers across the country.")
	if len(claims) != 0 {
		t.Errorf("expected no claims for prose without checkable shapes, got %d", len(claims))
	}
}

func TestExtractor_CountVocabulary(t *testing.T) {
	extractor := NewExtractor()

	tests := []struct {
		text string
		want int
	}{
		{"operates 12 facilities", 1},
		{"operates 12 Facilities", 1}, // vocabulary is case-insensitive
		{"employs 340 employees", 1},
		{"serves 85 customers", 1},
		{"over 25 years", 1},
		{"12 widgets", 0}, // outside the fixed vocabulary
	}

	for _, tt := range tests {
		claims := extractor.Extract(1, tt.text)
		if len(claims) != tt.want {
			t.Errorf("Extract(%q): expected %d claims, got %d", tt.text, tt.want, len(claims))
		}
		if tt.want == 1 && claims[0].Kind != model.ClaimCount {
			t.Errorf("Extract(%q): expected count claim, got %s", tt.text, claims[0].Kind)
		}
	}
}

func TestExtractor_FiscalYearToken(t *testing.T) {
	extractor := NewExtractor()

	claims := extractor.Extract(1, "Strong performance in FY26 and a plan through FY2030.")
	if len(claims) != 2 {
		t.Fatalf("expected 2 fiscal-year claims, got %d", len(claims))
	}
	if claims[0].MatchText != "FY26" || claims[1].MatchText != "FY2030" {
		t.Errorf("unexpected matches: %q, %q", claims[0].MatchText, claims[1].MatchText)
	}
}

func TestExtractor_CurrencyUnitOptional(t *testing.T) {
	extractor := NewExtractor()

	for _, text := range []string{"valued at $1,200", "valued at ₹85.6 crore", "valued at $2.1 billion"} {
		claims := extractor.Extract(1, text)
		if len(claims) != 1 || claims[0].Kind != model.ClaimCurrency {
			t.Errorf("Extract(%q): expected one currency claim, got %+v", text, claims)
		}
	}
}

func TestExtractor_OverlappingPatternsKeepBoth(t *testing.T) {
	extractor := NewExtractor()

	// "3x" is a multiple; "300%" is a percentage; both coexist untouched.
	claims := extractor.Extract(1, "Grew 3x, equivalent to 300% over the period.")
	if len(claims) != 2 {
		t.Fatalf("expected 2 claims, got %d", len(claims))
	}
}

func TestExtractor_ContextWindowBounded(t *testing.T) {
	extractor := NewExtractor()

	pad := strings.Repeat("a", 200)
	text := pad + " 12.2% " + pad
	claims := extractor.Extract(1, text)
	if len(claims) != 1 {
		t.Fatalf("expected 1 claim, got %d", len(claims))
	}

	// window is the match plus at most contextWindow bytes each side
	max := len("12.2%") + 2*contextWindow + 2
	if len(claims[0].RawText) > max {
		t.Errorf("context window too wide: %d bytes (max %d)", len(claims[0].RawText), max)
	}
	if !strings.Contains(claims[0].RawText, "12.2%") {
		t.Errorf("window lost the match: %q", claims[0].RawText)
	}
}
