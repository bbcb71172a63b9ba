package writer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/nmishin/deckforge/internal/llm"
	"github.com/nmishin/deckforge/internal/model"
)

type stubProvider struct {
	text string
	err  error
}

func (s *stubProvider) Name() string                     { return "stub" }
func (s *stubProvider) IsAvailable(context.Context) bool { return true }
func (s *stubProvider) Complete(_ context.Context, _ llm.CompletionRequest) (*llm.CompletionResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &llm.CompletionResponse{Text: s.text, Model: "stub"}, nil
}

func testRecord() *model.SourceRecord {
	return &model.SourceRecord{
		CompanyName: "Acme Precision",
		Website:     "https://acmeprecision.example.com",
		Financials: map[string]map[int]float64{
			"revenue":    {2024: 32.1, 2025: 38.4, 2026: 42.3},
			"ebitda":     {2024: 5.1, 2025: 6.9, 2026: 8.2},
			"pat_margin": {2024: 9.8, 2025: 10.4, 2026: 11.1},
		},
		TextSections: map[string]string{
			"business_description": "Precision machining company serving aerospace customers.",
		},
		Shareholders: []model.Shareholder{
			{Name: "Founders Trust", Percent: 62.5},
			{Name: "Growth Fund II", Percent: 27.5},
		},
	}
}

func testClassification() model.Classification {
	return model.Classification{Domain: "manufacturing", Confidence: 0.95}
}

func TestWrite_ThreeSlides(t *testing.T) {
	w := New(nil, nil)
	slides := w.Write(context.Background(), testRecord(), testClassification())

	if len(slides) != 3 {
		t.Fatalf("slide count = %d, want 3", len(slides))
	}
	for i, s := range slides {
		if s.ID != i+1 {
			t.Errorf("slide %d has id %d", i, s.ID)
		}
		if s.Body == "" {
			t.Errorf("slide %d body empty", s.ID)
		}
	}
	if slides[0].Title != "Infrastructure & Capabilities" {
		t.Errorf("manufacturing profile title = %q", slides[0].Title)
	}
}

func TestWrite_FinancialFigures(t *testing.T) {
	w := New(nil, nil)
	slides := w.Write(context.Background(), testRecord(), testClassification())

	body := slides[1].Body
	for _, want := range []string{"₹42.30 Cr", "FY26", "₹8.20 Cr", "Revenue CAGR", "EBITDA margin"} {
		if !strings.Contains(body, want) {
			t.Errorf("financial slide missing %q:\n%s", want, body)
		}
	}
}

func TestWrite_HighlightsOwnership(t *testing.T) {
	w := New(nil, nil)
	slides := w.Write(context.Background(), testRecord(), testClassification())

	body := slides[2].Body
	if !strings.Contains(body, "Founders Trust: 62.5%") {
		t.Errorf("highlights missing shareholder:\n%s", body)
	}
}

func TestWrite_UnknownDomainUsesDefaults(t *testing.T) {
	w := New(nil, nil)
	slides := w.Write(context.Background(), testRecord(), model.Classification{Domain: "chemicals"})
	if slides[0].Title != defaultTitles.Profile {
		t.Errorf("title = %q, want default", slides[0].Title)
	}
}

func TestPolish_KeepsOriginalWhenFiguresDropped(t *testing.T) {
	p := &stubProvider{text: "A great company with strong growth."}
	w := New(p, nil)
	slides := w.Write(context.Background(), testRecord(), testClassification())

	if !strings.Contains(slides[1].Body, "₹42.30 Cr") {
		t.Errorf("polish that drops figures must be discarded:\n%s", slides[1].Body)
	}
}

func TestPolish_ProviderErrorFallsBack(t *testing.T) {
	p := &stubProvider{err: errors.New("unreachable")}
	w := New(p, nil)
	slides := w.Write(context.Background(), testRecord(), testClassification())

	if !strings.Contains(slides[1].Body, "₹42.30 Cr") {
		t.Errorf("provider failure must keep template text:\n%s", slides[1].Body)
	}
}

func TestPreservesFigures(t *testing.T) {
	orig := "Revenue of ₹42.30 Cr, CAGR 14.8%"
	if !preservesFigures(orig, "The company posted ₹42.30 Cr revenue at a 14.8% CAGR") {
		t.Error("identical figures should pass")
	}
	if preservesFigures(orig, "Revenue of ₹42.3 Cr, CAGR 14.8%") {
		t.Error("altered figure should fail")
	}
}

func TestShorten(t *testing.T) {
	long := strings.Repeat("word ", 200)
	got := shorten(long, 100)
	if len(got) > 104 {
		t.Errorf("shorten produced %d chars", len(got))
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("shortened text should end with ellipsis: %q", got)
	}
	if shorten("short", 100) != "short" {
		t.Error("short text must pass through")
	}
}
