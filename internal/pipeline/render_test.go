package pipeline

import (
	"strings"
	"testing"

	"github.com/nmishin/deckforge/internal/model"
)

func sampleReport() model.AuditReport {
	return model.AuditReport{
		Company:          "Acme Precision Components",
		TotalClaims:      2,
		VerifiedClaims:   1,
		VerificationRate: 0.5,
		ByProvenance: map[model.Provenance]int{
			model.ProvenanceOnePager:   1,
			model.ProvenanceUnverified: 1,
		},
		Slides: []model.SlideClaims{
			{
				SlideID: 2,
				Claims: []model.ClaimEntry{
					{Text: "₹42.30 Cr", Kind: model.ClaimCurrency, Provenance: model.ProvenanceOnePager, SourceReference: "revenue", Verified: true},
					{Text: "12 facilities", Kind: model.ClaimCount, Provenance: model.ProvenanceUnverified},
				},
			},
		},
	}
}

func sampleSlides() []model.Slide {
	return []model.Slide{
		{ID: 1, Title: "Business Profile & Capabilities", Body: "A manufacturer."},
		{ID: 2, Title: "Financial & Operational Performance", Body: "Revenue of ₹42.30 Cr across 12 facilities."},
	}
}

func TestRenderTeaser_AnnotatesUnverifiedClaims(t *testing.T) {
	r := NewRenderer(false)
	out := r.RenderTeaser("Acme Precision Components", sampleSlides(), sampleReport())

	if !strings.Contains(out, "# Acme Precision Components") {
		t.Error("teaser missing company heading")
	}
	if !strings.Contains(out, "## Slide 2: Financial & Operational Performance") {
		t.Error("teaser missing slide heading")
	}
	if !strings.Contains(out, "> Unverified claims on this slide:") {
		t.Error("teaser missing unverified annotation block")
	}
	if !strings.Contains(out, "> - 12 facilities (count)") {
		t.Error("teaser missing unverified claim line")
	}
	if strings.Contains(out, "> - ₹42.30 Cr") {
		t.Error("verified claim must not be annotated")
	}
	if strings.Contains(out, footerText) {
		t.Error("footer rendered despite includeFooter=false")
	}
}

func TestRenderTeaser_Footer(t *testing.T) {
	r := NewRenderer(true)
	out := r.RenderTeaser("Acme", sampleSlides(), sampleReport())
	if !strings.Contains(out, footerText) {
		t.Error("footer missing despite includeFooter=true")
	}
}

func TestRenderAuditMarkdown(t *testing.T) {
	r := NewRenderer(false)
	out := r.RenderAuditMarkdown(sampleReport())

	for _, want := range []string{
		"# Citation Report: Acme Precision Components",
		"Total claims: 2",
		"Verified: 1 (50.0%)",
		"- onepager: 1",
		"- unverified: 1",
		"| ✓ ₹42.30 Cr | currency_amount | onepager | revenue |",
		"| ✗ 12 facilities | count | unverified |  |",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("audit markdown missing %q", want)
		}
	}
}

func TestRender_Deterministic(t *testing.T) {
	r := NewRenderer(true)
	report := sampleReport()

	first := r.RenderAuditMarkdown(report)
	second := r.RenderAuditMarkdown(report)
	if first != second {
		t.Error("audit markdown differs between renders of the same report")
	}

	j1, err := r.RenderAuditJSON(report)
	if err != nil {
		t.Fatalf("RenderAuditJSON() error = %v", err)
	}
	j2, _ := r.RenderAuditJSON(report)
	if string(j1) != string(j2) {
		t.Error("audit JSON differs between renders of the same report")
	}
}

func TestRenderWebData(t *testing.T) {
	r := NewRenderer(false)

	out := r.RenderWebData("Acme", map[string]string{
		"homepage": "Welcome to Acme.",
		"about":    "Founded in 1998.",
	})
	aboutIdx := strings.Index(out, "## about")
	homeIdx := strings.Index(out, "## homepage")
	if aboutIdx == -1 || homeIdx == -1 {
		t.Fatalf("web data missing page sections:\n%s", out)
	}
	if aboutIdx > homeIdx {
		t.Error("page sections not sorted by name")
	}

	empty := r.RenderWebData("Acme", nil)
	if !strings.Contains(empty, "No pages were scraped") {
		t.Error("empty page set not reported")
	}
}
