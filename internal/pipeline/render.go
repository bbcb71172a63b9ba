package pipeline

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/nmishin/deckforge/internal/model"
)

const footerText = "Generated by deckforge. Figures verified against company dossier and public sources."

// Renderer turns run artifacts into their serialized forms. All output
// is derived purely from its inputs so re-rendering the same run yields
// identical bytes.
type Renderer struct {
	includeFooter bool
}

func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderTeaser renders the three slides as markdown. Claims that could
// not be traced to a source are annotated inline so a reviewer sees at
// a glance what still needs backing.
func (r *Renderer) RenderTeaser(company string, slides []model.Slide, report model.AuditReport) string {
	unverified := unverifiedBySlide(report)

	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", company)
	for _, slide := range slides {
		fmt.Fprintf(&sb, "## Slide %d: %s\n\n%s\n\n", slide.ID, slide.Title, slide.Body)
		if claims := unverified[slide.ID]; len(claims) > 0 {
			sb.WriteString("> Unverified claims on this slide:\n")
			for _, c := range claims {
				fmt.Fprintf(&sb, "> - %s (%s)\n", c.Text, c.Kind)
			}
			sb.WriteString("\n")
		}
	}
	if r.includeFooter {
		fmt.Fprintf(&sb, "---\n%s\n", footerText)
	}
	return sb.String()
}

// RenderAuditMarkdown renders the full claim-by-claim audit.
func (r *Renderer) RenderAuditMarkdown(report model.AuditReport) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# Citation Report: %s\n\n", report.Company)
	fmt.Fprintf(&sb, "Total claims: %d\n", report.TotalClaims)
	fmt.Fprintf(&sb, "Verified: %d (%.1f%%)\n\n", report.VerifiedClaims, report.VerificationRate*100)

	if len(report.ByProvenance) > 0 {
		sb.WriteString("## By Provenance\n\n")
		provs := make([]string, 0, len(report.ByProvenance))
		for p := range report.ByProvenance {
			provs = append(provs, string(p))
		}
		sort.Strings(provs)
		for _, p := range provs {
			fmt.Fprintf(&sb, "- %s: %d\n", p, report.ByProvenance[model.Provenance(p)])
		}
		sb.WriteString("\n")
	}

	for _, slide := range report.Slides {
		fmt.Fprintf(&sb, "## Slide %d\n\n", slide.SlideID)
		sb.WriteString("| Claim | Kind | Provenance | Source |\n")
		sb.WriteString("| --- | --- | --- | --- |\n")
		for _, c := range slide.Claims {
			mark := "✗"
			if c.Verified {
				mark = "✓"
			}
			fmt.Fprintf(&sb, "| %s %s | %s | %s | %s |\n",
				mark, c.Text, c.Kind, c.Provenance, c.SourceReference)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// RenderAuditJSON serializes the audit report.
func (r *Renderer) RenderAuditJSON(report model.AuditReport) ([]byte, error) {
	return json.MarshalIndent(report, "", "  ")
}

// RenderSummaryJSON serializes the flat run summary.
func (r *Renderer) RenderSummaryJSON(summary model.RunSummary) ([]byte, error) {
	return json.MarshalIndent(summary, "", "  ")
}

// RenderWebData renders the scraped page texts for reviewer reference.
func (r *Renderer) RenderWebData(company string, pages map[string]string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# Scraped Website Data: %s\n\n", company)
	if len(pages) == 0 {
		sb.WriteString("No pages were scraped for this run.\n")
		return sb.String()
	}
	keys := make([]string, 0, len(pages))
	for k := range pages {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&sb, "## %s\n\n%s\n\n", k, pages[k])
	}
	return sb.String()
}

func unverifiedBySlide(report model.AuditReport) map[int][]model.ClaimEntry {
	out := map[int][]model.ClaimEntry{}
	for _, slide := range report.Slides {
		for _, c := range slide.Claims {
			if !c.Verified {
				out[slide.SlideID] = append(out[slide.SlideID], c)
			}
		}
	}
	return out
}
