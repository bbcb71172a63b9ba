// Package writer produces the three-slide teaser content from a parsed
// company record. Slide structure is fixed; a language model may polish
// the prose but every numeric figure must survive untouched, so a
// polish that drops or alters a figure is discarded.
package writer

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/nmishin/deckforge/internal/chart"
	"github.com/nmishin/deckforge/internal/llm"
	"github.com/nmishin/deckforge/internal/logger"
	"github.com/nmishin/deckforge/internal/model"
)

const maxOverviewLen = 400

var figureRe = regexp.MustCompile(`\d+(?:[.,]\d+)*`)

type Writer struct {
	provider llm.Provider
	log      *logger.Logger
}

// New returns a writer. provider may be nil, which disables polish.
func New(provider llm.Provider, log *logger.Logger) *Writer {
	if log == nil {
		log = logger.Nop()
	}
	return &Writer{provider: provider, log: log}
}

// Write generates the three slides for the company.
func (w *Writer) Write(ctx context.Context, rec *model.SourceRecord, cls model.Classification) []model.Slide {
	titles := titlesFor(cls.Domain)

	slides := []model.Slide{
		{ID: 1, Title: titles.Profile, Body: w.profileBody(rec, cls)},
		{ID: 2, Title: titles.Financials, Body: w.financialBody(rec)},
		{ID: 3, Title: titles.Highlights, Body: w.highlightsBody(rec, cls)},
	}

	if w.provider != nil && w.provider.IsAvailable(ctx) {
		for i := range slides {
			slides[i].Body = w.polish(ctx, slides[i].Body)
		}
	}
	return slides
}

func (w *Writer) profileBody(rec *model.SourceRecord, cls model.Classification) string {
	var sb strings.Builder

	for _, name := range overviewSections {
		if text, ok := rec.TextSections[name]; ok {
			sb.WriteString(shorten(text, maxOverviewLen))
			sb.WriteString("\n\n")
			break
		}
	}
	fmt.Fprintf(&sb, "Sector: %s\n", cls.Domain)

	for _, name := range profileSections {
		if text, ok := rec.TextSections[name]; ok {
			fmt.Fprintf(&sb, "\n%s\n", text)
		}
	}
	return strings.TrimSpace(sb.String())
}

func (w *Writer) financialBody(rec *model.SourceRecord) string {
	var sb strings.Builder

	if revenue, ok := rec.Financials["revenue"]; ok && len(revenue) > 0 {
		years := sortedYears(revenue)
		latest := years[len(years)-1]
		fmt.Fprintf(&sb, "Revenue of ₹%.2f Cr in FY%02d", revenue[latest], latest%100)
		if ebitda, ok := rec.Financials["ebitda"]; ok {
			if v, ok := ebitda[latest]; ok {
				fmt.Fprintf(&sb, " with EBITDA of ₹%.2f Cr", v)
			}
		}
		sb.WriteString(".\n")

		if cagr := chart.CAGR(revenue); cagr != nil {
			n := years[len(years)-1] - years[0]
			fmt.Fprintf(&sb, "Revenue CAGR of %.1f%% over %d years.\n", *cagr, n)
		}
	}

	if margin, year := chart.LatestEBITDAMargin(rec.Financials); margin != nil {
		fmt.Fprintf(&sb, "EBITDA margin of %.1f%% in FY%02d.\n", *margin, year%100)
	}

	if patMargin, ok := rec.Financials["pat_margin"]; ok && len(patMargin) > 0 {
		years := sortedYears(patMargin)
		latest := years[len(years)-1]
		fmt.Fprintf(&sb, "PAT margin of %.1f%% in FY%02d.\n", patMargin[latest], latest%100)
	}
	return strings.TrimSpace(sb.String())
}

func (w *Writer) highlightsBody(rec *model.SourceRecord, cls model.Classification) string {
	var sb strings.Builder

	if len(rec.Shareholders) > 0 {
		sb.WriteString("Ownership:\n")
		for _, sh := range rec.Shareholders {
			fmt.Fprintf(&sb, "- %s: %.1f%%\n", sh.Name, sh.Percent)
		}
		sb.WriteString("\n")
	}

	for _, name := range []string{"future_plans", "swot", "key_milestones"} {
		if text, ok := rec.TextSections[name]; ok {
			fmt.Fprintf(&sb, "%s\n\n", text)
		}
	}

	fmt.Fprintf(&sb, "Established %s player, website: %s",
		strings.ToLower(cls.Domain), rec.Website)
	return strings.TrimSpace(sb.String())
}

const polishPrompt = `Rewrite the following investor-teaser slide text so it reads crisply and professionally. Keep every number, percentage and currency figure exactly as written. Keep the same facts, do not invent new ones. Return only the rewritten text.

%s`

// polish asks the model to rewrite a slide body and keeps the original
// whenever the rewrite loses or changes any figure.
func (w *Writer) polish(ctx context.Context, body string) string {
	resp, err := w.provider.Complete(ctx, llm.CompletionRequest{
		System:      "You edit M&A teaser copy. Preserve all figures exactly.",
		Prompt:      fmt.Sprintf(polishPrompt, body),
		MaxTokens:   800,
		Temperature: 0.3,
	})
	if err != nil {
		w.log.WithError(err).Warn("polish failed, keeping template text")
		return body
	}
	polished := strings.TrimSpace(resp.Text)
	if polished == "" || !preservesFigures(body, polished) {
		w.log.Warn("polish dropped figures, keeping template text")
		return body
	}
	return polished
}

// preservesFigures reports whether every numeric token of the original
// still appears in the rewrite.
func preservesFigures(original, rewritten string) bool {
	for _, figure := range figureRe.FindAllString(original, -1) {
		if !strings.Contains(rewritten, figure) {
			return false
		}
	}
	return true
}

func shorten(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	cut := s[:n]
	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	}
	return cut + "..."
}

func sortedYears(series map[int]float64) []int {
	years := make([]int, 0, len(series))
	for year := range series {
		years = append(years, year)
	}
	sort.Ints(years)
	return years
}
