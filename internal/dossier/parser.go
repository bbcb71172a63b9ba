// Package dossier parses company one-pager markdown files into the
// structured source record the rest of the pipeline verifies against.
// Parsing is fully deterministic; no model calls are involved.
package dossier

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/nmishin/deckforge/internal/model"
)

var (
	titleRe   = regexp.MustCompile(`(?m)^#\s+(.+?)\s*$`)
	sectionRe = regexp.MustCompile(`(?m)^##\s+(.+?)\s*$`)
	urlRe     = regexp.MustCompile(`https?://[^\s)]+`)
	domainRe  = regexp.MustCompile(`(?im)^.*Domain:\s*\*{0,2}([^*\n]+?)\*{0,2}\s*$`)
	nonWordRe = regexp.MustCompile(`[^a-z0-9]+`)
)

// canonicalMetrics maps one-pager row labels to the metric keys used
// throughout the pipeline. Labels not listed here keep their snake_case name.
var canonicalMetrics = map[string]string{
	"revenue_from_operations": "revenue",
	"operating_ebitda":        "ebitda",
	"pat":                     "pat",
	"pat_margin":              "pat_margin",
	"roce":                    "roce",
	"roe":                     "roe",
	"asset_turnover":          "asset_turnover",
	"borrowings":              "borrowings",
}

// Sections consumed structurally rather than kept as prose.
var structuredSections = map[string]bool{
	"financials_status": true,
	"financials":        true,
	"shareholders":      true,
	"website":           true,
}

// Parse reads a one-pager and returns the structured company record.
// It fails only on input that has no company heading at all; missing
// or malformed sections are left empty and caught later by Validate.
func Parse(md string) (*model.SourceRecord, error) {
	title := titleRe.FindStringSubmatch(md)
	if title == nil {
		return nil, fmt.Errorf("dossier: no company heading found")
	}

	rec := &model.SourceRecord{
		CompanyName:  strings.TrimSpace(title[1]),
		Financials:   map[string]map[int]float64{},
		TextSections: map[string]string{},
	}

	for name, body := range splitSections(md) {
		switch {
		case structuredSections[name]:
			switch name {
			case "financials_status", "financials":
				parseFinancials(body, rec.Financials)
			case "shareholders":
				rec.Shareholders = parseShareholders(body)
			case "website":
				rec.Website = parseWebsite(body)
			}
		case name == "details":
			if m := domainRe.FindStringSubmatch(body); m != nil {
				rec.DomainHint = strings.TrimSpace(m[1])
			}
			rec.TextSections[name] = body
		default:
			rec.TextSections[name] = body
		}
	}
	return rec, nil
}

// splitSections cuts the document on "## " headings and returns each
// section body keyed by its snake_case heading.
func splitSections(md string) map[string]string {
	out := map[string]string{}
	locs := sectionRe.FindAllStringSubmatchIndex(md, -1)
	for i, loc := range locs {
		name := snakeCase(md[loc[2]:loc[3]])
		end := len(md)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		body := strings.TrimSpace(md[loc[1]:end])
		if name != "" && body != "" {
			out[name] = body
		}
	}
	return out
}

// parseFinancials reads metric rows of the form
//
//	Revenue From Operations | 2024: 32.1 | 2025: 38.4 | 2026: 42.3
//
// into the metric map. Entries that do not parse are skipped.
func parseFinancials(body string, out map[string]map[int]float64) {
	for _, line := range strings.Split(body, "\n") {
		line = strings.Trim(strings.TrimSpace(line), "|-")
		cells := strings.Split(line, "|")
		if len(cells) < 2 {
			continue
		}
		label := strings.Trim(strings.TrimSpace(cells[0]), "*- ")
		metric := snakeCase(label)
		if metric == "" {
			continue
		}
		if canon, ok := canonicalMetrics[metric]; ok {
			metric = canon
		}
		series := map[int]float64{}
		for _, cell := range cells[1:] {
			year, value, ok := parseYearValue(cell)
			if ok {
				series[year] = value
			}
		}
		if len(series) > 0 {
			out[metric] = series
		}
	}
}

func parseYearValue(cell string) (int, float64, bool) {
	parts := strings.SplitN(cell, ":", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	year, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || year < 1900 || year > 2200 {
		return 0, 0, false
	}
	raw := strings.TrimSpace(parts[1])
	if raw == "" || strings.EqualFold(raw, "none") {
		return 0, 0, false
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, 0, false
	}
	return year, value, true
}

// parseShareholders reads table rows | Name | Percent | Type |.
// Header and separator rows are skipped, as are holdings outside [0, 100].
func parseShareholders(body string) []model.Shareholder {
	var out []model.Shareholder
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "|") {
			continue
		}
		cells := strings.Split(strings.Trim(line, "|"), "|")
		if len(cells) < 2 {
			continue
		}
		name := strings.TrimSpace(cells[0])
		if name == "" || strings.Contains(name, "---") ||
			strings.EqualFold(name, "shareholder name") || strings.EqualFold(name, "name") {
			continue
		}
		percent, err := strconv.ParseFloat(strings.TrimSpace(cells[1]), 64)
		if err != nil || percent < 0 || percent > 100 {
			continue
		}
		out = append(out, model.Shareholder{Name: name, Percent: percent})
	}
	return out
}

// FindDomainHint scans a raw one-pager for its declared domain without
// a full parse. Classification runs before structured extraction, so it
// cannot use the parsed record.
func FindDomainHint(md string) string {
	if m := domainRe.FindStringSubmatch(md); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

func parseWebsite(body string) string {
	if m := urlRe.FindString(body); m != "" {
		return m
	}
	return strings.TrimSpace(body)
}

func snakeCase(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = nonWordRe.ReplaceAllString(s, "_")
	return strings.Trim(s, "_")
}
