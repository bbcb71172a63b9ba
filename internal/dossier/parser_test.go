package dossier

import (
	"errors"
	"testing"

	"github.com/nmishin/deckforge/internal/model"
)

const sampleOnePager = `# Acme Precision Components

## Details

- Domain: **Manufacturing**
- Founded: **1998**
- Headquarters: **Pune, India**

## Business Description

Precision machining company serving aerospace and automotive customers,
operating 12 facilities across India.

## Website

https://acmeprecision.example.com

## Shareholders

| SHAREHOLDER NAME | VALUE | TYPE |
| --- | --- | --- |
| Founders Trust | 62.5 | Promoter |
| Growth Fund II | 27.5 | PE |
| Bad Row | 140.0 | Typo |

## Financials Status

| Revenue From Operations | 2024: 32.1 | 2025: 38.4 | 2026: 42.3 |
| Operating EBITDA | 2024: 5.1 | 2025: 6.9 | 2026: 8.2 |
| PAT Margin | 2024: 9.8 | 2025: 10.4 | 2026: 11.1 |
| RoCE | 2024: none | 2025: 18.2 | 2026: 19.5 |
`

func TestParse(t *testing.T) {
	rec, err := Parse(sampleOnePager)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	if rec.CompanyName != "Acme Precision Components" {
		t.Errorf("company = %q", rec.CompanyName)
	}
	if rec.Website != "https://acmeprecision.example.com" {
		t.Errorf("website = %q", rec.Website)
	}
	if rec.DomainHint != "Manufacturing" {
		t.Errorf("domain hint = %q", rec.DomainHint)
	}

	if _, ok := rec.TextSections["business_description"]; !ok {
		t.Error("business_description section missing")
	}
	if _, ok := rec.TextSections["financials_status"]; ok {
		t.Error("financial table should not appear as a prose section")
	}

	rev := rec.Financials["revenue"]
	if len(rev) != 3 || rev[2026] != 42.3 {
		t.Errorf("revenue = %v", rev)
	}
	if rec.Financials["ebitda"][2025] != 6.9 {
		t.Errorf("ebitda = %v", rec.Financials["ebitda"])
	}
	if rec.Financials["pat_margin"][2024] != 9.8 {
		t.Errorf("pat_margin = %v", rec.Financials["pat_margin"])
	}
	// "none" cells are dropped, the rest of the row survives
	roce := rec.Financials["roce"]
	if len(roce) != 2 || roce[2026] != 19.5 {
		t.Errorf("roce = %v", roce)
	}

	if len(rec.Shareholders) != 2 {
		t.Fatalf("shareholders = %+v", rec.Shareholders)
	}
	if rec.Shareholders[0].Name != "Founders Trust" || rec.Shareholders[0].Percent != 62.5 {
		t.Errorf("first shareholder = %+v", rec.Shareholders[0])
	}
}

func TestParse_NoHeading(t *testing.T) {
	if _, err := Parse("just some text with no heading"); err == nil {
		t.Error("expected error for document without company heading")
	}
}

func TestSnakeCase(t *testing.T) {
	cases := map[string]string{
		"Business Description":                   "business_description",
		"Application areas / Industries served":  "application_areas_industries_served",
		"  Awards and Certifications ":           "awards_and_certifications",
		"SWOT":                                   "swot",
	}
	for in, want := range cases {
		if got := snakeCase(in); got != want {
			t.Errorf("snakeCase(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestValidate(t *testing.T) {
	valid := func() *model.SourceRecord {
		rec, err := Parse(sampleOnePager)
		if err != nil {
			t.Fatalf("parse failed: %v", err)
		}
		return rec
	}

	if err := Validate(valid(), 3); err != nil {
		t.Errorf("valid record rejected: %v", err)
	}

	rec := valid()
	delete(rec.Financials, "ebitda")
	err := Validate(rec, 3)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Field != "ebitda" {
		t.Errorf("field = %q, want ebitda", verr.Field)
	}

	rec = valid()
	delete(rec.Financials["revenue"], 2024)
	err = Validate(rec, 3)
	if !errors.As(err, &verr) || verr.Field != "revenue" {
		t.Errorf("two-year revenue should fail on revenue, got %v", err)
	}

	rec = valid()
	rec.CompanyName = ""
	if err := Validate(rec, 3); err == nil {
		t.Error("missing company name accepted")
	}
}
