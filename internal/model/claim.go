package model

// ClaimKind categorizes the shape of a detected claim
type ClaimKind string

const (
	ClaimPercentage ClaimKind = "percentage"      // "12.2%"
	ClaimCurrency   ClaimKind = "currency_amount" // "₹42.30 cr"
	ClaimCount      ClaimKind = "count"           // "12 facilities"
	ClaimFiscalYear ClaimKind = "fiscal_year"     // "FY26"
	ClaimMultiple   ClaimKind = "multiple"        // "3.2x"
)

// Provenance is the admissible origin category assigned to a claim
type Provenance string

const (
	ProvenanceUnverified Provenance = "unverified"
	ProvenanceOnePager   Provenance = "onepager"   // literal match in the dossier
	ProvenanceWebsite    Provenance = "website"    // found in a scraped page
	ProvenanceCalculated Provenance = "calculated" // arithmetic derivation marker
)

// Claim is one atomic factual assertion detected in generated slide text.
// A claim starts unverified; Resolve is the only permitted state change.
type Claim struct {
	RawText         string     `json:"raw_text"`         // matched span plus surrounding context window
	MatchText       string     `json:"match_text"`       // the exact span the pattern matched
	SlideID         int        `json:"slide_id"`         // output slide the claim appeared on
	Kind            ClaimKind  `json:"kind"`             // which pattern produced it
	Provenance      Provenance `json:"provenance"`       // assigned origin, unverified until matched
	SourceReference string     `json:"source_reference,omitempty"` // section name, page key, or derivation label
}

// Verified reports whether the claim has been assigned an admissible origin.
func (c *Claim) Verified() bool {
	return c.Provenance != ProvenanceUnverified
}

// Resolve performs the single allowed provenance transition,
// unverified → {onepager|website|calculated}. A claim never regresses to
// unverified and never moves between verified origins; later calls are no-ops.
func (c *Claim) Resolve(p Provenance, ref string) bool {
	if c.Provenance != ProvenanceUnverified || p == ProvenanceUnverified {
		return false
	}
	c.Provenance = p
	c.SourceReference = ref
	return true
}
