package model

// ClaimEntry is one claim as rendered in the audit report.
type ClaimEntry struct {
	Text            string     `json:"text"`
	Kind            ClaimKind  `json:"kind"`
	Provenance      Provenance `json:"provenance"`
	SourceReference string     `json:"source_reference,omitempty"`
	Verified        bool       `json:"verified"`
}

// SlideClaims groups the audit entries of a single slide, in text order.
type SlideClaims struct {
	SlideID int          `json:"slide_id"`
	Claims  []ClaimEntry `json:"claims"`
}

/// AuditReport is the ledger's finalized view of a run: every claim grouped by
// slide plus the aggregate verification rate. Carries no wall-clock state so
// finalizing twice yields identical reports.
type AuditReport struct {
	Company          string             `json:"company"`
	TotalClaims      int                `json:"total_claims"`
	VerifiedClaims   int                `json:"verified_claims"`
	VerificationRate float64            `json:"verification_rate"`
	ByProvenance     map[Provenance]int `json:"by_provenance"`
	Slides           []SlideClaims      `json:"slides"`
}

// ClaimRecord is the flat serialized form of one claim in the run summary.
type ClaimRecord struct {
	SlideID         int        `json:"slide_id"`
	Text            string     `json:"text"`
	Kind            ClaimKind  `json:"kind"`
	Provenance      Provenance `json:"provenance"`
	SourceReference string     `json:"source_reference,omitempty"`
	Verified        bool       `json:"verified"`
}

// RunSummary is the per-run persisted artifact: the verification rate and a
// flat claim list. This is the only core state serialized to disk, used for
// test fixtures and audit replay.
type RunSummary struct {
	Company          string        `json:"company"`
	VerificationRate float64       `json:"verification_rate"`
	Claims           []ClaimRecord `json:"claims"`
}

// ChartPoint is one (fiscal year, value) pair of a chart series.
type ChartPoint struct {
	Year  int     `json:"year"`
	Value float64 `json:"value"`
}

// ChartSeries is one named, year-ordered series ready for rendering.
type ChartSeries struct {
	Metric string       `json:"metric"`
	Points []ChartPoint `json:"points"`
}

// ChartSet carries everything the renderer needs to draw the financial
// charts. Rendering itself happens outside the core.
type ChartSet struct {
	Series       []ChartSeries `json:"series,omitempty"`
	RevenueCAGR  *float64      `json:"revenue_cagr,omitempty"`   // percent
	LatestMargin *float64      `json:"latest_margin,omitempty"`  // EBITDA margin percent, latest common year
	MarginYear   int           `json:"margin_year,omitempty"`
}
