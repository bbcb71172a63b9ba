package model

import "time"

// RunState tracks a run through the fixed stage sequence. Halted is terminal
// and reachable only from the structured-data gate; Assembled is the only
// other terminal state.
type RunState string

const (
	StateStarted       RunState = "started"
	StateClassified    RunState = "classified"
	StateExtracted     RunState = "extracted"
	StateScraped       RunState = "scraped"
	StateScrapeSkipped RunState = "scrape_skipped"
	StateWritten       RunState = "written"
	StateCharted       RunState = "charted"
	StateVerified      RunState = "verified"
	StateAssembled     RunState = "assembled"
	StateHalted        RunState = "halted"
)

// GateOutcome is the result of evaluating a named gate.
type GateOutcome string

const (
	GatePass GateOutcome = "pass"
	GateWarn GateOutcome = "warn" // continue, flag output for manual review
	GateHalt GateOutcome = "halt" // terminate the run
)

// GateDecision records one gate evaluation: the signal value that was
// measured, the configured threshold, and the outcome. Produced and consumed
// within a single run, never persisted.
type GateDecision struct {
	Gate      string      `json:"gate"`
	Outcome   GateOutcome `json:"outcome"`
	Value     float64     `json:"value"`
	Threshold float64     `json:"threshold,omitempty"`
	Reason    string      `json:"reason,omitempty"`
}

// RunResult is what the pipeline hands back to its caller: either a complete
// output-with-warnings or an explicit halt naming the failing field.
type RunResult struct {
	Company           string         `json:"company"`
	State             RunState       `json:"state"`
	Classification    Classification `json:"classification"`
	Decisions         []GateDecision `json:"decisions"`
	NeedsManualReview bool           `json:"needs_manual_review"`
	NeedsDomainReview bool           `json:"needs_domain_review"`
	Summary           RunSummary     `json:"summary"`
	Artifacts         []string       `json:"artifacts,omitempty"`
	StartedAt         time.Time      `json:"started_at"`
	FinishedAt        time.Time      `json:"finished_at"`
}

// Halted reports whether the run terminated at the structural gate.
func (r *RunResult) Halted() bool {
	return r.State == StateHalted
}
