// Package pipeline orchestrates a full teaser run: classification,
// dossier extraction, website scraping, content writing, chart building,
// claim verification and final assembly. Stages run in a fixed order and
// only the structured-data gate can halt a run; every other failure
// degrades the output and flags it for review.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nmishin/deckforge/internal/chart"
	"github.com/nmishin/deckforge/internal/classify"
	"github.com/nmishin/deckforge/internal/dossier"
	"github.com/nmishin/deckforge/internal/llm"
	"github.com/nmishin/deckforge/internal/logger"
	"github.com/nmishin/deckforge/internal/model"
	"github.com/nmishin/deckforge/internal/scrape"
	"github.com/nmishin/deckforge/internal/verify"
	"github.com/nmishin/deckforge/internal/writer"
)

// Classifier decides the company's industry domain.
type Classifier interface {
	Classify(ctx context.Context, hint, text string) model.Classification
}

// Scraper fetches the visible text of a company website's key pages.
type Scraper interface {
	Scrape(ctx context.Context, website string) (map[string]string, error)
}

// ContentWriter produces the three teaser slides.
type ContentWriter interface {
	Write(ctx context.Context, rec *model.SourceRecord, cls model.Classification) []model.Slide
}

// Pipeline runs the complete dossier-to-teaser sequence.
type Pipeline struct {
	classifier Classifier
	scraper    Scraper
	writer     ContentWriter
	renderer   *Renderer
	config     *model.Config
	log        *logger.Logger
	clock      func() time.Time
}

// New wires a pipeline from configuration. An LLM provider failure is
// not fatal: classification and writing fall back to their
// deterministic paths.
func New(cfg *model.Config, log *logger.Logger) *Pipeline {
	if log == nil {
		log = logger.Nop()
	}

	var provider llm.Provider
	if cfg.LLM.Provider != "" {
		p, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM))
		if err != nil {
			log.WithError(err).Warn("LLM provider unavailable, using deterministic paths")
		} else {
			provider = p
		}
	}

	return &Pipeline{
		classifier: classify.New(provider, log),
		scraper:    scrape.New(cfg, log),
		writer:     writer.New(provider, log),
		renderer:   NewRenderer(cfg.Output.IncludeFooter),
		config:     cfg,
		log:        log,
		clock:      time.Now,
	}
}

// NewWithComponents builds a pipeline from explicit collaborators.
func NewWithComponents(cfg *model.Config, log *logger.Logger, c Classifier, s Scraper, w ContentWriter) *Pipeline {
	if log == nil {
		log = logger.Nop()
	}
	return &Pipeline{
		classifier: c,
		scraper:    s,
		writer:     w,
		renderer:   NewRenderer(cfg.Output.IncludeFooter),
		config:     cfg,
		log:        log,
		clock:      time.Now,
	}
}

// Run processes one dossier through every stage and writes the output
// artifacts to outDir. A halt is a modeled outcome, not an error; the
// returned error covers only infrastructure failures such as being
// unable to write artifacts.
func (p *Pipeline) Run(ctx context.Context, dossierMD, outDir string) (*model.RunResult, error) {
	result := &model.RunResult{
		State:     model.StateStarted,
		StartedAt: p.clock().UTC(),
	}
	defer func() { result.FinishedAt = p.clock().UTC() }()

	// 1. Classify on the raw dossier text.
	hint := dossier.FindDomainHint(dossierMD)
	result.Classification = p.classifier.Classify(ctx, hint, dossierMD)
	decision := evalClassificationGate(result.Classification, p.config.Gates.ClassificationConfidence)
	result.Decisions = append(result.Decisions, decision)
	if decision.Outcome == model.GateWarn {
		result.NeedsDomainReview = true
		p.log.WithFields(map[string]interface{}{
			"domain":     result.Classification.Domain,
			"confidence": result.Classification.Confidence,
		}).Warn("low classification confidence, flagging for domain review")
	}
	result.State = model.StateClassified

	// 2. Extract structured data and apply the structural gate.
	rec, err := dossier.Parse(dossierMD)
	if err != nil {
		return p.halt(result, structuralGate, err), nil
	}
	result.Company = rec.CompanyName
	structural := evalStructuralGate(rec, p.config.Gates.RequiredYears)
	result.Decisions = append(result.Decisions, structural)
	if structural.Outcome == model.GateHalt {
		result.State = model.StateHalted
		p.log.WithField("reason", structural.Reason).Error("structural gate halted the run")
		return result, nil
	}
	result.State = model.StateExtracted

	// 3. Scrape the company website.
	if p.config.Scrape.Enabled && rec.Website != "" {
		pages, err := p.scraper.Scrape(ctx, rec.Website)
		if err != nil {
			p.log.WithError(err).Warn("scrape failed, continuing without website evidence")
			pages = map[string]string{}
		}
		rec.ScrapedPages = pages
		result.State = model.StateScraped
	} else {
		rec.ScrapedPages = map[string]string{}
		result.State = model.StateScrapeSkipped
	}

	// 4. Write slide content.
	slides := p.writer.Write(ctx, rec, result.Classification)
	result.State = model.StateWritten

	// 5. Build charts.
	charts, warnings := chart.Build(rec.Financials)
	for _, w := range warnings {
		p.log.WithField("warning", w).Warn("chart builder")
	}
	result.State = model.StateCharted

	// 6. Verify every numeric claim in the written slides.
	extractor := verify.NewExtractor()
	matcher := verify.NewMatcher(rec)
	ledger := verify.NewLedger(rec.CompanyName)
	for _, slide := range slides {
		claims := extractor.Extract(slide.ID, slide.Body)
		matcher.MatchAll(claims)
		ledger.Record(claims)
	}
	verification := evalVerificationGate(ledger.Rate(), p.config.Gates.VerificationRate)
	result.Decisions = append(result.Decisions, verification)
	if verification.Outcome == model.GateWarn {
		result.NeedsManualReview = true
		p.log.WithFields(map[string]interface{}{
			"rate":      ledger.Rate(),
			"threshold": p.config.Gates.VerificationRate,
		}).Warn("verification below threshold, flagging for manual review")
	}
	result.Summary = ledger.Summary()
	result.State = model.StateVerified

	// 7. Assemble artifacts.
	artifacts, err := p.assemble(outDir, rec, slides, charts, ledger.Finalize(), result)
	if err != nil {
		return result, fmt.Errorf("assemble: %w", err)
	}
	result.Artifacts = artifacts
	result.State = model.StateAssembled
	return result, nil
}

// halt records a structural failure that prevented extraction entirely.
func (p *Pipeline) halt(result *model.RunResult, gate string, err error) *model.RunResult {
	reason := err.Error()
	var verr *dossier.ValidationError
	if errors.As(err, &verr) {
		reason = fmt.Sprintf("%s: %s", verr.Field, verr.Reason)
	}
	result.Decisions = append(result.Decisions, model.GateDecision{
		Gate:    gate,
		Outcome: model.GateHalt,
		Reason:  reason,
	})
	result.State = model.StateHalted
	p.log.WithField("reason", reason).Error("run halted")
	return result
}
