package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/nmishin/deckforge/internal/model"
)

var unsafeFilenameRe = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// assemble writes every run artifact under outDir/<company>-<timestamp>/
// and returns the written paths in a fixed order.
func (p *Pipeline) assemble(outDir string, rec *model.SourceRecord, slides []model.Slide, charts model.ChartSet, report model.AuditReport, result *model.RunResult) ([]string, error) {
	stamp := p.clock().UTC().Format("20060102-150405")
	dir := filepath.Join(outDir, fmt.Sprintf("%s-%s", safeFilename(rec.CompanyName), stamp))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	var artifacts []string
	write := func(name string, data []byte) error {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
		artifacts = append(artifacts, path)
		return nil
	}

	teaser := p.renderer.RenderTeaser(rec.CompanyName, slides, report)
	if err := write("Teaser.md", []byte(teaser)); err != nil {
		return nil, err
	}

	audit := p.renderer.RenderAuditMarkdown(report)
	if err := write("Audit.md", []byte(audit)); err != nil {
		return nil, err
	}
	auditJSON, err := p.renderer.RenderAuditJSON(report)
	if err != nil {
		return nil, fmt.Errorf("marshal audit: %w", err)
	}
	if err := write("Audit.json", auditJSON); err != nil {
		return nil, err
	}

	summaryJSON, err := p.renderer.RenderSummaryJSON(result.Summary)
	if err != nil {
		return nil, fmt.Errorf("marshal summary: %w", err)
	}
	if err := write("Summary.json", summaryJSON); err != nil {
		return nil, err
	}

	chartsJSON, err := marshalCharts(charts)
	if err != nil {
		return nil, fmt.Errorf("marshal charts: %w", err)
	}
	if err := write("Charts.json", chartsJSON); err != nil {
		return nil, err
	}

	if len(rec.ScrapedPages) > 0 {
		web := p.renderer.RenderWebData(rec.CompanyName, rec.ScrapedPages)
		if err := write("WebData.md", []byte(web)); err != nil {
			return nil, err
		}
	}
	return artifacts, nil
}

func marshalCharts(charts model.ChartSet) ([]byte, error) {
	return json.MarshalIndent(charts, "", "  ")
}

// safeFilename keeps company names usable as directory names.
func safeFilename(name string) string {
	name = strings.TrimSpace(name)
	name = unsafeFilenameRe.ReplaceAllString(name, "_")
	name = strings.Trim(name, "_")
	if name == "" {
		return "company"
	}
	return name
}
