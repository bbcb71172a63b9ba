package classify

import (
	"context"
	"errors"
	"testing"

	"github.com/nmishin/deckforge/internal/llm"
)

type stubProvider struct {
	text string
	err  error
}

func (s *stubProvider) Name() string                       { return "stub" }
func (s *stubProvider) IsAvailable(context.Context) bool   { return true }
func (s *stubProvider) Complete(_ context.Context, _ llm.CompletionRequest) (*llm.CompletionResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &llm.CompletionResponse{Text: s.text, Model: "stub"}, nil
}

func TestClassify_HintWins(t *testing.T) {
	c := New(nil, nil)
	cls := c.Classify(context.Background(), "Healthcare", "software platform cloud saas")
	if cls.Domain != "healthcare" {
		t.Errorf("domain = %q, want healthcare", cls.Domain)
	}
	if cls.Confidence != 0.95 {
		t.Errorf("confidence = %v, want 0.95", cls.Confidence)
	}
}

func TestClassify_HintMapping(t *testing.T) {
	c := New(nil, nil)
	cls := c.Classify(context.Background(), "IT Services", "")
	if cls.Domain != "technology" {
		t.Errorf("domain = %q, want technology", cls.Domain)
	}
}

func TestClassify_Keywords(t *testing.T) {
	c := New(nil, nil)
	text := "Precision machining and fabrication company with a manufacturing plant producing industrial components."
	cls := c.Classify(context.Background(), "", text)
	if cls.Domain != "manufacturing" {
		t.Errorf("domain = %q, want manufacturing", cls.Domain)
	}
	if cls.Confidence <= 0.5 || cls.Confidence > 0.9 {
		t.Errorf("confidence = %v, want in (0.5, 0.9]", cls.Confidence)
	}
}

func TestClassify_NoKeywordsLowConfidence(t *testing.T) {
	c := New(nil, nil)
	cls := c.Classify(context.Background(), "", "an unremarkable description with nothing recognizable")
	if cls.Confidence != 0.5 {
		t.Errorf("confidence = %v, want 0.5 default", cls.Confidence)
	}
}

func TestClassify_ModelResponse(t *testing.T) {
	p := &stubProvider{text: "Here is my answer:\n{\"domain\": \"logistics\", \"confidence\": 0.88, \"reasoning\": \"freight operator\"}"}
	c := New(p, nil)
	cls := c.Classify(context.Background(), "", "some description")
	if cls.Domain != "logistics" || cls.Confidence != 0.88 {
		t.Errorf("got %+v", cls)
	}
}

func TestClassify_ModelFailureFallsBack(t *testing.T) {
	p := &stubProvider{err: errors.New("connection refused")}
	c := New(p, nil)
	cls := c.Classify(context.Background(), "", "express logistics and freight distribution network")
	if cls.Domain != "logistics" {
		t.Errorf("fallback domain = %q, want logistics", cls.Domain)
	}
}

func TestClassify_ModelUnknownDomainFallsBack(t *testing.T) {
	p := &stubProvider{text: `{"domain": "finance", "confidence": 0.9, "reasoning": "bank"}`}
	c := New(p, nil)
	cls := c.Classify(context.Background(), "", "pharmaceutical formulations and clinical diagnostics")
	if cls.Domain != "healthcare" {
		t.Errorf("fallback domain = %q, want healthcare", cls.Domain)
	}
}
