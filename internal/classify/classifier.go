// Package classify assigns an industry domain to a company based on its
// dossier text. A domain hint from the dossier wins outright; otherwise
// keyword scoring decides, optionally refined by a language model.
package classify

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/nmishin/deckforge/internal/llm"
	"github.com/nmishin/deckforge/internal/logger"
	"github.com/nmishin/deckforge/internal/model"
)

const (
	hintConfidence    = 0.95
	defaultConfidence = 0.5
	maxConfidence     = 0.9
)

type Classifier struct {
	provider llm.Provider
	log      *logger.Logger
}

// New returns a classifier. provider may be nil, in which case only the
// deterministic keyword path runs.
func New(provider llm.Provider, log *logger.Logger) *Classifier {
	if log == nil {
		log = logger.Nop()
	}
	return &Classifier{provider: provider, log: log}
}

// Classify decides the company's domain. hint is the dossier's declared
// domain, text is the raw dossier prose.
func (c *Classifier) Classify(ctx context.Context, hint, text string) model.Classification {
	if hint != "" {
		if key := normalizeHint(hint); key != "" {
			return model.Classification{
				Domain:     key,
				Confidence: hintConfidence,
				Reasoning:  fmt.Sprintf("domain declared in dossier: %s", hint),
			}
		}
		c.log.WithField("hint", hint).Warn("unrecognized domain hint, falling back to text")
	}

	if c.provider != nil && c.provider.IsAvailable(ctx) {
		if cls, err := c.classifyWithModel(ctx, text); err == nil {
			return cls
		} else {
			c.log.WithError(err).Warn("model classification failed, using keywords")
		}
	}
	return classifyWithKeywords(text)
}

func normalizeHint(hint string) string {
	lower := strings.ToLower(hint)
	keys := make([]string, 0, len(domains))
	for key := range domains {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if strings.Contains(lower, key) {
			return key
		}
		for _, kw := range domains[key].Keywords[:3] {
			if strings.Contains(lower, kw) {
				return key
			}
		}
	}
	for pattern, key := range hintMappings {
		if strings.Contains(lower, pattern) {
			return key
		}
	}
	return ""
}

// classifyWithKeywords counts keyword occurrences per domain. Ties and
// the zero-hit case fall back to a neutral default so the pipeline's
// classification gate can flag the run for review.
func classifyWithKeywords(text string) model.Classification {
	lower := strings.ToLower(text)

	keys := make([]string, 0, len(domains))
	for key := range domains {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	best, bestScore, total := "", 0, 0
	var bestMatched []string
	for _, key := range keys {
		score := 0
		var matched []string
		for _, kw := range domains[key].Keywords {
			if n := strings.Count(lower, kw); n > 0 {
				score += n
				matched = append(matched, kw)
			}
		}
		total += score
		if score > bestScore {
			best, bestScore, bestMatched = key, score, matched
		}
	}

	if total == 0 {
		return model.Classification{
			Domain:     "manufacturing",
			Confidence: defaultConfidence,
			Reasoning:  "no domain keywords found",
		}
	}

	confidence := float64(bestScore)/float64(total) + 0.3
	if confidence > maxConfidence {
		confidence = maxConfidence
	}
	if len(bestMatched) > 5 {
		bestMatched = bestMatched[:5]
	}
	return model.Classification{
		Domain:     best,
		Confidence: confidence,
		Reasoning:  "keyword matches: " + strings.Join(bestMatched, ", "),
	}
}

const classifyPrompt = `Classify the company described below into exactly one of these industry domains: %s.

Company description:
%s

Respond with only a JSON object:
{"domain": "<domain_key>", "confidence": <0.0 to 1.0>, "reasoning": "<brief explanation>"}`

func (c *Classifier) classifyWithModel(ctx context.Context, text string) (model.Classification, error) {
	keys := make([]string, 0, len(domains))
	for key := range domains {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	resp, err := c.provider.Complete(ctx, llm.CompletionRequest{
		System:      "You classify companies into industry domains. Answer with JSON only.",
		Prompt:      fmt.Sprintf(classifyPrompt, strings.Join(keys, ", "), truncate(text, 4000)),
		MaxTokens:   200,
		Temperature: 0,
	})
	if err != nil {
		return model.Classification{}, err
	}

	var parsed struct {
		Domain     string  `json:"domain"`
		Confidence float64 `json:"confidence"`
		Reasoning  string  `json:"reasoning"`
	}
	raw := extractJSON(resp.Text)
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return model.Classification{}, fmt.Errorf("parse classification response: %w", err)
	}
	if _, ok := domains[parsed.Domain]; !ok {
		return model.Classification{}, fmt.Errorf("model returned unknown domain %q", parsed.Domain)
	}
	if parsed.Confidence < 0 || parsed.Confidence > 1 {
		parsed.Confidence = defaultConfidence
	}
	return model.Classification{
		Domain:     parsed.Domain,
		Confidence: parsed.Confidence,
		Reasoning:  parsed.Reasoning,
	}, nil
}

// extractJSON pulls the first {...} block out of a model response that
// may wrap it in prose or code fences.
func extractJSON(s string) string {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start >= 0 && end > start {
		return s[start : end+1]
	}
	return s
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
