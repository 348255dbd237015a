package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"feedback-backend/internal/feedback"
	"feedback-backend/internal/llm"
	"feedback-backend/internal/shared/metrics"
	"feedback-backend/internal/shared/telemetry"
)

// MinCorpusSize is the smallest corpus worth analyzing. Below this the
// extractor fails fast without calling the provider.
const MinCorpusSize = 3

// Extractor runs one analysis flow against the text-understanding provider
// and always hands back a typed result. Unparsable provider output degrades
// to an empty-but-valid result; provider failures propagate as errors.
type Extractor struct {
	LLM     llm.Client
	Timeout time.Duration
}

// Topics extracts discussion topics and feature mentions.
func (e *Extractor) Topics(ctx context.Context, pc llm.PromptContext, items []feedback.NormalizedItem) (TopicResult, error) {
	pc.Total = len(items)
	raw, err := e.analyze(ctx, KindTopics, llm.TopicsPrompt(pc), items)
	if err != nil {
		return TopicResult{}, err
	}
	if parsed, ok := parseTopicResult(raw); ok {
		return parsed, nil
	}
	e.reportFallback(KindTopics, raw)
	return EmptyTopicResult(), nil
}

// Clusters groups the corpus into labeled clusters.
func (e *Extractor) Clusters(ctx context.Context, pc llm.PromptContext, items []feedback.NormalizedItem) (ClusterResult, error) {
	pc.Total = len(items)
	raw, err := e.analyze(ctx, KindClusters, llm.ClustersPrompt(pc), items)
	if err != nil {
		return ClusterResult{}, err
	}
	if parsed, ok := parseClusterResult(raw); ok {
		return parsed, nil
	}
	e.reportFallback(KindClusters, raw)
	return EmptyClusterResult(), nil
}

// Themes produces the categorized theme breakdown.
func (e *Extractor) Themes(ctx context.Context, pc llm.PromptContext, items []feedback.NormalizedItem) (ThemeAnalysisResult, error) {
	pc.Total = len(items)
	raw, err := e.analyze(ctx, KindThemes, llm.ThemesPrompt(pc), items)
	if err != nil {
		return ThemeAnalysisResult{}, err
	}
	if parsed, ok := parseThemeResult(raw); ok {
		return parsed, nil
	}
	e.reportFallback(KindThemes, raw)
	return EmptyThemeResult(), nil
}

// Narrative writes the model-authored portion of a period summary using a
// caller-supplied prompt. An unparsable payload degrades to a result whose
// summary is the raw text, so a usable narrative always comes back.
func (e *Extractor) Narrative(ctx context.Context, flow, prompt string, items []feedback.NormalizedItem) (NarrativeResult, error) {
	raw, err := e.analyze(ctx, flow, prompt, items)
	if err != nil {
		return NarrativeResult{}, err
	}
	parsed, ok := parseNarrativeResult(raw)
	if !ok {
		e.reportFallback(flow, raw)
		return NarrativeResult{
			Summary:        strings.TrimSpace(string(raw)),
			PositiveThemes: []string{},
			NegativeThemes: []string{},
		}, nil
	}
	return parsed, nil
}

func (e *Extractor) analyze(ctx context.Context, flow, system string, items []feedback.NormalizedItem) (json.RawMessage, error) {
	if len(items) < MinCorpusSize {
		return nil, fmt.Errorf("%w: have %d, need %d", ErrInsufficientData, len(items), MinCorpusSize)
	}

	timeout := e.Timeout
	if timeout <= 0 {
		timeout = 3 * time.Minute
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	metrics.IncExtractionStarted()
	started := time.Now()

	raw, err := e.LLM.Analyze(ctx, llm.Request{
		System:     system,
		User:       buildCorpus(items),
		JSONOutput: true,
	})
	metrics.ObserveExtractionDurationMs(float64(time.Since(started).Milliseconds()))
	if err != nil {
		metrics.IncExtractionFailed()
		telemetry.Error("extraction upstream failure", map[string]any{
			"flow":  flow,
			"error": err.Error(),
		})
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	metrics.IncExtractionCompleted()
	return raw, nil
}

func (e *Extractor) reportFallback(flow string, raw json.RawMessage) {
	metrics.IncExtractionFallback()
	telemetry.Warn("extraction payload unparsable, degrading to empty result", map[string]any{
		"flow":    flow,
		"raw_len": len(raw),
		"reason":  "contract mismatch",
	})
}

func buildCorpus(items []feedback.NormalizedItem) string {
	var b strings.Builder
	for i, item := range items {
		fmt.Fprintf(&b, "%d. %s\n", i+1, item.Text)
	}
	return b.String()
}
