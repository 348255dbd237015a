package analysis

import (
	"encoding/json"
	"strings"
)

// Analysis kinds persisted per campaign. One stored result per (campaign, kind).
const (
	KindTopics   = "topics"
	KindClusters = "clusters"
	KindThemes   = "themes"
)

const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
	SentimentMixed    = "mixed"
)

// TopicResult lists recurring discussion topics and per-feature mentions.
type TopicResult struct {
	Topics          []string         `json:"topics"`
	FeatureMentions []FeatureMention `json:"featureMentions"`
}

type FeatureMention struct {
	Feature   string   `json:"feature"`
	Sentiment string   `json:"sentiment"`
	Count     int      `json:"count"`
	Examples  []string `json:"examples"`
}

// ClusterResult groups feedback into labeled clusters.
type ClusterResult struct {
	Clusters []Cluster `json:"clusters"`
}

type Cluster struct {
	Label       string   `json:"label"`
	Description string   `json:"description"`
	Sentiment   string   `json:"sentiment"`
	Count       int      `json:"count"`
	Examples    []string `json:"examples"`
}

// ThemeAnalysisResult is the categorized theme breakdown.
type ThemeAnalysisResult struct {
	MainThemes         []Theme        `json:"mainThemes"`
	Categories         map[string]int `json:"categories"`
	ActionableInsights []string       `json:"actionableInsights"`
}

type Theme struct {
	Theme      string  `json:"theme"`
	Category   string  `json:"category"`
	Sentiment  string  `json:"sentiment"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// NarrativeResult is the model-written portion of a period summary.
type NarrativeResult struct {
	Summary        string   `json:"summary"`
	PositiveThemes []string `json:"positiveThemes"`
	NegativeThemes []string `json:"negativeThemes"`
}

// parseTopicResult decodes raw model output. ok=false means the payload is
// unusable and callers should fall back to an empty result.
func parseTopicResult(raw json.RawMessage) (TopicResult, bool) {
	var parsed TopicResult
	if len(raw) == 0 || json.Unmarshal(raw, &parsed) != nil {
		return TopicResult{}, false
	}
	if parsed.Topics == nil && parsed.FeatureMentions == nil {
		return TopicResult{}, false
	}
	parsed.Topics = ensureStrings(parsed.Topics)
	if parsed.FeatureMentions == nil {
		parsed.FeatureMentions = []FeatureMention{}
	}
	for i := range parsed.FeatureMentions {
		fm := &parsed.FeatureMentions[i]
		fm.Sentiment = normalizeSentiment(fm.Sentiment)
		fm.Count = clampNonNegative(fm.Count)
		fm.Examples = ensureStrings(fm.Examples)
	}
	return parsed, true
}

// EmptyTopicResult is the degraded fallback for unparsable topic output.
func EmptyTopicResult() TopicResult {
	return TopicResult{Topics: []string{}, FeatureMentions: []FeatureMention{}}
}

func parseClusterResult(raw json.RawMessage) (ClusterResult, bool) {
	var parsed ClusterResult
	if len(raw) == 0 || json.Unmarshal(raw, &parsed) != nil {
		return ClusterResult{}, false
	}
	if parsed.Clusters == nil {
		return ClusterResult{}, false
	}
	for i := range parsed.Clusters {
		cl := &parsed.Clusters[i]
		cl.Sentiment = normalizeSentiment(cl.Sentiment)
		cl.Count = clampNonNegative(cl.Count)
		cl.Examples = ensureStrings(cl.Examples)
	}
	return parsed, true
}

// EmptyClusterResult is the degraded fallback for unparsable cluster output.
func EmptyClusterResult() ClusterResult {
	return ClusterResult{Clusters: []Cluster{}}
}

func parseThemeResult(raw json.RawMessage) (ThemeAnalysisResult, bool) {
	var parsed ThemeAnalysisResult
	if len(raw) == 0 || json.Unmarshal(raw, &parsed) != nil {
		return ThemeAnalysisResult{}, false
	}
	if parsed.MainThemes == nil && parsed.Categories == nil && parsed.ActionableInsights == nil {
		return ThemeAnalysisResult{}, false
	}
	if parsed.MainThemes == nil {
		parsed.MainThemes = []Theme{}
	}
	for i := range parsed.MainThemes {
		th := &parsed.MainThemes[i]
		th.Category = normalizeCategory(th.Category)
		th.Sentiment = normalizeSentiment(th.Sentiment)
		th.Count = clampNonNegative(th.Count)
		th.Percentage = clampPercentage(th.Percentage)
	}
	if parsed.Categories == nil {
		parsed.Categories = map[string]int{}
	}
	parsed.ActionableInsights = ensureStrings(parsed.ActionableInsights)
	return parsed, true
}

// EmptyThemeResult is the degraded fallback for unparsable theme output.
func EmptyThemeResult() ThemeAnalysisResult {
	return ThemeAnalysisResult{
		MainThemes:         []Theme{},
		Categories:         map[string]int{},
		ActionableInsights: []string{},
	}
}

func parseNarrativeResult(raw json.RawMessage) (NarrativeResult, bool) {
	var parsed NarrativeResult
	if len(raw) == 0 || json.Unmarshal(raw, &parsed) != nil {
		return NarrativeResult{}, false
	}
	if strings.TrimSpace(parsed.Summary) == "" {
		return NarrativeResult{}, false
	}
	parsed.PositiveThemes = ensureStrings(parsed.PositiveThemes)
	parsed.NegativeThemes = ensureStrings(parsed.NegativeThemes)
	return parsed, true
}

func normalizeSentiment(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case SentimentPositive:
		return SentimentPositive
	case SentimentNegative:
		return SentimentNegative
	case SentimentMixed:
		return SentimentMixed
	default:
		return SentimentNeutral
	}
}

func normalizeCategory(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "product", "service", "pricing", "support", "experience":
		return strings.ToLower(strings.TrimSpace(value))
	default:
		return "other"
	}
}

func ensureStrings(value []string) []string {
	if value == nil {
		return []string{}
	}
	return value
}

func clampNonNegative(value int) int {
	if value < 0 {
		return 0
	}
	return value
}

func clampPercentage(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 100 {
		return 100
	}
	return value
}
