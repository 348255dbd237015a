package summaries

import (
	"context"
	"errors"
	"fmt"
	"time"

	"feedback-backend/internal/analysis"
	"feedback-backend/internal/campaigns"
	"feedback-backend/internal/feedback"
	"feedback-backend/internal/llm"
	"feedback-backend/internal/shared/metrics"
	"feedback-backend/internal/shared/telemetry"
)

const (
	flowDaily   = "daily_summary"
	flowMonthly = "monthly_summary"
)

// Service produces period rollups. The statistics half is always computed
// locally; the narrative half is model-written and degrades to a
// stats-derived sentinel when the provider fails or the corpus is too thin.
type Service struct {
	Campaigns campaigns.Repo
	Feedback  feedback.Repo
	Extractor *analysis.Extractor
	Sampler   *analysis.Sampler
	Repo      Repo
}

// GenerateDaily builds and stores the rollup for one campaign-day.
// Reruns for the same day overwrite the previous rollup.
func (s *Service) GenerateDaily(ctx context.Context, campaignID string, day time.Time) (DailySummary, error) {
	campaign, err := s.Campaigns.GetByID(ctx, campaignID)
	if err != nil {
		return DailySummary{}, err
	}

	start := day.UTC().Truncate(24 * time.Hour)
	end := start.AddDate(0, 0, 1)
	records, err := s.Feedback.ListByCampaignWindow(ctx, campaignID, start, end)
	if err != nil {
		return DailySummary{}, err
	}

	stats := ComputeStats(records, start, end)
	summary := DailySummary{
		CampaignID:     campaignID,
		Day:            start,
		NPSAverage:     stats.NPSAverage,
		PromoterPct:    stats.PromoterPct,
		DetractorPct:   stats.DetractorPct,
		ResponseCount:  stats.ResponseCount,
		PositiveThemes: []string{},
		NegativeThemes: []string{},
		UpdatedAt:      time.Now().UTC(),
	}

	narrative := s.narrativeFor(ctx, campaign, flowDaily, records, stats)
	summary.Summary = narrative.Summary
	summary.PositiveThemes = narrative.PositiveThemes
	summary.NegativeThemes = narrative.NegativeThemes

	if err := s.Repo.UpsertDaily(ctx, summary); err != nil {
		return summary, fmt.Errorf("%w: %v", ErrResultNotSaved, err)
	}
	telemetry.Info("daily summary stored", map[string]any{
		"campaign_id":    campaignID,
		"day":            start.Format("2006-01-02"),
		"response_count": summary.ResponseCount,
	})
	return summary, nil
}

// GenerateMonthly builds and stores the rollup for one campaign-month.
// The month argument may be any instant inside the target month.
func (s *Service) GenerateMonthly(ctx context.Context, campaignID string, month time.Time) (MonthlySummary, error) {
	campaign, err := s.Campaigns.GetByID(ctx, campaignID)
	if err != nil {
		return MonthlySummary{}, err
	}

	start := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)
	records, err := s.Feedback.ListByCampaignWindow(ctx, campaignID, start, end)
	if err != nil {
		return MonthlySummary{}, err
	}

	stats := ComputeStats(records, start, end)
	summary := MonthlySummary{
		CampaignID:     campaignID,
		Month:          start.Format("2006-01"),
		NPSAverage:     stats.NPSAverage,
		PromoterPct:    stats.PromoterPct,
		DetractorPct:   stats.DetractorPct,
		ResponseCount:  stats.ResponseCount,
		Trend:          stats.Trend,
		PositiveThemes: []string{},
		NegativeThemes: []string{},
		UpdatedAt:      time.Now().UTC(),
	}

	narrative := s.narrativeFor(ctx, campaign, flowMonthly, records, stats)
	summary.Summary = narrative.Summary
	summary.PositiveThemes = narrative.PositiveThemes
	summary.NegativeThemes = narrative.NegativeThemes

	if err := s.Repo.UpsertMonthly(ctx, summary); err != nil {
		return summary, fmt.Errorf("%w: %v", ErrResultNotSaved, err)
	}
	telemetry.Info("monthly summary stored", map[string]any{
		"campaign_id":    campaignID,
		"month":          summary.Month,
		"response_count": summary.ResponseCount,
	})
	return summary, nil
}

// narrativeFor asks the model for the written half of a rollup. Whenever
// that is impossible or fails, it falls back to a deterministic sentinel so
// the statistics are never lost.
func (s *Service) narrativeFor(ctx context.Context, campaign campaigns.Campaign, flow string, records []feedback.Record, stats Stats) analysis.NarrativeResult {
	sentinel := analysis.NarrativeResult{
		Summary:        statsSentinel(stats),
		PositiveThemes: []string{},
		NegativeThemes: []string{},
	}
	if stats.ResponseCount == 0 {
		sentinel.Summary = "No feedback received in this period."
		metrics.IncSummaryGenerated()
		return sentinel
	}

	items := s.Sampler.Sample(feedback.NormalizeAll(records))
	if len(items) < analysis.MinCorpusSize {
		metrics.IncSummaryGenerated()
		return sentinel
	}

	pc := llm.PromptContext{
		CompanyName:  campaign.CompanyName,
		CampaignName: campaign.Name,
		Language:     campaign.LanguageOrDefault(),
		Total:        len(items),
	}
	prompt := llm.DailySummaryPrompt(pc)
	if flow == flowMonthly {
		prompt = llm.MonthlySummaryPrompt(pc)
	}

	narrative, err := s.Extractor.Narrative(ctx, flow, prompt, items)
	if err != nil {
		metrics.IncSummaryPartial()
		telemetry.Warn("summary narrative failed, persisting statistics only", map[string]any{
			"campaign_id": campaign.ID,
			"flow":        flow,
			"error":       err.Error(),
		})
		return sentinel
	}
	metrics.IncSummaryGenerated()
	return narrative
}

func statsSentinel(stats Stats) string {
	return fmt.Sprintf("Average NPS %.1f across %d responses.", stats.NPSAverage, stats.ResponseCount)
}

// IsNotFound reports whether err is a missing-campaign or missing-summary error.
func IsNotFound(err error) bool {
	return errors.Is(err, campaigns.ErrNotFound) || errors.Is(err, ErrNotFound)
}
