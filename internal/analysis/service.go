package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"feedback-backend/internal/campaigns"
	"feedback-backend/internal/feedback"
	"feedback-backend/internal/llm"
	"feedback-backend/internal/shared/telemetry"
)

// Service orchestrates one analysis flow end to end: fetch the corpus,
// normalize, sample, extract, then persist the result.
type Service struct {
	Campaigns campaigns.Repo
	Feedback  feedback.Repo
	Sampler   *Sampler
	Extractor *Extractor
	Repo      Repo
}

// AnalyzeTopics runs the topic flow for a campaign.
func (s *Service) AnalyzeTopics(ctx context.Context, campaignID string) (TopicResult, error) {
	var result TopicResult
	err := s.run(ctx, campaignID, KindTopics, func(ctx context.Context, pc llm.PromptContext, items []feedback.NormalizedItem) (any, error) {
		var err error
		result, err = s.Extractor.Topics(ctx, pc, items)
		return result, err
	})
	return result, err
}

// AnalyzeClusters runs the clustering flow for a campaign.
func (s *Service) AnalyzeClusters(ctx context.Context, campaignID string) (ClusterResult, error) {
	var result ClusterResult
	err := s.run(ctx, campaignID, KindClusters, func(ctx context.Context, pc llm.PromptContext, items []feedback.NormalizedItem) (any, error) {
		var err error
		result, err = s.Extractor.Clusters(ctx, pc, items)
		return result, err
	})
	return result, err
}

// AnalyzeThemes runs the theme flow for a campaign.
func (s *Service) AnalyzeThemes(ctx context.Context, campaignID string) (ThemeAnalysisResult, error) {
	var result ThemeAnalysisResult
	err := s.run(ctx, campaignID, KindThemes, func(ctx context.Context, pc llm.PromptContext, items []feedback.NormalizedItem) (any, error) {
		var err error
		result, err = s.Extractor.Themes(ctx, pc, items)
		return result, err
	})
	return result, err
}

// Get returns the stored result for one flow.
func (s *Service) Get(ctx context.Context, campaignID, kind string) (StoredResult, error) {
	if !ValidKind(kind) {
		return StoredResult{}, fmt.Errorf("unknown analysis kind %q", kind)
	}
	return s.Repo.GetByCampaignAndKind(ctx, campaignID, kind)
}

type extractFunc func(ctx context.Context, pc llm.PromptContext, items []feedback.NormalizedItem) (any, error)

// run executes the shared flow skeleton. A persistence failure after a
// successful extraction returns the result alongside ErrResultNotSaved so
// callers can still serve it.
func (s *Service) run(ctx context.Context, campaignID, kind string, extract extractFunc) error {
	if campaignID == "" {
		return errors.New("campaignID is required")
	}
	campaign, err := s.Campaigns.GetByID(ctx, campaignID)
	if err != nil {
		if errors.Is(err, campaigns.ErrNotFound) {
			return fmt.Errorf("%w: campaign %s", ErrNotFound, campaignID)
		}
		return err
	}

	records, err := s.Feedback.ListByCampaign(ctx, campaignID)
	if err != nil {
		return err
	}
	items := s.Sampler.Sample(feedback.NormalizeAll(records))

	pc := llm.PromptContext{
		CompanyName:  campaign.CompanyName,
		CampaignName: campaign.Name,
		Language:     campaign.LanguageOrDefault(),
	}
	result, err := extract(ctx, pc, items)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(result)
	if err != nil {
		return err
	}
	stored := StoredResult{
		CampaignID: campaignID,
		Kind:       kind,
		Result:     payload,
		SampleSize: len(items),
		UpdatedAt:  time.Now().UTC(),
	}
	if err := s.Repo.Upsert(ctx, stored); err != nil {
		telemetry.Error("analysis result not persisted", map[string]any{
			"campaign_id": campaignID,
			"flow":        kind,
			"error":       err.Error(),
		})
		return fmt.Errorf("%w: %v", ErrResultNotSaved, err)
	}
	telemetry.Info("analysis result stored", map[string]any{
		"campaign_id": campaignID,
		"flow":        kind,
		"sample_size": len(items),
	})
	return nil
}
