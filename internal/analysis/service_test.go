package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"feedback-backend/internal/campaigns"
	"feedback-backend/internal/feedback"
)

type fakeCampaignRepo struct {
	campaign campaigns.Campaign
	err      error
}

func (f *fakeCampaignRepo) Create(ctx context.Context, c campaigns.Campaign) error { return nil }
func (f *fakeCampaignRepo) GetByID(ctx context.Context, id string) (campaigns.Campaign, error) {
	if f.err != nil {
		return campaigns.Campaign{}, f.err
	}
	return f.campaign, nil
}
func (f *fakeCampaignRepo) List(ctx context.Context) ([]campaigns.Campaign, error) { return nil, nil }

type fakeFeedbackRepo struct {
	records []feedback.Record
}

func (f *fakeFeedbackRepo) Create(ctx context.Context, r feedback.Record) error { return nil }
func (f *fakeFeedbackRepo) ListByCampaign(ctx context.Context, id string) ([]feedback.Record, error) {
	return f.records, nil
}
func (f *fakeFeedbackRepo) ListByCampaignWindow(ctx context.Context, id string, start, end time.Time) ([]feedback.Record, error) {
	return f.records, nil
}

type fakeResultRepo struct {
	upserts   []StoredResult
	upsertErr error
}

func (f *fakeResultRepo) Upsert(ctx context.Context, result StoredResult) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.upserts = append(f.upserts, result)
	return nil
}
func (f *fakeResultRepo) GetByCampaignAndKind(ctx context.Context, campaignID, kind string) (StoredResult, error) {
	return StoredResult{}, ErrNotFound
}

func makeRecords(n int) []feedback.Record {
	records := make([]feedback.Record, n)
	for i := range records {
		records[i] = feedback.Record{
			ID:         fmt.Sprintf("fb-%d", i),
			CampaignID: "camp-1",
			RootText:   fmt.Sprintf("comment %d", i),
			CreatedAt:  time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(i) * time.Minute),
		}
	}
	return records
}

func newTestService(llmClient *fakeLLM, resultRepo *fakeResultRepo, records []feedback.Record) *Service {
	return &Service{
		Campaigns: &fakeCampaignRepo{campaign: campaigns.Campaign{
			ID:          "camp-1",
			CompanyName: "Acme",
			Name:        "Spring NPS",
		}},
		Feedback:  &fakeFeedbackRepo{records: records},
		Sampler:   NewSamplerWithSource(50, rand.NewSource(1)),
		Extractor: &Extractor{LLM: llmClient},
		Repo:      resultRepo,
	}
}

func TestAnalyzeTopicsPersistsResult(t *testing.T) {
	llmClient := &fakeLLM{response: json.RawMessage(`{"topics": ["onboarding"], "featureMentions": []}`)}
	resultRepo := &fakeResultRepo{}
	svc := newTestService(llmClient, resultRepo, makeRecords(5))

	result, err := svc.AnalyzeTopics(context.Background(), "camp-1")
	if err != nil {
		t.Fatalf("AnalyzeTopics: %v", err)
	}
	if len(result.Topics) != 1 {
		t.Fatalf("unexpected topics: %+v", result.Topics)
	}
	if len(resultRepo.upserts) != 1 {
		t.Fatalf("expected one upsert, got %d", len(resultRepo.upserts))
	}
	stored := resultRepo.upserts[0]
	if stored.Kind != KindTopics || stored.CampaignID != "camp-1" || stored.SampleSize != 5 {
		t.Fatalf("unexpected stored result: %+v", stored)
	}
}

func TestAnalyzeClustersInsufficientDataSkipsUpstream(t *testing.T) {
	llmClient := &fakeLLM{}
	resultRepo := &fakeResultRepo{}
	svc := newTestService(llmClient, resultRepo, makeRecords(2))

	_, err := svc.AnalyzeClusters(context.Background(), "camp-1")
	if !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("expected ErrInsufficientData, got %v", err)
	}
	if llmClient.calls != 0 {
		t.Fatalf("expected no upstream calls, got %d", llmClient.calls)
	}
	if len(resultRepo.upserts) != 0 {
		t.Fatalf("expected nothing persisted")
	}
}

func TestAnalyzeThemesReturnsResultWhenPersistenceFails(t *testing.T) {
	llmClient := &fakeLLM{response: json.RawMessage(`{"mainThemes": [], "categories": {}, "actionableInsights": ["fix checkout"]}`)}
	resultRepo := &fakeResultRepo{upsertErr: errors.New("db down")}
	svc := newTestService(llmClient, resultRepo, makeRecords(4))

	result, err := svc.AnalyzeThemes(context.Background(), "camp-1")
	if !errors.Is(err, ErrResultNotSaved) {
		t.Fatalf("expected ErrResultNotSaved, got %v", err)
	}
	if len(result.ActionableInsights) != 1 {
		t.Fatalf("expected usable result alongside error, got %+v", result)
	}
}

func TestAnalyzeTopicsUnknownCampaign(t *testing.T) {
	svc := newTestService(&fakeLLM{}, &fakeResultRepo{}, nil)
	svc.Campaigns = &fakeCampaignRepo{err: campaigns.ErrNotFound}

	_, err := svc.AnalyzeTopics(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAnalyzeTopicsCountsOnlyNormalizableRecords(t *testing.T) {
	records := makeRecords(2)
	// A record with no analyzable text must not count toward the minimum.
	records = append(records, feedback.Record{ID: "fb-empty", CampaignID: "camp-1"})

	llmClient := &fakeLLM{}
	svc := newTestService(llmClient, &fakeResultRepo{}, records)

	_, err := svc.AnalyzeTopics(context.Background(), "camp-1")
	if !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("expected ErrInsufficientData, got %v", err)
	}
	if llmClient.calls != 0 {
		t.Fatalf("expected no upstream calls, got %d", llmClient.calls)
	}
}

func TestGetRejectsUnknownKind(t *testing.T) {
	svc := newTestService(&fakeLLM{}, &fakeResultRepo{}, nil)
	if _, err := svc.Get(context.Background(), "camp-1", "sentiments"); err == nil {
		t.Fatalf("expected error for unknown kind")
	}
}
