package summaries

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"testing"
	"time"

	"feedback-backend/internal/analysis"
	"feedback-backend/internal/campaigns"
	"feedback-backend/internal/feedback"
	"feedback-backend/internal/llm"
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

type fakeLLM struct {
	calls    int
	response json.RawMessage
	err      error
}

func (f *fakeLLM) Analyze(ctx context.Context, req llm.Request) (json.RawMessage, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.response, nil
}

func windowRecords(n int, at time.Time) []feedback.Record {
	records := make([]feedback.Record, n)
	for i := range records {
		score := 9
		records[i] = feedback.Record{
			ID:         fmt.Sprintf("fb-%d", i),
			CampaignID: "camp-1",
			NPSScore:   &score,
			RootText:   fmt.Sprintf("great experience %d", i),
			CreatedAt:  at.Add(time.Duration(i) * time.Minute),
		}
	}
	return records
}

func newTestService(llmClient *fakeLLM, records []feedback.Record) (*Service, *MemoryRepo) {
	repo := NewMemoryRepo()
	svc := &Service{
		Campaigns: &fakeCampaignRepo{campaign: campaigns.Campaign{
			ID:          "camp-1",
			CompanyName: "Acme",
			Name:        "Spring NPS",
		}},
		Feedback:  &fakeFeedbackRepo{records: records},
		Extractor: &analysis.Extractor{LLM: llmClient},
		Sampler:   analysis.NewSamplerWithSource(200, rand.NewSource(1)),
		Repo:      repo,
	}
	return svc, repo
}

func TestGenerateDailyMergesNarrativeWithStats(t *testing.T) {
	day := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	llmClient := &fakeLLM{response: json.RawMessage(`{
		"summary": "Customers loved the quick support responses.",
		"positiveThemes": ["support speed"],
		"negativeThemes": []
	}`)}
	svc, repo := newTestService(llmClient, windowRecords(5, day.Add(time.Hour)))

	summary, err := svc.GenerateDaily(context.Background(), "camp-1", day)
	if err != nil {
		t.Fatalf("GenerateDaily: %v", err)
	}
	if summary.NPSAverage != 9 || summary.PromoterPct != 100 || summary.ResponseCount != 5 {
		t.Fatalf("unexpected stats: %+v", summary)
	}
	if summary.Summary != "Customers loved the quick support responses." {
		t.Fatalf("unexpected narrative: %q", summary.Summary)
	}
	if llmClient.calls != 1 {
		t.Fatalf("expected one upstream call, got %d", llmClient.calls)
	}

	stored, err := repo.GetDaily(context.Background(), "camp-1", day)
	if err != nil {
		t.Fatalf("GetDaily: %v", err)
	}
	if stored.Summary != summary.Summary {
		t.Fatalf("expected summary persisted")
	}
}

func TestGenerateDailyZeroRecordsSkipsUpstream(t *testing.T) {
	day := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	llmClient := &fakeLLM{}
	svc, _ := newTestService(llmClient, nil)

	summary, err := svc.GenerateDaily(context.Background(), "camp-1", day)
	if err != nil {
		t.Fatalf("GenerateDaily: %v", err)
	}
	if llmClient.calls != 0 {
		t.Fatalf("expected no upstream calls, got %d", llmClient.calls)
	}
	if summary.ResponseCount != 0 || summary.NPSAverage != 0 {
		t.Fatalf("expected zero-valued stats, got %+v", summary)
	}
	if summary.Summary != "No feedback received in this period." {
		t.Fatalf("unexpected sentinel: %q", summary.Summary)
	}
}

func TestGenerateDailyThinCorpusUsesStatsSentinel(t *testing.T) {
	day := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	llmClient := &fakeLLM{}
	svc, _ := newTestService(llmClient, windowRecords(2, day.Add(time.Hour)))

	summary, err := svc.GenerateDaily(context.Background(), "camp-1", day)
	if err != nil {
		t.Fatalf("GenerateDaily: %v", err)
	}
	if llmClient.calls != 0 {
		t.Fatalf("expected no upstream calls, got %d", llmClient.calls)
	}
	if !strings.Contains(summary.Summary, "9.0") {
		t.Fatalf("expected stats sentinel with average, got %q", summary.Summary)
	}
}

func TestGenerateDailyUpstreamFailureKeepsStats(t *testing.T) {
	day := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	llmClient := &fakeLLM{err: errors.New("provider down")}
	svc, repo := newTestService(llmClient, windowRecords(5, day.Add(time.Hour)))

	summary, err := svc.GenerateDaily(context.Background(), "camp-1", day)
	if err != nil {
		t.Fatalf("expected partial success, got %v", err)
	}
	if summary.NPSAverage != 9 || summary.ResponseCount != 5 {
		t.Fatalf("expected stats retained, got %+v", summary)
	}
	if !strings.Contains(summary.Summary, "Average NPS") {
		t.Fatalf("expected sentinel narrative, got %q", summary.Summary)
	}

	if _, err := repo.GetDaily(context.Background(), "camp-1", day); err != nil {
		t.Fatalf("expected stats persisted despite upstream failure: %v", err)
	}
}

func TestGenerateDailyIdempotentRerunOverwrites(t *testing.T) {
	day := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	llmClient := &fakeLLM{response: json.RawMessage(`{"summary": "First run.", "positiveThemes": [], "negativeThemes": []}`)}
	svc, repo := newTestService(llmClient, windowRecords(5, day.Add(time.Hour)))

	if _, err := svc.GenerateDaily(context.Background(), "camp-1", day); err != nil {
		t.Fatalf("first run: %v", err)
	}
	llmClient.response = json.RawMessage(`{"summary": "Second run.", "positiveThemes": [], "negativeThemes": []}`)
	if _, err := svc.GenerateDaily(context.Background(), "camp-1", day); err != nil {
		t.Fatalf("second run: %v", err)
	}

	stored, err := repo.GetDaily(context.Background(), "camp-1", day)
	if err != nil {
		t.Fatalf("GetDaily: %v", err)
	}
	if stored.Summary != "Second run." {
		t.Fatalf("expected rerun to overwrite, got %q", stored.Summary)
	}
}

func TestGenerateMonthlyBuildsTrend(t *testing.T) {
	monthStart := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	records := append(
		windowRecords(3, monthStart.Add(time.Hour)),
		windowRecords(3, monthStart.AddDate(0, 0, 10))...,
	)
	for i := range records {
		records[i].ID = fmt.Sprintf("fb-%d", i)
	}
	llmClient := &fakeLLM{response: json.RawMessage(`{"summary": "Strong month.", "positiveThemes": ["reliability"], "negativeThemes": []}`)}
	svc, repo := newTestService(llmClient, records)

	summary, err := svc.GenerateMonthly(context.Background(), "camp-1", monthStart.AddDate(0, 0, 14))
	if err != nil {
		t.Fatalf("GenerateMonthly: %v", err)
	}
	if summary.Month != "2026-03" {
		t.Fatalf("expected month 2026-03, got %q", summary.Month)
	}
	if len(summary.Trend) != 2 {
		t.Fatalf("expected 2 trend points, got %+v", summary.Trend)
	}

	stored, err := repo.GetMonthly(context.Background(), "camp-1", "2026-03")
	if err != nil {
		t.Fatalf("GetMonthly: %v", err)
	}
	if stored.Summary != "Strong month." {
		t.Fatalf("expected narrative persisted, got %q", stored.Summary)
	}
}

func TestGenerateDailyUnknownCampaign(t *testing.T) {
	svc, _ := newTestService(&fakeLLM{}, nil)
	svc.Campaigns = &fakeCampaignRepo{err: campaigns.ErrNotFound}

	_, err := svc.GenerateDaily(context.Background(), "missing", time.Now())
	if !IsNotFound(err) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}
