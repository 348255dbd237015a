package feedback

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"feedback-backend/internal/campaigns"
)

type fakeCampaignRepo struct {
	err error
}

func (f *fakeCampaignRepo) Create(ctx context.Context, c campaigns.Campaign) error { return nil }
func (f *fakeCampaignRepo) GetByID(ctx context.Context, id string) (campaigns.Campaign, error) {
	if f.err != nil {
		return campaigns.Campaign{}, f.err
	}
	return campaigns.Campaign{ID: id, CompanyName: "Acme", Name: "Spring NPS"}, nil
}
func (f *fakeCampaignRepo) List(ctx context.Context) ([]campaigns.Campaign, error) { return nil, nil }

type fakeObjectStore struct {
	savedKey  string
	saveErr   error
	saveCalls int
}

func (f *fakeObjectStore) Save(ctx context.Context, campaignID, fileName string, r io.Reader) (string, int64, string, error) {
	f.saveCalls++
	if f.saveErr != nil {
		return "", 0, "", f.saveErr
	}
	data, _ := io.ReadAll(r)
	f.savedKey = campaignID + "/" + fileName
	return f.savedKey, int64(len(data)), "audio/wav", nil
}

func (f *fakeObjectStore) Open(ctx context.Context, storageKey string) (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader("audio")), nil
}

func TestSubmitStoresRecord(t *testing.T) {
	repo := NewMemoryRepo()
	svc := &Service{Campaigns: &fakeCampaignRepo{}, Repo: repo}

	score := 9
	record, err := svc.Submit(context.Background(), "camp-1", Submission{
		NPSScore: &score,
		RootText: "Really smooth experience.",
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if record.ID == "" {
		t.Fatalf("expected generated id")
	}

	stored, err := repo.ListByCampaign(context.Background(), "camp-1")
	if err != nil {
		t.Fatalf("ListByCampaign: %v", err)
	}
	if len(stored) != 1 || stored[0].ID != record.ID {
		t.Fatalf("expected record persisted, got %+v", stored)
	}
}

func TestSubmitRejectsOutOfRangeScore(t *testing.T) {
	svc := &Service{Campaigns: &fakeCampaignRepo{}, Repo: NewMemoryRepo()}
	score := 11
	_, err := svc.Submit(context.Background(), "camp-1", Submission{NPSScore: &score})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestSubmitUnknownCampaign(t *testing.T) {
	svc := &Service{Campaigns: &fakeCampaignRepo{err: campaigns.ErrNotFound}, Repo: NewMemoryRepo()}
	_, err := svc.Submit(context.Background(), "missing", Submission{RootText: "hi"})
	if !errors.Is(err, campaigns.ErrNotFound) {
		t.Fatalf("expected campaigns.ErrNotFound, got %v", err)
	}
}

func TestSubmitWithRecordingKeepsKeyWhenTranscriptionUnavailable(t *testing.T) {
	repo := NewMemoryRepo()
	store := &fakeObjectStore{}
	svc := &Service{Campaigns: &fakeCampaignRepo{}, Repo: repo, Store: store}

	record, err := svc.SubmitWithRecording(context.Background(), "camp-1", Submission{}, "q1", "answer.wav", strings.NewReader("audio-bytes"))
	if err != nil {
		t.Fatalf("SubmitWithRecording: %v", err)
	}
	if store.saveCalls != 1 {
		t.Fatalf("expected one save call, got %d", store.saveCalls)
	}
	if record.RecordingKey != store.savedKey {
		t.Fatalf("expected recording key %q, got %q", store.savedKey, record.RecordingKey)
	}
	if len(record.Responses) != 1 || record.Responses[0].QuestionID != "q1" {
		t.Fatalf("expected response attached for q1, got %+v", record.Responses)
	}
}

func TestSubmitWithRecordingRequiresQuestionID(t *testing.T) {
	svc := &Service{Campaigns: &fakeCampaignRepo{}, Repo: NewMemoryRepo(), Store: &fakeObjectStore{}}
	_, err := svc.SubmitWithRecording(context.Background(), "camp-1", Submission{}, "", "answer.wav", strings.NewReader("x"))
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestSubmitWithRecordingStoreFailure(t *testing.T) {
	store := &fakeObjectStore{saveErr: errors.New("s3 down")}
	svc := &Service{Campaigns: &fakeCampaignRepo{}, Repo: NewMemoryRepo(), Store: store}
	_, err := svc.SubmitWithRecording(context.Background(), "camp-1", Submission{}, "q1", "answer.wav", strings.NewReader("x"))
	if err == nil {
		t.Fatalf("expected error when recording cannot be stored")
	}
}
