package transcription

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"
)

type fakeStore struct {
	openErr error
}

func (f *fakeStore) Save(ctx context.Context, campaignID, fileName string, r io.Reader) (string, int64, string, error) {
	return "", 0, "", errors.New("not implemented")
}

func (f *fakeStore) Open(ctx context.Context, storageKey string) (io.ReadCloser, error) {
	if f.openErr != nil {
		return nil, f.openErr
	}
	return io.NopCloser(strings.NewReader("audio-bytes")), nil
}

type fakeJobs struct {
	polls      int
	settleAt   int
	finalJob   Job
	submitErr  error
	getErr     error
	submitted  bool
	audioBytes int
}

func (f *fakeJobs) Submit(ctx context.Context, audio io.Reader) (string, error) {
	if f.submitErr != nil {
		return "", f.submitErr
	}
	f.submitted = true
	data, _ := io.ReadAll(audio)
	f.audioBytes = len(data)
	return "job-1", nil
}

func (f *fakeJobs) Get(ctx context.Context, jobID string) (Job, error) {
	if f.getErr != nil {
		return Job{}, f.getErr
	}
	f.polls++
	if f.polls < f.settleAt {
		return Job{ID: jobID, Status: StatusProcessing}, nil
	}
	return f.finalJob, nil
}

func newTestService(jobs *fakeJobs) *Service {
	return &Service{
		Store:     &fakeStore{},
		Jobs:      jobs,
		PollEvery: time.Millisecond,
		MaxPolls:  5,
	}
}

func TestTranscribeCompletesAfterPolling(t *testing.T) {
	jobs := &fakeJobs{
		settleAt: 3,
		finalJob: Job{ID: "job-1", Status: StatusCompleted, Text: "the checkout was slow"},
	}
	svc := newTestService(jobs)

	text, err := svc.Transcribe(context.Background(), "camp-1/rec.wav")
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if text != "the checkout was slow" {
		t.Fatalf("unexpected text %q", text)
	}
	if jobs.polls != 3 {
		t.Fatalf("expected 3 polls, got %d", jobs.polls)
	}
	if jobs.audioBytes == 0 {
		t.Fatalf("expected audio streamed to submit")
	}
}

func TestTranscribeFailsAtPollCeiling(t *testing.T) {
	jobs := &fakeJobs{settleAt: 100, finalJob: Job{Status: StatusProcessing}}
	svc := newTestService(jobs)

	_, err := svc.Transcribe(context.Background(), "camp-1/rec.wav")
	if !errors.Is(err, ErrPollLimit) {
		t.Fatalf("expected ErrPollLimit, got %v", err)
	}
	if jobs.polls != 5 {
		t.Fatalf("expected exactly MaxPolls polls, got %d", jobs.polls)
	}
}

func TestTranscribeSurfacesJobFailure(t *testing.T) {
	jobs := &fakeJobs{settleAt: 1, finalJob: Job{ID: "job-1", Status: StatusFailed}}
	svc := newTestService(jobs)

	_, err := svc.Transcribe(context.Background(), "camp-1/rec.wav")
	if !errors.Is(err, ErrJobFailed) {
		t.Fatalf("expected ErrJobFailed, got %v", err)
	}
}

func TestTranscribeHonorsContextCancellation(t *testing.T) {
	jobs := &fakeJobs{settleAt: 100}
	svc := newTestService(jobs)
	svc.PollEvery = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := svc.Transcribe(ctx, "camp-1/rec.wav")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestTranscribeOpenFailure(t *testing.T) {
	svc := newTestService(&fakeJobs{})
	svc.Store = &fakeStore{openErr: errors.New("missing object")}

	if _, err := svc.Transcribe(context.Background(), "camp-1/rec.wav"); err == nil {
		t.Fatalf("expected error when recording cannot be opened")
	}
}
