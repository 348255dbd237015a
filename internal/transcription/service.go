package transcription

import (
	"context"
	"fmt"
	"time"

	"feedback-backend/internal/shared/storage/object"
	"feedback-backend/internal/shared/telemetry"
)

// Service turns a stored voice recording into text by submitting it to the
// async provider and polling until the job settles.
type Service struct {
	Store     object.ObjectStore
	Jobs      JobClient
	PollEvery time.Duration
	MaxPolls  int
}

// Transcribe opens the recording at storageKey, submits it, and polls at a
// fixed interval up to MaxPolls attempts. It fails once the ceiling is hit
// even if the job is still running.
func (s *Service) Transcribe(ctx context.Context, storageKey string) (string, error) {
	audio, err := s.Store.Open(ctx, storageKey)
	if err != nil {
		return "", fmt.Errorf("open recording: %w", err)
	}
	defer audio.Close()

	jobID, err := s.Jobs.Submit(ctx, audio)
	if err != nil {
		return "", fmt.Errorf("submit transcription: %w", err)
	}

	interval := s.PollEvery
	if interval <= 0 {
		interval = 5 * time.Second
	}
	maxPolls := s.MaxPolls
	if maxPolls <= 0 {
		maxPolls = 60
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for attempt := 1; attempt <= maxPolls; attempt++ {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-ticker.C:
		}

		job, err := s.Jobs.Get(ctx, jobID)
		if err != nil {
			return "", fmt.Errorf("poll transcription: %w", err)
		}
		if !job.Terminal() {
			continue
		}
		if job.Status == StatusFailed {
			telemetry.Error("transcription job failed", map[string]any{
				"job_id":      jobID,
				"storage_key": storageKey,
				"attempts":    attempt,
			})
			return "", ErrJobFailed
		}
		return job.Text, nil
	}

	telemetry.Error("transcription job did not settle", map[string]any{
		"job_id":      jobID,
		"storage_key": storageKey,
		"attempts":    maxPolls,
	})
	return "", fmt.Errorf("%w: job %s after %d attempts", ErrPollLimit, jobID, maxPolls)
}
