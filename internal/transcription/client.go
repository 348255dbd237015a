package transcription

import (
	"context"
	"errors"
	"io"
)

const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// Job is one asynchronous transcription job.
type Job struct {
	ID     string
	Status string
	Text   string
}

// Terminal reports whether the job reached a final status.
func (j Job) Terminal() bool {
	return j.Status == StatusCompleted || j.Status == StatusFailed
}

// JobClient abstracts the async transcription provider.
type JobClient interface {
	Submit(ctx context.Context, audio io.Reader) (jobID string, err error)
	Get(ctx context.Context, jobID string) (Job, error)
}

var (
	// ErrJobFailed means the provider reported a terminal failure.
	ErrJobFailed = errors.New("transcription job failed")
	// ErrPollLimit means the job never reached a terminal status within
	// the configured attempt ceiling.
	ErrPollLimit = errors.New("transcription poll limit reached")
)
