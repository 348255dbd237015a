package feedback

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"feedback-backend/internal/campaigns"
	"feedback-backend/internal/shared/storage/object"
	"feedback-backend/internal/shared/telemetry"
	"feedback-backend/internal/transcription"
)

var ErrInvalidInput = errors.New("invalid input")

// Service handles feedback ingestion: storing records and, for voice
// answers, persisting the recording and transcribing it.
type Service struct {
	Campaigns   campaigns.Repo
	Repo        Repo
	Store       object.ObjectStore
	Transcriber *transcription.Service
}

// Submission is one incoming feedback payload.
type Submission struct {
	NPSScore  *int
	RootText  string
	Responses []QuestionResponse
}

// Submit validates and stores one feedback record.
func (s *Service) Submit(ctx context.Context, campaignID string, sub Submission) (Record, error) {
	if _, err := s.Campaigns.GetByID(ctx, campaignID); err != nil {
		return Record{}, err
	}
	if sub.NPSScore != nil && (*sub.NPSScore < 0 || *sub.NPSScore > 10) {
		return Record{}, fmt.Errorf("%w: nps score must be between 0 and 10", ErrInvalidInput)
	}

	record := Record{
		ID:         uuid.NewString(),
		CampaignID: campaignID,
		NPSScore:   sub.NPSScore,
		RootText:   sub.RootText,
		Responses:  sub.Responses,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, record); err != nil {
		return Record{}, err
	}
	telemetry.Info("feedback stored", map[string]any{
		"campaign_id": campaignID,
		"feedback_id": record.ID,
		"scored":      record.NPSScore != nil,
	})
	return record, nil
}

// SubmitWithRecording stores the voice recording, transcribes it, and
// attaches the transcription to the given question response. Transcription
// failure is tolerated: the record is stored with the recording key so the
// audio can be re-processed later.
func (s *Service) SubmitWithRecording(ctx context.Context, campaignID string, sub Submission, questionID, fileName string, audio io.Reader) (Record, error) {
	if _, err := s.Campaigns.GetByID(ctx, campaignID); err != nil {
		return Record{}, err
	}
	if questionID == "" {
		return Record{}, fmt.Errorf("%w: questionId is required for a recording", ErrInvalidInput)
	}

	storageKey, sizeBytes, mimeType, err := s.Store.Save(ctx, campaignID, fileName, audio)
	if err != nil {
		return Record{}, fmt.Errorf("store recording: %w", err)
	}
	telemetry.Info("recording stored", map[string]any{
		"campaign_id": campaignID,
		"storage_key": storageKey,
		"size_bytes":  sizeBytes,
		"mime_type":   mimeType,
	})

	text := ""
	if s.Transcriber != nil {
		text, err = s.Transcriber.Transcribe(ctx, storageKey)
		if err != nil {
			telemetry.Warn("transcription unavailable, storing recording key only", map[string]any{
				"campaign_id": campaignID,
				"storage_key": storageKey,
				"error":       err.Error(),
			})
			text = ""
		}
	}

	attached := false
	for i := range sub.Responses {
		if sub.Responses[i].QuestionID == questionID {
			sub.Responses[i].VoiceTranscription = text
			attached = true
			break
		}
	}
	if !attached {
		sub.Responses = append(sub.Responses, QuestionResponse{
			QuestionID:         questionID,
			VoiceTranscription: text,
		})
	}

	record := Record{
		ID:           uuid.NewString(),
		CampaignID:   campaignID,
		NPSScore:     sub.NPSScore,
		RootText:     sub.RootText,
		Responses:    sub.Responses,
		RecordingKey: storageKey,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, record); err != nil {
		return Record{}, err
	}
	return record, nil
}

// List returns a campaign's feedback, oldest first.
func (s *Service) List(ctx context.Context, campaignID string) ([]Record, error) {
	return s.Repo.ListByCampaign(ctx, campaignID)
}
