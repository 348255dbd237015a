package feedback

import "time"

// QuestionResponse is one answer inside a feedback submission. A response
// may carry a structured value (rating, choice, yes/no) and/or a
// transcribed spoken answer.
type QuestionResponse struct {
	QuestionID         string `json:"questionId"`
	Value              string `json:"value,omitempty"`
	VoiceTranscription string `json:"voiceTranscription,omitempty"`
}

// Record is one customer submission. Read-only to the analysis core.
type Record struct {
	ID           string             `json:"id"`
	CampaignID   string             `json:"campaignId"`
	NPSScore     *int               `json:"npsScore,omitempty"`
	RootText     string             `json:"rootText,omitempty"`
	Responses    []QuestionResponse `json:"responses"`
	RecordingKey string             `json:"recordingKey,omitempty"`
	CreatedAt    time.Time          `json:"createdAt"`
}

// NormalizedItem is a record flattened to a single text blob for
// downstream analysis. Ephemeral, never persisted.
type NormalizedItem struct {
	ID   string
	Text string
}
