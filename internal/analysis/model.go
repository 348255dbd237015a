package analysis

import (
	"encoding/json"
	"time"
)

// StoredResult is the persisted output of one analysis flow for a campaign.
// At most one row exists per (campaign, kind); reruns overwrite it.
type StoredResult struct {
	CampaignID string          `json:"campaignId"`
	Kind       string          `json:"kind"`
	Result     json.RawMessage `json:"result"`
	SampleSize int             `json:"sampleSize"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

// ValidKind reports whether kind names a supported analysis flow.
func ValidKind(kind string) bool {
	switch kind {
	case KindTopics, KindClusters, KindThemes:
		return true
	default:
		return false
	}
}
