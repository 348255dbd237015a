package feedback

import (
	"context"
	"time"
)

// Repo abstracts feedback persistence. The analysis core only reads;
// records are written by the submission path.
type Repo interface {
	Create(ctx context.Context, record Record) error
	ListByCampaign(ctx context.Context, campaignID string) ([]Record, error)
	// ListByCampaignWindow returns records with createdAt in [start, end).
	ListByCampaignWindow(ctx context.Context, campaignID string, start, end time.Time) ([]Record, error)
}
