package analysis

import "context"

// Repo persists analysis results keyed by (campaign, kind).
type Repo interface {
	// Upsert stores the result, replacing any previous run for the same
	// campaign and kind.
	Upsert(ctx context.Context, result StoredResult) error
	GetByCampaignAndKind(ctx context.Context, campaignID, kind string) (StoredResult, error)
}
