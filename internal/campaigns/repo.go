package campaigns

import "context"

// Repo abstracts campaign persistence.
type Repo interface {
	Create(ctx context.Context, campaign Campaign) error
	GetByID(ctx context.Context, campaignID string) (Campaign, error)
	List(ctx context.Context) ([]Campaign, error)
}
