package campaigns

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo stores campaigns in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu   sync.RWMutex
	byID map[string]Campaign
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byID: make(map[string]Campaign)}
}

// Create stores the campaign.
func (r *MemoryRepo) Create(ctx context.Context, campaign Campaign) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[campaign.ID] = campaign
	return nil
}

// GetByID returns a campaign by its ID.
func (r *MemoryRepo) GetByID(ctx context.Context, campaignID string) (Campaign, error) {
	if err := ctx.Err(); err != nil {
		return Campaign{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	campaign, ok := r.byID[campaignID]
	if !ok {
		return Campaign{}, ErrNotFound
	}
	return campaign, nil
}

// List returns all campaigns, newest first.
func (r *MemoryRepo) List(ctx context.Context) ([]Campaign, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Campaign, 0, len(r.byID))
	for _, c := range r.byID {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

var _ Repo = (*MemoryRepo)(nil)
