package feedback

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo stores feedback in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu         sync.RWMutex
	byCampaign map[string][]Record
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byCampaign: make(map[string][]Record)}
}

// Create stores the record.
func (r *MemoryRepo) Create(ctx context.Context, record Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byCampaign[record.CampaignID] = append(r.byCampaign[record.CampaignID], record)
	return nil
}

// ListByCampaign returns all records for a campaign, oldest first.
func (r *MemoryRepo) ListByCampaign(ctx context.Context, campaignID string) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	records := append([]Record(nil), r.byCampaign[campaignID]...)
	r.mu.RUnlock()

	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.Before(records[j].CreatedAt)
	})
	return records, nil
}

// ListByCampaignWindow returns records with createdAt in [start, end).
func (r *MemoryRepo) ListByCampaignWindow(ctx context.Context, campaignID string, start, end time.Time) ([]Record, error) {
	all, err := r.ListByCampaign(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	out := make([]Record, 0, len(all))
	for _, rec := range all {
		if !rec.CreatedAt.Before(start) && rec.CreatedAt.Before(end) {
			out = append(out, rec)
		}
	}
	return out, nil
}

var _ Repo = (*MemoryRepo)(nil)
