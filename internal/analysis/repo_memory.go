package analysis

import (
	"context"
	"sync"
	"time"
)

// MemoryRepo is an in-memory Repo for development and tests.
type MemoryRepo struct {
	mu      sync.RWMutex
	results map[string]StoredResult
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{results: make(map[string]StoredResult)}
}

func memoryKey(campaignID, kind string) string {
	return campaignID + "|" + kind
}

// Upsert stores the result, replacing any previous run.
func (r *MemoryRepo) Upsert(ctx context.Context, result StoredResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if result.UpdatedAt.IsZero() {
		result.UpdatedAt = time.Now().UTC()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results[memoryKey(result.CampaignID, result.Kind)] = result
	return nil
}

// GetByCampaignAndKind fetches the stored result for one flow.
func (r *MemoryRepo) GetByCampaignAndKind(ctx context.Context, campaignID, kind string) (StoredResult, error) {
	if err := ctx.Err(); err != nil {
		return StoredResult{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	result, ok := r.results[memoryKey(campaignID, kind)]
	if !ok {
		return StoredResult{}, ErrNotFound
	}
	return result, nil
}

var _ Repo = (*MemoryRepo)(nil)
