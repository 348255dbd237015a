package summaries

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo is an in-memory Repo for development and tests.
type MemoryRepo struct {
	mu      sync.RWMutex
	daily   map[string]DailySummary
	monthly map[string]MonthlySummary
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		daily:   make(map[string]DailySummary),
		monthly: make(map[string]MonthlySummary),
	}
}

func dailyKey(campaignID string, day time.Time) string {
	return campaignID + "|" + day.UTC().Format("2006-01-02")
}

// UpsertDaily stores a daily rollup.
func (r *MemoryRepo) UpsertDaily(ctx context.Context, summary DailySummary) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if summary.UpdatedAt.IsZero() {
		summary.UpdatedAt = time.Now().UTC()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.daily[dailyKey(summary.CampaignID, summary.Day)] = summary
	return nil
}

// GetDaily fetches one daily rollup.
func (r *MemoryRepo) GetDaily(ctx context.Context, campaignID string, day time.Time) (DailySummary, error) {
	if err := ctx.Err(); err != nil {
		return DailySummary{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	summary, ok := r.daily[dailyKey(campaignID, day)]
	if !ok {
		return DailySummary{}, ErrNotFound
	}
	return summary, nil
}

// ListDaily returns rollups with day in [from, to), oldest first.
func (r *MemoryRepo) ListDaily(ctx context.Context, campaignID string, from, to time.Time) ([]DailySummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []DailySummary
	for _, summary := range r.daily {
		if summary.CampaignID != campaignID {
			continue
		}
		if summary.Day.Before(from) || !summary.Day.Before(to) {
			continue
		}
		out = append(out, summary)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day.Before(out[j].Day) })
	return out, nil
}

// UpsertMonthly stores a monthly rollup.
func (r *MemoryRepo) UpsertMonthly(ctx context.Context, summary MonthlySummary) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if summary.UpdatedAt.IsZero() {
		summary.UpdatedAt = time.Now().UTC()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.monthly[summary.CampaignID+"|"+summary.Month] = summary
	return nil
}

// GetMonthly fetches one monthly rollup.
func (r *MemoryRepo) GetMonthly(ctx context.Context, campaignID, month string) (MonthlySummary, error) {
	if err := ctx.Err(); err != nil {
		return MonthlySummary{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	summary, ok := r.monthly[campaignID+"|"+month]
	if !ok {
		return MonthlySummary{}, ErrNotFound
	}
	return summary, nil
}

var _ Repo = (*MemoryRepo)(nil)
