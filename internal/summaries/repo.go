package summaries

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound = errors.New("not found")
	// ErrResultNotSaved means the rollup was computed but the write-back
	// failed. The summary returned alongside it is complete and usable.
	ErrResultNotSaved = errors.New("summary not saved")
)

// Repo persists period summaries keyed by campaign and period.
type Repo interface {
	UpsertDaily(ctx context.Context, summary DailySummary) error
	GetDaily(ctx context.Context, campaignID string, day time.Time) (DailySummary, error)
	ListDaily(ctx context.Context, campaignID string, from, to time.Time) ([]DailySummary, error)
	UpsertMonthly(ctx context.Context, summary MonthlySummary) error
	GetMonthly(ctx context.Context, campaignID, month string) (MonthlySummary, error)
}
