package summaries

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// UpsertDaily stores a daily rollup with last-writer-wins semantics.
func (r *PGRepo) UpsertDaily(ctx context.Context, summary DailySummary) error {
	const query = `
INSERT INTO daily_summaries (campaign_id, day, nps_average, promoter_pct, detractor_pct, response_count, summary, positive_themes, negative_themes, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
ON CONFLICT (campaign_id, day) DO UPDATE SET
    nps_average = EXCLUDED.nps_average,
    promoter_pct = EXCLUDED.promoter_pct,
    detractor_pct = EXCLUDED.detractor_pct,
    response_count = EXCLUDED.response_count,
    summary = EXCLUDED.summary,
    positive_themes = EXCLUDED.positive_themes,
    negative_themes = EXCLUDED.negative_themes,
    updated_at = EXCLUDED.updated_at`
	positive, negative, err := marshalThemes(summary.PositiveThemes, summary.NegativeThemes)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, query,
		summary.CampaignID,
		summary.Day.UTC().Format("2006-01-02"),
		summary.NPSAverage,
		summary.PromoterPct,
		summary.DetractorPct,
		summary.ResponseCount,
		summary.Summary,
		positive,
		negative,
		orNow(summary.UpdatedAt),
	)
	return err
}

// GetDaily fetches one daily rollup.
func (r *PGRepo) GetDaily(ctx context.Context, campaignID string, day time.Time) (DailySummary, error) {
	const query = `
SELECT campaign_id, day, nps_average, promoter_pct, detractor_pct, response_count, summary, positive_themes, negative_themes, updated_at
FROM daily_summaries
WHERE campaign_id = $1 AND day = $2`
	row := r.DB.QueryRowContext(ctx, query, campaignID, day.UTC().Format("2006-01-02"))
	summary, err := scanDaily(row)
	if errors.Is(err, sql.ErrNoRows) {
		return DailySummary{}, ErrNotFound
	}
	return summary, err
}

// ListDaily returns rollups with day in [from, to), oldest first.
func (r *PGRepo) ListDaily(ctx context.Context, campaignID string, from, to time.Time) ([]DailySummary, error) {
	const query = `
SELECT campaign_id, day, nps_average, promoter_pct, detractor_pct, response_count, summary, positive_themes, negative_themes, updated_at
FROM daily_summaries
WHERE campaign_id = $1 AND day >= $2 AND day < $3
ORDER BY day ASC`
	rows, err := r.DB.QueryContext(ctx, query, campaignID, from.UTC().Format("2006-01-02"), to.UTC().Format("2006-01-02"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []DailySummary
	for rows.Next() {
		summary, err := scanDaily(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, summary)
	}
	return out, rows.Err()
}

// UpsertMonthly stores a monthly rollup with last-writer-wins semantics.
func (r *PGRepo) UpsertMonthly(ctx context.Context, summary MonthlySummary) error {
	const query = `
INSERT INTO monthly_summaries (campaign_id, month, nps_average, promoter_pct, detractor_pct, response_count, nps_trend, summary, positive_themes, negative_themes, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
ON CONFLICT (campaign_id, month) DO UPDATE SET
    nps_average = EXCLUDED.nps_average,
    promoter_pct = EXCLUDED.promoter_pct,
    detractor_pct = EXCLUDED.detractor_pct,
    response_count = EXCLUDED.response_count,
    nps_trend = EXCLUDED.nps_trend,
    summary = EXCLUDED.summary,
    positive_themes = EXCLUDED.positive_themes,
    negative_themes = EXCLUDED.negative_themes,
    updated_at = EXCLUDED.updated_at`
	positive, negative, err := marshalThemes(summary.PositiveThemes, summary.NegativeThemes)
	if err != nil {
		return err
	}
	trend, err := json.Marshal(ensureTrend(summary.Trend))
	if err != nil {
		return fmt.Errorf("marshal trend: %w", err)
	}
	_, err = r.DB.ExecContext(ctx, query,
		summary.CampaignID,
		summary.Month,
		summary.NPSAverage,
		summary.PromoterPct,
		summary.DetractorPct,
		summary.ResponseCount,
		trend,
		summary.Summary,
		positive,
		negative,
		orNow(summary.UpdatedAt),
	)
	return err
}

// GetMonthly fetches one monthly rollup.
func (r *PGRepo) GetMonthly(ctx context.Context, campaignID, month string) (MonthlySummary, error) {
	const query = `
SELECT campaign_id, month, nps_average, promoter_pct, detractor_pct, response_count, nps_trend, summary, positive_themes, negative_themes, updated_at
FROM monthly_summaries
WHERE campaign_id = $1 AND month = $2`
	var out MonthlySummary
	var trend, positive, negative []byte
	err := r.DB.QueryRowContext(ctx, query, campaignID, month).Scan(
		&out.CampaignID,
		&out.Month,
		&out.NPSAverage,
		&out.PromoterPct,
		&out.DetractorPct,
		&out.ResponseCount,
		&trend,
		&out.Summary,
		&positive,
		&negative,
		&out.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return MonthlySummary{}, ErrNotFound
	}
	if err != nil {
		return MonthlySummary{}, err
	}
	if err := json.Unmarshal(trend, &out.Trend); err != nil {
		return MonthlySummary{}, fmt.Errorf("unmarshal trend: %w", err)
	}
	if out.PositiveThemes, out.NegativeThemes, err = unmarshalThemes(positive, negative); err != nil {
		return MonthlySummary{}, err
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDaily(row rowScanner) (DailySummary, error) {
	var out DailySummary
	var positive, negative []byte
	err := row.Scan(
		&out.CampaignID,
		&out.Day,
		&out.NPSAverage,
		&out.PromoterPct,
		&out.DetractorPct,
		&out.ResponseCount,
		&out.Summary,
		&positive,
		&negative,
		&out.UpdatedAt,
	)
	if err != nil {
		return DailySummary{}, err
	}
	if out.PositiveThemes, out.NegativeThemes, err = unmarshalThemes(positive, negative); err != nil {
		return DailySummary{}, err
	}
	return out, nil
}

func marshalThemes(positive, negative []string) ([]byte, []byte, error) {
	p, err := json.Marshal(ensureStrings(positive))
	if err != nil {
		return nil, nil, fmt.Errorf("marshal positive themes: %w", err)
	}
	n, err := json.Marshal(ensureStrings(negative))
	if err != nil {
		return nil, nil, fmt.Errorf("marshal negative themes: %w", err)
	}
	return p, n, nil
}

func unmarshalThemes(positive, negative []byte) ([]string, []string, error) {
	var p, n []string
	if len(positive) > 0 {
		if err := json.Unmarshal(positive, &p); err != nil {
			return nil, nil, fmt.Errorf("unmarshal positive themes: %w", err)
		}
	}
	if len(negative) > 0 {
		if err := json.Unmarshal(negative, &n); err != nil {
			return nil, nil, fmt.Errorf("unmarshal negative themes: %w", err)
		}
	}
	return ensureStrings(p), ensureStrings(n), nil
}

func ensureStrings(value []string) []string {
	if value == nil {
		return []string{}
	}
	return value
}

func ensureTrend(value []TrendPoint) []TrendPoint {
	if value == nil {
		return []TrendPoint{}
	}
	return value
}

func orNow(value time.Time) time.Time {
	if value.IsZero() {
		return time.Now().UTC()
	}
	return value
}

var _ Repo = (*PGRepo)(nil)
