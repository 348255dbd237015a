package analysis

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Upsert stores the result with last-writer-wins semantics.
func (r *PGRepo) Upsert(ctx context.Context, result StoredResult) error {
	const query = `
INSERT INTO analysis_results (campaign_id, kind, result, sample_size, updated_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (campaign_id, kind) DO UPDATE SET
    result = EXCLUDED.result,
    sample_size = EXCLUDED.sample_size,
    updated_at = EXCLUDED.updated_at`
	updatedAt := result.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}
	_, err := r.DB.ExecContext(ctx, query,
		result.CampaignID,
		result.Kind,
		[]byte(result.Result),
		result.SampleSize,
		updatedAt,
	)
	return err
}

// GetByCampaignAndKind fetches the stored result for one flow.
func (r *PGRepo) GetByCampaignAndKind(ctx context.Context, campaignID, kind string) (StoredResult, error) {
	const query = `
SELECT campaign_id, kind, result, sample_size, updated_at
FROM analysis_results
WHERE campaign_id = $1 AND kind = $2`
	var out StoredResult
	var payload []byte
	err := r.DB.QueryRowContext(ctx, query, campaignID, kind).
		Scan(&out.CampaignID, &out.Kind, &payload, &out.SampleSize, &out.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return StoredResult{}, ErrNotFound
	}
	if err != nil {
		return StoredResult{}, err
	}
	out.Result = payload
	return out, nil
}

var _ Repo = (*PGRepo)(nil)
