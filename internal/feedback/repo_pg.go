package feedback

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new feedback record.
func (r *PGRepo) Create(ctx context.Context, record Record) error {
	const query = `
INSERT INTO feedback (id, campaign_id, nps_score, root_text, responses, recording_key, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`
	responses, err := json.Marshal(record.Responses)
	if err != nil {
		return fmt.Errorf("marshal responses: %w", err)
	}
	var score sql.NullInt64
	if record.NPSScore != nil {
		score = sql.NullInt64{Int64: int64(*record.NPSScore), Valid: true}
	}
	_, err = r.DB.ExecContext(ctx, query,
		record.ID,
		record.CampaignID,
		score,
		record.RootText,
		responses,
		record.RecordingKey,
		record.CreatedAt,
	)
	return err
}

// ListByCampaign returns all records for a campaign ordered oldest-first.
func (r *PGRepo) ListByCampaign(ctx context.Context, campaignID string) ([]Record, error) {
	const query = `
SELECT id, campaign_id, nps_score, root_text, responses, recording_key, created_at
FROM feedback
WHERE campaign_id = $1
ORDER BY created_at ASC`
	rows, err := r.DB.QueryContext(ctx, query, campaignID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRecords(rows)
}

// ListByCampaignWindow returns records with created_at in [start, end).
func (r *PGRepo) ListByCampaignWindow(ctx context.Context, campaignID string, start, end time.Time) ([]Record, error) {
	const query = `
SELECT id, campaign_id, nps_score, root_text, responses, recording_key, created_at
FROM feedback
WHERE campaign_id = $1 AND created_at >= $2 AND created_at < $3
ORDER BY created_at ASC`
	rows, err := r.DB.QueryContext(ctx, query, campaignID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRecords(rows)
}

func scanRecords(rows *sql.Rows) ([]Record, error) {
	var out []Record
	for rows.Next() {
		var rec Record
		var score sql.NullInt64
		var responses []byte
		if err := rows.Scan(&rec.ID, &rec.CampaignID, &score, &rec.RootText, &responses, &rec.RecordingKey, &rec.CreatedAt); err != nil {
			return nil, err
		}
		if score.Valid {
			v := int(score.Int64)
			rec.NPSScore = &v
		}
		if len(responses) > 0 {
			if err := json.Unmarshal(responses, &rec.Responses); err != nil {
				return nil, fmt.Errorf("unmarshal responses: %w", err)
			}
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

var _ Repo = (*PGRepo)(nil)
