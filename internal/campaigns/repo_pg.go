package campaigns

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new campaign.
func (r *PGRepo) Create(ctx context.Context, campaign Campaign) error {
	const query = `
INSERT INTO campaigns (id, company_name, name, language, questions, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $6)`
	questions, err := json.Marshal(campaign.Questions)
	if err != nil {
		return fmt.Errorf("marshal questions: %w", err)
	}
	_, err = r.DB.ExecContext(ctx, query,
		campaign.ID,
		campaign.CompanyName,
		campaign.Name,
		campaign.LanguageOrDefault(),
		questions,
		campaign.CreatedAt,
	)
	return err
}

// GetByID returns a campaign by ID.
func (r *PGRepo) GetByID(ctx context.Context, campaignID string) (Campaign, error) {
	const query = `
SELECT id, company_name, name, language, questions, created_at, updated_at
FROM campaigns
WHERE id = $1
LIMIT 1`
	var c Campaign
	var questions []byte
	err := r.DB.QueryRowContext(ctx, query, campaignID).Scan(
		&c.ID,
		&c.CompanyName,
		&c.Name,
		&c.Language,
		&questions,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Campaign{}, ErrNotFound
	}
	if err != nil {
		return Campaign{}, err
	}
	if len(questions) > 0 {
		if err := json.Unmarshal(questions, &c.Questions); err != nil {
			return Campaign{}, fmt.Errorf("unmarshal questions: %w", err)
		}
	}
	return c, nil
}

// List returns all campaigns ordered newest-first.
func (r *PGRepo) List(ctx context.Context) ([]Campaign, error) {
	const query = `
SELECT id, company_name, name, language, questions, created_at, updated_at
FROM campaigns
ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Campaign
	for rows.Next() {
		var c Campaign
		var questions []byte
		if err := rows.Scan(&c.ID, &c.CompanyName, &c.Name, &c.Language, &questions, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		if len(questions) > 0 {
			if err := json.Unmarshal(questions, &c.Questions); err != nil {
				return nil, fmt.Errorf("unmarshal questions: %w", err)
			}
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

var _ Repo = (*PGRepo)(nil)
