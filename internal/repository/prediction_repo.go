package repository

import (
	"context"
	"database/sql"

	"fatiguelens/internal/models"
)

// PredictionRepository persists prediction audit records.
type PredictionRepository struct {
	db *sql.DB
}

// NewPredictionRepository returns repository.
func NewPredictionRepository(db *sql.DB) *PredictionRepository {
	return &PredictionRepository{db: db}
}

// EnsureSchema creates the predictions table if it does not exist.
func (r *PredictionRepository) EnsureSchema(ctx context.Context) error {
	const query = `
		CREATE TABLE IF NOT EXISTS predictions (
			id UUID PRIMARY KEY,
			age INT NOT NULL,
			social_media_time DOUBLE PRECISION NOT NULL,
			screen_time DOUBLE PRECISION NOT NULL,
			platform VARCHAR(50) NOT NULL,
			prediction DOUBLE PRECISION NOT NULL,
			category VARCHAR(20) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`
	_, err := r.db.ExecContext(ctx, query)
	return err
}

// Append inserts one audit record. Each call borrows a pooled connection for
// the duration of the statement only, so a retrying caller never holds a
// connection across attempts.
func (r *PredictionRepository) Append(ctx context.Context, rec models.AuditRecord) error {
	const query = `
		INSERT INTO predictions (id, age, social_media_time, screen_time, platform, prediction, category, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.ExecContext(ctx, query,
		rec.ID,
		rec.Age,
		rec.SocialMediaTime,
		rec.ScreenTime,
		rec.Platform,
		rec.Prediction,
		rec.Category,
		rec.CreatedAt,
	)
	return err
}

// ListRecent returns the newest records first.
func (r *PredictionRepository) ListRecent(ctx context.Context, limit int) ([]models.AuditRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	const query = `
		SELECT id, age, social_media_time, screen_time, platform, prediction, category, created_at
		FROM predictions
		ORDER BY created_at DESC
		LIMIT $1
	`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRecords(rows)
}

// ListAll returns every record in insertion order, for the export utility.
func (r *PredictionRepository) ListAll(ctx context.Context) ([]models.AuditRecord, error) {
	const query = `
		SELECT id, age, social_media_time, screen_time, platform, prediction, category, created_at
		FROM predictions
		ORDER BY created_at ASC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRecords(rows)
}

// CountAll returns the total number of persisted records.
func (r *PredictionRepository) CountAll(ctx context.Context) (int64, error) {
	const query = `SELECT COUNT(*) FROM predictions`
	var count int64
	if err := r.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func scanRecords(rows *sql.Rows) ([]models.AuditRecord, error) {
	var records []models.AuditRecord
	for rows.Next() {
		var rec models.AuditRecord
		if err := rows.Scan(
			&rec.ID,
			&rec.Age,
			&rec.SocialMediaTime,
			&rec.ScreenTime,
			&rec.Platform,
			&rec.Prediction,
			&rec.Category,
			&rec.CreatedAt,
		); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}
