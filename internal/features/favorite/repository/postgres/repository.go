package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/Mustafaygt66/EMKO/internal/common/validation"
	"github.com/Mustafaygt66/EMKO/internal/domain/favorite"
	"github.com/Mustafaygt66/EMKO/internal/domain/listing"
)

type postgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) favorite.Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) Add(ctx context.Context, userID, jobID string) error {
	if !validation.IsUUID(userID) || !validation.IsUUID(jobID) {
		return listing.ErrNotFound
	}
	query := `
		INSERT INTO favorites (user_id, job_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, job_id) DO NOTHING
	`
	if _, err := r.db.ExecContext(ctx, query, userID, jobID); err != nil {
		return fmt.Errorf("failed to add favorite: %w", err)
	}
	return nil
}

// Remove, JobIDs and the bulk deletes treat malformed ids as matching no rows.
func (r *postgresRepository) Remove(ctx context.Context, userID, jobID string) error {
	if !validation.IsUUID(userID) || !validation.IsUUID(jobID) {
		return nil
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM favorites WHERE user_id = $1 AND job_id = $2`, userID, jobID); err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}
	return nil
}

func (r *postgresRepository) JobIDs(ctx context.Context, userID string) ([]string, error) {
	ids := make([]string, 0)
	if !validation.IsUUID(userID) {
		return ids, nil
	}
	if err := r.db.SelectContext(ctx, &ids, `SELECT job_id FROM favorites WHERE user_id = $1 ORDER BY created_at DESC`, userID); err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	return ids, nil
}

func (r *postgresRepository) DeleteByJob(ctx context.Context, jobID string) error {
	if !validation.IsUUID(jobID) {
		return nil
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM favorites WHERE job_id = $1`, jobID); err != nil {
		return fmt.Errorf("failed to delete favorites of job: %w", err)
	}
	return nil
}

func (r *postgresRepository) DeleteByUser(ctx context.Context, userID string) error {
	if !validation.IsUUID(userID) {
		return nil
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM favorites WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to delete favorites of user: %w", err)
	}
	return nil
}
