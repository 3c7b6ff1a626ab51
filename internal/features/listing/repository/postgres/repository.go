package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Mustafaygt66/EMKO/internal/common/validation"
	"github.com/Mustafaygt66/EMKO/internal/domain/listing"
)

const listingColumns = `id, title, description, category, price_amount, phone_number, status,
	is_featured, featured_until, is_pending, user_id, created_at`

type postgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) listing.Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) ListAll(ctx context.Context) ([]listing.Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM jobs ORDER BY created_at DESC`

	out := make([]listing.Listing, 0)
	if err := r.db.SelectContext(ctx, &out, query); err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	return out, nil
}

func (r *postgresRepository) ListByUser(ctx context.Context, userID string) ([]listing.Listing, error) {
	if !validation.IsUUID(userID) {
		return []listing.Listing{}, nil
	}
	query := `SELECT ` + listingColumns + ` FROM jobs WHERE user_id = $1 ORDER BY created_at DESC`

	out := make([]listing.Listing, 0)
	if err := r.db.SelectContext(ctx, &out, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list jobs of user: %w", err)
	}
	return out, nil
}

// Ids that are not UUIDs cannot match a row and are reported as not found
// without a round trip.
func (r *postgresRepository) GetByID(ctx context.Context, id string) (*listing.Listing, error) {
	if !validation.IsUUID(id) {
		return nil, listing.ErrNotFound
	}
	query := `SELECT ` + listingColumns + ` FROM jobs WHERE id = $1`

	var l listing.Listing
	if err := r.db.GetContext(ctx, &l, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, listing.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return &l, nil
}

// Create inserts l and fills in the store-assigned id and created_at.
func (r *postgresRepository) Create(ctx context.Context, l *listing.Listing) error {
	query := `
		INSERT INTO jobs (title, description, category, price_amount, phone_number, status,
			is_featured, is_pending, user_id)
		VALUES (:title, :description, :category, :price_amount, :phone_number, :status,
			:is_featured, :is_pending, :user_id)
		RETURNING id, created_at
	`

	rows, err := r.db.NamedQueryContext(ctx, query, l)
	if err != nil {
		return fmt.Errorf("failed to create job: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return fmt.Errorf("failed to create job: %w", err)
		}
		return fmt.Errorf("failed to create job: no row returned")
	}
	if err := rows.Scan(&l.ID, &l.CreatedAt); err != nil {
		return fmt.Errorf("failed to scan created job: %w", err)
	}
	return nil
}

func (r *postgresRepository) UpdatePromotion(ctx context.Context, id string, expectPending bool, p listing.Promotion) error {
	if !validation.IsUUID(id) {
		return listing.ErrNotFound
	}
	query := `
		UPDATE jobs
		SET is_featured = $2, is_pending = $3, featured_until = $4
		WHERE id = $1 AND is_pending = $5
	`

	result, err := r.db.ExecContext(ctx, query, id, p.IsFeatured, p.IsPending, p.FeaturedUntil, expectPending)
	if err != nil {
		return fmt.Errorf("failed to update job promotion: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return r.missingOrChanged(ctx, id)
	}
	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id string) error {
	if !validation.IsUUID(id) {
		return listing.ErrNotFound
	}
	result, err := r.db.ExecContext(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return listing.ErrNotFound
	}
	return nil
}

func (r *postgresRepository) ClearExpiredFeatured(ctx context.Context, now time.Time) (int64, error) {
	query := `
		UPDATE jobs
		SET is_featured = FALSE
		WHERE is_featured AND (featured_until IS NULL OR featured_until <= $1)
	`

	result, err := r.db.ExecContext(ctx, query, now)
	if err != nil {
		return 0, fmt.Errorf("failed to clear expired features: %w", err)
	}
	return result.RowsAffected()
}

func (r *postgresRepository) missingOrChanged(ctx context.Context, id string) error {
	var exists bool
	if err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM jobs WHERE id = $1)`, id); err != nil {
		return fmt.Errorf("failed to check job: %w", err)
	}
	if !exists {
		return listing.ErrNotFound
	}
	return listing.ErrStateChanged
}
