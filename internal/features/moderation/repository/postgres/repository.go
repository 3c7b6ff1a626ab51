package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/Mustafaygt66/EMKO/internal/common/validation"
	"github.com/Mustafaygt66/EMKO/internal/domain/moderation"
)

type postgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) moderation.Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) Insert(ctx context.Context, b *moderation.Ban) error {
	if !validation.IsUUID(b.UserID) {
		return moderation.ErrUnknownUser
	}
	query := `
		INSERT INTO banned_users (user_id, reason, banned_by)
		VALUES (:user_id, :reason, :banned_by)
		ON CONFLICT (user_id) DO NOTHING
	`
	if _, err := r.db.NamedExecContext(ctx, query, b); err != nil {
		return fmt.Errorf("failed to insert ban: %w", err)
	}
	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, userID string) error {
	if !validation.IsUUID(userID) {
		return nil
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM banned_users WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to delete ban: %w", err)
	}
	return nil
}

func (r *postgresRepository) Exists(ctx context.Context, userID string) (bool, error) {
	if !validation.IsUUID(userID) {
		return false, nil
	}
	var exists bool
	if err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM banned_users WHERE user_id = $1)`, userID); err != nil {
		return false, fmt.Errorf("failed to check ban: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) List(ctx context.Context) ([]moderation.Ban, error) {
	bans := make([]moderation.Ban, 0)
	query := `SELECT user_id, reason, banned_by, created_at FROM banned_users ORDER BY created_at DESC`
	if err := r.db.SelectContext(ctx, &bans, query); err != nil {
		return nil, fmt.Errorf("failed to list bans: %w", err)
	}
	return bans, nil
}
