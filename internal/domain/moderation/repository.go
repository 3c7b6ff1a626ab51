package moderation

import (
	"context"
	"errors"
)

// ErrUnknownUser is returned when a ban targets an id no user can have.
var ErrUnknownUser = errors.New("unknown user id")

// Repository defines persistence operations for ban markers.
type Repository interface {
	// Insert is idempotent so a partially applied ban can be re-run.
	Insert(ctx context.Context, b *Ban) error
	Delete(ctx context.Context, userID string) error
	Exists(ctx context.Context, userID string) (bool, error)
	List(ctx context.Context) ([]Ban, error)
}
