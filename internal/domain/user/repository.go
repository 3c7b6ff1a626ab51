package user

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("user not found")

// Repository defines persistence operations for users.
type Repository interface {
	// UpsertByEmail returns the user for email, creating it when absent.
	UpsertByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
}
