package favorite

import "context"

// Repository defines persistence operations for favorites.
type Repository interface {
	// Add is idempotent: adding an existing pair is not an error.
	Add(ctx context.Context, userID, jobID string) error
	Remove(ctx context.Context, userID, jobID string) error
	JobIDs(ctx context.Context, userID string) ([]string, error)
	DeleteByJob(ctx context.Context, jobID string) error
	DeleteByUser(ctx context.Context, userID string) error
}
