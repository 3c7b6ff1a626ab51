package listing

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound = errors.New("listing not found")
	// ErrStateChanged is returned by conditional promotion writes when the
	// stored row no longer matches the expected state.
	ErrStateChanged = errors.New("listing promotion state changed concurrently")
)

// Repository defines persistence operations for listings.
type Repository interface {
	// ListAll returns every listing, newest first.
	ListAll(ctx context.Context) ([]Listing, error)
	ListByUser(ctx context.Context, userID string) ([]Listing, error)
	GetByID(ctx context.Context, id string) (*Listing, error)
	Create(ctx context.Context, l *Listing) error
	// UpdatePromotion writes p only while the row's is_pending equals
	// expectPending; otherwise it returns ErrStateChanged.
	UpdatePromotion(ctx context.Context, id string, expectPending bool, p Promotion) error
	Delete(ctx context.Context, id string) error
	// ClearExpiredFeatured resets is_featured on rows whose featured_until
	// is at or before now and returns the number of rows touched.
	ClearExpiredFeatured(ctx context.Context, now time.Time) (int64, error)
}
