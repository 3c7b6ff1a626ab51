package service

import (
	"context"

	"github.com/Mustafaygt66/EMKO/internal/domain/listing"
	"github.com/Mustafaygt66/EMKO/internal/domain/user"
	"github.com/Mustafaygt66/EMKO/internal/features/listing/models"
	"github.com/Mustafaygt66/EMKO/internal/features/listing/visibility"
)

type ListingService interface {
	Create(ctx context.Context, owner user.Identity, req *models.CreateListingRequest) (*listing.Listing, error)
	// Browse runs the visibility engine over a fresh listing snapshot.
	Browse(ctx context.Context, viewer user.Identity, q visibility.Query) (*visibility.Result, error)
	Trend(ctx context.Context) ([]listing.Listing, error)
	Get(ctx context.Context, id string) (*listing.Listing, error)
	// Delete is allowed for the owner and for administrators.
	Delete(ctx context.Context, actor user.Identity, id string) error
	// Remove deletes a listing and its favorites without an ownership check.
	Remove(ctx context.Context, id string) error
	ListByUser(ctx context.Context, userID string) ([]listing.Listing, error)
	RequestPromotion(ctx context.Context, actor user.Identity, id string) (*listing.Listing, string, error)
	ApprovePromotion(ctx context.Context, admin user.Identity, id string) (*listing.Listing, error)
	ContactLink(ctx context.Context, id string) (string, error)
}

// FavoriteCleaner removes favorite rows that point at a listing.
type FavoriteCleaner interface {
	JobIDs(ctx context.Context, userID string) ([]string, error)
	DeleteByJob(ctx context.Context, jobID string) error
}

// LinkBuilder builds chat handoff links.
type LinkBuilder interface {
	ListingContact(l *listing.Listing) string
	PromotionPayment(l *listing.Listing) string
}
