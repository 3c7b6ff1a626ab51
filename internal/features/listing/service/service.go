package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/Mustafaygt66/EMKO/internal/common/cache"
	apperrors "github.com/Mustafaygt66/EMKO/internal/common/errors"
	"github.com/Mustafaygt66/EMKO/internal/common/logger"
	"github.com/Mustafaygt66/EMKO/internal/common/metrics"
	"github.com/Mustafaygt66/EMKO/internal/common/validation"
	"github.com/Mustafaygt66/EMKO/internal/domain/favorite"
	"github.com/Mustafaygt66/EMKO/internal/domain/listing"
	"github.com/Mustafaygt66/EMKO/internal/domain/user"
	"github.com/Mustafaygt66/EMKO/internal/features/listing/models"
	"github.com/Mustafaygt66/EMKO/internal/features/listing/visibility"
)

type listingService struct {
	repo      listing.Repository
	favorites FavoriteCleaner
	cache     *cache.CacheService
	cacheTTL  time.Duration
	links     LinkBuilder
	log       zerolog.Logger
	now       func() time.Time
}

// NewListingService wires the listing use cases. snapshots may be nil, in
// which case every read goes to the repository.
func NewListingService(repo listing.Repository, favorites FavoriteCleaner, snapshots *cache.CacheService, cacheTTL time.Duration, links LinkBuilder) ListingService {
	return &listingService{
		repo:      repo,
		favorites: favorites,
		cache:     snapshots,
		cacheTTL:  cacheTTL,
		links:     links,
		log:       logger.Component("listing_service"),
		now:       time.Now,
	}
}

func (s *listingService) Create(ctx context.Context, owner user.Identity, req *models.CreateListingRequest) (*listing.Listing, error) {
	if owner.IsAnonymous() {
		return nil, apperrors.NewUnauthorizedError("sign in to post a listing")
	}
	if err := validation.ValidateTitle(req.Title); err != nil {
		return nil, apperrors.NewValidationError("title", err.Error())
	}
	if err := validation.ValidateDescription(req.Description); err != nil {
		return nil, apperrors.NewValidationError("description", err.Error())
	}
	if err := validation.ValidatePrice(req.PriceAmount); err != nil {
		return nil, apperrors.NewValidationError("price_amount", err.Error())
	}
	phone, err := validation.NormalizePhone(req.PhoneNumber)
	if err != nil {
		return nil, apperrors.NewValidationError("phone_number", err.Error())
	}

	l := &listing.Listing{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		PriceAmount: req.PriceAmount,
		PhoneNumber: phone,
		Status:      listing.StatusOpen,
		IsFeatured:  false,
		IsPending:   false,
		UserID:      owner.UserID,
	}
	if err := s.repo.Create(ctx, l); err != nil {
		return nil, apperrors.NewDatabaseError("create listing", err)
	}

	metrics.ListingsCreated.Inc()
	s.invalidate(ctx)
	s.log.Info().Str("listing_id", l.ID).Str("user_id", owner.UserID).Msg("Listing created")
	return l, nil
}

func (s *listingService) Browse(ctx context.Context, viewer user.Identity, q visibility.Query) (*visibility.Result, error) {
	all, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	v := visibility.Viewer{UserID: viewer.UserID}
	if !viewer.IsAnonymous() {
		ids, err := s.favorites.JobIDs(ctx, viewer.UserID)
		if err != nil {
			return nil, apperrors.NewDatabaseError("load favorites", err)
		}
		v.Favorites = favorite.NewSet(ids...)
	}

	res := visibility.Compute(all, v, q, s.now())
	return &res, nil
}

func (s *listingService) Trend(ctx context.Context) ([]listing.Listing, error) {
	all, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return visibility.Trend(all, s.now()), nil
}

func (s *listingService) Get(ctx context.Context, id string) (*listing.Listing, error) {
	l, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError(err, "get listing", id)
	}
	return l, nil
}

func (s *listingService) Delete(ctx context.Context, actor user.Identity, id string) error {
	if actor.IsAnonymous() {
		return apperrors.NewUnauthorizedError("sign in to delete a listing")
	}
	l, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !l.OwnedBy(actor.UserID) && !actor.IsAdmin {
		return apperrors.NewNotOwnerError("listing", id)
	}

	if err := s.Remove(ctx, id); err != nil {
		return err
	}

	role := "owner"
	if !l.OwnedBy(actor.UserID) {
		role = "admin"
	}
	metrics.ListingsDeleted.WithLabelValues(role).Inc()
	s.log.Info().Str("listing_id", id).Str("actor", actor.UserID).Str("role", role).Msg("Listing deleted")
	return nil
}

// Remove deletes favorites first, then the listing. The two calls are not
// atomic; a failure in between leaves the listing in place and re-running
// completes it.
func (s *listingService) Remove(ctx context.Context, id string) error {
	if err := s.favorites.DeleteByJob(ctx, id); err != nil {
		return apperrors.NewDatabaseError("delete favorites of listing", err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.mapRepoError(err, "delete listing", id)
	}
	s.invalidate(ctx)
	return nil
}

func (s *listingService) ListByUser(ctx context.Context, userID string) ([]listing.Listing, error) {
	ls, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.NewDatabaseError("list listings of user", err)
	}
	return ls, nil
}

// RequestPromotion moves an owned listing to PENDING_APPROVAL and returns
// the chat link used to notify the operator about the payment.
func (s *listingService) RequestPromotion(ctx context.Context, actor user.Identity, id string) (*listing.Listing, string, error) {
	if actor.IsAnonymous() {
		return nil, "", apperrors.NewUnauthorizedError("sign in to promote a listing")
	}
	l, err := s.Get(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if !l.OwnedBy(actor.UserID) {
		return nil, "", apperrors.NewNotOwnerError("listing", id)
	}

	now := s.now()
	p, err := listing.RequestPromotion(l, now)
	if err != nil {
		return nil, "", apperrors.NewPromotionNotAllowedError(id, string(listing.PromotionStateAt(l, now)))
	}
	if err := s.repo.UpdatePromotion(ctx, id, false, p); err != nil {
		if errors.Is(err, listing.ErrStateChanged) {
			return nil, "", apperrors.NewPromotionNotAllowedError(id, string(listing.PromotionPending))
		}
		return nil, "", s.mapRepoError(err, "request promotion", id)
	}
	p.Apply(l)

	metrics.PromotionTransitions.WithLabelValues(string(listing.PromotionPending)).Inc()
	s.invalidate(ctx)
	s.log.Info().Str("listing_id", id).Str("user_id", actor.UserID).Msg("Promotion requested")
	return l, s.links.PromotionPayment(l), nil
}

func (s *listingService) ApprovePromotion(ctx context.Context, admin user.Identity, id string) (*listing.Listing, error) {
	if !admin.IsAdmin {
		return nil, apperrors.NewForbiddenError("administrator access required")
	}
	l, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	p, err := listing.ApprovePromotion(l, s.now())
	if err != nil {
		return nil, apperrors.NewNotPendingError(id)
	}
	if err := s.repo.UpdatePromotion(ctx, id, true, p); err != nil {
		if errors.Is(err, listing.ErrStateChanged) {
			return nil, apperrors.NewNotPendingError(id)
		}
		return nil, s.mapRepoError(err, "approve promotion", id)
	}
	p.Apply(l)

	metrics.PromotionTransitions.WithLabelValues(string(listing.PromotionFeatured)).Inc()
	s.invalidate(ctx)
	s.log.Info().Str("listing_id", id).Time("featured_until", *l.FeaturedUntil).Msg("Promotion approved")
	return l, nil
}

func (s *listingService) ContactLink(ctx context.Context, id string) (string, error) {
	l, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return s.links.ListingContact(l), nil
}

func (s *listingService) snapshot(ctx context.Context) ([]listing.Listing, error) {
	if s.cache == nil {
		return s.listAll(ctx)
	}

	key, err := s.cache.ListingsSnapshotKey(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("Listing snapshot unavailable, reading store")
		return s.listAll(ctx)
	}

	var all []listing.Listing
	err = s.cache.GetOrSet(ctx, key, &all, s.cacheTTL, func() (interface{}, error) {
		return s.repo.ListAll(ctx)
	})
	if err != nil {
		return nil, apperrors.NewDatabaseError("list listings", err)
	}
	return all, nil
}

func (s *listingService) listAll(ctx context.Context) ([]listing.Listing, error) {
	all, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, apperrors.NewDatabaseError("list listings", err)
	}
	return all, nil
}

func (s *listingService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateListings(ctx); err != nil {
		s.log.Warn().Err(err).Msg("Failed to invalidate listing snapshot")
	}
}

func (s *listingService) mapRepoError(err error, op, id string) error {
	if errors.Is(err, listing.ErrNotFound) {
		return apperrors.NewListingNotFoundError(id)
	}
	return apperrors.NewDatabaseError(op, err)
}
