package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	apperrors "github.com/Mustafaygt66/EMKO/internal/common/errors"
	"github.com/Mustafaygt66/EMKO/internal/common/logger"
	"github.com/Mustafaygt66/EMKO/internal/common/metrics"
	"github.com/Mustafaygt66/EMKO/internal/domain/listing"
	"github.com/Mustafaygt66/EMKO/internal/domain/moderation"
	"github.com/Mustafaygt66/EMKO/internal/domain/user"
)

type ModerationService interface {
	IsBanned(ctx context.Context, userID string) (bool, error)
	// BanUser deletes the user's favorites, records the ban and deletes
	// every listing the user owns, in that order. The steps are not
	// atomic; re-running after a failure completes a partial ban.
	BanUser(ctx context.Context, admin user.Identity, userID, reason string) error
	// RejectListing deletes a listing, typically a pending one, and bans
	// its owner when opts.Ban is set.
	RejectListing(ctx context.Context, admin user.Identity, listingID string, opts RejectOptions) error
	Unban(ctx context.Context, admin user.Identity, userID string) error
	ListBans(ctx context.Context, admin user.Identity) ([]moderation.Ban, error)
}

// RejectOptions controls the ban half of a rejection. OwnerID lets a
// repeated rejection finish the ban after the listing itself is gone.
type RejectOptions struct {
	Ban     bool
	Reason  string
	OwnerID string
}

// ListingRemover is the part of the listing service moderation drives.
type ListingRemover interface {
	Get(ctx context.Context, id string) (*listing.Listing, error)
	ListByUser(ctx context.Context, userID string) ([]listing.Listing, error)
	Remove(ctx context.Context, id string) error
}

type FavoriteEraser interface {
	DeleteByUser(ctx context.Context, userID string) error
}

type BanCache interface {
	Get(ctx context.Context, userID string) (banned bool, found bool, err error)
	Set(ctx context.Context, userID string, banned bool) error
	Forget(ctx context.Context, userID string) error
}

type moderationService struct {
	bans      moderation.Repository
	cache     BanCache
	favorites FavoriteEraser
	listings  ListingRemover
	log       zerolog.Logger
}

func NewModerationService(bans moderation.Repository, cache BanCache, favorites FavoriteEraser, listings ListingRemover) ModerationService {
	return &moderationService{
		bans:      bans,
		cache:     cache,
		favorites: favorites,
		listings:  listings,
		log:       logger.Component("moderation_service"),
	}
}

func (s *moderationService) IsBanned(ctx context.Context, userID string) (bool, error) {
	if userID == "" {
		return false, nil
	}

	if banned, found, err := s.cache.Get(ctx, userID); err == nil && found {
		return banned, nil
	} else if err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Msg("Ban cache read failed")
	}

	banned, err := s.bans.Exists(ctx, userID)
	if err != nil {
		return false, apperrors.NewDatabaseError("check ban", err)
	}
	if err := s.cache.Set(ctx, userID, banned); err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Msg("Ban cache write failed")
	}
	return banned, nil
}

func (s *moderationService) BanUser(ctx context.Context, admin user.Identity, userID, reason string) error {
	if err := requireAdmin(admin); err != nil {
		return err
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return apperrors.NewValidationError("user_id", "cannot be empty")
	}
	if userID == admin.UserID {
		return apperrors.NewValidationError("user_id", "administrators cannot ban themselves")
	}

	if err := s.favorites.DeleteByUser(ctx, userID); err != nil {
		return apperrors.NewDatabaseError("delete favorites of user", err)
	}

	ban := &moderation.Ban{UserID: userID, Reason: reason, BannedBy: admin.Email}
	if err := s.bans.Insert(ctx, ban); err != nil {
		if errors.Is(err, moderation.ErrUnknownUser) {
			return apperrors.NewValidationError("user_id", "not a known user id")
		}
		return apperrors.NewDatabaseError("insert ban", err)
	}
	if err := s.cache.Set(ctx, userID, true); err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Msg("Ban cache write failed")
	}

	owned, err := s.listings.ListByUser(ctx, userID)
	if err != nil {
		return err
	}
	for _, l := range owned {
		if err := s.listings.Remove(ctx, l.ID); err != nil && !apperrors.HasCode(err, apperrors.ErrCodeListingNotFound) {
			s.log.Error().Err(err).Str("user_id", userID).Str("listing_id", l.ID).Msg("Ban left listings behind")
			return err
		}
	}

	metrics.BansIssued.Inc()
	s.log.Info().
		Str("user_id", userID).
		Str("admin", admin.Email).
		Int("listings_removed", len(owned)).
		Msg("User banned")
	return nil
}

func (s *moderationService) RejectListing(ctx context.Context, admin user.Identity, listingID string, opts RejectOptions) error {
	if err := requireAdmin(admin); err != nil {
		return err
	}

	l, err := s.listings.Get(ctx, listingID)
	if err != nil {
		if opts.Ban && opts.OwnerID != "" && apperrors.HasCode(err, apperrors.ErrCodeListingNotFound) {
			s.log.Info().Str("listing_id", listingID).Str("owner_id", opts.OwnerID).Msg("Listing already removed, finishing ban")
			return s.BanUser(ctx, admin, opts.OwnerID, opts.Reason)
		}
		return err
	}
	if opts.OwnerID != "" && opts.OwnerID != l.UserID {
		return apperrors.NewValidationError("owner_id", "does not own this listing")
	}
	if err := s.listings.Remove(ctx, listingID); err != nil {
		return err
	}
	s.log.Info().Str("listing_id", listingID).Str("admin", admin.Email).Bool("ban", opts.Ban).Msg("Listing rejected")

	if !opts.Ban {
		return nil
	}
	return s.BanUser(ctx, admin, l.UserID, opts.Reason)
}

func (s *moderationService) Unban(ctx context.Context, admin user.Identity, userID string) error {
	if err := requireAdmin(admin); err != nil {
		return err
	}
	if err := s.bans.Delete(ctx, userID); err != nil {
		return apperrors.NewDatabaseError("delete ban", err)
	}
	if err := s.cache.Forget(ctx, userID); err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Msg("Ban cache delete failed")
	}
	s.log.Info().Str("user_id", userID).Str("admin", admin.Email).Msg("User unbanned")
	return nil
}

func (s *moderationService) ListBans(ctx context.Context, admin user.Identity) ([]moderation.Ban, error) {
	if err := requireAdmin(admin); err != nil {
		return nil, err
	}
	bans, err := s.bans.List(ctx)
	if err != nil {
		return nil, apperrors.NewDatabaseError("list bans", err)
	}
	return bans, nil
}

func requireAdmin(identity user.Identity) error {
	if identity.IsAnonymous() {
		return apperrors.NewUnauthorizedError("sign in required")
	}
	if !identity.IsAdmin {
		return apperrors.NewForbiddenError("administrator access required")
	}
	return nil
}
