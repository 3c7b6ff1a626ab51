package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	apperrors "github.com/Mustafaygt66/EMKO/internal/common/errors"
	"github.com/Mustafaygt66/EMKO/internal/common/logger"
	"github.com/Mustafaygt66/EMKO/internal/domain/favorite"
	"github.com/Mustafaygt66/EMKO/internal/domain/listing"
	"github.com/Mustafaygt66/EMKO/internal/domain/user"
)

type FavoriteService interface {
	IDs(ctx context.Context, viewer user.Identity) ([]string, error)
	// Add bookmarks an existing listing; repeating it is a no-op.
	Add(ctx context.Context, viewer user.Identity, jobID string) error
	Remove(ctx context.Context, viewer user.Identity, jobID string) error
}

// ListingLookup is the part of the listing store favorites need.
type ListingLookup interface {
	GetByID(ctx context.Context, id string) (*listing.Listing, error)
}

type favoriteService struct {
	repo     favorite.Repository
	listings ListingLookup
	log      zerolog.Logger
}

func NewFavoriteService(repo favorite.Repository, listings ListingLookup) FavoriteService {
	return &favoriteService{
		repo:     repo,
		listings: listings,
		log:      logger.Component("favorite_service"),
	}
}

func (s *favoriteService) IDs(ctx context.Context, viewer user.Identity) ([]string, error) {
	if viewer.IsAnonymous() {
		return nil, apperrors.NewUnauthorizedError("sign in to see favorites")
	}
	ids, err := s.repo.JobIDs(ctx, viewer.UserID)
	if err != nil {
		return nil, apperrors.NewDatabaseError("list favorites", err)
	}
	return ids, nil
}

func (s *favoriteService) Add(ctx context.Context, viewer user.Identity, jobID string) error {
	if viewer.IsAnonymous() {
		return apperrors.NewUnauthorizedError("sign in to save favorites")
	}
	if _, err := s.listings.GetByID(ctx, jobID); err != nil {
		if errors.Is(err, listing.ErrNotFound) {
			return apperrors.NewListingNotFoundError(jobID)
		}
		return apperrors.NewDatabaseError("get listing", err)
	}
	if err := s.repo.Add(ctx, viewer.UserID, jobID); err != nil {
		if errors.Is(err, listing.ErrNotFound) {
			return apperrors.NewListingNotFoundError(jobID)
		}
		return apperrors.NewDatabaseError("add favorite", err)
	}
	s.log.Debug().Str("user_id", viewer.UserID).Str("job_id", jobID).Msg("Favorite added")
	return nil
}

func (s *favoriteService) Remove(ctx context.Context, viewer user.Identity, jobID string) error {
	if viewer.IsAnonymous() {
		return apperrors.NewUnauthorizedError("sign in to manage favorites")
	}
	if err := s.repo.Remove(ctx, viewer.UserID, jobID); err != nil {
		return apperrors.NewDatabaseError("remove favorite", err)
	}
	s.log.Debug().Str("user_id", viewer.UserID).Str("job_id", jobID).Msg("Favorite removed")
	return nil
}
