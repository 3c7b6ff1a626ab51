// Package service assembles the application state a page loads once per
// session: who the caller is, whether they may act, and their favorites.
// Signing in or out yields a new state value; nothing is mutated in place.
package service

import (
	"context"

	apperrors "github.com/Mustafaygt66/EMKO/internal/common/errors"
	"github.com/Mustafaygt66/EMKO/internal/domain/user"
)

type AppState struct {
	User        *user.Identity `json:"user"`
	IsAdmin     bool           `json:"is_admin"`
	FavoriteIDs []string       `json:"favorite_ids"`
}

type BanChecker interface {
	IsBanned(ctx context.Context, userID string) (bool, error)
}

type FavoriteLister interface {
	JobIDs(ctx context.Context, userID string) ([]string, error)
}

type SessionService interface {
	// Load returns USER_BANNED before reading anything else for a banned
	// identity.
	Load(ctx context.Context, identity user.Identity) (*AppState, error)
}

type sessionService struct {
	bans      BanChecker
	favorites FavoriteLister
}

func NewSessionService(bans BanChecker, favorites FavoriteLister) SessionService {
	return &sessionService{bans: bans, favorites: favorites}
}

func (s *sessionService) Load(ctx context.Context, identity user.Identity) (*AppState, error) {
	if identity.IsAnonymous() {
		return &AppState{FavoriteIDs: []string{}}, nil
	}

	if !identity.IsAdmin {
		banned, err := s.bans.IsBanned(ctx, identity.UserID)
		if err != nil {
			return nil, err
		}
		if banned {
			return nil, apperrors.NewUserBannedError(identity.UserID)
		}
	}

	ids, err := s.favorites.JobIDs(ctx, identity.UserID)
	if err != nil {
		return nil, apperrors.NewDatabaseError("load favorites", err)
	}

	return &AppState{
		User:        &identity,
		IsAdmin:     identity.IsAdmin,
		FavoriteIDs: ids,
	}, nil
}
