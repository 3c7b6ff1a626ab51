package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	apperrors "github.com/Mustafaygt66/EMKO/internal/common/errors"
	"github.com/Mustafaygt66/EMKO/internal/common/logger"
	"github.com/Mustafaygt66/EMKO/internal/common/metrics"
	"github.com/Mustafaygt66/EMKO/internal/common/validation"
	"github.com/Mustafaygt66/EMKO/internal/domain/user"
	tokenstore "github.com/Mustafaygt66/EMKO/internal/features/auth/repository/redis"
	"github.com/Mustafaygt66/EMKO/internal/platform/mail"
)

type AuthService interface {
	// RequestMagicLink mails a one-time sign-in link to email.
	RequestMagicLink(ctx context.Context, email string) error
	// Verify exchanges a magic-link token for a session token.
	Verify(ctx context.Context, token string) (*Session, error)
	// Session resolves a session token to the caller's identity.
	Session(ctx context.Context, token string) (user.Identity, error)
	SignOut(ctx context.Context, token string) error
}

type Session struct {
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expires_at"`
	Identity  user.Identity `json:"identity"`
}

type TokenStore interface {
	SaveMagicLink(ctx context.Context, token, email string, ttl time.Duration) error
	ConsumeMagicLink(ctx context.Context, token string) (string, error)
	Revoke(ctx context.Context, sessionID string, until time.Time) error
	IsRevoked(ctx context.Context, sessionID string) (bool, error)
}

type Options struct {
	MagicLinkTTL     time.Duration
	MagicLinkBaseURL string
	// IsAdmin decides administrator status from a verified email.
	IsAdmin func(email string) bool
}

type authService struct {
	users  user.Repository
	tokens TokenStore
	jwt    *JWTManager
	mailer mail.Mailer
	opts   Options
	log    zerolog.Logger
}

func NewAuthService(users user.Repository, tokens TokenStore, jwt *JWTManager, mailer mail.Mailer, opts Options) AuthService {
	if opts.IsAdmin == nil {
		opts.IsAdmin = func(string) bool { return false }
	}
	return &authService{
		users:  users,
		tokens: tokens,
		jwt:    jwt,
		mailer: mailer,
		opts:   opts,
		log:    logger.Component("auth_service"),
	}
}

func (s *authService) RequestMagicLink(ctx context.Context, email string) error {
	email, err := validation.ValidateEmail(email)
	if err != nil {
		return apperrors.NewValidationError("email", err.Error())
	}

	token, err := randomToken()
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "Failed to create sign-in link")
	}
	if err := s.tokens.SaveMagicLink(ctx, token, email, s.opts.MagicLinkTTL); err != nil {
		return apperrors.NewCacheError("save magic link", err)
	}

	link, err := s.link(token)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "Failed to create sign-in link")
	}

	msg := mail.Message{
		To:      email,
		Subject: "EMKO giriş bağlantınız",
		Body: fmt.Sprintf("Merhaba,\n\nEMKO'ya giriş yapmak için bağlantıya tıklayın:\n%s\n\nBağlantı %s boyunca ve yalnızca bir kez geçerlidir.\n",
			link, s.opts.MagicLinkTTL),
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		metrics.MagicLinksSent.WithLabelValues("failed").Inc()
		return apperrors.Wrap(err, apperrors.ErrCodeMailError, "Failed to send sign-in email")
	}

	metrics.MagicLinksSent.WithLabelValues("sent").Inc()
	s.log.Info().Str("email", email).Msg("Magic link sent")
	return nil
}

func (s *authService) Verify(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, apperrors.NewValidationError("token", "cannot be empty")
	}

	email, err := s.tokens.ConsumeMagicLink(ctx, token)
	if err != nil {
		if errors.Is(err, tokenstore.ErrTokenNotFound) {
			return nil, apperrors.New(apperrors.ErrCodeInvalidToken, "Sign-in link is invalid, expired or already used")
		}
		return nil, apperrors.NewCacheError("consume magic link", err)
	}

	u, err := s.users.UpsertByEmail(ctx, email)
	if err != nil {
		return nil, apperrors.NewDatabaseError("upsert user", err)
	}

	signed, claims, err := s.jwt.Issue(u.ID, u.Email)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "Failed to issue session")
	}

	s.log.Info().Str("user_id", u.ID).Msg("User signed in")
	return &Session{
		Token:     signed,
		ExpiresAt: claims.ExpiresAt,
		Identity:  s.identity(claims),
	}, nil
}

func (s *authService) Session(ctx context.Context, token string) (user.Identity, error) {
	claims, err := s.jwt.Parse(token)
	if err != nil {
		return user.Identity{}, apperrors.New(apperrors.ErrCodeInvalidToken, "Session is invalid or expired")
	}

	revoked, err := s.tokens.IsRevoked(ctx, claims.SessionID)
	if err != nil {
		return user.Identity{}, apperrors.NewCacheError("check session", err)
	}
	if revoked {
		return user.Identity{}, apperrors.New(apperrors.ErrCodeInvalidToken, "Session has been signed out")
	}
	return s.identity(claims), nil
}

func (s *authService) SignOut(ctx context.Context, token string) error {
	claims, err := s.jwt.Parse(token)
	if err != nil {
		return apperrors.New(apperrors.ErrCodeInvalidToken, "Session is invalid or expired")
	}
	if err := s.tokens.Revoke(ctx, claims.SessionID, claims.ExpiresAt); err != nil {
		return apperrors.NewCacheError("revoke session", err)
	}
	s.log.Info().Str("user_id", claims.UserID).Msg("User signed out")
	return nil
}

func (s *authService) identity(c SessionClaims) user.Identity {
	return user.Identity{
		UserID:    c.UserID,
		Email:     c.Email,
		IsAdmin:   s.opts.IsAdmin(c.Email),
		SessionID: c.SessionID,
		ExpiresAt: c.ExpiresAt,
	}
}

func (s *authService) link(token string) (string, error) {
	u, err := url.Parse(s.opts.MagicLinkBaseURL)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func randomToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
