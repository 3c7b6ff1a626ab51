package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	magicLinkPrefix = "emko:auth:link:"
	revokedPrefix   = "emko:auth:revoked:"
)

// ErrTokenNotFound is returned when a magic-link token is unknown,
// expired or already used.
var ErrTokenNotFound = errors.New("magic link token not found")

// TokenStore keeps one-time sign-in tokens and revoked session ids.
// Tokens are stored hashed.
type TokenStore struct {
	client redis.Cmdable
}

func NewTokenStore(client redis.Cmdable) *TokenStore {
	return &TokenStore{client: client}
}

func hash(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func (s *TokenStore) SaveMagicLink(ctx context.Context, token, email string, ttl time.Duration) error {
	return s.client.Set(ctx, magicLinkPrefix+hash(token), email, ttl).Err()
}

// ConsumeMagicLink returns the email the token was issued for and deletes
// it in the same command, so a token can be exchanged only once.
func (s *TokenStore) ConsumeMagicLink(ctx context.Context, token string) (string, error) {
	email, err := s.client.GetDel(ctx, magicLinkPrefix+hash(token)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrTokenNotFound
	}
	if err != nil {
		return "", err
	}
	return email, nil
}

// Revoke marks a session id as signed out until the token would expire.
func (s *TokenStore) Revoke(ctx context.Context, sessionID string, until time.Time) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		return nil
	}
	return s.client.Set(ctx, revokedPrefix+sessionID, "1", ttl).Err()
}

func (s *TokenStore) IsRevoked(ctx context.Context, sessionID string) (bool, error) {
	n, err := s.client.Exists(ctx, revokedPrefix+sessionID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
