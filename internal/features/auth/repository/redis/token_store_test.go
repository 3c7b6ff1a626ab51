package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) (*miniredis.Miniredis, *TokenStore) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, NewTokenStore(client)
}

func TestMagicLinkIsSingleUse(t *testing.T) {
	mr, s := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveMagicLink(ctx, "tok", "a@example.com", 15*time.Minute))
	assert.False(t, mr.Exists(magicLinkPrefix+"tok"), "raw token is never used as a key")

	email, err := s.ConsumeMagicLink(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", email)

	_, err = s.ConsumeMagicLink(ctx, "tok")
	assert.ErrorIs(t, err, ErrTokenNotFound)
}

func TestMagicLinkExpires(t *testing.T) {
	mr, s := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveMagicLink(ctx, "tok", "a@example.com", time.Minute))
	mr.FastForward(2 * time.Minute)

	_, err := s.ConsumeMagicLink(ctx, "tok")
	assert.ErrorIs(t, err, ErrTokenNotFound)
}

func TestRevocation(t *testing.T) {
	_, s := newStore(t)
	ctx := context.Background()

	revoked, err := s.IsRevoked(ctx, "sid")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, s.Revoke(ctx, "sid", time.Now().Add(time.Hour)))
	revoked, err = s.IsRevoked(ctx, "sid")
	require.NoError(t, err)
	assert.True(t, revoked)

	require.NoError(t, s.Revoke(ctx, "old", time.Now().Add(-time.Hour)))
	revoked, _ = s.IsRevoked(ctx, "old")
	assert.False(t, revoked, "already expired sessions need no marker")
}
