package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Mustafaygt66/EMKO/internal/common/errors"
	"github.com/Mustafaygt66/EMKO/internal/domain/listing"
	"github.com/Mustafaygt66/EMKO/internal/domain/moderation"
	"github.com/Mustafaygt66/EMKO/internal/domain/user"
)

var admin = user.Identity{UserID: "admin-1", Email: "admin@example.com", IsAdmin: true}

// recorder collects the order of store calls across fakes.
type recorder struct {
	calls []string
}

type fakeBans struct {
	rec  *recorder
	rows map[string]moderation.Ban
	fail error
}

func (f *fakeBans) Insert(_ context.Context, b *moderation.Ban) error {
	f.rec.calls = append(f.rec.calls, "ban:"+b.UserID)
	if f.fail != nil {
		return f.fail
	}
	if _, ok := f.rows[b.UserID]; !ok {
		f.rows[b.UserID] = *b
	}
	return nil
}

func (f *fakeBans) Delete(_ context.Context, userID string) error {
	delete(f.rows, userID)
	return nil
}

func (f *fakeBans) Exists(_ context.Context, userID string) (bool, error) {
	f.rec.calls = append(f.rec.calls, "exists:"+userID)
	_, ok := f.rows[userID]
	return ok, nil
}

func (f *fakeBans) List(context.Context) ([]moderation.Ban, error) {
	out := make([]moderation.Ban, 0, len(f.rows))
	for _, b := range f.rows {
		out = append(out, b)
	}
	return out, nil
}

type mapCache map[string]bool

func (m mapCache) Get(_ context.Context, userID string) (bool, bool, error) {
	v, ok := m[userID]
	return v, ok, nil
}

func (m mapCache) Set(_ context.Context, userID string, banned bool) error {
	m[userID] = banned
	return nil
}

func (m mapCache) Forget(_ context.Context, userID string) error {
	delete(m, userID)
	return nil
}

type fakeFavorites struct{ rec *recorder }

func (f fakeFavorites) DeleteByUser(_ context.Context, userID string) error {
	f.rec.calls = append(f.rec.calls, "favorites:"+userID)
	return nil
}

type fakeListings struct {
	rec  *recorder
	rows map[string]listing.Listing
}

func (f *fakeListings) Get(_ context.Context, id string) (*listing.Listing, error) {
	l, ok := f.rows[id]
	if !ok {
		return nil, apperrors.NewListingNotFoundError(id)
	}
	return &l, nil
}

func (f *fakeListings) ListByUser(_ context.Context, userID string) ([]listing.Listing, error) {
	out := make([]listing.Listing, 0)
	for _, l := range f.rows {
		if l.UserID == userID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeListings) Remove(_ context.Context, id string) error {
	f.rec.calls = append(f.rec.calls, "remove:"+id)
	if _, ok := f.rows[id]; !ok {
		return apperrors.NewListingNotFoundError(id)
	}
	delete(f.rows, id)
	return nil
}

type fixture struct {
	rec      *recorder
	bans     *fakeBans
	cache    mapCache
	listings *fakeListings
	svc      ModerationService
}

func newFixture() *fixture {
	rec := &recorder{}
	f := &fixture{
		rec:   rec,
		bans:  &fakeBans{rec: rec, rows: map[string]moderation.Ban{}},
		cache: mapCache{},
		listings: &fakeListings{rec: rec, rows: map[string]listing.Listing{
			"job-1": {ID: "job-1", UserID: "spammer", IsPending: true},
			"job-2": {ID: "job-2", UserID: "spammer"},
			"job-3": {ID: "job-3", UserID: "neighbor"},
		}},
	}
	f.svc = NewModerationService(f.bans, f.cache, fakeFavorites{rec: rec}, f.listings)
	return f
}

func TestBanUserRunsStepsInOrder(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	require.NoError(t, f.svc.BanUser(ctx, admin, "spammer", "spam"))

	require.Len(t, f.rec.calls, 4)
	assert.Equal(t, "favorites:spammer", f.rec.calls[0])
	assert.Equal(t, "ban:spammer", f.rec.calls[1])
	assert.ElementsMatch(t, []string{"remove:job-1", "remove:job-2"}, f.rec.calls[2:])

	assert.Contains(t, f.listings.rows, "job-3")
	assert.Equal(t, "admin@example.com", f.bans.rows["spammer"].BannedBy)

	banned, err := f.svc.IsBanned(ctx, "spammer")
	require.NoError(t, err)
	assert.True(t, banned)
}

func TestPartialBanCanBeRerun(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.bans.fail = errors.New("connection reset")
	err := f.svc.BanUser(ctx, admin, "spammer", "spam")
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeDatabaseError))
	assert.Len(t, f.listings.rows, 3, "listings untouched after the failed step")

	f.bans.fail = nil
	require.NoError(t, f.svc.BanUser(ctx, admin, "spammer", "spam"))
	require.NoError(t, f.svc.BanUser(ctx, admin, "spammer", "spam"), "re-running a complete ban is harmless")
	assert.Len(t, f.listings.rows, 1)
}

func TestBanRequiresAdmin(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	err := f.svc.BanUser(ctx, user.Identity{UserID: "u1"}, "spammer", "")
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeForbidden))
	err = f.svc.BanUser(ctx, user.Identity{}, "spammer", "")
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeUnauthorized))
	err = f.svc.BanUser(ctx, admin, admin.UserID, "")
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeValidation))
	assert.Empty(t, f.rec.calls)
}

func TestRejectListingWithAndWithoutBan(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	require.NoError(t, f.svc.RejectListing(ctx, admin, "job-3", RejectOptions{}))
	assert.NotContains(t, f.listings.rows, "job-3")
	banned, _ := f.svc.IsBanned(ctx, "neighbor")
	assert.False(t, banned)

	require.NoError(t, f.svc.RejectListing(ctx, admin, "job-1", RejectOptions{Ban: true, Reason: "fake payment"}))
	assert.Empty(t, f.listings.rows)
	banned, _ = f.svc.IsBanned(ctx, "spammer")
	assert.True(t, banned)

	err := f.svc.RejectListing(ctx, admin, "job-1", RejectOptions{})
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeListingNotFound))
}

func TestRejectRerunFinishesBanAfterListingDeleted(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.bans.fail = errors.New("connection reset")

	err := f.svc.RejectListing(ctx, admin, "job-1", RejectOptions{Ban: true, Reason: "fake payment", OwnerID: "spammer"})
	require.Error(t, err)
	assert.NotContains(t, f.listings.rows, "job-1")
	banned, _ := f.svc.IsBanned(ctx, "spammer")
	assert.False(t, banned)

	f.bans.fail = nil
	require.NoError(t, f.svc.RejectListing(ctx, admin, "job-1", RejectOptions{Ban: true, Reason: "fake payment", OwnerID: "spammer"}))
	banned, _ = f.svc.IsBanned(ctx, "spammer")
	assert.True(t, banned)
	assert.NotContains(t, f.listings.rows, "job-2")

	err = f.svc.RejectListing(ctx, admin, "job-1", RejectOptions{Ban: true})
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeListingNotFound), "without an owner a missing listing is still 404")
}

func TestRejectRefusesMismatchedOwner(t *testing.T) {
	f := newFixture()

	err := f.svc.RejectListing(context.Background(), admin, "job-3", RejectOptions{Ban: true, OwnerID: "spammer"})
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeValidation))
	assert.Contains(t, f.listings.rows, "job-3")
}

func TestBanUnknownUserIsValidationError(t *testing.T) {
	f := newFixture()
	f.bans.fail = moderation.ErrUnknownUser

	err := f.svc.BanUser(context.Background(), admin, "not-a-uuid", "")
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeValidation))
}

func TestIsBannedUsesCache(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	banned, err := f.svc.IsBanned(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, banned)
	_, _ = f.svc.IsBanned(ctx, "u1")
	assert.Equal(t, []string{"exists:u1"}, f.rec.calls, "second lookup served from cache")

	banned, err = f.svc.IsBanned(ctx, "")
	require.NoError(t, err)
	assert.False(t, banned)
}

func TestUnbanClearsCache(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	require.NoError(t, f.svc.BanUser(ctx, admin, "spammer", ""))
	require.NoError(t, f.svc.Unban(ctx, admin, "spammer"))

	banned, err := f.svc.IsBanned(ctx, "spammer")
	require.NoError(t, err)
	assert.False(t, banned)

	bans, err := f.svc.ListBans(ctx, admin)
	require.NoError(t, err)
	assert.Empty(t, bans)
}
