package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Mustafaygt66/EMKO/internal/common/errors"
	"github.com/Mustafaygt66/EMKO/internal/common/middleware"
	"github.com/Mustafaygt66/EMKO/internal/domain/listing"
	"github.com/Mustafaygt66/EMKO/internal/domain/user"
	"github.com/Mustafaygt66/EMKO/internal/features/listing/models"
	"github.com/Mustafaygt66/EMKO/internal/features/listing/visibility"
)

var now = time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

type stubService struct {
	all       []listing.Listing
	created   *models.CreateListingRequest
	lastQuery visibility.Query
}

func (s *stubService) Create(_ context.Context, owner user.Identity, req *models.CreateListingRequest) (*listing.Listing, error) {
	s.created = req
	return &listing.Listing{ID: "new-listing-id", Title: req.Title, UserID: owner.UserID, Status: listing.StatusOpen}, nil
}

func (s *stubService) Browse(_ context.Context, viewer user.Identity, q visibility.Query) (*visibility.Result, error) {
	s.lastQuery = q
	res := visibility.Compute(s.all, visibility.Viewer{UserID: viewer.UserID}, q, now)
	return &res, nil
}

func (s *stubService) Trend(context.Context) ([]listing.Listing, error) {
	return visibility.Trend(s.all, now), nil
}

func (s *stubService) Get(_ context.Context, id string) (*listing.Listing, error) {
	for _, l := range s.all {
		if l.ID == id {
			return &l, nil
		}
	}
	return nil, apperrors.NewListingNotFoundError(id)
}

func (s *stubService) Delete(context.Context, user.Identity, string) error { return nil }
func (s *stubService) Remove(context.Context, string) error                { return nil }

func (s *stubService) ListByUser(context.Context, string) ([]listing.Listing, error) {
	return nil, nil
}

func (s *stubService) RequestPromotion(_ context.Context, _ user.Identity, id string) (*listing.Listing, string, error) {
	return nil, "", apperrors.NewPromotionNotAllowedError(id, string(listing.PromotionPending))
}

func (s *stubService) ApprovePromotion(_ context.Context, _ user.Identity, id string) (*listing.Listing, error) {
	until := now.Add(listing.FeatureDuration)
	return &listing.Listing{ID: id, IsFeatured: true, FeaturedUntil: &until}, nil
}

func (s *stubService) ContactLink(_ context.Context, id string) (string, error) {
	return "https://wa.me/905000000000?text=" + id, nil
}

type resolver map[string]user.Identity

func (r resolver) Session(_ context.Context, token string) (user.Identity, error) {
	if id, ok := r[token]; ok {
		return id, nil
	}
	return user.Identity{}, apperrors.New(apperrors.ErrCodeInvalidToken, "Session is invalid or expired")
}

type bans map[string]bool

func (b bans) IsBanned(_ context.Context, userID string) (bool, error) { return b[userID], nil }

func setup(t *testing.T) (*gin.Engine, *stubService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := &stubService{all: []listing.Listing{
		{ID: "open-1", Title: "Çim kesimi", Description: "bahçe düzenleme", CreatedAt: now.Add(-time.Hour)},
		{ID: "pending-1", Title: "Boya", Description: "oda", IsPending: true, CreatedAt: now.Add(-2 * time.Hour)},
	}}
	h := NewListingHandler(svc)
	h.now = func() time.Time { return now }

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.ErrorHandler())
	api := r.Group("/api/v1")
	api.Use(middleware.Session(resolver{
		"user":   {UserID: "u1"},
		"banned": {UserID: "b1"},
		"admin":  {UserID: "a1", IsAdmin: true},
	}))
	h.RegisterRoutes(api, bans{"b1": true})
	return r, svc
}

func request(r http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) apperrors.ErrorCode {
	t.Helper()
	var resp middleware.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	return resp.Error.Code
}

func TestBrowseParsesQueryAndHidesPending(t *testing.T) {
	r, svc := setup(t)

	w := request(r, http.MethodGet, "/api/v1/listings?q=BAH%C3%87E&sort=bogus", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, visibility.SortNewest, svc.lastQuery.Sort)

	var body models.BrowseResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Visible, 1)
	assert.Equal(t, "open-1", body.Visible[0].ID)
	assert.Equal(t, "NORMAL", body.Visible[0].PromotionState)
	assert.Equal(t, "TAKAS", body.Visible[0].DisplayPrice)
	assert.Empty(t, body.Trend)
}

func TestAdminPendingViewIsGuarded(t *testing.T) {
	r, _ := setup(t)

	w := request(r, http.MethodGet, "/api/v1/listings?view=admin-pending", "user", "")
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = request(r, http.MethodGet, "/api/v1/admin/listings/pending", "user", "")
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = request(r, http.MethodGet, "/api/v1/admin/listings/pending", "admin", "")
	require.Equal(t, http.StatusOK, w.Code)
	var pending []models.ListingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pending))
	require.Len(t, pending, 1)
	assert.Equal(t, "pending-1", pending[0].ID)
}

func TestCreateRequiresSignInAndNoBan(t *testing.T) {
	r, svc := setup(t)
	body := `{"title":"Çim kesimi","description":"bahçe","phone_number":"0532 111 22 33"}`

	w := request(r, http.MethodPost, "/api/v1/listings", "", body)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, apperrors.ErrCodeUnauthorized, errorCode(t, w))

	w = request(r, http.MethodPost, "/api/v1/listings", "banned", body)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, apperrors.ErrCodeUserBanned, errorCode(t, w))
	assert.Nil(t, svc.created)

	w = request(r, http.MethodPost, "/api/v1/listings", "user", body)
	assert.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, svc.created)
	assert.Equal(t, "Çim kesimi", svc.created.Title)

	w = request(r, http.MethodPost, "/api/v1/listings", "user", `{"title":""}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPromotionConflictAndApprove(t *testing.T) {
	r, _ := setup(t)

	w := request(r, http.MethodPost, "/api/v1/listings/open-1/promotion", "user", "")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, apperrors.ErrCodePromotionNotAllowed, errorCode(t, w))

	w = request(r, http.MethodPost, "/api/v1/admin/listings/pending-1/approve", "user", "")
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = request(r, http.MethodPost, "/api/v1/admin/listings/pending-1/approve", "admin", "")
	require.Equal(t, http.StatusOK, w.Code)
	var got models.ListingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "FEATURED", got.PromotionState)
}

func TestGetAndContact(t *testing.T) {
	r, _ := setup(t)

	w := request(r, http.MethodGet, "/api/v1/listings/missing", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, apperrors.ErrCodeListingNotFound, errorCode(t, w))

	w = request(r, http.MethodGet, "/api/v1/listings/open-1/contact", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "wa.me")

	w = request(r, http.MethodGet, "/api/v1/listings/trend", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestBannedSessionCannotReadListings(t *testing.T) {
	r, _ := setup(t)

	paths := []string{
		"/api/v1/listings",
		"/api/v1/listings?view=my-jobs",
		"/api/v1/listings/trend",
		"/api/v1/listings/open-1",
		"/api/v1/listings/open-1/contact",
	}
	for _, path := range paths {
		w := request(r, http.MethodGet, path, "banned", "")
		assert.Equal(t, http.StatusForbidden, w.Code, path)
		assert.Equal(t, apperrors.ErrCodeUserBanned, errorCode(t, w), path)
		assert.NotContains(t, w.Body.String(), "wa.me", path)
		assert.NotContains(t, w.Body.String(), `"visible"`, path)
	}

	w := request(r, http.MethodGet, "/api/v1/listings/open-1", "user", "")
	assert.Equal(t, http.StatusOK, w.Code)
	w = request(r, http.MethodGet, "/api/v1/listings/open-1", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
}
