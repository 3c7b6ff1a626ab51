package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/Mustafaygt66/EMKO/internal/common/errors"
	"github.com/Mustafaygt66/EMKO/internal/common/middleware"
	"github.com/Mustafaygt66/EMKO/internal/features/listing/models"
	"github.com/Mustafaygt66/EMKO/internal/features/listing/service"
	"github.com/Mustafaygt66/EMKO/internal/features/listing/visibility"
)

type ListingHandler struct {
	service service.ListingService
	now     func() time.Time
}

func NewListingHandler(service service.ListingService) *ListingHandler {
	return &ListingHandler{service: service, now: time.Now}
}

func (h *ListingHandler) RegisterRoutes(router *gin.RouterGroup, bans middleware.BanChecker) {
	w := middleware.HandleErrorWrapper

	listings := router.Group("/listings")
	listings.Use(middleware.CheckBanned(bans))
	{
		listings.GET("", w(h.Browse))
		listings.GET("/trend", w(h.Trend))
		listings.GET("/:id", w(h.Get))
		listings.GET("/:id/contact", w(h.Contact))
	}

	owned := router.Group("/listings")
	owned.Use(middleware.RequireAuth(), middleware.CheckBanned(bans))
	{
		owned.POST("", w(h.Create))
		owned.DELETE("/:id", w(h.Delete))
		owned.POST("/:id/promotion", w(h.RequestPromotion))
	}

	admin := router.Group("/admin/listings")
	admin.Use(middleware.RequireAdmin())
	{
		admin.GET("/pending", w(h.Pending))
		admin.POST("/:id/approve", w(h.Approve))
	}
}

// @Summary Browse listings
// @Description Runs the visibility engine for the caller. Unknown filter values fall back to defaults. The trend carousel ignores every filter.
// @Tags listings
// @Produce json
// @Security BearerAuth
// @Param view query string false "all | favorites | my-jobs | admin-pending" default(all)
// @Param q query string false "Case-insensitive search on title or description"
// @Param sort query string false "newest | price_high | price_low" default(newest)
// @Param promotion query string false "all | featured | normal" default(all)
// @Success 200 {object} models.BrowseResponse
// @Failure 401 {object} middleware.ErrorResponse "Invalid session"
// @Failure 403 {object} middleware.ErrorResponse "admin-pending requested by a non-admin"
// @Router /listings [get]
func (h *ListingHandler) Browse(c *gin.Context) {
	identity := middleware.CurrentIdentity(c)
	q := visibility.ParseQuery(c.Query("view"), c.Query("q"), c.Query("sort"), c.Query("promotion"))

	if q.View == visibility.ViewAdminPending && !identity.IsAdmin {
		_ = c.Error(apperrors.NewForbiddenError("administrator access required"))
		return
	}

	res, err := h.service.Browse(c.Request.Context(), identity, q)
	if err != nil {
		_ = c.Error(err)
		return
	}

	now := h.now()
	c.JSON(http.StatusOK, models.BrowseResponse{
		Visible: models.ToListingResponses(res.Visible, now),
		Trend:   models.ToListingResponses(res.Trend, now),
	})
}

// @Summary Trend carousel
// @Description Actively featured listings, newest first
// @Tags listings
// @Produce json
// @Success 200 {object} models.TrendResponse
// @Router /listings/trend [get]
func (h *ListingHandler) Trend(c *gin.Context) {
	trend, err := h.service.Trend(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, models.TrendResponse{Trend: models.ToListingResponses(trend, h.now())})
}

// @Summary Get listing
// @Tags listings
// @Produce json
// @Param id path string true "Listing ID"
// @Success 200 {object} models.ListingResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /listings/{id} [get]
func (h *ListingHandler) Get(c *gin.Context) {
	l, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, models.ToListingResponse(*l, h.now()))
}

// @Summary Contact link
// @Description Chat deep link to the operator, pre-filled with the listing's short id and title
// @Tags listings
// @Produce json
// @Param id path string true "Listing ID"
// @Success 200 {object} models.ContactResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /listings/{id}/contact [get]
func (h *ListingHandler) Contact(c *gin.Context) {
	link, err := h.service.ContactLink(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, models.ContactResponse{Link: link})
}

// @Summary Create listing
// @Description Phone numbers are normalized to 90XXXXXXXXXX. New listings start open, not featured and not pending.
// @Tags listings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param listing body models.CreateListingRequest true "Listing"
// @Success 201 {object} models.ListingResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 401 {object} middleware.ErrorResponse "Sign in required"
// @Failure 403 {object} middleware.ErrorResponse "User is banned"
// @Router /listings [post]
func (h *ListingHandler) Create(c *gin.Context) {
	var req models.CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperrors.Wrap(err, apperrors.ErrCodeBadRequest, "Invalid request body"))
		return
	}

	l, err := h.service.Create(c.Request.Context(), middleware.CurrentIdentity(c), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, models.ToListingResponse(*l, h.now()))
}

// @Summary Delete listing
// @Description Owner or administrator only. Favorites of the listing are removed first.
// @Tags listings
// @Security BearerAuth
// @Param id path string true "Listing ID"
// @Success 204
// @Failure 403 {object} middleware.ErrorResponse "Not the owner"
// @Failure 404 {object} middleware.ErrorResponse
// @Router /listings/{id} [delete]
func (h *ListingHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), middleware.CurrentIdentity(c), c.Param("id")); err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Request promotion
// @Description Moves the caller's NORMAL listing to PENDING_APPROVAL and returns the payment chat link. Pending or featured listings are rejected.
// @Tags promotion
// @Produce json
// @Security BearerAuth
// @Param id path string true "Listing ID"
// @Success 200 {object} models.PromotionResponse
// @Failure 403 {object} middleware.ErrorResponse "Not the owner"
// @Failure 409 {object} middleware.ErrorResponse "Already pending or featured"
// @Router /listings/{id}/promotion [post]
func (h *ListingHandler) RequestPromotion(c *gin.Context) {
	l, link, err := h.service.RequestPromotion(c.Request.Context(), middleware.CurrentIdentity(c), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, models.PromotionResponse{
		Listing:     models.ToListingResponse(*l, h.now()),
		PaymentLink: link,
	})
}

// @Summary Pending promotions
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.ListingResponse
// @Failure 403 {object} middleware.ErrorResponse
// @Router /admin/listings/pending [get]
func (h *ListingHandler) Pending(c *gin.Context) {
	identity := middleware.CurrentIdentity(c)
	res, err := h.service.Browse(c.Request.Context(), identity, visibility.Query{
		View:      visibility.ViewAdminPending,
		Sort:      visibility.SortNewest,
		Promotion: visibility.PromotionAll,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, models.ToListingResponses(res.Visible, h.now()))
}

// @Summary Approve promotion
// @Description Features a pending listing for seven days from now
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Listing ID"
// @Success 200 {object} models.ListingResponse
// @Failure 403 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse "Listing is not pending"
// @Router /admin/listings/{id}/approve [post]
func (h *ListingHandler) Approve(c *gin.Context) {
	l, err := h.service.ApprovePromotion(c.Request.Context(), middleware.CurrentIdentity(c), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, models.ToListingResponse(*l, h.now()))
}
