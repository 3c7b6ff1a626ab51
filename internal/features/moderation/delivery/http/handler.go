package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/Mustafaygt66/EMKO/internal/common/errors"
	"github.com/Mustafaygt66/EMKO/internal/common/middleware"
	"github.com/Mustafaygt66/EMKO/internal/features/moderation/service"
)

type ModerationHandler struct {
	service service.ModerationService
}

func NewModerationHandler(service service.ModerationService) *ModerationHandler {
	return &ModerationHandler{service: service}
}

// BanRequest is the optional body of POST /admin/bans/{userId}.
type BanRequest struct {
	Reason string `json:"reason" example:"fake payment notice"`
}

// RejectRequest is the optional body of POST /admin/listings/{id}/reject.
// OwnerID is only needed to finish a ban whose listing was already deleted.
type RejectRequest struct {
	Ban     bool   `json:"ban"`
	Reason  string `json:"reason"`
	OwnerID string `json:"owner_id,omitempty"`
}

func (h *ModerationHandler) RegisterRoutes(router *gin.RouterGroup) {
	w := middleware.HandleErrorWrapper

	admin := router.Group("/admin")
	admin.Use(middleware.RequireAdmin())
	{
		admin.POST("/listings/:id/reject", w(h.RejectListing))
		admin.GET("/bans", w(h.ListBans))
		admin.POST("/bans/:userId", w(h.Ban))
		admin.DELETE("/bans/:userId", w(h.Unban))
	}
}

// @Summary Reject listing
// @Description Deletes a listing and, when ban is true, bans its owner and deletes all of their listings and favorites
// @Tags admin
// @Accept json
// @Security BearerAuth
// @Param id path string true "Listing ID"
// @Param body body RejectRequest false "Ban the owner as well"
// @Success 204
// @Failure 403 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /admin/listings/{id}/reject [post]
func (h *ModerationHandler) RejectListing(c *gin.Context) {
	var req RejectRequest
	if !bindOptional(c, &req) {
		return
	}
	if err := h.service.RejectListing(c.Request.Context(), middleware.CurrentIdentity(c), c.Param("id"), service.RejectOptions{
		Ban:     req.Ban,
		Reason:  req.Reason,
		OwnerID: req.OwnerID,
	}); err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Ban user
// @Description Deletes the user's favorites, records the ban and deletes the user's listings. Safe to repeat after a partial failure.
// @Tags admin
// @Accept json
// @Security BearerAuth
// @Param userId path string true "User ID"
// @Param body body BanRequest false "Reason"
// @Success 204
// @Failure 403 {object} middleware.ErrorResponse
// @Router /admin/bans/{userId} [post]
func (h *ModerationHandler) Ban(c *gin.Context) {
	var req BanRequest
	if !bindOptional(c, &req) {
		return
	}
	if err := h.service.BanUser(c.Request.Context(), middleware.CurrentIdentity(c), c.Param("userId"), req.Reason); err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Unban user
// @Tags admin
// @Security BearerAuth
// @Param userId path string true "User ID"
// @Success 204
// @Router /admin/bans/{userId} [delete]
func (h *ModerationHandler) Unban(c *gin.Context) {
	if err := h.service.Unban(c.Request.Context(), middleware.CurrentIdentity(c), c.Param("userId")); err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary List bans
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} moderation.Ban
// @Router /admin/bans [get]
func (h *ModerationHandler) ListBans(c *gin.Context) {
	bans, err := h.service.ListBans(c.Request.Context(), middleware.CurrentIdentity(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, bans)
}

// bindOptional decodes a JSON body when one was sent.
func bindOptional(c *gin.Context, dest interface{}) bool {
	if c.Request.ContentLength == 0 {
		return true
	}
	if err := c.ShouldBindJSON(dest); err != nil {
		_ = c.Error(apperrors.Wrap(err, apperrors.ErrCodeBadRequest, "Invalid request body"))
		return false
	}
	return true
}
