package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/Mustafaygt66/EMKO/internal/common/errors"
	"github.com/Mustafaygt66/EMKO/internal/common/middleware"
	"github.com/Mustafaygt66/EMKO/internal/features/auth/service"
)

type AuthHandler struct {
	service service.AuthService
	limiter *middleware.IPRateLimiter
}

func NewAuthHandler(service service.AuthService, limiter *middleware.IPRateLimiter) *AuthHandler {
	return &AuthHandler{service: service, limiter: limiter}
}

type MagicLinkRequest struct {
	Email string `json:"email" binding:"required" example:"komsu@example.com"`
}

type VerifyRequest struct {
	Token string `json:"token" binding:"required"`
}

func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	w := middleware.HandleErrorWrapper

	auth := router.Group("/auth")
	{
		auth.POST("/magic-link", middleware.RateLimit("magic_link", h.limiter), w(h.RequestMagicLink))
		auth.POST("/verify", w(h.Verify))
		auth.POST("/sign-out", middleware.RequireAuth(), w(h.SignOut))
	}
}

// @Summary Request sign-in link
// @Description Mails a one-time sign-in link. Throttled per client IP.
// @Tags auth
// @Accept json
// @Param body body MagicLinkRequest true "Email"
// @Success 202
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 429 {object} middleware.ErrorResponse
// @Router /auth/magic-link [post]
func (h *AuthHandler) RequestMagicLink(c *gin.Context) {
	var req MagicLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperrors.Wrap(err, apperrors.ErrCodeBadRequest, "Invalid request body"))
		return
	}
	if err := h.service.RequestMagicLink(c.Request.Context(), req.Email); err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(http.StatusAccepted)
}

// @Summary Verify sign-in link
// @Description Exchanges the one-time token for a session token. The client then reloads its application state from /state.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body VerifyRequest true "Token from the link"
// @Success 200 {object} service.Session
// @Failure 401 {object} middleware.ErrorResponse "Invalid, expired or used link"
// @Router /auth/verify [post]
func (h *AuthHandler) Verify(c *gin.Context) {
	var req VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperrors.Wrap(err, apperrors.ErrCodeBadRequest, "Invalid request body"))
		return
	}
	session, err := h.service.Verify(c.Request.Context(), req.Token)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// @Summary Sign out
// @Tags auth
// @Security BearerAuth
// @Success 204
// @Router /auth/sign-out [post]
func (h *AuthHandler) SignOut(c *gin.Context) {
	if err := h.service.SignOut(c.Request.Context(), middleware.SessionToken(c)); err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}
