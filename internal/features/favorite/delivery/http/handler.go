package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Mustafaygt66/EMKO/internal/common/middleware"
	"github.com/Mustafaygt66/EMKO/internal/features/favorite/service"
)

type FavoriteHandler struct {
	service service.FavoriteService
}

func NewFavoriteHandler(service service.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{service: service}
}

type FavoritesResponse struct {
	JobIDs []string `json:"job_ids"`
}

func (h *FavoriteHandler) RegisterRoutes(router *gin.RouterGroup, bans middleware.BanChecker) {
	w := middleware.HandleErrorWrapper

	favorites := router.Group("/favorites")
	favorites.Use(middleware.RequireAuth(), middleware.CheckBanned(bans))
	{
		favorites.GET("", w(h.List))
		favorites.PUT("/:jobId", w(h.Add))
		favorites.DELETE("/:jobId", w(h.Remove))
	}
}

// @Summary List favorites
// @Tags favorites
// @Produce json
// @Security BearerAuth
// @Success 200 {object} FavoritesResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Router /favorites [get]
func (h *FavoriteHandler) List(c *gin.Context) {
	ids, err := h.service.IDs(c.Request.Context(), middleware.CurrentIdentity(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, FavoritesResponse{JobIDs: ids})
}

// @Summary Add favorite
// @Tags favorites
// @Security BearerAuth
// @Param jobId path string true "Listing ID"
// @Success 204
// @Failure 404 {object} middleware.ErrorResponse
// @Router /favorites/{jobId} [put]
func (h *FavoriteHandler) Add(c *gin.Context) {
	if err := h.service.Add(c.Request.Context(), middleware.CurrentIdentity(c), c.Param("jobId")); err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Remove favorite
// @Tags favorites
// @Security BearerAuth
// @Param jobId path string true "Listing ID"
// @Success 204
// @Router /favorites/{jobId} [delete]
func (h *FavoriteHandler) Remove(c *gin.Context) {
	if err := h.service.Remove(c.Request.Context(), middleware.CurrentIdentity(c), c.Param("jobId")); err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}
