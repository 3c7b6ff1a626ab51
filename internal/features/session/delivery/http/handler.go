package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Mustafaygt66/EMKO/internal/common/middleware"
	"github.com/Mustafaygt66/EMKO/internal/features/session/service"
)

type StateHandler struct {
	service service.SessionService
}

func NewStateHandler(service service.SessionService) *StateHandler {
	return &StateHandler{service: service}
}

func (h *StateHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/state", middleware.HandleErrorWrapper(h.Get))
}

// @Summary Application state
// @Description Identity, admin flag and favorites of the caller. Banned identities get 403 USER_BANNED and no data.
// @Tags session
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.AppState
// @Failure 403 {object} middleware.ErrorResponse "User is banned"
// @Router /state [get]
func (h *StateHandler) Get(c *gin.Context) {
	state, err := h.service.Load(c.Request.Context(), middleware.CurrentIdentity(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, state)
}
