package handlers

import (
	"net/http"

	"github.com/anonto42/vinahome/backend/internal/middleware"
	"github.com/anonto42/vinahome/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// LikeHandler handles HTTP requests related to likes
type LikeHandler struct {
	service *services.CommunityService
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(service *services.CommunityService) *LikeHandler {
	return &LikeHandler{service: service}
}

// RegisterLikeRoutes registers like-related routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	g.POST("/posts/:postId/like", h.ToggleLike, middleware.RequireAuth)
}

// ToggleLike likes or unlikes a post. The body is ignored; the response is the
// state after the toggle.
func (h *LikeHandler) ToggleLike(c echo.Context) error {
	requester, _ := middleware.PrincipalFrom(c)
	result, err := h.service.ToggleLike(c.Request().Context(), requester, c.Param("postId"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, result)
}
