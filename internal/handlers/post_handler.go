package handlers

import (
	"net/http"

	"github.com/anonto42/vinahome/backend/internal/apperrors"
	"github.com/anonto42/vinahome/backend/internal/middleware"
	"github.com/anonto42/vinahome/backend/internal/models"
	"github.com/anonto42/vinahome/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	service *services.CommunityService
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(service *services.CommunityService) *PostHandler {
	return &PostHandler{service: service}
}

// RegisterPostRoutes registers post-related routes. Reads are open to anonymous
// viewers; writes require a principal.
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.GET("/categories", h.ListCategories)
	g.GET("/posts", h.ListPosts)
	g.GET("/posts/counts", h.CountPosts)
	g.GET("/posts/:postId", h.GetPost)
	g.POST("/posts", h.CreatePost, middleware.RequireAuth)
	g.PATCH("/posts/:postId", h.UpdatePost, middleware.RequireAuth)
	g.DELETE("/posts/:postId", h.DeletePost, middleware.RequireAuth)
}

// ListCategories returns the board tabs with their display labels.
func (h *PostHandler) ListCategories(c echo.Context) error {
	return respond(c, http.StatusOK, models.CategoryTabs())
}

// ListPosts lists posts by location, category and sort order
func (h *PostHandler) ListPosts(c echo.Context) error {
	filter, err := postListFilter(c)
	if err != nil {
		return err
	}
	viewer, _ := middleware.PrincipalFrom(c)

	posts, err := h.service.ListPosts(c.Request().Context(), viewer, filter)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, posts)
}

// CountPosts returns per-category badge counts. The category parameter is ignored.
func (h *PostHandler) CountPosts(c echo.Context) error {
	filter, fields := locationFilter(c)
	if len(fields) > 0 {
		return apperrors.Invalid("invalid query parameters", fields...)
	}

	counts, err := h.service.CountPosts(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, counts)
}

// GetPost returns a post with its comments and the viewer's like state
func (h *PostHandler) GetPost(c echo.Context) error {
	viewer, _ := middleware.PrincipalFrom(c)
	detail, err := h.service.GetPost(c.Request().Context(), viewer, c.Param("postId"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, detail)
}

// CreatePost creates a new post
func (h *PostHandler) CreatePost(c echo.Context) error {
	var req models.CreatePostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	author, _ := middleware.PrincipalFrom(c)

	post, err := h.service.CreatePost(c.Request().Context(), author, req)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, post)
}

// UpdatePost edits a post inside the edit window
func (h *PostHandler) UpdatePost(c echo.Context) error {
	var req models.UpdatePostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	requester, _ := middleware.PrincipalFrom(c)

	post, err := h.service.UpdatePost(c.Request().Context(), requester, c.Param("postId"), req)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, post)
}

// DeletePost soft-deletes a post
func (h *PostHandler) DeletePost(c echo.Context) error {
	requester, _ := middleware.PrincipalFrom(c)
	if err := h.service.DeletePost(c.Request().Context(), requester, c.Param("postId")); err != nil {
		return err
	}
	return respondMessage(c, http.StatusOK, "post deleted")
}
