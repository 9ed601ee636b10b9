package handlers

import (
	"net/http"

	"github.com/anonto42/vinahome/backend/internal/middleware"
	"github.com/anonto42/vinahome/backend/internal/models"
	"github.com/anonto42/vinahome/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	service *services.CommunityService
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(service *services.CommunityService) *CommentHandler {
	return &CommentHandler{service: service}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.GET("/posts/:postId/comments", h.ListComments)
	g.POST("/posts/:postId/comments", h.CreateComment, middleware.RequireAuth)
	g.DELETE("/posts/:postId/comments/:commentId", h.DeleteComment, middleware.RequireAuth)
}

// ListComments retrieves all comments for a specific post
func (h *CommentHandler) ListComments(c echo.Context) error {
	comments, err := h.service.ListComments(c.Request().Context(), c.Param("postId"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, comments)
}

// CreateComment creates a new comment or reply on a post
func (h *CommentHandler) CreateComment(c echo.Context) error {
	var req models.CreateCommentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	author, _ := middleware.PrincipalFrom(c)

	comment, err := h.service.CreateComment(c.Request().Context(), author, c.Param("postId"), req)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, comment)
}

// DeleteComment deletes a comment and its replies
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	requester, _ := middleware.PrincipalFrom(c)
	err := h.service.DeleteComment(c.Request().Context(), requester, c.Param("postId"), c.Param("commentId"))
	if err != nil {
		return err
	}
	return respondMessage(c, http.StatusOK, "comment deleted")
}
