package handlers

import (
	"net/http"

	"github.com/anonto42/vinahome/backend/internal/apperrors"
	"github.com/anonto42/vinahome/backend/internal/middleware"
	"github.com/anonto42/vinahome/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// NotificationHandler handles notification-related HTTP requests
type NotificationHandler struct {
	service *services.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(service *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{service: service}
}

// RegisterNotificationRoutes registers notification routes. Every route needs a principal.
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group) {
	g.GET("/notifications", h.GetNotifications, middleware.RequireAuth)
	g.GET("/notifications/unread-count", h.GetUnreadCount, middleware.RequireAuth)
	g.PUT("/notifications/read-all", h.MarkAllAsRead, middleware.RequireAuth)
	g.PUT("/notifications/:id/read", h.MarkAsRead, middleware.RequireAuth)
}

// GetNotifications returns paginated notifications
func (h *NotificationHandler) GetNotifications(c echo.Context) error {
	page, limit, fields := pagination(c)
	if len(fields) > 0 {
		return apperrors.Invalid("invalid query parameters", fields...)
	}
	p, _ := middleware.PrincipalFrom(c)

	result, err := h.service.List(c.Request().Context(), p, page, limit)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, result)
}

// GetUnreadCount returns the number of unread notifications
func (h *NotificationHandler) GetUnreadCount(c echo.Context) error {
	p, _ := middleware.PrincipalFrom(c)
	count, err := h.service.UnreadCount(c.Request().Context(), p)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, map[string]int64{"count": count})
}

// MarkAsRead marks a single notification as read
func (h *NotificationHandler) MarkAsRead(c echo.Context) error {
	p, _ := middleware.PrincipalFrom(c)
	if err := h.service.MarkRead(c.Request().Context(), p, c.Param("id")); err != nil {
		return err
	}
	return respondMessage(c, http.StatusOK, "notification marked as read")
}

// MarkAllAsRead marks all notifications as read
func (h *NotificationHandler) MarkAllAsRead(c echo.Context) error {
	p, _ := middleware.PrincipalFrom(c)
	if err := h.service.MarkAllRead(c.Request().Context(), p); err != nil {
		return err
	}
	return respondMessage(c, http.StatusOK, "all notifications marked as read")
}
